// etl carga los CSV de donantes, donaciones y solicitudes hospitalarias desde
// un directorio, publica el snapshot neteado y termina. Pensado para corridas
// programadas (cron) o cargas iniciales sin pasar por la API.
//
// Uso: go run ./cmd/etl [-data ./data] [-date YYYY-MM-DD] [-latin1]
// Por defecto usa ETL_DATA_DIR y la fecha de hoy (UTC).
package main

import (
	"context"
	"flag"
	"time"

	"github.com/hemovital/hemostock-api/internal/application/etl"
	"github.com/hemovital/hemostock-api/internal/application/ports"
	"github.com/hemovital/hemostock-api/internal/domain/normalize"
	"github.com/hemovital/hemostock-api/internal/infrastructure/cache"
	"github.com/hemovital/hemostock-api/internal/infrastructure/csvsource"
	"github.com/hemovital/hemostock-api/internal/infrastructure/postgres"
	"github.com/hemovital/hemostock-api/pkg/config"
	"github.com/hemovital/hemostock-api/pkg/logger"
)

func main() {
	var (
		dataDir = flag.String("data", "", "directorio con donors.csv, donations.csv y hospital_requests.csv (default ETL_DATA_DIR)")
		dateStr = flag.String("date", "", "fecha de evaluación YYYY-MM-DD (default hoy UTC)")
		latin1  = flag.Bool("latin1", false, "decodificar los CSV como ISO-8859-1")
	)
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}
	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: "info",
	}).Component("etl")

	dir := *dataDir
	if dir == "" {
		dir = cfg.ETL.DataDir
	}

	evalDate := todayUTC()
	if *dateStr != "" {
		evalDate, err = time.Parse(normalize.DateLayout, *dateStr)
		if err != nil {
			log.Fatal().Str("date", *dateStr).Msg("-date debe ser YYYY-MM-DD")
		}
	}

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	if cfg.DB.Migrate {
		if err := postgres.Migrate(ctx, pool); err != nil {
			log.Fatal().Err(err).Msg("migraciones")
		}
	}

	var viewCache ports.ViewCache = cache.Noop{}
	if cfg.Redis.Addr != "" {
		client, err := cache.Connect(ctx, cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
		if err != nil {
			log.Fatal().Err(err).Msg("conexión a Redis")
		}
		defer client.Close()
		viewCache = cache.NewRedis(client, time.Duration(cfg.Redis.TTLSeconds)*time.Second)
	}

	locationRepo := postgres.NewLocationRepository(pool)
	txRunner := postgres.NewTxRunner(pool)
	ingestUC := etl.NewIngestUseCase(txRunner, locationRepo, viewCache)

	log.Info().
		Str("dir", dir).
		Str("evaluation_date", evalDate.Format(normalize.DateLayout)).
		Msg("cargando lote")

	result, err := ingestUC.LoadFromSource(ctx, csvsource.NewDir(dir, *latin1), evalDate)
	if err != nil {
		log.Fatal().Err(err).Msg("carga fallida")
	}

	for _, f := range result.Snapshot.Failures {
		log.Warn().
			Str("blood_type", f.BloodType).
			Str("component", f.Component).
			Msg(f.Error)
	}

	log.Info().
		Int("donors", result.Donors).
		Int("donations", result.Donations).
		Int("requests", result.Requests).
		Int("snapshot_rows", result.Snapshot.RowsWritten).
		Int("group_failures", len(result.Snapshot.Failures)).
		Msg("lote cargado")
}

// todayUTC devuelve la fecha de hoy a medianoche UTC, el mismo corte que usa
// la API cuando no se indica fecha.
func todayUTC() time.Time {
	now := time.Now().UTC()
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
}
