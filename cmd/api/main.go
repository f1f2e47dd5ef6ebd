package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	appanalytics "github.com/hemovital/hemostock-api/internal/application/analytics"
	"github.com/hemovital/hemostock-api/internal/application/auth"
	"github.com/hemovital/hemostock-api/internal/application/etl"
	"github.com/hemovital/hemostock-api/internal/application/ports"
	appreport "github.com/hemovital/hemostock-api/internal/application/report"
	"github.com/hemovital/hemostock-api/internal/application/usecase"
	"github.com/hemovital/hemostock-api/internal/infrastructure/cache"
	infrapdf "github.com/hemovital/hemostock-api/internal/infrastructure/pdf"
	"github.com/hemovital/hemostock-api/internal/infrastructure/postgres"
	httpRouter "github.com/hemovital/hemostock-api/internal/interfaces/http"
	"github.com/hemovital/hemostock-api/pkg/config"
	"github.com/hemovital/hemostock-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: "info",
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

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
		log.Info().Msg("migraciones aplicadas")
	}

	// Caché de vistas: Redis si REDIS_ADDR está definido, si no un no-op.
	var viewCache ports.ViewCache = cache.Noop{}
	if cfg.Redis.Addr != "" {
		client, err := cache.Connect(ctx, cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
		if err != nil {
			log.Fatal().Err(err).Msg("conexión a Redis")
		}
		defer client.Close()
		viewCache = cache.NewRedis(client, time.Duration(cfg.Redis.TTLSeconds)*time.Second)
		log.Info().Str("addr", cfg.Redis.Addr).Msg("caché de vistas en Redis")
	} else {
		log.Info().Msg("caché de vistas deshabilitado")
	}

	donorRepo := postgres.NewDonorRepository(pool)
	donationRepo := postgres.NewDonationRepository(pool)
	requestRepo := postgres.NewRequestRepository(pool)
	inventoryRepo := postgres.NewInventoryRepository(pool)
	locationRepo := postgres.NewLocationRepository(pool)
	userRepo := postgres.NewUserRepository(pool)
	analyticsRepo := postgres.NewAnalyticsRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	authUC := auth.NewAuthUseCase(userRepo, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})
	inventoryUC := usecase.NewInventoryUseCase(inventoryRepo)
	locationUC := usecase.NewLocationUseCase(locationRepo)
	recordsUC := usecase.NewRecordsUseCase(donorRepo, donationRepo, requestRepo)
	dashboardUC := appanalytics.NewDashboardUseCase(analyticsRepo, viewCache)
	alertsUC := appanalytics.NewAlertsUseCase(inventoryRepo, donationRepo)
	forecastUC := appanalytics.NewForecastUseCase(requestRepo)
	ingestUC := etl.NewIngestUseCase(txRunner, locationRepo, viewCache)
	refreshUC := etl.NewRefreshUseCase(donationRepo, requestRepo, locationRepo, txRunner, viewCache)

	// PDF: representación gráfica del estado del inventario
	pdfGenerator := infrapdf.NewMarotoStockGenerator()
	reportUC := appreport.NewPDFUseCase(
		inventoryRepo, analyticsRepo, pdfGenerator, cfg.ETL.LowStockThreshold,
	)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 30,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
		// Los lotes de ingesta llegan como multipart; el límite por defecto
		// de 4 MB se queda corto para un CSV de donaciones de meses.
		BodyLimit: 32 * 1024 * 1024,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "HemoStock API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:      authUC,
		InventoryUC: inventoryUC,
		LocationUC:  locationUC,
		RecordsUC:   recordsUC,
		DashboardUC: dashboardUC,
		AlertsUC:    alertsUC,
		ForecastUC:  forecastUC,
		IngestUC:    ingestUC,
		RefreshUC:   refreshUC,
		ReportUC:    reportUC,
		JWTSecret:   cfg.JWT.Secret,
		Analytics: httpRouter.AnalyticsDefaults{
			LowStockThreshold: cfg.ETL.LowStockThreshold,
			NearExpiryDays:    cfg.ETL.NearExpiryDays,
			ForecastHorizon:   cfg.ETL.ForecastHorizon,
		},
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
