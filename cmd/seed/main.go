// seed genera CSVs sintéticos de donantes, donaciones y solicitudes
// hospitalarias con el formato exacto que espera la ingesta. La misma semilla
// produce byte a byte los mismos archivos.
//
// Uso: go run ./cmd/seed [-donors 250] [-donations 1200] [-requests 800] [-seed 42] [-out ./data] [-date YYYY-MM-DD]
// Escribe: donors.csv, donations.csv y hospital_requests.csv en -out.
package main

import (
	"encoding/csv"
	"flag"
	"fmt"
	"math/rand"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/hemovital/hemostock-api/internal/domain/blood"
	"github.com/hemovital/hemostock-api/internal/domain/normalize"
	"github.com/hemovital/hemostock-api/internal/infrastructure/csvsource"
)

var firstNames = []string{
	"María", "José", "Luisa", "Carlos", "Ana", "Pedro", "Lucía", "Andrés",
	"Camila", "Jorge", "Valentina", "Miguel", "Sofía", "Juan", "Isabel",
	"Diego", "Paula", "Fernando", "Laura", "Ricardo",
}

var lastNames = []string{
	"García", "Rodríguez", "Martínez", "López", "Hernández", "González",
	"Pérez", "Sánchez", "Ramírez", "Torres", "Flórez", "Castro", "Vargas",
	"Rojas", "Moreno",
}

func main() {
	var (
		nDonors    = flag.Int("donors", 250, "cantidad de donantes (mínimo 8, uno por tipo de sangre)")
		nDonations = flag.Int("donations", 1200, "cantidad de donaciones (mínimo 24, una por par tipo/componente)")
		nRequests  = flag.Int("requests", 800, "cantidad de solicitudes hospitalarias")
		seed       = flag.Int64("seed", 42, "semilla del generador")
		outDir     = flag.String("out", "./data", "directorio de salida")
		dateStr    = flag.String("date", "", "fecha ancla YYYY-MM-DD (default hoy UTC); las fechas generadas son anteriores a ella")
	)
	flag.Parse()

	types := blood.Types()
	components := blood.Components()

	if *nDonors < len(types) {
		fmt.Fprintf(os.Stderr, "se requieren al menos %d donantes para cubrir todos los tipos de sangre\n", len(types))
		os.Exit(1)
	}
	if *nDonations < len(types)*len(components) {
		fmt.Fprintf(os.Stderr, "se requieren al menos %d donaciones para cubrir todos los pares tipo/componente\n", len(types)*len(components))
		os.Exit(1)
	}

	anchor := time.Now().UTC()
	if *dateStr != "" {
		var err error
		anchor, err = time.Parse(normalize.DateLayout, *dateStr)
		if err != nil {
			fmt.Fprintf(os.Stderr, "-date debe ser YYYY-MM-DD: %v\n", err)
			os.Exit(1)
		}
	}
	anchor = time.Date(anchor.Year(), anchor.Month(), anchor.Day(), 0, 0, 0, 0, time.UTC)

	rng := rand.New(rand.NewSource(*seed))

	// ── Donantes ──────────────────────────────────────────────────────────────
	// Los primeros 8 recorren los tipos canónicos para que cada tipo tenga
	// al menos un donante; el resto se sortea.
	donors := make([][]string, 0, *nDonors)
	donorsByType := make(map[blood.Type][]string, len(types))
	for i := 0; i < *nDonors; i++ {
		bt := types[rng.Intn(len(types))]
		if i < len(types) {
			bt = types[i]
		}
		id := fmt.Sprintf("D%05d", i+1)
		name := firstNames[rng.Intn(len(firstNames))] + " " + lastNames[rng.Intn(len(lastNames))]
		dob := time.Date(1950+rng.Intn(56), time.Month(1+rng.Intn(12)), 1+rng.Intn(28), 0, 0, 0, 0, time.UTC)
		contact := fmt.Sprintf("donante%d@hemovital.example", i+1)

		donorsByType[bt] = append(donorsByType[bt], id)
		donors = append(donors, []string{id, name, day(dob), string(bt), contact})
	}

	// ── Donaciones ────────────────────────────────────────────────────────────
	// Las primeras 24 recorren todos los pares (tipo, componente); el resto se
	// sortea. El tipo de la donación coincide con el del donante referido.
	donations := make([][]string, 0, *nDonations)
	for i := 0; i < *nDonations; i++ {
		var bt blood.Type
		var comp blood.Component
		if i < len(types)*len(components) {
			bt = types[i%len(types)]
			comp = components[i/len(types)]
		} else {
			bt = types[rng.Intn(len(types))]
			comp = components[rng.Intn(len(components))]
		}
		candidates := donorsByType[bt]
		donorID := candidates[rng.Intn(len(candidates))]

		donated := anchor.AddDate(0, 0, -rng.Intn(30))
		expiry := donated.AddDate(0, 0, blood.ShelfLifeDays(comp))
		units := 1 + rng.Intn(5)
		qc := "true"
		if rng.Intn(50) == 0 { // ~2% de lotes rechazados por control de calidad
			qc = "false"
		}

		donations = append(donations, []string{
			fmt.Sprintf("DN%06d", i+1), donorID, string(bt), string(comp),
			day(donated), day(expiry), strconv.Itoa(units), qc,
		})
	}

	// ── Solicitudes hospitalarias ─────────────────────────────────────────────
	urgencies := blood.Urgencies()
	statuses := blood.Statuses()
	requests := make([][]string, 0, *nRequests)
	for i := 0; i < *nRequests; i++ {
		bt := types[rng.Intn(len(types))]
		comp := components[rng.Intn(len(components))]
		reqDate := anchor.AddDate(0, 0, -rng.Intn(90))
		urgency := urgencies[rng.Intn(len(urgencies))]
		status := statuses[rng.Intn(len(statuses))]
		fulfilled := ""
		if status == blood.StatusFulfilled {
			fulfilled = day(reqDate.AddDate(0, 0, rng.Intn(4)))
		}

		requests = append(requests, []string{
			fmt.Sprintf("R%05d", i+1), fmt.Sprintf("hospital_%d", 1+rng.Intn(15)),
			string(bt), string(comp), strconv.Itoa(1 + rng.Intn(8)),
			day(reqDate), string(urgency), string(status), fulfilled,
		})
	}

	// ── Escritura ─────────────────────────────────────────────────────────────
	if err := os.MkdirAll(*outDir, 0o755); err != nil {
		fmt.Fprintf(os.Stderr, "crear directorio: %v\n", err)
		os.Exit(1)
	}
	writeCSV(filepath.Join(*outDir, csvsource.DonorsFile), normalize.DonorColumns, donors)
	writeCSV(filepath.Join(*outDir, csvsource.DonationsFile), normalize.DonationColumns, donations)
	writeCSV(filepath.Join(*outDir, csvsource.RequestsFile), normalize.RequestColumns, requests)

	fmt.Printf("Generado %s: %d donantes, %d donaciones, %d solicitudes (semilla %d, ancla %s)\n",
		*outDir, len(donors), len(donations), len(requests), *seed, day(anchor))
}

func day(t time.Time) string {
	return t.Format(normalize.DateLayout)
}

func writeCSV(path string, header []string, rows [][]string) {
	f, err := os.Create(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "crear %s: %v\n", path, err)
		os.Exit(1)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(header); err != nil {
		fmt.Fprintf(os.Stderr, "escribir %s: %v\n", path, err)
		os.Exit(1)
	}
	if err := w.WriteAll(rows); err != nil {
		fmt.Fprintf(os.Stderr, "escribir %s: %v\n", path, err)
		os.Exit(1)
	}
	w.Flush()
	if err := w.Error(); err != nil {
		fmt.Fprintf(os.Stderr, "escribir %s: %v\n", path, err)
		os.Exit(1)
	}
}
