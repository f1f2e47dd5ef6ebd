// Package report arma el reporte PDF de inventario: snapshot, vistas
// agregadas y alertas de stock bajo, delegando el dibujo en un generador.
package report

import (
	"context"
	"fmt"
	"time"

	"github.com/hemovital/hemostock-api/internal/domain/analytics"
	"github.com/hemovital/hemostock-api/internal/domain/repository"
)

// PDFUseCase genera la representación gráfica (PDF) del estado del inventario.
type PDFUseCase struct {
	inventoryRepo repository.InventoryRepository
	analyticsRepo repository.AnalyticsRepository
	generator     StockPDFGenerator
	threshold     int // umbral de stock bajo para la sección de alertas
}

// NewPDFUseCase construye el caso de uso inyectando todas sus dependencias.
func NewPDFUseCase(
	inventoryRepo repository.InventoryRepository,
	analyticsRepo repository.AnalyticsRepository,
	generator StockPDFGenerator,
	lowStockThreshold int,
) *PDFUseCase {
	return &PDFUseCase{
		inventoryRepo: inventoryRepo,
		analyticsRepo: analyticsRepo,
		generator:     generator,
		threshold:     lowStockThreshold,
	}
}

// DownloadStockReport recupera el snapshot, calcula las vistas agregadas y
// genera el PDF.
//
// Retorna:
//   - (pdfBytes, filename, nil) si todo sale bien.
//   - domain.ErrInvalidThreshold si el umbral configurado es inválido.
func (uc *PDFUseCase) DownloadStockReport(
	ctx context.Context,
) (pdfBytes []byte, filename string, err error) {
	// ── 1. Cargar snapshot ────────────────────────────────────────────────────
	rows, err := uc.inventoryRepo.ListAll(ctx)
	if err != nil {
		return nil, "", fmt.Errorf("report: listar snapshot: %w", err)
	}
	lastRun, err := uc.analyticsRepo.SnapshotLastUpdated(ctx)
	if err != nil {
		return nil, "", fmt.Errorf("report: última corrida: %w", err)
	}

	// ── 2. Vistas agregadas sobre el snapshot ─────────────────────────────────
	lowStock, err := analytics.LowStock(rows, uc.threshold)
	if err != nil {
		return nil, "", err
	}
	total := 0
	for _, r := range rows {
		total += r.UnitsAvailable
	}

	now := time.Now()
	data := StockReportData{
		GeneratedAt:    now,
		LastRun:        lastRun,
		Rows:           rows,
		TotalUnits:     total,
		ByTypeComp:     analytics.UnitsByTypeComponent(rows),
		ByLocation:     analytics.UnitsByLocation(rows),
		LowStock:       lowStock,
		LowStockCutoff: uc.threshold,
	}

	// ── 3. Generar PDF ────────────────────────────────────────────────────────
	pdfBytes, err = uc.generator.GenerateStockReport(ctx, data)
	if err != nil {
		return nil, "", fmt.Errorf("report: generación fallida: %w", err)
	}

	filename = fmt.Sprintf("inventario_%s.pdf", now.Format("2006-01-02"))
	return pdfBytes, filename, nil
}
