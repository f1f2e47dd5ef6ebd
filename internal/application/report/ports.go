package report

import (
	"context"
	"time"

	"github.com/hemovital/hemostock-api/internal/domain/analytics"
	"github.com/hemovital/hemostock-api/internal/domain/entity"
)

// StockReportData todo lo que necesita el generador para armar el reporte:
// snapshot crudo más las vistas agregadas ya calculadas.
type StockReportData struct {
	GeneratedAt time.Time
	LastRun     *time.Time // nil si el neteo nunca ha corrido

	Rows []*entity.InventoryRow

	TotalUnits     int
	ByTypeComp     []analytics.TypeComponentUnits
	ByLocation     []analytics.LocationUnits
	LowStock       []analytics.LowStockAlert
	LowStockCutoff int // umbral usado para la sección de stock bajo
}

// StockPDFGenerator genera la representación PDF del reporte de inventario.
// La aplicación solo conoce este contrato; el adaptador vive en
// infrastructure/pdf.
type StockPDFGenerator interface {
	GenerateStockReport(ctx context.Context, data StockReportData) ([]byte, error)
}
