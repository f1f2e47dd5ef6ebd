package http

import (
	"fmt"

	"github.com/gofiber/fiber/v2"

	"github.com/hemovital/hemostock-api/internal/application/dto"
	"github.com/hemovital/hemostock-api/internal/application/report"
)

// ReportHandler expone la descarga del reporte PDF de inventario.
type ReportHandler struct {
	uc *report.PDFUseCase
}

// NewReportHandler construye el handler.
func NewReportHandler(uc *report.PDFUseCase) *ReportHandler {
	return &ReportHandler{uc: uc}
}

// DownloadStockReport godoc
// @Summary      Descargar reporte PDF de inventario
// @Description  Snapshot completo con totales por grupo sanguíneo, por ubicación
//               y alertas de stock bajo, como PDF descargable.
// @Tags         reportes
// @Security     Bearer
// @Produce      application/pdf
// @Success      200  {file}    file
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/reports/inventory.pdf [get]
func (h *ReportHandler) DownloadStockReport(c *fiber.Ctx) error {
	pdfBytes, filename, err := h.uc.DownloadStockReport(c.Context())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: "no se pudo generar el reporte"})
	}

	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", filename))
	return c.Send(pdfBytes)
}
