package http

import (
	"github.com/gofiber/fiber/v2"

	appanalytics "github.com/hemovital/hemostock-api/internal/application/analytics"
	"github.com/hemovital/hemostock-api/internal/application/dto"
)

// DashboardHandler maneja los endpoints del módulo de Dashboard.
type DashboardHandler struct {
	uc *appanalytics.DashboardUseCase
}

// NewDashboardHandler construye el handler.
func NewDashboardHandler(uc *appanalytics.DashboardUseCase) *DashboardHandler {
	return &DashboardHandler{uc: uc}
}

// GetSummary devuelve el resumen operativo del banco de sangre.
// GET /api/dashboard/summary
//
// Respuesta: DashboardSummaryDTO (total_donors, total_donations, total_requests,
// qc_pass_rate, fulfillment_rate, last_run). Sin registros cargados responde
// ceros con meta.no_data.
func (h *DashboardHandler) GetSummary(c *fiber.Ctx) error {
	summary, err := h.uc.GetSummary(c.Context())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Code: "INTERNAL", Message: err.Error(),
		})
	}

	return c.JSON(summary)
}

// GetDonationsOverTime devuelve la serie diaria de unidades donadas.
// GET /api/dashboard/donations-over-time?blood_type=O+
//
// blood_type es opcional; sin él la serie agrega todos los grupos. Los días
// sin donaciones dentro del rango aparecen con cero unidades.
func (h *DashboardHandler) GetDonationsOverTime(c *fiber.Ctx) error {
	bloodType, ok := optBloodType(c.Query("blood_type"))
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Code: "INVALID_PARAM", Message: "blood_type desconocido: " + c.Query("blood_type"),
		})
	}

	series, err := h.uc.GetDonationsOverTime(c.Context(), bloodType)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Code: "INTERNAL", Message: err.Error(),
		})
	}

	return c.JSON(series)
}
