package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/hemovital/hemostock-api/internal/application/dto"
	"github.com/hemovital/hemostock-api/internal/application/usecase"
)

// RecordsHandler expone los listados de registros cargados por ETL:
// donantes, donaciones y solicitudes hospitalarias (solo lectura).
type RecordsHandler struct {
	uc *usecase.RecordsUseCase
}

// NewRecordsHandler construye el handler.
func NewRecordsHandler(uc *usecase.RecordsUseCase) *RecordsHandler {
	return &RecordsHandler{uc: uc}
}

// ListDonors godoc
// @Summary      Listar donantes
// @Tags         records
// @Security     Bearer
// @Produce      json
// @Param        limit   query  int  false  "Límite"   default(50)
// @Param        offset  query  int  false  "Offset"   default(0)
// @Success      200     {object}  dto.DonorListResponse
// @Router       /api/records/donors [get]
func (h *RecordsHandler) ListDonors(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_PARAMS", Message: "parámetros de consulta inválidos"})
	}
	out, err := h.uc.ListDonors(c.Context(), page)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}

// ListDonations godoc
// @Summary      Listar donaciones
// @Tags         records
// @Security     Bearer
// @Produce      json
// @Param        blood_type  query  string  false  "Filtro por tipo de sangre, ej. AB+."
// @Param        limit       query  int     false  "Límite"   default(50)
// @Param        offset      query  int     false  "Offset"   default(0)
// @Success      200         {object}  dto.DonationListResponse
// @Failure      400         {object}  dto.ErrorResponse
// @Router       /api/records/donations [get]
func (h *RecordsHandler) ListDonations(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_PARAMS", Message: "parámetros de consulta inválidos"})
	}
	bloodType, ok := optBloodType(c.Query("blood_type"))
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_PARAM", Message: "blood_type desconocido: " + c.Query("blood_type")})
	}
	out, err := h.uc.ListDonations(c.Context(), bloodType, page)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}

// ListRequests godoc
// @Summary      Listar solicitudes hospitalarias
// @Tags         records
// @Security     Bearer
// @Produce      json
// @Param        status   query  string  false  "Filtro por estado: pending, fulfilled o cancelled."
// @Param        urgency  query  string  false  "Filtro por urgencia: routine, urgent o emergency."
// @Param        limit    query  int     false  "Límite"   default(50)
// @Param        offset   query  int     false  "Offset"   default(0)
// @Success      200      {object}  dto.RequestListResponse
// @Failure      400      {object}  dto.ErrorResponse
// @Router       /api/records/requests [get]
func (h *RecordsHandler) ListRequests(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_PARAMS", Message: "parámetros de consulta inválidos"})
	}
	status, ok := optStatus(c.Query("status"))
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_PARAM", Message: "status desconocido: " + c.Query("status")})
	}
	urgency, ok := optUrgency(c.Query("urgency"))
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_PARAM", Message: "urgency desconocida: " + c.Query("urgency")})
	}
	out, err := h.uc.ListRequests(c.Context(), status, urgency, page)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}
