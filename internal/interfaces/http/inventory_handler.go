package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/hemovital/hemostock-api/internal/application/dto"
	"github.com/hemovital/hemostock-api/internal/application/etl"
	"github.com/hemovital/hemostock-api/internal/application/usecase"
	"github.com/hemovital/hemostock-api/internal/domain/repository"
)

// InventoryHandler expone el snapshot de inventario y su recálculo.
type InventoryHandler struct {
	listUC    *usecase.InventoryUseCase
	refreshUC *etl.RefreshUseCase
}

// NewInventoryHandler construye el handler.
func NewInventoryHandler(listUC *usecase.InventoryUseCase, refreshUC *etl.RefreshUseCase) *InventoryHandler {
	return &InventoryHandler{listUC: listUC, refreshUC: refreshUC}
}

// List godoc
// @Summary      Consultar snapshot de inventario
// @Description  Filas del último neteo en orden canónico (tipo, componente, ubicación).
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Param        blood_type  query  string  false  "Tipo de sangre (A+, O-, ...)"
// @Param        component   query  string  false  "Componente (whole_blood, plasma, platelets)"
// @Param        location    query  string  false  "Ubicación (center_1, ...)"
// @Success      200  {object}  dto.InventoryListResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/inventory [get]
func (h *InventoryHandler) List(c *fiber.Ctx) error {
	var f repository.InventoryFilter

	bt, ok := optBloodType(c.Query("blood_type"))
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_PARAM", Message: "blood_type desconocido: " + c.Query("blood_type")})
	}
	f.BloodType = bt

	comp, ok := optComponent(c.Query("component"))
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_PARAM", Message: "component desconocido: " + c.Query("component")})
	}
	f.Component = comp

	if loc := c.Query("location"); loc != "" {
		f.Location = &loc
	}

	out, err := h.listUC.List(c.Context(), f)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}

// Refresh godoc
// @Summary      Recalcular el snapshot
// @Description  Corre el neteo sobre los registros persistidos a la fecha de evaluación indicada (hoy si se omite).
// @Tags         inventory
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.RefreshRequest  false  "evaluation_date opcional (YYYY-MM-DD)"
// @Success      200   {object}  dto.SnapshotResultDTO
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/inventory/refresh [post]
func (h *InventoryHandler) Refresh(c *fiber.Ctx) error {
	var in dto.RefreshRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&in); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
		}
	}

	evalDate, err := dateOrToday(in.EvaluationDate)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_PARAM", Message: "evaluation_date debe ser YYYY-MM-DD"})
	}

	out, err := h.refreshUC.RecomputeSnapshot(c.Context(), evalDate)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}
