package http

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	appanalytics "github.com/hemovital/hemostock-api/internal/application/analytics"
	"github.com/hemovital/hemostock-api/internal/application/dto"
	"github.com/hemovital/hemostock-api/internal/domain"
)

// AnalyticsDefaults valores por defecto de los parámetros de consulta de
// analítica, cargados de la configuración.
type AnalyticsDefaults struct {
	LowStockThreshold int
	NearExpiryDays    int
	ForecastHorizon   int
}

// AnalyticsHandler maneja los endpoints de alertas y pronóstico.
type AnalyticsHandler struct {
	alertsUC   *appanalytics.AlertsUseCase
	forecastUC *appanalytics.ForecastUseCase
	defaults   AnalyticsDefaults
}

// NewAnalyticsHandler construye el handler.
func NewAnalyticsHandler(
	alertsUC *appanalytics.AlertsUseCase,
	forecastUC *appanalytics.ForecastUseCase,
	defaults AnalyticsDefaults,
) *AnalyticsHandler {
	return &AnalyticsHandler{alertsUC: alertsUC, forecastUC: forecastUC, defaults: defaults}
}

// LowStock godoc
// @Summary      Alerta de stock bajo por tipo de sangre
// @Description  Tipos de sangre cuyo total en el snapshot quedó bajo el umbral,
//               ordenados por criticidad. Solo se evalúan tipos con filas en el snapshot.
// @Tags         analytics
// @Security     Bearer
// @Produce      json
// @Param        threshold  query  int  false  "Umbral de unidades (default 5, mínimo 1)."
// @Success      200  {object}  dto.LowStockResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/analytics/low-stock [get]
func (h *AnalyticsHandler) LowStock(c *fiber.Ctx) error {
	var req dto.LowStockRequest
	if err := c.QueryParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Code: "INVALID_PARAMS", Message: "parámetros de consulta inválidos",
		})
	}

	threshold := h.defaults.LowStockThreshold
	if req.Threshold != "" {
		n, err := strconv.Atoi(req.Threshold)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
				Code: "INVALID_PARAM", Message: "threshold debe ser un entero",
			})
		}
		threshold = n
	}

	out, err := h.alertsUC.LowStock(c.Context(), threshold)
	if err != nil {
		if err == domain.ErrInvalidThreshold {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
				Code: "INVALID_PARAM", Message: err.Error(),
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Code: "INTERNAL", Message: "no se pudo evaluar el stock",
		})
	}

	return c.JSON(out)
}

// NearExpiry godoc
// @Summary      Filas de inventario próximas a vencer
// @Description  Filas del snapshot cuyo lote vigente más próximo vence dentro del
//               horizonte, ordenadas por días restantes.
// @Tags         analytics
// @Security     Bearer
// @Produce      json
// @Param        days  query  int     false  "Horizonte en días (default 7, mínimo 1)."
// @Param        date  query  string  false  "Fecha de evaluación YYYY-MM-DD. Default: hoy."
// @Success      200  {object}  dto.NearExpiryResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/analytics/near-expiry [get]
func (h *AnalyticsHandler) NearExpiry(c *fiber.Ctx) error {
	var req dto.NearExpiryRequest
	if err := c.QueryParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Code: "INVALID_PARAMS", Message: "parámetros de consulta inválidos",
		})
	}

	days := h.defaults.NearExpiryDays
	if req.Days != "" {
		n, err := strconv.Atoi(req.Days)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
				Code: "INVALID_PARAM", Message: "days debe ser un entero",
			})
		}
		days = n
	}

	evalDate, err := dateOrToday(req.Date)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Code: "INVALID_PARAM", Message: "date debe ser YYYY-MM-DD",
		})
	}

	out, err := h.alertsUC.NearExpiry(c.Context(), evalDate, days)
	if err != nil {
		if err == domain.ErrInvalidHorizon {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
				Code: "INVALID_PARAM", Message: err.Error(),
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Code: "INTERNAL", Message: "no se pudo evaluar los vencimientos",
		})
	}

	return c.JSON(out)
}

// Forecast godoc
// @Summary      Pronóstico de demanda por promedio móvil
// @Description  Serie histórica diaria de unidades solicitadas más una proyección
//               plana con el promedio móvil de los últimos 7 días.
// @Tags         analytics
// @Security     Bearer
// @Produce      json
// @Param        blood_type  query  string  false  "Filtro por tipo de sangre, ej. O-."
// @Param        component   query  string  false  "Filtro por componente: whole_blood, plasma o platelets."
// @Param        horizon     query  int     false  "Días a proyectar (default 7, mínimo 1)."
// @Success      200  {object}  dto.ForecastResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/analytics/forecast [get]
func (h *AnalyticsHandler) Forecast(c *fiber.Ctx) error {
	var req dto.ForecastRequest
	if err := c.QueryParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Code: "INVALID_PARAMS", Message: "parámetros de consulta inválidos",
		})
	}

	bloodType, ok := optBloodType(req.BloodType)
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Code: "INVALID_PARAM", Message: "blood_type desconocido: " + req.BloodType,
		})
	}
	component, ok := optComponent(req.Component)
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Code: "INVALID_PARAM", Message: "component desconocido: " + req.Component,
		})
	}

	horizon := h.defaults.ForecastHorizon
	if req.Horizon != "" {
		n, err := strconv.Atoi(req.Horizon)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
				Code: "INVALID_PARAM", Message: "horizon debe ser un entero",
			})
		}
		horizon = n
	}

	out, err := h.forecastUC.DemandForecast(c.Context(), bloodType, component, horizon)
	if err != nil {
		if err == domain.ErrInvalidHorizon {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
				Code: "INVALID_PARAM", Message: err.Error(),
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Code: "INTERNAL", Message: "no se pudo calcular el pronóstico",
		})
	}

	return c.JSON(out)
}
