package dto

// ── Query parameters ──────────────────────────────────────────────────────────

// LowStockRequest parámetros para GET /api/analytics/low-stock.
type LowStockRequest struct {
	Threshold string `query:"threshold"` // umbral de unidades (default 5, mínimo 1)
}

// NearExpiryRequest parámetros para GET /api/analytics/near-expiry.
type NearExpiryRequest struct {
	Days string `query:"days"` // horizonte en días (default 7, mínimo 1)
	Date string `query:"date"` // fecha de evaluación YYYY-MM-DD; vacío = hoy
}

// ForecastRequest parámetros para GET /api/analytics/forecast.
type ForecastRequest struct {
	BloodType string `query:"blood_type"` // filtro opcional, ej. "O-"
	Component string `query:"component"`  // filtro opcional, ej. "plasma"
	Horizon   string `query:"horizon"`    // días a proyectar (default 7, mínimo 1)
}

// ── Stock bajo ────────────────────────────────────────────────────────────────

// LowStockAlertDTO tipo de sangre cuyo total en inventario quedó bajo el umbral.
type LowStockAlertDTO struct {
	BloodType  string `json:"blood_type"`
	TotalUnits int    `json:"total_units"`
}

// LowStockResponse respuesta de GET /api/analytics/low-stock, ordenada por
// criticidad (menos unidades primero).
type LowStockResponse struct {
	Threshold int                `json:"threshold"`
	Alerts    []LowStockAlertDTO `json:"alerts"`
	Meta      Meta               `json:"meta"`
}

// ── Próximos a vencer ─────────────────────────────────────────────────────────

// ExpiryRiskDTO fila de inventario cuyo lote más próximo vence dentro del
// horizonte consultado.
type ExpiryRiskDTO struct {
	BloodType      string `json:"blood_type"`
	Component      string `json:"component"`
	Location       string `json:"location"`
	UnitsAvailable int    `json:"units_available"`
	ExpiryDate     string `json:"expiry_date"` // YYYY-MM-DD
	DaysToExpiry   int    `json:"days_to_expiry"`
}

// NearExpiryResponse respuesta de GET /api/analytics/near-expiry.
type NearExpiryResponse struct {
	HorizonDays int             `json:"horizon_days"`
	Risks       []ExpiryRiskDTO `json:"risks"`
	Meta        Meta            `json:"meta"`
}

// ── Pronóstico de demanda ─────────────────────────────────────────────────────

// ForecastPointDTO un día de la serie de demanda: histórico reindexado o
// proyección plana al final.
type ForecastPointDTO struct {
	Date      string `json:"date"`             // YYYY-MM-DD
	Actual    *int   `json:"actual"`           // null en puntos proyectados
	MovingAvg string `json:"moving_avg"`       // promedio móvil, 2 decimales
	Projected bool   `json:"projected,omitempty"`
}

// ForecastResponse respuesta de GET /api/analytics/forecast.
type ForecastResponse struct {
	BloodType string             `json:"blood_type,omitempty"`
	Component string             `json:"component,omitempty"`
	Horizon   int                `json:"horizon_days"`
	Series    []ForecastPointDTO `json:"series"`
	Meta      Meta               `json:"meta"`
}
