package dto

// DashboardSummaryDTO respuesta de GET /api/dashboard/summary.
// KPIs del banco más las vistas agrupadas que alimentan los widgets.
type DashboardSummaryDTO struct {
	// Conteos globales
	TotalDonors     int `json:"total_donors"`
	TotalDonations  int `json:"total_donations"`
	PendingRequests int `json:"pending_requests"`

	// Unidades disponibles según el último snapshot
	TotalUnitsAvailable int `json:"total_units_available"`

	// Vistas agrupadas (orden canónico)
	UnitsByTypeComponent []TypeComponentUnitsDTO `json:"units_by_type_component"`
	RequestsByStatus     []StatusCountDTO        `json:"requests_by_status"`
	RequestsByUrgency    []UrgencyCountDTO       `json:"requests_by_urgency"`

	// Marca de la última corrida del neteo; vacío si nunca corrió
	LastUpdated string `json:"last_updated,omitempty"` // RFC 3339
}

// TypeComponentUnitsDTO celda de la vista unidades por (tipo, componente).
type TypeComponentUnitsDTO struct {
	BloodType string `json:"blood_type"`
	Component string `json:"component"`
	Units     int    `json:"units"`
}

// StatusCountDTO conteo de solicitudes por estado.
type StatusCountDTO struct {
	Status string `json:"status"`
	Count  int    `json:"count"`
}

// UrgencyCountDTO conteo de solicitudes por urgencia.
type UrgencyCountDTO struct {
	Urgency string `json:"urgency"`
	Count   int    `json:"count"`
}

// DonationsOverTimeDTO respuesta de GET /api/dashboard/donations-over-time.
type DonationsOverTimeDTO struct {
	BloodType string        `json:"blood_type,omitempty"` // filtro aplicado, si hubo
	Series    []DayUnitsDTO `json:"series"`
	Meta      Meta          `json:"meta"`
}

// DayUnitsDTO unidades donadas en un día.
type DayUnitsDTO struct {
	Date  string `json:"date"` // YYYY-MM-DD
	Units int    `json:"units"`
}
