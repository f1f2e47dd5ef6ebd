package dto

// InventoryRowDTO una fila del snapshot de inventario.
type InventoryRowDTO struct {
	BloodType      string `json:"blood_type"`
	Component      string `json:"component"`
	Location       string `json:"location"`
	UnitsAvailable int    `json:"units_available"`
	LastUpdated    string `json:"last_updated"` // RFC 3339
}

// InventoryListResponse respuesta de GET /api/inventory.
type InventoryListResponse struct {
	Rows []InventoryRowDTO `json:"rows"`
	Meta Meta              `json:"meta"`
}

// RefreshRequest cuerpo de POST /api/inventory/refresh.
// EvaluationDate en YYYY-MM-DD; vacío = hoy (resuelto en el borde HTTP).
type RefreshRequest struct {
	EvaluationDate string `json:"evaluation_date"`
}

// GroupFailureDTO grupo (tipo, componente) que no pudo asignarse en la corrida.
type GroupFailureDTO struct {
	BloodType string `json:"blood_type"`
	Component string `json:"component"`
	Error     string `json:"error"`
}

// SnapshotResultDTO resultado de una corrida del neteo (refresh o ingesta).
type SnapshotResultDTO struct {
	EvaluationDate string            `json:"evaluation_date"` // YYYY-MM-DD
	RunAt          string            `json:"run_at"`          // RFC 3339
	RowsWritten    int               `json:"rows_written"`
	Failures       []GroupFailureDTO `json:"failures,omitempty"`
}

// IngestResultDTO resultado de POST /api/ingest: conteos por tabla más la
// corrida de neteo que cierra la ingesta.
type IngestResultDTO struct {
	Donors    int               `json:"donors"`
	Donations int               `json:"donations"`
	Requests  int               `json:"requests"`
	Snapshot  SnapshotResultDTO `json:"snapshot"`
}
