package dto

// ── Registros crudos cargados por ETL ─────────────────────────────────────────

// DonorDTO donante registrado.
type DonorDTO struct {
	DonorID   string `json:"donor_id"`
	Name      string `json:"name"`
	DOB       string `json:"dob"` // YYYY-MM-DD
	BloodType string `json:"blood_type"`
	Contact   string `json:"contact"`
}

// DonationDTO donación individual con su estado de control de calidad.
type DonationDTO struct {
	DonationID   string `json:"donation_id"`
	DonorID      string `json:"donor_id"`
	BloodType    string `json:"blood_type"`
	Component    string `json:"component"`
	DonationDate string `json:"donation_date"` // YYYY-MM-DD
	ExpiryDate   string `json:"expiry_date"`   // YYYY-MM-DD
	Units        int    `json:"units"`
	QCPass       bool   `json:"qc_pass"`
}

// RequestDTO solicitud hospitalaria de unidades.
type RequestDTO struct {
	RequestID      string `json:"request_id"`
	Hospital       string `json:"hospital"`
	BloodType      string `json:"blood_type"`
	Component      string `json:"component"`
	UnitsRequested int    `json:"units_requested"`
	RequestDate    string `json:"request_date"` // YYYY-MM-DD
	Urgency        string `json:"urgency"`
	Status         string `json:"status"`
	FulfilledDate  string `json:"fulfilled_date,omitempty"` // YYYY-MM-DD, solo fulfilled
}

// DonorListResponse lista paginada de donantes.
type DonorListResponse struct {
	Items []DonorDTO   `json:"items"`
	Page  PageResponse `json:"page"`
}

// DonationListResponse lista paginada de donaciones.
type DonationListResponse struct {
	Items []DonationDTO `json:"items"`
	Page  PageResponse  `json:"page"`
}

// RequestListResponse lista paginada de solicitudes.
type RequestListResponse struct {
	Items []RequestDTO `json:"items"`
	Page  PageResponse `json:"page"`
}
