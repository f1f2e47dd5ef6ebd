package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateLocationRequest entrada para crear una ubicación de almacenamiento.
// ID es un slug estable (ej. "center_4", "mobile_drive_2").
type CreateLocationRequest struct {
	ID     string          `json:"id" validate:"required,min=1,max=100"`
	Name   string          `json:"name" validate:"required,min=1,max=200"`
	Weight decimal.Decimal `json:"weight"` // peso de asignación, >= 0
	Active *bool           `json:"active"` // default true
}

// UpdateLocationRequest entrada para actualizar una ubicación.
type UpdateLocationRequest struct {
	Name   *string          `json:"name" validate:"omitempty,min=1,max=200"`
	Weight *decimal.Decimal `json:"weight"`
	Active *bool            `json:"active"`
}

// LocationResponse salida de una ubicación.
type LocationResponse struct {
	ID        string          `json:"id"`
	Name      string          `json:"name"`
	Weight    decimal.Decimal `json:"weight"`
	Active    bool            `json:"active"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// LocationListResponse lista de ubicaciones ordenadas por id.
type LocationListResponse struct {
	Items []LocationResponse `json:"items"`
}
