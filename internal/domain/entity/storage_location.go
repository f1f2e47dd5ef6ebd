package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// StorageLocation representa un punto de almacenamiento (centro fijo o unidad
// móvil). Weight es el peso de asignación proporcional del motor de neteo;
// si todas las ubicaciones activas pesan cero, el reparto es uniforme.
type StorageLocation struct {
	ID        string // slug, ej. center_1, mobile_drive_1
	Name      string
	Weight    decimal.Decimal
	Active    bool
	CreatedAt time.Time
	UpdatedAt time.Time
}
