package entity

import (
	"time"

	"github.com/hemovital/hemostock-api/internal/domain/blood"
)

// InventoryRow es una fila del snapshot de inventario: unidades disponibles
// de un (tipo, componente) en una ubicación, a la fecha de la última corrida.
// El snapshot se reemplaza completo en cada corrida del motor de neteo.
type InventoryRow struct {
	BloodType      blood.Type
	Component      blood.Component
	Location       string // id de StorageLocation
	UnitsAvailable int    // >= 0
	LastUpdated    time.Time
}
