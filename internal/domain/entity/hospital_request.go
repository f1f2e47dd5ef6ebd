package entity

import (
	"time"

	"github.com/hemovital/hemostock-api/internal/domain/blood"
)

// HospitalRequest representa una solicitud de unidades por parte de un hospital.
// Invariante: FulfilledDate presente si y solo si Status == fulfilled,
// y en ese caso FulfilledDate >= RequestDate.
type HospitalRequest struct {
	ID             string // formato R#####
	Hospital       string // ej. hospital_7
	BloodType      blood.Type
	Component      blood.Component
	UnitsRequested int // >= 0
	RequestDate    time.Time
	Urgency        blood.Urgency
	Status         blood.RequestStatus
	FulfilledDate  *time.Time // nil cuando no aplica
}
