package entity

import (
	"time"

	"github.com/hemovital/hemostock-api/internal/domain/blood"
)

// Donation representa una donación procesada en componentes.
// Invariante: ExpiryDate es estrictamente posterior a DonationDate.
type Donation struct {
	ID           string // formato DN######
	DonorID      string
	BloodType    blood.Type
	Component    blood.Component
	DonationDate time.Time
	ExpiryDate   time.Time
	Units        int // conteo de unidades, >= 0
	QCPass       bool
}

// ValidAt indica si la donación es vigente a la fecha de evaluación:
// pasó control de calidad y no está vencida (expiry >= eval).
func (d *Donation) ValidAt(eval time.Time) bool {
	return d.QCPass && !d.ExpiryDate.Before(eval)
}
