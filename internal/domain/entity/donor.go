package entity

import (
	"time"

	"github.com/hemovital/hemostock-api/internal/domain/blood"
)

// Donor representa un donante registrado del banco de sangre.
type Donor struct {
	ID        string // formato D#####
	Name      string
	DOB       time.Time // fecha de nacimiento, precisión de día
	BloodType blood.Type
	Contact   string
}
