package entity

import "time"

// Roles válidos para User.
const (
	RoleAdmin    = "admin"
	RoleOperador = "operador" // opera ingestas, refresh y ubicaciones
	RoleAnalista = "analista" // solo lectura de vistas analíticas
)

// User representa un operador del sistema.
type User struct {
	ID           string // uuid
	Email        string
	PasswordHash string // bcrypt hash, nunca plano en dominio después de persistir
	Name         string
	Role         string // admin, operador, analista
	Status       string // active, inactive
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
