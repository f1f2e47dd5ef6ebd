package domain

import (
	"errors"
	"fmt"

	"github.com/hemovital/hemostock-api/internal/domain/blood"
)

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound           = errors.New("recurso no encontrado")
	ErrUserNotFound       = errors.New("usuario no encontrado")
	ErrEmailAlreadyExists = errors.New("el email ya está registrado")
	ErrInvalidCredentials = errors.New("credenciales inválidas")
	ErrInvalidInput       = errors.New("entrada inválida")
	ErrDuplicate          = errors.New("recurso duplicado")
	ErrUnauthorized       = errors.New("no autorizado")
	ErrForbidden          = errors.New("acceso denegado")

	// ErrValidation categoría de los errores de normalización de registros.
	// Los errores tipados de abajo lo envuelven; errors.Is(err, ErrValidation)
	// identifica cualquier fallo de validación de entrada.
	ErrValidation = errors.New("registro inválido")

	// ErrInvalidThreshold umbral de stock bajo fuera de rango (debe ser >= 1).
	ErrInvalidThreshold = errors.New("umbral inválido: debe ser >= 1")
	// ErrInvalidHorizon horizonte de proyección fuera de rango (debe ser >= 1).
	ErrInvalidHorizon = errors.New("horizonte inválido: debe ser >= 1")
)

// MalformedDateError indica una fecha no parseable durante la normalización.
// La normalización falla cerrada: el lote completo de la tabla se descarta.
type MalformedDateError struct {
	Table string // donors | donations | hospital_requests
	Row   int    // fila de datos, 1-based (sin contar el header)
	Field string
	Value string
}

func (e *MalformedDateError) Error() string {
	return fmt.Sprintf("%s fila %d: fecha malformada en %s: %q", e.Table, e.Row, e.Field, e.Value)
}

func (e *MalformedDateError) Unwrap() error { return ErrValidation }

// InvalidQuantityError indica un conteo de unidades negativo o no entero.
type InvalidQuantityError struct {
	Table string
	Row   int
	Field string
	Value string
}

func (e *InvalidQuantityError) Error() string {
	return fmt.Sprintf("%s fila %d: cantidad inválida en %s: %q", e.Table, e.Row, e.Field, e.Value)
}

func (e *InvalidQuantityError) Unwrap() error { return ErrValidation }

// InvalidValueError indica un valor fuera del conjunto canónico (tipo de sangre,
// componente, urgencia, estado) o una violación de invariante entre campos.
type InvalidValueError struct {
	Table  string
	Row    int
	Field  string
	Value  string
	Reason string
}

func (e *InvalidValueError) Error() string {
	if e.Reason != "" {
		return fmt.Sprintf("%s fila %d: valor inválido en %s: %q (%s)", e.Table, e.Row, e.Field, e.Value, e.Reason)
	}
	return fmt.Sprintf("%s fila %d: valor inválido en %s: %q", e.Table, e.Row, e.Field, e.Value)
}

func (e *InvalidValueError) Unwrap() error { return ErrValidation }

// NoLocationConfiguredError indica que un grupo (tipo, componente) tiene
// donaciones vigentes pero no hay ubicaciones activas donde asignarlas.
// Es fatal solo para las filas de ese grupo; los demás grupos continúan.
type NoLocationConfiguredError struct {
	BloodType blood.Type
	Component blood.Component
}

func (e *NoLocationConfiguredError) Error() string {
	return fmt.Sprintf("sin ubicaciones activas configuradas para %s/%s", e.BloodType, e.Component)
}
