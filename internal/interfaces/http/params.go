package http

import (
	"time"

	"github.com/hemovital/hemostock-api/internal/domain/blood"
	"github.com/hemovital/hemostock-api/internal/domain/normalize"
)

// Helpers de parseo de query params tipados. Todos son opcionales: cadena
// vacía produce (nil, true); un valor fuera del conjunto canónico produce
// (nil, false) y el handler responde 400.

func optBloodType(s string) (*blood.Type, bool) {
	if s == "" {
		return nil, true
	}
	t, ok := blood.ParseType(s)
	if !ok {
		return nil, false
	}
	return &t, true
}

func optComponent(s string) (*blood.Component, bool) {
	if s == "" {
		return nil, true
	}
	comp, ok := blood.ParseComponent(s)
	if !ok {
		return nil, false
	}
	return &comp, true
}

func optStatus(s string) (*blood.RequestStatus, bool) {
	if s == "" {
		return nil, true
	}
	st, ok := blood.ParseStatus(s)
	if !ok {
		return nil, false
	}
	return &st, true
}

func optUrgency(s string) (*blood.Urgency, bool) {
	if s == "" {
		return nil, true
	}
	u, ok := blood.ParseUrgency(s)
	if !ok {
		return nil, false
	}
	return &u, true
}

// dateOrToday interpreta una fecha YYYY-MM-DD; vacía resuelve a hoy UTC.
// La fecha de evaluación por defecto se decide aquí, en el borde: los motores
// nunca llaman time.Now.
func dateOrToday(s string) (time.Time, error) {
	if s == "" {
		now := time.Now().UTC()
		return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC), nil
	}
	return time.Parse(normalize.DateLayout, s)
}
