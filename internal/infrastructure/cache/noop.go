package cache

import (
	"context"

	"github.com/hemovital/hemostock-api/internal/application/ports"
)

var _ ports.ViewCache = Noop{}

// Noop es la caché que se usa cuando no hay Redis configurado: nunca acierta
// y acepta las escrituras sin guardarlas. Los casos de uso no distinguen
// entre caché deshabilitada y caché fría.
type Noop struct{}

func (Noop) Get(ctx context.Context, key string, dest any) (bool, error) { return false, nil }

func (Noop) Set(ctx context.Context, key string, value any) error { return nil }

func (Noop) Invalidate(ctx context.Context) error { return nil }
