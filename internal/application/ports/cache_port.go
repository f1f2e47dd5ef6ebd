package ports

import "context"

// ViewCache define el puerto de salida para la caché de vistas de lectura
// (dashboard y analítica). Cualquier adaptador (Redis, memoria, no-op) debe
// implementar esta interfaz; la aplicación solo conoce este contrato.
//
// La caché es mejor-esfuerzo: un fallo de Get se trata como miss y un fallo
// de Set o Invalidate nunca debe abortar la operación que lo disparó.
type ViewCache interface {
	// Get deserializa en dest el valor cacheado bajo key.
	// Devuelve false si la llave no existe.
	Get(ctx context.Context, key string, dest any) (bool, error)

	// Set serializa value bajo key con el TTL configurado del adaptador.
	Set(ctx context.Context, key string, value any) error

	// Invalidate borra todas las vistas cacheadas. Se llama tras cada
	// ingesta o recálculo del snapshot.
	Invalidate(ctx context.Context) error
}
