// Package cache implementa el puerto ViewCache sobre Redis. Las vistas del
// dashboard se sirven desde caché entre cargas; el TTL corto acota la ventana
// de datos viejos aun si una invalidación se pierde.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/hemovital/hemostock-api/internal/application/ports"
)

const (
	// keyPrefix separa las llaves de vistas de cualquier otro uso del mismo Redis.
	keyPrefix = "views:"
	// scanBatch es el tamaño de página del SCAN usado al invalidar.
	scanBatch = 100
)

var _ ports.ViewCache = (*RedisCache)(nil)

// RedisCache guarda vistas serializadas como JSON con TTL.
type RedisCache struct {
	client *redis.Client
	ttl    time.Duration
}

// Connect abre el cliente Redis y verifica la conexión con un ping antes de
// devolverlo.
func Connect(ctx context.Context, addr, password string, db int) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("cache: ping a Redis: %w", err)
	}
	return client, nil
}

// NewRedis construye la caché sobre un cliente ya conectado.
func NewRedis(client *redis.Client, ttl time.Duration) *RedisCache {
	return &RedisCache{client: client, ttl: ttl}
}

// Get deserializa la vista guardada bajo key en dest. Devuelve false sin
// error cuando la llave no existe.
func (c *RedisCache) Get(ctx context.Context, key string, dest any) (bool, error) {
	val, err := c.client.Get(ctx, keyPrefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("cache: get %s: %w", key, err)
	}
	if err := json.Unmarshal(val, dest); err != nil {
		return false, fmt.Errorf("cache: deserializar %s: %w", key, err)
	}
	return true, nil
}

// Set serializa la vista y la guarda con el TTL configurado.
func (c *RedisCache) Set(ctx context.Context, key string, value any) error {
	b, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("cache: serializar %s: %w", key, err)
	}
	if err := c.client.Set(ctx, keyPrefix+key, b, c.ttl).Err(); err != nil {
		return fmt.Errorf("cache: set %s: %w", key, err)
	}
	return nil
}

// Invalidate borra todas las llaves de vistas paginando con SCAN, sin
// bloquear Redis con un KEYS.
func (c *RedisCache) Invalidate(ctx context.Context) error {
	var cursor uint64
	for {
		keys, next, err := c.client.Scan(ctx, cursor, keyPrefix+"*", scanBatch).Result()
		if err != nil {
			return fmt.Errorf("cache: scan: %w", err)
		}
		if len(keys) > 0 {
			if err := c.client.Del(ctx, keys...).Err(); err != nil {
				return fmt.Errorf("cache: del: %w", err)
			}
		}
		cursor = next
		if cursor == 0 {
			return nil
		}
	}
}
