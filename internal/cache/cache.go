// Package cache provee una abstracción chica de cache con backends
// memory (in-process, dev/testing) y redis (producción).
//
// En este servicio el cache guarda marcas de un solo uso (anti-replay de
// authorization requests); no cachea identidades ni tokens.
package cache

import (
	"context"
	"errors"
	"fmt"
	"time"
)

var ErrNotFound = errors.New("cache: not found")

// Client define las operaciones de cache.
type Client interface {
	// Get obtiene un valor. Retorna ErrNotFound si no existe.
	Get(ctx context.Context, key string) (string, error)

	// Set guarda un valor con TTL. Si ttl es 0, no expira.
	Set(ctx context.Context, key, value string, ttl time.Duration) error

	// SetNX guarda solo si la key no existía. Retorna true si escribió.
	SetNX(ctx context.Context, key, value string, ttl time.Duration) (bool, error)

	// Delete elimina una key (idempotente).
	Delete(ctx context.Context, key string) error

	// Ping verifica la conexión.
	Ping(ctx context.Context) error

	Close() error
}

// Config selecciona e inicializa un backend.
type Config struct {
	Kind   string // "memory" | "redis"
	Prefix string

	Redis struct {
		Addr string
		DB   int
	}
}

// New crea el cliente según cfg.Kind. Default: memory.
func New(cfg Config) (Client, error) {
	switch cfg.Kind {
	case "", "memory":
		return NewMemory(cfg.Prefix), nil
	case "redis":
		return NewRedis(cfg.Redis.Addr, cfg.Redis.DB, cfg.Prefix), nil
	default:
		return nil, fmt.Errorf("cache: kind desconocido %q", cfg.Kind)
	}
}
