// Package cache guarda proyecciones de inventario en Redis indexadas por revisión.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/jhoicas/stock-ledger-api/internal/application/inventory"
	domaininv "github.com/jhoicas/stock-ledger-api/internal/domain/inventory"
)

var _ inventory.ProjectionCache = (*RedisProjectionCache)(nil)

const keyPrefix = "inventory:projection:"

// Observer recibe aciertos y fallos del caché (métricas).
type Observer interface {
	CacheHit()
	CacheMiss()
	CacheError()
}

type noopObserver struct{}

func (noopObserver) CacheHit()   {}
func (noopObserver) CacheMiss()  {}
func (noopObserver) CacheError() {}

// RedisProjectionCache implementa inventory.ProjectionCache. Cada revisión se escribe una sola vez
// con la proyección completa; las entradas viejas expiran por TTL.
type RedisProjectionCache struct {
	rdb      *redis.Client
	ttl      time.Duration
	observer Observer
}

// NewRedisProjectionCache construye el caché. ttl <= 0 usa 10 minutos.
func NewRedisProjectionCache(rdb *redis.Client, ttl time.Duration, observer Observer) *RedisProjectionCache {
	if ttl <= 0 {
		ttl = 10 * time.Minute
	}
	if observer == nil {
		observer = noopObserver{}
	}
	return &RedisProjectionCache{rdb: rdb, ttl: ttl, observer: observer}
}

// Key clave Redis de una revisión.
func Key(revision int64) string {
	return fmt.Sprintf("%s%d", keyPrefix, revision)
}

// Get devuelve la proyección de la revisión. ok=false si no está en caché.
func (c *RedisProjectionCache) Get(ctx context.Context, revision int64) ([]domaininv.ProjectedItem, bool, error) {
	raw, err := c.rdb.Get(ctx, Key(revision)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			c.observer.CacheMiss()
			return nil, false, nil
		}
		c.observer.CacheError()
		return nil, false, fmt.Errorf("redis get: %w", err)
	}
	var rows []domaininv.ProjectedItem
	if err := json.Unmarshal(raw, &rows); err != nil {
		c.observer.CacheError()
		return nil, false, fmt.Errorf("decode projection: %w", err)
	}
	c.observer.CacheHit()
	return rows, true, nil
}

// Set guarda la proyección completa de la revisión.
func (c *RedisProjectionCache) Set(ctx context.Context, revision int64, rows []domaininv.ProjectedItem) error {
	raw, err := json.Marshal(rows)
	if err != nil {
		return fmt.Errorf("encode projection: %w", err)
	}
	if err := c.rdb.Set(ctx, Key(revision), raw, c.ttl).Err(); err != nil {
		c.observer.CacheError()
		return fmt.Errorf("redis set: %w", err)
	}
	return nil
}

// NewClient crea el cliente Redis y verifica la conexión.
func NewClient(ctx context.Context, addr, password string, db, poolSize int) (*redis.Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
		PoolSize: poolSize,
	})
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}
	return rdb, nil
}
