// Package cache adaptador Redis para vistas agregadas (dashboard).
// Best-effort: un Redis caído degrada a consultar la BD, nunca rompe la request.
package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/protecta/crm-pro/internal/application/analytics"
	"github.com/redis/go-redis/v9"
)

var _ analytics.Cache = (*RedisCache)(nil)

// RedisCache implementa el puerto analytics.Cache sobre Redis.
type RedisCache struct {
	client *redis.Client
}

// NewRedisCache conecta a Redis y verifica con un ping.
func NewRedisCache(ctx context.Context, addr, password string, db int) (*RedisCache, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("ping redis: %w", err)
	}
	return &RedisCache{client: client}, nil
}

// Get devuelve el valor cacheado, o (nil, nil) si la clave no existe.
func (c *RedisCache) Get(ctx context.Context, key string) ([]byte, error) {
	raw, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, err
	}
	return raw, nil
}

// Set guarda el valor con TTL.
func (c *RedisCache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	return c.client.Set(ctx, key, value, ttl).Err()
}

// Delete borra la clave.
func (c *RedisCache) Delete(ctx context.Context, key string) error {
	return c.client.Del(ctx, key).Err()
}

// Close cierra la conexión.
func (c *RedisCache) Close() error {
	return c.client.Close()
}
