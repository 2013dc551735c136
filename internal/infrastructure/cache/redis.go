// Package cache adaptadores Redis: cache de tenants por subdominio y
// deduplicación de eventos webhook. Todo es best-effort: la fuente de verdad
// es PostgreSQL y un Redis caído nunca tumba una petición.
package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/chatokay/chatokay-api/pkg/config"
)

// NewClient conecta a Redis y verifica con un ping. cfg.Addr vacío devuelve
// (nil, nil): los consumidores tratan el cliente nil como cache deshabilitada.
func NewClient(ctx context.Context, cfg config.RedisConfig) (*redis.Client, error) {
	if cfg.Addr == "" {
		return nil, nil
	}
	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	if err := rdb.Ping(pingCtx).Err(); err != nil {
		return nil, fmt.Errorf("ping redis: %w", err)
	}
	return rdb, nil
}
