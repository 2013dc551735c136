package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/chatokay/chatokay-api/internal/application/usecase"
	"github.com/chatokay/chatokay-api/internal/domain/entity"
	"github.com/chatokay/chatokay-api/pkg/logger"
)

var _ usecase.TenantCache = (*TenantCache)(nil)

// TenantCache cache Redis de Business por subdominio (lookup caliente del
// middleware de subdominios y del endpoint público de tenants).
type TenantCache struct {
	rdb *redis.Client
	ttl time.Duration
	log *logger.Logger
}

// NewTenantCache construye la cache. TTL corto: la invalidación explícita
// cubre las ediciones, el TTL cubre lo demás.
func NewTenantCache(rdb *redis.Client, ttl time.Duration, log *logger.Logger) *TenantCache {
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	return &TenantCache{rdb: rdb, ttl: ttl, log: log}
}

func tenantKey(subdomain string) string { return "tenant:" + subdomain }

// Get devuelve el tenant cacheado; (nil, false) en miss o error.
func (c *TenantCache) Get(ctx context.Context, subdomain string) (*entity.Business, bool) {
	raw, err := c.rdb.Get(ctx, tenantKey(subdomain)).Bytes()
	if err != nil {
		if err != redis.Nil {
			c.log.Warn().Err(err).Str("subdomain", subdomain).Msg("cache de tenant: get falló")
		}
		return nil, false
	}
	var b entity.Business
	if err := json.Unmarshal(raw, &b); err != nil {
		c.log.Warn().Err(err).Str("subdomain", subdomain).Msg("cache de tenant: entrada corrupta")
		return nil, false
	}
	return &b, true
}

// Set guarda el tenant. Errores solo se registran.
func (c *TenantCache) Set(ctx context.Context, b *entity.Business) {
	raw, err := json.Marshal(b)
	if err != nil {
		return
	}
	if err := c.rdb.Set(ctx, tenantKey(b.Subdomain), raw, c.ttl).Err(); err != nil {
		c.log.Warn().Err(err).Str("subdomain", b.Subdomain).Msg("cache de tenant: set falló")
	}
}

// Invalidate borra la entrada tras una edición del negocio.
func (c *TenantCache) Invalidate(ctx context.Context, subdomain string) {
	if err := c.rdb.Del(ctx, tenantKey(subdomain)).Err(); err != nil {
		c.log.Warn().Err(err).Str("subdomain", subdomain).Msg("cache de tenant: invalidación falló")
	}
}
