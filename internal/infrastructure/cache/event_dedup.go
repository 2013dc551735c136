package cache

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/chatokay/chatokay-api/pkg/logger"
)

// EventDedup marca ids de eventos webhook ya vistos (svix-id, event id de
// Stripe) para cortar replays sin tocar la DB. Es solo un fast path: la
// idempotencia real la garantizan los upserts first-write-wins, así que un
// Redis caído simplemente deja pasar el evento al camino idempotente.
type EventDedup struct {
	rdb *redis.Client
	ttl time.Duration
	log *logger.Logger
}

// NewEventDedup construye el deduplicador. El TTL debe superar la ventana de
// reintentos del proveedor (svix reintenta hasta ~1 día).
func NewEventDedup(rdb *redis.Client, ttl time.Duration, log *logger.Logger) *EventDedup {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &EventDedup{rdb: rdb, ttl: ttl, log: log}
}

// Seen marca el evento y reporta si ya estaba marcado. En error devuelve
// false: mejor reprocesar idempotentemente que descartar por un fallo de cache.
func (d *EventDedup) Seen(ctx context.Context, eventID string) bool {
	if d == nil || d.rdb == nil || eventID == "" {
		return false
	}
	ok, err := d.rdb.SetNX(ctx, "webhook:seen:"+eventID, 1, d.ttl).Result()
	if err != nil {
		d.log.Warn().Err(err).Str("event_id", eventID).Msg("dedup de eventos: setnx falló")
		return false
	}
	return !ok
}
