package identity

import (
	"context"
	"time"

	"github.com/chatokay/chatokay-api/internal/domain/repository"
)

// TxRunner ejecuta el callback con repos atados a una misma transacción,
// de modo que el guard de existencia y el insert del upsert sean atómicos
// frente a entregas duplicadas concurrentes del webhook.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		users repository.UserRepository,
		subs repository.SubscriptionRepository,
	) error) error
}

// Scheduler programa un job diferido de un solo disparo. Fire-and-forget:
// Schedule retorna de inmediato y el job corre fuera de la latencia del webhook.
type Scheduler interface {
	Schedule(name string, delay time.Duration, fn func(ctx context.Context) error)
}
