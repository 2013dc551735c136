package repository

import (
	"context"

	"github.com/chatokay/chatokay-api/internal/domain/entity"
)

// SubscriptionRepository puerto de persistencia para suscripciones.
type SubscriptionRepository interface {
	Create(ctx context.Context, s *entity.Subscription) error
	GetByUserID(ctx context.Context, userID string) (*entity.Subscription, error)
	GetByStripeCustomer(ctx context.Context, customerID string) (*entity.Subscription, error)
	GetByStripeSubscription(ctx context.Context, subscriptionID string) (*entity.Subscription, error)
	Update(ctx context.Context, s *entity.Subscription) error
}
