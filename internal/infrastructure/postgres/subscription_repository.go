package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/chatokay/chatokay-api/internal/domain"
	"github.com/chatokay/chatokay-api/internal/domain/entity"
	"github.com/chatokay/chatokay-api/internal/domain/repository"
)

var _ repository.SubscriptionRepository = (*SubscriptionRepo)(nil)

const subscriptionColumns = `id, user_id, stripe_customer_id, stripe_subscription_id, plan, status, current_period_end, trial_ends_at, created_at, updated_at`

// SubscriptionRepo implementación del puerto SubscriptionRepository sobre PostgreSQL.
type SubscriptionRepo struct {
	db querier
}

// NewSubscriptionRepository construye el adaptador de persistencia para suscripciones.
func NewSubscriptionRepository(db querier) *SubscriptionRepo {
	return &SubscriptionRepo{db: db}
}

// Create persiste una suscripción. user_id tiene constraint único: un usuario,
// una suscripción; devuelve domain.ErrDuplicate si pierde la carrera.
func (r *SubscriptionRepo) Create(ctx context.Context, s *entity.Subscription) error {
	query := `
		INSERT INTO subscriptions (id, user_id, stripe_customer_id, stripe_subscription_id, plan, status,
			current_period_end, trial_ends_at, created_at, updated_at)
		VALUES ($1, $2, NULLIF($3, ''), NULLIF($4, ''), $5, $6, $7, $8, $9, $10)`
	_, err := r.db.Exec(ctx, query,
		s.ID, s.UserID, s.StripeCustomerID, s.StripeSubscriptionID, s.Plan, s.Status,
		s.CurrentPeriodEnd, s.TrialEndsAt, s.CreatedAt, s.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert subscription: %w", err)
	}
	return nil
}

// GetByUserID obtiene la suscripción de un usuario.
func (r *SubscriptionRepo) GetByUserID(ctx context.Context, userID string) (*entity.Subscription, error) {
	return r.scanOne(ctx, `SELECT `+subscriptionColumns+` FROM subscriptions WHERE user_id = $1`, userID)
}

// GetByStripeCustomer obtiene la suscripción por customer id del proveedor.
func (r *SubscriptionRepo) GetByStripeCustomer(ctx context.Context, customerID string) (*entity.Subscription, error) {
	return r.scanOne(ctx, `SELECT `+subscriptionColumns+` FROM subscriptions WHERE stripe_customer_id = $1`, customerID)
}

// GetByStripeSubscription obtiene la suscripción por subscription id del proveedor.
func (r *SubscriptionRepo) GetByStripeSubscription(ctx context.Context, subscriptionID string) (*entity.Subscription, error) {
	return r.scanOne(ctx, `SELECT `+subscriptionColumns+` FROM subscriptions WHERE stripe_subscription_id = $1`, subscriptionID)
}

// Update actualiza una suscripción.
func (r *SubscriptionRepo) Update(ctx context.Context, s *entity.Subscription) error {
	query := `
		UPDATE subscriptions SET stripe_customer_id = NULLIF($2, ''), stripe_subscription_id = NULLIF($3, ''),
			plan = $4, status = $5, current_period_end = $6, trial_ends_at = $7, updated_at = $8
		WHERE id = $1`
	_, err := r.db.Exec(ctx, query,
		s.ID, s.StripeCustomerID, s.StripeSubscriptionID, s.Plan, s.Status,
		s.CurrentPeriodEnd, s.TrialEndsAt, s.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update subscription: %w", err)
	}
	return nil
}

func (r *SubscriptionRepo) scanOne(ctx context.Context, query string, args ...any) (*entity.Subscription, error) {
	var s entity.Subscription
	var customer, subscription *string
	err := r.db.QueryRow(ctx, query, args...).Scan(
		&s.ID, &s.UserID, &customer, &subscription, &s.Plan, &s.Status,
		&s.CurrentPeriodEnd, &s.TrialEndsAt, &s.CreatedAt, &s.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get subscription: %w", err)
	}
	s.StripeCustomerID = deref(customer)
	s.StripeSubscriptionID = deref(subscription)
	return &s, nil
}
