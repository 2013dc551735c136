package entity

import "time"

// Estados de una Subscription (espejo de los estados del proveedor de pagos).
const (
	SubscriptionTrialing = "trialing"
	SubscriptionActive   = "active"
	SubscriptionPastDue  = "past_due"
	SubscriptionCanceled = "canceled"
)

// Subscription suscripción de un usuario client a la plataforma. La mutan
// únicamente el despachador de webhooks de pagos y el job de creación de trial.
type Subscription struct {
	ID                   string
	UserID               string
	StripeCustomerID     string
	StripeSubscriptionID string
	Plan                 string // price id del proveedor, o "trial"
	Status               string
	CurrentPeriodEnd     *time.Time
	TrialEndsAt          *time.Time
	CreatedAt            time.Time
	UpdatedAt            time.Time
}
