// Package billing aplica los eventos del proveedor de pagos sobre las
// suscripciones. La corrección del cobro es del proveedor; aquí solo se
// refleja su estado de forma idempotente.
package billing

import (
	"encoding/json"
	"fmt"
)

// Tipos de evento despachados. Los demás se confirman con 200 y se ignoran.
const (
	EventCheckoutCompleted   = "checkout.session.completed"
	EventSubscriptionCreated = "customer.subscription.created"
	EventSubscriptionUpdated = "customer.subscription.updated"
	EventSubscriptionDeleted = "customer.subscription.deleted"
	EventInvoicePaid         = "invoice.payment_succeeded"
	EventInvoiceFailed       = "invoice.payment_failed"
)

// Event evento de pagos ya parseado (la firma se verificó antes).
type Event struct {
	ID   string          `json:"id"`
	Type string          `json:"type"`
	Data json.RawMessage // objeto interno, se decodifica según el tipo
}

type wireStripeEvent struct {
	ID   string `json:"id"`
	Type string `json:"type"`
	Data struct {
		Object json.RawMessage `json:"object"`
	} `json:"data"`
}

// ParseEvent decodifica el sobre del evento.
func ParseEvent(payload []byte) (*Event, error) {
	var w wireStripeEvent
	if err := json.Unmarshal(payload, &w); err != nil {
		return nil, fmt.Errorf("billing: payload malformado: %w", err)
	}
	if w.ID == "" || w.Type == "" {
		return nil, fmt.Errorf("billing: evento sin id o tipo")
	}
	return &Event{ID: w.ID, Type: w.Type, Data: w.Data.Object}, nil
}

// checkoutSession campos usados de checkout.session.completed.
type checkoutSession struct {
	Customer          string `json:"customer"`
	Subscription      string `json:"subscription"`
	ClientReferenceID string `json:"client_reference_id"` // nuestro user id
}

// subscriptionObject campos usados de customer.subscription.*.
type subscriptionObject struct {
	ID               string `json:"id"`
	Customer         string `json:"customer"`
	Status           string `json:"status"`
	CurrentPeriodEnd int64  `json:"current_period_end"` // epoch segundos
	TrialEnd         int64  `json:"trial_end"`
	Items            struct {
		Data []struct {
			Price struct {
				ID string `json:"id"`
			} `json:"price"`
		} `json:"data"`
	} `json:"items"`
}

// invoiceObject campos usados de invoice.payment_*.
type invoiceObject struct {
	Customer     string `json:"customer"`
	Subscription string `json:"subscription"`
}
