package billing

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"

	"github.com/chatokay/chatokay-api/internal/domain/entity"
	"github.com/chatokay/chatokay-api/internal/domain/repository"
	"github.com/chatokay/chatokay-api/pkg/logger"
)

// Dispatcher aplica eventos de pagos sobre SubscriptionRepository.
// Cada handler es idempotente: reaplicar el mismo evento deja el mismo estado.
type Dispatcher struct {
	subs repository.SubscriptionRepository
	log  *logger.Logger
}

// NewDispatcher construye el despachador.
func NewDispatcher(subs repository.SubscriptionRepository, log *logger.Logger) *Dispatcher {
	return &Dispatcher{subs: subs, log: log}
}

// Apply despacha por tipo. Tipos desconocidos se confirman sin efectos para
// que el proveedor no reintente eternamente eventos que no nos interesan.
func (d *Dispatcher) Apply(ctx context.Context, ev *Event) error {
	switch ev.Type {
	case EventCheckoutCompleted:
		return d.applyCheckout(ctx, ev)
	case EventSubscriptionCreated, EventSubscriptionUpdated:
		return d.applySubscription(ctx, ev)
	case EventSubscriptionDeleted:
		return d.applyDeleted(ctx, ev)
	case EventInvoicePaid:
		return d.applyInvoice(ctx, ev, entity.SubscriptionActive)
	case EventInvoiceFailed:
		return d.applyInvoice(ctx, ev, entity.SubscriptionPastDue)
	default:
		d.log.Debug().Str("type", ev.Type).Str("event_id", ev.ID).Msg("evento de pagos ignorado")
		return nil
	}
}

// applyCheckout vincula la sesión de checkout completada con la suscripción
// del usuario (creada en el trial o aquí si aún no existe).
func (d *Dispatcher) applyCheckout(ctx context.Context, ev *Event) error {
	var cs checkoutSession
	if err := json.Unmarshal(ev.Data, &cs); err != nil {
		return err
	}
	if cs.ClientReferenceID == "" {
		d.log.Warn().Str("event_id", ev.ID).Msg("checkout sin client_reference_id, se ignora")
		return nil
	}

	sub, err := d.subs.GetByUserID(ctx, cs.ClientReferenceID)
	if err != nil {
		return err
	}
	now := time.Now()
	if sub == nil {
		return d.subs.Create(ctx, &entity.Subscription{
			ID:                   uuid.New().String(),
			UserID:               cs.ClientReferenceID,
			StripeCustomerID:     cs.Customer,
			StripeSubscriptionID: cs.Subscription,
			Status:               entity.SubscriptionActive,
			CreatedAt:            now,
			UpdatedAt:            now,
		})
	}
	sub.StripeCustomerID = cs.Customer
	sub.StripeSubscriptionID = cs.Subscription
	sub.Status = entity.SubscriptionActive
	sub.UpdatedAt = now
	return d.subs.Update(ctx, sub)
}

// applySubscription refleja created/updated: estado, plan y periodo.
func (d *Dispatcher) applySubscription(ctx context.Context, ev *Event) error {
	var so subscriptionObject
	if err := json.Unmarshal(ev.Data, &so); err != nil {
		return err
	}
	sub, err := d.findByStripe(ctx, so.ID, so.Customer)
	if err != nil || sub == nil {
		if sub == nil && err == nil {
			// Aún no hay registro local (checkout todavía en vuelo): el retry
			// del proveedor o el evento de checkout lo resolverá.
			d.log.Warn().Str("stripe_subscription", so.ID).Msg("suscripción sin registro local, se ignora")
		}
		return err
	}

	sub.StripeSubscriptionID = so.ID
	if so.Customer != "" {
		sub.StripeCustomerID = so.Customer
	}
	if st := mapStripeStatus(so.Status); st != "" {
		sub.Status = st
	}
	if len(so.Items.Data) > 0 && so.Items.Data[0].Price.ID != "" {
		sub.Plan = so.Items.Data[0].Price.ID
	}
	if so.CurrentPeriodEnd > 0 {
		t := time.Unix(so.CurrentPeriodEnd, 0)
		sub.CurrentPeriodEnd = &t
	}
	if so.TrialEnd > 0 {
		t := time.Unix(so.TrialEnd, 0)
		sub.TrialEndsAt = &t
	}
	sub.UpdatedAt = time.Now()
	return d.subs.Update(ctx, sub)
}

func (d *Dispatcher) applyDeleted(ctx context.Context, ev *Event) error {
	var so subscriptionObject
	if err := json.Unmarshal(ev.Data, &so); err != nil {
		return err
	}
	sub, err := d.findByStripe(ctx, so.ID, so.Customer)
	if err != nil || sub == nil {
		return err
	}
	sub.Status = entity.SubscriptionCanceled
	sub.UpdatedAt = time.Now()
	return d.subs.Update(ctx, sub)
}

func (d *Dispatcher) applyInvoice(ctx context.Context, ev *Event, status string) error {
	var inv invoiceObject
	if err := json.Unmarshal(ev.Data, &inv); err != nil {
		return err
	}
	sub, err := d.findByStripe(ctx, inv.Subscription, inv.Customer)
	if err != nil || sub == nil {
		return err
	}
	sub.Status = status
	sub.UpdatedAt = time.Now()
	return d.subs.Update(ctx, sub)
}

// findByStripe busca primero por id de suscripción y luego por customer.
func (d *Dispatcher) findByStripe(ctx context.Context, subscriptionID, customerID string) (*entity.Subscription, error) {
	if subscriptionID != "" {
		sub, err := d.subs.GetByStripeSubscription(ctx, subscriptionID)
		if err != nil || sub != nil {
			return sub, err
		}
	}
	if customerID != "" {
		return d.subs.GetByStripeCustomer(ctx, customerID)
	}
	return nil, nil
}

// mapStripeStatus estados del proveedor -> estados locales. Desconocido = "".
func mapStripeStatus(s string) string {
	switch s {
	case "trialing":
		return entity.SubscriptionTrialing
	case "active":
		return entity.SubscriptionActive
	case "past_due", "unpaid":
		return entity.SubscriptionPastDue
	case "canceled", "incomplete_expired":
		return entity.SubscriptionCanceled
	default:
		return ""
	}
}
