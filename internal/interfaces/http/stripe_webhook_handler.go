package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/chatokay/chatokay-api/internal/application/billing"
	"github.com/chatokay/chatokay-api/internal/application/dto"
	"github.com/chatokay/chatokay-api/pkg/logger"
	"github.com/chatokay/chatokay-api/pkg/webhooksig"
)

// StripeWebhookHandler recibe los eventos del proveedor de pagos y los
// delega al despachador de suscripciones. Mismo contrato que el webhook de
// identidad: firma primero, 200 para lo desconocido, 500 para que reintente.
type StripeWebhookHandler struct {
	secret     string
	dispatcher *billing.Dispatcher
	dedup      eventDedup
	log        *logger.Logger
}

func NewStripeWebhookHandler(secret string, dispatcher *billing.Dispatcher, dedup eventDedup, log *logger.Logger) *StripeWebhookHandler {
	return &StripeWebhookHandler{secret: secret, dispatcher: dispatcher, dedup: dedup, log: log}
}

// Handle godoc
// @Summary      Webhook del proveedor de pagos
// @Tags         webhooks
// @Accept       json
// @Produce      json
// @Success      200  {object}  map[string]string
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/webhooks/stripe [post]
func (h *StripeWebhookHandler) Handle(c *fiber.Ctx) error {
	if h.secret == "" {
		webhookEvents.WithLabelValues("stripe", resultUnconfigured).Inc()
		h.log.Error().Msg("webhook de pagos sin secreto configurado")
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "WEBHOOK_UNCONFIGURED", Message: "secreto de firma no configurado"})
	}

	payload := c.Body()
	if err := webhooksig.VerifyStripe(h.secret, c.Get("stripe-signature"), payload, webhooksig.DefaultTolerance); err != nil {
		webhookEvents.WithLabelValues("stripe", resultRejected).Inc()
		h.log.Warn().Err(err).Msg("firma de webhook de pagos rechazada")
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_SIGNATURE", Message: "firma inválida"})
	}

	ev, err := billing.ParseEvent(payload)
	if err != nil {
		webhookEvents.WithLabelValues("stripe", resultRejected).Inc()
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_PAYLOAD", Message: "payload malformado"})
	}

	if h.dedup != nil && h.dedup.Seen(c.Context(), ev.ID) {
		webhookEvents.WithLabelValues("stripe", resultReplay).Inc()
		return c.JSON(fiber.Map{"received": true})
	}

	if err := h.dispatcher.Apply(c.Context(), ev); err != nil {
		webhookEvents.WithLabelValues("stripe", resultError).Inc()
		h.log.Error().Err(err).Str("type", ev.Type).Str("event_id", ev.ID).Msg("evento de pagos no aplicado")
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "EVENT_FAILED", Message: "error aplicando evento"})
	}
	webhookEvents.WithLabelValues("stripe", resultProcessed).Inc()
	return c.JSON(fiber.Map{"received": true})
}
