package http

import (
	"context"

	"github.com/gofiber/fiber/v2"

	"github.com/chatokay/chatokay-api/internal/application/dto"
	"github.com/chatokay/chatokay-api/internal/application/identity"
	"github.com/chatokay/chatokay-api/pkg/logger"
	"github.com/chatokay/chatokay-api/pkg/webhooksig"
)

// eventDedup contrato mínimo del deduplicador de eventos (lo implementa
// cache.EventDedup); interfaz para poder inyectar nil o un fake en tests.
type eventDedup interface {
	Seen(ctx context.Context, eventID string) bool
}

// ClerkWebhookHandler recibe los eventos de ciclo de vida del proveedor de
// identidad. Orden estricto: primero la firma, después todo lo demás — un
// payload sin verificar jamás llega al reconciliador.
type ClerkWebhookHandler struct {
	secret     string
	reconciler *identity.Reconciler
	dedup      eventDedup
	log        *logger.Logger
}

// NewClerkWebhookHandler construye el handler. dedup puede ser nil.
func NewClerkWebhookHandler(secret string, reconciler *identity.Reconciler, dedup eventDedup, log *logger.Logger) *ClerkWebhookHandler {
	return &ClerkWebhookHandler{secret: secret, reconciler: reconciler, dedup: dedup, log: log}
}

// Handle godoc
// @Summary      Webhook del proveedor de identidad
// @Tags         webhooks
// @Accept       json
// @Produce      json
// @Success      200  {object}  map[string]string
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/webhooks/clerk [post]
func (h *ClerkWebhookHandler) Handle(c *fiber.Ctx) error {
	if h.secret == "" {
		webhookEvents.WithLabelValues("clerk", resultUnconfigured).Inc()
		h.log.Error().Msg("webhook de identidad sin secreto configurado")
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "WEBHOOK_UNCONFIGURED", Message: "secreto de firma no configurado"})
	}

	headers := webhooksig.SvixHeaders{
		ID:        c.Get("svix-id"),
		Timestamp: c.Get("svix-timestamp"),
		Signature: c.Get("svix-signature"),
	}
	payload := c.Body()
	if err := webhooksig.VerifySvix(h.secret, headers, payload, webhooksig.DefaultTolerance); err != nil {
		webhookEvents.WithLabelValues("clerk", resultRejected).Inc()
		h.log.Warn().Err(err).Str("svix_id", headers.ID).Msg("firma de webhook de identidad rechazada")
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_SIGNATURE", Message: "firma inválida o headers ausentes"})
	}

	ev, err := identity.ParseEvent(payload)
	if err != nil {
		webhookEvents.WithLabelValues("clerk", resultRejected).Inc()
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_PAYLOAD", Message: "payload malformado"})
	}

	// Fast path de replays; la idempotencia real vive en el upsert.
	if h.dedup != nil && h.dedup.Seen(c.Context(), headers.ID) {
		webhookEvents.WithLabelValues("clerk", resultReplay).Inc()
		return c.JSON(fiber.Map{"status": "ok"})
	}

	switch ev.Type {
	case identity.EventUserCreated, identity.EventUserUpdated:
		if _, err := h.reconciler.SyncUser(c.Context(), ev); err != nil {
			webhookEvents.WithLabelValues("clerk", resultError).Inc()
			h.log.Error().Err(err).Str("type", ev.Type).Str("external_id", ev.User.ExternalID).Msg("sincronización de usuario falló")
			// 500 para que el proveedor reintente: el upsert es idempotente.
			return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "SYNC_FAILED", Message: "Error syncing user"})
		}
		webhookEvents.WithLabelValues("clerk", resultProcessed).Inc()
	default:
		webhookEvents.WithLabelValues("clerk", resultIgnored).Inc()
	}
	return c.JSON(fiber.Map{"status": "ok"})
}
