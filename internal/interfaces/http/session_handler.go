package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/chatokay/chatokay-api/internal/application/session"
)

// SessionHandler expone el estado de sesión derivado para el frontend.
type SessionHandler struct {
	sessions *session.UseCase
}

func NewSessionHandler(sessions *session.UseCase) *SessionHandler {
	return &SessionHandler{sessions: sessions}
}

// Get godoc
// @Summary      Estado de la sesión actual
// @Tags         session
// @Produce      json
// @Success      200  {object}  dto.SessionResponse
// @Router       /api/session [get]
func (h *SessionHandler) Get(c *fiber.Ctx) error {
	st := h.sessions.Resolve(c.Context(), GetExternalID(c), IsSignedIn(c))
	return c.JSON(session.Snapshot(st))
}
