package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/chatokay/chatokay-api/internal/application/dto"
	"github.com/chatokay/chatokay-api/internal/application/usecase"
	"github.com/chatokay/chatokay-api/pkg/logger"
)

// CancelHandler página pública de cancelación por token. El token es la única
// credencial: no exige sesión. Token desconocido y cita ya cancelada son
// estados terminales con 200, nunca errores.
type CancelHandler struct {
	appointments *usecase.AppointmentUseCase
	log          *logger.Logger
}

func NewCancelHandler(appointments *usecase.AppointmentUseCase, log *logger.Logger) *CancelHandler {
	return &CancelHandler{appointments: appointments, log: log}
}

// Lookup godoc
// @Summary      Consulta el estado de un token de cancelación
// @Tags         cancel
// @Produce      json
// @Param        token  path  string  true  "Token de cancelación"
// @Success      200  {object}  dto.CancelResponse
// @Router       /api/cancel/{token} [get]
func (h *CancelHandler) Lookup(c *fiber.Ctx) error {
	resp, err := h.appointments.LookupByToken(c.Context(), c.Params("token"))
	if err != nil {
		h.log.Error().Err(err).Msg("consulta de token de cancelación falló")
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL_ERROR", Message: "error interno"})
	}
	return c.JSON(resp)
}

// Cancel godoc
// @Summary      Cancela la cita del token (irreversible)
// @Tags         cancel
// @Produce      json
// @Param        token  path  string  true  "Token de cancelación"
// @Success      200  {object}  dto.CancelResponse
// @Router       /api/cancel/{token} [post]
func (h *CancelHandler) Cancel(c *fiber.Ctx) error {
	resp, err := h.appointments.CancelByToken(c.Context(), c.Params("token"))
	if err != nil {
		h.log.Error().Err(err).Msg("cancelación por token falló")
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL_ERROR", Message: "error interno"})
	}
	return c.JSON(resp)
}
