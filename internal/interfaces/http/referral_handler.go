package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/chatokay/chatokay-api/internal/application/dto"
	"github.com/chatokay/chatokay-api/internal/application/usecase"
	"github.com/chatokay/chatokay-api/internal/domain"
	"github.com/chatokay/chatokay-api/pkg/logger"
)

// ReferralHandler área comercial: métricas de referidos del vendedor.
type ReferralHandler struct {
	referrals *usecase.ReferralUseCase
	log       *logger.Logger
}

func NewReferralHandler(referrals *usecase.ReferralUseCase, log *logger.Logger) *ReferralHandler {
	return &ReferralHandler{referrals: referrals, log: log}
}

// Stats godoc
// @Summary      Estadísticas de referidos del usuario staff
// @Tags         comercial
// @Produce      json
// @Success      200  {object}  dto.ReferralStatsResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Router       /api/comercial/referrals [get]
func (h *ReferralHandler) Stats(c *fiber.Ctx) error {
	st := GetSessionState(c)
	var resp *dto.ReferralStatsResponse
	var err error
	if st != nil {
		resp, err = h.referrals.StatsFor(c.Context(), st.User())
	} else {
		err = domain.ErrForbidden
	}
	if err != nil {
		if errors.Is(err, domain.ErrForbidden) {
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "FORBIDDEN", Message: "solo el equipo comercial emite códigos"})
		}
		h.log.Error().Err(err).Msg("estadísticas de referidos fallaron")
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL_ERROR", Message: "error interno"})
	}
	return c.JSON(resp)
}
