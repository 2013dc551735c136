package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/chatokay/chatokay-api/internal/application/dto"
	appsession "github.com/chatokay/chatokay-api/internal/application/session"
	"github.com/chatokay/chatokay-api/internal/application/usecase"
	"github.com/chatokay/chatokay-api/internal/domain"
	"github.com/chatokay/chatokay-api/pkg/logger"
)

// OnboardingHandler paso final del onboarding: el cliente crea su negocio y
// con eso su sesión pasa de onboarding a authenticated.
type OnboardingHandler struct {
	sessions   *appsession.UseCase
	businesses *usecase.BusinessUseCase
	log        *logger.Logger
}

func NewOnboardingHandler(sessions *appsession.UseCase, businesses *usecase.BusinessUseCase, log *logger.Logger) *OnboardingHandler {
	return &OnboardingHandler{sessions: sessions, businesses: businesses, log: log}
}

// CreateBusiness godoc
// @Summary      Crea el negocio del onboarding
// @Tags         onboarding
// @Accept       json
// @Produce      json
// @Param        request  body  dto.CreateBusinessRequest  true  "Datos del negocio"
// @Success      201  {object}  dto.BusinessResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      401  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/onboarding/business [post]
func (h *OnboardingHandler) CreateBusiness(c *fiber.Ctx) error {
	st := h.sessions.Resolve(c.Context(), GetExternalID(c), IsSignedIn(c))
	owner := st.User()
	if owner == nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "sesión requerida"})
	}

	var req dto.CreateBusinessRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if req.Name == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_INPUT", Message: "el nombre es obligatorio"})
	}

	b, err := h.businesses.CreateForOwner(c.Context(), owner, req, c.IP())
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrForbidden):
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "FORBIDDEN", Message: "solo los clientes crean negocios"})
		case errors.Is(err, domain.ErrConflict):
			return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "ALREADY_ONBOARDED", Message: "el usuario ya tiene un negocio"})
		case errors.Is(err, domain.ErrSubdomainTaken):
			return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "SUBDOMAIN_TAKEN", Message: "el subdominio ya está en uso"})
		case errors.Is(err, domain.ErrInvalidInput):
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_INPUT", Message: "subdominio inválido"})
		}
		h.log.Error().Err(err).Str("user_id", owner.ID).Msg("creación de negocio falló")
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL_ERROR", Message: "error interno"})
	}
	return c.Status(fiber.StatusCreated).JSON(h.businesses.ToResponse(b))
}
