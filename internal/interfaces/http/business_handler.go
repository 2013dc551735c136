package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/chatokay/chatokay-api/internal/application/dto"
	"github.com/chatokay/chatokay-api/internal/application/usecase"
	"github.com/chatokay/chatokay-api/internal/domain"
	"github.com/chatokay/chatokay-api/pkg/logger"
	"github.com/chatokay/chatokay-api/pkg/slug"
)

// BusinessHandler endpoints públicos de tenant: resolución por subdominio y
// la página del negocio que sirve el chatbot.
type BusinessHandler struct {
	businesses *usecase.BusinessUseCase
	services   *usecase.ServiceUseCase
	log        *logger.Logger
}

func NewBusinessHandler(businesses *usecase.BusinessUseCase, services *usecase.ServiceUseCase, log *logger.Logger) *BusinessHandler {
	return &BusinessHandler{businesses: businesses, services: services, log: log}
}

// GetBySubdomain godoc
// @Summary      Resuelve un tenant por subdominio
// @Tags         business
// @Produce      json
// @Param        subdomain  path  string  true  "Subdominio del negocio"
// @Success      200  {object}  dto.BusinessResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/business/{subdomain} [get]
func (h *BusinessHandler) GetBySubdomain(c *fiber.Ctx) error {
	sub := c.Params("subdomain")
	if sub == "" || !slug.Valid(sub) {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_SUBDOMAIN", Message: "subdominio inválido"})
	}

	b, err := h.businesses.GetBySubdomain(c.Context(), sub)
	if err != nil {
		if errors.Is(err, domain.ErrBusinessNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "BUSINESS_NOT_FOUND", Message: "negocio no encontrado"})
		}
		h.log.Error().Err(err).Str("subdomain", sub).Msg("lookup de tenant falló")
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL_ERROR", Message: "error interno"})
	}
	return c.JSON(h.businesses.ToResponse(b))
}

// TenantPage godoc
// @Summary      Página pública del tenant (negocio + servicios activos)
// @Tags         business
// @Produce      json
// @Param        subdomain  path  string  true  "Subdominio del negocio"
// @Success      200  {object}  map[string]interface{}
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /t/{subdomain} [get]
func (h *BusinessHandler) TenantPage(c *fiber.Ctx) error {
	sub := c.Params("subdomain")
	if sub == "" || !slug.Valid(sub) {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_SUBDOMAIN", Message: "subdominio inválido"})
	}

	b, err := h.businesses.GetBySubdomain(c.Context(), sub)
	if err != nil {
		if errors.Is(err, domain.ErrBusinessNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "BUSINESS_NOT_FOUND", Message: "negocio no encontrado"})
		}
		h.log.Error().Err(err).Str("subdomain", sub).Msg("página de tenant falló")
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL_ERROR", Message: "error interno"})
	}

	svcs, err := h.services.ListPublic(c.Context(), b.ID)
	if err != nil {
		h.log.Error().Err(err).Str("business_id", b.ID).Msg("listado de servicios del tenant falló")
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL_ERROR", Message: "error interno"})
	}
	out := make([]*dto.ServiceResponse, 0, len(svcs))
	for _, s := range svcs {
		out = append(out, usecase.ToServiceResponse(s))
	}
	return c.JSON(fiber.Map{
		"business": h.businesses.ToResponse(b),
		"services": out,
	})
}
