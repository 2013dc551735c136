package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/chatokay/chatokay-api/internal/application/dto"
	appsession "github.com/chatokay/chatokay-api/internal/application/session"
	"github.com/chatokay/chatokay-api/internal/application/usecase"
	"github.com/chatokay/chatokay-api/internal/domain"
	"github.com/chatokay/chatokay-api/internal/domain/entity"
	"github.com/chatokay/chatokay-api/internal/domain/repository"
	"github.com/chatokay/chatokay-api/pkg/logger"
)

// AdminHandler área admin: configuración global y listado de usuarios.
type AdminHandler struct {
	settings *usecase.SettingsUseCase
	users    repository.UserRepository
	log      *logger.Logger
}

func NewAdminHandler(settings *usecase.SettingsUseCase, users repository.UserRepository, log *logger.Logger) *AdminHandler {
	return &AdminHandler{settings: settings, users: users, log: log}
}

// GetSettings godoc
// @Summary      Configuración global de la plataforma
// @Tags         admin
// @Produce      json
// @Success      200  {object}  dto.SettingsResponse
// @Router       /api/admin/settings [get]
func (h *AdminHandler) GetSettings(c *fiber.Ctx) error {
	s, err := h.settings.Get(c.Context())
	if err != nil {
		h.log.Error().Err(err).Msg("lectura de configuración global falló")
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL_ERROR", Message: "error interno"})
	}
	return c.JSON(usecase.ToSettingsResponse(s))
}

// UpdateSettings godoc
// @Summary      Edita la configuración global
// @Tags         admin
// @Accept       json
// @Produce      json
// @Param        request  body  dto.UpdateSettingsRequest  true  "Configuración"
// @Success      200  {object}  dto.SettingsResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/admin/settings [put]
func (h *AdminHandler) UpdateSettings(c *fiber.Ctx) error {
	var req dto.UpdateSettingsRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}

	s, err := h.settings.Update(c.Context(), req)
	if err != nil {
		if errors.Is(err, domain.ErrOutOfRange) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "OUT_OF_RANGE", Message: "algún valor está fuera de rango"})
		}
		h.log.Error().Err(err).Msg("edición de configuración global falló")
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL_ERROR", Message: "error interno"})
	}
	return c.JSON(usecase.ToSettingsResponse(s))
}

// ListUsers godoc
// @Summary      Usuarios de la plataforma por rol
// @Tags         admin
// @Produce      json
// @Param        role    query  string  false  "Rol a filtrar (client, sales, admin)"
// @Param        limit   query  int     false  "Límite de página"
// @Param        offset  query  int     false  "Offset de página"
// @Success      200  {array}  dto.UserResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/admin/users [get]
func (h *AdminHandler) ListUsers(c *fiber.Ctx) error {
	role := c.Query("role", entity.RoleClient)
	if !entity.ValidRole(role) {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_ROLE", Message: "rol desconocido"})
	}
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUERY", Message: "paginación inválida"})
	}
	page.DefaultPage()

	list, err := h.users.ListByRole(c.Context(), role, page.Limit, page.Offset)
	if err != nil {
		h.log.Error().Err(err).Str("role", role).Msg("listado de usuarios falló")
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL_ERROR", Message: "error interno"})
	}
	out := make([]*dto.UserResponse, 0, len(list))
	for _, u := range list {
		out = append(out, appsession.ToUserResponse(u))
	}
	return c.JSON(out)
}
