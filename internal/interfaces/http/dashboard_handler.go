package http

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/chatokay/chatokay-api/internal/application/dto"
	"github.com/chatokay/chatokay-api/internal/application/report"
	"github.com/chatokay/chatokay-api/internal/application/usecase"
	"github.com/chatokay/chatokay-api/internal/domain"
	"github.com/chatokay/chatokay-api/pkg/logger"
)

// DashboardHandler endpoints del área del dueño de negocio. El guard del área
// ya garantizó un cliente autenticado con negocio; aquí solo se opera sobre él.
type DashboardHandler struct {
	businesses   *usecase.BusinessUseCase
	services     *usecase.ServiceUseCase
	appointments *usecase.AppointmentUseCase
	reports      *report.PDFUseCase
	log          *logger.Logger
}

func NewDashboardHandler(
	businesses *usecase.BusinessUseCase,
	services *usecase.ServiceUseCase,
	appointments *usecase.AppointmentUseCase,
	reports *report.PDFUseCase,
	log *logger.Logger,
) *DashboardHandler {
	return &DashboardHandler{
		businesses:   businesses,
		services:     services,
		appointments: appointments,
		reports:      reports,
		log:          log,
	}
}

// ownerID id del dueño resuelto por el guard del área.
func ownerID(c *fiber.Ctx) string {
	if st := GetSessionState(c); st != nil {
		if u := st.User(); u != nil {
			return u.ID
		}
	}
	return ""
}

// GetBusiness godoc
// @Summary      Negocio del dueño autenticado
// @Tags         dashboard
// @Produce      json
// @Success      200  {object}  dto.BusinessResponse
// @Router       /api/dashboard/business [get]
func (h *DashboardHandler) GetBusiness(c *fiber.Ctx) error {
	b, err := h.businesses.GetByOwner(c.Context(), ownerID(c))
	if err != nil {
		h.log.Error().Err(err).Msg("fetch de negocio del dashboard falló")
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL_ERROR", Message: "error interno"})
	}
	if b == nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "BUSINESS_NOT_FOUND", Message: "negocio no encontrado"})
	}
	return c.JSON(h.businesses.ToResponse(b))
}

// UpdateBusiness godoc
// @Summary      Edita la configuración del negocio
// @Tags         dashboard
// @Accept       json
// @Produce      json
// @Param        request  body  dto.UpdateBusinessRequest  true  "Cambios"
// @Success      200  {object}  dto.BusinessResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/dashboard/business [put]
func (h *DashboardHandler) UpdateBusiness(c *fiber.Ctx) error {
	var req dto.UpdateBusinessRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}

	b, err := h.businesses.UpdateConfig(c.Context(), ownerID(c), req)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrOutOfRange):
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "OUT_OF_RANGE", Message: "slot_minutes debe estar entre 5 y 240"})
		case errors.Is(err, domain.ErrBusinessNotFound):
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "BUSINESS_NOT_FOUND", Message: "negocio no encontrado"})
		}
		h.log.Error().Err(err).Msg("edición de negocio falló")
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL_ERROR", Message: "error interno"})
	}
	return c.JSON(h.businesses.ToResponse(b))
}

// ListServices godoc
// @Summary      Servicios del negocio
// @Tags         dashboard
// @Produce      json
// @Success      200  {array}  dto.ServiceResponse
// @Router       /api/dashboard/services [get]
func (h *DashboardHandler) ListServices(c *fiber.Ctx) error {
	list, err := h.services.ListForOwner(c.Context(), ownerID(c))
	if err != nil {
		return h.serviceError(c, err, "listado de servicios falló")
	}
	out := make([]*dto.ServiceResponse, 0, len(list))
	for _, s := range list {
		out = append(out, usecase.ToServiceResponse(s))
	}
	return c.JSON(out)
}

// CreateService godoc
// @Summary      Alta de un servicio
// @Tags         dashboard
// @Accept       json
// @Produce      json
// @Param        request  body  dto.ServiceRequest  true  "Servicio"
// @Success      201  {object}  dto.ServiceResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/dashboard/services [post]
func (h *DashboardHandler) CreateService(c *fiber.Ctx) error {
	var req dto.ServiceRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	s, err := h.services.Create(c.Context(), ownerID(c), req)
	if err != nil {
		return h.serviceError(c, err, "alta de servicio falló")
	}
	return c.Status(fiber.StatusCreated).JSON(usecase.ToServiceResponse(s))
}

// UpdateService godoc
// @Summary      Edición de un servicio
// @Tags         dashboard
// @Accept       json
// @Produce      json
// @Param        id       path  string  true  "ID del servicio"
// @Param        request  body  dto.ServiceRequest  true  "Servicio"
// @Success      200  {object}  dto.ServiceResponse
// @Router       /api/dashboard/services/{id} [put]
func (h *DashboardHandler) UpdateService(c *fiber.Ctx) error {
	var req dto.ServiceRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	s, err := h.services.Update(c.Context(), ownerID(c), c.Params("id"), req)
	if err != nil {
		return h.serviceError(c, err, "edición de servicio falló")
	}
	return c.JSON(usecase.ToServiceResponse(s))
}

// DeleteService godoc
// @Summary      Baja de un servicio
// @Tags         dashboard
// @Param        id  path  string  true  "ID del servicio"
// @Success      204
// @Router       /api/dashboard/services/{id} [delete]
func (h *DashboardHandler) DeleteService(c *fiber.Ctx) error {
	if err := h.services.Delete(c.Context(), ownerID(c), c.Params("id")); err != nil {
		return h.serviceError(c, err, "baja de servicio falló")
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// ListAppointments godoc
// @Summary      Citas del negocio en el rango
// @Tags         dashboard
// @Produce      json
// @Param        from  query  string  false  "Fecha inicio (YYYY-MM-DD)"
// @Param        to    query  string  false  "Fecha fin (YYYY-MM-DD)"
// @Success      200  {array}  dto.AppointmentResponse
// @Router       /api/dashboard/appointments [get]
func (h *DashboardHandler) ListAppointments(c *fiber.Ctx) error {
	from, to, err := dateRange(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_RANGE", Message: "rango de fechas inválido"})
	}

	list, _, err := h.appointments.ListForOwner(c.Context(), ownerID(c), from, to)
	if err != nil {
		if errors.Is(err, domain.ErrBusinessNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "BUSINESS_NOT_FOUND", Message: "negocio no encontrado"})
		}
		h.log.Error().Err(err).Msg("listado de citas falló")
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL_ERROR", Message: "error interno"})
	}
	out := make([]*dto.AppointmentResponse, 0, len(list))
	for _, a := range list {
		out = append(out, usecase.ToAppointmentResponse(a))
	}
	return c.JSON(out)
}

// DownloadReport godoc
// @Summary      Reporte PDF de citas del rango
// @Tags         dashboard
// @Produce      application/pdf
// @Param        from  query  string  false  "Fecha inicio (YYYY-MM-DD)"
// @Param        to    query  string  false  "Fecha fin (YYYY-MM-DD)"
// @Success      200  {file}  binary
// @Router       /api/dashboard/appointments/report [get]
func (h *DashboardHandler) DownloadReport(c *fiber.Ctx) error {
	from, to, err := dateRange(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_RANGE", Message: "rango de fechas inválido"})
	}

	pdf, filename, err := h.reports.DownloadAppointmentsReport(c.Context(), ownerID(c), from, to)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidInput):
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_RANGE", Message: "rango de fechas inválido"})
		case errors.Is(err, domain.ErrBusinessNotFound):
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "BUSINESS_NOT_FOUND", Message: "negocio no encontrado"})
		}
		h.log.Error().Err(err).Msg("generación de reporte falló")
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL_ERROR", Message: "error generando el reporte"})
	}

	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+filename+`"`)
	return c.Send(pdf)
}

func (h *DashboardHandler) serviceError(c *fiber.Ctx, err error, msg string) error {
	switch {
	case errors.Is(err, domain.ErrBusinessNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "BUSINESS_NOT_FOUND", Message: "negocio no encontrado"})
	case errors.Is(err, domain.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "SERVICE_NOT_FOUND", Message: "servicio no encontrado"})
	case errors.Is(err, domain.ErrInvalidInput):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_INPUT", Message: "precio inválido"})
	case errors.Is(err, domain.ErrOutOfRange):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "OUT_OF_RANGE", Message: "duración fuera de rango"})
	}
	h.log.Error().Err(err).Msg(msg)
	return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL_ERROR", Message: "error interno"})
}

// dateRange parsea ?from=&to= (YYYY-MM-DD); por defecto el mes en curso.
func dateRange(c *fiber.Ctx) (time.Time, time.Time, error) {
	now := time.Now()
	from := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
	to := from.AddDate(0, 1, 0)

	if raw := c.Query("from"); raw != "" {
		t, err := time.Parse("2006-01-02", raw)
		if err != nil {
			return time.Time{}, time.Time{}, err
		}
		from = t
	}
	if raw := c.Query("to"); raw != "" {
		t, err := time.Parse("2006-01-02", raw)
		if err != nil {
			return time.Time{}, time.Time{}, err
		}
		// Fin de rango inclusivo hasta el final del día.
		to = t.AddDate(0, 0, 1)
	}
	if to.Before(from) {
		return time.Time{}, time.Time{}, errors.New("rango invertido")
	}
	return from, to, nil
}
