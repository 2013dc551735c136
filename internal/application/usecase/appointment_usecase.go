package usecase

import (
	"context"
	"time"

	"github.com/chatokay/chatokay-api/internal/application/dto"
	"github.com/chatokay/chatokay-api/internal/domain"
	"github.com/chatokay/chatokay-api/internal/domain/entity"
	"github.com/chatokay/chatokay-api/internal/domain/repository"
)

// AppointmentUseCase listado de citas del dashboard y cancelación por token.
type AppointmentUseCase struct {
	appointments repository.AppointmentRepository
	businesses   repository.BusinessRepository
}

// NewAppointmentUseCase construye el caso de uso.
func NewAppointmentUseCase(appointments repository.AppointmentRepository, businesses repository.BusinessRepository) *AppointmentUseCase {
	return &AppointmentUseCase{appointments: appointments, businesses: businesses}
}

// ListForOwner citas del negocio del dueño autenticado dentro del rango.
func (uc *AppointmentUseCase) ListForOwner(ctx context.Context, ownerID string, from, to time.Time) ([]*entity.Appointment, *entity.Business, error) {
	b, err := uc.businesses.GetByOwner(ctx, ownerID)
	if err != nil {
		return nil, nil, err
	}
	if b == nil {
		return nil, nil, domain.ErrBusinessNotFound
	}
	list, err := uc.appointments.ListByBusiness(ctx, b.ID, from, to)
	if err != nil {
		return nil, nil, err
	}
	return list, b, nil
}

// LookupByToken resuelve un token de cancelación a su estado terminal sin
// mutar nada. Token desconocido y cita ya cancelada son estados, no errores.
func (uc *AppointmentUseCase) LookupByToken(ctx context.Context, token string) (*dto.CancelResponse, error) {
	if token == "" {
		return &dto.CancelResponse{State: dto.CancelStateNotFound}, nil
	}
	appt, err := uc.appointments.GetByCancelToken(ctx, token)
	if err != nil {
		return nil, err
	}
	if appt == nil {
		return &dto.CancelResponse{State: dto.CancelStateNotFound}, nil
	}

	state := dto.CancelStateCancelable
	if appt.Status == entity.AppointmentCancelled {
		state = dto.CancelStateAlready
	}
	return uc.buildCancelResponse(ctx, state, appt)
}

// CancelByToken ejecuta la cancelación irreversible. Idempotente: un segundo
// POST con el mismo token devuelve already_cancelled sin mutar nada.
func (uc *AppointmentUseCase) CancelByToken(ctx context.Context, token string) (*dto.CancelResponse, error) {
	if token == "" {
		return &dto.CancelResponse{State: dto.CancelStateNotFound}, nil
	}
	appt, err := uc.appointments.GetByCancelToken(ctx, token)
	if err != nil {
		return nil, err
	}
	if appt == nil {
		return &dto.CancelResponse{State: dto.CancelStateNotFound}, nil
	}
	if appt.Status == entity.AppointmentCancelled {
		return uc.buildCancelResponse(ctx, dto.CancelStateAlready, appt)
	}

	now := time.Now()
	appt.Status = entity.AppointmentCancelled
	appt.CancelledAt = &now
	appt.UpdatedAt = now
	if err := uc.appointments.Update(ctx, appt); err != nil {
		return nil, err
	}
	return uc.buildCancelResponse(ctx, dto.CancelStateOK, appt)
}

func (uc *AppointmentUseCase) buildCancelResponse(ctx context.Context, state string, appt *entity.Appointment) (*dto.CancelResponse, error) {
	resp := &dto.CancelResponse{State: state, Appointment: ToAppointmentResponse(appt)}
	b, err := uc.businesses.GetByID(ctx, appt.BusinessID)
	if err == nil && b != nil {
		resp.Business = &dto.BusinessResponse{ID: b.ID, Name: b.Name, Subdomain: b.Subdomain, Timezone: b.Timezone}
	}
	return resp, nil
}

// ToAppointmentResponse mapea la entidad al DTO (sin el token).
func ToAppointmentResponse(a *entity.Appointment) *dto.AppointmentResponse {
	if a == nil {
		return nil
	}
	return &dto.AppointmentResponse{
		ID:            a.ID,
		BusinessID:    a.BusinessID,
		ServiceID:     a.ServiceID,
		CustomerName:  a.CustomerName,
		CustomerPhone: a.CustomerPhone,
		CustomerEmail: a.CustomerEmail,
		StartsAt:      a.StartsAt,
		EndsAt:        a.EndsAt,
		Status:        a.Status,
		CancelledAt:   a.CancelledAt,
	}
}
