package repository

import (
	"context"
	"time"

	"github.com/chatokay/chatokay-api/internal/domain/entity"
)

// AppointmentRepository puerto de persistencia para las citas.
type AppointmentRepository interface {
	Create(ctx context.Context, a *entity.Appointment) error
	GetByID(ctx context.Context, id string) (*entity.Appointment, error)
	// GetByCancelToken resuelve el token de un enlace de cancelación; (nil, nil) si no existe.
	GetByCancelToken(ctx context.Context, token string) (*entity.Appointment, error)
	ListByBusiness(ctx context.Context, businessID string, from, to time.Time) ([]*entity.Appointment, error)
	Update(ctx context.Context, a *entity.Appointment) error
}
