package repository

import (
	"context"

	"github.com/chatokay/chatokay-api/internal/domain/entity"
)

// ServiceRepository puerto de persistencia para los servicios agendables.
type ServiceRepository interface {
	Create(ctx context.Context, s *entity.Service) error
	GetByID(ctx context.Context, id string) (*entity.Service, error)
	ListByBusiness(ctx context.Context, businessID string) ([]*entity.Service, error)
	Update(ctx context.Context, s *entity.Service) error
	Delete(ctx context.Context, id string) error
}
