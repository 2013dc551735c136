package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/chatokay/chatokay-api/internal/application/dto"
	"github.com/chatokay/chatokay-api/internal/domain"
	"github.com/chatokay/chatokay-api/internal/domain/entity"
	"github.com/chatokay/chatokay-api/internal/domain/repository"
)

// ServiceUseCase CRUD de los servicios agendables del negocio del dueño.
// Todas las operaciones verifican la propiedad: un servicio de otro negocio
// es ErrNotFound, nunca se revela que existe.
type ServiceUseCase struct {
	services   repository.ServiceRepository
	businesses repository.BusinessRepository
}

// NewServiceUseCase construye el caso de uso.
func NewServiceUseCase(services repository.ServiceRepository, businesses repository.BusinessRepository) *ServiceUseCase {
	return &ServiceUseCase{services: services, businesses: businesses}
}

// ListForOwner servicios del negocio del dueño autenticado.
func (uc *ServiceUseCase) ListForOwner(ctx context.Context, ownerID string) ([]*entity.Service, error) {
	b, err := uc.ownedBusiness(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	return uc.services.ListByBusiness(ctx, b.ID)
}

// ListPublic servicios activos de un negocio (página pública del tenant).
func (uc *ServiceUseCase) ListPublic(ctx context.Context, businessID string) ([]*entity.Service, error) {
	list, err := uc.services.ListByBusiness(ctx, businessID)
	if err != nil {
		return nil, err
	}
	active := make([]*entity.Service, 0, len(list))
	for _, s := range list {
		if s.Active {
			active = append(active, s)
		}
	}
	return active, nil
}

// Create alta de un servicio en el negocio del dueño.
func (uc *ServiceUseCase) Create(ctx context.Context, ownerID string, in dto.ServiceRequest) (*entity.Service, error) {
	b, err := uc.ownedBusiness(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	price, err := parsePrice(in.Price)
	if err != nil {
		return nil, err
	}
	if in.DurationMinutes < 5 || in.DurationMinutes > 480 {
		return nil, domain.ErrOutOfRange
	}

	now := time.Now()
	s := &entity.Service{
		ID:              uuid.New().String(),
		BusinessID:      b.ID,
		Name:            in.Name,
		DurationMinutes: in.DurationMinutes,
		Price:           price,
		Active:          true,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	if in.Active != nil {
		s.Active = *in.Active
	}
	if err := uc.services.Create(ctx, s); err != nil {
		return nil, err
	}
	return s, nil
}

// Update edición de un servicio propio.
func (uc *ServiceUseCase) Update(ctx context.Context, ownerID, serviceID string, in dto.ServiceRequest) (*entity.Service, error) {
	s, err := uc.ownedService(ctx, ownerID, serviceID)
	if err != nil {
		return nil, err
	}
	price, err := parsePrice(in.Price)
	if err != nil {
		return nil, err
	}
	if in.DurationMinutes < 5 || in.DurationMinutes > 480 {
		return nil, domain.ErrOutOfRange
	}

	s.Name = in.Name
	s.DurationMinutes = in.DurationMinutes
	s.Price = price
	if in.Active != nil {
		s.Active = *in.Active
	}
	s.UpdatedAt = time.Now()
	if err := uc.services.Update(ctx, s); err != nil {
		return nil, err
	}
	return s, nil
}

// Delete baja de un servicio propio.
func (uc *ServiceUseCase) Delete(ctx context.Context, ownerID, serviceID string) error {
	s, err := uc.ownedService(ctx, ownerID, serviceID)
	if err != nil {
		return err
	}
	return uc.services.Delete(ctx, s.ID)
}

func (uc *ServiceUseCase) ownedBusiness(ctx context.Context, ownerID string) (*entity.Business, error) {
	b, err := uc.businesses.GetByOwner(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	if b == nil {
		return nil, domain.ErrBusinessNotFound
	}
	return b, nil
}

func (uc *ServiceUseCase) ownedService(ctx context.Context, ownerID, serviceID string) (*entity.Service, error) {
	b, err := uc.ownedBusiness(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	s, err := uc.services.GetByID(ctx, serviceID)
	if err != nil {
		return nil, err
	}
	if s == nil || s.BusinessID != b.ID {
		return nil, domain.ErrNotFound
	}
	return s, nil
}

func parsePrice(raw string) (decimal.Decimal, error) {
	price, err := decimal.NewFromString(raw)
	if err != nil || price.IsNegative() {
		return decimal.Zero, domain.ErrInvalidInput
	}
	return price, nil
}

// ToServiceResponse mapea la entidad al DTO.
func ToServiceResponse(s *entity.Service) *dto.ServiceResponse {
	if s == nil {
		return nil
	}
	return &dto.ServiceResponse{
		ID:              s.ID,
		BusinessID:      s.BusinessID,
		Name:            s.Name,
		DurationMinutes: s.DurationMinutes,
		Price:           s.Price.StringFixed(2),
		Active:          s.Active,
	}
}
