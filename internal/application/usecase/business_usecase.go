package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/chatokay/chatokay-api/internal/application/dto"
	appsession "github.com/chatokay/chatokay-api/internal/application/session"
	"github.com/chatokay/chatokay-api/internal/domain"
	"github.com/chatokay/chatokay-api/internal/domain/entity"
	"github.com/chatokay/chatokay-api/internal/domain/repository"
	"github.com/chatokay/chatokay-api/pkg/logger"
	"github.com/chatokay/chatokay-api/pkg/slug"
)

// TenantCache cache de Business por subdominio. Best-effort: un fallo de cache
// nunca se propaga, el repo es la fuente de verdad.
type TenantCache interface {
	Get(ctx context.Context, subdomain string) (*entity.Business, bool)
	Set(ctx context.Context, b *entity.Business)
	Invalidate(ctx context.Context, subdomain string)
}

// CountryResolver resuelve el país de una IP. Best-effort (spec de producto:
// enriquecimiento no autoritativo); "" en cualquier fallo.
type CountryResolver interface {
	Country(ctx context.Context, ip string) string
}

// BusinessUseCase casos de uso del tenant: lookup por subdominio, onboarding
// y edición de configuración.
type BusinessUseCase struct {
	businesses repository.BusinessRepository
	users      repository.UserRepository
	cache      TenantCache
	geo        CountryResolver
	log        *logger.Logger
}

// NewBusinessUseCase construye el caso de uso.
func NewBusinessUseCase(
	businesses repository.BusinessRepository,
	users repository.UserRepository,
	cache TenantCache,
	geo CountryResolver,
	log *logger.Logger,
) *BusinessUseCase {
	return &BusinessUseCase{businesses: businesses, users: users, cache: cache, geo: geo, log: log}
}

// GetBySubdomain resuelve el tenant de un subdominio (cache primero).
// Retorna domain.ErrBusinessNotFound si no existe.
func (uc *BusinessUseCase) GetBySubdomain(ctx context.Context, subdomain string) (*entity.Business, error) {
	if subdomain == "" {
		return nil, domain.ErrInvalidInput
	}
	if uc.cache != nil {
		if b, ok := uc.cache.Get(ctx, subdomain); ok {
			return b, nil
		}
	}
	b, err := uc.businesses.GetBySubdomain(ctx, subdomain)
	if err != nil {
		return nil, err
	}
	if b == nil {
		return nil, domain.ErrBusinessNotFound
	}
	if uc.cache != nil {
		uc.cache.Set(ctx, b)
	}
	return b, nil
}

// CreateForOwner crea el negocio del onboarding. Reglas:
//   - solo usuarios con rol client y sin negocio previo (ErrConflict si ya tiene);
//   - el subdominio se normaliza con slug.Make y debe quedar único (ErrSubdomainTaken);
//   - el país del dueño se enriquece best-effort desde la IP si aún no lo tiene.
func (uc *BusinessUseCase) CreateForOwner(ctx context.Context, owner *entity.User, in dto.CreateBusinessRequest, clientIP string) (*entity.Business, error) {
	if owner == nil || owner.Role != entity.RoleClient {
		return nil, domain.ErrForbidden
	}
	existing, err := uc.businesses.GetByOwner(ctx, owner.ID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrConflict
	}

	sub := in.Subdomain
	if sub == "" {
		sub = in.Name
	}
	sub = slug.Make(sub)
	if sub == "" {
		return nil, domain.ErrInvalidInput
	}
	if taken, err := uc.businesses.GetBySubdomain(ctx, sub); err != nil {
		return nil, err
	} else if taken != nil {
		return nil, domain.ErrSubdomainTaken
	}

	now := time.Now()
	b := &entity.Business{
		ID:          uuid.New().String(),
		OwnerID:     owner.ID,
		Name:        in.Name,
		Subdomain:   sub,
		Description: in.Description,
		Timezone:    defaultStr(in.Timezone, "America/Bogota"),
		OpensAt:     "09:00",
		ClosesAt:    "18:00",
		SlotMinutes: 30,
		Status:      entity.BusinessActive,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := uc.businesses.Create(ctx, b); err != nil {
		if err == domain.ErrDuplicate {
			return nil, domain.ErrSubdomainTaken
		}
		return nil, err
	}

	uc.enrichCountry(ctx, owner, clientIP)
	return b, nil
}

// UpdateConfig edita la configuración del negocio del dueño autenticado.
func (uc *BusinessUseCase) UpdateConfig(ctx context.Context, ownerID string, in dto.UpdateBusinessRequest) (*entity.Business, error) {
	b, err := uc.businesses.GetByOwner(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	if b == nil {
		return nil, domain.ErrBusinessNotFound
	}

	if in.SlotMinutes != 0 && (in.SlotMinutes < 5 || in.SlotMinutes > 240) {
		return nil, domain.ErrOutOfRange
	}
	if in.Name != "" {
		b.Name = in.Name
	}
	if in.Description != "" {
		b.Description = in.Description
	}
	if in.Timezone != "" {
		b.Timezone = in.Timezone
	}
	if in.OpensAt != "" {
		b.OpensAt = in.OpensAt
	}
	if in.ClosesAt != "" {
		b.ClosesAt = in.ClosesAt
	}
	if in.SlotMinutes != 0 {
		b.SlotMinutes = in.SlotMinutes
	}
	b.UpdatedAt = time.Now()

	if err := uc.businesses.Update(ctx, b); err != nil {
		return nil, err
	}
	if uc.cache != nil {
		uc.cache.Invalidate(ctx, b.Subdomain)
	}
	return b, nil
}

// GetByOwner negocio del dueño (nil si aún está en onboarding).
func (uc *BusinessUseCase) GetByOwner(ctx context.Context, ownerID string) (*entity.Business, error) {
	return uc.businesses.GetByOwner(ctx, ownerID)
}

// enrichCountry fija el país del dueño si sigue vacío. Cualquier fallo se
// registra y se descarta: el onboarding nunca depende de la geolocalización.
func (uc *BusinessUseCase) enrichCountry(ctx context.Context, owner *entity.User, clientIP string) {
	if uc.geo == nil || owner.Country != "" || clientIP == "" {
		return
	}
	country := uc.geo.Country(ctx, clientIP)
	if country == "" {
		return
	}
	owner.Country = country
	owner.UpdatedAt = time.Now()
	if err := uc.users.Update(ctx, owner); err != nil {
		uc.log.Warn().Err(err).Str("user_id", owner.ID).Msg("no se pudo guardar el país enriquecido")
	}
}

// ToResponse mapea la entidad al DTO.
func (uc *BusinessUseCase) ToResponse(b *entity.Business) *dto.BusinessResponse {
	return appsession.ToBusinessResponse(b)
}

func defaultStr(s, def string) string {
	if s == "" {
		return def
	}
	return s
}
