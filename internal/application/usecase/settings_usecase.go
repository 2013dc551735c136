package usecase

import (
	"context"
	"time"

	"github.com/chatokay/chatokay-api/internal/application/dto"
	"github.com/chatokay/chatokay-api/internal/domain"
	"github.com/chatokay/chatokay-api/internal/domain/entity"
	"github.com/chatokay/chatokay-api/internal/domain/repository"
)

// Valores por defecto de platform_settings si aún no hay fila.
const (
	defaultTrialDays         = 14
	defaultSlotMinutes       = 30
	defaultBookingWindowDays = 30
)

// SettingsUseCase lectura y edición de la configuración global (área admin).
type SettingsUseCase struct {
	settings repository.SettingsRepository
}

// NewSettingsUseCase construye el caso de uso.
func NewSettingsUseCase(settings repository.SettingsRepository) *SettingsUseCase {
	return &SettingsUseCase{settings: settings}
}

// Get configuración actual, con defaults si nadie la ha editado todavía.
func (uc *SettingsUseCase) Get(ctx context.Context) (*entity.PlatformSettings, error) {
	s, err := uc.settings.Get(ctx)
	if err != nil {
		return nil, err
	}
	if s == nil {
		s = &entity.PlatformSettings{
			TrialDays:          defaultTrialDays,
			DefaultSlotMinutes: defaultSlotMinutes,
			BookingWindowDays:  defaultBookingWindowDays,
		}
	}
	return s, nil
}

// Update valida rangos y persiste. Fuera de rango = ErrOutOfRange sin mutación.
func (uc *SettingsUseCase) Update(ctx context.Context, in dto.UpdateSettingsRequest) (*entity.PlatformSettings, error) {
	if in.TrialDays < 1 || in.TrialDays > 90 {
		return nil, domain.ErrOutOfRange
	}
	if in.DefaultSlotMinutes < 5 || in.DefaultSlotMinutes > 240 {
		return nil, domain.ErrOutOfRange
	}
	if in.BookingWindowDays < 1 || in.BookingWindowDays > 365 {
		return nil, domain.ErrOutOfRange
	}

	s := &entity.PlatformSettings{
		TrialDays:          in.TrialDays,
		DefaultSlotMinutes: in.DefaultSlotMinutes,
		BookingWindowDays:  in.BookingWindowDays,
		SupportEmail:       in.SupportEmail,
		UpdatedAt:          time.Now(),
	}
	if err := uc.settings.Save(ctx, s); err != nil {
		return nil, err
	}
	return s, nil
}

// ToSettingsResponse mapea la entidad al DTO.
func ToSettingsResponse(s *entity.PlatformSettings) *dto.SettingsResponse {
	if s == nil {
		return nil
	}
	return &dto.SettingsResponse{
		TrialDays:          s.TrialDays,
		DefaultSlotMinutes: s.DefaultSlotMinutes,
		BookingWindowDays:  s.BookingWindowDays,
		SupportEmail:       s.SupportEmail,
		UpdatedAt:          s.UpdatedAt,
	}
}
