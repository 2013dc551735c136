package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/chatokay/chatokay-api/internal/domain/entity"
	"github.com/chatokay/chatokay-api/internal/domain/repository"
)

var _ repository.SettingsRepository = (*SettingsRepo)(nil)

// SettingsRepo implementación del puerto SettingsRepository sobre PostgreSQL.
// La tabla platform_settings tiene una sola fila (id fijo = 1).
type SettingsRepo struct {
	db querier
}

// NewSettingsRepository construye el adaptador de persistencia para la configuración global.
func NewSettingsRepository(db querier) *SettingsRepo {
	return &SettingsRepo{db: db}
}

// Get devuelve la fila única; (nil, nil) si nadie la ha creado.
func (r *SettingsRepo) Get(ctx context.Context) (*entity.PlatformSettings, error) {
	var s entity.PlatformSettings
	err := r.db.QueryRow(ctx, `
		SELECT trial_days, default_slot_minutes, booking_window_days, support_email, updated_at
		FROM platform_settings WHERE id = 1`).Scan(
		&s.TrialDays, &s.DefaultSlotMinutes, &s.BookingWindowDays, &s.SupportEmail, &s.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get settings: %w", err)
	}
	return &s, nil
}

// Save upsert de la fila única.
func (r *SettingsRepo) Save(ctx context.Context, s *entity.PlatformSettings) error {
	query := `
		INSERT INTO platform_settings (id, trial_days, default_slot_minutes, booking_window_days, support_email, updated_at)
		VALUES (1, $1, $2, $3, $4, $5)
		ON CONFLICT (id) DO UPDATE SET
			trial_days = EXCLUDED.trial_days,
			default_slot_minutes = EXCLUDED.default_slot_minutes,
			booking_window_days = EXCLUDED.booking_window_days,
			support_email = EXCLUDED.support_email,
			updated_at = EXCLUDED.updated_at`
	_, err := r.db.Exec(ctx, query, s.TrialDays, s.DefaultSlotMinutes, s.BookingWindowDays, s.SupportEmail, s.UpdatedAt)
	if err != nil {
		return fmt.Errorf("save settings: %w", err)
	}
	return nil
}
