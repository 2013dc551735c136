package repository

import (
	"context"

	"github.com/chatokay/chatokay-api/internal/domain/entity"
)

// SettingsRepository puerto de persistencia para la fila única de platform_settings.
type SettingsRepository interface {
	// Get devuelve la configuración global; (nil, nil) si aún no se ha creado.
	Get(ctx context.Context) (*entity.PlatformSettings, error)
	// Save crea o reemplaza la fila única.
	Save(ctx context.Context, s *entity.PlatformSettings) error
}
