package repository

import (
	"context"

	"github.com/chatokay/chatokay-api/internal/domain/entity"
)

// UserRepository define el puerto de persistencia para User (DIP).
// Los Get* devuelven (nil, nil) si el registro no existe.
type UserRepository interface {
	Create(ctx context.Context, user *entity.User) error
	GetByID(ctx context.Context, id string) (*entity.User, error)
	GetByExternalID(ctx context.Context, externalID string) (*entity.User, error)
	// GetByReferralCode busca al emisor de un código de referido.
	GetByReferralCode(ctx context.Context, code string) (*entity.User, error)
	Update(ctx context.Context, user *entity.User) error
	ListByRole(ctx context.Context, role string, limit, offset int) ([]*entity.User, error)
	// ListReferredBy clientes captados por un usuario sales/admin.
	ListReferredBy(ctx context.Context, referrerID string) ([]*entity.User, error)
	CountReferredBy(ctx context.Context, referrerID string) (int, error)
}
