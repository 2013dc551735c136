package repository

import (
	"context"

	"github.com/chatokay/chatokay-api/internal/domain/entity"
)

// BusinessRepository puerto de persistencia para Business (tenant).
// Los Get* devuelven (nil, nil) si el registro no existe.
type BusinessRepository interface {
	Create(ctx context.Context, b *entity.Business) error
	GetByID(ctx context.Context, id string) (*entity.Business, error)
	GetByOwner(ctx context.Context, ownerID string) (*entity.Business, error)
	GetBySubdomain(ctx context.Context, subdomain string) (*entity.Business, error)
	Update(ctx context.Context, b *entity.Business) error
}
