package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/chatokay/chatokay-api/internal/domain"
	"github.com/chatokay/chatokay-api/internal/domain/entity"
	"github.com/chatokay/chatokay-api/internal/domain/repository"
)

var _ repository.BusinessRepository = (*BusinessRepo)(nil)

const businessColumns = `id, owner_id, name, subdomain, description, timezone, opens_at, closes_at, slot_minutes, status, created_at, updated_at`

// BusinessRepo implementación del puerto BusinessRepository sobre PostgreSQL.
type BusinessRepo struct {
	db querier
}

// NewBusinessRepository construye el adaptador de persistencia para negocios.
func NewBusinessRepository(db querier) *BusinessRepo {
	return &BusinessRepo{db: db}
}

// Create persiste un negocio. Devuelve domain.ErrDuplicate si el subdominio
// (o el dueño) ya tiene fila — ambos tienen constraint único.
func (r *BusinessRepo) Create(ctx context.Context, b *entity.Business) error {
	query := `
		INSERT INTO businesses (id, owner_id, name, subdomain, description, timezone, opens_at, closes_at, slot_minutes, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`
	_, err := r.db.Exec(ctx, query,
		b.ID, b.OwnerID, b.Name, b.Subdomain, b.Description, b.Timezone,
		b.OpensAt, b.ClosesAt, b.SlotMinutes, b.Status, b.CreatedAt, b.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert business: %w", err)
	}
	return nil
}

// GetByID obtiene un negocio por ID.
func (r *BusinessRepo) GetByID(ctx context.Context, id string) (*entity.Business, error) {
	return r.scanOne(ctx, `SELECT `+businessColumns+` FROM businesses WHERE id = $1`, id)
}

// GetByOwner obtiene el negocio de un dueño (un dueño, un negocio).
func (r *BusinessRepo) GetByOwner(ctx context.Context, ownerID string) (*entity.Business, error) {
	return r.scanOne(ctx, `SELECT `+businessColumns+` FROM businesses WHERE owner_id = $1`, ownerID)
}

// GetBySubdomain obtiene un negocio por su subdominio.
func (r *BusinessRepo) GetBySubdomain(ctx context.Context, subdomain string) (*entity.Business, error) {
	return r.scanOne(ctx, `SELECT `+businessColumns+` FROM businesses WHERE subdomain = $1`, subdomain)
}

// Update actualiza la configuración de un negocio.
func (r *BusinessRepo) Update(ctx context.Context, b *entity.Business) error {
	query := `
		UPDATE businesses SET name = $2, description = $3, timezone = $4, opens_at = $5,
			closes_at = $6, slot_minutes = $7, status = $8, updated_at = $9
		WHERE id = $1`
	_, err := r.db.Exec(ctx, query,
		b.ID, b.Name, b.Description, b.Timezone, b.OpensAt, b.ClosesAt,
		b.SlotMinutes, b.Status, b.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update business: %w", err)
	}
	return nil
}

func (r *BusinessRepo) scanOne(ctx context.Context, query string, args ...any) (*entity.Business, error) {
	var b entity.Business
	err := r.db.QueryRow(ctx, query, args...).Scan(
		&b.ID, &b.OwnerID, &b.Name, &b.Subdomain, &b.Description, &b.Timezone,
		&b.OpensAt, &b.ClosesAt, &b.SlotMinutes, &b.Status, &b.CreatedAt, &b.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get business: %w", err)
	}
	return &b, nil
}
