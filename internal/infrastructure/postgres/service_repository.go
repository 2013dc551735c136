package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/chatokay/chatokay-api/internal/domain/entity"
	"github.com/chatokay/chatokay-api/internal/domain/repository"
)

var _ repository.ServiceRepository = (*ServiceRepo)(nil)

const serviceColumns = `id, business_id, name, duration_minutes, price, active, created_at, updated_at`

// ServiceRepo implementación del puerto ServiceRepository sobre PostgreSQL.
type ServiceRepo struct {
	db querier
}

// NewServiceRepository construye el adaptador de persistencia para servicios.
func NewServiceRepository(db querier) *ServiceRepo {
	return &ServiceRepo{db: db}
}

// Create persiste un servicio agendable.
func (r *ServiceRepo) Create(ctx context.Context, s *entity.Service) error {
	query := `
		INSERT INTO services (id, business_id, name, duration_minutes, price, active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.db.Exec(ctx, query,
		s.ID, s.BusinessID, s.Name, s.DurationMinutes, s.Price, s.Active, s.CreatedAt, s.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert service: %w", err)
	}
	return nil
}

// GetByID obtiene un servicio por ID.
func (r *ServiceRepo) GetByID(ctx context.Context, id string) (*entity.Service, error) {
	var s entity.Service
	err := r.db.QueryRow(ctx, `SELECT `+serviceColumns+` FROM services WHERE id = $1`, id).Scan(
		&s.ID, &s.BusinessID, &s.Name, &s.DurationMinutes, &s.Price, &s.Active, &s.CreatedAt, &s.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get service: %w", err)
	}
	return &s, nil
}

// ListByBusiness servicios de un negocio (activos e inactivos).
func (r *ServiceRepo) ListByBusiness(ctx context.Context, businessID string) ([]*entity.Service, error) {
	rows, err := r.db.Query(ctx, `SELECT `+serviceColumns+` FROM services WHERE business_id = $1 ORDER BY name`, businessID)
	if err != nil {
		return nil, fmt.Errorf("list services: %w", err)
	}
	defer rows.Close()
	var list []*entity.Service
	for rows.Next() {
		var s entity.Service
		if err := rows.Scan(&s.ID, &s.BusinessID, &s.Name, &s.DurationMinutes, &s.Price, &s.Active, &s.CreatedAt, &s.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan service: %w", err)
		}
		list = append(list, &s)
	}
	return list, rows.Err()
}

// Update actualiza un servicio.
func (r *ServiceRepo) Update(ctx context.Context, s *entity.Service) error {
	query := `
		UPDATE services SET name = $2, duration_minutes = $3, price = $4, active = $5, updated_at = $6
		WHERE id = $1`
	_, err := r.db.Exec(ctx, query, s.ID, s.Name, s.DurationMinutes, s.Price, s.Active, s.UpdatedAt)
	if err != nil {
		return fmt.Errorf("update service: %w", err)
	}
	return nil
}

// Delete elimina un servicio por ID.
func (r *ServiceRepo) Delete(ctx context.Context, id string) error {
	_, err := r.db.Exec(ctx, `DELETE FROM services WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete service: %w", err)
	}
	return nil
}
