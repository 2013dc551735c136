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

var _ repository.UserRepository = (*UserRepo)(nil)

const userColumns = `id, external_id, email, name, role, country, referral_code, referred_by, created_at, updated_at`

// UserRepo implementación del puerto UserRepository sobre PostgreSQL.
type UserRepo struct {
	db querier
}

// NewUserRepository construye el adaptador de persistencia para usuarios.
func NewUserRepository(db querier) *UserRepo {
	return &UserRepo{db: db}
}

// Create persiste un nuevo usuario. Devuelve domain.ErrDuplicate si el
// external_id ya existe (entrega duplicada del webhook perdiendo la carrera).
func (r *UserRepo) Create(ctx context.Context, user *entity.User) error {
	query := `
		INSERT INTO users (id, external_id, email, name, role, country, referral_code, referred_by, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, NULLIF($6, ''), NULLIF($7, ''), NULLIF($8, ''), $9, $10)`
	_, err := r.db.Exec(ctx, query,
		user.ID, user.ExternalID, user.Email, user.Name, user.Role,
		user.Country, user.ReferralCode, user.ReferredBy,
		user.CreatedAt, user.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert user: %w", err)
	}
	return nil
}

// GetByID obtiene un usuario por ID.
func (r *UserRepo) GetByID(ctx context.Context, id string) (*entity.User, error) {
	return r.scanOne(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, id)
}

// GetByExternalID obtiene un usuario por el id del proveedor de identidad.
func (r *UserRepo) GetByExternalID(ctx context.Context, externalID string) (*entity.User, error) {
	return r.scanOne(ctx, `SELECT `+userColumns+` FROM users WHERE external_id = $1`, externalID)
}

// GetByReferralCode obtiene al emisor de un código de referido.
func (r *UserRepo) GetByReferralCode(ctx context.Context, code string) (*entity.User, error) {
	return r.scanOne(ctx, `SELECT `+userColumns+` FROM users WHERE referral_code = $1`, code)
}

// Update actualiza un usuario.
func (r *UserRepo) Update(ctx context.Context, user *entity.User) error {
	query := `
		UPDATE users SET email = $2, name = $3, role = $4, country = NULLIF($5, ''),
			referral_code = NULLIF($6, ''), referred_by = NULLIF($7, ''), updated_at = $8
		WHERE id = $1`
	_, err := r.db.Exec(ctx, query,
		user.ID, user.Email, user.Name, user.Role, user.Country,
		user.ReferralCode, user.ReferredBy, user.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update user: %w", err)
	}
	return nil
}

// ListByRole lista usuarios por rol con paginación.
func (r *UserRepo) ListByRole(ctx context.Context, role string, limit, offset int) ([]*entity.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE role = $1 ORDER BY created_at DESC LIMIT $2 OFFSET $3`
	return r.scanMany(ctx, query, role, limit, offset)
}

// ListReferredBy clientes captados por un referidor.
func (r *UserRepo) ListReferredBy(ctx context.Context, referrerID string) ([]*entity.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE referred_by = $1 ORDER BY created_at DESC`
	return r.scanMany(ctx, query, referrerID)
}

// CountReferredBy total de clientes captados por un referidor.
func (r *UserRepo) CountReferredBy(ctx context.Context, referrerID string) (int, error) {
	var n int
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM users WHERE referred_by = $1`, referrerID).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count referred: %w", err)
	}
	return n, nil
}

func (r *UserRepo) scanOne(ctx context.Context, query string, args ...any) (*entity.User, error) {
	var u entity.User
	var country, referralCode, referredBy *string
	err := r.db.QueryRow(ctx, query, args...).Scan(
		&u.ID, &u.ExternalID, &u.Email, &u.Name, &u.Role,
		&country, &referralCode, &referredBy,
		&u.CreatedAt, &u.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get user: %w", err)
	}
	u.Country = deref(country)
	u.ReferralCode = deref(referralCode)
	u.ReferredBy = deref(referredBy)
	return &u, nil
}

func (r *UserRepo) scanMany(ctx context.Context, query string, args ...any) ([]*entity.User, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	defer rows.Close()
	var list []*entity.User
	for rows.Next() {
		var u entity.User
		var country, referralCode, referredBy *string
		if err := rows.Scan(
			&u.ID, &u.ExternalID, &u.Email, &u.Name, &u.Role,
			&country, &referralCode, &referredBy,
			&u.CreatedAt, &u.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan user: %w", err)
		}
		u.Country = deref(country)
		u.ReferralCode = deref(referralCode)
		u.ReferredBy = deref(referredBy)
		list = append(list, &u)
	}
	return list, rows.Err()
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
