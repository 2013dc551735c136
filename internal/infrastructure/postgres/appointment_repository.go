package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/chatokay/chatokay-api/internal/domain/entity"
	"github.com/chatokay/chatokay-api/internal/domain/repository"
)

var _ repository.AppointmentRepository = (*AppointmentRepo)(nil)

const appointmentColumns = `id, business_id, service_id, customer_name, customer_phone, customer_email, starts_at, ends_at, status, cancel_token, cancelled_at, created_at, updated_at`

// AppointmentRepo implementación del puerto AppointmentRepository sobre PostgreSQL.
type AppointmentRepo struct {
	db querier
}

// NewAppointmentRepository construye el adaptador de persistencia para citas.
func NewAppointmentRepository(db querier) *AppointmentRepo {
	return &AppointmentRepo{db: db}
}

// Create persiste una cita.
func (r *AppointmentRepo) Create(ctx context.Context, a *entity.Appointment) error {
	query := `
		INSERT INTO appointments (id, business_id, service_id, customer_name, customer_phone, customer_email,
			starts_at, ends_at, status, cancel_token, cancelled_at, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`
	_, err := r.db.Exec(ctx, query,
		a.ID, a.BusinessID, a.ServiceID, a.CustomerName, a.CustomerPhone, a.CustomerEmail,
		a.StartsAt, a.EndsAt, a.Status, a.CancelToken, a.CancelledAt, a.CreatedAt, a.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert appointment: %w", err)
	}
	return nil
}

// GetByID obtiene una cita por ID.
func (r *AppointmentRepo) GetByID(ctx context.Context, id string) (*entity.Appointment, error) {
	return r.scanOne(ctx, `SELECT `+appointmentColumns+` FROM appointments WHERE id = $1`, id)
}

// GetByCancelToken resuelve el token de un enlace de cancelación.
func (r *AppointmentRepo) GetByCancelToken(ctx context.Context, token string) (*entity.Appointment, error) {
	return r.scanOne(ctx, `SELECT `+appointmentColumns+` FROM appointments WHERE cancel_token = $1`, token)
}

// ListByBusiness citas de un negocio dentro de un rango.
func (r *AppointmentRepo) ListByBusiness(ctx context.Context, businessID string, from, to time.Time) ([]*entity.Appointment, error) {
	query := `
		SELECT ` + appointmentColumns + ` FROM appointments
		WHERE business_id = $1 AND starts_at >= $2 AND starts_at < $3
		ORDER BY starts_at`
	rows, err := r.db.Query(ctx, query, businessID, from, to)
	if err != nil {
		return nil, fmt.Errorf("list appointments: %w", err)
	}
	defer rows.Close()
	var list []*entity.Appointment
	for rows.Next() {
		a, err := scanAppointment(rows)
		if err != nil {
			return nil, err
		}
		list = append(list, a)
	}
	return list, rows.Err()
}

// Update actualiza una cita (cancelación incluida).
func (r *AppointmentRepo) Update(ctx context.Context, a *entity.Appointment) error {
	query := `
		UPDATE appointments SET customer_name = $2, customer_phone = $3, customer_email = $4,
			starts_at = $5, ends_at = $6, status = $7, cancelled_at = $8, updated_at = $9
		WHERE id = $1`
	_, err := r.db.Exec(ctx, query,
		a.ID, a.CustomerName, a.CustomerPhone, a.CustomerEmail,
		a.StartsAt, a.EndsAt, a.Status, a.CancelledAt, a.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update appointment: %w", err)
	}
	return nil
}

func (r *AppointmentRepo) scanOne(ctx context.Context, query string, args ...any) (*entity.Appointment, error) {
	a, err := scanAppointment(r.db.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return a, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanAppointment(row rowScanner) (*entity.Appointment, error) {
	var a entity.Appointment
	err := row.Scan(
		&a.ID, &a.BusinessID, &a.ServiceID, &a.CustomerName, &a.CustomerPhone, &a.CustomerEmail,
		&a.StartsAt, &a.EndsAt, &a.Status, &a.CancelToken, &a.CancelledAt, &a.CreatedAt, &a.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scan appointment: %w", err)
	}
	return &a, nil
}
