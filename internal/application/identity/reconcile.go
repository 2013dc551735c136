package identity

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/chatokay/chatokay-api/internal/domain/entity"
	"github.com/chatokay/chatokay-api/internal/domain/repository"
	"github.com/chatokay/chatokay-api/pkg/logger"
)

// Config parámetros del reconciliador.
type Config struct {
	// TrialDelay cuánto esperar antes de crear la suscripción trial del primer signup.
	TrialDelay time.Duration
	// TrialDays duración del trial.
	TrialDays int
}

// Reconciler aplica eventos de identidad sobre el perfil de usuario.
//
// Reglas del upsert:
//   - email y name se actualizan siempre con el valor del evento.
//   - role, country y referred_by son first-write-wins: una vez fijados,
//     ningún evento posterior (ni un replay) los sobreescribe.
//   - un código de referido inválido o inexistente se registra y se ignora;
//     el registro del usuario nunca falla por un código malo.
type Reconciler struct {
	tx    TxRunner
	sched Scheduler
	cfg   Config
	log   *logger.Logger
}

// NewReconciler construye el reconciliador.
func NewReconciler(tx TxRunner, sched Scheduler, cfg Config, log *logger.Logger) *Reconciler {
	return &Reconciler{tx: tx, sched: sched, cfg: cfg, log: log}
}

// SyncUser aplica un evento user.created/user.updated. Idempotente: el mismo
// evento entregado N veces produce exactamente un registro y programa el job
// de trial a lo sumo una vez (solo dispara en la rama de primer insert).
func (r *Reconciler) SyncUser(ctx context.Context, ev *Event) (*entity.User, error) {
	var result *entity.User
	var created bool

	err := r.tx.Run(ctx, func(users repository.UserRepository, _ repository.SubscriptionRepository) error {
		existing, err := users.GetByExternalID(ctx, ev.User.ExternalID)
		if err != nil {
			return err
		}
		if existing == nil {
			u, err := r.buildUser(ctx, users, ev.User)
			if err != nil {
				return err
			}
			if err := users.Create(ctx, u); err != nil {
				return err
			}
			result, created = u, true
			return nil
		}
		r.applyUpdate(ctx, users, existing, ev.User)
		if err := users.Update(ctx, existing); err != nil {
			return err
		}
		result = existing
		return nil
	})
	if err != nil {
		return nil, err
	}

	if created {
		r.log.Info().Str("user_id", result.ID).Str("role", result.Role).Msg("usuario creado por webhook de identidad")
		if result.Role == entity.RoleClient {
			r.scheduleTrial(result.ID)
		}
	}
	return result, nil
}

// buildUser arma el perfil inicial a partir del evento.
func (r *Reconciler) buildUser(ctx context.Context, users repository.UserRepository, p UserPayload) (*entity.User, error) {
	role := entity.RoleClient
	if entity.ValidRole(p.RoleHint) {
		role = p.RoleHint
	} else if p.RoleHint != "" {
		r.log.Warn().Str("role_hint", p.RoleHint).Str("external_id", p.ExternalID).Msg("hint de rol desconocido, se asigna client")
	}

	now := time.Now()
	u := &entity.User{
		ID:         uuid.New().String(),
		ExternalID: p.ExternalID,
		Email:      p.Email,
		Name:       p.Name,
		Role:       role,
		Country:    p.Country,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if u.IsStaff() {
		u.ReferralCode = newReferralCode()
	}
	if role == entity.RoleClient && p.ReferralCode != "" {
		u.ReferredBy = r.resolveReferral(ctx, users, p.ReferralCode)
	}
	return u, nil
}

// applyUpdate mezcla un evento posterior sobre un perfil existente.
func (r *Reconciler) applyUpdate(ctx context.Context, users repository.UserRepository, u *entity.User, p UserPayload) {
	u.Email = p.Email
	u.Name = p.Name
	u.UpdatedAt = time.Now()

	// First-write-wins: nunca pisar un rol asignado por un admin ni un
	// referido ya resuelto con datos de un replay.
	if u.Role == "" && entity.ValidRole(p.RoleHint) {
		u.Role = p.RoleHint
	}
	if u.Country == "" {
		u.Country = p.Country
	}
	if u.ReferredBy == "" && u.Role == entity.RoleClient && p.ReferralCode != "" {
		u.ReferredBy = r.resolveReferral(ctx, users, p.ReferralCode)
	}
}

// resolveReferral busca al emisor del código. Solo usuarios sales/admin emiten
// códigos válidos; un código de un client o inexistente se ignora con warning.
func (r *Reconciler) resolveReferral(ctx context.Context, users repository.UserRepository, code string) string {
	issuer, err := users.GetByReferralCode(ctx, code)
	if err != nil {
		r.log.Warn().Err(err).Str("code", code).Msg("lookup de código de referido falló, se ignora")
		return ""
	}
	if issuer == nil || !issuer.IsStaff() {
		r.log.Warn().Str("code", code).Msg("código de referido inválido, se ignora")
		return ""
	}
	return issuer.ID
}

// scheduleTrial programa la creación diferida de la suscripción trial.
// El guard de existencia corre dentro del job: replays del webhook que llegaran
// a programarlo dos veces crearían igualmente una sola suscripción.
func (r *Reconciler) scheduleTrial(userID string) {
	r.sched.Schedule("crear-trial:"+userID, r.cfg.TrialDelay, func(ctx context.Context) error {
		return r.tx.Run(ctx, func(_ repository.UserRepository, subs repository.SubscriptionRepository) error {
			existing, err := subs.GetByUserID(ctx, userID)
			if err != nil {
				return err
			}
			if existing != nil {
				return nil // ya tiene suscripción (replay o checkout más rápido que el job)
			}
			now := time.Now()
			trialEnd := now.AddDate(0, 0, r.cfg.TrialDays)
			return subs.Create(ctx, &entity.Subscription{
				ID:          uuid.New().String(),
				UserID:      userID,
				Plan:        "trial",
				Status:      entity.SubscriptionTrialing,
				TrialEndsAt: &trialEnd,
				CreatedAt:   now,
				UpdatedAt:   now,
			})
		})
	})
}

// newReferralCode código corto legible emitido a usuarios sales/admin.
func newReferralCode() string {
	return strings.ToUpper(strings.ReplaceAll(uuid.New().String(), "-", "")[:8])
}
