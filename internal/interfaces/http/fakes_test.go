package http_test

import (
	"context"
	"time"

	"github.com/chatokay/chatokay-api/internal/domain/entity"
	"github.com/chatokay/chatokay-api/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria del paquete (solo lo que los handlers tocan)
// ──────────────────────────────────────────────────────────────────────────────

type userStore struct {
	byExternal map[string]*entity.User
	failures   bool // simula la DB caída
}

func newUserStore() *userStore { return &userStore{byExternal: map[string]*entity.User{}} }

func (s *userStore) Create(_ context.Context, u *entity.User) error {
	cp := *u
	s.byExternal[u.ExternalID] = &cp
	return nil
}

func (s *userStore) GetByID(_ context.Context, id string) (*entity.User, error) {
	for _, u := range s.byExternal {
		if u.ID == id {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

func (s *userStore) GetByExternalID(_ context.Context, externalID string) (*entity.User, error) {
	if s.failures {
		return nil, context.DeadlineExceeded
	}
	if u, ok := s.byExternal[externalID]; ok {
		cp := *u
		return &cp, nil
	}
	return nil, nil
}

func (s *userStore) GetByReferralCode(_ context.Context, code string) (*entity.User, error) {
	for _, u := range s.byExternal {
		if u.ReferralCode != "" && u.ReferralCode == code {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

func (s *userStore) Update(_ context.Context, u *entity.User) error {
	cp := *u
	s.byExternal[u.ExternalID] = &cp
	return nil
}

func (s *userStore) ListByRole(_ context.Context, role string, _, _ int) ([]*entity.User, error) {
	var out []*entity.User
	for _, u := range s.byExternal {
		if u.Role == role {
			cp := *u
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (s *userStore) ListReferredBy(_ context.Context, referrerID string) ([]*entity.User, error) {
	var out []*entity.User
	for _, u := range s.byExternal {
		if u.ReferredBy == referrerID {
			cp := *u
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (s *userStore) CountReferredBy(ctx context.Context, referrerID string) (int, error) {
	list, _ := s.ListReferredBy(ctx, referrerID)
	return len(list), nil
}

type businessStore struct {
	byID map[string]*entity.Business
}

func newBusinessStore() *businessStore { return &businessStore{byID: map[string]*entity.Business{}} }

func (s *businessStore) Create(_ context.Context, b *entity.Business) error {
	cp := *b
	s.byID[b.ID] = &cp
	return nil
}

func (s *businessStore) GetByID(_ context.Context, id string) (*entity.Business, error) {
	if b, ok := s.byID[id]; ok {
		cp := *b
		return &cp, nil
	}
	return nil, nil
}

func (s *businessStore) GetByOwner(_ context.Context, ownerID string) (*entity.Business, error) {
	for _, b := range s.byID {
		if b.OwnerID == ownerID {
			cp := *b
			return &cp, nil
		}
	}
	return nil, nil
}

func (s *businessStore) GetBySubdomain(_ context.Context, subdomain string) (*entity.Business, error) {
	for _, b := range s.byID {
		if b.Subdomain == subdomain {
			cp := *b
			return &cp, nil
		}
	}
	return nil, nil
}

func (s *businessStore) Update(_ context.Context, b *entity.Business) error {
	cp := *b
	s.byID[b.ID] = &cp
	return nil
}

type subStore struct {
	byUser map[string]*entity.Subscription
}

func newSubStore() *subStore { return &subStore{byUser: map[string]*entity.Subscription{}} }

func (s *subStore) Create(_ context.Context, sub *entity.Subscription) error {
	cp := *sub
	s.byUser[sub.UserID] = &cp
	return nil
}

func (s *subStore) GetByUserID(_ context.Context, userID string) (*entity.Subscription, error) {
	if sub, ok := s.byUser[userID]; ok {
		cp := *sub
		return &cp, nil
	}
	return nil, nil
}

func (s *subStore) GetByStripeCustomer(_ context.Context, customerID string) (*entity.Subscription, error) {
	for _, sub := range s.byUser {
		if sub.StripeCustomerID == customerID {
			cp := *sub
			return &cp, nil
		}
	}
	return nil, nil
}

func (s *subStore) GetByStripeSubscription(_ context.Context, subscriptionID string) (*entity.Subscription, error) {
	for _, sub := range s.byUser {
		if sub.StripeSubscriptionID == subscriptionID {
			cp := *sub
			return &cp, nil
		}
	}
	return nil, nil
}

func (s *subStore) Update(_ context.Context, sub *entity.Subscription) error {
	cp := *sub
	s.byUser[sub.UserID] = &cp
	return nil
}

type serviceStore struct {
	byID map[string]*entity.Service
}

func newServiceStore() *serviceStore { return &serviceStore{byID: map[string]*entity.Service{}} }

func (s *serviceStore) Create(_ context.Context, svc *entity.Service) error {
	cp := *svc
	s.byID[svc.ID] = &cp
	return nil
}

func (s *serviceStore) GetByID(_ context.Context, id string) (*entity.Service, error) {
	if svc, ok := s.byID[id]; ok {
		cp := *svc
		return &cp, nil
	}
	return nil, nil
}

func (s *serviceStore) ListByBusiness(_ context.Context, businessID string) ([]*entity.Service, error) {
	var out []*entity.Service
	for _, svc := range s.byID {
		if svc.BusinessID == businessID {
			cp := *svc
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (s *serviceStore) Update(_ context.Context, svc *entity.Service) error {
	cp := *svc
	s.byID[svc.ID] = &cp
	return nil
}

func (s *serviceStore) Delete(_ context.Context, id string) error {
	delete(s.byID, id)
	return nil
}

type appointmentStore struct {
	byID map[string]*entity.Appointment
}

func newAppointmentStore() *appointmentStore {
	return &appointmentStore{byID: map[string]*entity.Appointment{}}
}

func (s *appointmentStore) Create(_ context.Context, a *entity.Appointment) error {
	cp := *a
	s.byID[a.ID] = &cp
	return nil
}

func (s *appointmentStore) GetByID(_ context.Context, id string) (*entity.Appointment, error) {
	if a, ok := s.byID[id]; ok {
		cp := *a
		return &cp, nil
	}
	return nil, nil
}

func (s *appointmentStore) GetByCancelToken(_ context.Context, token string) (*entity.Appointment, error) {
	for _, a := range s.byID {
		if a.CancelToken == token {
			cp := *a
			return &cp, nil
		}
	}
	return nil, nil
}

func (s *appointmentStore) ListByBusiness(_ context.Context, businessID string, _, _ time.Time) ([]*entity.Appointment, error) {
	var out []*entity.Appointment
	for _, a := range s.byID {
		if a.BusinessID == businessID {
			cp := *a
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (s *appointmentStore) Update(_ context.Context, a *entity.Appointment) error {
	cp := *a
	s.byID[a.ID] = &cp
	return nil
}

type settingsStore struct {
	row *entity.PlatformSettings
}

func (s *settingsStore) Get(_ context.Context) (*entity.PlatformSettings, error) {
	if s.row == nil {
		return nil, nil
	}
	cp := *s.row
	return &cp, nil
}

func (s *settingsStore) Save(_ context.Context, row *entity.PlatformSettings) error {
	cp := *row
	s.row = &cp
	return nil
}

// stubPDF generador de reportes que devuelve un PDF mínimo.
type stubPDF struct{}

func (stubPDF) GenerateAppointmentsReport(
	_ context.Context,
	_ *entity.Business,
	_ []*entity.Appointment,
	_ map[string]*entity.Service,
	_, _ time.Time,
) ([]byte, error) {
	return []byte("%PDF-1.4"), nil
}

// fakeTxRunner entrega los stores directamente, sin transacción real.
type fakeTxRunner struct {
	users *userStore
	subs  *subStore
}

func (f *fakeTxRunner) Run(_ context.Context, fn func(repository.UserRepository, repository.SubscriptionRepository) error) error {
	return fn(f.users, f.subs)
}

// noopScheduler descarta los jobs: los tests de handlers no esperan al trial.
type noopScheduler struct{}

func (noopScheduler) Schedule(string, time.Duration, func(ctx context.Context) error) {}

// memDedup deduplicador en memoria.
type memDedup struct {
	seen map[string]bool
}

func newMemDedup() *memDedup { return &memDedup{seen: map[string]bool{}} }

func (d *memDedup) Seen(_ context.Context, eventID string) bool {
	if d.seen[eventID] {
		return true
	}
	d.seen[eventID] = true
	return false
}
