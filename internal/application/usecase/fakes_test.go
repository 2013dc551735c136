package usecase_test

import (
	"context"
	"time"

	"github.com/chatokay/chatokay-api/internal/domain/entity"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria compartidos por los tests del paquete
// ──────────────────────────────────────────────────────────────────────────────

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

type userStore struct {
	byID map[string]*entity.User
}

func newUserStore() *userStore { return &userStore{byID: map[string]*entity.User{}} }

func (s *userStore) Create(_ context.Context, u *entity.User) error {
	cp := *u
	s.byID[u.ID] = &cp
	return nil
}

func (s *userStore) GetByID(_ context.Context, id string) (*entity.User, error) {
	if u, ok := s.byID[id]; ok {
		cp := *u
		return &cp, nil
	}
	return nil, nil
}

func (s *userStore) GetByExternalID(_ context.Context, externalID string) (*entity.User, error) {
	for _, u := range s.byID {
		if u.ExternalID == externalID {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

func (s *userStore) GetByReferralCode(_ context.Context, code string) (*entity.User, error) {
	for _, u := range s.byID {
		if u.ReferralCode != "" && u.ReferralCode == code {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

func (s *userStore) Update(_ context.Context, u *entity.User) error {
	cp := *u
	s.byID[u.ID] = &cp
	return nil
}

func (s *userStore) ListByRole(_ context.Context, role string, _, _ int) ([]*entity.User, error) {
	var out []*entity.User
	for _, u := range s.byID {
		if u.Role == role {
			cp := *u
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (s *userStore) ListReferredBy(_ context.Context, referrerID string) ([]*entity.User, error) {
	var out []*entity.User
	for _, u := range s.byID {
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
	byID    map[string]*entity.Appointment
	updates int
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

func (s *appointmentStore) ListByBusiness(_ context.Context, businessID string, from, to time.Time) ([]*entity.Appointment, error) {
	var out []*entity.Appointment
	for _, a := range s.byID {
		if a.BusinessID == businessID && !a.StartsAt.Before(from) && a.StartsAt.Before(to) {
			cp := *a
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (s *appointmentStore) Update(_ context.Context, a *entity.Appointment) error {
	s.updates++
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

// fakeCache cache de tenants con contadores para verificar hits e invalidaciones.
type fakeCache struct {
	data        map[string]*entity.Business
	hits        int
	invalidated []string
}

func newFakeCache() *fakeCache { return &fakeCache{data: map[string]*entity.Business{}} }

func (c *fakeCache) Get(_ context.Context, subdomain string) (*entity.Business, bool) {
	if b, ok := c.data[subdomain]; ok {
		c.hits++
		cp := *b
		return &cp, true
	}
	return nil, false
}

func (c *fakeCache) Set(_ context.Context, b *entity.Business) {
	cp := *b
	c.data[b.Subdomain] = &cp
}

func (c *fakeCache) Invalidate(_ context.Context, subdomain string) {
	c.invalidated = append(c.invalidated, subdomain)
	delete(c.data, subdomain)
}

// fixedGeo resuelve siempre el mismo país.
type fixedGeo struct{ country string }

func (g fixedGeo) Country(context.Context, string) string { return g.country }
