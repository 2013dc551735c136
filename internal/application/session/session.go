// Package session (capa de aplicación) carga los hechos de sesión desde los
// repositorios y los entrega al modelo puro de internal/domain/session.
package session

import (
	"sync"

	"github.com/chatokay/chatokay-api/internal/domain/entity"
	domsession "github.com/chatokay/chatokay-api/internal/domain/session"
)

// State contexto de sesión inyectable: contiene los tres hechos con un único
// escritor por hecho y lectores concurrentes. El estado derivado nunca se
// almacena: Facts() entrega una copia y el lector llama a Derive/Guard con
// ella, así la última evaluación siempre gana sobre cualquier valor capturado.
type State struct {
	mu sync.RWMutex

	identityReady bool
	signedIn      bool

	userState domsession.FactState
	user      *entity.User

	businessState domsession.FactState
	business      *entity.Business
}

// NewState estado inicial: nada ha llegado todavía (todo pending).
func NewState() *State {
	return &State{
		userState:     domsession.FactPending,
		businessState: domsession.FactPending,
	}
}

// SetIdentity registra el resultado del handshake del proveedor de identidad.
func (s *State) SetIdentity(ready, signedIn bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.identityReady = ready
	s.signedIn = signedIn
}

// SetUserPending marca el fetch del perfil como en vuelo.
func (s *State) SetUserPending() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.userState = domsession.FactPending
	s.user = nil
}

// SetUser registra el resultado del fetch del perfil (nil = no existe).
func (s *State) SetUser(u *entity.User) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.user = u
	if u == nil {
		s.userState = domsession.FactAbsent
	} else {
		s.userState = domsession.FactResolved
	}
}

// SetBusinessPending marca el fetch del tenant como en vuelo.
func (s *State) SetBusinessPending() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.businessState = domsession.FactPending
	s.business = nil
}

// SetBusiness registra el resultado del fetch del tenant (nil = no existe).
func (s *State) SetBusiness(b *entity.Business) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.business = b
	if b == nil {
		s.businessState = domsession.FactAbsent
	} else {
		s.businessState = domsession.FactResolved
	}
}

// Facts copia consistente de los hechos para el modelo puro.
func (s *State) Facts() domsession.Facts {
	s.mu.RLock()
	defer s.mu.RUnlock()
	role := ""
	if s.user != nil {
		role = s.user.Role
	}
	return domsession.Facts{
		IdentityReady: s.identityReady,
		SignedIn:      s.signedIn,
		User:          s.userState,
		Role:          role,
		Business:      s.businessState,
	}
}

// User perfil cargado (puede ser nil).
func (s *State) User() *entity.User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.user
}

// Business tenant cargado (puede ser nil).
func (s *State) Business() *entity.Business {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.business
}

// Status deriva el estado fresco a partir de los hechos actuales.
func (s *State) Status() domsession.AuthStatus {
	return domsession.Derive(s.Facts())
}
