package session

import (
	"context"

	"github.com/chatokay/chatokay-api/internal/application/dto"
	"github.com/chatokay/chatokay-api/internal/domain/entity"
	"github.com/chatokay/chatokay-api/internal/domain/repository"
	domsession "github.com/chatokay/chatokay-api/internal/domain/session"
	"github.com/chatokay/chatokay-api/pkg/logger"
)

// UseCase resuelve la sesión de una petición: carga perfil y tenant y deja
// que el modelo puro derive el estado. Nunca devuelve error hacia el guard:
// un fetch fallido deja su hecho en pending y el estado degrada a loading
// (fail-safe, jamás una redirección equivocada por un error de DB).
type UseCase struct {
	users      repository.UserRepository
	businesses repository.BusinessRepository
	log        *logger.Logger
}

// NewUseCase construye el caso de uso de sesión.
func NewUseCase(users repository.UserRepository, businesses repository.BusinessRepository, log *logger.Logger) *UseCase {
	return &UseCase{users: users, businesses: businesses, log: log}
}

// Resolve construye el State de la petición. identityReady es siempre true
// aquí (el middleware ya terminó el handshake: parseó o descartó el token);
// signedIn indica si hubo un token de sesión válido.
func (uc *UseCase) Resolve(ctx context.Context, externalID string, signedIn bool) *State {
	st := NewState()
	st.SetIdentity(true, signedIn)
	if !signedIn {
		return st
	}

	user, err := uc.users.GetByExternalID(ctx, externalID)
	if err != nil {
		// Hecho no disponible: se queda pending y el estado queda en loading.
		uc.log.Error().Err(err).Str("external_id", externalID).Msg("sesión: fetch de usuario falló")
		return st
	}
	st.SetUser(user)
	if user == nil || user.Role != entity.RoleClient {
		return st
	}

	business, err := uc.businesses.GetByOwner(ctx, user.ID)
	if err != nil {
		uc.log.Error().Err(err).Str("user_id", user.ID).Msg("sesión: fetch de negocio falló")
		return st
	}
	st.SetBusiness(business)
	return st
}

// Snapshot arma la respuesta de GET /api/session a partir de un State.
func Snapshot(st *State) *dto.SessionResponse {
	facts := st.Facts()
	status := domsession.Derive(facts)
	resp := &dto.SessionResponse{Status: string(status)}

	if u := st.User(); u != nil {
		resp.Role = u.Role
		if area := domsession.AreaForRole(u.Role); area != "" {
			resp.HomePath = domsession.HomePath(area)
		}
		resp.User = ToUserResponse(u)
	}
	if b := st.Business(); b != nil {
		resp.Business = ToBusinessResponse(b)
	}
	return resp
}

// ToUserResponse mapea la entidad al DTO público (sin external id).
func ToUserResponse(u *entity.User) *dto.UserResponse {
	if u == nil {
		return nil
	}
	return &dto.UserResponse{
		ID:           u.ID,
		Email:        u.Email,
		Name:         u.Name,
		Role:         u.Role,
		Country:      u.Country,
		ReferralCode: u.ReferralCode,
		CreatedAt:    u.CreatedAt,
	}
}

// ToBusinessResponse mapea la entidad al DTO público.
func ToBusinessResponse(b *entity.Business) *dto.BusinessResponse {
	if b == nil {
		return nil
	}
	return &dto.BusinessResponse{
		ID:          b.ID,
		Name:        b.Name,
		Subdomain:   b.Subdomain,
		Description: b.Description,
		Timezone:    b.Timezone,
		OpensAt:     b.OpensAt,
		ClosesAt:    b.ClosesAt,
		SlotMinutes: b.SlotMinutes,
		Status:      b.Status,
		CreatedAt:   b.CreatedAt,
	}
}
