package session

import "github.com/chatokay/chatokay-api/internal/domain/entity"

// Derive calcula AuthStatus a partir de los hechos. Es una función total:
// cualquier combinación de entradas produce un estado, y las combinaciones
// no reconocidas (rol desconocido, usuario ausente estando firmado) degradan
// a loading, nunca a una redirección equivocada.
//
// Tabla:
//
//	identityReady=false                      -> loading
//	signedIn=false                           -> unauthenticated
//	user pending o ausente                   -> loading
//	rol admin/sales                          -> authenticated (no esperan Business)
//	rol client + business pending            -> loading
//	rol client + business ausente            -> onboarding
//	rol client + business resuelto           -> authenticated
//	rol no reconocido                        -> loading
func Derive(f Facts) AuthStatus {
	if !f.IdentityReady {
		return StatusLoading
	}
	if !f.SignedIn {
		return StatusUnauthenticated
	}
	if f.User != FactResolved {
		// pending o ausente: un usuario firmado sin perfil no debería ocurrir
		// (el webhook lo crea en el primer sign-in), pero se trata como carga
		// en curso para no expulsar al usuario durante la ventana de sincronización.
		return StatusLoading
	}
	switch f.Role {
	case entity.RoleAdmin, entity.RoleSales:
		// El personal de la plataforma nunca posee un Business: esperar ese
		// fetch los dejaría en loading para siempre.
		return StatusAuthenticated
	case entity.RoleClient:
		switch f.Business {
		case FactPending:
			return StatusLoading
		case FactAbsent:
			return StatusOnboarding
		default:
			return StatusAuthenticated
		}
	default:
		// Rol malformado: no adivinar destino.
		return StatusLoading
	}
}
