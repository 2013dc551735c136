// Package session implementa el modelo de resolución de sesión y rol:
// una función pura que reconcilia tres hechos que llegan de forma asíncrona
// e independiente (estado del proveedor de identidad, perfil de usuario,
// negocio del tenant) en un único AuthStatus, y la tabla de decisiones que
// cada área protegida aplica sobre ese estado.
//
// El paquete no hace I/O: los hechos se le entregan ya cargados y el estado
// se recalcula en cada evaluación, nunca se almacena.
package session

// AuthStatus fase derivada de la sesión.
type AuthStatus string

const (
	StatusLoading         AuthStatus = "loading"
	StatusUnauthenticated AuthStatus = "unauthenticated"
	StatusOnboarding      AuthStatus = "onboarding"
	StatusAuthenticated   AuthStatus = "authenticated"
)

// FactState estado de un hecho que puede no haber llegado todavía.
type FactState int

const (
	// FactPending la consulta del hecho sigue en vuelo.
	FactPending FactState = iota
	// FactAbsent la consulta terminó y el registro no existe.
	FactAbsent
	// FactResolved la consulta terminó y el registro existe.
	FactResolved
)

// Facts los tres hechos de los que AuthStatus es función. Cada uno tiene un
// único escritor (su propia suscripción/fetch) y múltiples lectores.
type Facts struct {
	// IdentityReady el proveedor de identidad completó su handshake inicial.
	IdentityReady bool
	// SignedIn solo tiene significado cuando IdentityReady es true.
	SignedIn bool
	// User estado del fetch del perfil; Role solo es válido con FactResolved.
	User FactState
	Role string
	// Business estado del fetch del tenant; solo relevante para rol client.
	Business FactState
}
