package session

import "github.com/chatokay/chatokay-api/internal/domain/entity"

// Area áreas protegidas de la aplicación.
type Area string

const (
	AreaAdmin  Area = "admin"
	AreaSales  Area = "comercial"
	AreaClient Area = "dashboard"
)

// Rutas de navegación de la aplicación. El guard solo produce destinos de esta
// lista; las áreas nunca construyen redirects por su cuenta.
const (
	PathSignIn      = "/sign-in"       // entrada pública (clientes)
	PathStaffSignIn = "/staff/sign-in" // entrada interna (admin y comercial)
	PathOnboarding  = "/onboarding"
	PathAdminHome   = "/admin"
	PathSalesHome   = "/comercial"
	PathClientHome  = "/dashboard"
)

// DecisionKind qué debe hacer el layout del área.
type DecisionKind int

const (
	// DecisionWait render de placeholder neutro, sin navegación.
	DecisionWait DecisionKind = iota
	// DecisionRender el rol coincide con el área: renderizar contenido.
	DecisionRender
	// DecisionRedirect navegar a Target sin renderizar nada del área.
	DecisionRedirect
)

// Decision resultado del guard para una evaluación concreta.
type Decision struct {
	Kind   DecisionKind
	Target string // solo con DecisionRedirect
}

// AreaForRole área propia de cada rol. Cadena vacía para roles desconocidos.
func AreaForRole(role string) Area {
	switch role {
	case entity.RoleAdmin:
		return AreaAdmin
	case entity.RoleSales:
		return AreaSales
	case entity.RoleClient:
		return AreaClient
	default:
		return ""
	}
}

// HomePath ruta por defecto de un área.
func HomePath(a Area) string {
	switch a {
	case AreaAdmin:
		return PathAdminHome
	case AreaSales:
		return PathSalesHome
	default:
		return PathClientHome
	}
}

// signInPath entrada de sign-in apropiada para el área: las áreas de personal
// usan la entrada interna, el dashboard de clientes la pública.
func signInPath(a Area) string {
	if a == AreaAdmin || a == AreaSales {
		return PathStaffSignIn
	}
	return PathSignIn
}

// Guard aplica el contrato de acceso por área sobre el estado derivado.
// Es la única implementación de la tabla de redirecciones: todas las áreas
// la evalúan idéntica, lo que elimina la divergencia entre layouts (un área
// olvidando la rama de onboarding, etc.).
//
//	loading                        -> Wait (placeholder, sin navegación)
//	unauthenticated                -> Redirect al sign-in del área
//	onboarding                     -> Redirect a /onboarding
//	authenticated, rol de otra área -> Redirect al home del rol (nunca se
//	                                  renderiza contenido ajeno, ni un tick)
//	authenticated, rol del área    -> Render
func Guard(f Facts, area Area) Decision {
	switch Derive(f) {
	case StatusLoading:
		return Decision{Kind: DecisionWait}
	case StatusUnauthenticated:
		return Decision{Kind: DecisionRedirect, Target: signInPath(area)}
	case StatusOnboarding:
		return Decision{Kind: DecisionRedirect, Target: PathOnboarding}
	default: // authenticated
		own := AreaForRole(f.Role)
		if own == area {
			return Decision{Kind: DecisionRender}
		}
		return Decision{Kind: DecisionRedirect, Target: HomePath(own)}
	}
}
