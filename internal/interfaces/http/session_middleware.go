package http

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	appsession "github.com/chatokay/chatokay-api/internal/application/session"
	"github.com/chatokay/chatokay-api/pkg/sessiontoken"
)

// Locals keys de la sesión en Fiber.
const (
	LocalExternalID = "external_id"
	LocalSignedIn   = "signed_in"
	LocalSession    = "session_state"
)

// SessionMiddleware completa el handshake de identidad de la petición: busca
// el token de sesión (cookie __session o Bearer), lo valida y deja el
// resultado en locals. Nunca rechaza: la decisión de acceso es del guard de
// cada área, no de este middleware (las rutas públicas también pasan por aquí).
func SessionMiddleware(secret, issuer string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		token := sessionTokenFrom(c)
		if token == "" || secret == "" {
			c.Locals(LocalSignedIn, false)
			return c.Next()
		}
		ident, err := sessiontoken.Parse(secret, issuer, token)
		if err != nil {
			// Token inválido o expirado = no firmado, no un error HTTP.
			c.Locals(LocalSignedIn, false)
			return c.Next()
		}
		c.Locals(LocalSignedIn, true)
		c.Locals(LocalExternalID, ident.ExternalID)
		return c.Next()
	}
}

// sessionTokenFrom extrae el token: cookie del proveedor primero, Bearer después.
func sessionTokenFrom(c *fiber.Ctx) string {
	if cookie := c.Cookies("__session"); cookie != "" {
		return cookie
	}
	authHeader := c.Get("Authorization")
	if authHeader == "" {
		return ""
	}
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}

// GetExternalID id externo del usuario firmado ("" si no hay sesión).
func GetExternalID(c *fiber.Ctx) string {
	v := c.Locals(LocalExternalID)
	if v == nil {
		return ""
	}
	s, _ := v.(string)
	return s
}

// IsSignedIn reporta si la petición trae una sesión válida.
func IsSignedIn(c *fiber.Ctx) bool {
	v := c.Locals(LocalSignedIn)
	if v == nil {
		return false
	}
	b, _ := v.(bool)
	return b
}

// GetSessionState estado de sesión resuelto por el guard (nil fuera de áreas protegidas).
func GetSessionState(c *fiber.Ctx) *appsession.State {
	v := c.Locals(LocalSession)
	if v == nil {
		return nil
	}
	st, _ := v.(*appsession.State)
	return st
}
