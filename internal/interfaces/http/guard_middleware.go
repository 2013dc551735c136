package http

import (
	"github.com/gofiber/fiber/v2"

	appsession "github.com/chatokay/chatokay-api/internal/application/session"
	domsession "github.com/chatokay/chatokay-api/internal/domain/session"
)

// RequireArea guard de un área protegida. Resuelve los hechos de sesión de la
// petición y aplica la tabla única de decisiones del dominio; las tres áreas
// usan exactamente este middleware, solo cambia el parámetro.
//
//   - Wait     -> 200 con placeholder neutro, sin Location (sin navegación).
//   - Redirect -> 307 al destino que dictó la tabla.
//   - Render   -> el estado resuelto queda en locals y sigue la cadena.
func RequireArea(area domsession.Area, uc *appsession.UseCase) fiber.Handler {
	return func(c *fiber.Ctx) error {
		st := uc.Resolve(c.Context(), GetExternalID(c), IsSignedIn(c))

		decision := domsession.Guard(st.Facts(), area)
		switch decision.Kind {
		case domsession.DecisionWait:
			return c.Status(fiber.StatusOK).JSON(fiber.Map{"status": string(domsession.StatusLoading)})
		case domsession.DecisionRedirect:
			return c.Redirect(decision.Target, fiber.StatusTemporaryRedirect)
		default:
			c.Locals(LocalSession, st)
			return c.Next()
		}
	}
}
