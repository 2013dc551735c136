package http

import (
	"net"
	"strings"

	"github.com/gofiber/fiber/v2"

	domsession "github.com/chatokay/chatokay-api/internal/domain/session"
)

// SubdomainRewrite reescribe las peticiones a {sub}.<rootDomain> hacia la
// ruta interna /t/{sub}/... para que el router las despache como páginas de
// tenant. Las peticiones al dominio raíz (y a www) pasan sin tocar.
func SubdomainRewrite(rootDomain string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		// Ya reescrita (o ruta de tenant directa): no reiniciar el routing otra vez.
		if strings.HasPrefix(c.Path(), "/t/") {
			return c.Next()
		}

		sub := subdomainOf(hostOf(c), rootDomain)
		if sub == "" {
			return c.Next()
		}

		c.Path("/t/" + sub + c.Path())
		return c.RestartRouting()
	}
}

// hostOf host de la petición sin puerto.
func hostOf(c *fiber.Ctx) string {
	host := c.Hostname()
	if h, _, err := net.SplitHostPort(host); err == nil {
		host = h
	}
	return strings.ToLower(host)
}

// subdomainOf extrae la etiqueta de subdominio, o "" si la petición es al
// dominio raíz, a www, o a un host ajeno (no se reescriben hosts desconocidos).
func subdomainOf(host, rootDomain string) string {
	if host == rootDomain || rootDomain == "" {
		return ""
	}
	sub, found := strings.CutSuffix(host, "."+rootDomain)
	if !found || sub == "" || sub == "www" {
		return ""
	}
	if strings.Contains(sub, ".") {
		// Solo un nivel de subdominio es un tenant.
		return ""
	}
	return sub
}

// RequireSignIn matcher público/protegido del dominio raíz: las rutas fuera
// de la lista de exentos exigen sesión y redirigen a sign-in si no la hay.
// Los prefijos con guard de área propio también van en la lista de exentos:
// el guard decide el sign-in correcto según el área (staff vs. público) y
// este matcher no debe adelantarse con el destino genérico.
func RequireSignIn(skipPrefixes []string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		path := c.Path()
		for _, p := range skipPrefixes {
			if p == "/" {
				if path == "/" {
					return c.Next()
				}
				continue
			}
			if path == p || strings.HasPrefix(path, p+"/") {
				return c.Next()
			}
		}
		if !IsSignedIn(c) {
			return c.Redirect(domsession.PathSignIn, fiber.StatusTemporaryRedirect)
		}
		return c.Next()
	}
}
