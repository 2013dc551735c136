package http_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domsession "github.com/chatokay/chatokay-api/internal/domain/session"
	apphttp "github.com/chatokay/chatokay-api/internal/interfaces/http"
)

// ──────────────────────────────────────────────────────────────────────────────
// Tests SubdomainRewrite
// ──────────────────────────────────────────────────────────────────────────────

func newRewriteApp() *fiber.App {
	app := fiber.New()
	app.Use(apphttp.SubdomainRewrite("chatokay.com"))
	app.Get("/t/:subdomain", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"tenant": c.Params("subdomain")})
	})
	app.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"page": "landing"})
	})
	return app
}

func getHost(t *testing.T, app *fiber.App, host, path string) *http.Response {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	req.Host = host
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func TestSubdomainRewrite_TenantVaASuPagina(t *testing.T) {
	app := newRewriteApp()

	resp := getHost(t, app, "barberia-sur.chatokay.com", "/")
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var body map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "barberia-sur", body["tenant"],
		"la petición al subdominio se reescribe a /t/{sub}")
}

func TestSubdomainRewrite_DominioRaizNoSeToca(t *testing.T) {
	app := newRewriteApp()

	for _, host := range []string{"chatokay.com", "www.chatokay.com", "chatokay.com:8080"} {
		resp := getHost(t, app, host, "/")
		defer resp.Body.Close()

		var body map[string]string
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
		assert.Equal(t, "landing", body["page"], "host %s", host)
	}
}

func TestSubdomainRewrite_HostAjenoNoSeReescribe(t *testing.T) {
	app := newRewriteApp()

	resp := getHost(t, app, "barberia.otracosa.com", "/")
	defer resp.Body.Close()

	var body map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "landing", body["page"],
		"hosts desconocidos se sirven como el dominio raíz, jamás como tenant")
}

func TestSubdomainRewrite_SubdominioAnidadoNoEsTenant(t *testing.T) {
	app := newRewriteApp()

	resp := getHost(t, app, "a.b.chatokay.com", "/")
	defer resp.Body.Close()

	var body map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "landing", body["page"])
}

func TestSubdomainRewrite_RutaTenantDirecta_NoReescribeOtraVez(t *testing.T) {
	app := newRewriteApp()

	// Llega ya con /t/: el guard del prefijo evita un segundo RestartRouting.
	resp := getHost(t, app, "barberia-sur.chatokay.com", "/t/barberia-sur")
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var body map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "barberia-sur", body["tenant"])
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests RequireSignIn (matcher público/protegido del dominio raíz)
// ──────────────────────────────────────────────────────────────────────────────

func newSignInApp(signedIn bool) *fiber.App {
	app := fiber.New()
	app.Use(func(c *fiber.Ctx) error {
		c.Locals("signed_in", signedIn)
		return c.Next()
	})
	app.Use(apphttp.RequireSignIn([]string{"/", "/sign-in", "/api/session"}))
	handler := func(c *fiber.Ctx) error { return c.SendStatus(http.StatusOK) }
	app.Get("/", handler)
	app.Get("/sign-in", handler)
	app.Get("/api/session", handler)
	app.Get("/api/privado", handler)
	return app
}

func TestRequireSignIn_RutasPublicasPasanSiempre(t *testing.T) {
	app := newSignInApp(false)
	for _, path := range []string{"/", "/sign-in", "/api/session"} {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		resp, err := app.Test(req, -1)
		require.NoError(t, err)
		resp.Body.Close()
		assert.Equal(t, http.StatusOK, resp.StatusCode, "ruta %s", path)
	}
}

func TestRequireSignIn_ProtegidaSinSesion_Redirige(t *testing.T) {
	app := newSignInApp(false)
	req := httptest.NewRequest(http.MethodGet, "/api/privado", nil)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusTemporaryRedirect, resp.StatusCode)
	assert.Equal(t, domsession.PathSignIn, resp.Header.Get("Location"))
}

func TestRequireSignIn_ProtegidaConSesion_Pasa(t *testing.T) {
	app := newSignInApp(true)
	req := httptest.NewRequest(http.MethodGet, "/api/privado", nil)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}
