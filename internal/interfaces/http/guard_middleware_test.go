package http_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appsession "github.com/chatokay/chatokay-api/internal/application/session"
	"github.com/chatokay/chatokay-api/internal/domain/entity"
	domsession "github.com/chatokay/chatokay-api/internal/domain/session"
	apphttp "github.com/chatokay/chatokay-api/internal/interfaces/http"
	"github.com/chatokay/chatokay-api/pkg/logger"
	"github.com/chatokay/chatokay-api/pkg/sessiontoken"
)

const (
	testSessionSecret = "secreto-de-sesion-para-tests"
	testIssuer        = "chatokay-test"
)

// guardFixture app Fiber con el middleware de sesión y las tres áreas montadas.
type guardFixture struct {
	app   *fiber.App
	users *userStore
	biz   *businessStore
}

func newGuardFixture() *guardFixture {
	users := newUserStore()
	biz := newBusinessStore()
	sessionUC := appsession.NewUseCase(users, biz, logger.Nop())

	app := fiber.New()
	app.Use(apphttp.SessionMiddleware(testSessionSecret, testIssuer))
	for _, area := range []domsession.Area{domsession.AreaAdmin, domsession.AreaSales, domsession.AreaClient} {
		a := area
		app.Get("/api/"+string(a)+"/ping", apphttp.RequireArea(a, sessionUC), func(c *fiber.Ctx) error {
			return c.JSON(fiber.Map{"area": string(a)})
		})
	}
	return &guardFixture{app: app, users: users, biz: biz}
}

func (f *guardFixture) seedUser(externalID, role string, withBusiness bool) {
	u := &entity.User{ID: "id-" + externalID, ExternalID: externalID, Role: role}
	_ = f.users.Create(context.Background(), u)
	if withBusiness {
		_ = f.biz.Create(context.Background(), &entity.Business{ID: "b-" + externalID, OwnerID: u.ID, Subdomain: externalID})
	}
}

func (f *guardFixture) get(t *testing.T, path, externalID string) *http.Response {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if externalID != "" {
		tok, err := sessiontoken.Generate(testSessionSecret, testIssuer, externalID, "", time.Hour)
		require.NoError(t, err)
		req.Header.Set("Authorization", "Bearer "+tok)
	}
	resp, err := f.app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests RequireArea
// ──────────────────────────────────────────────────────────────────────────────

func TestRequireArea_SinSesion_RedirigeAlSignIn(t *testing.T) {
	fx := newGuardFixture()

	resp := fx.get(t, "/api/dashboard/ping", "")
	defer resp.Body.Close()
	assert.Equal(t, http.StatusTemporaryRedirect, resp.StatusCode)
	assert.Equal(t, domsession.PathSignIn, resp.Header.Get("Location"))

	resp = fx.get(t, "/api/admin/ping", "")
	defer resp.Body.Close()
	assert.Equal(t, http.StatusTemporaryRedirect, resp.StatusCode)
	assert.Equal(t, domsession.PathStaffSignIn, resp.Header.Get("Location"),
		"las áreas de personal usan la entrada interna")
}

func TestRequireArea_RolPropio_Renderiza(t *testing.T) {
	fx := newGuardFixture()
	fx.seedUser("user_admin", entity.RoleAdmin, false)

	resp := fx.get(t, "/api/admin/ping", "user_admin")
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var body map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "admin", body["area"])
}

func TestRequireArea_VendedorEnAdmin_RedirigeAComercial(t *testing.T) {
	fx := newGuardFixture()
	fx.seedUser("user_sales", entity.RoleSales, false)

	resp := fx.get(t, "/api/admin/ping", "user_sales")
	defer resp.Body.Close()
	assert.Equal(t, http.StatusTemporaryRedirect, resp.StatusCode)
	assert.Equal(t, domsession.PathSalesHome, resp.Header.Get("Location"),
		"el contenido de otra área jamás se renderiza")
}

func TestRequireArea_ClienteSinNegocio_RedirigeAOnboarding(t *testing.T) {
	fx := newGuardFixture()
	fx.seedUser("user_nuevo", entity.RoleClient, false)

	resp := fx.get(t, "/api/dashboard/ping", "user_nuevo")
	defer resp.Body.Close()
	assert.Equal(t, http.StatusTemporaryRedirect, resp.StatusCode)
	assert.Equal(t, domsession.PathOnboarding, resp.Header.Get("Location"))
}

func TestRequireArea_ClienteConNegocio_Renderiza(t *testing.T) {
	fx := newGuardFixture()
	fx.seedUser("user_cliente", entity.RoleClient, true)

	resp := fx.get(t, "/api/dashboard/ping", "user_cliente")
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestRequireArea_PerfilAunNoMaterializado_Espera(t *testing.T) {
	// Firmado pero el webhook todavía no creó el perfil: 200 neutro sin
	// Location, el frontend reintenta; nunca un redirect equivocado.
	fx := newGuardFixture()

	resp := fx.get(t, "/api/dashboard/ping", "user_fantasma")
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Empty(t, resp.Header.Get("Location"))

	var body map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "loading", body["status"])
}

func TestRequireArea_DBCaida_DegradaALoading(t *testing.T) {
	// Fail-safe: un error de fetch deja el hecho pending y el guard espera en
	// vez de redirigir con información incompleta.
	fx := newGuardFixture()
	fx.seedUser("user_cliente", entity.RoleClient, true)
	fx.users.failures = true

	resp := fx.get(t, "/api/dashboard/ping", "user_cliente")
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var body map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "loading", body["status"])
}

func TestRequireArea_TokenInvalido_EsAnonimo(t *testing.T) {
	fx := newGuardFixture()

	req := httptest.NewRequest(http.MethodGet, "/api/dashboard/ping", nil)
	req.Header.Set("Authorization", "Bearer token.basura.aqui")
	resp, err := fx.app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusTemporaryRedirect, resp.StatusCode,
		"token inválido equivale a no firmado: redirect a sign-in, no 401")
	assert.Equal(t, domsession.PathSignIn, resp.Header.Get("Location"))
}
