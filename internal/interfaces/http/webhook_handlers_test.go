package http_test

import (
	"bytes"
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chatokay/chatokay-api/internal/application/billing"
	"github.com/chatokay/chatokay-api/internal/application/identity"
	"github.com/chatokay/chatokay-api/internal/domain/entity"
	apphttp "github.com/chatokay/chatokay-api/internal/interfaces/http"
	"github.com/chatokay/chatokay-api/pkg/logger"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de firma
// ──────────────────────────────────────────────────────────────────────────────

const clerkRawKey = "clave-svix-de-tests"

func clerkSecret() string {
	return "whsec_" + base64.StdEncoding.EncodeToString([]byte(clerkRawKey))
}

func svixHeadersFor(id string, payload []byte) map[string]string {
	ts := strconv.FormatInt(time.Now().Unix(), 10)
	mac := hmac.New(sha256.New, []byte(clerkRawKey))
	fmt.Fprintf(mac, "%s.%s.%s", id, ts, payload)
	return map[string]string{
		"svix-id":        id,
		"svix-timestamp": ts,
		"svix-signature": "v1," + base64.StdEncoding.EncodeToString(mac.Sum(nil)),
	}
}

const stripeTestSecret = "whsec_stripe_tests"

func stripeHeaderFor(payload []byte) string {
	ts := strconv.FormatInt(time.Now().Unix(), 10)
	mac := hmac.New(sha256.New, []byte(stripeTestSecret))
	fmt.Fprintf(mac, "%s.%s", ts, payload)
	return fmt.Sprintf("t=%s,v1=%s", ts, hex.EncodeToString(mac.Sum(nil)))
}

func postJSON(t *testing.T, app *fiber.App, path string, payload []byte, headers map[string]string) *http.Response {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func userCreatedPayload(externalID, email string) []byte {
	return []byte(fmt.Sprintf(`{
		"type": "user.created",
		"data": {
			"id": %q,
			"first_name": "Ana",
			"primary_email_address_id": "em_1",
			"email_addresses": [{"id": "em_1", "email_address": %q}]
		}
	}`, externalID, email))
}

// ──────────────────────────────────────────────────────────────────────────────
// Webhook de identidad
// ──────────────────────────────────────────────────────────────────────────────

type clerkFixture struct {
	app   *fiber.App
	users *userStore
	dedup *memDedup
}

func newClerkFixture(secret string) *clerkFixture {
	users := newUserStore()
	subs := newSubStore()
	rec := identity.NewReconciler(
		&fakeTxRunner{users: users, subs: subs},
		noopScheduler{},
		identity.Config{TrialDelay: time.Minute, TrialDays: 14},
		logger.Nop(),
	)
	dedup := newMemDedup()
	h := apphttp.NewClerkWebhookHandler(secret, rec, dedup, logger.Nop())

	app := fiber.New()
	app.Post("/api/webhooks/clerk", h.Handle)
	return &clerkFixture{app: app, users: users, dedup: dedup}
}

func TestClerkWebhook_FirmaValida_CreaUsuario(t *testing.T) {
	fx := newClerkFixture(clerkSecret())
	payload := userCreatedPayload("user_1", "ana@example.com")

	resp := postJSON(t, fx.app, "/api/webhooks/clerk", payload, svixHeadersFor("msg_1", payload))
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	u, err := fx.users.GetByExternalID(context.Background(), "user_1")
	require.NoError(t, err)
	require.NotNil(t, u)
	assert.Equal(t, "ana@example.com", u.Email)
	assert.Equal(t, entity.RoleClient, u.Role)
}

func TestClerkWebhook_PayloadAlterado_Retorna400SinEscribir(t *testing.T) {
	fx := newClerkFixture(clerkSecret())
	payload := userCreatedPayload("user_1", "ana@example.com")
	headers := svixHeadersFor("msg_1", payload)

	alterado := bytes.Replace(payload, []byte("ana@"), []byte("eva@"), 1)
	resp := postJSON(t, fx.app, "/api/webhooks/clerk", alterado, headers)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	u, _ := fx.users.GetByExternalID(context.Background(), "user_1")
	assert.Nil(t, u, "un payload sin firma válida jamás toca la base")
}

func TestClerkWebhook_SinHeaders_Retorna400(t *testing.T) {
	fx := newClerkFixture(clerkSecret())
	payload := userCreatedPayload("user_1", "ana@example.com")

	resp := postJSON(t, fx.app, "/api/webhooks/clerk", payload, nil)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestClerkWebhook_SinSecretoConfigurado_Retorna500(t *testing.T) {
	fx := newClerkFixture("")
	payload := userCreatedPayload("user_1", "ana@example.com")

	resp := postJSON(t, fx.app, "/api/webhooks/clerk", payload, svixHeadersFor("msg_1", payload))
	defer resp.Body.Close()
	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode,
		"secreto ausente es un error de despliegue, no un 200 silencioso")
}

func TestClerkWebhook_TipoDesconocido_Retorna200(t *testing.T) {
	fx := newClerkFixture(clerkSecret())
	payload := []byte(`{"type": "organization.created", "data": {"id": "org_1"}}`)

	resp := postJSON(t, fx.app, "/api/webhooks/clerk", payload, svixHeadersFor("msg_2", payload))
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode,
		"tipos que no interesan se confirman para cortar los reintentos")
}

func TestClerkWebhook_ReplayDedupado_Retorna200(t *testing.T) {
	fx := newClerkFixture(clerkSecret())
	payload := userCreatedPayload("user_1", "ana@example.com")
	headers := svixHeadersFor("msg_1", payload)

	resp := postJSON(t, fx.app, "/api/webhooks/clerk", payload, headers)
	resp.Body.Close()
	resp = postJSON(t, fx.app, "/api/webhooks/clerk", payload, headers)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.True(t, fx.dedup.seen["msg_1"])
}

// ──────────────────────────────────────────────────────────────────────────────
// Webhook de pagos
// ──────────────────────────────────────────────────────────────────────────────

type stripeFixture struct {
	app  *fiber.App
	subs *subStore
}

func newStripeFixture(secret string) *stripeFixture {
	subs := newSubStore()
	d := billing.NewDispatcher(subs, logger.Nop())
	h := apphttp.NewStripeWebhookHandler(secret, d, newMemDedup(), logger.Nop())

	app := fiber.New()
	app.Post("/api/webhooks/stripe", h.Handle)
	return &stripeFixture{app: app, subs: subs}
}

func TestStripeWebhook_CheckoutValido_CreaSuscripcion(t *testing.T) {
	fx := newStripeFixture(stripeTestSecret)
	payload := []byte(`{
		"id": "evt_1",
		"type": "checkout.session.completed",
		"data": {"object": {"customer": "cus_1", "subscription": "sub_1", "client_reference_id": "uid-1"}}
	}`)

	resp := postJSON(t, fx.app, "/api/webhooks/stripe", payload,
		map[string]string{"stripe-signature": stripeHeaderFor(payload)})
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	sub, err := fx.subs.GetByUserID(context.Background(), "uid-1")
	require.NoError(t, err)
	require.NotNil(t, sub)
	assert.Equal(t, entity.SubscriptionActive, sub.Status)
}

func TestStripeWebhook_FirmaInvalida_Retorna400(t *testing.T) {
	fx := newStripeFixture(stripeTestSecret)
	payload := []byte(`{"id": "evt_1", "type": "checkout.session.completed", "data": {"object": {}}}`)

	resp := postJSON(t, fx.app, "/api/webhooks/stripe", payload,
		map[string]string{"stripe-signature": "t=123,v1=deadbeef"})
	defer resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Empty(t, fx.subs.byUser)
}

func TestStripeWebhook_SinSecreto_Retorna500(t *testing.T) {
	fx := newStripeFixture("")
	payload := []byte(`{"id": "evt_1", "type": "checkout.session.completed", "data": {"object": {}}}`)

	resp := postJSON(t, fx.app, "/api/webhooks/stripe", payload,
		map[string]string{"stripe-signature": stripeHeaderFor(payload)})
	defer resp.Body.Close()
	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
}

func TestStripeWebhook_TipoDesconocido_Retorna200(t *testing.T) {
	fx := newStripeFixture(stripeTestSecret)
	payload := []byte(`{"id": "evt_9", "type": "charge.refunded", "data": {"object": {}}}`)

	resp := postJSON(t, fx.app, "/api/webhooks/stripe", payload,
		map[string]string{"stripe-signature": stripeHeaderFor(payload)})
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}
