package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/chatokay/chatokay-api/internal/application/billing"
	"github.com/chatokay/chatokay-api/internal/application/identity"
	"github.com/chatokay/chatokay-api/internal/application/report"
	appsession "github.com/chatokay/chatokay-api/internal/application/session"
	"github.com/chatokay/chatokay-api/internal/application/usecase"
	"github.com/chatokay/chatokay-api/internal/domain/repository"
	domsession "github.com/chatokay/chatokay-api/internal/domain/session"
	"github.com/chatokay/chatokay-api/pkg/logger"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	SessionUC      *appsession.UseCase
	BusinessUC     *usecase.BusinessUseCase
	ServiceUC      *usecase.ServiceUseCase
	AppointmentUC  *usecase.AppointmentUseCase
	SettingsUC     *usecase.SettingsUseCase
	ReferralUC     *usecase.ReferralUseCase
	ReportUC       *report.PDFUseCase
	Reconciler     *identity.Reconciler
	Dispatcher     *billing.Dispatcher
	Users          repository.UserRepository
	Dedup          eventDedup
	Log            *logger.Logger
	SessionSecret  string
	SessionIssuer  string
	ClerkSecret    string
	StripeSecret   string
	RootDomain     string
}

// Rutas públicas del dominio raíz; todo lo demás exige sesión.
var publicPrefixes = []string{
	"/",
	domsession.PathSignIn,
	domsession.PathStaffSignIn,
	"/health",
	"/metrics",
	"/swagger",
	"/t",
	"/api/session",
	"/api/business",
	"/api/cancel",
	"/api/webhooks",
}

// Prefijos con guard de área propio. No son públicos, pero el matcher genérico
// los deja pasar: el guard del área decide el sign-in correcto (las áreas de
// staff redirigen a su propia entrada, no a la pública).
var areaPrefixes = []string{
	"/api/dashboard",
	"/api/comercial",
	"/api/admin",
}

// signInSkipPrefixes lista de exentos del matcher de sesión genérico.
var signInSkipPrefixes = append(append([]string(nil), publicPrefixes...), areaPrefixes...)

// Router registra middlewares y rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	// Orden: reescritura de subdominio antes de cualquier matching, después el
	// handshake de sesión, después el matcher público/protegido del raíz.
	app.Use(SubdomainRewrite(deps.RootDomain))
	app.Use(SessionMiddleware(deps.SessionSecret, deps.SessionIssuer))
	app.Use(RequireSignIn(signInSkipPrefixes))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	api := app.Group("/api")

	// Sesión (público: el estado derivado decide qué ve el frontend)
	sessionHandler := NewSessionHandler(deps.SessionUC)
	api.Get("/session", sessionHandler.Get)

	// Webhooks (públicos, autenticados por firma)
	webhooks := api.Group("/webhooks")
	clerkHandler := NewClerkWebhookHandler(deps.ClerkSecret, deps.Reconciler, deps.Dedup, deps.Log)
	stripeHandler := NewStripeWebhookHandler(deps.StripeSecret, deps.Dispatcher, deps.Dedup, deps.Log)
	webhooks.Post("/clerk", clerkHandler.Handle)
	webhooks.Post("/stripe", stripeHandler.Handle)

	// Tenant (público)
	businessHandler := NewBusinessHandler(deps.BusinessUC, deps.ServiceUC, deps.Log)
	api.Get("/business/:subdomain", businessHandler.GetBySubdomain)
	app.Get("/t/:subdomain", businessHandler.TenantPage)

	// Cancelación por token (público, el token es la credencial)
	cancelHandler := NewCancelHandler(deps.AppointmentUC, deps.Log)
	api.Get("/cancel/:token", cancelHandler.Lookup)
	api.Post("/cancel/:token", cancelHandler.Cancel)

	// Onboarding (sesión requerida, sin guard de área: el usuario aún no tiene negocio)
	onboardingHandler := NewOnboardingHandler(deps.SessionUC, deps.BusinessUC, deps.Log)
	api.Post("/onboarding/business", onboardingHandler.CreateBusiness)

	// Dashboard (área client)
	dashboard := api.Group("/dashboard", RequireArea(domsession.AreaClient, deps.SessionUC))
	dashboardHandler := NewDashboardHandler(deps.BusinessUC, deps.ServiceUC, deps.AppointmentUC, deps.ReportUC, deps.Log)
	dashboard.Get("/business", dashboardHandler.GetBusiness)
	dashboard.Put("/business", dashboardHandler.UpdateBusiness)
	dashboard.Get("/services", dashboardHandler.ListServices)
	dashboard.Post("/services", dashboardHandler.CreateService)
	dashboard.Put("/services/:id", dashboardHandler.UpdateService)
	dashboard.Delete("/services/:id", dashboardHandler.DeleteService)
	dashboard.Get("/appointments", dashboardHandler.ListAppointments)
	dashboard.Get("/appointments/report", dashboardHandler.DownloadReport)

	// Comercial (área sales)
	comercial := api.Group("/comercial", RequireArea(domsession.AreaSales, deps.SessionUC))
	referralHandler := NewReferralHandler(deps.ReferralUC, deps.Log)
	comercial.Get("/referrals", referralHandler.Stats)

	// Admin (área admin)
	admin := api.Group("/admin", RequireArea(domsession.AreaAdmin, deps.SessionUC))
	adminHandler := NewAdminHandler(deps.SettingsUC, deps.Users, deps.Log)
	admin.Get("/settings", adminHandler.GetSettings)
	admin.Put("/settings", adminHandler.UpdateSettings)
	admin.Get("/users", adminHandler.ListUsers)
}
