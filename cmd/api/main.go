package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/chatokay/chatokay-api/internal/application/billing"
	"github.com/chatokay/chatokay-api/internal/application/identity"
	"github.com/chatokay/chatokay-api/internal/application/report"
	appsession "github.com/chatokay/chatokay-api/internal/application/session"
	"github.com/chatokay/chatokay-api/internal/application/usecase"
	infracache "github.com/chatokay/chatokay-api/internal/infrastructure/cache"
	infrageo "github.com/chatokay/chatokay-api/internal/infrastructure/geo"
	infrapdf "github.com/chatokay/chatokay-api/internal/infrastructure/pdf"
	"github.com/chatokay/chatokay-api/internal/infrastructure/postgres"
	"github.com/chatokay/chatokay-api/internal/infrastructure/scheduler"
	httpRouter "github.com/chatokay/chatokay-api/internal/interfaces/http"
	"github.com/chatokay/chatokay-api/pkg/config"
	"github.com/chatokay/chatokay-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: "info",
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	// Contexto de vida de la aplicación: los jobs diferidos lo observan para
	// no quedar huérfanos en el apagado.
	appCtx, cancelApp := context.WithCancel(context.Background())
	defer cancelApp()

	pool, err := postgres.NewPool(appCtx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	// Redis es opcional: sin él la app sirve igual, solo sin cache ni dedup.
	rdb, err := infracache.NewClient(appCtx, cfg.Redis)
	if err != nil {
		log.Warn().Err(err).Msg("Redis no disponible, cache y dedup deshabilitados")
		rdb = nil
	}
	var tenantCache usecase.TenantCache
	var dedup *infracache.EventDedup
	if rdb != nil {
		defer rdb.Close()
		tenantCache = infracache.NewTenantCache(rdb, 0, log)
		dedup = infracache.NewEventDedup(rdb, 0, log)
	}

	userRepo := postgres.NewUserRepository(pool)
	businessRepo := postgres.NewBusinessRepository(pool)
	serviceRepo := postgres.NewServiceRepository(pool)
	appointmentRepo := postgres.NewAppointmentRepository(pool)
	subscriptionRepo := postgres.NewSubscriptionRepository(pool)
	settingsRepo := postgres.NewSettingsRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	sched := scheduler.New(appCtx, log.Component("scheduler"))
	reconciler := identity.NewReconciler(txRunner, sched, identity.Config{
		TrialDelay: time.Duration(cfg.Identity.TrialDelaySeconds) * time.Second,
		TrialDays:  cfg.Identity.TrialDays,
	}, log.Component("identity"))
	dispatcher := billing.NewDispatcher(subscriptionRepo, log.Component("billing"))

	geoClient := infrageo.New(cfg.Geo, log.Component("geo"))
	sessionUC := appsession.NewUseCase(userRepo, businessRepo, log)
	businessUC := usecase.NewBusinessUseCase(businessRepo, userRepo, tenantCache, geoClient, log)
	serviceUC := usecase.NewServiceUseCase(serviceRepo, businessRepo)
	appointmentUC := usecase.NewAppointmentUseCase(appointmentRepo, businessRepo)
	settingsUC := usecase.NewSettingsUseCase(settingsRepo)
	referralUC := usecase.NewReferralUseCase(userRepo)

	// PDF: reporte de citas del dashboard
	pdfGenerator := infrapdf.NewMarotoReportGenerator()
	reportUC := report.NewPDFUseCase(appointmentRepo, businessRepo, serviceRepo, pdfGenerator)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "ChatOkay API",
	}))

	httpRouter.Router(app, httpRouter.RouterDeps{
		SessionUC:     sessionUC,
		BusinessUC:    businessUC,
		ServiceUC:     serviceUC,
		AppointmentUC: appointmentUC,
		SettingsUC:    settingsUC,
		ReferralUC:    referralUC,
		ReportUC:      reportUC,
		Reconciler:    reconciler,
		Dispatcher:    dispatcher,
		Users:         userRepo,
		Dedup:         dedup,
		Log:           log,
		SessionSecret: cfg.Identity.SessionSecret,
		SessionIssuer: cfg.Identity.SessionIssuer,
		ClerkSecret:   cfg.Identity.WebhookSecret,
		StripeSecret:  cfg.Stripe.WebhookSecret,
		RootDomain:    cfg.Tenant.RootDomain,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	cancelApp()
	log.Info().Msg("aplicación detenida")
}
