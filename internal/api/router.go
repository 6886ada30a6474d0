package api

import (
	"context"
	"log/slog"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/jackc/pgx/v5/pgxpool"

	swagger "github.com/go-swagno/swagno-fiber/swagger"

	"github.com/bazil852/aiinfluencerbackend/internal/api/docs"
	"github.com/bazil852/aiinfluencerbackend/internal/api/handler"
	"github.com/bazil852/aiinfluencerbackend/internal/api/middleware"
	"github.com/bazil852/aiinfluencerbackend/internal/billing"
	"github.com/bazil852/aiinfluencerbackend/internal/config"
	"github.com/bazil852/aiinfluencerbackend/internal/fanout"
	"github.com/bazil852/aiinfluencerbackend/internal/generation"
	"github.com/bazil852/aiinfluencerbackend/internal/provider"
	"github.com/bazil852/aiinfluencerbackend/internal/registry"
	"github.com/bazil852/aiinfluencerbackend/internal/repository"
)

type Dependencies struct {
	RegistrationRepo *repository.RegistrationRepository
	ContentRepo      *repository.ContentRepository
	InfluencerRepo   *repository.InfluencerRepository
	CredentialRepo   *repository.CredentialRepository
	AccountRepo      *repository.AccountRepository
	VideoProvider    provider.VideoProvider
	Config           *config.Config
	DB               *pgxpool.Pool
}

type Router struct {
	app            *fiber.App
	logger         *slog.Logger
	deps           *Dependencies
	registry       *registry.Registry
	registryWorker *registry.Worker
	cancelWorker   context.CancelFunc
}

func NewRouter(logger *slog.Logger, deps *Dependencies) *Router {
	app := fiber.New(fiber.Config{
		ErrorHandler: middleware.ErrorHandler(logger),
		AppName:      "AI Influencer Backend",
	})

	return &Router{
		app:    app,
		logger: logger,
		deps:   deps,
	}
}

func (r *Router) Setup() {
	// Global middlewares
	r.app.Use(requestid.New())
	r.app.Use(middleware.Recover(r.logger))
	r.app.Use(middleware.Logger(r.logger))
	r.app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,PUT,PATCH,DELETE,OPTIONS",
		AllowHeaders: "Origin,Content-Type,Accept,Authorization,Stripe-Signature",
	}))

	// Swagger documentation
	sw := docs.NewSwagger()
	swagger.SwaggerHandler(r.app, sw.MustToJson())

	// Health check endpoints
	var pinger handler.Pinger
	if r.deps != nil && r.deps.DB != nil {
		pinger = r.deps.DB
	}
	healthHandler := handler.NewHealthHandler(pinger)
	r.app.Get("/health", healthHandler.Health)
	r.app.Get("/ready", healthHandler.Ready)

	// Only configure the full surface if dependencies were provided
	if r.deps != nil {
		cfg := r.deps.Config

		// Endpoint registry and its refresh worker
		r.registry = registry.New(
			r.deps.RegistrationRepo,
			r.logger,
			registry.WithUnmountInactive(cfg.RegistryUnmountInactive),
		)
		r.registryWorker = registry.NewWorker(r.registry, r.logger, cfg.RegistryRefreshInterval)

		ctx, cancel := context.WithCancel(context.Background())
		r.cancelWorker = cancel
		go r.registryWorker.Run(ctx)

		// Fan-out dispatcher and generation lifecycle service
		dispatcher := fanout.NewDispatcher(r.deps.RegistrationRepo, r.logger)
		generationService := generation.NewService(
			r.deps.ContentRepo,
			r.deps.InfluencerRepo,
			r.deps.CredentialRepo,
			r.deps.VideoProvider,
			dispatcher,
			r.deps.RegistrationRepo,
			r.logger,
		)

		v1 := r.app.Group("/v1")

		// Webhook registration management
		webhooksHandler := handler.NewWebhooksHandler(r.deps.RegistrationRepo, r.logger)
		v1.Post("/webhooks", webhooksHandler.Create)
		v1.Get("/webhooks", webhooksHandler.List)
		v1.Patch("/webhooks/:id", webhooksHandler.Update)
		v1.Delete("/webhooks/:id", webhooksHandler.Delete)

		// Provider completion callback
		callbackHandler := handler.NewCallbackHandler(generationService, r.logger)
		v1.Post("/heygen/callback", callbackHandler.Handle)

		// Generation history
		contentsHandler := handler.NewContentsHandler(r.deps.ContentRepo, r.logger)
		v1.Get("/influencers/:id/contents", contentsHandler.ListByInfluencer)

		// Provider credentials
		credentialsHandler := handler.NewCredentialsHandler(r.deps.CredentialRepo, r.logger)
		v1.Put("/users/:id/heygen-key", credentialsHandler.SetHeyGenKey)

		// Billing
		stripeClient := billing.NewStripeClient(cfg.StripeSecretKey)
		billingService := billing.NewService(r.deps.AccountRepo, stripeClient, cfg.StripeWebhookSecret, r.logger)
		billingHandler := handler.NewBillingHandler(billingService, r.logger)
		v1.Get("/stripe", billingHandler.Info)
		v1.Post("/stripe/webhook", billingHandler.Webhook)
		v1.Post("/stripe/cancel-subscription", billingHandler.CancelSubscription)

		// Dynamically mounted trigger endpoints. Registered last so fixed
		// routes always win; every unmatched POST resolves against the
		// registry at request time.
		triggerHandler := handler.NewTriggerHandler(r.registry, generationService, r.logger)
		r.app.Post("/*", triggerHandler.Handle)
	}
}

func (r *Router) App() *fiber.App {
	return r.app
}

func (r *Router) Registry() *registry.Registry {
	return r.registry
}

func (r *Router) Listen(addr string) error {
	return r.app.Listen(addr)
}

func (r *Router) Shutdown() error {
	// Stop the registry refresh worker
	if r.cancelWorker != nil {
		r.cancelWorker()
	}

	return r.app.Shutdown()
}
