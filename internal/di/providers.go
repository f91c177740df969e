package di

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/google/wire"
	"github.com/redis/go-redis/v9"
	"github.com/robfig/cron/v3"
	"gorm.io/gorm"

	"github.com/dominik-hvln/zozoapp-sub000/internal/app"
	"github.com/dominik-hvln/zozoapp-sub000/internal/config"
	"github.com/dominik-hvln/zozoapp-sub000/internal/database"
	"github.com/dominik-hvln/zozoapp-sub000/internal/http/handler"
	"github.com/dominik-hvln/zozoapp-sub000/internal/http/middleware"
	"github.com/dominik-hvln/zozoapp-sub000/internal/notify"
	"github.com/dominik-hvln/zozoapp-sub000/internal/observability"
	"github.com/dominik-hvln/zozoapp-sub000/internal/payment"
	"github.com/dominik-hvln/zozoapp-sub000/internal/repository"
	"github.com/dominik-hvln/zozoapp-sub000/internal/security"
	"github.com/dominik-hvln/zozoapp-sub000/internal/service"
)

var ConfigSet = wire.NewSet(config.Load)

var ObservabilitySet = wire.NewSet(provideLogger)

var RuntimeInfraSet = wire.NewSet(database.Open, provideRedisClient)

var RepositorySet = wire.NewSet(
	repository.NewUserRepository,
	repository.NewTattooRepository,
	repository.NewAssignmentRepository,
	repository.NewScanRepository,
	repository.NewOrderRepository,
	repository.NewNotificationRepository,
	repository.NewDeviceTokenRepository,
	repository.NewCatalogRepository,
)

var SecuritySet = wire.NewSet(provideTokenManager)

var ServiceSet = wire.NewSet(
	providePaymentProvider,
	provideEmailSender,
	providePushSender,
	provideRealtimePublisher,
	provideStorageService,
	provideIdempotencyStore,
	provideScanService,
	provideCheckoutService,
	provideReconciliationService,
	provideActivationService,
	service.NewExpiryService,
)

var HTTPSet = wire.NewSet(
	handler.NewScanHandler,
	provideCheckoutHandler,
	handler.NewWebhookHandler,
	handler.NewOrderHandler,
	handler.NewActivationHandler,
	provideRateLimiter,
	provideRouter,
	provideHTTPServer,
)

var AppSet = wire.NewSet(provideScheduler, app.New)

func provideLogger(cfg *config.Config) *slog.Logger {
	return observability.NewLogger(cfg.Env, cfg.LogLevel)
}

func provideRedisClient(cfg *config.Config) redis.UniversalClient {
	return redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
	})
}

func provideTokenManager(cfg *config.Config) *security.TokenManager {
	return security.NewTokenManager(cfg.JWTAccessSecret, cfg.JWTIssuer, cfg.JWTAudience, cfg.JWTAccessTTL)
}

func providePaymentProvider(cfg *config.Config) payment.Provider {
	return payment.NewStripeProvider(cfg.StripeSecretKey, cfg.StripeWebhookSecret)
}

func provideEmailSender(logger *slog.Logger) notify.EmailSender {
	return notify.NewDevEmailSender(logger)
}

func providePushSender(logger *slog.Logger) notify.PushSender {
	return notify.NewDevPushSender(logger)
}

func provideRealtimePublisher(client redis.UniversalClient) notify.RealtimePublisher {
	return notify.NewRedisRealtimePublisher(client, "rt")
}

// provideStorageService is optional infrastructure: without a minio
// endpoint the scan projection simply omits avatar URLs.
func provideStorageService(cfg *config.Config, logger *slog.Logger) (service.StorageService, error) {
	if cfg.MinioEndpoint == "" {
		logger.Warn("minio endpoint not configured, avatar URLs disabled")
		return nil, nil
	}
	storage, err := service.NewMinIOStorageService(cfg.MinioEndpoint, cfg.MinioAccessKey, cfg.MinioSecretKey, cfg.MinioBucket, cfg.MinioUseSSL)
	if err != nil {
		return nil, fmt.Errorf("init storage: %w", err)
	}
	return storage, nil
}

func provideIdempotencyStore(client redis.UniversalClient) service.IdempotencyStore {
	return service.NewRedisIdempotencyStore(client, "idem")
}

func provideScanService(
	assignments repository.AssignmentRepository,
	scans repository.ScanRepository,
	notifications repository.NotificationRepository,
	deviceTokens repository.DeviceTokenRepository,
	email notify.EmailSender,
	push notify.PushSender,
	storage service.StorageService,
	logger *slog.Logger,
	cfg *config.Config,
) *service.ScanService {
	return service.NewScanService(assignments, scans, notifications, deviceTokens, email, push, storage, logger, cfg.ScanDedupWindow)
}

func provideCheckoutService(
	users repository.UserRepository,
	catalog repository.CatalogRepository,
	orders repository.OrderRepository,
	provider payment.Provider,
	logger *slog.Logger,
	cfg *config.Config,
) *service.CheckoutService {
	return service.NewCheckoutService(users, catalog, orders, provider, logger, service.CheckoutURLs{
		SuccessWeb: cfg.CheckoutSuccessURLWeb,
		CancelWeb:  cfg.CheckoutCancelURLWeb,
		SuccessApp: cfg.CheckoutSuccessURLApp,
		CancelApp:  cfg.CheckoutCancelURLApp,
	})
}

func provideReconciliationService(
	orders repository.OrderRepository,
	users repository.UserRepository,
	provider payment.Provider,
	email notify.EmailSender,
	realtime notify.RealtimePublisher,
	logger *slog.Logger,
	cfg *config.Config,
) *service.ReconciliationService {
	return service.NewReconciliationService(orders, users, provider, email, realtime, logger, cfg.SubscriptionPeriod)
}

func provideActivationService(
	tattoos repository.TattooRepository,
	assignments repository.AssignmentRepository,
	logger *slog.Logger,
	cfg *config.Config,
) *service.ActivationService {
	return service.NewActivationService(tattoos, assignments, logger, cfg.TattooActiveFor)
}

func provideCheckoutHandler(checkoutSvc *service.CheckoutService, store service.IdempotencyStore, cfg *config.Config) *handler.CheckoutHandler {
	return handler.NewCheckoutHandler(checkoutSvc, store, cfg.CheckoutIdempotencyTTL)
}

func provideRateLimiter(client redis.UniversalClient) *middleware.RedisRateLimiter {
	return middleware.NewRedisRateLimiter(client, "rl")
}

func provideRouter(
	cfg *config.Config,
	tokens *security.TokenManager,
	limiter *middleware.RedisRateLimiter,
	scanHandler *handler.ScanHandler,
	checkoutHandler *handler.CheckoutHandler,
	webhookHandler *handler.WebhookHandler,
	orderHandler *handler.OrderHandler,
	activationHandler *handler.ActivationHandler,
) http.Handler {
	r := chi.NewRouter()
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)

	scanPolicy := middleware.RateLimitPolicy{Limit: cfg.ScanRateLimitPerMin, Window: time.Minute}

	r.Route("/api/v1", func(r chi.Router) {
		r.Group(func(r chi.Router) {
			r.Use(middleware.RateLimitByIP(limiter, scanPolicy))
			r.Post("/scans/{code}", scanHandler.Resolve)
		})
		r.Patch("/scans/{id}/location", scanHandler.AttachLocation)
		r.Post("/webhooks/stripe", webhookHandler.HandleStripe)

		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireAuth(tokens))
			r.Post("/checkout", checkoutHandler.Create)
			r.Get("/orders/confirm/{sessionID}", orderHandler.Confirm)
			r.Post("/tattoos/{code}/activate", activationHandler.Activate)
		})
	})
	return r
}

func provideHTTPServer(cfg *config.Config, router http.Handler) *http.Server {
	return &http.Server{
		Addr:              ":" + cfg.HTTPPort,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}
}

func provideScheduler(expirySvc *service.ExpiryService, cfg *config.Config, logger *slog.Logger) (*cron.Cron, error) {
	c := cron.New()
	if _, err := c.AddFunc(cfg.ExpirySweepSchedule, func() {
		expirySvc.Sweep(context.Background())
	}); err != nil {
		return nil, fmt.Errorf("schedule expiry sweep: %w", err)
	}
	logger.Info("expiry sweep scheduled", "schedule", cfg.ExpirySweepSchedule)
	return c, nil
}

type MigrationRunner struct {
	db *gorm.DB
}

func NewMigrationRunner(db *gorm.DB) *MigrationRunner {
	return &MigrationRunner{db: db}
}

func (m *MigrationRunner) Run() error {
	return database.Migrate(m.db)
}
