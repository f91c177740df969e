package integration

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/redis/go-redis/v9"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/dominik-hvln/zozoapp-sub000/internal/domain"
	"github.com/dominik-hvln/zozoapp-sub000/internal/http/handler"
	"github.com/dominik-hvln/zozoapp-sub000/internal/http/middleware"
	"github.com/dominik-hvln/zozoapp-sub000/internal/notify"
	"github.com/dominik-hvln/zozoapp-sub000/internal/payment"
	"github.com/dominik-hvln/zozoapp-sub000/internal/repository"
	"github.com/dominik-hvln/zozoapp-sub000/internal/security"
	"github.com/dominik-hvln/zozoapp-sub000/internal/service"
)

// scriptedProvider plays the part of Stripe. Signature header "valid"
// verifies; everything else is rejected.
type scriptedProvider struct {
	mu      sync.Mutex
	session payment.Session
}

func (p *scriptedProvider) setSession(s payment.Session) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.session = s
}

func (p *scriptedProvider) currentSession() payment.Session {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.session
}

func (p *scriptedProvider) CreateCheckoutSession(ctx context.Context, in payment.CreateSessionInput) (*payment.Session, error) {
	session := p.currentSession()
	return &session, nil
}

func (p *scriptedProvider) RetrieveSession(ctx context.Context, sessionID string) (*payment.Session, error) {
	session := p.currentSession()
	if session.ID != sessionID {
		return nil, payment.ErrSessionNotFound
	}
	return &session, nil
}

func (p *scriptedProvider) ListLineItems(ctx context.Context, sessionID string) ([]payment.SessionLineItem, error) {
	return []payment.SessionLineItem{{Description: "Pakiet 10 tatuaży", Quantity: 2, UnitAmountCents: 2500}}, nil
}

func (p *scriptedProvider) GetCoupon(ctx context.Context, couponID string) (*payment.Coupon, error) {
	return nil, fmt.Errorf("no such coupon")
}

func (p *scriptedProvider) ConstructWebhookEvent(payload []byte, signatureHeader string) (*payment.WebhookEvent, error) {
	if signatureHeader != "valid" {
		return nil, payment.ErrInvalidSignature
	}
	return &payment.WebhookEvent{Type: payment.EventCheckoutCompleted, Session: p.currentSession()}, nil
}

type countingEmailSender struct {
	mu     sync.Mutex
	counts map[string]int
}

func newCountingEmailSender() *countingEmailSender {
	return &countingEmailSender{counts: map[string]int{}}
}

func (s *countingEmailSender) Send(ctx context.Context, template, to string, data map[string]any) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.counts[template]++
	return nil
}

func (s *countingEmailSender) count(template string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.counts[template]
}

type noopRealtime struct{}

func (noopRealtime) PushToUser(ctx context.Context, userID uint, event string, payload any) error {
	return nil
}

type testEnv struct {
	db       *gorm.DB
	router   http.Handler
	tokens   *security.TokenManager
	provider *scriptedProvider
	emails   *countingEmailSender
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
		TranslateError: true,
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := db.AutoMigrate(
		&domain.User{}, &domain.Child{}, &domain.TattooInstance{}, &domain.Assignment{},
		&domain.ScanEvent{}, &domain.Product{}, &domain.ProductVariant{},
		&domain.ShippingMethod{}, &domain.ShippingAddress{}, &domain.Order{},
		&domain.OrderItem{}, &domain.Notification{}, &domain.DeviceToken{},
	); err != nil {
		t.Fatalf("migrate db: %v", err)
	}

	mr := miniredis.RunT(t)
	redisClient := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = redisClient.Close() })

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	provider := &scriptedProvider{}
	emails := newCountingEmailSender()

	users := repository.NewUserRepository(db)
	tattoos := repository.NewTattooRepository(db)
	assignments := repository.NewAssignmentRepository(db)
	scans := repository.NewScanRepository(db)
	orders := repository.NewOrderRepository(db)
	notifications := repository.NewNotificationRepository(db)
	deviceTokens := repository.NewDeviceTokenRepository(db)
	catalog := repository.NewCatalogRepository(db)

	scanSvc := service.NewScanService(
		assignments, scans, notifications, deviceTokens,
		emails, notify.NewDevPushSender(logger), nil, logger, 10*time.Second,
	)
	checkoutSvc := service.NewCheckoutService(users, catalog, orders, provider, logger, service.CheckoutURLs{
		SuccessWeb: "http://localhost:3000/thank-you?session_id={CHECKOUT_SESSION_ID}",
		CancelWeb:  "http://localhost:3000/cart",
		SuccessApp: "zozoapp://checkout/success",
		CancelApp:  "zozoapp://checkout/cancel",
	})
	reconciliationSvc := service.NewReconciliationService(orders, users, provider, emails, noopRealtime{}, logger, 744*time.Hour)
	activationSvc := service.NewActivationService(tattoos, assignments, logger, 168*time.Hour)

	tokens := security.NewTokenManager("integration-secret-32-characters!!!!", "zozoapp", "zozoapp-api", time.Hour)
	idempotency := service.NewRedisIdempotencyStore(redisClient, "idem")
	limiter := middleware.NewRedisRateLimiter(redisClient, "rl")

	scanHandler := handler.NewScanHandler(scanSvc)
	checkoutHandler := handler.NewCheckoutHandler(checkoutSvc, idempotency, 24*time.Hour)
	webhookHandler := handler.NewWebhookHandler(reconciliationSvc)
	orderHandler := handler.NewOrderHandler(reconciliationSvc)
	activationHandler := handler.NewActivationHandler(activationSvc)

	r := chi.NewRouter()
	r.Use(chimiddleware.RequestID)
	r.Route("/api/v1", func(r chi.Router) {
		r.Group(func(r chi.Router) {
			r.Use(middleware.RateLimitByIP(limiter, middleware.RateLimitPolicy{Limit: 100, Window: time.Minute}))
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

	return &testEnv{db: db, router: r, tokens: tokens, provider: provider, emails: emails}
}

func (e *testEnv) seedGuardian(t *testing.T) domain.User {
	t.Helper()
	user := domain.User{
		Email:            t.Name() + "@example.com",
		FullName:         "Anna Kowalska",
		Phone:            "+48123456789",
		StripeCustomerID: "cus_123",
	}
	if err := e.db.Create(&user).Error; err != nil {
		t.Fatalf("create user: %v", err)
	}
	return user
}

func (e *testEnv) seedChild(t *testing.T, userID uint) domain.Child {
	t.Helper()
	child := domain.Child{UserID: userID, Name: "Zosia"}
	if err := e.db.Create(&child).Error; err != nil {
		t.Fatalf("create child: %v", err)
	}
	return child
}

func (e *testEnv) seedActiveAssignment(t *testing.T, code string) (domain.User, domain.Assignment) {
	t.Helper()
	user := e.seedGuardian(t)
	child := e.seedChild(t, user.ID)
	instance := domain.TattooInstance{Code: code, Status: domain.TattooStatusActive}
	if err := e.db.Create(&instance).Error; err != nil {
		t.Fatalf("create instance: %v", err)
	}
	assignment := domain.Assignment{UserID: user.ID, ChildID: child.ID, TattooInstanceID: instance.ID, Active: true}
	if err := e.db.Create(&assignment).Error; err != nil {
		t.Fatalf("create assignment: %v", err)
	}
	return user, assignment
}

func (e *testEnv) seedCatalog(t *testing.T) (domain.ProductVariant, domain.ShippingMethod) {
	t.Helper()
	product := domain.Product{Name: "Tatuaże zmywalne", Active: true}
	if err := e.db.Create(&product).Error; err != nil {
		t.Fatalf("create product: %v", err)
	}
	variant := domain.ProductVariant{
		ProductID:     product.ID,
		Name:          "Pakiet 10 tatuaży",
		PriceCents:    2500,
		StripePriceID: "price_pack10",
		Active:        true,
	}
	if err := e.db.Create(&variant).Error; err != nil {
		t.Fatalf("create variant: %v", err)
	}
	method := domain.ShippingMethod{Name: "Kurier", PriceCents: 500, StripeShippingRateID: "shr_1", Active: true}
	if err := e.db.Create(&method).Error; err != nil {
		t.Fatalf("create shipping method: %v", err)
	}
	return variant, method
}

func (e *testEnv) authHeader(t *testing.T, userID uint) string {
	t.Helper()
	token, err := e.tokens.Issue(userID)
	if err != nil {
		t.Fatalf("issue token: %v", err)
	}
	return "Bearer " + token
}
