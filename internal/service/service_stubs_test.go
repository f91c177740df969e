package service

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/dominik-hvln/zozoapp-sub000/internal/domain"
	"github.com/dominik-hvln/zozoapp-sub000/internal/notify"
	"github.com/dominik-hvln/zozoapp-sub000/internal/payment"
)

func newTestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type stubAssignmentRepository struct {
	findActiveByCode func(code string) (*domain.Assignment, error)
	deactivate       func(assignmentID uint) error
}

func (s *stubAssignmentRepository) FindActiveByCode(code string) (*domain.Assignment, error) {
	return s.findActiveByCode(code)
}

func (s *stubAssignmentRepository) Deactivate(assignmentID uint) error {
	return s.deactivate(assignmentID)
}

type stubScanRepository struct {
	create              func(event *domain.ScanEvent) error
	latestSince         func(assignmentID uint, cutoff time.Time) (*domain.ScanEvent, error)
	latestForAssignment func(assignmentID uint) (*domain.ScanEvent, error)
	attachLocation      func(scanID uint, latitude, longitude float64) error
}

func (s *stubScanRepository) Create(event *domain.ScanEvent) error {
	return s.create(event)
}

func (s *stubScanRepository) LatestSince(assignmentID uint, cutoff time.Time) (*domain.ScanEvent, error) {
	return s.latestSince(assignmentID, cutoff)
}

func (s *stubScanRepository) LatestForAssignment(assignmentID uint) (*domain.ScanEvent, error) {
	return s.latestForAssignment(assignmentID)
}

func (s *stubScanRepository) AttachLocation(scanID uint, latitude, longitude float64) error {
	return s.attachLocation(scanID, latitude, longitude)
}

type stubNotificationRepository struct {
	create     func(notification *domain.Notification) error
	markRead   func(userID, notificationID uint) error
	listUnread func(userID uint) ([]domain.Notification, error)
}

func (s *stubNotificationRepository) Create(notification *domain.Notification) error {
	return s.create(notification)
}

func (s *stubNotificationRepository) MarkRead(userID, notificationID uint) error {
	return s.markRead(userID, notificationID)
}

func (s *stubNotificationRepository) ListUnread(userID uint) ([]domain.Notification, error) {
	return s.listUnread(userID)
}

type stubDeviceTokenRepository struct {
	listByUser   func(userID uint) ([]domain.DeviceToken, error)
	deleteTokens func(tokens []string) error
}

func (s *stubDeviceTokenRepository) ListByUser(userID uint) ([]domain.DeviceToken, error) {
	return s.listByUser(userID)
}

func (s *stubDeviceTokenRepository) DeleteTokens(tokens []string) error {
	return s.deleteTokens(tokens)
}

type stubUserRepository struct {
	findByID               func(id uint) (*domain.User, error)
	findByStripeCustomerID func(customerID string) (*domain.User, error)
	activateSubscription   func(userID uint, until time.Time, stripeCustomerID string) error
}

func (s *stubUserRepository) FindByID(id uint) (*domain.User, error) {
	return s.findByID(id)
}

func (s *stubUserRepository) FindByStripeCustomerID(customerID string) (*domain.User, error) {
	return s.findByStripeCustomerID(customerID)
}

func (s *stubUserRepository) ActivateSubscription(userID uint, until time.Time, stripeCustomerID string) error {
	return s.activateSubscription(userID, until, stripeCustomerID)
}

type stubCatalogRepository struct {
	findVariantsByStripePriceIDs func(priceIDs []string) (map[string]domain.ProductVariant, error)
	findShippingMethod           func(id uint) (*domain.ShippingMethod, error)
}

func (s *stubCatalogRepository) FindVariantsByStripePriceIDs(priceIDs []string) (map[string]domain.ProductVariant, error) {
	return s.findVariantsByStripePriceIDs(priceIDs)
}

func (s *stubCatalogRepository) FindShippingMethod(id uint) (*domain.ShippingMethod, error) {
	return s.findShippingMethod(id)
}

type stubOrderRepository struct {
	createWithItems                func(order *domain.Order, items []domain.OrderItem) error
	createShippingAddress          func(address *domain.ShippingAddress) error
	findByCheckoutSessionID        func(sessionID string) (*domain.Order, error)
	findByCheckoutSessionIDForUser func(sessionID string, userID uint) (*domain.Order, error)
	completeIfPending              func(orderID uint, totalCents int64, paymentIntentID string) (bool, error)
}

func (s *stubOrderRepository) CreateWithItems(order *domain.Order, items []domain.OrderItem) error {
	return s.createWithItems(order, items)
}

func (s *stubOrderRepository) CreateShippingAddress(address *domain.ShippingAddress) error {
	return s.createShippingAddress(address)
}

func (s *stubOrderRepository) FindByCheckoutSessionID(sessionID string) (*domain.Order, error) {
	return s.findByCheckoutSessionID(sessionID)
}

func (s *stubOrderRepository) FindByCheckoutSessionIDForUser(sessionID string, userID uint) (*domain.Order, error) {
	return s.findByCheckoutSessionIDForUser(sessionID, userID)
}

func (s *stubOrderRepository) CompleteIfPending(orderID uint, totalCents int64, paymentIntentID string) (bool, error) {
	return s.completeIfPending(orderID, totalCents, paymentIntentID)
}

type stubTattooRepository struct {
	findByCode      func(code string) (*domain.TattooInstance, error)
	activate        func(instanceID uint, expiresAt time.Time, assignment *domain.Assignment) error
	expireOlderThan func(cutoff time.Time) (int64, error)
}

func (s *stubTattooRepository) FindByCode(code string) (*domain.TattooInstance, error) {
	return s.findByCode(code)
}

func (s *stubTattooRepository) Activate(instanceID uint, expiresAt time.Time, assignment *domain.Assignment) error {
	return s.activate(instanceID, expiresAt, assignment)
}

func (s *stubTattooRepository) ExpireOlderThan(cutoff time.Time) (int64, error) {
	return s.expireOlderThan(cutoff)
}

type stubEmailSender struct {
	send func(ctx context.Context, template, to string, data map[string]any) error
}

func (s *stubEmailSender) Send(ctx context.Context, template, to string, data map[string]any) error {
	return s.send(ctx, template, to, data)
}

type stubPushSender struct {
	send func(ctx context.Context, tokens []string, msg notify.PushMessage) ([]notify.PushResult, error)
}

func (s *stubPushSender) Send(ctx context.Context, tokens []string, msg notify.PushMessage) ([]notify.PushResult, error) {
	return s.send(ctx, tokens, msg)
}

type stubRealtimePublisher struct {
	pushToUser func(ctx context.Context, userID uint, event string, payload any) error
}

func (s *stubRealtimePublisher) PushToUser(ctx context.Context, userID uint, event string, payload any) error {
	return s.pushToUser(ctx, userID, event, payload)
}

type stubStorageService struct {
	generateAvatarURL func(ctx context.Context, objectKey string) (string, error)
}

func (s *stubStorageService) GenerateAvatarURL(ctx context.Context, objectKey string) (string, error) {
	return s.generateAvatarURL(ctx, objectKey)
}

type stubPaymentProvider struct {
	createCheckoutSession func(ctx context.Context, in payment.CreateSessionInput) (*payment.Session, error)
	retrieveSession       func(ctx context.Context, sessionID string) (*payment.Session, error)
	listLineItems         func(ctx context.Context, sessionID string) ([]payment.SessionLineItem, error)
	getCoupon             func(ctx context.Context, couponID string) (*payment.Coupon, error)
	constructWebhookEvent func(payload []byte, signatureHeader string) (*payment.WebhookEvent, error)
}

func (s *stubPaymentProvider) CreateCheckoutSession(ctx context.Context, in payment.CreateSessionInput) (*payment.Session, error) {
	return s.createCheckoutSession(ctx, in)
}

func (s *stubPaymentProvider) RetrieveSession(ctx context.Context, sessionID string) (*payment.Session, error) {
	return s.retrieveSession(ctx, sessionID)
}

func (s *stubPaymentProvider) ListLineItems(ctx context.Context, sessionID string) ([]payment.SessionLineItem, error) {
	return s.listLineItems(ctx, sessionID)
}

func (s *stubPaymentProvider) GetCoupon(ctx context.Context, couponID string) (*payment.Coupon, error) {
	return s.getCoupon(ctx, couponID)
}

func (s *stubPaymentProvider) ConstructWebhookEvent(payload []byte, signatureHeader string) (*payment.WebhookEvent, error) {
	return s.constructWebhookEvent(payload, signatureHeader)
}
