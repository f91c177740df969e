package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/dominik-hvln/zozoapp-sub000/internal/domain"
	"github.com/dominik-hvln/zozoapp-sub000/internal/notify"
	"github.com/dominik-hvln/zozoapp-sub000/internal/observability"
	"github.com/dominik-hvln/zozoapp-sub000/internal/payment"
	"github.com/dominik-hvln/zozoapp-sub000/internal/repository"
)

const accountStatusEvent = "account.status.changed"

// ReconciliationService drives an order from PENDING to COMPLETED off
// two independent signals: the Stripe webhook and the client's
// thank-you-page poll. Both funnel through the conditional update in
// the order repository, so whichever observer wins the race performs
// the transition and sends the one confirmation email; the loser
// no-ops.
type ReconciliationService struct {
	orders             repository.OrderRepository
	users              repository.UserRepository
	provider           payment.Provider
	email              notify.EmailSender
	realtime           notify.RealtimePublisher
	logger             *slog.Logger
	subscriptionPeriod time.Duration
	now                func() time.Time
}

func NewReconciliationService(
	orders repository.OrderRepository,
	users repository.UserRepository,
	provider payment.Provider,
	email notify.EmailSender,
	realtime notify.RealtimePublisher,
	logger *slog.Logger,
	subscriptionPeriod time.Duration,
) *ReconciliationService {
	return &ReconciliationService{
		orders:             orders,
		users:              users,
		provider:           provider,
		email:              email,
		realtime:           realtime,
		logger:             logger,
		subscriptionPeriod: subscriptionPeriod,
		now:                time.Now,
	}
}

// HandleWebhook verifies the signature against the raw body before
// anything else touches the payload, then processes checkout
// completions. Unknown event types are acknowledged and dropped.
func (s *ReconciliationService) HandleWebhook(ctx context.Context, payload []byte, signatureHeader string) error {
	event, err := s.provider.ConstructWebhookEvent(payload, signatureHeader)
	if err != nil {
		observability.RecordWebhookEvent(ctx, "unknown", "signature_failure")
		return err
	}
	if event.Type != payment.EventCheckoutCompleted {
		observability.RecordWebhookEvent(ctx, event.Type, "ignored")
		return nil
	}

	session := event.Session
	switch session.Mode {
	case payment.SessionModeSubscription:
		err = s.handleSubscriptionCompleted(ctx, session)
	default:
		err = s.handlePaymentCompleted(ctx, session)
	}
	if err != nil {
		observability.RecordWebhookEvent(ctx, event.Type, "error")
		return err
	}
	observability.RecordWebhookEvent(ctx, event.Type, "processed")
	return nil
}

func (s *ReconciliationService) handleSubscriptionCompleted(ctx context.Context, session payment.Session) error {
	user, err := s.users.FindByStripeCustomerID(session.CustomerID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			s.logger.WarnContext(ctx, "subscription completed for unknown customer", "customer_id", session.CustomerID)
			return nil
		}
		return fmt.Errorf("resolve subscriber: %w", err)
	}
	until := s.now().Add(s.subscriptionPeriod)
	if err := s.users.ActivateSubscription(user.ID, until, session.CustomerID); err != nil {
		return fmt.Errorf("activate subscription: %w", err)
	}
	if err := s.realtime.PushToUser(ctx, user.ID, accountStatusEvent, map[string]any{
		"account_status":    domain.AccountStatusActive,
		"subscription_ends": until,
	}); err != nil {
		s.logger.WarnContext(ctx, "realtime publish failed", "user_id", user.ID, "error", err)
	}
	return nil
}

func (s *ReconciliationService) handlePaymentCompleted(ctx context.Context, session payment.Session) error {
	order, err := s.orders.FindByCheckoutSessionID(session.ID)
	if err != nil {
		if errors.Is(err, repository.ErrOrderNotFound) {
			return s.createOrderFromSession(ctx, session)
		}
		return fmt.Errorf("lookup order: %w", err)
	}

	won, err := s.orders.CompleteIfPending(order.ID, session.AmountTotal, session.PaymentIntentID)
	if err != nil {
		return fmt.Errorf("complete order: %w", err)
	}
	if !won {
		// The poll path (or an earlier delivery) got here first.
		return nil
	}
	s.sendConfirmationEmail(ctx, order.UserID, order.OrderNumber)
	return nil
}

// createOrderFromSession covers sessions with no local pending order,
// e.g. a checkout opened before the app recorded it. The unique index
// on the session id absorbs concurrent webhook deliveries.
func (s *ReconciliationService) createOrderFromSession(ctx context.Context, session payment.Session) error {
	user, err := s.users.FindByStripeCustomerID(session.CustomerID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			s.logger.WarnContext(ctx, "payment completed for unknown customer",
				"session_id", session.ID, "customer_id", session.CustomerID)
			return nil
		}
		return fmt.Errorf("resolve purchaser: %w", err)
	}

	lineItems, err := s.provider.ListLineItems(ctx, session.ID)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrPaymentProvider, err)
	}
	items := make([]domain.OrderItem, 0, len(lineItems))
	for _, li := range lineItems {
		items = append(items, domain.OrderItem{
			Description:    li.Description,
			Quantity:       int(li.Quantity),
			UnitPriceCents: li.UnitAmountCents,
		})
	}

	order := &domain.Order{
		UserID:            user.ID,
		OrderNumber:       uuid.NewString(),
		Status:            domain.OrderStatusCompleted,
		TotalCents:        session.AmountTotal,
		CheckoutSessionID: session.ID,
		StripeCustomerID:  session.CustomerID,
	}
	if session.PaymentIntentID != "" {
		order.PaymentIntentID = &session.PaymentIntentID
	}
	if err := s.orders.CreateWithItems(order, items); err != nil {
		if errors.Is(err, repository.ErrDuplicateCheckoutSession) {
			return nil
		}
		return fmt.Errorf("persist webhook order: %w", err)
	}
	s.sendConfirmationEmail(ctx, user.ID, order.OrderNumber)
	return nil
}

// FinalizeBySession is the poll path behind the thank-you page. It is
// idempotent: an already-completed order comes back unchanged with no
// second email, and an unpaid session leaves the order PENDING for the
// caller to retry.
func (s *ReconciliationService) FinalizeBySession(ctx context.Context, userID uint, sessionID string) (*domain.Order, error) {
	order, err := s.orders.FindByCheckoutSessionIDForUser(sessionID, userID)
	if err != nil {
		return nil, err
	}
	if order.Status == domain.OrderStatusCompleted {
		return order, nil
	}

	session, err := s.provider.RetrieveSession(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPaymentProvider, err)
	}
	if session.PaymentStatus != payment.PaymentStatusPaid {
		return order, nil
	}

	won, err := s.orders.CompleteIfPending(order.ID, session.AmountTotal, session.PaymentIntentID)
	if err != nil {
		return nil, fmt.Errorf("complete order: %w", err)
	}
	if won {
		s.sendConfirmationEmail(ctx, order.UserID, order.OrderNumber)
	}

	updated, err := s.orders.FindByCheckoutSessionIDForUser(sessionID, userID)
	if err != nil {
		return nil, err
	}
	return updated, nil
}

func (s *ReconciliationService) sendConfirmationEmail(ctx context.Context, userID uint, orderNumber string) {
	user, err := s.users.FindByID(userID)
	if err != nil {
		s.logger.ErrorContext(ctx, "confirmation email recipient lookup failed", "user_id", userID, "error", err)
		return
	}
	if err := s.email.Send(ctx, notify.EmailTemplateOrderConfirmation, user.Email, map[string]any{
		"order_number": orderNumber,
	}); err != nil {
		s.logger.ErrorContext(ctx, "confirmation email failed", "order_number", orderNumber, "error", err)
	}
}
