package payment

import (
	"context"
	"errors"
)

var (
	ErrSessionNotFound  = errors.New("checkout session not found")
	ErrInvalidSignature = errors.New("webhook signature verification failed")
)

type SessionMode string

const (
	SessionModePayment      SessionMode = "payment"
	SessionModeSubscription SessionMode = "subscription"
)

const PaymentStatusPaid = "paid"

type LineItem struct {
	PriceID  string
	Quantity int64
}

type CreateSessionInput struct {
	CustomerID     string
	Mode           SessionMode
	LineItems      []LineItem
	SuccessURL     string
	CancelURL      string
	CouponID       string
	ShippingRateID string
}

type Session struct {
	ID              string
	URL             string
	Mode            SessionMode
	PaymentStatus   string
	AmountTotal     int64
	PaymentIntentID string
	CustomerID      string
}

type SessionLineItem struct {
	Description     string
	Quantity        int64
	UnitAmountCents int64
}

type Coupon struct {
	ID         string
	Valid      bool
	PercentOff float64
	AmountOff  int64
}

const EventCheckoutCompleted = "checkout.session.completed"

type WebhookEvent struct {
	Type    string
	Session Session
}

// Provider is the payment oracle the checkout and reconciliation
// services talk to. The Stripe implementation lives in stripe.go; tests
// substitute stubs.
type Provider interface {
	CreateCheckoutSession(ctx context.Context, in CreateSessionInput) (*Session, error)
	RetrieveSession(ctx context.Context, sessionID string) (*Session, error)
	ListLineItems(ctx context.Context, sessionID string) ([]SessionLineItem, error)
	GetCoupon(ctx context.Context, couponID string) (*Coupon, error)
	// ConstructWebhookEvent verifies the signature against the raw,
	// unparsed body before anything else looks at the payload.
	ConstructWebhookEvent(payload []byte, signatureHeader string) (*WebhookEvent, error)
}
