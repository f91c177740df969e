package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/dominik-hvln/zozoapp-sub000/internal/domain"
	"github.com/dominik-hvln/zozoapp-sub000/internal/observability"
	"github.com/dominik-hvln/zozoapp-sub000/internal/payment"
	"github.com/dominik-hvln/zozoapp-sub000/internal/repository"
)

var (
	ErrNoBillingAccount      = errors.New("guardian has no billing account")
	ErrShippingMethodInvalid = errors.New("shipping method is not available")
	ErrEmptyCart             = errors.New("cart is empty")
	ErrInvalidQuantity       = errors.New("item quantity must be positive")
	ErrUnknownVariant        = errors.New("cart references an unknown product variant")
	ErrPaymentProvider       = errors.New("payment provider request failed")
)

const (
	PlatformWeb = "web"
	PlatformApp = "app"
)

type CheckoutItemInput struct {
	PriceID  string `json:"price_id"`
	Quantity int64  `json:"quantity"`
}

type CheckoutAddressInput struct {
	FullName   string `json:"full_name"`
	Line1      string `json:"line1"`
	Line2      string `json:"line2"`
	City       string `json:"city"`
	PostalCode string `json:"postal_code"`
	Country    string `json:"country"`
	Phone      string `json:"phone"`
}

type CheckoutInput struct {
	UserID           uint
	Items            []CheckoutItemInput
	DiscountCode     string
	ShippingMethodID uint
	Address          CheckoutAddressInput
	Platform         string
}

type CheckoutResult struct {
	SessionURL  string `json:"session_url"`
	OrderNumber string `json:"order_number"`
}

type CheckoutURLs struct {
	SuccessWeb string
	CancelWeb  string
	SuccessApp string
	CancelApp  string
}

type CheckoutService struct {
	users    repository.UserRepository
	catalog  repository.CatalogRepository
	orders   repository.OrderRepository
	provider payment.Provider
	logger   *slog.Logger
	urls     CheckoutURLs
}

func NewCheckoutService(
	users repository.UserRepository,
	catalog repository.CatalogRepository,
	orders repository.OrderRepository,
	provider payment.Provider,
	logger *slog.Logger,
	urls CheckoutURLs,
) *CheckoutService {
	return &CheckoutService{
		users:    users,
		catalog:  catalog,
		orders:   orders,
		provider: provider,
		logger:   logger,
		urls:     urls,
	}
}

// CreateSession validates the cart against stored prices, opens the
// hosted Stripe checkout and persists the PENDING order with its item
// snapshot. The computed total is authoritative; whatever amount the
// session later reports is expected to match but never overwrites the
// order silently while it is pending.
func (s *CheckoutService) CreateSession(ctx context.Context, in CheckoutInput) (*CheckoutResult, error) {
	if len(in.Items) == 0 {
		return nil, ErrEmptyCart
	}

	user, err := s.users.FindByID(in.UserID)
	if err != nil {
		return nil, fmt.Errorf("resolve guardian: %w", err)
	}
	if user.StripeCustomerID == "" {
		observability.RecordCheckoutEvent(ctx, "no_billing_account")
		return nil, ErrNoBillingAccount
	}

	method, err := s.catalog.FindShippingMethod(in.ShippingMethodID)
	if err != nil {
		if errors.Is(err, repository.ErrShippingMethodNotFound) {
			return nil, ErrShippingMethodInvalid
		}
		return nil, fmt.Errorf("resolve shipping method: %w", err)
	}
	if !method.Active {
		observability.RecordCheckoutEvent(ctx, "shipping_inactive")
		return nil, ErrShippingMethodInvalid
	}

	priceIDs := make([]string, 0, len(in.Items))
	for _, item := range in.Items {
		if item.Quantity <= 0 {
			return nil, ErrInvalidQuantity
		}
		priceIDs = append(priceIDs, item.PriceID)
	}
	variants, err := s.catalog.FindVariantsByStripePriceIDs(priceIDs)
	if err != nil {
		return nil, fmt.Errorf("resolve variants: %w", err)
	}

	// Subtotal comes from stored prices only; client-supplied amounts
	// are never trusted.
	var subtotal int64
	for _, item := range in.Items {
		variant, ok := variants[item.PriceID]
		if !ok {
			observability.RecordCheckoutEvent(ctx, "unknown_variant")
			return nil, fmt.Errorf("%w: %s", ErrUnknownVariant, item.PriceID)
		}
		subtotal += variant.PriceCents * item.Quantity
	}

	discount, couponID := s.resolveDiscount(ctx, in.DiscountCode, subtotal)
	total := subtotal - discount + method.PriceCents

	successURL, cancelURL := s.urls.SuccessWeb, s.urls.CancelWeb
	if in.Platform == PlatformApp {
		successURL, cancelURL = s.urls.SuccessApp, s.urls.CancelApp
	}

	lineItems := make([]payment.LineItem, 0, len(in.Items))
	for _, item := range in.Items {
		lineItems = append(lineItems, payment.LineItem{PriceID: item.PriceID, Quantity: item.Quantity})
	}
	session, err := s.provider.CreateCheckoutSession(ctx, payment.CreateSessionInput{
		CustomerID:     user.StripeCustomerID,
		Mode:           payment.SessionModePayment,
		LineItems:      lineItems,
		SuccessURL:     successURL,
		CancelURL:      cancelURL,
		CouponID:       couponID,
		ShippingRateID: method.StripeShippingRateID,
	})
	if err != nil {
		observability.RecordCheckoutEvent(ctx, "provider_error")
		return nil, fmt.Errorf("%w: %v", ErrPaymentProvider, err)
	}

	address := &domain.ShippingAddress{
		UserID:     in.UserID,
		FullName:   in.Address.FullName,
		Line1:      in.Address.Line1,
		Line2:      in.Address.Line2,
		City:       in.Address.City,
		PostalCode: in.Address.PostalCode,
		Country:    in.Address.Country,
		Phone:      in.Address.Phone,
	}
	if err := s.orders.CreateShippingAddress(address); err != nil {
		return nil, fmt.Errorf("persist shipping address: %w", err)
	}

	order := &domain.Order{
		UserID:            in.UserID,
		OrderNumber:       uuid.NewString(),
		Status:            domain.OrderStatusPending,
		TotalCents:        total,
		CheckoutSessionID: session.ID,
		StripeCustomerID:  user.StripeCustomerID,
		ShippingAddressID: &address.ID,
	}
	items := make([]domain.OrderItem, 0, len(in.Items))
	for _, item := range in.Items {
		variant, ok := variants[item.PriceID]
		if !ok {
			// Validated above; a miss here means the catalog changed
			// underneath us mid-request.
			return nil, fmt.Errorf("variant %s disappeared during checkout", item.PriceID)
		}
		items = append(items, domain.OrderItem{
			VariantID:      variant.ID,
			Description:    variant.Name,
			Quantity:       int(item.Quantity),
			UnitPriceCents: variant.PriceCents,
		})
	}
	if err := s.orders.CreateWithItems(order, items); err != nil {
		return nil, fmt.Errorf("persist order: %w", err)
	}

	observability.RecordCheckoutEvent(ctx, "created")
	s.logger.InfoContext(ctx, "checkout session created",
		"user_id", in.UserID,
		"order_number", order.OrderNumber,
		"total_cents", total,
	)
	return &CheckoutResult{SessionURL: session.URL, OrderNumber: order.OrderNumber}, nil
}

// resolveDiscount turns a coupon code into an amount off the subtotal.
// Invalid or inactive codes yield zero discount; the hard validation
// already happened on the separate promo-check path.
func (s *CheckoutService) resolveDiscount(ctx context.Context, code string, subtotal int64) (int64, string) {
	if code == "" {
		return 0, ""
	}
	coupon, err := s.provider.GetCoupon(ctx, code)
	if err != nil {
		s.logger.WarnContext(ctx, "coupon lookup failed", "code", code, "error", err)
		return 0, ""
	}
	if !coupon.Valid {
		return 0, ""
	}
	if coupon.PercentOff > 0 {
		return subtotal * int64(coupon.PercentOff) / 100, coupon.ID
	}
	if coupon.AmountOff > 0 {
		amount := coupon.AmountOff
		if amount > subtotal {
			amount = subtotal
		}
		return amount, coupon.ID
	}
	return 0, coupon.ID
}
