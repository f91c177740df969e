package handler

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/dominik-hvln/zozoapp-sub000/internal/http/middleware"
	"github.com/dominik-hvln/zozoapp-sub000/internal/http/response"
	"github.com/dominik-hvln/zozoapp-sub000/internal/service"
)

const idempotencyScopeCheckout = "checkout"

type CheckoutHandler struct {
	checkoutSvc    *service.CheckoutService
	idempotency    service.IdempotencyStore
	idempotencyTTL time.Duration
}

func NewCheckoutHandler(checkoutSvc *service.CheckoutService, idempotency service.IdempotencyStore, idempotencyTTL time.Duration) *CheckoutHandler {
	return &CheckoutHandler{
		checkoutSvc:    checkoutSvc,
		idempotency:    idempotency,
		idempotencyTTL: idempotencyTTL,
	}
}

type checkoutRequest struct {
	Items            []service.CheckoutItemInput  `json:"items"`
	DiscountCode     string                       `json:"discount_code"`
	ShippingMethodID uint                         `json:"shipping_method_id"`
	Address          service.CheckoutAddressInput `json:"address"`
	Platform         string                       `json:"platform"`
}

// Create opens a hosted checkout session. Requests carrying an
// Idempotency-Key replay the original response on retry instead of
// opening a second payment session.
func (h *CheckoutHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		response.Error(w, r, http.StatusUnauthorized, "UNAUTHORIZED", "invalid user", nil)
		return
	}

	body, err := io.ReadAll(io.LimitReader(r.Body, 1<<20))
	if err != nil {
		response.Error(w, r, http.StatusBadRequest, "BAD_REQUEST", "failed to read request body", nil)
		return
	}
	var req checkoutRequest
	if err := json.Unmarshal(body, &req); err != nil {
		response.Error(w, r, http.StatusBadRequest, "BAD_REQUEST", "invalid request body", nil)
		return
	}

	idemKey := r.Header.Get("Idempotency-Key")
	fingerprint := requestFingerprint(userID, body)
	if idemKey != "" {
		begin, err := h.idempotency.Begin(r.Context(), idempotencyScopeCheckout, idemKey, fingerprint, h.idempotencyTTL)
		if err != nil {
			response.Error(w, r, http.StatusInternalServerError, "INTERNAL", "idempotency check failed", nil)
			return
		}
		switch begin.State {
		case service.IdempotencyStateReplay:
			response.JSON(w, r, begin.Cached.StatusCode, json.RawMessage(begin.Cached.Body))
			return
		case service.IdempotencyStateConflict:
			response.Error(w, r, http.StatusConflict, "IDEMPOTENCY_KEY_REUSED", "idempotency key was used with a different request", nil)
			return
		case service.IdempotencyStateInProgress:
			response.Error(w, r, http.StatusConflict, "IN_PROGRESS", "original request is still being processed", nil)
			return
		}
	}

	result, err := h.checkoutSvc.CreateSession(r.Context(), service.CheckoutInput{
		UserID:           userID,
		Items:            req.Items,
		DiscountCode:     req.DiscountCode,
		ShippingMethodID: req.ShippingMethodID,
		Address:          req.Address,
		Platform:         req.Platform,
	})
	if err != nil {
		h.writeCheckoutError(w, r, err)
		return
	}

	if idemKey != "" {
		payload, marshalErr := json.Marshal(result)
		if marshalErr == nil {
			_ = h.idempotency.Complete(r.Context(), idempotencyScopeCheckout, idemKey, fingerprint, service.CachedHTTPResponse{
				StatusCode:  http.StatusCreated,
				ContentType: "application/json",
				Body:        payload,
			}, h.idempotencyTTL)
		}
	}
	response.JSON(w, r, http.StatusCreated, result)
}

func (h *CheckoutHandler) writeCheckoutError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, service.ErrEmptyCart),
		errors.Is(err, service.ErrInvalidQuantity),
		errors.Is(err, service.ErrUnknownVariant):
		response.Error(w, r, http.StatusBadRequest, "BAD_REQUEST", err.Error(), nil)
	case errors.Is(err, service.ErrNoBillingAccount):
		response.Error(w, r, http.StatusConflict, "NO_BILLING_ACCOUNT", "guardian has no billing account", nil)
	case errors.Is(err, service.ErrShippingMethodInvalid):
		response.Error(w, r, http.StatusBadRequest, "BAD_REQUEST", "shipping method is not available", nil)
	case errors.Is(err, service.ErrPaymentProvider):
		response.Error(w, r, http.StatusBadGateway, "PAYMENT_PROVIDER", "payment provider request failed", nil)
	default:
		response.Error(w, r, http.StatusInternalServerError, "INTERNAL", "failed to create checkout session", nil)
	}
}

func requestFingerprint(userID uint, body []byte) string {
	sum := sha256.Sum256(append([]byte(fmt.Sprintf("%d:", userID)), body...))
	return hex.EncodeToString(sum[:])
}
