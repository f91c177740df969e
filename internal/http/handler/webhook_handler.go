package handler

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/dominik-hvln/zozoapp-sub000/internal/payment"
	"github.com/dominik-hvln/zozoapp-sub000/internal/service"
)

const maxWebhookBodyBytes = 1 << 16

type WebhookHandler struct {
	reconciliationSvc *service.ReconciliationService
}

func NewWebhookHandler(reconciliationSvc *service.ReconciliationService) *WebhookHandler {
	return &WebhookHandler{reconciliationSvc: reconciliationSvc}
}

// HandleStripe acknowledges Stripe deliveries with the bare
// {received:bool} body Stripe expects; the response envelope is not
// used here. The raw body goes to signature verification untouched.
func (h *WebhookHandler) HandleStripe(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxWebhookBodyBytes))
	if err != nil {
		writeWebhookAck(w, http.StatusBadRequest, false)
		return
	}

	if err := h.reconciliationSvc.HandleWebhook(r.Context(), body, r.Header.Get("Stripe-Signature")); err != nil {
		if errors.Is(err, payment.ErrInvalidSignature) {
			writeWebhookAck(w, http.StatusBadRequest, false)
			return
		}
		// Non-2xx makes Stripe redeliver; reconciliation is idempotent
		// so retries are safe.
		writeWebhookAck(w, http.StatusInternalServerError, false)
		return
	}
	writeWebhookAck(w, http.StatusOK, true)
}

func writeWebhookAck(w http.ResponseWriter, status int, received bool) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]bool{"received": received})
}
