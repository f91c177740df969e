package handler

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/dominik-hvln/zozoapp-sub000/internal/http/middleware"
	"github.com/dominik-hvln/zozoapp-sub000/internal/http/response"
	"github.com/dominik-hvln/zozoapp-sub000/internal/repository"
	"github.com/dominik-hvln/zozoapp-sub000/internal/service"
)

type OrderHandler struct {
	reconciliationSvc *service.ReconciliationService
}

func NewOrderHandler(reconciliationSvc *service.ReconciliationService) *OrderHandler {
	return &OrderHandler{reconciliationSvc: reconciliationSvc}
}

// Confirm backs the thank-you page poll. A still-pending order is a
// normal answer, not an error; the client keeps polling until the
// webhook or this call completes it.
func (h *OrderHandler) Confirm(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		response.Error(w, r, http.StatusUnauthorized, "UNAUTHORIZED", "invalid user", nil)
		return
	}
	sessionID := chi.URLParam(r, "sessionID")
	if sessionID == "" {
		response.Error(w, r, http.StatusBadRequest, "BAD_REQUEST", "session id is required", nil)
		return
	}

	order, err := h.reconciliationSvc.FinalizeBySession(r.Context(), userID, sessionID)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrOrderNotFound):
			response.Error(w, r, http.StatusNotFound, "NOT_FOUND", "order not found", nil)
		case errors.Is(err, service.ErrPaymentProvider):
			response.Error(w, r, http.StatusBadGateway, "PAYMENT_PROVIDER", "payment provider request failed", nil)
		default:
			response.Error(w, r, http.StatusInternalServerError, "INTERNAL", "failed to confirm order", nil)
		}
		return
	}
	response.JSON(w, r, http.StatusOK, order)
}
