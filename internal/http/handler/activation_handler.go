package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/dominik-hvln/zozoapp-sub000/internal/http/middleware"
	"github.com/dominik-hvln/zozoapp-sub000/internal/http/response"
	"github.com/dominik-hvln/zozoapp-sub000/internal/service"
)

type ActivationHandler struct {
	activationSvc *service.ActivationService
}

func NewActivationHandler(activationSvc *service.ActivationService) *ActivationHandler {
	return &ActivationHandler{activationSvc: activationSvc}
}

func (h *ActivationHandler) Activate(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		response.Error(w, r, http.StatusUnauthorized, "UNAUTHORIZED", "invalid user", nil)
		return
	}
	code := chi.URLParam(r, "code")

	var req struct {
		ChildID uint `json:"child_id"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, r, http.StatusBadRequest, "BAD_REQUEST", "invalid request body", nil)
		return
	}
	if req.ChildID == 0 {
		response.Error(w, r, http.StatusBadRequest, "BAD_REQUEST", "child_id is required", nil)
		return
	}

	assignment, err := h.activationSvc.Activate(r.Context(), userID, req.ChildID, code)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrCodeNotFound):
			response.Error(w, r, http.StatusNotFound, "NOT_FOUND", "tattoo code not found", nil)
		case errors.Is(err, service.ErrCodeAlreadyActivated):
			response.Error(w, r, http.StatusConflict, "CONFLICT", "tattoo code was already activated", nil)
		default:
			response.Error(w, r, http.StatusInternalServerError, "INTERNAL", "failed to activate tattoo", nil)
		}
		return
	}
	response.JSON(w, r, http.StatusCreated, assignment)
}
