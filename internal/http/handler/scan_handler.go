package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/dominik-hvln/zozoapp-sub000/internal/http/response"
	"github.com/dominik-hvln/zozoapp-sub000/internal/repository"
	"github.com/dominik-hvln/zozoapp-sub000/internal/service"
)

type ScanHandler struct {
	scanSvc *service.ScanService
}

func NewScanHandler(scanSvc *service.ScanService) *ScanHandler {
	return &ScanHandler{scanSvc: scanSvc}
}

// Resolve answers a scanned QR code. The route is public; a stranger
// holding a lost child's code gets the guardian contact card, nothing
// more.
func (h *ScanHandler) Resolve(w http.ResponseWriter, r *http.Request) {
	code := chi.URLParam(r, "code")
	result, err := h.scanSvc.Resolve(r.Context(), code, clientIP(r), r.UserAgent())
	if err != nil {
		if errors.Is(err, service.ErrScanNotFound) {
			response.Error(w, r, http.StatusNotFound, "NOT_FOUND", "code not recognized", nil)
			return
		}
		response.Error(w, r, http.StatusInternalServerError, "INTERNAL", "failed to resolve scan", nil)
		return
	}
	response.JSON(w, r, http.StatusOK, result)
}

// AttachLocation is the follow-up call once the scanner's browser has
// geolocation consent.
func (h *ScanHandler) AttachLocation(w http.ResponseWriter, r *http.Request) {
	scanID64, err := strconv.ParseUint(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		response.Error(w, r, http.StatusBadRequest, "BAD_REQUEST", "invalid scan id", nil)
		return
	}

	var req struct {
		Latitude  *float64 `json:"latitude"`
		Longitude *float64 `json:"longitude"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, r, http.StatusBadRequest, "BAD_REQUEST", "invalid request body", nil)
		return
	}
	if req.Latitude == nil || req.Longitude == nil {
		response.Error(w, r, http.StatusBadRequest, "BAD_REQUEST", "latitude and longitude are required", nil)
		return
	}
	if *req.Latitude < -90 || *req.Latitude > 90 || *req.Longitude < -180 || *req.Longitude > 180 {
		response.Error(w, r, http.StatusBadRequest, "BAD_REQUEST", "coordinates out of range", nil)
		return
	}

	if err := h.scanSvc.AttachLocation(r.Context(), uint(scanID64), *req.Latitude, *req.Longitude); err != nil {
		if errors.Is(err, repository.ErrScanEventNotFound) {
			response.Error(w, r, http.StatusNotFound, "NOT_FOUND", "scan not found", nil)
			return
		}
		response.Error(w, r, http.StatusInternalServerError, "INTERNAL", "failed to attach location", nil)
		return
	}
	response.JSON(w, r, http.StatusOK, map[string]any{"scan_id": uint(scanID64), "location_saved": true})
}

func clientIP(r *http.Request) string {
	if ip := r.Header.Get("X-Real-Ip"); ip != "" {
		return ip
	}
	return r.RemoteAddr
}
