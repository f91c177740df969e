package integration

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"

	"github.com/dominik-hvln/zozoapp-sub000/internal/domain"
	"github.com/dominik-hvln/zozoapp-sub000/internal/notify"
)

func TestScanFlowResolvesAndDeduplicates(t *testing.T) {
	env := newTestEnv(t)
	_, assignment := env.seedActiveAssignment(t, "zzz-abc123")

	resolve := func() *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, "/api/v1/scans/zzz-abc123", nil)
		req.RemoteAddr = "203.0.113.9:51234"
		rec := httptest.NewRecorder()
		env.router.ServeHTTP(rec, req)
		return rec
	}

	first := resolve()
	if first.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", first.Code, first.Body.String())
	}
	var body struct {
		Data struct {
			ScanID   uint `json:"scan_id"`
			Guardian struct {
				FullName string `json:"full_name"`
				Phone    string `json:"phone"`
			} `json:"guardian"`
			Child struct {
				Name string `json:"name"`
			} `json:"child"`
		} `json:"data"`
	}
	if err := json.Unmarshal(first.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if body.Data.Guardian.Phone != "+48123456789" || body.Data.Child.Name != "Zosia" {
		t.Errorf("unexpected projection: %+v", body.Data)
	}

	second := resolve()
	if second.Code != http.StatusOK {
		t.Fatalf("expected 200 on duplicate, got %d", second.Code)
	}

	var scanCount int64
	env.db.Model(&domain.ScanEvent{}).Where("assignment_id = ?", assignment.ID).Count(&scanCount)
	if scanCount != 1 {
		t.Errorf("expected 1 scan event after double scan, got %d", scanCount)
	}
	var notificationCount int64
	env.db.Model(&domain.Notification{}).Where("user_id = ?", assignment.UserID).Count(&notificationCount)
	if notificationCount != 2 {
		t.Errorf("expected 2 inbox notifications after double scan, got %d", notificationCount)
	}
	if got := env.emails.count(notify.EmailTemplateScanAlert); got != 1 {
		t.Errorf("expected 1 scan alert email, got %d", got)
	}
}

func TestScanFlowUnknownCode(t *testing.T) {
	env := newTestEnv(t)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/scans/zzz-nothing", nil)
	req.RemoteAddr = "203.0.113.9:51234"
	rec := httptest.NewRecorder()
	env.router.ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
	var scanCount int64
	env.db.Model(&domain.ScanEvent{}).Count(&scanCount)
	if scanCount != 0 {
		t.Errorf("unknown code must not record scans, got %d", scanCount)
	}
}

func TestScanFlowAttachLocation(t *testing.T) {
	env := newTestEnv(t)
	env.seedActiveAssignment(t, "zzz-abc123")

	req := httptest.NewRequest(http.MethodPost, "/api/v1/scans/zzz-abc123", nil)
	req.RemoteAddr = "203.0.113.9:51234"
	rec := httptest.NewRecorder()
	env.router.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("resolve: expected 200, got %d", rec.Code)
	}
	var resolved struct {
		Data struct {
			ScanID uint `json:"scan_id"`
		} `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resolved); err != nil {
		t.Fatalf("decode response: %v", err)
	}

	locReq := httptest.NewRequest(
		http.MethodPatch,
		"/api/v1/scans/"+itoa(resolved.Data.ScanID)+"/location",
		strings.NewReader(`{"latitude":52.2297,"longitude":21.0122}`),
	)
	locRec := httptest.NewRecorder()
	env.router.ServeHTTP(locRec, locReq)
	if locRec.Code != http.StatusOK {
		t.Fatalf("attach location: expected 200, got %d: %s", locRec.Code, locRec.Body.String())
	}

	var event domain.ScanEvent
	if err := env.db.First(&event, resolved.Data.ScanID).Error; err != nil {
		t.Fatalf("load scan event: %v", err)
	}
	if event.Latitude == nil || *event.Latitude != 52.2297 {
		t.Errorf("latitude not saved: %v", event.Latitude)
	}
}

func TestActivationFlowConflictsOnSecondUse(t *testing.T) {
	env := newTestEnv(t)
	user := env.seedGuardian(t)
	child := env.seedChild(t, user.ID)
	instance := domain.TattooInstance{Code: "zzz-fresh", Status: domain.TattooStatusNew}
	if err := env.db.Create(&instance).Error; err != nil {
		t.Fatalf("create instance: %v", err)
	}

	activate := func() *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, "/api/v1/tattoos/zzz-fresh/activate",
			strings.NewReader(`{"child_id":`+itoa(child.ID)+`}`))
		req.Header.Set("Authorization", env.authHeader(t, user.ID))
		rec := httptest.NewRecorder()
		env.router.ServeHTTP(rec, req)
		return rec
	}

	first := activate()
	if first.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", first.Code, first.Body.String())
	}
	second := activate()
	if second.Code != http.StatusConflict {
		t.Fatalf("expected 409 on second activation, got %d", second.Code)
	}

	var refreshed domain.TattooInstance
	if err := env.db.First(&refreshed, instance.ID).Error; err != nil {
		t.Fatalf("load instance: %v", err)
	}
	if refreshed.Status != domain.TattooStatusActive {
		t.Errorf("expected active status, got %s", refreshed.Status)
	}
	if refreshed.ExpiresAt == nil {
		t.Error("expected expiry stamped")
	}
}

func itoa(v uint) string {
	return strconv.FormatUint(uint64(v), 10)
}
