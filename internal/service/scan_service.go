package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/dominik-hvln/zozoapp-sub000/internal/domain"
	"github.com/dominik-hvln/zozoapp-sub000/internal/notify"
	"github.com/dominik-hvln/zozoapp-sub000/internal/observability"
	"github.com/dominik-hvln/zozoapp-sub000/internal/repository"
)

// ErrScanNotFound deliberately carries no detail about whether the code
// exists, expired or was never activated; whoever scanned is a
// stranger.
var ErrScanNotFound = errors.New("no active tattoo for this code")

type ChildPublicProfile struct {
	Name          string `json:"name"`
	Age           *int   `json:"age"`
	AvatarURL     string `json:"avatar_url,omitempty"`
	ImportantInfo string `json:"important_info"`
	MedicalInfo   string `json:"medical_info"`
}

type GuardianContact struct {
	FullName string `json:"full_name"`
	Phone    string `json:"phone"`
}

type ScanResult struct {
	ScanID    uint               `json:"scan_id"`
	Duplicate bool               `json:"-"`
	Child     ChildPublicProfile `json:"child"`
	Guardian  GuardianContact    `json:"guardian"`
}

type ScanService struct {
	assignments   repository.AssignmentRepository
	scans         repository.ScanRepository
	notifications repository.NotificationRepository
	deviceTokens  repository.DeviceTokenRepository
	email         notify.EmailSender
	push          notify.PushSender
	storage       StorageService
	logger        *slog.Logger
	dedupWindow   time.Duration
	now           func() time.Time
}

func NewScanService(
	assignments repository.AssignmentRepository,
	scans repository.ScanRepository,
	notifications repository.NotificationRepository,
	deviceTokens repository.DeviceTokenRepository,
	email notify.EmailSender,
	push notify.PushSender,
	storage StorageService,
	logger *slog.Logger,
	dedupWindow time.Duration,
) *ScanService {
	return &ScanService{
		assignments:   assignments,
		scans:         scans,
		notifications: notifications,
		deviceTokens:  deviceTokens,
		email:         email,
		push:          push,
		storage:       storage,
		logger:        logger,
		dedupWindow:   dedupWindow,
		now:           time.Now,
	}
}

// Resolve maps a scanned code to its active assignment, records the
// scan unless an earlier one sits inside the dedup window, and fans out
// guardian alerts. The inbox notification fires on every resolved scan
// regardless of the dedup outcome; only the scan event, email and push
// are suppressed for duplicates.
func (s *ScanService) Resolve(ctx context.Context, code, ip, userAgent string) (*ScanResult, error) {
	assignment, err := s.assignments.FindActiveByCode(code)
	if err != nil {
		if errors.Is(err, repository.ErrAssignmentNotFound) {
			observability.RecordScanEvent(ctx, "not_found")
			return nil, ErrScanNotFound
		}
		observability.RecordScanEvent(ctx, "error")
		return nil, fmt.Errorf("resolve assignment: %w", err)
	}

	now := s.now()
	recent, err := s.scans.LatestSince(assignment.ID, now.Add(-s.dedupWindow))
	if err != nil {
		observability.RecordScanEvent(ctx, "error")
		return nil, fmt.Errorf("dedup lookup: %w", err)
	}

	duplicate := recent != nil
	var scanID uint
	if duplicate {
		scanID = recent.ID
		observability.RecordScanEvent(ctx, "duplicate")
	} else {
		event := &domain.ScanEvent{AssignmentID: assignment.ID, IP: ip, UserAgent: userAgent}
		if err := s.scans.Create(event); err != nil {
			observability.RecordScanEvent(ctx, "error")
			return nil, fmt.Errorf("record scan event: %w", err)
		}
		scanID = event.ID
		s.fanOut(ctx, assignment)
		observability.RecordScanEvent(ctx, "recorded")
	}

	if err := s.notifications.Create(&domain.Notification{
		UserID:  assignment.UserID,
		Type:    domain.NotificationTypeScan,
		Title:   "Tatuaż zeskanowany",
		Message: fmt.Sprintf("Kod przypisany do %s został właśnie zeskanowany.", assignment.Child.Name),
	}); err != nil {
		s.logger.ErrorContext(ctx, "inbox notification failed", "assignment_id", assignment.ID, "error", err)
	}

	return &ScanResult{
		ScanID:    scanID,
		Duplicate: duplicate,
		Child:     s.childProjection(ctx, assignment.Child, now),
		Guardian:  GuardianContact{FullName: assignment.User.FullName, Phone: assignment.User.Phone},
	}, nil
}

// AttachLocation is a later companion call from the scanner's browser
// once it has geolocation consent. Last write wins.
func (s *ScanService) AttachLocation(ctx context.Context, scanID uint, latitude, longitude float64) error {
	return s.scans.AttachLocation(scanID, latitude, longitude)
}

// fanOut delivers the guardian alerts. Both channels are best-effort:
// nothing here may fail the scan response.
func (s *ScanService) fanOut(ctx context.Context, assignment *domain.Assignment) {
	if err := s.email.Send(ctx, notify.EmailTemplateScanAlert, assignment.User.Email, map[string]any{
		"child_name": assignment.Child.Name,
	}); err != nil {
		s.logger.ErrorContext(ctx, "scan alert email failed", "assignment_id", assignment.ID, "error", err)
	}

	tokens, err := s.deviceTokens.ListByUser(assignment.UserID)
	if err != nil {
		s.logger.ErrorContext(ctx, "device token lookup failed", "user_id", assignment.UserID, "error", err)
		return
	}
	if len(tokens) == 0 {
		return
	}
	tokenValues := make([]string, 0, len(tokens))
	for _, t := range tokens {
		tokenValues = append(tokenValues, t.Token)
	}
	results, err := s.push.Send(ctx, tokenValues, notify.PushMessage{
		Title: "Tatuaż zeskanowany",
		Body:  fmt.Sprintf("Kod przypisany do %s został właśnie zeskanowany.", assignment.Child.Name),
	})
	if err != nil {
		s.logger.ErrorContext(ctx, "push dispatch failed", "user_id", assignment.UserID, "error", err)
		return
	}
	var stale []string
	for _, res := range results {
		if res.Unregistered {
			stale = append(stale, res.Token)
			continue
		}
		if res.Err != nil {
			s.logger.WarnContext(ctx, "push delivery failed", "token", res.Token, "error", res.Err)
		}
	}
	if len(stale) > 0 {
		if err := s.deviceTokens.DeleteTokens(stale); err != nil {
			s.logger.ErrorContext(ctx, "stale token prune failed", "count", len(stale), "error", err)
		}
	}
}

func (s *ScanService) childProjection(ctx context.Context, child domain.Child, now time.Time) ChildPublicProfile {
	profile := ChildPublicProfile{
		Name:          child.Name,
		Age:           calculateAge(child.DateOfBirth, now),
		ImportantInfo: child.ImportantInfo,
		MedicalInfo:   child.MedicalInfo,
	}
	if child.AvatarKey != "" && s.storage != nil {
		url, err := s.storage.GenerateAvatarURL(ctx, child.AvatarKey)
		if err != nil {
			s.logger.WarnContext(ctx, "avatar url generation failed", "child_id", child.ID, "error", err)
		} else {
			profile.AvatarURL = url
		}
	}
	return profile
}

// calculateAge returns whole calendar years, nil without a known date
// of birth.
func calculateAge(dateOfBirth *time.Time, now time.Time) *int {
	if dateOfBirth == nil {
		return nil
	}
	dob := *dateOfBirth
	age := now.Year() - dob.Year()
	if now.Month() < dob.Month() || (now.Month() == dob.Month() && now.Day() < dob.Day()) {
		age--
	}
	return &age
}
