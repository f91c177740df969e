package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/dominik-hvln/zozoapp-sub000/internal/domain"
	"github.com/dominik-hvln/zozoapp-sub000/internal/repository"
)

var (
	ErrCodeNotFound         = errors.New("tattoo code not found")
	ErrCodeAlreadyActivated = errors.New("tattoo code was already activated")
)

type ActivationService struct {
	tattoos     repository.TattooRepository
	assignments repository.AssignmentRepository
	logger      *slog.Logger
	activeFor   time.Duration
	now         func() time.Time
}

func NewActivationService(
	tattoos repository.TattooRepository,
	assignments repository.AssignmentRepository,
	logger *slog.Logger,
	activeFor time.Duration,
) *ActivationService {
	return &ActivationService{
		tattoos:     tattoos,
		assignments: assignments,
		logger:      logger,
		activeFor:   activeFor,
		now:         time.Now,
	}
}

// Activate moves a `new` code to `active`, stamps its expiry and links
// it to guardian and child. Codes that left the `new` state fail with
// ErrCodeAlreadyActivated and create nothing; the status guard inside
// the repository makes concurrent activations safe.
func (s *ActivationService) Activate(ctx context.Context, userID, childID uint, code string) (*domain.Assignment, error) {
	instance, err := s.tattoos.FindByCode(code)
	if err != nil {
		if errors.Is(err, repository.ErrTattooNotFound) {
			return nil, ErrCodeNotFound
		}
		return nil, fmt.Errorf("resolve code: %w", err)
	}
	if instance.Status != domain.TattooStatusNew {
		return nil, ErrCodeAlreadyActivated
	}

	expiresAt := s.now().Add(s.activeFor).UTC()
	assignment := &domain.Assignment{UserID: userID, ChildID: childID}
	if err := s.tattoos.Activate(instance.ID, expiresAt, assignment); err != nil {
		if errors.Is(err, repository.ErrTattooNotNew) {
			return nil, ErrCodeAlreadyActivated
		}
		return nil, fmt.Errorf("activate code: %w", err)
	}
	s.logger.InfoContext(ctx, "tattoo activated",
		"code", code,
		"assignment_id", assignment.ID,
		"expires_at", expiresAt,
	)
	return assignment, nil
}

// Deactivate retires an assignment and its code ahead of expiry.
func (s *ActivationService) Deactivate(ctx context.Context, assignmentID uint) error {
	if err := s.assignments.Deactivate(assignmentID); err != nil {
		return err
	}
	s.logger.InfoContext(ctx, "assignment deactivated", "assignment_id", assignmentID)
	return nil
}
