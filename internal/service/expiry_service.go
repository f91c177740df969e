package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/dominik-hvln/zozoapp-sub000/internal/repository"
)

// ExpiryService is the periodic sweep that retires active codes past
// their expiry timestamp. It runs on a cron schedule from the app
// lifecycle; each pass is a single batch update.
type ExpiryService struct {
	tattoos repository.TattooRepository
	logger  *slog.Logger
	now     func() time.Time
}

func NewExpiryService(tattoos repository.TattooRepository, logger *slog.Logger) *ExpiryService {
	return &ExpiryService{tattoos: tattoos, logger: logger, now: time.Now}
}

func (s *ExpiryService) Sweep(ctx context.Context) {
	expired, err := s.tattoos.ExpireOlderThan(s.now().UTC())
	if err != nil {
		s.logger.ErrorContext(ctx, "expiry sweep failed", "error", err)
		return
	}
	if expired > 0 {
		s.logger.InfoContext(ctx, "expired tattoo instances", "count", expired)
	}
}
