package notify

import (
	"context"
	"log/slog"
)

const (
	EmailTemplateScanAlert         = "scan-alert"
	EmailTemplateOrderConfirmation = "order-confirmation"
)

type EmailSender interface {
	Send(ctx context.Context, template, to string, data map[string]any) error
}

// DevEmailSender logs outgoing mail instead of delivering it. The
// production transport is swapped in at the DI layer per deployment.
type DevEmailSender struct {
	logger *slog.Logger
}

func NewDevEmailSender(logger *slog.Logger) *DevEmailSender {
	return &DevEmailSender{logger: logger}
}

func (s *DevEmailSender) Send(ctx context.Context, template, to string, data map[string]any) error {
	s.logger.InfoContext(ctx, "email dispatched",
		"template", template,
		"to", to,
		"data", data,
	)
	return nil
}
