package notify

import (
	"context"
	"log/slog"
)

type PushMessage struct {
	Title string
	Body  string
	Data  map[string]string
}

// PushResult reports delivery per device token. Unregistered marks
// tokens the provider rejected permanently; callers prune those from
// storage.
type PushResult struct {
	Token        string
	Err          error
	Unregistered bool
}

type PushSender interface {
	Send(ctx context.Context, tokens []string, msg PushMessage) ([]PushResult, error)
}

type DevPushSender struct {
	logger *slog.Logger
}

func NewDevPushSender(logger *slog.Logger) *DevPushSender {
	return &DevPushSender{logger: logger}
}

func (s *DevPushSender) Send(ctx context.Context, tokens []string, msg PushMessage) ([]PushResult, error) {
	results := make([]PushResult, 0, len(tokens))
	for _, token := range tokens {
		s.logger.InfoContext(ctx, "push dispatched", "token", token, "title", msg.Title)
		results = append(results, PushResult{Token: token})
	}
	return results, nil
}
