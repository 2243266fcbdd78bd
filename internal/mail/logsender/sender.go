package logsender

import (
	"context"

	"github.com/KarimovMurodilla/lead-management-system/internal/mail"
	"github.com/KarimovMurodilla/lead-management-system/internal/shared/telemetry"
)

// Sender logs outbound mail instead of delivering it. Used in dev and tests.
type Sender struct{}

func New() *Sender {
	return &Sender{}
}

func (s *Sender) Send(ctx context.Context, msg mail.Message) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	telemetry.Info("mail.log_sender", map[string]any{
		"to":      msg.ToEmail,
		"subject": msg.Subject,
	})
	return true, nil
}
