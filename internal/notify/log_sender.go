package notify

import (
	"context"
	"log/slog"
)

// LogSender writes outbound mail to the log instead of delivering it. It is
// the default sender for deployments without an SMTP relay.
type LogSender struct {
	logger *slog.Logger
}

// NewLogSender constructs a log-only sender.
func NewLogSender(logger *slog.Logger) *LogSender {
	if logger == nil {
		logger = slog.Default()
	}
	return &LogSender{logger: logger}
}

// Send logs the message and reports success.
func (s *LogSender) Send(ctx context.Context, to, subject, body string) error {
	s.logger.InfoContext(ctx, "mail suppressed",
		"to", to,
		"subject", subject,
		"body", body,
	)
	return nil
}
