package notify

import (
	"context"
	"log/slog"

	"planbook/internal/domain"
)

// LogNotifier delivers reminders to the application log. It backs the
// "notification" channel and is the fallback for unknown delivery types.
type LogNotifier struct {
	logger *slog.Logger
}

// NewLogNotifier returns a Notifier that writes each due reminder to the log.
func NewLogNotifier(logger *slog.Logger) *LogNotifier {
	return &LogNotifier{logger: logger}
}

func (n *LogNotifier) Notify(ctx context.Context, notice *domain.ReminderNotice) error {
	n.logger.Info("reminder due",
		"event", notice.EventName,
		"description", notice.EventDescription,
		"event_instant", notice.EventInstant,
		"recipient", notice.RecipientAddress,
	)
	return nil
}
