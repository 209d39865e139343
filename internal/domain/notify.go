package domain

import (
	"context"
	"time"
)

// ReminderNotice is the shape handed to a Notifier when a reminder comes due.
type ReminderNotice struct {
	EventName        string
	EventDescription string
	EventInstant     time.Time
	RecipientAddress string
	DeliveryType     DeliveryType
}

// Notifier delivers one due reminder over a single channel. Implementations
// must be safe to call repeatedly with the same notice: the sweep recomputes
// due-ness every tick and may dispatch a notice more than once under jitter.
type Notifier interface {
	Notify(ctx context.Context, notice *ReminderNotice) error
}
