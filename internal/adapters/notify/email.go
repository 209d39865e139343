package notify

import (
	"context"
	"fmt"

	"planbook/internal/domain"
)

// EmailNotifier delivers reminders through the EmailService. Failures are
// returned to the caller; the sweep logs them and moves on, so a transient
// mail-relay outage never stalls other reminders.
type EmailNotifier struct {
	emails domain.EmailService
}

// NewEmailNotifier returns a Notifier that sends a reminder email per notice.
func NewEmailNotifier(emails domain.EmailService) *EmailNotifier {
	return &EmailNotifier{emails: emails}
}

func (n *EmailNotifier) Notify(ctx context.Context, notice *domain.ReminderNotice) error {
	data := &domain.ReminderEmailData{
		Email:            notice.RecipientAddress,
		EventName:        notice.EventName,
		EventDescription: notice.EventDescription,
		EventInstant:     notice.EventInstant,
	}
	if err := n.emails.SendReminder(ctx, data); err != nil {
		return fmt.Errorf("send reminder email: %w", err)
	}
	return nil
}
