package notify

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"planbook/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeEmailService struct {
	sent []*domain.ReminderEmailData
	err  error
}

func (f *fakeEmailService) SendWelcomeMessage(ctx context.Context, data *domain.WelcomeMessageEmailData) error {
	return nil
}

func (f *fakeEmailService) SendReminder(ctx context.Context, data *domain.ReminderEmailData) error {
	if f.err != nil {
		return f.err
	}
	f.sent = append(f.sent, data)
	return nil
}

func notice() *domain.ReminderNotice {
	return &domain.ReminderNotice{
		EventName:        "Dentist",
		EventDescription: "Annual checkup",
		EventInstant:     time.Date(2025, 4, 1, 14, 0, 0, 0, time.UTC),
		RecipientAddress: "owner@example.com",
		DeliveryType:     domain.DeliveryEmail,
	}
}

func TestEmailNotifier_Notify(t *testing.T) {
	svc := &fakeEmailService{}
	n := NewEmailNotifier(svc)

	require.NoError(t, n.Notify(context.Background(), notice()))
	require.Len(t, svc.sent, 1)
	assert.Equal(t, "owner@example.com", svc.sent[0].Email)
	assert.Equal(t, "Dentist", svc.sent[0].EventName)
}

func TestEmailNotifier_NotifyPropagatesFailure(t *testing.T) {
	svc := &fakeEmailService{err: errors.New("relay unreachable")}
	n := NewEmailNotifier(svc)

	err := n.Notify(context.Background(), notice())
	require.Error(t, err)
}

func TestLogNotifier_NeverFails(t *testing.T) {
	n := NewLogNotifier(slog.New(slog.NewTextHandler(io.Discard, nil)))
	assert.NoError(t, n.Notify(context.Background(), notice()))
}
