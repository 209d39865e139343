package schedule

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

// fakeEventStore implements the candidate-fetch side of domain.EventRepository.
type fakeEventStore struct {
	events []*domain.Event
	err    error
	gotNow time.Time
}

func (f *fakeEventStore) ListDueCandidates(ctx context.Context, now time.Time) ([]*domain.Event, error) {
	f.gotNow = now
	if f.err != nil {
		return nil, f.err
	}
	return f.events, nil
}

func (f *fakeEventStore) Create(ctx context.Context, e *domain.Event) error { return nil }
func (f *fakeEventStore) GetByID(ctx context.Context, id string) (*domain.Event, error) {
	return nil, domain.ErrNotFound
}
func (f *fakeEventStore) ListByOwnerID(ctx context.Context, ownerID string, params domain.PaginationParams) ([]*domain.Event, int, error) {
	return nil, 0, nil
}
func (f *fakeEventStore) Update(ctx context.Context, eventID string, upd domain.EventUpdate) (*domain.Event, error) {
	return nil, domain.ErrNotFound
}
func (f *fakeEventStore) Delete(ctx context.Context, id string) error { return nil }
func (f *fakeEventStore) AddReminder(ctx context.Context, eventID string, rem *domain.Reminder) error {
	return nil
}
func (f *fakeEventStore) RemoveReminder(ctx context.Context, eventID, reminderID string) error {
	return nil
}

// fakeUserStore resolves owners to recipient addresses.
type fakeUserStore struct {
	users map[string]*domain.User
	err   error
}

func (f *fakeUserStore) GetByID(ctx context.Context, id string) (*domain.User, error) {
	if f.err != nil {
		return nil, f.err
	}
	if u, ok := f.users[id]; ok {
		return u, nil
	}
	return nil, domain.ErrUserNotFound
}
func (f *fakeUserStore) Create(ctx context.Context, u *domain.User) error { return nil }
func (f *fakeUserStore) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	return nil, domain.ErrUserNotFound
}
func (f *fakeUserStore) Update(ctx context.Context, u *domain.User) error { return nil }

// recordingNotifier records notices and optionally fails.
type recordingNotifier struct {
	notices []*domain.ReminderNotice
	err     error
}

func (n *recordingNotifier) Notify(ctx context.Context, notice *domain.ReminderNotice) error {
	n.notices = append(n.notices, notice)
	return n.err
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func testEvent(id, owner, date, start string, reminders ...domain.Reminder) *domain.Event {
	return &domain.Event{
		ID:        id,
		OwnerID:   owner,
		Name:      "Dentist",
		Date:      date,
		StartTime: start,
		Reminders: reminders,
	}
}

func TestSweeper_RunOnce_DispatchesDueReminders(t *testing.T) {
	now := time.Date(2025, 4, 1, 13, 30, 0, 0, time.UTC)
	event := testEvent("ev-1", "user-1", "2025-04-01", "14:00",
		domain.Reminder{ID: "rem-1", EventID: "ev-1", Offset: "30 minutes", Type: domain.DeliveryNotification},
		domain.Reminder{ID: "rem-2", EventID: "ev-1", Offset: "1 hours", Type: domain.DeliveryNotification},
	)
	store := &fakeEventStore{events: []*domain.Event{event}}
	users := &fakeUserStore{users: map[string]*domain.User{"user-1": {ID: "user-1", Email: "owner@example.com"}}}
	logCh := &recordingNotifier{}

	sw := NewSweeper(store, users, map[domain.DeliveryType]domain.Notifier{
		domain.DeliveryNotification: logCh,
	}, testLogger(), time.Minute, 60*time.Second, time.UTC)

	require.NoError(t, sw.RunOnce(context.Background(), now))
	// Only the 30-minute reminder is due; the 1-hour one triggered at 13:00.
	require.Len(t, logCh.notices, 1)
	notice := logCh.notices[0]
	assert.Equal(t, "Dentist", notice.EventName)
	assert.Equal(t, "owner@example.com", notice.RecipientAddress)
	assert.Equal(t, domain.DeliveryNotification, notice.DeliveryType)
	assert.Equal(t, time.Date(2025, 4, 1, 14, 0, 0, 0, time.UTC), notice.EventInstant)
}

func TestSweeper_RunOnce_RoutesByDeliveryType(t *testing.T) {
	now := time.Date(2025, 4, 1, 13, 30, 0, 0, time.UTC)
	event := testEvent("ev-1", "user-1", "2025-04-01", "14:00",
		domain.Reminder{ID: "rem-1", Offset: "30 minutes", Type: domain.DeliveryEmail},
		domain.Reminder{ID: "rem-2", Offset: "30 minutes", Type: domain.DeliveryNotification},
	)
	store := &fakeEventStore{events: []*domain.Event{event}}
	users := &fakeUserStore{users: map[string]*domain.User{"user-1": {ID: "user-1", Email: "owner@example.com"}}}
	emailCh := &recordingNotifier{}
	logCh := &recordingNotifier{}

	sw := NewSweeper(store, users, map[domain.DeliveryType]domain.Notifier{
		domain.DeliveryEmail:        emailCh,
		domain.DeliveryNotification: logCh,
	}, testLogger(), time.Minute, 60*time.Second, time.UTC)

	require.NoError(t, sw.RunOnce(context.Background(), now))
	assert.Len(t, emailCh.notices, 1)
	assert.Len(t, logCh.notices, 1)
}

func TestSweeper_RunOnce_UnknownTypeFallsBackToLog(t *testing.T) {
	now := time.Date(2025, 4, 1, 13, 30, 0, 0, time.UTC)
	event := testEvent("ev-1", "user-1", "2025-04-01", "14:00",
		domain.Reminder{ID: "rem-1", Offset: "30 minutes", Type: domain.DeliveryType("pager")},
	)
	store := &fakeEventStore{events: []*domain.Event{event}}
	users := &fakeUserStore{users: map[string]*domain.User{"user-1": {ID: "user-1", Email: "owner@example.com"}}}
	logCh := &recordingNotifier{}

	sw := NewSweeper(store, users, map[domain.DeliveryType]domain.Notifier{
		domain.DeliveryNotification: logCh,
	}, testLogger(), time.Minute, 60*time.Second, time.UTC)

	require.NoError(t, sw.RunOnce(context.Background(), now))
	require.Len(t, logCh.notices, 1)
	assert.Equal(t, domain.DeliveryType("pager"), logCh.notices[0].DeliveryType)
}

func TestSweeper_RunOnce_NotifierFailureDoesNotAbortSweep(t *testing.T) {
	now := time.Date(2025, 4, 1, 13, 30, 0, 0, time.UTC)
	events := []*domain.Event{
		testEvent("ev-1", "user-1", "2025-04-01", "14:00",
			domain.Reminder{ID: "rem-1", Offset: "30 minutes", Type: domain.DeliveryEmail}),
		testEvent("ev-2", "user-1", "2025-04-01", "14:00",
			domain.Reminder{ID: "rem-2", Offset: "30 minutes", Type: domain.DeliveryNotification}),
	}
	store := &fakeEventStore{events: events}
	users := &fakeUserStore{users: map[string]*domain.User{"user-1": {ID: "user-1", Email: "owner@example.com"}}}
	emailCh := &recordingNotifier{err: errors.New("smtp relay unreachable")}
	logCh := &recordingNotifier{}

	sw := NewSweeper(store, users, map[domain.DeliveryType]domain.Notifier{
		domain.DeliveryEmail:        emailCh,
		domain.DeliveryNotification: logCh,
	}, testLogger(), time.Minute, 60*time.Second, time.UTC)

	require.NoError(t, sw.RunOnce(context.Background(), now))
	// The failing email notifier was still attempted and the second event's
	// reminder was dispatched regardless.
	assert.Len(t, emailCh.notices, 1)
	assert.Len(t, logCh.notices, 1)
}

func TestSweeper_RunOnce_StoreFailureAbortsTick(t *testing.T) {
	store := &fakeEventStore{err: errors.New("connection refused")}
	users := &fakeUserStore{}
	logCh := &recordingNotifier{}

	sw := NewSweeper(store, users, map[domain.DeliveryType]domain.Notifier{
		domain.DeliveryNotification: logCh,
	}, testLogger(), time.Minute, 60*time.Second, time.UTC)

	err := sw.RunOnce(context.Background(), time.Now())
	require.Error(t, err)
	assert.Empty(t, logCh.notices)
}

func TestSweeper_RunOnce_MalformedOffsetSkipped(t *testing.T) {
	now := time.Date(2025, 4, 1, 13, 30, 0, 0, time.UTC)
	event := testEvent("ev-1", "user-1", "2025-04-01", "14:00",
		domain.Reminder{ID: "rem-1", Offset: "soon minutes", Type: domain.DeliveryNotification},
		domain.Reminder{ID: "rem-2", Offset: "30 minutes", Type: domain.DeliveryNotification},
	)
	store := &fakeEventStore{events: []*domain.Event{event}}
	users := &fakeUserStore{users: map[string]*domain.User{"user-1": {ID: "user-1", Email: "owner@example.com"}}}
	logCh := &recordingNotifier{}

	sw := NewSweeper(store, users, map[domain.DeliveryType]domain.Notifier{
		domain.DeliveryNotification: logCh,
	}, testLogger(), time.Minute, 60*time.Second, time.UTC)

	require.NoError(t, sw.RunOnce(context.Background(), now))
	require.Len(t, logCh.notices, 1)
}

func TestSweeper_RunOnce_UnknownUnitFiresAtEventInstant(t *testing.T) {
	event := testEvent("ev-1", "user-1", "2025-04-01", "14:00",
		domain.Reminder{ID: "rem-1", Offset: "2 fortnights", Type: domain.DeliveryNotification},
	)
	store := &fakeEventStore{events: []*domain.Event{event}}
	users := &fakeUserStore{users: map[string]*domain.User{"user-1": {ID: "user-1", Email: "owner@example.com"}}}
	logCh := &recordingNotifier{}

	sw := NewSweeper(store, users, map[domain.DeliveryType]domain.Notifier{
		domain.DeliveryNotification: logCh,
	}, testLogger(), time.Minute, 60*time.Second, time.UTC)

	// Half an hour before the event: not due with a zero offset.
	require.NoError(t, sw.RunOnce(context.Background(), time.Date(2025, 4, 1, 13, 30, 0, 0, time.UTC)))
	assert.Empty(t, logCh.notices)

	// At the event instant itself: due.
	require.NoError(t, sw.RunOnce(context.Background(), time.Date(2025, 4, 1, 14, 0, 0, 0, time.UTC)))
	assert.Len(t, logCh.notices, 1)
}

func TestSweeper_RunOnce_FetchesCandidatesInSweepLocation(t *testing.T) {
	// An event at 14:00 wall clock in a zone four hours behind UTC starts at
	// 18:00 UTC. Fifteen minutes before that, the store must be asked with
	// now converted into the sweep location, or the naive text comparison
	// would already consider the event past and its reminder could not fire.
	loc := time.FixedZone("UTC-4", -4*60*60)
	now := time.Date(2025, 4, 1, 17, 45, 0, 0, time.UTC)
	event := testEvent("ev-1", "user-1", "2025-04-01", "14:00",
		domain.Reminder{ID: "rem-1", Offset: "15 minutes", Type: domain.DeliveryNotification},
	)
	store := &fakeEventStore{events: []*domain.Event{event}}
	users := &fakeUserStore{users: map[string]*domain.User{"user-1": {ID: "user-1", Email: "owner@example.com"}}}
	logCh := &recordingNotifier{}

	sw := NewSweeper(store, users, map[domain.DeliveryType]domain.Notifier{
		domain.DeliveryNotification: logCh,
	}, testLogger(), time.Minute, 60*time.Second, loc)

	require.NoError(t, sw.RunOnce(context.Background(), now))
	assert.Equal(t, "2025-04-01 13:45:00", store.gotNow.Format("2006-01-02 15:04:05"))
	require.Len(t, logCh.notices, 1)
	assert.True(t, logCh.notices[0].EventInstant.Equal(time.Date(2025, 4, 1, 18, 0, 0, 0, time.UTC)))
}

func TestSweeper_Run_StopsOnCancel(t *testing.T) {
	store := &fakeEventStore{}
	users := &fakeUserStore{}
	sw := NewSweeper(store, users, nil, testLogger(), 10*time.Millisecond, 60*time.Second, time.UTC)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		sw.Run(ctx)
		close(done)
	}()

	time.Sleep(35 * time.Millisecond)
	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("sweeper did not stop after cancellation")
	}
}
