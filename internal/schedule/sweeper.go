package schedule

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"planbook/internal/domain"
)

// Sweeper periodically scans all candidate events and dispatches due
// reminders to the notifier registered for each reminder's delivery type.
//
// A single loop drives the whole sweep: sweeps never overlap, and if one
// overruns the period the next tick is simply delayed. Cancellation stops
// future ticks but never interrupts a sweep already in progress. Due-ness is
// recomputed from scratch every tick; the sweeper holds no state across ticks.
type Sweeper struct {
	events    domain.EventRepository
	users     domain.UserRepository
	notifiers map[domain.DeliveryType]domain.Notifier

	log       *slog.Logger
	period    time.Duration
	tolerance time.Duration
	loc       *time.Location
	now       func() time.Time
}

// NewSweeper builds a Sweeper. Zero period and tolerance fall back to one
// minute; a nil location falls back to UTC.
func NewSweeper(events domain.EventRepository, users domain.UserRepository, notifiers map[domain.DeliveryType]domain.Notifier, log *slog.Logger, period, tolerance time.Duration, loc *time.Location) *Sweeper {
	if period <= 0 {
		period = time.Minute
	}
	if tolerance <= 0 {
		tolerance = DefaultTolerance
	}
	if loc == nil {
		loc = time.UTC
	}
	return &Sweeper{
		events:    events,
		users:     users,
		notifiers: notifiers,
		log:       log,
		period:    period,
		tolerance: tolerance,
		loc:       loc,
		now:       time.Now,
	}
}

// Run blocks, executing one sweep per period until ctx is cancelled. A store
// failure aborts only the current tick; the next tick retries independently,
// so no extra backoff is applied.
func (s *Sweeper) Run(ctx context.Context) {
	s.log.Info("reminder sweeper started", "period", s.period, "tolerance", s.tolerance, "timezone", s.loc.String())
	ticker := time.NewTicker(s.period)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			s.log.Info("reminder sweeper stopped")
			return
		case <-ticker.C:
			if err := s.RunOnce(ctx, s.now()); err != nil {
				s.log.Error("sweep aborted", "err", err)
			}
		}
	}
}

// RunOnce performs a single sweep tick at the given instant. It returns an
// error only when the candidate fetch fails; individual reminder or
// notification failures are logged and never abort the sweep.
func (s *Sweeper) RunOnce(ctx context.Context, now time.Time) error {
	// Candidates are fetched with now in the sweep location so the store
	// compares the same wall clock the evaluator resolves instants in.
	events, err := s.events.ListDueCandidates(ctx, now.In(s.loc))
	if err != nil {
		return fmt.Errorf("fetch candidate events: %w", err)
	}
	for _, event := range events {
		instant, err := event.Instant(s.loc)
		if err != nil {
			s.log.Warn("skipping event with unparsable date", "event_id", event.ID, "err", err)
			continue
		}
		var recipient string
		for _, rem := range event.Reminders {
			offset, err := ParseOffset(rem.Offset)
			if err != nil && !errors.Is(err, ErrUnknownUnit) {
				// Bad magnitudes are rejected at creation; a row that still
				// carries one is skipped rather than fired at the wrong time.
				s.log.Warn("skipping reminder with malformed offset", "event_id", event.ID, "reminder_id", rem.ID, "offset", rem.Offset, "err", err)
				continue
			}
			if errors.Is(err, ErrUnknownUnit) {
				s.log.Debug("unknown offset unit, treating as zero", "reminder_id", rem.ID, "offset", rem.Offset)
			}
			if !IsDue(instant, offset, now, s.tolerance) {
				continue
			}
			if recipient == "" {
				owner, err := s.users.GetByID(ctx, event.OwnerID)
				if err != nil {
					s.log.Warn("cannot resolve reminder recipient", "event_id", event.ID, "owner_id", event.OwnerID, "err", err)
					break
				}
				recipient = owner.Email
			}
			s.dispatch(ctx, event, rem, instant, recipient)
		}
	}
	return nil
}

func (s *Sweeper) dispatch(ctx context.Context, event *domain.Event, rem domain.Reminder, instant time.Time, recipient string) {
	notice := &domain.ReminderNotice{
		EventName:        event.Name,
		EventDescription: event.Description,
		EventInstant:     instant,
		RecipientAddress: recipient,
		DeliveryType:     rem.Type,
	}
	notifier, ok := s.notifiers[rem.Type]
	if !ok {
		// Unknown delivery types fall back to the log channel.
		notifier, ok = s.notifiers[domain.DeliveryNotification]
		if !ok {
			s.log.Warn("no notifier for reminder", "reminder_id", rem.ID, "type", rem.Type)
			return
		}
	}
	if err := notifier.Notify(ctx, notice); err != nil {
		s.log.Error("notification failed", "event_id", event.ID, "reminder_id", rem.ID, "type", rem.Type, "err", err)
		return
	}
	s.log.Info("reminder dispatched", "event_id", event.ID, "reminder_id", rem.ID, "type", rem.Type, "event_instant", instant)
}
