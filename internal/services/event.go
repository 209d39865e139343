package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"planbook/internal/domain"
	"planbook/internal/schedule"
)

type eventService struct {
	eventRepo domain.EventRepository
}

// NewEventService creates an EventService backed by the given repository.
func NewEventService(eventRepo domain.EventRepository) domain.EventService {
	return &eventService{eventRepo: eventRepo}
}

func (s *eventService) Create(ctx context.Context, event *domain.Event) error {
	event.Name = strings.TrimSpace(event.Name)
	if event.Name == "" {
		return fmt.Errorf("event name is required")
	}
	if err := validateWallClock(event.Date, event.StartTime); err != nil {
		return err
	}
	now := time.Now()
	event.CreatedAt = now
	event.UpdatedAt = now
	if err := s.eventRepo.Create(ctx, event); err != nil {
		return fmt.Errorf("failed to create event: %w", err)
	}
	return nil
}

func (s *eventService) GetByID(ctx context.Context, ownerID, eventID string) (*domain.Event, error) {
	event, err := s.eventRepo.GetByID(ctx, eventID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get event: %w", err)
	}
	if event.OwnerID != ownerID {
		return nil, domain.ErrForbidden
	}
	return event, nil
}

func (s *eventService) ListByOwner(ctx context.Context, ownerID string, params domain.PaginationParams) ([]*domain.Event, int, error) {
	events, total, err := s.eventRepo.ListByOwnerID(ctx, ownerID, params)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list events: %w", err)
	}
	if events == nil {
		events = []*domain.Event{}
	}
	return events, total, nil
}

func (s *eventService) Update(ctx context.Context, ownerID, eventID string, upd domain.EventUpdate) (*domain.Event, error) {
	if _, err := s.GetByID(ctx, ownerID, eventID); err != nil {
		return nil, err
	}
	date, startTime := "", ""
	if upd.Date != nil {
		date = *upd.Date
	}
	if upd.StartTime != nil {
		startTime = *upd.StartTime
	}
	if date != "" || startTime != "" {
		// Partial updates still have to leave a resolvable instant behind,
		// so each provided field is validated on its own.
		if date != "" {
			if _, err := time.Parse(domain.DateLayout, date); err != nil {
				return nil, fmt.Errorf("invalid date %q, expected %s", date, domain.DateLayout)
			}
		}
		if startTime != "" {
			if _, err := time.Parse(domain.TimeLayout, startTime); err != nil {
				return nil, fmt.Errorf("invalid time %q, expected %s", startTime, domain.TimeLayout)
			}
		}
	}
	event, err := s.eventRepo.Update(ctx, eventID, upd)
	if err != nil {
		return nil, fmt.Errorf("failed to update event: %w", err)
	}
	return event, nil
}

func (s *eventService) Delete(ctx context.Context, ownerID, eventID string) error {
	if _, err := s.GetByID(ctx, ownerID, eventID); err != nil {
		return err
	}
	if err := s.eventRepo.Delete(ctx, eventID); err != nil {
		return fmt.Errorf("failed to delete event: %w", err)
	}
	return nil
}

func (s *eventService) AddReminder(ctx context.Context, ownerID, eventID string, offset string, deliveryType domain.DeliveryType) (*domain.Reminder, error) {
	if _, err := s.GetByID(ctx, ownerID, eventID); err != nil {
		return nil, err
	}
	// Malformed magnitudes are rejected here, at creation time, so the sweep
	// never has to guess what the author meant. Unknown units are accepted
	// and degrade to a zero offset when evaluated.
	if _, err := schedule.ParseOffset(offset); err != nil && !errors.Is(err, schedule.ErrUnknownUnit) {
		return nil, fmt.Errorf("invalid reminder offset: %w", err)
	}
	rem := domain.NewReminder(eventID, offset, deliveryType, time.Now())
	rem.ID = uuid.NewString()
	if err := s.eventRepo.AddReminder(ctx, eventID, rem); err != nil {
		return nil, fmt.Errorf("failed to add reminder: %w", err)
	}
	return rem, nil
}

func (s *eventService) RemoveReminder(ctx context.Context, ownerID, eventID, reminderID string) error {
	if _, err := s.GetByID(ctx, ownerID, eventID); err != nil {
		return err
	}
	if err := s.eventRepo.RemoveReminder(ctx, eventID, reminderID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("failed to remove reminder: %w", err)
	}
	return nil
}

func validateWallClock(date, startTime string) error {
	if _, err := time.Parse(domain.DateLayout, date); err != nil {
		return fmt.Errorf("invalid date %q, expected %s", date, domain.DateLayout)
	}
	if _, err := time.Parse(domain.TimeLayout, startTime); err != nil {
		return fmt.Errorf("invalid time %q, expected %s", startTime, domain.TimeLayout)
	}
	return nil
}
