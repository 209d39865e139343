package domain

import (
	"context"
	"fmt"
	"time"
)

// Layouts for the wall-clock fields on Event. Date and StartTime are stored
// as-entered; together with the configured location they resolve to one
// absolute instant.
const (
	DateLayout = "2006-01-02"
	TimeLayout = "15:04"
)

// Event represents a calendar event owned by a user.
// swagger:model Event
type Event struct {
	ID          string     `json:"id"`
	OwnerID     string     `json:"owner_id"`
	Name        string     `json:"name"`
	Description string     `json:"description"`
	Date        string     `json:"date"`       // "2006-01-02"
	StartTime   string     `json:"start_time"` // "15:04"
	Category    string     `json:"category"`
	Reminders   []Reminder `json:"reminders"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// NewEvent returns a new Event with the given fields. ID is typically set by the repository on create.
func NewEvent(ownerID, name, description, date, startTime, category string, createdAt, updatedAt time.Time) *Event {
	return &Event{
		OwnerID:     ownerID,
		Name:        name,
		Description: description,
		Date:        date,
		StartTime:   startTime,
		Category:    category,
		CreatedAt:   createdAt,
		UpdatedAt:   updatedAt,
	}
}

// Instant resolves the event's date and time-of-day in loc to the single
// absolute point in time the event starts at.
func (e *Event) Instant(loc *time.Location) (time.Time, error) {
	t, err := time.ParseInLocation(DateLayout+" "+TimeLayout, e.Date+" "+e.StartTime, loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid event date/time %q %q: %w", e.Date, e.StartTime, err)
	}
	return t, nil
}

// EventUpdate carries the optional fields of a partial event update.
// Nil pointers leave the stored value unchanged.
type EventUpdate struct {
	Name        *string
	Description *string
	Date        *string
	StartTime   *string
	Category    *string
}

// EventRepository defines the interface for event storage
type EventRepository interface {
	Create(ctx context.Context, event *Event) error
	GetByID(ctx context.Context, id string) (*Event, error)
	// ListByOwnerID returns one page of the owner's events plus the total count.
	ListByOwnerID(ctx context.Context, ownerID string, params PaginationParams) ([]*Event, int, error)
	Update(ctx context.Context, eventID string, upd EventUpdate) (*Event, error)
	Delete(ctx context.Context, id string) error

	// ListDueCandidates returns events whose instant is strictly after now
	// and that carry at least one reminder. Reminders are loaded. The
	// comparison against the stored wall-clock fields happens in now's
	// location, so callers pass now in the location events are resolved in.
	ListDueCandidates(ctx context.Context, now time.Time) ([]*Event, error)

	AddReminder(ctx context.Context, eventID string, rem *Reminder) error
	RemoveReminder(ctx context.Context, eventID, reminderID string) error
}

// EventService defines the business logic for events and their reminders.
type EventService interface {
	Create(ctx context.Context, event *Event) error
	GetByID(ctx context.Context, ownerID, eventID string) (*Event, error)
	ListByOwner(ctx context.Context, ownerID string, params PaginationParams) ([]*Event, int, error)
	Update(ctx context.Context, ownerID, eventID string, upd EventUpdate) (*Event, error)
	Delete(ctx context.Context, ownerID, eventID string) error
	AddReminder(ctx context.Context, ownerID, eventID string, offset string, deliveryType DeliveryType) (*Reminder, error)
	RemoveReminder(ctx context.Context, ownerID, eventID, reminderID string) error
}
