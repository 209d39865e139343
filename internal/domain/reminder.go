package domain

import "time"

// DeliveryType is the closed set of reminder delivery channels.
type DeliveryType string

const (
	// DeliveryEmail sends the reminder by email.
	DeliveryEmail DeliveryType = "email"
	// DeliveryNotification logs the reminder as an in-app notification.
	// It is also the fallback for unknown type strings.
	DeliveryNotification DeliveryType = "notification"
)

// ParseDeliveryType maps a raw string to a DeliveryType. Unknown values fall
// back to DeliveryNotification.
func ParseDeliveryType(s string) DeliveryType {
	switch DeliveryType(s) {
	case DeliveryEmail:
		return DeliveryEmail
	case DeliveryNotification:
		return DeliveryNotification
	default:
		return DeliveryNotification
	}
}

// Reminder is a relative alert attached to an event. Offset is of the form
// "<integer> <unit>" with unit one of minutes, hours, days, and is always
// subtracted from the event instant: reminders never fire after the event.
// swagger:model Reminder
type Reminder struct {
	ID        string       `json:"id"`
	EventID   string       `json:"event_id"`
	Offset    string       `json:"offset"`
	Type      DeliveryType `json:"type"`
	CreatedAt time.Time    `json:"created_at"`
}

// NewReminder returns a Reminder with the given fields. ID is assigned by the caller (uuid).
func NewReminder(eventID, offset string, deliveryType DeliveryType, createdAt time.Time) *Reminder {
	return &Reminder{
		EventID:   eventID,
		Offset:    offset,
		Type:      deliveryType,
		CreatedAt: createdAt,
	}
}
