package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/lib/pq"
	"planbook/internal/domain"
)

type eventRepository struct {
	DB *sql.DB
}

func NewEventRepository(db *sql.DB) domain.EventRepository {
	return &eventRepository{DB: db}
}

const eventColumns = "id, owner_id, name, description, date, start_time, category, created_at, updated_at"

// naiveTimestampLayout renders an instant as the wall clock of its own
// location, matching the naive date and start_time text stored on events.
const naiveTimestampLayout = "2006-01-02 15:04:05"

func scanEvent(row interface{ Scan(...any) error }) (*domain.Event, error) {
	e := &domain.Event{}
	var descNull, catNull sql.NullString
	err := row.Scan(&e.ID, &e.OwnerID, &e.Name, &descNull, &e.Date, &e.StartTime, &catNull, &e.CreatedAt, &e.UpdatedAt)
	if err != nil {
		return nil, err
	}
	e.Description = descNull.String
	e.Category = catNull.String
	e.Reminders = []domain.Reminder{}
	return e, nil
}

func (r *eventRepository) Create(ctx context.Context, e *domain.Event) error {
	query := `
		INSERT INTO events (owner_id, name, description, date, start_time, category, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id
	`
	return r.DB.QueryRowContext(ctx, query, e.OwnerID, e.Name, e.Description, e.Date, e.StartTime, e.Category, e.CreatedAt, e.UpdatedAt).Scan(&e.ID)
}

func (r *eventRepository) GetByID(ctx context.Context, id string) (*domain.Event, error) {
	query := `SELECT ` + eventColumns + ` FROM events WHERE id = $1`
	e, err := scanEvent(r.DB.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	if err := r.loadReminders(ctx, []*domain.Event{e}); err != nil {
		return nil, err
	}
	return e, nil
}

func (r *eventRepository) ListByOwnerID(ctx context.Context, ownerID string, params domain.PaginationParams) ([]*domain.Event, int, error) {
	var total int
	if err := r.DB.QueryRowContext(ctx, `SELECT COUNT(*) FROM events WHERE owner_id = $1`, ownerID).Scan(&total); err != nil {
		return nil, 0, err
	}
	query := `
		SELECT ` + eventColumns + `
		FROM events
		WHERE owner_id = $1
		ORDER BY date, start_time
		LIMIT $2 OFFSET $3
	`
	rows, err := r.DB.QueryContext(ctx, query, ownerID, params.PageSize, params.Offset())
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()
	events := make([]*domain.Event, 0)
	for rows.Next() {
		e, err := scanEvent(rows)
		if err != nil {
			return nil, 0, err
		}
		events = append(events, e)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}
	if err := r.loadReminders(ctx, events); err != nil {
		return nil, 0, err
	}
	return events, total, nil
}

func (r *eventRepository) Update(ctx context.Context, eventID string, upd domain.EventUpdate) (*domain.Event, error) {
	setClauses := []string{"updated_at = NOW()"}
	args := []any{}
	n := 1
	add := func(col string, val any) {
		setClauses = append(setClauses, fmt.Sprintf("%s = $%d", col, n))
		args = append(args, val)
		n++
	}
	if upd.Name != nil {
		add("name", *upd.Name)
	}
	if upd.Description != nil {
		add("description", *upd.Description)
	}
	if upd.Date != nil {
		add("date", *upd.Date)
	}
	if upd.StartTime != nil {
		add("start_time", *upd.StartTime)
	}
	if upd.Category != nil {
		add("category", *upd.Category)
	}
	if n == 1 {
		// No fields to update; just fetch current row
		return r.GetByID(ctx, eventID)
	}
	args = append(args, eventID)
	query := fmt.Sprintf(`
		UPDATE events SET %s
		WHERE id = $%d
		RETURNING `+eventColumns+`
	`, strings.Join(setClauses, ", "), n)
	e, err := scanEvent(r.DB.QueryRowContext(ctx, query, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	if err := r.loadReminders(ctx, []*domain.Event{e}); err != nil {
		return nil, err
	}
	return e, nil
}

func (r *eventRepository) Delete(ctx context.Context, id string) error {
	query := `DELETE FROM events WHERE id = $1`
	result, err := r.DB.ExecContext(ctx, query, id)
	if err != nil {
		return err
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// ListDueCandidates returns events whose instant is strictly after now and
// that have at least one reminder. Events with instant at or before now are
// never returned, regardless of their reminders.
//
// The comparison is naive on both sides: now is rendered as the wall clock of
// its own location, so callers must pass now already converted to the location
// the event text is interpreted in. The session TimeZone never enters into it.
func (r *eventRepository) ListDueCandidates(ctx context.Context, now time.Time) ([]*domain.Event, error) {
	query := `
		SELECT ` + eventColumns + `
		FROM events e
		WHERE (e.date || ' ' || e.start_time)::timestamp > $1::timestamp
		  AND EXISTS (SELECT 1 FROM reminders rem WHERE rem.event_id = e.id)
		ORDER BY e.date, e.start_time
	`
	rows, err := r.DB.QueryContext(ctx, query, now.Format(naiveTimestampLayout))
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	events := make([]*domain.Event, 0)
	for rows.Next() {
		e, err := scanEvent(rows)
		if err != nil {
			return nil, err
		}
		events = append(events, e)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if err := r.loadReminders(ctx, events); err != nil {
		return nil, err
	}
	return events, nil
}

func (r *eventRepository) AddReminder(ctx context.Context, eventID string, rem *domain.Reminder) error {
	query := `
		INSERT INTO reminders (id, event_id, offset_spec, delivery_type, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`
	_, err := r.DB.ExecContext(ctx, query, rem.ID, eventID, rem.Offset, string(rem.Type), rem.CreatedAt)
	return err
}

func (r *eventRepository) RemoveReminder(ctx context.Context, eventID, reminderID string) error {
	query := `DELETE FROM reminders WHERE id = $1 AND event_id = $2`
	result, err := r.DB.ExecContext(ctx, query, reminderID, eventID)
	if err != nil {
		return err
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// loadReminders fills in the Reminders slice for each event in one query.
func (r *eventRepository) loadReminders(ctx context.Context, events []*domain.Event) error {
	if len(events) == 0 {
		return nil
	}
	ids := make([]string, len(events))
	byID := make(map[string]*domain.Event, len(events))
	for i, e := range events {
		ids[i] = e.ID
		byID[e.ID] = e
	}
	query := `
		SELECT id, event_id, offset_spec, delivery_type, created_at
		FROM reminders
		WHERE event_id = ANY($1)
		ORDER BY created_at
	`
	rows, err := r.DB.QueryContext(ctx, query, pq.Array(ids))
	if err != nil {
		return err
	}
	defer rows.Close()
	for rows.Next() {
		var rem domain.Reminder
		var rawType string
		if err := rows.Scan(&rem.ID, &rem.EventID, &rem.Offset, &rawType, &rem.CreatedAt); err != nil {
			return err
		}
		rem.Type = domain.DeliveryType(rawType)
		if e, ok := byID[rem.EventID]; ok {
			e.Reminders = append(e.Reminders, rem)
		}
	}
	return rows.Err()
}
