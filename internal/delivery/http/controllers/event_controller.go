package controllers

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	h "planbook/internal/delivery/http/helpers"
	"planbook/internal/delivery/http/middleware"
	"planbook/internal/domain"
	"planbook/internal/schedule"
)

// CreateEventRequest is the request body for POST /events.
type CreateEventRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Date        string `json:"date"`       // "2006-01-02"
	StartTime   string `json:"start_time"` // "15:04"
	Category    string `json:"category"`
}

// Validate implements Validator.
func (c CreateEventRequest) Validate() []string {
	var errs []string
	if strings.TrimSpace(c.Name) == "" {
		errs = append(errs, "name is required")
	}
	if c.Date == "" {
		errs = append(errs, "date is required")
	} else if _, err := time.Parse(domain.DateLayout, c.Date); err != nil {
		errs = append(errs, "date must be in format "+domain.DateLayout)
	}
	if c.StartTime == "" {
		errs = append(errs, "start_time is required")
	} else if _, err := time.Parse(domain.TimeLayout, c.StartTime); err != nil {
		errs = append(errs, "start_time must be in format "+domain.TimeLayout)
	}
	return errs
}

// UpdateEventRequest is the request body for PATCH /events/{eventID}. All fields are optional.
type UpdateEventRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	Date        *string `json:"date"`
	StartTime   *string `json:"start_time"`
	Category    *string `json:"category"`
}

// Validate implements Validator.
func (u UpdateEventRequest) Validate() []string {
	var errs []string
	if u.Name != nil && strings.TrimSpace(*u.Name) == "" {
		errs = append(errs, "name must not be empty")
	}
	if u.Date != nil {
		if _, err := time.Parse(domain.DateLayout, *u.Date); err != nil {
			errs = append(errs, "date must be in format "+domain.DateLayout)
		}
	}
	if u.StartTime != nil {
		if _, err := time.Parse(domain.TimeLayout, *u.StartTime); err != nil {
			errs = append(errs, "start_time must be in format "+domain.TimeLayout)
		}
	}
	return errs
}

// AddReminderRequest is the request body for POST /events/{eventID}/reminders.
type AddReminderRequest struct {
	Offset string `json:"offset"` // e.g. "30 minutes", "1 hours", "2 days"
	Type   string `json:"type"`   // "email" or "notification"
}

// Validate implements Validator.
func (a AddReminderRequest) Validate() []string {
	var errs []string
	if strings.TrimSpace(a.Offset) == "" {
		errs = append(errs, "offset is required")
	}
	return errs
}

type EventController struct {
	Logger  *slog.Logger
	Service domain.EventService
}

func NewEventController(logger *slog.Logger, svc domain.EventService) *EventController {
	return &EventController{
		Logger:  logger,
		Service: svc,
	}
}

// writeServiceError maps service-layer errors to API responses.
func (c *EventController) writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		h.WriteJSONError(w, http.StatusNotFound, h.ErrCodeNotFound, "event not found")
	case errors.Is(err, domain.ErrForbidden):
		h.WriteJSONError(w, http.StatusForbidden, h.ErrCodeForbidden, "event belongs to another user")
	default:
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		h.WriteJSONError(w, http.StatusInternalServerError, h.ErrCodeInternalError, err.Error())
	}
}

// CreateEvent godoc
// @Summary Create a new event
// @Description Create a calendar event. The authenticated user becomes the owner. Reminders are added via the reminders sub-route.
// @Tags events
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param event body CreateEventRequest true "Event data"
// @Success 201 {object} helpers.APIResponse "data contains the created event"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Router /events [post]
func (c *EventController) CreateEvent(w http.ResponseWriter, r *http.Request) {
	var req CreateEventRequest
	if !h.DecodeAndValidate(w, r, &req) {
		return
	}
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		h.WriteJSONError(w, http.StatusUnauthorized, h.ErrCodeUnauthorized, "unauthorized")
		return
	}
	now := time.Now()
	event := domain.NewEvent(userID, req.Name, req.Description, req.Date, req.StartTime, req.Category, now, now)
	if err := c.Service.Create(r.Context(), event); err != nil {
		c.writeServiceError(w, r, err)
		return
	}
	h.WriteJSONSuccess(w, http.StatusCreated, event)
}

// ListEventsResponse is the data payload for GET /events.
type ListEventsResponse struct {
	Items      []*domain.Event  `json:"items"`
	Pagination h.PaginationMeta `json:"pagination"`
}

// ListEvents godoc
// @Summary List the authenticated user's events
// @Description Returns one page of the user's events, ordered by date and start time. Use page and page_size query params.
// @Tags events
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page number (default 1)"
// @Param page_size query int false "Page size (default 20, max 100)"
// @Success 200 {object} helpers.APIResponse "data contains items and pagination"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Router /events [get]
func (c *EventController) ListEvents(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		h.WriteJSONError(w, http.StatusUnauthorized, h.ErrCodeUnauthorized, "unauthorized")
		return
	}
	params := h.ParsePagination(r)
	events, total, err := c.Service.ListByOwner(r.Context(), userID, params)
	if err != nil {
		c.writeServiceError(w, r, err)
		return
	}
	meta := h.NewPaginationMeta(params.Page, params.PageSize, total)
	h.WriteJSONSuccess(w, http.StatusOK, ListEventsResponse{Items: events, Pagination: meta})
}

// GetEvent godoc
// @Summary Get an event by ID
// @Tags events
// @Produce json
// @Security BearerAuth
// @Param eventID path string true "Event ID"
// @Success 200 {object} helpers.APIResponse "data contains the event with reminders"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Router /events/{eventID} [get]
func (c *EventController) GetEvent(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		h.WriteJSONError(w, http.StatusUnauthorized, h.ErrCodeUnauthorized, "unauthorized")
		return
	}
	event, err := c.Service.GetByID(r.Context(), userID, r.PathValue("eventID"))
	if err != nil {
		c.writeServiceError(w, r, err)
		return
	}
	h.WriteJSONSuccess(w, http.StatusOK, event)
}

// UpdateEvent godoc
// @Summary Update an event
// @Description Partially update an event. Only provided fields change.
// @Tags events
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param eventID path string true "Event ID"
// @Param event body UpdateEventRequest true "Fields to update"
// @Success 200 {object} helpers.APIResponse "data contains the updated event"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Router /events/{eventID} [patch]
func (c *EventController) UpdateEvent(w http.ResponseWriter, r *http.Request) {
	var req UpdateEventRequest
	if !h.DecodeAndValidate(w, r, &req) {
		return
	}
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		h.WriteJSONError(w, http.StatusUnauthorized, h.ErrCodeUnauthorized, "unauthorized")
		return
	}
	upd := domain.EventUpdate{
		Name:        req.Name,
		Description: req.Description,
		Date:        req.Date,
		StartTime:   req.StartTime,
		Category:    req.Category,
	}
	event, err := c.Service.Update(r.Context(), userID, r.PathValue("eventID"), upd)
	if err != nil {
		c.writeServiceError(w, r, err)
		return
	}
	h.WriteJSONSuccess(w, http.StatusOK, event)
}

// DeleteEvent godoc
// @Summary Delete an event
// @Tags events
// @Security BearerAuth
// @Param eventID path string true "Event ID"
// @Success 204 "no content"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Router /events/{eventID} [delete]
func (c *EventController) DeleteEvent(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		h.WriteJSONError(w, http.StatusUnauthorized, h.ErrCodeUnauthorized, "unauthorized")
		return
	}
	if err := c.Service.Delete(r.Context(), userID, r.PathValue("eventID")); err != nil {
		c.writeServiceError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// AddReminder godoc
// @Summary Attach a reminder to an event
// @Description Offset is "<integer> <unit>" with unit minutes, hours, or days, and is subtracted from the event instant. A malformed integer is rejected; an unrecognized unit is accepted and treated as a zero offset.
// @Tags reminders
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param eventID path string true "Event ID"
// @Param reminder body AddReminderRequest true "Reminder data"
// @Success 201 {object} helpers.APIResponse "data contains the created reminder"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Router /events/{eventID}/reminders [post]
func (c *EventController) AddReminder(w http.ResponseWriter, r *http.Request) {
	var req AddReminderRequest
	if !h.DecodeAndValidate(w, r, &req) {
		return
	}
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		h.WriteJSONError(w, http.StatusUnauthorized, h.ErrCodeUnauthorized, "unauthorized")
		return
	}
	rem, err := c.Service.AddReminder(r.Context(), userID, r.PathValue("eventID"), req.Offset, domain.ParseDeliveryType(req.Type))
	if err != nil {
		if errors.Is(err, schedule.ErrBadMagnitude) {
			h.WriteJSONError(w, http.StatusBadRequest, h.ErrCodeBadRequest, err.Error())
			return
		}
		c.writeServiceError(w, r, err)
		return
	}
	h.WriteJSONSuccess(w, http.StatusCreated, rem)
}

// RemoveReminder godoc
// @Summary Remove a reminder from an event
// @Tags reminders
// @Security BearerAuth
// @Param eventID path string true "Event ID"
// @Param reminderID path string true "Reminder ID"
// @Success 204 "no content"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Router /events/{eventID}/reminders/{reminderID} [delete]
func (c *EventController) RemoveReminder(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		h.WriteJSONError(w, http.StatusUnauthorized, h.ErrCodeUnauthorized, "unauthorized")
		return
	}
	if err := c.Service.RemoveReminder(r.Context(), userID, r.PathValue("eventID"), r.PathValue("reminderID")); err != nil {
		c.writeServiceError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
