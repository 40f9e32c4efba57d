package controllers

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"scheduler/internal/calendar"
	"scheduler/internal/delivery/http/helpers"
	"scheduler/internal/domain"
)

// CreateEventRequest is the request body for POST /events.
type CreateEventRequest struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Date        string   `json:"date"`
	Time        string   `json:"time"`
	Color       string   `json:"color"`
	Priority    string   `json:"priority"`
	Kasali      []string `json:"kasali"`
}

// Validate implements Validator.
func (c CreateEventRequest) Validate() []string {
	if c.Title == "" || c.Date == "" || c.Time == "" {
		return []string{"Title, date, and time are required"}
	}
	return nil
}

// UpdateEventRequest is the request body for PUT /events. Every mutable
// field is replaced; there is no notified field here on purpose, and the
// decoder rejects unknown keys, so a payload carrying one is a 400.
type UpdateEventRequest struct {
	ID          string   `json:"_id"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Date        string   `json:"date"`
	Time        string   `json:"time"`
	Color       string   `json:"color"`
	Priority    string   `json:"priority"`
	Kasali      []string `json:"kasali"`
}

// Validate implements Validator.
func (u UpdateEventRequest) Validate() []string {
	if u.ID == "" || u.Title == "" || u.Date == "" || u.Time == "" {
		return []string{"ID, title, date, and time are required"}
	}
	return nil
}

// DeleteEventResponse is the response body for DELETE /events (200).
type DeleteEventResponse struct {
	Success bool `json:"success"`
}

// CalendarGridResponse is the response body for GET /events/calendar (200):
// the month's events bucketed by ISO date string for grid rendering.
type CalendarGridResponse struct {
	Days map[string][]*domain.Event `json:"days"`
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

// parseMonthYear reads the month and year query parameters. Both or
// neither must be present; month is 0-indexed (0 = January), matching the
// calendar client. The second return is false when the pair is absent.
func parseMonthYear(r *http.Request) (domain.EventFilter, bool, error) {
	monthStr := r.URL.Query().Get("month")
	yearStr := r.URL.Query().Get("year")
	if monthStr == "" || yearStr == "" {
		return domain.EventFilter{}, false, nil
	}
	month, err := strconv.Atoi(monthStr)
	if err != nil || month < 0 || month > 11 {
		return domain.EventFilter{}, false, errors.New("month must be an integer between 0 and 11")
	}
	year, err := strconv.Atoi(yearStr)
	if err != nil {
		return domain.EventFilter{}, false, errors.New("year must be an integer")
	}
	return domain.EventFilter{Month: &month, Year: &year}, true, nil
}

// ListEvents godoc
// @Summary List events
// @Description Returns all events, or the events of one month when both month (0-indexed) and year are given. Sorted by date then time ascending.
// @Tags events
// @Produce json
// @Param month query int false "Month, 0-indexed (0 = January)"
// @Param year query int false "Year"
// @Success 200 {array} domain.Event
// @Failure 400 {object} helpers.ErrorResponse
// @Failure 500 {object} helpers.ErrorResponse
// @Router /events [get]
func (c *EventController) ListEvents(w http.ResponseWriter, r *http.Request) {
	filter, _, err := parseMonthYear(r)
	if err != nil {
		helpers.WriteJSONError(w, http.StatusBadRequest, err.Error())
		return
	}
	events, err := c.Service.ListEvents(r.Context(), filter)
	if err != nil {
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, "Failed to fetch events")
		return
	}
	if events == nil {
		events = []*domain.Event{}
	}
	helpers.WriteJSON(w, http.StatusOK, events)
}

// CalendarGrid godoc
// @Summary Month grid buckets
// @Description Returns one month's events grouped by day for calendar grid rendering. Both month (0-indexed) and year are required.
// @Tags events
// @Produce json
// @Param month query int true "Month, 0-indexed (0 = January)"
// @Param year query int true "Year"
// @Success 200 {object} controllers.CalendarGridResponse
// @Failure 400 {object} helpers.ErrorResponse
// @Failure 500 {object} helpers.ErrorResponse
// @Router /events/calendar [get]
func (c *EventController) CalendarGrid(w http.ResponseWriter, r *http.Request) {
	filter, scoped, err := parseMonthYear(r)
	if err != nil {
		helpers.WriteJSONError(w, http.StatusBadRequest, err.Error())
		return
	}
	if !scoped {
		helpers.WriteJSONError(w, http.StatusBadRequest, "Month and year are required")
		return
	}
	events, err := c.Service.ListEvents(r.Context(), filter)
	if err != nil {
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, "Failed to fetch events")
		return
	}
	helpers.WriteJSON(w, http.StatusOK, CalendarGridResponse{Days: calendar.GroupByDay(events)})
}

// CreateEvent godoc
// @Summary Create an event
// @Description Create a calendar event. Title, date (YYYY-MM-DD), and time (HH:MM) are required; color, priority, and kasali default when omitted.
// @Tags events
// @Accept json
// @Produce json
// @Param event body CreateEventRequest true "Event fields"
// @Success 201 {object} domain.Event
// @Failure 400 {object} helpers.ErrorResponse
// @Failure 500 {object} helpers.ErrorResponse
// @Router /events [post]
func (c *EventController) CreateEvent(w http.ResponseWriter, r *http.Request) {
	var req CreateEventRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	event := domain.NewEvent(req.Title, req.Description, req.Date, req.Time, req.Color, req.Priority, req.Kasali)
	if err := c.Service.CreateEvent(r.Context(), event); err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			helpers.WriteJSONError(w, http.StatusBadRequest, err.Error())
			return
		}
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, "Failed to create event")
		return
	}
	helpers.WriteJSON(w, http.StatusCreated, event)
}

// UpdateEvent godoc
// @Summary Update an event
// @Description Fully replaces the mutable fields of the event with the given _id and sets updatedAt. The notified flag is not touchable here.
// @Tags events
// @Accept json
// @Produce json
// @Param event body UpdateEventRequest true "Event fields including _id"
// @Success 200 {object} domain.Event
// @Failure 400 {object} helpers.ErrorResponse
// @Failure 404 {object} helpers.ErrorResponse
// @Failure 500 {object} helpers.ErrorResponse
// @Router /events [put]
func (c *EventController) UpdateEvent(w http.ResponseWriter, r *http.Request) {
	var req UpdateEventRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	event := domain.NewEvent(req.Title, req.Description, req.Date, req.Time, req.Color, req.Priority, req.Kasali)
	event.ID = req.ID
	updated, err := c.Service.UpdateEvent(r.Context(), event)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			helpers.WriteJSONError(w, http.StatusBadRequest, err.Error())
			return
		}
		if errors.Is(err, domain.ErrNotFound) {
			helpers.WriteJSONError(w, http.StatusNotFound, "Event not found")
			return
		}
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, "Failed to update event")
		return
	}
	helpers.WriteJSON(w, http.StatusOK, updated)
}

// DeleteEvent godoc
// @Summary Delete an event
// @Description Permanently deletes the event with the given id.
// @Tags events
// @Produce json
// @Param id query string true "Event ID"
// @Success 200 {object} controllers.DeleteEventResponse
// @Failure 400 {object} helpers.ErrorResponse
// @Failure 404 {object} helpers.ErrorResponse
// @Failure 500 {object} helpers.ErrorResponse
// @Router /events [delete]
func (c *EventController) DeleteEvent(w http.ResponseWriter, r *http.Request) {
	id := r.URL.Query().Get("id")
	if id == "" {
		helpers.WriteJSONError(w, http.StatusBadRequest, "Event ID is required")
		return
	}
	if err := c.Service.DeleteEvent(r.Context(), id); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			helpers.WriteJSONError(w, http.StatusNotFound, "Event not found")
			return
		}
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, "Failed to delete event")
		return
	}
	helpers.WriteJSON(w, http.StatusOK, DeleteEventResponse{Success: true})
}
