package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"scheduler/internal/calendar"
	"scheduler/internal/domain"
)

type eventService struct {
	eventRepo      domain.EventRepository
	contextTimeout time.Duration
}

// NewEventService returns the event store gateway: list/create/update/delete
// over the event repository, with validation and field defaulting.
func NewEventService(eventRepo domain.EventRepository, timeout time.Duration) domain.EventService {
	return &eventService{
		eventRepo:      eventRepo,
		contextTimeout: timeout,
	}
}

func (s *eventService) ListEvents(ctx context.Context, filter domain.EventFilter) ([]*domain.Event, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	events, err := s.eventRepo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	// The repository already orders by date and time; Sort keeps the
	// guarantee independent of the storage backend.
	calendar.Sort(events)
	return events, nil
}

func (s *eventService) CreateEvent(ctx context.Context, event *domain.Event) error {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if err := normalizeEvent(event); err != nil {
		return err
	}
	return s.eventRepo.Create(ctx, event)
}

func (s *eventService) UpdateEvent(ctx context.Context, event *domain.Event) (*domain.Event, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if event.ID == "" {
		return nil, fmt.Errorf("%w: id is required", domain.ErrInvalidInput)
	}
	if err := normalizeEvent(event); err != nil {
		return nil, err
	}
	return s.eventRepo.Update(ctx, event)
}

func (s *eventService) DeleteEvent(ctx context.Context, id string) error {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if id == "" {
		return fmt.Errorf("%w: id is required", domain.ErrInvalidInput)
	}
	return s.eventRepo.Delete(ctx, id)
}

// normalizeEvent trims and validates the required fields, fills in palette
// defaults for omitted ones, and checks enum membership. The collaborator
// roster is enforced here, not just in the calendar client.
func normalizeEvent(e *domain.Event) error {
	e.Title = strings.TrimSpace(e.Title)
	e.Description = strings.TrimSpace(e.Description)
	if e.Title == "" || e.Date == "" || e.Time == "" {
		return fmt.Errorf("%w: title, date, and time are required", domain.ErrInvalidInput)
	}
	if _, err := time.Parse("2006-01-02", e.Date); err != nil {
		return fmt.Errorf("%w: date must be YYYY-MM-DD", domain.ErrInvalidInput)
	}
	if _, err := time.Parse("15:04", e.Time); err != nil {
		return fmt.Errorf("%w: time must be HH:MM", domain.ErrInvalidInput)
	}
	if e.Color == "" {
		e.Color = domain.DefaultColor
	} else if !domain.ValidColor(e.Color) {
		return fmt.Errorf("%w: unknown color %q", domain.ErrInvalidInput, e.Color)
	}
	if e.Priority == "" {
		e.Priority = domain.DefaultPriority
	} else if !domain.ValidPriority(e.Priority) {
		return fmt.Errorf("%w: unknown priority %q", domain.ErrInvalidInput, e.Priority)
	}
	if e.Kasali == nil {
		e.Kasali = []string{}
	}
	if !domain.ValidKasali(e.Kasali) {
		return fmt.Errorf("%w: kasali members must be from the fixed roster", domain.ErrInvalidInput)
	}
	return nil
}
