package domain

import (
	"context"
	"time"
)

// Event colors and priorities are fixed palettes; the zero value of an
// omitted field is filled in by the event service on create/update.
const (
	DefaultColor    = "blue"
	DefaultPriority = "medium"
)

// EventColors is the fixed color palette an event may be tagged with.
var EventColors = []string{"blue", "teal", "amber", "rose", "slate"}

// Priorities are the allowed event priority values.
var Priorities = []string{"low", "medium", "high"}

// KasaliMembers is the fixed collaborator roster. Event kasali tags must be
// drawn from this list.
var KasaliMembers = []string{
	"Sir Earl",
	"Sir JM",
	"Maam Mae",
	"Sir Mark",
	"Sir Jey",
	"Maam Shaira",
}

// Event represents a single, non-recurring calendar item.
//
// Date is an ISO calendar date (YYYY-MM-DD) and Time a 24-hour HH:MM
// string. Both are fixed-width, so lexical ordering is calendar ordering.
// Notified is set once by the notification dispatcher and never reset; a
// regular update cannot touch it.
// swagger:model Event
type Event struct {
	ID          string     `json:"_id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Date        string     `json:"date"`
	Time        string     `json:"time"`
	Color       string     `json:"color"`
	Priority    string     `json:"priority"`
	Kasali      []string   `json:"kasali"`
	Notified    bool       `json:"notified,omitempty"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   *time.Time `json:"updatedAt,omitempty"`
}

// NewEvent returns a new Event with the given fields. ID and CreatedAt are
// set by the repository on create.
func NewEvent(title, description, date, tm, color, priority string, kasali []string) *Event {
	return &Event{
		Title:       title,
		Description: description,
		Date:        date,
		Time:        tm,
		Color:       color,
		Priority:    priority,
		Kasali:      kasali,
	}
}

// EventFilter scopes a List query. Month and Year are either both set or
// both nil. Month is 0-indexed (0 = January), matching the query parameters
// the calendar client sends.
type EventFilter struct {
	Month *int
	Year  *int
}

// DateRange returns the inclusive ISO date range [from, to] covered by the
// filter's month, and ok=false when the filter is unconstrained. The last
// day of the month is computed, not looked up, so leap years and 28 to 31 day
// months come out right.
func (f EventFilter) DateRange() (from, to string, ok bool) {
	if f.Month == nil || f.Year == nil {
		return "", "", false
	}
	first := time.Date(*f.Year, time.Month(*f.Month+1), 1, 0, 0, 0, 0, time.UTC)
	last := first.AddDate(0, 1, -1)
	return first.Format("2006-01-02"), last.Format("2006-01-02"), true
}

// EventRepository defines the interface for event storage.
//
// List and FindUnnotifiedByDate return results sorted by date then time
// ascending, and an empty slice (not an error) when nothing matches.
type EventRepository interface {
	List(ctx context.Context, filter EventFilter) ([]*Event, error)
	Create(ctx context.Context, event *Event) error
	// Update fully replaces the mutable fields of the event with the given
	// ID and sets updatedAt. It never writes the notified flag; only
	// MarkNotified does that.
	Update(ctx context.Context, event *Event) (*Event, error)
	Delete(ctx context.Context, id string) error
	// FindUnnotifiedByDate returns the events on the given ISO date whose
	// notified flag is not set, ordered by time ascending.
	FindUnnotifiedByDate(ctx context.Context, date string) ([]*Event, error)
	// MarkNotified sets the notified flag on the events with the given IDs
	// and returns how many rows changed. Already-notified rows are left
	// alone, so the write is idempotent.
	MarkNotified(ctx context.Context, ids []string) (int64, error)
}

// EventService defines the event store gateway operations exposed to the
// delivery layer.
type EventService interface {
	ListEvents(ctx context.Context, filter EventFilter) ([]*Event, error)
	CreateEvent(ctx context.Context, event *Event) error
	UpdateEvent(ctx context.Context, event *Event) (*Event, error)
	DeleteEvent(ctx context.Context, id string) error
}

// ValidColor reports whether c is in the event color palette.
func ValidColor(c string) bool {
	for _, v := range EventColors {
		if v == c {
			return true
		}
	}
	return false
}

// ValidPriority reports whether p is an allowed priority.
func ValidPriority(p string) bool {
	for _, v := range Priorities {
		if v == p {
			return true
		}
	}
	return false
}

// ValidKasali reports whether every tag is in the collaborator roster.
func ValidKasali(tags []string) bool {
	for _, t := range tags {
		found := false
		for _, m := range KasaliMembers {
			if m == t {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}
