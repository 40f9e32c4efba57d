package postgres

import (
	"context"
	"database/sql"
	"errors"

	"github.com/lib/pq"

	"scheduler/internal/domain"
)

type eventRepository struct {
	DB *sql.DB
}

func NewEventRepository(db *sql.DB) domain.EventRepository {
	return &eventRepository{
		DB: db,
	}
}

const eventColumns = "id, title, description, date, time, color, priority, kasali, notified, created_at, updated_at"

func scanEvent(s interface {
	Scan(dest ...any) error
}) (*domain.Event, error) {
	e := &domain.Event{}
	var kasali pq.StringArray
	var updatedNull sql.NullTime
	err := s.Scan(
		&e.ID, &e.Title, &e.Description, &e.Date, &e.Time, &e.Color, &e.Priority,
		&kasali, &e.Notified, &e.CreatedAt, &updatedNull,
	)
	if err != nil {
		return nil, err
	}
	e.Kasali = []string(kasali)
	if e.Kasali == nil {
		e.Kasali = []string{}
	}
	if updatedNull.Valid {
		e.UpdatedAt = &updatedNull.Time
	}
	return e, nil
}

func (r *eventRepository) List(ctx context.Context, filter domain.EventFilter) ([]*domain.Event, error) {
	query := `
		SELECT ` + eventColumns + `
		FROM events
		ORDER BY date ASC, time ASC
	`
	var args []any
	if from, to, ok := filter.DateRange(); ok {
		query = `
		SELECT ` + eventColumns + `
		FROM events
		WHERE date >= $1 AND date <= $2
		ORDER BY date ASC, time ASC
	`
		args = []any{from, to}
	}
	rows, err := r.DB.QueryContext(ctx, query, args...)
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
	return events, rows.Err()
}

func (r *eventRepository) Create(ctx context.Context, e *domain.Event) error {
	query := `
		INSERT INTO events (title, description, date, time, color, priority, kasali, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, NOW())
		RETURNING id, created_at
	`
	return r.DB.QueryRowContext(ctx, query,
		e.Title, e.Description, e.Date, e.Time, e.Color, e.Priority, pq.Array(e.Kasali),
	).Scan(&e.ID, &e.CreatedAt)
}

// Update replaces every mutable field and sets updated_at. The statement
// deliberately has no notified column; only MarkNotified writes that flag.
func (r *eventRepository) Update(ctx context.Context, e *domain.Event) (*domain.Event, error) {
	query := `
		UPDATE events
		SET title = $1, description = $2, date = $3, time = $4, color = $5, priority = $6, kasali = $7, updated_at = NOW()
		WHERE id = $8
		RETURNING ` + eventColumns + `
	`
	updated, err := scanEvent(r.DB.QueryRowContext(ctx, query,
		e.Title, e.Description, e.Date, e.Time, e.Color, e.Priority, pq.Array(e.Kasali), e.ID,
	))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return updated, nil
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

func (r *eventRepository) FindUnnotifiedByDate(ctx context.Context, date string) ([]*domain.Event, error) {
	query := `
		SELECT ` + eventColumns + `
		FROM events
		WHERE date = $1 AND notified IS NOT TRUE
		ORDER BY time ASC
	`
	rows, err := r.DB.QueryContext(ctx, query, date)
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
	return events, rows.Err()
}

// MarkNotified flips the flag only on rows still unnotified, so replaying
// the same ID set changes nothing.
func (r *eventRepository) MarkNotified(ctx context.Context, ids []string) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	query := `
		UPDATE events
		SET notified = TRUE
		WHERE id = ANY($1) AND notified IS NOT TRUE
	`
	result, err := r.DB.ExecContext(ctx, query, pq.Array(ids))
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}
