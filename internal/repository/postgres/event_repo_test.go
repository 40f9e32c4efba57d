package postgres

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"scheduler/internal/domain"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/require"
)

var eventCols = []string{"id", "title", "description", "date", "time", "color", "priority", "kasali", "notified", "created_at", "updated_at"}

func intPtr(v int) *int { return &v }

func TestEventRepository_List(t *testing.T) {
	ctx := context.Background()
	created := time.Date(2025, 1, 1, 10, 0, 0, 0, time.UTC)

	tests := []struct {
		name    string
		filter  domain.EventFilter
		mock    func(mock sqlmock.Sqlmock)
		want    []*domain.Event
		wantErr bool
	}{
		{
			name:   "unfiltered",
			filter: domain.EventFilter{},
			mock: func(mock sqlmock.Sqlmock) {
				rows := sqlmock.NewRows(eventCols).
					AddRow("ev-1", "Standup", "", "2025-01-04", "23:00", "blue", "medium", pq.StringArray{}, false, created, nil).
					AddRow("ev-2", "Review", "", "2025-01-05", "08:00", "teal", "high", pq.StringArray{"Sir Earl"}, false, created, nil)
				mock.ExpectQuery(`SELECT id, title, description, date, time, color, priority, kasali, notified, created_at, updated_at\s+FROM events\s+ORDER BY date ASC, time ASC`).
					WillReturnRows(rows)
			},
			want: []*domain.Event{
				{ID: "ev-1", Title: "Standup", Date: "2025-01-04", Time: "23:00", Color: "blue", Priority: "medium", Kasali: []string{}, CreatedAt: created},
				{ID: "ev-2", Title: "Review", Date: "2025-01-05", Time: "08:00", Color: "teal", Priority: "high", Kasali: []string{"Sir Earl"}, CreatedAt: created},
			},
		},
		{
			name:   "month scoped leap february",
			filter: domain.EventFilter{Month: intPtr(1), Year: intPtr(2024)},
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`WHERE date >= \$1 AND date <= \$2`).
					WithArgs("2024-02-01", "2024-02-29").
					WillReturnRows(sqlmock.NewRows(eventCols))
			},
			want: []*domain.Event{},
		},
		{
			name:   "db error",
			filter: domain.EventFilter{},
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`SELECT id, title`).WillReturnError(sql.ErrConnDone)
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock, err := sqlmock.New()
			require.NoError(t, err)
			defer db.Close()

			tt.mock(mock)
			repo := NewEventRepository(db)
			got, err := repo.List(ctx, tt.filter)
			if tt.wantErr {
				require.Error(t, err)
				require.Nil(t, got)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tt.want, got)
			require.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestEventRepository_Create(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name    string
		event   *domain.Event
		mock    func(mock sqlmock.Sqlmock)
		wantID  string
		wantErr bool
	}{
		{
			name: "success",
			event: &domain.Event{
				Title:    "Launch",
				Date:     "2025-03-10",
				Time:     "14:30",
				Color:    "blue",
				Priority: "medium",
				Kasali:   []string{"Maam Mae"},
			},
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`INSERT INTO events \(title, description, date, time, color, priority, kasali, created_at\)`).
					WithArgs("Launch", "", "2025-03-10", "14:30", "blue", "medium", pq.Array([]string{"Maam Mae"})).
					WillReturnRows(sqlmock.NewRows([]string{"id", "created_at"}).
						AddRow("ev-uuid-1", time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)))
			},
			wantID: "ev-uuid-1",
		},
		{
			name:  "db error",
			event: &domain.Event{Title: "Launch", Date: "2025-03-10", Time: "14:30"},
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`INSERT INTO events`).WillReturnError(sql.ErrConnDone)
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock, err := sqlmock.New()
			require.NoError(t, err)
			defer db.Close()

			tt.mock(mock)
			repo := NewEventRepository(db)
			err = repo.Create(ctx, tt.event)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tt.wantID, tt.event.ID)
			require.False(t, tt.event.CreatedAt.IsZero())
			require.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestEventRepository_Update(t *testing.T) {
	ctx := context.Background()
	created := time.Date(2025, 1, 1, 10, 0, 0, 0, time.UTC)
	updated := time.Date(2025, 1, 2, 9, 0, 0, 0, time.UTC)

	event := &domain.Event{
		ID:       "ev-1",
		Title:    "Renamed",
		Date:     "2025-01-05",
		Time:     "09:00",
		Color:    "rose",
		Priority: "high",
		Kasali:   []string{},
	}

	tests := []struct {
		name       string
		mock       func(mock sqlmock.Sqlmock)
		want       *domain.Event
		wantErr    bool
		isNotFound bool
	}{
		{
			name: "success preserves notified",
			mock: func(mock sqlmock.Sqlmock) {
				// The UPDATE carries no notified argument; the returned row
				// still has the flag the dispatcher set earlier.
				mock.ExpectQuery(`UPDATE events\s+SET title = \$1, description = \$2, date = \$3, time = \$4, color = \$5, priority = \$6, kasali = \$7, updated_at = NOW\(\)`).
					WithArgs("Renamed", "", "2025-01-05", "09:00", "rose", "high", pq.Array([]string{}), "ev-1").
					WillReturnRows(sqlmock.NewRows(eventCols).
						AddRow("ev-1", "Renamed", "", "2025-01-05", "09:00", "rose", "high", pq.StringArray{}, true, created, updated))
			},
			want: &domain.Event{
				ID: "ev-1", Title: "Renamed", Date: "2025-01-05", Time: "09:00",
				Color: "rose", Priority: "high", Kasali: []string{},
				Notified: true, CreatedAt: created, UpdatedAt: &updated,
			},
		},
		{
			name: "not found",
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`UPDATE events`).WillReturnError(sql.ErrNoRows)
			},
			wantErr:    true,
			isNotFound: true,
		},
		{
			name: "db error",
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`UPDATE events`).WillReturnError(sql.ErrConnDone)
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock, err := sqlmock.New()
			require.NoError(t, err)
			defer db.Close()

			tt.mock(mock)
			repo := NewEventRepository(db)
			got, err := repo.Update(ctx, event)
			if tt.wantErr {
				require.Error(t, err)
				if tt.isNotFound {
					require.True(t, errors.Is(err, domain.ErrNotFound))
				}
				return
			}
			require.NoError(t, err)
			require.Equal(t, tt.want, got)
			require.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestEventRepository_Delete(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name       string
		id         string
		mock       func(mock sqlmock.Sqlmock)
		wantErr    bool
		isNotFound bool
	}{
		{
			name: "success",
			id:   "ev-1",
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec(`DELETE FROM events WHERE id = \$1`).
					WithArgs("ev-1").
					WillReturnResult(sqlmock.NewResult(0, 1))
			},
		},
		{
			name: "not found",
			id:   "ev-missing",
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec(`DELETE FROM events WHERE id = \$1`).
					WithArgs("ev-missing").
					WillReturnResult(sqlmock.NewResult(0, 0))
			},
			wantErr:    true,
			isNotFound: true,
		},
		{
			name: "db error",
			id:   "ev-1",
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec(`DELETE FROM events WHERE id = \$1`).
					WithArgs("ev-1").
					WillReturnError(sql.ErrConnDone)
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock, err := sqlmock.New()
			require.NoError(t, err)
			defer db.Close()

			tt.mock(mock)
			repo := NewEventRepository(db)
			err = repo.Delete(ctx, tt.id)
			if tt.wantErr {
				require.Error(t, err)
				if tt.isNotFound {
					require.True(t, errors.Is(err, domain.ErrNotFound))
				}
				require.NoError(t, mock.ExpectationsWereMet())
				return
			}
			require.NoError(t, err)
			require.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestEventRepository_FindUnnotifiedByDate(t *testing.T) {
	ctx := context.Background()
	created := time.Date(2025, 1, 1, 10, 0, 0, 0, time.UTC)

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	rows := sqlmock.NewRows(eventCols).
		AddRow("ev-1", "Standup", "", "2025-01-05", "08:00", "blue", "medium", pq.StringArray{}, false, created, nil).
		AddRow("ev-2", "Review", "", "2025-01-05", "09:00", "blue", "low", pq.StringArray{"Sir JM"}, false, created, nil)
	mock.ExpectQuery(`WHERE date = \$1 AND notified IS NOT TRUE\s+ORDER BY time ASC`).
		WithArgs("2025-01-05").
		WillReturnRows(rows)

	repo := NewEventRepository(db)
	got, err := repo.FindUnnotifiedByDate(ctx, "2025-01-05")
	require.NoError(t, err)
	require.Len(t, got, 2)
	require.Equal(t, "ev-1", got[0].ID)
	require.Equal(t, "ev-2", got[1].ID)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestEventRepository_MarkNotified(t *testing.T) {
	ctx := context.Background()

	t.Run("marks only unnotified rows", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectExec(`UPDATE events\s+SET notified = TRUE\s+WHERE id = ANY\(\$1\) AND notified IS NOT TRUE`).
			WithArgs(pq.Array([]string{"ev-1", "ev-2"})).
			WillReturnResult(sqlmock.NewResult(0, 2))

		repo := NewEventRepository(db)
		n, err := repo.MarkNotified(ctx, []string{"ev-1", "ev-2"})
		require.NoError(t, err)
		require.Equal(t, int64(2), n)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("empty id set is a no-op", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		repo := NewEventRepository(db)
		n, err := repo.MarkNotified(ctx, nil)
		require.NoError(t, err)
		require.Zero(t, n)
		require.NoError(t, mock.ExpectationsWereMet())
	})
}
