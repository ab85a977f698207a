package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/ghuser/stockpilot/pkg/database"
	ledgerdomain "github.com/ghuser/stockpilot/services/ledger/domain"
	"github.com/ghuser/stockpilot/services/ledger/domain/models"
)

// EventRepository implements repositories.EventRepository against PostgreSQL.
type EventRepository struct {
	db *database.Database
}

// NewEventRepository returns an EventRepository backed by the given pool.
func NewEventRepository(db *database.Database) *EventRepository {
	return &EventRepository{db: db}
}

const eventColumns = `id, name, location, date, administrator, created_at`

// Save persists a new Event.
func (r *EventRepository) Save(ctx context.Context, event *models.Event) error {
	_, err := r.db.DB().ExecContext(ctx, `
		INSERT INTO events (`+eventColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6)`,
		event.ID, event.Name, event.Location, event.Date, event.Administrator, event.CreatedAt,
	)
	if err != nil {
		return classify(fmt.Errorf("insert event: %w", err))
	}
	return nil
}

// GetByID retrieves an Event. Returns ErrEventNotFound if no row matches.
func (r *EventRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Event, error) {
	row := r.db.DB().QueryRowContext(ctx, `
		SELECT `+eventColumns+` FROM events WHERE id = $1`, id)
	event, err := scanEvent(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ledgerdomain.ErrEventNotFound
		}
		return nil, classify(fmt.Errorf("query event: %w", err))
	}
	return event, nil
}

// List returns all events, soonest date first.
func (r *EventRepository) List(ctx context.Context) ([]*models.Event, error) {
	rows, err := r.db.DB().QueryContext(ctx, `
		SELECT `+eventColumns+` FROM events ORDER BY date`)
	if err != nil {
		return nil, classify(fmt.Errorf("query events: %w", err))
	}
	defer rows.Close()

	var events []*models.Event
	for rows.Next() {
		event, err := scanEvent(rows)
		if err != nil {
			return nil, fmt.Errorf("scan event: %w", err)
		}
		events = append(events, event)
	}
	if err := rows.Err(); err != nil {
		return nil, classify(fmt.Errorf("iterate events: %w", err))
	}
	return events, nil
}

// Update persists edits to an existing Event.
func (r *EventRepository) Update(ctx context.Context, event *models.Event) error {
	res, err := r.db.DB().ExecContext(ctx, `
		UPDATE events
		SET name = $2, location = $3, date = $4, administrator = $5
		WHERE id = $1`,
		event.ID, event.Name, event.Location, event.Date, event.Administrator,
	)
	if err != nil {
		return classify(fmt.Errorf("update event: %w", err))
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ledgerdomain.ErrEventNotFound
	}
	return nil
}

// Delete removes the event and all of its stock allocations in one
// transaction. Sales recorded under the event stay in place as historical
// records; their event_id simply no longer resolves.
func (r *EventRepository) Delete(ctx context.Context, id uuid.UUID) error {
	err := r.db.WithTx(ctx, func(tx *sql.Tx) error {
		res, err := tx.ExecContext(ctx, `DELETE FROM events WHERE id = $1`, id)
		if err != nil {
			return fmt.Errorf("delete event: %w", err)
		}
		if n, _ := res.RowsAffected(); n == 0 {
			return ledgerdomain.ErrEventNotFound
		}
		if _, err := tx.ExecContext(ctx, `DELETE FROM event_stocks WHERE event_id = $1`, id); err != nil {
			return fmt.Errorf("delete event allocations: %w", err)
		}
		return nil
	})
	if err != nil {
		return classify(err)
	}
	return nil
}

func scanEvent(row rowScanner) (*models.Event, error) {
	var event models.Event
	if err := row.Scan(
		&event.ID, &event.Name, &event.Location, &event.Date,
		&event.Administrator, &event.CreatedAt,
	); err != nil {
		return nil, err
	}
	return &event, nil
}
