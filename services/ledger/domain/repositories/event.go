package repositories

import (
	"context"

	"github.com/google/uuid"

	"github.com/ghuser/stockpilot/services/ledger/domain/models"
)

// EventRepository is the persistence interface for the Event aggregate.
type EventRepository interface {
	Save(ctx context.Context, event *models.Event) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Event, error)
	List(ctx context.Context) ([]*models.Event, error)
	Update(ctx context.Context, event *models.Event) error

	// Delete removes the event and, in the same transaction, every EventStock
	// allocation for it. Sales recorded under the event are left untouched.
	Delete(ctx context.Context, id uuid.UUID) error
}
