package repositories

import (
	"context"

	"github.com/google/uuid"

	"github.com/ghuser/stockpilot/services/ledger/domain/models"
)

// ItemRepository is the persistence interface for the Item aggregate.
// The domain layer owns this interface; infrastructure implements it.
//
// CurrentQuantity is only ever changed here through Update (a manual edit by
// an administrator); sales and allocations mutate it through the Ledger.
type ItemRepository interface {
	Save(ctx context.Context, item *models.Item) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Item, error)
	List(ctx context.Context) ([]*models.Item, error)

	// Update persists edits to an existing Item. InitialQuantity is immutable
	// and never written. Returns ErrItemNotFound when no row matches.
	Update(ctx context.Context, item *models.Item) error

	// Delete removes an item. Historical sales referencing it are left in
	// place; orphaned item ids on sales are tolerated.
	Delete(ctx context.Context, id uuid.UUID) error
}
