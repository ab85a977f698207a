package repositories

import (
	"context"

	"github.com/google/uuid"

	"github.com/ghuser/stockpilot/services/ledger/domain/models"
)

// SaleRepository reads the immutable sale history. Sales are only ever
// written through Ledger.RecordSale; there is no update or delete.
type SaleRepository interface {
	// List returns all sales, newest first.
	List(ctx context.Context) ([]*models.Sale, error)

	// ListByEvent returns the sales recorded under one event, newest first.
	ListByEvent(ctx context.Context, eventID uuid.UUID) ([]*models.Sale, error)
}
