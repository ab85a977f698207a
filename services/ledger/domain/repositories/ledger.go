package repositories

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/ghuser/stockpilot/services/ledger/domain/models"
)

// RecordSaleInput carries the arguments of a sale-recording operation.
// EventID nil means a direct sale debited from central stock. SaleDate, when
// set, back-dates the sale's calendar date (see models.SaleTimestamp).
type RecordSaleInput struct {
	ItemID   uuid.UUID
	Quantity int
	SaleDate *time.Time
	EventID  *uuid.UUID
}

// Ledger is the only interface through which quantities change as a result of
// selling or allocating. Implementations must apply each operation as a
// single all-or-nothing unit: the state read, the sufficiency check, and every
// write commit together or not at all, and two concurrent operations on the
// same item (or the same event-item pair) must serialize.
type Ledger interface {
	// RecordSale validates and persists one sale. Direct sales debit the
	// item's central quantity; event sales debit the derived remaining pool
	// and leave central stock untouched. Fails with ErrItemNotFound,
	// ErrInvalidQuantity, ErrInsufficientCentralStock,
	// ErrInsufficientEventStock, or ErrTransactionConflict.
	RecordSale(ctx context.Context, in RecordSaleInput) (*models.Sale, error)

	// AllocateStock moves quantity from the item's central stock into the
	// (event, item) allocation, creating or incrementing the EventStock
	// record. Returns the record with its post-update allocated quantity.
	AllocateStock(ctx context.Context, eventID, itemID uuid.UUID, quantity int) (*models.EventStock, error)

	// ListAllocations returns all EventStock records for one event.
	ListAllocations(ctx context.Context, eventID uuid.UUID) ([]*models.EventStock, error)

	// RemainingEventStock recomputes allocated minus sold for one pair.
	// A pair with no allocation record has remaining 0.
	RemainingEventStock(ctx context.Context, eventID, itemID uuid.UUID) (int, error)
}
