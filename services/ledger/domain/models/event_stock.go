package models

import (
	"fmt"

	"github.com/google/uuid"
)

// EventStock records the quantity of one item allocated to one event. There is
// at most one record per (event, item) pair; repeated allocations accumulate
// into the same record. AllocatedQuantity only ever grows; there is no
// de-allocation operation, stock leaves the pool through event sales only.
type EventStock struct {
	ID                string
	EventID           uuid.UUID
	ItemID            uuid.UUID
	AllocatedQuantity int
}

// EventStockID builds the deterministic composite identifier for an
// (event, item) pair. Using it as the primary key makes the store enforce the
// one-record-per-pair constraint instead of application code.
func EventStockID(eventID, itemID uuid.UUID) string {
	return fmt.Sprintf("%s_%s", eventID, itemID)
}

// NewEventStock constructs the first allocation record for a pair.
func NewEventStock(eventID, itemID uuid.UUID, quantity int) (*EventStock, error) {
	if quantity <= 0 {
		return nil, fmt.Errorf("allocated quantity must be positive")
	}
	return &EventStock{
		ID:                EventStockID(eventID, itemID),
		EventID:           eventID,
		ItemID:            itemID,
		AllocatedQuantity: quantity,
	}, nil
}
