package events

import (
	"time"

	"github.com/google/uuid"
)

// Watermill topics published by the ledger repositories within the same
// transaction as the stock mutation (outbox delivery).
const (
	TopicSaleRecorded   = "ledger.sale_recorded"
	TopicStockAllocated = "ledger.stock_allocated"
)

// SaleRecordedEvent is published after a sale commits. The payload carries the
// post-sale central quantity and the threshold so consumers (the low-stock
// alert worker) never have to re-read the database.
type SaleRecordedEvent struct {
	EventID           uuid.UUID  `json:"event_id"` // unique publish-time identifier for deduplication
	Version           int        `json:"version"`  // schema version; increment on breaking changes
	SaleID            uuid.UUID  `json:"sale_id"`
	ItemID            uuid.UUID  `json:"item_id"`
	ItemName          string     `json:"item_name"`
	Quantity          int        `json:"quantity"`
	SalePrice         string     `json:"sale_price"`
	SoldAtEventID     *uuid.UUID `json:"sold_at_event_id,omitempty"` // nil for direct sales
	CurrentQuantity   int        `json:"current_quantity"`           // central stock after the sale
	LowStockThreshold int        `json:"low_stock_threshold"`
	OccurredAt        time.Time  `json:"occurred_at"`
}

// StockAllocatedEvent is published after stock moves from the central pool
// into an event's allocation.
type StockAllocatedEvent struct {
	EventID            uuid.UUID `json:"event_id"`
	Version            int       `json:"version"`
	ItemID             uuid.UUID `json:"item_id"`
	ItemName           string    `json:"item_name"`
	AllocatedToEventID uuid.UUID `json:"allocated_to_event_id"`
	Quantity           int       `json:"quantity"`           // this allocation
	AllocatedQuantity  int       `json:"allocated_quantity"` // pair total after the allocation
	CurrentQuantity    int       `json:"current_quantity"`   // central stock after the allocation
	LowStockThreshold  int       `json:"low_stock_threshold"`
	OccurredAt         time.Time `json:"occurred_at"`
}
