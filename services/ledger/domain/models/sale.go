package models

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Sale is an immutable record of a transaction. SalePrice is the item's unit
// price at sale time multiplied by the quantity; later price edits on the item
// never touch past sales. EventID is nil for a direct (central-stock) sale.
type Sale struct {
	ID         uuid.UUID
	ItemID     uuid.UUID
	Quantity   int
	SalePrice  decimal.Decimal
	OccurredAt time.Time
	EventID    *uuid.UUID
}

// NewSale constructs a Sale, computing the frozen sale price from the unit
// price in effect now. saleDate is optional; see SaleTimestamp for the rule.
func NewSale(itemID uuid.UUID, quantity int, unitPrice decimal.Decimal, saleDate *time.Time, eventID *uuid.UUID, now time.Time) (*Sale, error) {
	if quantity <= 0 {
		return nil, fmt.Errorf("sale quantity must be positive")
	}
	return &Sale{
		ID:         uuid.New(),
		ItemID:     itemID,
		Quantity:   quantity,
		SalePrice:  unitPrice.Mul(decimal.NewFromInt(int64(quantity))),
		OccurredAt: SaleTimestamp(saleDate, now),
		EventID:    eventID,
	}, nil
}

// SaleTimestamp resolves the timestamp recorded on a sale. A supplied saleDate
// contributes only the calendar date; the time-of-day always comes from the
// current clock, so sales entered in bulk for a back-dated day still sort in
// entry order. Without a saleDate the full current instant is used.
func SaleTimestamp(saleDate *time.Time, now time.Time) time.Time {
	if saleDate == nil {
		return now.UTC()
	}
	d := saleDate.UTC()
	n := now.UTC()
	return time.Date(d.Year(), d.Month(), d.Day(), n.Hour(), n.Minute(), n.Second(), n.Nanosecond(), time.UTC)
}

// IsEventSale reports whether the sale was debited from an event's allocated
// pool rather than from central stock.
func (s *Sale) IsEventSale() bool {
	return s.EventID != nil
}
