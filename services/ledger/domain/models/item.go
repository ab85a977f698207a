package models

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Item is a stockable product. CurrentQuantity is the central stock pool, the
// part of the inventory not yet allocated to any event. InitialQuantity is set
// once at creation and never changes afterwards.
type Item struct {
	ID                uuid.UUID
	Name              ItemName
	Description       string
	UnitPrice         decimal.Decimal
	InitialQuantity   int
	CurrentQuantity   int
	LowStockThreshold int
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// NewItem constructs a valid Item with generated ID and current timestamp.
// The initial quantity doubles as the starting central stock.
func NewItem(name ItemName, description string, unitPrice decimal.Decimal, initialQuantity, lowStockThreshold int) (*Item, error) {
	if unitPrice.IsNegative() {
		return nil, fmt.Errorf("unit price must not be negative")
	}
	if initialQuantity < 0 {
		return nil, fmt.Errorf("initial quantity must not be negative")
	}
	if lowStockThreshold < 0 {
		return nil, fmt.Errorf("low stock threshold must not be negative")
	}
	now := time.Now().UTC()
	return &Item{
		ID:                uuid.New(),
		Name:              name,
		Description:       description,
		UnitPrice:         unitPrice,
		InitialQuantity:   initialQuantity,
		CurrentQuantity:   initialQuantity,
		LowStockThreshold: lowStockThreshold,
		CreatedAt:         now,
		UpdatedAt:         now,
	}, nil
}

// IsLowStock reports whether the central stock has dropped below the
// configured threshold. Display-only signal; never blocks an operation.
func (i *Item) IsLowStock() bool {
	return i.CurrentQuantity < i.LowStockThreshold
}
