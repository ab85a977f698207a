package domain

import "errors"

// Sentinel errors for the stock ledger. Use errors.Is() to check these.
var (
	// ErrItemNotFound indicates the referenced inventory item does not exist.
	ErrItemNotFound = errors.New("item not found")

	// ErrEventNotFound indicates the referenced event does not exist.
	ErrEventNotFound = errors.New("event not found")

	// ErrSaleNotFound indicates the requested sale record does not exist.
	ErrSaleNotFound = errors.New("sale not found")

	// ErrInvalidItemName indicates the item name violates domain constraints.
	ErrInvalidItemName = errors.New("invalid item name")

	// ErrInvalidEventName indicates the event name violates domain constraints.
	ErrInvalidEventName = errors.New("invalid event name")

	// ErrInvalidQuantity indicates a non-positive quantity was requested.
	ErrInvalidQuantity = errors.New("quantity must be a positive integer")

	// ErrInvalidUnitPrice indicates a negative unit price.
	ErrInvalidUnitPrice = errors.New("unit price must not be negative")

	// ErrInsufficientCentralStock indicates a direct sale or an allocation
	// asked for more than the item's current central quantity.
	ErrInsufficientCentralStock = errors.New("insufficient central stock")

	// ErrInsufficientEventStock indicates an event sale asked for more than
	// the remaining allocated-minus-sold quantity for that (event, item) pair.
	ErrInsufficientEventStock = errors.New("insufficient event stock")

	// ErrTransactionConflict indicates a concurrent write aborted the atomic
	// commit. The caller may retry the whole operation from a fresh read.
	ErrTransactionConflict = errors.New("transaction conflict")

	// ErrStoreUnavailable indicates the persistence layer is unreachable.
	ErrStoreUnavailable = errors.New("store unavailable")
)
