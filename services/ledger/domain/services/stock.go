// Package services contains stateless domain services for the stock ledger.
// These are the quantity rules shared by every store implementation: the
// postgres repositories apply them between the row locks and the writes, and
// test fakes apply the identical rules in memory.
package services

import (
	"fmt"

	"github.com/ghuser/stockpilot/services/ledger/domain"
)

// CheckDirectSale validates that a direct sale of quantity q can be debited
// from central stock of size current.
func CheckDirectSale(current, q int) error {
	if q <= 0 {
		return domain.ErrInvalidQuantity
	}
	if current < q {
		return fmt.Errorf("%w: have %d, want %d", domain.ErrInsufficientCentralStock, current, q)
	}
	return nil
}

// CheckAllocation validates that quantity q can be moved from central stock of
// size current into an event pool. Same arithmetic as a direct sale; both
// debit the central pool.
func CheckAllocation(current, q int) error {
	if q <= 0 {
		return domain.ErrInvalidQuantity
	}
	if current < q {
		return fmt.Errorf("%w: have %d, want %d", domain.ErrInsufficientCentralStock, current, q)
	}
	return nil
}

// RemainingEventStock computes the effective stock still available for event
// sales of one (event, item) pair: what was allocated minus what was already
// sold under that event. Never stored; recomputed on demand.
func RemainingEventStock(allocated, sold int) int {
	return allocated - sold
}

// CheckEventSale validates that an event sale of quantity q fits into the
// remaining allocated-minus-sold pool. Central stock is never touched here;
// it was already debited when the allocation happened.
func CheckEventSale(allocated, sold, q int) error {
	if q <= 0 {
		return domain.ErrInvalidQuantity
	}
	if remaining := RemainingEventStock(allocated, sold); remaining < q {
		return fmt.Errorf("%w: remaining %d, want %d", domain.ErrInsufficientEventStock, remaining, q)
	}
	return nil
}
