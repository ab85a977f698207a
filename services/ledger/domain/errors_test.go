package domain

import (
	"errors"
	"fmt"
	"testing"
)

func TestSentinelErrors_Messages(t *testing.T) {
	tests := []struct {
		err  error
		want string
	}{
		{ErrItemNotFound, "item not found"},
		{ErrEventNotFound, "event not found"},
		{ErrSaleNotFound, "sale not found"},
		{ErrInvalidQuantity, "quantity must be a positive integer"},
		{ErrInsufficientCentralStock, "insufficient central stock"},
		{ErrInsufficientEventStock, "insufficient event stock"},
		{ErrTransactionConflict, "transaction conflict"},
		{ErrStoreUnavailable, "store unavailable"},
	}
	for _, tt := range tests {
		if tt.err.Error() != tt.want {
			t.Errorf("unexpected message: got %q, want %q", tt.err.Error(), tt.want)
		}
	}
}

func TestSentinelErrors_WrappedIdentity(t *testing.T) {
	wrapped := fmt.Errorf("record sale: %w", ErrInsufficientCentralStock)
	if !errors.Is(wrapped, ErrInsufficientCentralStock) {
		t.Fatal("errors.Is must match wrapped ErrInsufficientCentralStock")
	}

	wrapped2 := fmt.Errorf("%w: have 2, want 3", ErrInsufficientEventStock)
	if !errors.Is(wrapped2, ErrInsufficientEventStock) {
		t.Fatal("errors.Is must match wrapped ErrInsufficientEventStock")
	}

	if errors.Is(ErrInsufficientCentralStock, ErrInsufficientEventStock) {
		t.Fatal("central and event stock errors must stay distinct")
	}
}
