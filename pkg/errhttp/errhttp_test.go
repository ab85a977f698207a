package errhttp

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	ledgerdomain "github.com/ghuser/stockpilot/services/ledger/domain"
)

func TestWriteError_StatusMapping(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want int
	}{
		{"item not found", ledgerdomain.ErrItemNotFound, http.StatusNotFound},
		{"event not found", ledgerdomain.ErrEventNotFound, http.StatusNotFound},
		{"invalid quantity", ledgerdomain.ErrInvalidQuantity, http.StatusUnprocessableEntity},
		{"invalid item name", ledgerdomain.ErrInvalidItemName, http.StatusUnprocessableEntity},
		{"insufficient central stock", ledgerdomain.ErrInsufficientCentralStock, http.StatusConflict},
		{"insufficient event stock", ledgerdomain.ErrInsufficientEventStock, http.StatusConflict},
		{"transaction conflict", ledgerdomain.ErrTransactionConflict, http.StatusConflict},
		{"store unavailable", ledgerdomain.ErrStoreUnavailable, http.StatusServiceUnavailable},
		{"unknown error", errors.New("boom"), http.StatusInternalServerError},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			WriteError(w, tc.err)
			if w.Code != tc.want {
				t.Fatalf("expected %d, got %d", tc.want, w.Code)
			}
		})
	}
}

func TestWriteError_WrappedSentinel(t *testing.T) {
	w := httptest.NewRecorder()
	err := fmt.Errorf("record sale: %w: have 3, want 5", ledgerdomain.ErrInsufficientCentralStock)
	WriteError(w, err)

	if w.Code != http.StatusConflict {
		t.Fatalf("expected 409 for wrapped sentinel, got %d", w.Code)
	}
	var body map[string]string
	if err := json.NewDecoder(w.Body).Decode(&body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if body["error"] == "" {
		t.Fatal("expected error message in body")
	}
}
