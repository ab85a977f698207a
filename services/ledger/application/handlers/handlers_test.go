package handlers_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/ghuser/stockpilot/services/ledger/application/handlers"
)

// The handlers below short-circuit on bad input before reaching any service,
// so a nil service container is safe here.

func TestGetItemHandler_invalidID(t *testing.T) {
	r := chi.NewRouter()
	r.Get("/items/{id}", handlers.NewGetItemHandler(nil).Execute)

	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/items/not-a-uuid", http.NoBody))

	if rr.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rr.Code)
	}
	if !strings.Contains(rr.Body.String(), "invalid id") {
		t.Errorf("unexpected body: %s", rr.Body.String())
	}
}

func TestPostSaleHandler_malformedJSON(t *testing.T) {
	r := chi.NewRouter()
	r.Post("/sales", handlers.NewPostSaleHandler(nil).Execute)

	rr := httptest.NewRecorder()
	rr2 := httptest.NewRequest(http.MethodPost, "/sales", strings.NewReader("{not json"))
	r.ServeHTTP(rr, rr2)

	if rr.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rr.Code)
	}
}

func TestPostSaleHandler_missingQuantity(t *testing.T) {
	r := chi.NewRouter()
	r.Post("/sales", handlers.NewPostSaleHandler(nil).Execute)

	body := `{"item_id":"550e8400-e29b-41d4-a716-446655440000"}`
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/sales", strings.NewReader(body)))

	if rr.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d", rr.Code)
	}
	if !strings.Contains(rr.Body.String(), "quantity") {
		t.Errorf("expected quantity in error body: %s", rr.Body.String())
	}
}

func TestPostSaleHandler_negativeQuantity(t *testing.T) {
	r := chi.NewRouter()
	r.Post("/sales", handlers.NewPostSaleHandler(nil).Execute)

	body := `{"item_id":"550e8400-e29b-41d4-a716-446655440000","quantity":-2}`
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/sales", strings.NewReader(body)))

	if rr.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d", rr.Code)
	}
}

func TestPostAllocationHandler_zeroQuantity(t *testing.T) {
	r := chi.NewRouter()
	r.Post("/events/{id}/allocations", handlers.NewPostAllocationHandler(nil).Execute)

	body := `{"item_id":"550e8400-e29b-41d4-a716-446655440000","quantity":0}`
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, httptest.NewRequest(http.MethodPost,
		"/events/660e8400-e29b-41d4-a716-446655440000/allocations", strings.NewReader(body)))

	if rr.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d", rr.Code)
	}
}

func TestPostEventHandler_missingName(t *testing.T) {
	r := chi.NewRouter()
	r.Post("/events", handlers.NewPostEventHandler(nil).Execute)

	body := `{"location":"Town Hall","date":"2026-10-03T18:00:00Z","administrator":"sam"}`
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/events", strings.NewReader(body)))

	if rr.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d", rr.Code)
	}
}
