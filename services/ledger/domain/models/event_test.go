package models_test

import (
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/ghuser/stockpilot/services/ledger/domain/models"
)

func TestNewEvent(t *testing.T) {
	date := time.Date(2026, 10, 3, 18, 0, 0, 0, time.UTC)
	event, err := models.NewEvent("Autumn Fair", "Town Hall", date, "sam")
	if err != nil {
		t.Fatalf("NewEvent: %v", err)
	}
	if event.Name != "Autumn Fair" || !event.Date.Equal(date) {
		t.Errorf("unexpected event: %+v", event)
	}
}

func TestNewEvent_rejectsBlankFields(t *testing.T) {
	date := time.Now()
	if _, err := models.NewEvent("  ", "loc", date, "sam"); err == nil {
		t.Error("expected error for blank name")
	}
	if _, err := models.NewEvent("Fair", "loc", date, " "); err == nil {
		t.Error("expected error for blank administrator")
	}
}

func TestEvent_IsUpcoming(t *testing.T) {
	now := time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)
	past, _ := models.NewEvent("Past", "", now.Add(-time.Hour), "sam")
	future, _ := models.NewEvent("Future", "", now.Add(time.Hour), "sam")

	if past.IsUpcoming(now) {
		t.Error("past event reported as upcoming")
	}
	if !future.IsUpcoming(now) {
		t.Error("future event not reported as upcoming")
	}
}

func TestEventStockID(t *testing.T) {
	eventID := uuid.MustParse("11111111-1111-1111-1111-111111111111")
	itemID := uuid.MustParse("22222222-2222-2222-2222-222222222222")

	got := models.EventStockID(eventID, itemID)
	want := "11111111-1111-1111-1111-111111111111_22222222-2222-2222-2222-222222222222"
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestNewEventStock(t *testing.T) {
	eventID, itemID := uuid.New(), uuid.New()
	stock, err := models.NewEventStock(eventID, itemID, 15)
	if err != nil {
		t.Fatalf("NewEventStock: %v", err)
	}
	if stock.ID != models.EventStockID(eventID, itemID) {
		t.Errorf("composite id mismatch: %q", stock.ID)
	}
	if stock.AllocatedQuantity != 15 {
		t.Errorf("allocated: got %d, want 15", stock.AllocatedQuantity)
	}

	if _, err := models.NewEventStock(eventID, itemID, 0); err == nil {
		t.Error("expected error for zero quantity")
	}
}
