package postgres_test

import (
	"context"
	"errors"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/ghuser/stockpilot/pkg/config"
	"github.com/ghuser/stockpilot/pkg/database"
	"github.com/ghuser/stockpilot/pkg/logger"
	"github.com/ghuser/stockpilot/pkg/migrator"
	"github.com/ghuser/stockpilot/services/ledger/domain"
	"github.com/ghuser/stockpilot/services/ledger/domain/models"
	"github.com/ghuser/stockpilot/services/ledger/domain/repositories"
	"github.com/ghuser/stockpilot/services/ledger/infrastructure/persistence/postgres"
)

// Integration tests against a real database, skipped unless DATABASE_URL is set.
// The bus is nil here: outbox publishing has its own coverage in pkg/events.
func setupDB(t *testing.T) *database.Database {
	t.Helper()
	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		t.Skip("DATABASE_URL not set; skipping integration tests")
	}

	if err := migrator.RunMigrations(dbURL, os.DirFS("../../../../../migrations/ledger")); err != nil {
		t.Fatalf("migrations: %v", err)
	}

	log := logger.New(&config.Config{LogLevel: "error"})
	db, err := database.NewPool(context.Background(), dbURL, log)
	if err != nil {
		t.Fatalf("connect: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func createItem(t *testing.T, db *database.Database, stock int) *models.Item {
	t.Helper()
	name, _ := models.NewItemName("itest " + uuid.NewString())
	item, err := models.NewItem(name, "", decimal.RequireFromString("2.50"), stock, 3)
	if err != nil {
		t.Fatalf("new item: %v", err)
	}
	if err := postgres.NewItemRepository(db).Save(context.Background(), item); err != nil {
		t.Fatalf("save item: %v", err)
	}
	t.Cleanup(func() {
		_, _ = db.DB().ExecContext(context.Background(), `DELETE FROM sales WHERE item_id = $1`, item.ID)
		_, _ = db.DB().ExecContext(context.Background(), `DELETE FROM event_stocks WHERE item_id = $1`, item.ID)
		_, _ = db.DB().ExecContext(context.Background(), `DELETE FROM items WHERE id = $1`, item.ID)
	})
	return item
}

func createEvent(t *testing.T, db *database.Database) *models.Event {
	t.Helper()
	event, err := models.NewEvent("itest "+uuid.NewString(), "here", time.Now().Add(24*time.Hour), "sam")
	if err != nil {
		t.Fatalf("new event: %v", err)
	}
	if err := postgres.NewEventRepository(db).Save(context.Background(), event); err != nil {
		t.Fatalf("save event: %v", err)
	}
	t.Cleanup(func() {
		_, _ = db.DB().ExecContext(context.Background(), `DELETE FROM event_stocks WHERE event_id = $1`, event.ID)
		_, _ = db.DB().ExecContext(context.Background(), `DELETE FROM events WHERE id = $1`, event.ID)
	})
	return event
}

func TestLedgerRepository_DirectSale(t *testing.T) {
	db := setupDB(t)
	ctx := context.Background()
	ledger := postgres.NewLedgerRepository(db, nil)
	item := createItem(t, db, 10)

	sale, err := ledger.RecordSale(ctx, repositories.RecordSaleInput{ItemID: item.ID, Quantity: 4})
	if err != nil {
		t.Fatalf("RecordSale: %v", err)
	}
	if !sale.SalePrice.Equal(decimal.RequireFromString("10.00")) {
		t.Errorf("sale price: got %s, want 10.00", sale.SalePrice)
	}

	got, err := postgres.NewItemRepository(db).GetByID(ctx, item.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if got.CurrentQuantity != 6 {
		t.Errorf("central stock: got %d, want 6", got.CurrentQuantity)
	}
}

func TestLedgerRepository_DirectSale_insufficientLeavesNoTrace(t *testing.T) {
	db := setupDB(t)
	ctx := context.Background()
	ledger := postgres.NewLedgerRepository(db, nil)
	item := createItem(t, db, 2)

	_, err := ledger.RecordSale(ctx, repositories.RecordSaleInput{ItemID: item.ID, Quantity: 3})
	if !errors.Is(err, domain.ErrInsufficientCentralStock) {
		t.Fatalf("got %v, want ErrInsufficientCentralStock", err)
	}

	got, err := postgres.NewItemRepository(db).GetByID(ctx, item.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if got.CurrentQuantity != 2 {
		t.Errorf("rejected sale must not change stock: got %d", got.CurrentQuantity)
	}
	sales, err := postgres.NewSaleRepository(db).List(ctx)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	for _, s := range sales {
		if s.ItemID == item.ID {
			t.Error("rejected sale left a sale row behind")
		}
	}
}

func TestLedgerRepository_AllocateAndSellAtEvent(t *testing.T) {
	db := setupDB(t)
	ctx := context.Background()
	ledger := postgres.NewLedgerRepository(db, nil)
	item := createItem(t, db, 20)
	event := createEvent(t, db)

	stock, err := ledger.AllocateStock(ctx, event.ID, item.ID, 8)
	if err != nil {
		t.Fatalf("AllocateStock: %v", err)
	}
	if stock.AllocatedQuantity != 8 {
		t.Errorf("allocated: got %d, want 8", stock.AllocatedQuantity)
	}

	// Second allocation accumulates into the same row.
	stock, err = ledger.AllocateStock(ctx, event.ID, item.ID, 2)
	if err != nil {
		t.Fatalf("second AllocateStock: %v", err)
	}
	if stock.AllocatedQuantity != 10 {
		t.Errorf("accumulated: got %d, want 10", stock.AllocatedQuantity)
	}

	if _, err := ledger.RecordSale(ctx, repositories.RecordSaleInput{
		ItemID: item.ID, Quantity: 6, EventID: &event.ID,
	}); err != nil {
		t.Fatalf("event sale: %v", err)
	}

	remaining, err := ledger.RemainingEventStock(ctx, event.ID, item.ID)
	if err != nil {
		t.Fatalf("RemainingEventStock: %v", err)
	}
	if remaining != 4 {
		t.Errorf("remaining: got %d, want 4", remaining)
	}

	// Central stock saw only the allocations, not the event sale.
	got, err := postgres.NewItemRepository(db).GetByID(ctx, item.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if got.CurrentQuantity != 10 {
		t.Errorf("central stock: got %d, want 10", got.CurrentQuantity)
	}
}

func TestLedgerRepository_AllocateStock_eventNotFound(t *testing.T) {
	db := setupDB(t)
	ledger := postgres.NewLedgerRepository(db, nil)
	item := createItem(t, db, 5)

	_, err := ledger.AllocateStock(context.Background(), uuid.New(), item.ID, 1)
	if !errors.Is(err, domain.ErrEventNotFound) {
		t.Fatalf("got %v, want ErrEventNotFound", err)
	}
}

func TestEventRepository_DeleteCascadesAllocations(t *testing.T) {
	db := setupDB(t)
	ctx := context.Background()
	ledger := postgres.NewLedgerRepository(db, nil)
	item := createItem(t, db, 20)
	event := createEvent(t, db)

	if _, err := ledger.AllocateStock(ctx, event.ID, item.ID, 5); err != nil {
		t.Fatalf("AllocateStock: %v", err)
	}
	if _, err := ledger.RecordSale(ctx, repositories.RecordSaleInput{
		ItemID: item.ID, Quantity: 2, EventID: &event.ID,
	}); err != nil {
		t.Fatalf("event sale: %v", err)
	}

	if err := postgres.NewEventRepository(db).Delete(ctx, event.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}

	allocations, err := ledger.ListAllocations(ctx, event.ID)
	if err != nil {
		t.Fatalf("ListAllocations: %v", err)
	}
	if len(allocations) != 0 {
		t.Errorf("allocations survived event deletion: %d", len(allocations))
	}

	// The sale history is untouched by the cascade.
	sales, err := postgres.NewSaleRepository(db).ListByEvent(ctx, event.ID)
	if err != nil {
		t.Fatalf("ListByEvent: %v", err)
	}
	if len(sales) != 1 {
		t.Errorf("sales under deleted event: got %d, want 1", len(sales))
	}
}

func TestLedgerRepository_RecordSale_itemNotFound(t *testing.T) {
	db := setupDB(t)
	ledger := postgres.NewLedgerRepository(db, nil)

	_, err := ledger.RecordSale(context.Background(), repositories.RecordSaleInput{ItemID: uuid.New(), Quantity: 1})
	if !errors.Is(err, domain.ErrItemNotFound) {
		t.Fatalf("got %v, want ErrItemNotFound", err)
	}
}
