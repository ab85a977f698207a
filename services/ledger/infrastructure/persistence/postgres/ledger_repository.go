package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/ghuser/stockpilot/pkg/database"
	pkgevents "github.com/ghuser/stockpilot/pkg/events"
	ledgerdomain "github.com/ghuser/stockpilot/services/ledger/domain"
	domainevents "github.com/ghuser/stockpilot/services/ledger/domain/events"
	"github.com/ghuser/stockpilot/services/ledger/domain/models"
	"github.com/ghuser/stockpilot/services/ledger/domain/repositories"
	stocksvc "github.com/ghuser/stockpilot/services/ledger/domain/services"
)

// LedgerRepository implements repositories.Ledger against PostgreSQL.
//
// Every mutation runs inside one transaction: the item row (and the
// event-stock row, for event operations) is taken with SELECT ... FOR UPDATE
// before the sufficiency check, so a concurrent operation on the same key
// blocks until this one commits and then re-reads the committed quantity.
// The naive read-check-write race the ledger exists to prevent cannot occur.
// Deadlock aborts surface as ErrTransactionConflict via classify.
type LedgerRepository struct {
	db  *database.Database
	bus *pkgevents.EventBus
}

// NewLedgerRepository returns a LedgerRepository backed by the given pool and
// event bus. The bus publishes ledger events transactionally (outbox); pass
// nil to disable publishing.
func NewLedgerRepository(db *database.Database, bus *pkgevents.EventBus) *LedgerRepository {
	return &LedgerRepository{db: db, bus: bus}
}

// lockedItem is the slice of the item row the ledger needs under lock.
type lockedItem struct {
	name              string
	unitPrice         decimal.Decimal
	currentQuantity   int
	lowStockThreshold int
}

// RecordSale validates and persists one sale as a single atomic unit.
func (r *LedgerRepository) RecordSale(ctx context.Context, in repositories.RecordSaleInput) (*models.Sale, error) {
	if in.Quantity <= 0 {
		return nil, ledgerdomain.ErrInvalidQuantity
	}

	var sale *models.Sale
	err := r.db.WithTx(ctx, func(tx *sql.Tx) error {
		item, err := lockItem(ctx, tx, in.ItemID)
		if err != nil {
			return err
		}

		remainingCentral := item.currentQuantity
		if in.EventID != nil {
			allocated, err := lockAllocation(ctx, tx, *in.EventID, in.ItemID)
			if err != nil {
				return err
			}
			sold, err := soldForPair(ctx, tx, *in.EventID, in.ItemID)
			if err != nil {
				return err
			}
			if err := stocksvc.CheckEventSale(allocated, sold, in.Quantity); err != nil {
				return err
			}
			// Central stock was already debited at allocation time.
		} else {
			if err := stocksvc.CheckDirectSale(item.currentQuantity, in.Quantity); err != nil {
				return err
			}
			if err := tx.QueryRowContext(ctx, `
				UPDATE items
				SET current_quantity = current_quantity - $2, updated_at = now()
				WHERE id = $1
				RETURNING current_quantity`,
				in.ItemID, in.Quantity,
			).Scan(&remainingCentral); err != nil {
				return fmt.Errorf("debit central stock: %w", err)
			}
		}

		sale, err = models.NewSale(in.ItemID, in.Quantity, item.unitPrice, in.SaleDate, in.EventID, time.Now())
		if err != nil {
			return fmt.Errorf("%w: %w", ledgerdomain.ErrInvalidQuantity, err)
		}

		var eventID uuid.NullUUID
		if sale.EventID != nil {
			eventID = uuid.NullUUID{UUID: *sale.EventID, Valid: true}
		}
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO sales (`+saleColumns+`)
			VALUES ($1, $2, $3, $4, $5, $6)`,
			sale.ID, sale.ItemID, sale.Quantity, sale.SalePrice, sale.OccurredAt, eventID,
		); err != nil {
			return fmt.Errorf("insert sale: %w", err)
		}

		if r.bus != nil {
			return r.publishSaleRecorded(tx, sale, item, remainingCentral)
		}
		return nil
	})
	if err != nil {
		return nil, classify(err)
	}
	return sale, nil
}

// AllocateStock moves quantity from central stock into the (event, item)
// allocation. The item debit and the event_stocks upsert commit together.
func (r *LedgerRepository) AllocateStock(ctx context.Context, eventID, itemID uuid.UUID, quantity int) (*models.EventStock, error) {
	if quantity <= 0 {
		return nil, ledgerdomain.ErrInvalidQuantity
	}

	stock := &models.EventStock{
		ID:      models.EventStockID(eventID, itemID),
		EventID: eventID,
		ItemID:  itemID,
	}
	err := r.db.WithTx(ctx, func(tx *sql.Tx) error {
		var exists bool
		if err := tx.QueryRowContext(ctx,
			`SELECT EXISTS (SELECT 1 FROM events WHERE id = $1)`, eventID,
		).Scan(&exists); err != nil {
			return fmt.Errorf("check event: %w", err)
		}
		if !exists {
			return ledgerdomain.ErrEventNotFound
		}

		item, err := lockItem(ctx, tx, itemID)
		if err != nil {
			return err
		}
		if err := stocksvc.CheckAllocation(item.currentQuantity, quantity); err != nil {
			return err
		}

		var remainingCentral int
		if err := tx.QueryRowContext(ctx, `
			UPDATE items
			SET current_quantity = current_quantity - $2, updated_at = now()
			WHERE id = $1
			RETURNING current_quantity`,
			itemID, quantity,
		).Scan(&remainingCentral); err != nil {
			return fmt.Errorf("debit central stock: %w", err)
		}

		// The composite primary key deduplicates the pair; repeated
		// allocations accumulate into the existing row.
		if err := tx.QueryRowContext(ctx, `
			INSERT INTO event_stocks (id, event_id, item_id, allocated_quantity)
			VALUES ($1, $2, $3, $4)
			ON CONFLICT (id) DO UPDATE
			SET allocated_quantity = event_stocks.allocated_quantity + EXCLUDED.allocated_quantity
			RETURNING allocated_quantity`,
			stock.ID, eventID, itemID, quantity,
		).Scan(&stock.AllocatedQuantity); err != nil {
			return fmt.Errorf("upsert allocation: %w", err)
		}

		if r.bus != nil {
			return r.publishStockAllocated(tx, stock, item, quantity, remainingCentral)
		}
		return nil
	})
	if err != nil {
		return nil, classify(err)
	}
	return stock, nil
}

// ListAllocations returns all EventStock records for one event.
func (r *LedgerRepository) ListAllocations(ctx context.Context, eventID uuid.UUID) ([]*models.EventStock, error) {
	rows, err := r.db.DB().QueryContext(ctx, `
		SELECT id, event_id, item_id, allocated_quantity
		FROM event_stocks
		WHERE event_id = $1`, eventID)
	if err != nil {
		return nil, classify(fmt.Errorf("query allocations: %w", err))
	}
	defer rows.Close()

	var stocks []*models.EventStock
	for rows.Next() {
		var s models.EventStock
		if err := rows.Scan(&s.ID, &s.EventID, &s.ItemID, &s.AllocatedQuantity); err != nil {
			return nil, fmt.Errorf("scan allocation: %w", err)
		}
		stocks = append(stocks, &s)
	}
	if err := rows.Err(); err != nil {
		return nil, classify(fmt.Errorf("iterate allocations: %w", err))
	}
	return stocks, nil
}

// RemainingEventStock recomputes allocated minus sold for one pair. A pair
// without an allocation record has remaining 0.
func (r *LedgerRepository) RemainingEventStock(ctx context.Context, eventID, itemID uuid.UUID) (int, error) {
	var remaining int
	err := r.db.DB().QueryRowContext(ctx, `
		SELECT COALESCE((SELECT allocated_quantity FROM event_stocks WHERE id = $1), 0)
		     - COALESCE((SELECT SUM(quantity) FROM sales WHERE event_id = $2 AND item_id = $3), 0)`,
		models.EventStockID(eventID, itemID), eventID, itemID,
	).Scan(&remaining)
	if err != nil {
		return 0, classify(fmt.Errorf("compute remaining stock: %w", err))
	}
	return remaining, nil
}

// lockItem reads the item row FOR UPDATE, serializing concurrent ledger
// operations on the same item until this transaction finishes.
func lockItem(ctx context.Context, tx *sql.Tx, itemID uuid.UUID) (*lockedItem, error) {
	var item lockedItem
	err := tx.QueryRowContext(ctx, `
		SELECT name, unit_price, current_quantity, low_stock_threshold
		FROM items WHERE id = $1
		FOR UPDATE`, itemID,
	).Scan(&item.name, &item.unitPrice, &item.currentQuantity, &item.lowStockThreshold)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ledgerdomain.ErrItemNotFound
		}
		return nil, fmt.Errorf("lock item: %w", err)
	}
	return &item, nil
}

// lockAllocation reads the pair's allocated quantity FOR UPDATE. A missing
// record is not an error: the pair simply has nothing allocated yet, and the
// sufficiency check will reject the sale.
func lockAllocation(ctx context.Context, tx *sql.Tx, eventID, itemID uuid.UUID) (int, error) {
	var allocated int
	err := tx.QueryRowContext(ctx, `
		SELECT allocated_quantity FROM event_stocks WHERE id = $1
		FOR UPDATE`, models.EventStockID(eventID, itemID),
	).Scan(&allocated)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("lock allocation: %w", err)
	}
	return allocated, nil
}

// soldForPair sums prior sale quantities for the pair inside the transaction,
// so the remaining-stock check sees a consistent snapshot.
func soldForPair(ctx context.Context, tx *sql.Tx, eventID, itemID uuid.UUID) (int, error) {
	var sold int
	err := tx.QueryRowContext(ctx, `
		SELECT COALESCE(SUM(quantity), 0) FROM sales
		WHERE event_id = $1 AND item_id = $2`, eventID, itemID,
	).Scan(&sold)
	if err != nil {
		return 0, fmt.Errorf("sum prior sales: %w", err)
	}
	return sold, nil
}

func (r *LedgerRepository) publishSaleRecorded(tx *sql.Tx, sale *models.Sale, item *lockedItem, remainingCentral int) error {
	event := domainevents.SaleRecordedEvent{
		EventID:           uuid.New(),
		Version:           1,
		SaleID:            sale.ID,
		ItemID:            sale.ItemID,
		ItemName:          item.name,
		Quantity:          sale.Quantity,
		SalePrice:         sale.SalePrice.String(),
		SoldAtEventID:     sale.EventID,
		CurrentQuantity:   remainingCentral,
		LowStockThreshold: item.lowStockThreshold,
		OccurredAt:        sale.OccurredAt,
	}
	return r.publish(tx, domainevents.TopicSaleRecorded, event, event.EventID)
}

func (r *LedgerRepository) publishStockAllocated(tx *sql.Tx, stock *models.EventStock, item *lockedItem, quantity, remainingCentral int) error {
	event := domainevents.StockAllocatedEvent{
		EventID:            uuid.New(),
		Version:            1,
		ItemID:             stock.ItemID,
		ItemName:           item.name,
		AllocatedToEventID: stock.EventID,
		Quantity:           quantity,
		AllocatedQuantity:  stock.AllocatedQuantity,
		CurrentQuantity:    remainingCentral,
		LowStockThreshold:  item.lowStockThreshold,
		OccurredAt:         time.Now().UTC(),
	}
	return r.publish(tx, domainevents.TopicStockAllocated, event, event.EventID)
}

// publish writes the event to the outbox within tx so it is delivered only if
// the stock mutation commits.
func (r *LedgerRepository) publish(tx *sql.Tx, topic string, payload any, eventID uuid.UUID) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal %s: %w", topic, err)
	}
	msg := message.NewMessage(watermill.NewUUID(), data)
	msg.Metadata.Set("event_id", eventID.String())
	msg.Metadata.Set("event_version", "1")
	p, err := r.bus.NewTxPublisher(tx)
	if err != nil {
		return fmt.Errorf("create publisher: %w", err)
	}
	return p.Publish(topic, msg)
}

// collectSales drains rows into Sale models. Shared with SaleRepository.
func collectSales(rows *sql.Rows) ([]*models.Sale, error) {
	var sales []*models.Sale
	for rows.Next() {
		sale, err := scanSale(rows)
		if err != nil {
			return nil, fmt.Errorf("scan sale: %w", err)
		}
		sales = append(sales, sale)
	}
	if err := rows.Err(); err != nil {
		return nil, classify(fmt.Errorf("iterate sales: %w", err))
	}
	return sales, nil
}

func scanSale(row rowScanner) (*models.Sale, error) {
	var sale models.Sale
	var eventID uuid.NullUUID
	if err := row.Scan(
		&sale.ID, &sale.ItemID, &sale.Quantity, &sale.SalePrice,
		&sale.OccurredAt, &eventID,
	); err != nil {
		return nil, err
	}
	if eventID.Valid {
		sale.EventID = &eventID.UUID
	}
	return &sale, nil
}
