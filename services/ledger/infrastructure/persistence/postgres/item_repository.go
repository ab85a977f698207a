package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/ghuser/stockpilot/pkg/database"
	ledgerdomain "github.com/ghuser/stockpilot/services/ledger/domain"
	"github.com/ghuser/stockpilot/services/ledger/domain/models"
)

// ItemRepository implements repositories.ItemRepository against PostgreSQL.
type ItemRepository struct {
	db *database.Database
}

// NewItemRepository returns an ItemRepository backed by the given pool.
func NewItemRepository(db *database.Database) *ItemRepository {
	return &ItemRepository{db: db}
}

const itemColumns = `id, name, description, unit_price, initial_quantity, current_quantity, low_stock_threshold, created_at, updated_at`

// Save persists a new Item.
func (r *ItemRepository) Save(ctx context.Context, item *models.Item) error {
	_, err := r.db.DB().ExecContext(ctx, `
		INSERT INTO items (`+itemColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		item.ID, item.Name.String(), item.Description, item.UnitPrice,
		item.InitialQuantity, item.CurrentQuantity, item.LowStockThreshold,
		item.CreatedAt, item.UpdatedAt,
	)
	if err != nil {
		return classify(fmt.Errorf("insert item: %w", err))
	}
	return nil
}

// GetByID retrieves an Item. Returns ErrItemNotFound if no row matches.
func (r *ItemRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Item, error) {
	row := r.db.DB().QueryRowContext(ctx, `
		SELECT `+itemColumns+` FROM items WHERE id = $1`, id)
	item, err := scanItem(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ledgerdomain.ErrItemNotFound
		}
		return nil, classify(fmt.Errorf("query item: %w", err))
	}
	return item, nil
}

// List returns all items ordered by name.
func (r *ItemRepository) List(ctx context.Context) ([]*models.Item, error) {
	rows, err := r.db.DB().QueryContext(ctx, `
		SELECT `+itemColumns+` FROM items ORDER BY name`)
	if err != nil {
		return nil, classify(fmt.Errorf("query items: %w", err))
	}
	defer rows.Close()

	var items []*models.Item
	for rows.Next() {
		item, err := scanItem(rows)
		if err != nil {
			return nil, fmt.Errorf("scan item: %w", err)
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, classify(fmt.Errorf("iterate items: %w", err))
	}
	return items, nil
}

// Update persists edits to an existing Item. initial_quantity is immutable
// and deliberately absent from the statement.
func (r *ItemRepository) Update(ctx context.Context, item *models.Item) error {
	res, err := r.db.DB().ExecContext(ctx, `
		UPDATE items
		SET name = $2, description = $3, unit_price = $4, current_quantity = $5,
		    low_stock_threshold = $6, updated_at = now()
		WHERE id = $1`,
		item.ID, item.Name.String(), item.Description, item.UnitPrice,
		item.CurrentQuantity, item.LowStockThreshold,
	)
	if err != nil {
		return classify(fmt.Errorf("update item: %w", err))
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ledgerdomain.ErrItemNotFound
	}
	return nil
}

// Delete removes an item. Sales referencing it are intentionally left behind.
func (r *ItemRepository) Delete(ctx context.Context, id uuid.UUID) error {
	res, err := r.db.DB().ExecContext(ctx, `DELETE FROM items WHERE id = $1`, id)
	if err != nil {
		return classify(fmt.Errorf("delete item: %w", err))
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ledgerdomain.ErrItemNotFound
	}
	return nil
}

// rowScanner is satisfied by both *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanItem(row rowScanner) (*models.Item, error) {
	var item models.Item
	var name string
	if err := row.Scan(
		&item.ID, &name, &item.Description, &item.UnitPrice,
		&item.InitialQuantity, &item.CurrentQuantity, &item.LowStockThreshold,
		&item.CreatedAt, &item.UpdatedAt,
	); err != nil {
		return nil, err
	}
	item.Name = models.ItemName(name)
	return &item, nil
}

// classify maps low-level driver failures onto the domain error taxonomy so
// callers above the repository never import database or pgconn.
func classify(err error) error {
	switch {
	case database.IsConflict(err):
		return fmt.Errorf("%w: %w", ledgerdomain.ErrTransactionConflict, err)
	case database.IsUnavailable(err):
		return fmt.Errorf("%w: %w", ledgerdomain.ErrStoreUnavailable, err)
	default:
		return err
	}
}
