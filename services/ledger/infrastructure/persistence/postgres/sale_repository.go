package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/ghuser/stockpilot/pkg/database"
	"github.com/ghuser/stockpilot/services/ledger/domain/models"
)

// SaleRepository implements repositories.SaleRepository against PostgreSQL.
// Read-only: sales are written exclusively by the LedgerRepository.
type SaleRepository struct {
	db *database.Database
}

// NewSaleRepository returns a SaleRepository backed by the given pool.
func NewSaleRepository(db *database.Database) *SaleRepository {
	return &SaleRepository{db: db}
}

const saleColumns = `id, item_id, quantity, sale_price, occurred_at, event_id`

// List returns all sales, newest first.
func (r *SaleRepository) List(ctx context.Context) ([]*models.Sale, error) {
	rows, err := r.db.DB().QueryContext(ctx, `
		SELECT `+saleColumns+` FROM sales ORDER BY occurred_at DESC`)
	if err != nil {
		return nil, classify(fmt.Errorf("query sales: %w", err))
	}
	defer rows.Close()
	return collectSales(rows)
}

// ListByEvent returns the sales recorded under one event, newest first.
func (r *SaleRepository) ListByEvent(ctx context.Context, eventID uuid.UUID) ([]*models.Sale, error) {
	rows, err := r.db.DB().QueryContext(ctx, `
		SELECT `+saleColumns+` FROM sales WHERE event_id = $1 ORDER BY occurred_at DESC`, eventID)
	if err != nil {
		return nil, classify(fmt.Errorf("query event sales: %w", err))
	}
	defer rows.Close()
	return collectSales(rows)
}
