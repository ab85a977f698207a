package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/ghuser/stockpilot/pkg/database"
	ledgerdomain "github.com/ghuser/stockpilot/services/ledger/domain"
	"github.com/ghuser/stockpilot/services/ledger/domain/models"
	"github.com/ghuser/stockpilot/services/ledger/domain/repositories"
)

// ReportRepository implements repositories.ReportRepository against
// PostgreSQL. All queries are read-only aggregations for the dashboard.
type ReportRepository struct {
	db *database.Database
}

// NewReportRepository returns a ReportRepository backed by the given pool.
func NewReportRepository(db *database.Database) *ReportRepository {
	return &ReportRepository{db: db}
}

// Totals aggregates the full sale history plus the catalog size.
func (r *ReportRepository) Totals(ctx context.Context) (*repositories.SalesTotals, error) {
	var t repositories.SalesTotals
	err := r.db.DB().QueryRowContext(ctx, `
		SELECT COALESCE((SELECT SUM(sale_price) FROM sales), 0),
		       COALESCE((SELECT SUM(quantity) FROM sales), 0),
		       (SELECT COUNT(*) FROM items)`,
	).Scan(&t.TotalRevenue, &t.TotalUnitsSold, &t.ItemCount)
	if err != nil {
		return nil, classify(fmt.Errorf("query totals: %w", err))
	}
	return &t, nil
}

// RevenueByDay returns one revenue point per day with sales since the cutoff,
// oldest first. Days without sales produce no point.
func (r *ReportRepository) RevenueByDay(ctx context.Context, since time.Time) ([]repositories.RevenuePoint, error) {
	rows, err := r.db.DB().QueryContext(ctx, `
		SELECT date_trunc('day', occurred_at) AS day, SUM(sale_price)
		FROM sales
		WHERE occurred_at >= $1
		GROUP BY day
		ORDER BY day`, since)
	if err != nil {
		return nil, classify(fmt.Errorf("query revenue by day: %w", err))
	}
	defer rows.Close()

	var points []repositories.RevenuePoint
	for rows.Next() {
		var p repositories.RevenuePoint
		if err := rows.Scan(&p.Day, &p.Revenue); err != nil {
			return nil, fmt.Errorf("scan revenue point: %w", err)
		}
		points = append(points, p)
	}
	if err := rows.Err(); err != nil {
		return nil, classify(fmt.Errorf("iterate revenue points: %w", err))
	}
	return points, nil
}

// RecentSales returns the latest sales, newest first.
func (r *ReportRepository) RecentSales(ctx context.Context, limit int) ([]*models.Sale, error) {
	rows, err := r.db.DB().QueryContext(ctx, `
		SELECT `+saleColumns+` FROM sales ORDER BY occurred_at DESC LIMIT $1`, limit)
	if err != nil {
		return nil, classify(fmt.Errorf("query recent sales: %w", err))
	}
	defer rows.Close()
	return collectSales(rows)
}

// LowStockItems returns items whose central stock dropped below their
// threshold, most depleted first.
func (r *ReportRepository) LowStockItems(ctx context.Context) ([]*models.Item, error) {
	rows, err := r.db.DB().QueryContext(ctx, `
		SELECT `+itemColumns+` FROM items
		WHERE current_quantity < low_stock_threshold
		ORDER BY current_quantity`)
	if err != nil {
		return nil, classify(fmt.Errorf("query low stock items: %w", err))
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
		return nil, classify(fmt.Errorf("iterate low stock items: %w", err))
	}
	return items, nil
}

// NextEvent returns the soonest event strictly after now.
func (r *ReportRepository) NextEvent(ctx context.Context, now time.Time) (*models.Event, error) {
	row := r.db.DB().QueryRowContext(ctx, `
		SELECT `+eventColumns+` FROM events
		WHERE date > $1
		ORDER BY date
		LIMIT 1`, now)
	event, err := scanEvent(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ledgerdomain.ErrEventNotFound
		}
		return nil, classify(fmt.Errorf("query next event: %w", err))
	}
	return event, nil
}
