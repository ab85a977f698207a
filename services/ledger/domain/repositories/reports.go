package repositories

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/ghuser/stockpilot/services/ledger/domain/models"
)

// SalesTotals aggregates the whole sale history for the dashboard.
type SalesTotals struct {
	TotalRevenue   decimal.Decimal
	TotalUnitsSold int
	ItemCount      int
}

// RevenuePoint is one day's revenue for the dashboard chart.
type RevenuePoint struct {
	Day     time.Time
	Revenue decimal.Decimal
}

// ReportRepository serves the read-only aggregations behind the dashboard.
type ReportRepository interface {
	Totals(ctx context.Context) (*SalesTotals, error)
	RevenueByDay(ctx context.Context, since time.Time) ([]RevenuePoint, error)
	RecentSales(ctx context.Context, limit int) ([]*models.Sale, error)
	LowStockItems(ctx context.Context) ([]*models.Item, error)

	// NextEvent returns the soonest event strictly after now, or
	// ErrEventNotFound when none is scheduled.
	NextEvent(ctx context.Context, now time.Time) (*models.Event, error)
}
