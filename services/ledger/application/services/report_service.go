package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	ledgerdomain "github.com/ghuser/stockpilot/services/ledger/domain"
	"github.com/ghuser/stockpilot/services/ledger/domain/models"
	"github.com/ghuser/stockpilot/services/ledger/domain/repositories"
)

const (
	revenueWindowDays = 7
	recentSalesLimit  = 10
)

// Dashboard aggregates the figures shown on the landing page.
type Dashboard struct {
	Totals       *repositories.SalesTotals
	RevenueByDay []repositories.RevenuePoint
	RecentSales  []*models.Sale
	LowStock     []*models.Item
	NextEvent    *models.Event
}

// ReportService serves the read-only dashboard aggregation.
type ReportService struct {
	repo repositories.ReportRepository
}

// NewReportService returns a ReportService wired with the given repository.
func NewReportService(repo repositories.ReportRepository) *ReportService {
	return &ReportService{repo: repo}
}

// Dashboard assembles totals, the last week's revenue curve, the most recent
// sales, items under their low-stock threshold, and the next scheduled event.
// NextEvent is nil when nothing is scheduled.
func (s *ReportService) Dashboard(ctx context.Context) (*Dashboard, error) {
	now := time.Now().UTC()

	totals, err := s.repo.Totals(ctx)
	if err != nil {
		return nil, fmt.Errorf("sales totals: %w", err)
	}

	since := now.AddDate(0, 0, -revenueWindowDays)
	revenue, err := s.repo.RevenueByDay(ctx, since)
	if err != nil {
		return nil, fmt.Errorf("revenue by day: %w", err)
	}

	recent, err := s.repo.RecentSales(ctx, recentSalesLimit)
	if err != nil {
		return nil, fmt.Errorf("recent sales: %w", err)
	}

	lowStock, err := s.repo.LowStockItems(ctx)
	if err != nil {
		return nil, fmt.Errorf("low stock items: %w", err)
	}

	next, err := s.repo.NextEvent(ctx, now)
	if err != nil && !errors.Is(err, ledgerdomain.ErrEventNotFound) {
		return nil, fmt.Errorf("next event: %w", err)
	}

	return &Dashboard{
		Totals:       totals,
		RevenueByDay: revenue,
		RecentSales:  recent,
		LowStock:     lowStock,
		NextEvent:    next,
	}, nil
}
