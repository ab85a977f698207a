package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	appsvcs "github.com/ghuser/stockpilot/services/ledger/application/services"
	"github.com/ghuser/stockpilot/services/ledger/domain"
	"github.com/ghuser/stockpilot/services/ledger/domain/models"
	"github.com/ghuser/stockpilot/services/ledger/domain/repositories"
)

type fakeReportRepo struct {
	totals    repositories.SalesTotals
	revenue   []repositories.RevenuePoint
	recent    []*models.Sale
	lowStock  []*models.Item
	nextEvent *models.Event
}

func (f *fakeReportRepo) Totals(_ context.Context) (*repositories.SalesTotals, error) {
	return &f.totals, nil
}

func (f *fakeReportRepo) RevenueByDay(_ context.Context, _ time.Time) ([]repositories.RevenuePoint, error) {
	return f.revenue, nil
}

func (f *fakeReportRepo) RecentSales(_ context.Context, limit int) ([]*models.Sale, error) {
	if len(f.recent) > limit {
		return f.recent[:limit], nil
	}
	return f.recent, nil
}

func (f *fakeReportRepo) LowStockItems(_ context.Context) ([]*models.Item, error) {
	return f.lowStock, nil
}

func (f *fakeReportRepo) NextEvent(_ context.Context, _ time.Time) (*models.Event, error) {
	if f.nextEvent == nil {
		return nil, domain.ErrEventNotFound
	}
	return f.nextEvent, nil
}

func TestReportService_Dashboard(t *testing.T) {
	event, _ := models.NewEvent("Winter Market", "Main Square", time.Now().Add(48*time.Hour), "sam")
	repo := &fakeReportRepo{
		totals: repositories.SalesTotals{
			TotalRevenue:   decimal.RequireFromString("120.50"),
			TotalUnitsSold: 42,
			ItemCount:      3,
		},
		nextEvent: event,
	}

	dash, err := appsvcs.NewReportService(repo).Dashboard(context.Background())
	if err != nil {
		t.Fatalf("Dashboard: %v", err)
	}

	if !dash.Totals.TotalRevenue.Equal(decimal.RequireFromString("120.50")) {
		t.Errorf("revenue: got %s", dash.Totals.TotalRevenue)
	}
	if dash.NextEvent == nil || dash.NextEvent.Name != "Winter Market" {
		t.Errorf("next event: got %+v", dash.NextEvent)
	}
}

func TestReportService_Dashboard_noUpcomingEvent(t *testing.T) {
	repo := &fakeReportRepo{}

	dash, err := appsvcs.NewReportService(repo).Dashboard(context.Background())
	if err != nil {
		t.Fatalf("Dashboard: %v", err)
	}
	if dash.NextEvent != nil {
		t.Errorf("expected nil next event, got %+v", dash.NextEvent)
	}
}
