package handlers

import (
	"net/http"
	"time"

	"github.com/shopspring/decimal"

	"github.com/ghuser/stockpilot/pkg/errhttp"
	"github.com/ghuser/stockpilot/pkg/httpx"
	appsvcs "github.com/ghuser/stockpilot/services/ledger/application/services"
)

// DashboardResponse aggregates the landing page figures.
type DashboardResponse struct {
	TotalRevenue   decimal.Decimal    `json:"total_revenue"`
	TotalUnitsSold int                `json:"total_units_sold"`
	ItemCount      int                `json:"item_count"`
	RevenueByDay   []RevenuePointJSON `json:"revenue_by_day"`
	RecentSales    []SaleResponse     `json:"recent_sales"`
	LowStockItems  []ItemResponse     `json:"low_stock_items"`
	NextEvent      *EventResponse     `json:"next_event,omitempty"`
}

// RevenuePointJSON is one day's revenue in the dashboard chart.
type RevenuePointJSON struct {
	Day     time.Time       `json:"day"`
	Revenue decimal.Decimal `json:"revenue"`
}

// DashboardHandler handles GET /api/dashboard requests.
type DashboardHandler struct {
	svc *appsvcs.Services
}

// NewDashboardHandler returns a DashboardHandler backed by the given services.
func NewDashboardHandler(svc *appsvcs.Services) *DashboardHandler {
	return &DashboardHandler{svc: svc}
}

// Execute assembles the dashboard aggregation.
func (h *DashboardHandler) Execute(w http.ResponseWriter, r *http.Request) {
	dash, err := h.svc.Report.Dashboard(r.Context())
	if err != nil {
		errhttp.WriteError(w, err)
		return
	}

	resp := DashboardResponse{
		TotalRevenue:   dash.Totals.TotalRevenue,
		TotalUnitsSold: dash.Totals.TotalUnitsSold,
		ItemCount:      dash.Totals.ItemCount,
		RevenueByDay:   make([]RevenuePointJSON, 0, len(dash.RevenueByDay)),
		RecentSales:    toSaleResponses(dash.RecentSales),
		LowStockItems:  make([]ItemResponse, 0, len(dash.LowStock)),
	}
	for _, p := range dash.RevenueByDay {
		resp.RevenueByDay = append(resp.RevenueByDay, RevenuePointJSON{Day: p.Day, Revenue: p.Revenue})
	}
	for _, item := range dash.LowStock {
		resp.LowStockItems = append(resp.LowStockItems, toItemResponse(item))
	}
	if dash.NextEvent != nil {
		event := toEventResponse(dash.NextEvent)
		resp.NextEvent = &event
	}
	httpx.JSON(w, http.StatusOK, resp)
}
