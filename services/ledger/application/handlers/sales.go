package handlers

import (
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/ghuser/stockpilot/pkg/errhttp"
	"github.com/ghuser/stockpilot/pkg/httpx"
	pkgvalidator "github.com/ghuser/stockpilot/pkg/validator"
	appsvcs "github.com/ghuser/stockpilot/services/ledger/application/services"
)

// RecordSaleRequest is the request body for POST /api/sales. EventID set
// means the sale debits the event's allocated pool instead of central stock.
// SaleDate back-dates the sale's calendar date; the time of day is always
// taken from the server clock.
type RecordSaleRequest struct {
	ItemID   uuid.UUID  `json:"item_id" validate:"required"`
	Quantity int        `json:"quantity" validate:"required,gt=0"`
	SaleDate *time.Time `json:"sale_date,omitempty"`
	EventID  *uuid.UUID `json:"event_id,omitempty"`
}

// PostSaleHandler handles POST /api/sales requests.
type PostSaleHandler struct {
	svc *appsvcs.Services
}

// NewPostSaleHandler returns a PostSaleHandler backed by the given services.
func NewPostSaleHandler(svc *appsvcs.Services) *PostSaleHandler {
	return &PostSaleHandler{svc: svc}
}

// Execute records one sale.
func (h *PostSaleHandler) Execute(w http.ResponseWriter, r *http.Request) {
	req, ok := pkgvalidator.ValidateRequest[RecordSaleRequest](w, r)
	if !ok {
		return
	}

	sale, err := h.svc.Ledger.RecordSale(r.Context(), req.ItemID, req.Quantity, req.SaleDate, req.EventID)
	if err != nil {
		errhttp.WriteError(w, err)
		return
	}
	httpx.JSON(w, http.StatusCreated, toSaleResponse(sale))
}

// ListSalesHandler handles GET /api/sales requests.
type ListSalesHandler struct {
	svc *appsvcs.Services
}

// NewListSalesHandler returns a ListSalesHandler backed by the given services.
func NewListSalesHandler(svc *appsvcs.Services) *ListSalesHandler {
	return &ListSalesHandler{svc: svc}
}

// Execute lists the full sale history, newest first.
func (h *ListSalesHandler) Execute(w http.ResponseWriter, r *http.Request) {
	sales, err := h.svc.Ledger.ListSales(r.Context())
	if err != nil {
		errhttp.WriteError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, toSaleResponses(sales))
}

// ListEventSalesHandler handles GET /api/events/{id}/sales requests.
type ListEventSalesHandler struct {
	svc *appsvcs.Services
}

// NewListEventSalesHandler returns a ListEventSalesHandler backed by the given services.
func NewListEventSalesHandler(svc *appsvcs.Services) *ListEventSalesHandler {
	return &ListEventSalesHandler{svc: svc}
}

// Execute lists the sales recorded under one event, newest first.
func (h *ListEventSalesHandler) Execute(w http.ResponseWriter, r *http.Request) {
	eventID, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	sales, err := h.svc.Ledger.ListEventSales(r.Context(), eventID)
	if err != nil {
		errhttp.WriteError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, toSaleResponses(sales))
}
