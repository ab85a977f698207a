package handlers

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/ghuser/stockpilot/pkg/errhttp"
	"github.com/ghuser/stockpilot/pkg/httpx"
	pkgvalidator "github.com/ghuser/stockpilot/pkg/validator"
	appsvcs "github.com/ghuser/stockpilot/services/ledger/application/services"
)

// AllocateStockRequest is the request body for POST /api/events/{id}/allocations.
type AllocateStockRequest struct {
	ItemID   uuid.UUID `json:"item_id" validate:"required"`
	Quantity int       `json:"quantity" validate:"required,gt=0"`
}

// AllocationResponse is the JSON shape of one event-item allocation.
type AllocationResponse struct {
	ID                string    `json:"id"`
	EventID           uuid.UUID `json:"event_id"`
	ItemID            uuid.UUID `json:"item_id"`
	AllocatedQuantity int       `json:"allocated_quantity"`
	Remaining         int       `json:"remaining"`
}

// PostAllocationHandler handles POST /api/events/{id}/allocations requests.
type PostAllocationHandler struct {
	svc *appsvcs.Services
}

// NewPostAllocationHandler returns a PostAllocationHandler backed by the given services.
func NewPostAllocationHandler(svc *appsvcs.Services) *PostAllocationHandler {
	return &PostAllocationHandler{svc: svc}
}

// Execute moves stock from the central pool into the event's allocation.
func (h *PostAllocationHandler) Execute(w http.ResponseWriter, r *http.Request) {
	eventID, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	req, ok := pkgvalidator.ValidateRequest[AllocateStockRequest](w, r)
	if !ok {
		return
	}

	stock, err := h.svc.Ledger.AllocateStock(r.Context(), eventID, req.ItemID, req.Quantity)
	if err != nil {
		errhttp.WriteError(w, err)
		return
	}

	remaining, err := h.svc.Ledger.RemainingEventStock(r.Context(), eventID, req.ItemID)
	if err != nil {
		errhttp.WriteError(w, err)
		return
	}

	httpx.JSON(w, http.StatusCreated, AllocationResponse{
		ID:                stock.ID,
		EventID:           stock.EventID,
		ItemID:            stock.ItemID,
		AllocatedQuantity: stock.AllocatedQuantity,
		Remaining:         remaining,
	})
}

// ListAllocationsHandler handles GET /api/events/{id}/allocations requests.
type ListAllocationsHandler struct {
	svc *appsvcs.Services
}

// NewListAllocationsHandler returns a ListAllocationsHandler backed by the given services.
func NewListAllocationsHandler(svc *appsvcs.Services) *ListAllocationsHandler {
	return &ListAllocationsHandler{svc: svc}
}

// Execute lists the event's allocations with their remaining pools.
func (h *ListAllocationsHandler) Execute(w http.ResponseWriter, r *http.Request) {
	eventID, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	allocations, err := h.svc.Ledger.ListAllocations(r.Context(), eventID)
	if err != nil {
		errhttp.WriteError(w, err)
		return
	}

	out := make([]AllocationResponse, 0, len(allocations))
	for _, a := range allocations {
		out = append(out, AllocationResponse{
			ID:                a.Stock.ID,
			EventID:           a.Stock.EventID,
			ItemID:            a.Stock.ItemID,
			AllocatedQuantity: a.Stock.AllocatedQuantity,
			Remaining:         a.Remaining,
		})
	}
	httpx.JSON(w, http.StatusOK, out)
}
