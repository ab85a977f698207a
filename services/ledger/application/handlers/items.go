package handlers

import (
	"net/http"

	"github.com/shopspring/decimal"

	"github.com/ghuser/stockpilot/pkg/errhttp"
	"github.com/ghuser/stockpilot/pkg/httpx"
	pkgvalidator "github.com/ghuser/stockpilot/pkg/validator"
	appsvcs "github.com/ghuser/stockpilot/services/ledger/application/services"
)

// CreateItemRequest is the request body for POST /api/items.
type CreateItemRequest struct {
	Name              string          `json:"name" validate:"required,min=1,max=255"`
	Description       string          `json:"description" validate:"max=2000"`
	UnitPrice         decimal.Decimal `json:"unit_price"`
	InitialQuantity   int             `json:"initial_quantity" validate:"gte=0"`
	LowStockThreshold int             `json:"low_stock_threshold" validate:"gte=0"`
}

// UpdateItemRequest is the request body for PUT /api/items/{id}.
type UpdateItemRequest struct {
	Name              string          `json:"name" validate:"required,min=1,max=255"`
	Description       string          `json:"description" validate:"max=2000"`
	UnitPrice         decimal.Decimal `json:"unit_price"`
	CurrentQuantity   int             `json:"current_quantity" validate:"gte=0"`
	LowStockThreshold int             `json:"low_stock_threshold" validate:"gte=0"`
}

// PostItemHandler handles POST /api/items requests.
type PostItemHandler struct {
	svc *appsvcs.Services
}

// NewPostItemHandler returns a PostItemHandler backed by the given services.
func NewPostItemHandler(svc *appsvcs.Services) *PostItemHandler {
	return &PostItemHandler{svc: svc}
}

// Execute creates a new inventory item.
func (h *PostItemHandler) Execute(w http.ResponseWriter, r *http.Request) {
	req, ok := pkgvalidator.ValidateRequest[CreateItemRequest](w, r)
	if !ok {
		return
	}

	item, err := h.svc.Item.Create(r.Context(), req.Name, req.Description, req.UnitPrice, req.InitialQuantity, req.LowStockThreshold)
	if err != nil {
		errhttp.WriteError(w, err)
		return
	}
	httpx.JSON(w, http.StatusCreated, toItemResponse(item))
}

// GetItemHandler handles GET /api/items/{id} requests.
type GetItemHandler struct {
	svc *appsvcs.Services
}

// NewGetItemHandler returns a GetItemHandler backed by the given services.
func NewGetItemHandler(svc *appsvcs.Services) *GetItemHandler {
	return &GetItemHandler{svc: svc}
}

// Execute fetches one item.
func (h *GetItemHandler) Execute(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	item, err := h.svc.Item.GetByID(r.Context(), id)
	if err != nil {
		errhttp.WriteError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, toItemResponse(item))
}

// ListItemsHandler handles GET /api/items requests.
type ListItemsHandler struct {
	svc *appsvcs.Services
}

// NewListItemsHandler returns a ListItemsHandler backed by the given services.
func NewListItemsHandler(svc *appsvcs.Services) *ListItemsHandler {
	return &ListItemsHandler{svc: svc}
}

// Execute lists all items.
func (h *ListItemsHandler) Execute(w http.ResponseWriter, r *http.Request) {
	items, err := h.svc.Item.List(r.Context())
	if err != nil {
		errhttp.WriteError(w, err)
		return
	}

	out := make([]ItemResponse, 0, len(items))
	for _, item := range items {
		out = append(out, toItemResponse(item))
	}
	httpx.JSON(w, http.StatusOK, out)
}

// PutItemHandler handles PUT /api/items/{id} requests.
type PutItemHandler struct {
	svc *appsvcs.Services
}

// NewPutItemHandler returns a PutItemHandler backed by the given services.
func NewPutItemHandler(svc *appsvcs.Services) *PutItemHandler {
	return &PutItemHandler{svc: svc}
}

// Execute applies an administrator edit to an item.
func (h *PutItemHandler) Execute(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	req, ok := pkgvalidator.ValidateRequest[UpdateItemRequest](w, r)
	if !ok {
		return
	}

	item, err := h.svc.Item.Update(r.Context(), id, appsvcs.UpdateItemInput{
		Name:              req.Name,
		Description:       req.Description,
		UnitPrice:         req.UnitPrice,
		CurrentQuantity:   req.CurrentQuantity,
		LowStockThreshold: req.LowStockThreshold,
	})
	if err != nil {
		errhttp.WriteError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, toItemResponse(item))
}

// DeleteItemHandler handles DELETE /api/items/{id} requests.
type DeleteItemHandler struct {
	svc *appsvcs.Services
}

// NewDeleteItemHandler returns a DeleteItemHandler backed by the given services.
func NewDeleteItemHandler(svc *appsvcs.Services) *DeleteItemHandler {
	return &DeleteItemHandler{svc: svc}
}

// Execute deletes an item. Past sales keep referencing the deleted item's ID.
func (h *DeleteItemHandler) Execute(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	if err := h.svc.Item.Delete(r.Context(), id); err != nil {
		errhttp.WriteError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
