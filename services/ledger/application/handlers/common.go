package handlers

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/ghuser/stockpilot/pkg/httpx"
	"github.com/ghuser/stockpilot/services/ledger/domain/models"
)

// ErrorResponse is returned on all error responses.
type ErrorResponse struct {
	Error string `json:"error"`
}

// ItemResponse is the JSON shape of an inventory item.
type ItemResponse struct {
	ID                uuid.UUID       `json:"id"`
	Name              string          `json:"name"`
	Description       string          `json:"description"`
	UnitPrice         decimal.Decimal `json:"unit_price"`
	InitialQuantity   int             `json:"initial_quantity"`
	CurrentQuantity   int             `json:"current_quantity"`
	LowStockThreshold int             `json:"low_stock_threshold"`
	LowStock          bool            `json:"low_stock"`
	CreatedAt         time.Time       `json:"created_at"`
	UpdatedAt         time.Time       `json:"updated_at"`
}

// EventResponse is the JSON shape of an event.
type EventResponse struct {
	ID            uuid.UUID `json:"id"`
	Name          string    `json:"name"`
	Location      string    `json:"location"`
	Date          time.Time `json:"date"`
	Administrator string    `json:"administrator"`
	CreatedAt     time.Time `json:"created_at"`
}

// SaleResponse is the JSON shape of a recorded sale.
type SaleResponse struct {
	ID         uuid.UUID       `json:"id"`
	ItemID     uuid.UUID       `json:"item_id"`
	Quantity   int             `json:"quantity"`
	SalePrice  decimal.Decimal `json:"sale_price"`
	OccurredAt time.Time       `json:"occurred_at"`
	EventID    *uuid.UUID      `json:"event_id,omitempty"`
}

func toItemResponse(item *models.Item) ItemResponse {
	return ItemResponse{
		ID:                item.ID,
		Name:              item.Name.String(),
		Description:       item.Description,
		UnitPrice:         item.UnitPrice,
		InitialQuantity:   item.InitialQuantity,
		CurrentQuantity:   item.CurrentQuantity,
		LowStockThreshold: item.LowStockThreshold,
		LowStock:          item.IsLowStock(),
		CreatedAt:         item.CreatedAt,
		UpdatedAt:         item.UpdatedAt,
	}
}

func toEventResponse(event *models.Event) EventResponse {
	return EventResponse{
		ID:            event.ID,
		Name:          event.Name,
		Location:      event.Location,
		Date:          event.Date,
		Administrator: event.Administrator,
		CreatedAt:     event.CreatedAt,
	}
}

func toSaleResponse(sale *models.Sale) SaleResponse {
	return SaleResponse{
		ID:         sale.ID,
		ItemID:     sale.ItemID,
		Quantity:   sale.Quantity,
		SalePrice:  sale.SalePrice,
		OccurredAt: sale.OccurredAt,
		EventID:    sale.EventID,
	}
}

func toSaleResponses(sales []*models.Sale) []SaleResponse {
	out := make([]SaleResponse, 0, len(sales))
	for _, sale := range sales {
		out = append(out, toSaleResponse(sale))
	}
	return out
}

// pathID parses the {id} URL parameter. Writes a 400 and returns false when
// the parameter is not a UUID.
func pathID(w http.ResponseWriter, r *http.Request, param string) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, param))
	if err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "invalid "+param)
		return uuid.Nil, false
	}
	return id, true
}
