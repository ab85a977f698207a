package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
)

const lowStockAlertsKey = "lowstock:alerts"

// LowStockAlert is the payload stored per item when its central stock drops
// below the configured threshold.
type LowStockAlert struct {
	ItemID            uuid.UUID `json:"item_id"`
	ItemName          string    `json:"item_name"`
	CurrentQuantity   int       `json:"current_quantity"`
	LowStockThreshold int       `json:"low_stock_threshold"`
	RaisedAt          time.Time `json:"raised_at"`
}

// LowStockAlerts keeps the set of currently-low items in a single Redis hash,
// one field per item. The worker raises and clears entries as sale events
// arrive; there is at most one alert per item at a time.
type LowStockAlerts struct {
	client *RedisClient
}

// NewLowStockAlerts returns a LowStockAlerts store backed by the given client.
func NewLowStockAlerts(r *RedisClient) *LowStockAlerts {
	return &LowStockAlerts{client: r}
}

// Raise records (or refreshes) the alert for one item.
func (a *LowStockAlerts) Raise(ctx context.Context, alert LowStockAlert) error {
	data, err := json.Marshal(alert)
	if err != nil {
		return fmt.Errorf("marshal alert: %w", err)
	}
	if err := a.client.Client().HSet(ctx, lowStockAlertsKey, alert.ItemID.String(), data).Err(); err != nil {
		return fmt.Errorf("raise alert: %w", err)
	}
	return nil
}

// Clear removes the alert for one item, if any.
func (a *LowStockAlerts) Clear(ctx context.Context, itemID uuid.UUID) error {
	if err := a.client.Client().HDel(ctx, lowStockAlertsKey, itemID.String()).Err(); err != nil {
		return fmt.Errorf("clear alert: %w", err)
	}
	return nil
}

// List returns all currently-raised alerts.
func (a *LowStockAlerts) List(ctx context.Context) ([]LowStockAlert, error) {
	vals, err := a.client.Client().HGetAll(ctx, lowStockAlertsKey).Result()
	if err != nil {
		return nil, fmt.Errorf("list alerts: %w", err)
	}
	alerts := make([]LowStockAlert, 0, len(vals))
	for _, raw := range vals {
		var alert LowStockAlert
		if err := json.Unmarshal([]byte(raw), &alert); err != nil {
			return nil, fmt.Errorf("unmarshal alert: %w", err)
		}
		alerts = append(alerts, alert)
	}
	return alerts, nil
}
