package main

import (
	"context"
	"encoding/json"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ThreeDotsLabs/watermill/message"

	"github.com/ghuser/stockpilot/pkg/app"
	"github.com/ghuser/stockpilot/pkg/cache"
	"github.com/ghuser/stockpilot/pkg/config"
	"github.com/ghuser/stockpilot/pkg/database"
	"github.com/ghuser/stockpilot/pkg/events"
	"github.com/ghuser/stockpilot/pkg/logger"
	"github.com/ghuser/stockpilot/pkg/telemetry"
	ledgerEvents "github.com/ghuser/stockpilot/services/ledger/domain/events"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	if err := config.ValidateForProduction(cfg); err != nil {
		slog.Error("production config validation failed", "error", err)
		os.Exit(1)
	}

	log := logger.New(cfg)

	ctx := context.Background()

	otelShutdown, _, err := telemetry.Setup(ctx, cfg)
	if err != nil {
		log.Error("failed to setup otel", "error", err)
		os.Exit(1)
	}
	defer otelShutdown(ctx) //nolint:errcheck

	if err := telemetry.SetupSentry(cfg); err != nil {
		log.Warn("failed to setup sentry, continuing without crash reporting", "error", err)
	}
	defer telemetry.SentryFlush()

	pool, err := database.NewPool(ctx, cfg.DatabaseURL, log)
	if err != nil {
		log.Error("failed to connect to database", "error", err)
		os.Exit(1) //nolint:gocritic
	}
	defer pool.Close()
	log.Info("database pool connected")

	eventBus, err := events.NewEventBus(cfg, log)
	if err != nil {
		log.Error("failed to setup event bus", "error", err)
		os.Exit(1) //nolint:gocritic
	}
	defer eventBus.Close() //nolint:errcheck

	redisClient, err := cache.NewRedisClient(cfg)
	if err != nil {
		log.Error("failed to connect to redis", "error", err)
		os.Exit(1) //nolint:gocritic
	}
	defer redisClient.Close() //nolint:errcheck
	log.Info("redis connected")

	application := &app.Application{
		Config:   cfg,
		Db:       pool,
		Logger:   log,
		EventBus: eventBus,
		Redis:    redisClient,
	}

	if err := registerSubscribers(ctx, application); err != nil {
		log.Error("failed to register subscribers", "error", err)
		os.Exit(1) //nolint:gocritic
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down worker...")

	// EventBus.Close() (via defer) waits up to 30s for in-flight handlers.
	log.Info("worker stopped")
}

// registerSubscribers wires all ledger event handlers.
func registerSubscribers(ctx context.Context, a *app.Application) error {
	alerts := cache.NewLowStockAlerts(a.Redis)
	itemCache := cache.NewItemCache(a.Redis)

	topics := map[string]func(context.Context, *message.Message) error{
		ledgerEvents.TopicSaleRecorded:   handleSaleRecorded(a, alerts, itemCache),
		ledgerEvents.TopicStockAllocated: handleStockAllocated(a, alerts, itemCache),
	}

	for topic, handler := range topics {
		errCh, err := a.EventBus.Subscribe(ctx, topic, handler)
		if err != nil {
			return err
		}

		// Drain subscriber errors in background so the channel never blocks.
		go func(topic string, errCh <-chan error) {
			for err := range errCh {
				a.Logger.ErrorContext(ctx, "subscriber error", "topic", topic, "error", err)
			}
		}(topic, errCh)
	}

	a.Logger.Info("event subscribers registered", "topics", []string{
		ledgerEvents.TopicSaleRecorded,
		ledgerEvents.TopicStockAllocated,
	})
	return nil
}

// handleSaleRecorded maintains the low-stock alert set from sale events.
// Handlers must be idempotent: EventBus retries up to 3x on failure, and the
// payload carries the post-sale quantity so replays converge on the same state.
func handleSaleRecorded(a *app.Application, alerts *cache.LowStockAlerts, itemCache *cache.ItemCache) func(context.Context, *message.Message) error {
	return func(ctx context.Context, msg *message.Message) error {
		var evt ledgerEvents.SaleRecordedEvent
		if err := json.Unmarshal(msg.Payload, &evt); err != nil {
			return err
		}

		// Event sales never touch central stock, so they cannot change the
		// low-stock state.
		if evt.SoldAtEventID != nil {
			return nil
		}

		if err := itemCache.Delete(ctx, evt.ItemID); err != nil {
			a.Logger.WarnContext(ctx, "cache invalidation failed", "item_id", evt.ItemID, "error", err)
		}

		return reconcileAlert(ctx, a, alerts, cache.LowStockAlert{
			ItemID:            evt.ItemID,
			ItemName:          evt.ItemName,
			CurrentQuantity:   evt.CurrentQuantity,
			LowStockThreshold: evt.LowStockThreshold,
			RaisedAt:          time.Now().UTC(),
		})
	}
}

// handleStockAllocated reacts to allocations, which also drain central stock.
func handleStockAllocated(a *app.Application, alerts *cache.LowStockAlerts, itemCache *cache.ItemCache) func(context.Context, *message.Message) error {
	return func(ctx context.Context, msg *message.Message) error {
		var evt ledgerEvents.StockAllocatedEvent
		if err := json.Unmarshal(msg.Payload, &evt); err != nil {
			return err
		}

		if err := itemCache.Delete(ctx, evt.ItemID); err != nil {
			a.Logger.WarnContext(ctx, "cache invalidation failed", "item_id", evt.ItemID, "error", err)
		}

		return reconcileAlert(ctx, a, alerts, cache.LowStockAlert{
			ItemID:            evt.ItemID,
			ItemName:          evt.ItemName,
			CurrentQuantity:   evt.CurrentQuantity,
			LowStockThreshold: evt.LowStockThreshold,
			RaisedAt:          time.Now().UTC(),
		})
	}
}

// reconcileAlert raises the item's alert when its central stock sits below the
// threshold and clears it otherwise.
func reconcileAlert(ctx context.Context, a *app.Application, alerts *cache.LowStockAlerts, alert cache.LowStockAlert) error {
	if alert.CurrentQuantity < alert.LowStockThreshold {
		if err := alerts.Raise(ctx, alert); err != nil {
			return err
		}
		a.Logger.InfoContext(ctx, "low stock alert raised",
			"item_id", alert.ItemID,
			"item_name", alert.ItemName,
			"current_quantity", alert.CurrentQuantity,
			"threshold", alert.LowStockThreshold,
		)
		return nil
	}
	return alerts.Clear(ctx, alert.ItemID)
}
