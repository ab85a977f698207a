package app

import (
	"github.com/gorilla/sessions"

	"github.com/ghuser/stockpilot/pkg/cache"
	"github.com/ghuser/stockpilot/pkg/config"
	"github.com/ghuser/stockpilot/pkg/database"
	"github.com/ghuser/stockpilot/pkg/events"
	"github.com/ghuser/stockpilot/pkg/logger"
)

// Application holds shared infrastructure dependencies for all services.
// Pass to every service's route registration during server initialization.
//
// Logging: app.Logger is backed by a trace-aware handler — use slog's context
// methods and trace_id, span_id, and request_id are injected automatically:
//
//	app.Logger.InfoContext(ctx, "sale recorded", "sale_id", id)
//	app.Logger.ErrorContext(ctx, "failed to allocate", "error", err)
//
// Use app.Logger.Info/Error (no context) only for startup and shutdown messages.
type Application struct {
	Config       *config.Config
	Db           *database.Database
	Logger       logger.Logger
	EventBus     *events.EventBus
	Redis        *cache.RedisClient
	SessionStore sessions.Store // Redis-backed session store; nil in worker process
}
