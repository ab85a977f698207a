package services

import (
	"github.com/ghuser/stockpilot/pkg/app"
	"github.com/ghuser/stockpilot/pkg/cache"
	"github.com/ghuser/stockpilot/services/ledger/infrastructure/persistence/postgres"
)

// Services is the application-layer service container for the ledger context.
// It wires domain services with their infrastructure implementations.
type Services struct {
	Item   *ItemService
	Event  *EventService
	Ledger *LedgerService
	Report *ReportService
}

// New wires all ledger application services with infrastructure from the
// Application container.
func New(a *app.Application) *Services {
	itemRepo := postgres.NewItemRepository(a.Db)
	eventRepo := postgres.NewEventRepository(a.Db)
	saleRepo := postgres.NewSaleRepository(a.Db)
	ledgerRepo := postgres.NewLedgerRepository(a.Db, a.EventBus)
	reportRepo := postgres.NewReportRepository(a.Db)

	var itemCache *cache.ItemCache
	if a.Redis != nil {
		itemCache = cache.NewItemCache(a.Redis)
	}

	return &Services{
		Item:   NewItemService(itemRepo, itemCache),
		Event:  NewEventService(eventRepo),
		Ledger: NewLedgerService(ledgerRepo, saleRepo, itemCache),
		Report: NewReportService(reportRepo),
	}
}
