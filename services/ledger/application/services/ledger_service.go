package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	pkgcache "github.com/ghuser/stockpilot/pkg/cache"
	ledgerdomain "github.com/ghuser/stockpilot/services/ledger/domain"
	"github.com/ghuser/stockpilot/services/ledger/domain/models"
	"github.com/ghuser/stockpilot/services/ledger/domain/repositories"
)

// LedgerService fronts the stock ledger: recording sales and allocating stock
// to events. All quantity math and atomicity live in the Ledger repository;
// this layer adds input validation, cache invalidation, and read helpers.
type LedgerService struct {
	ledger repositories.Ledger
	sales  repositories.SaleRepository
	cache  *pkgcache.ItemCache
}

// NewLedgerService returns a LedgerService wired with the given repositories
// and cache.
func NewLedgerService(ledger repositories.Ledger, sales repositories.SaleRepository, itemCache *pkgcache.ItemCache) *LedgerService {
	return &LedgerService{ledger: ledger, sales: sales, cache: itemCache}
}

// Allocation pairs an EventStock record with its live remaining pool so
// callers get both the allocated total and what is still sellable.
type Allocation struct {
	Stock     *models.EventStock
	Remaining int
}

// RecordSale records one sale, direct or under an event. SaleDate, when set,
// back-dates the sale's calendar date. The item's cache entry is dropped on
// success because a direct sale changes central stock.
func (s *LedgerService) RecordSale(ctx context.Context, itemID uuid.UUID, quantity int, saleDate *time.Time, eventID *uuid.UUID) (*models.Sale, error) {
	if quantity <= 0 {
		return nil, ledgerdomain.ErrInvalidQuantity
	}

	sale, err := s.ledger.RecordSale(ctx, repositories.RecordSaleInput{
		ItemID:   itemID,
		Quantity: quantity,
		SaleDate: saleDate,
		EventID:  eventID,
	})
	if err != nil {
		return nil, fmt.Errorf("record sale: %w", err)
	}

	if eventID == nil {
		s.invalidateItem(itemID)
	}
	return sale, nil
}

// AllocateStock moves quantity from central stock into the (event, item)
// allocation. Central stock shrinks, so the item's cache entry is dropped.
func (s *LedgerService) AllocateStock(ctx context.Context, eventID, itemID uuid.UUID, quantity int) (*models.EventStock, error) {
	if quantity <= 0 {
		return nil, ledgerdomain.ErrInvalidQuantity
	}

	stock, err := s.ledger.AllocateStock(ctx, eventID, itemID, quantity)
	if err != nil {
		return nil, fmt.Errorf("allocate stock: %w", err)
	}

	s.invalidateItem(itemID)
	return stock, nil
}

// ListAllocations returns the event's allocations, each with its remaining
// pool recomputed from the sale history.
func (s *LedgerService) ListAllocations(ctx context.Context, eventID uuid.UUID) ([]Allocation, error) {
	stocks, err := s.ledger.ListAllocations(ctx, eventID)
	if err != nil {
		return nil, fmt.Errorf("list allocations: %w", err)
	}

	allocations := make([]Allocation, 0, len(stocks))
	for _, stock := range stocks {
		remaining, err := s.ledger.RemainingEventStock(ctx, eventID, stock.ItemID)
		if err != nil {
			return nil, fmt.Errorf("remaining stock for item %s: %w", stock.ItemID, err)
		}
		allocations = append(allocations, Allocation{Stock: stock, Remaining: remaining})
	}
	return allocations, nil
}

// RemainingEventStock recomputes allocated minus sold for one pair.
func (s *LedgerService) RemainingEventStock(ctx context.Context, eventID, itemID uuid.UUID) (int, error) {
	remaining, err := s.ledger.RemainingEventStock(ctx, eventID, itemID)
	if err != nil {
		return 0, fmt.Errorf("remaining stock: %w", err)
	}
	return remaining, nil
}

// ListSales returns the full sale history, newest first.
func (s *LedgerService) ListSales(ctx context.Context) ([]*models.Sale, error) {
	sales, err := s.sales.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list sales: %w", err)
	}
	return sales, nil
}

// ListEventSales returns the sales recorded under one event, newest first.
func (s *LedgerService) ListEventSales(ctx context.Context, eventID uuid.UUID) ([]*models.Sale, error) {
	sales, err := s.sales.ListByEvent(ctx, eventID)
	if err != nil {
		return nil, fmt.Errorf("list event sales: %w", err)
	}
	return sales, nil
}

func (s *LedgerService) invalidateItem(id uuid.UUID) {
	if s.cache != nil {
		_ = s.cache.Delete(context.Background(), id)
	}
}
