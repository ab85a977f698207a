package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	pkgcache "github.com/ghuser/stockpilot/pkg/cache"
	ledgerdomain "github.com/ghuser/stockpilot/services/ledger/domain"
	"github.com/ghuser/stockpilot/services/ledger/domain/models"
	"github.com/ghuser/stockpilot/services/ledger/domain/repositories"
)

// ItemService orchestrates CRUD on inventory items. Quantity-affecting sales
// and allocations go through LedgerService instead; the only quantity change
// allowed here is a manual edit by an administrator.
// Reads are served from the Redis cache when available.
type ItemService struct {
	repo  repositories.ItemRepository
	cache *pkgcache.ItemCache
}

// NewItemService returns an ItemService wired with the given repository and cache.
func NewItemService(repo repositories.ItemRepository, itemCache *pkgcache.ItemCache) *ItemService {
	return &ItemService{repo: repo, cache: itemCache}
}

// UpdateItemInput carries an item edit. InitialQuantity is absent on purpose:
// it is set once at creation and immutable afterwards.
type UpdateItemInput struct {
	Name              string
	Description       string
	UnitPrice         decimal.Decimal
	CurrentQuantity   int
	LowStockThreshold int
}

// Create validates and persists a new Item.
func (s *ItemService) Create(ctx context.Context, name, description string, unitPrice decimal.Decimal, initialQuantity, lowStockThreshold int) (*models.Item, error) {
	itemName, err := models.NewItemName(name)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ledgerdomain.ErrInvalidItemName, err)
	}

	if unitPrice.IsNegative() {
		return nil, ledgerdomain.ErrInvalidUnitPrice
	}
	if initialQuantity < 0 || lowStockThreshold < 0 {
		return nil, ledgerdomain.ErrInvalidQuantity
	}

	item, err := models.NewItem(itemName, description, unitPrice, initialQuantity, lowStockThreshold)
	if err != nil {
		return nil, fmt.Errorf("new item: %w", err)
	}

	if err := s.repo.Save(ctx, item); err != nil {
		return nil, fmt.Errorf("save item: %w", err)
	}
	return item, nil
}

// GetByID retrieves an Item using a read-through cache pattern:
//  1. Check the Redis cache first.
//  2. On cache miss (or cache error), query Postgres.
//  3. Asynchronously warm the cache with the Postgres result.
func (s *ItemService) GetByID(ctx context.Context, id uuid.UUID) (*models.Item, error) {
	if s.cache != nil {
		cached, err := s.cache.Get(ctx, id)
		if err == nil {
			return cachedToItem(cached), nil
		}
		// Miss or cache failure, fall through to Postgres either way.
	}

	item, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get item: %w", err)
	}

	if s.cache != nil {
		go func() {
			_ = s.cache.Set(context.Background(), itemToCached(item))
		}()
	}
	return item, nil
}

// List returns all items.
func (s *ItemService) List(ctx context.Context) ([]*models.Item, error) {
	items, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list items: %w", err)
	}
	return items, nil
}

// Update applies an administrator edit to an existing Item and invalidates
// its cache entry.
func (s *ItemService) Update(ctx context.Context, id uuid.UUID, in UpdateItemInput) (*models.Item, error) {
	itemName, err := models.NewItemName(in.Name)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ledgerdomain.ErrInvalidItemName, err)
	}
	if in.UnitPrice.IsNegative() {
		return nil, ledgerdomain.ErrInvalidUnitPrice
	}
	if in.CurrentQuantity < 0 || in.LowStockThreshold < 0 {
		return nil, ledgerdomain.ErrInvalidQuantity
	}

	item, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get item: %w", err)
	}
	item.Name = itemName
	item.Description = in.Description
	item.UnitPrice = in.UnitPrice
	item.CurrentQuantity = in.CurrentQuantity
	item.LowStockThreshold = in.LowStockThreshold

	if err := s.repo.Update(ctx, item); err != nil {
		return nil, fmt.Errorf("update item: %w", err)
	}
	s.invalidate(id)
	return item, nil
}

// Delete removes an item and its cache entry. Historical sales keep their
// item reference.
func (s *ItemService) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete item: %w", err)
	}
	s.invalidate(id)
	return nil
}

func (s *ItemService) invalidate(id uuid.UUID) {
	if s.cache != nil {
		_ = s.cache.Delete(context.Background(), id)
	}
}

func cachedToItem(c *pkgcache.CachedItem) *models.Item {
	return &models.Item{
		ID:                c.ID,
		Name:              models.ItemName(c.Name),
		Description:       c.Description,
		UnitPrice:         c.UnitPrice,
		InitialQuantity:   c.InitialQuantity,
		CurrentQuantity:   c.CurrentQuantity,
		LowStockThreshold: c.LowStockThreshold,
		CreatedAt:         c.CreatedAt,
		UpdatedAt:         c.UpdatedAt,
	}
}

func itemToCached(item *models.Item) *pkgcache.CachedItem {
	return &pkgcache.CachedItem{
		ID:                item.ID,
		Name:              item.Name.String(),
		Description:       item.Description,
		UnitPrice:         item.UnitPrice,
		InitialQuantity:   item.InitialQuantity,
		CurrentQuantity:   item.CurrentQuantity,
		LowStockThreshold: item.LowStockThreshold,
		CreatedAt:         item.CreatedAt,
		UpdatedAt:         item.UpdatedAt,
	}
}
