package inventory

import (
	"context"
	"errors"

	"inventory-backend/internal/apperr"
	"inventory-backend/internal/cache"
	"inventory-backend/internal/models"
	"inventory-backend/internal/store"

	"github.com/shopspring/decimal"
)

type ItemStore interface {
	GetBranch(ctx context.Context, id string) (*models.Branch, error)
	ListItems(ctx context.Context, branchID string) ([]models.Item, error)
	GetItem(ctx context.Context, branchID, itemID string) (*models.Item, error)
	CreateItem(ctx context.Context, item *models.Item) error
	UpdateItem(ctx context.Context, item *models.Item) error
	DeleteItem(ctx context.Context, branchID, itemID string) error
}

const (
	msgBranchNotFound = "Branch not found."
	msgItemNotFound   = "Item not found."
)

type ItemService struct {
	store ItemStore
	cache *cache.Cache
}

func NewItemService(s ItemStore, c *cache.Cache) *ItemService {
	return &ItemService{store: s, cache: c}
}

func (s *ItemService) List(ctx context.Context, branchID string) ([]models.Item, error) {
	var items []models.Item
	if s.cache.Get(ctx, cache.BranchItemsKey(branchID), &items) {
		return items, nil
	}
	items, err := s.store.ListItems(ctx, branchID)
	if err != nil {
		return nil, apperr.Internal("Server error while fetching items.", err)
	}
	s.cache.Set(ctx, cache.BranchItemsKey(branchID), items)
	return items, nil
}

func (s *ItemService) Get(ctx context.Context, branchID, itemID string) (*models.Item, error) {
	item, err := s.store.GetItem(ctx, branchID, itemID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, apperr.NotFound(msgItemNotFound)
		}
		return nil, apperr.Internal("Server error while fetching item.", err)
	}
	return item, nil
}

type NewItem struct {
	Name        string
	Description string
	Quantity    int
	Price       decimal.Decimal
}

func (s *ItemService) Create(ctx context.Context, branchID string, in NewItem) (*models.Item, error) {
	if _, err := s.store.GetBranch(ctx, branchID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, apperr.NotFound(msgBranchNotFound)
		}
		return nil, apperr.Internal("Server error while adding item.", err)
	}

	item := &models.Item{
		Name:        in.Name,
		Description: in.Description,
		Quantity:    in.Quantity,
		Price:       in.Price,
		BranchID:    branchID,
	}
	if err := s.store.CreateItem(ctx, item); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, apperr.NotFound(msgBranchNotFound)
		}
		return nil, apperr.Internal("Server error while adding item.", err)
	}
	s.cache.Delete(ctx, cache.BranchItemsKey(branchID))
	return item, nil
}

// ItemPatch carries set-if-provided fields. Empty strings leave the stored value
// untouched; a zero quantity or price is applied.
type ItemPatch struct {
	Name        *string
	Description *string
	Quantity    *int
	Price       *decimal.Decimal
}

func (s *ItemService) Update(ctx context.Context, branchID, itemID string, patch ItemPatch) (*models.Item, error) {
	item, err := s.store.GetItem(ctx, branchID, itemID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, apperr.NotFound(msgItemNotFound)
		}
		return nil, apperr.Internal("Server error while editing item.", err)
	}

	if patch.Name != nil && *patch.Name != "" {
		item.Name = *patch.Name
	}
	if patch.Description != nil && *patch.Description != "" {
		item.Description = *patch.Description
	}
	if patch.Quantity != nil {
		item.Quantity = *patch.Quantity
	}
	if patch.Price != nil {
		item.Price = *patch.Price
	}

	if err := s.store.UpdateItem(ctx, item); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, apperr.NotFound(msgItemNotFound)
		}
		return nil, apperr.Internal("Server error while editing item.", err)
	}
	s.cache.Delete(ctx, cache.BranchItemsKey(branchID))
	return item, nil
}

func (s *ItemService) Delete(ctx context.Context, branchID, itemID string) error {
	if err := s.store.DeleteItem(ctx, branchID, itemID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return apperr.NotFound(msgItemNotFound)
		}
		return apperr.Internal("Server error while deleting item.", err)
	}
	s.cache.Delete(ctx, cache.BranchItemsKey(branchID))
	return nil
}
