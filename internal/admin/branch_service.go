package admin

import (
	"context"
	"errors"

	"inventory-backend/internal/apperr"
	"inventory-backend/internal/cache"
	"inventory-backend/internal/models"
	"inventory-backend/internal/store"
)

type BranchStore interface {
	ListBranches(ctx context.Context) ([]models.Branch, error)
	GetBranch(ctx context.Context, id string) (*models.Branch, error)
	CreateBranch(ctx context.Context, branch *models.Branch) error
	UpdateBranch(ctx context.Context, branch *models.Branch) error
}

const (
	msgBranchNotFound  = "Branch not found."
	msgBranchDuplicate = "Branch name already exists."
)

// BranchService reads through the cache and invalidates it on every write.
type BranchService struct {
	store BranchStore
	cache *cache.Cache
}

func NewBranchService(s BranchStore, c *cache.Cache) *BranchService {
	return &BranchService{store: s, cache: c}
}

func (s *BranchService) List(ctx context.Context) ([]models.Branch, error) {
	var branches []models.Branch
	if s.cache.Get(ctx, cache.KeyBranches, &branches) {
		return branches, nil
	}
	branches, err := s.store.ListBranches(ctx)
	if err != nil {
		return nil, apperr.Internal("Server error while fetching branches.", err)
	}
	s.cache.Set(ctx, cache.KeyBranches, branches)
	return branches, nil
}

func (s *BranchService) Get(ctx context.Context, id string) (*models.Branch, error) {
	var branch models.Branch
	if s.cache.Get(ctx, cache.BranchKey(id), &branch) {
		return &branch, nil
	}
	b, err := s.store.GetBranch(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, apperr.NotFound(msgBranchNotFound)
		}
		return nil, apperr.Internal("Server error while fetching branch.", err)
	}
	s.cache.Set(ctx, cache.BranchKey(id), b)
	return b, nil
}

func (s *BranchService) Create(ctx context.Context, name, address string) (*models.Branch, error) {
	branch := &models.Branch{Name: name, Address: address}
	if err := s.store.CreateBranch(ctx, branch); err != nil {
		if errors.Is(err, store.ErrDuplicate) {
			return nil, apperr.Validation(msgBranchDuplicate)
		}
		return nil, apperr.Internal("Server error while creating branch.", err)
	}
	s.cache.Delete(ctx, cache.KeyBranches)
	return branch, nil
}

type BranchPatch struct {
	Name    *string
	Address *string
}

// Update applies the provided fields only; blank values are rejected by the handler.
func (s *BranchService) Update(ctx context.Context, id string, patch BranchPatch) (*models.Branch, error) {
	branch, err := s.store.GetBranch(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, apperr.NotFound(msgBranchNotFound)
		}
		return nil, apperr.Internal("Server error while updating branch.", err)
	}

	if patch.Name != nil {
		branch.Name = *patch.Name
	}
	if patch.Address != nil {
		branch.Address = *patch.Address
	}

	if err := s.store.UpdateBranch(ctx, branch); err != nil {
		switch {
		case errors.Is(err, store.ErrDuplicate):
			return nil, apperr.Validation(msgBranchDuplicate)
		case errors.Is(err, store.ErrNotFound):
			return nil, apperr.NotFound(msgBranchNotFound)
		}
		return nil, apperr.Internal("Server error while updating branch.", err)
	}
	s.cache.Delete(ctx, cache.KeyBranches, cache.BranchKey(id))
	return branch, nil
}
