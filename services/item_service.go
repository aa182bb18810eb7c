package services

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"

	"shop-api/apperrors"
	"shop-api/models"
)

// ItemService is the plain CRUD over catalog items.
type ItemService struct {
	store Store
}

func NewItemService(store Store) *ItemService {
	return &ItemService{store: store}
}

func (s *ItemService) List(ctx context.Context) ([]models.Item, error) {
	items, err := s.store.ListItems(ctx)
	if err != nil {
		return nil, err
	}
	if items == nil {
		items = []models.Item{}
	}
	return items, nil
}

func (s *ItemService) Get(ctx context.Context, id uint) (*models.Item, error) {
	item, err := s.store.ItemByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("Item not found")
		}
		return nil, err
	}
	return item, nil
}

func (s *ItemService) Create(ctx context.Context, name string) (*models.Item, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, apperrors.Validation("Item name is required")
	}
	item := &models.Item{Name: name}
	if err := s.store.CreateItem(ctx, item); err != nil {
		return nil, err
	}
	return item, nil
}

func (s *ItemService) Update(ctx context.Context, id uint, name string) (*models.Item, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, apperrors.Validation("Item name is required")
	}
	item, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	item.Name = name
	if err := s.store.UpdateItem(ctx, item); err != nil {
		return nil, err
	}
	return item, nil
}

func (s *ItemService) Delete(ctx context.Context, id uint) error {
	if err := s.store.DeleteItem(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.NotFound("Item not found")
		}
		return err
	}
	return nil
}
