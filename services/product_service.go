package services

import (
	"context"

	"shop-api/models"
)

// ProductService lists the read-only product catalog.
type ProductService struct {
	store Store
}

func NewProductService(store Store) *ProductService {
	return &ProductService{store: store}
}

func (s *ProductService) List(ctx context.Context) ([]models.Product, error) {
	products, err := s.store.ListProducts(ctx)
	if err != nil {
		return nil, err
	}
	if products == nil {
		products = []models.Product{}
	}
	return products, nil
}
