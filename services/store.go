package services

import (
	"context"

	"shop-api/models"
)

// Store is the persistence surface the services operate on. The gorm
// implementation lives in repository; tests substitute an in-memory fake.
// Lookup methods return gorm.ErrRecordNotFound when no row matches.
type Store interface {
	// users
	FindUserByEmail(ctx context.Context, email string) (*models.User, error)
	CreateUser(ctx context.Context, user *models.User) error

	// products
	ProductByID(ctx context.Context, id uint) (*models.Product, error)
	ListProducts(ctx context.Context) ([]models.Product, error)

	// carts
	ActiveCartByOwner(ctx context.Context, userID uint) (*models.Cart, error)
	CreateCart(ctx context.Context, cart *models.Cart) error
	SetCartStatus(ctx context.Context, cartID uint, status string) error
	RecalculateCartTotal(ctx context.Context, cartID uint) error

	// cart items
	CartItemByProduct(ctx context.Context, cartID, productID uint) (*models.CartItem, error)
	CartItemForOwner(ctx context.Context, itemID, userID uint) (*models.CartItem, error)
	CreateCartItem(ctx context.Context, item *models.CartItem) error
	UpdateCartItemQuantity(ctx context.Context, itemID uint, quantity int) error
	DeleteCartItem(ctx context.Context, itemID uint) error
	CartItemViews(ctx context.Context, cartID uint) ([]models.CartItemView, error)

	// catalog items
	ListItems(ctx context.Context) ([]models.Item, error)
	ItemByID(ctx context.Context, id uint) (*models.Item, error)
	CreateItem(ctx context.Context, item *models.Item) error
	UpdateItem(ctx context.Context, item *models.Item) error
	DeleteItem(ctx context.Context, id uint) error
}

// Transactor runs a closure against a Store bound to a single transaction.
// The transaction commits when fn returns nil and rolls back otherwise, so a
// multi-step mutation is never observable half-applied.
type Transactor interface {
	Store
	Transact(ctx context.Context, fn func(Store) error) error
}
