package repository

import (
	"context"

	"gorm.io/gorm"

	"shop-api/models"
	"shop-api/services"
)

// Store is the gorm-backed implementation of services.Store.
type Store struct {
	db *gorm.DB
}

var _ services.Transactor = (*Store)(nil)

func NewStore(db *gorm.DB) *Store {
	return &Store{db: db}
}

// Transact runs fn against a Store bound to one database transaction.
// gorm commits on a nil return and rolls back on error or panic.
func (s *Store) Transact(ctx context.Context, fn func(services.Store) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&Store{db: tx})
	})
}

// --- users ---

func (s *Store) FindUserByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	if err := s.db.WithContext(ctx).Where("email = ?", email).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (s *Store) CreateUser(ctx context.Context, user *models.User) error {
	return s.db.WithContext(ctx).Create(user).Error
}

// --- products ---

func (s *Store) ProductByID(ctx context.Context, id uint) (*models.Product, error) {
	var product models.Product
	if err := s.db.WithContext(ctx).First(&product, id).Error; err != nil {
		return nil, err
	}
	return &product, nil
}

func (s *Store) ListProducts(ctx context.Context) ([]models.Product, error) {
	var products []models.Product
	if err := s.db.WithContext(ctx).Order("id").Find(&products).Error; err != nil {
		return nil, err
	}
	return products, nil
}

// --- carts ---

func (s *Store) ActiveCartByOwner(ctx context.Context, userID uint) (*models.Cart, error) {
	var cart models.Cart
	err := s.db.WithContext(ctx).
		Where("user_id = ? AND status = ?", userID, models.CartStatusActive).
		First(&cart).Error
	if err != nil {
		return nil, err
	}
	return &cart, nil
}

func (s *Store) CreateCart(ctx context.Context, cart *models.Cart) error {
	return s.db.WithContext(ctx).Create(cart).Error
}

func (s *Store) SetCartStatus(ctx context.Context, cartID uint, status string) error {
	return s.db.WithContext(ctx).
		Model(&models.Cart{}).
		Where("id = ?", cartID).
		Update("status", status).Error
}

// RecalculateCartTotal re-aggregates the cart total from its current line
// items. Always a full SUM, never an incremental adjustment.
func (s *Store) RecalculateCartTotal(ctx context.Context, cartID uint) error {
	return s.db.WithContext(ctx).Exec(`
		UPDATE carts SET total = (
			SELECT COALESCE(SUM(p.price * ci.quantity), 0)
			FROM cart_items ci
			JOIN products p ON p.id = ci.product_id
			WHERE ci.cart_id = ?
		) WHERE id = ?`, cartID, cartID).Error
}

// --- cart items ---

func (s *Store) CartItemByProduct(ctx context.Context, cartID, productID uint) (*models.CartItem, error) {
	var item models.CartItem
	err := s.db.WithContext(ctx).
		Where("cart_id = ? AND product_id = ?", cartID, productID).
		First(&item).Error
	if err != nil {
		return nil, err
	}
	return &item, nil
}

// CartItemForOwner resolves a line item only when it sits in the given user's
// active cart; anything else reads as not found.
func (s *Store) CartItemForOwner(ctx context.Context, itemID, userID uint) (*models.CartItem, error) {
	var item models.CartItem
	err := s.db.WithContext(ctx).
		Joins("JOIN carts ON carts.id = cart_items.cart_id").
		Where("cart_items.id = ? AND carts.user_id = ? AND carts.status = ?",
			itemID, userID, models.CartStatusActive).
		First(&item).Error
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func (s *Store) CreateCartItem(ctx context.Context, item *models.CartItem) error {
	return s.db.WithContext(ctx).Create(item).Error
}

func (s *Store) UpdateCartItemQuantity(ctx context.Context, itemID uint, quantity int) error {
	return s.db.WithContext(ctx).
		Model(&models.CartItem{}).
		Where("id = ?", itemID).
		Update("quantity", quantity).Error
}

func (s *Store) DeleteCartItem(ctx context.Context, itemID uint) error {
	return s.db.WithContext(ctx).Delete(&models.CartItem{}, itemID).Error
}

func (s *Store) CartItemViews(ctx context.Context, cartID uint) ([]models.CartItemView, error) {
	var views []models.CartItemView
	err := s.db.WithContext(ctx).
		Table("cart_items").
		Select(`cart_items.id, cart_items.product_id, products.name AS product_name,
			products.price, cart_items.quantity,
			products.price * cart_items.quantity AS subtotal`).
		Joins("JOIN products ON products.id = cart_items.product_id").
		Where("cart_items.cart_id = ?", cartID).
		Order("cart_items.id").
		Scan(&views).Error
	if err != nil {
		return nil, err
	}
	return views, nil
}

// --- catalog items ---

func (s *Store) ListItems(ctx context.Context) ([]models.Item, error) {
	var items []models.Item
	if err := s.db.WithContext(ctx).Order("id").Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (s *Store) ItemByID(ctx context.Context, id uint) (*models.Item, error) {
	var item models.Item
	if err := s.db.WithContext(ctx).First(&item, id).Error; err != nil {
		return nil, err
	}
	return &item, nil
}

func (s *Store) CreateItem(ctx context.Context, item *models.Item) error {
	return s.db.WithContext(ctx).Create(item).Error
}

func (s *Store) UpdateItem(ctx context.Context, item *models.Item) error {
	return s.db.WithContext(ctx).Save(item).Error
}

func (s *Store) DeleteItem(ctx context.Context, id uint) error {
	res := s.db.WithContext(ctx).Delete(&models.Item{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
