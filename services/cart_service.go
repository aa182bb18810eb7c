package services

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"shop-api/apperrors"
	"shop-api/models"
)

// CartService owns the active-cart lifecycle: lazy creation, line-item
// upsert/update/remove, total recomputation, and the checkout transition.
// Every mutation runs as one transaction and ends with a full re-aggregation
// of the cart total, so callers never observe a total that disagrees with the
// line items.
type CartService struct {
	store Transactor
}

func NewCartService(store Transactor) *CartService {
	return &CartService{store: store}
}

// LineItem is the result of an item mutation.
type LineItem struct {
	ID        uint `json:"id"`
	ProductID uint `json:"product_id"`
	Quantity  int  `json:"quantity"`
}

// CartView is the response shape of GET /cart.
type CartView struct {
	Items  []models.CartItemView `json:"items"`
	Total  float64               `json:"total"`
	Status string                `json:"status"`
}

// CheckoutResult is the response shape of POST /cart/checkout.
type CheckoutResult struct {
	Message string  `json:"message"`
	Total   float64 `json:"total"`
}

// activeCart returns the user's active cart, creating one when none exists.
// Two requests racing to create hit the partial unique index on
// carts(user_id) WHERE status = 'active'; the losing insert aborts its
// transaction, which the caller retries from scratch.
func (s *CartService) activeCart(ctx context.Context, tx Store, userID uint) (*models.Cart, error) {
	cart, err := tx.ActiveCartByOwner(ctx, userID)
	if err == nil {
		return cart, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	cart = &models.Cart{UserID: userID, Status: models.CartStatusActive}
	if err := tx.CreateCart(ctx, cart); err != nil {
		return nil, err
	}
	return cart, nil
}

// AddItem adds quantity of a product to the user's active cart, creating the
// cart and the line item as needed. Adding a product already in the cart
// accumulates onto the existing line item.
func (s *CartService) AddItem(ctx context.Context, userID, productID uint, quantity int) (*LineItem, error) {
	if quantity < 1 {
		return nil, apperrors.Validation("Quantity must be at least 1")
	}

	var result LineItem
	add := func(tx Store) error {
		if _, err := tx.ProductByID(ctx, productID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperrors.NotFound("Product not found")
			}
			return err
		}

		cart, err := s.activeCart(ctx, tx, userID)
		if err != nil {
			return err
		}

		item, err := tx.CartItemByProduct(ctx, cart.ID, productID)
		switch {
		case err == nil:
			item.Quantity += quantity
			if err := tx.UpdateCartItemQuantity(ctx, item.ID, item.Quantity); err != nil {
				return err
			}
		case errors.Is(err, gorm.ErrRecordNotFound):
			item = &models.CartItem{CartID: cart.ID, ProductID: productID, Quantity: quantity}
			if err := tx.CreateCartItem(ctx, item); err != nil {
				return err
			}
		default:
			return err
		}

		if err := tx.RecalculateCartTotal(ctx, cart.ID); err != nil {
			return err
		}
		result = LineItem{ID: item.ID, ProductID: productID, Quantity: item.Quantity}
		return nil
	}

	// A losing cart insert aborts the whole transaction on PostgreSQL, so the
	// winner's row can only be read from a fresh one. The insert fails only
	// after the winner has committed, so one retry is enough.
	err := s.store.Transact(ctx, add)
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		err = s.store.Transact(ctx, add)
	}
	if err != nil {
		return nil, err
	}
	return &result, nil
}

// SetItemQuantity overwrites a line item's quantity. The item must sit in the
// user's active cart; anything else is not found.
func (s *CartService) SetItemQuantity(ctx context.Context, userID, itemID uint, quantity int) (*LineItem, error) {
	if quantity < 1 {
		return nil, apperrors.Validation("Quantity must be at least 1")
	}

	var result LineItem
	err := s.store.Transact(ctx, func(tx Store) error {
		item, err := tx.CartItemForOwner(ctx, itemID, userID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperrors.NotFound("Cart item not found")
			}
			return err
		}
		if err := tx.UpdateCartItemQuantity(ctx, item.ID, quantity); err != nil {
			return err
		}
		if err := tx.RecalculateCartTotal(ctx, item.CartID); err != nil {
			return err
		}
		result = LineItem{ID: item.ID, ProductID: item.ProductID, Quantity: quantity}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &result, nil
}

// RemoveItem deletes a line item from the user's active cart. Removing an id
// that is already gone reports not found, not silent success.
func (s *CartService) RemoveItem(ctx context.Context, userID, itemID uint) error {
	return s.store.Transact(ctx, func(tx Store) error {
		item, err := tx.CartItemForOwner(ctx, itemID, userID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperrors.NotFound("Cart item not found")
			}
			return err
		}
		if err := tx.DeleteCartItem(ctx, item.ID); err != nil {
			return err
		}
		return tx.RecalculateCartTotal(ctx, item.CartID)
	})
}

// View returns the user's active cart with annotated line items in creation
// order. A user with no active cart sees an empty one; the cart is only
// materialized once an item is added.
func (s *CartService) View(ctx context.Context, userID uint) (*CartView, error) {
	cart, err := s.store.ActiveCartByOwner(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return &CartView{Items: []models.CartItemView{}, Total: 0, Status: models.CartStatusActive}, nil
		}
		return nil, err
	}

	items, err := s.store.CartItemViews(ctx, cart.ID)
	if err != nil {
		return nil, err
	}
	if items == nil {
		items = []models.CartItemView{}
	}
	return &CartView{Items: items, Total: cart.Total, Status: cart.Status}, nil
}

// Checkout freezes the user's active cart and returns its total. Checking out
// with no active cart is not an error; it reports an empty cart. The cart and
// its items are retained as an audit trail.
func (s *CartService) Checkout(ctx context.Context, userID uint) (*CheckoutResult, error) {
	var result CheckoutResult
	err := s.store.Transact(ctx, func(tx Store) error {
		cart, err := tx.ActiveCartByOwner(ctx, userID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				result = CheckoutResult{Message: "Cart is empty", Total: 0}
				return nil
			}
			return err
		}
		if err := tx.SetCartStatus(ctx, cart.ID, models.CartStatusCheckedOut); err != nil {
			return err
		}
		result = CheckoutResult{Message: "Checkout successful", Total: cart.Total}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &result, nil
}
