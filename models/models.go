package models

import (
	"time"

	"gorm.io/gorm"
)

// Cart status values. A cart is created active and is frozen once checked out.
const (
	CartStatusActive     = "active"
	CartStatusCheckedOut = "checked_out"
)

// User is a registered account. Email is stored lowercased and looked up
// lowercased, which makes the unique index effectively case-insensitive.
type User struct {
	ID        uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	Email     string    `gorm:"uniqueIndex;not null" json:"email"`
	Password  string    `gorm:"not null" json:"-"`
	CreatedAt time.Time `json:"-"`
}

// Product is read-only from the API's perspective; rows are seeded by Migrate.
type Product struct {
	ID    uint    `gorm:"primaryKey;autoIncrement" json:"id"`
	Name  string  `gorm:"not null" json:"name"`
	Price float64 `gorm:"not null" json:"price"`
}

// Cart is a user's shopping cart. At most one active cart exists per user,
// enforced by a partial unique index on (user_id) where status = 'active'.
type Cart struct {
	ID        uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID    uint      `gorm:"index;not null" json:"user_id"`
	Total     float64   `gorm:"not null;default:0" json:"total"`
	Status    string    `gorm:"type:varchar(20);not null;default:'active'" json:"status"`
	CreatedAt time.Time `json:"-"`
	UpdatedAt time.Time `json:"-"`
}

// CartItem is a line item. One row per (cart, product); adding the same
// product again accumulates into the existing row.
type CartItem struct {
	ID        uint `gorm:"primaryKey;autoIncrement" json:"id"`
	CartID    uint `gorm:"not null;uniqueIndex:idx_cart_items_cart_product" json:"cart_id"`
	ProductID uint `gorm:"not null;uniqueIndex:idx_cart_items_cart_product" json:"product_id"`
	Quantity  int  `gorm:"not null" json:"quantity"`
}

// CartItemView is the annotated line-item projection returned by GET /cart.
type CartItemView struct {
	ID          uint    `json:"id"`
	ProductID   uint    `json:"product_id"`
	ProductName string  `json:"product_name"`
	Price       float64 `json:"price"`
	Quantity    int     `json:"quantity"`
	Subtotal    float64 `json:"subtotal"`
}

// Item is a plain catalog item managed through the items CRUD endpoints.
type Item struct {
	ID   uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	Name string `gorm:"not null" json:"name"`
}

var seedProducts = []Product{
	{Name: "Laptop", Price: 999.99},
	{Name: "Wireless Mouse", Price: 29.99},
	{Name: "Keyboard", Price: 79.99},
	{Name: "Monitor", Price: 249.99},
	{Name: "USB-C Hub", Price: 49.99},
	{Name: "Headphones", Price: 89.99},
	{Name: "Webcam", Price: 59.99},
	{Name: "Desk Lamp", Price: 34.99},
}

// Migrate runs auto-migration, creates the partial unique index guarding the
// single-active-cart invariant, and seeds the product catalog when empty.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(&User{}, &Product{}, &Cart{}, &CartItem{}, &Item{}); err != nil {
		return err
	}

	// AutoMigrate cannot express a partial index, so it is created directly.
	if err := db.Exec(
		`CREATE UNIQUE INDEX IF NOT EXISTS idx_carts_user_active ON carts (user_id) WHERE status = 'active'`,
	).Error; err != nil {
		return err
	}

	var count int64
	if err := db.Model(&Product{}).Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		if err := db.Create(&seedProducts).Error; err != nil {
			return err
		}
	}
	return nil
}
