package services

import (
	"context"
	"sort"
	"sync"

	"gorm.io/gorm"

	"shop-api/models"
)

// memStore is an in-memory Store used by the service tests. Transact holds a
// single lock for its whole closure, which models the serialized transactions
// the ledger requires, and restores a snapshot when the closure fails so
// partial state is never observable.
type memStore struct {
	mu   sync.Mutex
	txMu sync.Mutex

	users     map[uint]*models.User
	products  map[uint]*models.Product
	carts     map[uint]*models.Cart
	cartItems map[uint]*models.CartItem
	items     map[uint]*models.Item
	nextID    uint
}

func newMemStore() *memStore {
	return &memStore{
		users:     make(map[uint]*models.User),
		products:  make(map[uint]*models.Product),
		carts:     make(map[uint]*models.Cart),
		cartItems: make(map[uint]*models.CartItem),
		items:     make(map[uint]*models.Item),
	}
}

var _ Transactor = (*memStore)(nil)

type memSnapshot struct {
	users     map[uint]*models.User
	products  map[uint]*models.Product
	carts     map[uint]*models.Cart
	cartItems map[uint]*models.CartItem
	items     map[uint]*models.Item
	nextID    uint
}

func (m *memStore) snapshot() memSnapshot {
	m.mu.Lock()
	defer m.mu.Unlock()
	s := memSnapshot{
		users:     make(map[uint]*models.User, len(m.users)),
		products:  make(map[uint]*models.Product, len(m.products)),
		carts:     make(map[uint]*models.Cart, len(m.carts)),
		cartItems: make(map[uint]*models.CartItem, len(m.cartItems)),
		items:     make(map[uint]*models.Item, len(m.items)),
		nextID:    m.nextID,
	}
	for id, u := range m.users {
		c := *u
		s.users[id] = &c
	}
	for id, p := range m.products {
		c := *p
		s.products[id] = &c
	}
	for id, cart := range m.carts {
		c := *cart
		s.carts[id] = &c
	}
	for id, it := range m.cartItems {
		c := *it
		s.cartItems[id] = &c
	}
	for id, it := range m.items {
		c := *it
		s.items[id] = &c
	}
	return s
}

func (m *memStore) restore(s memSnapshot) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.users = s.users
	m.products = s.products
	m.carts = s.carts
	m.cartItems = s.cartItems
	m.items = s.items
	m.nextID = s.nextID
}

func (m *memStore) Transact(ctx context.Context, fn func(Store) error) error {
	m.txMu.Lock()
	defer m.txMu.Unlock()
	snap := m.snapshot()
	if err := fn(m); err != nil {
		m.restore(snap)
		return err
	}
	return nil
}

func (m *memStore) id() uint {
	m.nextID++
	return m.nextID
}

// seedProduct inserts a product and returns it.
func (m *memStore) seedProduct(name string, price float64) *models.Product {
	m.mu.Lock()
	defer m.mu.Unlock()
	p := &models.Product{ID: m.id(), Name: name, Price: price}
	m.products[p.ID] = p
	return p
}

// --- users ---

func (m *memStore) FindUserByEmail(ctx context.Context, email string) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if u.Email == email {
			c := *u
			return &c, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *memStore) CreateUser(ctx context.Context, user *models.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if u.Email == user.Email {
			return gorm.ErrDuplicatedKey
		}
	}
	user.ID = m.id()
	c := *user
	m.users[user.ID] = &c
	return nil
}

// --- products ---

func (m *memStore) ProductByID(ctx context.Context, id uint) (*models.Product, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.products[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	c := *p
	return &c, nil
}

func (m *memStore) ListProducts(ctx context.Context) ([]models.Product, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]models.Product, 0, len(m.products))
	for _, p := range m.products {
		out = append(out, *p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

// --- carts ---

func (m *memStore) ActiveCartByOwner(ctx context.Context, userID uint) (*models.Cart, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, cart := range m.carts {
		if cart.UserID == userID && cart.Status == models.CartStatusActive {
			c := *cart
			return &c, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

// CreateCart enforces the partial unique index on (user_id) WHERE active.
func (m *memStore) CreateCart(ctx context.Context, cart *models.Cart) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, existing := range m.carts {
		if existing.UserID == cart.UserID && existing.Status == models.CartStatusActive {
			return gorm.ErrDuplicatedKey
		}
	}
	cart.ID = m.id()
	c := *cart
	m.carts[cart.ID] = &c
	return nil
}

func (m *memStore) SetCartStatus(ctx context.Context, cartID uint, status string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	cart, ok := m.carts[cartID]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	cart.Status = status
	return nil
}

func (m *memStore) RecalculateCartTotal(ctx context.Context, cartID uint) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	cart, ok := m.carts[cartID]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	total := 0.0
	for _, item := range m.cartItems {
		if item.CartID != cartID {
			continue
		}
		product, ok := m.products[item.ProductID]
		if !ok {
			continue
		}
		total += product.Price * float64(item.Quantity)
	}
	cart.Total = total
	return nil
}

// --- cart items ---

func (m *memStore) CartItemByProduct(ctx context.Context, cartID, productID uint) (*models.CartItem, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, item := range m.cartItems {
		if item.CartID == cartID && item.ProductID == productID {
			c := *item
			return &c, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *memStore) CartItemForOwner(ctx context.Context, itemID, userID uint) (*models.CartItem, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	item, ok := m.cartItems[itemID]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cart, ok := m.carts[item.CartID]
	if !ok || cart.UserID != userID || cart.Status != models.CartStatusActive {
		return nil, gorm.ErrRecordNotFound
	}
	c := *item
	return &c, nil
}

func (m *memStore) CreateCartItem(ctx context.Context, item *models.CartItem) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, existing := range m.cartItems {
		if existing.CartID == item.CartID && existing.ProductID == item.ProductID {
			return gorm.ErrDuplicatedKey
		}
	}
	item.ID = m.id()
	c := *item
	m.cartItems[item.ID] = &c
	return nil
}

func (m *memStore) UpdateCartItemQuantity(ctx context.Context, itemID uint, quantity int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	item, ok := m.cartItems[itemID]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	item.Quantity = quantity
	return nil
}

func (m *memStore) DeleteCartItem(ctx context.Context, itemID uint) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.cartItems, itemID)
	return nil
}

func (m *memStore) CartItemViews(ctx context.Context, cartID uint) ([]models.CartItemView, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var views []models.CartItemView
	for _, item := range m.cartItems {
		if item.CartID != cartID {
			continue
		}
		product, ok := m.products[item.ProductID]
		if !ok {
			continue
		}
		views = append(views, models.CartItemView{
			ID:          item.ID,
			ProductID:   item.ProductID,
			ProductName: product.Name,
			Price:       product.Price,
			Quantity:    item.Quantity,
			Subtotal:    product.Price * float64(item.Quantity),
		})
	}
	sort.Slice(views, func(i, j int) bool { return views[i].ID < views[j].ID })
	return views, nil
}

// --- catalog items ---

func (m *memStore) ListItems(ctx context.Context) ([]models.Item, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]models.Item, 0, len(m.items))
	for _, it := range m.items {
		out = append(out, *it)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (m *memStore) ItemByID(ctx context.Context, id uint) (*models.Item, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	it, ok := m.items[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	c := *it
	return &c, nil
}

func (m *memStore) CreateItem(ctx context.Context, item *models.Item) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	item.ID = m.id()
	c := *item
	m.items[item.ID] = &c
	return nil
}

func (m *memStore) UpdateItem(ctx context.Context, item *models.Item) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.items[item.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	c := *item
	m.items[item.ID] = &c
	return nil
}

func (m *memStore) DeleteItem(ctx context.Context, id uint) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.items[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(m.items, id)
	return nil
}

// activeCarts counts carts with status active for a user.
func (m *memStore) activeCarts(userID uint) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for _, cart := range m.carts {
		if cart.UserID == userID && cart.Status == models.CartStatusActive {
			n++
		}
	}
	return n
}

// ledgerTotal recomputes the expected cart total independently of the store's
// own aggregation, for invariant checks.
func (m *memStore) ledgerTotal(cartID uint) float64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	total := 0.0
	for _, item := range m.cartItems {
		if item.CartID != cartID {
			continue
		}
		total += m.products[item.ProductID].Price * float64(item.Quantity)
	}
	return total
}

// storedCart returns a copy of a cart row by id.
func (m *memStore) storedCart(cartID uint) *models.Cart {
	m.mu.Lock()
	defer m.mu.Unlock()
	cart, ok := m.carts[cartID]
	if !ok {
		return nil
	}
	c := *cart
	return &c
}
