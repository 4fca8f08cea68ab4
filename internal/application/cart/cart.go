// Package cart owns the in-memory cart for each signed-in till user.
// Carts are transient: nothing here touches persistence until checkout
// snapshots the lines into a sale.
package cart

import (
	"sync"

	"github.com/dukapos/dukapos-api/internal/application/pricing"
	"github.com/dukapos/dukapos-api/internal/domain/entity"
	"github.com/dukapos/dukapos-api/internal/domain/enum"
	"github.com/dukapos/dukapos-api/pkg/apperror"
	"github.com/google/uuid"
)

// Cart is the mutable in-progress sale for one user session
type Cart struct {
	Items             []entity.SaleItem    `json:"items"`
	SaleDiscount      *entity.SaleDiscount `json:"sale_discount,omitempty"`
	AppliedDiscountID *uuid.UUID           `json:"applied_discount_id,omitempty"`
	SaleType          enum.SaleType        `json:"sale_type"`
}

// ProductLookup resolves a product by ID from the catalog. Cart
// operations that need current stock or prices receive one so the
// manager itself stays free of persistence.
type ProductLookup func(productID uuid.UUID) (*entity.Product, error)

// Manager keeps one cart per user behind a single mutex. Mutations are
// synchronous and each returns a snapshot copy safe to hand out.
type Manager struct {
	mu    sync.Mutex
	carts map[uuid.UUID]*Cart
}

// NewManager creates an empty cart manager
func NewManager() *Manager {
	return &Manager{carts: make(map[uuid.UUID]*Cart)}
}

func (m *Manager) cart(userID uuid.UUID, defaultType enum.SaleType) *Cart {
	c, ok := m.carts[userID]
	if !ok {
		c = &Cart{SaleType: defaultType}
		m.carts[userID] = c
	}
	return c
}

// Snapshot returns a copy of the user's cart, creating an empty one on
// first access.
func (m *Manager) Snapshot(userID uuid.UUID, defaultType enum.SaleType) *Cart {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.cart(userID, defaultType).copy()
}

// AddLine adds one unit of the product to the cart. A line already
// holding the product is incremented instead of duplicated.
func (m *Manager) AddLine(userID uuid.UUID, product *entity.Product, defaultType enum.SaleType, tax pricing.TaxConfig) (*Cart, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	c := m.cart(userID, defaultType)
	if product.Quantity <= 0 {
		return nil, apperror.NewOutOfStockError(product.Name, product.Quantity)
	}

	for i := range c.Items {
		if c.Items[i].ProductID == product.ID {
			if c.Items[i].Quantity+1 > product.Quantity {
				return nil, apperror.NewOutOfStockError(product.Name, product.Quantity)
			}
			c.Items[i].Quantity++
			pricing.RecomputeLine(&c.Items[i], tax)
			return c.copy(), nil
		}
	}

	price := product.PriceFor(c.SaleType)
	item := entity.SaleItem{
		LineID:        uuid.New(),
		ProductID:     product.ID,
		Name:          product.Name,
		Quantity:      1,
		OriginalPrice: price,
		Price:         price,
	}
	pricing.RecomputeLine(&item, tax)
	c.Items = append(c.Items, item)
	return c.copy(), nil
}

// SetQuantity updates a line's quantity. Zero or negative removes the
// line; anything above on-hand stock is rejected.
func (m *Manager) SetQuantity(userID, lineID uuid.UUID, quantity int, lookup ProductLookup, tax pricing.TaxConfig) (*Cart, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	c, ok := m.carts[userID]
	if !ok {
		return nil, apperror.NewNotFoundError("Cart line")
	}
	idx := c.lineIndex(lineID)
	if idx < 0 {
		return nil, apperror.NewNotFoundError("Cart line")
	}

	if quantity <= 0 {
		c.Items = append(c.Items[:idx], c.Items[idx+1:]...)
		return c.copy(), nil
	}

	product, err := lookup(c.Items[idx].ProductID)
	if err != nil {
		return nil, err
	}
	if quantity > product.Quantity {
		return nil, apperror.NewOutOfStockError(product.Name, product.Quantity)
	}

	c.Items[idx].Quantity = quantity
	pricing.RecomputeLine(&c.Items[idx], tax)
	return c.copy(), nil
}

// RemoveLine removes a line unconditionally
func (m *Manager) RemoveLine(userID, lineID uuid.UUID) (*Cart, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	c, ok := m.carts[userID]
	if !ok {
		return nil, apperror.NewNotFoundError("Cart line")
	}
	idx := c.lineIndex(lineID)
	if idx < 0 {
		return nil, apperror.NewNotFoundError("Cart line")
	}
	c.Items = append(c.Items[:idx], c.Items[idx+1:]...)
	return c.copy(), nil
}

// OverridePrice sets a manual unit price on a line. The first pre-edit
// price is preserved for audit even across repeated edits. Permission
// checks belong to the HTTP layer, not here.
func (m *Manager) OverridePrice(userID, lineID uuid.UUID, newPrice float64, tax pricing.TaxConfig) (*Cart, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if newPrice <= 0 {
		return nil, apperror.NewBadRequestError("price must be greater than zero")
	}
	c, ok := m.carts[userID]
	if !ok {
		return nil, apperror.NewNotFoundError("Cart line")
	}
	idx := c.lineIndex(lineID)
	if idx < 0 {
		return nil, apperror.NewNotFoundError("Cart line")
	}

	item := &c.Items[idx]
	if item.OriginalPriceBeforeEdit == nil {
		prev := item.Price
		item.OriginalPriceBeforeEdit = &prev
	}
	item.Price = newPrice
	item.EditedByAttendant = true
	pricing.RecomputeLine(item, tax)
	return c.copy(), nil
}

// ApplyLineDiscount sets a line's discount percent and recomputes it
func (m *Manager) ApplyLineDiscount(userID, lineID uuid.UUID, percent float64, tax pricing.TaxConfig) (*Cart, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	c, ok := m.carts[userID]
	if !ok {
		return nil, apperror.NewNotFoundError("Cart line")
	}
	idx := c.lineIndex(lineID)
	if idx < 0 {
		return nil, apperror.NewNotFoundError("Cart line")
	}
	c.Items[idx].DiscountPercent = percent
	pricing.RecomputeLine(&c.Items[idx], tax)
	return c.copy(), nil
}

// SwitchSaleType re-prices every line from the catalog for the new sale
// type. Line discount percents and amounts are left untouched.
func (m *Manager) SwitchSaleType(userID uuid.UUID, newType enum.SaleType, lookup ProductLookup, tax pricing.TaxConfig) (*Cart, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	c := m.cart(userID, newType)

	// Look up every product before touching the cart so a missing
	// product leaves it unchanged.
	prices := make([]float64, len(c.Items))
	for i := range c.Items {
		product, err := lookup(c.Items[i].ProductID)
		if err != nil {
			return nil, err
		}
		prices[i] = product.PriceFor(newType)
	}

	c.SaleType = newType
	for i := range c.Items {
		c.Items[i].Price = prices[i]
		pricing.RecomputeLineTax(&c.Items[i], tax)
	}
	return c.copy(), nil
}

// ApplySaleDiscount sets the sale-wide discount, replacing any existing
// one. discountID records which preset was applied, nil for ad hoc.
func (m *Manager) ApplySaleDiscount(userID uuid.UUID, discount entity.SaleDiscount, discountID *uuid.UUID, defaultType enum.SaleType) *Cart {
	m.mu.Lock()
	defer m.mu.Unlock()

	c := m.cart(userID, defaultType)
	c.SaleDiscount = &discount
	c.AppliedDiscountID = discountID
	return c.copy()
}

// ClearSaleDiscount removes the sale-wide discount and its preset reference
func (m *Manager) ClearSaleDiscount(userID uuid.UUID) *Cart {
	m.mu.Lock()
	defer m.mu.Unlock()

	c, ok := m.carts[userID]
	if !ok {
		return (&Cart{SaleType: enum.SaleTypeRetail}).copy()
	}
	c.SaleDiscount = nil
	c.AppliedDiscountID = nil
	return c.copy()
}

// Replace installs the given lines and sale type as the user's cart,
// discarding whatever was there. Used when resuming a held sale.
func (m *Manager) Replace(userID uuid.UUID, items []entity.SaleItem, saleType enum.SaleType, saleDiscount *entity.SaleDiscount) *Cart {
	m.mu.Lock()
	defer m.mu.Unlock()

	c := &Cart{
		Items:        append([]entity.SaleItem(nil), items...),
		SaleType:     saleType,
		SaleDiscount: saleDiscount,
	}
	m.carts[userID] = c
	return c.copy()
}

// Clear empties the user's cart including any sale-level discount
func (m *Manager) Clear(userID uuid.UUID) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.carts, userID)
}

func (c *Cart) lineIndex(lineID uuid.UUID) int {
	for i := range c.Items {
		if c.Items[i].LineID == lineID {
			return i
		}
	}
	return -1
}

// IsEmpty reports whether the cart holds no lines
func (c *Cart) IsEmpty() bool {
	return len(c.Items) == 0
}

func (c *Cart) copy() *Cart {
	out := &Cart{
		Items:    append([]entity.SaleItem(nil), c.Items...),
		SaleType: c.SaleType,
	}
	if c.SaleDiscount != nil {
		d := *c.SaleDiscount
		out.SaleDiscount = &d
	}
	if c.AppliedDiscountID != nil {
		id := *c.AppliedDiscountID
		out.AppliedDiscountID = &id
	}
	return out
}
