package entity

import (
	"time"

	"github.com/dukapos/dukapos-api/internal/domain/enum"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Product represents a sellable item in the catalog
type Product struct {
	ID             uuid.UUID      `gorm:"type:uuid;primary_key" json:"id"`
	CategoryID     *uuid.UUID     `gorm:"type:uuid;index" json:"category_id,omitempty"`
	Name           string         `gorm:"size:255;not null" json:"name"`
	SKU            string         `gorm:"size:100;unique;not null" json:"sku"`
	Barcode        *string        `gorm:"size:100;index" json:"barcode,omitempty"`
	Price          float64        `gorm:"not null" json:"price"`
	WholesalePrice *float64       `json:"wholesale_price,omitempty"`
	Quantity       int            `gorm:"default:0" json:"quantity"`
	MinStockLevel  int            `gorm:"default:0" json:"min_stock_level"`
	Taxable        bool           `gorm:"default:true" json:"taxable"`
	TaxRate        float64        `gorm:"default:0" json:"tax_rate"`
	Active         bool           `gorm:"default:true" json:"active"`
	CreatedAt      time.Time      `json:"created_at"`
	UpdatedAt      time.Time      `json:"updated_at"`
	DeletedAt      gorm.DeletedAt `gorm:"index" json:"-"`

	// Relationships
	Category *Category `gorm:"foreignKey:CategoryID" json:"category,omitempty"`
}

// BeforeCreate generates a UUID before creating a new product
func (p *Product) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Product model
func (Product) TableName() string {
	return "products"
}

// PriceFor returns the unit price a cart line snapshots for the given
// sale type. Wholesale falls back to the retail price when no wholesale
// price is configured.
func (p *Product) PriceFor(saleType enum.SaleType) float64 {
	if saleType == enum.SaleTypeWholesale && p.WholesalePrice != nil && *p.WholesalePrice > 0 {
		return *p.WholesalePrice
	}
	return p.Price
}

// IsLowStock reports whether the on-hand quantity has reached the reorder level
func (p *Product) IsLowStock() bool {
	return p.Quantity <= p.MinStockLevel
}

// Category represents a product category
type Category struct {
	ID        uuid.UUID      `gorm:"type:uuid;primary_key" json:"id"`
	Name      string         `gorm:"size:255;unique;not null" json:"name"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	// Relationships
	Products []Product `gorm:"foreignKey:CategoryID" json:"-"`
}

// BeforeCreate generates a UUID before creating a new category
func (c *Category) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Category model
func (Category) TableName() string {
	return "categories"
}
