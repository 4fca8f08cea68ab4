package request

import "github.com/google/uuid"

// CreateProductRequest represents a product creation request
type CreateProductRequest struct {
	CategoryID     *uuid.UUID `json:"category_id"`
	Name           string     `json:"name" binding:"required,min=2,max=255"`
	SKU            string     `json:"sku" binding:"omitempty,max=100"`
	Barcode        *string    `json:"barcode" binding:"omitempty,max=100"`
	Price          float64    `json:"price" binding:"required,gt=0"`
	WholesalePrice *float64   `json:"wholesale_price" binding:"omitempty,gt=0"`
	Quantity       int        `json:"quantity" binding:"min=0"`
	MinStockLevel  int        `json:"min_stock_level" binding:"min=0"`
	Taxable        *bool      `json:"taxable"`
	TaxRate        float64    `json:"tax_rate" binding:"min=0,max=100"`
}

// UpdateProductRequest represents a product update request
type UpdateProductRequest struct {
	CategoryID     *uuid.UUID `json:"category_id"`
	Name           *string    `json:"name" binding:"omitempty,min=2,max=255"`
	Barcode        *string    `json:"barcode" binding:"omitempty,max=100"`
	Price          *float64   `json:"price" binding:"omitempty,gt=0"`
	WholesalePrice *float64   `json:"wholesale_price" binding:"omitempty,gt=0"`
	Quantity       *int       `json:"quantity" binding:"omitempty,min=0"`
	MinStockLevel  *int       `json:"min_stock_level" binding:"omitempty,min=0"`
	Taxable        *bool      `json:"taxable"`
	TaxRate        *float64   `json:"tax_rate" binding:"omitempty,min=0,max=100"`
	Active         *bool      `json:"active"`
}

// ProductFilterRequest represents product filter parameters
type ProductFilterRequest struct {
	Search     string `form:"search"`
	CategoryID string `form:"category_id"`
	LowStock   bool   `form:"low_stock"`
	ActiveOnly bool   `form:"active_only"`
	SortBy     string `form:"sort_by"`
	SortOrder  string `form:"sort_order"`
	Page       int    `form:"page"`
	PerPage    int    `form:"per_page"`
	Cursor     string `form:"cursor"`
	Direction  string `form:"direction"`
	Limit      int    `form:"limit"`
}

// CreateCategoryRequest represents a category creation request
type CreateCategoryRequest struct {
	Name string `json:"name" binding:"required,min=2,max=255"`
}

// UpdateCategoryRequest represents a category update request
type UpdateCategoryRequest struct {
	Name string `json:"name" binding:"required,min=2,max=255"`
}
