package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// SalesSummaryResult aggregates completed sales over a period
type SalesSummaryResult struct {
	SaleCount     int64
	GrossSales    float64
	TotalDiscount float64
	TotalTax      float64
	NetSales      float64
	CashTotal     float64
	MpesaTotal    float64
	CardTotal     float64
}

// TopProductResult represents a product's sales performance
type TopProductResult struct {
	ProductID    uuid.UUID
	ProductName  string
	QuantitySold int
	Revenue      float64
}

// DailySalesResult represents sales data for a single day
type DailySalesResult struct {
	Date      time.Time
	SaleCount int64
	Revenue   float64
}

// AttendantSalesResult represents sales aggregated per attendant
type AttendantSalesResult struct {
	UserID        uuid.UUID
	AttendantName string
	SaleCount     int64
	Revenue       float64
}

// ReportRepository defines the interface for sales aggregation queries
type ReportRepository interface {
	// GetSalesSummary aggregates completed sales between from and to inclusive
	GetSalesSummary(ctx context.Context, from, to time.Time) (*SalesSummaryResult, error)

	// GetTopProducts returns top selling products by revenue over the period
	GetTopProducts(ctx context.Context, from, to time.Time, limit int) ([]TopProductResult, error)

	// GetDailySales returns per-day revenue for the last N days
	GetDailySales(ctx context.Context, days int) ([]DailySalesResult, error)

	// GetSalesByAttendant aggregates completed sales per attendant over the period
	GetSalesByAttendant(ctx context.Context, from, to time.Time) ([]AttendantSalesResult, error)
}
