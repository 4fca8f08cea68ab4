package service

import (
	"context"
	"time"

	"github.com/dukapos/dukapos-api/internal/domain/repository"
	"github.com/dukapos/dukapos-api/pkg/apperror"
)

// ReportService provides sales reporting
type ReportService struct {
	reportRepo  repository.ReportRepository
	productRepo repository.ProductRepository
}

// NewReportService creates a new report service
func NewReportService(
	reportRepo repository.ReportRepository,
	productRepo repository.ProductRepository,
) *ReportService {
	return &ReportService{
		reportRepo:  reportRepo,
		productRepo: productRepo,
	}
}

// SalesSummary represents aggregated sales over a period
type SalesSummary struct {
	From          time.Time `json:"from"`
	To            time.Time `json:"to"`
	SaleCount     int64     `json:"sale_count"`
	GrossSales    float64   `json:"gross_sales"`
	TotalDiscount float64   `json:"total_discount"`
	TotalTax      float64   `json:"total_tax"`
	NetSales      float64   `json:"net_sales"`
	CashTotal     float64   `json:"cash_total"`
	MpesaTotal    float64   `json:"mpesa_total"`
	CardTotal     float64   `json:"card_total"`
}

// GetSalesSummary aggregates completed sales between from and to inclusive.
// When from/to are zero, the summary covers today.
func (s *ReportService) GetSalesSummary(ctx context.Context, from, to time.Time) (*SalesSummary, error) {
	if from.IsZero() && to.IsZero() {
		now := time.Now()
		from = time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
		to = from.AddDate(0, 0, 1).Add(-time.Nanosecond)
	}
	if to.Before(from) {
		return nil, apperror.NewBadRequestError("to date must not be before from date")
	}

	result, err := s.reportRepo.GetSalesSummary(ctx, from, to)
	if err != nil {
		return nil, err
	}

	return &SalesSummary{
		From:          from,
		To:            to,
		SaleCount:     result.SaleCount,
		GrossSales:    result.GrossSales,
		TotalDiscount: result.TotalDiscount,
		TotalTax:      result.TotalTax,
		NetSales:      result.NetSales,
		CashTotal:     result.CashTotal,
		MpesaTotal:    result.MpesaTotal,
		CardTotal:     result.CardTotal,
	}, nil
}

// TopProduct represents a product's sales performance
type TopProduct struct {
	ProductID    string  `json:"product_id"`
	ProductName  string  `json:"product_name"`
	QuantitySold int     `json:"quantity_sold"`
	Revenue      float64 `json:"revenue"`
}

// GetTopProducts returns the best selling products by revenue over the period
func (s *ReportService) GetTopProducts(ctx context.Context, from, to time.Time, limit int) ([]TopProduct, error) {
	if limit <= 0 || limit > 50 {
		limit = 10
	}
	results, err := s.reportRepo.GetTopProducts(ctx, from, to, limit)
	if err != nil {
		return nil, err
	}

	products := make([]TopProduct, 0, len(results))
	for _, r := range results {
		products = append(products, TopProduct{
			ProductID:    r.ProductID.String(),
			ProductName:  r.ProductName,
			QuantitySold: r.QuantitySold,
			Revenue:      r.Revenue,
		})
	}
	return products, nil
}

// DailySalesPoint represents revenue for a single day
type DailySalesPoint struct {
	Date      string  `json:"date"`
	SaleCount int64   `json:"sale_count"`
	Revenue   float64 `json:"revenue"`
}

// GetDailySales returns per-day revenue for the last N days (default 7, max 90)
func (s *ReportService) GetDailySales(ctx context.Context, days int) ([]DailySalesPoint, error) {
	if days <= 0 {
		days = 7
	}
	if days > 90 {
		days = 90
	}

	results, err := s.reportRepo.GetDailySales(ctx, days)
	if err != nil {
		return nil, err
	}

	points := make([]DailySalesPoint, 0, len(results))
	for _, r := range results {
		points = append(points, DailySalesPoint{
			Date:      r.Date.Format("2006-01-02"),
			SaleCount: r.SaleCount,
			Revenue:   r.Revenue,
		})
	}
	return points, nil
}

// AttendantSales represents sales aggregated per attendant
type AttendantSales struct {
	UserID        string  `json:"user_id"`
	AttendantName string  `json:"attendant_name"`
	SaleCount     int64   `json:"sale_count"`
	Revenue       float64 `json:"revenue"`
}

// GetSalesByAttendant aggregates completed sales per attendant over the period
func (s *ReportService) GetSalesByAttendant(ctx context.Context, from, to time.Time) ([]AttendantSales, error) {
	if from.IsZero() && to.IsZero() {
		now := time.Now()
		from = time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
		to = from.AddDate(0, 0, 1).Add(-time.Nanosecond)
	}

	results, err := s.reportRepo.GetSalesByAttendant(ctx, from, to)
	if err != nil {
		return nil, err
	}

	sales := make([]AttendantSales, 0, len(results))
	for _, r := range results {
		sales = append(sales, AttendantSales{
			UserID:        r.UserID.String(),
			AttendantName: r.AttendantName,
			SaleCount:     r.SaleCount,
			Revenue:       r.Revenue,
		})
	}
	return sales, nil
}

// StockReport summarises current inventory state
type StockReport struct {
	TotalProducts int         `json:"total_products"`
	LowStockItems []StockItem `json:"low_stock_items"`
	TotalValue    float64     `json:"total_value"`
}

// StockItem is one product row in the stock report
type StockItem struct {
	ProductID string `json:"product_id"`
	Name      string `json:"name"`
	SKU       string `json:"sku"`
	Quantity  int    `json:"quantity"`
	MinStock  int    `json:"min_stock"`
}

// GetStockReport returns the low stock report
func (s *ReportService) GetStockReport(ctx context.Context) (*StockReport, error) {
	products, err := s.productRepo.GetLowStock(ctx)
	if err != nil {
		return nil, err
	}

	report := &StockReport{TotalProducts: len(products)}
	for _, p := range products {
		report.LowStockItems = append(report.LowStockItems, StockItem{
			ProductID: p.ID.String(),
			Name:      p.Name,
			SKU:       p.SKU,
			Quantity:  p.Quantity,
			MinStock:  p.MinStockLevel,
		})
		report.TotalValue += float64(p.Quantity) * p.Price
	}
	return report, nil
}
