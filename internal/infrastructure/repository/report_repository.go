package repository

import (
	"context"
	"sort"
	"time"

	"github.com/dukapos/dukapos-api/internal/domain/entity"
	"github.com/dukapos/dukapos-api/internal/domain/enum"
	domainRepo "github.com/dukapos/dukapos-api/internal/domain/repository"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type reportRepository struct {
	db *gorm.DB
}

// NewReportRepository creates a new report repository
func NewReportRepository(db *gorm.DB) domainRepo.ReportRepository {
	return &reportRepository{db: db}
}

func (r *reportRepository) GetSalesSummary(ctx context.Context, from, to time.Time) (*domainRepo.SalesSummaryResult, error) {
	var result domainRepo.SalesSummaryResult

	err := r.db.WithContext(ctx).Raw(`
		SELECT
			COUNT(id) as sale_count,
			COALESCE(SUM(subtotal), 0) as gross_sales,
			COALESCE(SUM(total_discount), 0) as total_discount,
			COALESCE(SUM(tax_amount), 0) as total_tax,
			COALESCE(SUM(total), 0) as net_sales,
			COALESCE(SUM(CASE WHEN payment_method = 'cash' THEN total ELSE 0 END), 0) as cash_total,
			COALESCE(SUM(CASE WHEN payment_method = 'mpesa' THEN total ELSE 0 END), 0) as mpesa_total,
			COALESCE(SUM(CASE WHEN payment_method = 'card' THEN total ELSE 0 END), 0) as card_total
		FROM sales
		WHERE status = 'completed'
		AND deleted_at IS NULL
		AND created_at >= ? AND created_at <= ?
	`, from, to).Scan(&result).Error
	if err != nil {
		return nil, err
	}

	return &result, nil
}

// GetTopProducts aggregates line items across completed sales. Sale items
// live in a JSON column, so the aggregation happens here rather than in SQL.
func (r *reportRepository) GetTopProducts(ctx context.Context, from, to time.Time, limit int) ([]domainRepo.TopProductResult, error) {
	var sales []entity.Sale
	query := r.db.WithContext(ctx).
		Select("items").
		Where("status = ?", enum.SaleStatusCompleted)
	if !from.IsZero() {
		query = query.Where("created_at >= ?", from)
	}
	if !to.IsZero() {
		query = query.Where("created_at <= ?", to)
	}
	if err := query.Find(&sales).Error; err != nil {
		return nil, err
	}

	type agg struct {
		name     string
		quantity int
		revenue  float64
	}
	byProduct := make(map[uuid.UUID]*agg)
	for _, sale := range sales {
		for _, item := range sale.Items {
			a, ok := byProduct[item.ProductID]
			if !ok {
				a = &agg{name: item.Name}
				byProduct[item.ProductID] = a
			}
			a.quantity += item.Quantity
			a.revenue += item.Total
		}
	}

	results := make([]domainRepo.TopProductResult, 0, len(byProduct))
	for id, a := range byProduct {
		results = append(results, domainRepo.TopProductResult{
			ProductID:    id,
			ProductName:  a.name,
			QuantitySold: a.quantity,
			Revenue:      a.revenue,
		})
	}
	sort.Slice(results, func(i, j int) bool {
		return results[i].Revenue > results[j].Revenue
	})
	if len(results) > limit {
		results = results[:limit]
	}
	return results, nil
}

func (r *reportRepository) GetDailySales(ctx context.Context, days int) ([]domainRepo.DailySalesResult, error) {
	results := make([]domainRepo.DailySalesResult, 0, days)
	now := time.Now()

	for i := days - 1; i >= 0; i-- {
		date := now.AddDate(0, 0, -i)
		startOfDay := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
		endOfDay := startOfDay.Add(24 * time.Hour)

		var row struct {
			SaleCount int64
			Revenue   float64
		}
		err := r.db.WithContext(ctx).Raw(`
			SELECT COUNT(id) as sale_count, COALESCE(SUM(total), 0) as revenue
			FROM sales
			WHERE status = 'completed'
			AND deleted_at IS NULL
			AND created_at >= ? AND created_at < ?
		`, startOfDay, endOfDay).Scan(&row).Error
		if err != nil {
			return nil, err
		}

		results = append(results, domainRepo.DailySalesResult{
			Date:      startOfDay,
			SaleCount: row.SaleCount,
			Revenue:   row.Revenue,
		})
	}

	return results, nil
}

func (r *reportRepository) GetSalesByAttendant(ctx context.Context, from, to time.Time) ([]domainRepo.AttendantSalesResult, error) {
	var results []domainRepo.AttendantSalesResult

	err := r.db.WithContext(ctx).Raw(`
		SELECT
			user_id,
			attendant_name,
			COUNT(id) as sale_count,
			COALESCE(SUM(total), 0) as revenue
		FROM sales
		WHERE status = 'completed'
		AND deleted_at IS NULL
		AND created_at >= ? AND created_at <= ?
		GROUP BY user_id, attendant_name
		ORDER BY revenue DESC
	`, from, to).Scan(&results).Error
	if err != nil {
		return nil, err
	}

	return results, nil
}
