package service

import (
	"context"
	"testing"
	"time"

	"github.com/dukapos/dukapos-api/internal/domain/repository"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetSalesSummaryDefaultsToToday(t *testing.T) {
	repo := &fakeReportRepo{summary: &repository.SalesSummaryResult{
		SaleCount: 3,
		NetSales:  4500,
		CashTotal: 3000,
	}}
	svc := NewReportService(repo, newFakeProductRepo())

	summary, err := svc.GetSalesSummary(context.Background(), time.Time{}, time.Time{})
	require.NoError(t, err)

	now := time.Now()
	startOfDay := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	assert.Equal(t, startOfDay, repo.lastFrom)
	assert.True(t, repo.lastTo.After(repo.lastFrom))
	assert.Equal(t, int64(3), summary.SaleCount)
	assert.InDelta(t, 4500, summary.NetSales, epsilon)
}

func TestGetSalesSummaryRejectsInvertedRange(t *testing.T) {
	svc := NewReportService(&fakeReportRepo{}, newFakeProductRepo())

	from := time.Date(2026, 8, 20, 0, 0, 0, 0, time.UTC)
	to := from.AddDate(0, 0, -5)
	_, err := svc.GetSalesSummary(context.Background(), from, to)
	assert.Error(t, err)
}

func TestGetTopProductsClampsLimit(t *testing.T) {
	repo := &fakeReportRepo{topProducts: []repository.TopProductResult{
		{ProductID: uuid.New(), ProductName: "Rice 5kg", QuantitySold: 40, Revenue: 18000},
	}}
	svc := NewReportService(repo, newFakeProductRepo())

	products, err := svc.GetTopProducts(context.Background(), time.Time{}, time.Time{}, 500)
	require.NoError(t, err)

	assert.Equal(t, 10, repo.lastLimit)
	require.Len(t, products, 1)
	assert.Equal(t, "Rice 5kg", products[0].ProductName)
}

func TestGetDailySalesClampsDays(t *testing.T) {
	repo := &fakeReportRepo{daily: []repository.DailySalesResult{
		{Date: time.Date(2026, 8, 28, 0, 0, 0, 0, time.UTC), SaleCount: 5, Revenue: 7200},
	}}
	svc := NewReportService(repo, newFakeProductRepo())

	points, err := svc.GetDailySales(context.Background(), 365)
	require.NoError(t, err)

	assert.Equal(t, 90, repo.lastDaysAsked)
	require.Len(t, points, 1)
	assert.Equal(t, "2026-08-28", points[0].Date)
}

func TestGetStockReportSumsValueOfLowStockItems(t *testing.T) {
	rice := riceProduct(5)
	rice.MinStockLevel = 20
	svc := NewReportService(&fakeReportRepo{}, newFakeProductRepo(rice))

	report, err := svc.GetStockReport(context.Background())
	require.NoError(t, err)

	require.Len(t, report.LowStockItems, 1)
	assert.Equal(t, "Rice 5kg", report.LowStockItems[0].Name)
	assert.InDelta(t, 5*450.0, report.TotalValue, epsilon)
}
