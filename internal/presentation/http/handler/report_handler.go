package handler

import (
	"strconv"
	"time"

	"github.com/dukapos/dukapos-api/internal/application/service"
	"github.com/dukapos/dukapos-api/internal/presentation/http/dto/response"
	"github.com/gin-gonic/gin"
)

// ReportHandler handles sales and stock report HTTP requests
type ReportHandler struct {
	reportService *service.ReportService
}

// NewReportHandler creates a new report handler
func NewReportHandler(reportService *service.ReportService) *ReportHandler {
	return &ReportHandler{reportService: reportService}
}

// dateRange reads optional from/to query parameters. Zero values mean
// the service's default range.
func dateRange(c *gin.Context) (time.Time, time.Time, bool) {
	var from, to time.Time

	if v := c.Query("from"); v != "" {
		parsed, err := time.Parse("2006-01-02", v)
		if err != nil {
			response.BadRequest(c, "Invalid from date, expected YYYY-MM-DD")
			return from, to, false
		}
		from = parsed
	}
	if v := c.Query("to"); v != "" {
		parsed, err := time.Parse("2006-01-02", v)
		if err != nil {
			response.BadRequest(c, "Invalid to date, expected YYYY-MM-DD")
			return from, to, false
		}
		// Include the whole end day
		to = parsed.Add(24*time.Hour - time.Nanosecond)
	}
	return from, to, true
}

// SalesSummary handles the sales summary report
func (h *ReportHandler) SalesSummary(c *gin.Context) {
	from, to, ok := dateRange(c)
	if !ok {
		return
	}

	summary, err := h.reportService.GetSalesSummary(c.Request.Context(), from, to)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Sales summary retrieved", summary)
}

// TopProducts handles the top selling products report
func (h *ReportHandler) TopProducts(c *gin.Context) {
	from, to, ok := dateRange(c)
	if !ok {
		return
	}
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))

	products, err := h.reportService.GetTopProducts(c.Request.Context(), from, to, limit)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Top products retrieved", products)
}

// DailySales handles the daily sales trend report
func (h *ReportHandler) DailySales(c *gin.Context) {
	days, _ := strconv.Atoi(c.DefaultQuery("days", "7"))

	points, err := h.reportService.GetDailySales(c.Request.Context(), days)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Daily sales retrieved", points)
}

// SalesByAttendant handles the per-attendant sales report
func (h *ReportHandler) SalesByAttendant(c *gin.Context) {
	from, to, ok := dateRange(c)
	if !ok {
		return
	}

	rows, err := h.reportService.GetSalesByAttendant(c.Request.Context(), from, to)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Attendant sales retrieved", rows)
}

// StockReport handles the stock level report
func (h *ReportHandler) StockReport(c *gin.Context) {
	report, err := h.reportService.GetStockReport(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Stock report retrieved", report)
}
