package handler

import (
	"time"

	"github.com/dukapos/dukapos-api/internal/application/service"
	"github.com/dukapos/dukapos-api/internal/domain/enum"
	"github.com/dukapos/dukapos-api/internal/presentation/http/dto/request"
	"github.com/dukapos/dukapos-api/internal/presentation/http/dto/response"
	"github.com/gin-gonic/gin"
)

// DiscountHandler handles preset discount HTTP requests
type DiscountHandler struct {
	discountService *service.DiscountService
}

// NewDiscountHandler creates a new discount handler
func NewDiscountHandler(discountService *service.DiscountService) *DiscountHandler {
	return &DiscountHandler{discountService: discountService}
}

// parseDiscountDate accepts RFC 3339 timestamps or plain dates
func parseDiscountDate(value *string) (*time.Time, bool) {
	if value == nil || *value == "" {
		return nil, true
	}
	if t, err := time.Parse(time.RFC3339, *value); err == nil {
		return &t, true
	}
	if t, err := time.Parse("2006-01-02", *value); err == nil {
		return &t, true
	}
	return nil, false
}

func discountInput(c *gin.Context, req *request.CreateDiscountRequest) (*service.CreateDiscountInput, bool) {
	startDate, ok := parseDiscountDate(req.StartDate)
	if !ok {
		response.BadRequest(c, "Invalid start_date")
		return nil, false
	}
	endDate, ok := parseDiscountDate(req.EndDate)
	if !ok {
		response.BadRequest(c, "Invalid end_date")
		return nil, false
	}

	active := true
	if req.Active != nil {
		active = *req.Active
	}
	allowToggle := true
	if req.AllowAttendantToggle != nil {
		allowToggle = *req.AllowAttendantToggle
	}

	return &service.CreateDiscountInput{
		Name:                 req.Name,
		Code:                 req.Code,
		Type:                 enum.DiscountType(req.Type),
		Scope:                enum.DiscountScope(req.Scope),
		Value:                req.Value,
		MinPurchase:          req.MinPurchase,
		MaxDiscount:          req.MaxDiscount,
		Active:               active,
		AllowAttendantToggle: allowToggle,
		StartDate:            startDate,
		EndDate:              endDate,
	}, true
}

// List handles listing all preset discounts
func (h *DiscountHandler) List(c *gin.Context) {
	if c.Query("active") == "true" {
		discounts, err := h.discountService.ListActiveDiscounts(c.Request.Context())
		if err != nil {
			response.Error(c, err)
			return
		}
		response.OK(c, "Discounts retrieved successfully", discounts)
		return
	}

	discounts, err := h.discountService.ListDiscounts(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Discounts retrieved successfully", discounts)
}

// Get handles getting a single discount
func (h *DiscountHandler) Get(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	discount, err := h.discountService.GetDiscount(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Discount retrieved successfully", discount)
}

// Create handles creating a preset discount
func (h *DiscountHandler) Create(c *gin.Context) {
	var req request.CreateDiscountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	input, ok := discountInput(c, &req)
	if !ok {
		return
	}

	discount, err := h.discountService.CreateDiscount(c.Request.Context(), input)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, "Discount created successfully", discount)
}

// Update handles replacing a preset discount's definition
func (h *DiscountHandler) Update(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req request.UpdateDiscountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	input, ok := discountInput(c, (*request.CreateDiscountRequest)(&req))
	if !ok {
		return
	}

	discount, err := h.discountService.UpdateDiscount(c.Request.Context(), id, input)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Discount updated successfully", discount)
}

// Delete handles deleting a preset discount
func (h *DiscountHandler) Delete(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.discountService.DeleteDiscount(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}
