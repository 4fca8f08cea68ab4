package handler

import (
	"github.com/dukapos/dukapos-api/internal/application/service"
	"github.com/dukapos/dukapos-api/internal/domain/enum"
	"github.com/dukapos/dukapos-api/internal/presentation/http/dto/request"
	"github.com/dukapos/dukapos-api/internal/presentation/http/dto/response"
	"github.com/gin-gonic/gin"
)

// SettingsHandler handles store settings HTTP requests
type SettingsHandler struct {
	settingsService *service.SettingsService
}

// NewSettingsHandler creates a new settings handler
func NewSettingsHandler(settingsService *service.SettingsService) *SettingsHandler {
	return &SettingsHandler{settingsService: settingsService}
}

// Get handles getting the store settings
func (h *SettingsHandler) Get(c *gin.Context) {
	settings, err := h.settingsService.GetSettings(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Settings retrieved successfully", settings)
}

// Update handles updating the store settings
func (h *SettingsHandler) Update(c *gin.Context) {
	var req request.UpdateSettingsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	input := &service.UpdateSettingsInput{
		BusinessName:       req.BusinessName,
		BusinessAddress:    req.BusinessAddress,
		BusinessPhone:      req.BusinessPhone,
		CurrencyCode:       req.CurrencyCode,
		CurrencySymbol:     req.CurrencySymbol,
		TaxEnabled:         req.TaxEnabled,
		TaxRate:            req.TaxRate,
		TaxName:            req.TaxName,
		AllowSplitPayments: req.AllowSplitPayments,
		ReceiptFooter:      req.ReceiptFooter,

		MpesaEnabled:        req.MpesaEnabled,
		MpesaEnvironment:    req.MpesaEnvironment,
		MpesaShortcode:      req.MpesaShortcode,
		MpesaPasskey:        req.MpesaPasskey,
		MpesaConsumerKey:    req.MpesaConsumerKey,
		MpesaConsumerSecret: req.MpesaConsumerSecret,
	}
	if req.DefaultSaleType != nil {
		saleType := enum.SaleType(*req.DefaultSaleType)
		input.DefaultSaleType = &saleType
	}

	settings, err := h.settingsService.UpdateSettings(c.Request.Context(), input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Settings updated successfully", settings)
}
