package handler

import (
	"github.com/dukapos/dukapos-api/internal/application/service"
	"github.com/dukapos/dukapos-api/internal/presentation/http/dto/request"
	"github.com/dukapos/dukapos-api/internal/presentation/http/dto/response"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// MpesaHandler handles M-Pesa STK push HTTP requests
type MpesaHandler struct {
	mpesaService *service.MpesaService
}

// NewMpesaHandler creates a new M-Pesa handler
func NewMpesaHandler(mpesaService *service.MpesaService) *MpesaHandler {
	return &MpesaHandler{mpesaService: mpesaService}
}

// InitiateSTKPush handles sending an STK prompt to a customer phone
func (h *MpesaHandler) InitiateSTKPush(c *gin.Context) {
	var req request.STKPushRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	input := &service.InitiateSTKPushInput{
		Phone:  req.Phone,
		Amount: req.Amount,
	}
	if req.SaleID != nil {
		saleID, err := uuid.Parse(*req.SaleID)
		if err != nil {
			response.BadRequest(c, "Invalid sale_id")
			return
		}
		input.SaleID = &saleID
	}

	tx, err := h.mpesaService.InitiateSTKPush(c.Request.Context(), input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "STK push initiated", tx)
}

// CheckStatus handles polling a pending STK transaction
func (h *MpesaHandler) CheckStatus(c *gin.Context) {
	checkoutRequestID := c.Param("checkout_request_id")
	if checkoutRequestID == "" {
		response.BadRequest(c, "Checkout request ID is required")
		return
	}

	tx, err := h.mpesaService.CheckStatus(c.Request.Context(), checkoutRequestID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Transaction status retrieved", tx)
}

// Callback handles the Daraja result callback. It always returns 200 so
// Safaricom does not retry; processing errors are logged server side.
func (h *MpesaHandler) Callback(c *gin.Context) {
	var callback service.STKCallback
	if err := c.ShouldBindJSON(&callback); err != nil {
		c.JSON(200, gin.H{"ResultCode": 0, "ResultDesc": "Accepted"})
		return
	}

	_ = h.mpesaService.ProcessCallback(c.Request.Context(), &callback)
	c.JSON(200, gin.H{"ResultCode": 0, "ResultDesc": "Accepted"})
}

// ListBySale handles listing M-Pesa transactions recorded for a sale
func (h *MpesaHandler) ListBySale(c *gin.Context) {
	saleID, ok := parseIDParam(c, "sale_id")
	if !ok {
		return
	}

	transactions, err := h.mpesaService.ListBySale(c.Request.Context(), saleID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Transactions retrieved", transactions)
}
