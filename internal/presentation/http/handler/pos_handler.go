package handler

import (
	"github.com/dukapos/dukapos-api/internal/application/service"
	"github.com/dukapos/dukapos-api/internal/domain/entity"
	"github.com/dukapos/dukapos-api/internal/domain/enum"
	"github.com/dukapos/dukapos-api/internal/presentation/http/dto/request"
	"github.com/dukapos/dukapos-api/internal/presentation/http/dto/response"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// PosHandler handles the till: cart operations, hold/resume, and payment
type PosHandler struct {
	checkoutService *service.CheckoutService
	userService     *service.UserService
}

// NewPosHandler creates a new POS handler
func NewPosHandler(checkoutService *service.CheckoutService, userService *service.UserService) *PosHandler {
	return &PosHandler{
		checkoutService: checkoutService,
		userService:     userService,
	}
}

// currentUser loads the authenticated user for operations that record
// who performed them.
func (h *PosHandler) currentUser(c *gin.Context) (*entity.User, bool) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return nil, false
	}
	user, err := h.userService.GetUser(c.Request.Context(), *userID)
	if err != nil {
		response.Error(c, err)
		return nil, false
	}
	return user, true
}

func parseIDParam(c *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		response.BadRequest(c, "Invalid "+name)
		return uuid.Nil, false
	}
	return id, true
}

// GetCart returns the current cart with totals
// @Summary Get Cart
// @Tags pos
// @Security BearerAuth
// @Success 200 {object} response.APIResponse
// @Router /pos/cart [get]
func (h *PosHandler) GetCart(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	cart, err := h.checkoutService.GetCart(c.Request.Context(), *userID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Cart retrieved", cart)
}

// AddItem adds a product to the cart
// @Summary Add Item
// @Tags pos
// @Security BearerAuth
// @Param request body request.AddItemRequest true "Product to add"
// @Success 200 {object} response.APIResponse
// @Router /pos/cart/items [post]
func (h *PosHandler) AddItem(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	var req request.AddItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}
	productID, err := uuid.Parse(req.ProductID)
	if err != nil {
		response.BadRequest(c, "Invalid product_id")
		return
	}

	quantity := req.Quantity
	if quantity <= 0 {
		quantity = 1
	}

	cart, err := h.checkoutService.AddProductQuantity(c.Request.Context(), *userID, productID, quantity)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Item added", cart)
}

// SetQuantity updates a cart line's quantity
// @Summary Set Quantity
// @Tags pos
// @Security BearerAuth
// @Param line_id path string true "Cart line ID"
// @Param request body request.SetQuantityRequest true "New quantity"
// @Success 200 {object} response.APIResponse
// @Router /pos/cart/items/{line_id}/quantity [put]
func (h *PosHandler) SetQuantity(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}
	lineID, ok := parseIDParam(c, "line_id")
	if !ok {
		return
	}

	var req request.SetQuantityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	cart, err := h.checkoutService.SetQuantity(c.Request.Context(), *userID, lineID, req.Quantity)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Quantity updated", cart)
}

// RemoveItem removes a cart line
// @Summary Remove Item
// @Tags pos
// @Security BearerAuth
// @Param line_id path string true "Cart line ID"
// @Success 200 {object} response.APIResponse
// @Router /pos/cart/items/{line_id} [delete]
func (h *PosHandler) RemoveItem(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}
	lineID, ok := parseIDParam(c, "line_id")
	if !ok {
		return
	}

	cart, err := h.checkoutService.RemoveLine(c.Request.Context(), *userID, lineID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Item removed", cart)
}

// OverridePrice sets a manual unit price on a cart line
// @Summary Override Price
// @Tags pos
// @Security BearerAuth
// @Param line_id path string true "Cart line ID"
// @Param request body request.OverridePriceRequest true "New unit price"
// @Success 200 {object} response.APIResponse
// @Router /pos/cart/items/{line_id}/price [put]
func (h *PosHandler) OverridePrice(c *gin.Context) {
	user, ok := h.currentUser(c)
	if !ok {
		return
	}
	lineID, ok := parseIDParam(c, "line_id")
	if !ok {
		return
	}

	var req request.OverridePriceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	cart, err := h.checkoutService.OverridePrice(c.Request.Context(), user, lineID, req.Price)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Price overridden", cart)
}

// ApplyLineDiscount applies a percentage discount to a cart line
// @Summary Apply Line Discount
// @Tags pos
// @Security BearerAuth
// @Param line_id path string true "Cart line ID"
// @Param request body request.LineDiscountRequest true "Discount percent"
// @Success 200 {object} response.APIResponse
// @Router /pos/cart/items/{line_id}/discount [put]
func (h *PosHandler) ApplyLineDiscount(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}
	lineID, ok := parseIDParam(c, "line_id")
	if !ok {
		return
	}

	var req request.LineDiscountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	cart, err := h.checkoutService.ApplyLineDiscount(c.Request.Context(), *userID, lineID, req.DiscountPercent)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Line discount applied", cart)
}

// SwitchSaleType switches the cart between retail and wholesale pricing
// @Summary Switch Sale Type
// @Tags pos
// @Security BearerAuth
// @Param request body request.SwitchSaleTypeRequest true "Sale type"
// @Success 200 {object} response.APIResponse
// @Router /pos/cart/sale-type [put]
func (h *PosHandler) SwitchSaleType(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	var req request.SwitchSaleTypeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	cart, err := h.checkoutService.SwitchSaleType(c.Request.Context(), *userID, enum.SaleType(req.SaleType))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Sale type switched", cart)
}

// ApplyDiscount applies an ad hoc sale-wide discount
// @Summary Apply Sale Discount
// @Tags pos
// @Security BearerAuth
// @Param request body request.SaleDiscountRequest true "Discount"
// @Success 200 {object} response.APIResponse
// @Router /pos/cart/discount [put]
func (h *PosHandler) ApplyDiscount(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	var req request.SaleDiscountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	cart, err := h.checkoutService.ApplyAdHocDiscount(c.Request.Context(), *userID, enum.DiscountType(req.Type), req.Value)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Discount applied", cart)
}

// ApplyPresetDiscount applies a stored discount to the cart
// @Summary Apply Preset Discount
// @Tags pos
// @Security BearerAuth
// @Param request body request.PresetDiscountRequest true "Discount ID"
// @Success 200 {object} response.APIResponse
// @Router /pos/cart/discount/preset [put]
func (h *PosHandler) ApplyPresetDiscount(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	var req request.PresetDiscountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}
	discountID, err := uuid.Parse(req.DiscountID)
	if err != nil {
		response.BadRequest(c, "Invalid discount_id")
		return
	}

	cart, err := h.checkoutService.ApplyPresetDiscount(c.Request.Context(), *userID, discountID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Discount applied", cart)
}

// ClearDiscount removes the sale-wide discount from the cart
// @Summary Clear Sale Discount
// @Tags pos
// @Security BearerAuth
// @Success 200 {object} response.APIResponse
// @Router /pos/cart/discount [delete]
func (h *PosHandler) ClearDiscount(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	cart, err := h.checkoutService.ClearDiscount(c.Request.Context(), *userID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Discount cleared", cart)
}

// ClearCart empties the cart
// @Summary Clear Cart
// @Tags pos
// @Security BearerAuth
// @Success 200 {object} response.APIResponse
// @Router /pos/cart [delete]
func (h *PosHandler) ClearCart(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	if err := h.checkoutService.ClearCart(c.Request.Context(), *userID); err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Cart cleared", nil)
}

// HoldSale parks the current cart as a held sale
// @Summary Hold Sale
// @Tags pos
// @Security BearerAuth
// @Success 201 {object} response.APIResponse
// @Router /pos/hold [post]
func (h *PosHandler) HoldSale(c *gin.Context) {
	user, ok := h.currentUser(c)
	if !ok {
		return
	}

	sale, err := h.checkoutService.HoldSale(c.Request.Context(), user)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, "Sale held", sale)
}

// ListHeldSales lists all parked sales
// @Summary List Held Sales
// @Tags pos
// @Security BearerAuth
// @Success 200 {object} response.APIResponse
// @Router /pos/held [get]
func (h *PosHandler) ListHeldSales(c *gin.Context) {
	sales, err := h.checkoutService.ListHeldSales(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Held sales retrieved", sales)
}

// ResumeSale loads a held sale back into the cart
// @Summary Resume Sale
// @Tags pos
// @Security BearerAuth
// @Param id path string true "Held sale ID"
// @Success 200 {object} response.APIResponse
// @Router /pos/held/{id}/resume [post]
func (h *PosHandler) ResumeSale(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}
	saleID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	cart, err := h.checkoutService.ResumeSale(c.Request.Context(), *userID, saleID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Sale resumed", cart)
}

// Pay settles the cart with a single tender
// @Summary Pay
// @Tags pos
// @Security BearerAuth
// @Param request body request.PayRequest true "Payment"
// @Success 200 {object} response.APIResponse
// @Router /pos/pay [post]
func (h *PosHandler) Pay(c *gin.Context) {
	user, ok := h.currentUser(c)
	if !ok {
		return
	}

	var req request.PayRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	result, err := h.checkoutService.Pay(c.Request.Context(), user, &service.PaymentInput{
		Method:       enum.PaymentMethod(req.Method),
		CashReceived: req.CashReceived,
		MpesaPhone:   req.MpesaPhone,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Payment processed", result)
}

// PaySplit settles the cart across multiple tenders
// @Summary Pay Split
// @Tags pos
// @Security BearerAuth
// @Param request body request.SplitPayRequest true "Split payments"
// @Success 200 {object} response.APIResponse
// @Router /pos/pay/split [post]
func (h *PosHandler) PaySplit(c *gin.Context) {
	user, ok := h.currentUser(c)
	if !ok {
		return
	}

	var req request.SplitPayRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	payments := make([]entity.SplitPayment, 0, len(req.Payments))
	for _, p := range req.Payments {
		payments = append(payments, entity.SplitPayment{
			Method:           enum.PaymentMethod(p.Method),
			Amount:           p.Amount,
			MpesaPhoneNumber: p.MpesaPhoneNumber,
			CardReference:    p.CardReference,
		})
	}

	result, err := h.checkoutService.PaySplit(c.Request.Context(), user, payments)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Payment processed", result)
}

// CancelSale voids a sale and restores its stock
// @Summary Cancel Sale
// @Tags pos
// @Security BearerAuth
// @Param id path string true "Sale ID"
// @Success 200 {object} response.APIResponse
// @Router /pos/sales/{id}/cancel [post]
func (h *PosHandler) CancelSale(c *gin.Context) {
	user, ok := h.currentUser(c)
	if !ok {
		return
	}
	saleID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.checkoutService.CancelSale(c.Request.Context(), user, saleID); err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Sale cancelled", nil)
}
