package request

// AddItemRequest adds a product to the active cart
type AddItemRequest struct {
	ProductID string `json:"product_id" binding:"required,uuid"`
	Quantity  int    `json:"quantity" binding:"omitempty,gt=0"`
}

// SetQuantityRequest sets the quantity of a cart line.
// A quantity of zero or less removes the line.
type SetQuantityRequest struct {
	Quantity int `json:"quantity"`
}

// OverridePriceRequest overrides the unit price of a cart line
type OverridePriceRequest struct {
	Price float64 `json:"price" binding:"required,gt=0"`
}

// LineDiscountRequest applies a percentage discount to a cart line
type LineDiscountRequest struct {
	DiscountPercent float64 `json:"discount_percent" binding:"min=0,max=100"`
}

// SaleDiscountRequest applies an ad hoc sale-wide discount
type SaleDiscountRequest struct {
	Type  string  `json:"type" binding:"required,oneof=percentage fixed"`
	Value float64 `json:"value" binding:"required,gt=0"`
	Name  string  `json:"name"`
}

// PresetDiscountRequest applies a stored discount to the cart
type PresetDiscountRequest struct {
	DiscountID string `json:"discount_id" binding:"required,uuid"`
}

// SwitchSaleTypeRequest switches the cart between retail and wholesale pricing
type SwitchSaleTypeRequest struct {
	SaleType string `json:"sale_type" binding:"required,oneof=retail wholesale"`
}

// PayRequest settles the cart with a single tender
type PayRequest struct {
	Method       string  `json:"method" binding:"required,oneof=cash mpesa card"`
	CashReceived float64 `json:"cash_received"`
	MpesaPhone   string  `json:"mpesa_phone"`
}

// SplitPaymentEntry is one tender of a split payment
type SplitPaymentEntry struct {
	Method           string  `json:"method" binding:"required,oneof=cash mpesa card"`
	Amount           float64 `json:"amount" binding:"required,gt=0"`
	MpesaPhoneNumber *string `json:"mpesa_phone_number,omitempty"`
	CardReference    *string `json:"card_reference,omitempty"`
}

// SplitPayRequest settles the cart across up to three tenders
type SplitPayRequest struct {
	Payments []SplitPaymentEntry `json:"payments" binding:"required,min=1,max=3,dive"`
}

// SaleFilterRequest represents sale history filter parameters
type SaleFilterRequest struct {
	Search        string `form:"search"`
	Status        string `form:"status"`
	PaymentMethod string `form:"payment_method"`
	StartDate     string `form:"start_date"`
	EndDate       string `form:"end_date"`
	SortBy        string `form:"sort_by"`
	SortOrder     string `form:"sort_order"`
	Page          int    `form:"page"`
	PerPage       int    `form:"per_page"`
}
