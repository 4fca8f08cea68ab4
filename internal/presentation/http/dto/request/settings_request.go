package request

// UpdateSettingsRequest represents a store settings update request.
// All fields are optional; only supplied fields are changed.
type UpdateSettingsRequest struct {
	BusinessName       *string  `json:"business_name" binding:"omitempty,min=1,max=255"`
	BusinessAddress    *string  `json:"business_address"`
	BusinessPhone      *string  `json:"business_phone" binding:"omitempty,max=50"`
	CurrencyCode       *string  `json:"currency_code" binding:"omitempty,len=3"`
	CurrencySymbol     *string  `json:"currency_symbol" binding:"omitempty,max=10"`
	TaxEnabled         *bool    `json:"tax_enabled"`
	TaxRate            *float64 `json:"tax_rate" binding:"omitempty,min=0,max=100"`
	TaxName            *string  `json:"tax_name" binding:"omitempty,max=50"`
	DefaultSaleType    *string  `json:"default_sale_type" binding:"omitempty,oneof=retail wholesale"`
	AllowSplitPayments *bool    `json:"allow_split_payments"`
	ReceiptFooter      *string  `json:"receipt_footer"`

	MpesaEnabled        *bool   `json:"mpesa_enabled"`
	MpesaEnvironment    *string `json:"mpesa_environment" binding:"omitempty,oneof=sandbox production"`
	MpesaShortcode      *string `json:"mpesa_shortcode" binding:"omitempty,max=20"`
	MpesaPasskey        *string `json:"mpesa_passkey"`
	MpesaConsumerKey    *string `json:"mpesa_consumer_key"`
	MpesaConsumerSecret *string `json:"mpesa_consumer_secret"`
}

// STKPushRequest initiates an M-Pesa STK push from the settings test flow
type STKPushRequest struct {
	Phone  string  `json:"phone" binding:"required,min=9"`
	Amount float64 `json:"amount" binding:"required,gt=0"`
	SaleID *string `json:"sale_id" binding:"omitempty,uuid"`
}
