package entity

// ReceiptHeader holds the store header printed at the top of a receipt.
type ReceiptHeader struct {
	StoreName string `json:"store_name"`
	Address   string `json:"address,omitempty"`
	Phone     string `json:"phone,omitempty"`
	TaxName   string `json:"tax_name,omitempty"`
}

// ReceiptLine represents a single line item on a receipt.
type ReceiptLine struct {
	Name      string  `json:"name"`
	Quantity  int     `json:"quantity"`
	UnitPrice float64 `json:"unit_price"`
	Discount  float64 `json:"discount,omitempty"`
	Total     float64 `json:"total"`
}

// ReceiptPayment is one settled tender printed on the receipt.
type ReceiptPayment struct {
	Method string  `json:"method"`
	Amount float64 `json:"amount"`
}

// Receipt is a value object representing a printable receipt.
// It is NOT a database entity; it is composed from sale data at print time.
type Receipt struct {
	Header         ReceiptHeader    `json:"header"`
	ReceiptNumber  string           `json:"receipt_number"`
	Date           string           `json:"date"`
	Attendant      string           `json:"attendant,omitempty"`
	CurrencySymbol string           `json:"currency_symbol,omitempty"`
	Lines          []ReceiptLine    `json:"lines"`
	Subtotal       float64          `json:"subtotal"`
	Discount       float64          `json:"discount"`
	Tax            float64          `json:"tax"`
	Total          float64          `json:"total"`
	Payments       []ReceiptPayment `json:"payments"`
	ChangeAmount   float64          `json:"change_amount"`
	Footer         string           `json:"footer,omitempty"`
}
