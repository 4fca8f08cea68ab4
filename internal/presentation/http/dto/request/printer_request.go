package request

// CreatePrinterRequest registers a new receipt printer
type CreatePrinterRequest struct {
	Name      string `json:"name" binding:"required,min=1,max=255"`
	Type      string `json:"type" binding:"required,oneof=usb network null"`
	Address   string `json:"address" binding:"omitempty,max=255"`
	Port      int    `json:"port" binding:"omitempty,min=1,max=65535"`
	Width     int    `json:"width" binding:"omitempty,min=24,max=64"`
	IsDefault bool   `json:"is_default"`
}

// UpdatePrinterRequest updates a receipt printer configuration
type UpdatePrinterRequest struct {
	Name    *string `json:"name" binding:"omitempty,min=1,max=255"`
	Type    *string `json:"type" binding:"omitempty,oneof=usb network null"`
	Address *string `json:"address" binding:"omitempty,max=255"`
	Port    *int    `json:"port" binding:"omitempty,min=1,max=65535"`
	Width   *int    `json:"width" binding:"omitempty,min=24,max=64"`
}

// PrintReceiptRequest is the request body for reprinting a sale receipt.
type PrintReceiptRequest struct {
	SaleID string `json:"sale_id" binding:"required,uuid"`
}
