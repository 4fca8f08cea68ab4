package entity

import (
	"time"

	"github.com/dukapos/dukapos-api/internal/domain/enum"
)

// AppSettings holds the single row of store-wide configuration.
// There is always exactly one row with ID 1.
type AppSettings struct {
	ID                 uint          `gorm:"primary_key" json:"id"`
	BusinessName       string        `gorm:"size:255;default:'DukaPOS'" json:"business_name"`
	BusinessAddress    string        `gorm:"type:text" json:"business_address"`
	BusinessPhone      string        `gorm:"size:50" json:"business_phone"`
	CurrencyCode       string        `gorm:"size:10;default:'KES'" json:"currency_code"`
	CurrencySymbol     string        `gorm:"size:10;default:'KSh'" json:"currency_symbol"`
	TaxEnabled         bool          `gorm:"default:true" json:"tax_enabled"`
	TaxRate            float64       `gorm:"default:16" json:"tax_rate"`
	TaxName            string        `gorm:"size:50;default:'VAT'" json:"tax_name"`
	DefaultSaleType    enum.SaleType `gorm:"size:20;default:'retail'" json:"default_sale_type"`
	AllowSplitPayments bool          `gorm:"default:true" json:"allow_split_payments"`
	ReceiptFooter      string        `gorm:"type:text" json:"receipt_footer"`

	// M-Pesa Daraja credentials. Secrets never leave the API.
	MpesaEnabled        bool   `gorm:"default:false" json:"mpesa_enabled"`
	MpesaEnvironment    string `gorm:"size:20;default:'sandbox'" json:"mpesa_environment"`
	MpesaShortcode      string `gorm:"size:20" json:"mpesa_shortcode"`
	MpesaPasskey        string `gorm:"size:255" json:"-"`
	MpesaConsumerKey    string `gorm:"size:255" json:"-"`
	MpesaConsumerSecret string `gorm:"size:255" json:"-"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName returns the table name for the AppSettings model
func (AppSettings) TableName() string {
	return "app_settings"
}
