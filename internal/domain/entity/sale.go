package entity

import (
	"time"

	"github.com/dukapos/dukapos-api/internal/domain/enum"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Sale represents a finished, held, or cancelled till transaction.
// Line items and split payments are frozen copies serialized with the
// sale so later catalog edits never rewrite history.
type Sale struct {
	ID            uuid.UUID          `gorm:"type:uuid;primary_key" json:"id"`
	ReceiptNumber string             `gorm:"size:100;unique;not null" json:"receipt_number"`
	UserID        uuid.UUID          `gorm:"type:uuid;not null;index" json:"user_id"`
	AttendantName string             `gorm:"size:255" json:"attendant_name"`
	Status        enum.SaleStatus    `gorm:"size:20;not null;index" json:"status"`
	SaleType      enum.SaleType      `gorm:"size:20;not null;default:'retail'" json:"sale_type"`
	Items         []SaleItem         `gorm:"serializer:json;type:text" json:"items"`
	Subtotal      float64            `gorm:"default:0" json:"subtotal"`
	ItemDiscounts float64            `gorm:"default:0" json:"item_discounts"`
	SaleDiscount  *SaleDiscount      `gorm:"serializer:json;type:text" json:"sale_discount,omitempty"`
	TotalDiscount float64            `gorm:"default:0" json:"total_discount"`
	// DiscountPercent is the sale-wide discount value as entered, zero
	// when no sale discount is applied
	DiscountPercent float64 `gorm:"default:0" json:"discount_percent"`
	TaxAmount     float64            `gorm:"default:0" json:"tax_amount"`
	Total         float64            `gorm:"default:0" json:"total"`
	PaymentMethod enum.PaymentMethod `gorm:"size:20" json:"payment_method,omitempty"`
	CashReceived  float64            `gorm:"default:0" json:"cash_received"`
	ChangeAmount  float64            `gorm:"default:0" json:"change_amount"`
	MpesaPhone    *string            `gorm:"size:20" json:"mpesa_phone,omitempty"`
	SplitPayments []SplitPayment     `gorm:"serializer:json;type:text" json:"split_payments,omitempty"`
	HeldAt        *time.Time         `json:"held_at,omitempty"`
	CompletedAt   *time.Time         `json:"completed_at,omitempty"`
	CancelledAt   *time.Time         `json:"cancelled_at,omitempty"`
	CreatedAt     time.Time          `json:"created_at"`
	UpdatedAt     time.Time          `json:"updated_at"`
	DeletedAt     gorm.DeletedAt     `gorm:"index" json:"-"`

	// Relationships
	User User `gorm:"foreignKey:UserID" json:"-"`
}

// SaleItem is a frozen cart line carried inside a sale. It is stored as
// JSON on the sale row, not as its own table.
type SaleItem struct {
	LineID                  uuid.UUID `json:"line_id"`
	ProductID               uuid.UUID `json:"product_id"`
	Name                    string    `json:"name"`
	Quantity                int       `json:"quantity"`
	OriginalPrice           float64   `json:"original_price"`
	Price                   float64   `json:"price"`
	DiscountPercent         float64   `json:"discount_percent"`
	DiscountAmount          float64   `json:"discount_amount"`
	TaxAmount               float64   `json:"tax_amount"`
	Total                   float64   `json:"total"`
	EditedByAttendant       bool      `json:"edited_by_attendant,omitempty"`
	OriginalPriceBeforeEdit *float64  `json:"original_price_before_edit,omitempty"`
}

// SaleDiscount is the sale-wide discount applied on top of line discounts
type SaleDiscount struct {
	Type  enum.DiscountType `json:"type"`
	Value float64           `json:"value"`
	Name  string            `json:"name,omitempty"`
}

// SplitPayment is one tender entry of a split settlement
type SplitPayment struct {
	ID               uuid.UUID          `json:"id"`
	Method           enum.PaymentMethod `json:"method"`
	Amount           float64            `json:"amount"`
	MpesaPhoneNumber *string            `json:"mpesa_phone_number,omitempty"`
	CardReference    *string            `json:"card_reference,omitempty"`
}

// BeforeCreate generates a UUID before creating a new sale
func (s *Sale) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Sale model
func (Sale) TableName() string {
	return "sales"
}

// TotalItems returns the summed quantity across all lines
func (s *Sale) TotalItems() int {
	n := 0
	for _, item := range s.Items {
		n += item.Quantity
	}
	return n
}
