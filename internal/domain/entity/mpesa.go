package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// MpesaTransaction records an STK push attempt and its outcome
type MpesaTransaction struct {
	ID                uuid.UUID  `gorm:"type:uuid;primary_key" json:"id"`
	SaleID            *uuid.UUID `gorm:"type:uuid;index" json:"sale_id,omitempty"`
	Phone             string     `gorm:"size:20;not null" json:"phone"`
	Amount            float64    `gorm:"not null" json:"amount"`
	MerchantRequestID string     `gorm:"size:100" json:"merchant_request_id"`
	CheckoutRequestID string     `gorm:"size:100;index" json:"checkout_request_id"`
	Status            string     `gorm:"size:20;default:'pending'" json:"status"` // pending, success, failed
	ResultCode        int        `gorm:"default:0" json:"result_code"`
	ResultDesc        string     `gorm:"size:255" json:"result_desc"`
	MpesaReceipt      string     `gorm:"size:50" json:"mpesa_receipt"`
	CreatedAt         time.Time  `json:"created_at"`
	UpdatedAt         time.Time  `json:"updated_at"`
}

// BeforeCreate generates a UUID before creating a new transaction
func (t *MpesaTransaction) BeforeCreate(tx *gorm.DB) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the MpesaTransaction model
func (MpesaTransaction) TableName() string {
	return "mpesa_transactions"
}
