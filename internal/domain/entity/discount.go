package entity

import (
	"time"

	"github.com/dukapos/dukapos-api/internal/domain/enum"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Discount represents a preset discount managed by administrators.
// The checkout core only ever reads active, date-valid rows.
type Discount struct {
	ID                   uuid.UUID          `gorm:"type:uuid;primary_key" json:"id"`
	Name                 string             `gorm:"size:255;not null" json:"name"`
	Code                 *string            `gorm:"size:50;index" json:"code,omitempty"`
	Type                 enum.DiscountType  `gorm:"size:20;not null" json:"type"`
	Scope                enum.DiscountScope `gorm:"size:20;not null;default:'sale'" json:"scope"`
	Value                float64            `gorm:"not null" json:"value"`
	MinPurchase          *float64           `json:"min_purchase,omitempty"`
	MaxDiscount          *float64           `json:"max_discount,omitempty"`
	Active               bool               `gorm:"default:true" json:"active"`
	AllowAttendantToggle bool               `gorm:"default:true" json:"allow_attendant_toggle"`
	StartDate            *time.Time         `json:"start_date,omitempty"`
	EndDate              *time.Time         `json:"end_date,omitempty"`
	CreatedAt            time.Time          `json:"created_at"`
	UpdatedAt            time.Time          `json:"updated_at"`
	DeletedAt            gorm.DeletedAt     `gorm:"index" json:"-"`
}

// BeforeCreate generates a UUID before creating a new discount
func (d *Discount) BeforeCreate(tx *gorm.DB) error {
	if d.ID == uuid.Nil {
		d.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Discount model
func (Discount) TableName() string {
	return "discounts"
}

// IsCurrent reports whether the discount is active and within its
// validity window at the given instant. Nil dates are open-ended.
func (d *Discount) IsCurrent(now time.Time) bool {
	if !d.Active {
		return false
	}
	if d.StartDate != nil && now.Before(*d.StartDate) {
		return false
	}
	if d.EndDate != nil && now.After(*d.EndDate) {
		return false
	}
	return true
}
