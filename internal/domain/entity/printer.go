package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// PrinterConfig represents a configured receipt printer
type PrinterConfig struct {
	ID        uuid.UUID      `gorm:"type:uuid;primary_key" json:"id"`
	Name      string         `gorm:"size:255;not null" json:"name"`
	Type      string         `gorm:"size:20;not null;default:'null'" json:"type"` // usb, network, null
	Address   string         `gorm:"size:255" json:"address"`
	Port      int            `gorm:"default:9100" json:"port"`
	Width     int            `gorm:"default:42" json:"width"`
	IsDefault bool           `gorm:"default:false" json:"is_default"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// BeforeCreate generates a UUID before creating a new printer config
func (p *PrinterConfig) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the PrinterConfig model
func (PrinterConfig) TableName() string {
	return "printer_configs"
}
