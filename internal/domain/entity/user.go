package entity

import (
	"time"

	"github.com/dukapos/dukapos-api/internal/domain/enum"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// User represents a till user (admin or attendant)
type User struct {
	ID          uuid.UUID      `gorm:"type:uuid;primary_key" json:"id"`
	Username    string         `gorm:"size:100;unique;not null" json:"username"`
	Password    string         `gorm:"size:255" json:"-"`
	FullName    string         `gorm:"size:255;not null" json:"full_name"`
	Email       string         `gorm:"size:255;unique" json:"email"`
	Role        enum.UserRole  `gorm:"size:20;not null;default:'attendant'" json:"role"`
	Permissions []string       `gorm:"serializer:json;type:text" json:"permissions"`
	Active      bool           `gorm:"default:true" json:"active"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`

	// Relationships
	Sales []Sale `gorm:"foreignKey:UserID" json:"-"`
}

// BeforeCreate generates a UUID before creating a new user
func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the User model
func (User) TableName() string {
	return "users"
}

// HasPermission checks if the user may perform a guarded action.
// Admins hold every permission implicitly.
func (u *User) HasPermission(name string) bool {
	if u.Role == enum.UserRoleAdmin {
		return true
	}
	for _, p := range u.Permissions {
		if p == name {
			return true
		}
	}
	return false
}

// Permission names guarding till actions
const (
	PermissionEditPrices  = "edit_prices"
	PermissionVoidSales   = "void_sales"
	PermissionViewReports = "view_reports"
)
