package request

// CreateDiscountRequest represents a preset discount creation request
type CreateDiscountRequest struct {
	Name                 string   `json:"name" binding:"required,min=2,max=255"`
	Code                 *string  `json:"code" binding:"omitempty,max=50"`
	Type                 string   `json:"type" binding:"required,oneof=percentage fixed"`
	Scope                string   `json:"scope" binding:"omitempty,oneof=item sale"`
	Value                float64  `json:"value" binding:"required,gt=0"`
	MinPurchase          *float64 `json:"min_purchase" binding:"omitempty,gt=0"`
	MaxDiscount          *float64 `json:"max_discount" binding:"omitempty,gt=0"`
	Active               *bool    `json:"active"`
	AllowAttendantToggle *bool    `json:"allow_attendant_toggle"`
	StartDate            *string  `json:"start_date"`
	EndDate              *string  `json:"end_date"`
}

// UpdateDiscountRequest replaces a preset discount's definition
type UpdateDiscountRequest struct {
	Name                 string   `json:"name" binding:"required,min=2,max=255"`
	Code                 *string  `json:"code" binding:"omitempty,max=50"`
	Type                 string   `json:"type" binding:"required,oneof=percentage fixed"`
	Scope                string   `json:"scope" binding:"omitempty,oneof=item sale"`
	Value                float64  `json:"value" binding:"required,gt=0"`
	MinPurchase          *float64 `json:"min_purchase" binding:"omitempty,gt=0"`
	MaxDiscount          *float64 `json:"max_discount" binding:"omitempty,gt=0"`
	Active               *bool    `json:"active"`
	AllowAttendantToggle *bool    `json:"allow_attendant_toggle"`
	StartDate            *string  `json:"start_date"`
	EndDate              *string  `json:"end_date"`
}
