package request

// CreateUserRequest represents a user creation request
type CreateUserRequest struct {
	Username    string   `json:"username" binding:"required,min=2,max=100"`
	Password    string   `json:"password" binding:"required,min=6"`
	FullName    string   `json:"full_name" binding:"required,min=2,max=255"`
	Email       string   `json:"email" binding:"omitempty,email"`
	Role        string   `json:"role" binding:"required,oneof=admin attendant"`
	Permissions []string `json:"permissions"`
}

// UpdateUserRequest represents a user update request
type UpdateUserRequest struct {
	FullName    *string   `json:"full_name" binding:"omitempty,min=2,max=255"`
	Email       *string   `json:"email" binding:"omitempty,email"`
	Role        *string   `json:"role" binding:"omitempty,oneof=admin attendant"`
	Permissions *[]string `json:"permissions"`
	Active      *bool     `json:"active"`
	Password    *string   `json:"password" binding:"omitempty,min=6"`
}
