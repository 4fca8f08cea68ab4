package service

import (
	"context"
	"strings"

	"github.com/dukapos/dukapos-api/internal/domain/entity"
	"github.com/dukapos/dukapos-api/internal/domain/enum"
	"github.com/dukapos/dukapos-api/internal/domain/repository"
	"github.com/dukapos/dukapos-api/pkg/apperror"
	"github.com/dukapos/dukapos-api/pkg/pagination"
	"github.com/dukapos/dukapos-api/pkg/utils"
	"github.com/google/uuid"
)

// UserService handles user management operations. Users are created by
// admins; there is no self-service registration at the till.
type UserService struct {
	userRepo repository.UserRepository
}

// NewUserService creates a new user service
func NewUserService(userRepo repository.UserRepository) *UserService {
	return &UserService{userRepo: userRepo}
}

// CreateUserInput represents the input for creating a user
type CreateUserInput struct {
	Username    string
	Password    string
	FullName    string
	Email       string
	Role        string
	Permissions []string
}

// CreateUser creates a new till user
func (s *UserService) CreateUser(ctx context.Context, input *CreateUserInput) (*entity.User, error) {
	role := enum.UserRole(input.Role)
	if !role.Valid() {
		return nil, apperror.NewBadRequestError("invalid role")
	}

	username := strings.TrimSpace(input.Username)
	if username == "" {
		return nil, apperror.NewBadRequestError("username is required")
	}
	if len(input.Password) < 6 {
		return nil, apperror.NewBadRequestError("password must be at least 6 characters")
	}

	existing, err := s.userRepo.GetByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, apperror.NewConflictError("A user with this username already exists")
	}
	if input.Email != "" {
		existing, err = s.userRepo.GetByEmail(ctx, input.Email)
		if err != nil {
			return nil, err
		}
		if existing != nil {
			return nil, apperror.NewConflictError("A user with this email already exists")
		}
	}

	hashedPassword, err := utils.HashPassword(input.Password)
	if err != nil {
		return nil, err
	}

	user := &entity.User{
		Username:    username,
		Password:    hashedPassword,
		FullName:    input.FullName,
		Email:       input.Email,
		Role:        role,
		Permissions: input.Permissions,
		Active:      true,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// UpdateUserInput represents the input for updating a user
type UpdateUserInput struct {
	FullName    *string
	Email       *string
	Role        *string
	Permissions *[]string
	Active      *bool
	Password    *string
}

// UpdateUser updates an existing user
func (s *UserService) UpdateUser(ctx context.Context, userID uuid.UUID, input *UpdateUserInput) (*entity.User, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, apperror.ErrNotFound
	}

	if input.FullName != nil {
		user.FullName = *input.FullName
	}
	if input.Email != nil {
		user.Email = *input.Email
	}
	if input.Role != nil {
		role := enum.UserRole(*input.Role)
		if !role.Valid() {
			return nil, apperror.NewBadRequestError("invalid role")
		}
		user.Role = role
	}
	if input.Permissions != nil {
		user.Permissions = *input.Permissions
	}
	if input.Active != nil {
		user.Active = *input.Active
	}
	if input.Password != nil {
		if len(*input.Password) < 6 {
			return nil, apperror.NewBadRequestError("password must be at least 6 characters")
		}
		hashedPassword, err := utils.HashPassword(*input.Password)
		if err != nil {
			return nil, err
		}
		user.Password = hashedPassword
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// ListUsersInput represents the input for listing users
type ListUsersInput struct {
	Page    int
	PerPage int
	Search  string
}

// ListUsersOutput represents the output for listing users
type ListUsersOutput struct {
	Users      []entity.User
	Total      int64
	Page       int
	PerPage    int
	TotalPages int
}

// ListUsers returns a paginated list of users
func (s *UserService) ListUsers(ctx context.Context, input *ListUsersInput) (*ListUsersOutput, error) {
	params := &pagination.PaginationParams{
		Page:    input.Page,
		PerPage: input.PerPage,
	}
	params.Validate()

	users, total, err := s.userRepo.List(ctx, params, input.Search)
	if err != nil {
		return nil, err
	}

	totalPages := int(total) / params.PerPage
	if int(total)%params.PerPage > 0 {
		totalPages++
	}

	return &ListUsersOutput{
		Users:      users,
		Total:      total,
		Page:       params.Page,
		PerPage:    params.PerPage,
		TotalPages: totalPages,
	}, nil
}

// GetUser returns a user by ID
func (s *UserService) GetUser(ctx context.Context, userID uuid.UUID) (*entity.User, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, apperror.ErrNotFound
	}
	return user, nil
}

// DeleteUser soft deletes a user. The acting user cannot delete themselves.
func (s *UserService) DeleteUser(ctx context.Context, userID, actingUserID uuid.UUID) error {
	if userID == actingUserID {
		return apperror.NewBadRequestError("you cannot delete your own account")
	}

	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return err
	}
	if user == nil {
		return apperror.ErrNotFound
	}

	return s.userRepo.Delete(ctx, userID)
}
