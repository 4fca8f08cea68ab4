package service

import (
	"context"
	"time"

	"github.com/dukapos/dukapos-api/internal/domain/entity"
	"github.com/dukapos/dukapos-api/internal/domain/enum"
	"github.com/dukapos/dukapos-api/internal/domain/repository"
	"github.com/dukapos/dukapos-api/pkg/apperror"
	"github.com/google/uuid"
)

// DiscountService manages the preset discount catalog and resolves
// which discounts are currently applicable at the till.
type DiscountService struct {
	discountRepo repository.DiscountRepository
}

// NewDiscountService creates a new discount service
func NewDiscountService(discountRepo repository.DiscountRepository) *DiscountService {
	return &DiscountService{discountRepo: discountRepo}
}

// CreateDiscountInput represents the create discount input
type CreateDiscountInput struct {
	Name                 string
	Code                 *string
	Type                 enum.DiscountType
	Scope                enum.DiscountScope
	Value                float64
	MinPurchase          *float64
	MaxDiscount          *float64
	Active               bool
	AllowAttendantToggle bool
	StartDate            *time.Time
	EndDate              *time.Time
}

func validateDiscountInput(discountType enum.DiscountType, value float64, start, end *time.Time) error {
	if !discountType.Valid() {
		return apperror.NewBadRequestError("invalid discount type")
	}
	if value <= 0 {
		return apperror.NewBadRequestError("discount value must be greater than zero")
	}
	if start != nil && end != nil && end.Before(*start) {
		return apperror.NewBadRequestError("end date must not precede start date")
	}
	return nil
}

// CreateDiscount creates a new preset discount
func (s *DiscountService) CreateDiscount(ctx context.Context, input *CreateDiscountInput) (*entity.Discount, error) {
	if input.Name == "" {
		return nil, apperror.NewBadRequestError("discount name is required")
	}
	if err := validateDiscountInput(input.Type, input.Value, input.StartDate, input.EndDate); err != nil {
		return nil, err
	}
	scope := input.Scope
	if scope == "" {
		scope = enum.DiscountScopeSale
	}
	if !scope.Valid() {
		return nil, apperror.NewBadRequestError("invalid discount scope")
	}

	discount := &entity.Discount{
		Name:                 input.Name,
		Code:                 input.Code,
		Type:                 input.Type,
		Scope:                scope,
		Value:                input.Value,
		MinPurchase:          input.MinPurchase,
		MaxDiscount:          input.MaxDiscount,
		Active:               input.Active,
		AllowAttendantToggle: input.AllowAttendantToggle,
		StartDate:            input.StartDate,
		EndDate:              input.EndDate,
	}
	if err := s.discountRepo.Create(ctx, discount); err != nil {
		return nil, err
	}
	return discount, nil
}

// GetDiscount retrieves a discount by ID
func (s *DiscountService) GetDiscount(ctx context.Context, id uuid.UUID) (*entity.Discount, error) {
	discount, err := s.discountRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if discount == nil {
		return nil, apperror.NewNotFoundError("Discount")
	}
	return discount, nil
}

// UpdateDiscount updates an existing discount
func (s *DiscountService) UpdateDiscount(ctx context.Context, id uuid.UUID, input *CreateDiscountInput) (*entity.Discount, error) {
	discount, err := s.GetDiscount(ctx, id)
	if err != nil {
		return nil, err
	}
	if input.Name == "" {
		return nil, apperror.NewBadRequestError("discount name is required")
	}
	if err := validateDiscountInput(input.Type, input.Value, input.StartDate, input.EndDate); err != nil {
		return nil, err
	}

	discount.Name = input.Name
	discount.Code = input.Code
	discount.Type = input.Type
	if input.Scope != "" {
		discount.Scope = input.Scope
	}
	discount.Value = input.Value
	discount.MinPurchase = input.MinPurchase
	discount.MaxDiscount = input.MaxDiscount
	discount.Active = input.Active
	discount.AllowAttendantToggle = input.AllowAttendantToggle
	discount.StartDate = input.StartDate
	discount.EndDate = input.EndDate

	if err := s.discountRepo.Update(ctx, discount); err != nil {
		return nil, err
	}
	return discount, nil
}

// DeleteDiscount removes a discount
func (s *DiscountService) DeleteDiscount(ctx context.Context, id uuid.UUID) error {
	if _, err := s.GetDiscount(ctx, id); err != nil {
		return err
	}
	return s.discountRepo.Delete(ctx, id)
}

// ListDiscounts lists the full discount catalog in creation order
func (s *DiscountService) ListDiscounts(ctx context.Context) ([]entity.Discount, error) {
	return s.discountRepo.List(ctx)
}

// ListActiveDiscounts returns discounts applicable right now, in
// creation order. Open-ended validity windows are honored.
func (s *DiscountService) ListActiveDiscounts(ctx context.Context) ([]entity.Discount, error) {
	return s.discountRepo.ListActive(ctx, time.Now())
}
