package service

import (
	"context"
	"testing"
	"time"

	"github.com/dukapos/dukapos-api/internal/domain/entity"
	"github.com/dukapos/dukapos-api/internal/domain/enum"
	"github.com/dukapos/dukapos-api/pkg/apperror"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func presetDiscount(name string, active bool, start, end *time.Time) *entity.Discount {
	return &entity.Discount{
		ID:        uuid.New(),
		Name:      name,
		Type:      enum.DiscountTypePercentage,
		Scope:     enum.DiscountScopeSale,
		Value:     10,
		Active:    active,
		StartDate: start,
		EndDate:   end,
	}
}

func TestListActiveDiscounts_FiltersWindowAndFlag(t *testing.T) {
	now := time.Now()
	past := now.Add(-24 * time.Hour)
	future := now.Add(24 * time.Hour)

	repo := newFakeDiscountRepo(
		presetDiscount("always", true, nil, nil),
		presetDiscount("inactive", false, nil, nil),
		presetDiscount("current", true, &past, &future),
		presetDiscount("expired", true, &past, &past),
		presetDiscount("upcoming", true, &future, nil),
		presetDiscount("open-start", true, nil, &future),
	)
	svc := NewDiscountService(repo)

	active, err := svc.ListActiveDiscounts(context.Background())
	require.NoError(t, err)

	names := make([]string, len(active))
	for i, d := range active {
		names[i] = d.Name
	}
	// creation order preserved, no re-sort
	assert.Equal(t, []string{"always", "current", "open-start"}, names)
}

func TestCreateDiscount_Validation(t *testing.T) {
	svc := NewDiscountService(newFakeDiscountRepo())
	ctx := context.Background()

	_, err := svc.CreateDiscount(ctx, &CreateDiscountInput{Name: "", Type: enum.DiscountTypeFixed, Value: 10})
	assert.True(t, apperror.IsKind(err, apperror.KindValidation))

	_, err = svc.CreateDiscount(ctx, &CreateDiscountInput{Name: "Flat", Type: enum.DiscountTypeFixed, Value: 0})
	assert.True(t, apperror.IsKind(err, apperror.KindValidation))

	start := time.Now()
	end := start.Add(-time.Hour)
	_, err = svc.CreateDiscount(ctx, &CreateDiscountInput{Name: "Flat", Type: enum.DiscountTypeFixed, Value: 10, StartDate: &start, EndDate: &end})
	assert.True(t, apperror.IsKind(err, apperror.KindValidation))

	d, err := svc.CreateDiscount(ctx, &CreateDiscountInput{Name: "Flat", Type: enum.DiscountTypeFixed, Value: 10, Active: true})
	require.NoError(t, err)
	assert.Equal(t, enum.DiscountScopeSale, d.Scope)
}

func TestUpdateDiscount_NotFound(t *testing.T) {
	svc := NewDiscountService(newFakeDiscountRepo())

	_, err := svc.UpdateDiscount(context.Background(), uuid.New(), &CreateDiscountInput{Name: "x", Type: enum.DiscountTypeFixed, Value: 5})

	appErr := apperror.GetAppError(err)
	assert.Equal(t, 404, appErr.Code)
}
