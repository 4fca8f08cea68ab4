package service

import (
	"context"
	"testing"
	"time"

	"github.com/dukapos/dukapos-api/internal/domain/entity"
	"github.com/dukapos/dukapos-api/internal/domain/repository"
	"github.com/dukapos/dukapos-api/pkg/pagination"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func catalogProduct(name string, createdAt time.Time) *entity.Product {
	return &entity.Product{
		ID:        uuid.New(),
		Name:      name,
		SKU:       "SKU-" + name,
		Price:     100,
		Quantity:  10,
		Active:    true,
		CreatedAt: createdAt,
	}
}

func TestListProductsWithCursor_WalksPagesInOrder(t *testing.T) {
	ctx := context.Background()
	base := time.Date(2026, 8, 1, 9, 0, 0, 0, time.UTC)
	repo := newFakeProductRepo(
		catalogProduct("Maize", base),
		catalogProduct("Rice", base.Add(time.Minute)),
		catalogProduct("Sugar", base.Add(2*time.Minute)),
	)
	svc := NewProductService(repo, newFakeCategoryRepo())

	first, err := svc.ListProductsWithCursor(ctx, &repository.ProductCursorFilterParams{
		Cursor: &pagination.CursorParams{Limit: 2},
	})
	require.NoError(t, err)
	require.Len(t, first.Items, 2)
	assert.Equal(t, "Maize", first.Items[0].Name)
	assert.Equal(t, "Rice", first.Items[1].Name)
	assert.True(t, first.Pagination.HasNext)
	assert.False(t, first.Pagination.HasPrev)
	require.NotNil(t, first.Pagination.NextCursor)

	second, err := svc.ListProductsWithCursor(ctx, &repository.ProductCursorFilterParams{
		Cursor: &pagination.CursorParams{Cursor: *first.Pagination.NextCursor, Limit: 2},
	})
	require.NoError(t, err)
	require.Len(t, second.Items, 1)
	assert.Equal(t, "Sugar", second.Items[0].Name)
	assert.False(t, second.Pagination.HasNext)
	assert.True(t, second.Pagination.HasPrev)
}

func TestListProductsWithCursor_RejectsMalformedCursor(t *testing.T) {
	repo := newFakeProductRepo(catalogProduct("Maize", time.Now()))
	svc := NewProductService(repo, newFakeCategoryRepo())

	_, err := svc.ListProductsWithCursor(context.Background(), &repository.ProductCursorFilterParams{
		Cursor: &pagination.CursorParams{Cursor: "not a cursor", Limit: 2},
	})
	assert.Error(t, err)
}
