package repository

import (
	"context"
	"time"

	"github.com/dukapos/dukapos-api/internal/domain/entity"
	"github.com/google/uuid"
)

// DiscountRepository defines the interface for preset discount operations
type DiscountRepository interface {
	Create(ctx context.Context, discount *entity.Discount) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Discount, error)
	Update(ctx context.Context, discount *entity.Discount) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context) ([]entity.Discount, error)
	// ListActive returns discounts that are active and within their
	// validity window at the given instant. Nil start/end dates are open-ended.
	ListActive(ctx context.Context, now time.Time) ([]entity.Discount, error)
}
