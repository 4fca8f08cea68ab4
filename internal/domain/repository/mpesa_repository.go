package repository

import (
	"context"

	"github.com/dukapos/dukapos-api/internal/domain/entity"
	"github.com/google/uuid"
)

// MpesaRepository defines the interface for M-Pesa transaction records
type MpesaRepository interface {
	Create(ctx context.Context, txn *entity.MpesaTransaction) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.MpesaTransaction, error)
	GetByCheckoutRequestID(ctx context.Context, checkoutRequestID string) (*entity.MpesaTransaction, error)
	Update(ctx context.Context, txn *entity.MpesaTransaction) error
	ListBySale(ctx context.Context, saleID uuid.UUID) ([]entity.MpesaTransaction, error)
}
