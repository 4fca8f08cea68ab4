package repository

import (
	"context"
	"errors"

	"github.com/dukapos/dukapos-api/internal/domain/entity"
	domainRepo "github.com/dukapos/dukapos-api/internal/domain/repository"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type mpesaRepository struct {
	db *gorm.DB
}

// NewMpesaRepository creates a new M-Pesa transaction repository
func NewMpesaRepository(db *gorm.DB) domainRepo.MpesaRepository {
	return &mpesaRepository{db: db}
}

func (r *mpesaRepository) Create(ctx context.Context, txn *entity.MpesaTransaction) error {
	return r.db.WithContext(ctx).Create(txn).Error
}

func (r *mpesaRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.MpesaTransaction, error) {
	var txn entity.MpesaTransaction
	err := r.db.WithContext(ctx).First(&txn, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &txn, err
}

func (r *mpesaRepository) GetByCheckoutRequestID(ctx context.Context, checkoutRequestID string) (*entity.MpesaTransaction, error) {
	var txn entity.MpesaTransaction
	err := r.db.WithContext(ctx).First(&txn, "checkout_request_id = ?", checkoutRequestID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &txn, err
}

func (r *mpesaRepository) Update(ctx context.Context, txn *entity.MpesaTransaction) error {
	return r.db.WithContext(ctx).Save(txn).Error
}

func (r *mpesaRepository) ListBySale(ctx context.Context, saleID uuid.UUID) ([]entity.MpesaTransaction, error) {
	var txns []entity.MpesaTransaction
	err := r.db.WithContext(ctx).
		Where("sale_id = ?", saleID).
		Order("created_at DESC").
		Find(&txns).Error
	return txns, err
}
