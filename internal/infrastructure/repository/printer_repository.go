package repository

import (
	"context"
	"errors"

	"github.com/dukapos/dukapos-api/internal/domain/entity"
	domainRepo "github.com/dukapos/dukapos-api/internal/domain/repository"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type printerRepository struct {
	db *gorm.DB
}

// NewPrinterRepository creates a new printer config repository
func NewPrinterRepository(db *gorm.DB) domainRepo.PrinterRepository {
	return &printerRepository{db: db}
}

func (r *printerRepository) Create(ctx context.Context, printer *entity.PrinterConfig) error {
	return r.db.WithContext(ctx).Create(printer).Error
}

func (r *printerRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.PrinterConfig, error) {
	var printer entity.PrinterConfig
	err := r.db.WithContext(ctx).First(&printer, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &printer, err
}

func (r *printerRepository) GetDefault(ctx context.Context) (*entity.PrinterConfig, error) {
	var printer entity.PrinterConfig
	err := r.db.WithContext(ctx).First(&printer, "is_default = ?", true).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &printer, err
}

func (r *printerRepository) Update(ctx context.Context, printer *entity.PrinterConfig) error {
	return r.db.WithContext(ctx).Save(printer).Error
}

func (r *printerRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&entity.PrinterConfig{}, "id = ?", id).Error
}

func (r *printerRepository) List(ctx context.Context) ([]entity.PrinterConfig, error) {
	var printers []entity.PrinterConfig
	err := r.db.WithContext(ctx).Order("created_at ASC").Find(&printers).Error
	return printers, err
}

// SetDefault marks the given printer as default and clears the flag on all others
func (r *printerRepository) SetDefault(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&entity.PrinterConfig{}).
			Where("is_default = ?", true).
			Update("is_default", false).Error; err != nil {
			return err
		}
		return tx.Model(&entity.PrinterConfig{}).
			Where("id = ?", id).
			Update("is_default", true).Error
	})
}
