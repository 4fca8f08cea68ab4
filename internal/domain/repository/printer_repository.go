package repository

import (
	"context"

	"github.com/dukapos/dukapos-api/internal/domain/entity"
	"github.com/google/uuid"
)

// PrinterRepository defines the interface for printer config operations
type PrinterRepository interface {
	Create(ctx context.Context, printer *entity.PrinterConfig) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.PrinterConfig, error)
	GetDefault(ctx context.Context) (*entity.PrinterConfig, error)
	Update(ctx context.Context, printer *entity.PrinterConfig) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context) ([]entity.PrinterConfig, error)
	// SetDefault marks the given printer as default and clears the flag on all others
	SetDefault(ctx context.Context, id uuid.UUID) error
}
