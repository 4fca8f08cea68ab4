package repository

import (
	"context"

	"github.com/dukapos/dukapos-api/internal/domain/entity"
)

// SettingsRepository defines the interface for store settings access.
// The settings table holds a single row created on first access.
type SettingsRepository interface {
	Get(ctx context.Context) (*entity.AppSettings, error)
	Update(ctx context.Context, settings *entity.AppSettings) error
}
