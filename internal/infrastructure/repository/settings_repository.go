package repository

import (
	"context"
	"errors"

	"github.com/dukapos/dukapos-api/internal/domain/entity"
	domainRepo "github.com/dukapos/dukapos-api/internal/domain/repository"
	"gorm.io/gorm"
)

type settingsRepository struct {
	db *gorm.DB
}

// NewSettingsRepository creates a new settings repository
func NewSettingsRepository(db *gorm.DB) domainRepo.SettingsRepository {
	return &settingsRepository{db: db}
}

// Get retrieves the single settings row, creating it with defaults if missing
func (r *settingsRepository) Get(ctx context.Context) (*entity.AppSettings, error) {
	var settings entity.AppSettings
	err := r.db.WithContext(ctx).First(&settings, 1).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		settings = entity.AppSettings{ID: 1}
		if err := r.db.WithContext(ctx).Create(&settings).Error; err != nil {
			return nil, err
		}
		// Re-read so gorm column defaults are populated
		if err := r.db.WithContext(ctx).First(&settings, 1).Error; err != nil {
			return nil, err
		}
		return &settings, nil
	}
	if err != nil {
		return nil, err
	}
	return &settings, nil
}

// Update saves the settings row
func (r *settingsRepository) Update(ctx context.Context, settings *entity.AppSettings) error {
	settings.ID = 1
	return r.db.WithContext(ctx).Save(settings).Error
}
