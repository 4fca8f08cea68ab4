package service

import (
	"context"

	"github.com/dukapos/dukapos-api/internal/domain/entity"
	"github.com/dukapos/dukapos-api/internal/domain/enum"
	"github.com/dukapos/dukapos-api/internal/domain/repository"
	"github.com/dukapos/dukapos-api/pkg/apperror"
)

// SettingsService handles store-wide settings
type SettingsService struct {
	settingsRepo repository.SettingsRepository
}

// NewSettingsService creates a new settings service
func NewSettingsService(settingsRepo repository.SettingsRepository) *SettingsService {
	return &SettingsService{settingsRepo: settingsRepo}
}

// GetSettings retrieves the store settings row
func (s *SettingsService) GetSettings(ctx context.Context) (*entity.AppSettings, error) {
	return s.settingsRepo.Get(ctx)
}

// UpdateSettingsInput represents the input for updating settings.
// Nil fields are left unchanged.
type UpdateSettingsInput struct {
	BusinessName       *string
	BusinessAddress    *string
	BusinessPhone      *string
	CurrencyCode       *string
	CurrencySymbol     *string
	TaxEnabled         *bool
	TaxRate            *float64
	TaxName            *string
	DefaultSaleType    *enum.SaleType
	AllowSplitPayments *bool
	ReceiptFooter      *string

	MpesaEnabled        *bool
	MpesaEnvironment    *string
	MpesaShortcode      *string
	MpesaPasskey        *string
	MpesaConsumerKey    *string
	MpesaConsumerSecret *string
}

// UpdateSettings updates the store settings row
func (s *SettingsService) UpdateSettings(ctx context.Context, input *UpdateSettingsInput) (*entity.AppSettings, error) {
	settings, err := s.settingsRepo.Get(ctx)
	if err != nil {
		return nil, err
	}

	if input.BusinessName != nil {
		settings.BusinessName = *input.BusinessName
	}
	if input.BusinessAddress != nil {
		settings.BusinessAddress = *input.BusinessAddress
	}
	if input.BusinessPhone != nil {
		settings.BusinessPhone = *input.BusinessPhone
	}
	if input.CurrencyCode != nil {
		settings.CurrencyCode = *input.CurrencyCode
	}
	if input.CurrencySymbol != nil {
		settings.CurrencySymbol = *input.CurrencySymbol
	}
	if input.TaxEnabled != nil {
		settings.TaxEnabled = *input.TaxEnabled
	}
	if input.TaxRate != nil {
		if *input.TaxRate < 0 {
			return nil, apperror.NewBadRequestError("tax rate must not be negative")
		}
		settings.TaxRate = *input.TaxRate
	}
	if input.TaxName != nil {
		settings.TaxName = *input.TaxName
	}
	if input.DefaultSaleType != nil {
		if !input.DefaultSaleType.Valid() {
			return nil, apperror.NewBadRequestError("invalid default sale type")
		}
		settings.DefaultSaleType = *input.DefaultSaleType
	}
	if input.AllowSplitPayments != nil {
		settings.AllowSplitPayments = *input.AllowSplitPayments
	}
	if input.ReceiptFooter != nil {
		settings.ReceiptFooter = *input.ReceiptFooter
	}
	if input.MpesaEnabled != nil {
		settings.MpesaEnabled = *input.MpesaEnabled
	}
	if input.MpesaEnvironment != nil {
		if *input.MpesaEnvironment != "sandbox" && *input.MpesaEnvironment != "production" {
			return nil, apperror.NewBadRequestError("mpesa environment must be sandbox or production")
		}
		settings.MpesaEnvironment = *input.MpesaEnvironment
	}
	if input.MpesaShortcode != nil {
		settings.MpesaShortcode = *input.MpesaShortcode
	}
	if input.MpesaPasskey != nil {
		settings.MpesaPasskey = *input.MpesaPasskey
	}
	if input.MpesaConsumerKey != nil {
		settings.MpesaConsumerKey = *input.MpesaConsumerKey
	}
	if input.MpesaConsumerSecret != nil {
		settings.MpesaConsumerSecret = *input.MpesaConsumerSecret
	}

	if err := s.settingsRepo.Update(ctx, settings); err != nil {
		return nil, err
	}
	return settings, nil
}
