package service

import (
	"context"
	"strconv"

	"github.com/dukapos/dukapos-api/internal/domain/entity"
	"github.com/dukapos/dukapos-api/internal/domain/repository"
	"github.com/dukapos/dukapos-api/pkg/apperror"
	"github.com/dukapos/dukapos-api/pkg/mpesa"
	"github.com/google/uuid"
)

// MpesaService handles the M-Pesa STK push test flow and callbacks.
// Checkout itself never talks to Daraja; this flow lives on the
// settings page so credentials can be verified against the sandbox.
type MpesaService struct {
	mpesaRepo    repository.MpesaRepository
	settingsRepo repository.SettingsRepository
	callbackURL  string

	// newClient allows tests to substitute the Daraja client
	newClient func(config mpesa.Config) darajaClient
}

type darajaClient interface {
	InitiateSTKPush(ctx context.Context, request *mpesa.STKPushRequest) (*mpesa.STKPushResponse, error)
	CheckTransactionStatus(ctx context.Context, checkoutRequestID string) (*mpesa.TransactionStatusResponse, error)
}

// NewMpesaService creates a new M-Pesa service.
func NewMpesaService(
	mpesaRepo repository.MpesaRepository,
	settingsRepo repository.SettingsRepository,
	callbackURL string,
) *MpesaService {
	return &MpesaService{
		mpesaRepo:    mpesaRepo,
		settingsRepo: settingsRepo,
		callbackURL:  callbackURL,
		newClient: func(config mpesa.Config) darajaClient {
			return mpesa.NewClient(config)
		},
	}
}

func (s *MpesaService) client(ctx context.Context) (darajaClient, error) {
	settings, err := s.settingsRepo.Get(ctx)
	if err != nil {
		return nil, err
	}
	if !settings.MpesaEnabled {
		return nil, apperror.NewBadRequestError("M-Pesa is not enabled in settings")
	}
	if settings.MpesaConsumerKey == "" || settings.MpesaConsumerSecret == "" ||
		settings.MpesaPasskey == "" || settings.MpesaShortcode == "" {
		return nil, apperror.NewBadRequestError("M-Pesa credentials are not fully configured")
	}

	return s.newClient(mpesa.Config{
		ConsumerKey:    settings.MpesaConsumerKey,
		ConsumerSecret: settings.MpesaConsumerSecret,
		Passkey:        settings.MpesaPasskey,
		Shortcode:      settings.MpesaShortcode,
		Environment:    settings.MpesaEnvironment,
		CallbackURL:    s.callbackURL,
	}), nil
}

// InitiateSTKPushInput represents the input for an STK push
type InitiateSTKPushInput struct {
	Phone  string
	Amount float64
	SaleID *uuid.UUID
}

// InitiateSTKPush sends an STK prompt and records the pending transaction.
func (s *MpesaService) InitiateSTKPush(ctx context.Context, input *InitiateSTKPushInput) (*entity.MpesaTransaction, error) {
	phone, err := mpesa.FormatPhoneNumber(input.Phone)
	if err != nil {
		return nil, apperror.NewBadRequestError(err.Error())
	}

	client, err := s.client(ctx)
	if err != nil {
		return nil, err
	}

	resp, err := client.InitiateSTKPush(ctx, &mpesa.STKPushRequest{
		PhoneNumber:      phone,
		Amount:           input.Amount,
		AccountReference: "POS Payment",
		TransactionDesc:  "Payment",
	})
	if err != nil {
		if mErr, ok := err.(*mpesa.Error); ok {
			return nil, apperror.NewBadRequestError(mErr.Message)
		}
		return nil, err
	}

	txn := &entity.MpesaTransaction{
		SaleID:            input.SaleID,
		Phone:             phone,
		Amount:            input.Amount,
		MerchantRequestID: resp.MerchantRequestID,
		CheckoutRequestID: resp.CheckoutRequestID,
		Status:            "pending",
	}
	if err := s.mpesaRepo.Create(ctx, txn); err != nil {
		return nil, err
	}
	return txn, nil
}

// CheckStatus queries Daraja for the outcome of a pending STK push and
// updates the stored record.
func (s *MpesaService) CheckStatus(ctx context.Context, checkoutRequestID string) (*entity.MpesaTransaction, error) {
	txn, err := s.mpesaRepo.GetByCheckoutRequestID(ctx, checkoutRequestID)
	if err != nil {
		return nil, err
	}
	if txn == nil {
		return nil, apperror.NewNotFoundError("M-Pesa transaction")
	}
	if txn.Status != "pending" {
		return txn, nil
	}

	client, err := s.client(ctx)
	if err != nil {
		return nil, err
	}

	resp, err := client.CheckTransactionStatus(ctx, checkoutRequestID)
	if err != nil {
		// Daraja returns an error while the prompt is still open; keep it pending
		return txn, nil
	}

	resultCode, _ := strconv.Atoi(resp.ResultCode)
	txn.ResultCode = resultCode
	txn.ResultDesc = resp.ResultDesc
	if resp.ResultCode == "0" {
		txn.Status = "success"
	} else if resp.ResultCode != "" {
		txn.Status = "failed"
	}

	if err := s.mpesaRepo.Update(ctx, txn); err != nil {
		return nil, err
	}
	return txn, nil
}

// STKCallback is the payload Daraja posts to the callback URL.
type STKCallback struct {
	Body struct {
		StkCallback struct {
			MerchantRequestID string `json:"MerchantRequestID"`
			CheckoutRequestID string `json:"CheckoutRequestID"`
			ResultCode        int    `json:"ResultCode"`
			ResultDesc        string `json:"ResultDesc"`
			CallbackMetadata  struct {
				Item []struct {
					Name  string      `json:"Name"`
					Value interface{} `json:"Value"`
				} `json:"Item"`
			} `json:"CallbackMetadata"`
		} `json:"stkCallback"`
	} `json:"Body"`
}

// ProcessCallback records the outcome Daraja posted for an STK push.
func (s *MpesaService) ProcessCallback(ctx context.Context, callback *STKCallback) error {
	cb := callback.Body.StkCallback

	txn, err := s.mpesaRepo.GetByCheckoutRequestID(ctx, cb.CheckoutRequestID)
	if err != nil {
		return err
	}
	if txn == nil {
		return apperror.NewNotFoundError("M-Pesa transaction")
	}

	txn.ResultCode = cb.ResultCode
	txn.ResultDesc = cb.ResultDesc
	if cb.ResultCode == 0 {
		txn.Status = "success"
		for _, item := range cb.CallbackMetadata.Item {
			if item.Name == "MpesaReceiptNumber" {
				if receipt, ok := item.Value.(string); ok {
					txn.MpesaReceipt = receipt
				}
			}
		}
	} else {
		txn.Status = "failed"
	}

	return s.mpesaRepo.Update(ctx, txn)
}

// ListBySale returns all STK push attempts recorded for a sale.
func (s *MpesaService) ListBySale(ctx context.Context, saleID uuid.UUID) ([]entity.MpesaTransaction, error) {
	return s.mpesaRepo.ListBySale(ctx, saleID)
}
