package service

import (
	"context"
	"errors"
	"testing"

	"github.com/dukapos/dukapos-api/internal/domain/entity"
	"github.com/dukapos/dukapos-api/pkg/mpesa"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubDarajaClient struct {
	pushResp   *mpesa.STKPushResponse
	pushErr    error
	statusResp *mpesa.TransactionStatusResponse
	statusErr  error
}

func (c *stubDarajaClient) InitiateSTKPush(_ context.Context, _ *mpesa.STKPushRequest) (*mpesa.STKPushResponse, error) {
	return c.pushResp, c.pushErr
}

func (c *stubDarajaClient) CheckTransactionStatus(_ context.Context, _ string) (*mpesa.TransactionStatusResponse, error) {
	return c.statusResp, c.statusErr
}

func newMpesaFixture(client *stubDarajaClient) (*MpesaService, *fakeMpesaRepo) {
	settings := newFakeSettingsRepo()
	settings.settings.MpesaEnabled = true
	settings.settings.MpesaEnvironment = "sandbox"
	settings.settings.MpesaShortcode = "174379"
	settings.settings.MpesaPasskey = "passkey"
	settings.settings.MpesaConsumerKey = "key"
	settings.settings.MpesaConsumerSecret = "secret"

	repo := newFakeMpesaRepo()
	svc := NewMpesaService(repo, settings, "https://example.com/callback")
	svc.newClient = func(_ mpesa.Config) darajaClient { return client }
	return svc, repo
}

func seedPendingTransaction(t *testing.T, repo *fakeMpesaRepo, checkoutRequestID string) {
	t.Helper()
	err := repo.Create(context.Background(), &entity.MpesaTransaction{
		Phone:             "254712345678",
		Amount:            100,
		CheckoutRequestID: checkoutRequestID,
		Status:            "pending",
	})
	require.NoError(t, err)
}

func TestInitiateSTKPushRecordsPendingTransaction(t *testing.T) {
	svc, _ := newMpesaFixture(&stubDarajaClient{
		pushResp: &mpesa.STKPushResponse{
			MerchantRequestID: "merchant-1",
			CheckoutRequestID: "checkout-1",
			ResponseCode:      "0",
		},
	})

	txn, err := svc.InitiateSTKPush(context.Background(), &InitiateSTKPushInput{
		Phone:  "0712345678",
		Amount: 100,
	})
	require.NoError(t, err)

	assert.Equal(t, "254712345678", txn.Phone)
	assert.Equal(t, "checkout-1", txn.CheckoutRequestID)
	assert.Equal(t, "pending", txn.Status)
}

func TestInitiateSTKPushRejectsBadPhone(t *testing.T) {
	svc, _ := newMpesaFixture(&stubDarajaClient{})

	_, err := svc.InitiateSTKPush(context.Background(), &InitiateSTKPushInput{
		Phone:  "0212345678",
		Amount: 100,
	})
	assert.Error(t, err)
}

func TestInitiateSTKPushRequiresEnabledSettings(t *testing.T) {
	settings := newFakeSettingsRepo()
	svc := NewMpesaService(newFakeMpesaRepo(), settings, "https://example.com/callback")

	_, err := svc.InitiateSTKPush(context.Background(), &InitiateSTKPushInput{
		Phone:  "0712345678",
		Amount: 100,
	})
	assert.Error(t, err)
}

func TestCheckStatusKeepsPendingWhilePromptIsOpen(t *testing.T) {
	svc, repo := newMpesaFixture(&stubDarajaClient{
		statusErr: errors.New("the transaction is being processed"),
	})
	seedPendingTransaction(t, repo, "checkout-2")

	txn, err := svc.CheckStatus(context.Background(), "checkout-2")
	require.NoError(t, err)
	assert.Equal(t, "pending", txn.Status)
}

func TestCheckStatusMarksSuccess(t *testing.T) {
	svc, repo := newMpesaFixture(&stubDarajaClient{
		statusResp: &mpesa.TransactionStatusResponse{
			ResultCode: "0",
			ResultDesc: "The service request is processed successfully.",
		},
	})
	seedPendingTransaction(t, repo, "checkout-3")

	txn, err := svc.CheckStatus(context.Background(), "checkout-3")
	require.NoError(t, err)
	assert.Equal(t, "success", txn.Status)

	stored, err := repo.GetByCheckoutRequestID(context.Background(), "checkout-3")
	require.NoError(t, err)
	assert.Equal(t, "success", stored.Status)
}

func TestCheckStatusMarksFailure(t *testing.T) {
	svc, repo := newMpesaFixture(&stubDarajaClient{
		statusResp: &mpesa.TransactionStatusResponse{
			ResultCode: "1032",
			ResultDesc: "Request cancelled by user",
		},
	})
	seedPendingTransaction(t, repo, "checkout-4")

	txn, err := svc.CheckStatus(context.Background(), "checkout-4")
	require.NoError(t, err)
	assert.Equal(t, "failed", txn.Status)
	assert.Equal(t, 1032, txn.ResultCode)
}

func TestProcessCallbackExtractsReceiptNumber(t *testing.T) {
	svc, repo := newMpesaFixture(&stubDarajaClient{})
	seedPendingTransaction(t, repo, "checkout-5")

	var callback STKCallback
	callback.Body.StkCallback.CheckoutRequestID = "checkout-5"
	callback.Body.StkCallback.ResultCode = 0
	callback.Body.StkCallback.ResultDesc = "Success"
	callback.Body.StkCallback.CallbackMetadata.Item = []struct {
		Name  string      `json:"Name"`
		Value interface{} `json:"Value"`
	}{
		{Name: "Amount", Value: 100.0},
		{Name: "MpesaReceiptNumber", Value: "QGR7TEST01"},
	}

	require.NoError(t, svc.ProcessCallback(context.Background(), &callback))

	stored, err := repo.GetByCheckoutRequestID(context.Background(), "checkout-5")
	require.NoError(t, err)
	assert.Equal(t, "success", stored.Status)
	assert.Equal(t, "QGR7TEST01", stored.MpesaReceipt)
}

func TestProcessCallbackMarksFailureOnNonZeroCode(t *testing.T) {
	svc, repo := newMpesaFixture(&stubDarajaClient{})
	seedPendingTransaction(t, repo, "checkout-6")

	var callback STKCallback
	callback.Body.StkCallback.CheckoutRequestID = "checkout-6"
	callback.Body.StkCallback.ResultCode = 1037
	callback.Body.StkCallback.ResultDesc = "Timeout"

	require.NoError(t, svc.ProcessCallback(context.Background(), &callback))

	stored, err := repo.GetByCheckoutRequestID(context.Background(), "checkout-6")
	require.NoError(t, err)
	assert.Equal(t, "failed", stored.Status)
	assert.Empty(t, stored.MpesaReceipt)
}
