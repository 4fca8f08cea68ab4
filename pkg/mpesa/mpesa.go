// Package mpesa is a minimal client for the Safaricom Daraja API,
// covering OAuth token generation, STK Push, and transaction status.
package mpesa

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"regexp"
	"strconv"
	"strings"
	"sync"
	"time"
)

const (
	sandboxBaseURL    = "https://sandbox.safaricom.co.ke"
	productionBaseURL = "https://api.safaricom.co.ke"

	// Refresh the cached token a minute before it actually expires.
	tokenRefreshBuffer = time.Minute

	maxSTKAmount = 150000
)

// Config holds Daraja API credentials.
type Config struct {
	ConsumerKey    string
	ConsumerSecret string
	Passkey        string
	Shortcode      string
	Environment    string // sandbox or production
	CallbackURL    string
}

// Error is a Daraja API error with an optional code.
type Error struct {
	Message string
	Code    string
}

func (e *Error) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("mpesa: %s (code %s)", e.Message, e.Code)
	}
	return "mpesa: " + e.Message
}

// STKPushRequest is a request to initiate an STK push prompt.
type STKPushRequest struct {
	PhoneNumber      string
	Amount           float64
	AccountReference string
	TransactionDesc  string
	CallbackURL      string
}

// STKPushResponse is the Daraja STK push response.
type STKPushResponse struct {
	MerchantRequestID   string `json:"MerchantRequestID"`
	CheckoutRequestID   string `json:"CheckoutRequestID"`
	ResponseCode        string `json:"ResponseCode"`
	ResponseDescription string `json:"ResponseDescription"`
	CustomerMessage     string `json:"CustomerMessage"`
}

// TransactionStatusResponse is the Daraja STK push query response.
type TransactionStatusResponse struct {
	ResponseCode        string `json:"ResponseCode"`
	ResponseDescription string `json:"ResponseDescription"`
	MerchantRequestID   string `json:"MerchantRequestID"`
	CheckoutRequestID   string `json:"CheckoutRequestID"`
	ResultCode          string `json:"ResultCode"`
	ResultDesc          string `json:"ResultDesc"`
}

// Client is a Daraja API client with cached access tokens.
type Client struct {
	config     Config
	baseURL    string
	httpClient *http.Client

	mu          sync.Mutex
	accessToken string
	tokenExpiry time.Time
}

// NewClient creates a new Daraja client.
func NewClient(config Config) *Client {
	baseURL := sandboxBaseURL
	if config.Environment == "production" {
		baseURL = productionBaseURL
	}
	return &Client{
		config:  config,
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

var nonDigits = regexp.MustCompile(`\D`)

// FormatPhoneNumber normalises a Kenyan mobile number to 2547XXXXXXXX form.
// Accepts 07XXXXXXXX, 7XXXXXXXX, and 2547XXXXXXXX inputs.
func FormatPhoneNumber(raw string) (string, error) {
	digits := nonDigits.ReplaceAllString(raw, "")

	var normalised string
	switch {
	case len(digits) == 10 && strings.HasPrefix(digits, "0"):
		normalised = "254" + digits[1:]
	case len(digits) == 9 && strings.HasPrefix(digits, "7"):
		normalised = "254" + digits
	case len(digits) == 12 && strings.HasPrefix(digits, "254"):
		normalised = digits
	default:
		return "", &Error{Message: fmt.Sprintf("invalid phone number %q", raw), Code: "PHONE_FORMAT_ERROR"}
	}

	if normalised[3] != '7' {
		return "", &Error{Message: fmt.Sprintf("%q is not a Kenyan mobile number", raw), Code: "PHONE_FORMAT_ERROR"}
	}
	return normalised, nil
}

// Timestamp returns the Daraja timestamp format (YYYYMMDDHHmmss).
func Timestamp(t time.Time) string {
	return t.Format("20060102150405")
}

// Password builds the STK push password: base64(shortcode + passkey + timestamp).
func Password(shortcode, passkey, timestamp string) string {
	return base64.StdEncoding.EncodeToString([]byte(shortcode + passkey + timestamp))
}

// AccessToken returns a cached token, refreshing it from the OAuth endpoint
// when it is within a minute of expiring.
func (c *Client) AccessToken(ctx context.Context) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.accessToken != "" && time.Now().Before(c.tokenExpiry.Add(-tokenRefreshBuffer)) {
		return c.accessToken, nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet,
		c.baseURL+"/oauth/v1/generate?grant_type=client_credentials", nil)
	if err != nil {
		return "", err
	}
	credentials := base64.StdEncoding.EncodeToString(
		[]byte(c.config.ConsumerKey + ":" + c.config.ConsumerSecret))
	req.Header.Set("Authorization", "Basic "+credentials)
	req.Header.Set("Cache-Control", "no-cache")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", &Error{Message: "failed to generate access token: " + err.Error(), Code: "TOKEN_ERROR"}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}
	if resp.StatusCode != http.StatusOK {
		return "", &Error{Message: fmt.Sprintf("token endpoint returned %d", resp.StatusCode), Code: "TOKEN_ERROR"}
	}

	var tokenResp struct {
		AccessToken string `json:"access_token"`
		ExpiresIn   string `json:"expires_in"`
	}
	if err := json.Unmarshal(body, &tokenResp); err != nil {
		return "", &Error{Message: "invalid token response", Code: "TOKEN_ERROR"}
	}
	if tokenResp.AccessToken == "" {
		return "", &Error{Message: "no access token in response", Code: "TOKEN_ERROR"}
	}

	expiresIn, err := strconv.Atoi(tokenResp.ExpiresIn)
	if err != nil || expiresIn <= 0 {
		expiresIn = 3600
	}

	c.accessToken = tokenResp.AccessToken
	c.tokenExpiry = time.Now().Add(time.Duration(expiresIn) * time.Second)
	return c.accessToken, nil
}

// ClearTokenCache drops the cached access token.
func (c *Client) ClearTokenCache() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.accessToken = ""
	c.tokenExpiry = time.Time{}
}

func truncate(s string, max int) string {
	if len(s) > max {
		return s[:max]
	}
	return s
}

// ValidateSTKPushRequest checks amount bounds and phone presence.
func ValidateSTKPushRequest(req *STKPushRequest) error {
	if strings.TrimSpace(req.PhoneNumber) == "" {
		return &Error{Message: "phone number is required", Code: "VALIDATION_ERROR"}
	}
	if req.Amount < 1 {
		return &Error{Message: "amount must be at least 1 KES", Code: "VALIDATION_ERROR"}
	}
	if req.Amount > maxSTKAmount {
		return &Error{Message: "amount exceeds M-Pesa STK Push limit (150,000 KES)", Code: "VALIDATION_ERROR"}
	}
	return nil
}

// InitiateSTKPush sends an STK push prompt to the customer's phone.
func (c *Client) InitiateSTKPush(ctx context.Context, request *STKPushRequest) (*STKPushResponse, error) {
	if err := ValidateSTKPushRequest(request); err != nil {
		return nil, err
	}

	phone, err := FormatPhoneNumber(request.PhoneNumber)
	if err != nil {
		return nil, err
	}

	token, err := c.AccessToken(ctx)
	if err != nil {
		return nil, err
	}

	timestamp := Timestamp(time.Now())
	password := Password(c.config.Shortcode, c.config.Passkey, timestamp)

	callbackURL := request.CallbackURL
	if callbackURL == "" {
		callbackURL = c.config.CallbackURL
	}
	if callbackURL == "" {
		return nil, &Error{Message: "no callback URL configured", Code: "VALIDATION_ERROR"}
	}

	accountRef := request.AccountReference
	if accountRef == "" {
		accountRef = "POS Payment"
	}
	transactionDesc := request.TransactionDesc
	if transactionDesc == "" {
		transactionDesc = "Payment"
	}

	payload := map[string]interface{}{
		"BusinessShortCode": c.config.Shortcode,
		"Password":          password,
		"Timestamp":         timestamp,
		"TransactionType":   "CustomerPayBillOnline",
		"Amount":            int(request.Amount),
		"PartyA":            phone,
		"PartyB":            c.config.Shortcode,
		"PhoneNumber":       phone,
		"CallBackURL":       callbackURL,
		"AccountReference":  truncate(accountRef, 20),
		"TransactionDesc":   truncate(transactionDesc, 13),
	}

	var stkResp STKPushResponse
	if err := c.post(ctx, "/mpesa/stkpush/v1/processrequest", token, payload, &stkResp); err != nil {
		return nil, err
	}
	if stkResp.ResponseCode != "0" {
		msg := stkResp.ResponseDescription
		if msg == "" {
			msg = "STK Push failed"
		}
		return nil, &Error{Message: msg, Code: stkResp.ResponseCode}
	}
	return &stkResp, nil
}

// CheckTransactionStatus queries the result of an STK push.
func (c *Client) CheckTransactionStatus(ctx context.Context, checkoutRequestID string) (*TransactionStatusResponse, error) {
	if strings.TrimSpace(checkoutRequestID) == "" {
		return nil, &Error{Message: "CheckoutRequestID is required", Code: "VALIDATION_ERROR"}
	}

	token, err := c.AccessToken(ctx)
	if err != nil {
		return nil, err
	}

	timestamp := Timestamp(time.Now())
	payload := map[string]interface{}{
		"BusinessShortCode": c.config.Shortcode,
		"Password":          Password(c.config.Shortcode, c.config.Passkey, timestamp),
		"Timestamp":         timestamp,
		"CheckoutRequestID": checkoutRequestID,
	}

	var statusResp TransactionStatusResponse
	if err := c.post(ctx, "/mpesa/stkpushquery/v1/query", token, payload, &statusResp); err != nil {
		return nil, err
	}
	return &statusResp, nil
}

func (c *Client) post(ctx context.Context, path, token string, payload, out interface{}) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return &Error{Message: err.Error(), Code: "REQUEST_ERROR"}
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}

	if resp.StatusCode != http.StatusOK {
		var apiErr struct {
			ErrorMessage string `json:"errorMessage"`
			ErrorCode    string `json:"errorCode"`
		}
		if json.Unmarshal(respBody, &apiErr) == nil && apiErr.ErrorMessage != "" {
			return &Error{Message: apiErr.ErrorMessage, Code: apiErr.ErrorCode}
		}
		return &Error{Message: fmt.Sprintf("daraja returned %d", resp.StatusCode), Code: "REQUEST_ERROR"}
	}

	return json.Unmarshal(respBody, out)
}
