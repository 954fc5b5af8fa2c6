package yookassa

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/marchelxyz/mariko-vld-sub000/internal/config"
	"github.com/marchelxyz/mariko-vld-sub000/internal/domain"
)

const DefaultTimeout = 10 * time.Second

// коды ошибок шлюза, после которых платеж пересоздается без ограничения
// способа оплаты (ровно одна повторная попытка)
var fallbackErrorCodes = map[string]bool{
	"payment_method_not_installed": true,
	"invalid_payment_method":       true,
}

// ProviderError is a non-2xx answer from the gateway parsed into code and
// human-readable message.
type ProviderError struct {
	StatusCode  int
	Code        string
	Description string
}

func (e *ProviderError) Error() string {
	if e.Description != "" {
		return e.Description
	}
	return fmt.Sprintf("payment gateway returned status %d", e.StatusCode)
}

type Client struct {
	baseURL    string
	shopID     string
	secretKey  string
	httpClient *http.Client
}

func NewClient(cfg config.YookassaService) *Client {
	timeout := time.Duration(cfg.TimeoutMs) * time.Millisecond
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Client{
		baseURL:   cfg.BaseURL,
		shopID:    cfg.ShopID,
		secretKey: cfg.SecretKey,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

type amountBody struct {
	Value    string `json:"value"`
	Currency string `json:"currency"`
}

type createPaymentBody struct {
	Amount       amountBody        `json:"amount"`
	Capture      bool              `json:"capture"`
	Description  string            `json:"description,omitempty"`
	Confirmation map[string]string `json:"confirmation"`
	Metadata     map[string]string `json:"metadata,omitempty"`

	PaymentMethodData *paymentMethodData `json:"payment_method_data,omitempty"`
}

type paymentMethodData struct {
	Type string `json:"type"`
}

type paymentResponse struct {
	ID           string `json:"id"`
	Status       string `json:"status"`
	Confirmation struct {
		ConfirmationURL string `json:"confirmation_url"`
	} `json:"confirmation"`
}

// CreatePayment issues a payment-creation request preferring the fast-path
// method (SBP). When the gateway rejects the method with one of the known
// error codes, it retries exactly once without the method restriction and
// marks the result UsedFallback. Any other failure class is returned as-is
// and never retried.
func (c *Client) CreatePayment(ctx context.Context, input *domain.GatewayPaymentInput) (*domain.GatewayPayment, error) {
	payment, err := c.createPayment(ctx, input, "sbp")
	if err == nil {
		return payment, nil
	}

	var provErr *ProviderError
	if errors.As(err, &provErr) && fallbackErrorCodes[provErr.Code] {
		payment, err = c.createPayment(ctx, input, "")
		if err != nil {
			return nil, err
		}
		payment.UsedFallback = true
		return payment, nil
	}

	return nil, err
}

func (c *Client) createPayment(ctx context.Context, input *domain.GatewayPaymentInput, method string) (*domain.GatewayPayment, error) {
	body := createPaymentBody{
		Amount: amountBody{
			Value:    fmt.Sprintf("%.2f", input.Amount),
			Currency: input.Currency,
		},
		Capture:     true,
		Description: input.Description,
		Confirmation: map[string]string{
			"type":       "redirect",
			"return_url": input.ReturnURL,
		},
		Metadata: input.Metadata,
	}
	if method != "" {
		body.PaymentMethodData = &paymentMethodData{Type: method}
	}

	requestBodyBytes, err := json.Marshal(body)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/payments", bytes.NewBuffer(requestBodyBytes))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	// ключ идемпотентности уникален для каждой попытки
	req.Header.Set("Idempotence-Key", uuid.NewString())
	req.SetBasicAuth(c.shopID, c.secretKey)

	response, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer response.Body.Close()
	responseBodyBytes, err := io.ReadAll(response.Body)
	if err != nil {
		return nil, err
	}

	if response.StatusCode < 200 || response.StatusCode >= 300 {
		return nil, parseProviderError(response.StatusCode, responseBodyBytes)
	}

	var payment paymentResponse
	if err := json.Unmarshal(responseBodyBytes, &payment); err != nil {
		return nil, err
	}

	return &domain.GatewayPayment{
		ProviderPaymentID: payment.ID,
		Status:            payment.Status,
		ConfirmationURL:   payment.Confirmation.ConfirmationURL,
		RawPayload:        string(responseBodyBytes),
	}, nil
}

// FetchPaymentStatus reads a payment by its gateway-assigned id. No retries.
func (c *Client) FetchPaymentStatus(ctx context.Context, providerPaymentID string) (*domain.GatewayPayment, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/payments/"+providerPaymentID, nil)
	if err != nil {
		return nil, err
	}
	req.SetBasicAuth(c.shopID, c.secretKey)

	response, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer response.Body.Close()
	responseBodyBytes, err := io.ReadAll(response.Body)
	if err != nil {
		return nil, err
	}

	if response.StatusCode < 200 || response.StatusCode >= 300 {
		return nil, parseProviderError(response.StatusCode, responseBodyBytes)
	}

	var payment paymentResponse
	if err := json.Unmarshal(responseBodyBytes, &payment); err != nil {
		return nil, err
	}

	return &domain.GatewayPayment{
		ProviderPaymentID: payment.ID,
		Status:            payment.Status,
		ConfirmationURL:   payment.Confirmation.ConfirmationURL,
		RawPayload:        string(responseBodyBytes),
	}, nil
}

func parseProviderError(statusCode int, body []byte) *ProviderError {
	var errResponse struct {
		Code        string `json:"code"`
		Description string `json:"description"`
	}
	json.Unmarshal(body, &errResponse)
	return &ProviderError{
		StatusCode:  statusCode,
		Code:        errResponse.Code,
		Description: errResponse.Description,
	}
}
