package iiko

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/marchelxyz/mariko-vld-sub000/internal/config"
	"github.com/marchelxyz/mariko-vld-sub000/internal/domain"
	"github.com/marchelxyz/mariko-vld-sub000/internal/infrastructure/cache"
)

const (
	DefaultTimeout  = 15 * time.Second
	DefaultTokenTTL = 15 * time.Minute

	// токен перезапрашивается, если до истечения осталось меньше
	tokenRefreshMargin = 5000 * time.Millisecond
)

type Client struct {
	baseURL    string
	timeout    time.Duration
	tokenTTL   time.Duration
	tokens     cache.Cache
	httpClient *http.Client
}

func NewClient(cfg config.IikoService, tokens cache.Cache) *Client {
	timeout := time.Duration(cfg.TimeoutMs) * time.Millisecond
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	tokenTTL := time.Duration(cfg.TokenTTLMs) * time.Millisecond
	if tokenTTL <= 0 {
		tokenTTL = DefaultTokenTTL
	}
	return &Client{
		baseURL:    cfg.BaseURL,
		timeout:    timeout,
		tokenTTL:   tokenTTL,
		tokens:     tokens,
		httpClient: &http.Client{},
	}
}

type tokenEntry struct {
	Token     string
	ExpiresAt time.Time
}

type accessTokenRequest struct {
	APILogin string `json:"apiLogin"`
}

type accessTokenResponse struct {
	CorrelationID string `json:"correlationId"`
	Token         string `json:"token"`
}

// ensureAccessToken returns the cached token while more than the refresh
// margin remains before expiry; otherwise it performs a single token fetch.
// Nothing is cached on a failed fetch.
func (c *Client) ensureAccessToken(ctx context.Context, login string) (string, error) {
	if login == "" {
		return "", errors.New("iiko: empty api login")
	}

	key := "iiko_token:" + login
	if v, ok := c.tokens.Get(key); ok {
		entry := v.(tokenEntry)
		if time.Until(entry.ExpiresAt) > tokenRefreshMargin {
			return entry.Token, nil
		}
	}

	token, err := c.fetchAccessToken(ctx, login)
	if err != nil {
		return "", err
	}

	c.tokens.Set(key, tokenEntry{Token: token, ExpiresAt: time.Now().Add(c.tokenTTL)}, c.tokenTTL)
	return token, nil
}

func (c *Client) fetchAccessToken(ctx context.Context, login string) (string, error) {
	requestBodyBytes, err := json.Marshal(accessTokenRequest{APILogin: login})
	if err != nil {
		return "", err
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/1/access_token", bytes.NewBuffer(requestBodyBytes))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")

	response, err := c.httpClient.Do(req)
	if err != nil {
		return "", err
	}
	defer response.Body.Close()
	responseBodyBytes, err := io.ReadAll(response.Body)
	if err != nil {
		return "", err
	}

	if response.StatusCode < 200 || response.StatusCode >= 300 {
		return "", fmt.Errorf("iiko token request failed with status %d: %s", response.StatusCode, string(responseBodyBytes))
	}

	var tokenResponse accessTokenResponse
	if err := json.Unmarshal(responseBodyBytes, &tokenResponse); err != nil {
		return "", err
	}
	if tokenResponse.Token == "" {
		return "", errors.New("iiko token response has no token")
	}

	return tokenResponse.Token, nil
}

type createOrderResponse struct {
	CorrelationID string `json:"correlationId"`
	OrderInfo     struct {
		ID             string `json:"id"`
		CreationStatus string `json:"creationStatus"`
	} `json:"orderInfo"`
	ErrorDescription string `json:"errorDescription"`
}

// CreateOrder validates the integration config before any network call,
// resolves an access token and posts the order to the POS. Config problems
// and provider rejections come back as a non-success result; transport
// failures (including the timeout) are returned as errors.
func (c *Client) CreateOrder(ctx context.Context, cfg *domain.IntegrationConfig, order *domain.Order) (*domain.PosDispatchResult, error) {
	if missing := missingConfigField(cfg); missing != "" {
		return &domain.PosDispatchResult{
			Success: false,
			Error:   fmt.Sprintf("iiko config is missing %s", missing),
		}, nil
	}

	token, err := c.ensureAccessToken(ctx, cfg.APILogin)
	if err != nil {
		return nil, err
	}

	payload := buildOrderPayload(cfg, order)
	payloadBytes, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/1/deliveries/create", bytes.NewBuffer(payloadBytes))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)

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
		return &domain.PosDispatchResult{
			Success:      false,
			Error:        posErrorMessage(response.StatusCode, responseBodyBytes),
			PayloadJSON:  string(payloadBytes),
			ResponseJSON: string(responseBodyBytes),
		}, nil
	}

	var orderResponse createOrderResponse
	if err := json.Unmarshal(responseBodyBytes, &orderResponse); err != nil {
		return nil, err
	}

	return &domain.PosDispatchResult{
		Success:      true,
		OrderID:      orderResponse.OrderInfo.ID,
		Status:       orderResponse.OrderInfo.CreationStatus,
		PayloadJSON:  string(payloadBytes),
		ResponseJSON: string(responseBodyBytes),
	}, nil
}

func missingConfigField(cfg *domain.IntegrationConfig) string {
	switch {
	case cfg == nil:
		return "config"
	case cfg.OrganizationID == "":
		return "organization_id"
	case cfg.TerminalGroupID == "":
		return "terminal_group_id"
	case cfg.APILogin == "":
		return "api_login"
	}
	return ""
}

func posErrorMessage(statusCode int, body []byte) string {
	var errResponse struct {
		ErrorDescription string `json:"errorDescription"`
		Message          string `json:"message"`
	}
	if err := json.Unmarshal(body, &errResponse); err == nil {
		if errResponse.ErrorDescription != "" {
			return errResponse.ErrorDescription
		}
		if errResponse.Message != "" {
			return errResponse.Message
		}
	}
	return fmt.Sprintf("iiko returned status %d", statusCode)
}
