package messenger

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"math/rand"
	"net/http"
	"net/url"
	"strconv"
	"time"
)

const (
	vkAPIBase    = "https://api.vk.com"
	vkAPIVersion = "5.199"
)

type VKSender struct {
	baseURL     string
	accessToken string
	httpClient  *http.Client
}

func NewVKSender(accessToken string) *VKSender {
	return &VKSender{
		baseURL:     vkAPIBase,
		accessToken: accessToken,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

type vkResponse struct {
	Error *struct {
		ErrorCode int    `json:"error_code"`
		ErrorMsg  string `json:"error_msg"`
	} `json:"error"`
}

func (s *VKSender) SendMessage(ctx context.Context, recipientID, text, tokenOverride string) error {
	token := s.accessToken
	if tokenOverride != "" {
		token = tokenOverride
	}
	if token == "" {
		return errors.New("vk access token is not configured")
	}

	params := url.Values{}
	params.Set("user_id", recipientID)
	params.Set("message", text)
	params.Set("random_id", strconv.FormatInt(rand.Int63(), 10))
	params.Set("access_token", token)
	params.Set("v", vkAPIVersion)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.baseURL+"/method/messages.send?"+params.Encode(), nil)
	if err != nil {
		return err
	}

	response, err := s.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer response.Body.Close()
	responseBodyBytes, err := io.ReadAll(response.Body)
	if err != nil {
		return err
	}

	var result vkResponse
	if err := json.Unmarshal(responseBodyBytes, &result); err != nil {
		return err
	}
	if result.Error != nil {
		return errors.New(result.Error.ErrorMsg)
	}

	return nil
}
