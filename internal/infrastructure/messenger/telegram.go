package messenger

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"
)

const telegramAPIBase = "https://api.telegram.org"

type TelegramSender struct {
	baseURL    string
	botToken   string
	httpClient *http.Client
}

func NewTelegramSender(botToken string) *TelegramSender {
	return &TelegramSender{
		baseURL:  telegramAPIBase,
		botToken: botToken,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

type telegramSendRequest struct {
	ChatID string `json:"chat_id"`
	Text   string `json:"text"`
}

type telegramResponse struct {
	OK          bool   `json:"ok"`
	Description string `json:"description"`
}

func (s *TelegramSender) SendMessage(ctx context.Context, recipientID, text, tokenOverride string) error {
	token := s.botToken
	if tokenOverride != "" {
		token = tokenOverride
	}
	if token == "" {
		return errors.New("telegram bot token is not configured")
	}

	requestBodyBytes, err := json.Marshal(telegramSendRequest{ChatID: recipientID, Text: text})
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, fmt.Sprintf("%s/bot%s/sendMessage", s.baseURL, token), bytes.NewBuffer(requestBodyBytes))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	response, err := s.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer response.Body.Close()
	responseBodyBytes, err := io.ReadAll(response.Body)
	if err != nil {
		return err
	}

	var tgResponse telegramResponse
	if err := json.Unmarshal(responseBodyBytes, &tgResponse); err != nil {
		return fmt.Errorf("telegram returned status %d", response.StatusCode)
	}
	if !tgResponse.OK {
		if tgResponse.Description != "" {
			return errors.New(tgResponse.Description)
		}
		return fmt.Errorf("telegram returned status %d", response.StatusCode)
	}

	return nil
}
