package sms

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	coreport "github.com/wanjiru-dev/church-ledger/internal/domain/port/core"
	"github.com/wanjiru-dev/church-ledger/internal/infrastructure/config"
)

// AfricasTalkingSender sends SMS notifications through the Africa's Talking
// messaging API. Callers treat sends as best-effort; a failed send never
// fails the operation that triggered it.
type AfricasTalkingSender struct {
	baseURL  string
	username string
	apiKey   string
	senderID string
	client   *http.Client
	logger   coreport.Logger
}

// NewAfricasTalkingSender creates a new SMS sender from the gateway settings
func NewAfricasTalkingSender(cfg config.SMSConfig, logger coreport.Logger) *AfricasTalkingSender {
	timeout := cfg.SendTimeout
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &AfricasTalkingSender{
		baseURL:  cfg.BaseURL,
		username: cfg.Username,
		apiKey:   cfg.APIKey,
		senderID: cfg.SenderID,
		client:   &http.Client{Timeout: timeout},
		logger:   logger,
	}
}

// Send delivers one message to one recipient
func (s *AfricasTalkingSender) Send(ctx context.Context, phone, message string) error {
	if s.apiKey == "" {
		s.logger.Debug("SMS sending disabled, no API key configured", map[string]any{
			"to": phone,
		})
		return nil
	}

	form := url.Values{}
	form.Set("username", s.username)
	form.Set("to", phone)
	form.Set("message", message)
	if s.senderID != "" {
		form.Set("from", s.senderID)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.baseURL, strings.NewReader(form.Encode()))
	if err != nil {
		return fmt.Errorf("failed to build SMS request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("apiKey", s.apiKey)

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("SMS request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("SMS gateway returned status %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	s.logger.Info("SMS sent", map[string]any{"to": phone})
	return nil
}
