package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/dailabs/dai/internal/config"
)

var (
	ErrSMSNotConfigured = errors.New("SMSLocal not configured. Set SMSLOCAL_API_KEY and SMSLOCAL_SENDER.")
	ErrSMSSendFailed    = errors.New("SMS send failed")
)

// SMSService dispatches messages through an SMSLocal-compatible gateway.
// Exactly one attempt per call, no retries.
type SMSService struct {
	apiKey     string
	sender     string
	route      string
	templateID string
	apiURL     string
	client     *http.Client
}

func NewSMSService(cfg *config.Config) *SMSService {
	return &SMSService{
		apiKey:     cfg.SMSAPIKey,
		sender:     cfg.SMSSender,
		route:      cfg.SMSRoute,
		templateID: cfg.SMSTemplateID,
		apiURL:     cfg.SMSAPIURL,
		client:     &http.Client{Timeout: 15 * time.Second},
	}
}

// Send delivers one message. Missing credentials is a configuration error
// and no network call is made. The gateway reports failures in a 200 body,
// so any body containing "error" or "invalid" is treated as a failure and
// surfaced as diagnostic detail.
func (s *SMSService) Send(ctx context.Context, phone, message string) error {
	if s.apiKey == "" || s.sender == "" {
		return ErrSMSNotConfigured
	}

	params := url.Values{}
	params.Set("key", s.apiKey)
	params.Set("route", s.route)
	params.Set("sender", s.sender)
	params.Set("number", phone)
	params.Set("sms", message)
	if s.templateID != "" {
		params.Set("templateid", s.templateID)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.apiURL+"?"+params.Encode(), nil)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrSMSSendFailed, err)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrSMSSendFailed, err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrSMSSendFailed, err)
	}

	lower := strings.ToLower(string(body))
	if strings.Contains(lower, "error") || strings.Contains(lower, "invalid") {
		return fmt.Errorf("%w: %s", ErrSMSSendFailed, strings.TrimSpace(string(body)))
	}

	slog.Info("sms sent", "phone", phone)
	return nil
}
