// Package mailer sends waitlist confirmation emails through the Resend
// HTTP API.
package mailer

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/msomdec/waitlist-backend/internal/domain"
)

// ResendClient implements domain.Mailer against the Resend /emails
// endpoint. Provider rejections, transport failures, and timeouts all
// surface as *domain.ProviderError carrying an HTTP-like status code.
type ResendClient struct {
	apiURL string
	apiKey string
	from   string
	client *http.Client
}

// NewResendClient creates a Resend client. A hanging provider call is
// cut off by the HTTP client timeout and reported as a 504.
func NewResendClient(apiURL, apiKey, from string) *ResendClient {
	return &ResendClient{
		apiURL: apiURL,
		apiKey: apiKey,
		from:   from,
		client: &http.Client{Timeout: 10 * time.Second},
	}
}

type sendRequest struct {
	From    string   `json:"from"`
	To      []string `json:"to"`
	Subject string   `json:"subject"`
	HTML    string   `json:"html"`
}

// Send delivers the confirmation email for a signup. productName is
// optional and only changes the subject line and greeting.
func (c *ResendClient) Send(ctx context.Context, name, email, productName string) error {
	if c.apiKey == "" || c.from == "" {
		return &domain.ProviderError{
			StatusCode: http.StatusInternalServerError,
			Message:    "mail provider is not configured",
		}
	}

	subject := "Welkom op de wachtlijst!"
	if productName != "" {
		subject = fmt.Sprintf("Welkom op de wachtlijst van %s!", productName)
	}

	payload, err := json.Marshal(sendRequest{
		From:    c.from,
		To:      []string{email},
		Subject: subject,
		HTML:    confirmationHTML(name, productName),
	})
	if err != nil {
		return fmt.Errorf("marshal mail payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.apiURL, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("build mail request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) || os.IsTimeout(err) {
			return &domain.ProviderError{
				StatusCode: http.StatusGatewayTimeout,
				Message:    "mail provider did not respond in time",
			}
		}
		return &domain.ProviderError{
			StatusCode: http.StatusBadGateway,
			Message:    fmt.Sprintf("mail provider unreachable: %v", err),
		}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &domain.ProviderError{
			StatusCode: resp.StatusCode,
			Message:    providerMessage(resp.Body),
		}
	}

	return nil
}

func confirmationHTML(name, productName string) string {
	target := "de wachtlijst"
	if productName != "" {
		target = "de wachtlijst van " + productName
	}
	return fmt.Sprintf(
		"<p>Hoi %s,</p><p>Je staat op %s. We sturen je een bericht zodra er nieuws is.</p>",
		name, target,
	)
}

// providerMessage extracts the error message from a Resend error body,
// falling back to the raw body when it is not the documented JSON shape.
func providerMessage(body io.Reader) string {
	raw, err := io.ReadAll(io.LimitReader(body, 4096))
	if err != nil || len(raw) == 0 {
		return "mail provider rejected the request"
	}

	var parsed struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(raw, &parsed); err == nil && parsed.Message != "" {
		return parsed.Message
	}
	return string(raw)
}

var _ domain.Mailer = (*ResendClient)(nil)
