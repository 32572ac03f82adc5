package sms

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
)

type gatewayClient struct {
	httpClient *http.Client
	config     Config
}

// NewGatewayClient creates a Sender backed by an HTTP SMS gateway that
// accepts form-encoded send requests authorized with a bearer key.
func NewGatewayClient(cfg Config) (Sender, error) {
	if cfg.GatewayURL == "" {
		return nil, fmt.Errorf("%w: GatewayURL is required", ErrInvalidConfig)
	}
	if _, err := url.ParseRequestURI(cfg.GatewayURL); err != nil {
		return nil, fmt.Errorf("%w: GatewayURL must be a valid URL", ErrInvalidConfig)
	}
	if cfg.GatewayKey == "" {
		return nil, fmt.Errorf("%w: GatewayKey is required", ErrInvalidConfig)
	}

	return &gatewayClient{
		httpClient: &http.Client{Timeout: cfg.SendTimeout},
		config:     cfg,
	}, nil
}

// SendSMS posts the message to the gateway. The message is truncated to a
// single SMS segment; a non-2xx response is reported as a send failure
// with the response body as context.
func (c *gatewayClient) SendSMS(ctx context.Context, params SendParams) error {
	if err := params.Validate(); err != nil {
		return err
	}

	form := url.Values{
		"to":      {params.Phone},
		"from":    {c.config.SenderName},
		"message": {Truncate(params.Message)},
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.config.GatewayURL, strings.NewReader(form.Encode()))
	if err != nil {
		return errors.Join(ErrFailedToSend, err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Authorization", "Bearer "+c.config.GatewayKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return errors.Join(ErrFailedToSend, err)
	}
	defer resp.Body.Close() //nolint:errcheck

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return errors.Join(
			ErrFailedToSend,
			fmt.Errorf("gateway responded %d: %s", resp.StatusCode, strings.TrimSpace(string(body))),
		)
	}

	return nil
}
