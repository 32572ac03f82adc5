package sms

import (
	"context"
	"log/slog"
)

// DevSender implements Sender for local development by logging messages
// instead of sending them.
type DevSender struct {
	logger *slog.Logger
}

// NewDevSender creates a development sender. A nil logger falls back to
// slog.Default().
func NewDevSender(logger *slog.Logger) Sender {
	if logger == nil {
		logger = slog.Default()
	}
	return &DevSender{logger: logger}
}

// SendSMS validates the params and logs the would-be message.
func (d *DevSender) SendSMS(ctx context.Context, params SendParams) error {
	if err := params.Validate(); err != nil {
		return err
	}

	d.logger.LogAttrs(ctx, slog.LevelInfo, "dev sms",
		slog.String("phone", params.Phone),
		slog.String("message", Truncate(params.Message)),
	)
	return nil
}
