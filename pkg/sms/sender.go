package sms

import (
	"context"
	"fmt"
	"regexp"
	"strings"
)

// Sender sends a single SMS message. Delivery is best effort: the
// notification engine records the outcome but never receives a delivery
// receipt through this interface.
type Sender interface {
	SendSMS(ctx context.Context, params SendParams) error
}

// SendParams describes one outbound SMS.
type SendParams struct {
	Phone   string `json:"phone"`   // E.164 format, e.g. +66812345678
	Message string `json:"message"` // Trimmed to MaxMessageLength before sending
}

// MaxMessageLength is the single-segment GSM limit; longer messages are
// truncated rather than split, since notifications are previews with a
// full in-app copy behind them.
const MaxMessageLength = 160

var phoneRegex = regexp.MustCompile(`^\+[1-9]\d{1,14}$`)

// Validate checks that the params are complete and the phone number is E.164.
func (p SendParams) Validate() error {
	if strings.TrimSpace(p.Phone) == "" {
		return fmt.Errorf("%w: Phone is required", ErrInvalidParams)
	}
	if !phoneRegex.MatchString(p.Phone) {
		return fmt.Errorf("%w: Phone must be in E.164 format", ErrInvalidParams)
	}
	if strings.TrimSpace(p.Message) == "" {
		return fmt.Errorf("%w: Message is required", ErrInvalidParams)
	}
	return nil
}

// Truncate returns the message cut to MaxMessageLength runes.
func Truncate(message string) string {
	runes := []rune(message)
	if len(runes) <= MaxMessageLength {
		return message
	}
	return string(runes[:MaxMessageLength])
}
