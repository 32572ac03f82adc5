package sms

import "errors"

var (
	// ErrFailedToSend wraps gateway-side send failures.
	ErrFailedToSend = errors.New("sms: failed to send")

	// ErrInvalidParams is returned for incomplete or malformed send params.
	ErrInvalidParams = errors.New("sms: invalid send params")

	// ErrInvalidConfig is returned when the gateway configuration is unusable.
	ErrInvalidConfig = errors.New("sms: invalid config")
)
