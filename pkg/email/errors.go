package email

import "errors"

var (
	// ErrFailedToSend wraps provider-side send failures.
	ErrFailedToSend = errors.New("email: failed to send")

	// ErrInvalidParams is returned for incomplete or malformed send params.
	ErrInvalidParams = errors.New("email: invalid send params")

	// ErrInvalidConfig is returned when the transport configuration is unusable.
	ErrInvalidConfig = errors.New("email: invalid config")
)
