package notification

import (
	"errors"
	"strings"
)

var (
	// ErrNotFound is returned when a notification does not exist.
	ErrNotFound = errors.New("notification not found")
	// ErrForbidden is returned when a requester operates on a personal
	// notification that belongs to someone else.
	ErrForbidden = errors.New("notification belongs to another recipient")
	// ErrInvalidState is returned when a lifecycle transition is not
	// allowed from the notification's current status.
	ErrInvalidState = errors.New("invalid notification state for this operation")
	// ErrUnknownEventType is returned when no template exists for an
	// event key.
	ErrUnknownEventType = errors.New("unknown event type")
	// ErrMissingAddress is returned by channel adapters when the
	// dispatch request lacks the addressing data the channel needs.
	ErrMissingAddress = errors.New("missing addressing data for channel")
	// ErrNoAdapter is recorded on a channel's delivery entry when no
	// adapter is configured for a requested channel.
	ErrNoAdapter = errors.New("no adapter configured for channel")
)

// ValidationError describes a single violated creation rule.
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (e ValidationError) Error() string {
	return e.Field + ": " + e.Message
}

// ValidationErrors collects every rule violated by one notification so
// callers can report them all at once.
type ValidationErrors []ValidationError

func (ve ValidationErrors) Error() string {
	msgs := make([]string, len(ve))
	for i, e := range ve {
		msgs[i] = e.Error()
	}
	return "validation failed: " + strings.Join(msgs, "; ")
}

// Add appends a violation for the given field.
func (ve *ValidationErrors) Add(field, message string) {
	*ve = append(*ve, ValidationError{Field: field, Message: message})
}

// Has reports whether any violation was recorded for the field.
func (ve ValidationErrors) Has(field string) bool {
	for _, e := range ve {
		if e.Field == field {
			return true
		}
	}
	return false
}
