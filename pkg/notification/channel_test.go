package notification_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agrocert/notify/pkg/email"
	"github.com/agrocert/notify/pkg/notification"
	"github.com/agrocert/notify/pkg/sms"
)

type captureEmailSender struct {
	params email.SendParams
	err    error
}

func (s *captureEmailSender) SendEmail(_ context.Context, params email.SendParams) error {
	s.params = params
	return s.err
}

type captureSMSSender struct {
	params sms.SendParams
	err    error
}

func (s *captureSMSSender) SendSMS(_ context.Context, params sms.SendParams) error {
	s.params = params
	return s.err
}

func TestEmailAdapter(t *testing.T) {
	t.Parallel()

	content := notification.Content{
		Type:        notification.TypeCertificateIssued,
		Title:       "Certificate Issued",
		Message:     "Your certificate GACP-2026-0042 has been issued.",
		Priority:    notification.PriorityHigh,
		ActionURL:   "https://portal.example.com/certificates/42",
		ActionLabel: "View Certificate",
	}

	t.Run("renders html body", func(t *testing.T) {
		t.Parallel()

		sender := &captureEmailSender{}
		adapter := notification.NewEmailAdapter(sender)
		require.Equal(t, notification.ChannelEmail, adapter.Channel())

		err := adapter.Send(context.Background(),
			notification.Address{Email: "farmer@example.com"}, content)
		require.NoError(t, err)

		assert.Equal(t, "farmer@example.com", sender.params.SendTo)
		assert.Equal(t, "Certificate Issued", sender.params.Subject)
		assert.Equal(t, string(notification.TypeCertificateIssued), sender.params.Tag)
		assert.Contains(t, sender.params.BodyHTML, "GACP-2026-0042")
		assert.Contains(t, sender.params.BodyHTML, "priority-HIGH")
		assert.Contains(t, sender.params.BodyHTML, `href="https://portal.example.com/certificates/42"`)
		assert.Contains(t, sender.params.BodyHTML, "View Certificate")
	})

	t.Run("missing email address", func(t *testing.T) {
		t.Parallel()

		adapter := notification.NewEmailAdapter(&captureEmailSender{})
		err := adapter.Send(context.Background(), notification.Address{}, content)
		assert.ErrorIs(t, err, notification.ErrMissingAddress)
	})

	t.Run("sender failure propagates", func(t *testing.T) {
		t.Parallel()

		adapter := notification.NewEmailAdapter(&captureEmailSender{err: assert.AnError})
		err := adapter.Send(context.Background(),
			notification.Address{Email: "farmer@example.com"}, content)
		assert.ErrorIs(t, err, assert.AnError)
	})
}

func TestSMSAdapter(t *testing.T) {
	t.Parallel()

	t.Run("concatenates title and message", func(t *testing.T) {
		t.Parallel()

		sender := &captureSMSSender{}
		adapter := notification.NewSMSAdapter(sender)
		require.Equal(t, notification.ChannelSMS, adapter.Channel())

		err := adapter.Send(context.Background(),
			notification.Address{Phone: "+66812345678"},
			notification.Content{Title: "Certificate Expiring", Message: "Renew within 14 days."})
		require.NoError(t, err)

		assert.Equal(t, "+66812345678", sender.params.Phone)
		assert.Equal(t, "Certificate Expiring: Renew within 14 days.", sender.params.Message)
	})

	t.Run("long content is truncated", func(t *testing.T) {
		t.Parallel()

		sender := &captureSMSSender{}
		adapter := notification.NewSMSAdapter(sender)

		long := make([]byte, 400)
		for i := range long {
			long[i] = 'a'
		}
		err := adapter.Send(context.Background(),
			notification.Address{Phone: "+66812345678"},
			notification.Content{Title: "Alert", Message: string(long)})
		require.NoError(t, err)
		assert.LessOrEqual(t, len(sender.params.Message), sms.MaxMessageLength)
	})

	t.Run("missing phone number", func(t *testing.T) {
		t.Parallel()

		adapter := notification.NewSMSAdapter(&captureSMSSender{})
		err := adapter.Send(context.Background(), notification.Address{},
			notification.Content{Title: "Alert", Message: "x"})
		assert.ErrorIs(t, err, notification.ErrMissingAddress)
	})
}
