package sms_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agrocert/notify/pkg/sms"
)

func TestSendParams_Validate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		params  sms.SendParams
		wantErr bool
	}{
		{name: "valid", params: sms.SendParams{Phone: "+66812345678", Message: "hello"}},
		{name: "missing phone", params: sms.SendParams{Message: "hello"}, wantErr: true},
		{name: "not E.164", params: sms.SendParams{Phone: "0812345678", Message: "hello"}, wantErr: true},
		{name: "missing message", params: sms.SendParams{Phone: "+66812345678"}, wantErr: true},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			err := tt.params.Validate()
			if tt.wantErr {
				assert.ErrorIs(t, err, sms.ErrInvalidParams)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestTruncate(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "short", sms.Truncate("short"))

	long := strings.Repeat("x", 200)
	assert.Len(t, sms.Truncate(long), sms.MaxMessageLength)
}

func TestNewGatewayClient_ConfigValidation(t *testing.T) {
	t.Parallel()

	_, err := sms.NewGatewayClient(sms.Config{GatewayKey: "k"})
	assert.ErrorIs(t, err, sms.ErrInvalidConfig)

	_, err = sms.NewGatewayClient(sms.Config{GatewayURL: "https://gw.example.com/send"})
	assert.ErrorIs(t, err, sms.ErrInvalidConfig)

	_, err = sms.NewGatewayClient(sms.Config{GatewayURL: "https://gw.example.com/send", GatewayKey: "k"})
	assert.NoError(t, err)
}

func TestGatewayClient_SendSMS(t *testing.T) {
	t.Parallel()

	t.Run("posts form with auth", func(t *testing.T) {
		t.Parallel()

		var gotAuth, gotTo, gotFrom, gotMessage string
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			require.NoError(t, r.ParseForm())
			gotAuth = r.Header.Get("Authorization")
			gotTo = r.FormValue("to")
			gotFrom = r.FormValue("from")
			gotMessage = r.FormValue("message")
			w.WriteHeader(http.StatusOK)
		}))
		defer srv.Close()

		client, err := sms.NewGatewayClient(sms.Config{
			GatewayURL:  srv.URL,
			GatewayKey:  "secret",
			SenderName:  "AGROCERT",
			SendTimeout: 5 * time.Second,
		})
		require.NoError(t, err)

		err = client.SendSMS(context.Background(), sms.SendParams{
			Phone:   "+66812345678",
			Message: "Certificate expiring: renew within 14 days",
		})
		require.NoError(t, err)

		assert.Equal(t, "Bearer secret", gotAuth)
		assert.Equal(t, "+66812345678", gotTo)
		assert.Equal(t, "AGROCERT", gotFrom)
		assert.Contains(t, gotMessage, "Certificate expiring")
	})

	t.Run("gateway error reported", func(t *testing.T) {
		t.Parallel()

		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "insufficient credit", http.StatusPaymentRequired)
		}))
		defer srv.Close()

		client, err := sms.NewGatewayClient(sms.Config{
			GatewayURL:  srv.URL,
			GatewayKey:  "secret",
			SendTimeout: 5 * time.Second,
		})
		require.NoError(t, err)

		err = client.SendSMS(context.Background(), sms.SendParams{Phone: "+66812345678", Message: "hi"})
		assert.ErrorIs(t, err, sms.ErrFailedToSend)
		assert.ErrorContains(t, err, "insufficient credit")
	})

	t.Run("long message truncated", func(t *testing.T) {
		t.Parallel()

		var gotMessage string
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			require.NoError(t, r.ParseForm())
			gotMessage = r.FormValue("message")
		}))
		defer srv.Close()

		client, err := sms.NewGatewayClient(sms.Config{
			GatewayURL:  srv.URL,
			GatewayKey:  "secret",
			SendTimeout: 5 * time.Second,
		})
		require.NoError(t, err)

		err = client.SendSMS(context.Background(), sms.SendParams{
			Phone:   "+66812345678",
			Message: strings.Repeat("a", 300),
		})
		require.NoError(t, err)
		assert.Len(t, gotMessage, sms.MaxMessageLength)
	})
}

func TestDevSender(t *testing.T) {
	t.Parallel()

	sender := sms.NewDevSender(nil)

	assert.NoError(t, sender.SendSMS(context.Background(), sms.SendParams{
		Phone:   "+66812345678",
		Message: "hello",
	}))
	assert.ErrorIs(t, sender.SendSMS(context.Background(), sms.SendParams{}), sms.ErrInvalidParams)
}
