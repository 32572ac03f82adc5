package sms

import "time"

// Config holds the SMS gateway configuration.
type Config struct {
	GatewayURL  string        `env:"SMS_GATEWAY_URL,required"`
	GatewayKey  string        `env:"SMS_GATEWAY_KEY,required"`
	SenderName  string        `env:"SMS_SENDER_NAME" envDefault:"AGROCERT"`
	SendTimeout time.Duration `env:"SMS_SEND_TIMEOUT" envDefault:"10s"`
}
