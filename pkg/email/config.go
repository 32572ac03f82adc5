package email

// Config holds the email transport configuration.
// The Postmark tokens may stay empty in development, where the dev sender
// replaces the real client; SenderEmail and SupportEmail are always
// required because they establish the sender identity and reply-to
// behavior for every outbound message.
type Config struct {
	PostmarkServerToken  string `env:"POSTMARK_SERVER_TOKEN"`
	PostmarkAccountToken string `env:"POSTMARK_ACCOUNT_TOKEN"`
	SenderEmail          string `env:"SENDER_EMAIL,required"`
	SupportEmail         string `env:"SUPPORT_EMAIL,required"`
}
