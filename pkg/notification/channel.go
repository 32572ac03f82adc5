package notification

import (
	"bytes"
	"context"
	"fmt"
	"html/template"

	"github.com/agrocert/notify/pkg/email"
	"github.com/agrocert/notify/pkg/sms"
)

// Address carries the per-recipient addressing data adapters need.
// Fields are optional: an adapter fails with ErrMissingAddress when its
// own field is empty.
type Address struct {
	Email string
	Phone string
}

// Content is the rendered notification content handed to an adapter.
type Content struct {
	Type        Type
	Title       string
	Message     string
	Priority    Priority
	ActionURL   string
	ActionLabel string
}

// Adapter delivers notification content over one external channel.
// Implementations must be safe for concurrent use: the dispatcher fans
// out to all requested channels at once.
type Adapter interface {
	Channel() Channel
	Send(ctx context.Context, addr Address, content Content) error
}

// EmailAdapter delivers notifications as HTML email.
type EmailAdapter struct {
	sender email.Sender
}

// NewEmailAdapter wires an email sender as the EMAIL channel adapter.
func NewEmailAdapter(sender email.Sender) *EmailAdapter {
	return &EmailAdapter{sender: sender}
}

func (a *EmailAdapter) Channel() Channel { return ChannelEmail }

func (a *EmailAdapter) Send(ctx context.Context, addr Address, content Content) error {
	if addr.Email == "" {
		return fmt.Errorf("%w: %s", ErrMissingAddress, ChannelEmail)
	}
	body, err := renderEmailBody(content)
	if err != nil {
		return fmt.Errorf("render email body: %w", err)
	}
	return a.sender.SendEmail(ctx, email.SendParams{
		SendTo:   addr.Email,
		Subject:  content.Title,
		BodyHTML: body,
		Tag:      string(content.Type),
	})
}

var emailBodyTmpl = template.Must(template.New("notification").Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<style>
body { font-family: Arial, sans-serif; color: #333; margin: 0; padding: 0; background: #f4f4f4; }
.container { max-width: 600px; margin: 20px auto; background: #fff; border-radius: 8px; overflow: hidden; }
.header { background: #2d6a4f; color: #fff; padding: 24px; }
.header h1 { margin: 0; font-size: 20px; }
.content { padding: 24px; }
.priority { display: inline-block; padding: 2px 10px; border-radius: 10px; font-size: 12px; color: #fff; }
.priority-URGENT { background: #d00000; }
.priority-HIGH { background: #e85d04; }
.priority-MEDIUM { background: #2d6a4f; }
.priority-LOW { background: #6c757d; }
.action { display: inline-block; margin-top: 16px; padding: 10px 20px; background: #2d6a4f; color: #fff; text-decoration: none; border-radius: 4px; }
.footer { padding: 16px 24px; font-size: 12px; color: #888; }
</style>
</head>
<body>
<div class="container">
<div class="header"><h1>AgroCert GACP Certification</h1></div>
<div class="content">
<span class="priority priority-{{.Priority}}">{{.Priority}}</span>
<h2>{{.Title}}</h2>
<p>{{.Message}}</p>
{{if .ActionURL}}<a class="action" href="{{.ActionURL}}">{{if .ActionLabel}}{{.ActionLabel}}{{else}}View Details{{end}}</a>{{end}}
</div>
<div class="footer">This is an automated notification. Please do not reply to this email.</div>
</div>
</body>
</html>`))

func renderEmailBody(content Content) (string, error) {
	var buf bytes.Buffer
	if err := emailBodyTmpl.Execute(&buf, content); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// SMSAdapter delivers notifications as short text messages.
type SMSAdapter struct {
	sender sms.Sender
}

// NewSMSAdapter wires an SMS sender as the SMS channel adapter.
func NewSMSAdapter(sender sms.Sender) *SMSAdapter {
	return &SMSAdapter{sender: sender}
}

func (a *SMSAdapter) Channel() Channel { return ChannelSMS }

func (a *SMSAdapter) Send(ctx context.Context, addr Address, content Content) error {
	if addr.Phone == "" {
		return fmt.Errorf("%w: %s", ErrMissingAddress, ChannelSMS)
	}
	return a.sender.SendSMS(ctx, sms.SendParams{
		Phone:   addr.Phone,
		Message: sms.Truncate(content.Title + ": " + content.Message),
	})
}
