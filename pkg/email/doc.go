// Package email provides the outbound email transport used by the EMAIL
// notification channel.
//
// The Sender interface decouples the channel adapter from the provider.
// Two implementations ship with the package: a Postmark-backed client for
// production and a DevSender that writes emails to disk for local work.
//
//	sender, err := email.NewPostmarkClient(cfg)
//	// or
//	sender := email.NewDevSender("./tmp/emails")
//
//	err = sender.SendEmail(ctx, email.SendParams{
//	    SendTo:   "farmer@example.com",
//	    Subject:  "Certificate expiring",
//	    BodyHTML: body,
//	    Tag:      "CERTIFICATE_EXPIRING",
//	})
package email
