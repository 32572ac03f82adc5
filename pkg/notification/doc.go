// Package notification is a multi-channel notification engine: it
// creates notification records, fans delivery out to in-app, email and
// SMS channels, and tracks lifecycle state and per-channel delivery
// outcomes.
//
// The in-app record is the source of truth. Dispatch persists it first,
// then attempts the remaining channels concurrently; every external
// outcome, success or failure, is recorded as data on the notification
// rather than surfaced as an error. A notification whose email bounced
// is still a delivered notification.
//
//	store := notification.NewMongoStore(db)
//	dispatcher := notification.NewDispatcher(store,
//		notification.WithAdapters(
//			notification.NewEmailAdapter(mailer),
//			notification.NewSMSAdapter(smsSender),
//		),
//	)
//
//	n, err := dispatcher.DispatchEvent(ctx, "certificate.expiring",
//		notification.EventRequest{
//			RecipientID: farmerID,
//			Address:     notification.Address{Email: farmer.Email, Phone: farmer.Phone},
//			Data:        map[string]string{"certificateNumber": cert.Number, "daysLeft": "14"},
//		})
//
// Reads and lifecycle transitions go through Service, which enforces
// recipient ownership on every per-record mutation.
package notification
