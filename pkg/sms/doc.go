// Package sms provides the outbound SMS transport used by the SMS
// notification channel.
//
// The gateway client talks plain HTTP to a provider endpoint (form POST,
// bearer key), which covers the regional SMS gateways this system
// integrates with without a provider SDK. Messages are best effort and
// truncated to a single segment; the in-app copy of every notification
// carries the full text.
package sms
