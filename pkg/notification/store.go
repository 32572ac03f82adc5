package notification

import (
	"context"
	"time"
)

// Filter narrows recipient queries. Zero-value fields match everything.
type Filter struct {
	Status   Status
	Type     Type
	Priority Priority
}

// Page is 1-based pagination input. Zero values fall back to the first
// page of DefaultPageSize items.
type Page struct {
	Number int
	Size   int
}

// DefaultPageSize is used when a query does not specify a page size.
const DefaultPageSize = 20

func (p Page) normalize() Page {
	if p.Number < 1 {
		p.Number = 1
	}
	if p.Size < 1 {
		p.Size = DefaultPageSize
	}
	return p
}

// Offset returns the number of records to skip for this page.
func (p Page) Offset() int {
	p = p.normalize()
	return (p.Number - 1) * p.Size
}

// Limit returns the maximum number of records for this page.
func (p Page) Limit() int {
	return p.normalize().Size
}

// DateRange bounds a statistics query. Nil bounds are open.
type DateRange struct {
	From *time.Time
	To   *time.Time
}

// Stats aggregates notification volume and delivery outcomes over a
// date range.
type Stats struct {
	Total    int64 `json:"total"`
	Unread   int64 `json:"unread"`
	Read     int64 `json:"read"`
	Archived int64 `json:"archived"`

	ByType     map[Type]int64     `json:"by_type"`
	ByPriority map[Priority]int64 `json:"by_priority"`
	ByChannel  map[Channel]int64  `json:"by_channel"`
}

// Store persists notifications. Implementations must return ErrNotFound
// from FindByID when no record matches, and must hand out copies so
// callers cannot mutate stored state in place.
type Store interface {
	// Insert persists a new notification and returns its assigned ID.
	Insert(ctx context.Context, n *Notification) (string, error)

	// Update replaces the mutable lifecycle fields (status, read,
	// archived and expiry timestamps) of an existing notification.
	Update(ctx context.Context, n *Notification) error

	// UpdateDelivery replaces the per-channel delivery outcomes of an
	// existing notification.
	UpdateDelivery(ctx context.Context, id string, delivery DeliveryStatus) error

	// FindByID fetches one notification.
	FindByID(ctx context.Context, id string) (*Notification, error)

	// FindByRecipient lists a recipient's personal notifications,
	// newest first by SentAt, with the total match count.
	FindByRecipient(ctx context.Context, recipientID string, filter Filter, page Page) ([]Notification, int64, error)

	// FindBroadcasts lists broadcast notifications for a recipient
	// bucket, newest first by SentAt. For ROLE broadcasts the role
	// narrows the match.
	FindBroadcasts(ctx context.Context, rt RecipientType, role string, page Page) ([]Notification, int64, error)

	// CountUnread returns the number of unread personal notifications
	// for a recipient.
	CountUnread(ctx context.Context, recipientID string) (int64, error)

	// MarkAllRead transitions every unread notification of a recipient
	// to read and returns how many were affected.
	MarkAllRead(ctx context.Context, recipientID string, readAt time.Time) (int64, error)

	// Delete removes one notification. Returns ErrNotFound when no
	// record matches.
	Delete(ctx context.Context, id string) error

	// DeleteExpired removes notifications whose expiry has passed and
	// returns how many were removed.
	DeleteExpired(ctx context.Context, now time.Time) (int64, error)

	// Stats aggregates counts by status, type, priority and channel
	// over the given date range.
	Stats(ctx context.Context, rng DateRange) (Stats, error)
}
