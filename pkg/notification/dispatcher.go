package notification

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/agrocert/notify/pkg/async"
	"github.com/agrocert/notify/pkg/logger"
)

// Dispatcher creates notifications and fans delivery out to the
// requested channels. The in-app record is persisted first and
// unconditionally; external channels are attempted concurrently and
// their failures are recorded as delivery data, never surfaced as a
// dispatch error.
type Dispatcher struct {
	store    Store
	adapters map[Channel]Adapter
	resolver *TemplateResolver
	log      *slog.Logger
}

// DispatcherOption configures a Dispatcher.
type DispatcherOption func(*Dispatcher)

// WithAdapters registers channel adapters, keyed by their Channel().
func WithAdapters(adapters ...Adapter) DispatcherOption {
	return func(d *Dispatcher) {
		for _, a := range adapters {
			d.adapters[a.Channel()] = a
		}
	}
}

// WithTemplates sets the template catalogue used by DispatchEvent.
func WithTemplates(set TemplateSet) DispatcherOption {
	return func(d *Dispatcher) {
		d.resolver = NewTemplateResolver(set)
	}
}

// WithDispatcherLogger sets the logger. Defaults to slog.Default().
func WithDispatcherLogger(log *slog.Logger) DispatcherOption {
	return func(d *Dispatcher) {
		if log != nil {
			d.log = log
		}
	}
}

// NewDispatcher returns a dispatcher backed by the given store. Without
// WithAdapters every external channel attempt is recorded as failed
// with ErrNoAdapter.
func NewDispatcher(store Store, opts ...DispatcherOption) *Dispatcher {
	d := &Dispatcher{
		store:    store,
		adapters: make(map[Channel]Adapter),
		resolver: NewTemplateResolver(nil),
		log:      slog.Default(),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// DispatchRequest describes one personal notification to create and
// deliver.
type DispatchRequest struct {
	RecipientID   string
	RecipientType RecipientType
	RecipientRole string

	Type       Type
	Title      string
	Message    string
	MessageAlt string
	Priority   Priority
	Channels   []Channel

	// Address supplies the email/phone used by external channel
	// adapters.
	Address Address

	ActionURL     string
	ActionLabel   string
	RelatedEntity *RelatedEntity
	Metadata      map[string]any
	SentBy        string

	// ExpiresAt overrides the priority-derived retention deadline.
	ExpiresAt *time.Time
}

// Dispatch validates the request, persists the notification with the
// IN_APP channel already marked delivered, then attempts every other
// requested channel concurrently. It blocks until all attempts settle
// and returns the notification with the full per-channel outcome map.
//
// Only validation and the initial insert can fail; a channel failure is
// data on the returned record. A failed post-delivery status write is
// logged and absorbed: the notification itself is already durable.
func (d *Dispatcher) Dispatch(ctx context.Context, req DispatchRequest) (*Notification, error) {
	n := d.build(req)
	if ve := n.Validate(); len(ve) > 0 {
		return nil, ve
	}

	n.MarkChannelResult(ChannelInApp, time.Now(), nil)
	id, err := d.store.Insert(ctx, n)
	if err != nil {
		return nil, fmt.Errorf("insert notification: %w", err)
	}
	n.ID = id

	if external := n.ExternalChannels(); len(external) > 0 {
		d.deliverExternal(ctx, n, external, req.Address)
		if err := d.store.UpdateDelivery(ctx, n.ID, n.Delivery); err != nil {
			d.log.ErrorContext(ctx, "failed to update delivery status",
				logger.NotificationID(n.ID), logger.Error(err))
		}
	}
	return n, nil
}

// deliverExternal fans out to the non-IN_APP channels, waits for every
// attempt to settle and records each outcome on the notification.
func (d *Dispatcher) deliverExternal(ctx context.Context, n *Notification, channels []Channel, addr Address) {
	content := Content{
		Type:        n.Type,
		Title:       n.Title,
		Message:     n.Message,
		Priority:    n.Priority,
		ActionURL:   n.ActionURL,
		ActionLabel: n.ActionLabel,
	}

	futures := make([]*async.Future[Channel], 0, len(channels))
	launched := make([]Channel, 0, len(channels))
	for _, ch := range channels {
		adapter, ok := d.adapters[ch]
		if !ok {
			n.MarkChannelResult(ch, time.Now(), fmt.Errorf("%w: %s", ErrNoAdapter, ch))
			d.log.WarnContext(ctx, "channel delivery skipped",
				logger.NotificationID(n.ID), logger.Channel(string(ch)), logger.Error(ErrNoAdapter))
			continue
		}
		futures = append(futures, async.Async(ctx, adapter, func(ctx context.Context, a Adapter) (Channel, error) {
			return a.Channel(), a.Send(ctx, addr, content)
		}))
		launched = append(launched, ch)
	}

	// Results come back in input order. The launched slice, not the
	// settled value, names each channel: a future that settles on a
	// canceled context carries the zero Channel.
	for i, res := range async.SettleAll(futures...) {
		ch := launched[i]
		n.MarkChannelResult(ch, time.Now(), res.Err)
		if res.Err != nil {
			d.log.WarnContext(ctx, "channel delivery failed",
				logger.NotificationID(n.ID), logger.Channel(string(ch)), logger.Error(res.Err))
		}
	}
}

// EventRequest describes a template-driven dispatch: content comes from
// the catalogue, addressing and context from the caller.
type EventRequest struct {
	RecipientID   string
	RecipientType RecipientType
	RecipientRole string

	// Data fills {name} placeholders in the template title and message.
	Data map[string]string

	Address       Address
	ActionURL     string
	ActionLabel   string
	RelatedEntity *RelatedEntity
	Metadata      map[string]any
	SentBy        string
}

// DispatchEvent resolves the event key against the template catalogue
// and dispatches the resulting content. Returns ErrUnknownEventType for
// keys with no template.
func (d *Dispatcher) DispatchEvent(ctx context.Context, eventKey string, req EventRequest) (*Notification, error) {
	resolved, err := d.resolver.Resolve(eventKey, req.Data)
	if err != nil {
		return nil, err
	}

	recipientType := req.RecipientType
	if recipientType == "" {
		recipientType = resolved.RecipientType
	}
	recipientRole := req.RecipientRole
	if recipientRole == "" {
		recipientRole = resolved.RecipientRole
	}

	return d.Dispatch(ctx, DispatchRequest{
		RecipientID:   req.RecipientID,
		RecipientType: recipientType,
		RecipientRole: recipientRole,
		Type:          resolved.Type,
		Title:         resolved.Title,
		Message:       resolved.Message,
		Priority:      resolved.Priority,
		Channels:      resolved.Channels,
		Address:       req.Address,
		ActionURL:     req.ActionURL,
		ActionLabel:   req.ActionLabel,
		RelatedEntity: req.RelatedEntity,
		Metadata:      req.Metadata,
		SentBy:        req.SentBy,
	})
}

// BroadcastRequest describes a notification addressed to a recipient
// bucket instead of one user.
type BroadcastRequest struct {
	RecipientType RecipientType
	RecipientRole string

	Type       Type
	Title      string
	Message    string
	MessageAlt string
	Priority   Priority

	ActionURL   string
	ActionLabel string
	Metadata    map[string]any
	SentBy      string
	ExpiresAt   *time.Time
}

// Broadcast persists one notification visible to every member of the
// bucket. Broadcasts are IN_APP only: there is no per-user addressing
// to deliver external channels against.
func (d *Dispatcher) Broadcast(ctx context.Context, req BroadcastRequest) (*Notification, error) {
	n := d.build(DispatchRequest{
		RecipientType: req.RecipientType,
		RecipientRole: req.RecipientRole,
		Type:          req.Type,
		Title:         req.Title,
		Message:       req.Message,
		MessageAlt:    req.MessageAlt,
		Priority:      req.Priority,
		Channels:      []Channel{ChannelInApp},
		ActionURL:     req.ActionURL,
		ActionLabel:   req.ActionLabel,
		Metadata:      req.Metadata,
		SentBy:        req.SentBy,
		ExpiresAt:     req.ExpiresAt,
	})

	ve := n.Validate()
	if !n.RecipientType.IsBroadcast() {
		ve.Add("recipient_type", "broadcast requires a group recipient type")
	}
	if len(ve) > 0 {
		return nil, ve
	}

	n.MarkChannelResult(ChannelInApp, time.Now(), nil)
	id, err := d.store.Insert(ctx, n)
	if err != nil {
		return nil, fmt.Errorf("insert broadcast: %w", err)
	}
	n.ID = id

	d.log.InfoContext(ctx, "broadcast sent",
		logger.NotificationID(n.ID), slog.String("recipient_type", string(n.RecipientType)))
	return n, nil
}

// build assembles an unvalidated notification from a request, applying
// the defaults: MEDIUM priority, FARMER recipient type, UNREAD status
// and a priority-derived expiry.
func (d *Dispatcher) build(req DispatchRequest) *Notification {
	now := time.Now()

	priority := req.Priority
	if priority == "" {
		priority = PriorityMedium
	}
	recipientType := req.RecipientType
	if recipientType == "" {
		recipientType = RecipientFarmer
	}
	typ := req.Type
	if typ == "" {
		typ = TypeInfo
	}
	expiresAt := req.ExpiresAt
	if expiresAt == nil {
		expiry := DefaultExpiry(priority, now)
		expiresAt = &expiry
	}

	return &Notification{
		RecipientID:   req.RecipientID,
		RecipientType: recipientType,
		RecipientRole: req.RecipientRole,
		Type:          typ,
		Title:         req.Title,
		Message:       req.Message,
		MessageAlt:    req.MessageAlt,
		Priority:      priority,
		Status:        StatusUnread,
		Channels:      append([]Channel(nil), req.Channels...),
		Delivery:      NewDeliveryStatus(),
		ActionURL:     req.ActionURL,
		ActionLabel:   req.ActionLabel,
		RelatedEntity: req.RelatedEntity,
		Metadata:      req.Metadata,
		SentAt:        now,
		ExpiresAt:     expiresAt,
		SentBy:        req.SentBy,
		CreatedAt:     now,
	}
}
