package notification

import (
	"time"
)

// Status is the lifecycle state of a notification.
type Status string

const (
	StatusUnread   Status = "UNREAD"
	StatusRead     Status = "READ"
	StatusArchived Status = "ARCHIVED"
)

// Priority drives the default retention window and lets clients order
// their inboxes.
type Priority string

const (
	PriorityLow    Priority = "LOW"
	PriorityMedium Priority = "MEDIUM"
	PriorityHigh   Priority = "HIGH"
	PriorityUrgent Priority = "URGENT"
)

// retentionDays maps priority to the default number of days before a
// notification expires and becomes eligible for deletion.
var retentionDays = map[Priority]int{
	PriorityUrgent: 7,
	PriorityHigh:   30,
	PriorityMedium: 90,
	PriorityLow:    180,
}

// Channel is a delivery transport.
type Channel string

const (
	ChannelInApp Channel = "IN_APP"
	ChannelEmail Channel = "EMAIL"
	ChannelSMS   Channel = "SMS"
)

// AllChannels lists every known delivery channel.
func AllChannels() []Channel {
	return []Channel{ChannelInApp, ChannelEmail, ChannelSMS}
}

// RecipientType identifies who a notification is addressed to: a concrete
// user category for personal notifications, or a broadcast bucket.
type RecipientType string

const (
	RecipientFarmer     RecipientType = "FARMER"
	RecipientStaff      RecipientType = "DTAM_STAFF"
	RecipientAllFarmers RecipientType = "ALL_FARMERS"
	RecipientAllStaff   RecipientType = "ALL_DTAM_STAFF"
	RecipientRoleGroup  RecipientType = "ROLE"
)

// IsBroadcast reports whether the recipient type targets a bucket of
// users rather than a single one.
func (rt RecipientType) IsBroadcast() bool {
	switch rt {
	case RecipientAllFarmers, RecipientAllStaff, RecipientRoleGroup:
		return true
	}
	return false
}

func (rt RecipientType) valid() bool {
	switch rt {
	case RecipientFarmer, RecipientStaff, RecipientAllFarmers, RecipientAllStaff, RecipientRoleGroup:
		return true
	}
	return false
}

// Type is the closed event taxonomy used for templating and statistics.
type Type string

const (
	// Farm
	TypeFarmApproved             Type = "FARM_APPROVED"
	TypeFarmRejected             Type = "FARM_REJECTED"
	TypeFarmVerificationRequired Type = "FARM_VERIFICATION_REQUIRED"

	// Survey
	TypeSurveyApproved         Type = "SURVEY_APPROVED"
	TypeSurveyRejected         Type = "SURVEY_REJECTED"
	TypeSurveyRevisionRequired Type = "SURVEY_REVISION_REQUIRED"
	TypeSurveySubmitted        Type = "SURVEY_SUBMITTED"

	// Certificate
	TypeCertificateIssued   Type = "CERTIFICATE_ISSUED"
	TypeCertificateExpiring Type = "CERTIFICATE_EXPIRING"
	TypeCertificateExpired  Type = "CERTIFICATE_EXPIRED"
	TypeCertificateRenewed  Type = "CERTIFICATE_RENEWED"

	// Training
	TypeTrainingEnrolled          Type = "TRAINING_ENROLLED"
	TypeTrainingCompleted         Type = "TRAINING_COMPLETED"
	TypeTrainingFailed            Type = "TRAINING_FAILED"
	TypeTrainingCertificateIssued Type = "TRAINING_CERTIFICATE_ISSUED"
	TypeCoursePublished           Type = "COURSE_PUBLISHED"

	// Document
	TypeDocumentUploaded Type = "DOCUMENT_UPLOADED"
	TypeDocumentApproved Type = "DOCUMENT_APPROVED"
	TypeDocumentRejected Type = "DOCUMENT_REJECTED"

	// Payment
	TypePaymentRequired  Type = "PAYMENT_REQUIRED"
	TypePaymentConfirmed Type = "PAYMENT_CONFIRMED"

	// System
	TypeSystemAnnouncement Type = "SYSTEM_ANNOUNCEMENT"
	TypeSystemMaintenance  Type = "SYSTEM_MAINTENANCE"
	TypeSystemUpdate       Type = "SYSTEM_UPDATE"

	// Account
	TypeAccountCreated  Type = "ACCOUNT_CREATED"
	TypeAccountVerified Type = "ACCOUNT_VERIFIED"
	TypePasswordChanged Type = "PASSWORD_CHANGED"

	// Generic
	TypeInfo    Type = "INFO"
	TypeWarning Type = "WARNING"
	TypeError   Type = "ERROR"
	TypeSuccess Type = "SUCCESS"
)

// ChannelDelivery records the outcome of one channel's delivery attempt.
type ChannelDelivery struct {
	Attempted   bool       `json:"attempted" bson:"attempted"`
	Succeeded   bool       `json:"succeeded" bson:"succeeded"`
	AttemptedAt *time.Time `json:"attempted_at,omitempty" bson:"attempted_at,omitempty"`
	Error       string     `json:"error,omitempty" bson:"error,omitempty"`
}

// DeliveryStatus maps every known channel to its delivery outcome.
// Channels that were never requested stay at the zero ChannelDelivery.
type DeliveryStatus map[Channel]ChannelDelivery

// NewDeliveryStatus returns a status map with an entry for every known
// channel. Populating all keys up front keeps lookups total and avoids
// deriving map keys from channel names at delivery time.
func NewDeliveryStatus() DeliveryStatus {
	ds := make(DeliveryStatus, len(AllChannels()))
	for _, ch := range AllChannels() {
		ds[ch] = ChannelDelivery{}
	}
	return ds
}

// Clone returns an independent copy of the status map.
func (ds DeliveryStatus) Clone() DeliveryStatus {
	clone := make(DeliveryStatus, len(ds))
	for ch, cd := range ds {
		clone[ch] = cd
	}
	return clone
}

// RelatedEntity is a weak back-reference to the domain object the
// notification concerns.
type RelatedEntity struct {
	Type string `json:"type" bson:"type"`
	ID   string `json:"id" bson:"id"`
}

// Notification is the persisted aggregate: content, lifecycle status and
// per-channel delivery outcomes for one notification.
type Notification struct {
	ID string `json:"id"`

	// Recipient: either RecipientID is set (personal notification) or it
	// is empty and RecipientType names a broadcast bucket, with
	// RecipientRole narrowing ROLE broadcasts.
	RecipientID   string        `json:"recipient_id,omitempty"`
	RecipientType RecipientType `json:"recipient_type"`
	RecipientRole string        `json:"recipient_role,omitempty"`

	Type       Type   `json:"type"`
	Title      string `json:"title"`
	Message    string `json:"message"`
	MessageAlt string `json:"message_alt,omitempty"` // Alternate-language rendering of Message

	Priority Priority `json:"priority"`
	Status   Status   `json:"status"`

	Channels []Channel      `json:"channels"`
	Delivery DeliveryStatus `json:"delivery_status"`

	ActionURL   string `json:"action_url,omitempty"`
	ActionLabel string `json:"action_label,omitempty"`

	RelatedEntity *RelatedEntity `json:"related_entity,omitempty"`
	Metadata      map[string]any `json:"metadata,omitempty"`

	SentAt     time.Time  `json:"sent_at"`
	ReadAt     *time.Time `json:"read_at,omitempty"`
	ArchivedAt *time.Time `json:"archived_at,omitempty"`
	ExpiresAt  *time.Time `json:"expires_at,omitempty"`

	// SentBy identifies the actor (system or staff) that triggered
	// creation. Audit only.
	SentBy    string    `json:"sent_by,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// MarkAsRead transitions the notification to READ. Calling it on an
// already-read notification is a no-op.
func (n *Notification) MarkAsRead() {
	if n.Status == StatusRead {
		return
	}
	n.Status = StatusRead
	now := time.Now()
	n.ReadAt = &now
}

// MarkAsUnread transitions the notification back to UNREAD and clears
// the read timestamp. A no-op when already unread.
func (n *Notification) MarkAsUnread() {
	if n.Status == StatusUnread {
		return
	}
	n.Status = StatusUnread
	n.ReadAt = nil
}

// Archive transitions the notification to ARCHIVED. A no-op when already
// archived. The prior read state is not stored separately: Unarchive
// recovers it from ReadAt.
func (n *Notification) Archive() {
	if n.Status == StatusArchived {
		return
	}
	n.Status = StatusArchived
	now := time.Now()
	n.ArchivedAt = &now
}

// Unarchive restores an archived notification to READ when it had been
// read before archiving (ReadAt set), otherwise to UNREAD. Returns
// ErrInvalidState when the notification is not archived.
func (n *Notification) Unarchive() error {
	if n.Status != StatusArchived {
		return ErrInvalidState
	}
	if n.ReadAt != nil {
		n.Status = StatusRead
	} else {
		n.Status = StatusUnread
	}
	n.ArchivedAt = nil
	return nil
}

// SetExpiration sets the expiry to the given number of days from now.
func (n *Notification) SetExpiration(daysFromNow int) {
	expiry := time.Now().AddDate(0, 0, daysFromNow)
	n.ExpiresAt = &expiry
}

// DefaultExpiry computes the retention deadline for a priority relative
// to now: URGENT 7d, HIGH 30d, MEDIUM 90d, LOW 180d.
func DefaultExpiry(p Priority, now time.Time) time.Time {
	days, ok := retentionDays[p]
	if !ok {
		days = retentionDays[PriorityMedium]
	}
	return now.AddDate(0, 0, days)
}

// MarkChannelResult records one channel's settled delivery attempt.
// A nil err marks the attempt succeeded; otherwise the error message is
// captured as data on the channel entry.
func (n *Notification) MarkChannelResult(ch Channel, attemptedAt time.Time, err error) {
	cd := ChannelDelivery{
		Attempted:   true,
		Succeeded:   err == nil,
		AttemptedAt: &attemptedAt,
	}
	if err != nil {
		cd.Error = err.Error()
	}
	if n.Delivery == nil {
		n.Delivery = NewDeliveryStatus()
	}
	n.Delivery[ch] = cd
}

// HasChannel reports whether the channel was requested for this notification.
func (n *Notification) HasChannel(ch Channel) bool {
	for _, c := range n.Channels {
		if c == ch {
			return true
		}
	}
	return false
}

// ExternalChannels returns the requested channels other than IN_APP, in
// request order.
func (n *Notification) ExternalChannels() []Channel {
	var out []Channel
	for _, c := range n.Channels {
		if c != ChannelInApp {
			out = append(out, c)
		}
	}
	return out
}

// IsBroadcast reports whether the notification targets a recipient bucket
// instead of a single user.
func (n *Notification) IsBroadcast() bool {
	return n.RecipientID == ""
}

// IsUnread reports whether the notification is still unread.
func (n *Notification) IsUnread() bool { return n.Status == StatusUnread }

// IsArchived reports whether the notification is archived.
func (n *Notification) IsArchived() bool { return n.Status == StatusArchived }

// IsUrgent reports whether the notification has URGENT priority.
func (n *Notification) IsUrgent() bool { return n.Priority == PriorityUrgent }

// IsExpired reports whether the notification's retention window has passed.
func (n *Notification) IsExpired() bool {
	if n.ExpiresAt == nil {
		return false
	}
	return time.Now().After(*n.ExpiresAt)
}

// Validate checks the creation-time contract and returns every violated
// rule, not just the first: callers fixing a submission need the full
// set in one pass. A nil return means the notification is valid.
func (n *Notification) Validate() ValidationErrors {
	var ve ValidationErrors

	if n.Title == "" {
		ve.Add("title", "title is required")
	}
	if n.Message == "" {
		ve.Add("message", "message is required")
	}
	if n.Type == "" {
		ve.Add("type", "type is required")
	}
	if n.RecipientType == "" {
		ve.Add("recipient_type", "recipient type is required")
	} else if !n.RecipientType.valid() {
		ve.Add("recipient_type", "unknown recipient type")
	} else if n.RecipientType.IsBroadcast() {
		// Exactly one of recipient id or broadcast target may be set,
		// and broadcasts have no per-user addressing to deliver
		// external channels against.
		if n.RecipientID != "" {
			ve.Add("recipient_id", "recipient id must be empty for broadcast recipient types")
		}
		for _, ch := range n.Channels {
			if ch != ChannelInApp {
				ve.Add("channels", "broadcast notifications are in-app only")
				break
			}
		}
	} else if n.RecipientID == "" {
		ve.Add("recipient_id", "recipient id is required")
	}
	if n.RecipientType == RecipientRoleGroup && n.RecipientRole == "" {
		ve.Add("recipient_role", "recipient role is required for role-based notifications")
	}
	if len(n.Channels) == 0 {
		ve.Add("channels", "at least one delivery channel is required")
	}
	for _, ch := range n.Channels {
		switch ch {
		case ChannelInApp, ChannelEmail, ChannelSMS:
		default:
			ve.Add("channels", "unknown delivery channel: "+string(ch))
		}
	}

	return ve
}

// clone returns a deep copy safe to hand across store boundaries.
func (n *Notification) clone() *Notification {
	c := *n
	c.Channels = append([]Channel(nil), n.Channels...)
	if n.Delivery != nil {
		c.Delivery = n.Delivery.Clone()
	}
	if n.Metadata != nil {
		c.Metadata = make(map[string]any, len(n.Metadata))
		for k, v := range n.Metadata {
			c.Metadata[k] = v
		}
	}
	if n.RelatedEntity != nil {
		re := *n.RelatedEntity
		c.RelatedEntity = &re
	}
	copyTime := func(t *time.Time) *time.Time {
		if t == nil {
			return nil
		}
		v := *t
		return &v
	}
	c.ReadAt = copyTime(n.ReadAt)
	c.ArchivedAt = copyTime(n.ArchivedAt)
	c.ExpiresAt = copyTime(n.ExpiresAt)
	return &c
}
