package notification

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/agrocert/notify/pkg/logger"
)

// Service exposes read and lifecycle operations over stored
// notifications, enforcing recipient ownership on every per-record
// mutation.
type Service struct {
	store Store
	log   *slog.Logger
}

// ServiceOption configures a Service.
type ServiceOption func(*Service)

// WithServiceLogger sets the logger. Defaults to slog.Default().
func WithServiceLogger(log *slog.Logger) ServiceOption {
	return func(s *Service) {
		if log != nil {
			s.log = log
		}
	}
}

// NewService returns a service backed by the given store.
func NewService(store Store, opts ...ServiceOption) *Service {
	s := &Service{
		store: store,
		log:   slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// ListResult is one page of notifications with pagination metadata.
type ListResult struct {
	Notifications []Notification `json:"notifications"`
	Total         int64          `json:"total"`
	Page          int            `json:"page"`
	PageSize      int            `json:"page_size"`
}

// FindByRecipient lists a recipient's personal notifications, newest
// first, optionally narrowed by status, type and priority.
func (s *Service) FindByRecipient(ctx context.Context, recipientID string, filter Filter, page Page) (*ListResult, error) {
	notifications, total, err := s.store.FindByRecipient(ctx, recipientID, filter, page)
	if err != nil {
		return nil, fmt.Errorf("find notifications: %w", err)
	}
	return &ListResult{
		Notifications: notifications,
		Total:         total,
		Page:          page.Offset()/page.Limit() + 1,
		PageSize:      page.Limit(),
	}, nil
}

// FindBroadcasts lists broadcast notifications for a recipient bucket,
// newest first.
func (s *Service) FindBroadcasts(ctx context.Context, rt RecipientType, role string, page Page) (*ListResult, error) {
	notifications, total, err := s.store.FindBroadcasts(ctx, rt, role, page)
	if err != nil {
		return nil, fmt.Errorf("find broadcasts: %w", err)
	}
	return &ListResult{
		Notifications: notifications,
		Total:         total,
		Page:          page.Offset()/page.Limit() + 1,
		PageSize:      page.Limit(),
	}, nil
}

// CountUnread returns the recipient's unread badge count.
func (s *Service) CountUnread(ctx context.Context, recipientID string) (int64, error) {
	return s.store.CountUnread(ctx, recipientID)
}

// MarkAsRead marks one notification read on behalf of requesterID.
// Marking an already-read notification is a no-op. Returns ErrNotFound
// for unknown IDs and ErrForbidden when the record belongs to someone
// else.
func (s *Service) MarkAsRead(ctx context.Context, id, requesterID string) (*Notification, error) {
	n, err := s.authorized(ctx, id, requesterID)
	if err != nil {
		return nil, err
	}
	if n.Status == StatusRead {
		return n, nil
	}
	n.MarkAsRead()
	if err := s.store.Update(ctx, n); err != nil {
		return nil, fmt.Errorf("mark as read: %w", err)
	}
	return n, nil
}

// MarkAsUnread marks one notification unread again on behalf of
// requesterID.
func (s *Service) MarkAsUnread(ctx context.Context, id, requesterID string) (*Notification, error) {
	n, err := s.authorized(ctx, id, requesterID)
	if err != nil {
		return nil, err
	}
	if n.Status == StatusUnread {
		return n, nil
	}
	n.MarkAsUnread()
	if err := s.store.Update(ctx, n); err != nil {
		return nil, fmt.Errorf("mark as unread: %w", err)
	}
	return n, nil
}

// Archive moves one notification to the archive on behalf of
// requesterID. Archiving an archived notification is a no-op.
func (s *Service) Archive(ctx context.Context, id, requesterID string) (*Notification, error) {
	n, err := s.authorized(ctx, id, requesterID)
	if err != nil {
		return nil, err
	}
	if n.Status == StatusArchived {
		return n, nil
	}
	n.Archive()
	if err := s.store.Update(ctx, n); err != nil {
		return nil, fmt.Errorf("archive: %w", err)
	}
	return n, nil
}

// Unarchive restores an archived notification, recovering READ or
// UNREAD from whether it had been read before archiving. Returns
// ErrInvalidState when the notification is not archived.
func (s *Service) Unarchive(ctx context.Context, id, requesterID string) (*Notification, error) {
	n, err := s.authorized(ctx, id, requesterID)
	if err != nil {
		return nil, err
	}
	if err := n.Unarchive(); err != nil {
		return nil, err
	}
	if err := s.store.Update(ctx, n); err != nil {
		return nil, fmt.Errorf("unarchive: %w", err)
	}
	return n, nil
}

// Delete removes one notification on behalf of requesterID. Returns
// ErrNotFound for unknown IDs and ErrForbidden when the record belongs
// to someone else.
func (s *Service) Delete(ctx context.Context, id, requesterID string) error {
	if _, err := s.authorized(ctx, id, requesterID); err != nil {
		return err
	}
	if err := s.store.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete notification: %w", err)
	}
	return nil
}

// MarkAllAsRead marks every unread personal notification of the
// recipient as read and returns how many were affected.
func (s *Service) MarkAllAsRead(ctx context.Context, recipientID string) (int64, error) {
	count, err := s.store.MarkAllRead(ctx, recipientID, time.Now())
	if err != nil {
		return 0, fmt.Errorf("mark all as read: %w", err)
	}
	if count > 0 {
		s.log.InfoContext(ctx, "marked all notifications read",
			logger.UserID(recipientID), logger.Count(count))
	}
	return count, nil
}

// DeleteExpired removes every notification whose retention deadline has
// passed. Intended to run on a schedule.
func (s *Service) DeleteExpired(ctx context.Context) (int64, error) {
	count, err := s.store.DeleteExpired(ctx, time.Now())
	if err != nil {
		return 0, fmt.Errorf("delete expired: %w", err)
	}
	if count > 0 {
		s.log.InfoContext(ctx, "deleted expired notifications", logger.Count(count))
	}
	return count, nil
}

// Statistics aggregates notification counts by status, type, priority
// and channel over the given date range.
func (s *Service) Statistics(ctx context.Context, rng DateRange) (Stats, error) {
	stats, err := s.store.Stats(ctx, rng)
	if err != nil {
		return Stats{}, fmt.Errorf("aggregate stats: %w", err)
	}
	return stats, nil
}

// authorized fetches a notification and checks the requester may act on
// it. Broadcasts carry no owner, so any requester passes.
func (s *Service) authorized(ctx context.Context, id, requesterID string) (*Notification, error) {
	n, err := s.store.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if n.RecipientID != "" && n.RecipientID != requesterID {
		return nil, ErrForbidden
	}
	return n, nil
}
