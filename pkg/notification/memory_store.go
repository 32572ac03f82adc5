package notification

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
)

// MemoryStore is an in-memory Store for tests and local development.
type MemoryStore struct {
	mu            sync.RWMutex
	notifications map[string]*Notification
}

// NewMemoryStore returns an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{notifications: make(map[string]*Notification)}
}

func (s *MemoryStore) Insert(_ context.Context, n *Notification) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	stored := n.clone()
	if stored.ID == "" {
		stored.ID = uuid.NewString()
	}
	s.notifications[stored.ID] = stored
	return stored.ID, nil
}

func (s *MemoryStore) Update(_ context.Context, n *Notification) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	stored, ok := s.notifications[n.ID]
	if !ok {
		return ErrNotFound
	}
	stored.Status = n.Status
	stored.ReadAt = n.ReadAt
	stored.ArchivedAt = n.ArchivedAt
	stored.ExpiresAt = n.ExpiresAt
	return nil
}

func (s *MemoryStore) UpdateDelivery(_ context.Context, id string, delivery DeliveryStatus) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	stored, ok := s.notifications[id]
	if !ok {
		return ErrNotFound
	}
	stored.Delivery = delivery.Clone()
	return nil
}

func (s *MemoryStore) FindByID(_ context.Context, id string) (*Notification, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stored, ok := s.notifications[id]
	if !ok {
		return nil, ErrNotFound
	}
	return stored.clone(), nil
}

func (s *MemoryStore) FindByRecipient(_ context.Context, recipientID string, filter Filter, page Page) ([]Notification, int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var matched []*Notification
	for _, n := range s.notifications {
		if n.RecipientID != recipientID {
			continue
		}
		if filter.Status != "" && n.Status != filter.Status {
			continue
		}
		if filter.Type != "" && n.Type != filter.Type {
			continue
		}
		if filter.Priority != "" && n.Priority != filter.Priority {
			continue
		}
		matched = append(matched, n)
	}
	return paginate(matched, page)
}

func (s *MemoryStore) FindBroadcasts(_ context.Context, rt RecipientType, role string, page Page) ([]Notification, int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var matched []*Notification
	for _, n := range s.notifications {
		if !n.IsBroadcast() || n.RecipientType != rt {
			continue
		}
		if rt == RecipientRoleGroup && n.RecipientRole != role {
			continue
		}
		matched = append(matched, n)
	}
	return paginate(matched, page)
}

func (s *MemoryStore) CountUnread(_ context.Context, recipientID string) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var count int64
	for _, n := range s.notifications {
		if n.RecipientID == recipientID && n.Status == StatusUnread {
			count++
		}
	}
	return count, nil
}

func (s *MemoryStore) MarkAllRead(_ context.Context, recipientID string, readAt time.Time) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var count int64
	for _, n := range s.notifications {
		if n.RecipientID == recipientID && n.Status == StatusUnread {
			n.Status = StatusRead
			at := readAt
			n.ReadAt = &at
			count++
		}
	}
	return count, nil
}

func (s *MemoryStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.notifications[id]; !ok {
		return ErrNotFound
	}
	delete(s.notifications, id)
	return nil
}

func (s *MemoryStore) DeleteExpired(_ context.Context, now time.Time) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var count int64
	for id, n := range s.notifications {
		if n.ExpiresAt != nil && !n.ExpiresAt.After(now) {
			delete(s.notifications, id)
			count++
		}
	}
	return count, nil
}

func (s *MemoryStore) Stats(_ context.Context, rng DateRange) (Stats, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stats := Stats{
		ByType:     make(map[Type]int64),
		ByPriority: make(map[Priority]int64),
		ByChannel:  make(map[Channel]int64),
	}
	for _, n := range s.notifications {
		if rng.From != nil && n.SentAt.Before(*rng.From) {
			continue
		}
		if rng.To != nil && n.SentAt.After(*rng.To) {
			continue
		}
		stats.Total++
		switch n.Status {
		case StatusUnread:
			stats.Unread++
		case StatusRead:
			stats.Read++
		case StatusArchived:
			stats.Archived++
		}
		stats.ByType[n.Type]++
		stats.ByPriority[n.Priority]++
		for _, ch := range n.Channels {
			stats.ByChannel[ch]++
		}
	}
	return stats, nil
}

// paginate sorts newest-first by SentAt and slices out the requested page.
func paginate(matched []*Notification, page Page) ([]Notification, int64, error) {
	sort.Slice(matched, func(i, j int) bool {
		return matched[i].SentAt.After(matched[j].SentAt)
	})

	total := int64(len(matched))
	offset, limit := page.Offset(), page.Limit()
	if offset >= len(matched) {
		return []Notification{}, total, nil
	}
	end := offset + limit
	if end > len(matched) {
		end = len(matched)
	}

	out := make([]Notification, 0, end-offset)
	for _, n := range matched[offset:end] {
		out = append(out, *n.clone())
	}
	return out, total, nil
}
