package notification

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

// CollectionName is the MongoDB collection notifications are stored in.
const CollectionName = "notifications"

// MongoStore is the MongoDB-backed Store.
type MongoStore struct {
	coll *mongo.Collection
}

// NewMongoStore returns a store over the notifications collection of
// the given database.
func NewMongoStore(db *mongo.Database) *MongoStore {
	return &MongoStore{coll: db.Collection(CollectionName)}
}

// EnsureIndexes creates the indexes the query methods rely on. Call it
// once at startup.
func (s *MongoStore) EnsureIndexes(ctx context.Context) error {
	_, err := s.coll.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "recipient_id", Value: 1}, {Key: "status", Value: 1}}},
		{Keys: bson.D{{Key: "recipient_id", Value: 1}, {Key: "sent_at", Value: -1}}},
		{Keys: bson.D{{Key: "recipient_type", Value: 1}, {Key: "sent_at", Value: -1}}},
		{Keys: bson.D{{Key: "expires_at", Value: 1}}},
	})
	if err != nil {
		return fmt.Errorf("create notification indexes: %w", err)
	}
	return nil
}

type notificationDoc struct {
	ID            bson.ObjectID  `bson:"_id,omitempty"`
	RecipientID   string         `bson:"recipient_id,omitempty"`
	RecipientType RecipientType  `bson:"recipient_type"`
	RecipientRole string         `bson:"recipient_role,omitempty"`
	Type          Type           `bson:"type"`
	Title         string         `bson:"title"`
	Message       string         `bson:"message"`
	MessageAlt    string         `bson:"message_alt,omitempty"`
	Priority      Priority       `bson:"priority"`
	Status        Status         `bson:"status"`
	Channels      []Channel      `bson:"channels"`
	Delivery      DeliveryStatus `bson:"delivery_status"`
	ActionURL     string         `bson:"action_url,omitempty"`
	ActionLabel   string         `bson:"action_label,omitempty"`
	RelatedEntity *RelatedEntity `bson:"related_entity,omitempty"`
	Metadata      map[string]any `bson:"metadata,omitempty"`
	SentAt        time.Time      `bson:"sent_at"`
	ReadAt        *time.Time     `bson:"read_at,omitempty"`
	ArchivedAt    *time.Time     `bson:"archived_at,omitempty"`
	ExpiresAt     *time.Time     `bson:"expires_at,omitempty"`
	SentBy        string         `bson:"sent_by,omitempty"`
	CreatedAt     time.Time      `bson:"created_at"`
}

func toDoc(n *Notification) (notificationDoc, error) {
	doc := notificationDoc{
		RecipientID:   n.RecipientID,
		RecipientType: n.RecipientType,
		RecipientRole: n.RecipientRole,
		Type:          n.Type,
		Title:         n.Title,
		Message:       n.Message,
		MessageAlt:    n.MessageAlt,
		Priority:      n.Priority,
		Status:        n.Status,
		Channels:      n.Channels,
		Delivery:      n.Delivery,
		ActionURL:     n.ActionURL,
		ActionLabel:   n.ActionLabel,
		RelatedEntity: n.RelatedEntity,
		Metadata:      n.Metadata,
		SentAt:        n.SentAt,
		ReadAt:        n.ReadAt,
		ArchivedAt:    n.ArchivedAt,
		ExpiresAt:     n.ExpiresAt,
		SentBy:        n.SentBy,
		CreatedAt:     n.CreatedAt,
	}
	if n.ID != "" {
		oid, err := bson.ObjectIDFromHex(n.ID)
		if err != nil {
			return notificationDoc{}, fmt.Errorf("invalid notification id %q: %w", n.ID, err)
		}
		doc.ID = oid
	}
	return doc, nil
}

func (d notificationDoc) toDomain() Notification {
	return Notification{
		ID:            d.ID.Hex(),
		RecipientID:   d.RecipientID,
		RecipientType: d.RecipientType,
		RecipientRole: d.RecipientRole,
		Type:          d.Type,
		Title:         d.Title,
		Message:       d.Message,
		MessageAlt:    d.MessageAlt,
		Priority:      d.Priority,
		Status:        d.Status,
		Channels:      d.Channels,
		Delivery:      d.Delivery,
		ActionURL:     d.ActionURL,
		ActionLabel:   d.ActionLabel,
		RelatedEntity: d.RelatedEntity,
		Metadata:      d.Metadata,
		SentAt:        d.SentAt,
		ReadAt:        d.ReadAt,
		ArchivedAt:    d.ArchivedAt,
		ExpiresAt:     d.ExpiresAt,
		SentBy:        d.SentBy,
		CreatedAt:     d.CreatedAt,
	}
}

func (s *MongoStore) Insert(ctx context.Context, n *Notification) (string, error) {
	doc, err := toDoc(n)
	if err != nil {
		return "", err
	}
	if doc.ID.IsZero() {
		doc.ID = bson.NewObjectID()
	}
	if _, err := s.coll.InsertOne(ctx, doc); err != nil {
		return "", fmt.Errorf("insert notification: %w", err)
	}
	return doc.ID.Hex(), nil
}

func (s *MongoStore) Update(ctx context.Context, n *Notification) error {
	oid, err := bson.ObjectIDFromHex(n.ID)
	if err != nil {
		return ErrNotFound
	}
	res, err := s.coll.UpdateByID(ctx, oid, bson.M{"$set": bson.M{
		"status":      n.Status,
		"read_at":     n.ReadAt,
		"archived_at": n.ArchivedAt,
		"expires_at":  n.ExpiresAt,
	}})
	if err != nil {
		return fmt.Errorf("update notification: %w", err)
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *MongoStore) UpdateDelivery(ctx context.Context, id string, delivery DeliveryStatus) error {
	oid, err := bson.ObjectIDFromHex(id)
	if err != nil {
		return ErrNotFound
	}
	res, err := s.coll.UpdateByID(ctx, oid, bson.M{"$set": bson.M{"delivery_status": delivery}})
	if err != nil {
		return fmt.Errorf("update delivery status: %w", err)
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *MongoStore) FindByID(ctx context.Context, id string) (*Notification, error) {
	oid, err := bson.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrNotFound
	}
	var doc notificationDoc
	if err := s.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("find notification: %w", err)
	}
	n := doc.toDomain()
	return &n, nil
}

func (s *MongoStore) FindByRecipient(ctx context.Context, recipientID string, filter Filter, page Page) ([]Notification, int64, error) {
	query := bson.M{"recipient_id": recipientID}
	if filter.Status != "" {
		query["status"] = filter.Status
	}
	if filter.Type != "" {
		query["type"] = filter.Type
	}
	if filter.Priority != "" {
		query["priority"] = filter.Priority
	}
	return s.findPage(ctx, query, page)
}

func (s *MongoStore) FindBroadcasts(ctx context.Context, rt RecipientType, role string, page Page) ([]Notification, int64, error) {
	query := bson.M{"recipient_id": bson.M{"$in": bson.A{nil, ""}}, "recipient_type": rt}
	if rt == RecipientRoleGroup {
		query["recipient_role"] = role
	}
	return s.findPage(ctx, query, page)
}

func (s *MongoStore) findPage(ctx context.Context, query bson.M, page Page) ([]Notification, int64, error) {
	total, err := s.coll.CountDocuments(ctx, query)
	if err != nil {
		return nil, 0, fmt.Errorf("count notifications: %w", err)
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "sent_at", Value: -1}}).
		SetSkip(int64(page.Offset())).
		SetLimit(int64(page.Limit()))
	cursor, err := s.coll.Find(ctx, query, opts)
	if err != nil {
		return nil, 0, fmt.Errorf("find notifications: %w", err)
	}

	var docs []notificationDoc
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, 0, fmt.Errorf("decode notifications: %w", err)
	}
	notifications := make([]Notification, len(docs))
	for i, doc := range docs {
		notifications[i] = doc.toDomain()
	}
	return notifications, total, nil
}

func (s *MongoStore) CountUnread(ctx context.Context, recipientID string) (int64, error) {
	count, err := s.coll.CountDocuments(ctx, bson.M{
		"recipient_id": recipientID,
		"status":       StatusUnread,
	})
	if err != nil {
		return 0, fmt.Errorf("count unread: %w", err)
	}
	return count, nil
}

func (s *MongoStore) MarkAllRead(ctx context.Context, recipientID string, readAt time.Time) (int64, error) {
	res, err := s.coll.UpdateMany(ctx,
		bson.M{"recipient_id": recipientID, "status": StatusUnread},
		bson.M{"$set": bson.M{"status": StatusRead, "read_at": readAt}},
	)
	if err != nil {
		return 0, fmt.Errorf("mark all read: %w", err)
	}
	return res.ModifiedCount, nil
}

func (s *MongoStore) Delete(ctx context.Context, id string) error {
	oid, err := bson.ObjectIDFromHex(id)
	if err != nil {
		return ErrNotFound
	}
	res, err := s.coll.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("delete notification: %w", err)
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *MongoStore) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	res, err := s.coll.DeleteMany(ctx, bson.M{
		"expires_at": bson.M{"$ne": nil, "$lte": now},
	})
	if err != nil {
		return 0, fmt.Errorf("delete expired: %w", err)
	}
	return res.DeletedCount, nil
}

func (s *MongoStore) Stats(ctx context.Context, rng DateRange) (Stats, error) {
	match := bson.M{}
	if rng.From != nil || rng.To != nil {
		sentAt := bson.M{}
		if rng.From != nil {
			sentAt["$gte"] = *rng.From
		}
		if rng.To != nil {
			sentAt["$lte"] = *rng.To
		}
		match["sent_at"] = sentAt
	}

	stats := Stats{
		ByType:     make(map[Type]int64),
		ByPriority: make(map[Priority]int64),
		ByChannel:  make(map[Channel]int64),
	}

	byStatus, err := s.groupCounts(ctx, match, "$status", false)
	if err != nil {
		return Stats{}, fmt.Errorf("aggregate by status: %w", err)
	}
	for key, count := range byStatus {
		stats.Total += count
		switch Status(key) {
		case StatusUnread:
			stats.Unread = count
		case StatusRead:
			stats.Read = count
		case StatusArchived:
			stats.Archived = count
		}
	}

	byType, err := s.groupCounts(ctx, match, "$type", false)
	if err != nil {
		return Stats{}, fmt.Errorf("aggregate by type: %w", err)
	}
	for key, count := range byType {
		stats.ByType[Type(key)] = count
	}

	byPriority, err := s.groupCounts(ctx, match, "$priority", false)
	if err != nil {
		return Stats{}, fmt.Errorf("aggregate by priority: %w", err)
	}
	for key, count := range byPriority {
		stats.ByPriority[Priority(key)] = count
	}

	byChannel, err := s.groupCounts(ctx, match, "$channels", true)
	if err != nil {
		return Stats{}, fmt.Errorf("aggregate by channel: %w", err)
	}
	for key, count := range byChannel {
		stats.ByChannel[Channel(key)] = count
	}

	return stats, nil
}

// groupCounts runs a match/group pipeline counting documents per value
// of the field. With unwind set the field is treated as an array and
// every element counts.
func (s *MongoStore) groupCounts(ctx context.Context, match bson.M, field string, unwind bool) (map[string]int64, error) {
	pipeline := mongo.Pipeline{
		bson.D{{Key: "$match", Value: match}},
	}
	if unwind {
		pipeline = append(pipeline, bson.D{{Key: "$unwind", Value: field}})
	}
	pipeline = append(pipeline, bson.D{{Key: "$group", Value: bson.D{
		{Key: "_id", Value: field},
		{Key: "count", Value: bson.D{{Key: "$sum", Value: 1}}},
	}}})

	cursor, err := s.coll.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	var rows []struct {
		ID    string `bson:"_id"`
		Count int64  `bson:"count"`
	}
	if err := cursor.All(ctx, &rows); err != nil {
		return nil, err
	}
	counts := make(map[string]int64, len(rows))
	for _, row := range rows {
		counts[row.ID] = row.Count
	}
	return counts, nil
}
