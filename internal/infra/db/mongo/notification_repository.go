package mongo

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	domainnotification "staybook/internal/domain/notification"
)

type NotificationRepository struct {
	col *mongo.Collection
}

func NewNotificationRepository(db *mongo.Database) *NotificationRepository {
	col := db.Collection("agg_notification")
	_, _ = col.Indexes().CreateOne(context.Background(), mongo.IndexModel{Keys: bson.D{{Key: "user_id", Value: 1}, {Key: "created_at", Value: -1}}})
	return &NotificationRepository{col: col}
}

func (r *NotificationRepository) Insert(ctx context.Context, n *domainnotification.Notification) error {
	_, err := r.col.InsertOne(ctx, newNotificationDocument(n))
	return err
}

func (r *NotificationRepository) ListByUser(ctx context.Context, userID string) ([]*domainnotification.Notification, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cur, err := r.col.Find(ctx, bson.M{"user_id": userID}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)
	var out []*domainnotification.Notification
	for cur.Next(ctx) {
		var doc notificationDocument
		if err := cur.Decode(&doc); err != nil {
			return nil, err
		}
		out = append(out, doc.toAggregate())
	}
	return out, cur.Err()
}

func (r *NotificationRepository) MarkRead(ctx context.Context, id string) error {
	res, err := r.col.UpdateByID(ctx, id, bson.M{"$set": bson.M{"read": true}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return domainnotification.ErrNotFound
	}
	return nil
}

func (r *NotificationRepository) MarkAllRead(ctx context.Context, userID string) (int64, error) {
	res, err := r.col.UpdateMany(ctx, bson.M{"user_id": userID, "read": false}, bson.M{"$set": bson.M{"read": true}})
	if err != nil {
		return 0, err
	}
	return res.ModifiedCount, nil
}

type notificationDocument struct {
	ID        string `bson:"_id"`
	UserID    string `bson:"user_id"`
	Message   string `bson:"message"`
	Read      bool   `bson:"read"`
	CreatedAt int64  `bson:"created_at"`
}

func newNotificationDocument(n *domainnotification.Notification) notificationDocument {
	return notificationDocument{
		ID:        n.ID,
		UserID:    n.UserID,
		Message:   n.Message,
		Read:      n.Read,
		CreatedAt: n.CreatedAt.UnixMilli(),
	}
}

func (d notificationDocument) toAggregate() *domainnotification.Notification {
	return &domainnotification.Notification{
		ID:        d.ID,
		UserID:    d.UserID,
		Message:   d.Message,
		Read:      d.Read,
		CreatedAt: timestampToTime(d.CreatedAt),
	}
}
