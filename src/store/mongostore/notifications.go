package mongostore

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/unilink-app/unilink-backend/src/models"
)

type NotificationStore struct {
	c *mongo.Collection
}

func (s *NotificationStore) Create(ctx context.Context, notification *models.Notification) error {
	now := time.Now()
	notification.CreatedAt = now
	notification.UpdatedAt = now
	if notification.Id.IsZero() {
		notification.Id = primitive.NewObjectID()
	}

	_, err := s.c.InsertOne(ctx, notification)
	return mapErr("insert notification", err)
}

func (s *NotificationStore) ListForRecipient(ctx context.Context, userID primitive.ObjectID) ([]models.Notification, error) {
	opts := options.Find().SetSort(bson.M{"createdAt": -1})
	cursor, err := s.c.Find(ctx, bson.M{"recipient": userID}, opts)
	if err != nil {
		return nil, mapErr("find notifications", err)
	}
	defer cursor.Close(ctx)

	var notifications []models.Notification
	if err := cursor.All(ctx, &notifications); err != nil {
		return nil, mapErr("decode notifications", err)
	}
	return notifications, nil
}

func (s *NotificationStore) MarkRead(ctx context.Context, id, recipient primitive.ObjectID) (*models.Notification, error) {
	filter := bson.M{
		"_id":       id,
		"recipient": recipient,
	}
	update := bson.M{
		"$set": bson.M{
			"read":      true,
			"updatedAt": time.Now(),
		},
	}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var updated models.Notification
	if err := s.c.FindOneAndUpdate(ctx, filter, update, opts).Decode(&updated); err != nil {
		return nil, mapErr("mark notification read", err)
	}
	return &updated, nil
}

func (s *NotificationStore) Delete(ctx context.Context, id, recipient primitive.ObjectID) error {
	result, err := s.c.DeleteOne(ctx, bson.M{"_id": id, "recipient": recipient})
	if err != nil {
		return mapErr("delete notification", err)
	}
	if result.DeletedCount == 0 {
		return mapErr("delete notification", mongo.ErrNoDocuments)
	}
	return nil
}
