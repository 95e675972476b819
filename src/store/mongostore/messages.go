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

type MessageStore struct {
	c *mongo.Collection
}

func (s *MessageStore) Create(ctx context.Context, message *models.Message) error {
	now := time.Now()
	message.CreatedAt = now
	message.UpdatedAt = now
	if message.Id.IsZero() {
		message.Id = primitive.NewObjectID()
	}
	if message.Attachments == nil {
		message.Attachments = []string{}
	}

	_, err := s.c.InsertOne(ctx, message)
	return mapErr("insert message", err)
}

func (s *MessageStore) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Message, error) {
	var message models.Message
	if err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&message); err != nil {
		return nil, mapErr("find message", err)
	}
	return &message, nil
}

func (s *MessageStore) ListByChat(ctx context.Context, chatID primitive.ObjectID) ([]models.Message, error) {
	opts := options.Find().SetSort(bson.M{"createdAt": 1})
	cursor, err := s.c.Find(ctx, bson.M{"chat": chatID}, opts)
	if err != nil {
		return nil, mapErr("find messages", err)
	}
	defer cursor.Close(ctx)

	var messages []models.Message
	if err := cursor.All(ctx, &messages); err != nil {
		return nil, mapErr("decode messages", err)
	}
	return messages, nil
}

func (s *MessageStore) MarkChatRead(ctx context.Context, chatID, userID primitive.ObjectID) error {
	filter := bson.M{
		"chat":   chatID,
		"readBy": bson.M{"$ne": userID},
	}
	update := bson.M{
		"$addToSet": bson.M{"readBy": userID},
	}
	_, err := s.c.UpdateMany(ctx, filter, update)
	return mapErr("mark chat read", err)
}
