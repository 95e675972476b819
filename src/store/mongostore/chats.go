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

type ChatStore struct {
	c *mongo.Collection
}

// GetOrCreate upserts on the canonical pair key. The unique index on pairKey
// guarantees concurrent first contacts from both sides land on one document.
func (s *ChatStore) GetOrCreate(ctx context.Context, a, b primitive.ObjectID) (*models.Chat, bool, error) {
	pairKey := models.ChatPairKey(a, b)
	now := time.Now()
	newID := primitive.NewObjectID()

	filter := bson.M{"pairKey": pairKey}
	update := bson.M{
		"$setOnInsert": bson.M{
			"_id":          newID,
			"participants": []primitive.ObjectID{a, b},
			"pairKey":      pairKey,
			"unreadCount":  map[string]int{},
			"createdAt":    now,
			"updatedAt":    now,
		},
	}
	opts := options.FindOneAndUpdate().
		SetUpsert(true).
		SetReturnDocument(options.After)

	var chat models.Chat
	if err := s.c.FindOneAndUpdate(ctx, filter, update, opts).Decode(&chat); err != nil {
		return nil, false, mapErr("get or create chat", err)
	}

	return &chat, chat.Id == newID, nil
}

func (s *ChatStore) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Chat, error) {
	var chat models.Chat
	if err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&chat); err != nil {
		return nil, mapErr("find chat", err)
	}
	return &chat, nil
}

func (s *ChatStore) ListForUser(ctx context.Context, userID primitive.ObjectID) ([]models.Chat, error) {
	opts := options.Find().SetSort(bson.M{"updatedAt": -1})
	cursor, err := s.c.Find(ctx, bson.M{"participants": userID}, opts)
	if err != nil {
		return nil, mapErr("find chats", err)
	}
	defer cursor.Close(ctx)

	var chats []models.Chat
	if err := cursor.All(ctx, &chats); err != nil {
		return nil, mapErr("decode chats", err)
	}
	return chats, nil
}

func (s *ChatStore) SetLatestMessage(ctx context.Context, chatID, messageID primitive.ObjectID) error {
	update := bson.M{
		"$set": bson.M{
			"latestMessage": messageID,
			"updatedAt":     time.Now(),
		},
	}
	result, err := s.c.UpdateOne(ctx, bson.M{"_id": chatID}, update)
	if err != nil {
		return mapErr("set latest message", err)
	}
	if result.MatchedCount == 0 {
		return mapErr("set latest message", mongo.ErrNoDocuments)
	}
	return nil
}

func (s *ChatStore) IncrementUnread(ctx context.Context, chatID primitive.ObjectID, userIDs []primitive.ObjectID) error {
	if len(userIDs) == 0 {
		return nil
	}

	inc := bson.M{}
	for _, id := range userIDs {
		inc["unreadCount."+id.Hex()] = 1
	}

	_, err := s.c.UpdateOne(ctx, bson.M{"_id": chatID}, bson.M{"$inc": inc})
	return mapErr("increment unread", err)
}

func (s *ChatStore) ResetUnread(ctx context.Context, chatID, userID primitive.ObjectID) error {
	update := bson.M{
		"$set": bson.M{"unreadCount." + userID.Hex(): 0},
	}
	_, err := s.c.UpdateOne(ctx, bson.M{"_id": chatID}, update)
	return mapErr("reset unread", err)
}
