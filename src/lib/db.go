package lib

import (
	"context"
	"time"

	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ConnectDB opens the Mongo connection and verifies it with a ping.
func ConnectDB(ctx context.Context, url, database string, logger zerolog.Logger) (*mongo.Database, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(url))
	if err != nil {
		return nil, err
	}

	if err := client.Ping(ctx, nil); err != nil {
		return nil, err
	}

	logger.Info().Str("database", database).Msg("connected to MongoDB")
	return client.Database(database), nil
}

// EnsureIndexes creates the indexes the stores rely on. The pairKey index is
// what makes chat creation idempotent under concurrent first contact.
func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	userIndexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "username", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "email", Value: 1}}, Options: options.Index().SetUnique(true)},
	}
	if _, err := db.Collection("users").Indexes().CreateMany(ctx, userIndexes); err != nil {
		return err
	}

	chatIndexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "pairKey", Value: 1}}, Options: options.Index().SetUnique(true)},
	}
	if _, err := db.Collection("chats").Indexes().CreateMany(ctx, chatIndexes); err != nil {
		return err
	}

	connectionIndexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "sender", Value: 1}, {Key: "recipient", Value: 1}}},
		{Keys: bson.D{{Key: "recipient", Value: 1}, {Key: "status", Value: 1}}},
	}
	if _, err := db.Collection("connections").Indexes().CreateMany(ctx, connectionIndexes); err != nil {
		return err
	}

	messageIndexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "chat", Value: 1}, {Key: "createdAt", Value: 1}}},
	}
	if _, err := db.Collection("messages").Indexes().CreateMany(ctx, messageIndexes); err != nil {
		return err
	}

	notificationIndexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "recipient", Value: 1}, {Key: "createdAt", Value: -1}}},
	}
	_, err := db.Collection("notifications").Indexes().CreateMany(ctx, notificationIndexes)
	return err
}
