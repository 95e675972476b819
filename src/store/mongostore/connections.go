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

type ConnectionStore struct {
	c *mongo.Collection
}

func (s *ConnectionStore) Create(ctx context.Context, conn *models.Connection) error {
	now := time.Now()
	conn.CreatedAt = now
	conn.UpdatedAt = now
	if conn.Id.IsZero() {
		conn.Id = primitive.NewObjectID()
	}

	_, err := s.c.InsertOne(ctx, conn)
	return mapErr("insert connection request", err)
}

func (s *ConnectionStore) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Connection, error) {
	var conn models.Connection
	if err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&conn); err != nil {
		return nil, mapErr("find connection request", err)
	}
	return &conn, nil
}

func (s *ConnectionStore) FindPendingBetween(ctx context.Context, a, b primitive.ObjectID) (*models.Connection, error) {
	filter := bson.M{
		"$or": []bson.M{
			{"sender": a, "recipient": b},
			{"sender": b, "recipient": a},
		},
		"status": models.ConnectionStatusPending,
	}

	var conn models.Connection
	if err := s.c.FindOne(ctx, filter).Decode(&conn); err != nil {
		return nil, mapErr("find pending request", err)
	}
	return &conn, nil
}

func (s *ConnectionStore) ListInvolving(ctx context.Context, userID primitive.ObjectID) ([]models.Connection, error) {
	filter := bson.M{
		"$or": []bson.M{
			{"sender": userID},
			{"recipient": userID},
		},
	}
	return s.findAll(ctx, filter, nil)
}

func (s *ConnectionStore) ListPendingForRecipient(ctx context.Context, userID primitive.ObjectID) ([]models.Connection, error) {
	filter := bson.M{
		"recipient": userID,
		"status":    models.ConnectionStatusPending,
	}
	opts := options.Find().SetSort(bson.M{"createdAt": -1})
	return s.findAll(ctx, filter, opts)
}

func (s *ConnectionStore) UpdateStatus(ctx context.Context, id primitive.ObjectID, status models.ConnectionStatus) error {
	update := bson.M{
		"$set": bson.M{
			"status":    status,
			"updatedAt": time.Now(),
		},
	}
	result, err := s.c.UpdateOne(ctx, bson.M{"_id": id}, update)
	if err != nil {
		return mapErr("update connection status", err)
	}
	if result.MatchedCount == 0 {
		return mapErr("update connection status", mongo.ErrNoDocuments)
	}
	return nil
}

func (s *ConnectionStore) findAll(ctx context.Context, filter bson.M, opts *options.FindOptions) ([]models.Connection, error) {
	var cursor *mongo.Cursor
	var err error
	if opts != nil {
		cursor, err = s.c.Find(ctx, filter, opts)
	} else {
		cursor, err = s.c.Find(ctx, filter)
	}
	if err != nil {
		return nil, mapErr("find connection requests", err)
	}
	defer cursor.Close(ctx)

	var connections []models.Connection
	if err := cursor.All(ctx, &connections); err != nil {
		return nil, mapErr("decode connection requests", err)
	}
	return connections, nil
}
