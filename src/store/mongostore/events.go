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

type EventStore struct {
	c *mongo.Collection
}

func (s *EventStore) Create(ctx context.Context, event *models.Event) error {
	now := time.Now()
	event.CreatedAt = now
	event.UpdatedAt = now
	if event.Id.IsZero() {
		event.Id = primitive.NewObjectID()
	}
	if event.Likes == nil {
		event.Likes = []primitive.ObjectID{}
	}
	if event.Comments == nil {
		event.Comments = []models.Comment{}
	}
	if event.Shares == nil {
		event.Shares = []primitive.ObjectID{}
	}

	_, err := s.c.InsertOne(ctx, event)
	return mapErr("insert event", err)
}

func (s *EventStore) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Event, error) {
	var event models.Event
	if err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&event); err != nil {
		return nil, mapErr("find event", err)
	}
	return &event, nil
}

func (s *EventStore) Save(ctx context.Context, event *models.Event) error {
	event.UpdatedAt = time.Now()
	result, err := s.c.ReplaceOne(ctx, bson.M{"_id": event.Id}, event)
	if err != nil {
		return mapErr("save event", err)
	}
	if result.MatchedCount == 0 {
		return mapErr("save event", mongo.ErrNoDocuments)
	}
	return nil
}

func (s *EventStore) Delete(ctx context.Context, id primitive.ObjectID) error {
	result, err := s.c.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return mapErr("delete event", err)
	}
	if result.DeletedCount == 0 {
		return mapErr("delete event", mongo.ErrNoDocuments)
	}
	return nil
}

func (s *EventStore) List(ctx context.Context) ([]models.Event, error) {
	opts := options.Find().SetSort(bson.M{"createdAt": -1})
	cursor, err := s.c.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, mapErr("find events", err)
	}
	defer cursor.Close(ctx)

	var events []models.Event
	if err := cursor.All(ctx, &events); err != nil {
		return nil, mapErr("decode events", err)
	}
	return events, nil
}

func (s *EventStore) Count(ctx context.Context) (int64, error) {
	count, err := s.c.CountDocuments(ctx, bson.M{})
	return count, mapErr("count events", err)
}

func (s *EventStore) CountByCreator(ctx context.Context, creator primitive.ObjectID) (int64, error) {
	count, err := s.c.CountDocuments(ctx, bson.M{"createdBy": creator})
	return count, mapErr("count events by creator", err)
}
