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

type PostStore struct {
	c *mongo.Collection
}

func (s *PostStore) Create(ctx context.Context, post *models.Post) error {
	now := time.Now()
	post.CreatedAt = now
	post.UpdatedAt = now
	if post.Id.IsZero() {
		post.Id = primitive.NewObjectID()
	}
	if post.Likes == nil {
		post.Likes = []primitive.ObjectID{}
	}
	if post.Comments == nil {
		post.Comments = []models.Comment{}
	}

	_, err := s.c.InsertOne(ctx, post)
	return mapErr("insert post", err)
}

func (s *PostStore) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Post, error) {
	var post models.Post
	if err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&post); err != nil {
		return nil, mapErr("find post", err)
	}
	return &post, nil
}

func (s *PostStore) Save(ctx context.Context, post *models.Post) error {
	post.UpdatedAt = time.Now()
	result, err := s.c.ReplaceOne(ctx, bson.M{"_id": post.Id}, post)
	if err != nil {
		return mapErr("save post", err)
	}
	if result.MatchedCount == 0 {
		return mapErr("save post", mongo.ErrNoDocuments)
	}
	return nil
}

func (s *PostStore) Delete(ctx context.Context, id primitive.ObjectID) error {
	result, err := s.c.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return mapErr("delete post", err)
	}
	if result.DeletedCount == 0 {
		return mapErr("delete post", mongo.ErrNoDocuments)
	}
	return nil
}

func (s *PostStore) ListFeed(ctx context.Context) ([]models.Post, error) {
	opts := options.Find().SetSort(bson.M{"createdAt": -1})
	return s.findAll(ctx, bson.M{}, opts)
}

func (s *PostStore) ListByAuthor(ctx context.Context, author primitive.ObjectID) ([]models.Post, error) {
	return s.findAll(ctx, bson.M{"author": author}, nil)
}

func (s *PostStore) CountSharedByAuthor(ctx context.Context, author primitive.ObjectID) (int64, error) {
	filter := bson.M{
		"author":     author,
		"sharedPost": bson.M{"$exists": true, "$ne": primitive.NilObjectID},
	}
	count, err := s.c.CountDocuments(ctx, filter)
	return count, mapErr("count shared posts", err)
}

func (s *PostStore) findAll(ctx context.Context, filter bson.M, opts *options.FindOptions) ([]models.Post, error) {
	var cursor *mongo.Cursor
	var err error
	if opts != nil {
		cursor, err = s.c.Find(ctx, filter, opts)
	} else {
		cursor, err = s.c.Find(ctx, filter)
	}
	if err != nil {
		return nil, mapErr("find posts", err)
	}
	defer cursor.Close(ctx)

	var posts []models.Post
	if err := cursor.All(ctx, &posts); err != nil {
		return nil, mapErr("decode posts", err)
	}
	return posts, nil
}
