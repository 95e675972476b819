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

type UserStore struct {
	c *mongo.Collection
}

func (s *UserStore) Create(ctx context.Context, user *models.User) error {
	now := time.Now()
	user.CreatedAt = now
	user.UpdatedAt = now
	if user.Id.IsZero() {
		user.Id = primitive.NewObjectID()
	}
	if user.Connections == nil {
		user.Connections = []primitive.ObjectID{}
	}

	_, err := s.c.InsertOne(ctx, user)
	return mapErr("insert user", err)
}

func (s *UserStore) GetByID(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	return s.findOne(ctx, bson.M{"_id": id})
}

func (s *UserStore) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	return s.findOne(ctx, bson.M{"email": email})
}

func (s *UserStore) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	return s.findOne(ctx, bson.M{"username": username})
}

func (s *UserStore) findOne(ctx context.Context, filter bson.M) (*models.User, error) {
	var user models.User
	if err := s.c.FindOne(ctx, filter).Decode(&user); err != nil {
		return nil, mapErr("find user", err)
	}
	return &user, nil
}

func (s *UserStore) Save(ctx context.Context, user *models.User) error {
	user.UpdatedAt = time.Now()
	result, err := s.c.ReplaceOne(ctx, bson.M{"_id": user.Id}, user)
	if err != nil {
		return mapErr("save user", err)
	}
	if result.MatchedCount == 0 {
		return mapErr("save user", mongo.ErrNoDocuments)
	}
	return nil
}

func (s *UserStore) AddConnection(ctx context.Context, userID, otherID primitive.ObjectID) error {
	_, err := s.c.UpdateOne(
		ctx,
		bson.M{"_id": userID},
		bson.M{"$addToSet": bson.M{"connections": otherID}},
	)
	return mapErr("add connection", err)
}

func (s *UserStore) RemoveConnection(ctx context.Context, userID, otherID primitive.ObjectID) error {
	_, err := s.c.UpdateOne(
		ctx,
		bson.M{"_id": userID},
		bson.M{"$pull": bson.M{"connections": otherID}},
	)
	return mapErr("remove connection", err)
}

func (s *UserStore) ListByIDs(ctx context.Context, ids []primitive.ObjectID) ([]models.User, error) {
	return s.findAll(ctx, bson.M{"_id": bson.M{"$in": ids}}, nil)
}

func (s *UserStore) ListSuggestions(ctx context.Context, selfID primitive.ObjectID, exclude []primitive.ObjectID, limit int64) ([]models.User, error) {
	filter := bson.M{
		"_id": bson.M{
			"$ne":  selfID,
			"$nin": exclude,
		},
	}
	opts := options.Find().SetLimit(limit)
	return s.findAll(ctx, filter, opts)
}

func (s *UserStore) SearchByUsernamePrefix(ctx context.Context, prefix string) ([]models.User, error) {
	filter := bson.M{
		"username": bson.M{"$regex": "^" + prefix, "$options": "i"},
	}
	return s.findAll(ctx, filter, nil)
}

func (s *UserStore) ListByRole(ctx context.Context, role models.Role) ([]models.User, error) {
	return s.findAll(ctx, bson.M{"role": role}, nil)
}

func (s *UserStore) ListWithCertifications(ctx context.Context) ([]models.User, error) {
	opts := options.Find().SetSort(bson.M{"createdAt": -1})
	return s.findAll(ctx, bson.M{"certifications.0": bson.M{"$exists": true}}, opts)
}

func (s *UserStore) ListWithSkills(ctx context.Context) ([]models.User, error) {
	opts := options.Find().SetSort(bson.M{"createdAt": -1})
	return s.findAll(ctx, bson.M{"skills.0": bson.M{"$exists": true}}, opts)
}

func (s *UserStore) findAll(ctx context.Context, filter bson.M, opts *options.FindOptions) ([]models.User, error) {
	var cursor *mongo.Cursor
	var err error
	if opts != nil {
		cursor, err = s.c.Find(ctx, filter, opts)
	} else {
		cursor, err = s.c.Find(ctx, filter)
	}
	if err != nil {
		return nil, mapErr("find users", err)
	}
	defer cursor.Close(ctx)

	var users []models.User
	if err := cursor.All(ctx, &users); err != nil {
		return nil, mapErr("decode users", err)
	}
	return users, nil
}
