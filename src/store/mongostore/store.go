// Package mongostore implements the store interfaces on MongoDB collections.
package mongostore

import (
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/mongo"

	"github.com/unilink-app/unilink-backend/src/store"
)

// New builds the full store bundle over a Mongo database.
func New(db *mongo.Database) *store.Store {
	return &store.Store{
		Users:         &UserStore{c: db.Collection("users")},
		Connections:   &ConnectionStore{c: db.Collection("connections")},
		Notifications: &NotificationStore{c: db.Collection("notifications")},
		Chats:         &ChatStore{c: db.Collection("chats")},
		Messages:      &MessageStore{c: db.Collection("messages")},
		Posts:         &PostStore{c: db.Collection("posts")},
		Events:        &EventStore{c: db.Collection("events")},
	}
}

// mapErr translates driver errors into the store's sentinel errors.
func mapErr(op string, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, mongo.ErrNoDocuments) {
		return store.ErrNotFound
	}
	if mongo.IsDuplicateKeyError(err) {
		return store.ErrDuplicate
	}
	return fmt.Errorf("%s: %w", op, err)
}
