package store

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/unilink-app/unilink-backend/src/models"
)

var (
	// ErrNotFound is returned when a document does not exist or the caller
	// has no right to touch it.
	ErrNotFound = errors.New("not found")
	// ErrDuplicate is returned when a unique constraint is violated.
	ErrDuplicate = errors.New("duplicate")
)

// UserStore owns the users collection, profile sub-documents included.
type UserStore interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id primitive.ObjectID) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	GetByUsername(ctx context.Context, username string) (*models.User, error)
	// Save replaces the whole user document. Profile sub-document edits go
	// through read-modify-Save.
	Save(ctx context.Context, user *models.User) error
	AddConnection(ctx context.Context, userID, otherID primitive.ObjectID) error
	RemoveConnection(ctx context.Context, userID, otherID primitive.ObjectID) error
	ListByIDs(ctx context.Context, ids []primitive.ObjectID) ([]models.User, error)
	// ListSuggestions returns users excluding self and the given ids.
	ListSuggestions(ctx context.Context, selfID primitive.ObjectID, exclude []primitive.ObjectID, limit int64) ([]models.User, error)
	SearchByUsernamePrefix(ctx context.Context, prefix string) ([]models.User, error)
	ListByRole(ctx context.Context, role models.Role) ([]models.User, error)
	ListWithCertifications(ctx context.Context) ([]models.User, error)
	ListWithSkills(ctx context.Context) ([]models.User, error)
}

// ConnectionStore owns connection request documents.
type ConnectionStore interface {
	Create(ctx context.Context, conn *models.Connection) error
	GetByID(ctx context.Context, id primitive.ObjectID) (*models.Connection, error)
	// FindPendingBetween looks for a pending request in either direction.
	FindPendingBetween(ctx context.Context, a, b primitive.ObjectID) (*models.Connection, error)
	ListInvolving(ctx context.Context, userID primitive.ObjectID) ([]models.Connection, error)
	ListPendingForRecipient(ctx context.Context, userID primitive.ObjectID) ([]models.Connection, error)
	UpdateStatus(ctx context.Context, id primitive.ObjectID, status models.ConnectionStatus) error
}

// NotificationStore owns notification documents. Mutations are scoped to the
// recipient so users cannot touch each other's notifications.
type NotificationStore interface {
	Create(ctx context.Context, notification *models.Notification) error
	ListForRecipient(ctx context.Context, userID primitive.ObjectID) ([]models.Notification, error)
	MarkRead(ctx context.Context, id, recipient primitive.ObjectID) (*models.Notification, error)
	Delete(ctx context.Context, id, recipient primitive.ObjectID) error
}

// ChatStore owns chat documents and their unread counters.
type ChatStore interface {
	// GetOrCreate finds the chat for the pair or creates it, keyed by the
	// canonical pair key. Exactly one chat per pair survives concurrent calls.
	GetOrCreate(ctx context.Context, a, b primitive.ObjectID) (chat *models.Chat, created bool, err error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*models.Chat, error)
	ListForUser(ctx context.Context, userID primitive.ObjectID) ([]models.Chat, error)
	SetLatestMessage(ctx context.Context, chatID, messageID primitive.ObjectID) error
	IncrementUnread(ctx context.Context, chatID primitive.ObjectID, userIDs []primitive.ObjectID) error
	ResetUnread(ctx context.Context, chatID, userID primitive.ObjectID) error
}

// MessageStore owns message documents. Messages are immutable except for the
// readBy append done by MarkChatRead.
type MessageStore interface {
	Create(ctx context.Context, message *models.Message) error
	GetByID(ctx context.Context, id primitive.ObjectID) (*models.Message, error)
	ListByChat(ctx context.Context, chatID primitive.ObjectID) ([]models.Message, error)
	// MarkChatRead adds the user to readBy on every message of the chat they
	// have not read yet.
	MarkChatRead(ctx context.Context, chatID, userID primitive.ObjectID) error
}

// PostStore owns post documents.
type PostStore interface {
	Create(ctx context.Context, post *models.Post) error
	GetByID(ctx context.Context, id primitive.ObjectID) (*models.Post, error)
	Save(ctx context.Context, post *models.Post) error
	Delete(ctx context.Context, id primitive.ObjectID) error
	ListFeed(ctx context.Context) ([]models.Post, error)
	ListByAuthor(ctx context.Context, author primitive.ObjectID) ([]models.Post, error)
	CountSharedByAuthor(ctx context.Context, author primitive.ObjectID) (int64, error)
}

// EventStore owns event documents.
type EventStore interface {
	Create(ctx context.Context, event *models.Event) error
	GetByID(ctx context.Context, id primitive.ObjectID) (*models.Event, error)
	Save(ctx context.Context, event *models.Event) error
	Delete(ctx context.Context, id primitive.ObjectID) error
	List(ctx context.Context) ([]models.Event, error)
	Count(ctx context.Context) (int64, error)
	CountByCreator(ctx context.Context, creator primitive.ObjectID) (int64, error)
}

// Store bundles every per-entity store behind one wiring point.
type Store struct {
	Users         UserStore
	Connections   ConnectionStore
	Notifications NotificationStore
	Chats         ChatStore
	Messages      MessageStore
	Posts         PostStore
	Events        EventStore
}
