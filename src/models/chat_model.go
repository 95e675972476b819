package models

import (
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Chat struct {
	Id            primitive.ObjectID   `json:"_id" bson:"_id,omitempty"`
	Participants  []primitive.ObjectID `json:"participants" bson:"participants"`
	PairKey       string               `json:"-" bson:"pairKey"`
	LatestMessage primitive.ObjectID   `json:"latestMessage,omitempty" bson:"latestMessage,omitempty"`
	UnreadCount   map[string]int       `json:"unreadCount" bson:"unreadCount"`
	CreatedAt     time.Time            `json:"createdAt" bson:"createdAt"`
	UpdatedAt     time.Time            `json:"updatedAt" bson:"updatedAt"`
}

// HasParticipant reports whether the user belongs to the chat.
func (c *Chat) HasParticipant(userID primitive.ObjectID) bool {
	for _, p := range c.Participants {
		if p == userID {
			return true
		}
	}
	return false
}

// OtherParticipants returns every participant except the given one.
func (c *Chat) OtherParticipants(userID primitive.ObjectID) []primitive.ObjectID {
	others := make([]primitive.ObjectID, 0, len(c.Participants))
	for _, p := range c.Participants {
		if p != userID {
			others = append(others, p)
		}
	}
	return others
}

// ChatPairKey builds the canonical identifier for a participant pair. The two
// ids are sorted so both orderings map to the same key, which backs the unique
// index that keeps chat creation idempotent under concurrent first contact.
func ChatPairKey(a, b primitive.ObjectID) string {
	ah, bh := a.Hex(), b.Hex()
	if ah > bh {
		ah, bh = bh, ah
	}
	return ah + ":" + bh
}

// SplitChatPairKey is the inverse of ChatPairKey.
func SplitChatPairKey(key string) (primitive.ObjectID, primitive.ObjectID, error) {
	parts := strings.SplitN(key, ":", 2)
	if len(parts) != 2 {
		return primitive.NilObjectID, primitive.NilObjectID, primitive.ErrInvalidHex
	}
	a, err := primitive.ObjectIDFromHex(parts[0])
	if err != nil {
		return primitive.NilObjectID, primitive.NilObjectID, err
	}
	b, err := primitive.ObjectIDFromHex(parts[1])
	if err != nil {
		return primitive.NilObjectID, primitive.NilObjectID, err
	}
	return a, b, nil
}

type Message struct {
	Id          primitive.ObjectID   `json:"_id" bson:"_id,omitempty"`
	Sender      primitive.ObjectID   `json:"sender" bson:"sender"`
	Chat        primitive.ObjectID   `json:"chat" bson:"chat"`
	Content     string               `json:"content" bson:"content"`
	ReadBy      []primitive.ObjectID `json:"readBy" bson:"readBy"`
	Attachments []string             `json:"attachments" bson:"attachments"`
	MessageType MessageType          `json:"messageType" bson:"messageType"`
	CreatedAt   time.Time            `json:"createdAt" bson:"createdAt"`
	UpdatedAt   time.Time            `json:"updatedAt" bson:"updatedAt"`
}

// ReadByUser reports whether the user appears in the message's read receipts.
func (m *Message) ReadByUser(userID primitive.ObjectID) bool {
	for _, id := range m.ReadBy {
		if id == userID {
			return true
		}
	}
	return false
}

type MessageType string

const (
	MessageTypeText  MessageType = "text"
	MessageTypeImage MessageType = "image"
	MessageTypeFile  MessageType = "file"
)
