package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Notification struct {
	Id           primitive.ObjectID `json:"_id" bson:"_id,omitempty"`
	Recipient    primitive.ObjectID `json:"recipient" bson:"recipient"`
	Type         NotificationType   `json:"type" bson:"type"`
	RelatedUser  primitive.ObjectID `json:"relatedUser,omitempty" bson:"relatedUser,omitempty"`
	RelatedPost  primitive.ObjectID `json:"relatedPost,omitempty" bson:"relatedPost,omitempty"`
	RelatedEvent primitive.ObjectID `json:"relatedEvent,omitempty" bson:"relatedEvent,omitempty"`
	Read         bool               `json:"read" bson:"read"`
	CreatedAt    time.Time          `json:"createdAt" bson:"createdAt"`
	UpdatedAt    time.Time          `json:"updatedAt" bson:"updatedAt"`
}

type NotificationType string

const (
	NotificationTypeLike               NotificationType = "like"
	NotificationTypeComment            NotificationType = "comment"
	NotificationTypeConnectionAccepted NotificationType = "connectionAccepted"
	NotificationTypeEventLike          NotificationType = "event_like"
	NotificationTypeEventComment       NotificationType = "event_comment"
)
