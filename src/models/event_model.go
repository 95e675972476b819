package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Event struct {
	Id            primitive.ObjectID   `json:"_id" bson:"_id,omitempty"`
	Title         string               `json:"title" bson:"title"`
	Description   string               `json:"description" bson:"description"`
	Image         string               `json:"image" bson:"image"`
	Date          time.Time            `json:"date" bson:"date"`
	Location      string               `json:"location" bson:"location"`
	CreatedBy     primitive.ObjectID   `json:"createdBy" bson:"createdBy"`
	CreatedByRole Role                 `json:"createdByRole" bson:"createdByRole"`
	Likes         []primitive.ObjectID `json:"likes" bson:"likes"`
	Comments      []Comment            `json:"comments" bson:"comments"`
	Shares        []primitive.ObjectID `json:"shares" bson:"shares"`
	SharedEvent   primitive.ObjectID   `json:"sharedEvent,omitempty" bson:"sharedEvent,omitempty"`
	CreatedAt     time.Time            `json:"createdAt" bson:"createdAt"`
	UpdatedAt     time.Time            `json:"updatedAt" bson:"updatedAt"`
}

// ToggleLike adds the user to the likes list, or removes them if already
// present. It returns true when the event ends up liked.
func (e *Event) ToggleLike(userID primitive.ObjectID) bool {
	for i, id := range e.Likes {
		if id == userID {
			e.Likes = append(e.Likes[:i], e.Likes[i+1:]...)
			return false
		}
	}
	e.Likes = append(e.Likes, userID)
	return true
}
