package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Post struct {
	Id         primitive.ObjectID   `json:"_id" bson:"_id,omitempty"`
	Author     primitive.ObjectID   `json:"author" bson:"author"`
	Content    string               `json:"content" bson:"content"`
	Image      string               `json:"image" bson:"image"`
	Likes      []primitive.ObjectID `json:"likes" bson:"likes"`
	Comments   []Comment            `json:"comments" bson:"comments"`
	SharedPost primitive.ObjectID   `json:"sharedPost,omitempty" bson:"sharedPost,omitempty"`
	CreatedAt  time.Time            `json:"createdAt" bson:"createdAt"`
	UpdatedAt  time.Time            `json:"updatedAt" bson:"updatedAt"`
}

type Comment struct {
	Id        primitive.ObjectID `json:"_id" bson:"_id,omitempty"`
	User      primitive.ObjectID `json:"user" bson:"user"`
	Content   string             `json:"content" bson:"content"`
	CreatedAt time.Time          `json:"createdAt" bson:"createdAt"`
}

// ToggleLike adds the user to the likes list, or removes them if already
// present. It returns true when the post ends up liked.
func (p *Post) ToggleLike(userID primitive.ObjectID) bool {
	for i, id := range p.Likes {
		if id == userID {
			p.Likes = append(p.Likes[:i], p.Likes[i+1:]...)
			return false
		}
	}
	p.Likes = append(p.Likes, userID)
	return true
}
