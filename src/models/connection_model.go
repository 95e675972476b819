package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Connection struct {
	Id        primitive.ObjectID `json:"_id" bson:"_id,omitempty"`
	Sender    primitive.ObjectID `json:"sender" bson:"sender"`
	Recipient primitive.ObjectID `json:"recipient" bson:"recipient"`
	Status    ConnectionStatus   `json:"status" bson:"status"` // pending, accepted, rejected
	CreatedAt time.Time          `json:"createdAt" bson:"createdAt"`
	UpdatedAt time.Time          `json:"updatedAt" bson:"updatedAt"`
}

type ConnectionStatus string

const (
	ConnectionStatusPending  ConnectionStatus = "pending"
	ConnectionStatusAccepted ConnectionStatus = "accepted"
	ConnectionStatusRejected ConnectionStatus = "rejected"
)

// Counterpart returns the other user involved in the request.
func (c *Connection) Counterpart(userID primitive.ObjectID) primitive.ObjectID {
	if c.Sender == userID {
		return c.Recipient
	}
	return c.Sender
}

// SuggestionStatus is the derived relation shown on people suggestions.
type SuggestionStatus string

const (
	SuggestionNotConnected SuggestionStatus = "not_connected"
	SuggestionPending      SuggestionStatus = "pending"
	SuggestionReceived     SuggestionStatus = "received"
	SuggestionRejected     SuggestionStatus = "rejected"
)

// BuildRequestStatusMap maps every counterpart of the given user to the
// derived suggestion status, scanning all requests the user is involved in.
// Accepted requests are skipped; those users are excluded upstream via the
// connections list.
func BuildRequestStatusMap(userID primitive.ObjectID, requests []Connection) map[primitive.ObjectID]SuggestionStatus {
	statusMap := make(map[primitive.ObjectID]SuggestionStatus, len(requests))
	for _, req := range requests {
		other := req.Counterpart(userID)
		switch req.Status {
		case ConnectionStatusPending:
			if req.Sender == userID {
				statusMap[other] = SuggestionPending
			} else {
				statusMap[other] = SuggestionReceived
			}
		case ConnectionStatusRejected:
			statusMap[other] = SuggestionRejected
		}
	}
	return statusMap
}
