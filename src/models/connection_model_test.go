package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestBuildRequestStatusMap(t *testing.T) {
	me := primitive.NewObjectID()
	sentTo := primitive.NewObjectID()
	receivedFrom := primitive.NewObjectID()
	rejectedBy := primitive.NewObjectID()
	accepted := primitive.NewObjectID()

	requests := []Connection{
		{Sender: me, Recipient: sentTo, Status: ConnectionStatusPending},
		{Sender: receivedFrom, Recipient: me, Status: ConnectionStatusPending},
		{Sender: me, Recipient: rejectedBy, Status: ConnectionStatusRejected},
		{Sender: accepted, Recipient: me, Status: ConnectionStatusAccepted},
	}

	statusMap := BuildRequestStatusMap(me, requests)

	assert.Equal(t, SuggestionPending, statusMap[sentTo])
	assert.Equal(t, SuggestionReceived, statusMap[receivedFrom])
	assert.Equal(t, SuggestionRejected, statusMap[rejectedBy])
	assert.NotContains(t, statusMap, accepted)
}

func TestConnectionCounterpart(t *testing.T) {
	sender := primitive.NewObjectID()
	recipient := primitive.NewObjectID()
	conn := Connection{Sender: sender, Recipient: recipient}

	assert.Equal(t, recipient, conn.Counterpart(sender))
	assert.Equal(t, sender, conn.Counterpart(recipient))
}
