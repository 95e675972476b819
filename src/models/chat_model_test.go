package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestChatPairKeyIsOrderIndependent(t *testing.T) {
	a := primitive.NewObjectID()
	b := primitive.NewObjectID()

	assert.Equal(t, ChatPairKey(a, b), ChatPairKey(b, a))
	assert.NotEqual(t, ChatPairKey(a, b), ChatPairKey(a, primitive.NewObjectID()))
}

func TestSplitChatPairKey(t *testing.T) {
	a := primitive.NewObjectID()
	b := primitive.NewObjectID()

	x, y, err := SplitChatPairKey(ChatPairKey(a, b))
	require.NoError(t, err)
	assert.ElementsMatch(t, []primitive.ObjectID{a, b}, []primitive.ObjectID{x, y})

	_, _, err = SplitChatPairKey("garbage")
	assert.Error(t, err)
}

func TestChatParticipantHelpers(t *testing.T) {
	a := primitive.NewObjectID()
	b := primitive.NewObjectID()
	chat := Chat{Participants: []primitive.ObjectID{a, b}}

	assert.True(t, chat.HasParticipant(a))
	assert.False(t, chat.HasParticipant(primitive.NewObjectID()))
	assert.Equal(t, []primitive.ObjectID{b}, chat.OtherParticipants(a))
}

func TestMessageReadByUser(t *testing.T) {
	sender := primitive.NewObjectID()
	message := Message{ReadBy: []primitive.ObjectID{sender}}

	assert.True(t, message.ReadByUser(sender))
	assert.False(t, message.ReadByUser(primitive.NewObjectID()))
}
