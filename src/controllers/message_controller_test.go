package controllers_test

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestSendMessageUpdatesUnreadCounters(t *testing.T) {
	app, st := newTestApp(t)
	alice, aliceToken := seedUser(t, st, "alice", "user")
	bob, _ := seedUser(t, st, "bob", "user")

	chat, _, err := st.Chats.GetOrCreate(context.Background(), alice.Id, bob.Id)
	require.NoError(t, err)

	for i := 0; i < 3; i++ {
		resp := doJSON(t, app, http.MethodPost, "/api/message/send-message", aliceToken, map[string]string{
			"chatId":  chat.Id.Hex(),
			"content": "ping",
		})
		require.Equal(t, http.StatusOK, resp.StatusCode)
	}

	updated, err := st.Chats.GetByID(context.Background(), chat.Id)
	require.NoError(t, err)
	assert.Equal(t, 3, updated.UnreadCount[bob.Id.Hex()])
	assert.Equal(t, 0, updated.UnreadCount[alice.Id.Hex()])
	assert.False(t, updated.LatestMessage.IsZero())

	// New messages carry only the sender's read receipt.
	messages, err := st.Messages.ListByChat(context.Background(), chat.Id)
	require.NoError(t, err)
	require.Len(t, messages, 3)
	for _, m := range messages {
		assert.Equal(t, []primitive.ObjectID{alice.Id}, m.ReadBy)
	}
}

func TestSendMessageRejectsNonParticipant(t *testing.T) {
	app, st := newTestApp(t)
	alice, _ := seedUser(t, st, "alice", "user")
	bob, _ := seedUser(t, st, "bob", "user")
	_, malloryToken := seedUser(t, st, "mallory", "user")

	chat, _, err := st.Chats.GetOrCreate(context.Background(), alice.Id, bob.Id)
	require.NoError(t, err)

	resp := doJSON(t, app, http.MethodPost, "/api/message/send-message", malloryToken, map[string]string{
		"chatId":  chat.Id.Hex(),
		"content": "let me in",
	})
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	resp = doJSON(t, app, http.MethodGet, "/api/message/"+chat.Id.Hex(), malloryToken, nil)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}

func TestSendMessageRequiresContent(t *testing.T) {
	app, st := newTestApp(t)
	alice, aliceToken := seedUser(t, st, "alice", "user")
	bob, _ := seedUser(t, st, "bob", "user")

	chat, _, err := st.Chats.GetOrCreate(context.Background(), alice.Id, bob.Id)
	require.NoError(t, err)

	resp := doJSON(t, app, http.MethodPost, "/api/message/send-message", aliceToken, map[string]string{
		"chatId": chat.Id.Hex(),
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	// Attachments alone are enough.
	resp = doJSON(t, app, http.MethodPost, "/api/message/send-message", aliceToken, map[string]interface{}{
		"chatId":      chat.Id.Hex(),
		"attachments": []string{"https://cdn.unilink.edu/file.pdf"},
		"messageType": "file",
	})
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestGetMessagesMarksChatRead(t *testing.T) {
	app, st := newTestApp(t)
	alice, aliceToken := seedUser(t, st, "alice", "user")
	bob, bobToken := seedUser(t, st, "bob", "user")

	chat, _, err := st.Chats.GetOrCreate(context.Background(), alice.Id, bob.Id)
	require.NoError(t, err)

	for i := 0; i < 2; i++ {
		resp := doJSON(t, app, http.MethodPost, "/api/message/send-message", aliceToken, map[string]string{
			"chatId":  chat.Id.Hex(),
			"content": "ping",
		})
		require.Equal(t, http.StatusOK, resp.StatusCode)
	}

	resp := doJSON(t, app, http.MethodGet, "/api/message/"+chat.Id.Hex(), bobToken, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var listed []struct {
		Content string               `json:"content"`
		ReadBy  []primitive.ObjectID `json:"readBy"`
	}
	decodeBody(t, resp, &listed)
	assert.Len(t, listed, 2)

	// Reading the chat clears bob's counter and stamps his receipts.
	updated, err := st.Chats.GetByID(context.Background(), chat.Id)
	require.NoError(t, err)
	assert.Equal(t, 0, updated.UnreadCount[bob.Id.Hex()])

	messages, err := st.Messages.ListByChat(context.Background(), chat.Id)
	require.NoError(t, err)
	for _, m := range messages {
		assert.True(t, m.ReadByUser(bob.Id))
		assert.True(t, m.ReadByUser(alice.Id))
	}
}
