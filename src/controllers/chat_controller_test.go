package controllers_test

import (
	"context"
	"net/http"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestAccessChatCreatesThenReuses(t *testing.T) {
	app, st := newTestApp(t)
	_, aliceToken := seedUser(t, st, "alice", "user")
	bob, bobToken := seedUser(t, st, "bob", "user")
	alice, err := st.Users.GetByUsername(context.Background(), "alice")
	require.NoError(t, err)

	resp := doJSON(t, app, http.MethodPost, "/api/chat/get-access", aliceToken, map[string]string{
		"userId": bob.Id.Hex(),
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var created struct {
		ID           primitive.ObjectID `json:"_id"`
		Participants []struct {
			Username string `json:"username"`
		} `json:"participants"`
	}
	decodeBody(t, resp, &created)
	assert.Len(t, created.Participants, 2)

	// Opening the chat from the other side finds the same document.
	resp = doJSON(t, app, http.MethodPost, "/api/chat/get-access", bobToken, map[string]string{
		"userId": alice.Id.Hex(),
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var reused struct {
		ID primitive.ObjectID `json:"_id"`
	}
	decodeBody(t, resp, &reused)
	assert.Equal(t, created.ID, reused.ID)
}

func TestAccessChatRejectsSelf(t *testing.T) {
	app, st := newTestApp(t)
	alice, aliceToken := seedUser(t, st, "alice", "user")

	resp := doJSON(t, app, http.MethodPost, "/api/chat/get-access", aliceToken, map[string]string{
		"userId": alice.Id.Hex(),
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestConcurrentChatCreationYieldsOneChat(t *testing.T) {
	_, st := newTestApp(t)
	alice, _ := seedUser(t, st, "alice", "user")
	bob, _ := seedUser(t, st, "bob", "user")

	const workers = 16
	ids := make([]primitive.ObjectID, workers)

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			a, b := alice.Id, bob.Id
			if i%2 == 1 {
				a, b = b, a
			}
			chat, _, err := st.Chats.GetOrCreate(context.Background(), a, b)
			if err != nil {
				t.Error(err)
				return
			}
			ids[i] = chat.Id
		}(i)
	}
	wg.Wait()

	for i := 1; i < workers; i++ {
		assert.Equal(t, ids[0], ids[i])
	}
}

func TestFetchChatsFlagsUnread(t *testing.T) {
	app, st := newTestApp(t)
	alice, aliceToken := seedUser(t, st, "alice", "user")
	bob, bobToken := seedUser(t, st, "bob", "user")

	chat, _, err := st.Chats.GetOrCreate(context.Background(), alice.Id, bob.Id)
	require.NoError(t, err)

	resp := doJSON(t, app, http.MethodPost, "/api/message/send-message", aliceToken, map[string]string{
		"chatId":  chat.Id.Hex(),
		"content": "hello bob",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var bobChats []struct {
		HasUnread bool `json:"hasUnread"`
	}
	resp = doJSON(t, app, http.MethodGet, "/api/chat/get-messages", bobToken, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	decodeBody(t, resp, &bobChats)
	require.Len(t, bobChats, 1)
	assert.True(t, bobChats[0].HasUnread)

	// The sender has nothing unread.
	var aliceChats []struct {
		HasUnread bool `json:"hasUnread"`
	}
	resp = doJSON(t, app, http.MethodGet, "/api/chat/get-messages", aliceToken, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	decodeBody(t, resp, &aliceChats)
	require.Len(t, aliceChats, 1)
	assert.False(t, aliceChats[0].HasUnread)
}
