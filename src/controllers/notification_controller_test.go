package controllers_test

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/unilink-app/unilink-backend/src/models"
)

func TestNotificationsListAndPopulate(t *testing.T) {
	app, st := newTestApp(t)
	alice, aliceToken := seedUser(t, st, "alice", "user")
	bob, _ := seedUser(t, st, "bob", "user")

	post := &models.Post{Author: alice.Id, Content: "hello"}
	require.NoError(t, st.Posts.Create(context.Background(), post))

	notification := &models.Notification{
		Recipient:   alice.Id,
		Type:        models.NotificationTypeLike,
		RelatedUser: bob.Id,
		RelatedPost: post.Id,
	}
	require.NoError(t, st.Notifications.Create(context.Background(), notification))

	resp := doJSON(t, app, http.MethodGet, "/api/notifications", aliceToken, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var listed []struct {
		Type        string `json:"type"`
		Read        bool   `json:"read"`
		RelatedUser *struct {
			Username string `json:"username"`
		} `json:"relatedUser"`
		RelatedPost *struct {
			Content string `json:"content"`
		} `json:"relatedPost"`
	}
	decodeBody(t, resp, &listed)
	require.Len(t, listed, 1)
	assert.Equal(t, "like", listed[0].Type)
	assert.False(t, listed[0].Read)
	require.NotNil(t, listed[0].RelatedUser)
	assert.Equal(t, "bob", listed[0].RelatedUser.Username)
	require.NotNil(t, listed[0].RelatedPost)
	assert.Equal(t, "hello", listed[0].RelatedPost.Content)
}

func TestMarkNotificationAsReadScopedToRecipient(t *testing.T) {
	app, st := newTestApp(t)
	alice, aliceToken := seedUser(t, st, "alice", "user")
	bob, _ := seedUser(t, st, "bob", "user")
	_, malloryToken := seedUser(t, st, "mallory", "user")

	notification := &models.Notification{
		Recipient:   alice.Id,
		Type:        models.NotificationTypeConnectionAccepted,
		RelatedUser: bob.Id,
	}
	require.NoError(t, st.Notifications.Create(context.Background(), notification))

	// Somebody else's notification is invisible.
	resp := doJSON(t, app, http.MethodPut, "/api/notifications/"+notification.Id.Hex()+"/read", malloryToken, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp = doJSON(t, app, http.MethodPut, "/api/notifications/"+notification.Id.Hex()+"/read", aliceToken, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var updated models.Notification
	decodeBody(t, resp, &updated)
	assert.True(t, updated.Read)
}

func TestDeleteNotificationScopedToRecipient(t *testing.T) {
	app, st := newTestApp(t)
	alice, aliceToken := seedUser(t, st, "alice", "user")
	bob, _ := seedUser(t, st, "bob", "user")
	_, malloryToken := seedUser(t, st, "mallory", "user")

	notification := &models.Notification{
		Recipient:   alice.Id,
		Type:        models.NotificationTypeComment,
		RelatedUser: bob.Id,
	}
	require.NoError(t, st.Notifications.Create(context.Background(), notification))

	resp := doJSON(t, app, http.MethodDelete, "/api/notifications/"+notification.Id.Hex(), malloryToken, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp = doJSON(t, app, http.MethodDelete, "/api/notifications/"+notification.Id.Hex(), aliceToken, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	remaining, err := st.Notifications.ListForRecipient(context.Background(), alice.Id)
	require.NoError(t, err)
	assert.Empty(t, remaining)
}
