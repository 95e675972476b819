package controllers_test

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/unilink-app/unilink-backend/src/models"
)

func TestSendConnectionRequest(t *testing.T) {
	app, st := newTestApp(t)
	_, aliceToken := seedUser(t, st, "alice", "user")
	bob, _ := seedUser(t, st, "bob", "user")

	resp := doJSON(t, app, http.MethodPost, "/connections/request/"+bob.Id.Hex(), aliceToken, nil)
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
}

func TestSendConnectionRequestRejectsSelf(t *testing.T) {
	app, st := newTestApp(t)
	alice, aliceToken := seedUser(t, st, "alice", "user")

	resp := doJSON(t, app, http.MethodPost, "/connections/request/"+alice.Id.Hex(), aliceToken, nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestSendConnectionRequestDeduplicatesBothDirections(t *testing.T) {
	app, st := newTestApp(t)
	alice, aliceToken := seedUser(t, st, "alice", "user")
	bob, bobToken := seedUser(t, st, "bob", "user")

	resp := doJSON(t, app, http.MethodPost, "/connections/request/"+bob.Id.Hex(), aliceToken, nil)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	// Same direction again.
	resp = doJSON(t, app, http.MethodPost, "/connections/request/"+bob.Id.Hex(), aliceToken, nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	// Opposite direction while the first is still pending.
	resp = doJSON(t, app, http.MethodPost, "/connections/request/"+alice.Id.Hex(), bobToken, nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestAcceptConnectionRequest(t *testing.T) {
	app, st := newTestApp(t)
	alice, aliceToken := seedUser(t, st, "alice", "user")
	bob, bobToken := seedUser(t, st, "bob", "user")

	resp := doJSON(t, app, http.MethodPost, "/connections/request/"+bob.Id.Hex(), aliceToken, nil)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	requests, err := st.Connections.ListPendingForRecipient(context.Background(), bob.Id)
	require.NoError(t, err)
	require.Len(t, requests, 1)
	requestID := requests[0].Id

	// Only the recipient may accept.
	resp = doJSON(t, app, http.MethodPut, "/connections/accept/"+requestID.Hex(), aliceToken, nil)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	resp = doJSON(t, app, http.MethodPut, "/connections/accept/"+requestID.Hex(), bobToken, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	// Both sides are now connected.
	updatedAlice, err := st.Users.GetByID(context.Background(), alice.Id)
	require.NoError(t, err)
	assert.True(t, updatedAlice.IsConnectedTo(bob.Id))

	updatedBob, err := st.Users.GetByID(context.Background(), bob.Id)
	require.NoError(t, err)
	assert.True(t, updatedBob.IsConnectedTo(alice.Id))

	// The sender was notified.
	notifications, err := st.Notifications.ListForRecipient(context.Background(), alice.Id)
	require.NoError(t, err)
	require.Len(t, notifications, 1)
	assert.Equal(t, models.NotificationTypeConnectionAccepted, notifications[0].Type)
	assert.Equal(t, bob.Id, notifications[0].RelatedUser)

	// A processed request cannot be accepted again.
	resp = doJSON(t, app, http.MethodPut, "/connections/accept/"+requestID.Hex(), bobToken, nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestRejectConnectionRequest(t *testing.T) {
	app, st := newTestApp(t)
	_, aliceToken := seedUser(t, st, "alice", "user")
	bob, bobToken := seedUser(t, st, "bob", "user")

	resp := doJSON(t, app, http.MethodPost, "/connections/request/"+bob.Id.Hex(), aliceToken, nil)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	requests, err := st.Connections.ListPendingForRecipient(context.Background(), bob.Id)
	require.NoError(t, err)
	require.Len(t, requests, 1)

	resp = doJSON(t, app, http.MethodPut, "/connections/reject/"+requests[0].Id.Hex(), bobToken, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	rejected, err := st.Connections.GetByID(context.Background(), requests[0].Id)
	require.NoError(t, err)
	assert.Equal(t, models.ConnectionStatusRejected, rejected.Status)
}

func TestGetConnectionStatus(t *testing.T) {
	app, st := newTestApp(t)
	alice, aliceToken := seedUser(t, st, "alice", "user")
	bob, bobToken := seedUser(t, st, "bob", "user")

	var status map[string]interface{}

	resp := doJSON(t, app, http.MethodGet, "/connections/status/"+bob.Id.Hex(), aliceToken, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	decodeBody(t, resp, &status)
	assert.Equal(t, "not_connected", status["status"])

	resp = doJSON(t, app, http.MethodPost, "/connections/request/"+bob.Id.Hex(), aliceToken, nil)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	resp = doJSON(t, app, http.MethodGet, "/connections/status/"+bob.Id.Hex(), aliceToken, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	decodeBody(t, resp, &status)
	assert.Equal(t, "pending", status["status"])

	resp = doJSON(t, app, http.MethodGet, "/connections/status/"+alice.Id.Hex(), bobToken, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	decodeBody(t, resp, &status)
	assert.Equal(t, "received", status["status"])
	assert.NotEmpty(t, status["requestId"])
}

func TestRemoveConnection(t *testing.T) {
	app, st := newTestApp(t)
	alice, aliceToken := seedUser(t, st, "alice", "user")
	bob, _ := seedUser(t, st, "bob", "user")

	require.NoError(t, st.Users.AddConnection(context.Background(), alice.Id, bob.Id))
	require.NoError(t, st.Users.AddConnection(context.Background(), bob.Id, alice.Id))

	resp := doJSON(t, app, http.MethodDelete, "/connections/"+bob.Id.Hex(), aliceToken, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	updatedAlice, err := st.Users.GetByID(context.Background(), alice.Id)
	require.NoError(t, err)
	assert.False(t, updatedAlice.IsConnectedTo(bob.Id))

	updatedBob, err := st.Users.GetByID(context.Background(), bob.Id)
	require.NoError(t, err)
	assert.False(t, updatedBob.IsConnectedTo(alice.Id))

	// Removing again reports the connection as gone.
	resp = doJSON(t, app, http.MethodDelete, "/connections/"+bob.Id.Hex(), aliceToken, nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}
