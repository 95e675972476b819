package controllers_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/unilink-app/unilink-backend/src/models"
)

func seedEvent(t *testing.T, st interface {
	Create(ctx context.Context, event *models.Event) error
}, creator primitive.ObjectID, title string) *models.Event {
	t.Helper()
	event := &models.Event{
		Title:         title,
		Description:   "details",
		Date:          time.Now().Add(48 * time.Hour),
		Location:      "Main Hall",
		CreatedBy:     creator,
		CreatedByRole: models.RoleUser,
	}
	require.NoError(t, st.Create(context.Background(), event))
	return event
}

func TestCreateEvent(t *testing.T) {
	app, st := newTestApp(t)
	alice, aliceToken := seedUser(t, st, "alice", "user")

	resp := doJSON(t, app, http.MethodPost, "/api/events/create", aliceToken, map[string]interface{}{
		"title":    "Career Fair",
		"date":     time.Now().Add(72 * time.Hour).Format(time.RFC3339),
		"location": "Auditorium",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var created models.Event
	decodeBody(t, resp, &created)
	assert.Equal(t, "Career Fair", created.Title)
	assert.Equal(t, alice.Id, created.CreatedBy)
	assert.Equal(t, models.RoleUser, created.CreatedByRole)
}

func TestUpdateEventCreatorOrAdmin(t *testing.T) {
	app, st := newTestApp(t)
	alice, aliceToken := seedUser(t, st, "alice", "user")
	_, bobToken := seedUser(t, st, "bob", "user")
	_, adminToken := seedUser(t, st, "admin", "admin")

	event := seedEvent(t, st.Events, alice.Id, "Hackathon")

	resp := doJSON(t, app, http.MethodPut, "/api/events/"+event.Id.Hex(), bobToken, map[string]string{
		"title": "Taken over",
	})
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	resp = doJSON(t, app, http.MethodPut, "/api/events/"+event.Id.Hex(), aliceToken, map[string]string{
		"title": "Hackathon 2.0",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp = doJSON(t, app, http.MethodPut, "/api/events/"+event.Id.Hex(), adminToken, map[string]string{
		"location": "Lab 3",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	updated, err := st.Events.GetByID(context.Background(), event.Id)
	require.NoError(t, err)
	assert.Equal(t, "Hackathon 2.0", updated.Title)
	assert.Equal(t, "Lab 3", updated.Location)
}

func TestDeleteEventCreatorOrAdmin(t *testing.T) {
	app, st := newTestApp(t)
	alice, _ := seedUser(t, st, "alice", "user")
	_, bobToken := seedUser(t, st, "bob", "user")
	_, adminToken := seedUser(t, st, "admin", "admin")

	event := seedEvent(t, st.Events, alice.Id, "Workshop")

	resp := doJSON(t, app, http.MethodDelete, "/api/events/delete/"+event.Id.Hex(), bobToken, nil)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	resp = doJSON(t, app, http.MethodDelete, "/api/events/delete/"+event.Id.Hex(), adminToken, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	_, err := st.Events.GetByID(context.Background(), event.Id)
	assert.Error(t, err)
}

func TestLikeEventNotifiesCreator(t *testing.T) {
	app, st := newTestApp(t)
	alice, _ := seedUser(t, st, "alice", "user")
	_, bobToken := seedUser(t, st, "bob", "user")

	event := seedEvent(t, st.Events, alice.Id, "Meetup")

	resp := doJSON(t, app, http.MethodPost, "/api/events/"+event.Id.Hex()+"/like", bobToken, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	notifications, err := st.Notifications.ListForRecipient(context.Background(), alice.Id)
	require.NoError(t, err)
	require.Len(t, notifications, 1)
	assert.Equal(t, models.NotificationTypeEventLike, notifications[0].Type)
	assert.Equal(t, event.Id, notifications[0].RelatedEvent)
}

func TestEventCommentNotifiesCreator(t *testing.T) {
	app, st := newTestApp(t)
	alice, _ := seedUser(t, st, "alice", "user")
	_, bobToken := seedUser(t, st, "bob", "user")

	event := seedEvent(t, st.Events, alice.Id, "Seminar")

	resp := doJSON(t, app, http.MethodPost, "/api/events/"+event.Id.Hex()+"/comment", bobToken, map[string]string{
		"content": "looking forward to it",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	updated, err := st.Events.GetByID(context.Background(), event.Id)
	require.NoError(t, err)
	require.Len(t, updated.Comments, 1)

	notifications, err := st.Notifications.ListForRecipient(context.Background(), alice.Id)
	require.NoError(t, err)
	require.Len(t, notifications, 1)
	assert.Equal(t, models.NotificationTypeEventComment, notifications[0].Type)
}

func TestShareEventRejectsMalformedBody(t *testing.T) {
	app, st := newTestApp(t)
	alice, _ := seedUser(t, st, "alice", "user")
	_, bobToken := seedUser(t, st, "bob", "user")

	event := seedEvent(t, st.Events, alice.Id, "Hackathon")

	req := httptest.NewRequest(http.MethodPost, "/api/events/"+event.Id.Hex()+"/share", strings.NewReader("{not json"))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+bobToken)

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	// An empty body shares with the original description.
	resp = doJSON(t, app, http.MethodPost, "/api/events/"+event.Id.Hex()+"/share", bobToken, nil)
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
}

func TestShareEventTracksShares(t *testing.T) {
	app, st := newTestApp(t)
	alice, _ := seedUser(t, st, "alice", "user")
	bob, bobToken := seedUser(t, st, "bob", "user")

	event := seedEvent(t, st.Events, alice.Id, "Open Day")

	resp := doJSON(t, app, http.MethodPost, "/api/events/"+event.Id.Hex()+"/share", bobToken, map[string]string{
		"content": "join me there",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var body struct {
		SharedEvent models.Event `json:"sharedEvent"`
	}
	decodeBody(t, resp, &body)
	assert.Equal(t, event.Id, body.SharedEvent.SharedEvent)
	assert.Equal(t, bob.Id, body.SharedEvent.CreatedBy)
	assert.Equal(t, "join me there", body.SharedEvent.Description)

	original, err := st.Events.GetByID(context.Background(), event.Id)
	require.NoError(t, err)
	require.Len(t, original.Shares, 1)
	assert.Equal(t, bob.Id, original.Shares[0])
}
