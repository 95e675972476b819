package controllers_test

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/unilink-app/unilink-backend/src/models"
)

func TestAddSkillStartsPending(t *testing.T) {
	app, st := newTestApp(t)
	alice, aliceToken := seedUser(t, st, "alice", "user")

	resp := doJSON(t, app, http.MethodPost, "/skills", aliceToken, map[string]string{
		"name":        "Go",
		"description": "Backend development",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	updated, err := st.Users.GetByID(context.Background(), alice.Id)
	require.NoError(t, err)
	require.Len(t, updated.Skills, 1)
	assert.Equal(t, models.ReviewStatusPending, updated.Skills[0].SkillStatus)
	assert.False(t, updated.Skills[0].IsSkillVerified)
}

func TestPublicProfileHidesUnverifiedItemsFromOthers(t *testing.T) {
	app, st := newTestApp(t)
	alice, aliceToken := seedUser(t, st, "alice", "user")
	_, bobToken := seedUser(t, st, "bob", "user")

	alice.Skills = []models.Skill{
		{Name: "Go", IsSkillVerified: true, SkillStatus: models.ReviewStatusApproved},
		{Name: "Rust", IsSkillVerified: false, SkillStatus: models.ReviewStatusPending},
	}
	alice.Certifications = []models.Certification{
		{Title: "Cloud Cert", IsVerified: true, Status: models.ReviewStatusApproved},
		{Title: "Pending Cert", IsVerified: false, Status: models.ReviewStatusPending},
	}
	require.NoError(t, st.Users.Save(context.Background(), alice))

	var profile struct {
		Skills         []models.Skill         `json:"skills"`
		Certifications []models.Certification `json:"certifications"`
		Password       string                 `json:"password"`
	}

	// Another user only sees what the admins approved.
	resp := doJSON(t, app, http.MethodGet, "/alice", bobToken, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	decodeBody(t, resp, &profile)
	require.Len(t, profile.Skills, 1)
	assert.Equal(t, "Go", profile.Skills[0].Name)
	require.Len(t, profile.Certifications, 1)
	assert.Equal(t, "Cloud Cert", profile.Certifications[0].Title)
	assert.Empty(t, profile.Password)

	// The owner sees everything.
	resp = doJSON(t, app, http.MethodGet, "/alice", aliceToken, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	decodeBody(t, resp, &profile)
	assert.Len(t, profile.Skills, 2)
	assert.Len(t, profile.Certifications, 2)
}

func TestSuggestionsAnnotateRequestStatus(t *testing.T) {
	app, st := newTestApp(t)
	alice, aliceToken := seedUser(t, st, "alice", "user")
	bob, _ := seedUser(t, st, "bob", "user")
	carol, _ := seedUser(t, st, "carol", "user")
	seedUser(t, st, "dave", "user")

	// alice -> bob pending, carol -> alice pending, dave untouched.
	require.NoError(t, st.Connections.Create(context.Background(), &models.Connection{
		Sender: alice.Id, Recipient: bob.Id, Status: models.ConnectionStatusPending,
	}))
	require.NoError(t, st.Connections.Create(context.Background(), &models.Connection{
		Sender: carol.Id, Recipient: alice.Id, Status: models.ConnectionStatusPending,
	}))

	resp := doJSON(t, app, http.MethodGet, "/suggestions", aliceToken, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var suggestions []struct {
		Username string `json:"username"`
		Status   string `json:"status"`
	}
	decodeBody(t, resp, &suggestions)

	statusByUsername := map[string]string{}
	for _, s := range suggestions {
		statusByUsername[s.Username] = s.Status
	}
	assert.Equal(t, "pending", statusByUsername["bob"])
	assert.Equal(t, "received", statusByUsername["carol"])
	assert.Equal(t, "not_connected", statusByUsername["dave"])
	assert.NotContains(t, statusByUsername, "alice")
}

func TestSuggestionsExcludeConnections(t *testing.T) {
	app, st := newTestApp(t)
	alice, aliceToken := seedUser(t, st, "alice", "user")
	bob, _ := seedUser(t, st, "bob", "user")
	seedUser(t, st, "carol", "user")

	require.NoError(t, st.Users.AddConnection(context.Background(), alice.Id, bob.Id))

	resp := doJSON(t, app, http.MethodGet, "/suggestions", aliceToken, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var suggestions []struct {
		Username string `json:"username"`
	}
	decodeBody(t, resp, &suggestions)
	require.Len(t, suggestions, 1)
	assert.Equal(t, "carol", suggestions[0].Username)
}

func TestAddEducationRejectsDuplicates(t *testing.T) {
	app, st := newTestApp(t)
	_, aliceToken := seedUser(t, st, "alice", "user")

	body := map[string]interface{}{
		"school":       "State University",
		"fieldOfStudy": "Computer Science",
		"startYear":    2021,
	}

	resp := doJSON(t, app, http.MethodPost, "/add-education", aliceToken, body)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp = doJSON(t, app, http.MethodPost, "/add-education", aliceToken, body)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestSearchUsersByPrefix(t *testing.T) {
	app, st := newTestApp(t)
	_, token := seedUser(t, st, "alice", "user")
	seedUser(t, st, "alicia", "user")
	seedUser(t, st, "bob", "user")

	resp := doJSON(t, app, http.MethodPost, "/search-users?q=ali", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var results []struct {
		Username string `json:"username"`
	}
	decodeBody(t, resp, &results)
	require.Len(t, results, 2)
}

func TestUpdateProfile(t *testing.T) {
	app, st := newTestApp(t)
	alice, aliceToken := seedUser(t, st, "alice", "user")

	resp := doJSON(t, app, http.MethodPut, "/update-profile", aliceToken, map[string]string{
		"headline": "Systems Engineer",
		"location": "Berlin",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	updated, err := st.Users.GetByID(context.Background(), alice.Id)
	require.NoError(t, err)
	assert.Equal(t, "Systems Engineer", updated.Headline)
	assert.Equal(t, "Berlin", updated.Location)
	assert.Equal(t, "alice", updated.Username)
}
