package controllers_test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSignupAndLogin(t *testing.T) {
	app, _ := newTestApp(t)

	resp := doJSON(t, app, http.MethodPost, "/register", "", map[string]string{
		"name":     "Alice",
		"username": "alice",
		"email":    "alice@unilink.edu",
		"password": "secret123",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var signupBody map[string]interface{}
	decodeBody(t, resp, &signupBody)
	assert.NotEmpty(t, signupBody["token"])

	resp = doJSON(t, app, http.MethodPost, "/login", "", map[string]string{
		"email":    "alice@unilink.edu",
		"password": "secret123",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var loginBody struct {
		Success bool `json:"success"`
		Data    struct {
			Token string `json:"token"`
			User  struct {
				Username string `json:"username"`
				Password string `json:"password"`
			} `json:"user"`
		} `json:"data"`
	}
	decodeBody(t, resp, &loginBody)
	assert.True(t, loginBody.Success)
	assert.NotEmpty(t, loginBody.Data.Token)
	assert.Equal(t, "alice", loginBody.Data.User.Username)
	assert.Empty(t, loginBody.Data.User.Password)
}

func TestSignupRejectsDuplicates(t *testing.T) {
	app, st := newTestApp(t)
	seedUser(t, st, "bob", "user")

	resp := doJSON(t, app, http.MethodPost, "/register", "", map[string]string{
		"name":     "Other Bob",
		"username": "bob2",
		"email":    "bob@unilink.edu",
		"password": "secret123",
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp = doJSON(t, app, http.MethodPost, "/register", "", map[string]string{
		"name":     "Other Bob",
		"username": "bob",
		"email":    "bob2@unilink.edu",
		"password": "secret123",
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestSignupRejectsShortPassword(t *testing.T) {
	app, _ := newTestApp(t)

	resp := doJSON(t, app, http.MethodPost, "/register", "", map[string]string{
		"name":     "Carol",
		"username": "carol",
		"email":    "carol@unilink.edu",
		"password": "abc",
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestLoginRejectsWrongPassword(t *testing.T) {
	app, st := newTestApp(t)
	seedUser(t, st, "dave", "user")

	resp := doJSON(t, app, http.MethodPost, "/login", "", map[string]string{
		"email":    "dave@unilink.edu",
		"password": "wrong-password",
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestMeRequiresToken(t *testing.T) {
	app, st := newTestApp(t)
	_, token := seedUser(t, st, "erin", "user")

	resp := doJSON(t, app, http.MethodGet, "/me", "", nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	resp = doJSON(t, app, http.MethodGet, "/me", "not-a-token", nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	resp = doJSON(t, app, http.MethodGet, "/me", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var me struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}
	decodeBody(t, resp, &me)
	assert.Equal(t, "erin", me.Username)
	assert.Empty(t, me.Password)
}
