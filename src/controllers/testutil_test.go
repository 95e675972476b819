package controllers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/unilink-app/unilink-backend/src/controllers"
	"github.com/unilink-app/unilink-backend/src/lib"
	"github.com/unilink-app/unilink-backend/src/middleware"
	"github.com/unilink-app/unilink-backend/src/models"
	"github.com/unilink-app/unilink-backend/src/routes"
	"github.com/unilink-app/unilink-backend/src/store"
	"github.com/unilink-app/unilink-backend/src/store/memstore"
)

const testJWTSecret = "test-secret"

type sentEmail struct {
	To      string
	Subject string
	Body    string
}

// fakeMailer records outgoing mail. Safe for the best-effort send goroutines.
type fakeMailer struct {
	mu   sync.Mutex
	sent []sentEmail
}

func (f *fakeMailer) SendHTML(to, subject, body string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sent = append(f.sent, sentEmail{To: to, Subject: subject, Body: body})
	return nil
}

func (f *fakeMailer) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.sent)
}

func (f *fakeMailer) last() sentEmail {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.sent[len(f.sent)-1]
}

// newTestApp wires the full route surface over an in-memory store, no
// websocket hub.
func newTestApp(t *testing.T) (*fiber.App, *store.Store) {
	t.Helper()
	app, st, _ := newTestAppWithMail(t)
	return app, st
}

// newTestAppWithMail additionally exposes the recording mailer for tests that
// assert on outgoing email.
func newTestAppWithMail(t *testing.T) (*fiber.App, *store.Store, *fakeMailer) {
	t.Helper()

	st := memstore.New()
	logger := zerolog.Nop()
	mailer := &fakeMailer{}

	app := fiber.New()

	authController := &controllers.AuthController{Users: st.Users, Log: logger, JWTSecret: testJWTSecret}
	userController := &controllers.UserController{Users: st.Users, Connections: st.Connections, Posts: st.Posts, Events: st.Events, Log: logger}
	connectionController := &controllers.ConnectionController{Connections: st.Connections, Users: st.Users, Notifications: st.Notifications, Mail: mailer, Log: logger}
	notificationController := &controllers.NotificationController{Notifications: st.Notifications, Users: st.Users, Posts: st.Posts, Log: logger}
	chatController := &controllers.ChatController{Chats: st.Chats, Messages: st.Messages, Users: st.Users, Log: logger}
	messageController := &controllers.MessageController{Chats: st.Chats, Messages: st.Messages, Users: st.Users, Log: logger}
	postController := &controllers.PostController{Posts: st.Posts, Users: st.Users, Notifications: st.Notifications, Mail: mailer, Log: logger}
	eventController := &controllers.EventController{Events: st.Events, Users: st.Users, Notifications: st.Notifications, Log: logger}
	adminController := &controllers.AdminController{Users: st.Users, Posts: st.Posts, Events: st.Events, Log: logger}

	protect := middleware.ProtectRoute(st.Users, testJWTSecret)
	protectUser := middleware.ProtectRoute(st.Users, testJWTSecret, models.RoleUser)
	protectAdmin := middleware.ProtectRoute(st.Users, testJWTSecret, models.RoleAdmin)

	routes.AuthRoutes(app, authController, protect)
	routes.ConnectionRoutes(app, connectionController, protect)
	routes.NotificationRoutes(app, notificationController, protect)
	routes.PostRoutes(app, postController, protect)
	routes.EventRoutes(app, eventController, protect)
	routes.ChatRoutes(app, chatController, messageController, protect)
	routes.AdminRoutes(app, adminController, protectAdmin)
	routes.UserRoutes(app, userController, protect, protectUser)

	return app, st, mailer
}

// seedUser creates a user directly in the store and returns it with a valid
// bearer token.
func seedUser(t *testing.T, st *store.Store, name, role string) (*models.User, string) {
	t.Helper()

	hashed, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.MinCost)
	require.NoError(t, err)

	user := &models.User{
		Name:     name,
		Username: name,
		Email:    name + "@unilink.edu",
		Password: string(hashed),
		Role:     models.Role(role),
		UserType: models.UserTypeRegular,
	}
	require.NoError(t, st.Users.Create(context.Background(), user))

	token, err := lib.GenerateJWT(user.Id, testJWTSecret)
	require.NoError(t, err)
	return user, token
}

func doJSON(t *testing.T, app *fiber.App, method, path, token string, body interface{}) *http.Response {
	t.Helper()

	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(encoded)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func decodeBody(t *testing.T, resp *http.Response, dst interface{}) {
	t.Helper()
	defer resp.Body.Close()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(dst))
}
