// Package memstore is an in-memory implementation of the store interfaces.
// It backs the handler tests and mirrors the Mongo semantics, including the
// one-chat-per-pair guarantee, behind a single mutex.
package memstore

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/unilink-app/unilink-backend/src/models"
	"github.com/unilink-app/unilink-backend/src/store"
)

type memStore struct {
	mu sync.Mutex

	users         map[primitive.ObjectID]models.User
	connections   map[primitive.ObjectID]models.Connection
	notifications map[primitive.ObjectID]models.Notification
	chats         map[primitive.ObjectID]models.Chat
	chatsByPair   map[string]primitive.ObjectID
	messages      map[primitive.ObjectID]models.Message
	posts         map[primitive.ObjectID]models.Post
	events        map[primitive.ObjectID]models.Event
}

// New builds a store bundle where every interface shares one memStore.
func New() *store.Store {
	m := &memStore{
		users:         make(map[primitive.ObjectID]models.User),
		connections:   make(map[primitive.ObjectID]models.Connection),
		notifications: make(map[primitive.ObjectID]models.Notification),
		chats:         make(map[primitive.ObjectID]models.Chat),
		chatsByPair:   make(map[string]primitive.ObjectID),
		messages:      make(map[primitive.ObjectID]models.Message),
		posts:         make(map[primitive.ObjectID]models.Post),
		events:        make(map[primitive.ObjectID]models.Event),
	}
	return &store.Store{
		Users:         (*userStore)(m),
		Connections:   (*connectionStore)(m),
		Notifications: (*notificationStore)(m),
		Chats:         (*chatStore)(m),
		Messages:      (*messageStore)(m),
		Posts:         (*postStore)(m),
		Events:        (*eventStore)(m),
	}
}

// --- users ---

type userStore memStore

func (s *userStore) Create(_ context.Context, user *models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, existing := range s.users {
		if existing.Email == user.Email || existing.Username == user.Username {
			return store.ErrDuplicate
		}
	}

	now := time.Now()
	user.CreatedAt = now
	user.UpdatedAt = now
	if user.Id.IsZero() {
		user.Id = primitive.NewObjectID()
	}
	if user.Connections == nil {
		user.Connections = []primitive.ObjectID{}
	}

	s.users[user.Id] = *user
	return nil
}

func (s *userStore) GetByID(_ context.Context, id primitive.ObjectID) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	user, ok := s.users[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	return &user, nil
}

func (s *userStore) GetByEmail(_ context.Context, email string) (*models.User, error) {
	return s.findBy(func(u models.User) bool { return u.Email == email })
}

func (s *userStore) GetByUsername(_ context.Context, username string) (*models.User, error) {
	return s.findBy(func(u models.User) bool { return u.Username == username })
}

func (s *userStore) findBy(match func(models.User) bool) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, user := range s.users {
		if match(user) {
			u := user
			return &u, nil
		}
	}
	return nil, store.ErrNotFound
}

func (s *userStore) Save(_ context.Context, user *models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.users[user.Id]; !ok {
		return store.ErrNotFound
	}
	user.UpdatedAt = time.Now()
	s.users[user.Id] = *user
	return nil
}

func (s *userStore) AddConnection(_ context.Context, userID, otherID primitive.ObjectID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	user, ok := s.users[userID]
	if !ok {
		return store.ErrNotFound
	}
	for _, conn := range user.Connections {
		if conn == otherID {
			return nil
		}
	}
	user.Connections = append(user.Connections, otherID)
	s.users[userID] = user
	return nil
}

func (s *userStore) RemoveConnection(_ context.Context, userID, otherID primitive.ObjectID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	user, ok := s.users[userID]
	if !ok {
		return store.ErrNotFound
	}
	for i, conn := range user.Connections {
		if conn == otherID {
			user.Connections = append(user.Connections[:i], user.Connections[i+1:]...)
			break
		}
	}
	s.users[userID] = user
	return nil
}

func (s *userStore) ListByIDs(_ context.Context, ids []primitive.ObjectID) ([]models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var users []models.User
	for _, id := range ids {
		if user, ok := s.users[id]; ok {
			users = append(users, user)
		}
	}
	return users, nil
}

func (s *userStore) ListSuggestions(_ context.Context, selfID primitive.ObjectID, exclude []primitive.ObjectID, limit int64) ([]models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	excluded := map[primitive.ObjectID]bool{selfID: true}
	for _, id := range exclude {
		excluded[id] = true
	}

	var users []models.User
	for _, user := range s.users {
		if !excluded[user.Id] {
			users = append(users, user)
		}
	}
	sortUsersByCreated(users)
	if int64(len(users)) > limit {
		users = users[:limit]
	}
	return users, nil
}

func (s *userStore) SearchByUsernamePrefix(_ context.Context, prefix string) ([]models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var users []models.User
	for _, user := range s.users {
		if strings.HasPrefix(strings.ToLower(user.Username), strings.ToLower(prefix)) {
			users = append(users, user)
		}
	}
	sortUsersByCreated(users)
	return users, nil
}

func (s *userStore) ListByRole(_ context.Context, role models.Role) ([]models.User, error) {
	return s.listBy(func(u models.User) bool { return u.Role == role })
}

func (s *userStore) ListWithCertifications(_ context.Context) ([]models.User, error) {
	return s.listBy(func(u models.User) bool { return len(u.Certifications) > 0 })
}

func (s *userStore) ListWithSkills(_ context.Context) ([]models.User, error) {
	return s.listBy(func(u models.User) bool { return len(u.Skills) > 0 })
}

func (s *userStore) listBy(match func(models.User) bool) ([]models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var users []models.User
	for _, user := range s.users {
		if match(user) {
			users = append(users, user)
		}
	}
	sortUsersByCreated(users)
	return users, nil
}

func sortUsersByCreated(users []models.User) {
	sort.SliceStable(users, func(i, j int) bool {
		return users[i].CreatedAt.After(users[j].CreatedAt)
	})
}

// --- connection requests ---

type connectionStore memStore

func (s *connectionStore) Create(_ context.Context, conn *models.Connection) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()
	conn.CreatedAt = now
	conn.UpdatedAt = now
	if conn.Id.IsZero() {
		conn.Id = primitive.NewObjectID()
	}
	s.connections[conn.Id] = *conn
	return nil
}

func (s *connectionStore) GetByID(_ context.Context, id primitive.ObjectID) (*models.Connection, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	conn, ok := s.connections[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	return &conn, nil
}

func (s *connectionStore) FindPendingBetween(_ context.Context, a, b primitive.ObjectID) (*models.Connection, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, conn := range s.connections {
		if conn.Status != models.ConnectionStatusPending {
			continue
		}
		if (conn.Sender == a && conn.Recipient == b) || (conn.Sender == b && conn.Recipient == a) {
			c := conn
			return &c, nil
		}
	}
	return nil, store.ErrNotFound
}

func (s *connectionStore) ListInvolving(_ context.Context, userID primitive.ObjectID) ([]models.Connection, error) {
	return s.listBy(func(c models.Connection) bool {
		return c.Sender == userID || c.Recipient == userID
	})
}

func (s *connectionStore) ListPendingForRecipient(_ context.Context, userID primitive.ObjectID) ([]models.Connection, error) {
	return s.listBy(func(c models.Connection) bool {
		return c.Recipient == userID && c.Status == models.ConnectionStatusPending
	})
}

func (s *connectionStore) listBy(match func(models.Connection) bool) ([]models.Connection, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var connections []models.Connection
	for _, conn := range s.connections {
		if match(conn) {
			connections = append(connections, conn)
		}
	}
	sort.SliceStable(connections, func(i, j int) bool {
		return connections[i].CreatedAt.After(connections[j].CreatedAt)
	})
	return connections, nil
}

func (s *connectionStore) UpdateStatus(_ context.Context, id primitive.ObjectID, status models.ConnectionStatus) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	conn, ok := s.connections[id]
	if !ok {
		return store.ErrNotFound
	}
	conn.Status = status
	conn.UpdatedAt = time.Now()
	s.connections[id] = conn
	return nil
}

// --- notifications ---

type notificationStore memStore

func (s *notificationStore) Create(_ context.Context, notification *models.Notification) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()
	notification.CreatedAt = now
	notification.UpdatedAt = now
	if notification.Id.IsZero() {
		notification.Id = primitive.NewObjectID()
	}
	s.notifications[notification.Id] = *notification
	return nil
}

func (s *notificationStore) ListForRecipient(_ context.Context, userID primitive.ObjectID) ([]models.Notification, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var notifications []models.Notification
	for _, n := range s.notifications {
		if n.Recipient == userID {
			notifications = append(notifications, n)
		}
	}
	sort.SliceStable(notifications, func(i, j int) bool {
		return notifications[i].CreatedAt.After(notifications[j].CreatedAt)
	})
	return notifications, nil
}

func (s *notificationStore) MarkRead(_ context.Context, id, recipient primitive.ObjectID) (*models.Notification, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	notification, ok := s.notifications[id]
	if !ok || notification.Recipient != recipient {
		return nil, store.ErrNotFound
	}
	notification.Read = true
	notification.UpdatedAt = time.Now()
	s.notifications[id] = notification
	return &notification, nil
}

func (s *notificationStore) Delete(_ context.Context, id, recipient primitive.ObjectID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	notification, ok := s.notifications[id]
	if !ok || notification.Recipient != recipient {
		return store.ErrNotFound
	}
	delete(s.notifications, id)
	return nil
}

// --- chats ---

type chatStore memStore

func (s *chatStore) GetOrCreate(_ context.Context, a, b primitive.ObjectID) (*models.Chat, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	pairKey := models.ChatPairKey(a, b)
	if id, ok := s.chatsByPair[pairKey]; ok {
		chat := s.chats[id]
		return &chat, false, nil
	}

	now := time.Now()
	chat := models.Chat{
		Id:           primitive.NewObjectID(),
		Participants: []primitive.ObjectID{a, b},
		PairKey:      pairKey,
		UnreadCount:  map[string]int{},
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	s.chats[chat.Id] = chat
	s.chatsByPair[pairKey] = chat.Id
	return &chat, true, nil
}

func (s *chatStore) GetByID(_ context.Context, id primitive.ObjectID) (*models.Chat, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	chat, ok := s.chats[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	return &chat, nil
}

func (s *chatStore) ListForUser(_ context.Context, userID primitive.ObjectID) ([]models.Chat, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var chats []models.Chat
	for _, chat := range s.chats {
		if chat.HasParticipant(userID) {
			chats = append(chats, chat)
		}
	}
	sort.SliceStable(chats, func(i, j int) bool {
		return chats[i].UpdatedAt.After(chats[j].UpdatedAt)
	})
	return chats, nil
}

func (s *chatStore) SetLatestMessage(_ context.Context, chatID, messageID primitive.ObjectID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	chat, ok := s.chats[chatID]
	if !ok {
		return store.ErrNotFound
	}
	chat.LatestMessage = messageID
	chat.UpdatedAt = time.Now()
	s.chats[chatID] = chat
	return nil
}

func (s *chatStore) IncrementUnread(_ context.Context, chatID primitive.ObjectID, userIDs []primitive.ObjectID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	chat, ok := s.chats[chatID]
	if !ok {
		return store.ErrNotFound
	}
	if chat.UnreadCount == nil {
		chat.UnreadCount = map[string]int{}
	}
	for _, id := range userIDs {
		chat.UnreadCount[id.Hex()]++
	}
	s.chats[chatID] = chat
	return nil
}

func (s *chatStore) ResetUnread(_ context.Context, chatID, userID primitive.ObjectID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	chat, ok := s.chats[chatID]
	if !ok {
		return store.ErrNotFound
	}
	if chat.UnreadCount == nil {
		chat.UnreadCount = map[string]int{}
	}
	chat.UnreadCount[userID.Hex()] = 0
	s.chats[chatID] = chat
	return nil
}

// --- messages ---

type messageStore memStore

func (s *messageStore) Create(_ context.Context, message *models.Message) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()
	message.CreatedAt = now
	message.UpdatedAt = now
	if message.Id.IsZero() {
		message.Id = primitive.NewObjectID()
	}
	if message.Attachments == nil {
		message.Attachments = []string{}
	}
	s.messages[message.Id] = *message
	return nil
}

func (s *messageStore) GetByID(_ context.Context, id primitive.ObjectID) (*models.Message, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	message, ok := s.messages[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	return &message, nil
}

func (s *messageStore) ListByChat(_ context.Context, chatID primitive.ObjectID) ([]models.Message, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var messages []models.Message
	for _, message := range s.messages {
		if message.Chat == chatID {
			messages = append(messages, message)
		}
	}
	sort.SliceStable(messages, func(i, j int) bool {
		return messages[i].CreatedAt.Before(messages[j].CreatedAt)
	})
	return messages, nil
}

func (s *messageStore) MarkChatRead(_ context.Context, chatID, userID primitive.ObjectID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for id, message := range s.messages {
		if message.Chat != chatID || message.ReadByUser(userID) {
			continue
		}
		message.ReadBy = append(message.ReadBy, userID)
		s.messages[id] = message
	}
	return nil
}

// --- posts ---

type postStore memStore

func (s *postStore) Create(_ context.Context, post *models.Post) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()
	post.CreatedAt = now
	post.UpdatedAt = now
	if post.Id.IsZero() {
		post.Id = primitive.NewObjectID()
	}
	if post.Likes == nil {
		post.Likes = []primitive.ObjectID{}
	}
	if post.Comments == nil {
		post.Comments = []models.Comment{}
	}
	s.posts[post.Id] = *post
	return nil
}

func (s *postStore) GetByID(_ context.Context, id primitive.ObjectID) (*models.Post, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	post, ok := s.posts[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	return &post, nil
}

func (s *postStore) Save(_ context.Context, post *models.Post) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.posts[post.Id]; !ok {
		return store.ErrNotFound
	}
	post.UpdatedAt = time.Now()
	s.posts[post.Id] = *post
	return nil
}

func (s *postStore) Delete(_ context.Context, id primitive.ObjectID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.posts[id]; !ok {
		return store.ErrNotFound
	}
	delete(s.posts, id)
	return nil
}

func (s *postStore) ListFeed(_ context.Context) ([]models.Post, error) {
	return s.listBy(func(models.Post) bool { return true })
}

func (s *postStore) ListByAuthor(_ context.Context, author primitive.ObjectID) ([]models.Post, error) {
	return s.listBy(func(p models.Post) bool { return p.Author == author })
}

func (s *postStore) CountSharedByAuthor(_ context.Context, author primitive.ObjectID) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var count int64
	for _, post := range s.posts {
		if post.Author == author && !post.SharedPost.IsZero() {
			count++
		}
	}
	return count, nil
}

func (s *postStore) listBy(match func(models.Post) bool) ([]models.Post, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var posts []models.Post
	for _, post := range s.posts {
		if match(post) {
			posts = append(posts, post)
		}
	}
	sort.SliceStable(posts, func(i, j int) bool {
		return posts[i].CreatedAt.After(posts[j].CreatedAt)
	})
	return posts, nil
}

// --- events ---

type eventStore memStore

func (s *eventStore) Create(_ context.Context, event *models.Event) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()
	event.CreatedAt = now
	event.UpdatedAt = now
	if event.Id.IsZero() {
		event.Id = primitive.NewObjectID()
	}
	if event.Likes == nil {
		event.Likes = []primitive.ObjectID{}
	}
	if event.Comments == nil {
		event.Comments = []models.Comment{}
	}
	if event.Shares == nil {
		event.Shares = []primitive.ObjectID{}
	}
	s.events[event.Id] = *event
	return nil
}

func (s *eventStore) GetByID(_ context.Context, id primitive.ObjectID) (*models.Event, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	event, ok := s.events[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	return &event, nil
}

func (s *eventStore) Save(_ context.Context, event *models.Event) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.events[event.Id]; !ok {
		return store.ErrNotFound
	}
	event.UpdatedAt = time.Now()
	s.events[event.Id] = *event
	return nil
}

func (s *eventStore) Delete(_ context.Context, id primitive.ObjectID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.events[id]; !ok {
		return store.ErrNotFound
	}
	delete(s.events, id)
	return nil
}

func (s *eventStore) List(_ context.Context) ([]models.Event, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var events []models.Event
	for _, event := range s.events {
		events = append(events, event)
	}
	sort.SliceStable(events, func(i, j int) bool {
		return events[i].CreatedAt.After(events[j].CreatedAt)
	})
	return events, nil
}

func (s *eventStore) Count(_ context.Context) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return int64(len(s.events)), nil
}

func (s *eventStore) CountByCreator(_ context.Context, creator primitive.ObjectID) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var count int64
	for _, event := range s.events {
		if event.CreatedBy == creator {
			count++
		}
	}
	return count, nil
}
