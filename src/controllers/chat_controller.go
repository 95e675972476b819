package controllers

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/unilink-app/unilink-backend/src/lib"
	"github.com/unilink-app/unilink-backend/src/middleware"
	"github.com/unilink-app/unilink-backend/src/models"
	"github.com/unilink-app/unilink-backend/src/store"
)

type ChatController struct {
	Chats    store.ChatStore
	Messages store.MessageStore
	Users    store.UserStore
	Log      zerolog.Logger
}

// chatResponse is a chat with participants populated and, when present, the
// latest message inlined.
type chatResponse struct {
	ID            primitive.ObjectID `json:"_id"`
	Participants  []models.UserDto   `json:"participants"`
	LatestMessage *models.Message    `json:"latestMessage,omitempty"`
	UnreadCount   map[string]int     `json:"unreadCount"`
	HasUnread     bool               `json:"hasUnread"`
	CreatedAt     time.Time          `json:"createdAt"`
	UpdatedAt     time.Time          `json:"updatedAt"`
}

func (cc *ChatController) buildChatResponse(c *fiber.Ctx, chat *models.Chat, viewer primitive.ObjectID) chatResponse {
	resp := chatResponse{
		ID:          chat.Id,
		UnreadCount: chat.UnreadCount,
		CreatedAt:   chat.CreatedAt,
		UpdatedAt:   chat.UpdatedAt,
	}
	if resp.UnreadCount == nil {
		resp.UnreadCount = map[string]int{}
	}

	if participants, err := cc.Users.ListByIDs(c.Context(), chat.Participants); err == nil {
		resp.Participants = make([]models.UserDto, 0, len(participants))
		for i := range participants {
			resp.Participants = append(resp.Participants, participants[i].Dto())
		}
	}

	if !chat.LatestMessage.IsZero() {
		if latest, err := cc.Messages.GetByID(c.Context(), chat.LatestMessage); err == nil {
			resp.LatestMessage = latest
			// Unread when somebody else sent the latest message and the
			// viewer's read receipt is missing.
			resp.HasUnread = latest.Sender != viewer && !latest.ReadByUser(viewer)
		}
	}

	return resp
}

type accessChatRequest struct {
	UserID string `json:"userId" validate:"required"`
}

// AccessChat returns the one-to-one chat between the authenticated user and
// the given user, creating it on first contact. Creation responds 201, reuse
// responds 200. Concurrent first contact collapses onto a single chat.
func (cc *ChatController) AccessChat(c *fiber.Ctx) error {
	var req accessChatRequest
	if err := parseAndValidate(c, &req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(lib.MessageResponse("userId is required"))
	}

	otherID, err := primitive.ObjectIDFromHex(req.UserID)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(lib.MessageResponse("Invalid user ID format"))
	}

	user := middleware.CurrentUser(c)
	if otherID == user.Id {
		return c.Status(fiber.StatusBadRequest).JSON(lib.MessageResponse("Cannot open a chat with yourself"))
	}

	if _, err := cc.Users.GetByID(c.Context(), otherID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(lib.MessageResponse("User not found"))
		}
		cc.Log.Error().Err(err).Msg("failed to load chat partner")
		return c.Status(fiber.StatusInternalServerError).JSON(lib.MessageResponse("Server error"))
	}

	chat, created, err := cc.Chats.GetOrCreate(c.Context(), user.Id, otherID)
	if err != nil {
		cc.Log.Error().Err(err).Msg("failed to access chat")
		return c.Status(fiber.StatusInternalServerError).JSON(lib.MessageResponse("Server error"))
	}

	status := fiber.StatusOK
	if created {
		status = fiber.StatusCreated
	}
	return c.Status(status).JSON(cc.buildChatResponse(c, chat, user.Id))
}

// FetchChats lists the user's chats, most recently active first, each flagged
// with whether it holds messages the user has not read.
func (cc *ChatController) FetchChats(c *fiber.Ctx) error {
	user := middleware.CurrentUser(c)

	chats, err := cc.Chats.ListForUser(c.Context(), user.Id)
	if err != nil {
		cc.Log.Error().Err(err).Msg("failed to list chats")
		return c.Status(fiber.StatusInternalServerError).JSON(lib.MessageResponse("Server error"))
	}

	response := make([]chatResponse, 0, len(chats))
	for i := range chats {
		response = append(response, cc.buildChatResponse(c, &chats[i], user.Id))
	}
	return c.JSON(response)
}
