package controllers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/unilink-app/unilink-backend/src/lib"
	"github.com/unilink-app/unilink-backend/src/middleware"
	"github.com/unilink-app/unilink-backend/src/models"
	"github.com/unilink-app/unilink-backend/src/store"
	"github.com/unilink-app/unilink-backend/src/ws"
)

type MessageController struct {
	Chats    store.ChatStore
	Messages store.MessageStore
	Users    store.UserStore
	Hub      *ws.Hub
	Log      zerolog.Logger
}

type sendMessageRequest struct {
	ChatID      string             `json:"chatId" validate:"required"`
	Content     string             `json:"content"`
	Attachments []string           `json:"attachments"`
	MessageType models.MessageType `json:"messageType"`
}

// SendMessage appends a message to a chat the user belongs to, bumps unread
// counters for the other participants and relays the message to any of them
// who are online.
func (mc *MessageController) SendMessage(c *fiber.Ctx) error {
	var req sendMessageRequest
	if err := parseAndValidate(c, &req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(lib.MessageResponse("ChatId is required"))
	}
	if req.Content == "" && len(req.Attachments) == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(lib.MessageResponse("Message content is required"))
	}

	chatID, err := primitive.ObjectIDFromHex(req.ChatID)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(lib.MessageResponse("Invalid chat ID format"))
	}

	user := middleware.CurrentUser(c)

	chat, err := mc.Chats.GetByID(c.Context(), chatID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(lib.MessageResponse("Chat not found"))
		}
		mc.Log.Error().Err(err).Msg("failed to load chat")
		return c.Status(fiber.StatusInternalServerError).JSON(lib.MessageResponse("Server error"))
	}
	if !chat.HasParticipant(user.Id) {
		return c.Status(fiber.StatusForbidden).JSON(lib.MessageResponse("You are not authorized to send messages in this chat"))
	}

	messageType := req.MessageType
	if messageType == "" {
		messageType = models.MessageTypeText
	}

	message := models.Message{
		Sender:      user.Id,
		Chat:        chatID,
		Content:     req.Content,
		ReadBy:      []primitive.ObjectID{user.Id},
		Attachments: req.Attachments,
		MessageType: messageType,
	}
	if message.Attachments == nil {
		message.Attachments = []string{}
	}

	if err := mc.Messages.Create(c.Context(), &message); err != nil {
		mc.Log.Error().Err(err).Msg("failed to create message")
		return c.Status(fiber.StatusInternalServerError).JSON(lib.MessageResponse("Failed to send message"))
	}

	if err := mc.Chats.SetLatestMessage(c.Context(), chatID, message.Id); err != nil {
		mc.Log.Error().Err(err).Msg("failed to update latest message")
	}

	others := chat.OtherParticipants(user.Id)
	if len(others) > 0 {
		if err := mc.Chats.IncrementUnread(c.Context(), chatID, others); err != nil {
			mc.Log.Error().Err(err).Msg("failed to bump unread counters")
		}
	}

	if mc.Hub != nil {
		for _, other := range others {
			mc.Hub.SendToUser(other, "message", message)
		}
	}

	return c.JSON(message)
}

// GetMessages returns a chat's messages in conversation order and marks the
// chat read for the caller: their unread counter drops to zero and their read
// receipt lands on every message they had not seen.
func (mc *MessageController) GetMessages(c *fiber.Ctx) error {
	chatID, err := primitive.ObjectIDFromHex(c.Params("chatId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(lib.MessageResponse("Invalid chat ID format"))
	}

	user := middleware.CurrentUser(c)

	chat, err := mc.Chats.GetByID(c.Context(), chatID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(lib.MessageResponse("Chat not found"))
		}
		mc.Log.Error().Err(err).Msg("failed to load chat")
		return c.Status(fiber.StatusInternalServerError).JSON(lib.MessageResponse("Server error"))
	}
	if !chat.HasParticipant(user.Id) {
		return c.Status(fiber.StatusForbidden).JSON(lib.MessageResponse("Unauthorized access to this chat"))
	}

	messages, err := mc.Messages.ListByChat(c.Context(), chatID)
	if err != nil {
		mc.Log.Error().Err(err).Msg("failed to list messages")
		return c.Status(fiber.StatusInternalServerError).JSON(lib.MessageResponse("Server error"))
	}

	if err := mc.Chats.ResetUnread(c.Context(), chatID, user.Id); err != nil {
		mc.Log.Error().Err(err).Msg("failed to reset unread counter")
	}
	if err := mc.Messages.MarkChatRead(c.Context(), chatID, user.Id); err != nil {
		mc.Log.Error().Err(err).Msg("failed to mark messages read")
	}

	return c.JSON(messages)
}
