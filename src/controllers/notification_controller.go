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

type NotificationController struct {
	Notifications store.NotificationStore
	Users         store.UserStore
	Posts         store.PostStore
	Log           zerolog.Logger
}

// notificationResponse is a notification with its related user and post
// populated for display.
type notificationResponse struct {
	ID           primitive.ObjectID      `json:"_id"`
	Type         models.NotificationType `json:"type"`
	RelatedUser  *models.UserDto         `json:"relatedUser,omitempty"`
	RelatedPost  *notificationPost       `json:"relatedPost,omitempty"`
	RelatedEvent primitive.ObjectID      `json:"relatedEvent,omitempty"`
	Read         bool                    `json:"read"`
	CreatedAt    time.Time               `json:"createdAt"`
}

type notificationPost struct {
	ID      primitive.ObjectID `json:"_id"`
	Content string             `json:"content"`
	Image   string             `json:"image"`
}

// GetUserNotifications returns the user's notifications, newest first, with
// the triggering user and post attached.
func (nc *NotificationController) GetUserNotifications(c *fiber.Ctx) error {
	user := middleware.CurrentUser(c)

	notifications, err := nc.Notifications.ListForRecipient(c.Context(), user.Id)
	if err != nil {
		nc.Log.Error().Err(err).Msg("failed to list notifications")
		return c.Status(fiber.StatusInternalServerError).JSON(lib.MessageResponse("Server error"))
	}

	response := make([]notificationResponse, 0, len(notifications))
	for _, n := range notifications {
		item := notificationResponse{
			ID:           n.Id,
			Type:         n.Type,
			RelatedEvent: n.RelatedEvent,
			Read:         n.Read,
			CreatedAt:    n.CreatedAt,
		}
		if !n.RelatedUser.IsZero() {
			if related, err := nc.Users.GetByID(c.Context(), n.RelatedUser); err == nil {
				dto := related.Dto()
				item.RelatedUser = &dto
			}
		}
		if !n.RelatedPost.IsZero() {
			if post, err := nc.Posts.GetByID(c.Context(), n.RelatedPost); err == nil {
				item.RelatedPost = &notificationPost{ID: post.Id, Content: post.Content, Image: post.Image}
			}
		}
		response = append(response, item)
	}

	return c.JSON(response)
}

// MarkNotificationAsRead marks one of the user's notifications as read.
// Notifications belonging to somebody else come back as not found.
func (nc *NotificationController) MarkNotificationAsRead(c *fiber.Ctx) error {
	notificationID, err := primitive.ObjectIDFromHex(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(lib.MessageResponse("Invalid notification ID format"))
	}

	user := middleware.CurrentUser(c)

	notification, err := nc.Notifications.MarkRead(c.Context(), notificationID, user.Id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(lib.MessageResponse("Notification not found"))
		}
		nc.Log.Error().Err(err).Msg("failed to mark notification as read")
		return c.Status(fiber.StatusInternalServerError).JSON(lib.MessageResponse("Server error"))
	}

	return c.JSON(notification)
}

// DeleteNotification deletes one of the user's notifications.
func (nc *NotificationController) DeleteNotification(c *fiber.Ctx) error {
	notificationID, err := primitive.ObjectIDFromHex(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(lib.MessageResponse("Invalid notification ID format"))
	}

	user := middleware.CurrentUser(c)

	if err := nc.Notifications.Delete(c.Context(), notificationID, user.Id); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(lib.MessageResponse("Notification not found"))
		}
		nc.Log.Error().Err(err).Msg("failed to delete notification")
		return c.Status(fiber.StatusInternalServerError).JSON(lib.MessageResponse("Server error"))
	}

	return c.JSON(lib.MessageResponse("Notification deleted successfully"))
}
