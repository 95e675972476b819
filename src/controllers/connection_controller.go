package controllers

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/unilink-app/unilink-backend/src/emails"
	"github.com/unilink-app/unilink-backend/src/lib"
	"github.com/unilink-app/unilink-backend/src/middleware"
	"github.com/unilink-app/unilink-backend/src/models"
	"github.com/unilink-app/unilink-backend/src/store"
	"github.com/unilink-app/unilink-backend/src/ws"
)

type ConnectionController struct {
	Connections   store.ConnectionStore
	Users         store.UserStore
	Notifications store.NotificationStore
	Mail          emails.Sender
	Hub           *ws.Hub
	Log           zerolog.Logger
	ClientURL     string
}

// SendConnectionRequest sends a connection request from the authenticated
// user to another user. A pending request in either direction blocks a new
// one, so the pair can hold at most one live request.
func (cc *ConnectionController) SendConnectionRequest(c *fiber.Ctx) error {
	targetUserID, err := primitive.ObjectIDFromHex(c.Params("userId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(lib.MessageResponse("Invalid user ID format"))
	}

	user := middleware.CurrentUser(c)

	if user.Id == targetUserID {
		return c.Status(fiber.StatusBadRequest).JSON(lib.MessageResponse("You can't send a connection request to yourself"))
	}

	if user.IsConnectedTo(targetUserID) {
		return c.Status(fiber.StatusBadRequest).JSON(lib.MessageResponse("You are already connected with this user"))
	}

	if _, err := cc.Users.GetByID(c.Context(), targetUserID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(lib.MessageResponse("User not found"))
		}
		cc.Log.Error().Err(err).Msg("failed to load target user")
		return c.Status(fiber.StatusInternalServerError).JSON(lib.MessageResponse("Server error"))
	}

	_, err = cc.Connections.FindPendingBetween(c.Context(), user.Id, targetUserID)
	if err == nil {
		return c.Status(fiber.StatusBadRequest).JSON(lib.MessageResponse("A connection request already exists"))
	}
	if !errors.Is(err, store.ErrNotFound) {
		cc.Log.Error().Err(err).Msg("failed to check existing connection request")
		return c.Status(fiber.StatusInternalServerError).JSON(lib.MessageResponse("Server error"))
	}

	newRequest := models.Connection{
		Sender:    user.Id,
		Recipient: targetUserID,
		Status:    models.ConnectionStatusPending,
	}
	if err := cc.Connections.Create(c.Context(), &newRequest); err != nil {
		cc.Log.Error().Err(err).Msg("failed to create connection request")
		return c.Status(fiber.StatusInternalServerError).JSON(lib.MessageResponse("Failed to send connection request"))
	}

	return c.Status(fiber.StatusCreated).JSON(lib.MessageResponse("Connection request sent successfully"))
}

// AcceptConnectionRequest accepts a pending connection request, links both
// users and notifies the sender.
func (cc *ConnectionController) AcceptConnectionRequest(c *fiber.Ctx) error {
	requestID, err := primitive.ObjectIDFromHex(c.Params("requestId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(lib.MessageResponse("Invalid request ID format"))
	}

	user := middleware.CurrentUser(c)

	request, err := cc.Connections.GetByID(c.Context(), requestID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(lib.MessageResponse("Connection request not found"))
		}
		cc.Log.Error().Err(err).Msg("failed to load connection request")
		return c.Status(fiber.StatusInternalServerError).JSON(lib.MessageResponse("Server error"))
	}

	if request.Recipient != user.Id {
		return c.Status(fiber.StatusForbidden).JSON(lib.MessageResponse("Not authorized to accept this request"))
	}
	if request.Status != models.ConnectionStatusPending {
		return c.Status(fiber.StatusBadRequest).JSON(lib.MessageResponse("This request has already been processed"))
	}

	if err := cc.Connections.UpdateStatus(c.Context(), requestID, models.ConnectionStatusAccepted); err != nil {
		cc.Log.Error().Err(err).Msg("failed to update connection request")
		return c.Status(fiber.StatusInternalServerError).JSON(lib.MessageResponse("Failed to accept connection request"))
	}

	// Not transactional: roll the request back if either side fails.
	if err := cc.Users.AddConnection(c.Context(), request.Sender, user.Id); err != nil {
		cc.Log.Error().Err(err).Msg("failed to update sender connections")
		cc.Connections.UpdateStatus(c.Context(), requestID, models.ConnectionStatusPending)
		return c.Status(fiber.StatusInternalServerError).JSON(lib.MessageResponse("Failed to update connections"))
	}
	if err := cc.Users.AddConnection(c.Context(), user.Id, request.Sender); err != nil {
		cc.Log.Error().Err(err).Msg("failed to update recipient connections")
		cc.Users.RemoveConnection(c.Context(), request.Sender, user.Id)
		cc.Connections.UpdateStatus(c.Context(), requestID, models.ConnectionStatusPending)
		return c.Status(fiber.StatusInternalServerError).JSON(lib.MessageResponse("Failed to update connections"))
	}

	notification := models.Notification{
		Recipient:   request.Sender,
		Type:        models.NotificationTypeConnectionAccepted,
		RelatedUser: user.Id,
	}
	if err := cc.Notifications.Create(c.Context(), &notification); err != nil {
		// The notification is not critical, keep going.
		cc.Log.Error().Err(err).Msg("failed to create notification")
	} else if cc.Hub != nil {
		cc.Hub.SendToUser(request.Sender, "notification", notification)
	}

	if cc.Mail != nil {
		if sender, err := cc.Users.GetByID(c.Context(), request.Sender); err == nil {
			profileURL := cc.ClientURL + "/profile/" + user.Username
			go func(email, senderName, recipientName string) {
				subject, body := emails.ConnectionAcceptedEmail(senderName, recipientName, profileURL)
				if err := cc.Mail.SendHTML(email, subject, body); err != nil {
					cc.Log.Error().Err(err).Msg("failed to send connection accepted email")
				}
			}(sender.Email, sender.Name, user.Name)
		}
	}

	return c.JSON(lib.MessageResponse("Connection accepted successfully"))
}

// RejectConnectionRequest rejects a pending connection request.
func (cc *ConnectionController) RejectConnectionRequest(c *fiber.Ctx) error {
	requestID, err := primitive.ObjectIDFromHex(c.Params("requestId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(lib.MessageResponse("Invalid request ID format"))
	}

	user := middleware.CurrentUser(c)

	request, err := cc.Connections.GetByID(c.Context(), requestID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(lib.MessageResponse("Connection request not found"))
		}
		cc.Log.Error().Err(err).Msg("failed to load connection request")
		return c.Status(fiber.StatusInternalServerError).JSON(lib.MessageResponse("Server error"))
	}

	if request.Recipient != user.Id {
		return c.Status(fiber.StatusForbidden).JSON(lib.MessageResponse("Not authorized to reject this request"))
	}
	if request.Status != models.ConnectionStatusPending {
		return c.Status(fiber.StatusBadRequest).JSON(lib.MessageResponse("This request has already been processed"))
	}

	if err := cc.Connections.UpdateStatus(c.Context(), requestID, models.ConnectionStatusRejected); err != nil {
		cc.Log.Error().Err(err).Msg("failed to reject connection request")
		return c.Status(fiber.StatusInternalServerError).JSON(lib.MessageResponse("Failed to reject connection request"))
	}

	return c.JSON(lib.MessageResponse("Connection request rejected"))
}

// connectionRequestResponse is a pending request with its sender populated.
type connectionRequestResponse struct {
	ID        primitive.ObjectID      `json:"_id"`
	Sender    models.UserDto          `json:"sender"`
	Recipient primitive.ObjectID      `json:"recipient"`
	Status    models.ConnectionStatus `json:"status"`
	CreatedAt time.Time               `json:"createdAt"`
	UpdatedAt time.Time               `json:"updatedAt"`
}

// GetConnectionRequests returns all pending requests where the authenticated
// user is the recipient, newest first.
func (cc *ConnectionController) GetConnectionRequests(c *fiber.Ctx) error {
	user := middleware.CurrentUser(c)

	requests, err := cc.Connections.ListPendingForRecipient(c.Context(), user.Id)
	if err != nil {
		cc.Log.Error().Err(err).Msg("failed to list connection requests")
		return c.Status(fiber.StatusInternalServerError).JSON(lib.MessageResponse("Server error"))
	}

	response := make([]connectionRequestResponse, 0, len(requests))
	for _, req := range requests {
		item := connectionRequestResponse{
			ID:        req.Id,
			Recipient: req.Recipient,
			Status:    req.Status,
			CreatedAt: req.CreatedAt,
			UpdatedAt: req.UpdatedAt,
		}
		if sender, err := cc.Users.GetByID(c.Context(), req.Sender); err == nil {
			item.Sender = sender.Dto()
		}
		response = append(response, item)
	}

	return c.JSON(response)
}

// GetUserConnections returns all users connected to the authenticated user.
func (cc *ConnectionController) GetUserConnections(c *fiber.Ctx) error {
	user := middleware.CurrentUser(c)

	if len(user.Connections) == 0 {
		return c.JSON([]models.UserDto{})
	}

	connected, err := cc.Users.ListByIDs(c.Context(), user.Connections)
	if err != nil {
		cc.Log.Error().Err(err).Msg("failed to load connected users")
		return c.Status(fiber.StatusInternalServerError).JSON(lib.MessageResponse("Server error"))
	}

	response := make([]models.UserDto, 0, len(connected))
	for i := range connected {
		response = append(response, connected[i].Dto())
	}
	return c.JSON(response)
}

// RemoveConnection removes the connection between the authenticated user and
// another user, on both sides.
func (cc *ConnectionController) RemoveConnection(c *fiber.Ctx) error {
	targetUserID, err := primitive.ObjectIDFromHex(c.Params("userId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(lib.MessageResponse("Invalid user ID format"))
	}

	user := middleware.CurrentUser(c)

	if user.Id == targetUserID {
		return c.Status(fiber.StatusBadRequest).JSON(lib.MessageResponse("You cannot remove yourself as a connection"))
	}
	if !user.IsConnectedTo(targetUserID) {
		return c.Status(fiber.StatusBadRequest).JSON(lib.MessageResponse("Connection does not exist"))
	}

	if err := cc.Users.RemoveConnection(c.Context(), user.Id, targetUserID); err != nil {
		cc.Log.Error().Err(err).Msg("failed to remove connection from current user")
		return c.Status(fiber.StatusInternalServerError).JSON(lib.MessageResponse("Failed to remove connection"))
	}
	if err := cc.Users.RemoveConnection(c.Context(), targetUserID, user.Id); err != nil {
		cc.Log.Error().Err(err).Msg("failed to remove connection from target user")
		cc.Users.AddConnection(c.Context(), user.Id, targetUserID)
		return c.Status(fiber.StatusInternalServerError).JSON(lib.MessageResponse("Failed to remove connection completely"))
	}

	return c.JSON(lib.MessageResponse("Connection removed successfully"))
}

// GetConnectionStatus returns the relation between the authenticated user and
// another user: connected, pending, received or not_connected.
func (cc *ConnectionController) GetConnectionStatus(c *fiber.Ctx) error {
	targetUserID, err := primitive.ObjectIDFromHex(c.Params("userId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(lib.MessageResponse("Invalid user ID format"))
	}

	user := middleware.CurrentUser(c)

	if user.Id == targetUserID {
		return c.Status(fiber.StatusBadRequest).JSON(lib.MessageResponse("Cannot check connection status with yourself"))
	}

	if user.IsConnectedTo(targetUserID) {
		return c.JSON(fiber.Map{"status": "connected"})
	}

	pending, err := cc.Connections.FindPendingBetween(c.Context(), user.Id, targetUserID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return c.JSON(fiber.Map{"status": "not_connected"})
		}
		cc.Log.Error().Err(err).Msg("failed to check pending connection request")
		return c.Status(fiber.StatusInternalServerError).JSON(lib.MessageResponse("Server error"))
	}

	if pending.Sender == user.Id {
		return c.JSON(fiber.Map{"status": "pending"})
	}
	return c.JSON(fiber.Map{
		"status":    "received",
		"requestId": pending.Id,
	})
}
