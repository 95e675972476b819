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
	"github.com/unilink-app/unilink-backend/src/ws"
)

type EventController struct {
	Events        store.EventStore
	Users         store.UserStore
	Notifications store.NotificationStore
	Hub           *ws.Hub
	Log           zerolog.Logger
}

// GetAllEvents lists every event with its creator populated.
func (ec *EventController) GetAllEvents(c *fiber.Ctx) error {
	events, err := ec.Events.List(c.Context())
	if err != nil {
		ec.Log.Error().Err(err).Msg("failed to list events")
		return c.Status(fiber.StatusInternalServerError).JSON(lib.MessageResponse("Server error"))
	}

	type eventWithCreator struct {
		models.Event
		Creator *models.UserDto `json:"creator,omitempty"`
	}

	response := make([]eventWithCreator, 0, len(events))
	for i := range events {
		item := eventWithCreator{Event: events[i]}
		if creator, err := ec.Users.GetByID(c.Context(), events[i].CreatedBy); err == nil {
			dto := creator.Dto()
			item.Creator = &dto
		}
		response = append(response, item)
	}
	return c.JSON(response)
}

type createEventRequest struct {
	Title       string    `json:"title" validate:"required"`
	Description string    `json:"description"`
	Image       string    `json:"image"`
	Date        time.Time `json:"date" validate:"required"`
	Location    string    `json:"location"`
}

// CreateEvent publishes a new event. Any authenticated user can create one;
// the creator's role is stamped on the event.
func (ec *EventController) CreateEvent(c *fiber.Ctx) error {
	var req createEventRequest
	if err := parseAndValidate(c, &req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(lib.MessageResponse("Title and date are required"))
	}

	user := middleware.CurrentUser(c)

	event := models.Event{
		Title:         req.Title,
		Description:   req.Description,
		Image:         req.Image,
		Date:          req.Date,
		Location:      req.Location,
		CreatedBy:     user.Id,
		CreatedByRole: user.Role,
		Likes:         []primitive.ObjectID{},
		Comments:      []models.Comment{},
		Shares:        []primitive.ObjectID{},
	}
	if err := ec.Events.Create(c.Context(), &event); err != nil {
		ec.Log.Error().Err(err).Msg("failed to create event")
		return c.Status(fiber.StatusInternalServerError).JSON(lib.MessageResponse("Failed to create event"))
	}

	return c.Status(fiber.StatusCreated).JSON(event)
}

type updateEventRequest struct {
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Image       string     `json:"image"`
	Date        *time.Time `json:"date"`
	Location    string     `json:"location"`
}

// UpdateEvent edits an event. Only the creator or an admin may do so.
func (ec *EventController) UpdateEvent(c *fiber.Ctx) error {
	eventID, err := primitive.ObjectIDFromHex(c.Params("eventId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(lib.MessageResponse("Invalid event ID format"))
	}

	var req updateEventRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(lib.MessageResponse("Invalid request body"))
	}

	user := middleware.CurrentUser(c)

	event, err := ec.Events.GetByID(c.Context(), eventID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(lib.MessageResponse("Event not found"))
		}
		ec.Log.Error().Err(err).Msg("failed to load event")
		return c.Status(fiber.StatusInternalServerError).JSON(lib.MessageResponse("Server error"))
	}

	if event.CreatedBy != user.Id && user.Role != models.RoleAdmin {
		return c.Status(fiber.StatusForbidden).JSON(lib.MessageResponse("Not authorized to update this event"))
	}

	if req.Title != "" {
		event.Title = req.Title
	}
	if req.Description != "" {
		event.Description = req.Description
	}
	if req.Image != "" {
		event.Image = req.Image
	}
	if req.Date != nil {
		event.Date = *req.Date
	}
	if req.Location != "" {
		event.Location = req.Location
	}

	if err := ec.Events.Save(c.Context(), event); err != nil {
		ec.Log.Error().Err(err).Msg("failed to save event update")
		return c.Status(fiber.StatusInternalServerError).JSON(lib.MessageResponse("Server error"))
	}
	return c.JSON(event)
}

// DeleteEvent removes an event. Only the creator or an admin may do so.
func (ec *EventController) DeleteEvent(c *fiber.Ctx) error {
	eventID, err := primitive.ObjectIDFromHex(c.Params("eventId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(lib.MessageResponse("Invalid event ID format"))
	}

	user := middleware.CurrentUser(c)

	event, err := ec.Events.GetByID(c.Context(), eventID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(lib.MessageResponse("Event not found"))
		}
		ec.Log.Error().Err(err).Msg("failed to load event")
		return c.Status(fiber.StatusInternalServerError).JSON(lib.MessageResponse("Server error"))
	}

	if event.CreatedBy != user.Id && user.Role != models.RoleAdmin {
		return c.Status(fiber.StatusForbidden).JSON(lib.MessageResponse("Not authorized to delete this event"))
	}

	if err := ec.Events.Delete(c.Context(), eventID); err != nil {
		ec.Log.Error().Err(err).Msg("failed to delete event")
		return c.Status(fiber.StatusInternalServerError).JSON(lib.MessageResponse("Server error"))
	}
	return c.JSON(lib.MessageResponse("Event deleted successfully"))
}

// LikeEvent toggles the user's like on an event. A fresh like on somebody
// else's event notifies the creator.
func (ec *EventController) LikeEvent(c *fiber.Ctx) error {
	eventID, err := primitive.ObjectIDFromHex(c.Params("eventId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(lib.MessageResponse("Invalid event ID format"))
	}

	user := middleware.CurrentUser(c)

	event, err := ec.Events.GetByID(c.Context(), eventID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(lib.MessageResponse("Event not found"))
		}
		ec.Log.Error().Err(err).Msg("failed to load event")
		return c.Status(fiber.StatusInternalServerError).JSON(lib.MessageResponse("Server error"))
	}

	liked := event.ToggleLike(user.Id)
	if err := ec.Events.Save(c.Context(), event); err != nil {
		ec.Log.Error().Err(err).Msg("failed to save event like")
		return c.Status(fiber.StatusInternalServerError).JSON(lib.MessageResponse("Server error"))
	}

	if liked && event.CreatedBy != user.Id {
		notification := models.Notification{
			Recipient:    event.CreatedBy,
			Type:         models.NotificationTypeEventLike,
			RelatedUser:  user.Id,
			RelatedEvent: event.Id,
		}
		if err := ec.Notifications.Create(c.Context(), &notification); err != nil {
			ec.Log.Error().Err(err).Msg("failed to create event like notification")
		} else if ec.Hub != nil {
			ec.Hub.SendToUser(event.CreatedBy, "notification", notification)
		}
	}

	return c.JSON(event)
}

type eventCommentRequest struct {
	Content string `json:"content" validate:"required"`
}

// CreateEventComment appends a comment to an event and notifies the creator,
// unless they commented on their own event.
func (ec *EventController) CreateEventComment(c *fiber.Ctx) error {
	eventID, err := primitive.ObjectIDFromHex(c.Params("eventId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(lib.MessageResponse("Invalid event ID format"))
	}

	var req eventCommentRequest
	if err := parseAndValidate(c, &req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(lib.MessageResponse("Comment content is required"))
	}

	user := middleware.CurrentUser(c)

	event, err := ec.Events.GetByID(c.Context(), eventID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(lib.MessageResponse("Event not found"))
		}
		ec.Log.Error().Err(err).Msg("failed to load event")
		return c.Status(fiber.StatusInternalServerError).JSON(lib.MessageResponse("Server error"))
	}

	event.Comments = append(event.Comments, models.Comment{
		Id:        primitive.NewObjectID(),
		User:      user.Id,
		Content:   req.Content,
		CreatedAt: time.Now().UTC(),
	})
	if err := ec.Events.Save(c.Context(), event); err != nil {
		ec.Log.Error().Err(err).Msg("failed to save event comment")
		return c.Status(fiber.StatusInternalServerError).JSON(lib.MessageResponse("Server error"))
	}

	if event.CreatedBy != user.Id {
		notification := models.Notification{
			Recipient:    event.CreatedBy,
			Type:         models.NotificationTypeEventComment,
			RelatedUser:  user.Id,
			RelatedEvent: event.Id,
		}
		if err := ec.Notifications.Create(c.Context(), &notification); err != nil {
			ec.Log.Error().Err(err).Msg("failed to create event comment notification")
		} else if ec.Hub != nil {
			ec.Hub.SendToUser(event.CreatedBy, "notification", notification)
		}
	}

	return c.JSON(event)
}

// UpdateEventComment edits an event comment. Only the comment's owner may
// edit it.
func (ec *EventController) UpdateEventComment(c *fiber.Ctx) error {
	eventID, err := primitive.ObjectIDFromHex(c.Params("eventId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(lib.MessageResponse("Invalid event ID format"))
	}
	commentID, err := primitive.ObjectIDFromHex(c.Params("commentId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(lib.MessageResponse("Invalid comment ID format"))
	}

	var req eventCommentRequest
	if err := parseAndValidate(c, &req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(lib.MessageResponse("Comment content is required"))
	}

	user := middleware.CurrentUser(c)

	event, err := ec.Events.GetByID(c.Context(), eventID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(lib.MessageResponse("Event not found"))
		}
		ec.Log.Error().Err(err).Msg("failed to load event")
		return c.Status(fiber.StatusInternalServerError).JSON(lib.MessageResponse("Server error"))
	}

	found := false
	for i := range event.Comments {
		if event.Comments[i].Id != commentID {
			continue
		}
		if event.Comments[i].User != user.Id {
			return c.Status(fiber.StatusForbidden).JSON(lib.MessageResponse("You are not authorized to edit this comment"))
		}
		event.Comments[i].Content = req.Content
		found = true
		break
	}
	if !found {
		return c.Status(fiber.StatusNotFound).JSON(lib.MessageResponse("Comment not found"))
	}

	if err := ec.Events.Save(c.Context(), event); err != nil {
		ec.Log.Error().Err(err).Msg("failed to save event comment update")
		return c.Status(fiber.StatusInternalServerError).JSON(lib.MessageResponse("Server error"))
	}
	return c.JSON(fiber.Map{"message": "Comment updated successfully", "event": event})
}

type shareEventRequest struct {
	Content string `json:"content"`
}

// ShareEvent clones an event under the sharing user with a reference back to
// the original, and records the share on the original.
func (ec *EventController) ShareEvent(c *fiber.Ctx) error {
	eventID, err := primitive.ObjectIDFromHex(c.Params("eventId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(lib.MessageResponse("Invalid event ID format"))
	}

	// The body is optional; sharing without a new description is fine.
	var req shareEventRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(lib.MessageResponse("Invalid request body"))
		}
	}

	user := middleware.CurrentUser(c)

	original, err := ec.Events.GetByID(c.Context(), eventID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(lib.MessageResponse("Original event not found"))
		}
		ec.Log.Error().Err(err).Msg("failed to load event")
		return c.Status(fiber.StatusInternalServerError).JSON(lib.MessageResponse("Server error"))
	}

	description := original.Description
	if req.Content != "" {
		description = req.Content
	}

	share := models.Event{
		Title:         original.Title,
		Description:   description,
		Image:         original.Image,
		Date:          original.Date,
		Location:      original.Location,
		CreatedBy:     user.Id,
		CreatedByRole: user.Role,
		Likes:         []primitive.ObjectID{},
		Comments:      []models.Comment{},
		Shares:        []primitive.ObjectID{},
		SharedEvent:   original.Id,
	}
	if err := ec.Events.Create(c.Context(), &share); err != nil {
		ec.Log.Error().Err(err).Msg("failed to share event")
		return c.Status(fiber.StatusInternalServerError).JSON(lib.MessageResponse("Failed to share event"))
	}

	original.Shares = append(original.Shares, user.Id)
	if err := ec.Events.Save(c.Context(), original); err != nil {
		ec.Log.Error().Err(err).Msg("failed to record share on original event")
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message":     "Event shared successfully",
		"sharedEvent": share,
	})
}
