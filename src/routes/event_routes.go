package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/unilink-app/unilink-backend/src/controllers"
)

// EventRoutes sets up event listing, publishing and interaction routes.
func EventRoutes(app *fiber.App, ec *controllers.EventController, protect fiber.Handler) {
	events := app.Group("/api/events", protect)

	events.Get("/get-list", ec.GetAllEvents)
	events.Post("/create", ec.CreateEvent)
	events.Delete("/delete/:eventId", ec.DeleteEvent)
	events.Post("/:eventId/like", ec.LikeEvent)
	events.Post("/:eventId/comment", ec.CreateEventComment)
	events.Put("/:eventId/comment/:commentId", ec.UpdateEventComment)
	events.Post("/:eventId/share", ec.ShareEvent)
	events.Put("/:eventId", ec.UpdateEvent)
}
