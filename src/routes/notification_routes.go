package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/unilink-app/unilink-backend/src/controllers"
)

// NotificationRoutes sets up the notification inbox routes.
func NotificationRoutes(app *fiber.App, nc *controllers.NotificationController, protect fiber.Handler) {
	notifications := app.Group("/api/notifications", protect)

	notifications.Get("/", nc.GetUserNotifications)
	notifications.Put("/:id/read", nc.MarkNotificationAsRead)
	notifications.Delete("/:id", nc.DeleteNotification)
}
