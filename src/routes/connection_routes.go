package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/unilink-app/unilink-backend/src/controllers"
)

// ConnectionRoutes sets up connection-related routes for sending, accepting,
// rejecting requests, listing requests, getting connections, removing
// connections, and checking connection status.
func ConnectionRoutes(app *fiber.App, cc *controllers.ConnectionController, protect fiber.Handler) {
	connection := app.Group("/connections", protect)

	connection.Post("/request/:userId", cc.SendConnectionRequest)
	connection.Put("/accept/:requestId", cc.AcceptConnectionRequest)
	connection.Put("/reject/:requestId", cc.RejectConnectionRequest)
	connection.Get("/requests", cc.GetConnectionRequests)
	connection.Get("/", cc.GetUserConnections)
	connection.Delete("/:userId", cc.RemoveConnection)
	connection.Get("/status/:userId", cc.GetConnectionStatus)
}
