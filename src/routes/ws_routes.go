package routes

import (
	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/unilink-app/unilink-backend/src/lib"
	"github.com/unilink-app/unilink-backend/src/store"
	"github.com/unilink-app/unilink-backend/src/ws"
)

const wsUserLocal = "wsUserID"

// WsRoutes sets up the realtime relay endpoint. Browsers cannot set headers
// on websocket upgrades, so the token travels as a query parameter.
func WsRoutes(app *fiber.App, hub *ws.Hub, users store.UserStore, jwtSecret string) {
	app.Use("/ws", func(c *fiber.Ctx) error {
		if !websocket.IsWebSocketUpgrade(c) {
			return fiber.ErrUpgradeRequired
		}

		token := c.Query("token")
		if token == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(lib.MessageResponse("Unauthorized - No token provided"))
		}
		userID, err := lib.VerifyJWT(token, jwtSecret)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(lib.MessageResponse("Unauthorized - Invalid token"))
		}
		if _, err := users.GetByID(c.Context(), userID); err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(lib.MessageResponse("User not found"))
		}

		c.Locals(wsUserLocal, userID)
		return c.Next()
	})

	app.Get("/ws", websocket.New(func(conn *websocket.Conn) {
		userID := conn.Locals(wsUserLocal).(primitive.ObjectID)
		ws.Serve(hub, conn, userID)
	}))
}
