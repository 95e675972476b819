package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/unilink-app/unilink-backend/src/controllers"
)

// ChatRoutes sets up chat access and listing plus the message routes.
func ChatRoutes(app *fiber.App, cc *controllers.ChatController, mc *controllers.MessageController, protect fiber.Handler) {
	chat := app.Group("/api/chat", protect)
	chat.Post("/get-access", cc.AccessChat)
	chat.Get("/get-messages", cc.FetchChats)

	message := app.Group("/api/message", protect)
	message.Post("/send-message", mc.SendMessage)
	message.Get("/:chatId", mc.GetMessages)
}
