package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/unilink-app/unilink-backend/src/controllers"
)

// AuthRoutes sets up registration, login, logout and the current-user lookup.
func AuthRoutes(app *fiber.App, ac *controllers.AuthController, protect fiber.Handler) {
	app.Post("/register", ac.Signup)
	app.Post("/login", ac.Login)
	app.Post("/logout", ac.Logout)
	app.Get("/me", protect, ac.GetCurrentUser)
}
