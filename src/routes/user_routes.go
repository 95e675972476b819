package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/unilink-app/unilink-backend/src/controllers"
)

// UserRoutes sets up profile, suggestion, search and profile sub-document
// routes. The public profile catch-all registers last so the fixed paths win.
func UserRoutes(app *fiber.App, uc *controllers.UserController, protect, protectUser fiber.Handler) {
	app.Get("/suggestions", protect, uc.GetSuggestedConnections)
	app.Put("/update-profile", protect, uc.UpdateProfile)
	app.Post("/search-users", protect, uc.SearchUsers)
	app.Post("/my-report", protectUser, uc.GetMyReport)

	app.Get("/skills", protect, uc.GetSkills)
	app.Post("/skills", protect, uc.AddSkill)
	app.Put("/skills", protect, uc.UpdateSkill)
	app.Delete("/skills", protect, uc.DeleteSkill)

	app.Post("/add-certification", protect, uc.AddCertification)
	app.Put("/update-certification", protect, uc.UpdateCertification)
	app.Delete("/delete-certification/:certId", protect, uc.DeleteCertification)

	app.Post("/add-experience", protect, uc.AddExperience)
	app.Put("/update-experience", protect, uc.UpdateExperience)

	app.Post("/add-education", protect, uc.AddEducation)
	app.Put("/update-education", protect, uc.UpdateEducation)

	app.Get("/:username", protect, uc.GetPublicProfile)
}
