package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/unilink-app/unilink-backend/src/controllers"
)

// AdminRoutes sets up the back-office routes. Every route requires the admin
// role.
func AdminRoutes(app *fiber.App, ac *controllers.AdminController, protectAdmin fiber.Handler) {
	admin := app.Group("/admin", protectAdmin)

	admin.Get("/all-users", ac.GetAllUsers)
	admin.Get("/certifications/pending", ac.GetPendingCertifications)
	admin.Put("/certifications/approve/:userId/:certId", ac.ApproveCertification)
	admin.Put("/certifications/reject/:userId/:certId", ac.RejectCertification)
	admin.Get("/skills/pending", ac.GetUsersWithSkills)
	admin.Put("/skills/approve/:userId/:skillId", ac.ApproveSkill)
	admin.Put("/skills/reject/:userId/:skillId", ac.RejectSkill)
	admin.Get("/user-report/:userId", ac.GetUserReport)
	admin.Put("/assign-head/:userId", ac.AssignHeadUser)
}
