package controllers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/unilink-app/unilink-backend/src/lib"
	"github.com/unilink-app/unilink-backend/src/models"
	"github.com/unilink-app/unilink-backend/src/store"
)

// AdminController hosts the back-office operations. Every route it serves
// sits behind the admin role check in the middleware.
type AdminController struct {
	Users  store.UserStore
	Posts  store.PostStore
	Events store.EventStore
	Log    zerolog.Logger
}

// GetAllUsers lists every regular user account.
func (ac *AdminController) GetAllUsers(c *fiber.Ctx) error {
	users, err := ac.Users.ListByRole(c.Context(), models.RoleUser)
	if err != nil {
		ac.Log.Error().Err(err).Msg("failed to list users")
		return c.Status(fiber.StatusInternalServerError).JSON(lib.MessageResponse("Server error"))
	}
	if len(users) == 0 {
		return c.Status(fiber.StatusNotFound).JSON(lib.MessageResponse("No users found"))
	}

	for i := range users {
		users[i].Sanitize()
	}
	return c.JSON(fiber.Map{"success": true, "data": users})
}

// GetPendingCertifications lists users who have certifications on file, for
// the review queue.
func (ac *AdminController) GetPendingCertifications(c *fiber.Ctx) error {
	users, err := ac.Users.ListWithCertifications(c.Context())
	if err != nil {
		ac.Log.Error().Err(err).Msg("failed to list users with certifications")
		return c.Status(fiber.StatusInternalServerError).JSON(lib.MessageResponse("Server error"))
	}

	for i := range users {
		users[i].Sanitize()
	}
	return c.JSON(fiber.Map{"success": true, "users": users})
}

func (ac *AdminController) setCertificationStatus(c *fiber.Ctx, status models.ReviewStatus) error {
	userID, err := primitive.ObjectIDFromHex(c.Params("userId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(lib.MessageResponse("Invalid ID format"))
	}
	certID, err := primitive.ObjectIDFromHex(c.Params("certId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(lib.MessageResponse("Invalid ID format"))
	}

	user, err := ac.Users.GetByID(c.Context(), userID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(lib.MessageResponse("User not found"))
		}
		ac.Log.Error().Err(err).Msg("failed to load user")
		return c.Status(fiber.StatusInternalServerError).JSON(lib.MessageResponse("Server error"))
	}

	found := false
	for i := range user.Certifications {
		if user.Certifications[i].Id != certID {
			continue
		}
		user.Certifications[i].Status = status
		user.Certifications[i].IsVerified = status == models.ReviewStatusApproved
		found = true
		break
	}
	if !found {
		return c.Status(fiber.StatusNotFound).JSON(lib.MessageResponse("Certification not found"))
	}

	// The account-level flag tracks the whole list.
	user.IsVerified = user.AllCertificationsVerified()

	if err := ac.Users.Save(c.Context(), user); err != nil {
		ac.Log.Error().Err(err).Msg("failed to save certification review")
		return c.Status(fiber.StatusInternalServerError).JSON(lib.MessageResponse("Server error"))
	}

	message := "Certification approved"
	if status == models.ReviewStatusRejected {
		message = "Certification rejected"
	}
	user.Sanitize()
	return c.JSON(fiber.Map{"success": true, "message": message, "user": user})
}

// ApproveCertification marks a certification approved and recomputes the
// user's aggregate verification flag.
func (ac *AdminController) ApproveCertification(c *fiber.Ctx) error {
	return ac.setCertificationStatus(c, models.ReviewStatusApproved)
}

// RejectCertification marks a certification rejected.
func (ac *AdminController) RejectCertification(c *fiber.Ctx) error {
	return ac.setCertificationStatus(c, models.ReviewStatusRejected)
}

// GetUsersWithSkills lists users who have skills on file, for the review
// queue.
func (ac *AdminController) GetUsersWithSkills(c *fiber.Ctx) error {
	users, err := ac.Users.ListWithSkills(c.Context())
	if err != nil {
		ac.Log.Error().Err(err).Msg("failed to list users with skills")
		return c.Status(fiber.StatusInternalServerError).JSON(lib.MessageResponse("Server error"))
	}

	for i := range users {
		users[i].Sanitize()
	}
	return c.JSON(fiber.Map{"success": true, "users": users})
}

func (ac *AdminController) setSkillStatus(c *fiber.Ctx, status models.ReviewStatus) error {
	userID, err := primitive.ObjectIDFromHex(c.Params("userId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(lib.MessageResponse("Invalid ID format"))
	}
	skillID, err := primitive.ObjectIDFromHex(c.Params("skillId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(lib.MessageResponse("Invalid ID format"))
	}

	user, err := ac.Users.GetByID(c.Context(), userID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(lib.MessageResponse("User not found"))
		}
		ac.Log.Error().Err(err).Msg("failed to load user")
		return c.Status(fiber.StatusInternalServerError).JSON(lib.MessageResponse("Server error"))
	}

	approved := status == models.ReviewStatusApproved
	found := false
	for i := range user.Skills {
		if user.Skills[i].Id != skillID {
			continue
		}
		user.Skills[i].SkillStatus = status
		user.Skills[i].IsSkillVerified = approved
		found = true
		break
	}
	if !found {
		return c.Status(fiber.StatusNotFound).JSON(lib.MessageResponse("Skill not found"))
	}

	user.IsSkillsVerified = approved

	if err := ac.Users.Save(c.Context(), user); err != nil {
		ac.Log.Error().Err(err).Msg("failed to save skill review")
		return c.Status(fiber.StatusInternalServerError).JSON(lib.MessageResponse("Server error"))
	}

	message := "Skill approved"
	if status == models.ReviewStatusRejected {
		message = "Skill rejected"
	}
	user.Sanitize()
	return c.JSON(fiber.Map{"success": true, "message": message, "user": user})
}

// ApproveSkill marks a skill approved.
func (ac *AdminController) ApproveSkill(c *fiber.Ctx) error {
	return ac.setSkillStatus(c, models.ReviewStatusApproved)
}

// RejectSkill marks a skill rejected.
func (ac *AdminController) RejectSkill(c *fiber.Ctx) error {
	return ac.setSkillStatus(c, models.ReviewStatusRejected)
}

// GetUserReport aggregates activity counts for any user, same shape as the
// self-service report.
func (ac *AdminController) GetUserReport(c *fiber.Ctx) error {
	userID, err := primitive.ObjectIDFromHex(c.Params("userId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(lib.MessageResponse("Invalid user ID format"))
	}

	user, err := ac.Users.GetByID(c.Context(), userID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(lib.MessageResponse("User not found"))
		}
		ac.Log.Error().Err(err).Msg("failed to load user")
		return c.Status(fiber.StatusInternalServerError).JSON(lib.MessageResponse("Server error"))
	}

	posts, err := ac.Posts.ListByAuthor(c.Context(), userID)
	if err != nil {
		ac.Log.Error().Err(err).Msg("failed to list user posts")
		return c.Status(fiber.StatusInternalServerError).JSON(lib.MessageResponse("Server error"))
	}
	var totalComments, totalLikes int
	for i := range posts {
		totalComments += len(posts[i].Comments)
		totalLikes += len(posts[i].Likes)
	}

	totalShares, err := ac.Posts.CountSharedByAuthor(c.Context(), userID)
	if err != nil {
		ac.Log.Error().Err(err).Msg("failed to count shared posts")
		return c.Status(fiber.StatusInternalServerError).JSON(lib.MessageResponse("Server error"))
	}

	totalEvents, err := ac.Events.Count(c.Context())
	if err != nil {
		ac.Log.Error().Err(err).Msg("failed to count events")
		return c.Status(fiber.StatusInternalServerError).JSON(lib.MessageResponse("Server error"))
	}
	userEvents, err := ac.Events.CountByCreator(c.Context(), userID)
	if err != nil {
		ac.Log.Error().Err(err).Msg("failed to count user events")
		return c.Status(fiber.StatusInternalServerError).JSON(lib.MessageResponse("Server error"))
	}

	events, err := ac.Events.List(c.Context())
	if err != nil {
		ac.Log.Error().Err(err).Msg("failed to list events")
		return c.Status(fiber.StatusInternalServerError).JSON(lib.MessageResponse("Server error"))
	}
	var eventLikes, eventComments, eventShares int
	for i := range events {
		eventLikes += len(events[i].Likes)
		eventComments += len(events[i].Comments)
		eventShares += len(events[i].Shares)
	}

	user.Sanitize()
	return c.JSON(fiber.Map{
		"success": true,
		"user":    user,
		"data": fiber.Map{
			"totalPosts":         len(posts),
			"totalComments":      totalComments,
			"totalShares":        totalShares,
			"totalLikes":         totalLikes,
			"totalEvents":        totalEvents,
			"userEvents":         userEvents,
			"totalEventLikes":    eventLikes,
			"totalEventComments": eventComments,
			"totalEventShares":   eventShares,
		},
	})
}

// AssignHeadUser promotes a regular user to head user. Admin accounts cannot
// be reassigned.
func (ac *AdminController) AssignHeadUser(c *fiber.Ctx) error {
	userID, err := primitive.ObjectIDFromHex(c.Params("userId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(lib.MessageResponse("Invalid user ID format"))
	}

	user, err := ac.Users.GetByID(c.Context(), userID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(lib.MessageResponse("User not found"))
		}
		ac.Log.Error().Err(err).Msg("failed to load user")
		return c.Status(fiber.StatusInternalServerError).JSON(lib.MessageResponse("Server error"))
	}

	if user.Role != models.RoleUser {
		return c.Status(fiber.StatusBadRequest).JSON(lib.MessageResponse("Only users can be assigned as head users"))
	}

	user.UserType = models.UserTypeHead
	if err := ac.Users.Save(c.Context(), user); err != nil {
		ac.Log.Error().Err(err).Msg("failed to save head assignment")
		return c.Status(fiber.StatusInternalServerError).JSON(lib.MessageResponse("Server error"))
	}

	user.Sanitize()
	return c.JSON(fiber.Map{"success": true, "message": "User assigned as head user", "user": user})
}
