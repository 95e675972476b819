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
)

type UserController struct {
	Users       store.UserStore
	Connections store.ConnectionStore
	Posts       store.PostStore
	Events      store.EventStore
	Log         zerolog.Logger
}

const suggestionLimit = 10

// userSuggestion is a suggestion entry annotated with the request status
// between the viewer and the suggested user.
type userSuggestion struct {
	models.UserDto
	Status models.SuggestionStatus `json:"status"`
}

// GetSuggestedConnections lists users the viewer might want to connect with,
// excluding themselves and existing connections, each annotated with the
// state of any live request between the pair.
func (uc *UserController) GetSuggestedConnections(c *fiber.Ctx) error {
	user := middleware.CurrentUser(c)

	suggested, err := uc.Users.ListSuggestions(c.Context(), user.Id, user.Connections, suggestionLimit)
	if err != nil {
		uc.Log.Error().Err(err).Msg("failed to list suggested users")
		return c.Status(fiber.StatusInternalServerError).JSON(lib.MessageResponse("Server error"))
	}

	requests, err := uc.Connections.ListInvolving(c.Context(), user.Id)
	if err != nil {
		uc.Log.Error().Err(err).Msg("failed to list connection requests")
		return c.Status(fiber.StatusInternalServerError).JSON(lib.MessageResponse("Server error"))
	}
	statusMap := models.BuildRequestStatusMap(user.Id, requests)

	suggestions := make([]userSuggestion, 0, len(suggested))
	for i := range suggested {
		status, ok := statusMap[suggested[i].Id]
		if !ok {
			status = models.SuggestionNotConnected
		}
		suggestions = append(suggestions, userSuggestion{
			UserDto: suggested[i].Dto(),
			Status:  status,
		})
	}

	return c.JSON(suggestions)
}

// GetPublicProfile returns a user's profile by username. Skills and
// certifications still waiting on review are visible to the owner only.
func (uc *UserController) GetPublicProfile(c *fiber.Ctx) error {
	viewer := middleware.CurrentUser(c)

	user, err := uc.Users.GetByUsername(c.Context(), c.Params("username"))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(lib.MessageResponse("User not found"))
		}
		uc.Log.Error().Err(err).Msg("failed to load public profile")
		return c.Status(fiber.StatusInternalServerError).JSON(lib.MessageResponse("Server error"))
	}

	user.Sanitize()
	if user.Id != viewer.Id {
		user.FilterUnverified()
	}
	return c.JSON(user)
}

type updateProfileRequest struct {
	Name           *string `json:"name"`
	Username       *string `json:"username"`
	Headline       *string `json:"headline"`
	About          *string `json:"about"`
	Location       *string `json:"location"`
	ProfilePicture *string `json:"profilePicture"`
	BannerImg      *string `json:"bannerImg"`
}

// UpdateProfile applies the provided profile fields to the authenticated
// user. Absent fields are left untouched; sub-documents have their own
// endpoints.
func (uc *UserController) UpdateProfile(c *fiber.Ctx) error {
	var req updateProfileRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(lib.MessageResponse("Invalid request body"))
	}

	current := middleware.CurrentUser(c)
	user, err := uc.Users.GetByID(c.Context(), current.Id)
	if err != nil {
		uc.Log.Error().Err(err).Msg("failed to load user for profile update")
		return c.Status(fiber.StatusInternalServerError).JSON(lib.MessageResponse("Server error"))
	}

	if req.Name != nil {
		user.Name = *req.Name
	}
	if req.Username != nil {
		user.Username = *req.Username
	}
	if req.Headline != nil {
		user.Headline = *req.Headline
	}
	if req.About != nil {
		user.About = *req.About
	}
	if req.Location != nil {
		user.Location = *req.Location
	}
	if req.ProfilePicture != nil {
		user.ProfilePicture = *req.ProfilePicture
	}
	if req.BannerImg != nil {
		user.BannerImg = *req.BannerImg
	}

	if err := uc.Users.Save(c.Context(), user); err != nil {
		if errors.Is(err, store.ErrDuplicate) {
			return c.Status(fiber.StatusBadRequest).JSON(lib.MessageResponse("Username already exists"))
		}
		uc.Log.Error().Err(err).Msg("failed to save profile update")
		return c.Status(fiber.StatusInternalServerError).JSON(lib.MessageResponse("Server error"))
	}

	user.Sanitize()
	return c.JSON(fiber.Map{"success": true, "data": user})
}

// searchResult keeps search responses small; the client resolves the rest
// from the public profile.
type searchResult struct {
	ID       primitive.ObjectID `json:"_id"`
	Username string             `json:"username"`
}

// SearchUsers finds users whose username starts with the query, case
// insensitively.
func (uc *UserController) SearchUsers(c *fiber.Ctx) error {
	query := c.Query("q")
	if query == "" {
		return c.JSON([]searchResult{})
	}

	users, err := uc.Users.SearchByUsernamePrefix(c.Context(), query)
	if err != nil {
		uc.Log.Error().Err(err).Msg("failed to search users")
		return c.Status(fiber.StatusInternalServerError).JSON(lib.MessageResponse("Server error"))
	}

	results := make([]searchResult, 0, len(users))
	for i := range users {
		results = append(results, searchResult{ID: users[i].Id, Username: users[i].Username})
	}
	return c.JSON(results)
}

// GetSkills returns the authenticated user's skills, review status included.
func (uc *UserController) GetSkills(c *fiber.Ctx) error {
	current := middleware.CurrentUser(c)

	user, err := uc.Users.GetByID(c.Context(), current.Id)
	if err != nil {
		uc.Log.Error().Err(err).Msg("failed to load user skills")
		return c.Status(fiber.StatusInternalServerError).JSON(lib.MessageResponse("Server error"))
	}
	return c.JSON(fiber.Map{"success": true, "data": user.Skills})
}

type addSkillRequest struct {
	Name        string `json:"name" validate:"required"`
	Description string `json:"description"`
	Image       string `json:"image"`
}

// AddSkill appends a skill to the user's profile. New skills always enter the
// review queue unverified.
func (uc *UserController) AddSkill(c *fiber.Ctx) error {
	var req addSkillRequest
	if err := parseAndValidate(c, &req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(lib.MessageResponse("Skill name is required"))
	}

	current := middleware.CurrentUser(c)
	user, err := uc.Users.GetByID(c.Context(), current.Id)
	if err != nil {
		uc.Log.Error().Err(err).Msg("failed to load user")
		return c.Status(fiber.StatusInternalServerError).JSON(lib.MessageResponse("Server error"))
	}

	skill := models.Skill{
		Id:              primitive.NewObjectID(),
		Name:            req.Name,
		Description:     req.Description,
		Image:           req.Image,
		IsSkillVerified: false,
		SkillStatus:     models.ReviewStatusPending,
	}
	user.Skills = append(user.Skills, skill)

	if err := uc.Users.Save(c.Context(), user); err != nil {
		uc.Log.Error().Err(err).Msg("failed to save skill")
		return c.Status(fiber.StatusInternalServerError).JSON(lib.MessageResponse("Server error"))
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success": true,
		"message": "Skill added successfully",
		"data":    skill,
	})
}

type updateSkillRequest struct {
	SkillID     string `json:"skillId" validate:"required"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Image       string `json:"image"`
}

// UpdateSkill edits an existing skill in place. Review flags are admin-only
// and never touched here.
func (uc *UserController) UpdateSkill(c *fiber.Ctx) error {
	var req updateSkillRequest
	if err := parseAndValidate(c, &req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(lib.MessageResponse("Skill ID is required"))
	}

	skillID, err := primitive.ObjectIDFromHex(req.SkillID)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(lib.MessageResponse("Invalid skill ID format"))
	}

	current := middleware.CurrentUser(c)
	user, err := uc.Users.GetByID(c.Context(), current.Id)
	if err != nil {
		uc.Log.Error().Err(err).Msg("failed to load user")
		return c.Status(fiber.StatusInternalServerError).JSON(lib.MessageResponse("Server error"))
	}

	found := false
	for i := range user.Skills {
		if user.Skills[i].Id != skillID {
			continue
		}
		if req.Name != "" {
			user.Skills[i].Name = req.Name
		}
		if req.Description != "" {
			user.Skills[i].Description = req.Description
		}
		if req.Image != "" {
			user.Skills[i].Image = req.Image
		}
		found = true
		break
	}
	if !found {
		return c.Status(fiber.StatusNotFound).JSON(lib.MessageResponse("Skill not found"))
	}

	if err := uc.Users.Save(c.Context(), user); err != nil {
		uc.Log.Error().Err(err).Msg("failed to save skill update")
		return c.Status(fiber.StatusInternalServerError).JSON(lib.MessageResponse("Server error"))
	}
	return c.JSON(fiber.Map{"success": true, "data": user.Skills})
}

type deleteSkillRequest struct {
	SkillID string `json:"skillId" validate:"required"`
}

// DeleteSkill removes a skill from the user's profile.
func (uc *UserController) DeleteSkill(c *fiber.Ctx) error {
	var req deleteSkillRequest
	if err := parseAndValidate(c, &req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(lib.MessageResponse("Skill ID is required"))
	}

	skillID, err := primitive.ObjectIDFromHex(req.SkillID)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(lib.MessageResponse("Invalid skill ID format"))
	}

	current := middleware.CurrentUser(c)
	user, err := uc.Users.GetByID(c.Context(), current.Id)
	if err != nil {
		uc.Log.Error().Err(err).Msg("failed to load user")
		return c.Status(fiber.StatusInternalServerError).JSON(lib.MessageResponse("Server error"))
	}

	idx := -1
	for i := range user.Skills {
		if user.Skills[i].Id == skillID {
			idx = i
			break
		}
	}
	if idx == -1 {
		return c.Status(fiber.StatusNotFound).JSON(lib.MessageResponse("Skill not found"))
	}
	user.Skills = append(user.Skills[:idx], user.Skills[idx+1:]...)

	if err := uc.Users.Save(c.Context(), user); err != nil {
		uc.Log.Error().Err(err).Msg("failed to save skill deletion")
		return c.Status(fiber.StatusInternalServerError).JSON(lib.MessageResponse("Server error"))
	}
	return c.JSON(fiber.Map{"success": true, "message": "Skill deleted", "data": user.Skills})
}

type addCertificationRequest struct {
	Title       string    `json:"title" validate:"required"`
	Institute   string    `json:"institute" validate:"required"`
	StartDate   time.Time `json:"startDate" validate:"required"`
	EndDate     time.Time `json:"endDate" validate:"required"`
	Description string    `json:"description" validate:"required"`
	File        string    `json:"file"`
}

// AddCertification appends a certification to the user's profile. Like
// skills, certifications start pending until an admin reviews them.
func (uc *UserController) AddCertification(c *fiber.Ctx) error {
	var req addCertificationRequest
	if err := parseAndValidate(c, &req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(lib.MessageResponse("All certification fields are required"))
	}

	current := middleware.CurrentUser(c)
	user, err := uc.Users.GetByID(c.Context(), current.Id)
	if err != nil {
		uc.Log.Error().Err(err).Msg("failed to load user")
		return c.Status(fiber.StatusInternalServerError).JSON(lib.MessageResponse("Server error"))
	}

	cert := models.Certification{
		Id:          primitive.NewObjectID(),
		Title:       req.Title,
		Institute:   req.Institute,
		StartDate:   req.StartDate,
		EndDate:     req.EndDate,
		Description: req.Description,
		File:        req.File,
		Status:      models.ReviewStatusPending,
		IsVerified:  false,
	}
	user.Certifications = append(user.Certifications, cert)
	// Adding an unverified certification always drops the aggregate flag.
	user.IsVerified = false

	if err := uc.Users.Save(c.Context(), user); err != nil {
		uc.Log.Error().Err(err).Msg("failed to save certification")
		return c.Status(fiber.StatusInternalServerError).JSON(lib.MessageResponse("Server error"))
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success": true,
		"message": "Certification added successfully",
		"data":    user.Certifications,
	})
}

type updateCertificationRequest struct {
	CertID      string     `json:"certId" validate:"required"`
	Title       string     `json:"title"`
	Institute   string     `json:"institute"`
	StartDate   *time.Time `json:"startDate"`
	EndDate     *time.Time `json:"endDate"`
	Description string     `json:"description"`
}

// UpdateCertification edits an existing certification in place.
func (uc *UserController) UpdateCertification(c *fiber.Ctx) error {
	var req updateCertificationRequest
	if err := parseAndValidate(c, &req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(lib.MessageResponse("Certification ID is required"))
	}

	certID, err := primitive.ObjectIDFromHex(req.CertID)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(lib.MessageResponse("Invalid certification ID format"))
	}

	current := middleware.CurrentUser(c)
	user, err := uc.Users.GetByID(c.Context(), current.Id)
	if err != nil {
		uc.Log.Error().Err(err).Msg("failed to load user")
		return c.Status(fiber.StatusInternalServerError).JSON(lib.MessageResponse("Server error"))
	}

	found := false
	for i := range user.Certifications {
		if user.Certifications[i].Id != certID {
			continue
		}
		if req.Title != "" {
			user.Certifications[i].Title = req.Title
		}
		if req.Institute != "" {
			user.Certifications[i].Institute = req.Institute
		}
		if req.StartDate != nil {
			user.Certifications[i].StartDate = *req.StartDate
		}
		if req.EndDate != nil {
			user.Certifications[i].EndDate = *req.EndDate
		}
		if req.Description != "" {
			user.Certifications[i].Description = req.Description
		}
		found = true
		break
	}
	if !found {
		return c.Status(fiber.StatusNotFound).JSON(lib.MessageResponse("Certification not found"))
	}

	if err := uc.Users.Save(c.Context(), user); err != nil {
		uc.Log.Error().Err(err).Msg("failed to save certification update")
		return c.Status(fiber.StatusInternalServerError).JSON(lib.MessageResponse("Server error"))
	}
	return c.JSON(fiber.Map{"success": true, "data": user.Certifications})
}

// DeleteCertification removes one of the user's certifications by id.
func (uc *UserController) DeleteCertification(c *fiber.Ctx) error {
	certID, err := primitive.ObjectIDFromHex(c.Params("certId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(lib.MessageResponse("Invalid certification ID format"))
	}

	current := middleware.CurrentUser(c)
	user, err := uc.Users.GetByID(c.Context(), current.Id)
	if err != nil {
		uc.Log.Error().Err(err).Msg("failed to load user")
		return c.Status(fiber.StatusInternalServerError).JSON(lib.MessageResponse("Server error"))
	}

	idx := -1
	for i := range user.Certifications {
		if user.Certifications[i].Id == certID {
			idx = i
			break
		}
	}
	if idx == -1 {
		return c.Status(fiber.StatusNotFound).JSON(lib.MessageResponse("Certification not found or already deleted"))
	}
	user.Certifications = append(user.Certifications[:idx], user.Certifications[idx+1:]...)
	user.IsVerified = user.AllCertificationsVerified()

	if err := uc.Users.Save(c.Context(), user); err != nil {
		uc.Log.Error().Err(err).Msg("failed to save certification deletion")
		return c.Status(fiber.StatusInternalServerError).JSON(lib.MessageResponse("Server error"))
	}
	return c.JSON(fiber.Map{
		"success": true,
		"message": "Certification deleted successfully",
		"data":    user.Certifications,
	})
}

type addExperienceRequest struct {
	Title       string    `json:"title" validate:"required"`
	Company     string    `json:"company" validate:"required"`
	StartDate   time.Time `json:"startDate" validate:"required"`
	EndDate     time.Time `json:"endDate" validate:"required"`
	Description string    `json:"description" validate:"required"`
}

// AddExperience appends a work experience entry to the user's profile.
func (uc *UserController) AddExperience(c *fiber.Ctx) error {
	var req addExperienceRequest
	if err := parseAndValidate(c, &req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(lib.MessageResponse("All experience fields are required"))
	}

	current := middleware.CurrentUser(c)
	user, err := uc.Users.GetByID(c.Context(), current.Id)
	if err != nil {
		uc.Log.Error().Err(err).Msg("failed to load user")
		return c.Status(fiber.StatusInternalServerError).JSON(lib.MessageResponse("Server error"))
	}

	user.Experience = append(user.Experience, models.Experience{
		Id:          primitive.NewObjectID(),
		Title:       req.Title,
		Company:     req.Company,
		StartDate:   req.StartDate,
		EndDate:     req.EndDate,
		Description: req.Description,
	})

	if err := uc.Users.Save(c.Context(), user); err != nil {
		uc.Log.Error().Err(err).Msg("failed to save experience")
		return c.Status(fiber.StatusInternalServerError).JSON(lib.MessageResponse("Server error"))
	}
	return c.JSON(fiber.Map{"success": true, "data": user.Experience})
}

type updateExperienceRequest struct {
	ExpID       string     `json:"expId" validate:"required"`
	Title       string     `json:"title"`
	Company     string     `json:"company"`
	StartDate   *time.Time `json:"startDate"`
	EndDate     *time.Time `json:"endDate"`
	Description string     `json:"description"`
}

// UpdateExperience edits an existing experience entry in place.
func (uc *UserController) UpdateExperience(c *fiber.Ctx) error {
	var req updateExperienceRequest
	if err := parseAndValidate(c, &req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(lib.MessageResponse("Experience ID is required"))
	}

	expID, err := primitive.ObjectIDFromHex(req.ExpID)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(lib.MessageResponse("Invalid experience ID format"))
	}

	current := middleware.CurrentUser(c)
	user, err := uc.Users.GetByID(c.Context(), current.Id)
	if err != nil {
		uc.Log.Error().Err(err).Msg("failed to load user")
		return c.Status(fiber.StatusInternalServerError).JSON(lib.MessageResponse("Server error"))
	}

	found := false
	for i := range user.Experience {
		if user.Experience[i].Id != expID {
			continue
		}
		if req.Title != "" {
			user.Experience[i].Title = req.Title
		}
		if req.Company != "" {
			user.Experience[i].Company = req.Company
		}
		if req.StartDate != nil {
			user.Experience[i].StartDate = *req.StartDate
		}
		if req.EndDate != nil {
			user.Experience[i].EndDate = *req.EndDate
		}
		if req.Description != "" {
			user.Experience[i].Description = req.Description
		}
		found = true
		break
	}
	if !found {
		return c.Status(fiber.StatusNotFound).JSON(lib.MessageResponse("Experience not found"))
	}

	if err := uc.Users.Save(c.Context(), user); err != nil {
		uc.Log.Error().Err(err).Msg("failed to save experience update")
		return c.Status(fiber.StatusInternalServerError).JSON(lib.MessageResponse("Server error"))
	}
	return c.JSON(fiber.Map{"success": true, "data": user.Experience})
}

type addEducationRequest struct {
	School       string `json:"school" validate:"required"`
	FieldOfStudy string `json:"fieldOfStudy" validate:"required"`
	StartYear    int    `json:"startYear" validate:"required"`
	EndYear      int    `json:"endYear"`
}

// AddEducation appends an education entry, rejecting exact duplicates of
// school, field and start year.
func (uc *UserController) AddEducation(c *fiber.Ctx) error {
	var req addEducationRequest
	if err := parseAndValidate(c, &req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(lib.MessageResponse("School, fieldOfStudy and startYear are required"))
	}

	current := middleware.CurrentUser(c)
	user, err := uc.Users.GetByID(c.Context(), current.Id)
	if err != nil {
		uc.Log.Error().Err(err).Msg("failed to load user")
		return c.Status(fiber.StatusInternalServerError).JSON(lib.MessageResponse("Server error"))
	}

	for _, edu := range user.Education {
		if edu.School == req.School && edu.FieldOfStudy == req.FieldOfStudy && edu.StartYear == req.StartYear {
			return c.Status(fiber.StatusBadRequest).JSON(lib.MessageResponse("Education at " + req.School + " already exists"))
		}
	}

	user.Education = append(user.Education, models.Education{
		Id:           primitive.NewObjectID(),
		School:       req.School,
		FieldOfStudy: req.FieldOfStudy,
		StartYear:    req.StartYear,
		EndYear:      req.EndYear,
	})

	if err := uc.Users.Save(c.Context(), user); err != nil {
		uc.Log.Error().Err(err).Msg("failed to save education")
		return c.Status(fiber.StatusInternalServerError).JSON(lib.MessageResponse("Server error"))
	}
	return c.JSON(fiber.Map{"success": true, "data": user.Education})
}

type updateEducationRequest struct {
	EduID        string `json:"eduId" validate:"required"`
	School       string `json:"school"`
	FieldOfStudy string `json:"fieldOfStudy"`
	StartYear    int    `json:"startYear"`
	EndYear      int    `json:"endYear"`
}

// UpdateEducation edits an existing education entry in place.
func (uc *UserController) UpdateEducation(c *fiber.Ctx) error {
	var req updateEducationRequest
	if err := parseAndValidate(c, &req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(lib.MessageResponse("Education ID is required"))
	}

	eduID, err := primitive.ObjectIDFromHex(req.EduID)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(lib.MessageResponse("Invalid education ID format"))
	}

	current := middleware.CurrentUser(c)
	user, err := uc.Users.GetByID(c.Context(), current.Id)
	if err != nil {
		uc.Log.Error().Err(err).Msg("failed to load user")
		return c.Status(fiber.StatusInternalServerError).JSON(lib.MessageResponse("Server error"))
	}

	found := false
	for i := range user.Education {
		if user.Education[i].Id != eduID {
			continue
		}
		if req.School != "" {
			user.Education[i].School = req.School
		}
		if req.FieldOfStudy != "" {
			user.Education[i].FieldOfStudy = req.FieldOfStudy
		}
		if req.StartYear != 0 {
			user.Education[i].StartYear = req.StartYear
		}
		if req.EndYear != 0 {
			user.Education[i].EndYear = req.EndYear
		}
		found = true
		break
	}
	if !found {
		return c.Status(fiber.StatusNotFound).JSON(lib.MessageResponse("Education not found"))
	}

	if err := uc.Users.Save(c.Context(), user); err != nil {
		uc.Log.Error().Err(err).Msg("failed to save education update")
		return c.Status(fiber.StatusInternalServerError).JSON(lib.MessageResponse("Server error"))
	}
	return c.JSON(fiber.Map{"success": true, "data": user.Education})
}

// GetMyReport aggregates activity counts for the authenticated user: posts,
// comments, likes and shares they produced plus platform-wide event totals.
func (uc *UserController) GetMyReport(c *fiber.Ctx) error {
	current := middleware.CurrentUser(c)

	user, err := uc.Users.GetByID(c.Context(), current.Id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(lib.MessageResponse("User not found"))
		}
		uc.Log.Error().Err(err).Msg("failed to load user")
		return c.Status(fiber.StatusInternalServerError).JSON(lib.MessageResponse("Server error"))
	}

	posts, err := uc.Posts.ListByAuthor(c.Context(), user.Id)
	if err != nil {
		uc.Log.Error().Err(err).Msg("failed to list user posts")
		return c.Status(fiber.StatusInternalServerError).JSON(lib.MessageResponse("Server error"))
	}

	var totalComments, totalLikes int
	for i := range posts {
		totalComments += len(posts[i].Comments)
		totalLikes += len(posts[i].Likes)
	}

	totalShares, err := uc.Posts.CountSharedByAuthor(c.Context(), user.Id)
	if err != nil {
		uc.Log.Error().Err(err).Msg("failed to count shared posts")
		return c.Status(fiber.StatusInternalServerError).JSON(lib.MessageResponse("Server error"))
	}

	totalEvents, err := uc.Events.Count(c.Context())
	if err != nil {
		uc.Log.Error().Err(err).Msg("failed to count events")
		return c.Status(fiber.StatusInternalServerError).JSON(lib.MessageResponse("Server error"))
	}
	userEvents, err := uc.Events.CountByCreator(c.Context(), user.Id)
	if err != nil {
		uc.Log.Error().Err(err).Msg("failed to count user events")
		return c.Status(fiber.StatusInternalServerError).JSON(lib.MessageResponse("Server error"))
	}

	events, err := uc.Events.List(c.Context())
	if err != nil {
		uc.Log.Error().Err(err).Msg("failed to list events")
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
