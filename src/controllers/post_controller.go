package controllers

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/unilink-app/unilink-backend/src/emails"
	"github.com/unilink-app/unilink-backend/src/lib"
	"github.com/unilink-app/unilink-backend/src/middleware"
	"github.com/unilink-app/unilink-backend/src/models"
	"github.com/unilink-app/unilink-backend/src/store"
	"github.com/unilink-app/unilink-backend/src/ws"
)

type PostController struct {
	Posts         store.PostStore
	Users         store.UserStore
	Notifications store.NotificationStore
	Mail          emails.Sender
	Hub           *ws.Hub
	Log           zerolog.Logger
	ClientURL     string
}

// postResponse is a post with its author populated.
type postResponse struct {
	ID         primitive.ObjectID   `json:"_id"`
	Author     models.UserDto       `json:"author"`
	Content    string               `json:"content"`
	Image      string               `json:"image"`
	Likes      []primitive.ObjectID `json:"likes"`
	Comments   []models.Comment     `json:"comments"`
	SharedPost primitive.ObjectID   `json:"sharedPost,omitempty"`
	CreatedAt  time.Time            `json:"createdAt"`
	UpdatedAt  time.Time            `json:"updatedAt"`
}

func (pc *PostController) buildPostResponse(c *fiber.Ctx, post *models.Post) postResponse {
	resp := postResponse{
		ID:         post.Id,
		Content:    post.Content,
		Image:      post.Image,
		Likes:      post.Likes,
		Comments:   post.Comments,
		SharedPost: post.SharedPost,
		CreatedAt:  post.CreatedAt,
		UpdatedAt:  post.UpdatedAt,
	}
	if resp.Likes == nil {
		resp.Likes = []primitive.ObjectID{}
	}
	if resp.Comments == nil {
		resp.Comments = []models.Comment{}
	}
	if author, err := pc.Users.GetByID(c.Context(), post.Author); err == nil {
		resp.Author = author.Dto()
	}
	return resp
}

// GetFeedPosts returns the feed, newest first, authors populated.
func (pc *PostController) GetFeedPosts(c *fiber.Ctx) error {
	posts, err := pc.Posts.ListFeed(c.Context())
	if err != nil {
		pc.Log.Error().Err(err).Msg("failed to list feed")
		return c.Status(fiber.StatusInternalServerError).JSON(lib.MessageResponse("Server error"))
	}

	response := make([]postResponse, 0, len(posts))
	for i := range posts {
		response = append(response, pc.buildPostResponse(c, &posts[i]))
	}
	return c.JSON(response)
}

type createPostRequest struct {
	Content string `json:"content" validate:"required"`
	Image   string `json:"image"`
}

// CreatePost publishes a new post by the authenticated user.
func (pc *PostController) CreatePost(c *fiber.Ctx) error {
	var req createPostRequest
	if err := parseAndValidate(c, &req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(lib.MessageResponse("Post content is required"))
	}

	user := middleware.CurrentUser(c)

	post := models.Post{
		Author:   user.Id,
		Content:  req.Content,
		Image:    req.Image,
		Likes:    []primitive.ObjectID{},
		Comments: []models.Comment{},
	}
	if err := pc.Posts.Create(c.Context(), &post); err != nil {
		pc.Log.Error().Err(err).Msg("failed to create post")
		return c.Status(fiber.StatusInternalServerError).JSON(lib.MessageResponse("Failed to create post"))
	}

	return c.Status(fiber.StatusCreated).JSON(pc.buildPostResponse(c, &post))
}

// GetPostById returns a single post, author populated.
func (pc *PostController) GetPostById(c *fiber.Ctx) error {
	postID, err := primitive.ObjectIDFromHex(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(lib.MessageResponse("Invalid post ID format"))
	}

	post, err := pc.Posts.GetByID(c.Context(), postID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(lib.MessageResponse("Post not found"))
		}
		pc.Log.Error().Err(err).Msg("failed to load post")
		return c.Status(fiber.StatusInternalServerError).JSON(lib.MessageResponse("Server error"))
	}

	return c.JSON(pc.buildPostResponse(c, post))
}

// DeletePost removes a post. Only the author may delete it.
func (pc *PostController) DeletePost(c *fiber.Ctx) error {
	postID, err := primitive.ObjectIDFromHex(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(lib.MessageResponse("Invalid post ID format"))
	}

	user := middleware.CurrentUser(c)

	post, err := pc.Posts.GetByID(c.Context(), postID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(lib.MessageResponse("Post not found"))
		}
		pc.Log.Error().Err(err).Msg("failed to load post")
		return c.Status(fiber.StatusInternalServerError).JSON(lib.MessageResponse("Server error"))
	}
	if post.Author != user.Id {
		return c.Status(fiber.StatusForbidden).JSON(lib.MessageResponse("You are not authorized to delete this post"))
	}

	if err := pc.Posts.Delete(c.Context(), postID); err != nil {
		pc.Log.Error().Err(err).Msg("failed to delete post")
		return c.Status(fiber.StatusInternalServerError).JSON(lib.MessageResponse("Failed to delete post"))
	}

	return c.JSON(lib.MessageResponse("Post deleted successfully"))
}

// LikePost toggles the user's like on a post. Liking somebody else's post
// notifies the author; unliking does not.
func (pc *PostController) LikePost(c *fiber.Ctx) error {
	postID, err := primitive.ObjectIDFromHex(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(lib.MessageResponse("Invalid post ID format"))
	}

	user := middleware.CurrentUser(c)

	post, err := pc.Posts.GetByID(c.Context(), postID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(lib.MessageResponse("Post not found"))
		}
		pc.Log.Error().Err(err).Msg("failed to load post")
		return c.Status(fiber.StatusInternalServerError).JSON(lib.MessageResponse("Server error"))
	}

	liked := post.ToggleLike(user.Id)
	if err := pc.Posts.Save(c.Context(), post); err != nil {
		pc.Log.Error().Err(err).Msg("failed to save like")
		return c.Status(fiber.StatusInternalServerError).JSON(lib.MessageResponse("Server error"))
	}

	if liked && post.Author != user.Id {
		notification := models.Notification{
			Recipient:   post.Author,
			Type:        models.NotificationTypeLike,
			RelatedUser: user.Id,
			RelatedPost: post.Id,
		}
		if err := pc.Notifications.Create(c.Context(), &notification); err != nil {
			pc.Log.Error().Err(err).Msg("failed to create like notification")
		} else if pc.Hub != nil {
			pc.Hub.SendToUser(post.Author, "notification", notification)
		}
	}

	return c.JSON(pc.buildPostResponse(c, post))
}

type createCommentRequest struct {
	Content string `json:"content" validate:"required"`
}

// CreateComment appends a comment to a post and notifies the author, unless
// they commented on their own post.
func (pc *PostController) CreateComment(c *fiber.Ctx) error {
	postID, err := primitive.ObjectIDFromHex(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(lib.MessageResponse("Invalid post ID format"))
	}

	var req createCommentRequest
	if err := parseAndValidate(c, &req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(lib.MessageResponse("Comment content is required"))
	}

	user := middleware.CurrentUser(c)

	post, err := pc.Posts.GetByID(c.Context(), postID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(lib.MessageResponse("Post not found"))
		}
		pc.Log.Error().Err(err).Msg("failed to load post")
		return c.Status(fiber.StatusInternalServerError).JSON(lib.MessageResponse("Server error"))
	}

	post.Comments = append(post.Comments, models.Comment{
		Id:        primitive.NewObjectID(),
		User:      user.Id,
		Content:   req.Content,
		CreatedAt: time.Now().UTC(),
	})
	if err := pc.Posts.Save(c.Context(), post); err != nil {
		pc.Log.Error().Err(err).Msg("failed to save comment")
		return c.Status(fiber.StatusInternalServerError).JSON(lib.MessageResponse("Server error"))
	}

	if post.Author != user.Id {
		notification := models.Notification{
			Recipient:   post.Author,
			Type:        models.NotificationTypeComment,
			RelatedUser: user.Id,
			RelatedPost: post.Id,
		}
		if err := pc.Notifications.Create(c.Context(), &notification); err != nil {
			pc.Log.Error().Err(err).Msg("failed to create comment notification")
		} else if pc.Hub != nil {
			pc.Hub.SendToUser(post.Author, "notification", notification)
		}

		if pc.Mail != nil {
			if author, err := pc.Users.GetByID(c.Context(), post.Author); err == nil {
				postURL := pc.ClientURL + "/post/" + post.Id.Hex()
				go func(email, authorName, commenterName, comment string) {
					subject, body := emails.CommentNotificationEmail(authorName, commenterName, postURL, comment)
					if err := pc.Mail.SendHTML(email, subject, body); err != nil {
						pc.Log.Error().Err(err).Msg("failed to send comment notification email")
					}
				}(author.Email, author.Name, user.Name, req.Content)
			}
		}
	}

	return c.Status(fiber.StatusCreated).JSON(pc.buildPostResponse(c, post))
}

type updateCommentRequest struct {
	Content string `json:"content" validate:"required"`
}

// UpdateComment edits a comment's text. Only the comment's owner may edit it.
func (pc *PostController) UpdateComment(c *fiber.Ctx) error {
	postID, err := primitive.ObjectIDFromHex(c.Params("postId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(lib.MessageResponse("Invalid post ID format"))
	}
	commentID, err := primitive.ObjectIDFromHex(c.Params("commentId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(lib.MessageResponse("Invalid comment ID format"))
	}

	var req updateCommentRequest
	if err := parseAndValidate(c, &req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(lib.MessageResponse("Comment content is required"))
	}

	user := middleware.CurrentUser(c)

	post, err := pc.Posts.GetByID(c.Context(), postID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(lib.MessageResponse("Post not found"))
		}
		pc.Log.Error().Err(err).Msg("failed to load post")
		return c.Status(fiber.StatusInternalServerError).JSON(lib.MessageResponse("Server error"))
	}

	found := false
	for i := range post.Comments {
		if post.Comments[i].Id != commentID {
			continue
		}
		if post.Comments[i].User != user.Id {
			return c.Status(fiber.StatusForbidden).JSON(lib.MessageResponse("You are not authorized to edit this comment"))
		}
		post.Comments[i].Content = req.Content
		found = true
		break
	}
	if !found {
		return c.Status(fiber.StatusNotFound).JSON(lib.MessageResponse("Comment not found"))
	}

	if err := pc.Posts.Save(c.Context(), post); err != nil {
		pc.Log.Error().Err(err).Msg("failed to save comment update")
		return c.Status(fiber.StatusInternalServerError).JSON(lib.MessageResponse("Server error"))
	}
	return c.JSON(pc.buildPostResponse(c, post))
}

type sharePostRequest struct {
	Content string `json:"content"`
}

// SharePost creates a new post referencing an existing one.
func (pc *PostController) SharePost(c *fiber.Ctx) error {
	postID, err := primitive.ObjectIDFromHex(c.Params("postId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(lib.MessageResponse("Invalid post ID format"))
	}

	// The body is optional; a share without a caption is fine.
	var req sharePostRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(lib.MessageResponse("Invalid request body"))
		}
	}

	user := middleware.CurrentUser(c)

	original, err := pc.Posts.GetByID(c.Context(), postID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(lib.MessageResponse("Post not found"))
		}
		pc.Log.Error().Err(err).Msg("failed to load post")
		return c.Status(fiber.StatusInternalServerError).JSON(lib.MessageResponse("Server error"))
	}

	// Sharing a share points back at the root post.
	sharedID := original.Id
	if !original.SharedPost.IsZero() {
		sharedID = original.SharedPost
	}

	share := models.Post{
		Author:     user.Id,
		Content:    req.Content,
		Likes:      []primitive.ObjectID{},
		Comments:   []models.Comment{},
		SharedPost: sharedID,
	}
	if err := pc.Posts.Create(c.Context(), &share); err != nil {
		pc.Log.Error().Err(err).Msg("failed to share post")
		return c.Status(fiber.StatusInternalServerError).JSON(lib.MessageResponse("Failed to share post"))
	}

	return c.Status(fiber.StatusCreated).JSON(pc.buildPostResponse(c, &share))
}
