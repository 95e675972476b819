package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/unilink-app/unilink-backend/src/controllers"
)

// PostRoutes sets up the feed and post interaction routes.
func PostRoutes(app *fiber.App, pc *controllers.PostController, protect fiber.Handler) {
	posts := app.Group("/posts", protect)

	posts.Get("/get-feed", pc.GetFeedPosts)
	posts.Post("/create", pc.CreatePost)
	posts.Delete("/delete/:id", pc.DeletePost)
	posts.Post("/:id/comment", pc.CreateComment)
	posts.Put("/:postId/comments/:commentId", pc.UpdateComment)
	posts.Post("/:id/like", pc.LikePost)
	posts.Post("/:postId/share", pc.SharePost)
	posts.Get("/:id", pc.GetPostById)
}
