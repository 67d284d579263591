package discussionRoutes

import (
	"github.com/gofiber/fiber/v2"

	discussionController "github.com/piotrniepolak/watchtower2-sub003/controllers/discussion"
	discussionValidator "github.com/piotrniepolak/watchtower2-sub003/validators/discussion"
)

// SetupDiscussionRoutes sets up community discussion routes
func SetupDiscussionRoutes(app *fiber.App) {
	group := app.Group("/api/discussions")

	group.Get("/", discussionController.ListDiscussions)
	group.Post("/", discussionValidator.CreateDiscussion(), discussionController.CreateDiscussion)
	group.Get("/:id", discussionController.GetDiscussion)
	group.Post("/:id/replies", discussionValidator.CreateReply(), discussionController.CreateReply)
}
