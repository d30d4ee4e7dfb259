package comments

import (
	"github.com/gofiber/fiber/v2"
	"github.com/vidora/vidora-api/comments/handlers"
	"github.com/vidora/vidora-api/internal/middleware/authjwt"
	platformconfig "github.com/vidora/vidora-api/internal/platform/config"
	"github.com/vidora/vidora-api/internal/types"
)

// CommentsHandlers holds all the handlers this router needs.
type CommentsHandlers struct {
	CommentHandler *handlers.CommentHandler
}

// RegisterRoutes is the single entry point for setting up comment routes.
// Listing is public; everything else requires authentication.
func RegisterRoutes(app fiber.Router, handlers *CommentsHandlers, cfg *platformconfig.Config) {
	authConfig := authjwt.Config{
		PublicKey:   cfg.JWT.PublicKey,
		ClaimKey:    "claim",
		UserCtxName: types.UserCtxName,
	}
	authMiddleware := authjwt.New(authConfig)
	// Thread listing is public but still resolves the viewer when a token
	// is present, so liked flags reflect the signed-in user.
	optionalAuth := authjwt.NewOptional(authConfig)

	app.Get("/videos/:videoId/comments", optionalAuth, handlers.CommentHandler.GetComments)
	app.Post("/videos/:videoId/comments", authMiddleware, handlers.CommentHandler.CreateComment)

	group := app.Group("/comments")
	group.Post("/:commentId/replies", authMiddleware, handlers.CommentHandler.CreateReply)
	group.Put("/:commentId", authMiddleware, handlers.CommentHandler.UpdateComment)
	group.Delete("/:commentId", authMiddleware, handlers.CommentHandler.DeleteComment)
	group.Put("/:commentId/like", authMiddleware, handlers.CommentHandler.ToggleLike)
}
