package videos

import (
	"github.com/gofiber/fiber/v2"
	"github.com/vidora/vidora-api/internal/middleware/authjwt"
	platformconfig "github.com/vidora/vidora-api/internal/platform/config"
	"github.com/vidora/vidora-api/internal/types"
	"github.com/vidora/vidora-api/videos/handlers"
)

// VideosHandlers holds all the handlers this router needs.
type VideosHandlers struct {
	VideoHandler *handlers.VideoHandler
}

// RegisterRoutes is the single entry point for setting up video routes.
// Catalog reads are public; engagement writes require authentication.
func RegisterRoutes(app fiber.Router, handlers *VideosHandlers, cfg *platformconfig.Config) {
	authConfig := authjwt.Config{
		PublicKey:   cfg.JWT.PublicKey,
		ClaimKey:    "claim",
		UserCtxName: types.UserCtxName,
	}
	authMiddleware := authjwt.New(authConfig)
	// Catalog reads and view registration are public but still resolve the
	// viewer when a token is present, so liked/saved flags and per-user
	// view dedup apply to signed-in users.
	optionalAuth := authjwt.NewOptional(authConfig)

	group := app.Group("/videos")

	group.Get("/", optionalAuth, handlers.VideoHandler.GetVideos)
	group.Get("/:videoId", optionalAuth, handlers.VideoHandler.GetVideo)
	group.Put("/:videoId/view", optionalAuth, handlers.VideoHandler.RegisterView)

	group.Put("/:videoId/like", authMiddleware, handlers.VideoHandler.ToggleLike)
	group.Put("/:videoId/save", authMiddleware, handlers.VideoHandler.ToggleSaved)
}
