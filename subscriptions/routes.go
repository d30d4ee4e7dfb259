package subscriptions

import (
	"github.com/gofiber/fiber/v2"
	"github.com/vidora/vidora-api/internal/middleware/authjwt"
	platformconfig "github.com/vidora/vidora-api/internal/platform/config"
	"github.com/vidora/vidora-api/internal/types"
	"github.com/vidora/vidora-api/subscriptions/handlers"
)

// SubscriptionsHandlers holds all the handlers this router needs.
type SubscriptionsHandlers struct {
	SubscriptionHandler *handlers.SubscriptionHandler
}

// RegisterRoutes is the single entry point for setting up subscription
// routes. Everything here requires authentication.
func RegisterRoutes(app fiber.Router, handlers *SubscriptionsHandlers, cfg *platformconfig.Config) {
	authMiddleware := authjwt.New(authjwt.Config{
		PublicKey:   cfg.JWT.PublicKey,
		ClaimKey:    "claim",
		UserCtxName: types.UserCtxName,
	})

	group := app.Group("/subscriptions")
	group.Get("/", authMiddleware, handlers.SubscriptionHandler.List)
	group.Put("/:creatorId", authMiddleware, handlers.SubscriptionHandler.Toggle)
}
