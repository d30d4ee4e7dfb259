package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"
	uuid "github.com/gofrs/uuid"
	"github.com/vidora/vidora-api/internal/types"
	"github.com/vidora/vidora-api/subscriptions/errors"
	"github.com/vidora/vidora-api/subscriptions/services"
)

// SubscriptionHandler handles all subscription-related HTTP requests
type SubscriptionHandler struct {
	subscriptionService services.SubscriptionService
}

// NewSubscriptionHandler creates a new SubscriptionHandler with injected dependencies
func NewSubscriptionHandler(subscriptionService services.SubscriptionService) *SubscriptionHandler {
	return &SubscriptionHandler{subscriptionService: subscriptionService}
}

// Toggle handles subscribing to / unsubscribing from a creator
func (h *SubscriptionHandler) Toggle(c *fiber.Ctx) error {
	creatorID, err := uuid.FromString(c.Params("creatorId"))
	if err != nil {
		return errors.HandleUUIDError(c, "creatorId")
	}

	user, ok := c.Locals(types.UserCtxName).(types.UserContext)
	if !ok {
		return errors.HandleUserContextError(c, "Invalid user context")
	}

	result, err := h.subscriptionService.Toggle(c.Context(), creatorID, &user)
	if err != nil {
		return errors.HandleServiceError(c, err)
	}

	return c.Status(http.StatusOK).JSON(result)
}

// List handles listing the viewer's subscriptions
func (h *SubscriptionHandler) List(c *fiber.Ctx) error {
	user, ok := c.Locals(types.UserCtxName).(types.UserContext)
	if !ok {
		return errors.HandleUserContextError(c, "Invalid user context")
	}

	result, err := h.subscriptionService.ListSubscriptions(c.Context(), &user)
	if err != nil {
		return errors.HandleServiceError(c, err)
	}

	return c.Status(http.StatusOK).JSON(result)
}
