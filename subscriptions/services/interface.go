package services

import (
	"context"

	"github.com/gofrs/uuid"
	"github.com/vidora/vidora-api/internal/types"
	"github.com/vidora/vidora-api/subscriptions/models"
)

// SubscriptionService defines the interface for subscription business logic
type SubscriptionService interface {
	// Toggle subscribes the user to the creator if not subscribed,
	// unsubscribes otherwise
	Toggle(ctx context.Context, creatorID uuid.UUID, user *types.UserContext) (*models.SubscribeResponse, error)

	// ListSubscriptions returns the creators the user subscribes to
	ListSubscriptions(ctx context.Context, user *types.UserContext) (*models.SubscriptionsListResponse, error)
}
