// Copyright (c) 2025 Vidora
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package repository

import (
	"context"

	"github.com/gofrs/uuid"
	"github.com/vidora/vidora-api/subscriptions/models"
)

// SubscriptionRepository defines the interface for subscription edges
type SubscriptionRepository interface {
	// Create persists a new subscription
	Create(ctx context.Context, subscription *models.Subscription) error

	// Delete removes the subscription edge if present and reports
	// whether one was removed
	Delete(ctx context.Context, subscriberID, creatorID uuid.UUID) (bool, error)

	// Exists reports whether the subscriber follows the creator
	Exists(ctx context.Context, subscriberID, creatorID uuid.UUID) (bool, error)

	// FindBySubscriber lists the user's subscriptions, newest first
	FindBySubscriber(ctx context.Context, subscriberID uuid.UUID) ([]*models.Subscription, error)
}
