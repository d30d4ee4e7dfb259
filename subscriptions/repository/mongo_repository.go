// Copyright (c) 2025 Vidora
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package repository

import (
	"context"
	"fmt"

	"github.com/gofrs/uuid"
	"github.com/vidora/vidora-api/internal/database/interfaces"
	"github.com/vidora/vidora-api/subscriptions/models"
)

const subscriptionsCollection = "subscriptions"

// mongoSubscriptionRepository implements SubscriptionRepository over the
// generic document repository.
type mongoSubscriptionRepository struct {
	db interfaces.Repository
}

// NewMongoSubscriptionRepository creates a MongoDB-backed SubscriptionRepository
func NewMongoSubscriptionRepository(db interfaces.Repository) SubscriptionRepository {
	return &mongoSubscriptionRepository{db: db}
}

func edgeFilter(subscriberID, creatorID uuid.UUID) map[string]interface{} {
	return map[string]interface{}{
		"subscriberId": subscriberID,
		"creatorId":    creatorID,
	}
}

func (r *mongoSubscriptionRepository) Create(ctx context.Context, subscription *models.Subscription) error {
	result := <-r.db.Save(ctx, subscriptionsCollection, subscription)
	if result.Error != nil {
		return fmt.Errorf("failed to create subscription: %w", result.Error)
	}
	return nil
}

func (r *mongoSubscriptionRepository) Delete(ctx context.Context, subscriberID, creatorID uuid.UUID) (bool, error) {
	result := <-r.db.Delete(ctx, subscriptionsCollection, edgeFilter(subscriberID, creatorID))
	if result.Error != nil {
		return false, fmt.Errorf("failed to delete subscription: %w", result.Error)
	}
	return result.DeletedCount() > 0, nil
}

func (r *mongoSubscriptionRepository) Exists(ctx context.Context, subscriberID, creatorID uuid.UUID) (bool, error) {
	result := <-r.db.Count(ctx, subscriptionsCollection, edgeFilter(subscriberID, creatorID))
	if result.Error != nil {
		return false, fmt.Errorf("failed to check subscription: %w", result.Error)
	}
	return result.Count > 0, nil
}

func (r *mongoSubscriptionRepository) FindBySubscriber(ctx context.Context, subscriberID uuid.UUID) ([]*models.Subscription, error) {
	filter := map[string]interface{}{"subscriberId": subscriberID}
	opts := &interfaces.FindOptions{
		Sort: map[string]int{"createdDate": -1},
	}

	result := <-r.db.Find(ctx, subscriptionsCollection, filter, opts)
	if result.Error() != nil {
		return nil, fmt.Errorf("failed to query subscriptions: %w", result.Error())
	}
	defer result.Close()

	var subscriptions []*models.Subscription
	for result.Next() {
		var subscription models.Subscription
		if err := result.Decode(&subscription); err != nil {
			return nil, fmt.Errorf("failed to decode subscription: %w", err)
		}
		subscriptions = append(subscriptions, &subscription)
	}

	return subscriptions, nil
}
