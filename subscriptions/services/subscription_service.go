package services

import (
	"context"
	"fmt"
	"time"

	"github.com/gofrs/uuid"

	"github.com/vidora/vidora-api/internal/pkg/log"
	"github.com/vidora/vidora-api/internal/types"
	subscriptionsErrors "github.com/vidora/vidora-api/subscriptions/errors"
	"github.com/vidora/vidora-api/subscriptions/models"
	subscriptionRepository "github.com/vidora/vidora-api/subscriptions/repository"
	userModels "github.com/vidora/vidora-api/users/models"
	usersRepository "github.com/vidora/vidora-api/users/repository"
)

// subscriptionService implements the SubscriptionService interface.
type subscriptionService struct {
	subscriptionRepo subscriptionRepository.SubscriptionRepository
	userRepo         usersRepository.UserRepository
}

// NewSubscriptionService wires the subscription service with its dependencies.
func NewSubscriptionService(subscriptionRepo subscriptionRepository.SubscriptionRepository, userRepo usersRepository.UserRepository) SubscriptionService {
	return &subscriptionService{
		subscriptionRepo: subscriptionRepo,
		userRepo:         userRepo,
	}
}

// Toggle flips the subscription edge between the user and the creator and
// keeps the creator's denormalized subscriber counter in step.
func (s *subscriptionService) Toggle(ctx context.Context, creatorID uuid.UUID, user *types.UserContext) (*models.SubscribeResponse, error) {
	if user == nil {
		return nil, subscriptionsErrors.ErrInvalidUserContext
	}
	if user.UserID == creatorID {
		return nil, subscriptionsErrors.ErrSelfSubscription
	}

	if _, err := s.userRepo.FindProfile(ctx, creatorID); err != nil {
		if err.Error() == "user not found" {
			return nil, subscriptionsErrors.ErrCreatorNotFound
		}
		return nil, fmt.Errorf("failed to find creator: %w", err)
	}

	deleted, err := s.subscriptionRepo.Delete(ctx, user.UserID, creatorID)
	if err != nil {
		return nil, fmt.Errorf("failed to toggle subscription: %w", err)
	}

	if deleted {
		if err := s.userRepo.IncrementSubscribersCount(ctx, creatorID, -1); err != nil {
			log.Warn("Failed to decrement subscribers count for creator %s: %v", creatorID.String(), err)
		}
		count, err := s.reloadSubscribersCount(ctx, creatorID)
		if err != nil {
			return nil, err
		}
		return &models.SubscribeResponse{Subscribed: false, SubscribersCount: count}, nil
	}

	subscriptionID, err := uuid.NewV4()
	if err != nil {
		return nil, fmt.Errorf("failed to generate subscription ID: %w", err)
	}

	subscription := &models.Subscription{
		ObjectId:     subscriptionID,
		SubscriberId: user.UserID,
		CreatorId:    creatorID,
		CreatedDate:  time.Now().Unix(),
	}
	if err := s.subscriptionRepo.Create(ctx, subscription); err != nil {
		return nil, fmt.Errorf("failed to create subscription: %w", err)
	}

	if err := s.userRepo.IncrementSubscribersCount(ctx, creatorID, 1); err != nil {
		log.Warn("Failed to increment subscribers count for creator %s: %v", creatorID.String(), err)
	}

	count, err := s.reloadSubscribersCount(ctx, creatorID)
	if err != nil {
		return nil, err
	}
	return &models.SubscribeResponse{Subscribed: true, SubscribersCount: count}, nil
}

// reloadSubscribersCount rereads the creator after the counter update so the
// response reflects concurrent toggles instead of the pre-toggle snapshot.
func (s *subscriptionService) reloadSubscribersCount(ctx context.Context, creatorID uuid.UUID) (int64, error) {
	creator, err := s.userRepo.FindProfile(ctx, creatorID)
	if err != nil {
		return 0, fmt.Errorf("failed to reload creator: %w", err)
	}
	return creator.SubscribersCount, nil
}

// ListSubscriptions returns the profiles of the creators the user follows,
// newest subscription first.
func (s *subscriptionService) ListSubscriptions(ctx context.Context, user *types.UserContext) (*models.SubscriptionsListResponse, error) {
	if user == nil {
		return nil, subscriptionsErrors.ErrInvalidUserContext
	}

	subscriptions, err := s.subscriptionRepo.FindBySubscriber(ctx, user.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to query subscriptions: %w", err)
	}

	creatorIDs := make([]uuid.UUID, len(subscriptions))
	for i, subscription := range subscriptions {
		creatorIDs[i] = subscription.CreatorId
	}

	profiles, err := s.userRepo.FindProfiles(ctx, creatorIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to load creator profiles: %w", err)
	}

	// Deleted creators simply drop out of the listing.
	results := make([]userModels.ProfileResponse, 0, len(subscriptions))
	for _, subscription := range subscriptions {
		if profile, ok := profiles[subscription.CreatorId]; ok {
			results = append(results, profile.ToResponse())
		}
	}

	return &models.SubscriptionsListResponse{
		Subscriptions: results,
		Count:         len(results),
	}, nil
}
