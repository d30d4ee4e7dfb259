// Copyright (c) 2025 Vidora
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package mocks

import (
	"context"

	"github.com/gofrs/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/vidora/vidora-api/subscriptions/models"
	subscriptionRepository "github.com/vidora/vidora-api/subscriptions/repository"
	userModels "github.com/vidora/vidora-api/users/models"
	usersRepository "github.com/vidora/vidora-api/users/repository"
)

// MockSubscriptionRepository is a mock implementation of SubscriptionRepository
type MockSubscriptionRepository struct {
	mock.Mock
}

var _ subscriptionRepository.SubscriptionRepository = (*MockSubscriptionRepository)(nil)

func (m *MockSubscriptionRepository) Create(ctx context.Context, subscription *models.Subscription) error {
	args := m.Called(ctx, subscription)
	return args.Error(0)
}

func (m *MockSubscriptionRepository) Delete(ctx context.Context, subscriberID, creatorID uuid.UUID) (bool, error) {
	args := m.Called(ctx, subscriberID, creatorID)
	return args.Bool(0), args.Error(1)
}

func (m *MockSubscriptionRepository) Exists(ctx context.Context, subscriberID, creatorID uuid.UUID) (bool, error) {
	args := m.Called(ctx, subscriberID, creatorID)
	return args.Bool(0), args.Error(1)
}

func (m *MockSubscriptionRepository) FindBySubscriber(ctx context.Context, subscriberID uuid.UUID) ([]*models.Subscription, error) {
	args := m.Called(ctx, subscriberID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Subscription), args.Error(1)
}

// MockUserRepository is a mock implementation of UserRepository
type MockUserRepository struct {
	mock.Mock
}

var _ usersRepository.UserRepository = (*MockUserRepository)(nil)

func (m *MockUserRepository) FindProfile(ctx context.Context, userID uuid.UUID) (*userModels.UserProfile, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*userModels.UserProfile), args.Error(1)
}

func (m *MockUserRepository) FindProfiles(ctx context.Context, userIDs []uuid.UUID) (map[uuid.UUID]*userModels.UserProfile, error) {
	args := m.Called(ctx, userIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[uuid.UUID]*userModels.UserProfile), args.Error(1)
}

func (m *MockUserRepository) ToggleSavedVideo(ctx context.Context, userID uuid.UUID, videoID uuid.UUID) (bool, error) {
	args := m.Called(ctx, userID, videoID)
	return args.Bool(0), args.Error(1)
}

func (m *MockUserRepository) SetVideoLiked(ctx context.Context, userID uuid.UUID, videoID uuid.UUID, liked bool) error {
	args := m.Called(ctx, userID, videoID, liked)
	return args.Error(0)
}

func (m *MockUserRepository) IncrementSubscribersCount(ctx context.Context, userID uuid.UUID, delta int) error {
	args := m.Called(ctx, userID, delta)
	return args.Error(0)
}
