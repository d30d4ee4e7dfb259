// Copyright (c) 2025 Vidora
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package mocks

import (
	"context"

	"github.com/gofrs/uuid"
	"github.com/stretchr/testify/mock"
	userModels "github.com/vidora/vidora-api/users/models"
	usersRepository "github.com/vidora/vidora-api/users/repository"
	"github.com/vidora/vidora-api/videos/models"
	videoRepository "github.com/vidora/vidora-api/videos/repository"
)

// MockVideoRepository is a mock implementation of VideoRepository
type MockVideoRepository struct {
	mock.Mock
}

var _ videoRepository.VideoRepository = (*MockVideoRepository)(nil)

func (m *MockVideoRepository) FindByID(ctx context.Context, videoID uuid.UUID) (*models.Video, error) {
	args := m.Called(ctx, videoID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Video), args.Error(1)
}

func (m *MockVideoRepository) Exists(ctx context.Context, videoID uuid.UUID) (bool, error) {
	args := m.Called(ctx, videoID)
	return args.Bool(0), args.Error(1)
}

func (m *MockVideoRepository) Find(ctx context.Context, filter videoRepository.VideoFilter, sortBy string, limit, offset int) ([]*models.Video, error) {
	args := m.Called(ctx, filter, sortBy, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Video), args.Error(1)
}

func (m *MockVideoRepository) Count(ctx context.Context, filter videoRepository.VideoFilter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockVideoRepository) AttachComment(ctx context.Context, videoID uuid.UUID, commentID uuid.UUID) error {
	args := m.Called(ctx, videoID, commentID)
	return args.Error(0)
}

func (m *MockVideoRepository) DetachComments(ctx context.Context, videoID uuid.UUID, commentIDs []uuid.UUID) error {
	args := m.Called(ctx, videoID, commentIDs)
	return args.Error(0)
}

func (m *MockVideoRepository) ToggleLike(ctx context.Context, videoID, userID uuid.UUID) (bool, error) {
	args := m.Called(ctx, videoID, userID)
	return args.Bool(0), args.Error(1)
}

func (m *MockVideoRepository) RegisterView(ctx context.Context, videoID uuid.UUID, userID *uuid.UUID) (bool, error) {
	args := m.Called(ctx, videoID, userID)
	return args.Bool(0), args.Error(1)
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
