// Copyright (c) 2025 Vidora
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package mocks

import (
	"context"

	"github.com/gofrs/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/vidora/vidora-api/comments/models"
	commentRepository "github.com/vidora/vidora-api/comments/repository"
	sharedInterfaces "github.com/vidora/vidora-api/shared/interfaces"
	userModels "github.com/vidora/vidora-api/users/models"
	usersRepository "github.com/vidora/vidora-api/users/repository"
)

// MockCommentRepository is a mock implementation of CommentRepository
type MockCommentRepository struct {
	mock.Mock
}

var _ commentRepository.CommentRepository = (*MockCommentRepository)(nil)

func (m *MockCommentRepository) Create(ctx context.Context, comment *models.Comment) error {
	args := m.Called(ctx, comment)
	return args.Error(0)
}

func (m *MockCommentRepository) FindByID(ctx context.Context, commentID uuid.UUID) (*models.Comment, error) {
	args := m.Called(ctx, commentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Comment), args.Error(1)
}

func (m *MockCommentRepository) FindRootsByVideoID(ctx context.Context, videoID uuid.UUID, limit, offset int) ([]*models.Comment, error) {
	args := m.Called(ctx, videoID, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Comment), args.Error(1)
}

func (m *MockCommentRepository) FindRepliesByParentIDs(ctx context.Context, parentIDs []uuid.UUID) ([]*models.Comment, error) {
	args := m.Called(ctx, parentIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Comment), args.Error(1)
}

func (m *MockCommentRepository) CountRootsByVideoID(ctx context.Context, videoID uuid.UUID) (int64, error) {
	args := m.Called(ctx, videoID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockCommentRepository) CountRepliesByParentID(ctx context.Context, parentID uuid.UUID) (int64, error) {
	args := m.Called(ctx, parentID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockCommentRepository) UpdateText(ctx context.Context, commentID uuid.UUID, text string, lastUpdated int64) error {
	args := m.Called(ctx, commentID, text, lastUpdated)
	return args.Error(0)
}

func (m *MockCommentRepository) Delete(ctx context.Context, commentID uuid.UUID) error {
	args := m.Called(ctx, commentID)
	return args.Error(0)
}

func (m *MockCommentRepository) DeleteRepliesByParentID(ctx context.Context, parentID uuid.UUID) (int64, error) {
	args := m.Called(ctx, parentID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockCommentRepository) ToggleLike(ctx context.Context, commentID, userID uuid.UUID) (bool, error) {
	args := m.Called(ctx, commentID, userID)
	return args.Bool(0), args.Error(1)
}

func (m *MockCommentRepository) IncrementRepliesCount(ctx context.Context, commentID uuid.UUID, delta int) error {
	args := m.Called(ctx, commentID, delta)
	return args.Error(0)
}

// MockVideoStatsUpdater is a mock implementation of VideoStatsUpdater
type MockVideoStatsUpdater struct {
	mock.Mock
}

var _ sharedInterfaces.VideoStatsUpdater = (*MockVideoStatsUpdater)(nil)

func (m *MockVideoStatsUpdater) Exists(ctx context.Context, videoID uuid.UUID) (bool, error) {
	args := m.Called(ctx, videoID)
	return args.Bool(0), args.Error(1)
}

func (m *MockVideoStatsUpdater) AttachComment(ctx context.Context, videoID uuid.UUID, commentID uuid.UUID) error {
	args := m.Called(ctx, videoID, commentID)
	return args.Error(0)
}

func (m *MockVideoStatsUpdater) DetachComments(ctx context.Context, videoID uuid.UUID, commentIDs []uuid.UUID) error {
	args := m.Called(ctx, videoID, commentIDs)
	return args.Error(0)
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
