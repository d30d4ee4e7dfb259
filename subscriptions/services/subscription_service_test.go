package services

import (
	"context"
	"testing"

	"github.com/gofrs/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/vidora/vidora-api/internal/types"
	subscriptionsErrors "github.com/vidora/vidora-api/subscriptions/errors"
	"github.com/vidora/vidora-api/subscriptions/models"
	"github.com/vidora/vidora-api/subscriptions/services/mocks"
	userModels "github.com/vidora/vidora-api/users/models"
)

func newTestService() (*mocks.MockSubscriptionRepository, *mocks.MockUserRepository, SubscriptionService) {
	subscriptionRepo := new(mocks.MockSubscriptionRepository)
	userRepo := new(mocks.MockUserRepository)
	return subscriptionRepo, userRepo, NewSubscriptionService(subscriptionRepo, userRepo)
}

func newTestUser() *types.UserContext {
	userID, _ := uuid.NewV4()
	return &types.UserContext{UserID: userID, DisplayName: "Alice"}
}

func creatorProfile(creatorID uuid.UUID, subscribers int64) *userModels.UserProfile {
	return &userModels.UserProfile{ObjectId: creatorID, DisplayName: "Creator", SubscribersCount: subscribers}
}

func TestToggle_NewEdge_Subscribes(t *testing.T) {
	subscriptionRepo, userRepo, service := newTestService()
	user := newTestUser()
	creatorID, _ := uuid.NewV4()

	userRepo.On("FindProfile", mock.Anything, creatorID).Return(creatorProfile(creatorID, 10), nil).Once()
	subscriptionRepo.On("Delete", mock.Anything, user.UserID, creatorID).Return(false, nil)
	subscriptionRepo.On("Create", mock.Anything, mock.MatchedBy(func(s *models.Subscription) bool {
		return s.SubscriberId == user.UserID && s.CreatorId == creatorID
	})).Return(nil)
	userRepo.On("IncrementSubscribersCount", mock.Anything, creatorID, 1).Return(nil)
	// The counter is reread after the increment, not derived from the
	// pre-toggle snapshot.
	userRepo.On("FindProfile", mock.Anything, creatorID).Return(creatorProfile(creatorID, 11), nil).Once()

	result, err := service.Toggle(context.Background(), creatorID, user)

	require.NoError(t, err)
	assert.True(t, result.Subscribed)
	assert.Equal(t, int64(11), result.SubscribersCount)
	subscriptionRepo.AssertExpectations(t)
	userRepo.AssertExpectations(t)
}

func TestToggle_ExistingEdge_Unsubscribes(t *testing.T) {
	subscriptionRepo, userRepo, service := newTestService()
	user := newTestUser()
	creatorID, _ := uuid.NewV4()

	userRepo.On("FindProfile", mock.Anything, creatorID).Return(creatorProfile(creatorID, 10), nil).Once()
	subscriptionRepo.On("Delete", mock.Anything, user.UserID, creatorID).Return(true, nil)
	userRepo.On("IncrementSubscribersCount", mock.Anything, creatorID, -1).Return(nil)
	userRepo.On("FindProfile", mock.Anything, creatorID).Return(creatorProfile(creatorID, 9), nil).Once()

	result, err := service.Toggle(context.Background(), creatorID, user)

	require.NoError(t, err)
	assert.False(t, result.Subscribed)
	assert.Equal(t, int64(9), result.SubscribersCount)
	subscriptionRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	userRepo.AssertExpectations(t)
}

func TestToggle_ConcurrentCounterMoved_ReportsReloadedCount(t *testing.T) {
	subscriptionRepo, userRepo, service := newTestService()
	user := newTestUser()
	creatorID, _ := uuid.NewV4()

	userRepo.On("FindProfile", mock.Anything, creatorID).Return(creatorProfile(creatorID, 10), nil).Once()
	subscriptionRepo.On("Delete", mock.Anything, user.UserID, creatorID).Return(false, nil)
	subscriptionRepo.On("Create", mock.Anything, mock.Anything).Return(nil)
	userRepo.On("IncrementSubscribersCount", mock.Anything, creatorID, 1).Return(nil)
	// Other subscribers arrived between the first read and the increment.
	userRepo.On("FindProfile", mock.Anything, creatorID).Return(creatorProfile(creatorID, 14), nil).Once()

	result, err := service.Toggle(context.Background(), creatorID, user)

	require.NoError(t, err)
	assert.Equal(t, int64(14), result.SubscribersCount)
}

func TestToggle_SelfSubscription_ReturnsError(t *testing.T) {
	subscriptionRepo, _, service := newTestService()
	user := newTestUser()

	_, err := service.Toggle(context.Background(), user.UserID, user)

	assert.ErrorIs(t, err, subscriptionsErrors.ErrSelfSubscription)
	subscriptionRepo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything, mock.Anything)
}

func TestToggle_MissingCreator_ReturnsNotFound(t *testing.T) {
	_, userRepo, service := newTestService()
	user := newTestUser()
	creatorID, _ := uuid.NewV4()

	userRepo.On("FindProfile", mock.Anything, creatorID).Return(nil, errUserNotFound{})

	_, err := service.Toggle(context.Background(), creatorID, user)

	assert.ErrorIs(t, err, subscriptionsErrors.ErrCreatorNotFound)
}

type errUserNotFound struct{}

func (errUserNotFound) Error() string { return "user not found" }

func TestListSubscriptions_MissingProfile_DropsCreator(t *testing.T) {
	subscriptionRepo, userRepo, service := newTestService()
	user := newTestUser()
	creatorAID, _ := uuid.NewV4()
	creatorBID, _ := uuid.NewV4()

	subscriptionRepo.On("FindBySubscriber", mock.Anything, user.UserID).Return([]*models.Subscription{
		{SubscriberId: user.UserID, CreatorId: creatorAID, CreatedDate: 200},
		{SubscriberId: user.UserID, CreatorId: creatorBID, CreatedDate: 100},
	}, nil)
	// Creator B's profile is gone, so it drops out of the listing.
	userRepo.On("FindProfiles", mock.Anything, []uuid.UUID{creatorAID, creatorBID}).
		Return(map[uuid.UUID]*userModels.UserProfile{
			creatorAID: {ObjectId: creatorAID, DisplayName: "Creator A"},
		}, nil)

	result, err := service.ListSubscriptions(context.Background(), user)

	require.NoError(t, err)
	require.Len(t, result.Subscriptions, 1)
	assert.Equal(t, "Creator A", result.Subscriptions[0].DisplayName)
	assert.Equal(t, 1, result.Count)
}

func TestListSubscriptions_NilUserContext_ReturnsError(t *testing.T) {
	_, _, service := newTestService()

	_, err := service.ListSubscriptions(context.Background(), nil)

	assert.ErrorIs(t, err, subscriptionsErrors.ErrInvalidUserContext)
}
