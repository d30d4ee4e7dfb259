package services

import (
	"context"
	"testing"
	"time"

	"github.com/gofrs/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	commentsErrors "github.com/vidora/vidora-api/comments/errors"
	"github.com/vidora/vidora-api/comments/models"
	"github.com/vidora/vidora-api/comments/services/mocks"
	"github.com/vidora/vidora-api/internal/cache"
	"github.com/vidora/vidora-api/internal/types"
	userModels "github.com/vidora/vidora-api/users/models"
)

func newTestService() (*mocks.MockCommentRepository, *mocks.MockVideoStatsUpdater, *mocks.MockUserRepository, CommentService) {
	commentRepo := new(mocks.MockCommentRepository)
	videoStats := new(mocks.MockVideoStatsUpdater)
	userRepo := new(mocks.MockUserRepository)
	return commentRepo, videoStats, userRepo, NewCommentService(commentRepo, videoStats, userRepo, nil)
}

func newTestUser() *types.UserContext {
	userID, _ := uuid.NewV4()
	return &types.UserContext{UserID: userID, Username: "alice@example.com", DisplayName: "Alice"}
}

func profileFor(userID uuid.UUID, name string) *userModels.UserProfile {
	return &userModels.UserProfile{ObjectId: userID, DisplayName: name}
}

// errNotFound mimics the repository's not-found error text.
type errNotFound struct{}

func (errNotFound) Error() string { return "comment not found" }

func TestAddComment_ValidRequest_AttachesToVideo(t *testing.T) {
	commentRepo, videoStats, userRepo, service := newTestService()
	user := newTestUser()
	videoID, _ := uuid.NewV4()

	videoStats.On("Exists", mock.Anything, videoID).Return(true, nil)
	commentRepo.On("Create", mock.Anything, mock.MatchedBy(func(c *models.Comment) bool {
		return c.VideoId == videoID && c.OwnerUserId == user.UserID && c.Text == "great video" && c.ParentCommentId == nil
	})).Return(nil)

	var attachedID uuid.UUID
	videoStats.On("AttachComment", mock.Anything, videoID, mock.Anything).Run(func(args mock.Arguments) {
		attachedID = args.Get(2).(uuid.UUID)
	}).Return(nil)
	userRepo.On("FindProfile", mock.Anything, user.UserID).Return(profileFor(user.UserID, "Alice"), nil)

	result, err := service.AddComment(context.Background(), videoID, &models.CreateCommentRequest{Text: "great video"}, user)

	require.NoError(t, err)
	assert.Equal(t, "great video", result.Text)
	assert.Equal(t, videoID.String(), result.VideoId)
	assert.Nil(t, result.ParentCommentId)
	// The new comment's id ends up referenced on the video document.
	assert.Equal(t, result.ObjectId, attachedID.String())
	require.NotNil(t, result.User)
	assert.Equal(t, "Alice", result.User.DisplayName)
	commentRepo.AssertExpectations(t)
	videoStats.AssertExpectations(t)
}

func TestAddComment_MissingVideo_ReturnsNotFound(t *testing.T) {
	commentRepo, videoStats, _, service := newTestService()
	videoID, _ := uuid.NewV4()

	videoStats.On("Exists", mock.Anything, videoID).Return(false, nil)

	_, err := service.AddComment(context.Background(), videoID, &models.CreateCommentRequest{Text: "hello"}, newTestUser())

	assert.ErrorIs(t, err, commentsErrors.ErrVideoNotFound)
	commentRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestAddComment_BlankText_ReturnsValidationError(t *testing.T) {
	_, videoStats, _, service := newTestService()
	videoID, _ := uuid.NewV4()

	_, err := service.AddComment(context.Background(), videoID, &models.CreateCommentRequest{Text: "   "}, newTestUser())

	assert.ErrorIs(t, err, commentsErrors.ErrInvalidCommentData)
	videoStats.AssertNotCalled(t, "Exists", mock.Anything, mock.Anything)
}

func TestAddComment_NilUserContext_ReturnsError(t *testing.T) {
	_, _, _, service := newTestService()
	videoID, _ := uuid.NewV4()

	_, err := service.AddComment(context.Background(), videoID, &models.CreateCommentRequest{Text: "hi"}, nil)

	assert.ErrorIs(t, err, commentsErrors.ErrInvalidUserContext)
}

func TestAddComment_AttachFailure_StillSucceeds(t *testing.T) {
	commentRepo, videoStats, userRepo, service := newTestService()
	user := newTestUser()
	videoID, _ := uuid.NewV4()

	videoStats.On("Exists", mock.Anything, videoID).Return(true, nil)
	commentRepo.On("Create", mock.Anything, mock.Anything).Return(nil)
	videoStats.On("AttachComment", mock.Anything, videoID, mock.Anything).Return(assert.AnError)
	userRepo.On("FindProfile", mock.Anything, user.UserID).Return(profileFor(user.UserID, "Alice"), nil)

	result, err := service.AddComment(context.Background(), videoID, &models.CreateCommentRequest{Text: "still works"}, user)

	require.NoError(t, err)
	assert.Equal(t, "still works", result.Text)
}

func TestAddReply_ValidRequest_InheritsParentVideo(t *testing.T) {
	commentRepo, videoStats, userRepo, service := newTestService()
	user := newTestUser()
	videoID, _ := uuid.NewV4()
	parentID, _ := uuid.NewV4()
	parent := &models.Comment{ObjectId: parentID, VideoId: videoID, Text: "root"}

	commentRepo.On("FindByID", mock.Anything, parentID).Return(parent, nil)
	videoStats.On("Exists", mock.Anything, videoID).Return(true, nil)
	commentRepo.On("Create", mock.Anything, mock.MatchedBy(func(c *models.Comment) bool {
		return c.VideoId == videoID && c.ParentCommentId != nil && *c.ParentCommentId == parentID
	})).Return(nil)
	commentRepo.On("IncrementRepliesCount", mock.Anything, parentID, 1).Return(nil)
	videoStats.On("AttachComment", mock.Anything, videoID, mock.Anything).Return(nil)
	userRepo.On("FindProfile", mock.Anything, user.UserID).Return(profileFor(user.UserID, "Alice"), nil)

	result, err := service.AddReply(context.Background(), parentID, &models.CreateCommentRequest{Text: "agreed"}, user)

	require.NoError(t, err)
	assert.Equal(t, videoID.String(), result.VideoId)
	require.NotNil(t, result.ParentCommentId)
	assert.Equal(t, parentID.String(), *result.ParentCommentId)
	commentRepo.AssertExpectations(t)
	videoStats.AssertExpectations(t)
}

func TestAddReply_MissingVideo_ReturnsNotFound(t *testing.T) {
	commentRepo, videoStats, _, service := newTestService()
	videoID, _ := uuid.NewV4()
	parentID, _ := uuid.NewV4()
	parent := &models.Comment{ObjectId: parentID, VideoId: videoID, Text: "root"}

	commentRepo.On("FindByID", mock.Anything, parentID).Return(parent, nil)
	videoStats.On("Exists", mock.Anything, videoID).Return(false, nil)

	_, err := service.AddReply(context.Background(), parentID, &models.CreateCommentRequest{Text: "hi"}, newTestUser())

	assert.ErrorIs(t, err, commentsErrors.ErrVideoNotFound)
	commentRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestAddReply_NestedReply_ReturnsError(t *testing.T) {
	commentRepo, _, _, service := newTestService()
	rootID, _ := uuid.NewV4()
	replyID, _ := uuid.NewV4()
	videoID, _ := uuid.NewV4()
	reply := &models.Comment{ObjectId: replyID, VideoId: videoID, ParentCommentId: &rootID, Text: "a reply"}

	commentRepo.On("FindByID", mock.Anything, replyID).Return(reply, nil)

	_, err := service.AddReply(context.Background(), replyID, &models.CreateCommentRequest{Text: "nested"}, newTestUser())

	assert.ErrorIs(t, err, commentsErrors.ErrReplyDepthExceeded)
	commentRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestAddReply_MissingParent_ReturnsNotFound(t *testing.T) {
	commentRepo, _, _, service := newTestService()
	parentID, _ := uuid.NewV4()

	commentRepo.On("FindByID", mock.Anything, parentID).Return(nil, assert.AnError)
	_, err := service.AddReply(context.Background(), parentID, &models.CreateCommentRequest{Text: "hi"}, newTestUser())
	assert.Error(t, err)

	commentRepo.ExpectedCalls = nil
	commentRepo.On("FindByID", mock.Anything, parentID).Return(nil, errNotFound{})
	_, err = service.AddReply(context.Background(), parentID, &models.CreateCommentRequest{Text: "hi"}, newTestUser())
	assert.ErrorIs(t, err, commentsErrors.ErrCommentNotFound)
}

func TestGetCommentsByVideo_WithReplies_NestsThread(t *testing.T) {
	commentRepo, videoStats, userRepo, service := newTestService()
	viewer := newTestUser()
	videoID, _ := uuid.NewV4()
	rootNewID, _ := uuid.NewV4()
	rootOldID, _ := uuid.NewV4()
	replyAID, _ := uuid.NewV4()
	replyBID, _ := uuid.NewV4()
	authorID, _ := uuid.NewV4()

	roots := []*models.Comment{
		{ObjectId: rootNewID, VideoId: videoID, OwnerUserId: authorID, Text: "newest", CreatedDate: 200, LikedBy: []uuid.UUID{viewer.UserID}, LikesCount: 1},
		{ObjectId: rootOldID, VideoId: videoID, OwnerUserId: authorID, Text: "older", CreatedDate: 100, RepliesCount: 2},
	}
	replies := []*models.Comment{
		{ObjectId: replyAID, VideoId: videoID, OwnerUserId: authorID, ParentCommentId: &rootOldID, Text: "first reply", CreatedDate: 150},
		{ObjectId: replyBID, VideoId: videoID, OwnerUserId: authorID, ParentCommentId: &rootOldID, Text: "second reply", CreatedDate: 160},
	}

	videoStats.On("Exists", mock.Anything, videoID).Return(true, nil)
	commentRepo.On("FindRootsByVideoID", mock.Anything, videoID, 10, 0).Return(roots, nil)
	commentRepo.On("CountRootsByVideoID", mock.Anything, videoID).Return(int64(2), nil)
	commentRepo.On("FindRepliesByParentIDs", mock.Anything, []uuid.UUID{rootNewID, rootOldID}).Return(replies, nil)
	userRepo.On("FindProfiles", mock.Anything, mock.Anything).Return(map[uuid.UUID]*userModels.UserProfile{
		authorID: profileFor(authorID, "Bob"),
	}, nil)

	result, err := service.GetCommentsByVideo(context.Background(), videoID, nil, viewer)

	require.NoError(t, err)
	require.Len(t, result.Comments, 2)
	assert.Equal(t, "newest", result.Comments[0].Text)
	assert.True(t, result.Comments[0].Liked)
	assert.Empty(t, result.Comments[0].Replies)

	older := result.Comments[1]
	assert.Equal(t, "older", older.Text)
	assert.False(t, older.Liked)
	require.Len(t, older.Replies, 2)
	assert.Equal(t, "first reply", older.Replies[0].Text)
	assert.Equal(t, "second reply", older.Replies[1].Text)
	require.NotNil(t, older.Replies[0].User)
	assert.Equal(t, "Bob", older.Replies[0].User.DisplayName)

	assert.Equal(t, 2, result.Count)
	assert.False(t, result.HasMore)
}

func TestGetCommentsByVideo_AnonymousViewer_ServedFromCache(t *testing.T) {
	commentRepo := new(mocks.MockCommentRepository)
	videoStats := new(mocks.MockVideoStatsUpdater)
	userRepo := new(mocks.MockUserRepository)

	cacheConfig := &cache.CacheConfig{
		Enabled:         true,
		Backend:         cache.CacheTypeMemory,
		Prefix:          "test:",
		TTL:             time.Minute,
		CleanupInterval: time.Minute,
	}
	cacheService := cache.NewCacheService(cache.NewMemoryCache(cacheConfig), cacheConfig)
	service := NewCommentService(commentRepo, videoStats, userRepo, cacheService)

	videoID, _ := uuid.NewV4()
	rootID, _ := uuid.NewV4()
	authorID, _ := uuid.NewV4()
	roots := []*models.Comment{{ObjectId: rootID, VideoId: videoID, OwnerUserId: authorID, Text: "cached"}}

	videoStats.On("Exists", mock.Anything, videoID).Return(true, nil)
	commentRepo.On("FindRootsByVideoID", mock.Anything, videoID, 10, 0).Return(roots, nil).Once()
	commentRepo.On("CountRootsByVideoID", mock.Anything, videoID).Return(int64(1), nil).Once()
	commentRepo.On("FindRepliesByParentIDs", mock.Anything, []uuid.UUID{rootID}).Return([]*models.Comment(nil), nil).Once()
	userRepo.On("FindProfiles", mock.Anything, mock.Anything).
		Return(map[uuid.UUID]*userModels.UserProfile{authorID: profileFor(authorID, "Bob")}, nil).Once()

	first, err := service.GetCommentsByVideo(context.Background(), videoID, nil, nil)
	require.NoError(t, err)

	// Second read is served from the cache, so the Once expectations hold.
	second, err := service.GetCommentsByVideo(context.Background(), videoID, nil, nil)
	require.NoError(t, err)
	assert.Equal(t, first.Comments[0].Text, second.Comments[0].Text)
	commentRepo.AssertExpectations(t)
}

func TestGetCommentsByVideo_MissingVideo_ReturnsNotFound(t *testing.T) {
	_, videoStats, _, service := newTestService()
	videoID, _ := uuid.NewV4()

	videoStats.On("Exists", mock.Anything, videoID).Return(false, nil)

	_, err := service.GetCommentsByVideo(context.Background(), videoID, nil, nil)

	assert.ErrorIs(t, err, commentsErrors.ErrVideoNotFound)
}

func TestUpdateComment_UnauthorizedUser_ReturnsError(t *testing.T) {
	commentRepo, _, _, service := newTestService()
	owner := newTestUser()
	stranger := newTestUser()
	commentID, _ := uuid.NewV4()
	videoID, _ := uuid.NewV4()
	comment := &models.Comment{ObjectId: commentID, VideoId: videoID, OwnerUserId: owner.UserID, Text: "original"}

	commentRepo.On("FindByID", mock.Anything, commentID).Return(comment, nil)

	_, err := service.UpdateComment(context.Background(), commentID, &models.UpdateCommentRequest{Text: "hijacked"}, stranger)

	assert.ErrorIs(t, err, commentsErrors.ErrCommentOwnershipRequired)
	commentRepo.AssertNotCalled(t, "UpdateText", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestUpdateComment_ValidRequest_RewritesText(t *testing.T) {
	commentRepo, _, userRepo, service := newTestService()
	owner := newTestUser()
	commentID, _ := uuid.NewV4()
	videoID, _ := uuid.NewV4()
	comment := &models.Comment{ObjectId: commentID, VideoId: videoID, OwnerUserId: owner.UserID, Text: "original", CreatedDate: 100, LastUpdated: 100}

	commentRepo.On("FindByID", mock.Anything, commentID).Return(comment, nil)
	commentRepo.On("UpdateText", mock.Anything, commentID, "edited", mock.AnythingOfType("int64")).Return(nil)
	userRepo.On("FindProfile", mock.Anything, owner.UserID).Return(profileFor(owner.UserID, "Alice"), nil)

	result, err := service.UpdateComment(context.Background(), commentID, &models.UpdateCommentRequest{Text: "edited"}, owner)

	require.NoError(t, err)
	assert.Equal(t, "edited", result.Text)
	assert.GreaterOrEqual(t, result.LastUpdated, int64(100))
	commentRepo.AssertExpectations(t)
}

func TestDeleteComment_RootComment_CascadesToReplies(t *testing.T) {
	commentRepo, videoStats, _, service := newTestService()
	owner := newTestUser()
	commentID, _ := uuid.NewV4()
	videoID, _ := uuid.NewV4()
	replyAID, _ := uuid.NewV4()
	replyBID, _ := uuid.NewV4()
	comment := &models.Comment{ObjectId: commentID, VideoId: videoID, OwnerUserId: owner.UserID, RepliesCount: 2}
	replies := []*models.Comment{
		{ObjectId: replyAID, VideoId: videoID, ParentCommentId: &commentID},
		{ObjectId: replyBID, VideoId: videoID, ParentCommentId: &commentID},
	}

	commentRepo.On("FindByID", mock.Anything, commentID).Return(comment, nil)
	commentRepo.On("FindRepliesByParentIDs", mock.Anything, []uuid.UUID{commentID}).Return(replies, nil)
	commentRepo.On("DeleteRepliesByParentID", mock.Anything, commentID).Return(int64(2), nil)
	commentRepo.On("Delete", mock.Anything, commentID).Return(nil)
	// The root and both replies all come off the video document.
	videoStats.On("DetachComments", mock.Anything, videoID, []uuid.UUID{commentID, replyAID, replyBID}).Return(nil)

	err := service.DeleteComment(context.Background(), commentID, owner)

	require.NoError(t, err)
	commentRepo.AssertExpectations(t)
	videoStats.AssertExpectations(t)
}

func TestDeleteComment_Reply_AdjustsParentAndVideo(t *testing.T) {
	commentRepo, videoStats, _, service := newTestService()
	owner := newTestUser()
	replyID, _ := uuid.NewV4()
	parentID, _ := uuid.NewV4()
	videoID, _ := uuid.NewV4()
	reply := &models.Comment{ObjectId: replyID, VideoId: videoID, OwnerUserId: owner.UserID, ParentCommentId: &parentID}

	commentRepo.On("FindByID", mock.Anything, replyID).Return(reply, nil)
	commentRepo.On("Delete", mock.Anything, replyID).Return(nil)
	commentRepo.On("IncrementRepliesCount", mock.Anything, parentID, -1).Return(nil)
	videoStats.On("DetachComments", mock.Anything, videoID, []uuid.UUID{replyID}).Return(nil)

	err := service.DeleteComment(context.Background(), replyID, owner)

	require.NoError(t, err)
	commentRepo.AssertNotCalled(t, "DeleteRepliesByParentID", mock.Anything, mock.Anything)
	commentRepo.AssertExpectations(t)
	videoStats.AssertExpectations(t)
}

func TestDeleteComment_UnauthorizedUser_ReturnsError(t *testing.T) {
	commentRepo, _, _, service := newTestService()
	owner := newTestUser()
	stranger := newTestUser()
	commentID, _ := uuid.NewV4()
	comment := &models.Comment{ObjectId: commentID, OwnerUserId: owner.UserID}

	commentRepo.On("FindByID", mock.Anything, commentID).Return(comment, nil)

	err := service.DeleteComment(context.Background(), commentID, stranger)

	assert.ErrorIs(t, err, commentsErrors.ErrCommentOwnershipRequired)
	commentRepo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
}

func TestToggleLike_ValidComment_ReturnsNewCount(t *testing.T) {
	commentRepo, _, _, service := newTestService()
	user := newTestUser()
	commentID, _ := uuid.NewV4()

	commentRepo.On("ToggleLike", mock.Anything, commentID, user.UserID).Return(true, nil)
	commentRepo.On("FindByID", mock.Anything, commentID).Return(&models.Comment{ObjectId: commentID, LikesCount: 5}, nil)

	result, err := service.ToggleLike(context.Background(), commentID, user)

	require.NoError(t, err)
	assert.True(t, result.Liked)
	assert.Equal(t, int64(5), result.LikesCount)
}

func TestToggleLike_MissingComment_ReturnsError(t *testing.T) {
	commentRepo, _, _, service := newTestService()
	user := newTestUser()
	commentID, _ := uuid.NewV4()

	commentRepo.On("ToggleLike", mock.Anything, commentID, user.UserID).Return(false, errNotFound{})

	_, err := service.ToggleLike(context.Background(), commentID, user)

	assert.ErrorIs(t, err, commentsErrors.ErrCommentNotFound)
}
