package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/gofrs/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	commentsErrors "github.com/vidora/vidora-api/comments/errors"
	"github.com/vidora/vidora-api/comments/models"
	"github.com/vidora/vidora-api/internal/types"
)

// mockCommentService is a mock implementation of services.CommentService
type mockCommentService struct {
	mock.Mock
}

func (m *mockCommentService) AddComment(ctx context.Context, videoID uuid.UUID, req *models.CreateCommentRequest, user *types.UserContext) (*models.CommentResponse, error) {
	args := m.Called(ctx, videoID, req, user)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.CommentResponse), args.Error(1)
}

func (m *mockCommentService) AddReply(ctx context.Context, parentCommentID uuid.UUID, req *models.CreateCommentRequest, user *types.UserContext) (*models.CommentResponse, error) {
	args := m.Called(ctx, parentCommentID, req, user)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.CommentResponse), args.Error(1)
}

func (m *mockCommentService) GetCommentsByVideo(ctx context.Context, videoID uuid.UUID, filter *models.CommentQueryFilter, viewer *types.UserContext) (*models.CommentsListResponse, error) {
	args := m.Called(ctx, videoID, filter, viewer)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.CommentsListResponse), args.Error(1)
}

func (m *mockCommentService) UpdateComment(ctx context.Context, commentID uuid.UUID, req *models.UpdateCommentRequest, user *types.UserContext) (*models.CommentResponse, error) {
	args := m.Called(ctx, commentID, req, user)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.CommentResponse), args.Error(1)
}

func (m *mockCommentService) DeleteComment(ctx context.Context, commentID uuid.UUID, user *types.UserContext) error {
	args := m.Called(ctx, commentID, user)
	return args.Error(0)
}

func (m *mockCommentService) ToggleLike(ctx context.Context, commentID uuid.UUID, user *types.UserContext) (*models.LikeResponse, error) {
	args := m.Called(ctx, commentID, user)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.LikeResponse), args.Error(1)
}

func newTestApp(service *mockCommentService, user *types.UserContext) *fiber.App {
	app := fiber.New()
	if user != nil {
		app.Use(func(c *fiber.Ctx) error {
			c.Locals(types.UserCtxName, *user)
			return c.Next()
		})
	}

	handler := NewCommentHandler(service)
	app.Get("/videos/:videoId/comments", handler.GetComments)
	app.Post("/videos/:videoId/comments", handler.CreateComment)
	app.Post("/comments/:commentId/replies", handler.CreateReply)
	app.Put("/comments/:commentId", handler.UpdateComment)
	app.Delete("/comments/:commentId", handler.DeleteComment)
	app.Put("/comments/:commentId/like", handler.ToggleLike)
	return app
}

func testUser() *types.UserContext {
	userID, _ := uuid.NewV4()
	return &types.UserContext{UserID: userID, DisplayName: "Alice"}
}

func jsonRequest(method, target string, body interface{}) *http.Request {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, target, &buf)
	req.Header.Set(types.HeaderContentType, "application/json")
	return req
}

func TestCommentHandler_CreateComment_Success(t *testing.T) {
	service := new(mockCommentService)
	user := testUser()
	app := newTestApp(service, user)
	videoID, _ := uuid.NewV4()

	service.On("AddComment", mock.Anything, videoID, &models.CreateCommentRequest{Text: "nice"}, user).
		Return(&models.CommentResponse{Text: "nice", VideoId: videoID.String()}, nil)

	resp, err := app.Test(jsonRequest(http.MethodPost, "/videos/"+videoID.String()+"/comments", fiber.Map{"text": "nice"}))

	require.NoError(t, err)
	assert.Equal(t, http.StatusCreated, resp.StatusCode)

	var body models.CommentResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "nice", body.Text)
	service.AssertExpectations(t)
}

func TestCommentHandler_CreateComment_InvalidVideoID(t *testing.T) {
	service := new(mockCommentService)
	app := newTestApp(service, testUser())

	resp, err := app.Test(jsonRequest(http.MethodPost, "/videos/not-a-uuid/comments", fiber.Map{"text": "hi"}))

	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	service.AssertNotCalled(t, "AddComment", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestCommentHandler_MissingUserContext(t *testing.T) {
	service := new(mockCommentService)
	app := newTestApp(service, nil)
	videoID, _ := uuid.NewV4()

	resp, err := app.Test(jsonRequest(http.MethodPost, "/videos/"+videoID.String()+"/comments", fiber.Map{"text": "hi"}))

	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestCommentHandler_GetComments_WithPagination(t *testing.T) {
	service := new(mockCommentService)
	app := newTestApp(service, nil)
	videoID, _ := uuid.NewV4()

	service.On("GetCommentsByVideo", mock.Anything, videoID, &models.CommentQueryFilter{Page: 2, Limit: 5}, (*types.UserContext)(nil)).
		Return(&models.CommentsListResponse{Comments: []models.CommentResponse{}, Page: 2, Limit: 5}, nil)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/videos/"+videoID.String()+"/comments?page=2&limit=5", nil))

	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	service.AssertExpectations(t)
}

func TestCommentHandler_UpdateComment_AuthorizationError(t *testing.T) {
	service := new(mockCommentService)
	user := testUser()
	app := newTestApp(service, user)
	commentID, _ := uuid.NewV4()

	service.On("UpdateComment", mock.Anything, commentID, mock.Anything, user).
		Return(nil, commentsErrors.ErrCommentOwnershipRequired)

	resp, err := app.Test(jsonRequest(http.MethodPut, "/comments/"+commentID.String(), fiber.Map{"text": "edited"}))

	require.NoError(t, err)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}

func TestCommentHandler_DeleteComment_NotFound(t *testing.T) {
	service := new(mockCommentService)
	user := testUser()
	app := newTestApp(service, user)
	commentID, _ := uuid.NewV4()

	service.On("DeleteComment", mock.Anything, commentID, user).
		Return(commentsErrors.ErrCommentNotFound)

	resp, err := app.Test(jsonRequest(http.MethodDelete, "/comments/"+commentID.String(), nil))

	require.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestCommentHandler_ToggleLike_Success(t *testing.T) {
	service := new(mockCommentService)
	user := testUser()
	app := newTestApp(service, user)
	commentID, _ := uuid.NewV4()

	service.On("ToggleLike", mock.Anything, commentID, user).
		Return(&models.LikeResponse{Liked: true, LikesCount: 3}, nil)

	resp, err := app.Test(jsonRequest(http.MethodPut, "/comments/"+commentID.String()+"/like", nil))

	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var body models.LikeResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.True(t, body.Liked)
	assert.Equal(t, int64(3), body.LikesCount)
}

func TestCommentHandler_CreateReply_DepthError(t *testing.T) {
	service := new(mockCommentService)
	user := testUser()
	app := newTestApp(service, user)
	commentID, _ := uuid.NewV4()

	service.On("AddReply", mock.Anything, commentID, mock.Anything, user).
		Return(nil, commentsErrors.ErrReplyDepthExceeded)

	resp, err := app.Test(jsonRequest(http.MethodPost, "/comments/"+commentID.String()+"/replies", fiber.Map{"text": "nested"}))

	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}
