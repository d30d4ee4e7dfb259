package services

import (
	"context"

	"github.com/gofrs/uuid"
	"github.com/vidora/vidora-api/comments/models"
	"github.com/vidora/vidora-api/internal/types"
)

// CommentService defines the interface for comment business logic
type CommentService interface {
	// AddComment creates a top-level comment on a video
	AddComment(ctx context.Context, videoID uuid.UUID, req *models.CreateCommentRequest, user *types.UserContext) (*models.CommentResponse, error)

	// AddReply creates a reply under a top-level comment
	AddReply(ctx context.Context, parentCommentID uuid.UUID, req *models.CreateCommentRequest, user *types.UserContext) (*models.CommentResponse, error)

	// GetCommentsByVideo returns a video's comment thread: top-level
	// comments newest first with replies nested oldest first
	GetCommentsByVideo(ctx context.Context, videoID uuid.UUID, filter *models.CommentQueryFilter, viewer *types.UserContext) (*models.CommentsListResponse, error)

	// UpdateComment edits a comment's text, owner only
	UpdateComment(ctx context.Context, commentID uuid.UUID, req *models.UpdateCommentRequest, user *types.UserContext) (*models.CommentResponse, error)

	// DeleteComment removes a comment, owner only; deleting a top-level
	// comment removes its replies as well
	DeleteComment(ctx context.Context, commentID uuid.UUID, user *types.UserContext) error

	// ToggleLike flips the user's like on a comment
	ToggleLike(ctx context.Context, commentID uuid.UUID, user *types.UserContext) (*models.LikeResponse, error)
}
