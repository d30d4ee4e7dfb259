// Copyright (c) 2025 Vidora
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package repository

import (
	"context"

	"github.com/gofrs/uuid"
	"github.com/vidora/vidora-api/comments/models"
)

// CommentRepository defines the interface for comment data operations.
// Threads are one level deep: top-level comments have a nil
// parentCommentId, replies point at a top-level comment.
type CommentRepository interface {
	// Create persists a new comment or reply
	Create(ctx context.Context, comment *models.Comment) error

	// FindByID retrieves a single comment by its identifier
	FindByID(ctx context.Context, commentID uuid.UUID) (*models.Comment, error)

	// FindRootsByVideoID retrieves top-level comments for a video,
	// newest first
	FindRootsByVideoID(ctx context.Context, videoID uuid.UUID, limit, offset int) ([]*models.Comment, error)

	// FindRepliesByParentIDs retrieves the replies for a set of top-level
	// comments, oldest first
	FindRepliesByParentIDs(ctx context.Context, parentIDs []uuid.UUID) ([]*models.Comment, error)

	// CountRootsByVideoID counts the top-level comments for a video
	CountRootsByVideoID(ctx context.Context, videoID uuid.UUID) (int64, error)

	// CountRepliesByParentID counts the replies under a top-level comment
	CountRepliesByParentID(ctx context.Context, parentID uuid.UUID) (int64, error)

	// UpdateText replaces a comment's text and bumps lastUpdated
	UpdateText(ctx context.Context, commentID uuid.UUID, text string, lastUpdated int64) error

	// Delete removes a single comment
	Delete(ctx context.Context, commentID uuid.UUID) error

	// DeleteRepliesByParentID removes every reply under a top-level
	// comment and returns how many were removed
	DeleteRepliesByParentID(ctx context.Context, parentID uuid.UUID) (int64, error)

	// ToggleLike flips the user's like on a comment atomically and
	// reports whether the comment ended up liked
	ToggleLike(ctx context.Context, commentID, userID uuid.UUID) (bool, error)

	// IncrementRepliesCount adjusts a comment's denormalized reply
	// counter; negative deltas never push the counter below zero
	IncrementRepliesCount(ctx context.Context, commentID uuid.UUID, delta int) error
}
