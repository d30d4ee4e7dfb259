// Copyright (c) 2025 Vidora
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package repository

import (
	"context"

	"github.com/gofrs/uuid"
	"github.com/vidora/vidora-api/videos/models"
)

// VideoFilter represents filtering criteria for querying videos
type VideoFilter struct {
	Search      string
	Category    string
	OwnerUserID *uuid.UUID
}

// VideoRepository defines the interface for video-specific database
// operations. It also implements shared/interfaces.VideoStatsUpdater for
// the comments service.
type VideoRepository interface {
	// FindByID retrieves a video by its ID
	FindByID(ctx context.Context, videoID uuid.UUID) (*models.Video, error)

	// Exists reports whether the video document is present
	Exists(ctx context.Context, videoID uuid.UUID) (bool, error)

	// Find retrieves videos matching the filter with pagination.
	// sortBy is one of models.SortNewest, SortOldest, SortPopular.
	Find(ctx context.Context, filter VideoFilter, sortBy string, limit, offset int) ([]*models.Video, error)

	// Count returns the number of videos matching the filter
	Count(ctx context.Context, filter VideoFilter) (int64, error)

	// AttachComment appends the comment id to the video's comments array
	// and bumps the denormalized comment counter in one atomic update.
	AttachComment(ctx context.Context, videoID uuid.UUID, commentID uuid.UUID) error

	// DetachComments removes the comment ids from the video's comments
	// array and decrements the comment counter by their number, floored
	// at zero.
	DetachComments(ctx context.Context, videoID uuid.UUID, commentIDs []uuid.UUID) error

	// ToggleLike likes the video for the user if not yet liked, otherwise
	// removes the like. Both the membership check and the counter update
	// happen in a single atomic operation. Returns true when the video
	// ended up liked.
	ToggleLike(ctx context.Context, videoID, userID uuid.UUID) (bool, error)

	// RegisterView increments the view counter. When userID is non-nil the
	// view is deduplicated per user. Returns true if the counter moved.
	RegisterView(ctx context.Context, videoID uuid.UUID, userID *uuid.UUID) (bool, error)
}
