package interfaces

import (
	"context"

	"github.com/gofrs/uuid"
)

// VideoStatsUpdater is implemented by the videos repository and consumed by
// the comments service to keep the denormalized comment references and
// commentsCount on video documents in sync without a package cycle.
type VideoStatsUpdater interface {
	// Exists reports whether the video document is present
	Exists(ctx context.Context, videoID uuid.UUID) (bool, error)

	// AttachComment appends the comment id to the video's comments array
	// and increments commentsCount in a single atomic update.
	AttachComment(ctx context.Context, videoID uuid.UUID, commentID uuid.UUID) error

	// DetachComments removes the comment ids from the video's comments
	// array and decrements commentsCount by their number, never taking
	// the counter below zero.
	DetachComments(ctx context.Context, videoID uuid.UUID, commentIDs []uuid.UUID) error
}
