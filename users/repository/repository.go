// Copyright (c) 2025 Vidora
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package repository

import (
	"context"

	"github.com/gofrs/uuid"
	"github.com/vidora/vidora-api/users/models"
)

// UserRepository defines the interface for user profile lookups and the
// engagement counters stored on user documents.
type UserRepository interface {
	// FindProfile retrieves a single user profile by ID
	FindProfile(ctx context.Context, userID uuid.UUID) (*models.UserProfile, error)

	// FindProfiles bulk loads profiles for a set of user IDs.
	// Missing users are simply absent from the returned map.
	FindProfiles(ctx context.Context, userIDs []uuid.UUID) (map[uuid.UUID]*models.UserProfile, error)

	// ToggleSavedVideo adds the video to the user's saved list if absent,
	// removes it if present. Returns true when the video ended up saved.
	ToggleSavedVideo(ctx context.Context, userID uuid.UUID, videoID uuid.UUID) (bool, error)

	// SetVideoLiked mirrors the like state of a video into the user's
	// likedVideos set
	SetVideoLiked(ctx context.Context, userID uuid.UUID, videoID uuid.UUID, liked bool) error

	// IncrementSubscribersCount atomically adjusts a creator's subscriber
	// counter. Negative deltas never take the counter below zero.
	IncrementSubscribersCount(ctx context.Context, userID uuid.UUID, delta int) error
}
