package services

import (
	"context"

	uuid "github.com/gofrs/uuid"
	"github.com/vidora/vidora-api/internal/types"
	"github.com/vidora/vidora-api/videos/models"
)

// VideoService defines the interface for video catalog and engagement
// operations. The viewer argument may be nil for unauthenticated reads.
type VideoService interface {
	// Read operations
	GetVideo(ctx context.Context, videoID uuid.UUID, viewer *types.UserContext) (*models.VideoResponse, error)
	GetVideos(ctx context.Context, filter *models.VideoQueryFilter, viewer *types.UserContext) (*models.VideosListResponse, error)

	// Engagement operations
	ToggleLike(ctx context.Context, videoID uuid.UUID, user *types.UserContext) (*models.LikeResponse, error)
	ToggleSaved(ctx context.Context, videoID uuid.UUID, user *types.UserContext) (*models.SaveResponse, error)
	RegisterView(ctx context.Context, videoID uuid.UUID, viewer *types.UserContext) (*models.ViewResponse, error)
}
