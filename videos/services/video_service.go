package services

import (
	"context"
	"fmt"
	"time"

	"github.com/gofrs/uuid"

	"github.com/vidora/vidora-api/internal/cache"
	"github.com/vidora/vidora-api/internal/pkg/log"
	platformconfig "github.com/vidora/vidora-api/internal/platform/config"
	"github.com/vidora/vidora-api/internal/types"
	userModels "github.com/vidora/vidora-api/users/models"
	usersRepository "github.com/vidora/vidora-api/users/repository"
	videosErrors "github.com/vidora/vidora-api/videos/errors"
	"github.com/vidora/vidora-api/videos/models"
	videoRepository "github.com/vidora/vidora-api/videos/repository"
)

const (
	defaultVideoLimit = 12
	maxVideoLimit     = 100
	defaultVideoPage  = 1

	listCacheTTL = time.Minute
)

// videoService implements the VideoService interface.
type videoService struct {
	videoRepo    videoRepository.VideoRepository
	userRepo     usersRepository.UserRepository
	cacheService *cache.CacheService
	config       *platformconfig.Config
}

// NewVideoService wires the video service with its dependencies.
func NewVideoService(videoRepo videoRepository.VideoRepository, userRepo usersRepository.UserRepository, cacheService *cache.CacheService, cfg *platformconfig.Config) VideoService {
	return &videoService{
		videoRepo:    videoRepo,
		userRepo:     userRepo,
		cacheService: cacheService,
		config:       cfg,
	}
}

func sanitizeVideoFilter(filter *models.VideoQueryFilter) {
	if filter.Page < 1 {
		filter.Page = defaultVideoPage
	}
	if filter.Limit < 1 {
		filter.Limit = defaultVideoLimit
	}
	if filter.Limit > maxVideoLimit {
		filter.Limit = maxVideoLimit
	}
	switch filter.SortBy {
	case models.SortNewest, models.SortOldest, models.SortPopular:
	default:
		filter.SortBy = models.SortNewest
	}
}

func listCacheKey(filter *models.VideoQueryFilter) string {
	return fmt.Sprintf("videos:list:%s:%s:%s:%s:%d:%d",
		filter.Search, filter.Category, filter.Uploader, filter.SortBy, filter.Page, filter.Limit)
}

func (s *videoService) invalidateVideoCache(ctx context.Context, videoID uuid.UUID) {
	if s.cacheService == nil {
		return
	}
	if err := s.cacheService.InvalidatePattern(ctx, "videos:list:*"); err != nil && err != cache.ErrCacheDisabled {
		log.Warn("Cache invalidation failed for video lists: %v", err)
	}
	if err := s.cacheService.Invalidate(ctx, "videos:detail:"+videoID.String()); err != nil && err != cache.ErrCacheDisabled {
		log.Warn("Cache invalidation failed for video %s: %v", videoID.String(), err)
	}
}

func isLikedBy(video *models.Video, viewer *types.UserContext) bool {
	if viewer == nil {
		return false
	}
	for _, id := range video.LikedBy {
		if id == viewer.UserID {
			return true
		}
	}
	return false
}

func (s *videoService) convertToVideoResponse(video *models.Video, viewer *types.UserContext, profile *userModels.UserProfile) models.VideoResponse {
	response := models.VideoResponse{
		ObjectId:      video.ObjectId.String(),
		Title:         video.Title,
		Description:   video.Description,
		URL:           video.URL,
		Thumbnail:     video.Thumbnail,
		Category:      video.Category,
		CommentsCount: video.CommentsCount,
		LikesCount:    video.LikesCount,
		ViewsCount:    video.ViewsCount,
		Liked:         isLikedBy(video, viewer),
		CreatedDate:   video.CreatedDate,
		LastUpdated:   video.LastUpdated,
	}
	if profile != nil {
		p := profile.ToResponse()
		response.User = &p
	}
	return response
}

// GetVideo returns a single video with its creator profile joined in.
func (s *videoService) GetVideo(ctx context.Context, videoID uuid.UUID, viewer *types.UserContext) (*models.VideoResponse, error) {
	video, err := s.videoRepo.FindByID(ctx, videoID)
	if err != nil {
		if err.Error() == "video not found" {
			return nil, videosErrors.ErrVideoNotFound
		}
		return nil, fmt.Errorf("failed to find video: %w", err)
	}

	profile, err := s.userRepo.FindProfile(ctx, video.OwnerUserId)
	if err != nil {
		// A missing creator profile should not hide the video.
		log.Warn("Failed to load creator profile for video %s: %v", videoID.String(), err)
		profile = nil
	}

	response := s.convertToVideoResponse(video, viewer, profile)

	if viewer != nil {
		if viewerProfile, err := s.userRepo.FindProfile(ctx, viewer.UserID); err == nil {
			for _, saved := range viewerProfile.SavedVideos {
				if saved == videoID.String() {
					response.Saved = true
					break
				}
			}
		}
	}

	return &response, nil
}

// GetVideos lists the catalog with search, sorting and pagination.
// Anonymous listings are cached; authenticated ones carry per-viewer like
// flags and bypass the cache.
func (s *videoService) GetVideos(ctx context.Context, filter *models.VideoQueryFilter, viewer *types.UserContext) (*models.VideosListResponse, error) {
	if filter == nil {
		filter = &models.VideoQueryFilter{}
	}
	sanitizeVideoFilter(filter)

	cacheable := viewer == nil && s.cacheService != nil
	cacheKey := listCacheKey(filter)

	if cacheable {
		var cached models.VideosListResponse
		if err := s.cacheService.GetCached(ctx, cacheKey, &cached); err == nil {
			return &cached, nil
		}
	}

	repoFilter := videoRepository.VideoFilter{Search: filter.Search, Category: filter.Category}
	if filter.Uploader != "" {
		uploaderID, err := uuid.FromString(filter.Uploader)
		if err != nil {
			return nil, videosErrors.ErrInvalidVideoData
		}
		repoFilter.OwnerUserID = &uploaderID
	}
	limit := filter.Limit
	offset := (filter.Page - 1) * filter.Limit

	videos, err := s.videoRepo.Find(ctx, repoFilter, filter.SortBy, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to query videos: %w", err)
	}

	totalCount, err := s.videoRepo.Count(ctx, repoFilter)
	if err != nil {
		return nil, fmt.Errorf("failed to count videos: %w", err)
	}

	profiles, err := s.loadCreatorProfiles(ctx, videos)
	if err != nil {
		return nil, err
	}

	responses := make([]models.VideoResponse, len(videos))
	for i, video := range videos {
		responses[i] = s.convertToVideoResponse(video, viewer, profiles[video.OwnerUserId])
	}

	result := &models.VideosListResponse{
		Videos:  responses,
		Count:   int(totalCount),
		Page:    filter.Page,
		Limit:   filter.Limit,
		HasMore: int64(offset+len(videos)) < totalCount,
	}

	if cacheable {
		_ = s.cacheService.CacheData(ctx, cacheKey, result, listCacheTTL)
	}

	return result, nil
}

func (s *videoService) loadCreatorProfiles(ctx context.Context, videos []*models.Video) (map[uuid.UUID]*userModels.UserProfile, error) {
	seen := make(map[uuid.UUID]bool, len(videos))
	ownerIDs := make([]uuid.UUID, 0, len(videos))
	for _, video := range videos {
		if !seen[video.OwnerUserId] {
			seen[video.OwnerUserId] = true
			ownerIDs = append(ownerIDs, video.OwnerUserId)
		}
	}

	profiles, err := s.userRepo.FindProfiles(ctx, ownerIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to load creator profiles: %w", err)
	}
	return profiles, nil
}

// ToggleLike flips the viewer's like on a video and reports the new state.
func (s *videoService) ToggleLike(ctx context.Context, videoID uuid.UUID, user *types.UserContext) (*models.LikeResponse, error) {
	if user == nil {
		return nil, videosErrors.ErrInvalidUserContext
	}

	liked, err := s.videoRepo.ToggleLike(ctx, videoID, user.UserID)
	if err != nil {
		if err.Error() == "video not found" {
			return nil, videosErrors.ErrVideoNotFound
		}
		return nil, fmt.Errorf("failed to toggle like: %w", err)
	}

	// Mirror onto the user document so saved/liked listings stay cheap.
	if err := s.userRepo.SetVideoLiked(ctx, user.UserID, videoID, liked); err != nil {
		log.Warn("Failed to mirror liked video %s for user %s: %v", videoID.String(), user.UserID.String(), err)
	}

	s.invalidateVideoCache(ctx, videoID)

	video, err := s.videoRepo.FindByID(ctx, videoID)
	if err != nil {
		return nil, fmt.Errorf("failed to reload video: %w", err)
	}

	return &models.LikeResponse{Liked: liked, LikesCount: video.LikesCount}, nil
}

// ToggleSaved flips the video's presence in the viewer's saved list.
func (s *videoService) ToggleSaved(ctx context.Context, videoID uuid.UUID, user *types.UserContext) (*models.SaveResponse, error) {
	if user == nil {
		return nil, videosErrors.ErrInvalidUserContext
	}

	exists, err := s.videoRepo.Exists(ctx, videoID)
	if err != nil {
		return nil, fmt.Errorf("failed to check video: %w", err)
	}
	if !exists {
		return nil, videosErrors.ErrVideoNotFound
	}

	saved, err := s.userRepo.ToggleSavedVideo(ctx, user.UserID, videoID)
	if err != nil {
		if err.Error() == "user not found" {
			return nil, videosErrors.ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to toggle saved video: %w", err)
	}

	return &models.SaveResponse{Saved: saved}, nil
}

// RegisterView counts a view, deduplicated per authenticated viewer.
func (s *videoService) RegisterView(ctx context.Context, videoID uuid.UUID, viewer *types.UserContext) (*models.ViewResponse, error) {
	var viewerID *uuid.UUID
	if viewer != nil {
		viewerID = &viewer.UserID
	}

	if _, err := s.videoRepo.RegisterView(ctx, videoID, viewerID); err != nil {
		if err.Error() == "video not found" {
			return nil, videosErrors.ErrVideoNotFound
		}
		return nil, fmt.Errorf("failed to register view: %w", err)
	}

	video, err := s.videoRepo.FindByID(ctx, videoID)
	if err != nil {
		return nil, fmt.Errorf("failed to reload video: %w", err)
	}

	return &models.ViewResponse{ViewsCount: video.ViewsCount}, nil
}
