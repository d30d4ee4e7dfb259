package services

import (
	"context"
	"fmt"
	"time"

	"github.com/gofrs/uuid"

	commentsErrors "github.com/vidora/vidora-api/comments/errors"
	"github.com/vidora/vidora-api/comments/models"
	commentRepository "github.com/vidora/vidora-api/comments/repository"
	"github.com/vidora/vidora-api/comments/validation"
	"github.com/vidora/vidora-api/internal/cache"
	"github.com/vidora/vidora-api/internal/pkg/log"
	"github.com/vidora/vidora-api/internal/types"
	sharedInterfaces "github.com/vidora/vidora-api/shared/interfaces"
	userModels "github.com/vidora/vidora-api/users/models"
	usersRepository "github.com/vidora/vidora-api/users/repository"
)

const threadCacheTTL = time.Minute

// commentService implements the CommentService interface.
type commentService struct {
	commentRepo  commentRepository.CommentRepository
	videoStats   sharedInterfaces.VideoStatsUpdater
	userRepo     usersRepository.UserRepository
	cacheService *cache.CacheService
}

// NewCommentService wires the comment service with its dependencies.
// cacheService may be nil when caching is disabled.
func NewCommentService(commentRepo commentRepository.CommentRepository, videoStats sharedInterfaces.VideoStatsUpdater, userRepo usersRepository.UserRepository, cacheService *cache.CacheService) CommentService {
	return &commentService{
		commentRepo:  commentRepo,
		videoStats:   videoStats,
		userRepo:     userRepo,
		cacheService: cacheService,
	}
}

func threadCacheKey(videoID uuid.UUID, filter *models.CommentQueryFilter) string {
	return fmt.Sprintf("comments:thread:%s:%d:%d", videoID.String(), filter.Page, filter.Limit)
}

func (s *commentService) invalidateThreadCache(ctx context.Context, videoID uuid.UUID) {
	if s.cacheService == nil {
		return
	}
	pattern := "comments:thread:" + videoID.String() + ":*"
	if err := s.cacheService.InvalidatePattern(ctx, pattern); err != nil && err != cache.ErrCacheDisabled {
		log.Warn("Cache invalidation failed for video %s threads: %v", videoID.String(), err)
	}
}

func isCommentLikedBy(comment *models.Comment, viewer *types.UserContext) bool {
	if viewer == nil {
		return false
	}
	for _, id := range comment.LikedBy {
		if id == viewer.UserID {
			return true
		}
	}
	return false
}

func (s *commentService) convertToCommentResponse(comment *models.Comment, viewer *types.UserContext, profile *userModels.UserProfile) models.CommentResponse {
	response := models.CommentResponse{
		ObjectId:     comment.ObjectId.String(),
		VideoId:      comment.VideoId.String(),
		Text:         comment.Text,
		LikesCount:   comment.LikesCount,
		RepliesCount: comment.RepliesCount,
		Liked:        isCommentLikedBy(comment, viewer),
		CreatedDate:  comment.CreatedDate,
		LastUpdated:  comment.LastUpdated,
	}
	if comment.ParentCommentId != nil {
		parentID := comment.ParentCommentId.String()
		response.ParentCommentId = &parentID
	}
	if profile != nil {
		p := profile.ToResponse()
		response.User = &p
	}
	return response
}

// loadOwnerProfile joins the author's profile. A missing profile never
// hides the comment itself.
func (s *commentService) loadOwnerProfile(ctx context.Context, comment *models.Comment) *userModels.UserProfile {
	profile, err := s.userRepo.FindProfile(ctx, comment.OwnerUserId)
	if err != nil {
		log.Warn("Failed to load profile for comment %s owner: %v", comment.ObjectId.String(), err)
		return nil
	}
	return profile
}

// AddComment creates a top-level comment and bumps the video's comment
// counter.
func (s *commentService) AddComment(ctx context.Context, videoID uuid.UUID, req *models.CreateCommentRequest, user *types.UserContext) (*models.CommentResponse, error) {
	if user == nil {
		return nil, commentsErrors.ErrInvalidUserContext
	}
	if err := validation.ValidateCreateCommentRequest(req); err != nil {
		return nil, fmt.Errorf("%w: %v", commentsErrors.ErrInvalidCommentData, err)
	}

	exists, err := s.videoStats.Exists(ctx, videoID)
	if err != nil {
		return nil, fmt.Errorf("failed to check video: %w", err)
	}
	if !exists {
		return nil, commentsErrors.ErrVideoNotFound
	}

	commentID, err := uuid.NewV4()
	if err != nil {
		return nil, fmt.Errorf("failed to generate comment ID: %w", err)
	}

	now := time.Now().Unix()
	comment := &models.Comment{
		ObjectId:    commentID,
		OwnerUserId: user.UserID,
		VideoId:     videoID,
		Text:        req.Text,
		LikedBy:     []uuid.UUID{},
		CreatedDate: now,
		LastUpdated: now,
	}

	if err := s.commentRepo.Create(ctx, comment); err != nil {
		return nil, fmt.Errorf("failed to create comment: %w", err)
	}

	// The reference and counter live on another document, so the update is
	// best effort.
	if err := s.videoStats.AttachComment(ctx, videoID, comment.ObjectId); err != nil {
		log.Warn("Failed to attach comment %s to video %s: %v", comment.ObjectId.String(), videoID.String(), err)
	}

	s.invalidateThreadCache(ctx, videoID)

	response := s.convertToCommentResponse(comment, user, s.loadOwnerProfile(ctx, comment))
	return &response, nil
}

// AddReply creates a reply under a top-level comment. Replies to replies
// are rejected, so threads stay one level deep.
func (s *commentService) AddReply(ctx context.Context, parentCommentID uuid.UUID, req *models.CreateCommentRequest, user *types.UserContext) (*models.CommentResponse, error) {
	if user == nil {
		return nil, commentsErrors.ErrInvalidUserContext
	}
	if err := validation.ValidateCreateCommentRequest(req); err != nil {
		return nil, fmt.Errorf("%w: %v", commentsErrors.ErrInvalidCommentData, err)
	}

	parent, err := s.commentRepo.FindByID(ctx, parentCommentID)
	if err != nil {
		if err.Error() == "comment not found" {
			return nil, commentsErrors.ErrCommentNotFound
		}
		return nil, fmt.Errorf("failed to find parent comment: %w", err)
	}
	if parent.ParentCommentId != nil {
		return nil, commentsErrors.ErrReplyDepthExceeded
	}

	exists, err := s.videoStats.Exists(ctx, parent.VideoId)
	if err != nil {
		return nil, fmt.Errorf("failed to check video: %w", err)
	}
	if !exists {
		return nil, commentsErrors.ErrVideoNotFound
	}

	replyID, err := uuid.NewV4()
	if err != nil {
		return nil, fmt.Errorf("failed to generate reply ID: %w", err)
	}

	now := time.Now().Unix()
	parentID := parent.ObjectId
	reply := &models.Comment{
		ObjectId:        replyID,
		OwnerUserId:     user.UserID,
		VideoId:         parent.VideoId,
		ParentCommentId: &parentID,
		Text:            req.Text,
		LikedBy:         []uuid.UUID{},
		CreatedDate:     now,
		LastUpdated:     now,
	}

	if err := s.commentRepo.Create(ctx, reply); err != nil {
		return nil, fmt.Errorf("failed to create reply: %w", err)
	}

	if err := s.commentRepo.IncrementRepliesCount(ctx, parent.ObjectId, 1); err != nil {
		log.Warn("Failed to increment replies count for comment %s: %v", parent.ObjectId.String(), err)
	}
	if err := s.videoStats.AttachComment(ctx, parent.VideoId, reply.ObjectId); err != nil {
		log.Warn("Failed to attach reply %s to video %s: %v", reply.ObjectId.String(), parent.VideoId.String(), err)
	}

	s.invalidateThreadCache(ctx, parent.VideoId)

	response := s.convertToCommentResponse(reply, user, s.loadOwnerProfile(ctx, reply))
	return &response, nil
}

// GetCommentsByVideo returns the thread for a video: a page of top-level
// comments newest first, each carrying its replies oldest first, with
// author profiles and per-viewer like flags joined in.
func (s *commentService) GetCommentsByVideo(ctx context.Context, videoID uuid.UUID, filter *models.CommentQueryFilter, viewer *types.UserContext) (*models.CommentsListResponse, error) {
	if filter == nil {
		filter = &models.CommentQueryFilter{}
	}
	if err := validation.ValidateCommentQueryFilter(filter); err != nil {
		return nil, fmt.Errorf("%w: %v", commentsErrors.ErrInvalidCommentData, err)
	}

	exists, err := s.videoStats.Exists(ctx, videoID)
	if err != nil {
		return nil, fmt.Errorf("failed to check video: %w", err)
	}
	if !exists {
		return nil, commentsErrors.ErrVideoNotFound
	}

	// Authenticated reads carry per-viewer liked flags and bypass the cache.
	cacheable := viewer == nil && s.cacheService != nil
	cacheKey := threadCacheKey(videoID, filter)

	if cacheable {
		var cached models.CommentsListResponse
		if err := s.cacheService.GetCached(ctx, cacheKey, &cached); err == nil {
			return &cached, nil
		}
	}

	limit := filter.Limit
	offset := (filter.Page - 1) * filter.Limit

	roots, err := s.commentRepo.FindRootsByVideoID(ctx, videoID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to query comments: %w", err)
	}

	totalRoots, err := s.commentRepo.CountRootsByVideoID(ctx, videoID)
	if err != nil {
		return nil, fmt.Errorf("failed to count comments: %w", err)
	}

	parentIDs := make([]uuid.UUID, len(roots))
	for i, root := range roots {
		parentIDs[i] = root.ObjectId
	}

	replies, err := s.commentRepo.FindRepliesByParentIDs(ctx, parentIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to query replies: %w", err)
	}

	profiles, err := s.loadAuthorProfiles(ctx, roots, replies)
	if err != nil {
		return nil, err
	}

	// Replies come back oldest first, so appending preserves their order.
	repliesByParent := make(map[uuid.UUID][]models.CommentResponse)
	for _, reply := range replies {
		if reply.ParentCommentId == nil {
			continue
		}
		repliesByParent[*reply.ParentCommentId] = append(
			repliesByParent[*reply.ParentCommentId],
			s.convertToCommentResponse(reply, viewer, profiles[reply.OwnerUserId]),
		)
	}

	responses := make([]models.CommentResponse, len(roots))
	for i, root := range roots {
		response := s.convertToCommentResponse(root, viewer, profiles[root.OwnerUserId])
		response.Replies = repliesByParent[root.ObjectId]
		responses[i] = response
	}

	result := &models.CommentsListResponse{
		Comments: responses,
		Count:    int(totalRoots),
		Page:     filter.Page,
		Limit:    filter.Limit,
		HasMore:  int64(offset+len(roots)) < totalRoots,
	}

	if cacheable {
		_ = s.cacheService.CacheData(ctx, cacheKey, result, threadCacheTTL)
	}

	return result, nil
}

func (s *commentService) loadAuthorProfiles(ctx context.Context, roots, replies []*models.Comment) (map[uuid.UUID]*userModels.UserProfile, error) {
	seen := make(map[uuid.UUID]bool)
	var ownerIDs []uuid.UUID
	collect := func(comments []*models.Comment) {
		for _, comment := range comments {
			if !seen[comment.OwnerUserId] {
				seen[comment.OwnerUserId] = true
				ownerIDs = append(ownerIDs, comment.OwnerUserId)
			}
		}
	}
	collect(roots)
	collect(replies)

	profiles, err := s.userRepo.FindProfiles(ctx, ownerIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to load author profiles: %w", err)
	}
	return profiles, nil
}

// UpdateComment edits a comment's text. Only the author may edit.
func (s *commentService) UpdateComment(ctx context.Context, commentID uuid.UUID, req *models.UpdateCommentRequest, user *types.UserContext) (*models.CommentResponse, error) {
	if user == nil {
		return nil, commentsErrors.ErrInvalidUserContext
	}
	if err := validation.ValidateUpdateCommentRequest(req); err != nil {
		return nil, fmt.Errorf("%w: %v", commentsErrors.ErrInvalidCommentData, err)
	}

	comment, err := s.commentRepo.FindByID(ctx, commentID)
	if err != nil {
		if err.Error() == "comment not found" {
			return nil, commentsErrors.ErrCommentNotFound
		}
		return nil, fmt.Errorf("failed to find comment: %w", err)
	}

	if comment.OwnerUserId != user.UserID {
		return nil, commentsErrors.ErrCommentOwnershipRequired
	}

	now := time.Now().Unix()
	if err := s.commentRepo.UpdateText(ctx, commentID, req.Text, now); err != nil {
		if err.Error() == "comment not found" {
			return nil, commentsErrors.ErrCommentNotFound
		}
		return nil, fmt.Errorf("failed to update comment: %w", err)
	}

	comment.Text = req.Text
	comment.LastUpdated = now

	s.invalidateThreadCache(ctx, comment.VideoId)

	response := s.convertToCommentResponse(comment, user, s.loadOwnerProfile(ctx, comment))
	return &response, nil
}

// DeleteComment removes a comment. Only the author may delete. Deleting a
// top-level comment removes its replies, and the video's comment counter
// absorbs the whole subtree.
func (s *commentService) DeleteComment(ctx context.Context, commentID uuid.UUID, user *types.UserContext) error {
	if user == nil {
		return commentsErrors.ErrInvalidUserContext
	}

	comment, err := s.commentRepo.FindByID(ctx, commentID)
	if err != nil {
		if err.Error() == "comment not found" {
			return commentsErrors.ErrCommentNotFound
		}
		return fmt.Errorf("failed to find comment: %w", err)
	}

	if comment.OwnerUserId != user.UserID {
		return commentsErrors.ErrCommentOwnershipRequired
	}

	removed := []uuid.UUID{commentID}
	if comment.ParentCommentId == nil {
		// Collect the reply ids first so their references on the video
		// document can be removed along with the root's.
		replies, err := s.commentRepo.FindRepliesByParentIDs(ctx, []uuid.UUID{commentID})
		if err != nil {
			return fmt.Errorf("failed to query replies: %w", err)
		}
		for _, reply := range replies {
			removed = append(removed, reply.ObjectId)
		}
		if _, err := s.commentRepo.DeleteRepliesByParentID(ctx, commentID); err != nil {
			return fmt.Errorf("failed to delete replies: %w", err)
		}
	}

	if err := s.commentRepo.Delete(ctx, commentID); err != nil {
		if err.Error() == "comment not found" {
			return commentsErrors.ErrCommentNotFound
		}
		return fmt.Errorf("failed to delete comment: %w", err)
	}

	if comment.ParentCommentId != nil {
		if err := s.commentRepo.IncrementRepliesCount(ctx, *comment.ParentCommentId, -1); err != nil {
			log.Warn("Failed to decrement replies count for comment %s: %v", comment.ParentCommentId.String(), err)
		}
	}
	if err := s.videoStats.DetachComments(ctx, comment.VideoId, removed); err != nil {
		log.Warn("Failed to detach comments from video %s: %v", comment.VideoId.String(), err)
	}

	s.invalidateThreadCache(ctx, comment.VideoId)

	return nil
}

// ToggleLike flips the user's like on a comment and reports the new state.
func (s *commentService) ToggleLike(ctx context.Context, commentID uuid.UUID, user *types.UserContext) (*models.LikeResponse, error) {
	if user == nil {
		return nil, commentsErrors.ErrInvalidUserContext
	}

	liked, err := s.commentRepo.ToggleLike(ctx, commentID, user.UserID)
	if err != nil {
		if err.Error() == "comment not found" {
			return nil, commentsErrors.ErrCommentNotFound
		}
		return nil, fmt.Errorf("failed to toggle like: %w", err)
	}

	comment, err := s.commentRepo.FindByID(ctx, commentID)
	if err != nil {
		return nil, fmt.Errorf("failed to reload comment: %w", err)
	}

	s.invalidateThreadCache(ctx, comment.VideoId)

	return &models.LikeResponse{Liked: liked, LikesCount: comment.LikesCount}, nil
}
