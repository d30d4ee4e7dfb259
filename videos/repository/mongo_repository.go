// Copyright (c) 2025 Vidora
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package repository

import (
	"context"
	"fmt"

	"github.com/gofrs/uuid"
	"github.com/vidora/vidora-api/internal/database/interfaces"
	"github.com/vidora/vidora-api/videos/models"
)

const videosCollection = "videos"

// mongoVideoRepository implements VideoRepository over the generic document
// repository.
type mongoVideoRepository struct {
	db interfaces.Repository
}

// NewMongoVideoRepository creates a MongoDB-backed VideoRepository
func NewMongoVideoRepository(db interfaces.Repository) VideoRepository {
	return &mongoVideoRepository{db: db}
}

func buildVideoFilter(filter VideoFilter) map[string]interface{} {
	query := map[string]interface{}{}
	if filter.Search != "" {
		query["title"] = map[string]interface{}{
			"$regex":   filter.Search,
			"$options": "i",
		}
	}
	if filter.Category != "" {
		query["category"] = filter.Category
	}
	if filter.OwnerUserID != nil {
		query["ownerUserId"] = *filter.OwnerUserID
	}
	return query
}

func buildVideoSort(sortBy string) map[string]int {
	switch sortBy {
	case models.SortOldest:
		return map[string]int{"createdDate": 1}
	case models.SortPopular:
		return map[string]int{"viewsCount": -1, "createdDate": -1}
	default:
		return map[string]int{"createdDate": -1}
	}
}

func (r *mongoVideoRepository) FindByID(ctx context.Context, videoID uuid.UUID) (*models.Video, error) {
	filter := map[string]interface{}{"objectId": videoID}

	result := <-r.db.FindOne(ctx, videosCollection, filter)
	if result.Error() != nil {
		if result.NoResult() {
			return nil, fmt.Errorf("video not found")
		}
		return nil, result.Error()
	}

	var video models.Video
	if err := result.Decode(&video); err != nil {
		if err == interfaces.ErrNoDocuments {
			return nil, fmt.Errorf("video not found")
		}
		return nil, fmt.Errorf("failed to decode video: %w", err)
	}

	return &video, nil
}

func (r *mongoVideoRepository) Exists(ctx context.Context, videoID uuid.UUID) (bool, error) {
	filter := map[string]interface{}{"objectId": videoID}

	result := <-r.db.Count(ctx, videosCollection, filter)
	if result.Error != nil {
		return false, fmt.Errorf("failed to check video existence: %w", result.Error)
	}
	return result.Count > 0, nil
}

func (r *mongoVideoRepository) Find(ctx context.Context, filter VideoFilter, sortBy string, limit, offset int) ([]*models.Video, error) {
	limit64 := int64(limit)
	skip64 := int64(offset)
	opts := &interfaces.FindOptions{
		Limit: &limit64,
		Skip:  &skip64,
		Sort:  buildVideoSort(sortBy),
	}

	result := <-r.db.Find(ctx, videosCollection, buildVideoFilter(filter), opts)
	if result.Error() != nil {
		return nil, fmt.Errorf("failed to query videos: %w", result.Error())
	}
	defer result.Close()

	var videos []*models.Video
	for result.Next() {
		var video models.Video
		if err := result.Decode(&video); err != nil {
			return nil, fmt.Errorf("failed to decode video: %w", err)
		}
		videos = append(videos, &video)
	}

	return videos, nil
}

func (r *mongoVideoRepository) Count(ctx context.Context, filter VideoFilter) (int64, error) {
	result := <-r.db.Count(ctx, videosCollection, buildVideoFilter(filter))
	if result.Error != nil {
		return 0, fmt.Errorf("failed to count videos: %w", result.Error)
	}
	return result.Count, nil
}

func (r *mongoVideoRepository) AttachComment(ctx context.Context, videoID uuid.UUID, commentID uuid.UUID) error {
	filter := map[string]interface{}{"objectId": videoID}
	update := map[string]interface{}{
		"$push": map[string]interface{}{"comments": commentID},
		"$inc":  map[string]interface{}{"commentsCount": 1},
	}

	result := <-r.db.Update(ctx, videosCollection, filter, update, nil)
	if result.Error != nil {
		return fmt.Errorf("failed to attach comment: %w", result.Error)
	}
	if result.MatchedCount() == 0 {
		return fmt.Errorf("video not found")
	}
	return nil
}

func (r *mongoVideoRepository) DetachComments(ctx context.Context, videoID uuid.UUID, commentIDs []uuid.UUID) error {
	if len(commentIDs) == 0 {
		return nil
	}

	pull := map[string]interface{}{
		"comments": map[string]interface{}{"$in": commentIDs},
	}

	// Guarded decrement: only matches while the counter can absorb the
	// whole batch without going negative.
	filter := map[string]interface{}{
		"objectId":      videoID,
		"commentsCount": map[string]interface{}{"$gte": len(commentIDs)},
	}
	update := map[string]interface{}{
		"$pull": pull,
		"$inc":  map[string]interface{}{"commentsCount": -len(commentIDs)},
	}

	result := <-r.db.Update(ctx, videosCollection, filter, update, nil)
	if result.Error != nil {
		return fmt.Errorf("failed to detach comments: %w", result.Error)
	}
	if result.MatchedCount() > 0 {
		return nil
	}

	// Counter was already below the batch size, pull the refs and floor it.
	floorFilter := map[string]interface{}{"objectId": videoID}
	floorUpdate := map[string]interface{}{
		"$pull": pull,
		"$set":  map[string]interface{}{"commentsCount": int64(0)},
	}
	floorResult := <-r.db.Update(ctx, videosCollection, floorFilter, floorUpdate, nil)
	if floorResult.Error != nil {
		return fmt.Errorf("failed to floor comments count: %w", floorResult.Error)
	}
	return nil
}

func (r *mongoVideoRepository) ToggleLike(ctx context.Context, videoID, userID uuid.UUID) (bool, error) {
	// Like: matches only when the user is not in likedBy, so the membership
	// check and counter increment are one atomic update.
	likeFilter := map[string]interface{}{
		"objectId": videoID,
		"likedBy":  map[string]interface{}{"$ne": userID},
	}
	likeUpdate := map[string]interface{}{
		"$addToSet": map[string]interface{}{"likedBy": userID},
		"$inc":      map[string]interface{}{"likesCount": 1},
	}

	likeResult := <-r.db.Update(ctx, videosCollection, likeFilter, likeUpdate, nil)
	if likeResult.Error != nil {
		return false, fmt.Errorf("failed to like video: %w", likeResult.Error)
	}
	if likeResult.MatchedCount() > 0 {
		return true, nil
	}

	// Already liked, remove the like.
	unlikeFilter := map[string]interface{}{
		"objectId": videoID,
		"likedBy":  userID,
	}
	unlikeUpdate := map[string]interface{}{
		"$pull": map[string]interface{}{"likedBy": userID},
		"$inc":  map[string]interface{}{"likesCount": -1},
	}

	unlikeResult := <-r.db.Update(ctx, videosCollection, unlikeFilter, unlikeUpdate, nil)
	if unlikeResult.Error != nil {
		return false, fmt.Errorf("failed to unlike video: %w", unlikeResult.Error)
	}
	if unlikeResult.MatchedCount() == 0 {
		return false, fmt.Errorf("video not found")
	}

	return false, nil
}

func (r *mongoVideoRepository) RegisterView(ctx context.Context, videoID uuid.UUID, userID *uuid.UUID) (bool, error) {
	if userID == nil {
		// Anonymous views are not deduplicated.
		filter := map[string]interface{}{"objectId": videoID}
		update := map[string]interface{}{
			"$inc": map[string]interface{}{"viewsCount": 1},
		}
		result := <-r.db.Update(ctx, videosCollection, filter, update, nil)
		if result.Error != nil {
			return false, fmt.Errorf("failed to register view: %w", result.Error)
		}
		if result.MatchedCount() == 0 {
			return false, fmt.Errorf("video not found")
		}
		return true, nil
	}

	filter := map[string]interface{}{
		"objectId": videoID,
		"viewedBy": map[string]interface{}{"$ne": *userID},
	}
	update := map[string]interface{}{
		"$addToSet": map[string]interface{}{"viewedBy": *userID},
		"$inc":      map[string]interface{}{"viewsCount": 1},
	}

	result := <-r.db.Update(ctx, videosCollection, filter, update, nil)
	if result.Error != nil {
		return false, fmt.Errorf("failed to register view: %w", result.Error)
	}
	if result.MatchedCount() > 0 {
		return true, nil
	}

	// Either already viewed or missing. Distinguish the two.
	exists, err := r.Exists(ctx, videoID)
	if err != nil {
		return false, err
	}
	if !exists {
		return false, fmt.Errorf("video not found")
	}
	return false, nil
}
