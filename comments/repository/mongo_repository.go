// Copyright (c) 2025 Vidora
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package repository

import (
	"context"
	"fmt"

	"github.com/gofrs/uuid"
	"github.com/vidora/vidora-api/comments/models"
	"github.com/vidora/vidora-api/internal/database/interfaces"
)

const commentsCollection = "comments"

// mongoCommentRepository implements CommentRepository over the generic
// document repository.
type mongoCommentRepository struct {
	db interfaces.Repository
}

// NewMongoCommentRepository creates a MongoDB-backed CommentRepository
func NewMongoCommentRepository(db interfaces.Repository) CommentRepository {
	return &mongoCommentRepository{db: db}
}

func (r *mongoCommentRepository) Create(ctx context.Context, comment *models.Comment) error {
	result := <-r.db.Save(ctx, commentsCollection, comment)
	if result.Error != nil {
		return fmt.Errorf("failed to create comment: %w", result.Error)
	}
	return nil
}

func (r *mongoCommentRepository) FindByID(ctx context.Context, commentID uuid.UUID) (*models.Comment, error) {
	filter := map[string]interface{}{"objectId": commentID}

	result := <-r.db.FindOne(ctx, commentsCollection, filter)
	if result.Error() != nil {
		if result.NoResult() {
			return nil, fmt.Errorf("comment not found")
		}
		return nil, result.Error()
	}

	var comment models.Comment
	if err := result.Decode(&comment); err != nil {
		if err == interfaces.ErrNoDocuments {
			return nil, fmt.Errorf("comment not found")
		}
		return nil, fmt.Errorf("failed to decode comment: %w", err)
	}

	return &comment, nil
}

func (r *mongoCommentRepository) FindRootsByVideoID(ctx context.Context, videoID uuid.UUID, limit, offset int) ([]*models.Comment, error) {
	filter := map[string]interface{}{
		"videoId":         videoID,
		"parentCommentId": map[string]interface{}{"$exists": false},
	}

	limit64 := int64(limit)
	skip64 := int64(offset)
	opts := &interfaces.FindOptions{
		Limit: &limit64,
		Skip:  &skip64,
		Sort:  map[string]int{"createdDate": -1},
	}

	return r.findComments(ctx, filter, opts)
}

func (r *mongoCommentRepository) FindRepliesByParentIDs(ctx context.Context, parentIDs []uuid.UUID) ([]*models.Comment, error) {
	if len(parentIDs) == 0 {
		return nil, nil
	}

	filter := map[string]interface{}{
		"parentCommentId": map[string]interface{}{"$in": parentIDs},
	}
	opts := &interfaces.FindOptions{
		Sort: map[string]int{"createdDate": 1},
	}

	return r.findComments(ctx, filter, opts)
}

func (r *mongoCommentRepository) findComments(ctx context.Context, filter map[string]interface{}, opts *interfaces.FindOptions) ([]*models.Comment, error) {
	result := <-r.db.Find(ctx, commentsCollection, filter, opts)
	if result.Error() != nil {
		return nil, fmt.Errorf("failed to query comments: %w", result.Error())
	}
	defer result.Close()

	var comments []*models.Comment
	for result.Next() {
		var comment models.Comment
		if err := result.Decode(&comment); err != nil {
			return nil, fmt.Errorf("failed to decode comment: %w", err)
		}
		comments = append(comments, &comment)
	}

	return comments, nil
}

func (r *mongoCommentRepository) CountRootsByVideoID(ctx context.Context, videoID uuid.UUID) (int64, error) {
	filter := map[string]interface{}{
		"videoId":         videoID,
		"parentCommentId": map[string]interface{}{"$exists": false},
	}

	result := <-r.db.Count(ctx, commentsCollection, filter)
	if result.Error != nil {
		return 0, fmt.Errorf("failed to count comments: %w", result.Error)
	}
	return result.Count, nil
}

func (r *mongoCommentRepository) CountRepliesByParentID(ctx context.Context, parentID uuid.UUID) (int64, error) {
	filter := map[string]interface{}{"parentCommentId": parentID}

	result := <-r.db.Count(ctx, commentsCollection, filter)
	if result.Error != nil {
		return 0, fmt.Errorf("failed to count replies: %w", result.Error)
	}
	return result.Count, nil
}

func (r *mongoCommentRepository) UpdateText(ctx context.Context, commentID uuid.UUID, text string, lastUpdated int64) error {
	filter := map[string]interface{}{"objectId": commentID}
	update := map[string]interface{}{
		"$set": map[string]interface{}{
			"text":        text,
			"lastUpdated": lastUpdated,
		},
	}

	result := <-r.db.Update(ctx, commentsCollection, filter, update, nil)
	if result.Error != nil {
		return fmt.Errorf("failed to update comment: %w", result.Error)
	}
	if result.MatchedCount() == 0 {
		return fmt.Errorf("comment not found")
	}
	return nil
}

func (r *mongoCommentRepository) Delete(ctx context.Context, commentID uuid.UUID) error {
	filter := map[string]interface{}{"objectId": commentID}

	result := <-r.db.Delete(ctx, commentsCollection, filter)
	if result.Error != nil {
		return fmt.Errorf("failed to delete comment: %w", result.Error)
	}
	if result.DeletedCount() == 0 {
		return fmt.Errorf("comment not found")
	}
	return nil
}

func (r *mongoCommentRepository) DeleteRepliesByParentID(ctx context.Context, parentID uuid.UUID) (int64, error) {
	filter := map[string]interface{}{"parentCommentId": parentID}

	result := <-r.db.Delete(ctx, commentsCollection, filter)
	if result.Error != nil {
		return 0, fmt.Errorf("failed to delete replies: %w", result.Error)
	}

	return result.DeletedCount(), nil
}

func (r *mongoCommentRepository) ToggleLike(ctx context.Context, commentID, userID uuid.UUID) (bool, error) {
	// Like: matches only when the user is not in likedBy, so the membership
	// check and counter increment are one atomic update.
	likeFilter := map[string]interface{}{
		"objectId": commentID,
		"likedBy":  map[string]interface{}{"$ne": userID},
	}
	likeUpdate := map[string]interface{}{
		"$addToSet": map[string]interface{}{"likedBy": userID},
		"$inc":      map[string]interface{}{"likesCount": 1},
	}

	likeResult := <-r.db.Update(ctx, commentsCollection, likeFilter, likeUpdate, nil)
	if likeResult.Error != nil {
		return false, fmt.Errorf("failed to like comment: %w", likeResult.Error)
	}
	if likeResult.MatchedCount() > 0 {
		return true, nil
	}

	// Already liked, remove the like.
	unlikeFilter := map[string]interface{}{
		"objectId": commentID,
		"likedBy":  userID,
	}
	unlikeUpdate := map[string]interface{}{
		"$pull": map[string]interface{}{"likedBy": userID},
		"$inc":  map[string]interface{}{"likesCount": -1},
	}

	unlikeResult := <-r.db.Update(ctx, commentsCollection, unlikeFilter, unlikeUpdate, nil)
	if unlikeResult.Error != nil {
		return false, fmt.Errorf("failed to unlike comment: %w", unlikeResult.Error)
	}
	if unlikeResult.MatchedCount() == 0 {
		return false, fmt.Errorf("comment not found")
	}

	return false, nil
}

func (r *mongoCommentRepository) IncrementRepliesCount(ctx context.Context, commentID uuid.UUID, delta int) error {
	if delta >= 0 {
		filter := map[string]interface{}{"objectId": commentID}
		update := map[string]interface{}{
			"$inc": map[string]interface{}{"repliesCount": delta},
		}
		result := <-r.db.Update(ctx, commentsCollection, filter, update, nil)
		if result.Error != nil {
			return fmt.Errorf("failed to increment replies count: %w", result.Error)
		}
		return nil
	}

	// Guarded decrement, same pattern as the video comment counter.
	filter := map[string]interface{}{
		"objectId":     commentID,
		"repliesCount": map[string]interface{}{"$gte": -delta},
	}
	update := map[string]interface{}{
		"$inc": map[string]interface{}{"repliesCount": delta},
	}

	result := <-r.db.Update(ctx, commentsCollection, filter, update, nil)
	if result.Error != nil {
		return fmt.Errorf("failed to decrement replies count: %w", result.Error)
	}
	if result.MatchedCount() > 0 {
		return nil
	}

	floorFilter := map[string]interface{}{"objectId": commentID}
	floorUpdate := map[string]interface{}{
		"$set": map[string]interface{}{"repliesCount": int64(0)},
	}
	floorResult := <-r.db.Update(ctx, commentsCollection, floorFilter, floorUpdate, nil)
	if floorResult.Error != nil {
		return fmt.Errorf("failed to floor replies count: %w", floorResult.Error)
	}
	return nil
}
