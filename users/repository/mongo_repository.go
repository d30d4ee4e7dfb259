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
	"github.com/vidora/vidora-api/users/models"
)

const usersCollection = "users"

// mongoUserRepository implements UserRepository over the generic document
// repository.
type mongoUserRepository struct {
	db interfaces.Repository
}

// NewMongoUserRepository creates a MongoDB-backed UserRepository
func NewMongoUserRepository(db interfaces.Repository) UserRepository {
	return &mongoUserRepository{db: db}
}

func (r *mongoUserRepository) FindProfile(ctx context.Context, userID uuid.UUID) (*models.UserProfile, error) {
	filter := map[string]interface{}{"objectId": userID}

	result := <-r.db.FindOne(ctx, usersCollection, filter)
	if result.Error() != nil {
		if result.NoResult() {
			return nil, fmt.Errorf("user not found")
		}
		return nil, result.Error()
	}

	var profile models.UserProfile
	if err := result.Decode(&profile); err != nil {
		if err == interfaces.ErrNoDocuments {
			return nil, fmt.Errorf("user not found")
		}
		return nil, fmt.Errorf("failed to decode user profile: %w", err)
	}

	return &profile, nil
}

func (r *mongoUserRepository) FindProfiles(ctx context.Context, userIDs []uuid.UUID) (map[uuid.UUID]*models.UserProfile, error) {
	profiles := make(map[uuid.UUID]*models.UserProfile, len(userIDs))
	if len(userIDs) == 0 {
		return profiles, nil
	}

	ids := make([]interface{}, 0, len(userIDs))
	for _, id := range userIDs {
		ids = append(ids, id)
	}

	filter := map[string]interface{}{
		"objectId": map[string]interface{}{"$in": ids},
	}

	result := <-r.db.Find(ctx, usersCollection, filter, nil)
	if result.Error() != nil {
		return nil, fmt.Errorf("failed to query user profiles: %w", result.Error())
	}
	defer result.Close()

	for result.Next() {
		var profile models.UserProfile
		if err := result.Decode(&profile); err != nil {
			return nil, fmt.Errorf("failed to decode user profile: %w", err)
		}
		p := profile
		profiles[profile.ObjectId] = &p
	}

	return profiles, nil
}

func (r *mongoUserRepository) ToggleSavedVideo(ctx context.Context, userID uuid.UUID, videoID uuid.UUID) (bool, error) {
	videoKey := videoID.String()

	// Try to save first: matches only when the video is not yet saved.
	addFilter := map[string]interface{}{
		"objectId":    userID,
		"savedVideos": map[string]interface{}{"$ne": videoKey},
	}
	addUpdate := map[string]interface{}{
		"$addToSet": map[string]interface{}{"savedVideos": videoKey},
	}

	addResult := <-r.db.Update(ctx, usersCollection, addFilter, addUpdate, nil)
	if addResult.Error != nil {
		return false, fmt.Errorf("failed to save video: %w", addResult.Error)
	}
	if addResult.MatchedCount() > 0 {
		return true, nil
	}

	// Already saved, remove it.
	removeFilter := map[string]interface{}{
		"objectId":    userID,
		"savedVideos": videoKey,
	}
	removeUpdate := map[string]interface{}{
		"$pull": map[string]interface{}{"savedVideos": videoKey},
	}

	removeResult := <-r.db.Update(ctx, usersCollection, removeFilter, removeUpdate, nil)
	if removeResult.Error != nil {
		return false, fmt.Errorf("failed to unsave video: %w", removeResult.Error)
	}
	if removeResult.MatchedCount() == 0 {
		return false, fmt.Errorf("user not found")
	}

	return false, nil
}

func (r *mongoUserRepository) SetVideoLiked(ctx context.Context, userID uuid.UUID, videoID uuid.UUID, liked bool) error {
	videoKey := videoID.String()

	filter := map[string]interface{}{"objectId": userID}
	var update map[string]interface{}
	if liked {
		update = map[string]interface{}{
			"$addToSet": map[string]interface{}{"likedVideos": videoKey},
		}
	} else {
		update = map[string]interface{}{
			"$pull": map[string]interface{}{"likedVideos": videoKey},
		}
	}

	result := <-r.db.Update(ctx, usersCollection, filter, update, nil)
	if result.Error != nil {
		return fmt.Errorf("failed to update liked videos: %w", result.Error)
	}
	if result.MatchedCount() == 0 {
		return fmt.Errorf("user not found")
	}

	return nil
}

func (r *mongoUserRepository) IncrementSubscribersCount(ctx context.Context, userID uuid.UUID, delta int) error {
	filter := map[string]interface{}{"objectId": userID}
	if delta < 0 {
		// Guard against driving the denormalized counter below zero.
		filter["subscribersCount"] = map[string]interface{}{"$gt": 0}
	}

	update := map[string]interface{}{
		"$inc": map[string]interface{}{"subscribersCount": delta},
	}

	result := <-r.db.Update(ctx, usersCollection, filter, update, nil)
	if result.Error != nil {
		return fmt.Errorf("failed to update subscribers count: %w", result.Error)
	}

	return nil
}
