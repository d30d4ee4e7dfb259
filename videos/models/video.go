package models

import (
	uuid "github.com/gofrs/uuid"

	userModels "github.com/vidora/vidora-api/users/models"
)

// Video represents the complete video entity in the database.
// CommentsCount, LikesCount and ViewsCount are denormalized counters kept
// in sync by atomic field updates. Comments holds the ids of the video's
// comments and replies, maintained alongside CommentsCount.
type Video struct {
	ObjectId      uuid.UUID   `json:"objectId" bson:"objectId"`
	OwnerUserId   uuid.UUID   `json:"ownerUserId" bson:"ownerUserId"`
	Title         string      `json:"title" bson:"title"`
	Description   string      `json:"description" bson:"description"`
	URL           string      `json:"url" bson:"url"`
	Thumbnail     string      `json:"thumbnail" bson:"thumbnail"`
	Category      string      `json:"category,omitempty" bson:"category,omitempty"`
	Comments      []uuid.UUID `json:"-" bson:"comments"`
	CommentsCount int64       `json:"commentsCount" bson:"commentsCount"`
	LikesCount    int64       `json:"likesCount" bson:"likesCount"`
	ViewsCount    int64       `json:"viewsCount" bson:"viewsCount"`
	LikedBy       []uuid.UUID `json:"-" bson:"likedBy"`
	ViewedBy      []uuid.UUID `json:"-" bson:"viewedBy"`
	CreatedDate   int64       `json:"createdDate" bson:"createdDate"`
	LastUpdated   int64       `json:"lastUpdated" bson:"lastUpdated"`
}

// VideoQueryFilter represents query parameters for listing videos
type VideoQueryFilter struct {
	Search   string `json:"search,omitempty"`
	Category string `json:"category,omitempty"`
	Uploader string `json:"uploader,omitempty"`
	SortBy   string `json:"sortBy,omitempty"`
	Page     int    `json:"page,omitempty"`
	Limit    int    `json:"limit"`
}

// Sort orders accepted by the catalog listing
const (
	SortNewest  = "newest"
	SortOldest  = "oldest"
	SortPopular = "popular"
)

// VideoResponse represents the response format for video data
type VideoResponse struct {
	ObjectId      string                      `json:"objectId"`
	Title         string                      `json:"title"`
	Description   string                      `json:"description"`
	URL           string                      `json:"url"`
	Thumbnail     string                      `json:"thumbnail"`
	Category      string                      `json:"category,omitempty"`
	CommentsCount int64                       `json:"commentsCount"`
	LikesCount    int64                       `json:"likesCount"`
	ViewsCount    int64                       `json:"viewsCount"`
	Liked         bool                        `json:"liked"`
	Saved         bool                        `json:"saved,omitempty"`
	User          *userModels.ProfileResponse `json:"user,omitempty"`
	CreatedDate   int64                       `json:"createdDate"`
	LastUpdated   int64                       `json:"lastUpdated,omitempty"`
}

// VideosListResponse represents the response for listing videos
type VideosListResponse struct {
	Videos  []VideoResponse `json:"videos"`
	Count   int             `json:"count"`
	Page    int             `json:"page,omitempty"`
	Limit   int             `json:"limit,omitempty"`
	HasMore bool            `json:"hasMore,omitempty"`
}

// LikeResponse reports the outcome of a like toggle
type LikeResponse struct {
	Liked      bool  `json:"liked"`
	LikesCount int64 `json:"likesCount"`
}

// SaveResponse reports the outcome of a saved-video toggle
type SaveResponse struct {
	Saved bool `json:"saved"`
}

// ViewResponse reports the view counter after registering a view
type ViewResponse struct {
	ViewsCount int64 `json:"viewsCount"`
}
