package models

import (
	uuid "github.com/gofrs/uuid"

	userModels "github.com/vidora/vidora-api/users/models"
)

// Comment represents the complete comment entity in the database.
// Replies carry the ObjectId of their top-level parent in ParentCommentId
// and always belong to the same video as the parent. LikesCount and
// RepliesCount are denormalized counters kept in sync by atomic updates.
type Comment struct {
	ObjectId        uuid.UUID   `json:"objectId" bson:"objectId"`
	OwnerUserId     uuid.UUID   `json:"ownerUserId" bson:"ownerUserId"`
	VideoId         uuid.UUID   `json:"videoId" bson:"videoId"`
	ParentCommentId *uuid.UUID  `json:"parentCommentId,omitempty" bson:"parentCommentId,omitempty"`
	Text            string      `json:"text" bson:"text"`
	LikesCount      int64       `json:"likesCount" bson:"likesCount"`
	RepliesCount    int64       `json:"repliesCount" bson:"repliesCount"`
	LikedBy         []uuid.UUID `json:"-" bson:"likedBy"`
	CreatedDate     int64       `json:"createdDate" bson:"createdDate"`
	LastUpdated     int64       `json:"lastUpdated" bson:"lastUpdated"`
}

// CreateCommentRequest represents the request payload for creating a
// comment or a reply
type CreateCommentRequest struct {
	Text string `json:"text" validate:"required,min=1,max=1000"`
}

// UpdateCommentRequest represents the request payload for updating a comment
type UpdateCommentRequest struct {
	Text string `json:"text" validate:"required,min=1,max=1000"`
}

// CommentQueryFilter represents pagination parameters for listing comments
type CommentQueryFilter struct {
	Page  int `json:"page,omitempty" validate:"min=1"`
	Limit int `json:"limit" validate:"min=1,max=100"`
}

// CommentResponse represents the response format for comment data.
// Top-level comments embed their replies oldest-first.
type CommentResponse struct {
	ObjectId        string                      `json:"objectId"`
	VideoId         string                      `json:"videoId"`
	ParentCommentId *string                     `json:"parentCommentId,omitempty"`
	Text            string                      `json:"text"`
	LikesCount      int64                       `json:"likesCount"`
	RepliesCount    int64                       `json:"repliesCount"`
	Liked           bool                        `json:"liked"`
	User            *userModels.ProfileResponse `json:"user,omitempty"`
	Replies         []CommentResponse           `json:"replies,omitempty"`
	CreatedDate     int64                       `json:"createdDate"`
	LastUpdated     int64                       `json:"lastUpdated,omitempty"`
}

// CommentsListResponse represents the response for listing comments
type CommentsListResponse struct {
	Comments []CommentResponse `json:"comments"`
	Count    int               `json:"count"`
	Page     int               `json:"page,omitempty"`
	Limit    int               `json:"limit,omitempty"`
	HasMore  bool              `json:"hasMore,omitempty"`
}

// LikeResponse reports the outcome of a comment like toggle
type LikeResponse struct {
	Liked      bool  `json:"liked"`
	LikesCount int64 `json:"likesCount"`
}
