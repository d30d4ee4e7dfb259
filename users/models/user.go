package models

import (
	uuid "github.com/gofrs/uuid"
)

// UserProfile represents the public profile fields of a user document.
// Engagement responses embed these fields instead of denormalizing them
// into every comment.
type UserProfile struct {
	ObjectId         uuid.UUID `json:"objectId" bson:"objectId"`
	DisplayName      string    `json:"displayName" bson:"displayName"`
	Email            string    `json:"email" bson:"email"`
	Avatar           string    `json:"avatar" bson:"avatar"`
	SubscribersCount int64     `json:"subscribersCount" bson:"subscribersCount"`
	SavedVideos      []string  `json:"savedVideos,omitempty" bson:"savedVideos,omitempty"`
	LikedVideos      []string  `json:"likedVideos,omitempty" bson:"likedVideos,omitempty"`
	CreatedDate      int64     `json:"createdDate" bson:"createdDate"`
}

// ProfileResponse is the embedded author payload returned with comments,
// videos and subscriptions.
type ProfileResponse struct {
	ObjectId    string `json:"objectId"`
	DisplayName string `json:"displayName"`
	Email       string `json:"email"`
	Avatar      string `json:"avatar"`
}

// ToResponse converts a UserProfile into its response form.
func (p *UserProfile) ToResponse() ProfileResponse {
	return ProfileResponse{
		ObjectId:    p.ObjectId.String(),
		DisplayName: p.DisplayName,
		Email:       p.Email,
		Avatar:      p.Avatar,
	}
}
