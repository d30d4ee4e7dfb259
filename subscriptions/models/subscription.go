package models

import (
	uuid "github.com/gofrs/uuid"

	userModels "github.com/vidora/vidora-api/users/models"
)

// Subscription represents a subscriber-to-creator edge in the database
type Subscription struct {
	ObjectId     uuid.UUID `json:"objectId" bson:"objectId"`
	SubscriberId uuid.UUID `json:"subscriberId" bson:"subscriberId"`
	CreatorId    uuid.UUID `json:"creatorId" bson:"creatorId"`
	CreatedDate  int64     `json:"createdDate" bson:"createdDate"`
}

// SubscribeResponse reports the outcome of a subscription toggle
type SubscribeResponse struct {
	Subscribed       bool  `json:"subscribed"`
	SubscribersCount int64 `json:"subscribersCount"`
}

// SubscriptionsListResponse lists the creators the user subscribes to
type SubscriptionsListResponse struct {
	Subscriptions []userModels.ProfileResponse `json:"subscriptions"`
	Count         int                          `json:"count"`
}
