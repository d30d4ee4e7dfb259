package types

import (
	uuid "github.com/gofrs/uuid"
)

// HTTP Header Constants
const (
	HeaderUID           = "uid"
	HeaderAuthorization = "Authorization"
	HeaderContentType   = "Content-Type"
)

// Authentication Constants
const (
	BearerPrefix = "Bearer "
)

// Common Values
const (
	UserRole    = "user"
	CreatorRole = "creator"
)

// UserCtxName is the fiber.Ctx locals key where the authenticated
// UserContext is stored by the auth middleware.
const UserCtxName = "user"

// UserContext carries the authenticated principal extracted from the
// access token. The engagement services trust it completely.
type UserContext struct {
	UserID      uuid.UUID `json:"uid"`
	Username    string    `json:"username"`
	DisplayName string    `json:"displayName"`
	Avatar      string    `json:"avatar"`
	SystemRole  string    `json:"role"`
	CreatedDate int64     `json:"createdDate"`
}
