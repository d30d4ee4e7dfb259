package validation

import (
	"fmt"
	"strings"

	"github.com/vidora/vidora-api/comments/models"
)

const maxCommentLength = 1000

// ValidateCommentText enforces the shared text rules for comments and
// replies: present, not whitespace-only, bounded length.
func ValidateCommentText(text string) error {
	if text == "" {
		return fmt.Errorf("text is required")
	}

	if len(text) > maxCommentLength {
		return fmt.Errorf("text must be less than %d characters", maxCommentLength)
	}

	if len(strings.TrimSpace(text)) < 1 {
		return fmt.Errorf("text cannot be empty or whitespace only")
	}

	return nil
}

// ValidateCreateCommentRequest validates the create comment request
func ValidateCreateCommentRequest(req *models.CreateCommentRequest) error {
	if req == nil {
		return fmt.Errorf("request is required")
	}
	return ValidateCommentText(req.Text)
}

// ValidateUpdateCommentRequest validates update comment request
func ValidateUpdateCommentRequest(req *models.UpdateCommentRequest) error {
	if req == nil {
		return fmt.Errorf("request is required")
	}
	return ValidateCommentText(req.Text)
}

// ValidateCommentQueryFilter validates and normalizes pagination
func ValidateCommentQueryFilter(filter *models.CommentQueryFilter) error {
	if filter == nil {
		return fmt.Errorf("filter is required")
	}

	if filter.Page < 1 {
		filter.Page = 1
	}

	if filter.Limit < 1 {
		filter.Limit = 10
	}

	if filter.Limit > 100 {
		filter.Limit = 100
	}

	return nil
}
