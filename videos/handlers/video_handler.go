package handlers

import (
	"net/http"
	"strconv"

	"github.com/gofiber/fiber/v2"
	uuid "github.com/gofrs/uuid"
	"github.com/vidora/vidora-api/internal/types"
	"github.com/vidora/vidora-api/videos/errors"
	"github.com/vidora/vidora-api/videos/models"
	"github.com/vidora/vidora-api/videos/services"
)

// VideoHandler handles all video-related HTTP requests
type VideoHandler struct {
	videoService services.VideoService
}

// NewVideoHandler creates a new VideoHandler with injected dependencies
func NewVideoHandler(videoService services.VideoService) *VideoHandler {
	return &VideoHandler{videoService: videoService}
}

// viewerFromLocals returns the authenticated viewer if one is present.
// Catalog reads work both anonymously and authenticated.
func viewerFromLocals(c *fiber.Ctx) *types.UserContext {
	if user, ok := c.Locals(types.UserCtxName).(types.UserContext); ok {
		return &user
	}
	return nil
}

// GetVideos handles the catalog listing with search, sort and pagination
func (h *VideoHandler) GetVideos(c *fiber.Ctx) error {
	filter := &models.VideoQueryFilter{
		Search:   c.Query("search"),
		Category: c.Query("category"),
		Uploader: c.Query("uploader"),
		SortBy:   c.Query("sortBy"),
	}

	if pageStr := c.Query("page"); pageStr != "" {
		if page, err := strconv.Atoi(pageStr); err == nil && page > 0 {
			filter.Page = page
		}
	}

	if limitStr := c.Query("limit"); limitStr != "" {
		if limit, err := strconv.Atoi(limitStr); err == nil && limit > 0 {
			filter.Limit = limit
		}
	}

	result, err := h.videoService.GetVideos(c.Context(), filter, viewerFromLocals(c))
	if err != nil {
		return errors.HandleServiceError(c, err)
	}

	return c.Status(http.StatusOK).JSON(result)
}

// GetVideo handles retrieving a single video
func (h *VideoHandler) GetVideo(c *fiber.Ctx) error {
	videoID, err := uuid.FromString(c.Params("videoId"))
	if err != nil {
		return errors.HandleUUIDError(c, "videoId")
	}

	result, err := h.videoService.GetVideo(c.Context(), videoID, viewerFromLocals(c))
	if err != nil {
		return errors.HandleServiceError(c, err)
	}

	return c.Status(http.StatusOK).JSON(result)
}

// ToggleLike handles liking / unliking a video
func (h *VideoHandler) ToggleLike(c *fiber.Ctx) error {
	videoID, err := uuid.FromString(c.Params("videoId"))
	if err != nil {
		return errors.HandleUUIDError(c, "videoId")
	}

	user, ok := c.Locals(types.UserCtxName).(types.UserContext)
	if !ok {
		return errors.HandleUserContextError(c, "Invalid user context")
	}

	result, err := h.videoService.ToggleLike(c.Context(), videoID, &user)
	if err != nil {
		return errors.HandleServiceError(c, err)
	}

	return c.Status(http.StatusOK).JSON(result)
}

// ToggleSaved handles saving / unsaving a video to the viewer's list
func (h *VideoHandler) ToggleSaved(c *fiber.Ctx) error {
	videoID, err := uuid.FromString(c.Params("videoId"))
	if err != nil {
		return errors.HandleUUIDError(c, "videoId")
	}

	user, ok := c.Locals(types.UserCtxName).(types.UserContext)
	if !ok {
		return errors.HandleUserContextError(c, "Invalid user context")
	}

	result, err := h.videoService.ToggleSaved(c.Context(), videoID, &user)
	if err != nil {
		return errors.HandleServiceError(c, err)
	}

	return c.Status(http.StatusOK).JSON(result)
}

// RegisterView handles view counting
func (h *VideoHandler) RegisterView(c *fiber.Ctx) error {
	videoID, err := uuid.FromString(c.Params("videoId"))
	if err != nil {
		return errors.HandleUUIDError(c, "videoId")
	}

	result, err := h.videoService.RegisterView(c.Context(), videoID, viewerFromLocals(c))
	if err != nil {
		return errors.HandleServiceError(c, err)
	}

	return c.Status(http.StatusOK).JSON(result)
}
