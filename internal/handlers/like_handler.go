package handlers

import (
	"errors"
	"net/http"

	"github.com/Mohammad8002/THE-GRAM/internal/repositories"
	"github.com/Mohammad8002/THE-GRAM/internal/services"
	"github.com/labstack/echo/v4"
)

// LikeHandler handles like and dislike HTTP requests
type LikeHandler struct {
	interactions services.InteractionService
}

// NewLikeHandler creates a new LikeHandler
func NewLikeHandler(interactions services.InteractionService) *LikeHandler {
	return &LikeHandler{interactions: interactions}
}

// RegisterLikeRoutes registers like-related routes on the post group
func (h *LikeHandler) RegisterLikeRoutes(g *echo.Group) {
	g.POST("/:id/like", h.LikePost)
	g.POST("/:id/dislike", h.DislikePost)
}

// LikePost handles liking a post. Re-liking an already-liked post is a
// no-op at the store and still succeeds.
func (h *LikeHandler) LikePost(c echo.Context) error {
	actorID := getUserIDFromContext(c)
	if actorID == "" {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	if err := h.interactions.LikePost(c.Request().Context(), actorID, c.Param("id")); err != nil {
		return mapInteractionError(err)
	}

	return c.JSON(http.StatusOK, echo.Map{"message": "Post liked", "success": true})
}

// DislikePost handles unliking a post
func (h *LikeHandler) DislikePost(c echo.Context) error {
	actorID := getUserIDFromContext(c)
	if actorID == "" {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	if err := h.interactions.DislikePost(c.Request().Context(), actorID, c.Param("id")); err != nil {
		return mapInteractionError(err)
	}

	return c.JSON(http.StatusOK, echo.Map{"message": "Post disliked", "success": true})
}

// mapInteractionError converts interaction failures to HTTP errors shared by
// the like and comment handlers.
func mapInteractionError(err error) error {
	switch {
	case errors.Is(err, repositories.ErrPostNotFound), errors.Is(err, repositories.ErrInvalidID):
		return echo.NewHTTPError(http.StatusNotFound, "Post not found")
	case errors.Is(err, repositories.ErrCommentTextRequired):
		return echo.NewHTTPError(http.StatusBadRequest, "text is required")
	case errors.Is(err, repositories.ErrUserNotFound):
		return echo.NewHTTPError(http.StatusInternalServerError, "Authenticated user not found in database")
	default:
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
}
