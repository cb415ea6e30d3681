package handlers

import (
	"errors"
	"net/http"

	"github.com/Mohammad8002/THE-GRAM/internal/models"
	"github.com/Mohammad8002/THE-GRAM/internal/repositories"
	"github.com/Mohammad8002/THE-GRAM/internal/services"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

// CommentHandler handles HTTP requests related to comments
type CommentHandler struct {
	interactions      services.InteractionService
	commentRepository repositories.CommentRepository
	postRepository    repositories.PostRepository
}

// NewCommentHandler creates a new CommentHandler
func NewCommentHandler(interactions services.InteractionService, commentRepo repositories.CommentRepository, postRepo repositories.PostRepository) *CommentHandler {
	return &CommentHandler{
		interactions:      interactions,
		commentRepository: commentRepo,
		postRepository:    postRepo,
	}
}

// RegisterCommentRoutes registers comment-related routes on the post group
func (h *CommentHandler) RegisterCommentRoutes(g *echo.Group) {
	g.POST("/:id/comment", h.AddComment)
	g.GET("/:id/comment/all", h.GetCommentsOfPost)
}

// AddComment creates a new comment on a post
func (h *CommentHandler) AddComment(c echo.Context) error {
	actorID := getUserIDFromContext(c)
	if actorID == "" {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	var req models.CreateCommentRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}

	validate := validator.New()
	if err := validate.Struct(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "text is required")
	}

	comment, err := h.interactions.CommentOnPost(c.Request().Context(), actorID, c.Param("id"), req.Text)
	if err != nil {
		return mapInteractionError(err)
	}

	return c.JSON(http.StatusCreated, echo.Map{
		"message": "Comment Added",
		"comment": comment,
		"success": true,
	})
}

// GetCommentsOfPost retrieves all comments for a specific post
func (h *CommentHandler) GetCommentsOfPost(c echo.Context) error {
	postID := c.Param("id")

	// Verify post exists
	if _, err := h.postRepository.GetPostByID(c.Request().Context(), postID); err != nil {
		if errors.Is(err, repositories.ErrPostNotFound) || errors.Is(err, repositories.ErrInvalidID) {
			return echo.NewHTTPError(http.StatusNotFound, "Post not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	comments, err := h.commentRepository.GetCommentsByPostID(c.Request().Context(), postID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, echo.Map{"comments": comments, "success": true})
}
