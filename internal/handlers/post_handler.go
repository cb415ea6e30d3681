package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"path/filepath"
	"strconv"

	"github.com/Mohammad8002/THE-GRAM/internal/models"
	"github.com/Mohammad8002/THE-GRAM/internal/repositories"
	"github.com/Mohammad8002/THE-GRAM/pkg/storage"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// PostHandler handles HTTP requests related to posts
type PostHandler struct {
	postRepository    repositories.PostRepository
	userRepository    repositories.UserRepository
	commentRepository repositories.CommentRepository
	media             storage.ObjectStore // nil when media storage is not configured
}

// NewPostHandler creates a new PostHandler
func NewPostHandler(postRepo repositories.PostRepository, userRepo repositories.UserRepository, commentRepo repositories.CommentRepository, media storage.ObjectStore) *PostHandler {
	return &PostHandler{
		postRepository:    postRepo,
		userRepository:    userRepo,
		commentRepository: commentRepo,
		media:             media,
	}
}

// RegisterPostRoutes registers post-related routes
func (h *PostHandler) RegisterPostRoutes(g *echo.Group) {
	g.POST("/addpost", h.AddNewPost)
	g.GET("/all", h.GetAllPosts)
	g.GET("/userpost/all", h.GetUserPosts)
	g.DELETE("/delete/:id", h.DeletePost)
	g.POST("/:id/bookmark", h.BookmarkPost)
}

// AddNewPost creates a post from a multipart form (caption + image) and
// appends its id to the author's posts sequence.
func (h *PostHandler) AddNewPost(c echo.Context) error {
	actorID := getUserIDFromContext(c)
	if actorID == "" {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	actor, err := h.userRepository.GetUserByID(c.Request().Context(), actorID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Authenticated user not found in database")
	}

	file, err := c.FormFile("image")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Image required")
	}
	if h.media == nil {
		return echo.NewHTTPError(http.StatusServiceUnavailable, "Media storage is not configured")
	}
	src, err := file.Open()
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Failed to read uploaded file")
	}
	defer src.Close()

	key := fmt.Sprintf("posts/%s%s", uuid.NewString(), filepath.Ext(file.Filename))
	imageURL, err := h.media.Put(c.Request().Context(), key, src, file.Size, file.Header.Get("Content-Type"))
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to upload image")
	}

	post := &models.Post{
		Caption: c.FormValue("caption"),
		Image:   imageURL,
		Author:  actor.ID,
	}
	if err := h.postRepository.CreatePost(c.Request().Context(), post); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	if err := h.userRepository.AddPostRef(c.Request().Context(), actorID, post.ID.Hex()); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusCreated, echo.Map{
		"message": "New post added",
		"post":    post,
		"success": true,
	})
}

// GetAllPosts retrieves all posts newest first with pagination
func (h *PostHandler) GetAllPosts(c echo.Context) error {
	skip, _ := strconv.ParseInt(c.QueryParam("skip"), 10, 64)
	limit, _ := strconv.ParseInt(c.QueryParam("limit"), 10, 64)
	if limit <= 0 || limit > 100 {
		limit = 20
	}

	posts, err := h.postRepository.GetAllPosts(c.Request().Context(), skip, limit)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, echo.Map{
		"posts":   posts,
		"success": true,
		"message": "Posts fetched successfully",
	})
}

// GetUserPosts retrieves the authenticated user's posts newest first
func (h *PostHandler) GetUserPosts(c echo.Context) error {
	actorID := getUserIDFromContext(c)
	if actorID == "" {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	posts, err := h.postRepository.GetPostsByAuthor(c.Request().Context(), actorID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, echo.Map{"posts": posts, "success": true})
}

// DeletePost removes a post, the author's reference to it and its comments
func (h *PostHandler) DeletePost(c echo.Context) error {
	actorID := getUserIDFromContext(c)
	if actorID == "" {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}
	postID := c.Param("id")

	post, err := h.postRepository.GetPostByID(c.Request().Context(), postID)
	if err != nil {
		if errors.Is(err, repositories.ErrPostNotFound) || errors.Is(err, repositories.ErrInvalidID) {
			return echo.NewHTTPError(http.StatusNotFound, "Post not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	if post.Author.Hex() != actorID {
		return echo.NewHTTPError(http.StatusForbidden, "Unauthorized")
	}

	if err := h.postRepository.DeletePost(c.Request().Context(), postID); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	if err := h.userRepository.RemovePostRef(c.Request().Context(), actorID, postID); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	if err := h.commentRepository.DeleteCommentsByPostID(c.Request().Context(), postID); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, echo.Map{"message": "Post deleted", "success": true})
}

// BookmarkPost toggles the post in the caller's bookmark set
func (h *PostHandler) BookmarkPost(c echo.Context) error {
	actorID := getUserIDFromContext(c)
	if actorID == "" {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}
	postID := c.Param("id")

	if _, err := h.postRepository.GetPostByID(c.Request().Context(), postID); err != nil {
		if errors.Is(err, repositories.ErrPostNotFound) || errors.Is(err, repositories.ErrInvalidID) {
			return echo.NewHTTPError(http.StatusNotFound, "Post not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	saved, err := h.userRepository.ToggleBookmark(c.Request().Context(), actorID, postID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	if saved {
		return c.JSON(http.StatusOK, echo.Map{
			"type":    "saved",
			"message": "Post bookmarked",
			"success": true,
		})
	}
	return c.JSON(http.StatusOK, echo.Map{
		"type":    "unsaved",
		"message": "Post removed from bookmarks",
		"success": true,
	})
}
