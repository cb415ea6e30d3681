package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"path/filepath"

	"github.com/Mohammad8002/THE-GRAM/internal/models"
	"github.com/Mohammad8002/THE-GRAM/internal/repositories"
	"github.com/Mohammad8002/THE-GRAM/internal/services"
	"github.com/Mohammad8002/THE-GRAM/pkg/storage"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// UserHandler handles HTTP requests related to users
type UserHandler struct {
	userRepository repositories.UserRepository
	interactions   services.InteractionService
	media          storage.ObjectStore // nil when media storage is not configured
}

// NewUserHandler creates a new UserHandler
func NewUserHandler(userRepo repositories.UserRepository, interactions services.InteractionService, media storage.ObjectStore) *UserHandler {
	return &UserHandler{
		userRepository: userRepo,
		interactions:   interactions,
		media:          media,
	}
}

// RegisterUserRoutes registers user profile and follow routes
func (h *UserHandler) RegisterUserRoutes(g *echo.Group) {
	g.GET("/:id/profile", h.GetProfile)
	g.POST("/profile/edit", h.EditProfile)
	g.GET("/suggested", h.GetSuggestedUsers)
	g.POST("/followorunfollow/:id", h.FollowOrUnfollow)
}

// GetProfile retrieves a user's profile by ID
func (h *UserHandler) GetProfile(c echo.Context) error {
	user, err := h.userRepository.GetUserByID(c.Request().Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) || errors.Is(err, repositories.ErrInvalidID) {
			return echo.NewHTTPError(http.StatusNotFound, "User not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, echo.Map{"user": user, "success": true})
}

// EditProfile updates the authenticated user's bio, gender and profile photo
func (h *UserHandler) EditProfile(c echo.Context) error {
	actorID := getUserIDFromContext(c)
	if actorID == "" {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	var req models.EditProfileRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}

	validate := validator.New()
	if err := validate.Struct(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	var pictureURL string
	if file, err := c.FormFile("profilePhoto"); err == nil {
		if h.media == nil {
			return echo.NewHTTPError(http.StatusServiceUnavailable, "Media storage is not configured")
		}
		src, err := file.Open()
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "Failed to read uploaded file")
		}
		defer src.Close()

		key := fmt.Sprintf("avatars/%s%s", uuid.NewString(), filepath.Ext(file.Filename))
		pictureURL, err = h.media.Put(c.Request().Context(), key, src, file.Size, file.Header.Get("Content-Type"))
		if err != nil {
			return echo.NewHTTPError(http.StatusInternalServerError, "Failed to upload profile photo")
		}
	}

	user, err := h.userRepository.UpdateProfile(c.Request().Context(), actorID, req.Bio, req.Gender, pictureURL)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "User not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, echo.Map{
		"message": "Profile updated.",
		"success": true,
		"user":    user,
	})
}

// GetSuggestedUsers lists every user except the caller
func (h *UserHandler) GetSuggestedUsers(c echo.Context) error {
	actorID := getUserIDFromContext(c)
	if actorID == "" {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	users, err := h.userRepository.GetSuggestedUsers(c.Request().Context(), actorID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, echo.Map{"users": users, "success": true})
}

// FollowOrUnfollow toggles the follow edge toward the target user
func (h *UserHandler) FollowOrUnfollow(c echo.Context) error {
	actorID := getUserIDFromContext(c)
	if actorID == "" {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	followed, err := h.interactions.ToggleFollow(c.Request().Context(), actorID, c.Param("id"))
	if err != nil {
		switch {
		case errors.Is(err, repositories.ErrSelfFollow):
			return echo.NewHTTPError(http.StatusBadRequest, "You cannot follow/unfollow yourself")
		case errors.Is(err, repositories.ErrUserNotFound), errors.Is(err, repositories.ErrInvalidID):
			return echo.NewHTTPError(http.StatusBadRequest, "User not found")
		default:
			return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
		}
	}

	message := "unfollowed successfully"
	if followed {
		message = "followed successfully"
	}
	return c.JSON(http.StatusOK, echo.Map{"message": message, "success": true})
}

// getUserIDFromContext extracts the authenticated user's id set by the JWT
// middleware; empty when the request is unauthenticated.
func getUserIDFromContext(c echo.Context) string {
	claims, ok := c.Get("user").(*models.JwtCustomClaims)
	if !ok {
		return ""
	}
	return claims.UserID
}
