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

// MessageHandler handles direct-message HTTP requests
type MessageHandler struct {
	messages services.MessageService
}

// NewMessageHandler creates a new MessageHandler
func NewMessageHandler(messages services.MessageService) *MessageHandler {
	return &MessageHandler{messages: messages}
}

// RegisterMessageRoutes registers message-related routes
func (h *MessageHandler) RegisterMessageRoutes(g *echo.Group) {
	g.POST("/send/:id", h.SendMessage)
	g.GET("/all/:id", h.GetConversation)
}

// SendMessage stores a direct message and pushes it to the receiver's live
// session when one exists.
func (h *MessageHandler) SendMessage(c echo.Context) error {
	actorID := getUserIDFromContext(c)
	if actorID == "" {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	var req models.SendMessageRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}

	validate := validator.New()
	if err := validate.Struct(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "text is required")
	}

	message, err := h.messages.SendMessage(c.Request().Context(), actorID, c.Param("id"), req.Text)
	if err != nil {
		switch {
		case errors.Is(err, repositories.ErrMessageTextRequired):
			return echo.NewHTTPError(http.StatusBadRequest, "text is required")
		case errors.Is(err, repositories.ErrUserNotFound), errors.Is(err, repositories.ErrInvalidID):
			return echo.NewHTTPError(http.StatusNotFound, "User not found")
		default:
			return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
		}
	}

	return c.JSON(http.StatusCreated, echo.Map{"newMessage": message, "success": true})
}

// GetConversation retrieves the conversation with another user oldest first
func (h *MessageHandler) GetConversation(c echo.Context) error {
	actorID := getUserIDFromContext(c)
	if actorID == "" {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	messages, err := h.messages.GetConversation(c.Request().Context(), actorID, c.Param("id"))
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) || errors.Is(err, repositories.ErrInvalidID) {
			return echo.NewHTTPError(http.StatusNotFound, "User not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, echo.Map{"messages": messages, "success": true})
}
