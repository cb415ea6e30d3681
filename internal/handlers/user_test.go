package handlers

import (
	"net/http"
	"testing"

	"github.com/Mohammad8002/THE-GRAM/internal/repositories"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestFollowOrUnfollowFollows(t *testing.T) {
	svc := &fakeInteractionService{followed: true}
	handler := NewUserHandler(nil, svc, nil)

	targetID := primitive.NewObjectID().Hex()
	c, rec := newInteractionContext(t, targetID, "")

	require.NoError(t, handler.FollowOrUnfollow(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "followed successfully")
	assert.Equal(t, testActorID, svc.lastActor)
	assert.Equal(t, targetID, svc.lastPost)
}

func TestFollowOrUnfollowUnfollows(t *testing.T) {
	svc := &fakeInteractionService{followed: false}
	handler := NewUserHandler(nil, svc, nil)

	c, rec := newInteractionContext(t, primitive.NewObjectID().Hex(), "")

	require.NoError(t, handler.FollowOrUnfollow(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "unfollowed successfully")
}

func TestFollowOrUnfollowSelf(t *testing.T) {
	svc := &fakeInteractionService{err: repositories.ErrSelfFollow}
	handler := NewUserHandler(nil, svc, nil)

	c, _ := newInteractionContext(t, testActorID, "")
	err := handler.FollowOrUnfollow(c)

	var httpErr *echo.HTTPError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, http.StatusBadRequest, httpErr.Code)
	assert.Equal(t, "You cannot follow/unfollow yourself", httpErr.Message)
}

func TestFollowOrUnfollowUnknownTarget(t *testing.T) {
	svc := &fakeInteractionService{err: repositories.ErrUserNotFound}
	handler := NewUserHandler(nil, svc, nil)

	c, _ := newInteractionContext(t, primitive.NewObjectID().Hex(), "")
	err := handler.FollowOrUnfollow(c)

	var httpErr *echo.HTTPError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, http.StatusBadRequest, httpErr.Code)
	assert.Equal(t, "User not found", httpErr.Message)
}

func TestFollowOrUnfollowUnauthenticated(t *testing.T) {
	svc := &fakeInteractionService{}
	handler := NewUserHandler(nil, svc, nil)

	c, _ := newInteractionContext(t, primitive.NewObjectID().Hex(), "")
	c.Set("user", nil)
	err := handler.FollowOrUnfollow(c)

	var httpErr *echo.HTTPError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, http.StatusUnauthorized, httpErr.Code)
	assert.Zero(t, svc.calls)
}
