// Package services orchestrates social interactions: each request is a graph
// mutation against the stores followed by a best-effort realtime notification
// to the affected user.
package services

import (
	"context"
	"fmt"

	"github.com/Mohammad8002/THE-GRAM/internal/models"
	"github.com/Mohammad8002/THE-GRAM/internal/repositories"
)

// NotificationDispatcher pushes an event to a user's live session, if any.
// Implementations never fail: delivery is fire-and-forget.
type NotificationDispatcher interface {
	Dispatch(targetUserID string, event models.NotificationEvent)
	Push(targetUserID, eventName string, payload any)
}

// InteractionService handles likes, comments and follow toggles. Every
// operation runs the same sequence: resolve the actor, mutate the graph,
// then build and dispatch a notification. A store failure aborts before any
// notification is built; the dispatch outcome never affects the result.
type InteractionService interface {
	LikePost(ctx context.Context, actorID, postID string) error
	DislikePost(ctx context.Context, actorID, postID string) error
	CommentOnPost(ctx context.Context, actorID, postID, text string) (*models.Comment, error)
	ToggleFollow(ctx context.Context, actorID, targetID string) (followed bool, err error)
}

type interactionService struct {
	userRepository    repositories.UserRepository
	postRepository    repositories.PostRepository
	commentRepository repositories.CommentRepository
	dispatcher        NotificationDispatcher
}

// NewInteractionService creates a new InteractionService
func NewInteractionService(
	userRepo repositories.UserRepository,
	postRepo repositories.PostRepository,
	commentRepo repositories.CommentRepository,
	dispatcher NotificationDispatcher,
) InteractionService {
	return &interactionService{
		userRepository:    userRepo,
		postRepository:    postRepo,
		commentRepository: commentRepo,
		dispatcher:        dispatcher,
	}
}

// LikePost inserts the actor into the post's like set and notifies the
// post's author. Re-liking is a no-op at the store but still dispatches.
func (s *interactionService) LikePost(ctx context.Context, actorID, postID string) error {
	actor, err := s.userRepository.GetUserByID(ctx, actorID)
	if err != nil {
		return fmt.Errorf("resolve actor: %w", err)
	}

	post, err := s.postRepository.GetPostByID(ctx, postID)
	if err != nil {
		return err
	}
	if err := s.postRepository.AddLike(ctx, postID, actorID); err != nil {
		return err
	}

	s.notify(post.Author.Hex(), actor, models.NotificationEvent{
		Type:    models.NotificationTypeLike,
		PostID:  postID,
		Message: "Your post was liked",
	})
	return nil
}

// DislikePost removes the actor from the post's like set and notifies the
// post's author.
func (s *interactionService) DislikePost(ctx context.Context, actorID, postID string) error {
	actor, err := s.userRepository.GetUserByID(ctx, actorID)
	if err != nil {
		return fmt.Errorf("resolve actor: %w", err)
	}

	post, err := s.postRepository.GetPostByID(ctx, postID)
	if err != nil {
		return err
	}
	if err := s.postRepository.RemoveLike(ctx, postID, actorID); err != nil {
		return err
	}

	s.notify(post.Author.Hex(), actor, models.NotificationEvent{
		Type:    models.NotificationTypeDislike,
		PostID:  postID,
		Message: "Your post was disliked",
	})
	return nil
}

// CommentOnPost creates the comment, appends it to the post's comment
// sequence and notifies the post's author.
func (s *interactionService) CommentOnPost(ctx context.Context, actorID, postID, text string) (*models.Comment, error) {
	if text == "" {
		return nil, repositories.ErrCommentTextRequired
	}

	actor, err := s.userRepository.GetUserByID(ctx, actorID)
	if err != nil {
		return nil, fmt.Errorf("resolve actor: %w", err)
	}

	post, err := s.postRepository.GetPostByID(ctx, postID)
	if err != nil {
		return nil, err
	}

	comment := &models.Comment{
		Text:   text,
		Author: actor.ID,
		Post:   post.ID,
	}
	if err := s.commentRepository.CreateComment(ctx, comment); err != nil {
		return nil, err
	}
	if err := s.postRepository.AppendComment(ctx, postID, comment.ID); err != nil {
		return nil, err
	}

	s.notify(post.Author.Hex(), actor, models.NotificationEvent{
		Type:    models.NotificationTypeComment,
		PostID:  postID,
		Message: fmt.Sprintf("%s commented on your post", actor.Username),
	})
	return comment, nil
}

// ToggleFollow follows the target when no edge exists and unfollows
// otherwise. Only a new follow notifies; unfollowing stays silent.
func (s *interactionService) ToggleFollow(ctx context.Context, actorID, targetID string) (bool, error) {
	if actorID == targetID {
		return false, repositories.ErrSelfFollow
	}

	actor, err := s.userRepository.GetUserByID(ctx, actorID)
	if err != nil {
		return false, fmt.Errorf("resolve actor: %w", err)
	}
	if _, err := s.userRepository.GetUserByID(ctx, targetID); err != nil {
		return false, err
	}

	following, err := s.userRepository.IsFollowing(ctx, actorID, targetID)
	if err != nil {
		return false, err
	}

	if following {
		if err := s.userRepository.Unfollow(ctx, actorID, targetID); err != nil {
			return false, err
		}
		return false, nil
	}

	if err := s.userRepository.Follow(ctx, actorID, targetID); err != nil {
		return false, err
	}
	s.notify(targetID, actor, models.NotificationEvent{
		Type:    models.NotificationTypeFollow,
		Message: fmt.Sprintf("%s started following you", actor.Username),
	})
	return true, nil
}

// notify stamps the actor's snapshot onto the event and hands it to the
// dispatcher. Self-actions never notify. The actor summary was fetched at
// request time, so a concurrently deleted actor cannot break delivery.
func (s *interactionService) notify(targetID string, actor *models.User, event models.NotificationEvent) {
	if targetID == actor.ID.Hex() {
		return
	}
	event.UserID = actor.ID.Hex()
	event.UserDetails = actor.ToCompact()
	s.dispatcher.Dispatch(targetID, event)
}
