package services

import (
	"context"
	"fmt"

	"github.com/Mohammad8002/THE-GRAM/internal/models"
	"github.com/Mohammad8002/THE-GRAM/internal/repositories"
)

// MessageService handles direct messages: persist first, then best-effort
// push to the receiver's live session.
type MessageService interface {
	SendMessage(ctx context.Context, senderID, receiverID, text string) (*models.Message, error)
	GetConversation(ctx context.Context, userID, otherID string) ([]models.Message, error)
}

type messageService struct {
	userRepository    repositories.UserRepository
	messageRepository repositories.MessageRepository
	dispatcher        NotificationDispatcher
}

// NewMessageService creates a new MessageService
func NewMessageService(
	userRepo repositories.UserRepository,
	messageRepo repositories.MessageRepository,
	dispatcher NotificationDispatcher,
) MessageService {
	return &messageService{
		userRepository:    userRepo,
		messageRepository: messageRepo,
		dispatcher:        dispatcher,
	}
}

// SendMessage stores the message and pushes it to the receiver under the
// "newMessage" event name. An offline receiver still gets the stored
// message on the next conversation fetch.
func (s *messageService) SendMessage(ctx context.Context, senderID, receiverID, text string) (*models.Message, error) {
	if text == "" {
		return nil, repositories.ErrMessageTextRequired
	}
	if _, err := s.userRepository.GetUserByID(ctx, senderID); err != nil {
		return nil, fmt.Errorf("resolve sender: %w", err)
	}
	if _, err := s.userRepository.GetUserByID(ctx, receiverID); err != nil {
		return nil, err
	}

	message := &models.Message{
		SenderID:   senderID,
		ReceiverID: receiverID,
		Text:       text,
	}
	if err := s.messageRepository.CreateMessage(message); err != nil {
		return nil, err
	}

	s.dispatcher.Push(receiverID, "newMessage", message)
	return message, nil
}

// GetConversation returns both directions of a conversation oldest first
func (s *messageService) GetConversation(ctx context.Context, userID, otherID string) ([]models.Message, error) {
	if _, err := s.userRepository.GetUserByID(ctx, otherID); err != nil {
		return nil, err
	}
	return s.messageRepository.GetConversation(userID, otherID)
}
