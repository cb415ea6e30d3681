package models

import "time"

// Message represents a direct message between two users (PostgreSQL).
// Sender and receiver ids are MongoDB ObjectIDs stored as hex strings.
type Message struct {
	ID         uint      `json:"id" gorm:"primaryKey"`
	SenderID   string    `json:"senderId" gorm:"size:24;index:idx_conversation"`
	ReceiverID string    `json:"receiverId" gorm:"size:24;index:idx_conversation"`
	Text       string    `json:"text"`
	CreatedAt  time.Time `json:"created_at" gorm:"index"`
}

// SendMessageRequest defines the request body for sending a direct message
type SendMessageRequest struct {
	Text string `json:"text" validate:"required,min=1,max=1000"`
}
