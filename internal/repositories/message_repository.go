package repositories

import (
	"github.com/Mohammad8002/THE-GRAM/internal/models"
	"gorm.io/gorm"
)

// MessageRepository defines the interface for direct-message data operations
type MessageRepository interface {
	CreateMessage(message *models.Message) error
	GetConversation(userID, otherID string) ([]models.Message, error)
}

// PostgresMessageRepository implements MessageRepository for PostgreSQL
type PostgresMessageRepository struct {
	db *gorm.DB
}

// NewPostgresMessageRepository creates a new PostgresMessageRepository
func NewPostgresMessageRepository(db *gorm.DB) *PostgresMessageRepository {
	return &PostgresMessageRepository{db: db}
}

// CreateMessage stores a new direct message
func (r *PostgresMessageRepository) CreateMessage(message *models.Message) error {
	if message.Text == "" {
		return ErrMessageTextRequired
	}
	return r.db.Create(message).Error
}

// GetConversation retrieves both directions of a conversation oldest first
func (r *PostgresMessageRepository) GetConversation(userID, otherID string) ([]models.Message, error) {
	var messages []models.Message
	err := r.db.
		Where("(sender_id = ? AND receiver_id = ?) OR (sender_id = ? AND receiver_id = ?)",
			userID, otherID, otherID, userID).
		Order("created_at ASC").
		Find(&messages).Error
	return messages, err
}
