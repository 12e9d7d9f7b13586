package repositories

import (
	"errors"
	"fmt"

	"dealership/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GORMMessageRepository is a GORM implementation of MessageRepository.
type GORMMessageRepository struct {
	db *gorm.DB
}

// NewGORMMessageRepository creates a new instance of GORMMessageRepository.
func NewGORMMessageRepository(db *gorm.DB) *GORMMessageRepository {
	return &GORMMessageRepository{
		db: db,
	}
}

// List returns messages newest first, optionally filtered by read state.
func (r *GORMMessageRepository) List(status MessageStatus) ([]models.Message, error) {
	tx := r.db.Model(&models.Message{})
	switch status {
	case MessageStatusRead:
		tx = tx.Where("is_read = ?", true)
	case MessageStatusUnread:
		tx = tx.Where("is_read = ?", false)
	}

	var messages []models.Message
	if err := tx.Order("created_at DESC").Find(&messages).Error; err != nil {
		return nil, fmt.Errorf("failed to list messages: %w", err)
	}
	return messages, nil
}

// GetByID retrieves a single message by its ID.
func (r *GORMMessageRepository) GetByID(id string) (*models.Message, error) {
	var message models.Message
	if err := r.db.First(&message, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("message with ID %s: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get message by ID %s: %w", id, err)
	}
	return &message, nil
}

// Create stores a new message, assigning an ID when absent.
func (r *GORMMessageRepository) Create(message *models.Message) error {
	if message.ID == "" {
		message.ID = uuid.New().String()
	}
	if err := r.db.Create(message).Error; err != nil {
		return fmt.Errorf("failed to create message: %w", err)
	}
	return nil
}

// MarkRead flags a message as read and returns the updated document.
func (r *GORMMessageRepository) MarkRead(id string) (*models.Message, error) {
	res := r.db.Model(&models.Message{}).Where("id = ?", id).Update("is_read", true)
	if res.Error != nil {
		return nil, fmt.Errorf("failed to mark message %s read: %w", id, res.Error)
	}
	if res.RowsAffected == 0 {
		return nil, fmt.Errorf("message with ID %s: %w", id, ErrNotFound)
	}
	return r.GetByID(id)
}

// Delete removes a message by its ID.
func (r *GORMMessageRepository) Delete(id string) error {
	res := r.db.Delete(&models.Message{}, "id = ?", id)
	if res.Error != nil {
		return fmt.Errorf("failed to delete message: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("message with ID %s: %w", id, ErrNotFound)
	}
	return nil
}

// CountUnread returns the number of unread messages.
func (r *GORMMessageRepository) CountUnread() (int64, error) {
	var n int64
	if err := r.db.Model(&models.Message{}).Where("is_read = ?", false).Count(&n).Error; err != nil {
		return 0, fmt.Errorf("failed to count unread messages: %w", err)
	}
	return n, nil
}
