package repositories

import (
	"dealership/internal/models"
)

// MessageStatus filters message listings by read state.
type MessageStatus string

const (
	MessageStatusAll    MessageStatus = ""
	MessageStatusRead   MessageStatus = "read"
	MessageStatusUnread MessageStatus = "unread"
)

// MessageRepository defines the interface for contact-message data access.
type MessageRepository interface {
	// List returns messages newest first, optionally filtered by read state.
	List(status MessageStatus) ([]models.Message, error)
	GetByID(id string) (*models.Message, error)
	Create(message *models.Message) error
	MarkRead(id string) (*models.Message, error)
	Delete(id string) error
	CountUnread() (int64, error)
}
