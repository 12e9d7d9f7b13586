package repositories

import (
	"fmt"
	"sort"
	"sync"
	"time"

	"dealership/internal/models"

	"github.com/google/uuid"
)

// MockMessageRepository is an in-memory implementation of MessageRepository.
type MockMessageRepository struct {
	messages map[string]models.Message
	mu       sync.RWMutex
}

// NewMockMessageRepository creates a new instance of MockMessageRepository.
func NewMockMessageRepository() *MockMessageRepository {
	return &MockMessageRepository{
		messages: make(map[string]models.Message),
	}
}

// List returns messages newest first, optionally filtered by read state.
func (r *MockMessageRepository) List(status MessageStatus) ([]models.Message, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []models.Message
	for _, m := range r.messages {
		switch status {
		case MessageStatusRead:
			if !m.IsRead {
				continue
			}
		case MessageStatusUnread:
			if m.IsRead {
				continue
			}
		}
		out = append(out, m)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

// GetByID returns a message by its ID.
func (r *MockMessageRepository) GetByID(id string) (*models.Message, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	message, ok := r.messages[id]
	if !ok {
		return nil, fmt.Errorf("message with ID %s: %w", id, ErrNotFound)
	}
	return &message, nil
}

// Create stores a new message.
func (r *MockMessageRepository) Create(message *models.Message) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if message.ID == "" {
		message.ID = uuid.New().String()
	}
	if message.CreatedAt.IsZero() {
		message.CreatedAt = time.Now()
	}
	r.messages[message.ID] = *message
	return nil
}

// MarkRead flags a message as read.
func (r *MockMessageRepository) MarkRead(id string) (*models.Message, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	message, ok := r.messages[id]
	if !ok {
		return nil, fmt.Errorf("message with ID %s: %w", id, ErrNotFound)
	}
	message.IsRead = true
	r.messages[id] = message
	return &message, nil
}

// Delete removes a message by its ID.
func (r *MockMessageRepository) Delete(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.messages[id]; !ok {
		return fmt.Errorf("message with ID %s: %w", id, ErrNotFound)
	}
	delete(r.messages, id)
	return nil
}

// CountUnread returns the number of unread messages.
func (r *MockMessageRepository) CountUnread() (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var n int64
	for _, m := range r.messages {
		if !m.IsRead {
			n++
		}
	}
	return n, nil
}
