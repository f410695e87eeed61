package repositories

import (
	"context"

	"homeground/internal/domain/models"
)

// ThreadRepository defines data access for message threads.
type ThreadRepository interface {
	Create(ctx context.Context, t *models.MessageThread) error

	GetByID(ctx context.Context, id string) (*models.MessageThread, error)

	// GetByPropertyAndBuyer finds an existing thread so a second
	// enquiry reuses it instead of opening a duplicate.
	GetByPropertyAndBuyer(ctx context.Context, propertyID, buyerID string) (*models.MessageThread, error)

	// ListByParticipant retrieves threads the principal is on either
	// side of, most recently active first.
	ListByParticipant(ctx context.Context, principalID string) ([]models.MessageThread, error)

	// Touch bumps the thread's updated_at after a new message.
	Touch(ctx context.Context, id string) error
}

// MessageRepository defines data access for messages within threads.
type MessageRepository interface {
	Create(ctx context.Context, m *models.Message) error

	ListByThread(ctx context.Context, threadID string) ([]models.Message, error)
}
