package services

import (
	"context"

	"homeground/internal/domain/models"
)

// StartThreadRequest opens (or reuses) a conversation about a property
// and posts the first message.
type StartThreadRequest struct {
	PropertyID string `json:"property_id"`
	Body       string `json:"body"`
}

// MessageService manages buyer/seller conversations.
type MessageService interface {
	// StartThread opens a thread between the caller and the
	// property's seller, reusing an existing one if present.
	StartThread(ctx context.Context, req *StartThreadRequest) (*models.MessageThread, error)

	// ListThreads retrieves the caller's threads.
	ListThreads(ctx context.Context) ([]models.MessageThread, error)

	// ListMessages retrieves a thread's messages. Participants only.
	ListMessages(ctx context.Context, threadID string) ([]models.Message, error)

	// Post appends a message to a thread. Participants only.
	Post(ctx context.Context, threadID, body string) (*models.Message, error)
}
