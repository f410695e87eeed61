package service

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"homeground/internal/domain"
	"homeground/internal/domain/models"
	"homeground/internal/domain/repositories"
	"homeground/internal/domain/services"
)

// messageService implements services.MessageService.
type messageService struct {
	threads    repositories.ThreadRepository
	messages   repositories.MessageRepository
	properties repositories.PropertyRepository
	gate       services.AuthorizationGate
	tx         repositories.TransactionManager
	logger     *slog.Logger
}

// NewMessageService creates a new message service.
func NewMessageService(
	threads repositories.ThreadRepository,
	messages repositories.MessageRepository,
	properties repositories.PropertyRepository,
	gate services.AuthorizationGate,
	tx repositories.TransactionManager,
	logger *slog.Logger,
) services.MessageService {
	return &messageService{
		threads:    threads,
		messages:   messages,
		properties: properties,
		gate:       gate,
		tx:         tx,
		logger:     logger,
	}
}

// StartThread opens a conversation with a property's seller and posts
// the first message. A second enquiry on the same property reuses the
// existing thread.
func (s *messageService) StartThread(ctx context.Context, req *services.StartThreadRequest) (*models.MessageThread, error) {
	principal, err := s.gate.RequireAuth(ctx)
	if err != nil {
		return nil, err
	}

	body := strings.TrimSpace(req.Body)
	if body == "" {
		return nil, &domain.ValidationError{Message: "body: cannot be blank"}
	}

	property, err := s.properties.GetByID(ctx, req.PropertyID)
	if err != nil {
		return nil, err
	}
	if property.SellerID == principal.ID {
		return nil, &domain.ValidationError{Message: "cannot open a thread on your own listing"}
	}

	thread, err := s.threads.GetByPropertyAndBuyer(ctx, property.ID, principal.ID)
	if err != nil && !errors.Is(err, domain.ErrNotFound) {
		return nil, err
	}

	err = s.tx.ExecTx(ctx, func(txCtx context.Context) error {
		if thread == nil {
			now := time.Now()
			thread = &models.MessageThread{
				PropertyID: property.ID,
				BuyerID:    principal.ID,
				SellerID:   property.SellerID,
				CreatedAt:  now,
				UpdatedAt:  now,
			}
			if err := s.threads.Create(txCtx, thread); err != nil {
				return err
			}
		}

		msg := &models.Message{
			ThreadID:  thread.ID,
			SenderID:  principal.ID,
			Body:      body,
			CreatedAt: time.Now(),
		}
		if err := s.messages.Create(txCtx, msg); err != nil {
			return err
		}
		return s.threads.Touch(txCtx, thread.ID)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("thread started",
		"thread_id", thread.ID,
		"property_id", property.ID,
		"buyer_id", principal.ID,
	)

	return thread, nil
}

// ListThreads retrieves the caller's conversations.
func (s *messageService) ListThreads(ctx context.Context) ([]models.MessageThread, error) {
	principal, err := s.gate.RequireAuth(ctx)
	if err != nil {
		return nil, err
	}
	return s.threads.ListByParticipant(ctx, principal.ID)
}

// ListMessages retrieves a thread's messages. Participants only; the
// thread load runs first so a missing thread reads "not found".
func (s *messageService) ListMessages(ctx context.Context, threadID string) ([]models.Message, error) {
	principal, err := s.gate.RequireAuth(ctx)
	if err != nil {
		return nil, err
	}

	thread, err := s.threads.GetByID(ctx, threadID)
	if err != nil {
		return nil, err
	}
	if !thread.Participant(principal.ID) && principal.Role != models.RoleAdmin {
		return nil, &domain.ForbiddenError{Message: "not a participant of this thread"}
	}

	return s.messages.ListByThread(ctx, threadID)
}

// Post appends a message to a thread. Participants only.
func (s *messageService) Post(ctx context.Context, threadID, body string) (*models.Message, error) {
	principal, err := s.gate.RequireAuth(ctx)
	if err != nil {
		return nil, err
	}

	body = strings.TrimSpace(body)
	if body == "" {
		return nil, &domain.ValidationError{Message: "body: cannot be blank"}
	}

	thread, err := s.threads.GetByID(ctx, threadID)
	if err != nil {
		return nil, err
	}
	if !thread.Participant(principal.ID) {
		return nil, &domain.ForbiddenError{Message: "not a participant of this thread"}
	}

	msg := &models.Message{
		ThreadID:  threadID,
		SenderID:  principal.ID,
		Body:      body,
		CreatedAt: time.Now(),
	}

	err = s.tx.ExecTx(ctx, func(txCtx context.Context) error {
		if err := s.messages.Create(txCtx, msg); err != nil {
			return err
		}
		return s.threads.Touch(txCtx, threadID)
	})
	if err != nil {
		return nil, err
	}

	return msg, nil
}
