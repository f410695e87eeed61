package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"testing"
	"time"

	"homeground/internal/domain"
	"homeground/internal/domain/models"
	"homeground/internal/domain/repositories"
	"homeground/internal/domain/services"
)

// fakeTx runs the function directly, no transaction.
type fakeTx struct{}

func (fakeTx) ExecTx(ctx context.Context, fn repositories.TxFn) error {
	return fn(ctx)
}

type fakePropertyRepo struct {
	properties map[string]*models.Property
}

func (r *fakePropertyRepo) Create(ctx context.Context, p *models.Property) error { return nil }

func (r *fakePropertyRepo) GetByID(ctx context.Context, id string) (*models.Property, error) {
	if p, ok := r.properties[id]; ok {
		copied := *p
		return &copied, nil
	}
	return nil, fmt.Errorf("property %s: %w", id, domain.ErrNotFound)
}

func (r *fakePropertyRepo) Update(ctx context.Context, p *models.Property) error { return nil }
func (r *fakePropertyRepo) Delete(ctx context.Context, id string) error          { return nil }

func (r *fakePropertyRepo) List(ctx context.Context, filter repositories.PropertyFilter) ([]models.Property, error) {
	return nil, nil
}

func (r *fakePropertyRepo) ListBySeller(ctx context.Context, sellerID string) ([]models.Property, error) {
	return nil, nil
}

type fakeThreadRepo struct {
	threads map[string]*models.MessageThread
	nextID  int
}

func (r *fakeThreadRepo) Create(ctx context.Context, t *models.MessageThread) error {
	if r.threads == nil {
		r.threads = make(map[string]*models.MessageThread)
	}
	r.nextID++
	t.ID = fmt.Sprintf("thread-%d", r.nextID)
	stored := *t
	r.threads[t.ID] = &stored
	return nil
}

func (r *fakeThreadRepo) GetByID(ctx context.Context, id string) (*models.MessageThread, error) {
	if t, ok := r.threads[id]; ok {
		copied := *t
		return &copied, nil
	}
	return nil, fmt.Errorf("thread %s: %w", id, domain.ErrNotFound)
}

func (r *fakeThreadRepo) GetByPropertyAndBuyer(ctx context.Context, propertyID, buyerID string) (*models.MessageThread, error) {
	for _, t := range r.threads {
		if t.PropertyID == propertyID && t.BuyerID == buyerID {
			copied := *t
			return &copied, nil
		}
	}
	return nil, fmt.Errorf("thread for property %s: %w", propertyID, domain.ErrNotFound)
}

func (r *fakeThreadRepo) ListByParticipant(ctx context.Context, principalID string) ([]models.MessageThread, error) {
	var out []models.MessageThread
	for _, t := range r.threads {
		if t.Participant(principalID) {
			out = append(out, *t)
		}
	}
	return out, nil
}

func (r *fakeThreadRepo) Touch(ctx context.Context, id string) error {
	if t, ok := r.threads[id]; ok {
		t.UpdatedAt = time.Now()
		return nil
	}
	return fmt.Errorf("thread %s: %w", id, domain.ErrNotFound)
}

type fakeMessageRepo struct {
	messages map[string]*models.Message
	nextID   int
}

func (r *fakeMessageRepo) Create(ctx context.Context, m *models.Message) error {
	if r.messages == nil {
		r.messages = make(map[string]*models.Message)
	}
	r.nextID++
	m.ID = fmt.Sprintf("msg-%d", r.nextID)
	stored := *m
	r.messages[m.ID] = &stored
	return nil
}

func (r *fakeMessageRepo) ListByThread(ctx context.Context, threadID string) ([]models.Message, error) {
	var out []models.Message
	for _, m := range r.messages {
		if m.ThreadID == threadID {
			out = append(out, *m)
		}
	}
	return out, nil
}

// newMessageFixture seeds one property (sold by seller-1) and one
// thread on it opened by buyer-1.
func newMessageFixture(viewer *models.Principal) (services.MessageService, *fakeThreadRepo, *fakeMessageRepo) {
	properties := &fakePropertyRepo{properties: map[string]*models.Property{
		"prop-1": {ID: "prop-1", SellerID: "seller-1", Title: "Two-Storey House"},
	}}
	threads := &fakeThreadRepo{threads: map[string]*models.MessageThread{
		"t-1": {ID: "t-1", PropertyID: "prop-1", BuyerID: "buyer-1", SellerID: "seller-1"},
	}}
	messages := &fakeMessageRepo{}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	svc := NewMessageService(threads, messages, properties, &fakeGate{principal: viewer}, fakeTx{}, logger)
	return svc, threads, messages
}

func TestPostParticipantsOnly(t *testing.T) {
	tests := []struct {
		name    string
		viewer  *models.Principal
		wantErr error
	}{
		{"buyer posts", &models.Principal{ID: "buyer-1", Role: models.RoleBuyer}, nil},
		{"seller posts", &models.Principal{ID: "seller-1", Role: models.RoleSeller}, nil},
		{"outsider forbidden", &models.Principal{ID: "buyer-2", Role: models.RoleBuyer}, &domain.ForbiddenError{}},
		{"admin outside the thread cannot post", &models.Principal{ID: "admin-1", Role: models.RoleAdmin}, &domain.ForbiddenError{}},
		{"anonymous unauthenticated", nil, &domain.UnauthenticatedError{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, _, _ := newMessageFixture(tt.viewer)

			msg, err := svc.Post(context.Background(), "t-1", "Is this still available?")
			if tt.wantErr == nil {
				if err != nil {
					t.Fatalf("Post() error = %v", err)
				}
				if msg.SenderID != tt.viewer.ID {
					t.Errorf("Post() sender = %s, want %s", msg.SenderID, tt.viewer.ID)
				}
				return
			}

			switch tt.wantErr.(type) {
			case *domain.ForbiddenError:
				var forbidden *domain.ForbiddenError
				if !errors.As(err, &forbidden) {
					t.Errorf("Post() error = %v, want ForbiddenError", err)
				}
			case *domain.UnauthenticatedError:
				var unauthed *domain.UnauthenticatedError
				if !errors.As(err, &unauthed) {
					t.Errorf("Post() error = %v, want UnauthenticatedError", err)
				}
			}
		})
	}
}

func TestPostRejectsBlankBody(t *testing.T) {
	svc, _, _ := newMessageFixture(&models.Principal{ID: "buyer-1", Role: models.RoleBuyer})

	_, err := svc.Post(context.Background(), "t-1", "   ")

	var validationErr *domain.ValidationError
	if !errors.As(err, &validationErr) {
		t.Errorf("Post() error = %v, want ValidationError", err)
	}
}

func TestPostMissingThreadReadsNotFound(t *testing.T) {
	// Thread load runs before the participant check, so an outsider
	// probing a missing ID learns nothing.
	svc, _, _ := newMessageFixture(&models.Principal{ID: "buyer-2", Role: models.RoleBuyer})

	_, err := svc.Post(context.Background(), "t-missing", "hello")
	if !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("Post() error = %v, want ErrNotFound", err)
	}
}

func TestListMessagesParticipantsAndAdmin(t *testing.T) {
	tests := []struct {
		name      string
		viewer    *models.Principal
		forbidden bool
	}{
		{"buyer reads", &models.Principal{ID: "buyer-1", Role: models.RoleBuyer}, false},
		{"seller reads", &models.Principal{ID: "seller-1", Role: models.RoleSeller}, false},
		{"admin outside the thread reads", &models.Principal{ID: "admin-1", Role: models.RoleAdmin}, false},
		{"outsider forbidden", &models.Principal{ID: "buyer-2", Role: models.RoleBuyer}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, _, _ := newMessageFixture(tt.viewer)

			_, err := svc.ListMessages(context.Background(), "t-1")
			if tt.forbidden {
				var forbidden *domain.ForbiddenError
				if !errors.As(err, &forbidden) {
					t.Errorf("ListMessages() error = %v, want ForbiddenError", err)
				}
				return
			}
			if err != nil {
				t.Errorf("ListMessages() error = %v", err)
			}
		})
	}
}

func TestStartThreadReusesExisting(t *testing.T) {
	svc, threads, messages := newMessageFixture(&models.Principal{ID: "buyer-1", Role: models.RoleBuyer})

	thread, err := svc.StartThread(context.Background(), &services.StartThreadRequest{
		PropertyID: "prop-1",
		Body:       "Following up on my offer.",
	})
	if err != nil {
		t.Fatalf("StartThread() error = %v", err)
	}
	if thread.ID != "t-1" {
		t.Errorf("StartThread() thread = %s, want existing t-1", thread.ID)
	}
	if len(threads.threads) != 1 {
		t.Errorf("StartThread() created a duplicate thread, have %d", len(threads.threads))
	}
	if len(messages.messages) != 1 {
		t.Errorf("StartThread() stored %d messages, want 1", len(messages.messages))
	}
}

func TestStartThreadRejectsOwnListing(t *testing.T) {
	svc, _, _ := newMessageFixture(&models.Principal{ID: "seller-1", Role: models.RoleSeller})

	_, err := svc.StartThread(context.Background(), &services.StartThreadRequest{
		PropertyID: "prop-1",
		Body:       "Nice place!",
	})

	var validationErr *domain.ValidationError
	if !errors.As(err, &validationErr) {
		t.Errorf("StartThread() error = %v, want ValidationError", err)
	}
}
