package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"homeground/internal/domain"
	"homeground/internal/domain/models"
	"homeground/internal/domain/repositories"
	"homeground/internal/domain/services"
	"homeground/internal/httputil"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
)

// principalService implements services.PrincipalService.
type principalService struct {
	principals repositories.PrincipalRepository
	gate       services.AuthorizationGate
	logger     *slog.Logger
}

// NewPrincipalService creates a new principal service.
func NewPrincipalService(
	principals repositories.PrincipalRepository,
	gate services.AuthorizationGate,
	logger *slog.Logger,
) services.PrincipalService {
	return &principalService{
		principals: principals,
		gate:       gate,
		logger:     logger,
	}
}

// Register creates the account row for the verified token identity.
// This is the one guarded operation that cannot go through the gate:
// the caller has a valid token but no principal row yet. The role is
// restricted to the signup set; admin is assigned out-of-band only.
func (s *principalService) Register(ctx context.Context, req *services.RegisterRequest) (*models.Principal, error) {
	identity, ok := httputil.IdentityFromContext(ctx)
	if !ok {
		return nil, &domain.UnauthenticatedError{Message: "sign in required"}
	}

	if err := validateRegister(req); err != nil {
		return nil, &domain.ValidationError{Message: err.Error()}
	}

	role, err := models.ParseRole(req.Role)
	if err != nil || !isSignupRole(role) {
		return nil, &domain.ValidationError{Message: fmt.Sprintf("role %q cannot be self-selected", req.Role)}
	}

	existing, err := s.principals.GetByID(ctx, identity.UserID)
	if err == nil && existing != nil {
		return nil, &domain.ConflictError{
			Message:      "account already registered",
			ResourceType: "principal",
			ResourceID:   existing.ID,
		}
	}
	if err != nil && !errors.Is(err, domain.ErrNotFound) {
		return nil, err
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))
	if email == "" {
		email = strings.ToLower(identity.Email)
	}

	now := time.Now()
	principal := &models.Principal{
		ID:         identity.UserID,
		Email:      email,
		Name:       strings.TrimSpace(req.Name),
		Phone:      strings.TrimSpace(req.Phone),
		Role:       role,
		IsActive:   true,
		IsVerified: false,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	if err := s.principals.Create(ctx, principal); err != nil {
		return nil, err
	}

	s.logger.Info("account registered",
		"id", principal.ID,
		"role", principal.Role,
	)

	return principal, nil
}

// Me retrieves the caller's account.
func (s *principalService) Me(ctx context.Context) (*models.Principal, error) {
	return s.gate.RequireAuth(ctx)
}

// UpdateMe modifies the caller's profile. Role is untouchable here.
func (s *principalService) UpdateMe(ctx context.Context, req *services.UpdateProfileRequest) (*models.Principal, error) {
	principal, err := s.gate.RequireAuth(ctx)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		principal.Name = strings.TrimSpace(*req.Name)
	}
	if req.Phone != nil {
		principal.Phone = strings.TrimSpace(*req.Phone)
	}
	principal.UpdatedAt = time.Now()

	if principal.Name == "" {
		return nil, &domain.ValidationError{Message: "name: cannot be blank"}
	}

	if err := s.principals.Update(ctx, principal); err != nil {
		return nil, err
	}
	return principal, nil
}

// ListAccounts retrieves all accounts. Admin only.
func (s *principalService) ListAccounts(ctx context.Context) ([]models.Principal, error) {
	if _, err := s.gate.RequireAdmin(ctx); err != nil {
		return nil, err
	}
	return s.principals.List(ctx)
}

// ChangeRole reassigns an account's role. Admin only; the target must
// exist before the change is attempted.
func (s *principalService) ChangeRole(ctx context.Context, id string, roleStr string) (*models.Principal, error) {
	admin, err := s.gate.RequireAdmin(ctx)
	if err != nil {
		return nil, err
	}

	role, err := models.ParseRole(roleStr)
	if err != nil {
		return nil, &domain.ValidationError{Message: err.Error()}
	}

	target, err := s.principals.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := s.principals.UpdateRole(ctx, id, role); err != nil {
		return nil, err
	}
	target.Role = role

	s.logger.Info("role changed",
		"id", id,
		"role", role,
		"by", admin.ID,
	)

	return target, nil
}

func isSignupRole(role models.Role) bool {
	for _, r := range models.SignupRoles() {
		if role == r {
			return true
		}
	}
	return false
}

func validateRegister(req *services.RegisterRequest) error {
	return validation.Errors{
		"email": validation.Validate(req.Email, is.Email),
		"name":  validation.Validate(req.Name, validation.Required, validation.Length(2, 100)),
		"role":  validation.Validate(req.Role, validation.Required),
	}.Filter()
}
