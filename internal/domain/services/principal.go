package services

import (
	"context"

	"homeground/internal/domain/models"
)

// RegisterRequest creates the account row for a freshly authenticated
// subject. Role is self-selected from the signup roles; admin cannot be
// chosen here.
type RegisterRequest struct {
	Email string `json:"email"`
	Name  string `json:"name"`
	Phone string `json:"phone"`
	Role  string `json:"role"`
}

// UpdateProfileRequest carries a partial profile update for the caller.
type UpdateProfileRequest struct {
	Name  *string `json:"name"`
	Phone *string `json:"phone"`
}

// PrincipalService manages accounts.
type PrincipalService interface {
	// Register creates the caller's account row after first sign-in.
	Register(ctx context.Context, req *RegisterRequest) (*models.Principal, error)

	// Me retrieves the caller's account.
	Me(ctx context.Context) (*models.Principal, error)

	// UpdateMe modifies the caller's profile.
	UpdateMe(ctx context.Context, req *UpdateProfileRequest) (*models.Principal, error)

	// ListAccounts retrieves all accounts. Admin only.
	ListAccounts(ctx context.Context) ([]models.Principal, error)

	// ChangeRole reassigns an account's role. Admin only.
	ChangeRole(ctx context.Context, id string, role string) (*models.Principal, error)
}
