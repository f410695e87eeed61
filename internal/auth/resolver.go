package auth

import (
	"context"
	"errors"
	"fmt"

	"homeground/internal/domain"
	"homeground/internal/domain/models"
	"homeground/internal/domain/repositories"
	"homeground/internal/httputil"
)

// PrincipalResolver implements services.SessionResolver by loading the
// account row for the verified token identity on the context.
//
// A verified token whose account row does not exist yet (first sign-in
// before registration) resolves to no principal, so guarded endpoints
// read "sign in required" until registration completes.
type PrincipalResolver struct {
	principals repositories.PrincipalRepository
}

// NewPrincipalResolver creates a resolver over the principal repository.
func NewPrincipalResolver(principals repositories.PrincipalRepository) *PrincipalResolver {
	return &PrincipalResolver{principals: principals}
}

// Resolve returns the calling principal, or (nil, nil) for anonymous
// and unregistered callers. Lookup failures surface as errors, never as
// an anonymous result.
func (r *PrincipalResolver) Resolve(ctx context.Context) (*models.Principal, error) {
	userID := httputil.UserIDFromContext(ctx)
	if userID == "" {
		return nil, nil
	}

	p, err := r.principals.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("load principal %s: %w", userID, err)
	}
	return p, nil
}
