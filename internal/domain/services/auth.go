package services

import (
	"context"

	"homeground/internal/domain/models"
)

// SessionResolver resolves the calling principal from request-scoped
// session state. Resolve returns (nil, nil) when the request carries no
// session at all; a non-nil error means the lookup itself failed.
//
// The resolver is an explicit collaborator passed into the gate, never
// an ambient global, so the gate stays unit-testable.
type SessionResolver interface {
	Resolve(ctx context.Context) (*models.Principal, error)
}

// AuthorizationGate answers "who is calling, and are they allowed to do
// X" before any state-changing operation runs. Guards run on every
// mutating call path and are never cached across requests.
type AuthorizationGate interface {
	// Current resolves the caller if a session exists, returning
	// (nil, nil) for anonymous requests. Used by public reads that
	// behave differently for privileged viewers.
	Current(ctx context.Context) (*models.Principal, error)

	// RequireAuth resolves the caller, failing with an
	// unauthenticated error if no valid session exists.
	RequireAuth(ctx context.Context) (*models.Principal, error)

	// RequireRole fails with a forbidden error unless the caller's
	// role is in the explicit allow-list. Membership is exact; there
	// is no hierarchy.
	RequireRole(ctx context.Context, allowed ...models.Role) (*models.Principal, error)

	// RequireAdmin is RequireRole(RoleAdmin).
	RequireAdmin(ctx context.Context) (*models.Principal, error)
}
