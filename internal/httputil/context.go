package httputil

import (
	"context"
	"net/http"
)

// Context key type to avoid collisions
type contextKey string

const identityKey contextKey = "identity"

// Identity is the verified token identity attached to the request by
// the auth middleware. It is the raw session identity, not the account
// row; the session resolver turns it into a Principal.
type Identity struct {
	UserID string
	Email  string
}

// WithIdentity attaches the verified identity to the request context.
func WithIdentity(r *http.Request, id Identity) *http.Request {
	ctx := context.WithValue(r.Context(), identityKey, id)
	return r.WithContext(ctx)
}

// IdentityFromContext retrieves the identity, reporting whether one is
// present. Absent identity means an anonymous request.
func IdentityFromContext(ctx context.Context) (Identity, bool) {
	id, ok := ctx.Value(identityKey).(Identity)
	return id, ok
}

// UserIDFromContext returns the verified user ID, or "" for anonymous
// requests.
func UserIDFromContext(ctx context.Context) string {
	id, _ := ctx.Value(identityKey).(Identity)
	return id.UserID
}
