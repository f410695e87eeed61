package models

import "github.com/golang-jwt/jwt/v5"

// SupabaseClaims is the JWT claims payload issued by Supabase Auth.
// See: https://supabase.com/docs/guides/auth/jwts
type SupabaseClaims struct {
	jwt.RegisteredClaims
	Email        string                 `json:"email"`
	Phone        string                 `json:"phone"`
	AppMetadata  map[string]interface{} `json:"app_metadata"`
	UserMetadata map[string]interface{} `json:"user_metadata"`
	Role         string                 `json:"role"` // "authenticated" or "anon"
	SessionID    string                 `json:"session_id"`
	IsAnonymous  bool                   `json:"is_anonymous"`
}

// GetUserID returns the subject claim, the stable account identifier
// the principal row is keyed by.
func (c *SupabaseClaims) GetUserID() string {
	return c.Subject
}
