package auth

import "homeground/internal/domain/models"

// JWTVerifier validates bearer tokens. Abstracted so the middleware
// stays agnostic to where the keys come from.
type JWTVerifier interface {
	// VerifyToken validates a JWT string and returns the parsed
	// claims. Invalid, expired or mis-signed tokens return an error.
	VerifyToken(tokenString string) (*models.SupabaseClaims, error)

	// Close releases resources held by the verifier.
	Close() error
}
