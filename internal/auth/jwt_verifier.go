package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"homeground/internal/domain"
	"homeground/internal/domain/models"

	"github.com/MicahParks/keyfunc/v3"
	"github.com/golang-jwt/jwt/v5"
)

// SupabaseJWTVerifier implements JWTVerifier using JWKS from Supabase.
type SupabaseJWTVerifier struct {
	jwks   keyfunc.Keyfunc
	logger *slog.Logger
}

// NewJWTVerifier creates a verifier that fetches public keys from the
// Supabase JWKS endpoint. keyfunc caches and refreshes the keys based
// on HTTP cache headers.
func NewJWTVerifier(jwksURL string, logger *slog.Logger) (JWTVerifier, error) {
	if jwksURL == "" {
		return nil, errors.New("JWKS URL cannot be empty")
	}

	jwks, err := keyfunc.NewDefaultCtx(context.Background(), []string{jwksURL})
	if err != nil {
		return nil, fmt.Errorf("create JWKS client: %w", err)
	}

	logger.Info("JWT verifier initialized", "jwks_url", jwksURL)

	return &SupabaseJWTVerifier{jwks: jwks, logger: logger}, nil
}

// VerifyToken validates a JWT and extracts the Supabase claims.
func (v *SupabaseJWTVerifier) VerifyToken(tokenString string) (*models.SupabaseClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &models.SupabaseClaims{}, v.jwks.Keyfunc)
	if err != nil {
		v.logger.Debug("token parse failed", "error", err.Error())
		return nil, domain.ErrUnauthorized
	}
	if !token.Valid {
		return nil, domain.ErrUnauthorized
	}

	// Prevent algorithm confusion attacks - allow only RS256 or ES256
	switch token.Method.Alg() {
	case "RS256", "ES256":
	default:
		v.logger.Warn("token uses unexpected algorithm", "algorithm", token.Method.Alg())
		return nil, domain.ErrUnauthorized
	}

	claims, ok := token.Claims.(*models.SupabaseClaims)
	if !ok {
		return nil, domain.ErrUnauthorized
	}
	if claims.Subject == "" {
		v.logger.Debug("token missing subject claim")
		return nil, domain.ErrUnauthorized
	}

	// Reject anonymous Supabase sessions; they carry role "anon".
	if claims.Role != "authenticated" {
		v.logger.Debug("token has non-authenticated role", "role", claims.Role)
		return nil, domain.ErrUnauthorized
	}

	return claims, nil
}

// Close releases resources held by the verifier. keyfunc v3 manages
// its own refresh lifecycle, so this is a shutdown-compatibility no-op.
func (v *SupabaseJWTVerifier) Close() error {
	return nil
}
