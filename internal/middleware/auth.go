package middleware

import (
	"net/http"
	"strings"

	"homeground/internal/auth"
	"homeground/internal/httputil"
)

// AuthMiddleware verifies the Bearer token and attaches the verified
// identity to the request context.
//
// Requests without an Authorization header pass through anonymously;
// the public listing endpoints serve them and the gate rejects them on
// guarded paths. A present-but-invalid token is rejected here with 401
// rather than being treated as anonymous.
func AuthMiddleware(verifier auth.JWTVerifier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			if header == "" {
				next.ServeHTTP(w, r)
				return
			}

			token, ok := strings.CutPrefix(header, "Bearer ")
			if !ok {
				httputil.RespondError(w, http.StatusUnauthorized, "malformed authorization header")
				return
			}

			claims, err := verifier.VerifyToken(token)
			if err != nil {
				httputil.RespondError(w, http.StatusUnauthorized, "invalid or expired token")
				return
			}

			r = httputil.WithIdentity(r, httputil.Identity{
				UserID: claims.GetUserID(),
				Email:  claims.Email,
			})
			next.ServeHTTP(w, r)
		})
	}
}
