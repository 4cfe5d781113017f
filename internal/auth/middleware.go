package auth

import (
	"context"
	"net/http"
	"strings"

	"github.com/mfp/backend/internal/httpx"
	"github.com/mfp/backend/internal/models"
)

type ctxKey string

const userCtxKey = ctxKey("user")

// UserLoader resolves a token subject to the current user record. Returning
// (nil, nil) means the account no longer exists; the request proceeds
// unauthenticated and RequireAuth rejects it.
type UserLoader func(ctx context.Context, username string) (*models.User, error)

// WithUser stores the authenticated user in the context.
func WithUser(ctx context.Context, user *models.User) context.Context {
	return context.WithValue(ctx, userCtxKey, user)
}

// UserFromContext extracts the authenticated user, if any.
func UserFromContext(ctx context.Context) (*models.User, bool) {
	user, ok := ctx.Value(userCtxKey).(*models.User)
	return user, ok && user != nil
}

// Middleware parses a Bearer token and attaches the verified user to the
// request context. Requests without a valid token pass through
// unauthenticated.
func Middleware(secret string, load UserLoader) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if raw := bearerToken(r); raw != "" {
				if claims, err := ParseToken(secret, raw); err == nil {
					if user, err := load(r.Context(), claims.Subject); err == nil && user != nil {
						r = r.WithContext(WithUser(r.Context(), user))
					}
				}
			}
			next.ServeHTTP(w, r)
		})
	}
}

// RequireAuth rejects unauthenticated requests with a 401.
func RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := UserFromContext(r.Context()); !ok {
			w.Header().Set("WWW-Authenticate", "Bearer")
			httpx.JSONError(w, http.StatusUnauthorized, "unauthorized", "authentication required")
			return
		}
		next.ServeHTTP(w, r)
	})
}

func bearerToken(r *http.Request) string {
	header := r.Header.Get("Authorization")
	const prefix = "Bearer "
	if len(header) > len(prefix) && strings.EqualFold(header[:len(prefix)], prefix) {
		return strings.TrimSpace(header[len(prefix):])
	}
	return ""
}
