package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/P4CodeMaxxers/DBS2-Backend/internal/api/apierr"
	"github.com/P4CodeMaxxers/DBS2-Backend/internal/model"
)

type contextKey string

const userKeyContextKey contextKey = "user_key"

// UserKeyHeader is the header the external auth layer sets after
// validating the caller's JWT. The core never sees credentials, only
// the opaque user key.
const UserKeyHeader = "X-User-Key"

// Identity requires an authenticated caller identity on the request
func Identity() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			key := extractUserKey(r)
			if key == "" {
				apierr.WriteError(w, apierr.NewUnauthorizedError())
				return
			}

			ctx := context.WithValue(r.Context(), userKeyContextKey, model.UserKey(key))
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// OptionalIdentity attaches the caller identity when present but does
// not require one (guest ghost-run submission)
func OptionalIdentity() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if key := extractUserKey(r); key != "" {
				ctx := context.WithValue(r.Context(), userKeyContextKey, model.UserKey(key))
				r = r.WithContext(ctx)
			}
			next.ServeHTTP(w, r)
		})
	}
}

// extractUserKey pulls the caller identity from the request
func extractUserKey(r *http.Request) string {
	if key := r.Header.Get(UserKeyHeader); key != "" {
		return key
	}

	// Fall back to a bearer token carrying the key directly
	authHeader := r.Header.Get("Authorization")
	if strings.HasPrefix(authHeader, "Bearer ") {
		return strings.TrimPrefix(authHeader, "Bearer ")
	}

	return ""
}

// GetUserKey returns the authenticated user key from the request context
func GetUserKey(ctx context.Context) model.UserKey {
	key, _ := ctx.Value(userKeyContextKey).(model.UserKey)
	return key
}

// MustGetUserKey returns the authenticated user key or panics
func MustGetUserKey(ctx context.Context) model.UserKey {
	key := GetUserKey(ctx)
	if key == "" {
		panic("no user key in context - identity middleware not applied?")
	}
	return key
}
