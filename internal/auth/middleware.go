package auth

import (
	"context"
	"net/http"
	"strings"
)

type contextKey string

const (
	userIDKey      contextKey = "userID"
	requestInfoKey contextKey = "requestInfo"
)

// RequestInfo is a mutable carrier the audit middleware plants in the request
// context before routing. Inner middlewares fill it in, and the audit
// middleware reads it back after the response is written, which a plain
// context value cannot do across middleware layers.
type RequestInfo struct {
	UserID *int
	Action string
}

// WithRequestInfo attaches a fresh RequestInfo to the context.
func WithRequestInfo(ctx context.Context) (context.Context, *RequestInfo) {
	info := &RequestInfo{}
	return context.WithValue(ctx, requestInfoKey, info), info
}

func requestInfo(ctx context.Context) *RequestInfo {
	info, _ := ctx.Value(requestInfoKey).(*RequestInfo)
	return info
}

// PermissionLoader resolves the caller's permission set on each request, so a
// role change takes effect on the next call without restarting the server.
type PermissionLoader interface {
	PermissionsForUser(userID int) (PermissionSet, error)
}

// JWTMiddleware rejects requests without a valid bearer access token and
// stores the caller's user id in the request context.
func JWTMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		if !strings.HasPrefix(header, "Bearer ") {
			http.Error(w, "Unauthorized", http.StatusUnauthorized)
			return
		}
		userID, err := VerifyAccessToken(strings.TrimPrefix(header, "Bearer "))
		if err != nil {
			http.Error(w, "Unauthorized", http.StatusUnauthorized)
			return
		}
		if info := requestInfo(r.Context()); info != nil {
			info.UserID = &userID
		}
		ctx := context.WithValue(r.Context(), userIDKey, userID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// UserIDFromContext returns the authenticated user id, if any.
func UserIDFromContext(ctx context.Context) (int, bool) {
	id, ok := ctx.Value(userIDKey).(int)
	return id, ok
}

// Authorize gates a route behind one permission check. It runs after
// JWTMiddleware and denies with 403 when the caller's role lacks the action.
func Authorize(loader PermissionLoader, resource, action string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			userID, ok := UserIDFromContext(r.Context())
			if !ok {
				http.Error(w, "Unauthorized", http.StatusUnauthorized)
				return
			}
			perms, err := loader.PermissionsForUser(userID)
			if err != nil {
				http.Error(w, "Unauthorized", http.StatusUnauthorized)
				return
			}
			if !perms.Allowed(resource, action) {
				http.Error(w, "Forbidden", http.StatusForbidden)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// WithAction tags the request with a human readable audit action name.
func WithAction(action string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if info := requestInfo(r.Context()); info != nil {
				info.Action = action
			}
			next.ServeHTTP(w, r)
		})
	}
}
