package auth

import (
	"context"
	"errors"
	"net/http"

	"careercard/internal/httputil"
	"careercard/internal/logging"
	"careercard/internal/user"
)

// ContextKey is a type for context keys to avoid collisions
type ContextKey string

const (
	UserContextKey         ContextKey = "user"
	SessionTokenContextKey ContextKey = "session_token"
)

// Middleware handles authentication for protected routes
type Middleware struct {
	sessionRepo *SessionRepository
}

func NewMiddleware(sessionRepo *SessionRepository) *Middleware {
	return &Middleware{sessionRepo: sessionRepo}
}

// RequireAuth resolves the session cookie to a live session+user join
// and attaches the user to the request context. Missing, unknown and
// expired tokens are all 401.
func (m *Middleware) RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token, err := GetSessionTokenFromCookie(r)
		if err != nil || token == "" {
			httputil.RespondErrorWithCode(w, "authentication required", httputil.CodeMissingAuth, http.StatusUnauthorized)
			return
		}

		resolvedUser, err := m.sessionRepo.GetUserForToken(r.Context(), token)
		if err != nil {
			if errors.Is(err, ErrSessionNotFound) {
				httputil.RespondErrorWithCode(w, "invalid session", httputil.CodeInvalidSession, http.StatusUnauthorized)
				return
			}
			logging.GetLoggerFromContext(r.Context()).Error("failed to resolve session", "error", err.Error())
			httputil.RespondErrorWithCode(w, "internal server error", httputil.CodeInternalError, http.StatusInternalServerError)
			return
		}

		ctx := context.WithValue(r.Context(), UserContextKey, resolvedUser)
		ctx = context.WithValue(ctx, SessionTokenContextKey, token)

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// GetUserFromContext extracts the authenticated user from the request context
func GetUserFromContext(ctx context.Context) (*user.User, bool) {
	u, ok := ctx.Value(UserContextKey).(*user.User)
	return u, ok
}

// GetSessionTokenFromContext extracts the presented session token
func GetSessionTokenFromContext(ctx context.Context) (string, bool) {
	token, ok := ctx.Value(SessionTokenContextKey).(string)
	return token, ok
}
