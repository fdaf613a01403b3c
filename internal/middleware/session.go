package middleware

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/mmynk/copywriter/internal/auth"
	"github.com/mmynk/copywriter/internal/models"
	"github.com/mmynk/copywriter/internal/storage"
)

// UserLookup finds the account a session token refers to.
type UserLookup interface {
	GetUserByID(ctx context.Context, id string) (*models.User, error)
}

// contextKey is a custom type for context keys to avoid collisions.
type contextKey string

const (
	// UserIDKey is the context key for storing the authenticated user ID.
	UserIDKey contextKey = "user_id"
	// UserNameKey is the context key for storing the authenticated user's name.
	UserNameKey contextKey = "user_name"
)

// GetUserID extracts the user ID from the context.
// Returns empty string if not found.
func GetUserID(ctx context.Context) string {
	userID, _ := ctx.Value(UserIDKey).(string)
	return userID
}

// GetUserName extracts the user name from the context.
// Returns empty string if not found.
func GetUserName(ctx context.Context) string {
	name, _ := ctx.Value(UserNameKey).(string)
	return name
}

// WithUser returns a copy of ctx carrying the authenticated user.
func WithUser(ctx context.Context, userID, name string) context.Context {
	ctx = context.WithValue(ctx, UserIDKey, userID)
	return context.WithValue(ctx, UserNameKey, name)
}

// RequireSession returns a middleware that only lets authenticated requests
// through. The session token is read from the named cookie; a missing or
// invalid token redirects to loginPath. A token whose user no longer exists
// is cleared and also redirects.
func RequireSession(sessions *auth.SessionManager, users UserLookup, cookieName, loginPath string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			var token string
			if c, err := r.Cookie(cookieName); err == nil {
				token = c.Value
			}

			claims, err := sessions.Validate(token)
			if err != nil {
				slog.Debug("Session rejected", "path", r.URL.Path, "error", err)
				http.Redirect(w, r, loginPath, http.StatusFound)
				return
			}

			user, err := users.GetUserByID(r.Context(), claims.UserID)
			if errors.Is(err, storage.ErrNotFound) {
				slog.Warn("Session for unknown user", "user_id", claims.UserID, "path", r.URL.Path)
				http.SetCookie(w, &http.Cookie{
					Name:     cookieName,
					Value:    "",
					Path:     "/",
					HttpOnly: true,
					MaxAge:   -1,
				})
				http.Redirect(w, r, loginPath, http.StatusFound)
				return
			}
			if err != nil {
				slog.Error("Session user lookup failed", "user_id", claims.UserID, "error", err)
				http.Error(w, "internal error", http.StatusInternalServerError)
				return
			}

			noteUser(r.Context(), user.ID)
			next.ServeHTTP(w, r.WithContext(WithUser(r.Context(), user.ID, user.Name)))
		})
	}
}

// requestInfo is shared between the outer logging middleware and the inner
// session gate so the log line can carry the user ID.
type requestInfo struct {
	userID string
}

const requestInfoKey contextKey = "request_info"

func withRequestInfo(ctx context.Context, info *requestInfo) context.Context {
	return context.WithValue(ctx, requestInfoKey, info)
}

func noteUser(ctx context.Context, userID string) {
	if info, ok := ctx.Value(requestInfoKey).(*requestInfo); ok {
		info.userID = userID
	}
}
