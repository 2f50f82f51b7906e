package middleware

import (
	"context"
	"errors"
	"log"
	"net/http"
	"strconv"

	"user-notes/models"
	"user-notes/store"
)

type ctxKey int

const userKey ctxKey = 0

// SessionStore resolves a claimed identity and its presented token against
// the credential store.
type SessionStore interface {
	GetBySession(ctx context.Context, userID int64, token string) (models.User, error)
}

// RequireSession gates a request on the X-User-Id and X-Session-Id headers.
// Both must match a single user row exactly; a missing header, unparsable
// id, cleared token or mismatched token all produce the same opaque 401.
// The resolved user record is attached to the request context and is the
// only identity downstream handlers may act on.
func RequireSession(users SessionStore) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			idStr := r.Header.Get("X-User-Id")
			token := r.Header.Get("X-Session-Id")
			if idStr == "" || token == "" {
				http.Error(w, "Unauthorized", http.StatusUnauthorized)
				return
			}
			userID, err := strconv.ParseInt(idStr, 10, 64)
			if err != nil {
				http.Error(w, "Unauthorized", http.StatusUnauthorized)
				return
			}

			user, err := users.GetBySession(r.Context(), userID, token)
			if err != nil {
				if errors.Is(err, store.ErrNotFound) {
					http.Error(w, "Unauthorized", http.StatusUnauthorized)
					return
				}
				log.Printf("session lookup failed: %v", err)
				http.Error(w, "Internal server error", http.StatusInternalServerError)
				return
			}

			next.ServeHTTP(w, r.WithContext(WithUser(r.Context(), user)))
		})
	}
}

// WithUser returns a context carrying the authenticated user record.
func WithUser(ctx context.Context, u models.User) context.Context {
	return context.WithValue(ctx, userKey, u)
}

// UserFromContext returns the authenticated user attached by RequireSession.
func UserFromContext(ctx context.Context) (models.User, bool) {
	u, ok := ctx.Value(userKey).(models.User)
	return u, ok
}
