package httpapi

import (
	"context"
	"net/http"
	"strings"

	"github.com/dmitrijs2005/shopsync/internal/server/auth"
	"github.com/gorilla/mux"
)

type ctxKey string

const userIDKey ctxKey = "userID"

// authenticate extracts and verifies the bearer token. A missing credential
// is 401; an invalid or expired one is 403. Both leave the client holding no
// usable session.
func (s *Server) authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || token == "" {
			writeError(w, http.StatusUnauthorized, "Access token required")
			return
		}

		userID, err := auth.GetUserIDFromToken(token, s.jwtSecret)
		if err != nil {
			writeError(w, http.StatusForbidden, "Invalid or expired token")
			return
		}

		ctx := context.WithValue(r.Context(), userIDKey, userID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// requireSelf rejects requests whose path variable does not match the
// authenticated user.
func (s *Server) requireSelf(pathVar string, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if mux.Vars(r)[pathVar] != authUserID(r.Context()) {
			writeError(w, http.StatusForbidden, "Access denied")
			return
		}
		next(w, r)
	}
}

// authUserID returns the authenticated user set by the middleware.
func authUserID(ctx context.Context) string {
	id, _ := ctx.Value(userIDKey).(string)
	return id
}
