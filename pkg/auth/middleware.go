package auth

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/sessions"

	"github.com/ghuser/stockpilot/pkg/httpx"
	"github.com/ghuser/stockpilot/pkg/logger"
)

// SessionName is the cookie name carrying the encrypted session ID.
const SessionName = "stockpilot_session"

// SessionUserIDKey is the session value holding the authenticated user's ID.
const SessionUserIDKey = "user_id"

// RequireAuth is a chi middleware that enforces authentication via session
// cookies. Every ledger operation sits behind it: no stock read or write is
// reachable without a valid session. It extracts the user ID and injects it
// into the request context; handlers can then call auth.UserIDFromCtx.
// Returns 401 Unauthorized if the session is missing, invalid, or anonymous.
func RequireAuth(store sessions.Store, log logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			session, err := store.Get(r, SessionName)
			if err != nil {
				log.WarnContext(r.Context(), "invalid session cookie", "error", err)
				httpx.JSONError(w, http.StatusUnauthorized, "authentication required")
				return
			}

			userIDStr, ok := session.Values[SessionUserIDKey].(string)
			if !ok || userIDStr == "" {
				httpx.JSONError(w, http.StatusUnauthorized, "authentication required")
				return
			}

			userID, err := uuid.Parse(userIDStr)
			if err != nil {
				log.WarnContext(r.Context(), "invalid user_id in session", "error", err)
				httpx.JSONError(w, http.StatusUnauthorized, "invalid session data")
				return
			}

			ctx := WithUserID(r.Context(), userID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
