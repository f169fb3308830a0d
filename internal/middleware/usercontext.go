package middleware

import (
	"net/http"
	"strings"

	"github.com/setjustgo/travel-assistant/internal/request"
)

// UserIDHeader carries the caller identity set by the upstream gateway.
const UserIDHeader = "X-User-ID"

// UserContext extracts the caller's user ID from the X-User-ID header and
// attaches it to the request context. Requests without the header are
// rejected with 401.
func UserContext(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		userID := strings.TrimSpace(r.Header.Get(UserIDHeader))
		if userID == "" {
			http.Error(w, "X-User-ID header is required", http.StatusUnauthorized)
			return
		}
		next.ServeHTTP(w, r.WithContext(request.WithUserID(r.Context(), userID)))
	})
}
