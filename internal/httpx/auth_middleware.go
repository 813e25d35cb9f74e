package httpx

import (
	"net/http"
	"strings"

	"bookreviews/internal/platform/crypto"
)

// AuthMiddleware guards a handler with a bearer-token check. A missing header
// (or a header without a second token after the split) is rejected before any
// verification; everything else goes through ParseToken, whose failures are
// all reported the same way. On success the resolved user ID is attached to
// the request context.
func AuthMiddleware(secret string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			parts := strings.SplitN(r.Header.Get("Authorization"), " ", 2)
			if len(parts) < 2 || parts[1] == "" {
				JSONError(w, http.StatusUnauthorized, "UNAUTHORIZED", "No token, authorization denied", nil)
				return
			}

			claims, err := crypto.ParseToken(secret, parts[1])
			if err != nil {
				JSONError(w, http.StatusUnauthorized, "UNAUTHORIZED", "Token is not valid", nil)
				return
			}

			ctx := ContextWithUser(r.Context(), claims.Sub)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
