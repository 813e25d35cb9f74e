package httpx

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"bookreviews/internal/platform/crypto"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret"

func expiredToken(t *testing.T, userID string) string {
	t.Helper()
	c := crypto.Claims{
		Sub: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Hour)),
			IssuedAt:  jwt.NewNumericDate(time.Now().Add(-2 * time.Hour)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, c).SignedString([]byte(testSecret))
	require.NoError(t, err)
	return token
}

func TestAuthMiddleware(t *testing.T) {
	validToken, err := crypto.GenerateToken(testSecret, "user-123", time.Hour)
	require.NoError(t, err)

	forgedToken, err := crypto.GenerateToken("other-secret", "user-123", time.Hour)
	require.NoError(t, err)

	tests := []struct {
		name           string
		header         string
		expectedStatus int
	}{
		{
			name:           "no header",
			header:         "",
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:           "header without token",
			header:         "Bearer",
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:           "malformed token",
			header:         "Bearer not-a-jwt",
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:           "expired token",
			header:         "Bearer " + expiredToken(t, "user-123"),
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:           "forged token",
			header:         "Bearer " + forgedToken,
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:           "valid token",
			header:         "Bearer " + validToken,
			expectedStatus: http.StatusOK,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var sawUserID string
			var nextCalled bool
			next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				nextCalled = true
				sawUserID = UserIDFrom(r)
				w.WriteHeader(http.StatusOK)
			})

			w := httptest.NewRecorder()
			r := httptest.NewRequest(http.MethodPost, "/books/title/Dune/reviews", nil)
			if tt.header != "" {
				r.Header.Set("Authorization", tt.header)
			}

			AuthMiddleware(testSecret)(next).ServeHTTP(w, r)

			assert.Equal(t, tt.expectedStatus, w.Code)
			if tt.expectedStatus == http.StatusOK {
				assert.True(t, nextCalled)
				assert.Equal(t, "user-123", sawUserID)
			} else {
				assert.False(t, nextCalled, "rejected request must not reach the handler")
			}
		})
	}
}
