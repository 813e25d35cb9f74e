package auth

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"bookreviews/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestHandler() (*HTTPHandler, *fakeUserRepo) {
	repo := newFakeUserRepo()
	return NewHTTPHandler(NewService(testSecret, repo)), repo
}

func TestHTTPHandler_Register(t *testing.T) {
	handler, repo := newTestHandler()

	w := httptest.NewRecorder()
	r := testutil.NewRequest(http.MethodPost, "/auth/register", map[string]string{
		"username": "alice",
		"password": "pw123",
	})
	handler.Register(w, r)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, repo.users, "alice")

	body := testutil.DecodeBody(w)
	data := body["data"].(map[string]interface{})
	assert.Equal(t, "User registered successfully!", data["message"])
}

func TestHTTPHandler_Register_MissingFields(t *testing.T) {
	handler, _ := newTestHandler()

	w := httptest.NewRecorder()
	r := testutil.NewRequest(http.MethodPost, "/auth/register", map[string]string{"username": "alice"})
	handler.Register(w, r)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestHTTPHandler_Login(t *testing.T) {
	handler, repo := newTestHandler()
	svc := NewService(testSecret, repo)
	require.NoError(t, svc.Register(context.Background(), "alice", "pw123"))

	tests := []struct {
		name         string
		body         map[string]string
		expectedCode int
	}{
		{
			name:         "success",
			body:         map[string]string{"username": "alice", "password": "pw123"},
			expectedCode: http.StatusOK,
		},
		{
			name:         "unknown user",
			body:         map[string]string{"username": "bob", "password": "pw123"},
			expectedCode: http.StatusBadRequest,
		},
		{
			name:         "wrong password",
			body:         map[string]string{"username": "alice", "password": "nope"},
			expectedCode: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			r := testutil.NewRequest(http.MethodPost, "/auth/login", tt.body)
			handler.Login(w, r)

			assert.Equal(t, tt.expectedCode, w.Code)
			if tt.expectedCode == http.StatusOK {
				assert.True(t, strings.Contains(w.Body.String(), "Token: "), "login response must include the token")
			}
		})
	}
}
