package httpx

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRequestIDMiddleware(t *testing.T) {
	var seen string
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = RequestIDFrom(r)
	})

	t.Run("generates an id", func(t *testing.T) {
		w := httptest.NewRecorder()
		RequestIDMiddleware(next).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/books", nil))

		assert.NotEmpty(t, seen)
		assert.Equal(t, seen, w.Header().Get("X-Request-Id"))
	})

	t.Run("keeps a caller-provided id", func(t *testing.T) {
		r := httptest.NewRequest(http.MethodGet, "/books", nil)
		r.Header.Set("X-Request-Id", "req-42")
		w := httptest.NewRecorder()
		RequestIDMiddleware(next).ServeHTTP(w, r)

		assert.Equal(t, "req-42", seen)
	})
}

func TestRecoveryMiddleware(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("boom")
	})

	w := httptest.NewRecorder()
	RecoveryMiddleware(next).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/books", nil))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestRequestSizeLimitMiddleware(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	r := httptest.NewRequest(http.MethodPost, "/books", strings.NewReader(strings.Repeat("a", 64)))
	r.ContentLength = 64
	w := httptest.NewRecorder()
	RequestSizeLimitMiddleware(16)(next).ServeHTTP(w, r)

	assert.Equal(t, http.StatusRequestEntityTooLarge, w.Code)
}

func TestValidateStruct(t *testing.T) {
	type req struct {
		Username string `json:"username" validate:"required"`
		Password string `json:"password" validate:"required"`
	}

	assert.Nil(t, ValidateStruct(req{Username: "alice", Password: "pw123"}))

	details := ValidateStruct(req{Username: "alice"})
	assert.Len(t, details, 1)
	assert.Equal(t, "password", details[0].Field)
}
