package api

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func get(t *testing.T, router http.Handler, path string) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
	return rec
}

func TestRouter_RoutesWired(t *testing.T) {
	router := NewRouter(Dependencies{
		CORSOrigins: []string{"*"},
		HealthHandler: func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusOK)
		},
	})

	assert.Equal(t, http.StatusOK, get(t, router, "/api/v1/health").Code)
	assert.Equal(t, http.StatusNotFound, get(t, router, "/nope").Code)
}

func TestRouter_MissingHandlerIs501(t *testing.T) {
	router := NewRouter(Dependencies{CORSOrigins: []string{"*"}})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/v1/solve-once", nil))
	assert.Equal(t, http.StatusNotImplemented, rec.Code)
}

func TestRouter_RequestIDHeaderSet(t *testing.T) {
	router := NewRouter(Dependencies{
		CORSOrigins: []string{"*"},
		HealthHandler: func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusOK)
		},
	})

	rec := get(t, router, "/api/v1/health")
	assert.NotEmpty(t, rec.Header().Get("X-Request-Id"))
}
