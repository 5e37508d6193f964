package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type pingFunc func(ctx context.Context) error

func (f pingFunc) Ping(ctx context.Context) error { return f(ctx) }

func TestHealthHandler(t *testing.T) {
	tests := []struct {
		name       string
		path       string
		checks     map[string]Pinger
		wantStatus int
		wantBody   string
	}{
		{"liveness", "/healthz", nil, http.StatusOK, "ok"},
		{"ready without dependencies", "/readyz", nil, http.StatusOK, "ready"},
		{"ready with healthy redis", "/readyz",
			map[string]Pinger{"redis": pingFunc(func(context.Context) error { return nil })},
			http.StatusOK, "ready"},
		{"not ready when redis is down", "/readyz",
			map[string]Pinger{"redis": pingFunc(func(context.Context) error { return errors.New("refused") })},
			http.StatusServiceUnavailable, "unavailable"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mux := http.NewServeMux()
			NewHealthHandler(discardLogger(), tt.checks).RegisterRoutes(mux)

			w := httptest.NewRecorder()
			mux.ServeHTTP(w, httptest.NewRequest(http.MethodGet, tt.path, nil))

			require.Equal(t, tt.wantStatus, w.Code)
			var body map[string]string
			require.NoError(t, json.NewDecoder(w.Body).Decode(&body))
			assert.Equal(t, tt.wantBody, body["status"])
			assert.Equal(t, "loan-insight", body["service"])
		})
	}
}
