package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/Lixing-Zhang/product-service/pkg/logger"
)

type pingFunc func(ctx context.Context) error

func (f pingFunc) Ping(ctx context.Context) error { return f(ctx) }

func TestHealthHandler(t *testing.T) {
	testCases := []struct {
		name         string
		pingErr      error
		wantDatabase string
	}{
		{"database up", nil, "up"},
		{"database down", errors.New("connection refused"), "down"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			handler := NewHealthHandler(pingFunc(func(ctx context.Context) error {
				return tc.pingErr
			}), "1.0.0", logger.New("error"))

			req := httptest.NewRequest(http.MethodGet, "/health", nil)
			w := httptest.NewRecorder()
			handler.ServeHTTP(w, req)

			if w.Code != http.StatusOK {
				t.Fatalf("expected status 200, got %d", w.Code)
			}

			var response HealthResponse
			if err := json.NewDecoder(w.Body).Decode(&response); err != nil {
				t.Fatalf("failed to decode response: %v", err)
			}
			if response.Status != "healthy" {
				t.Errorf("expected status healthy, got %s", response.Status)
			}
			if response.Database != tc.wantDatabase {
				t.Errorf("expected database %s, got %s", tc.wantDatabase, response.Database)
			}
			if response.Version != "1.0.0" {
				t.Errorf("expected version 1.0.0, got %s", response.Version)
			}
		})
	}
}
