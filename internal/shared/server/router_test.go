package server_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"pdfdash-backend/internal/services/health"
	"pdfdash-backend/internal/shared/config"
	"pdfdash-backend/internal/shared/server"
)

func TestHealthEndpoint(t *testing.T) {
	gin.SetMode(gin.TestMode)

	router := server.NewRouter(server.RouterDeps{
		Config: config.Config{CORSAllowOrigins: []string{"http://localhost:5173"}},
		Health: health.NewService("dev", "1.0.0"),
	})

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}

	var payload map[string]any
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if payload["status"] != "ok" {
		t.Fatalf("expected status ok, got %v", payload["status"])
	}
	if payload["environment"] != "dev" {
		t.Fatalf("expected environment dev, got %v", payload["environment"])
	}
	if payload["version"] != "1.0.0" {
		t.Fatalf("expected version 1.0.0, got %v", payload["version"])
	}
	if payload["timestamp"] == "" || payload["timestamp"] == nil {
		t.Fatalf("expected timestamp")
	}
	if resp.Header().Get("X-Request-Id") == "" {
		t.Fatalf("expected X-Request-Id header")
	}
}

func TestAddr(t *testing.T) {
	tests := []struct {
		port string
		want string
	}{
		{port: "", want: ":8080"},
		{port: "9090", want: ":9090"},
		{port: ":7070", want: ":7070"},
	}
	for _, tt := range tests {
		if got := server.Addr(tt.port); got != tt.want {
			t.Fatalf("Addr(%q) = %q, want %q", tt.port, got, tt.want)
		}
	}
}
