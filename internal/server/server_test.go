package server

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"proforma/internal/config"
)

func newTestServer(t *testing.T) *Server {
	t.Helper()
	gin.SetMode(gin.TestMode)

	cfg := config.DefaultConfig()
	cfg.Server.DevMode = true
	cfg.Data.DataDir = t.TempDir()

	s, err := NewServer(cfg)
	if err != nil {
		t.Fatalf("NewServer failed: %v", err)
	}
	t.Cleanup(func() { _ = s.Shutdown(context.Background()) })
	return s
}

func TestServerRoutes(t *testing.T) {
	s := newTestServer(t)

	tests := []struct {
		name   string
		method string
		path   string
		code   int
	}{
		{"状态", http.MethodGet, "/api/status", http.StatusOK},
		{"参数", http.MethodGet, "/api/parameters", http.StatusOK},
		{"指标", http.MethodGet, "/api/outputs", http.StatusOK},
		{"损益表", http.MethodGet, "/api/proforma", http.StatusOK},
		{"导出记录", http.MethodGet, "/api/exports", http.StatusOK},
		{"预检", http.MethodOptions, "/api/parameters", http.StatusNoContent},
		{"不存在", http.MethodGet, "/nope", http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			s.Handler().ServeHTTP(w, httptest.NewRequest(tt.method, tt.path, nil))
			if w.Code != tt.code {
				t.Errorf("%s %s = %d, want %d", tt.method, tt.path, w.Code, tt.code)
			}
			if got := w.Header().Get("Access-Control-Allow-Origin"); got != "*" {
				t.Errorf("CORS header = %q", got)
			}
		})
	}
}

// TestRunShutdown 并发关闭后 Run 正常返回
func TestRunShutdown(t *testing.T) {
	gin.SetMode(gin.TestMode)

	cfg := config.DefaultConfig()
	cfg.Server.Port = 0
	cfg.Data.DataDir = t.TempDir()

	s, err := NewServer(cfg)
	if err != nil {
		t.Fatalf("NewServer failed: %v", err)
	}

	done := make(chan error, 1)
	go func() { done <- s.Run() }()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := s.Shutdown(ctx); err != nil {
		t.Fatalf("Shutdown failed: %v", err)
	}

	select {
	case err := <-done:
		if err != nil {
			t.Errorf("Run returned %v, want nil", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("Run did not return after Shutdown")
	}
}
