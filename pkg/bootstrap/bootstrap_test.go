package bootstrap

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/play2earn/backend/pkg/config"
)

func TestBuild_WithoutDatabase(t *testing.T) {
	cfg := &config.Config{
		JwtSecret:     "test-secret",
		TokenTTL:      time.Hour,
		MongoDatabase: "play2earn",
	}

	app, err := Build(context.Background(), cfg, zap.NewNop())
	if err != nil {
		t.Fatalf("Build error: %v", err)
	}
	defer app.Close(context.Background())

	resp, _ := app.Fiber.Test(httptest.NewRequest(http.MethodGet, "/generate_paragraph?level=advanced", nil), -1)
	if resp.StatusCode != http.StatusOK {
		t.Errorf("practice endpoints must work without a database, got %d", resp.StatusCode)
	}

	req := httptest.NewRequest(http.MethodPost, "/api/auth/register",
		bytes.NewReader([]byte(`{"name":"a","email":"a@example.com","password":"long enough"}`)))
	req.Header.Set("Content-Type", "application/json")
	resp, _ = app.Fiber.Test(req, -1)
	if resp.StatusCode != http.StatusServiceUnavailable {
		t.Errorf("expected status 503 without a database, got %d", resp.StatusCode)
	}
}
