package test

import (
	"context"
	"log"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/play2earn/backend/pkg/auth"
	"github.com/play2earn/backend/pkg/store"
)

func init() {
	err := godotenv.Load(".env")
	if err != nil {
		log.Println("Warning: could not load .env file, using system environment variables")
	}
}

func getTestAuth(t *testing.T) *auth.Auth {
	t.Helper()
	if os.Getenv("CB_CONN_STR") == "" {
		t.Skip("CB_CONN_STR not set, skipping Couchbase integration test")
	}

	sessions, err := auth.ConnectCouchbase(auth.CouchbaseConfig{
		ConnStr:    os.Getenv("CB_CONN_STR"), // e.g. "couchbase://127.0.0.1"
		Username:   os.Getenv("CB_USERNAME"),
		Password:   os.Getenv("CB_PASSWORD"),
		BucketName: os.Getenv("CB_BUCKET"),
		Scope:      os.Getenv("CB_SCOPE"),
		Collection: os.Getenv("CB_COLLECTION"),
		Timeout:    5 * time.Second,
	})
	if err != nil {
		t.Fatalf("ConnectCouchbase error: %v", err)
	}
	t.Cleanup(func() { _ = sessions.Close() })

	return auth.New(&auth.Config{
		JwtSecretKey: "test-secret",
		TokenTTL:     time.Minute,
		Sessions:     sessions,
	})
}

func TestCreateAccessToken_And_SaveSession(t *testing.T) {
	a := getTestAuth(t)
	ctx := context.Background()

	token, err := a.CreateAccessToken(ctx, auth.Identity{UserID: "user123", Roles: []int{auth.RoleUser}}, "TestAgent")
	if err != nil {
		t.Fatalf("CreateAccessToken error: %v", err)
	}

	parts := strings.Split(token, ".")
	if len(parts) != 3 {
		t.Fatalf("token split expected 3 parts, got %d", len(parts))
	}
	session, err := a.Sessions.Get(ctx, "user123:"+parts[2])
	if err != nil {
		t.Fatalf("Session should exist in Couchbase: %v", err)
	}
	if session.UserAgent != "TestAgent" {
		t.Errorf("UserAgent = %q, want TestAgent", session.UserAgent)
	}

	if err := a.RevokeAccessToken(ctx, token); err != nil {
		t.Fatalf("RevokeAccessToken error: %v", err)
	}
	if _, err := a.Sessions.Get(ctx, "user123:"+parts[2]); err == nil {
		t.Error("session should be gone after revoke")
	}
}

func TestMiddleware_With_CouchbaseSession(t *testing.T) {
	a := getTestAuth(t)

	token, err := a.CreateAccessToken(context.Background(), auth.Identity{UserID: "user123"}, "TestAgent")
	if err != nil {
		t.Fatalf("CreateAccessToken error: %v", err)
	}

	app := newProtectedApp(a)

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.AddCookie(&http.Cookie{Name: auth.CookieName, Value: token})
	resp, _ := app.Test(req, -1)
	if resp.StatusCode != http.StatusOK {
		t.Errorf("expected status 200, got %d", resp.StatusCode)
	}
}

func TestMongoUsers(t *testing.T) {
	uri := os.Getenv("MONGO_URI")
	if uri == "" {
		t.Skip("MONGO_URI not set, skipping MongoDB integration test")
	}
	ctx := context.Background()

	m := store.Connect(ctx, uri, "play2earn_test", zap.NewNop())
	t.Cleanup(func() {
		if m.DB != nil {
			_ = m.DB.Drop(ctx)
		}
		_ = m.Disconnect(ctx)
	})
	if m.DB == nil {
		t.Fatal("could not connect to MongoDB at MONGO_URI")
	}

	users := m.Users()
	u := &store.User{Name: "Marie", Email: "marie@example.com", Roles: []int{auth.RoleUser}}
	if err := users.Create(ctx, u); err != nil {
		t.Fatalf("Create error: %v", err)
	}
	got, err := users.ByEmail(ctx, "MARIE@example.com")
	if err != nil {
		t.Fatalf("ByEmail error: %v", err)
	}
	if got.ID != u.ID {
		t.Errorf("ByEmail returned %s, want %s", got.ID.Hex(), u.ID.Hex())
	}
}
