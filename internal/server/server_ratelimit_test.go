package server

import (
	"net/http"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"

	"carlog/internal/app"
	"carlog/internal/ratelimit"
	"carlog/pkg/store"
)

func newRateLimitedServer(t *testing.T, loginLimit, signupLimit int) *testServer {
	t.Helper()
	redis := miniredis.RunT(t)
	loginLimiter, err := ratelimit.NewRedisFixedWindowLimiter(redis.Addr(), "", "test:login", loginLimit, time.Minute)
	if err != nil {
		t.Fatalf("new login limiter: %v", err)
	}
	signupLimiter, err := ratelimit.NewRedisFixedWindowLimiter(redis.Addr(), "", "test:signup", signupLimit, time.Minute)
	if err != nil {
		t.Fatalf("new signup limiter: %v", err)
	}

	mem := store.NewMemoryStore()
	sessions, err := store.NewJWTSessionStore("test-secret", time.Minute, nil)
	if err != nil {
		t.Fatalf("new session store: %v", err)
	}
	appCore, err := app.New(app.Config{Store: mem, Sessions: sessions})
	if err != nil {
		t.Fatalf("new app: %v", err)
	}
	return &testServer{
		Server: New(Config{
			App:           appCore,
			LoginLimiter:  loginLimiter,
			SignupLimiter: signupLimiter,
		}),
		store: mem,
	}
}

func TestLoginRateLimited(t *testing.T) {
	ts := newRateLimitedServer(t, 2, 100)
	ts.signup(t, "root@example.com")

	body := map[string]any{"email": "root@example.com", "password": "wrong password!!"}
	for i := 0; i < 2; i++ {
		rec := ts.do(t, http.MethodPost, "/api/auth/login", "", body)
		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("attempt %d status = %d, want 401", i+1, rec.Code)
		}
	}
	rec := ts.do(t, http.MethodPost, "/api/auth/login", "", body)
	if rec.Code != http.StatusTooManyRequests {
		t.Fatalf("third attempt status = %d, want 429", rec.Code)
	}
}

func TestSignupRateLimited(t *testing.T) {
	ts := newRateLimitedServer(t, 100, 1)
	ts.signup(t, "first@example.com")

	rec := ts.do(t, http.MethodPost, "/api/admins", "", adminBody("second@example.com"))
	if rec.Code != http.StatusTooManyRequests {
		t.Fatalf("status = %d, want 429", rec.Code)
	}
	// The throttled request must not create an account.
	admins, err := ts.store.ListAdmins()
	if err != nil {
		t.Fatalf("list admins: %v", err)
	}
	if len(admins) != 1 {
		t.Fatalf("expected 1 admin after throttled signup, got %d", len(admins))
	}
}
