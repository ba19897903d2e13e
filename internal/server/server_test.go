package server

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/dukerupert/dispensa/internal/auth"
	"github.com/dukerupert/dispensa/internal/config"
	"github.com/dukerupert/dispensa/internal/database"
)

func setupServer(t *testing.T) http.Handler {
	t.Helper()
	db, err := database.Open(":memory:")
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	cfg := config.Config{
		Location:      time.UTC,
		Username:      "Arena",
		Password:      "segreta",
		SessionSecret: "test-secret",
		SessionTTL:    time.Hour,
	}
	srv, err := New(context.Background(), db, cfg, slog.New(slog.NewTextHandler(io.Discard, nil)))
	if err != nil {
		t.Fatalf("new server: %v", err)
	}
	return srv.Router()
}

func login(t *testing.T, router http.Handler) *http.Cookie {
	t.Helper()
	r := httptest.NewRequest("POST", "/api/auth/login", strings.NewReader(`{"username":"Arena","password":"segreta"}`))
	r.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, r)
	if rec.Code != http.StatusOK {
		t.Fatalf("login: status = %d, body = %s", rec.Code, rec.Body.String())
	}
	for _, c := range rec.Result().Cookies() {
		if c.Name == auth.CookieName {
			return c
		}
	}
	t.Fatal("login set no session cookie")
	return nil
}

func TestHealth(t *testing.T) {
	router := setupServer(t)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest("GET", "/health", nil))
	if rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), `"ok"`) {
		t.Errorf("health: status = %d, body = %s", rec.Code, rec.Body.String())
	}
}

func TestUnauthenticatedAccess(t *testing.T) {
	router := setupServer(t)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest("GET", "/api/shopping", nil))
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("api: status = %d, want 401", rec.Code)
	}

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest("GET", "/pantry", nil))
	if rec.Code != http.StatusSeeOther || rec.Header().Get("Location") != "/login" {
		t.Errorf("page: status = %d, location = %q", rec.Code, rec.Header().Get("Location"))
	}

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest("GET", "/static/app.css", nil))
	if rec.Code != http.StatusOK {
		t.Errorf("static: status = %d, want 200", rec.Code)
	}
}

func TestAuthenticatedRoundTrip(t *testing.T) {
	router := setupServer(t)
	cookie := login(t, router)

	r := httptest.NewRequest("POST", "/api/shopping", strings.NewReader(`{"name":"Pane","quantity":"1 pz"}`))
	r.Header.Set("Content-Type", "application/json")
	r.AddCookie(cookie)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, r)
	if rec.Code != http.StatusCreated {
		t.Fatalf("create: status = %d, body = %s", rec.Code, rec.Body.String())
	}

	r = httptest.NewRequest("GET", "/api/shopping", nil)
	r.AddCookie(cookie)
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, r)
	if rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), `"Pane"`) {
		t.Errorf("list: status = %d, body = %s", rec.Code, rec.Body.String())
	}

	r = httptest.NewRequest("GET", "/", nil)
	r.AddCookie(cookie)
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, r)
	if rec.Code != http.StatusSeeOther || rec.Header().Get("Location") != "/shopping" {
		t.Errorf("home: status = %d, location = %q", rec.Code, rec.Header().Get("Location"))
	}
}

func TestLoginRateLimited(t *testing.T) {
	router := setupServer(t)
	var last int
	for i := 0; i < 11; i++ {
		r := httptest.NewRequest("POST", "/api/auth/login", strings.NewReader(`{"username":"Arena","password":"no"}`))
		r.Header.Set("Content-Type", "application/json")
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, r)
		last = rec.Code
	}
	if last != http.StatusTooManyRequests {
		t.Errorf("11th attempt: status = %d, want 429", last)
	}
}
