package handler

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/dukerupert/dispensa/internal/auth"
)

func setupAuthHandler(t *testing.T) (*AuthHandler, *auth.Sessions) {
	t.Helper()
	creds, err := auth.NewCredentials("Arena", "segreta", "")
	if err != nil {
		t.Fatalf("credentials: %v", err)
	}
	sessions, err := auth.NewSessions("test-secret", time.Hour, false)
	if err != nil {
		t.Fatalf("sessions: %v", err)
	}
	return NewAuthHandler(creds, sessions, NewPageHandler(testLogger), testLogger), sessions
}

func sessionCookie(rec *httptest.ResponseRecorder) *http.Cookie {
	for _, c := range rec.Result().Cookies() {
		if c.Name == auth.CookieName {
			return c
		}
	}
	return nil
}

func TestLoginJSON(t *testing.T) {
	h, sessions := setupAuthHandler(t)

	r := httptest.NewRequest("POST", "/api/auth/login", strings.NewReader(`{"username":"Arena","password":"segreta"}`))
	r.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.Login(rec, r)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}
	c := sessionCookie(rec)
	if c == nil {
		t.Fatal("no session cookie set")
	}
	if user, err := sessions.Verify(c.Value); err != nil || user != "Arena" {
		t.Errorf("Verify = %q, %v", user, err)
	}
}

func TestLoginJSONWrongPassword(t *testing.T) {
	h, _ := setupAuthHandler(t)

	r := httptest.NewRequest("POST", "/api/auth/login", strings.NewReader(`{"username":"Arena","password":"sbagliata"}`))
	r.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.Login(rec, r)

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", rec.Code)
	}
	if sessionCookie(rec) != nil {
		t.Error("cookie set on failed login")
	}
	if resp := decodeEnvelope(t, rec); resp.Success {
		t.Errorf("response = %+v", resp)
	}
}

func TestLoginForm(t *testing.T) {
	h, _ := setupAuthHandler(t)

	form := url.Values{"username": {"Arena"}, "password": {"segreta"}}
	r := httptest.NewRequest("POST", "/api/auth/login", strings.NewReader(form.Encode()))
	r.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	h.Login(rec, r)

	if rec.Code != http.StatusSeeOther || rec.Header().Get("Location") != "/shopping" {
		t.Errorf("status = %d, location = %q", rec.Code, rec.Header().Get("Location"))
	}

	form.Set("password", "no")
	r = httptest.NewRequest("POST", "/api/auth/login", strings.NewReader(form.Encode()))
	r.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec = httptest.NewRecorder()
	h.Login(rec, r)
	if rec.Code != http.StatusUnauthorized || !strings.Contains(rec.Body.String(), "non validi") {
		t.Errorf("failed form login: status = %d", rec.Code)
	}
}

func TestLoginPageRedirectsWhenAuthenticated(t *testing.T) {
	h, sessions := setupAuthHandler(t)
	token, err := sessions.Issue("Arena")
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	r := httptest.NewRequest("GET", "/login", nil)
	r.AddCookie(&http.Cookie{Name: auth.CookieName, Value: token})
	rec := httptest.NewRecorder()
	h.LoginPage(rec, r)
	if rec.Code != http.StatusSeeOther || rec.Header().Get("Location") != "/shopping" {
		t.Errorf("status = %d, location = %q", rec.Code, rec.Header().Get("Location"))
	}

	rec = httptest.NewRecorder()
	h.LoginPage(rec, httptest.NewRequest("GET", "/login", nil))
	if rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), "<form") {
		t.Errorf("anonymous login page: status = %d", rec.Code)
	}
}

func TestLogoutClearsCookie(t *testing.T) {
	h, _ := setupAuthHandler(t)
	rec := httptest.NewRecorder()
	h.Logout(rec, httptest.NewRequest("POST", "/api/auth/logout", nil))
	if rec.Code != http.StatusSeeOther {
		t.Errorf("status = %d", rec.Code)
	}
	c := sessionCookie(rec)
	if c == nil || c.MaxAge >= 0 {
		t.Errorf("cookie = %+v, want expired", c)
	}
}

func TestViewPages(t *testing.T) {
	pages := NewPageHandler(testLogger)

	rec := httptest.NewRecorder()
	pages.View(rec, httptest.NewRequest("GET", "/meal-plan", nil))
	if rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), `data-view="/meal-plan"`) {
		t.Errorf("meal plan page: status = %d", rec.Code)
	}

	rec = httptest.NewRecorder()
	pages.View(rec, httptest.NewRequest("GET", "/garage", nil))
	if rec.Code != http.StatusNotFound {
		t.Errorf("unknown view: status = %d", rec.Code)
	}
}
