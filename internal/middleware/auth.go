package middleware

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/dukerupert/dispensa/internal/auth"
	"github.com/dukerupert/dispensa/internal/store"
)

var publicPaths = []string{"/login", "/api/auth/login", "/health"}

const publicPrefix = "/static/"

func isPublic(path string) bool {
	if strings.HasPrefix(path, publicPrefix) {
		return true
	}
	for _, p := range publicPaths {
		if path == p {
			return true
		}
	}
	return false
}

// RequireAuth validates the session cookie and populates UserContext.
// API requests get a 401 envelope; HTMX requests get an HX-Redirect header;
// everything else is redirected to /login.
func RequireAuth(sessions *auth.Sessions, users *store.UserStore) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if isPublic(r.URL.Path) {
				next.ServeHTTP(w, r)
				return
			}

			username, err := sessions.FromRequest(r)
			if err != nil {
				denyAccess(w, r)
				return
			}

			user, err := users.GetByUsername(r.Context(), username)
			if err != nil || user == nil {
				denyAccess(w, r)
				return
			}

			ctx := auth.WithUser(r.Context(), auth.UserContext{UserID: user.ID, Username: user.Username})
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func denyAccess(w http.ResponseWriter, r *http.Request) {
	switch {
	case strings.HasPrefix(r.URL.Path, "/api/"):
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		json.NewEncoder(w).Encode(map[string]any{"success": false, "error": "unauthorized"})
	case r.Header.Get("HX-Request") == "true":
		w.Header().Set("HX-Redirect", "/login")
		w.WriteHeader(http.StatusOK)
	default:
		http.Redirect(w, r, "/login", http.StatusSeeOther)
	}
}
