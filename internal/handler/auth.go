package handler

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/dukerupert/dispensa/internal/auth"
)

type AuthHandler struct {
	credentials *auth.Credentials
	sessions    *auth.Sessions
	pages       *PageHandler
	logger      *slog.Logger
}

func NewAuthHandler(creds *auth.Credentials, sessions *auth.Sessions, pages *PageHandler, logger *slog.Logger) *AuthHandler {
	return &AuthHandler{
		credentials: creds,
		sessions:    sessions,
		pages:       pages,
		logger:      logger,
	}
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func isJSON(r *http.Request) bool {
	return strings.HasPrefix(r.Header.Get("Content-Type"), "application/json")
}

func (h *AuthHandler) LoginPage(w http.ResponseWriter, r *http.Request) {
	if _, err := h.sessions.FromRequest(r); err == nil {
		http.Redirect(w, r, "/shopping", http.StatusSeeOther)
		return
	}
	h.pages.render(w, http.StatusOK, "login.html", map[string]any{"Error": "", "Username": ""})
}

// Login accepts a JSON body or a form post. JSON callers get the envelope;
// form posts are redirected to the app or shown the form again.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if isJSON(r) {
		if err := decodeJSON(r, &req); err != nil {
			writeFail(w, http.StatusBadRequest, "invalid request body")
			return
		}
	} else {
		req.Username = r.FormValue("username")
		req.Password = r.FormValue("password")
	}
	req.Username = strings.TrimSpace(req.Username)

	if !h.credentials.Verify(req.Username, req.Password) {
		h.logger.Warn("login failed", "username", req.Username)
		if isJSON(r) {
			writeFail(w, http.StatusUnauthorized, "invalid username or password")
			return
		}
		h.pages.render(w, http.StatusUnauthorized, "login.html", map[string]any{
			"Error":    "Utente o password non validi",
			"Username": req.Username,
		})
		return
	}

	if err := h.sessions.SetCookie(w, h.credentials.Username()); err != nil {
		h.logger.Error("issue session", "error", err)
		writeFail(w, http.StatusInternalServerError, "failed to create session")
		return
	}
	h.logger.Info("login", "username", req.Username)

	if isJSON(r) {
		writeData(w, http.StatusOK, map[string]string{"username": h.credentials.Username()})
		return
	}
	http.Redirect(w, r, "/shopping", http.StatusSeeOther)
}

func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	h.sessions.ClearCookie(w)
	if isJSON(r) {
		writeData(w, http.StatusOK, nil)
		return
	}
	http.Redirect(w, r, "/login", http.StatusSeeOther)
}
