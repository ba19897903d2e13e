package handler

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/dukerupert/dispensa/internal/apperr"
	"github.com/dukerupert/dispensa/internal/websocket"
)

// envelope is the body of every API response.
type envelope struct {
	Success bool   `json:"success"`
	Data    any    `json:"data"`
	Error   string `json:"error,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeData(w http.ResponseWriter, status int, data any) {
	writeJSON(w, status, envelope{Success: true, Data: data})
}

func writeFail(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, envelope{Success: false, Error: msg})
}

// writeError maps err to a status and a client-safe message. Server-side
// failures are logged with the underlying error and reported as fallback.
func writeError(w http.ResponseWriter, logger *slog.Logger, err error, fallback string) {
	status := apperr.Status(err)
	if status >= http.StatusInternalServerError {
		logger.Error(fallback, "error", err)
	}
	writeFail(w, status, apperr.Message(err, fallback))
}

// decodeJSON reads the request body into v. An empty body leaves v as is.
func decodeJSON(r *http.Request, v any) error {
	err := json.NewDecoder(r.Body).Decode(v)
	if errors.Is(err, io.EOF) {
		return nil
	}
	return err
}

func parseIDParam(r *http.Request) (int64, error) {
	idStr := r.PathValue("id")
	return strconv.ParseInt(idStr, 10, 64)
}

func invalidate(hub *websocket.Hub, paths ...string) {
	if hub != nil {
		hub.Invalidate(paths...)
	}
}
