package handler

import (
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"github.com/dukerupert/dispensa/internal/archive"
	"github.com/dukerupert/dispensa/internal/auth"
	"github.com/dukerupert/dispensa/internal/model"
	"github.com/dukerupert/dispensa/internal/recipeimport"
	"github.com/dukerupert/dispensa/internal/store"
	"github.com/dukerupert/dispensa/internal/websocket"
)

const maxImportSize = 10 << 20

type RecipeHandler struct {
	recipeStore *store.RecipeStore
	extractor   recipeimport.Extractor
	archive     archive.Store
	hub         *websocket.Hub
	logger      *slog.Logger
}

func NewRecipeHandler(rs *store.RecipeStore, ex recipeimport.Extractor, as archive.Store, hub *websocket.Hub, logger *slog.Logger) *RecipeHandler {
	if as == nil {
		as = archive.Nop{}
	}
	return &RecipeHandler{
		recipeStore: rs,
		extractor:   ex,
		archive:     as,
		hub:         hub,
		logger:      logger,
	}
}

type recipeRequest struct {
	Name         string `json:"name"`
	Ingredients  string `json:"ingredients"`
	Instructions string `json:"instructions"`
	Category     string `json:"category"`
}

func (req *recipeRequest) normalize() bool {
	req.Name = strings.TrimSpace(req.Name)
	req.Category = strings.TrimSpace(req.Category)
	if req.Category == "" {
		req.Category = string(model.DefaultCategory)
	}
	return req.Name != ""
}

func (h *RecipeHandler) List(w http.ResponseWriter, r *http.Request) {
	recipes, err := h.recipeStore.List(r.Context(), auth.UserID(r.Context()))
	if err != nil {
		writeError(w, h.logger, err, "failed to list recipes")
		return
	}
	if recipes == nil {
		recipes = []model.Recipe{}
	}
	writeData(w, http.StatusOK, recipes)
}

func (h *RecipeHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r)
	if err != nil {
		writeFail(w, http.StatusBadRequest, "invalid id")
		return
	}
	recipe, err := h.recipeStore.GetByID(r.Context(), auth.UserID(r.Context()), id)
	if err != nil {
		writeError(w, h.logger, err, "failed to get recipe")
		return
	}
	if recipe == nil {
		writeFail(w, http.StatusNotFound, "recipe not found")
		return
	}
	writeData(w, http.StatusOK, recipe)
}

func (h *RecipeHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req recipeRequest
	if err := decodeJSON(r, &req); err != nil {
		writeFail(w, http.StatusBadRequest, "invalid JSON")
		return
	}
	if !req.normalize() {
		writeFail(w, http.StatusBadRequest, "name is required")
		return
	}

	recipe, err := h.recipeStore.Create(r.Context(), auth.UserID(r.Context()), req.Name, req.Ingredients, req.Instructions, req.Category)
	if err != nil {
		writeError(w, h.logger, err, "failed to create recipe")
		return
	}

	invalidate(h.hub, websocket.ViewRecipes)
	writeData(w, http.StatusCreated, recipe)
}

func (h *RecipeHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r)
	if err != nil {
		writeFail(w, http.StatusBadRequest, "invalid id")
		return
	}
	userID := auth.UserID(r.Context())

	existing, err := h.recipeStore.GetByID(r.Context(), userID, id)
	if err != nil {
		writeError(w, h.logger, err, "failed to get recipe")
		return
	}
	if existing == nil {
		writeFail(w, http.StatusNotFound, "recipe not found")
		return
	}

	var req recipeRequest
	if err := decodeJSON(r, &req); err != nil {
		writeFail(w, http.StatusBadRequest, "invalid JSON")
		return
	}
	if !req.normalize() {
		writeFail(w, http.StatusBadRequest, "name is required")
		return
	}

	recipe, err := h.recipeStore.Update(r.Context(), userID, id, req.Name, req.Ingredients, req.Instructions, req.Category)
	if err != nil {
		writeError(w, h.logger, err, "failed to update recipe")
		return
	}

	invalidate(h.hub, websocket.ViewRecipes)
	writeData(w, http.StatusOK, recipe)
}

func (h *RecipeHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r)
	if err != nil {
		writeFail(w, http.StatusBadRequest, "invalid id")
		return
	}
	userID := auth.UserID(r.Context())

	existing, err := h.recipeStore.GetByID(r.Context(), userID, id)
	if err != nil {
		writeError(w, h.logger, err, "failed to get recipe")
		return
	}
	if existing == nil {
		writeFail(w, http.StatusNotFound, "recipe not found")
		return
	}

	if err := h.recipeStore.Delete(r.Context(), userID, id); err != nil {
		writeError(w, h.logger, err, "failed to delete recipe")
		return
	}

	invalidate(h.hub, websocket.ViewRecipes)
	writeData(w, http.StatusOK, map[string]int64{"id": id})
}

type importResponse struct {
	Draft      recipeimport.Draft `json:"draft"`
	ArchiveKey string             `json:"archive_key,omitempty"`
}

// Import reads an uploaded PDF or DOCX and returns a draft recipe for the
// user to review. Nothing is saved to the recipe store.
func (h *RecipeHandler) Import(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxImportSize)
	file, header, err := r.FormFile("file")
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeFail(w, http.StatusRequestEntityTooLarge, "file too large")
			return
		}
		writeFail(w, http.StatusBadRequest, "file is required")
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		writeFail(w, http.StatusBadRequest, "failed to read file")
		return
	}

	mimeType := recipeimport.DetectType(header.Filename, header.Header.Get("Content-Type"))
	text, err := h.extractor.Extract(r.Context(), data, mimeType)
	if errors.Is(err, recipeimport.ErrUnsupportedType) {
		writeFail(w, http.StatusBadRequest, "only PDF and DOCX files are supported")
		return
	}
	if err != nil {
		h.logger.Warn("extract recipe text", "filename", header.Filename, "error", err)
		writeFail(w, http.StatusUnprocessableEntity, "could not read document")
		return
	}

	resp := importResponse{Draft: recipeimport.Split(text)}

	key, err := h.archive.Put(r.Context(), header.Filename, mimeType, data)
	if err != nil {
		h.logger.Error("archive recipe document", "filename", header.Filename, "error", err)
	} else {
		resp.ArchiveKey = key
	}

	h.logger.Info("recipe imported", "filename", header.Filename, "size", len(data), "name", resp.Draft.Name)
	writeData(w, http.StatusOK, resp)
}
