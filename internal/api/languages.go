package api

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/shopfabrik/slugd/internal/store"
)

// languagesHandler provides REST handlers for language registration.
type languagesHandler struct {
	langs *store.LanguageStore
}

func registerLanguageRoutes(r chi.Router, langs *store.LanguageStore) {
	h := &languagesHandler{langs: langs}
	r.Post("/languages", h.Create)
	r.Get("/languages", h.List)
	r.Get("/languages/{code}", h.GetByCode)
}

// Create registers a language.
// POST /api/v1/languages
func (h *languagesHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateLanguageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", "BAD_REQUEST")
		return
	}
	if req.Code == "" {
		writeError(w, http.StatusBadRequest, "code is required", "BAD_REQUEST")
		return
	}

	lang, err := h.langs.Create(r.Context(), req.Code, req.Name)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, toLanguageResponse(lang))
}

// List returns all registered languages.
// GET /api/v1/languages
func (h *languagesHandler) List(w http.ResponseWriter, r *http.Request) {
	langs, err := h.langs.ListAll(r.Context())
	if err != nil {
		writeDomainError(w, err)
		return
	}
	resp := make([]LanguageResponse, 0, len(langs))
	for _, l := range langs {
		resp = append(resp, toLanguageResponse(l))
	}
	writeJSON(w, http.StatusOK, resp)
}

// GetByCode returns one language by its code.
// GET /api/v1/languages/{code}
func (h *languagesHandler) GetByCode(w http.ResponseWriter, r *http.Request) {
	lang, err := h.langs.GetByCode(r.Context(), chi.URLParam(r, "code"))
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toLanguageResponse(lang))
}
