package api

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/shopfabrik/slugd/internal/store"
	"github.com/shopfabrik/slugd/internal/urls"
)

// urlsHandler provides REST handlers for URL record management.
type urlsHandler struct {
	svc *urls.Service
}

func registerURLRoutes(r chi.Router, svc *urls.Service) {
	h := &urlsHandler{svc: svc}
	r.Post("/urls", h.Create)
	r.Get("/urls/{id}", h.Get)
	r.Put("/urls/{id}", h.Update)
	r.Delete("/urls/{id}", h.Delete)
	r.Post("/urls/{id}/default", h.SetDefault)
	r.Post("/slugs", h.GenerateSlug)
	r.Get("/elements/{type}/{id}/urls", h.ListByElement)
	r.Get("/elements/{type}/{id}/default-url", h.GetDefault)
}

// Create creates a new URL record.
// POST /api/v1/urls
func (h *urlsHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateURLRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", "BAD_REQUEST")
		return
	}
	if req.ElementID == "" {
		writeError(w, http.StatusBadRequest, "element_id is required", "BAD_REQUEST")
		return
	}
	if req.LanguageID == "" {
		writeError(w, http.StatusBadRequest, "language_id is required", "BAD_REQUEST")
		return
	}
	if req.ElementType == "" {
		req.ElementType = store.ElementTypeProduct
	}

	rec, err := h.svc.CreateURL(r.Context(), urls.CreateURLInput{
		ElementType: req.ElementType,
		ElementID:   req.ElementID,
		LanguageID:  req.LanguageID,
		Slug:        req.Slug,
		Default:     req.Default,
	})
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, toURLResponse(rec))
}

// Get returns one URL record.
// GET /api/v1/urls/{id}
func (h *urlsHandler) Get(w http.ResponseWriter, r *http.Request) {
	rec, err := h.svc.GetURL(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toURLResponse(rec))
}

// Update applies a partial update to a URL record.
// PUT /api/v1/urls/{id}
func (h *urlsHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req UpdateURLRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", "BAD_REQUEST")
		return
	}

	rec, err := h.svc.UpdateURL(r.Context(), chi.URLParam(r, "id"), store.URLUpdate{
		Slug:      req.Slug,
		IsDefault: req.Default,
	})
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toURLResponse(rec))
}

// Delete removes a URL record; deleting a scope default promotes the oldest
// remaining sibling.
// DELETE /api/v1/urls/{id}
func (h *urlsHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.DeleteURL(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeDomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// SetDefault makes a URL record its scope's single default.
// POST /api/v1/urls/{id}/default
func (h *urlsHandler) SetDefault(w http.ResponseWriter, r *http.Request) {
	rec, err := h.svc.SetAsDefault(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toURLResponse(rec))
}

// GenerateSlug derives an unused slug from a display name.
// POST /api/v1/slugs
func (h *urlsHandler) GenerateSlug(w http.ResponseWriter, r *http.Request) {
	var req GenerateSlugRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", "BAD_REQUEST")
		return
	}
	if req.LanguageID == "" {
		writeError(w, http.StatusBadRequest, "language_id is required", "BAD_REQUEST")
		return
	}

	out, err := h.svc.GenerateSlug(r.Context(), req.Name, req.LanguageID)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, GenerateSlugResponse{Slug: out})
}

// ListByElement returns all URL records attached to an element.
// GET /api/v1/elements/{type}/{id}/urls
func (h *urlsHandler) ListByElement(w http.ResponseWriter, r *http.Request) {
	list, err := h.svc.ListURLs(r.Context(), chi.URLParam(r, "type"), chi.URLParam(r, "id"))
	if err != nil {
		writeDomainError(w, err)
		return
	}
	resp := URLListResponse{URLs: make([]URLResponse, 0, len(list))}
	for _, u := range list {
		resp.URLs = append(resp.URLs, toURLResponse(u))
	}
	writeJSON(w, http.StatusOK, resp)
}

// GetDefault returns the element's default URL for a language code. A
// missing language or a scope with no default is 404, matching the record
// lookup semantics of the rest of the API.
// GET /api/v1/elements/{type}/{id}/default-url?language=en
func (h *urlsHandler) GetDefault(w http.ResponseWriter, r *http.Request) {
	code := r.URL.Query().Get("language")
	if code == "" {
		writeError(w, http.StatusBadRequest, "language query parameter is required", "BAD_REQUEST")
		return
	}

	rec, err := h.svc.GetDefaultURL(r.Context(), chi.URLParam(r, "type"), chi.URLParam(r, "id"), code)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	if rec == nil {
		writeError(w, http.StatusNotFound, "no default url", "NOT_FOUND")
		return
	}
	writeJSON(w, http.StatusOK, toURLResponse(rec))
}
