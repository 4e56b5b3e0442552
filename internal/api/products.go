package api

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/shopfabrik/slugd/internal/store"
)

// productsHandler provides REST handlers for the catalog elements URLs
// attach to.
type productsHandler struct {
	products *store.ProductStore
}

func registerProductRoutes(r chi.Router, products *store.ProductStore) {
	h := &productsHandler{products: products}
	r.Post("/products", h.Create)
	r.Get("/products/{id}", h.Get)
}

// Create inserts a product for a tenant.
// POST /api/v1/products
func (h *productsHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateProductRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", "BAD_REQUEST")
		return
	}
	if req.TenantID == "" {
		writeError(w, http.StatusBadRequest, "tenant_id is required", "BAD_REQUEST")
		return
	}
	if req.Name == "" {
		writeError(w, http.StatusBadRequest, "name is required", "BAD_REQUEST")
		return
	}

	p, err := h.products.Create(r.Context(), req.TenantID, req.Name)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, toProductResponse(p))
}

// Get returns one product.
// GET /api/v1/products/{id}
func (h *productsHandler) Get(w http.ResponseWriter, r *http.Request) {
	p, err := h.products.GetByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toProductResponse(p))
}
