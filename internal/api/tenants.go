package api

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/shopfabrik/slugd/internal/store"
	"github.com/shopfabrik/slugd/internal/tenant"
)

// tenantsHandler provides REST handlers for the tenant lifecycle.
type tenantsHandler struct {
	tenants  *store.TenantStore
	products *store.ProductStore
}

func registerTenantRoutes(r chi.Router, tenants *store.TenantStore, products *store.ProductStore) {
	h := &tenantsHandler{tenants: tenants, products: products}
	r.Post("/tenants", h.Create)
	r.Get("/tenants", h.List)
	r.Get("/tenants/{id}", h.Get)
	r.Put("/tenants/{id}/settings", h.UpdateSettings)
	r.Put("/tenants/{id}/status", h.UpdateStatus)
	r.Delete("/tenants/{id}", h.Delete)
	r.Get("/tenants/{id}/audit", h.AuditTrail)
	r.Get("/tenants/{id}/products", h.ListProducts)
}

// Create registers a tenant.
// POST /api/v1/tenants
func (h *tenantsHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateTenantRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", "BAD_REQUEST")
		return
	}
	if req.Name == "" {
		writeError(w, http.StatusBadRequest, "name is required", "BAD_REQUEST")
		return
	}

	tn, err := h.tenants.Create(r.Context(), req.Name, actorFrom(r))
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, toTenantResponse(tn))
}

// List returns all tenants.
// GET /api/v1/tenants
func (h *tenantsHandler) List(w http.ResponseWriter, r *http.Request) {
	tenants, err := h.tenants.ListAll(r.Context())
	if err != nil {
		writeDomainError(w, err)
		return
	}
	resp := make([]TenantResponse, 0, len(tenants))
	for _, tn := range tenants {
		resp = append(resp, toTenantResponse(tn))
	}
	writeJSON(w, http.StatusOK, resp)
}

// Get returns one tenant.
// GET /api/v1/tenants/{id}
func (h *tenantsHandler) Get(w http.ResponseWriter, r *http.Request) {
	tn, err := h.tenants.GetByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toTenantResponse(tn))
}

// UpdateSettings merges documented settings keys into the tenant.
// PUT /api/v1/tenants/{id}/settings
func (h *tenantsHandler) UpdateSettings(w http.ResponseWriter, r *http.Request) {
	var req UpdateTenantSettingsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", "BAD_REQUEST")
		return
	}
	if len(req.Settings) == 0 {
		writeError(w, http.StatusBadRequest, "settings is required", "BAD_REQUEST")
		return
	}

	tn, err := h.tenants.UpdateSettings(r.Context(), chi.URLParam(r, "id"), req.Settings, actorFrom(r))
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toTenantResponse(tn))
}

// UpdateStatus moves the tenant through the lifecycle.
// PUT /api/v1/tenants/{id}/status
func (h *tenantsHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	var req UpdateTenantStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", "BAD_REQUEST")
		return
	}

	tn, err := h.tenants.UpdateStatus(r.Context(), chi.URLParam(r, "id"), tenant.Status(req.Status), actorFrom(r))
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toTenantResponse(tn))
}

// Delete soft-deletes the tenant.
// DELETE /api/v1/tenants/{id}
func (h *tenantsHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if _, err := h.tenants.Delete(r.Context(), chi.URLParam(r, "id"), actorFrom(r)); err != nil {
		writeDomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// AuditTrail returns the tenant's audit entries, oldest first.
// GET /api/v1/tenants/{id}/audit
func (h *tenantsHandler) AuditTrail(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if _, err := h.tenants.GetByID(r.Context(), id); err != nil {
		writeDomainError(w, err)
		return
	}

	trail, err := h.tenants.AuditTrail(r.Context(), id)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	resp := make([]AuditEntryResponse, 0, len(trail))
	for _, e := range trail {
		resp = append(resp, AuditEntryResponse{
			ID:        e.ID,
			Action:    e.Action,
			Actor:     e.Actor,
			Detail:    e.Detail,
			CreatedAt: e.CreatedAt,
		})
	}
	writeJSON(w, http.StatusOK, resp)
}

// ListProducts returns the tenant's products.
// GET /api/v1/tenants/{id}/products
func (h *tenantsHandler) ListProducts(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if _, err := h.tenants.GetByID(r.Context(), id); err != nil {
		writeDomainError(w, err)
		return
	}

	products, err := h.products.ListByTenant(r.Context(), id)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	resp := make([]ProductResponse, 0, len(products))
	for _, p := range products {
		resp = append(resp, toProductResponse(p))
	}
	writeJSON(w, http.StatusOK, resp)
}
