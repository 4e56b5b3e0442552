package api

import (
	"time"

	"github.com/shopfabrik/slugd/internal/store"
)

// --- URL types ---

// CreateURLRequest is the request body for POST /api/v1/urls.
// element_type defaults to "product" when omitted.
type CreateURLRequest struct {
	ElementType string `json:"element_type,omitempty"`
	ElementID   string `json:"element_id"`
	LanguageID  string `json:"language_id"`
	Slug        string `json:"slug"`
	Default     bool   `json:"default,omitempty"`
}

// UpdateURLRequest is the request body for PUT /api/v1/urls/{id}.
// Omitted fields are left unchanged.
type UpdateURLRequest struct {
	Slug    *string `json:"slug,omitempty"`
	Default *bool   `json:"default,omitempty"`
}

// URLResponse is the JSON representation of a single URL record.
type URLResponse struct {
	ID          string    `json:"id"`
	ElementType string    `json:"element_type"`
	ElementID   string    `json:"element_id"`
	LanguageID  string    `json:"language_id"`
	Slug        string    `json:"slug"`
	Default     bool      `json:"default"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// URLListResponse is the response for URL list endpoints.
type URLListResponse struct {
	URLs []URLResponse `json:"urls"`
}

func toURLResponse(u *store.URL) URLResponse {
	return URLResponse{
		ID:          u.ID,
		ElementType: u.ElementType,
		ElementID:   u.ElementID,
		LanguageID:  u.LanguageID,
		Slug:        u.Slug,
		Default:     u.IsDefault,
		CreatedAt:   u.CreatedAt,
		UpdatedAt:   u.UpdatedAt,
	}
}

// GenerateSlugRequest is the request body for POST /api/v1/slugs.
type GenerateSlugRequest struct {
	Name       string `json:"name"`
	LanguageID string `json:"language_id"`
}

// GenerateSlugResponse carries the generated slug.
type GenerateSlugResponse struct {
	Slug string `json:"slug"`
}

// --- Language types ---

// CreateLanguageRequest is the request body for POST /api/v1/languages.
type CreateLanguageRequest struct {
	Code string `json:"code"`
	Name string `json:"name,omitempty"`
}

// LanguageResponse is the JSON representation of a language.
type LanguageResponse struct {
	ID        string    `json:"id"`
	Code      string    `json:"code"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

func toLanguageResponse(l *store.Language) LanguageResponse {
	return LanguageResponse{ID: l.ID, Code: l.Code, Name: l.Name, CreatedAt: l.CreatedAt}
}

// --- Product types ---

// CreateProductRequest is the request body for POST /api/v1/products.
type CreateProductRequest struct {
	TenantID string `json:"tenant_id"`
	Name     string `json:"name"`
}

// ProductResponse is the JSON representation of a product.
type ProductResponse struct {
	ID        string    `json:"id"`
	TenantID  string    `json:"tenant_id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func toProductResponse(p *store.Product) ProductResponse {
	return ProductResponse{
		ID:        p.ID,
		TenantID:  p.TenantID,
		Name:      p.Name,
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	}
}

// --- Tenant types ---

// CreateTenantRequest is the request body for POST /api/v1/tenants.
type CreateTenantRequest struct {
	Name string `json:"name"`
}

// UpdateTenantSettingsRequest is the request body for PUT /api/v1/tenants/{id}/settings.
type UpdateTenantSettingsRequest struct {
	Settings map[string]any `json:"settings"`
}

// UpdateTenantStatusRequest is the request body for PUT /api/v1/tenants/{id}/status.
type UpdateTenantStatusRequest struct {
	Status string `json:"status"`
}

// TenantResponse is the JSON representation of a tenant.
type TenantResponse struct {
	ID        string         `json:"id"`
	Name      string         `json:"name"`
	Status    string         `json:"status"`
	Settings  map[string]any `json:"settings"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
}

func toTenantResponse(t *store.Tenant) TenantResponse {
	return TenantResponse{
		ID:        t.ID,
		Name:      t.Name,
		Status:    string(t.Status),
		Settings:  t.Settings,
		CreatedAt: t.CreatedAt,
		UpdatedAt: t.UpdatedAt,
	}
}

// AuditEntryResponse is one tenant audit trail entry.
type AuditEntryResponse struct {
	ID        string    `json:"id"`
	Action    string    `json:"action"`
	Actor     string    `json:"actor"`
	Detail    string    `json:"detail"`
	CreatedAt time.Time `json:"created_at"`
}

// StatusResponse reports build metadata.
type StatusResponse struct {
	Version string `json:"version"`
	Commit  string `json:"commit"`
	Branch  string `json:"branch"`
}
