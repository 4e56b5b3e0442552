package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/shopfabrik/slugd/internal/slug"
	"github.com/shopfabrik/slugd/internal/store"
	"github.com/shopfabrik/slugd/internal/tenant"
)

type errorBody struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

// writeError writes a JSON error response with the given HTTP status code.
func writeError(w http.ResponseWriter, status int, message, code string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(errorBody{Error: message, Code: code})
}

// writeJSON writes a JSON response with the given HTTP status code.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// writeDomainError maps store/slug/tenant errors to conventional REST codes:
// 404 for missing records, 409 for conflicts and illegal transitions,
// 422 for input the stores refuse, 500 otherwise.
func writeDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, store.ErrNotFound):
		writeError(w, http.StatusNotFound, err.Error(), "NOT_FOUND")
	case errors.Is(err, store.ErrSlugTaken):
		writeError(w, http.StatusConflict, err.Error(), "SLUG_TAKEN")
	case errors.Is(err, store.ErrLanguageTaken):
		writeError(w, http.StatusConflict, err.Error(), "LANGUAGE_TAKEN")
	case errors.Is(err, store.ErrBadTransition):
		writeError(w, http.StatusConflict, err.Error(), "BAD_TRANSITION")
	case errors.Is(err, store.ErrTenantDeleted):
		writeError(w, http.StatusConflict, err.Error(), "TENANT_DELETED")
	case errors.Is(err, slug.ErrEmpty), errors.Is(err, slug.ErrFormat):
		writeError(w, http.StatusUnprocessableEntity, err.Error(), "INVALID_SLUG")
	case errors.Is(err, tenant.ErrUnknownSettingKey):
		writeError(w, http.StatusUnprocessableEntity, err.Error(), "INVALID_SETTINGS")
	case errors.Is(err, tenant.ErrUnknownStatus):
		writeError(w, http.StatusUnprocessableEntity, err.Error(), "INVALID_STATUS")
	default:
		writeError(w, http.StatusInternalServerError, "internal error", "INTERNAL_ERROR")
	}
}
