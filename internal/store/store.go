// Package store provides sqlx-backed persistence for languages, products,
// URL records, and tenants. No handler queries the DB directly; all access
// goes through these stores.
package store

import (
	"errors"
	"strings"
)

var (
	// ErrNotFound is returned when a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrSlugTaken is returned when a slug already exists within the
	// language scope.
	ErrSlugTaken = errors.New("slug already exists for this language")

	// ErrLanguageTaken is returned when a language code is already registered.
	ErrLanguageTaken = errors.New("language code already exists")

	// ErrTenantDeleted is returned when mutating a tenant whose status is deleted.
	ErrTenantDeleted = errors.New("tenant is deleted")

	// ErrBadTransition is returned for an illegal tenant status transition.
	ErrBadTransition = errors.New("illegal tenant status transition")
)

// isUniqueConstraintError checks whether err indicates a unique constraint violation.
// Works across SQLite, PostgreSQL, and MySQL.
func isUniqueConstraintError(err error) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "unique constraint") || // SQLite & PostgreSQL
		strings.Contains(msg, "duplicate key") || // PostgreSQL
		strings.Contains(msg, "duplicate entry") // MySQL
}
