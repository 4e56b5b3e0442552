// Package tenant defines the tenant status lifecycle and the documented
// settings keys. Persistence lives in the store package.
package tenant

import (
	"errors"
	"fmt"
)

// Status is a tenant lifecycle state.
type Status string

const (
	StatusActive    Status = "active"
	StatusSuspended Status = "suspended"
	StatusDeleted   Status = "deleted"
)

// Audit actions recorded for tenant mutations.
const (
	ActionCreated         = "created"
	ActionSettingsUpdated = "settings_updated"
	ActionStatusChanged   = "status_changed"
	ActionDeleted         = "deleted"
)

var (
	// ErrUnknownStatus is returned for a status value outside the lifecycle.
	ErrUnknownStatus = errors.New("unknown tenant status")

	// ErrUnknownSettingKey is returned when a settings update carries a key
	// outside the documented set.
	ErrUnknownSettingKey = errors.New("unknown setting key")

	// knownSettingKeys are the documented tenant settings. Settings are an
	// explicit map with a closed key set, not an open dynamic bag.
	knownSettingKeys = map[string]bool{
		"currency":       true,
		"timezone":       true,
		"contact_email":  true,
		"catalog_locale": true,
	}
)

// Valid reports whether s is a known lifecycle status.
func (s Status) Valid() bool {
	switch s {
	case StatusActive, StatusSuspended, StatusDeleted:
		return true
	}
	return false
}

// CanTransition reports whether moving from s to next is legal.
// deleted is terminal; active and suspended may swap or be deleted.
func (s Status) CanTransition(next Status) bool {
	if !s.Valid() || !next.Valid() || s == next {
		return false
	}
	return s != StatusDeleted
}

// ValidateSettings rejects settings maps carrying undocumented keys.
func ValidateSettings(settings map[string]any) error {
	for k := range settings {
		if !knownSettingKeys[k] {
			return fmt.Errorf("%w: %q", ErrUnknownSettingKey, k)
		}
	}
	return nil
}
