package store_test

import (
	"context"
	"errors"
	"testing"

	"github.com/shopfabrik/slugd/internal/store"
	"github.com/shopfabrik/slugd/internal/tenant"
	"github.com/shopfabrik/slugd/internal/testutil"
)

func newTenantStore(t *testing.T) *store.TenantStore {
	t.Helper()
	return store.NewTenantStore(testutil.NewTestDB(t))
}

func TestTenantStore_CreateRecordsAudit(t *testing.T) {
	ts := newTenantStore(t)
	ctx := context.Background()

	tn, err := ts.Create(ctx, "Acme Outdoor", "admin@acme.test")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if tn.Status != tenant.StatusActive {
		t.Errorf("status = %q, want %q", tn.Status, tenant.StatusActive)
	}
	if tn.Settings == nil || len(tn.Settings) != 0 {
		t.Errorf("settings = %v, want empty map", tn.Settings)
	}

	trail, err := ts.AuditTrail(ctx, tn.ID)
	if err != nil {
		t.Fatalf("AuditTrail: %v", err)
	}
	if len(trail) != 1 {
		t.Fatalf("len(trail) = %d, want 1", len(trail))
	}
	if trail[0].Action != tenant.ActionCreated {
		t.Errorf("action = %q, want %q", trail[0].Action, tenant.ActionCreated)
	}
	if trail[0].Actor != "admin@acme.test" {
		t.Errorf("actor = %q, want %q", trail[0].Actor, "admin@acme.test")
	}
}

func TestTenantStore_UpdateSettings_MergesAndAudits(t *testing.T) {
	ts := newTenantStore(t)
	ctx := context.Background()

	tn, err := ts.Create(ctx, "Acme", "admin")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	got, err := ts.UpdateSettings(ctx, tn.ID, map[string]any{"currency": "EUR"}, "admin")
	if err != nil {
		t.Fatalf("UpdateSettings: %v", err)
	}
	if got.Settings["currency"] != "EUR" {
		t.Errorf("currency = %v, want EUR", got.Settings["currency"])
	}

	// A second update merges, it does not replace.
	got, err = ts.UpdateSettings(ctx, tn.ID, map[string]any{"timezone": "Europe/Berlin"}, "admin")
	if err != nil {
		t.Fatalf("UpdateSettings: %v", err)
	}
	if got.Settings["currency"] != "EUR" {
		t.Errorf("currency lost on merge: %v", got.Settings)
	}
	if got.Settings["timezone"] != "Europe/Berlin" {
		t.Errorf("timezone = %v, want Europe/Berlin", got.Settings["timezone"])
	}

	trail, err := ts.AuditTrail(ctx, tn.ID)
	if err != nil {
		t.Fatalf("AuditTrail: %v", err)
	}
	// created + two settings updates.
	if len(trail) != 3 {
		t.Fatalf("len(trail) = %d, want 3", len(trail))
	}
	if trail[1].Action != tenant.ActionSettingsUpdated || trail[1].Detail != "currency" {
		t.Errorf("trail[1] = %q/%q, want settings_updated/currency", trail[1].Action, trail[1].Detail)
	}
}

func TestTenantStore_UpdateSettings_UnknownKey(t *testing.T) {
	ts := newTenantStore(t)
	ctx := context.Background()

	tn, err := ts.Create(ctx, "Acme", "admin")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	_, err = ts.UpdateSettings(ctx, tn.ID, map[string]any{"theme_color": "#fff"}, "admin")
	if !errors.Is(err, tenant.ErrUnknownSettingKey) {
		t.Errorf("UpdateSettings(unknown key) = %v, want ErrUnknownSettingKey", err)
	}

	trail, err := ts.AuditTrail(ctx, tn.ID)
	if err != nil {
		t.Fatalf("AuditTrail: %v", err)
	}
	if len(trail) != 1 {
		t.Errorf("rejected update appended audit entry; len(trail) = %d, want 1", len(trail))
	}
}

func TestTenantStore_StatusLifecycle(t *testing.T) {
	ts := newTenantStore(t)
	ctx := context.Background()

	tn, err := ts.Create(ctx, "Acme", "admin")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	got, err := ts.UpdateStatus(ctx, tn.ID, tenant.StatusSuspended, "admin")
	if err != nil {
		t.Fatalf("UpdateStatus: %v", err)
	}
	if got.Status != tenant.StatusSuspended {
		t.Errorf("status = %q, want suspended", got.Status)
	}

	// Suspended tenants may be reactivated.
	if _, err := ts.UpdateStatus(ctx, tn.ID, tenant.StatusActive, "admin"); err != nil {
		t.Fatalf("UpdateStatus(active): %v", err)
	}

	// Self transitions are illegal.
	_, err = ts.UpdateStatus(ctx, tn.ID, tenant.StatusActive, "admin")
	if !errors.Is(err, store.ErrBadTransition) {
		t.Errorf("UpdateStatus(active->active) = %v, want ErrBadTransition", err)
	}
}

func TestTenantStore_DeleteIsSoftAndTerminal(t *testing.T) {
	ts := newTenantStore(t)
	ctx := context.Background()

	tn, err := ts.Create(ctx, "Acme", "admin")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	got, err := ts.Delete(ctx, tn.ID, "admin")
	if err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if got.Status != tenant.StatusDeleted {
		t.Errorf("status = %q, want deleted", got.Status)
	}

	// The row survives for the audit trail.
	if _, err := ts.GetByID(ctx, tn.ID); err != nil {
		t.Errorf("GetByID after delete = %v, want nil", err)
	}

	// Deleted is terminal and mutation is rejected.
	_, err = ts.UpdateStatus(ctx, tn.ID, tenant.StatusActive, "admin")
	if !errors.Is(err, store.ErrBadTransition) {
		t.Errorf("UpdateStatus after delete = %v, want ErrBadTransition", err)
	}
	_, err = ts.UpdateSettings(ctx, tn.ID, map[string]any{"currency": "EUR"}, "admin")
	if !errors.Is(err, store.ErrTenantDeleted) {
		t.Errorf("UpdateSettings after delete = %v, want ErrTenantDeleted", err)
	}

	trail, err := ts.AuditTrail(ctx, tn.ID)
	if err != nil {
		t.Fatalf("AuditTrail: %v", err)
	}
	if len(trail) != 2 {
		t.Fatalf("len(trail) = %d, want 2", len(trail))
	}
	if trail[1].Action != tenant.ActionDeleted {
		t.Errorf("trail[1].Action = %q, want %q", trail[1].Action, tenant.ActionDeleted)
	}
}

func TestTenantStore_GetByID_NotFound(t *testing.T) {
	ts := newTenantStore(t)

	_, err := ts.GetByID(context.Background(), "nonexistent")
	if !errors.Is(err, store.ErrNotFound) {
		t.Errorf("GetByID(nonexistent) = %v, want ErrNotFound", err)
	}
}
