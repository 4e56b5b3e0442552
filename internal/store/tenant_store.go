package store

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/shopfabrik/slugd/internal/tenant"
)

// Settings is the tenant settings map persisted as a JSON text column.
type Settings map[string]any

// Value implements driver.Valuer.
func (s Settings) Value() (driver.Value, error) {
	if s == nil {
		s = Settings{}
	}
	b, err := json.Marshal(s)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

// Scan implements sql.Scanner.
func (s *Settings) Scan(src any) error {
	switch v := src.(type) {
	case nil:
		*s = Settings{}
		return nil
	case []byte:
		return json.Unmarshal(v, s)
	case string:
		return json.Unmarshal([]byte(v), s)
	default:
		return fmt.Errorf("cannot scan %T into Settings", src)
	}
}

// Tenant represents a row in the tenants table. Deletion is a soft status
// transition; rows are never removed so the audit trail stays resolvable.
type Tenant struct {
	ID        string        `db:"id"`
	Name      string        `db:"name"`
	Status    tenant.Status `db:"status"`
	Settings  Settings      `db:"settings"`
	CreatedAt time.Time     `db:"created_at"`
	UpdatedAt time.Time     `db:"updated_at"`
}

// AuditEntry represents a row in the audit_logs table.
type AuditEntry struct {
	ID        string    `db:"id"`
	TenantID  string    `db:"tenant_id"`
	Action    string    `db:"action"`
	Actor     string    `db:"actor"`
	Detail    string    `db:"detail"`
	CreatedAt time.Time `db:"created_at"`
}

// TenantStore is the sqlx-backed store for tenants and their audit trail.
// Every mutation appends exactly one audit entry in the same transaction.
type TenantStore struct {
	db *sqlx.DB
}

func NewTenantStore(db *sqlx.DB) *TenantStore {
	return &TenantStore{db: db}
}

// Create inserts an active tenant and records a "created" audit entry.
func (s *TenantStore) Create(ctx context.Context, name, actor string) (*Tenant, error) {
	id := uuid.New().String()
	now := time.Now().UTC()

	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO tenants (id, name, status, settings, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`, id, name, tenant.StatusActive, Settings{}, now, now)
	if err != nil {
		return nil, err
	}

	if err := appendAudit(ctx, tx, id, tenant.ActionCreated, actor, name, now); err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}

	return s.GetByID(ctx, id)
}

// GetByID returns the tenant matching id, or ErrNotFound.
func (s *TenantStore) GetByID(ctx context.Context, id string) (*Tenant, error) {
	var t Tenant
	err := s.db.GetContext(ctx, &t, `SELECT * FROM tenants WHERE id = ?`, id)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// ListAll returns all tenants ordered by name.
func (s *TenantStore) ListAll(ctx context.Context) ([]*Tenant, error) {
	var tenants []*Tenant
	err := s.db.SelectContext(ctx, &tenants, `SELECT * FROM tenants ORDER BY name ASC, id ASC`)
	if err != nil {
		return nil, err
	}
	return tenants, nil
}

// UpdateSettings merges patch into the tenant's settings. Unknown keys are
// rejected before any write; deleted tenants cannot be mutated. The audit
// detail lists the changed keys.
func (s *TenantStore) UpdateSettings(ctx context.Context, id string, patch map[string]any, actor string) (*Tenant, error) {
	if err := tenant.ValidateSettings(patch); err != nil {
		return nil, err
	}
	now := time.Now().UTC()

	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	var cur Tenant
	err = tx.GetContext(ctx, &cur, `SELECT * FROM tenants WHERE id = ?`, id)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	if cur.Status == tenant.StatusDeleted {
		return nil, ErrTenantDeleted
	}

	merged := Settings{}
	for k, v := range cur.Settings {
		merged[k] = v
	}
	keys := make([]string, 0, len(patch))
	for k, v := range patch {
		merged[k] = v
		keys = append(keys, k)
	}
	sort.Strings(keys)

	_, err = tx.ExecContext(ctx, `UPDATE tenants SET settings = ?, updated_at = ? WHERE id = ?`,
		merged, now, id)
	if err != nil {
		return nil, err
	}

	if err := appendAudit(ctx, tx, id, tenant.ActionSettingsUpdated, actor, strings.Join(keys, ","), now); err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}

	return s.GetByID(ctx, id)
}

// UpdateStatus moves the tenant through the lifecycle. Illegal transitions
// return ErrBadTransition.
func (s *TenantStore) UpdateStatus(ctx context.Context, id string, next tenant.Status, actor string) (*Tenant, error) {
	if !next.Valid() {
		return nil, tenant.ErrUnknownStatus
	}
	now := time.Now().UTC()

	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	var cur Tenant
	err = tx.GetContext(ctx, &cur, `SELECT * FROM tenants WHERE id = ?`, id)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	if !cur.Status.CanTransition(next) {
		return nil, fmt.Errorf("%w: %s -> %s", ErrBadTransition, cur.Status, next)
	}

	_, err = tx.ExecContext(ctx, `UPDATE tenants SET status = ?, updated_at = ? WHERE id = ?`,
		next, now, id)
	if err != nil {
		return nil, err
	}

	action := tenant.ActionStatusChanged
	if next == tenant.StatusDeleted {
		action = tenant.ActionDeleted
	}
	detail := fmt.Sprintf("%s -> %s", cur.Status, next)
	if err := appendAudit(ctx, tx, id, action, actor, detail, now); err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}

	return s.GetByID(ctx, id)
}

// Delete soft-deletes the tenant: a terminal status transition plus an
// audit entry, never a row removal.
func (s *TenantStore) Delete(ctx context.Context, id, actor string) (*Tenant, error) {
	return s.UpdateStatus(ctx, id, tenant.StatusDeleted, actor)
}

// AuditTrail returns the tenant's audit entries, oldest first.
func (s *TenantStore) AuditTrail(ctx context.Context, tenantID string) ([]*AuditEntry, error) {
	var entries []*AuditEntry
	err := s.db.SelectContext(ctx, &entries, `
		SELECT * FROM audit_logs WHERE tenant_id = ? ORDER BY created_at ASC, id ASC
	`, tenantID)
	if err != nil {
		return nil, err
	}
	return entries, nil
}

func appendAudit(ctx context.Context, tx *sqlx.Tx, tenantID, action, actor, detail string, now time.Time) error {
	_, err := tx.ExecContext(ctx, `
		INSERT INTO audit_logs (id, tenant_id, action, actor, detail, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`, uuid.New().String(), tenantID, action, actor, detail, now)
	return err
}
