package store

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

// URL represents a row in the urls table. At most one row per
// (element_type, element_id, language_id) scope carries is_default = true;
// every mutation that touches the flag runs inside a transaction so no
// reader can observe two defaults in a scope.
type URL struct {
	ID          string    `db:"id"`
	ElementType string    `db:"element_type"`
	ElementID   string    `db:"element_id"`
	LanguageID  string    `db:"language_id"`
	Slug        string    `db:"slug"`
	IsDefault   bool      `db:"is_default"`
	CreatedAt   time.Time `db:"created_at"`
	UpdatedAt   time.Time `db:"updated_at"`
}

// URLUpdate is a partial update for a URL record. Nil fields are left unchanged.
type URLUpdate struct {
	Slug      *string
	IsDefault *bool
}

// URLStore is the sqlx-backed store for URL records.
type URLStore struct {
	db *sqlx.DB
}

func NewURLStore(db *sqlx.DB) *URLStore {
	return &URLStore{db: db}
}

// GetByID returns the URL matching id, or ErrNotFound.
func (s *URLStore) GetByID(ctx context.Context, id string) (*URL, error) {
	var u URL
	err := s.db.GetContext(ctx, &u, `SELECT * FROM urls WHERE id = ?`, id)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// ListByElement returns all URLs attached to an element, oldest first.
func (s *URLStore) ListByElement(ctx context.Context, elementType, elementID string) ([]*URL, error) {
	var urls []*URL
	err := s.db.SelectContext(ctx, &urls, `
		SELECT * FROM urls
		WHERE element_type = ? AND element_id = ?
		ORDER BY created_at ASC, id ASC
	`, elementType, elementID)
	if err != nil {
		return nil, err
	}
	return urls, nil
}

// GetDefault returns the default URL for an element in a language, or ErrNotFound.
func (s *URLStore) GetDefault(ctx context.Context, elementType, elementID, languageID string) (*URL, error) {
	var u URL
	err := s.db.GetContext(ctx, &u, `
		SELECT * FROM urls
		WHERE element_type = ? AND element_id = ? AND language_id = ? AND is_default = ?
	`, elementType, elementID, languageID, true)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// SlugExists reports whether slug is used by any URL in languageID's scope.
// excludeID, when non-empty, ignores that record so updates can keep their
// own slug.
func (s *URLStore) SlugExists(ctx context.Context, slug, languageID, excludeID string) (bool, error) {
	var count int
	var err error
	if excludeID == "" {
		err = s.db.GetContext(ctx, &count,
			`SELECT COUNT(*) FROM urls WHERE language_id = ? AND slug = ?`, languageID, slug)
	} else {
		err = s.db.GetContext(ctx, &count,
			`SELECT COUNT(*) FROM urls WHERE language_id = ? AND slug = ? AND id <> ?`, languageID, slug, excludeID)
	}
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// Create inserts a new URL record. When isDefault is set, every existing
// record in the (element_type, element_id, language_id) scope is demoted
// first, in the same transaction. A duplicate slug in the language scope
// returns ErrSlugTaken.
func (s *URLStore) Create(ctx context.Context, elementType, elementID, languageID, slug string, isDefault bool) (*URL, error) {
	id := uuid.New().String()
	now := time.Now().UTC()

	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	if isDefault {
		if err := unsetScopeDefaults(ctx, tx, elementType, elementID, languageID, "", now); err != nil {
			return nil, err
		}
	}

	_, err = tx.ExecContext(ctx, `
		INSERT INTO urls (id, element_type, element_id, language_id, slug, is_default, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`, id, elementType, elementID, languageID, slug, isDefault, now, now)
	if err != nil {
		if isUniqueConstraintError(err) {
			return nil, ErrSlugTaken
		}
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}

	return s.GetByID(ctx, id)
}

// Update applies a partial update to a URL record. Turning IsDefault on for
// a record that was not default demotes its scope siblings in the same
// transaction. Returns ErrNotFound if id is absent and ErrSlugTaken when the
// new slug collides within the language scope.
func (s *URLStore) Update(ctx context.Context, id string, upd URLUpdate) (*URL, error) {
	now := time.Now().UTC()

	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	var cur URL
	err = tx.GetContext(ctx, &cur, `SELECT * FROM urls WHERE id = ?`, id)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	newSlug := cur.Slug
	if upd.Slug != nil {
		newSlug = *upd.Slug
	}
	newDefault := cur.IsDefault
	if upd.IsDefault != nil {
		newDefault = *upd.IsDefault
	}

	if newDefault && !cur.IsDefault {
		if err := unsetScopeDefaults(ctx, tx, cur.ElementType, cur.ElementID, cur.LanguageID, id, now); err != nil {
			return nil, err
		}
	}

	_, err = tx.ExecContext(ctx, `
		UPDATE urls SET slug = ?, is_default = ?, updated_at = ? WHERE id = ?
	`, newSlug, newDefault, now, id)
	if err != nil {
		if isUniqueConstraintError(err) {
			return nil, ErrSlugTaken
		}
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}

	return s.GetByID(ctx, id)
}

// Delete removes a URL record. When the deleted record was the scope default
// and siblings remain, the oldest sibling (created_at, then id) is promoted
// in the same transaction and returned. Deleting an absent id is not an
// error; it returns (false, nil, nil).
func (s *URLStore) Delete(ctx context.Context, id string) (bool, *URL, error) {
	now := time.Now().UTC()

	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return false, nil, err
	}
	defer tx.Rollback()

	var cur URL
	err = tx.GetContext(ctx, &cur, `SELECT * FROM urls WHERE id = ?`, id)
	if err == sql.ErrNoRows {
		return false, nil, nil
	}
	if err != nil {
		return false, nil, err
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM urls WHERE id = ?`, id); err != nil {
		return false, nil, err
	}

	var promoted *URL
	if cur.IsDefault {
		var next URL
		err = tx.GetContext(ctx, &next, `
			SELECT * FROM urls
			WHERE element_type = ? AND element_id = ? AND language_id = ?
			ORDER BY created_at ASC, id ASC
			LIMIT 1
		`, cur.ElementType, cur.ElementID, cur.LanguageID)
		switch err {
		case nil:
			_, err = tx.ExecContext(ctx, `UPDATE urls SET is_default = ?, updated_at = ? WHERE id = ?`,
				true, now, next.ID)
			if err != nil {
				return false, nil, err
			}
			next.IsDefault = true
			next.UpdatedAt = now
			promoted = &next
		case sql.ErrNoRows:
			// No siblings left; an empty scope with zero defaults is allowed.
		default:
			return false, nil, err
		}
	}

	if err := tx.Commit(); err != nil {
		return false, nil, err
	}

	return true, promoted, nil
}

// SetDefault makes id the single default of its scope, demoting every
// sibling in the same transaction. Idempotent. Returns ErrNotFound if id
// is absent.
func (s *URLStore) SetDefault(ctx context.Context, id string) (*URL, error) {
	now := time.Now().UTC()

	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	var cur URL
	err = tx.GetContext(ctx, &cur, `SELECT * FROM urls WHERE id = ?`, id)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	if err := unsetScopeDefaults(ctx, tx, cur.ElementType, cur.ElementID, cur.LanguageID, id, now); err != nil {
		return nil, err
	}

	_, err = tx.ExecContext(ctx, `UPDATE urls SET is_default = ?, updated_at = ? WHERE id = ?`,
		true, now, id)
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}

	return s.GetByID(ctx, id)
}

// unsetScopeDefaults demotes every default URL in a scope, optionally
// keeping one record untouched.
func unsetScopeDefaults(ctx context.Context, tx *sqlx.Tx, elementType, elementID, languageID, keepID string, now time.Time) error {
	if keepID == "" {
		_, err := tx.ExecContext(ctx, `
			UPDATE urls SET is_default = ?, updated_at = ?
			WHERE element_type = ? AND element_id = ? AND language_id = ? AND is_default = ?
		`, false, now, elementType, elementID, languageID, true)
		return err
	}
	_, err := tx.ExecContext(ctx, `
		UPDATE urls SET is_default = ?, updated_at = ?
		WHERE element_type = ? AND element_id = ? AND language_id = ? AND is_default = ? AND id <> ?
	`, false, now, elementType, elementID, languageID, true, keepID)
	return err
}
