package store

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

// Language represents a row in the languages table.
type Language struct {
	ID        string    `db:"id"`
	Code      string    `db:"code"`
	Name      string    `db:"name"`
	CreatedAt time.Time `db:"created_at"`
}

// LanguageStore is the sqlx-backed store for languages.
type LanguageStore struct {
	db *sqlx.DB
}

func NewLanguageStore(db *sqlx.DB) *LanguageStore {
	return &LanguageStore{db: db}
}

// Create registers a language. A duplicate code returns ErrLanguageTaken.
func (s *LanguageStore) Create(ctx context.Context, code, name string) (*Language, error) {
	id := uuid.New().String()
	now := time.Now().UTC()
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO languages (id, code, name, created_at) VALUES (?, ?, ?, ?)
	`, id, code, name, now)
	if err != nil {
		if isUniqueConstraintError(err) {
			return nil, ErrLanguageTaken
		}
		return nil, err
	}
	return &Language{ID: id, Code: code, Name: name, CreatedAt: now}, nil
}

// GetByID returns the language matching id, or ErrNotFound.
func (s *LanguageStore) GetByID(ctx context.Context, id string) (*Language, error) {
	var l Language
	err := s.db.GetContext(ctx, &l, `SELECT * FROM languages WHERE id = ?`, id)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &l, nil
}

// GetByCode returns the language matching code, or ErrNotFound.
func (s *LanguageStore) GetByCode(ctx context.Context, code string) (*Language, error) {
	var l Language
	err := s.db.GetContext(ctx, &l, `SELECT * FROM languages WHERE code = ?`, code)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &l, nil
}

// ListAll returns all languages ordered by code.
func (s *LanguageStore) ListAll(ctx context.Context) ([]*Language, error) {
	var langs []*Language
	err := s.db.SelectContext(ctx, &langs, `SELECT * FROM languages ORDER BY code ASC`)
	if err != nil {
		return nil, err
	}
	return langs, nil
}
