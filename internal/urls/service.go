// Package urls orchestrates URL record operations: element validation, slug
// validation and generation, and the single-default-per-scope rules carried
// out by the store.
package urls

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/shopfabrik/slugd/internal/metrics"
	"github.com/shopfabrik/slugd/internal/slug"
	"github.com/shopfabrik/slugd/internal/store"
)

// URLStore is the persistence surface the service needs. *store.URLStore
// implements it; tests may substitute their own.
type URLStore interface {
	GetByID(ctx context.Context, id string) (*store.URL, error)
	ListByElement(ctx context.Context, elementType, elementID string) ([]*store.URL, error)
	GetDefault(ctx context.Context, elementType, elementID, languageID string) (*store.URL, error)
	SlugExists(ctx context.Context, slug, languageID, excludeID string) (bool, error)
	Create(ctx context.Context, elementType, elementID, languageID, slug string, isDefault bool) (*store.URL, error)
	Update(ctx context.Context, id string, upd store.URLUpdate) (*store.URL, error)
	Delete(ctx context.Context, id string) (bool, *store.URL, error)
	SetDefault(ctx context.Context, id string) (*store.URL, error)
}

// ElementLookup validates that the entity a URL is attached to exists.
type ElementLookup interface {
	ElementExists(ctx context.Context, elementType, elementID string) (bool, error)
}

// LanguageLookup resolves language codes to language records.
type LanguageLookup interface {
	GetByID(ctx context.Context, id string) (*store.Language, error)
	GetByCode(ctx context.Context, code string) (*store.Language, error)
}

// Service holds no state between calls; every operation is a synchronous
// round trip to the store.
type Service struct {
	urls     URLStore
	elements ElementLookup
	langs    LanguageLookup
	gen      *slug.Generator
	log      *zap.Logger
}

func NewService(urls URLStore, elements ElementLookup, langs LanguageLookup, log *zap.Logger) *Service {
	return &Service{
		urls:     urls,
		elements: elements,
		langs:    langs,
		gen:      slug.NewGenerator(urls),
		log:      log,
	}
}

// CreateURLInput describes one new URL record.
type CreateURLInput struct {
	ElementType string
	ElementID   string
	LanguageID  string
	Slug        string
	Default     bool
}

// CreateURL validates the slug and the owning element, pre-checks slug
// uniqueness for a friendly error, then persists. The store's unique index
// is the authoritative conflict check; a constraint violation at write time
// surfaces as the same ErrSlugTaken.
func (s *Service) CreateURL(ctx context.Context, in CreateURLInput) (*store.URL, error) {
	if err := slug.Validate(in.Slug); err != nil {
		return nil, err
	}
	if _, err := s.langs.GetByID(ctx, in.LanguageID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, fmt.Errorf("language %q: %w", in.LanguageID, store.ErrNotFound)
		}
		return nil, err
	}

	ok, err := s.elements.ElementExists(ctx, in.ElementType, in.ElementID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, fmt.Errorf("element %s/%s: %w", in.ElementType, in.ElementID, store.ErrNotFound)
	}

	taken, err := s.urls.SlugExists(ctx, in.Slug, in.LanguageID, "")
	if err != nil {
		return nil, err
	}
	if taken {
		metrics.SlugConflictsTotal.Inc()
		return nil, store.ErrSlugTaken
	}

	rec, err := s.urls.Create(ctx, in.ElementType, in.ElementID, in.LanguageID, in.Slug, in.Default)
	if err != nil {
		if errors.Is(err, store.ErrSlugTaken) {
			metrics.SlugConflictsTotal.Inc()
		}
		return nil, err
	}
	metrics.URLsCreatedTotal.Inc()
	return rec, nil
}

// UpdateURL applies a partial update. A new slug is validated and checked
// against the record's own language scope, excluding the record itself.
func (s *Service) UpdateURL(ctx context.Context, id string, upd store.URLUpdate) (*store.URL, error) {
	cur, err := s.urls.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if upd.Slug != nil && *upd.Slug != cur.Slug {
		if err := slug.Validate(*upd.Slug); err != nil {
			return nil, err
		}
		taken, err := s.urls.SlugExists(ctx, *upd.Slug, cur.LanguageID, id)
		if err != nil {
			return nil, err
		}
		if taken {
			metrics.SlugConflictsTotal.Inc()
			return nil, store.ErrSlugTaken
		}
	}

	rec, err := s.urls.Update(ctx, id, upd)
	if err != nil {
		if errors.Is(err, store.ErrSlugTaken) {
			metrics.SlugConflictsTotal.Inc()
		}
		return nil, err
	}
	return rec, nil
}

// DeleteURL removes a record. Deleting the scope default promotes the oldest
// remaining sibling inside the store transaction. Absent ids return
// store.ErrNotFound.
func (s *Service) DeleteURL(ctx context.Context, id string) error {
	deleted, promoted, err := s.urls.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !deleted {
		return store.ErrNotFound
	}
	metrics.URLsDeletedTotal.Inc()
	if promoted != nil {
		metrics.DefaultsPromotedTotal.Inc()
		s.log.Info("promoted replacement default url",
			zap.String("url_id", promoted.ID),
			zap.String("element_id", promoted.ElementID),
			zap.String("language_id", promoted.LanguageID),
			zap.String("slug", promoted.Slug))
	}
	return nil
}

// SetAsDefault makes id the single default of its scope and returns the
// refreshed record.
func (s *Service) SetAsDefault(ctx context.Context, id string) (*store.URL, error) {
	return s.urls.SetDefault(ctx, id)
}

// GetURL returns one record by id.
func (s *Service) GetURL(ctx context.Context, id string) (*store.URL, error) {
	return s.urls.GetByID(ctx, id)
}

// ListURLs returns all records attached to an element, oldest first.
func (s *Service) ListURLs(ctx context.Context, elementType, elementID string) ([]*store.URL, error) {
	return s.urls.ListByElement(ctx, elementType, elementID)
}

// GetDefaultURL resolves languageCode and returns the element's default URL.
// A missing language or a scope with no default returns (nil, nil); neither
// is an error.
func (s *Service) GetDefaultURL(ctx context.Context, elementType, elementID, languageCode string) (*store.URL, error) {
	lang, err := s.langs.GetByCode(ctx, languageCode)
	if errors.Is(err, store.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	rec, err := s.urls.GetDefault(ctx, elementType, elementID, lang.ID)
	if errors.Is(err, store.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return rec, nil
}

// GenerateSlug returns a slug derived from name that is unused in
// languageID's scope at the instant of the check.
func (s *Service) GenerateSlug(ctx context.Context, name, languageID string) (string, error) {
	out, err := s.gen.Unique(ctx, name, languageID)
	if err != nil {
		return "", err
	}
	metrics.SlugsGeneratedTotal.Inc()
	return out, nil
}
