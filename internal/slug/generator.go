package slug

import (
	"context"
	"fmt"

	"github.com/google/uuid"
)

// Checker reports whether a slug is already used within a language scope.
// excludeID, when non-empty, ignores that record during the check so an
// update can keep its own slug.
type Checker interface {
	SlugExists(ctx context.Context, slug, languageID, excludeID string) (bool, error)
}

// Generator produces slugs that are unused within a language scope at the
// instant of the check. The database unique index remains the authoritative
// guard against a concurrent writer taking the slug first.
type Generator struct {
	check Checker
}

func NewGenerator(check Checker) *Generator {
	return &Generator{check: check}
}

// Unique derives a slug from name and probes -1, -2, ... suffixes until an
// unused candidate is found for languageID. Names that normalize to nothing
// fall back to a url-<id8> placeholder.
func (g *Generator) Unique(ctx context.Context, name, languageID string) (string, error) {
	base := Slugify(name)
	if base == "" {
		base = "url-" + uuid.New().String()[:8]
	}

	candidate := base
	for i := 1; ; i++ {
		taken, err := g.check.SlugExists(ctx, candidate, languageID, "")
		if err != nil {
			return "", fmt.Errorf("check slug %q: %w", candidate, err)
		}
		if !taken {
			return candidate, nil
		}
		candidate = fmt.Sprintf("%s-%d", base, i)
	}
}
