// Package slug derives and validates URL-safe slugs for catalog elements.
package slug

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
	"unicode"
)

var (
	// ErrEmpty is returned when a slug is empty.
	ErrEmpty = errors.New("slug must not be empty")

	// ErrFormat is returned when a slug does not match the required pattern.
	ErrFormat = errors.New("slug must contain only lowercase alphanumeric characters and hyphens, and must not start or end with a hyphen")

	// slugPattern matches a single lowercase alphanumeric character or a string
	// of lowercase alphanumeric characters and hyphens that does not start or
	// end with a hyphen.
	slugPattern = regexp.MustCompile(`^[a-z0-9]([a-z0-9\-]*[a-z0-9])?$`)

	// translit folds common Latin accented characters to ASCII. Anything not
	// listed here and not already ASCII alphanumeric is dropped by Slugify.
	translit = map[rune]string{
		'à': "a", 'á': "a", 'â': "a", 'ã': "a", 'ä': "a", 'å': "a",
		'ç': "c", 'è': "e", 'é': "e", 'ê': "e", 'ë': "e",
		'ì': "i", 'í': "i", 'î': "i", 'ï': "i",
		'ñ': "n", 'ò': "o", 'ó': "o", 'ô': "o", 'õ': "o", 'ö': "o", 'ø': "o",
		'ù': "u", 'ú': "u", 'û': "u", 'ü': "u",
		'ý': "y", 'ÿ': "y", 'ß': "ss", 'æ': "ae", 'œ': "oe",
	}
)

// Slugify derives a URL-safe slug from a display name: lowercase, fold common
// Latin accents to ASCII, collapse whitespace and punctuation runs into single
// hyphens, drop everything else, trim leading and trailing hyphens.
//
// Slugify is a pure function. It may return "" for names made entirely of
// dropped characters; callers that need a non-empty slug use Generator.Unique,
// which substitutes a placeholder.
func Slugify(name string) string {
	var b strings.Builder
	pendingHyphen := false
	for _, r := range strings.ToLower(strings.TrimSpace(name)) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			if pendingHyphen && b.Len() > 0 {
				b.WriteByte('-')
			}
			pendingHyphen = false
			b.WriteRune(r)
		case translit[r] != "":
			if pendingHyphen && b.Len() > 0 {
				b.WriteByte('-')
			}
			pendingHyphen = false
			b.WriteString(translit[r])
		case unicode.IsSpace(r), unicode.IsPunct(r), r == '-', r == '_':
			pendingHyphen = true
		}
	}
	return b.String()
}

// Validate checks that slug conforms to the required format. It does NOT
// check uniqueness — that is handled at the database layer via the unique
// index on urls (language_id, slug).
func Validate(slug string) error {
	if slug == "" {
		return ErrEmpty
	}
	if !slugPattern.MatchString(slug) {
		return fmt.Errorf("%w: %q", ErrFormat, slug)
	}
	return nil
}
