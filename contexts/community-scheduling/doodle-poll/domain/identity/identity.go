// Package identity derives the names a poll is known by: the storage key its
// votes are persisted under and the id of the form that submits to it.
//
// Both are derived from the poll title only. Two titles that trim, escape and
// clean to the same string share one key and one form id. A title with no
// letters or digits (say "???") is keyed by a name-based UUID of its escaped
// form instead.
package identity

import (
	"fmt"
	"strings"
	"unicode"

	domainerrors "doodle/contexts/community-scheduling/doodle-poll/domain/errors"
	"doodle/contexts/community-scheduling/doodle-poll/domain/markup"

	"github.com/google/uuid"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

const (
	FormIDPrefix = "doodle__form__"
	// FallbackStorageKey may be substituted by callers that decide to keep
	// rendering after a ConfigError. The derivation functions never return it.
	FallbackStorageKey = "doodle"
	// SymbolKeyPrefix marks keys derived from titles that clean to nothing.
	SymbolKeyPrefix = "poll-"
)

var symbolTitleNamespace = uuid.MustParse("5b0f6a3e-4f0c-4d38-9c55-2f1f8a0d7c11")

// DeriveStorageKey maps a poll title to a filesystem-safe storage key.
func DeriveStorageKey(title string) (string, error) {
	const op = "identity.DeriveStorageKey"

	key, ok := pollID(title)
	if !ok {
		return "", fmt.Errorf("%s: %w: poll must have a title", op, domainerrors.ErrConfig)
	}
	return key, nil
}

// DeriveFormID returns the identifier correlating a rendered vote form with
// the poll instance that receives its submission.
func DeriveFormID(title string) (string, error) {
	const op = "identity.DeriveFormID"

	id, ok := pollID(title)
	if !ok {
		return "", fmt.Errorf("%s: %w: poll must have a title", op, domainerrors.ErrConfig)
	}
	return FormIDPrefix + id, nil
}

// pollID is false only for a title that is blank after trimming.
func pollID(title string) (string, bool) {
	escaped := markup.Sanitize(title)
	if escaped == "" {
		return "", false
	}
	if cleaned := CleanID(escaped); cleaned != "" {
		return cleaned, true
	}
	return SymbolKeyPrefix + uuid.NewSHA1(symbolTitleNamespace, []byte(escaped)).String(), true
}

// CleanID folds accents, lowercases and replaces every run of characters
// other than letters, digits, '.', '-' and '_' with a single underscore.
// Leading and trailing separators are removed.
func CleanID(raw string) string {
	folder := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	folded, _, err := transform.String(folder, raw)
	if err != nil {
		folded = raw
	}
	folded = cases.Lower(language.Und).String(folded)

	var b strings.Builder
	b.Grow(len(folded))
	pendingSeparator := false
	for _, r := range folded {
		if isIDRune(r) {
			if pendingSeparator && b.Len() > 0 {
				b.WriteByte('_')
			}
			pendingSeparator = false
			b.WriteRune(r)
			continue
		}
		pendingSeparator = true
	}
	return strings.Trim(b.String(), "_.-")
}

func isIDRune(r rune) bool {
	switch {
	case r == '.' || r == '-':
		return true
	case r == '_':
		return false
	case r < unicode.MaxASCII:
		return (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9')
	default:
		return unicode.IsLetter(r) || unicode.IsDigit(r)
	}
}
