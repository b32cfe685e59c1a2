package fieldpath

import (
	"strings"
	"unicode"

	"github.com/Veraticus/bureau-dispute-flow/internal/model"
)

// CanonicalKey reduces a path to the bureau-agnostic key used to compare the same
// logical field across bureaus: a leading bureau segment is dropped, the final
// segment is kept, and it is lowercased with everything but letters and digits
// removed, so "@_AccountIdentifier", "accountIdentifier" and "account_identifier"
// all collapse to "accountidentifier".
func CanonicalKey(path string) string {
	if head, rest, ok := strings.Cut(path, "."); ok {
		if _, err := model.ParseBureau(head); err == nil {
			path = rest
		}
	}
	return normalizeKey(LastSegment(path))
}

func normalizeKey(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range strings.ToLower(s) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// Stringify converts a resolved value to the raw string used for comparison.
// No currency or number normalization is applied.
func Stringify(v any) string {
	return model.FormatValue(v)
}
