package fieldpath

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/Veraticus/bureau-dispute-flow/internal/model"
)

var indexPattern = regexp.MustCompile(`\[(\d+|\*)\]`)

// Get resolves path inside doc, returning nil when any step is missing.
func Get(doc model.ReportDocument, path string) any {
	v, _ := Lookup(doc, path)
	return v
}

// Lookup resolves path inside doc. The boolean is false when the path does not
// exist; a JSON null that does exist yields (nil, true).
//
// A wildcard selects the first array element, except when it ends the path and
// the array is empty: then the empty array itself is returned, matching the
// path Flatten emits for it.
func Lookup(doc model.ReportDocument, path string) (any, bool) {
	if path == "" {
		return doc, doc != nil
	}
	if path == RootPath && IsPrimitive(doc) {
		return doc, doc != nil
	}

	if strings.HasSuffix(path, WildcardMarker) {
		parent, ok := Lookup(doc, strings.TrimSuffix(path, WildcardMarker))
		if arr, isArr := parent.([]any); ok && isArr && len(arr) == 0 {
			return arr, true
		}
	}

	normalized := indexPattern.ReplaceAllStringFunc(path, func(m string) string {
		idx := m[1 : len(m)-1]
		if idx == "*" {
			idx = "0"
		}
		return "." + idx
	})

	current := doc
	for _, segment := range strings.Split(normalized, ".") {
		if segment == "" {
			continue
		}
		switch node := current.(type) {
		case nil:
			return nil, false
		case map[string]any:
			next, ok := node[segment]
			if !ok {
				return nil, false
			}
			current = next
		case []any:
			idx, err := strconv.Atoi(segment)
			if err != nil || idx < 0 || idx >= len(node) {
				return nil, false
			}
			current = node[idx]
		default:
			return nil, false
		}
	}

	return current, true
}

// LastSegment returns the final key of a path with array markers removed.
func LastSegment(path string) string {
	trimmed := indexPattern.ReplaceAllString(path, "")
	if i := strings.LastIndex(trimmed, "."); i >= 0 {
		return trimmed[i+1:]
	}
	return trimmed
}
