// Package fieldpath flattens report documents into addressable field paths and
// resolves those paths back to values.
package fieldpath

import (
	"sort"
	"strings"

	"github.com/Veraticus/bureau-dispute-flow/internal/model"
)

// WildcardMarker stands in for "inside an array"; element indexes are not kept.
const WildcardMarker = "[*]"

// RootPath is emitted when the document itself is a primitive.
const RootPath = "value"

// Default traversal bounds.
const (
	DefaultMaxDepth        = 10
	DefaultArraySampleSize = 25
	DefaultMaxKeys         = 15000
)

// Options bounds a single flatten traversal. Zero fields take the defaults.
type Options struct {
	MaxDepth        int `mapstructure:"max_depth"`
	ArraySampleSize int `mapstructure:"array_sample_size"`
	MaxKeys         int `mapstructure:"max_keys"`
}

// DefaultOptions returns the standard traversal bounds.
func DefaultOptions() Options {
	return Options{
		MaxDepth:        DefaultMaxDepth,
		ArraySampleSize: DefaultArraySampleSize,
		MaxKeys:         DefaultMaxKeys,
	}
}

func (o Options) withDefaults() Options {
	if o.MaxDepth <= 0 {
		o.MaxDepth = DefaultMaxDepth
	}
	if o.ArraySampleSize <= 0 {
		o.ArraySampleSize = DefaultArraySampleSize
	}
	if o.MaxKeys <= 0 {
		o.MaxKeys = DefaultMaxKeys
	}
	return o
}

// Result is the outcome of a flatten traversal.
type Result struct {
	Paths []string `json:"paths"`
	// Truncated is set when the key cap stopped the traversal with nodes left unvisited.
	Truncated bool `json:"truncated"`
}

// Flatten walks doc and returns every leaf path, deduplicated and sorted.
// Deeper structure than MaxDepth is dropped silently; reaching MaxKeys stops the
// walk and sets Truncated. Object keys are visited in sorted order so the cap
// always cuts at the same place for the same document.
func Flatten(doc model.ReportDocument, opts Options) Result {
	w := &walker{
		opts: opts.withDefaults(),
		seen: make(map[string]struct{}),
	}
	w.walk(doc, "", 0)

	paths := make([]string, 0, len(w.seen))
	for p := range w.seen {
		paths = append(paths, p)
	}
	sort.Strings(paths)

	return Result{Paths: paths, Truncated: w.truncated}
}

// Paths is Flatten with default options, returning only the path list.
func Paths(doc model.ReportDocument) []string {
	return Flatten(doc, DefaultOptions()).Paths
}

type walker struct {
	seen      map[string]struct{}
	opts      Options
	truncated bool
}

func (w *walker) full() bool {
	if len(w.seen) >= w.opts.MaxKeys {
		w.truncated = true
		return true
	}
	return false
}

func (w *walker) emit(path string) {
	if _, ok := w.seen[path]; ok {
		return
	}
	if w.full() {
		return
	}
	w.seen[path] = struct{}{}
}

func (w *walker) walk(node any, path string, depth int) {
	if depth > w.opts.MaxDepth || w.full() {
		return
	}

	switch n := node.(type) {
	case map[string]any:
		for _, key := range sortedKeys(n) {
			if w.full() {
				return
			}
			if !addressable(key) {
				continue
			}
			child := key
			if path != "" {
				child = path + "." + key
			}
			value := n[key]
			if IsPrimitive(value) {
				w.emit(child)
				continue
			}
			w.walk(value, child, depth+1)
		}

	case []any:
		arrayPath := path + WildcardMarker
		if len(n) == 0 {
			w.emit(arrayPath)
			return
		}
		sample := n
		if len(sample) > w.opts.ArraySampleSize {
			sample = sample[:w.opts.ArraySampleSize]
		}
		for _, item := range sample {
			if IsPrimitive(item) {
				w.emit(arrayPath)
				continue
			}
			if w.full() {
				return
			}
			w.walk(item, arrayPath, depth+1)
		}

	default:
		if path == "" {
			path = RootPath
		}
		w.emit(path)
	}
}

// IsPrimitive reports whether v is a leaf rather than an object or array.
func IsPrimitive(v any) bool {
	switch v.(type) {
	case map[string]any, []any:
		return false
	default:
		return true
	}
}

func sortedKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// addressable reports whether key can appear as a path segment. Empty keys and
// keys holding '.', '[' or ']' would not resolve through Get and are skipped.
func addressable(key string) bool {
	return key != "" && !strings.ContainsAny(key, ".[]")
}
