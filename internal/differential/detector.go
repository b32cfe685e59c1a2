// Package differential compares the same logical field across bureau reports.
package differential

import (
	"sort"

	"github.com/Veraticus/bureau-dispute-flow/internal/fieldpath"
	"github.com/Veraticus/bureau-dispute-flow/internal/model"
)

// Detector flattens each bureau's report and compares canonical fields.
type Detector struct {
	opts fieldpath.Options
}

// NewDetector creates a detector using the given traversal bounds.
func NewDetector(opts fieldpath.Options) *Detector {
	return &Detector{opts: opts}
}

// Detect runs a detector with default traversal bounds.
func Detect(set model.ReportSet) []model.BureauDifferential {
	return NewDetector(fieldpath.DefaultOptions()).Detect(set)
}

// Detect flattens every present report and compares them.
func (d *Detector) Detect(set model.ReportSet) []model.BureauDifferential {
	paths := make(map[model.Bureau][]string, len(set))
	for _, b := range set.Bureaus() {
		paths[b] = fieldpath.Flatten(set[b], d.opts).Paths
	}
	return Compare(set, paths)
}

// Compare builds one differential per canonical key found in any bureau, sorted
// by key. Within a bureau the first path (in path order) that yields a present
// leaf value supplies the value for its key. A key needs at least two present
// values to be a mismatch, and values are compared by their raw string form.
func Compare(set model.ReportSet, pathsByBureau map[model.Bureau][]string) []model.BureauDifferential {
	valuesByKey := make(map[string]map[model.Bureau]any)

	for _, b := range set.Bureaus() {
		doc := set[b]
		for _, path := range pathsByBureau[b] {
			key := fieldpath.CanonicalKey(path)
			if key == "" {
				continue
			}
			if _, seen := valuesByKey[key][b]; seen {
				continue
			}
			value, ok := fieldpath.Lookup(doc, path)
			if !ok || value == nil || !fieldpath.IsPrimitive(value) {
				continue
			}
			if valuesByKey[key] == nil {
				valuesByKey[key] = make(map[model.Bureau]any, len(model.AllBureaus))
			}
			valuesByKey[key][b] = value
		}
	}

	keys := make([]string, 0, len(valuesByKey))
	for k := range valuesByKey {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	diffs := make([]model.BureauDifferential, 0, len(keys))
	for _, key := range keys {
		values := valuesByKey[key]
		diffs = append(diffs, model.BureauDifferential{
			CanonicalKey: key,
			Values:       values,
			Mismatch:     isMismatch(values),
		})
	}
	return diffs
}

func isMismatch(values map[model.Bureau]any) bool {
	if len(values) < 2 {
		return false
	}
	var first string
	seen := false
	for _, b := range model.AllBureaus {
		v, ok := values[b]
		if !ok {
			continue
		}
		s := fieldpath.Stringify(v)
		if !seen {
			first, seen = s, true
			continue
		}
		if s != first {
			return true
		}
	}
	return false
}

// Mismatches keeps only the differentials where bureaus disagree.
func Mismatches(diffs []model.BureauDifferential) []model.BureauDifferential {
	var out []model.BureauDifferential
	for _, d := range diffs {
		if d.Mismatch {
			out = append(out, d)
		}
	}
	return out
}
