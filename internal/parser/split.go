package parser

import (
	"fmt"
	"sort"

	"github.com/Veraticus/bureau-dispute-flow/internal/common"
	"github.com/Veraticus/bureau-dispute-flow/internal/model"
)

// SplitBureaus splits a combined document keyed by bureau name ("TransUnion",
// "EXP", "efx", ...) into a ReportSet. Keys that name no bureau are ignored.
func SplitBureaus(doc model.ReportDocument) (model.ReportSet, error) {
	obj, ok := doc.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("%w: combined report must be an object keyed by bureau", common.ErrNoReports)
	}

	keys := make([]string, 0, len(obj))
	for k := range obj {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	set := model.ReportSet{}
	from := map[model.Bureau]string{}
	for _, key := range keys {
		bureau, err := model.ParseBureau(key)
		if err != nil {
			continue
		}
		if prev, dup := from[bureau]; dup {
			return nil, fmt.Errorf("%w: %q and %q both name %s", common.ErrDuplicateEntry, prev, key, bureau.DisplayName())
		}
		from[bureau] = key
		set[bureau] = obj[key]
	}

	if len(set.Bureaus()) == 0 {
		return nil, common.ErrNoReports
	}
	return set, nil
}
