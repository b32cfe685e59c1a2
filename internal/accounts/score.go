package accounts

import (
	"errors"
	"fmt"
	"regexp"
	"sort"
	"strings"

	"github.com/Veraticus/bureau-dispute-flow/internal/model"
)

// DerogatoryThreshold is the lowest score treated as derogatory by filters.
const DerogatoryThreshold = 30

// statusLadder maps status wording to a severity score, most severe first.
var statusLadder = []struct {
	pattern *regexp.Regexp
	score   int
}{
	{regexp.MustCompile(`collection|charge.?off|charged.?off`), 100},
	{regexp.MustCompile(`repossess|foreclos`), 95},
	{regexp.MustCompile(`bankrupt`), 90},
	{regexp.MustCompile(`judg(e)?ment|lien`), 85},
	{regexp.MustCompile(`derogatory|delinquent|past.?due|default`), 75},
	{regexp.MustCompile(`\b(90|120|150|180)\b|90\+`), 70},
	{regexp.MustCompile(`\b60\b|60\+`), 50},
	{regexp.MustCompile(`\b30\b|30\+|late`), 30},
	{regexp.MustCompile(`closed|paid|current`), 5},
}

// StatusScore rates a single status string; unknown wording scores zero.
func StatusScore(status string) int {
	s := strings.ToLower(status)
	for _, level := range statusLadder {
		if level.pattern.MatchString(s) {
			return level.score
		}
	}
	return 0
}

// Score is the worst status score across a group's bureaus, or zero.
func Score(g model.AccountGroup) int {
	best := 0
	for _, status := range g.Statuses() {
		if s := StatusScore(status); s > best {
			best = s
		}
	}
	return best
}

// SortByScore returns a copy of groups ordered by score. Ties keep their
// original order.
func SortByScore(groups []model.AccountGroup, descending bool) []model.AccountGroup {
	sorted := make([]model.AccountGroup, len(groups))
	copy(sorted, groups)
	sort.SliceStable(sorted, func(i, j int) bool {
		if descending {
			return Score(sorted[i]) > Score(sorted[j])
		}
		return Score(sorted[i]) < Score(sorted[j])
	})
	return sorted
}

// StatusFilter selects groups by how derogatory they are.
type StatusFilter string

// Status filters.
const (
	FilterAll        StatusFilter = "all"
	FilterDerogatory StatusFilter = "derogatory"
	FilterClean      StatusFilter = "clean"
)

// ErrUnknownFilter is returned for an unrecognized status filter.
var ErrUnknownFilter = errors.New("unknown status filter")

// ParseStatusFilter reads a filter name.
func ParseStatusFilter(s string) (StatusFilter, error) {
	switch f := StatusFilter(strings.ToLower(strings.TrimSpace(s))); f {
	case "", FilterAll:
		return FilterAll, nil
	case FilterDerogatory, FilterClean:
		return f, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownFilter, s)
	}
}

// FilterByStatus keeps the groups that pass f.
func FilterByStatus(groups []model.AccountGroup, f StatusFilter) []model.AccountGroup {
	if f == FilterAll || f == "" {
		return groups
	}
	var out []model.AccountGroup
	for _, g := range groups {
		derogatory := Score(g) >= DerogatoryThreshold
		if (f == FilterDerogatory) == derogatory {
			out = append(out, g)
		}
	}
	return out
}

// FilterByType keeps groups whose account type or sub-type equals accountType,
// ignoring case. An empty accountType keeps everything.
func FilterByType(groups []model.AccountGroup, accountType string) []model.AccountGroup {
	if accountType == "" {
		return groups
	}
	var out []model.AccountGroup
	for _, g := range groups {
		if strings.EqualFold(g.AccountType, accountType) || strings.EqualFold(g.AccountSubType, accountType) {
			out = append(out, g)
		}
	}
	return out
}
