package analysis

import (
	"time"

	"github.com/Veraticus/bureau-dispute-flow/internal/differential"
	"github.com/Veraticus/bureau-dispute-flow/internal/model"
)

// BureauResult is what the pipeline saw in one bureau's report.
type BureauResult struct {
	Bureau    model.Bureau `json:"bureau"`
	Paths     []string     `json:"paths"`
	ItemCount int          `json:"item_count"`
	Truncated bool         `json:"truncated"`
}

// Report contains the complete results of one run.
type Report struct {
	GeneratedAt   time.Time                  `json:"generated_at"`
	Bureaus       []BureauResult             `json:"bureaus"`
	DisputeItems  []model.DisputeItem        `json:"dispute_items"`
	Differentials []model.BureauDifferential `json:"differentials"`
	AccountGroups []model.AccountGroup       `json:"account_groups"`
}

// ItemsFor returns the dispute items found in one bureau's report.
func (r *Report) ItemsFor(b model.Bureau) []model.DisputeItem {
	var items []model.DisputeItem
	for _, item := range r.DisputeItems {
		if item.Bureau == b {
			items = append(items, item)
		}
	}
	return items
}

// Mismatches returns only the differentials whose bureaus disagree.
func (r *Report) Mismatches() []model.BureauDifferential {
	return differential.Mismatches(r.Differentials)
}

// Truncated reports whether any bureau's traversal hit the key cap.
func (r *Report) Truncated() bool {
	for _, b := range r.Bureaus {
		if b.Truncated {
			return true
		}
	}
	return false
}
