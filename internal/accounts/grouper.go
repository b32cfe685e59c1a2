package accounts

import (
	"github.com/Veraticus/bureau-dispute-flow/internal/model"
)

// GroupReports extracts every bureau's records and groups them.
func GroupReports(set model.ReportSet) []model.AccountGroup {
	var records []*model.AccountRecord
	for _, b := range set.Bureaus() {
		records = append(records, ExtractRecords(set[b], b)...)
	}
	return Group(records)
}

// Group joins records that share a match key, one record per bureau slot.
// When a bureau reports two records with the same key, the second starts a
// new group so every record lands in exactly one group. Groups keep the order
// in which their first record was seen.
func Group(records []*model.AccountRecord) []model.AccountGroup {
	var groups []model.AccountGroup
	byKey := make(map[string][]int)

	for _, rec := range records {
		if rec == nil {
			continue
		}
		key := MatchKey(rec)

		target := -1
		for _, idx := range byKey[key] {
			if groups[idx].Slot(rec.Bureau) == nil {
				target = idx
				break
			}
		}
		if target < 0 {
			groups = append(groups, model.AccountGroup{
				MatchKey:       key,
				AccountType:    model.UnknownAccountType,
				AccountSubType: model.UnknownAccountType,
			})
			target = len(groups) - 1
			byKey[key] = append(byKey[key], target)
		}

		g := &groups[target]
		g.SetSlot(rec.Bureau, rec)
		if g.AccountType == model.UnknownAccountType && rec.AccountType != "" {
			g.AccountType = rec.AccountType
		}
		if g.AccountSubType == model.UnknownAccountType && rec.AccountSubType != "" {
			g.AccountSubType = rec.AccountSubType
		}
	}

	return groups
}
