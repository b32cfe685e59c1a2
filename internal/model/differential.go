package model

import "time"

// BureauDifferential compares one canonical field across the bureaus that report it.
type BureauDifferential struct {
	Values       map[Bureau]any `json:"values_by_bureau"`
	CanonicalKey string         `json:"canonical_key"`
	Mismatch     bool           `json:"mismatch"`
}

// Value returns the value reported by a bureau and whether it was present.
func (d BureauDifferential) Value(b Bureau) (any, bool) {
	v, ok := d.Values[b]
	return v, ok
}

// BureauSelection records which bureau a user believes is correct for a field.
// The pipeline stores it but never interprets it.
type BureauSelection struct {
	SelectedAt   time.Time `json:"selected_at"`
	ReportID     string    `json:"report_id"`
	CanonicalKey string    `json:"canonical_key"`
	Bureau       Bureau    `json:"bureau"`
	Notes        string    `json:"notes,omitempty"`
}

// LetterItem is a dispute item a user queued for a dispute letter.
type LetterItem struct {
	AddedAt  time.Time `json:"added_at"`
	ReportID string    `json:"report_id"`
	ItemID   string    `json:"item_id"`
	Bureau   Bureau    `json:"bureau"`
	Summary  string    `json:"summary"`
}
