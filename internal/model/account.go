package model

// UnknownAccountType is used when no account type can be found on a record.
const UnknownAccountType = "unknown"

// AccountRecord is one bureau's view of a single tradeline.
type AccountRecord struct {
	Raw               map[string]any `json:"-"`
	Bureau            Bureau         `json:"bureau"`
	CreditorName      string         `json:"creditor_name"`
	AccountIdentifier string         `json:"account_identifier"`
	Status            string         `json:"status"`
	Balance           string         `json:"balance"`
	AccountType       string         `json:"account_type"`
	AccountSubType    string         `json:"account_sub_type"`
	Index             int            `json:"index"`
}

// AccountGroup joins the records that describe the same real account across bureaus.
type AccountGroup struct {
	TransUnion     *AccountRecord `json:"transunion,omitempty"`
	Experian       *AccountRecord `json:"experian,omitempty"`
	Equifax        *AccountRecord `json:"equifax,omitempty"`
	MatchKey       string         `json:"match_key"`
	AccountType    string         `json:"account_type"`
	AccountSubType string         `json:"account_sub_type"`
}

// Slot returns the record held for a bureau, or nil.
func (g *AccountGroup) Slot(b Bureau) *AccountRecord {
	switch b {
	case TransUnion:
		return g.TransUnion
	case Experian:
		return g.Experian
	case Equifax:
		return g.Equifax
	default:
		return nil
	}
}

// SetSlot stores a record in the bureau's slot.
func (g *AccountGroup) SetSlot(b Bureau, rec *AccountRecord) {
	switch b {
	case TransUnion:
		g.TransUnion = rec
	case Experian:
		g.Experian = rec
	case Equifax:
		g.Equifax = rec
	}
}

// Records returns the filled slots in canonical bureau order.
func (g *AccountGroup) Records() []*AccountRecord {
	records := make([]*AccountRecord, 0, len(AllBureaus))
	for _, b := range AllBureaus {
		if rec := g.Slot(b); rec != nil {
			records = append(records, rec)
		}
	}
	return records
}

// Statuses returns the non-empty statuses of the filled slots.
func (g *AccountGroup) Statuses() []string {
	var statuses []string
	for _, rec := range g.Records() {
		if rec.Status != "" {
			statuses = append(statuses, rec.Status)
		}
	}
	return statuses
}

// CreditorName returns the first creditor name reported by any bureau.
func (g *AccountGroup) CreditorName() string {
	for _, rec := range g.Records() {
		if rec.CreditorName != "" {
			return rec.CreditorName
		}
	}
	return ""
}
