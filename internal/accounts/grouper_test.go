package accounts

import (
	"testing"

	"github.com/Veraticus/bureau-dispute-flow/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGroupReports_MergesAcrossBureaus(t *testing.T) {
	set := model.ReportSet{
		model.TransUnion: map[string]any{
			"tradelines": []any{
				map[string]any{"creditorName": "CAP ONE", "accountIdentifier": "...-4432"},
			},
		},
		model.Experian: map[string]any{
			"tradelines": []any{
				map[string]any{"creditorName": "Capital One", "accountIdentifier": "XXXX4432"},
			},
		},
	}

	groups := GroupReports(set)

	require.Len(t, groups, 1)
	g := groups[0]
	assert.Equal(t, "capitalone:4432", g.MatchKey)
	require.NotNil(t, g.TransUnion)
	require.NotNil(t, g.Experian)
	assert.Nil(t, g.Equifax)
	assert.Equal(t, "CAP ONE", g.TransUnion.CreditorName)
	assert.Equal(t, "Capital One", g.Experian.CreditorName)
}

func TestGroup_DifferentCreditorAndDigitsStaySeparate(t *testing.T) {
	records := []*model.AccountRecord{
		{Bureau: model.TransUnion, CreditorName: "CAP ONE", AccountIdentifier: "4432"},
		{Bureau: model.Experian, CreditorName: "Midland", AccountIdentifier: "9981"},
	}

	groups := Group(records)

	require.Len(t, groups, 2)
	assert.NotNil(t, groups[0].TransUnion)
	assert.NotNil(t, groups[1].Experian)
}

func TestGroup_OneRecordPerBureauSlot(t *testing.T) {
	first := &model.AccountRecord{Bureau: model.TransUnion, CreditorName: "CHASE", AccountIdentifier: "1111"}
	second := &model.AccountRecord{Bureau: model.TransUnion, CreditorName: "Chase Bank", AccountIdentifier: "xx1111"}
	other := &model.AccountRecord{Bureau: model.Equifax, CreditorName: "JPMCB", AccountIdentifier: "1111"}

	groups := Group([]*model.AccountRecord{first, second, other})

	require.Len(t, groups, 2)
	assert.Same(t, first, groups[0].TransUnion)
	assert.Same(t, other, groups[0].Equifax)
	assert.Same(t, second, groups[1].TransUnion)
	assert.Equal(t, groups[0].MatchKey, groups[1].MatchKey)

	seen := 0
	for _, g := range groups {
		seen += len(g.Records())
	}
	assert.Equal(t, 3, seen)
}

func TestGroup_TypeTakesFirstKnownValue(t *testing.T) {
	records := []*model.AccountRecord{
		{Bureau: model.TransUnion, CreditorName: "A", AccountIdentifier: "1234", AccountType: model.UnknownAccountType, AccountSubType: model.UnknownAccountType},
		{Bureau: model.Experian, CreditorName: "A", AccountIdentifier: "1234", AccountType: "Revolving", AccountSubType: model.UnknownAccountType},
		{Bureau: model.Equifax, CreditorName: "A", AccountIdentifier: "1234", AccountType: "Installment", AccountSubType: "CreditCard"},
	}

	groups := Group(records)

	require.Len(t, groups, 1)
	assert.Equal(t, "Revolving", groups[0].AccountType)
	assert.Equal(t, "CreditCard", groups[0].AccountSubType)
}

func TestGroup_Empty(t *testing.T) {
	assert.Empty(t, Group(nil))
	assert.Empty(t, GroupReports(model.ReportSet{}))
}
