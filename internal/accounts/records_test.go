package accounts

import (
	"testing"

	"github.com/Veraticus/bureau-dispute-flow/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractRecords_MISMO(t *testing.T) {
	doc := map[string]any{
		"CREDIT_RESPONSE": map[string]any{
			"CREDIT_LIABILITY": []any{
				map[string]any{
					"@_AccountIdentifier":   "517805XXXXXX4432",
					"@_AccountStatusType":   "Open",
					"@_UnpaidBalanceAmount": "1250",
					"@_AccountType":         "Revolving",
					"@CreditLoanType":       "CreditCard",
					"_CREDITOR":             map[string]any{"@_Name": "CAP ONE"},
				},
				"not a record",
			},
		},
	}

	records := ExtractRecords(doc, model.TransUnion)

	require.Len(t, records, 1)
	rec := records[0]
	assert.Equal(t, model.TransUnion, rec.Bureau)
	assert.Equal(t, 0, rec.Index)
	assert.Equal(t, "CAP ONE", rec.CreditorName)
	assert.Equal(t, "517805XXXXXX4432", rec.AccountIdentifier)
	assert.Equal(t, "Open", rec.Status)
	assert.Equal(t, "1250", rec.Balance)
	assert.Equal(t, "Revolving", rec.AccountType)
	assert.Equal(t, "CreditCard", rec.AccountSubType)
	assert.NotNil(t, rec.Raw)
}

func TestExtractRecords_CamelCaseAndDefaults(t *testing.T) {
	doc := map[string]any{
		"tradelines": []any{
			map[string]any{
				"creditorName":  "Capital One",
				"accountNumber": "XXXX4432",
				"accountStatus": "Current",
				"balance":       1250.0,
			},
		},
	}

	records := ExtractRecords(doc, model.Experian)

	require.Len(t, records, 1)
	assert.Equal(t, "Capital One", records[0].CreditorName)
	assert.Equal(t, "XXXX4432", records[0].AccountIdentifier)
	assert.Equal(t, "1250", records[0].Balance)
	assert.Equal(t, model.UnknownAccountType, records[0].AccountType)
	assert.Equal(t, model.UnknownAccountType, records[0].AccountSubType)
}

func TestExtractRecords_KeyScanFallback(t *testing.T) {
	doc := map[string]any{
		"accounts": []any{
			map[string]any{
				"FurnisherLabel": "MIDLAND CREDIT",
				"acctNo":         "88120091",
				"payStatus":      "Collection",
				"Type":           "Installment",
				"loan_type_code": "Auto",
			},
		},
	}

	records := ExtractRecords(doc, model.Equifax)

	require.Len(t, records, 1)
	assert.Equal(t, "MIDLAND CREDIT", records[0].CreditorName)
	assert.Equal(t, "88120091", records[0].AccountIdentifier)
	assert.Equal(t, "Collection", records[0].Status)
	assert.Equal(t, "Installment", records[0].AccountType)
	assert.Equal(t, "Auto", records[0].AccountSubType)
}

func TestExtractRecords_FirstContainerWins(t *testing.T) {
	doc := map[string]any{
		"CREDIT_LIABILITY": []any{map[string]any{"creditorName": "FROM LIABILITY"}},
		"tradelines":       []any{map[string]any{"creditorName": "FROM TRADELINES"}},
	}

	records := ExtractRecords(doc, model.TransUnion)

	require.Len(t, records, 1)
	assert.Equal(t, "FROM LIABILITY", records[0].CreditorName)
}

func TestExtractRecords_SingleObjectContainer(t *testing.T) {
	doc := map[string]any{
		"CREDIT_LIABILITY": map[string]any{"_CREDITOR": map[string]any{"@_Name": "ONLY ONE"}},
	}

	records := ExtractRecords(doc, model.TransUnion)

	require.Len(t, records, 1)
	assert.Equal(t, "ONLY ONE", records[0].CreditorName)
}

func TestExtractRecords_NoAccounts(t *testing.T) {
	assert.Empty(t, ExtractRecords(nil, model.TransUnion))
	assert.Empty(t, ExtractRecords(map[string]any{"tradelines": "none"}, model.TransUnion))
}
