package accounts

import (
	"testing"

	"github.com/Veraticus/bureau-dispute-flow/internal/model"
	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	assert.Equal(t, "caponena", Normalize("CAP ONE, N.A."))
	assert.Equal(t, "syncbamazon", Normalize("SYNCB/AMAZON"))
	assert.Equal(t, "", Normalize("  --  "))
}

func TestCreditorToken(t *testing.T) {
	assert.Equal(t, "capitalone", CreditorToken("CAP ONE"))
	assert.Equal(t, "capitalone", CreditorToken("Capital One"))
	assert.Equal(t, "capitalone", CreditorToken("CAPITAL ONE BANK USA N.A."))
	assert.Equal(t, "chase", CreditorToken("JPMCB CARD"))
	assert.Equal(t, "syncbamazon", CreditorToken("SYNCB/AMAZON"))
	assert.Equal(t, "midlandcredit", CreditorToken("Midland Credit"))
}

func TestAccountSuffix(t *testing.T) {
	assert.Equal(t, "4432", AccountSuffix("...-4432"))
	assert.Equal(t, "4432", AccountSuffix("XXXX4432"))
	assert.Equal(t, "4432", AccountSuffix("5178 05XX XXXX 4432"))
	assert.Equal(t, "ab12", AccountSuffix("AB-12"))
	assert.Equal(t, "", AccountSuffix(""))
}

func TestMatchKey(t *testing.T) {
	tu := &model.AccountRecord{CreditorName: "CAP ONE", AccountIdentifier: "...-4432"}
	ex := &model.AccountRecord{CreditorName: "Capital One", AccountIdentifier: "XXXX4432"}

	assert.Equal(t, "capitalone:4432", MatchKey(tu))
	assert.Equal(t, MatchKey(tu), MatchKey(ex))
}
