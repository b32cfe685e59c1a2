package accounts

import (
	"strings"

	"github.com/Veraticus/bureau-dispute-flow/internal/model"
)

// creditorAliases collapse the spellings bureaus use for the same furnisher.
// A normalized name must equal a variant exactly.
var creditorAliases = []struct {
	token    string
	variants []string
}{
	{"capitalone", []string{"capone", "capitalone", "capitalonebank", "capitalonena", "capitalonebankusa", "capitalonebankusana", "caponebank"}},
	{"chase", []string{"chase", "chasebank", "chasecard", "jpmcb", "jpmcbcard", "jpmorganchase", "jpmorganchasebank"}},
	{"citi", []string{"citi", "citibank", "citibankna", "cbna", "citicards", "citicardscbna"}},
	{"americanexpress", []string{"amex", "americanexpress", "americanexpressbank", "amexbank"}},
	{"bankofamerica", []string{"bofa", "bankofamerica", "bankofamericana", "bkofamer", "bkofamerica"}},
	{"wellsfargo", []string{"wellsfargo", "wellsfargobank", "wellsfargobankna", "wfbna", "wfcardservices"}},
	{"discover", []string{"discover", "discoverbank", "discoverfinancial", "discovercard"}},
	{"synchrony", []string{"synchrony", "synchronybank", "syncb"}},
	{"navient", []string{"navient", "navientsolutions"}},
}

// Normalize lowercases s and drops everything but ASCII letters and digits.
func Normalize(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range strings.ToLower(s) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// CreditorToken is the normalized creditor name with known aliases collapsed.
func CreditorToken(name string) string {
	n := Normalize(name)
	for _, alias := range creditorAliases {
		for _, variant := range alias.variants {
			if n == variant {
				return alias.token
			}
		}
	}
	return n
}

// AccountSuffix is the last four digits of an account identifier, or the whole
// normalized identifier when it carries fewer than four digits.
func AccountSuffix(accountID string) string {
	var digits []rune
	for _, r := range accountID {
		if r >= '0' && r <= '9' {
			digits = append(digits, r)
		}
	}
	if len(digits) >= 4 {
		return string(digits[len(digits)-4:])
	}
	return Normalize(accountID)
}

// MatchKey is the fuzzy identity used to join records across bureaus.
func MatchKey(rec *model.AccountRecord) string {
	return CreditorToken(rec.CreditorName) + ":" + AccountSuffix(rec.AccountIdentifier)
}
