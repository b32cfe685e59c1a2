// Package accounts matches tradelines across bureau reports and ranks the
// resulting groups by how derogatory they are.
package accounts

import (
	"regexp"
	"sort"
	"strings"

	"github.com/Veraticus/bureau-dispute-flow/internal/fieldpath"
	"github.com/Veraticus/bureau-dispute-flow/internal/model"
)

// containerPaths are the places bureaus keep their account list; the first
// one holding accounts wins.
var containerPaths = []string{
	"CREDIT_RESPONSE.CREDIT_LIABILITY",
	"CREDIT_LIABILITY",
	"tradelines",
	"tradeLines",
	"trade_lines",
	"accounts",
	"creditAccounts",
}

// fieldSpec lists the paths tried for one record field, then a loose pattern
// matched against the record's own keys when none of them resolve.
type fieldSpec struct {
	keyPattern *regexp.Regexp
	templates  []string
}

var (
	creditorSpec = fieldSpec{
		templates: []string{
			"_CREDITOR.@_Name", "@_CreditorName", "creditorName", "creditor_name", "creditor.name",
			"subscriberName", "subscriber_name", "furnisherName", "furnisher_name",
		},
		keyPattern: regexp.MustCompile(`(?i)creditor|subscriber|furnisher|name`),
	}
	accountIDSpec = fieldSpec{
		templates: []string{
			"@_AccountIdentifier", "accountIdentifier", "accountNumber", "account_number",
			"accountId", "account_id",
		},
		keyPattern: regexp.MustCompile(`(?i)account_?(number|identifier|id|num)|acct`),
	}
	statusSpec = fieldSpec{
		templates: []string{
			"@_AccountStatusType", "_CURRENT_RATING.@_Type", "accountStatus", "account_status",
			"paymentStatus", "payment_status", "status",
		},
		keyPattern: regexp.MustCompile(`(?i)(status|statustype|rating)$`),
	}
	balanceSpec = fieldSpec{
		templates: []string{
			"@_UnpaidBalanceAmount", "balance", "currentBalance", "current_balance", "balanceAmount",
		},
		keyPattern: regexp.MustCompile(`(?i)balance`),
	}
	typeSpec = fieldSpec{
		templates:  []string{"@_AccountType", "accountType", "account_type"},
		keyPattern: regexp.MustCompile(`(?i)^[@_]*(account_?)?type$`),
	}
	subTypeSpec = fieldSpec{
		templates: []string{
			"@CreditLoanType", "@_CreditLoanType", "accountSubType", "account_sub_type",
			"loanType", "loan_type",
		},
		keyPattern: regexp.MustCompile(`(?i)sub_?type|loan_?type`),
	}
)

// ExtractRecords pulls every account entry out of one bureau's report.
func ExtractRecords(doc model.ReportDocument, bureau model.Bureau) []*model.AccountRecord {
	entries := accountEntries(doc)

	records := make([]*model.AccountRecord, 0, len(entries))
	for i, entry := range entries {
		raw, ok := entry.(map[string]any)
		if !ok {
			continue
		}
		records = append(records, &model.AccountRecord{
			Raw:               raw,
			Bureau:            bureau,
			Index:             i,
			CreditorName:      resolveField(raw, creditorSpec),
			AccountIdentifier: resolveField(raw, accountIDSpec),
			Status:            resolveField(raw, statusSpec),
			Balance:           resolveField(raw, balanceSpec),
			AccountType:       orUnknown(resolveField(raw, typeSpec)),
			AccountSubType:    orUnknown(resolveField(raw, subTypeSpec)),
		})
	}
	return records
}

func accountEntries(doc model.ReportDocument) []any {
	for _, path := range containerPaths {
		switch v := fieldpath.Get(doc, path).(type) {
		case []any:
			return v
		case map[string]any:
			// A lone element converted from XML arrives as an object.
			return []any{v}
		}
	}
	return nil
}

func resolveField(raw map[string]any, fs fieldSpec) string {
	for _, tmpl := range fs.templates {
		if s := leafString(fieldpath.Get(raw, tmpl)); s != "" {
			return s
		}
	}

	keys := make([]string, 0, len(raw))
	for k := range raw {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		if !fs.keyPattern.MatchString(k) {
			continue
		}
		if s := leafString(raw[k]); s != "" {
			return s
		}
	}
	return ""
}

func leafString(v any) string {
	if v == nil || !fieldpath.IsPrimitive(v) {
		return ""
	}
	return strings.TrimSpace(model.FormatValue(v))
}

func orUnknown(s string) string {
	if s == "" {
		return model.UnknownAccountType
	}
	return s
}
