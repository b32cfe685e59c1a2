// Package testutil builds bureau report fixtures for tests.
//
// Example:
//
//	doc := testutil.NewReport().
//		WithLiability(testutil.Liability{Creditor: "CAP ONE", AccountID: "4432", Late30: 2}).
//		MISMO()
package testutil

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strconv"
	"testing"
)

// Liability describes one tradeline in a generated report.
type Liability struct {
	Creditor    string
	AccountID   string
	Status      string
	Balance     string
	AccountType string
	Late30      int
	Late60      int
	Late90      int
	Collection  bool
	ChargeOff   bool
}

// ReportBuilder assembles a report in either MISMO or flat tradeline layout.
type ReportBuilder struct {
	borrower    map[string]string
	liabilities []Liability
	inquiries   []string
}

// NewReport starts an empty report.
func NewReport() *ReportBuilder {
	return &ReportBuilder{}
}

// WithLiability appends a tradeline.
func (b *ReportBuilder) WithLiability(l Liability) *ReportBuilder {
	b.liabilities = append(b.liabilities, l)
	return b
}

// WithBorrower sets the consumer's name.
func (b *ReportBuilder) WithBorrower(first, last string) *ReportBuilder {
	b.borrower = map[string]string{"first": first, "last": last}
	return b
}

// WithInquiry appends a hard inquiry by the named creditor.
func (b *ReportBuilder) WithInquiry(name string) *ReportBuilder {
	b.inquiries = append(b.inquiries, name)
	return b
}

// MISMO renders the report as a MISMO 2.x credit response: attributes as
// "@_Name" keys under CREDIT_RESPONSE.
func (b *ReportBuilder) MISMO() map[string]any {
	response := map[string]any{}

	if len(b.liabilities) > 0 {
		liabilities := make([]any, 0, len(b.liabilities))
		for _, l := range b.liabilities {
			liabilities = append(liabilities, map[string]any{
				"@_AccountIdentifier":    l.AccountID,
				"@_AccountStatusType":    l.Status,
				"@_UnpaidBalanceAmount":  l.Balance,
				"@_AccountType":          l.AccountType,
				"@IsCollectionIndicator": flag(l.Collection),
				"@IsChargeoffIndicator":  flag(l.ChargeOff),
				"_CREDITOR":              map[string]any{"@_Name": l.Creditor},
				"_LATE_COUNT": map[string]any{
					"@_30Days": strconv.Itoa(l.Late30),
					"@_60Days": strconv.Itoa(l.Late60),
					"@_90Days": strconv.Itoa(l.Late90),
				},
			})
		}
		response["CREDIT_LIABILITY"] = liabilities
	}

	if b.borrower != nil {
		response["BORROWER"] = map[string]any{
			"@_FirstName": b.borrower["first"],
			"@_LastName":  b.borrower["last"],
		}
	}

	if len(b.inquiries) > 0 {
		inquiries := make([]any, 0, len(b.inquiries))
		for _, name := range b.inquiries {
			inquiries = append(inquiries, map[string]any{"@_Name": name})
		}
		response["CREDIT_INQUIRY"] = inquiries
	}

	return map[string]any{"CREDIT_RESPONSE": response}
}

// Tradelines renders the report in the camelCase layout used by JSON exports.
func (b *ReportBuilder) Tradelines() map[string]any {
	doc := map[string]any{}

	tradelines := make([]any, 0, len(b.liabilities))
	for _, l := range b.liabilities {
		tradelines = append(tradelines, map[string]any{
			"creditorName":        l.Creditor,
			"accountIdentifier":   l.AccountID,
			"accountStatus":       l.Status,
			"balance":             l.Balance,
			"accountType":         l.AccountType,
			"late30":              strconv.Itoa(l.Late30),
			"collectionIndicator": flag(l.Collection),
		})
	}
	doc["tradelines"] = tradelines

	if b.borrower != nil {
		doc["personalInfo"] = map[string]any{"firstName": b.borrower["first"], "lastName": b.borrower["last"]}
	}
	return doc
}

// WriteJSON stores doc under dir and returns its path.
func WriteJSON(t testing.TB, dir, name string, doc any) string {
	t.Helper()

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		t.Fatalf("failed to encode fixture %s: %v", name, err)
	}
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, data, 0o600); err != nil {
		t.Fatalf("failed to write fixture %s: %v", name, err)
	}
	return path
}

func flag(set bool) string {
	if set {
		return "Y"
	}
	return "N"
}
