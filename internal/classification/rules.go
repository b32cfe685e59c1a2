package classification

import (
	"fmt"
	"strings"

	"github.com/Veraticus/bureau-dispute-flow/internal/model"
)

// ValueTest decides whether a field value is adverse.
type ValueTest func(value any) bool

// NegativeRule flags a field as negative when its path contains PathContains
// (case-sensitive) and Test accepts the value.
type NegativeRule struct {
	Test         ValueTest
	Name         string
	PathContains string
}

// Terms matches text that contains every AllOf term and, when AnyOf is not
// empty, at least one AnyOf term.
type Terms struct {
	AllOf []string
	AnyOf []string
}

// Match reports whether text satisfies the terms.
func (t Terms) Match(text string) bool {
	for _, term := range t.AllOf {
		if !strings.Contains(text, term) {
			return false
		}
	}
	if len(t.AnyOf) == 0 {
		return len(t.AllOf) > 0
	}
	for _, term := range t.AnyOf {
		if strings.Contains(text, term) {
			return true
		}
	}
	return false
}

// CategoryRule assigns a category when the uppercased path matches.
type CategoryRule struct {
	Category model.Category
	Terms    Terms
}

// SeverityRule assigns a severity when the uppercased path and value, stripped to
// letters and digits, contain any of the keywords.
type SeverityRule struct {
	Severity model.Severity
	Keywords []string
}

// ReasonRule produces the human readable reason for a matching path.
type ReasonRule struct {
	Format func(value any) string
	Terms  Terms
}

// RuleSet is the full set of ordered tables. Every table is evaluated top-down
// and the first matching entry wins.
type RuleSet struct {
	Negative   []NegativeRule
	Fallback   Terms
	Categories []CategoryRule
	Severities []SeverityRule
	Reasons    []ReasonRule
}

// DefaultReason is used when no reason rule matches.
const DefaultReason = "Potential dispute item"

func negativeRules(name string, test ValueTest, substrings ...string) []NegativeRule {
	rules := make([]NegativeRule, 0, len(substrings))
	for _, s := range substrings {
		rules = append(rules, NegativeRule{Name: name, PathContains: s, Test: test})
	}
	return rules
}

func fixedReason(text string) func(any) string {
	return func(any) string { return text }
}

func latePaymentReason(days string) func(any) string {
	return func(v any) string {
		return fmt.Sprintf("%s late payment(s) %s days", model.FormatValue(v), days)
	}
}

func dollarReason(label string) func(any) string {
	return func(v any) string {
		amount := strings.TrimPrefix(strings.TrimSpace(model.FormatValue(v)), "$")
		return fmt.Sprintf("%s: $%s", label, amount)
	}
}

func valueReason(label string) func(any) string {
	return func(v any) string {
		return fmt.Sprintf("%s: %s", label, model.FormatValue(v))
	}
}

// DefaultRuleSet returns the rule tables tuned for MISMO-style and JSON bureau reports.
func DefaultRuleSet() RuleSet {
	var negative []NegativeRule
	negative = append(negative, negativeRules("collection indicator", IsTruthy,
		"CollectionIndicator", "collectionIndicator", "collection_indicator")...)
	negative = append(negative, negativeRules("charge-off indicator", IsTruthy,
		"ChargeOffIndicator", "ChargeoffIndicator", "chargeOffIndicator", "chargeoff_indicator")...)
	negative = append(negative, negativeRules("derogatory indicator", IsTruthy,
		"DerogatoryDataIndicator", "DerogatoryIndicator", "derogatoryIndicator")...)
	negative = append(negative, negativeRules("dispute indicator", IsTruthy,
		"DisputeIndicator", "disputeIndicator", "dispute_indicator")...)
	negative = append(negative, negativeRules("late payment count", IsPositiveAmount,
		"_30Days", "_60Days", "_90Days",
		"Late30", "Late60", "Late90",
		"late30", "late60", "late90",
		"late_30", "late_60", "late_90")...)
	negative = append(negative, negativeRules("adverse amount", IsPositiveAmount,
		"ChargeOffAmount", "ChargeoffAmount", "chargeOffAmount", "charge_off_amount",
		"PastDueAmount", "pastDueAmount", "past_due_amount", "pastDue")...)
	negative = append(negative, negativeRules("rating code", IsAdverseRating,
		"_CURRENT_RATING", "CurrentRating", "RatingCode", "ratingCode", "rating_code")...)
	negative = append(negative, negativeRules("account status", HasAdverseStatus,
		"Status", "status")...)

	return RuleSet{
		Negative: negative,
		Fallback: Terms{AllOf: []string{"Date"}, AnyOf: []string{"Delinquency", "ChargeOff"}},
		Categories: []CategoryRule{
			{Category: model.CategoryCollections, Terms: Terms{AllOf: []string{"LIABILITY"}, AnyOf: []string{"COLLECTION"}}},
			{Category: model.CategoryChargeoffs, Terms: Terms{AnyOf: []string{"CHARGEOFF", "CHARGE_OFF"}}},
			{Category: model.CategoryLatePayments, Terms: Terms{AnyOf: []string{
				"LATE_COUNT", "LATECOUNT", "_30DAYS", "_60DAYS", "_90DAYS",
				"LATE30", "LATE60", "LATE90", "LATE_30", "LATE_60", "LATE_90",
				"DELINQUEN", "ADVERSE",
			}}},
			{Category: model.CategoryInquiries, Terms: Terms{AnyOf: []string{"INQUIR"}}},
			{Category: model.CategoryPersonalInfo, Terms: Terms{
				AllOf: []string{"BORROWER"},
				AnyOf: []string{"NAME", "SSN", "RESIDENCE", "BIRTHDATE"},
			}},
			{Category: model.CategoryPublicRecords, Terms: Terms{AnyOf: []string{"PUBLIC_RECORD", "PUBLICRECORD", "BANKRUPTCY"}}},
		},
		Severities: []SeverityRule{
			{Severity: model.SeverityHigh, Keywords: []string{"COLLECTION", "CHARGEOFF", "CHARGEDOFF", "BANKRUPTCY", "FORECLOSURE", "90DAY", "LATE90"}},
			{Severity: model.SeverityMedium, Keywords: []string{"60DAY", "LATE60", "DEROGATORY", "ADVERSE", "PASTDUE"}},
		},
		Reasons: []ReasonRule{
			{Terms: Terms{AnyOf: []string{"_30Days", "Late30", "late30", "late_30"}}, Format: latePaymentReason("30")},
			{Terms: Terms{AnyOf: []string{"_60Days", "Late60", "late60", "late_60"}}, Format: latePaymentReason("60")},
			{Terms: Terms{AnyOf: []string{"_90Days", "Late90", "late90", "late_90"}}, Format: latePaymentReason("90")},
			{Terms: Terms{AnyOf: []string{"PastDueAmount", "pastDueAmount", "past_due_amount", "pastDue"}}, Format: dollarReason("Past due amount")},
			{Terms: Terms{AnyOf: []string{"ChargeOffAmount", "ChargeoffAmount", "chargeOffAmount", "charge_off_amount"}}, Format: dollarReason("Charge-off amount")},
			{Terms: Terms{AnyOf: []string{"CollectionIndicator", "collectionIndicator", "collection_indicator"}}, Format: fixedReason("Account reported as collection")},
			{Terms: Terms{AnyOf: []string{"ChargeOffIndicator", "ChargeoffIndicator", "chargeOffIndicator", "chargeoff_indicator"}}, Format: fixedReason("Account reported as charged off")},
			{Terms: Terms{AnyOf: []string{"DerogatoryDataIndicator", "DerogatoryIndicator", "derogatoryIndicator"}}, Format: fixedReason("Derogatory data reported on account")},
			{Terms: Terms{AnyOf: []string{"DisputeIndicator", "disputeIndicator", "dispute_indicator"}}, Format: fixedReason("Account marked as disputed by consumer")},
			{Terms: Terms{AnyOf: []string{"_CURRENT_RATING", "CurrentRating", "RatingCode", "ratingCode", "rating_code"}}, Format: valueReason("Adverse payment rating")},
			{Terms: Terms{AllOf: []string{"Delinquency", "Date"}}, Format: valueReason("Delinquency reported")},
			{Terms: Terms{AllOf: []string{"ChargeOff", "Date"}}, Format: valueReason("Charge-off reported")},
			{Terms: Terms{AnyOf: []string{"Status", "status"}}, Format: valueReason("Negative account status")},
			{Terms: Terms{AnyOf: []string{"PUBLIC_RECORD", "publicRecord", "public_record"}}, Format: valueReason("Public record reported")},
		},
	}
}
