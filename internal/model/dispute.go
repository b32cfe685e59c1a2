package model

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// Category groups dispute items by the kind of report section they came from.
type Category string

// Category constants.
const (
	CategoryCollections   Category = "collections"
	CategoryChargeoffs    Category = "chargeoffs"
	CategoryLatePayments  Category = "late_payments"
	CategoryInquiries     Category = "inquiries"
	CategoryPersonalInfo  Category = "personal_info"
	CategoryPublicRecords Category = "public_records"
	CategoryAccounts      Category = "accounts"
)

// Severity ranks how damaging a dispute item is.
type Severity string

// Severity constants.
const (
	SeverityHigh   Severity = "high"
	SeverityMedium Severity = "medium"
	SeverityLow    Severity = "low"
)

// ErrUnknownSeverity is returned when a severity name cannot be recognized.
var ErrUnknownSeverity = errors.New("unknown severity")

// ParseSeverity resolves low, medium or high in any case.
func ParseSeverity(name string) (Severity, error) {
	s := Severity(strings.ToLower(strings.TrimSpace(name)))
	if s.Rank() == 0 {
		return "", fmt.Errorf("%w: %q", ErrUnknownSeverity, name)
	}
	return s, nil
}

// Rank orders severities so that higher is worse.
func (s Severity) Rank() int {
	switch s {
	case SeverityHigh:
		return 3
	case SeverityMedium:
		return 2
	case SeverityLow:
		return 1
	default:
		return 0
	}
}

// DisputeItem is a negative field extracted from one bureau's report.
type DisputeItem struct {
	Value             any      `json:"value"`
	ID                string   `json:"id"`
	Category          Category `json:"category"`
	Severity          Severity `json:"severity"`
	FieldPath         string   `json:"field_path"`
	FieldName         string   `json:"field_name"`
	Bureau            Bureau   `json:"bureau"`
	Reason            string   `json:"reason"`
	AccountIdentifier string   `json:"account_identifier,omitempty"`
	CreditorName      string   `json:"creditor_name,omitempty"`
}

// DisputeItemID builds the run-unique identifier for a bureau field.
func DisputeItemID(bureau Bureau, fieldPath string) string {
	return string(bureau) + ":" + fieldPath
}

// Summary renders the one-line description handed to letter drafting.
func (d DisputeItem) Summary() string {
	creditor := d.CreditorName
	if creditor == "" {
		creditor = d.Bureau.DisplayName()
	}
	return fmt.Sprintf("%s — %s: %s: %s", creditor, d.Reason, d.FieldName, FormatValue(d.Value))
}

// FormatValue converts a leaf value to the plain string a reader would expect.
func FormatValue(v any) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	case json.Number:
		return val.String()
	case bool:
		return strconv.FormatBool(val)
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(val), 'f', -1, 32)
	case int:
		return strconv.Itoa(val)
	case int64:
		return strconv.FormatInt(val, 10)
	default:
		data, err := json.Marshal(val)
		if err != nil {
			return fmt.Sprintf("%v", val)
		}
		return string(data)
	}
}
