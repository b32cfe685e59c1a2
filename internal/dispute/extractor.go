// Package dispute turns a bureau's flattened report into typed dispute items.
package dispute

import (
	"regexp"
	"strings"

	"github.com/Veraticus/bureau-dispute-flow/internal/classification"
	"github.com/Veraticus/bureau-dispute-flow/internal/fieldpath"
	"github.com/Veraticus/bureau-dispute-flow/internal/model"
)

// accountContainer describes an array of account entries whose elements carry
// the creditor and account number next to the flagged field.
type accountContainer struct {
	marker            *regexp.Regexp
	accountTemplates  []string
	creditorTemplates []string
}

// accountContainers are tried in order; the first marker found in a path is used.
var accountContainers = []accountContainer{
	{
		marker:            regexp.MustCompile(`CREDIT_LIABILITY\[(\d+|\*)\]`),
		accountTemplates:  []string{".@_AccountIdentifier"},
		creditorTemplates: []string{"._CREDITOR.@_Name"},
	},
	{
		marker:            regexp.MustCompile(`(?:tradelines|tradeLines|accounts)\[(\d+|\*)\]`),
		accountTemplates:  []string{".accountNumber", ".accountIdentifier", ".account_number"},
		creditorTemplates: []string{".creditorName", ".creditor_name", ".subscriberName"},
	},
}

// Extractor builds dispute items with a classifier.
type Extractor struct {
	classifier *classification.Classifier
}

// NewExtractor creates an extractor. A nil classifier uses the default rules.
func NewExtractor(c *classification.Classifier) *Extractor {
	if c == nil {
		c = classification.Default()
	}
	return &Extractor{classifier: c}
}

// Extract uses the default classifier.
func Extract(doc model.ReportDocument, paths []string, bureau model.Bureau) []model.DisputeItem {
	return NewExtractor(nil).Extract(doc, paths, bureau)
}

// Extract classifies every path and returns an item for each negative one, in
// path order. Creditor and account enrichment is best-effort: a failed lookup
// leaves the field empty.
func (e *Extractor) Extract(doc model.ReportDocument, paths []string, bureau model.Bureau) []model.DisputeItem {
	var items []model.DisputeItem

	for _, path := range paths {
		value := fieldpath.Get(doc, path)
		verdict := e.classifier.Classify(path, value)
		if !verdict.IsNegative {
			continue
		}

		item := model.DisputeItem{
			ID:        model.DisputeItemID(bureau, path),
			Category:  verdict.Category,
			Severity:  verdict.Severity,
			FieldPath: path,
			FieldName: FieldName(path),
			Value:     value,
			Bureau:    bureau,
			Reason:    verdict.Reason,
		}
		item.AccountIdentifier, item.CreditorName = enrich(doc, path)

		items = append(items, item)
	}

	return items
}

// FieldName is the display name of a path's final key.
func FieldName(path string) string {
	name := strings.TrimLeft(fieldpath.LastSegment(path), "@_")
	if name == "" {
		return fieldpath.LastSegment(path)
	}
	return name
}

func enrich(doc model.ReportDocument, path string) (accountID, creditor string) {
	for _, container := range accountContainers {
		loc := container.marker.FindStringIndex(path)
		if loc == nil {
			continue
		}
		element := path[:loc[1]]
		return lookupFirst(doc, element, container.accountTemplates),
			lookupFirst(doc, element, container.creditorTemplates)
	}
	return "", ""
}

func lookupFirst(doc model.ReportDocument, element string, templates []string) string {
	for _, suffix := range templates {
		v := fieldpath.Get(doc, element+suffix)
		if v == nil || !fieldpath.IsPrimitive(v) {
			continue
		}
		if s := strings.TrimSpace(model.FormatValue(v)); s != "" {
			return s
		}
	}
	return ""
}
