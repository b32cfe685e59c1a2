// Package classification decides which report fields are dispute-worthy and
// describes them with a category, severity and reason.
package classification

import (
	"errors"
	"fmt"
	"strings"

	"github.com/Veraticus/bureau-dispute-flow/internal/model"
)

// Rule validation errors.
var (
	ErrEmptyRulePath = errors.New("negative rule has an empty path substring")
	ErrNilRuleTest   = errors.New("negative rule has no value test")
	ErrNilReason     = errors.New("reason rule has no formatter")
)

// Classification is the verdict for a single field.
type Classification struct {
	Category   model.Category `json:"category"`
	Severity   model.Severity `json:"severity"`
	Reason     string         `json:"reason"`
	IsNegative bool           `json:"is_negative"`
}

// Classifier applies a RuleSet. It holds no mutable state, so one instance can
// be shared by any number of goroutines.
type Classifier struct {
	rules RuleSet
}

// NewClassifier validates the rule tables and returns a classifier for them.
func NewClassifier(rules RuleSet) (*Classifier, error) {
	for i, rule := range rules.Negative {
		if rule.PathContains == "" {
			return nil, fmt.Errorf("rule %d (%s): %w", i, rule.Name, ErrEmptyRulePath)
		}
		if rule.Test == nil {
			return nil, fmt.Errorf("rule %d (%s): %w", i, rule.Name, ErrNilRuleTest)
		}
	}
	for i, rule := range rules.Reasons {
		if rule.Format == nil {
			return nil, fmt.Errorf("reason rule %d: %w", i, ErrNilReason)
		}
	}
	return &Classifier{rules: rules}, nil
}

var defaultClassifier = mustDefault()

func mustDefault() *Classifier {
	c, err := NewClassifier(DefaultRuleSet())
	if err != nil {
		panic(fmt.Sprintf("default classification rules are invalid: %v", err))
	}
	return c
}

// Default returns the classifier built from DefaultRuleSet.
func Default() *Classifier {
	return defaultClassifier
}

// Classify runs the default classifier.
func Classify(fieldPath string, value any) Classification {
	return defaultClassifier.Classify(fieldPath, value)
}

// Classify decides whether the field is negative and describes it. The result
// depends only on the arguments.
func (c *Classifier) Classify(fieldPath string, value any) Classification {
	return Classification{
		IsNegative: c.IsNegative(fieldPath, value),
		Category:   c.Category(fieldPath),
		Severity:   c.Severity(fieldPath, value),
		Reason:     c.Reason(fieldPath, value),
	}
}

// IsNegative evaluates the negativity table and the date fallback.
func (c *Classifier) IsNegative(fieldPath string, value any) bool {
	if isEmptyValue(value) {
		return false
	}

	for _, rule := range c.rules.Negative {
		if strings.Contains(fieldPath, rule.PathContains) {
			if rule.Test(value) {
				return true
			}
			break
		}
	}

	// A recorded delinquency or charge-off date is adverse on its own.
	return c.rules.Fallback.Match(fieldPath) && isPresent(value)
}

// Category returns the first category whose terms match the uppercased path.
func (c *Classifier) Category(fieldPath string) model.Category {
	upper := strings.ToUpper(fieldPath)
	for _, rule := range c.rules.Categories {
		if rule.Terms.Match(upper) {
			return rule.Category
		}
	}
	return model.CategoryAccounts
}

// Severity returns the first severity whose keywords appear in the path or value.
func (c *Classifier) Severity(fieldPath string, value any) model.Severity {
	text := alnumUpper(fieldPath + " " + model.FormatValue(value))
	for _, rule := range c.rules.Severities {
		for _, keyword := range rule.Keywords {
			if strings.Contains(text, keyword) {
				return rule.Severity
			}
		}
	}
	return model.SeverityLow
}

// Reason returns the first matching reason sentence.
func (c *Classifier) Reason(fieldPath string, value any) string {
	for _, rule := range c.rules.Reasons {
		if rule.Terms.Match(fieldPath) {
			return rule.Format(value)
		}
	}
	return DefaultReason
}
