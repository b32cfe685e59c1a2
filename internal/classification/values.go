package classification

import (
	"encoding/json"
	"strconv"
	"strings"

	"github.com/Veraticus/bureau-dispute-flow/internal/model"
)

// truthyTokens are the string spellings bureaus use for a set indicator flag.
var truthyTokens = []string{"Y", "Yes", "1"}

// adverseRatingCodes are the payment rating codes that indicate a problem.
var adverseRatingCodes = []string{"2", "3", "4", "5", "6", "7", "8", "9", "CA", "CO", "FC", "BK"}

// adverseStatusKeywords are matched against a status value after it is
// lowercased and reduced to letters.
var adverseStatusKeywords = []string{
	"chargeoff",
	"chargedoff",
	"collection",
	"delinquent",
	"late",
	"pastdue",
	"repossession",
	"foreclosure",
	"bankruptcy",
	"closed",
}

// isEmptyValue reports the values that are never negative: nothing, an empty
// string, the "N" flag and false.
func isEmptyValue(v any) bool {
	switch val := v.(type) {
	case nil:
		return true
	case string:
		s := strings.TrimSpace(val)
		return s == "" || s == "N"
	case bool:
		return !val
	default:
		return false
	}
}

// IsTruthy reports whether an indicator value is set.
func IsTruthy(v any) bool {
	switch val := v.(type) {
	case bool:
		return val
	case string:
		s := strings.TrimSpace(val)
		for _, token := range truthyTokens {
			if s == token {
				return true
			}
		}
		return false
	default:
		n, ok := toNumber(v)
		return ok && n == 1
	}
}

// IsPositiveAmount reports whether a counter or dollar amount is above zero.
// Strings may carry a leading "$" and thousands separators.
func IsPositiveAmount(v any) bool {
	n, ok := toNumber(v)
	return ok && n > 0
}

// IsAdverseRating reports whether a rating code is one of the adverse codes.
func IsAdverseRating(v any) bool {
	code := strings.ToUpper(strings.TrimSpace(model.FormatValue(v)))
	for _, adverse := range adverseRatingCodes {
		if code == adverse {
			return true
		}
	}
	return false
}

// HasAdverseStatus reports whether a status value mentions an adverse keyword.
func HasAdverseStatus(v any) bool {
	text := lettersOnly(model.FormatValue(v))
	for _, keyword := range adverseStatusKeywords {
		if strings.Contains(text, keyword) {
			return true
		}
	}
	return false
}

// isPresent reports whether a value carries information at all.
func isPresent(v any) bool {
	if isEmptyValue(v) {
		return false
	}
	if n, ok := toNumber(v); ok {
		if _, isString := v.(string); !isString {
			return n != 0
		}
	}
	return true
}

func toNumber(v any) (float64, bool) {
	switch val := v.(type) {
	case float64:
		return val, true
	case float32:
		return float64(val), true
	case int:
		return float64(val), true
	case int64:
		return float64(val), true
	case json.Number:
		f, err := val.Float64()
		return f, err == nil
	case string:
		s := strings.TrimSpace(val)
		s = strings.TrimPrefix(s, "$")
		s = strings.ReplaceAll(s, ",", "")
		if s == "" {
			return 0, false
		}
		f, err := strconv.ParseFloat(s, 64)
		return f, err == nil
	default:
		return 0, false
	}
}

func lettersOnly(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range strings.ToLower(s) {
		if r >= 'a' && r <= 'z' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

func alnumUpper(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range strings.ToUpper(s) {
		if (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		}
	}
	return b.String()
}
