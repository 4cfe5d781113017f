package validation

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Violations maps field names to violation codes.
type Violations map[string]string

func (v Violations) Empty() bool { return len(v) == 0 }

// First returns an arbitrary single violation as "field: code", for error
// messages that only have room for one.
func (v Violations) First() string {
	for field, code := range v {
		return field + ": " + code
	}
	return ""
}

func Required(field, value string, v Violations) {
	if strings.TrimSpace(value) == "" {
		v[field] = "required"
	}
}

func NonNegativeDecimal(field string, val decimal.Decimal, v Violations) {
	if val.IsNegative() {
		v[field] = "must_not_be_negative"
	}
}

func PositiveDecimal(field string, val decimal.Decimal, v Violations) {
	if !val.IsPositive() {
		v[field] = "must_be_positive"
	}
}

func DecimalRange(field string, val, minVal, maxVal decimal.Decimal, v Violations) {
	if val.LessThan(minVal) || val.GreaterThan(maxVal) {
		v[field] = "out_of_range"
	}
}
