package ingest

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/tidwall/gjson"
)

// int64 bounds as decimals, for overflow checks before truncation
var (
	maxInt64 = decimal.NewFromInt(math.MaxInt64)
	minInt64 = decimal.NewFromInt(math.MinInt64)
)

// coerceInt64 converts a loosely-typed JSON value to an int64.
//
// Coercion attempts run in a fixed order so behavior is reproducible:
// an exact base-10 integer parse of the literal first, then a decimal
// parse that only succeeds when the value has no fractional component
// and fits in int64. Overflow is a failure, never a wraparound, and a
// fractional value is a failure, never a truncation. Booleans, objects,
// arrays and nulls do not coerce.
func coerceInt64(v gjson.Result) (int64, error) {
	var literal string
	switch v.Type {
	case gjson.Number:
		literal = v.Raw
	case gjson.String:
		literal = v.Str
	default:
		return 0, fmt.Errorf("value kind %s does not coerce to an integer", kindName(v))
	}

	if n, err := strconv.ParseInt(literal, 10, 64); err == nil {
		return n, nil
	}

	d, err := decimal.NewFromString(literal)
	if err != nil {
		return 0, fmt.Errorf("%q is not a number", literal)
	}
	if !d.IsInteger() {
		return 0, fmt.Errorf("%q has a fractional component", literal)
	}
	if d.GreaterThan(maxInt64) || d.LessThan(minInt64) {
		return 0, fmt.Errorf("%q overflows the integer range", literal)
	}
	return d.IntPart(), nil
}

// coerceDecimal converts a loosely-typed JSON value to an exact decimal.
// Native numbers parse from their literal text so no binary floating
// point representation is ever involved; textual values must parse in
// the fixed, locale-independent decimal format.
func coerceDecimal(v gjson.Result) (decimal.Decimal, error) {
	var literal string
	switch v.Type {
	case gjson.Number:
		literal = v.Raw
	case gjson.String:
		literal = v.Str
	default:
		return decimal.Decimal{}, fmt.Errorf("value kind %s does not coerce to a decimal", kindName(v))
	}

	d, err := decimal.NewFromString(literal)
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("%q is not a number", literal)
	}
	return d, nil
}

// coerceText converts a scalar JSON value to its text form. Strings pass
// through, numbers and booleans use their literal text. Nulls, missing
// values, objects and arrays do not convert.
func coerceText(v gjson.Result) (string, bool) {
	switch v.Type {
	case gjson.String:
		return v.Str, true
	case gjson.Number, gjson.True, gjson.False:
		return v.Raw, true
	default:
		return "", false
	}
}

// isBlank reports whether a string is empty or whitespace-only
func isBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}

// kindName names a gjson value kind for error messages
func kindName(v gjson.Result) string {
	switch v.Type {
	case gjson.Null:
		return "null"
	case gjson.True, gjson.False:
		return "boolean"
	case gjson.Number:
		return "number"
	case gjson.String:
		return "string"
	case gjson.JSON:
		if v.IsArray() {
			return "array"
		}
		return "object"
	default:
		return "missing"
	}
}
