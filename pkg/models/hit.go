package models

import (
	"fmt"
	"math"
	"strconv"
	"time"
)

// Hit is one raw hit row. Fields has short field codes (cd5, pa, pr1id, ...)
// as key. Zero Timestamp means the row had no valid timestamp.
type Hit struct {
	Timestamp time.Time
	Fields    map[string]interface{}
}

// NewHit is constructor of Hit
func NewHit(ts time.Time, fields map[string]interface{}) *Hit {
	if fields == nil {
		fields = map[string]interface{}{}
	}
	return &Hit{Timestamp: ts, Fields: fields}
}

// HasTimestamp returns false if timestamp of the hit is missing.
func (x *Hit) HasTimestamp() bool { return !x.Timestamp.IsZero() }

// Value returns a raw value of the field. Empty string and nil are treated as
// absent.
func (x *Hit) Value(f Field, idx ...int) (interface{}, bool) {
	code, ok := FieldCode(f, idx...)
	if !ok {
		return nil, false
	}
	return x.lookup(code)
}

func (x *Hit) lookup(code string) (interface{}, bool) {
	v, ok := x.Fields[code]
	if !ok || v == nil {
		return nil, false
	}
	if s, isStr := v.(string); isStr && s == "" {
		return nil, false
	}
	return v, true
}

// Has returns true if the field has a value.
func (x *Hit) Has(f Field, idx ...int) bool {
	_, ok := x.Value(f, idx...)
	return ok
}

// String returns the value as string.
func (x *Hit) String(f Field, idx ...int) (string, bool) {
	v, ok := x.Value(f, idx...)
	if !ok {
		return "", false
	}
	return ToString(v), true
}

// StringPtr is same with String, but returns nil if absent.
func (x *Hit) StringPtr(f Field, idx ...int) *string {
	if s, ok := x.String(f, idx...); ok {
		return &s
	}
	return nil
}

// Float returns the value as float64. Unparsable value is treated as absent.
func (x *Hit) Float(f Field, idx ...int) (float64, bool) {
	v, ok := x.Value(f, idx...)
	if !ok {
		return 0, false
	}
	return ToFloat(v)
}

// Int returns the value as int64. A decimal value is truncated.
func (x *Hit) Int(f Field, idx ...int) (int64, bool) {
	v, ok := x.Value(f, idx...)
	if !ok {
		return 0, false
	}
	return ToInt(v)
}

// IntPtr is same with Int, but returns nil if absent.
func (x *Hit) IntPtr(f Field, idx ...int) *int64 {
	if n, ok := x.Int(f, idx...); ok {
		return &n
	}
	return nil
}

// Indices returns sorted distinct last index of the indexed field found in the
// hit. fixed is leading indices, then number of fixed must be arity - 1.
// e.g.) Indices(FieldImpressionSKU, 2) returns [1, 3] for il2pi1id and il2pi3id.
func (x *Hit) Indices(f Field, fixed ...int) []int {
	if FieldArity(f) != len(fixed)+1 {
		return nil
	}

	set := map[int]struct{}{}
	for code := range x.Fields {
		idx, ok := matchIndices(f, code)
		if !ok {
			continue
		}
		if _, has := x.lookup(code); !has {
			continue
		}

		matched := true
		for i, n := range fixed {
			if idx[i] != n {
				matched = false
				break
			}
		}
		if matched {
			set[idx[len(idx)-1]] = struct{}{}
		}
	}

	return sortedIndices(set)
}

// ToString converts a scalar value to string. A number is formatted without
// exponent and trailing zeros.
func ToString(v interface{}) string {
	switch s := v.(type) {
	case string:
		return s
	case float64:
		return strconv.FormatFloat(s, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(s), 'f', -1, 32)
	case int:
		return strconv.Itoa(s)
	case int64:
		return strconv.FormatInt(s, 10)
	case bool:
		return strconv.FormatBool(s)
	default:
		return fmt.Sprintf("%v", v)
	}
}

// ToFloat converts a scalar value to float64.
func ToFloat(v interface{}) (float64, bool) {
	var f float64
	switch s := v.(type) {
	case float64:
		f = s
	case float32:
		f = float64(s)
	case int:
		f = float64(s)
	case int64:
		f = float64(s)
	case string:
		n, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return 0, false
		}
		f = n
	default:
		return 0, false
	}

	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}

// ToInt converts a scalar value to int64.
func ToInt(v interface{}) (int64, bool) {
	switch s := v.(type) {
	case int:
		return int64(s), true
	case int64:
		return s, true
	case string:
		if n, err := strconv.ParseInt(s, 10, 64); err == nil {
			return n, true
		}
	}

	f, ok := ToFloat(v)
	if !ok || f > math.MaxInt64 || f < math.MinInt64 {
		return 0, false
	}
	return int64(f), true
}

// ToMicro scales a currency value to micro units.
func ToMicro(v float64) int64 {
	return int64(math.Round(v * 1e6))
}
