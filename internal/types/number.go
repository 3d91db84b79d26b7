package types

import (
	"bytes"
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// Number decodes a JSON number or a numeric string. Empty strings and null
// decode as Null; anything else non-numeric sets Invalid instead of failing
// the whole body, so validation can name the offending field.
type Number struct {
	Value   float64
	Null    bool
	Invalid bool
}

func (n *Number) UnmarshalJSON(b []byte) error {
	*n = Number{}
	b = bytes.TrimSpace(b)
	if string(b) == "null" {
		n.Null = true
		return nil
	}

	var raw any
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	switch v := raw.(type) {
	case float64:
		n.Value = v
	case string:
		s := strings.TrimSpace(v)
		if s == "" {
			n.Null = true
			return nil
		}
		f, err := strconv.ParseFloat(s, 64)
		if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
			n.Invalid = true
			return nil
		}
		n.Value = f
	default:
		n.Invalid = true
	}
	return nil
}

// Int returns the value truncated toward zero
func (n Number) Int() int {
	return int(math.Trunc(n.Value))
}

// IsInteger reports whether the value has no fractional part
func (n Number) IsInteger() bool {
	return !n.Null && !n.Invalid && n.Value == math.Trunc(n.Value)
}

// Optional tracks whether a JSON key was present at all, for partial updates.
type Optional[T any] struct {
	Set   bool
	Null  bool
	Value T
}

func (o *Optional[T]) UnmarshalJSON(b []byte) error {
	o.Set = true
	if string(bytes.TrimSpace(b)) == "null" {
		o.Null = true
		return nil
	}
	return json.Unmarshal(b, &o.Value)
}

// Present reports whether the key was sent with a non-null value
func (o Optional[T]) Present() bool {
	return o.Set && !o.Null
}
