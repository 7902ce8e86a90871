package params

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
)

// Kind distinguishes numeric values from string values (colors, free text).
type Kind uint8

const (
	// KindNumber marks a numeric value.
	KindNumber Kind = iota
	// KindString marks a color or free-text value.
	KindString
)

// Value is a single parameter entry.
type Value struct {
	Kind Kind
	Num  float64
	Str  string
}

// Number wraps a numeric value.
func Number(v float64) Value { return Value{Kind: KindNumber, Num: v} }

// Text wraps a color or free-text value.
func Text(s string) Value { return Value{Kind: KindString, Str: s} }

// Color wraps an RGB triple in its hex representation.
func Color(c RGB) Value { return Text(c.Hex()) }

// IsNumber reports whether the value holds a number.
func (v Value) IsNumber() bool { return v.Kind == KindNumber }

func (v Value) String() string {
	if v.Kind == KindNumber {
		return strconv.FormatFloat(v.Num, 'f', -1, 64)
	}
	return v.Str
}

// MarshalJSON encodes numbers as JSON numbers and everything else as strings.
// Non-finite numbers have no JSON form and are written as null.
func (v Value) MarshalJSON() ([]byte, error) {
	if v.Kind == KindNumber {
		if !finite(v.Num) {
			return []byte("null"), nil
		}
		return json.Marshal(v.Num)
	}
	return json.Marshal(v.Str)
}

// UnmarshalJSON accepts a JSON number or string. Booleans map to 0/1 so
// toggles coming from a UI still land in numeric fields.
func (v *Value) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return fmt.Errorf("params: empty value")
	}
	switch data[0] {
	case '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*v = Text(s)
	case 't', 'f':
		var b bool
		if err := json.Unmarshal(data, &b); err != nil {
			return err
		}
		n := 0.0
		if b {
			n = 1
		}
		*v = Number(n)
	case 'n':
		*v = Number(nan())
	default:
		var n float64
		if err := json.Unmarshal(data, &n); err != nil {
			return fmt.Errorf("params: value %s: %w", data, err)
		}
		*v = Number(n)
	}
	return nil
}
