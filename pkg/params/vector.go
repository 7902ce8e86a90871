package params

import (
	"math"
	"sort"
	"strconv"
	"strings"
)

// Vector is a flat parameter mapping. Keys outside the schema are allowed and
// carried through every operation untouched.
type Vector map[string]Value

// Clone returns a shallow copy; Values are plain data so this is a full copy.
func (v Vector) Clone() Vector {
	out := make(Vector, len(v))
	for k, val := range v {
		out[k] = val
	}
	return out
}

// Set stores a number under key and returns v for chaining.
func (v Vector) Set(key string, n float64) Vector {
	v[key] = Number(n)
	return v
}

// SetText stores a color or free-text string under key and returns v.
func (v Vector) SetText(key, s string) Vector {
	v[key] = Text(s)
	return v
}

// Float reads a numeric parameter. Missing keys and wrong-kind values fall
// back to the schema default; keys outside the schema fall back to 0.
func (v Vector) Float(key string) float64 {
	if val, ok := v[key]; ok && val.Kind == KindNumber && !math.IsNaN(val.Num) {
		return val.Num
	}
	if s, ok := Lookup(key); ok {
		return s.Default
	}
	return 0
}

// Color reads a color parameter. Missing keys fall back to the schema
// default; malformed strings fall back to FallbackColor.
func (v Vector) Color(key string) RGB {
	val, ok := v[key]
	if !ok || val.Kind != KindString {
		if s, ok := Lookup(key); ok && s.Kind == KindString {
			return MustHex(s.Color)
		}
		return FallbackColor
	}
	c, ok := ParseHex(val.Str)
	if !ok {
		return FallbackColor
	}
	return c
}

// Text reads a string parameter, returning "" when absent or numeric.
func (v Vector) Text(key string) string {
	if val, ok := v[key]; ok && val.Kind == KindString {
		return val.Str
	}
	return ""
}

// Keys returns the keys in sorted order.
func (v Vector) Keys() []string {
	keys := make([]string, 0, len(v))
	for k := range v {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Equal reports whether both vectors hold the same keys and values. NaN
// numbers compare equal to each other.
func (v Vector) Equal(o Vector) bool {
	if len(v) != len(o) {
		return false
	}
	for k, a := range v {
		b, ok := o[k]
		if !ok || a.Kind != b.Kind {
			return false
		}
		if a.Kind == KindString {
			if a.Str != b.Str {
				return false
			}
			continue
		}
		if a.Num != b.Num && !(math.IsNaN(a.Num) && math.IsNaN(b.Num)) {
			return false
		}
	}
	return true
}

// FromMap builds a partial vector from flag-style key/value strings. Values
// that parse as numbers become numbers unless the key is a color; everything
// else is kept as text.
func FromMap(cfg map[string]string) Vector {
	out := Vector{}
	for k, raw := range cfg {
		k = strings.TrimSpace(k)
		if k == "" {
			continue
		}
		raw = strings.TrimSpace(raw)
		if s, ok := Lookup(k); ok && s.Kind == KindString {
			out[k] = Text(raw)
			continue
		}
		if n, err := strconv.ParseFloat(raw, 64); err == nil {
			out[k] = Number(n)
			continue
		}
		out[k] = Text(raw)
	}
	return out
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

func nan() float64 { return math.NaN() }
