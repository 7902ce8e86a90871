package params

import "planetsynth/pkg/core"

// Defaults returns a vector holding every schema default with a freshly drawn
// seed. Successive calls differ only in the seed.
func Defaults() Vector {
	return DefaultsWith(nil)
}

// DefaultsWith is Defaults with the seed drawn from rng. A nil rng uses the
// global source.
func DefaultsWith(rng *core.RNG) Vector {
	v := make(Vector, len(schema))
	for _, s := range schema {
		if s.Kind == KindString {
			v[s.Key] = Text(s.Color)
			continue
		}
		v[s.Key] = Number(s.Default)
	}
	v[KeySeed] = Number(rng.Seed())
	return v
}

// Validate returns a copy of v with every numeric schema field clamped into
// its range. Schema fields holding the wrong kind of value are replaced by
// their default. Fields outside the schema pass through unchanged. Validate
// never fails and Validate(Validate(v)) equals Validate(v).
func Validate(v Vector) Vector {
	out := v.Clone()
	for k, val := range out {
		s, ok := Lookup(k)
		if !ok {
			continue
		}
		if s.Kind == KindString {
			if val.Kind != KindString {
				out[k] = Text(s.Color)
			}
			continue
		}
		if val.Kind != KindNumber {
			out[k] = Number(s.Default)
			continue
		}
		out[k] = Number(s.Clamp(val.Num))
	}
	return out
}

// Merge overlays overrides onto base and validates the result. Neither input
// is modified.
func Merge(base, overrides Vector) Vector {
	out := base.Clone()
	for k, val := range overrides {
		out[k] = val
	}
	return Validate(out)
}
