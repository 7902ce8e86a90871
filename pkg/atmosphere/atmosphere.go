// Package atmosphere computes the view-dependent rim glow and the cloud layer.
// Neither depends on terrain or biome state.
package atmosphere

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"planetsynth/pkg/noise"
	"planetsynth/pkg/params"
)

const (
	// ShellRadius is the radius of the glow shell relative to the planet.
	ShellRadius = 1.15
	// Falloff is the rim exponent applied to opacity.
	Falloff = 2.0

	cloudFreq  = 2.5
	cloudShift = 811.9
	cloudSoft  = 0.15
)

// warmShift is added to the tint at grazing angles.
var warmShift = params.RGB{R: 0.1, G: 0.05, B: 0}

// Glow is the atmosphere contribution at one pixel.
type Glow struct {
	Color   params.RGB
	Opacity float64
}

// Rim returns 1 - max(0, dot(view, normal)) for normalized inputs. A
// zero-length vector counts as perpendicular.
func Rim(view, normal mgl64.Vec3) float64 {
	lv, ln := view.Len(), normal.Len()
	d := 0.0
	if lv > 0 && ln > 0 {
		d = view.Dot(normal) / (lv * ln)
	}
	return 1 - math.Max(0, d)
}

// GlowAt computes the rim glow. The color is not clamped; renderers clamp
// after compositing.
func GlowAt(view, normal mgl64.Vec3, p params.Planet) Glow {
	rim := Rim(view, normal)
	return Glow{
		Color:   p.AtmosphereTint.Add(warmShift.Scale(rim * rim * rim)),
		Opacity: math.Pow(rim, Falloff) * p.AtmosphereDensity,
	}
}

// Clouds returns the cloud opacity in [0, 1] at a point on the unit sphere.
// Coverage 0 gives no clouds; coverage 1 gives a closed deck.
func Clouds(position mgl64.Vec3, p params.Planet) float64 {
	if p.CloudCoverage <= 0 {
		return 0
	}
	l := position.Len()
	if l == 0 {
		return 0
	}
	n := position.Mul(1 / l)
	d := noise.Detail(n.Mul(cloudFreq), p.Seed+cloudShift)
	thr := 1 - (2+cloudSoft)*p.CloudCoverage
	t := (d - thr) / cloudSoft
	if t <= 0 {
		return 0
	}
	if t >= 1 {
		return 1
	}
	return t * t * (3 - 2*t)
}
