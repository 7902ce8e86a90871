// Package terrain sums octaves of the primary noise field into a height value
// per surface point.
package terrain

import (
	"github.com/go-gl/mathgl/mgl64"

	"planetsynth/pkg/noise"
	"planetsynth/pkg/params"
)

// maxOctaves bounds the loop for raw, unvalidated planets.
const maxOctaves = 32

// Elevation returns the fractal height at position. Layer i samples the
// primary field at frequency noiseScale·lacunarity^i with amplitude
// initialAmplitude·persistence^i; the sum is scaled by fbmStrength. A
// non-positive octave count yields 0. The result is not clamped.
func Elevation(position mgl64.Vec3, p params.Planet) float64 {
	octaves := p.OctaveCount()
	if octaves <= 0 {
		return 0
	}
	if octaves > maxOctaves {
		octaves = maxOctaves
	}
	freq := p.NoiseScale
	amp := p.InitialAmplitude
	var sum float64
	for i := 0; i < octaves; i++ {
		sum += amp * noise.Sample(position.Mul(freq), p.Seed)
		freq *= p.Lacunarity
		amp *= p.Persistence
	}
	return sum * p.Strength
}

// Bound is the largest magnitude Elevation can reach for p: the geometric
// amplitude series times fbmStrength.
func Bound(p params.Planet) float64 {
	octaves := p.OctaveCount()
	if octaves > maxOctaves {
		octaves = maxOctaves
	}
	amp := p.InitialAmplitude
	var sum float64
	for i := 0; i < octaves; i++ {
		sum += amp
		amp *= p.Persistence
	}
	if sum < 0 {
		sum = -sum
	}
	if p.Strength < 0 {
		return -sum * p.Strength
	}
	return sum * p.Strength
}

// Displace pushes the unit-sphere point along its normal by the elevation,
// scaled by the planet size. Renderers use it for silhouettes and relief.
func Displace(position mgl64.Vec3, p params.Planet) mgl64.Vec3 {
	n := unit(position)
	return n.Mul(p.Size * (1 + Elevation(n, p)))
}

// Gradient estimates the elevation gradient at position by central
// differences with step h. It is tangent-agnostic; callers project it onto
// the surface when they need a slope.
func Gradient(position mgl64.Vec3, p params.Planet, h float64) mgl64.Vec3 {
	if h <= 0 {
		h = 1e-3
	}
	dx := mgl64.Vec3{h, 0, 0}
	dy := mgl64.Vec3{0, h, 0}
	dz := mgl64.Vec3{0, 0, h}
	inv := 1 / (2 * h)
	return mgl64.Vec3{
		(Elevation(position.Add(dx), p) - Elevation(position.Sub(dx), p)) * inv,
		(Elevation(position.Add(dy), p) - Elevation(position.Sub(dy), p)) * inv,
		(Elevation(position.Add(dz), p) - Elevation(position.Sub(dz), p)) * inv,
	}
}

// Normal perturbs the sphere normal at position by the tangential part of
// the elevation gradient, giving a bump-mapped shading normal.
func Normal(position mgl64.Vec3, p params.Planet) mgl64.Vec3 {
	n := unit(position)
	g := Gradient(n, p, 1e-3)
	tangential := g.Sub(n.Mul(g.Dot(n)))
	return unit(n.Sub(tangential))
}

func unit(v mgl64.Vec3) mgl64.Vec3 {
	l := v.Len()
	if l == 0 {
		return mgl64.Vec3{0, 1, 0}
	}
	return v.Mul(1 / l)
}
