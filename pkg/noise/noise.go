// Package noise provides the seedable 3D scalar fields the terrain and biome
// passes are built from.
//
// Both fields use fixed permutation tables; the planet seed enters as a
// translation of the sampled coordinate, so distinct seeds look at distant,
// uncorrelated regions of the same field. The tables are read-only after
// package initialization and the functions are safe for concurrent use.
package noise

import (
	"math"

	"github.com/aquilax/go-perlin"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/ojrac/opensimplex-go"
)

const (
	primaryTableSeed = 0x9e3779b9
	detailTableSeed  = 0x2545f491

	// detailGain stretches the Perlin octave sum so that the thresholds used
	// by craters, lava and crystals are reachable; the result is clamped.
	detailGain = 1.6
)

var (
	// Translation directions with irrational ratios keep seed offsets from
	// lining up with the lattice.
	primaryDir = mgl64.Vec3{1, math.Phi, 1 + math.Sqrt2}
	detailDir  = mgl64.Vec3{math.Sqrt(3), 1, math.E}
	detailBias = mgl64.Vec3{17.31, -41.07, 5.93}

	primary = opensimplex.New(primaryTableSeed)
	detail  = perlin.NewPerlin(2, 2, 3, detailTableSeed)
)

// Sample evaluates the primary OpenSimplex field at position translated by
// seedOffset. The result lies in [-1, 1] and is zero-mean.
func Sample(position mgl64.Vec3, seedOffset float64) float64 {
	p := position.Add(primaryDir.Mul(seedOffset))
	return clamp(primary.Eval3(p[0], p[1], p[2]))
}

// Detail evaluates a secondary Perlin field, independent from Sample, used
// for high-frequency features such as craters, lava channels and clouds. The
// result lies in [-1, 1].
func Detail(position mgl64.Vec3, seedOffset float64) float64 {
	p := position.Add(detailDir.Mul(seedOffset)).Add(detailBias)
	return clamp(detail.Noise3D(p[0], p[1], p[2]) * detailGain)
}

func clamp(v float64) float64 {
	if v < -1 {
		return -1
	}
	if v > 1 {
		return 1
	}
	if v != v {
		return 0
	}
	return v
}
