package ui

import (
	"image/color"
	"math"

	"planetsynth/internal/core"
	"planetsynth/internal/surface"
	"planetsynth/pkg/biome"
)

// Layer identifies one debug overlay on the map view.
type Layer int

const (
	LayerWater Layer = iota
	LayerEmission
	LayerClouds
	LayerElevation
	LayerSlope
	layerCount
)

var layerNames = [...]string{"water", "emission", "clouds", "elevation", "slope"}

func (l Layer) String() string {
	if l >= 0 && l < layerCount {
		return layerNames[l]
	}
	return "unknown"
}

var (
	waterTint    = color.RGBA{R: 64, G: 164, B: 223, A: 0}
	emissionTint = color.RGBA{R: 255, G: 120, B: 40, A: 0}
	cloudTint    = color.RGBA{R: 235, G: 235, B: 245, A: 0}
)

type arrowSample struct {
	x, y   int
	sx, sy float64
}

// waterDepthMask is 0 on land and rises to 1 at DeepWaterDepth below the
// water line.
func waterDepthMask(f *surface.Field) []float64 {
	wl := f.Planet.WaterLevel
	cells := f.Elevation.Cells()
	out := make([]float64, len(cells))
	for i, e := range cells {
		if e >= wl {
			continue
		}
		out[i] = 0.2 + 0.8*clamp01((wl-e)/biome.DeepWaterDepth)
	}
	return out
}

// fillMaskRGBA tints buf by mask intensity. Zero cells stay transparent.
func fillMaskRGBA(buf []byte, mask []float64, tint color.RGBA) {
	const (
		maxAlpha      = 140.0
		glowBase      = 0.35
		glowRange     = 0.65
		intensityBias = 0.75
	)

	for i, v := range mask {
		base := i * 4
		intensity := clamp01(v)
		if intensity == 0 {
			buf[base+0] = 0
			buf[base+1] = 0
			buf[base+2] = 0
			buf[base+3] = 0
			continue
		}

		alpha := uint8(math.Round(maxAlpha * math.Pow(intensity, intensityBias)))
		glow := glowBase + glowRange*math.Sqrt(intensity)

		buf[base+0] = scaleColorComponent(tint.R, glow)
		buf[base+1] = scaleColorComponent(tint.G, glow)
		buf[base+2] = scaleColorComponent(tint.B, glow)
		buf[base+3] = alpha
	}
}

// fillElevationOverlay colors heights from deep blue to pale peaks. Steep
// cells are drawn more opaque.
func fillElevationOverlay(buf []byte, g *core.Grid[float64]) {
	cells := g.Cells()
	if len(cells) == 0 {
		return
	}
	minVal, maxVal := cells[0], cells[0]
	for _, v := range cells {
		minVal = math.Min(minVal, v)
		maxVal = math.Max(maxVal, v)
	}
	rangeVal := maxVal - minVal
	if rangeVal == 0 {
		rangeVal = 1
	}

	for y := 0; y < g.H; y++ {
		for x := 0; x < g.W; x++ {
			idx := g.Index(x, y)
			base := idx * 4
			here := cells[idx]
			col := elevationColor((here - minVal) / rangeVal)

			maxDiff := 0.0
			for _, d := range [4][2]int{{-1, 0}, {1, 0}, {0, -1}, {0, 1}} {
				nx, ny := g.Sphere(x+d[0], y+d[1])
				maxDiff = math.Max(maxDiff, math.Abs(here-g.At(nx, ny)))
			}
			alpha := float64(col.A) * (0.55 + 0.45*clamp01(maxDiff*8/rangeVal))

			buf[base+0] = col.R
			buf[base+1] = col.G
			buf[base+2] = col.B
			buf[base+3] = uint8(math.Round(clamp(alpha, 0, 255)))
		}
	}
}

// downhill returns the direction of steepest descent at (x, y) in cells. It
// wraps across the date line and clamps at the poles.
func downhill(g *core.Grid[float64], x, y int) (float64, float64) {
	ex, ey := g.Sphere(x+1, y)
	wx, wy := g.Sphere(x-1, y)
	sx, sy := g.Sphere(x, y+1)
	nx, ny := g.Sphere(x, y-1)
	gx := (g.At(ex, ey) - g.At(wx, wy)) / 2
	gy := (g.At(sx, sy) - g.At(nx, ny)) / 2
	return -gx, -gy
}

// arrowSamples spreads roughly a few hundred sample points over the raster
// and returns them with the pixel spacing between neighbours.
func arrowSamples(size core.Size, scale float64) ([]arrowSample, float64) {
	if size.W <= 0 || size.H <= 0 {
		return nil, 0
	}
	if scale <= 0 {
		scale = 1
	}
	const (
		targetSamples = 360.0
		minSpacing    = 6
		maxSpacing    = 20
	)

	spacing := int(math.Sqrt(float64(size.Area()) / targetSamples))
	if spacing < minSpacing {
		spacing = minSpacing
	}
	if spacing > maxSpacing {
		spacing = maxSpacing
	}

	countX := (size.W + spacing - 1) / spacing
	countY := (size.H + spacing - 1) / spacing
	startX := max(0, (size.W-1-(countX-1)*spacing)/2)
	startY := max(0, (size.H-1-(countY-1)*spacing)/2)

	out := make([]arrowSample, 0, countX*countY)
	for yi := 0; yi < countY; yi++ {
		cy := min(startY+yi*spacing, size.H-1)
		for xi := 0; xi < countX; xi++ {
			cx := min(startX+xi*spacing, size.W-1)
			out = append(out, arrowSample{
				x:  cx,
				y:  cy,
				sx: (float64(cx) + 0.5) * scale,
				sy: (float64(cy) + 0.5) * scale,
			})
		}
	}
	return out, float64(spacing) * scale
}

func interpolateColor(t float64) color.RGBA {
	t = clamp01(t)
	r := uint8(math.Round(80 + 70*t))
	g := uint8(math.Round(170 + 70*t))
	b := uint8(math.Round(230 + 20*t))
	a := uint8(math.Round(150 + 90*t))
	return color.RGBA{R: r, G: g, B: b, A: a}
}

func clamp01(v float64) float64 {
	return clamp(v, 0, 1)
}

func scaleColorComponent(value uint8, factor float64) uint8 {
	return uint8(clamp(math.Round(float64(value)*factor), 0, 255))
}

func elevationColor(t float64) color.RGBA {
	t = clamp01(t)
	stops := []struct {
		t   float64
		col color.RGBA
	}{
		{0.0, color.RGBA{R: 40, G: 60, B: 120, A: 150}},
		{0.25, color.RGBA{R: 70, G: 105, B: 160, A: 165}},
		{0.5, color.RGBA{R: 90, G: 150, B: 100, A: 185}},
		{0.75, color.RGBA{R: 190, G: 160, B: 80, A: 205}},
		{1.0, color.RGBA{R: 240, G: 235, B: 215, A: 215}},
	}
	for i := 1; i < len(stops); i++ {
		curr := stops[i]
		if t <= curr.t {
			prev := stops[i-1]
			span := curr.t - prev.t
			var local float64
			if span > 0 {
				local = (t - prev.t) / span
			}
			return lerpRGBA(prev.col, curr.col, local)
		}
	}
	return stops[len(stops)-1].col
}

func lerpRGBA(a, b color.RGBA, t float64) color.RGBA {
	t = clamp01(t)
	return color.RGBA{
		R: lerpComponent(a.R, b.R, t),
		G: lerpComponent(a.G, b.G, t),
		B: lerpComponent(a.B, b.B, t),
		A: lerpComponent(a.A, b.A, t),
	}
}

func lerpComponent(a, b uint8, t float64) uint8 {
	return uint8(math.Round(float64(a) + (float64(b)-float64(a))*t))
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
