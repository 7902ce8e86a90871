package render

import (
	"fmt"
	"image/color"
	"math"
	"strings"

	"planetsynth/internal/surface"
	"planetsynth/pkg/biome"
	"planetsynth/pkg/params"
)

// View selects which surface layer a map shows.
type View int

const (
	ViewColor View = iota
	ViewElevation
	ViewEmission
	ViewBiome
	viewCount
)

var viewNames = [...]string{"color", "elevation", "emission", "biome"}

func (v View) String() string {
	if v >= 0 && v < viewCount {
		return viewNames[v]
	}
	return "unknown"
}

// Next cycles to the following view.
func (v View) Next() View { return (v + 1) % viewCount }

// ParseView accepts the names printed by String.
func ParseView(s string) (View, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for i, n := range viewNames {
		if n == s {
			return View(i), nil
		}
	}
	return ViewColor, fmt.Errorf("unknown view %q (want one of %s)", s, strings.Join(viewNames[:], ", "))
}

// BiomePalette colors each band in the biome view.
var BiomePalette = []color.RGBA{
	biome.BandShallow: {R: 0x2e, G: 0x86, B: 0xc1, A: 0xff},
	biome.BandDeep:    {R: 0x1b, G: 0x3a, B: 0x6b, A: 0xff},
	biome.BandSand:    {R: 0xe3, G: 0xc5, B: 0x8a, A: 0xff},
	biome.BandGrass:   {R: 0x4c, G: 0x9a, B: 0x3c, A: 0xff},
	biome.BandRock:    {R: 0x7d, G: 0x6e, B: 0x5d, A: 0xff},
	biome.BandSnow:    {R: 0xf2, G: 0xf2, B: 0xf2, A: 0xff},
	biome.BandIce:     {R: 0xbf, G: 0xe6, B: 0xf5, A: 0xff},
}

// MapOptions tunes the equirectangular map rendering.
type MapOptions struct {
	// Hillshade darkens slopes facing away from a north-west light.
	Hillshade float64
	// Clouds blends the cloud layer over the color view.
	Clouds bool
}

// FillRGBA writes the field into buf (4 bytes per cell, row-major). buf must
// hold at least 4*w*h bytes.
func FillRGBA(buf []byte, f *surface.Field, view View, opts MapOptions) {
	switch view {
	case ViewBiome:
		fillPaletteRGBA(buf, f.Band.Cells(), BiomePalette)
	case ViewElevation:
		fillElevationRGBA(buf, f)
	case ViewEmission:
		fillEmissionRGBA(buf, f)
	default:
		fillColorRGBA(buf, f, opts)
	}
}

func fillColorRGBA(buf []byte, f *surface.Field, opts MapOptions) {
	p := f.Planet
	w, h := f.Elevation.W, f.Elevation.H
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			i := f.Elevation.Index(x, y)
			c := f.Color.Cells()[i]
			if opts.Hillshade > 0 && f.Band.Cells()[i] != biome.BandShallow && f.Band.Cells()[i] != biome.BandDeep {
				c = c.Scale(shade(f, x, y, opts.Hillshade))
			}
			if e := f.Emission.Cells()[i]; e > 0 {
				c = c.Add(p.VolcanoColor.Scale(e))
			}
			if opts.Clouds {
				c = c.Mix(params.RGB{R: 1, G: 1, B: 1}, f.Clouds.Cells()[i])
			}
			putRGB(buf, i, c.Saturate(p.Saturation))
		}
	}
}

// shade is a cheap hillshade from the elevation differences to the east and
// south neighbours. The map wraps in longitude and clamps at the poles.
func shade(f *surface.Field, x, y int, strength float64) float64 {
	g := f.Elevation
	ex, ey := g.Sphere(x+1, y)
	sx, sy := g.Sphere(x, y+1)
	here := g.At(x, y)
	dx := g.At(ex, ey) - here
	dy := g.At(sx, sy) - here
	k := float64(g.W) / 8
	light := 1 + (dx+dy)*k*strength
	return math.Max(0.4, math.Min(1.3, light))
}

func fillElevationRGBA(buf []byte, f *surface.Field) {
	cells := f.Elevation.Cells()
	lo, hi := math.Inf(1), math.Inf(-1)
	for _, e := range cells {
		lo = math.Min(lo, e)
		hi = math.Max(hi, e)
	}
	span := hi - lo
	wl := f.Planet.WaterLevel
	for i, e := range cells {
		t := 0.5
		if span > 0 {
			t = (e - lo) / span
		}
		c := params.RGB{R: t, G: t, B: t}
		if e < wl {
			c = c.Mul(params.RGB{R: 0.55, G: 0.7, B: 1})
		}
		putRGB(buf, i, c)
	}
}

func fillEmissionRGBA(buf []byte, f *surface.Field) {
	vc := f.Planet.VolcanoColor
	for i, e := range f.Emission.Cells() {
		putRGB(buf, i, vc.Scale(e).Add(params.RGB{R: 0.05, G: 0.05, B: 0.08}))
	}
}

func putRGB(buf []byte, i int, c params.RGB) {
	r, g, b := c.RGBA8()
	base := i * 4
	buf[base+0] = r
	buf[base+1] = g
	buf[base+2] = b
	buf[base+3] = 0xff
}

// fillPaletteRGBA converts band values into RGBA pixels using a palette. When
// the palette is empty the buffer is cleared to transparent black.
func fillPaletteRGBA(buf []byte, cells []biome.Band, palette []color.RGBA) {
	if len(palette) == 0 {
		for i := range cells {
			base := i * 4
			buf[base+0] = 0
			buf[base+1] = 0
			buf[base+2] = 0
			buf[base+3] = 0
		}
		return
	}

	last := len(palette) - 1
	for i, c := range cells {
		idx := int(c)
		if idx > last {
			idx = last
		}
		base := i * 4
		col := palette[idx]
		buf[base+0] = col.R
		buf[base+1] = col.G
		buf[base+2] = col.B
		buf[base+3] = col.A
	}
}
