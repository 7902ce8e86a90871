// Package surface evaluates a whole planet onto an equirectangular raster and
// owns the live, editable parameter vector that drives it.
package surface

import (
	"context"
	"fmt"
	"math"
	"runtime"

	"github.com/go-gl/mathgl/mgl64"
	"golang.org/x/sync/errgroup"

	"planetsynth/internal/core"
	"planetsynth/pkg/atmosphere"
	"planetsynth/pkg/biome"
	"planetsynth/pkg/params"
	"planetsynth/pkg/terrain"
)

// Field is one evaluated surface. Row y covers latitude from +90° at y=0 to
// -90° at the bottom row; column x covers longitude from -180° eastward.
type Field struct {
	Generation uint64
	Planet     params.Planet

	Elevation *core.Grid[float64]
	Color     *core.Grid[params.RGB]
	Emission  *core.Grid[float64]
	Roughness *core.Grid[float64]
	Band      *core.Grid[biome.Band]
	Clouds    *core.Grid[float64]
}

// Size returns the raster dimensions.
func (f *Field) Size() core.Size { return f.Elevation.Size() }

// Position maps the centre of cell (x, y) on a w×h raster to a point on the
// unit sphere. Y is up, so the top row sits near the north pole.
func Position(x, y, w, h int) mgl64.Vec3 {
	lon := (float64(x)+0.5)/float64(w)*2*math.Pi - math.Pi
	lat := math.Pi/2 - (float64(y)+0.5)/float64(h)*math.Pi
	return LatLon(lat, lon)
}

// LatLon converts latitude and longitude in radians to a unit vector.
func LatLon(lat, lon float64) mgl64.Vec3 {
	cl := math.Cos(lat)
	return mgl64.Vec3{cl * math.Cos(lon), math.Sin(lat), cl * math.Sin(lon)}
}

// Latitude returns the latitude in radians of row y.
func Latitude(y, h int) float64 {
	return math.Pi/2 - (float64(y)+0.5)/float64(h)*math.Pi
}

// Evaluate fills a w×h field for p. Rows are spread over at most workers
// goroutines (GOMAXPROCS when workers <= 0). A cancelled context stops the
// pass and returns the context error with a nil field.
func Evaluate(ctx context.Context, p params.Planet, w, h, workers int) (*Field, error) {
	if w <= 0 || h <= 0 {
		return nil, fmt.Errorf("surface: invalid size %dx%d", w, h)
	}
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	f := &Field{
		Planet:    p,
		Elevation: core.NewGrid[float64](w, h),
		Color:     core.NewGrid[params.RGB](w, h),
		Emission:  core.NewGrid[float64](w, h),
		Roughness: core.NewGrid[float64](w, h),
		Band:      core.NewGrid[biome.Band](w, h),
		Clouds:    core.NewGrid[float64](w, h),
	}

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for y := 0; y < h; y++ {
		y := y
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			evaluateRow(f, y, p)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return f, nil
}

func evaluateRow(f *Field, y int, p params.Planet) {
	w, h := f.Elevation.W, f.Elevation.H
	for x := 0; x < w; x++ {
		pos := Position(x, y, w, h)
		e := terrain.Elevation(pos, p)
		m := biome.Shade(pos, e, p)
		i := f.Elevation.Index(x, y)
		f.Elevation.Cells()[i] = e
		f.Color.Cells()[i] = m.Color
		f.Emission.Cells()[i] = m.Emission
		f.Roughness.Cells()[i] = m.Roughness
		f.Band.Cells()[i] = biome.Weights(pos, e, p).Dominant()
		f.Clouds.Cells()[i] = atmosphere.Clouds(pos, p)
	}
}

// Stats summarizes a field. Fractions are area-weighted by cos(latitude) so
// the stretched polar rows do not dominate.
type Stats struct {
	Ocean    float64
	Ice      float64
	Emissive float64
	Cloud    float64
	Bands    map[biome.Band]float64

	MinElevation float64
	MaxElevation float64
	MeanAlbedo   float64
}

// emissiveThreshold marks a cell as visibly glowing.
const emissiveThreshold = 0.5

// Stats computes coverage statistics over the field.
func (f *Field) Stats() Stats {
	w, h := f.Elevation.W, f.Elevation.H
	s := Stats{
		Bands:        make(map[biome.Band]float64, len(biome.Bands())),
		MinElevation: math.Inf(1),
		MaxElevation: math.Inf(-1),
	}
	var total float64
	for y := 0; y < h; y++ {
		wt := math.Cos(Latitude(y, h))
		for x := 0; x < w; x++ {
			i := f.Elevation.Index(x, y)
			band := f.Band.Cells()[i]
			s.Bands[band] += wt
			switch band {
			case biome.BandShallow, biome.BandDeep:
				s.Ocean += wt
			case biome.BandIce:
				s.Ice += wt
			}
			if f.Emission.Cells()[i] > emissiveThreshold {
				s.Emissive += wt
			}
			s.Cloud += wt * f.Clouds.Cells()[i]
			s.MeanAlbedo += wt * f.Color.Cells()[i].Luminance()
			e := f.Elevation.Cells()[i]
			s.MinElevation = math.Min(s.MinElevation, e)
			s.MaxElevation = math.Max(s.MaxElevation, e)
			total += wt
		}
	}
	if total > 0 {
		s.Ocean /= total
		s.Ice /= total
		s.Emissive /= total
		s.Cloud /= total
		s.MeanAlbedo /= total
		for b := range s.Bands {
			s.Bands[b] /= total
		}
	}
	return s
}
