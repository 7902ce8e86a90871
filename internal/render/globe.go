package render

import (
	"context"
	"fmt"
	"image"
	"math"
	"runtime"

	"github.com/go-gl/mathgl/mgl64"
	"golang.org/x/sync/errgroup"

	"planetsynth/pkg/atmosphere"
	"planetsynth/pkg/biome"
	"planetsynth/pkg/params"
	"planetsynth/pkg/terrain"
)

// Camera orients the planet for an orthographic globe view. Angles are in
// radians; Spin turns the planet about its own axis.
type Camera struct {
	Spin  float64
	Pitch float64
	Light mgl64.Vec3
}

// DefaultCamera looks at the equator with a light from the upper left.
func DefaultCamera() Camera {
	return Camera{Pitch: 0.25, Light: mgl64.Vec3{-0.6, 0.5, 0.65}.Normalize()}
}

// GlobeOptions toggles the optional layers.
type GlobeOptions struct {
	Clouds     bool
	Atmosphere bool
	Aurora     bool
	Workers    int
}

const (
	ambient   = 0.06
	frameSize = atmosphere.ShellRadius * 1.02
	auroraLat = 0.82
)

var (
	space      = params.RGB{R: 0.01, G: 0.01, B: 0.03}
	white      = params.RGB{R: 1, G: 1, B: 1}
	auroraTint = params.RGB{R: 0.2, G: 1, B: 0.55}
)

// Globe renders a size×size orthographic view of p. The planet has unit
// radius and the glow shell extends to atmosphere.ShellRadius.
func Globe(ctx context.Context, p params.Planet, size int, cam Camera, opts GlobeOptions) (*image.RGBA, error) {
	if size <= 0 {
		return nil, fmt.Errorf("render: invalid globe size %d", size)
	}
	workers := opts.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	// Screen space to planet space: undo pitch, then spin, then axial tilt.
	tilt := p.AxialTilt * math.Pi / 180
	toPlanet := mgl64.Rotate3DZ(-tilt).Mul3(mgl64.Rotate3DY(-cam.Spin)).Mul3(mgl64.Rotate3DX(-cam.Pitch))
	light := cam.Light
	if light.Len() == 0 {
		light = DefaultCamera().Light
	}
	light = light.Normalize()

	img := image.NewRGBA(image.Rect(0, 0, size, size))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for y := 0; y < size; y++ {
		y := y
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			row := img.Pix[y*img.Stride : y*img.Stride+4*size]
			for x := 0; x < size; x++ {
				u := (2*(float64(x)+0.5)/float64(size) - 1) * frameSize
				v := (1 - 2*(float64(y)+0.5)/float64(size)) * frameSize
				putRGB(row, x, globePixel(u, v, p, toPlanet, light, opts))
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return img, nil
}

func globePixel(u, v float64, p params.Planet, toPlanet mgl64.Mat3, light mgl64.Vec3, opts GlobeOptions) params.RGB {
	view := mgl64.Vec3{0, 0, 1}
	r2 := u*u + v*v
	c := space

	if r2 <= 1 {
		screen := mgl64.Vec3{u, v, math.Sqrt(1 - r2)}
		pos := toPlanet.Mul3x1(screen)
		c = surfacePixel(screen, pos, p, toPlanet, light, opts)
	}

	if opts.Atmosphere {
		shell := atmosphere.ShellRadius * atmosphere.ShellRadius
		if r2 <= shell {
			normal := mgl64.Vec3{u, v, math.Sqrt(shell - r2)}
			glow := atmosphere.GlowAt(view, normal, p)
			lit := math.Max(ambient, normal.Normalize().Dot(light)*0.5+0.5)
			c = c.Mix(glow.Color.Scale(lit), glow.Opacity)
		}
	}
	return c.Saturate(p.Saturation)
}

func surfacePixel(screen, pos mgl64.Vec3, p params.Planet, toPlanet mgl64.Mat3, light mgl64.Vec3, opts GlobeOptions) params.RGB {
	e := terrain.Elevation(pos, p)
	m := biome.Shade(pos, e, p)
	w := biome.Weights(pos, e, p)

	// Lighting runs in screen space, so the bumped planet-space normal is
	// rotated back with the transpose.
	n := screen
	if !w.Water() {
		n = toPlanet.Transpose().Mul3x1(terrain.Normal(pos, p))
	}
	diffuse := math.Max(0, n.Dot(light))
	half := light.Add(mgl64.Vec3{0, 0, 1}).Normalize()
	shine := 8 + 120*(1-m.Roughness)
	spec := math.Pow(math.Max(0, n.Dot(half)), shine) * (1 - m.Roughness) * 0.6

	lit := m.Color.Scale(ambient + diffuse).Add(white.Scale(spec * diffuse))
	// Low realism flattens the lighting toward the albedo.
	c := m.Color.Mix(lit, 0.3+0.7*p.Realism)
	c = c.Add(m.EmissionColor.Scale(m.Emission))

	if opts.Clouds {
		if cl := atmosphere.Clouds(pos, p); cl > 0 {
			c = c.Mix(white.Scale(ambient+diffuse), cl*0.9)
		}
	}
	if opts.Aurora && p.Magnetic > 0 {
		lat := math.Abs(pos[1])
		band := smooth(auroraLat-0.06, auroraLat, lat) * (1 - smooth(auroraLat+0.06, auroraLat+0.12, lat))
		night := 1 - math.Min(1, diffuse*4)
		c = c.Add(auroraTint.Scale(band * night * p.Magnetic * 0.6))
	}
	return c
}

func smooth(e0, e1, x float64) float64 {
	t := math.Max(0, math.Min(1, (x-e0)/(e1-e0)))
	return t * t * (3 - 2*t)
}
