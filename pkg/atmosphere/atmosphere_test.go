package atmosphere

import (
	"math"
	"math/rand"
	"testing"

	"github.com/go-gl/mathgl/mgl64"

	"planetsynth/pkg/params"
)

func TestGlowFacingAndGrazing(t *testing.T) {
	p := params.Planet{AtmosphereDensity: 0.8, AtmosphereTint: params.RGB{R: 0.5, G: 0.8, B: 0.9}}

	facing := GlowAt(mgl64.Vec3{0, 0, 1}, mgl64.Vec3{0, 0, 1}, p)
	if facing.Opacity != 0 {
		t.Fatalf("facing opacity = %f, want 0", facing.Opacity)
	}
	if facing.Color != p.AtmosphereTint {
		t.Fatalf("facing color = %+v, want plain tint", facing.Color)
	}

	grazing := GlowAt(mgl64.Vec3{0, 0, 1}, mgl64.Vec3{1, 0, 0}, p)
	if math.Abs(grazing.Opacity-0.8) > 1e-12 {
		t.Fatalf("grazing opacity = %f, want density", grazing.Opacity)
	}
	want := params.RGB{R: 0.6, G: 0.85, B: 0.9}
	if math.Abs(grazing.Color.R-want.R) > 1e-12 || math.Abs(grazing.Color.G-want.G) > 1e-12 || grazing.Color.B != want.B {
		t.Fatalf("grazing color = %+v, want %+v", grazing.Color, want)
	}

	behind := GlowAt(mgl64.Vec3{0, 0, 1}, mgl64.Vec3{0, 0, -1}, p)
	if behind != grazing {
		t.Fatalf("back-facing glow %+v should match grazing %+v", behind, grazing)
	}
}

func TestGlowNormalizesInputs(t *testing.T) {
	p := params.Planet{AtmosphereDensity: 1}
	a := GlowAt(mgl64.Vec3{0, 0, 5}, mgl64.Vec3{0, 3, 3}, p)
	b := GlowAt(mgl64.Vec3{0, 0, 1}, mgl64.Vec3{0, 1, 1}.Normalize(), p)
	if math.Abs(a.Opacity-b.Opacity) > 1e-12 {
		t.Fatalf("unnormalized inputs changed opacity: %f vs %f", a.Opacity, b.Opacity)
	}
	if z := GlowAt(mgl64.Vec3{}, mgl64.Vec3{0, 1, 0}, p); z.Opacity != 1 {
		t.Fatalf("zero view vector opacity = %f, want 1", z.Opacity)
	}
}

func TestGlowMonotoneInRim(t *testing.T) {
	p := params.Planet{AtmosphereDensity: 0.5}
	view := mgl64.Vec3{0, 0, 1}
	prev := -1.0
	for i := 0; i <= 90; i++ {
		a := float64(i) * math.Pi / 180
		g := GlowAt(view, mgl64.Vec3{math.Sin(a), 0, math.Cos(a)}, p)
		if g.Opacity < prev-1e-12 {
			t.Fatalf("opacity decreased at %d degrees", i)
		}
		if g.Opacity < 0 || g.Opacity > p.AtmosphereDensity+1e-12 {
			t.Fatalf("opacity %f outside [0,density]", g.Opacity)
		}
		prev = g.Opacity
	}
}

func TestCloudsCoverage(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	pts := make([]mgl64.Vec3, 3000)
	for i := range pts {
		pts[i] = mgl64.Vec3{rng.NormFloat64(), rng.NormFloat64(), rng.NormFloat64()}.Normalize()
	}
	mean := func(cov float64) float64 {
		p := params.Planet{CloudCoverage: cov, Seed: 3}
		var sum float64
		for _, pos := range pts {
			c := Clouds(pos, p)
			if c < 0 || c > 1 {
				t.Fatalf("cloud opacity %f outside [0,1]", c)
			}
			sum += c
		}
		return sum / float64(len(pts))
	}
	if m := mean(0); m != 0 {
		t.Fatalf("coverage 0 produced clouds: %f", m)
	}
	low, high := mean(0.3), mean(0.8)
	if high <= low {
		t.Fatalf("more coverage gave fewer clouds: %f vs %f", high, low)
	}
	if full := mean(1); full < 1-1e-12 {
		t.Fatalf("full coverage mean %f, want a closed deck", full)
	}
}
