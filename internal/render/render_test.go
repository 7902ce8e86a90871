package render

import (
	"context"
	"errors"
	"testing"

	"planetsynth/internal/surface"
	"planetsynth/pkg/biome"
	"planetsynth/pkg/core"
	"planetsynth/pkg/params"
)

func field(t *testing.T, over params.Vector, w, h int) *surface.Field {
	t.Helper()
	p := params.Resolve(params.Merge(params.DefaultsWith(core.NewRNG(2)), over))
	f, err := surface.Evaluate(context.Background(), p, w, h, 2)
	if err != nil {
		t.Fatalf("evaluate: %v", err)
	}
	return f
}

func TestParseView(t *testing.T) {
	for _, v := range []View{ViewColor, ViewElevation, ViewEmission, ViewBiome} {
		got, err := ParseView(" " + v.String() + " ")
		if err != nil || got != v {
			t.Fatalf("ParseView(%q) = %v, %v", v.String(), got, err)
		}
	}
	if _, err := ParseView("sepia"); err == nil {
		t.Fatal("unknown view accepted")
	}
	if ViewBiome.Next() != ViewColor {
		t.Fatal("Next should wrap")
	}
}

func TestBiomeViewUsesPalette(t *testing.T) {
	f := field(t, nil, 16, 8)
	img := MapImage(f, ViewBiome, MapOptions{})
	for y := 0; y < 8; y++ {
		for x := 0; x < 16; x++ {
			want := BiomePalette[f.Band.At(x, y)]
			if got := img.RGBAAt(x, y); got != want {
				t.Fatalf("pixel (%d,%d) = %v, want %v", x, y, got, want)
			}
		}
	}
}

func TestPaletteClampsAndClears(t *testing.T) {
	buf := make([]byte, 8)
	fillPaletteRGBA(buf, []biome.Band{biome.BandIce, biome.Band(200)}, BiomePalette[:2])
	if buf[0] != BiomePalette[1].R || buf[4] != BiomePalette[1].R {
		t.Fatalf("out-of-range bands should use the last palette entry: %v", buf)
	}
	fillPaletteRGBA(buf, []biome.Band{0, 1}, nil)
	for _, b := range buf {
		if b != 0 {
			t.Fatalf("empty palette should clear: %v", buf)
		}
	}
}

func TestColorViewIsOpaque(t *testing.T) {
	f := field(t, params.Vector{params.KeyLavaFlows: params.Number(1)}, 24, 12)
	for _, opts := range []MapOptions{{}, {Hillshade: 1, Clouds: true}} {
		img := MapImage(f, ViewColor, opts)
		for i := 3; i < len(img.Pix); i += 4 {
			if img.Pix[i] != 0xff {
				t.Fatalf("alpha at byte %d = %d", i, img.Pix[i])
			}
		}
	}
}

func TestElevationViewOrdersHeights(t *testing.T) {
	f := field(t, params.Vector{params.KeyWaterLevel: params.Number(0)}, 32, 16)
	img := MapImage(f, ViewElevation, MapOptions{})
	lo, hi := 0, 0
	cells := f.Elevation.Cells()
	for i, e := range cells {
		if e < cells[lo] {
			lo = i
		}
		if e > cells[hi] {
			hi = i
		}
	}
	if img.Pix[lo*4] >= img.Pix[hi*4] {
		t.Fatalf("lowest cell brighter than highest: %d vs %d", img.Pix[lo*4], img.Pix[hi*4])
	}
}

func TestUpscale(t *testing.T) {
	f := field(t, nil, 8, 4)
	img := MapImage(f, ViewBiome, MapOptions{})
	big := Upscale(img, 3, false)
	if big.Bounds().Dx() != 24 || big.Bounds().Dy() != 12 {
		t.Fatalf("upscaled bounds %v", big.Bounds())
	}
	if big.RGBAAt(4, 4) != img.RGBAAt(1, 1) {
		t.Fatal("nearest-neighbour upscale changed a band color")
	}
	if same := Upscale(img, 1, true); same.Bounds() != img.Bounds() {
		t.Fatalf("factor 1 changed bounds to %v", same.Bounds())
	}
}

func TestGlobe(t *testing.T) {
	p := params.Resolve(params.DefaultsWith(core.NewRNG(4)))
	img, err := Globe(context.Background(), p, 48, DefaultCamera(), GlobeOptions{Clouds: true, Atmosphere: true, Aurora: true, Workers: 3})
	if err != nil {
		t.Fatalf("globe: %v", err)
	}
	if img.Bounds().Dx() != 48 {
		t.Fatalf("bounds %v", img.Bounds())
	}
	corner := img.RGBAAt(0, 0)
	sr, sg, sb := space.Saturate(p.Saturation).RGBA8()
	if corner.R != sr || corner.G != sg || corner.B != sb {
		t.Fatalf("corner %v should be empty space", corner)
	}
	centre := img.RGBAAt(24, 24)
	if centre == corner {
		t.Fatal("centre pixel shows empty space")
	}

	again, _ := Globe(context.Background(), p, 48, DefaultCamera(), GlobeOptions{Clouds: true, Atmosphere: true, Aurora: true, Workers: 1})
	for i := range img.Pix {
		if img.Pix[i] != again.Pix[i] {
			t.Fatal("globe rendering depends on worker count")
		}
	}
}

func TestGlobeCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := Globe(ctx, params.Resolve(params.Defaults()), 16, DefaultCamera(), GlobeOptions{}); !errors.Is(err, context.Canceled) {
		t.Fatalf("err = %v", err)
	}
	if _, err := Globe(context.Background(), params.Resolve(params.Defaults()), 0, DefaultCamera(), GlobeOptions{}); err == nil {
		t.Fatal("zero size accepted")
	}
}
