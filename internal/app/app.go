//go:build ebiten

package app

import (
	"context"
	"fmt"
	"image"
	"log"
	"math"
	"sync"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"planetsynth/internal/core"
	"planetsynth/internal/render"
	"planetsynth/internal/surface"
	"planetsynth/internal/ui"
	"planetsynth/pkg/params"
)

// Game adapts the planet editor to the ebiten.Game interface.
type Game struct {
	cfg    *Config
	editor *surface.Editor

	mapPainter   *render.Painter
	globePainter *render.Painter
	overlay      *ui.Overlay
	hud          *ui.HUD
	step         *core.FixedStep

	view      render.View
	showGlobe bool
	paused    bool
	clouds    bool
	spin      float64
	presets   []string
	presetIdx int

	cancel context.CancelFunc

	mu         sync.Mutex
	field      *surface.Field
	fieldDirty bool
	globe      *image.RGBA
	globeBusy  bool
}

// New constructs a Game and starts the background surface evaluation.
func New(cfg *Config, editor *surface.Editor) *Game {
	view, err := render.ParseView(cfg.View)
	if err != nil {
		log.Printf("app: %v; using color view", err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	g := &Game{
		cfg:          cfg,
		editor:       editor,
		mapPainter:   render.NewPainter(cfg.Width, cfg.Height),
		globePainter: render.NewPainter(globeSize(cfg), globeSize(cfg)),
		overlay:      ui.NewOverlay(float64(cfg.Scale)),
		hud:          ui.NewHUD(editor, cfg.HUDWidth),
		step:         core.NewFixedStep(cfg.TPS),
		view:         view,
		showGlobe:    true,
		clouds:       true,
		presets:      params.PresetNames(),
		cancel:       cancel,
	}
	go func() {
		_ = surface.Follow(ctx, editor, cfg.Width, cfg.Height, cfg.Workers, g.setField)
	}()
	return g
}

func globeSize(cfg *Config) int { return 2 * cfg.Height }

// Close stops the background evaluation.
func (g *Game) Close() { g.cancel() }

func (g *Game) setField(f *surface.Field) {
	g.mu.Lock()
	g.field = f
	g.fieldDirty = true
	g.mu.Unlock()
}

// Update handles per-frame input and advances the globe spin.
func (g *Game) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyQ) || inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		g.Close()
		return ebiten.Termination
	}
	if inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		g.paused = !g.paused
		g.step.Reset()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyTab) {
		g.showGlobe = !g.showGlobe
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyV) {
		g.view = g.view.Next()
		g.markDirty()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyC) {
		g.clouds = !g.clouds
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		g.editor.Reseed()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyBackspace) {
		g.editor.Reset()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyP) && len(g.presets) > 0 {
		g.presetIdx = (g.presetIdx + 1) % len(g.presets)
		g.editor.ApplyPreset(g.presets[g.presetIdx])
	}

	if !g.showGlobe {
		g.overlay.Update()
	}
	g.hud.SetStatus(g.status())
	g.hud.Update(g.mapWidth())

	if g.step.ShouldStep() && !g.paused {
		p := g.editor.Planet()
		g.spin = math.Mod(g.spin+g.cfg.Spin*p.RotationSpeed*g.step.Step().Seconds(), 2*math.Pi)
	}
	if g.showGlobe {
		g.renderGlobe()
	}
	return nil
}

func (g *Game) markDirty() {
	g.mu.Lock()
	g.fieldDirty = true
	g.mu.Unlock()
}

func (g *Game) status() string {
	mode := "map " + g.view.String()
	if g.showGlobe {
		mode = "globe"
	}
	return fmt.Sprintf("gen %d  %s", g.editor.Generation(), mode)
}

// renderGlobe starts one background globe render when none is in flight.
func (g *Game) renderGlobe() {
	g.mu.Lock()
	if g.globeBusy {
		g.mu.Unlock()
		return
	}
	g.globeBusy = true
	g.mu.Unlock()

	p := g.editor.Planet()
	cam := render.DefaultCamera()
	cam.Spin = g.spin
	opts := render.GlobeOptions{Clouds: g.clouds, Atmosphere: true, Aurora: true, Workers: g.cfg.Workers}
	size := globeSize(g.cfg)
	go func() {
		img, err := render.Globe(context.Background(), p, size, cam, opts)
		g.mu.Lock()
		defer g.mu.Unlock()
		g.globeBusy = false
		if err != nil {
			log.Printf("app: globe render: %v", err)
			return
		}
		g.globe = img
	}()
}

// Draw renders the globe or the map, then the HUD.
func (g *Game) Draw(screen *ebiten.Image) {
	g.mu.Lock()
	field, dirty, globe := g.field, g.fieldDirty, g.globe
	g.fieldDirty = false
	g.globe = nil
	g.mu.Unlock()

	if field != nil && dirty {
		g.mapPainter.Upload(render.MapImage(field, g.view, render.MapOptions{Hillshade: 1, Clouds: g.view == render.ViewColor && g.clouds}))
		g.overlay.SetField(field)
	}
	if globe != nil {
		g.globePainter.Upload(globe)
	}

	if g.showGlobe {
		gs := float64(g.cfg.Height*g.cfg.Scale) / float64(globeSize(g.cfg))
		x := (float64(g.mapWidth()) - float64(g.cfg.Height*g.cfg.Scale)) / 2
		g.globePainter.Draw(screen, x, 0, gs)
	} else {
		g.mapPainter.Draw(screen, 0, 0, float64(g.cfg.Scale))
		g.overlay.Draw(screen, 0, 0)
	}
	g.hud.Draw(screen, g.mapWidth(), g.cfg.Height*g.cfg.Scale)
}

func (g *Game) mapWidth() int { return g.cfg.Width * g.cfg.Scale }

// Layout returns the logical screen size.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.mapWidth() + g.cfg.HUDWidth, g.cfg.Height * g.cfg.Scale
}
