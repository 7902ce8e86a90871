//go:build !ebiten

package ui

import "planetsynth/internal/surface"

// Overlay is a no-op placeholder used when the ebiten build tag is absent.
type Overlay struct{}

// NewOverlay constructs a stub overlay.
func NewOverlay(float64) *Overlay { return &Overlay{} }

// SetField is a no-op in headless builds.
func (o *Overlay) SetField(*surface.Field) {}

// SetScale is a no-op in headless builds.
func (o *Overlay) SetScale(float64) {}

// Active reports no layers in headless builds.
func (o *Overlay) Active() []Layer { return nil }

// Update is a no-op in headless builds.
func (o *Overlay) Update() {}

// Draw is a no-op placeholder.
func (o *Overlay) Draw(any, float64, float64) {}
