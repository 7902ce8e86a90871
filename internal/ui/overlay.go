//go:build ebiten

package ui

import (
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"planetsynth/internal/core"
	"planetsynth/internal/surface"
)

// Overlay draws optional debugging layers on top of the map view. Keys 1-5
// toggle water depth, emission, clouds, elevation and downhill arrows.
type Overlay struct {
	field *surface.Field
	scale float64
	show  [layerCount]bool

	maskImg *ebiten.Image
	maskBuf []byte
	pixel   *ebiten.Image

	samples     []arrowSample
	sampleSize  core.Size
	sampleScale float64
	sampleSpan  float64
}

var layerKeys = [layerCount]ebiten.Key{
	LayerWater:     ebiten.KeyDigit1,
	LayerEmission:  ebiten.KeyDigit2,
	LayerClouds:    ebiten.KeyDigit3,
	LayerElevation: ebiten.KeyDigit4,
	LayerSlope:     ebiten.KeyDigit5,
}

// NewOverlay constructs an overlay drawn at the given map scale.
func NewOverlay(scale float64) *Overlay {
	o := &Overlay{scale: scale}
	o.pixel = ebiten.NewImage(1, 1)
	o.pixel.Fill(color.White)
	return o
}

// SetField swaps in a freshly evaluated surface.
func (o *Overlay) SetField(f *surface.Field) { o.field = f }

// SetScale changes the map scale.
func (o *Overlay) SetScale(scale float64) { o.scale = scale }

// Active lists the layers currently shown.
func (o *Overlay) Active() []Layer {
	var out []Layer
	for l, on := range o.show {
		if on {
			out = append(out, Layer(l))
		}
	}
	return out
}

// Update toggles layers from the keyboard.
func (o *Overlay) Update() {
	for l, key := range layerKeys {
		if inpututil.IsKeyJustPressed(key) {
			o.show[l] = !o.show[l]
		}
	}
}

// Draw renders the enabled layers with the map's top-left corner at (x, y).
func (o *Overlay) Draw(screen *ebiten.Image, x, y float64) {
	if o.field == nil {
		return
	}
	size := o.field.Size()
	total := size.Area()
	if total == 0 {
		return
	}
	if o.maskImg == nil || o.maskImg.Bounds().Dx() != size.W || o.maskImg.Bounds().Dy() != size.H {
		o.maskImg = ebiten.NewImage(size.W, size.H)
		o.maskBuf = make([]byte, 4*total)
	}

	if o.show[LayerElevation] {
		fillElevationOverlay(o.maskBuf, o.field.Elevation)
		o.blit(screen, x, y)
	}
	if o.show[LayerWater] {
		fillMaskRGBA(o.maskBuf, waterDepthMask(o.field), waterTint)
		o.blit(screen, x, y)
	}
	if o.show[LayerEmission] {
		fillMaskRGBA(o.maskBuf, o.field.Emission.Cells(), emissionTint)
		o.blit(screen, x, y)
	}
	if o.show[LayerClouds] {
		fillMaskRGBA(o.maskBuf, o.field.Clouds.Cells(), cloudTint)
		o.blit(screen, x, y)
	}
	if o.show[LayerSlope] {
		o.drawSlopeField(screen, x, y)
	}
}

func (o *Overlay) blit(screen *ebiten.Image, x, y float64) {
	o.maskImg.WritePixels(o.maskBuf)
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(o.scaleOrOne(), o.scaleOrOne())
	op.GeoM.Translate(x, y)
	screen.DrawImage(o.maskImg, op)
}

func (o *Overlay) scaleOrOne() float64 {
	if o.scale <= 0 {
		return 1
	}
	return o.scale
}

func (o *Overlay) drawSlopeField(screen *ebiten.Image, ox, oy float64) {
	size := o.field.Size()
	scale := o.scaleOrOne()
	if o.sampleSize != size || o.sampleScale != scale || len(o.samples) == 0 {
		o.samples, o.sampleSpan = arrowSamples(size, scale)
		o.sampleSize, o.sampleScale = size, scale
	}

	const (
		calmThreshold = 1e-4
		headAngle     = math.Pi / 6
		calmDotScale  = 0.18
		minThickness  = 0.65
		maxThickness  = 1.05
	)

	g := o.field.Elevation
	vecs := make([][2]float64, len(o.samples))
	maxSpeed := 0.0
	for i, s := range o.samples {
		vx, vy := downhill(g, s.x, s.y)
		vecs[i] = [2]float64{vx, vy}
		maxSpeed = math.Max(maxSpeed, math.Hypot(vx, vy))
	}
	if maxSpeed == 0 {
		maxSpeed = 1
	}

	minLength := o.sampleSpan * 0.35
	maxLength := o.sampleSpan * 0.7
	calmDotSize := math.Max(o.sampleSpan*calmDotScale, scale*0.75)

	for i, s := range o.samples {
		sx, sy := ox+s.sx, oy+s.sy
		vx, vy := vecs[i][0], vecs[i][1]
		speed := math.Hypot(vx, vy)
		if speed < calmThreshold {
			o.drawPoint(screen, sx, sy, calmDotSize, color.RGBA{R: 90, G: 130, B: 170, A: 120})
			continue
		}

		nx, ny := vx/speed, vy/speed
		normalized := clamp01(speed / maxSpeed)
		length := minLength + (maxLength-minLength)*math.Sqrt(normalized)
		headLength := math.Min(length*0.3, scale*4.5)
		tailLength := length * 0.4
		tipX := sx + nx*(length-tailLength)
		tipY := sy + ny*(length-tailLength)
		tailX := sx - nx*tailLength
		tailY := sy - ny*tailLength
		bodyEndX := tipX - nx*headLength
		bodyEndY := tipY - ny*headLength

		thickness := math.Max(1, scale*(minThickness+(maxThickness-minThickness)*normalized))
		col := interpolateColor(normalized)
		o.drawLine(screen, tailX, tailY, bodyEndX, bodyEndY, thickness, col)

		angle := math.Atan2(ny, nx)
		o.drawLine(screen, tipX, tipY, tipX-math.Cos(angle+headAngle)*headLength, tipY-math.Sin(angle+headAngle)*headLength, thickness*0.85, col)
		o.drawLine(screen, tipX, tipY, tipX-math.Cos(angle-headAngle)*headLength, tipY-math.Sin(angle-headAngle)*headLength, thickness*0.85, col)
	}
}

func (o *Overlay) drawPoint(screen *ebiten.Image, x, y, size float64, col color.RGBA) {
	if size <= 0 {
		return
	}
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(size, size)
	op.GeoM.Translate(x-size*0.5, y-size*0.5)
	op.ColorScale.ScaleWithColor(col)
	screen.DrawImage(o.pixel, op)
}

func (o *Overlay) drawLine(screen *ebiten.Image, x1, y1, x2, y2, thickness float64, col color.RGBA) {
	if thickness <= 0 {
		return
	}
	dx := x2 - x1
	dy := y2 - y1
	length := math.Hypot(dx, dy)
	if length <= 1e-4 {
		return
	}
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(length, thickness)
	op.GeoM.Translate(0, -thickness/2)
	op.GeoM.Rotate(math.Atan2(dy, dx))
	op.GeoM.Translate(x1, y1)
	op.ColorScale.ScaleWithColor(col)
	screen.DrawImage(o.pixel, op)
}
