//go:build ebiten

package render

import (
	"image"

	"github.com/hajimehoshi/ebiten/v2"
)

// Painter keeps one RGBA texture and re-uploads it whenever the source
// pixels change.
type Painter struct {
	w, h int
	img  *ebiten.Image
	buf  []byte
}

// NewPainter allocates a painter for a w×h texture.
func NewPainter(w, h int) *Painter {
	p := &Painter{w: w, h: h, buf: make([]byte, 4*w*h)}
	p.img = ebiten.NewImage(w, h)
	return p
}

// Upload copies src into the texture. Mismatched sizes are ignored.
func (p *Painter) Upload(src *image.RGBA) {
	b := src.Bounds()
	if b.Dx() != p.w || b.Dy() != p.h {
		return
	}
	for y := 0; y < p.h; y++ {
		copy(p.buf[y*4*p.w:(y+1)*4*p.w], src.Pix[y*src.Stride:y*src.Stride+4*p.w])
	}
	p.img.WritePixels(p.buf)
}

// Draw scales the texture onto dst at (x, y).
func (p *Painter) Draw(dst *ebiten.Image, x, y, scale float64) {
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(scale, scale)
	op.GeoM.Translate(x, y)
	dst.DrawImage(p.img, op)
}

// Size returns the dimensions of the underlying image.
func (p *Painter) Size() (int, int) { return p.w, p.h }
