package render

import (
	"image"

	xdraw "golang.org/x/image/draw"

	"planetsynth/internal/surface"
)

// MapImage renders the field as an equirectangular RGBA image.
func MapImage(f *surface.Field, view View, opts MapOptions) *image.RGBA {
	size := f.Size()
	img := image.NewRGBA(image.Rect(0, 0, size.W, size.H))
	FillRGBA(img.Pix, f, view, opts)
	return img
}

// Upscale enlarges src by an integer factor. Categorical views should pass
// smooth=false so band edges stay crisp.
func Upscale(src image.Image, factor int, smooth bool) *image.RGBA {
	b := src.Bounds()
	if factor <= 1 {
		dst := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
		xdraw.Copy(dst, image.Point{}, src, b, xdraw.Src, nil)
		return dst
	}
	dst := image.NewRGBA(image.Rect(0, 0, b.Dx()*factor, b.Dy()*factor))
	var s xdraw.Scaler = xdraw.NearestNeighbor
	if smooth {
		s = xdraw.CatmullRom
	}
	s.Scale(dst, dst.Bounds(), src, b, xdraw.Src, nil)
	return dst
}
