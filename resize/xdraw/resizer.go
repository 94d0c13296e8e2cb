// Package xdraw provides resizers using golang.org/x/image/draw.
package xdraw

import (
	"image"

	"golang.org/x/image/draw"

	"github.com/srlehn/sixelcat/resize"
)

func init() {
	resize.Register(ApproxBiLinear())
	resize.Register(CatmullRom())
}

type resizer struct {
	name   string
	scaler draw.Scaler
}

var _ resize.Resizer = (*resizer)(nil)

// ApproxBiLinear is fast with acceptable quality.
func ApproxBiLinear() resize.Resizer {
	return &resizer{name: `approx-bilinear`, scaler: draw.ApproxBiLinear}
}

// CatmullRom is the slowest and sharpest.
func CatmullRom() resize.Resizer {
	return &resizer{name: `catmull-rom`, scaler: draw.CatmullRom}
}

func (r *resizer) Name() string { return r.name }

func (r *resizer) Resize(img image.Image, size image.Point) (image.Image, error) {
	dst := image.NewNRGBA(image.Rect(0, 0, size.X, size.Y))
	r.scaler.Scale(dst, dst.Bounds(), img, img.Bounds(), draw.Src, nil)
	return dst, nil
}
