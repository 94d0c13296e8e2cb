package nfnt

import (
	"image"

	"github.com/nfnt/resize"

	resizer "github.com/srlehn/sixelcat/resize"
)

func init() { resizer.Register(&Resizer{}) }

// Resizer uses "github.com/nfnt/resize" with Lanczos3 interpolation
type Resizer struct{}

var _ resizer.Resizer = (*Resizer)(nil)

func (r *Resizer) Name() string { return resizer.DefaultName }

func (r *Resizer) Resize(img image.Image, size image.Point) (image.Image, error) {
	return resize.Resize(uint(size.X), uint(size.Y), img, resize.Lanczos3), nil
}
