package bild

import (
	"image"

	"github.com/anthonynsimon/bild/transform"

	"github.com/srlehn/sixelcat/resize"
)

func init() { resize.Register(&Resizer{}) }

// Resizer uses "github.com/anthonynsimon/bild/transform"
type Resizer struct{}

var _ resize.Resizer = (*Resizer)(nil)

func (r *Resizer) Name() string { return `bild` }

func (r *Resizer) Resize(img image.Image, size image.Point) (image.Image, error) {
	return transform.Resize(img, size.X, size.Y, transform.Lanczos), nil
}
