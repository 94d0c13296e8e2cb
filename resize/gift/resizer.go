package gift

import (
	"image"

	"github.com/disintegration/gift"

	"github.com/srlehn/sixelcat/resize"
)

func init() { resize.Register(&Resizer{}) }

// Resizer uses "github.com/disintegration/gift"
type Resizer struct{}

var _ resize.Resizer = (*Resizer)(nil)

func (r *Resizer) Name() string { return `gift` }

func (r *Resizer) Resize(img image.Image, size image.Point) (image.Image, error) {
	m := image.NewNRGBA(image.Rectangle{Max: size})
	gift.Resize(size.X, size.Y, gift.LanczosResampling).Draw(m, img, &gift.Options{Parallelization: true})
	return m, nil
}
