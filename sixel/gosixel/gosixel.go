// Package gosixel is the pure Go encoder backend on top of github.com/mattn/go-sixel.
package gosixel

import (
	"image"
	"image/color"

	gosixel "github.com/mattn/go-sixel"
	"golang.org/x/image/draw"

	"github.com/srlehn/sixelcat/internal/consts"
	"github.com/srlehn/sixelcat/internal/errors"
	"github.com/srlehn/sixelcat/pixbuf"
	"github.com/srlehn/sixelcat/sixel"
)

func init() { sixel.Register(&Backend{}) }

var _ sixel.Backend = (*Backend)(nil)

// Backend keeps no state between calls, so one value can serve concurrent encodes.
type Backend struct{}

func (b *Backend) Name() string { return consts.BackendGoSixelName }

func (b *Backend) NewOutput(fn sixel.WriteFunc) (sixel.Output, error) { return sixel.NewOutput(fn) }

func (b *Backend) Dither(p sixel.Profile, diffuse bool) (sixel.Dither, error) {
	return sixel.NewDither(p, diffuse)
}

func (b *Backend) Encode(pix []byte, width, height int, d sixel.Dither, o sixel.Output) error {
	if b == nil {
		return errors.NilReceiver()
	}
	if d == nil || o == nil {
		return errors.NilParam(nil)
	}
	if err := pixbuf.Validate(pix, width, height); err != nil {
		return err
	}
	if width == 0 || height == 0 {
		return nil
	}

	var img image.Image = pixbuf.New(pix, width, height)
	enc := gosixel.NewEncoder(o)
	if pal := d.Profile().Palette(); len(pal) > 0 {
		// fixed palette: quantize here, go-sixel keeps paletted images as they are
		img = Quantize(img, pal, d.Diffuse())
		enc.Colors = len(pal) + 1 // one color is reserved for transparency
	} else {
		enc.Dither = d.Diffuse()
		enc.Colors = 255
	}
	if err := enc.Encode(img); err != nil {
		if errOut := o.Err(); errOut != nil {
			return errOut
		}
		return errors.New(err)
	}
	// write errors might not be passed through by the encoder
	if err := o.Err(); err != nil {
		return err
	}
	return nil
}

// Quantize maps img onto pal, with Floyd-Steinberg error diffusion if diffuse is set.
func Quantize(img image.Image, pal color.Palette, diffuse bool) *image.Paletted {
	bounds := img.Bounds()
	paletted := image.NewPaletted(bounds, pal)
	if diffuse {
		draw.FloydSteinberg.Draw(paletted, bounds, img, bounds.Min)
	} else {
		draw.Draw(paletted, bounds, img, bounds.Min, draw.Src)
	}
	return paletted
}
