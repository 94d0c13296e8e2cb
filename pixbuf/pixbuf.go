// Package pixbuf flattens decoded images into interleaved 8-bit RGB samples.
package pixbuf

import (
	"image"
	"image/color"

	"github.com/srlehn/sixelcat/internal/consts"
	"github.com/srlehn/sixelcat/internal/errors"
)

var _ image.Image = (*Buffer)(nil)

// Buffer holds Width*Height RGB triples in row-major order without padding or alpha.
//
// Buffer is also an image.Image with its origin at (0, 0), so encoders which
// expect an image can read it without a copy.
type Buffer struct {
	Pix    []byte
	Width  int
	Height int
}

// New wraps pix without copying it.
func New(pix []byte, width, height int) *Buffer {
	return &Buffer{Pix: pix, Width: width, Height: height}
}

// Extract walks img row by row, left to right and appends the red, green and
// blue values of every pixel. Alpha is dropped after conversion to
// non-premultiplied color, wider channels are truncated to 8 bits.
// A nil or empty image results in an empty buffer.
func Extract(img image.Image) *Buffer {
	if img == nil {
		return &Buffer{Pix: []byte{}}
	}
	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	if w <= 0 || h <= 0 {
		return &Buffer{Pix: []byte{}}
	}
	buf := &Buffer{
		Pix:    make([]byte, 0, w*h*consts.BytesPerPixel),
		Width:  w,
		Height: h,
	}
	switch m := img.(type) {
	case *Buffer:
		if m.Validate() != nil {
			extractGeneric(buf, img, bounds)
			break
		}
		buf.Pix = append(buf.Pix, m.Pix...)
	case *image.NRGBA:
		for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
			row := m.Pix[m.PixOffset(bounds.Min.X, y):m.PixOffset(bounds.Max.X-1, y)+4]
			for i := 0; i < len(row); i += 4 {
				buf.Pix = append(buf.Pix, row[i], row[i+1], row[i+2])
			}
		}
	case *image.RGBA:
		if !m.Opaque() {
			extractGeneric(buf, img, bounds)
			break
		}
		for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
			row := m.Pix[m.PixOffset(bounds.Min.X, y):m.PixOffset(bounds.Max.X-1, y)+4]
			for i := 0; i < len(row); i += 4 {
				buf.Pix = append(buf.Pix, row[i], row[i+1], row[i+2])
			}
		}
	default:
		extractGeneric(buf, img, bounds)
	}
	return buf
}

func extractGeneric(buf *Buffer, img image.Image, bounds image.Rectangle) {
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			c := color.NRGBAModel.Convert(img.At(x, y)).(color.NRGBA)
			buf.Pix = append(buf.Pix, c.R, c.G, c.B)
		}
	}
}

// Validate checks the length invariant of the buffer.
func (b *Buffer) Validate() error {
	if b == nil {
		return errors.NilReceiver()
	}
	return Validate(b.Pix, b.Width, b.Height)
}

// Validate checks that pix holds exactly width*height RGB triples.
func Validate(pix []byte, width, height int) error {
	if width < 0 || height < 0 {
		return errors.Kind(errors.ErrInvalidPixelBuffer, errors.Errorf(`negative dimensions %dx%d`, width, height))
	}
	if want := width * height * consts.BytesPerPixel; len(pix) != want {
		return errors.Kind(errors.ErrInvalidPixelBuffer, errors.Errorf(`got %d bytes for %dx%d pixels, want %d`, len(pix), width, height, want))
	}
	return nil
}

// Empty reports whether the buffer contains no pixels.
func (b *Buffer) Empty() bool { return b == nil || b.Width <= 0 || b.Height <= 0 }

// Len is the number of bytes in the buffer.
func (b *Buffer) Len() int {
	if b == nil {
		return 0
	}
	return len(b.Pix)
}

// RGB returns the channel values of pixel (x, y).
func (b *Buffer) RGB(x, y int) (r, g, bl uint8) {
	i := b.offset(x, y)
	if i < 0 {
		return 0, 0, 0
	}
	return b.Pix[i], b.Pix[i+1], b.Pix[i+2]
}

func (b *Buffer) offset(x, y int) int {
	if b == nil || x < 0 || y < 0 || x >= b.Width || y >= b.Height {
		return -1
	}
	i := (y*b.Width + x) * consts.BytesPerPixel
	if i+consts.BytesPerPixel > len(b.Pix) {
		return -1
	}
	return i
}

func (b *Buffer) ColorModel() color.Model { return color.RGBAModel }

func (b *Buffer) Bounds() image.Rectangle {
	if b == nil {
		return image.Rectangle{}
	}
	return image.Rect(0, 0, b.Width, b.Height)
}

func (b *Buffer) At(x, y int) color.Color {
	r, g, bl := b.RGB(x, y)
	return color.RGBA{R: r, G: g, B: bl, A: 0xff}
}

// Opaque is used by image/draw to skip alpha blending.
func (b *Buffer) Opaque() bool { return true }
