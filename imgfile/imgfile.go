// Package imgfile decodes image files for encoding.
//
// Importing it registers decoders for PNG, JPEG, GIF, BMP, TIFF and WebP.
package imgfile

import (
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"os"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	"github.com/srlehn/sixelcat/internal/errors"
	"github.com/srlehn/sixelcat/resize"
	"github.com/srlehn/sixelcat/resize/nfnt"
)

// Decode reads and decodes the image file at path.
// All failures match errors.ErrDecodeFailed.
func Decode(path string) (image.Image, error) {
	if len(path) == 0 {
		return nil, errors.Kind(errors.ErrDecodeFailed, errors.New(`empty image file path`))
	}
	mtype, err := mimetype.DetectFile(path)
	if err != nil {
		return nil, errors.Kind(errors.ErrDecodeFailed, err)
	}
	if !IsImage(mtype) {
		return nil, errors.Kind(errors.ErrDecodeFailed, errors.Errorf(`%s: not an image (%s)`, path, mtype.String()))
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Kind(errors.ErrDecodeFailed, err)
	}
	defer f.Close()
	img, _, err := image.Decode(f)
	if err != nil {
		return nil, errors.Kind(errors.ErrDecodeFailed, errors.Errorf(`%s (%s): %w`, path, mtype.String(), err))
	}
	return img, nil
}

// IsImage reports whether the detected type or one of its parents is an image type.
func IsImage(mtype *mimetype.MIME) bool {
	for m := mtype; m != nil; m = m.Parent() {
		if strings.HasPrefix(m.String(), `image/`) {
			return true
		}
	}
	return false
}

// Fit scales img down to fit into maxWidth x maxHeight keeping its aspect ratio.
// A limit <= 0 does not constrain that side. Images are never scaled up.
func Fit(img image.Image, maxWidth, maxHeight int) image.Image {
	m, err := FitWith(img, maxWidth, maxHeight, &nfnt.Resizer{})
	if err != nil {
		return img
	}
	return m
}

// FitWith is Fit with an explicit resizer.
func FitWith(img image.Image, maxWidth, maxHeight int, r resize.Resizer) (image.Image, error) {
	if img == nil {
		return nil, nil
	}
	if r == nil {
		return nil, errors.NilParam(r)
	}
	size := img.Bounds().Size()
	fitted := resize.FitSize(size, maxWidth, maxHeight)
	if fitted == size {
		return img, nil
	}
	m, err := r.Resize(img, fitted)
	if err != nil {
		return nil, errors.WrapPrefix(err, r.Name(), 0)
	}
	return m, nil
}
