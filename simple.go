package sixelcat

import (
	"image"
	"io"
	"sync"

	"github.com/srlehn/sixelcat/imgfile"
)

var (
	encDefaultOnce sync.Once
	encDefault     *Encoder
	encDefaultErr  error
)

// Default returns the shared Encoder with default settings.
func Default() (*Encoder, error) {
	encDefaultOnce.Do(func() { encDefault, encDefaultErr = New() })
	return encDefault, encDefaultErr
}

// Encode encodes width*height RGB triples with the default Encoder.
func Encode(pix []byte, width, height int) ([]byte, error) {
	enc, err := Default()
	if err != nil {
		return nil, err
	}
	return enc.Encode(pix, width, height)
}

// EncodeImage writes the Sixel stream of img to w using the default Encoder.
func EncodeImage(w io.Writer, img image.Image) error {
	enc, err := Default()
	if err != nil {
		return err
	}
	return enc.EncodeImage(w, img)
}

// EncodeFile decodes the image file and writes its Sixel stream to w using the default Encoder.
// Decoding requires the registration of image decoders, see package imgfile.
func EncodeFile(w io.Writer, imgFile string) error {
	img, err := imgfile.Decode(imgFile)
	if err != nil {
		return err
	}
	return EncodeImage(w, img)
}
