package sixelcat

import (
	"image"
	"io"
	"log/slog"
	"sync"
	"unicode/utf8"

	"github.com/srlehn/sixelcat/internal"
	"github.com/srlehn/sixelcat/internal/consts"
	"github.com/srlehn/sixelcat/internal/errors"
	"github.com/srlehn/sixelcat/internal/iointernal"
	"github.com/srlehn/sixelcat/internal/logx"
	"github.com/srlehn/sixelcat/pixbuf"
	"github.com/srlehn/sixelcat/sixel"
	_ "github.com/srlehn/sixelcat/sixel/gosixel"
	_ "github.com/srlehn/sixelcat/sixel/img2sixel"
)

var _ logx.LoggerProvider = (*Encoder)(nil)

// Encoder turns pixel buffers into Sixel streams with one backend and profile.
//
// Calls on the same Encoder are serialized. Separate Encoders share no state.
type Encoder struct {
	mu          sync.Mutex
	backend     sixel.Backend
	profile     sixel.Profile
	diffuse     bool
	outputLimit int
	logger      *slog.Logger
}

// New returns an Encoder using the default backend, the xterm256 profile and
// error diffusion unless the options say otherwise.
func New(opts ...Option) (*Encoder, error) {
	e := &Encoder{
		profile: sixel.ProfileDefault,
		diffuse: true,
	}
	if err := e.SetOptions(opts...); err != nil {
		return nil, err
	}
	if e.backend == nil {
		b, err := sixel.Default()
		if err != nil {
			return nil, err
		}
		e.backend = b
	}
	return e, nil
}

func (e *Encoder) Logger() *slog.Logger {
	if e == nil {
		return nil
	}
	return e.logger
}

func (e *Encoder) Backend() sixel.Backend { return e.backend }
func (e *Encoder) Profile() sixel.Profile { return e.profile }

// Encode converts width*height RGB triples into a Sixel stream.
//
// Empty images encode to empty output. On failure no partial output is
// returned; the error matches one of ErrInvalidPixelBuffer,
// ErrSessionCreationFailed, ErrProfileUnavailable or ErrEncodeFailed.
func (e *Encoder) Encode(pix []byte, width, height int) ([]byte, error) {
	if e == nil || e.backend == nil {
		return nil, errors.NilReceiver()
	}
	if err := pixbuf.Validate(pix, width, height); err != nil {
		return nil, err
	}
	if width == 0 || height == 0 {
		logx.Debug(`empty image, nothing to encode`, e, `width`, width, `height`, height)
		return []byte{}, nil
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	return logx.TimeIt2(func() ([]byte, error) {
		return e.encode(pix, width, height)
	}, `sixel encode`, e,
		`backend`, e.backend.Name(),
		`profile`, e.profile.String(),
		`width`, width,
		`height`, height,
	)
}

func (e *Encoder) encode(pix []byte, width, height int) (ret []byte, errRet error) {
	acc := iointernal.NewAccumulator(e.outputLimit)
	handles := internal.NewCloser()
	defer func() {
		if err := handles.Close(); err != nil {
			logx.IsErr(err, e, slog.LevelWarn, `stage`, `release`)
			if errRet == nil {
				errRet = errors.Kind(errors.ErrEncodeFailed, err)
			}
			ret = nil
		}
	}()

	out, err := e.backend.NewOutput(acc.WriteFunc())
	if err != nil {
		return nil, errors.Kind(errors.ErrSessionCreationFailed, err)
	}
	if out == nil {
		return nil, errors.Kind(errors.ErrSessionCreationFailed, errors.New(`backend returned no output session`))
	}
	handles.AddReleasers(out)

	dither, err := e.backend.Dither(e.profile, e.diffuse)
	if err != nil {
		return nil, errors.Kind(errors.ErrProfileUnavailable, err)
	}
	if dither == nil {
		return nil, errors.Kind(errors.ErrProfileUnavailable, errors.Errorf(`backend returned no dither for %s`, e.profile))
	}
	handles.AddReleasers(dither)

	errEnc := e.backend.Encode(pix, width, height, dither, out)
	if errEnc == nil {
		// a refused chunk fails the call even if the backend ignored it
		errEnc = out.Err()
	}
	if errEnc != nil {
		acc.Reset()
		return nil, errors.Kind(errors.ErrEncodeFailed, errEnc)
	}

	ret = make([]byte, acc.Len())
	copy(ret, acc.Bytes())
	logx.Debug(`sixel encoded`, e, logx.Bytes(`size`, len(ret)), `chunks`, acc.Chunks(), `written`, sixel.Written(out))
	return ret, nil
}

// EncodeTo encodes the pixel buffer and writes the result to w in one write.
// w receives nothing if encoding fails.
func (e *Encoder) EncodeTo(w io.Writer, pix []byte, width, height int) error {
	if w == nil {
		return errors.NilParam(nil)
	}
	enc, err := e.Encode(pix, width, height)
	if err != nil {
		return err
	}
	return writeAll(w, enc)
}

// EncodeImage extracts the RGB samples of img and writes its Sixel stream to w.
func (e *Encoder) EncodeImage(w io.Writer, img image.Image) error {
	if img == nil {
		return errors.New(consts.ErrNilImage)
	}
	buf := pixbuf.Extract(img)
	return e.EncodeTo(w, buf.Pix, buf.Width, buf.Height)
}

// EncodeString returns the Sixel stream of img as text.
func (e *Encoder) EncodeString(img image.Image) (string, error) {
	if img == nil {
		return ``, errors.New(consts.ErrNilImage)
	}
	buf := pixbuf.Extract(img)
	enc, err := e.Encode(buf.Pix, buf.Width, buf.Height)
	if err != nil {
		return ``, err
	}
	return Text(enc)
}

// Text validates that a Sixel stream is UTF-8 text.
func Text(enc []byte) (string, error) {
	if !utf8.Valid(enc) {
		return ``, errors.New(errors.ErrInvalidOutputEncoding)
	}
	return string(enc), nil
}

func writeAll(w io.Writer, p []byte) error {
	if len(p) == 0 {
		return nil
	}
	n, err := w.Write(p)
	if err != nil {
		return errors.Kind(errors.ErrSinkWriteFailed, err)
	}
	if n != len(p) {
		return errors.Kind(errors.ErrSinkWriteFailed, io.ErrShortWrite)
	}
	return nil
}
