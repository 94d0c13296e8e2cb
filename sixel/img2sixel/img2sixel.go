// Package img2sixel is an encoder backend running libsixel's img2sixel program.
//
// The pixel buffer is passed as binary PPM on stdin, the Sixel stream is read
// from stdout and pushed into the output session chunk by chunk.
package img2sixel

import (
	"bytes"
	"io"
	"os/exec"
	"strconv"
	"strings"

	"github.com/srlehn/sixelcat/internal/consts"
	"github.com/srlehn/sixelcat/internal/errors"
	"github.com/srlehn/sixelcat/internal/exc"
	"github.com/srlehn/sixelcat/pixbuf"
	"github.com/srlehn/sixelcat/sixel"
)

func init() { sixel.Register(&Backend{}) }

var _ sixel.Backend = (*Backend)(nil)

// Backend starts one img2sixel process per encode call.
type Backend struct {
	// Exe is the path of the executable, "img2sixel" is looked up if empty.
	Exe string
}

func (b *Backend) Name() string { return consts.BackendImg2SixelName }

func (b *Backend) NewOutput(fn sixel.WriteFunc) (sixel.Output, error) { return sixel.NewOutput(fn) }

func (b *Backend) Dither(p sixel.Profile, diffuse bool) (sixel.Dither, error) {
	return sixel.NewDither(p, diffuse)
}

// Available reports whether the executable can be found.
func (b *Backend) Available() bool {
	_, err := b.exe()
	return err == nil
}

func (b *Backend) exe() (string, error) {
	if b == nil {
		return ``, errors.NilReceiver()
	}
	if len(b.Exe) > 0 {
		return exc.LookExe(b.Exe)
	}
	return exc.LookExe(consts.BackendImg2SixelName)
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
	exe, err := b.exe()
	if err != nil {
		return err
	}

	cmd := exec.Command(exe, Args(d.Profile(), d.Diffuse())...)
	cmd.Stdin = io.MultiReader(strings.NewReader(PPMHeader(width, height)), bytes.NewReader(pix))
	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return errors.New(err)
	}
	if err := cmd.Start(); err != nil {
		return errors.New(err)
	}

	var errStream error
	chunk := make([]byte, consts.ChunkSize)
	for {
		n, err := stdout.Read(chunk)
		if n > 0 {
			if _, errWrite := o.Write(chunk[:n]); errWrite != nil {
				errStream = errWrite
				_ = cmd.Process.Kill()
				break
			}
		}
		if err == io.EOF {
			break
		}
		if err != nil {
			errStream = errors.New(err)
			_ = cmd.Process.Kill()
			break
		}
	}
	errWait := cmd.Wait()
	if errStream != nil {
		return errStream
	}
	if errWait != nil {
		msg := strings.TrimSpace(stderr.String())
		if len(msg) == 0 {
			return errors.New(errWait)
		}
		return errors.Errorf(`%s: %w: %s`, consts.BackendImg2SixelName, errWait, msg)
	}
	return nil
}

// Args returns the img2sixel command line options for a quantization profile.
func Args(p sixel.Profile, diffuse bool) []string {
	var args []string
	switch p {
	case sixel.ProfileMonoDark:
		args = []string{`-e`}
	case sixel.ProfileMonoLight:
		args = []string{`-e`, `-i`}
	case sixel.ProfileAdaptive:
		args = []string{`-p`, `255`}
	case sixel.ProfileXTerm16, sixel.ProfileXTerm256,
		sixel.ProfileGray1, sixel.ProfileGray2, sixel.ProfileGray4, sixel.ProfileGray8:
		args = []string{`-b`, p.String()}
	case sixel.ProfileVT340Mono:
		args = []string{`-b`, `vt340mono`}
	case sixel.ProfileVT340Color:
		args = []string{`-b`, `vt340color`}
	}
	if diffuse {
		args = append(args, `-d`, `fs`)
	} else {
		args = append(args, `-d`, `none`)
	}
	return args
}

// PPMHeader is the header of a binary PPM (P6) with 8 bit samples.
func PPMHeader(width, height int) string {
	return `P6` + "\n" + strconv.Itoa(width) + ` ` + strconv.Itoa(height) + "\n255\n"
}
