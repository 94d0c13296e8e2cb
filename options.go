package sixelcat

import (
	"log/slog"

	"github.com/srlehn/sixelcat/internal/errors"
	"github.com/srlehn/sixelcat/sixel"
)

type Option interface {
	ApplyOption(e *Encoder) error
}

var _ Option = (OptFunc)(nil)

type OptFunc func(*Encoder) error

func (o OptFunc) ApplyOption(e *Encoder) error { return o(e) }

var _ Option = (Options)(nil)

type Options []Option

func (o Options) ApplyOption(e *Encoder) error { return e.SetOptions([]Option(o)...) }

func (e *Encoder) SetOptions(opts ...Option) error {
	if e == nil {
		return errors.NilReceiver()
	}
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		if err := opt.ApplyOption(e); err != nil {
			return errors.New(err)
		}
	}
	return nil
}

func SetBackend(b sixel.Backend) Option {
	return OptFunc(func(e *Encoder) error {
		if b == nil {
			return errors.New(`nil sixel backend`)
		}
		e.backend = b
		return nil
	})
}

// SetBackendName selects a registered backend, see sixel.Names.
func SetBackendName(name string) Option {
	return OptFunc(func(e *Encoder) error {
		b, err := sixel.Lookup(name)
		if err != nil {
			return err
		}
		e.backend = b
		return nil
	})
}

func SetProfile(p sixel.Profile) Option {
	return OptFunc(func(e *Encoder) error {
		if !p.Valid() {
			return errors.Kind(errors.ErrProfileUnavailable, errors.Errorf(`invalid profile selector %d`, int(p)))
		}
		e.profile = p
		return nil
	})
}

// SetDither toggles error diffusion during quantization.
func SetDither(diffuse bool) Option {
	return OptFunc(func(e *Encoder) error { e.diffuse = diffuse; return nil })
}

// SetOutputLimit caps the size of one encoded image in bytes, 0 disables the cap.
func SetOutputLimit(limit int) Option {
	return OptFunc(func(e *Encoder) error {
		if limit < 0 {
			return errors.Errorf(`negative output limit %d`, limit)
		}
		e.outputLimit = limit
		return nil
	})
}

func SetSLogger(h slog.Handler, enable bool) Option {
	return OptFunc(func(e *Encoder) error {
		if enable {
			if h == nil {
				e.logger = slog.Default()
			} else {
				e.logger = slog.New(h)
			}
		} else {
			e.logger = nil
		}
		return nil
	})
}
