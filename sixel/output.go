package sixel

import (
	"sync"

	"github.com/srlehn/sixelcat/internal/consts"
	"github.com/srlehn/sixelcat/internal/errors"
)

var _ Output = (*output)(nil)

type output struct {
	mu       sync.Mutex
	fn       WriteFunc
	err      error
	written  int
	released bool
}

// NewOutput creates an output session that forwards every write to fn.
// After the first failure of fn all further writes fail with the same error.
func NewOutput(fn WriteFunc) (Output, error) {
	if fn == nil {
		return nil, errors.NilParam(nil)
	}
	return &output{fn: fn}, nil
}

// Write hands p to the session's WriteFunc as one chunk.
// It writes all of p or nothing.
func (o *output) Write(p []byte) (int, error) {
	if o == nil {
		return 0, errors.New(consts.ErrNilReceiver)
	}
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.released {
		return 0, errors.New(consts.ErrReleased)
	}
	if o.err != nil {
		return 0, o.err
	}
	if err := o.fn(p); err != nil {
		o.err = errors.New(err)
		return 0, o.err
	}
	o.written += len(p)
	return len(p), nil
}

func (o *output) Err() error {
	if o == nil {
		return nil
	}
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.err
}

func (o *output) Release() error {
	if o == nil {
		return nil
	}
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.released {
		return errors.New(consts.ErrReleased)
	}
	o.released = true
	o.fn = nil
	return nil
}

// Written returns the number of bytes an Output created by NewOutput has accepted.
func Written(o Output) int {
	out, ok := o.(*output)
	if !ok || out == nil {
		return 0
	}
	out.mu.Lock()
	defer out.mu.Unlock()
	return out.written
}
