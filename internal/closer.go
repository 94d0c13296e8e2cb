package internal

import (
	"sync"

	"github.com/srlehn/sixelcat/internal/errors"
)

// Closer runs registered release functions in reverse order of registration.
type Closer interface {
	Close() error
	OnClose(onClose func() error)
	AddReleasers(releasers ...Releaser)
}

// Releaser is a handle with manual lifetime, e.g. an encoder output session.
type Releaser interface{ Release() error }

var _ Closer = (*lifoCloser)(nil)

type lifoCloser struct {
	mu           sync.Mutex
	onCloseFuncs []func() error
	closed       bool
}

func NewCloser() Closer { return &lifoCloser{} }

// Close runs all registered functions, even after failures, and joins their errors.
// Subsequent calls are no-ops.
func (c *lifoCloser) Close() error {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return nil
	}
	c.closed = true
	funcs := c.onCloseFuncs
	c.onCloseFuncs = nil
	c.mu.Unlock()

	var errs []error
	for i := len(funcs) - 1; i > -1; i-- {
		if funcs[i] == nil {
			continue
		}
		if err := funcs[i](); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func (c *lifoCloser) OnClose(onClose func() error) {
	if c == nil || onClose == nil {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		// too late for scoped release, run now
		_ = onClose()
		return
	}
	c.onCloseFuncs = append(c.onCloseFuncs, onClose)
}

func (c *lifoCloser) AddReleasers(releasers ...Releaser) {
	for _, r := range releasers {
		if r == nil {
			continue
		}
		c.OnClose(r.Release)
	}
}
