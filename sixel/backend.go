// Package sixel describes the external Sixel encoder a pixel buffer is handed to.
//
// An encode call acquires an Output session around a WriteFunc and a Dither
// for a quantization Profile, runs Backend.Encode once and releases both.
// Backends register themselves on import, see Register.
package sixel

import (
	"io"
	"maps"
	"slices"
	"sync"

	"github.com/srlehn/sixelcat/internal/consts"
	"github.com/srlehn/sixelcat/internal/errors"
)

// WriteFunc receives the encoded output chunk by chunk.
// A non-nil error aborts the encode call.
type WriteFunc func(chunk []byte) error

// Output is an encoder output session. Writes are forwarded to its WriteFunc.
type Output interface {
	io.Writer
	// Err returns the first failure of the WriteFunc.
	Err() error
	Release() error
}

// Dither is the quantization handle for one Profile.
type Dither interface {
	Profile() Profile
	// Diffuse reports whether quantization errors are diffused (Floyd-Steinberg).
	Diffuse() bool
	Release() error
}

// Backend is an external Sixel encoder.
type Backend interface {
	Name() string
	NewOutput(fn WriteFunc) (Output, error)
	Dither(p Profile, diffuse bool) (Dither, error)
	// Encode encodes width*height RGB triples and pushes the result into o.
	// It must not retain pix, d or o after returning.
	Encode(pix []byte, width, height int, d Dither, o Output) error
}

var (
	backendsMu sync.RWMutex
	backends   = make(map[string]Backend)
)

// Register makes a backend available by name. Later registrations replace earlier ones.
func Register(b Backend) {
	if b == nil {
		return
	}
	backendsMu.Lock()
	defer backendsMu.Unlock()
	backends[b.Name()] = b
}

// Lookup returns the registered backend with the given name.
func Lookup(name string) (Backend, error) {
	backendsMu.RLock()
	defer backendsMu.RUnlock()
	b, ok := backends[name]
	if !ok || b == nil {
		return nil, errors.Kind(errors.ErrUnknownBackend, errors.Errorf(`%q (registered: %v)`, name, namesLocked()))
	}
	return b, nil
}

// Names lists the registered backends in lexical order.
func Names() []string {
	backendsMu.RLock()
	defer backendsMu.RUnlock()
	return namesLocked()
}

func namesLocked() []string { return slices.Sorted(maps.Keys(backends)) }

// Default returns the default backend if it is registered.
func Default() (Backend, error) { return Lookup(consts.BackendDefaultName) }
