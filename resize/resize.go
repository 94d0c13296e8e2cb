// Package resize scales decoded images down before they are encoded.
//
// Implementations live in the sub packages and register themselves on import.
package resize

import (
	"image"
	"maps"
	"slices"
	"sync"

	"github.com/srlehn/sixelcat/internal/errors"
)

// Resizer scales img to exactly size.
type Resizer interface {
	Name() string
	Resize(img image.Image, size image.Point) (image.Image, error)
}

const DefaultName = `nfnt`

var (
	resizersMu sync.RWMutex
	resizers   = make(map[string]Resizer)
)

func Register(r Resizer) {
	if r == nil {
		return
	}
	resizersMu.Lock()
	defer resizersMu.Unlock()
	resizers[r.Name()] = r
}

func Lookup(name string) (Resizer, error) {
	resizersMu.RLock()
	defer resizersMu.RUnlock()
	r, ok := resizers[name]
	if !ok || r == nil {
		return nil, errors.Errorf(`unknown resizer %q (registered: %v)`, name, slices.Sorted(maps.Keys(resizers)))
	}
	return r, nil
}

func Names() []string {
	resizersMu.RLock()
	defer resizersMu.RUnlock()
	return slices.Sorted(maps.Keys(resizers))
}

// FitSize returns the largest size with the aspect ratio of size that fits
// into maxWidth x maxHeight, but never larger than size.
// A limit <= 0 does not constrain that side.
func FitSize(size image.Point, maxWidth, maxHeight int) image.Point {
	w, h := size.X, size.Y
	if w <= 0 || h <= 0 {
		return size
	}
	if maxWidth <= 0 {
		maxWidth = w
	}
	if maxHeight <= 0 {
		maxHeight = h
	}
	if w <= maxWidth && h <= maxHeight {
		return size
	}
	if w > maxWidth {
		h = max(h*maxWidth/w, 1)
		w = maxWidth
	}
	if h > maxHeight {
		w = max(w*maxHeight/h, 1)
		h = maxHeight
	}
	return image.Pt(w, h)
}
