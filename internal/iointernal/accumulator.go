package iointernal

import (
	"bytes"

	"github.com/srlehn/sixelcat/internal/consts"
	"github.com/srlehn/sixelcat/internal/errors"
)

// Accumulator collects the chunks an encoder pushes during one encode call.
// It is single-use and not safe for concurrent use.
type Accumulator struct {
	buf    bytes.Buffer
	limit  int
	chunks int
}

// NewAccumulator returns an empty Accumulator.
// A positive limit caps the number of bytes it accepts.
func NewAccumulator(limit int) *Accumulator {
	if limit < 0 {
		limit = 0
	}
	return &Accumulator{limit: limit}
}

// AcceptChunk appends all of chunk or nothing.
func (a *Accumulator) AcceptChunk(chunk []byte) error {
	if a == nil {
		return errors.New(consts.ErrNilReceiver)
	}
	if a.limit > 0 && a.buf.Len()+len(chunk) > a.limit {
		return errors.Kind(errors.ErrOutputLimit, errors.Errorf(`chunk of %d bytes after %d bytes, limit %d`, len(chunk), a.buf.Len(), a.limit))
	}
	_, _ = a.buf.Write(chunk) // only panics on allocation failure
	a.chunks++
	return nil
}

// WriteFunc exposes AcceptChunk as the callback handed to an encoder session.
func (a *Accumulator) WriteFunc() func(chunk []byte) error { return a.AcceptChunk }

// Bytes returns the accumulated bytes. The slice is only valid until the next AcceptChunk or Reset.
func (a *Accumulator) Bytes() []byte {
	if a == nil {
		return nil
	}
	return a.buf.Bytes()
}

func (a *Accumulator) Len() int {
	if a == nil {
		return 0
	}
	return a.buf.Len()
}

// Chunks is the number of accepted chunks.
func (a *Accumulator) Chunks() int {
	if a == nil {
		return 0
	}
	return a.chunks
}

// Reset discards everything accumulated so far.
func (a *Accumulator) Reset() {
	if a == nil {
		return
	}
	a.buf.Reset()
	a.chunks = 0
}
