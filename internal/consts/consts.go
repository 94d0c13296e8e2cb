package consts

import (
	"errors"
)

var (
	ErrNilReceiver = errors.New(`nil receiver`)
	ErrNilImage    = errors.New(`nil image`)
	ErrReleased    = errors.New(`handle already released`)
)

const (
	LibraryName = `sixelcat`

	BackendGoSixelName   = `go-sixel`
	BackendImg2SixelName = `img2sixel`
	BackendDefaultName   = BackendGoSixelName

	// bytes per pixel in the extracted pixel buffer (R, G, B)
	BytesPerPixel = 3

	// size of the chunks read from external encoder processes
	ChunkSize = 4096
)
