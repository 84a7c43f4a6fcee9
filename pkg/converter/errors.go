package converter

import "errors"

var (
	// ErrEmptyInput is returned when the frame sequence has no frames.
	ErrEmptyInput = errors.New("converter: empty frame sequence")
	// ErrUnsupportedCodec is returned when the codec registry has no
	// decoder or encoder for the required kind.
	ErrUnsupportedCodec = errors.New("converter: no suitable codec")
)
