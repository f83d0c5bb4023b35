package protocol

import "errors"

var (
	// ErrUnsupportedFormat is returned when an input file cannot be decoded
	// as an image.
	ErrUnsupportedFormat = errors.New("image format not supported")

	// ErrInvalidInput is returned when Encode is given an empty source.
	ErrInvalidInput = errors.New("no image source provided")

	// ErrInsufficientFrames is returned for animations of fewer than two
	// frames; the protocol cannot express single-frame playback.
	ErrInsufficientFrames = errors.New("animation needs at least two frames")

	// ErrTooManyFrames is returned when the frame count does not fit the
	// preamble's single count byte.
	ErrTooManyFrames = errors.New("animation frame count exceeds 255")

	// ErrEmptyPayload is returned for a frame with no encoded bytes.
	ErrEmptyPayload = errors.New("frame has no pixel data")
)
