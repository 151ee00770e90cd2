package frames

import (
	"errors"
	"fmt"
)

// Errors returned by the loader and normalizer. Check them with errors.Is.
var (
	// ErrInvalidInput is returned when the frame folder is missing or not a directory,
	// or when a FrameStack does not have the [channel, frame, row, column] layout.
	ErrInvalidInput = errors.New("framestack: invalid input")

	// ErrDecode is returned when a matched frame file cannot be decoded as an image.
	ErrDecode = errors.New("framestack: decode failed")

	// ErrInvalidConfig is returned for malformed normalization parameters or loader options.
	ErrInvalidConfig = errors.New("framestack: invalid configuration")
)

// DecodeError reports which frame file could not be decoded.
type DecodeError struct {
	Path string
	Err  error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("failed to decode frame %s: %v", e.Path, e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }

// Is makes errors.Is(err, ErrDecode) true for every DecodeError.
func (e *DecodeError) Is(target error) bool { return target == ErrDecode }
