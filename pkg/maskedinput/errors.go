package maskedinput

import "errors"

var (
	// ErrMissingMask is returned by New when Config.Mask was never set.
	ErrMissingMask = errors.New("maskedinput: mask is required")
	// ErrClosed is returned by Update after Close.
	ErrClosed = errors.New("maskedinput: input closed")
	// ErrUnsupportedValue is returned by SafeRawValue for values that are not
	// strings, numbers or fmt.Stringers.
	ErrUnsupportedValue = errors.New("maskedinput: value must be a string or a number")
)
