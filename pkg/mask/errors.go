package mask

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidMask is matched by every InvalidMaskError.
	ErrInvalidMask = errors.New("mask: invalid mask")
	// ErrPlaceholderCollision signals a literal rule using the placeholder
	// character.
	ErrPlaceholderCollision = errors.New("mask: placeholder character must not be used as part of the mask")
	// ErrInvalidPattern is returned by Parse for malformed shorthand.
	ErrInvalidPattern = errors.New("mask: invalid pattern")
)

// InvalidMaskError reports a mask that could not be resolved into an ordered
// rule sequence, typically because a Selector misbehaved.
type InvalidMaskError struct {
	Reason string
	Err    error
}

func (e *InvalidMaskError) Error() string {
	if e == nil {
		return ErrInvalidMask.Error()
	}
	msg := ErrInvalidMask.Error()
	if e.Reason != "" {
		msg = fmt.Sprintf("%s: %s", msg, e.Reason)
	}
	if e.Err != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.Err)
	}
	return msg
}

// Is lets errors.Is(err, ErrInvalidMask) match.
func (e *InvalidMaskError) Is(target error) bool {
	return target == ErrInvalidMask
}

func (e *InvalidMaskError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

func invalidMask(reason string, err error) error {
	return &InvalidMaskError{Reason: reason, Err: err}
}
