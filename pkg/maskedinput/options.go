package maskedinput

import (
	"time"

	"go.uber.org/zap"

	"github.com/goliatone/go-inputmask/pkg/pipe"
)

// ChangeListener receives committed changes. With a debounce configured it
// is called once per pause with the latest change.
type ChangeListener func(Change)

// Option configures an Input.
type Option func(*Input)

// WithLogger sets the logger used for rejected edits and mask failures.
func WithLogger(logger *zap.Logger) Option {
	return func(in *Input) {
		if logger != nil {
			in.logger = logger
		}
	}
}

// WithChangeListener registers fn for committed changes.
func WithChangeListener(fn ChangeListener) Option {
	return func(in *Input) {
		in.listener = fn
	}
}

// WithDebounce delays change notifications until no edit has been committed
// for d. The listener fires d after the last commit with no extra padding
// added. Zero or negative notifies synchronously.
func WithDebounce(d time.Duration) Option {
	return func(in *Input) {
		if d > 0 {
			in.debounce = d
		}
	}
}

// WithPipe runs p after Config.Pipe and any pipe added earlier. A rejection
// from any of them rejects the edit.
func WithPipe(p pipe.Pipe) Option {
	return func(in *Input) {
		switch {
		case p == nil:
		case in.pipe == nil:
			in.pipe = p
		default:
			in.pipe = pipe.Chain(in.pipe, p)
		}
	}
}
