package presets

import "errors"

var (
	// ErrUnknownPreset is returned when a name does not resolve to a preset.
	ErrUnknownPreset = errors.New("presets: unknown preset")
	// ErrUnknownPipe is returned for pipe kinds other than the supported ones.
	ErrUnknownPipe = errors.New("presets: unknown pipe kind")
	// ErrInvalidPreset wraps validation failures.
	ErrInvalidPreset = errors.New("presets: invalid preset")
)
