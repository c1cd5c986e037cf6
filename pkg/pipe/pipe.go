package pipe

import "sort"

// Config is the context a pipe is invoked with.
type Config struct {
	PlaceholderChar   rune
	KeepCharPositions bool
	Guide             bool
	RawValue          string
	Previous          string
	CaretPosition     int
}

// Result is an accepted, possibly rewritten, value.
type Result struct {
	Value               string
	IndexesOfPipedChars []int
}

// Pipe post-processes a conformed value. Implementations must be pure and
// tolerate values that still contain placeholder characters.
type Pipe interface {
	Pipe(conformed string, cfg Config) (Result, bool)
}

// Func adapts a function to the Pipe interface.
type Func func(conformed string, cfg Config) (Result, bool)

// Pipe calls f.
func (f Func) Pipe(conformed string, cfg Config) (Result, bool) {
	return f(conformed, cfg)
}

// Accept returns the conformed value unchanged.
func Accept(conformed string) (Result, bool) {
	return Result{Value: conformed}, true
}

// Reject is the hard rejection sentinel.
func Reject() (Result, bool) {
	return Result{}, false
}

type chain []Pipe

// Chain runs pipes in order, feeding each the previous output. The first
// rejection wins. Piped indexes are merged, deduplicated and clipped to the
// final value.
func Chain(pipes ...Pipe) Pipe {
	var out chain
	for _, p := range pipes {
		if p != nil {
			out = append(out, p)
		}
	}
	return out
}

func (c chain) Pipe(conformed string, cfg Config) (Result, bool) {
	value := conformed
	seen := make(map[int]struct{})
	for _, p := range c {
		res, ok := p.Pipe(value, cfg)
		if !ok {
			return Result{}, false
		}
		value = res.Value
		for _, idx := range res.IndexesOfPipedChars {
			seen[idx] = struct{}{}
		}
	}

	size := len([]rune(value))
	indexes := make([]int, 0, len(seen))
	for idx := range seen {
		if idx >= 0 && idx < size {
			indexes = append(indexes, idx)
		}
	}
	sort.Ints(indexes)
	return Result{Value: value, IndexesOfPipedChars: indexes}, true
}
