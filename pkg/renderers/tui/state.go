package tui

import (
	"fmt"
	"strings"
)

// State collects answers keyed by dotted paths into nested maps.
type State struct {
	values map[string]any
}

// NewState seeds the state with prefilled values.
func NewState(prefill map[string]any) *State {
	s := &State{values: make(map[string]any)}
	for k, v := range prefill {
		_ = s.SetValue(k, v)
	}
	return s
}

// Values returns the collected answers.
func (s *State) Values() map[string]any {
	return s.values
}

// GetValue resolves a dotted path.
func (s *State) GetValue(path string) (any, bool) {
	var current any = s.values
	for _, segment := range strings.Split(path, ".") {
		node, ok := current.(map[string]any)
		if !ok {
			return nil, false
		}
		current, ok = node[segment]
		if !ok {
			return nil, false
		}
	}
	return current, true
}

// SetValue writes value at a dotted path, creating intermediate maps.
func (s *State) SetValue(path string, value any) error {
	segments := strings.Split(path, ".")
	node := s.values
	for _, segment := range segments[:len(segments)-1] {
		child, ok := node[segment]
		if !ok {
			next := make(map[string]any)
			node[segment] = next
			node = next
			continue
		}
		next, ok := child.(map[string]any)
		if !ok {
			return fmt.Errorf("tui: %q is not an object in path %q", segment, path)
		}
		node = next
	}
	node[segments[len(segments)-1]] = value
	return nil
}
