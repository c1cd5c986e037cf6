package presets

import (
	"fmt"
	"sort"
	"strings"
)

// Store is an immutable set of presets keyed by name.
type Store struct {
	presets map[string]Preset
	sources map[string]string
}

// NewStore validates presets and indexes them by name. Duplicate names are
// rejected.
func NewStore(presets ...Preset) (*Store, error) {
	store := &Store{
		presets: make(map[string]Preset, len(presets)),
		sources: make(map[string]string, len(presets)),
	}
	for _, p := range presets {
		if err := store.add(p, ""); err != nil {
			return nil, err
		}
	}
	return store, nil
}

func (s *Store) add(p Preset, source string) error {
	p.Name = strings.TrimSpace(p.Name)
	if err := p.Validate(); err != nil {
		if source != "" {
			return fmt.Errorf("%w (file %s)", err, source)
		}
		return err
	}
	if prev, exists := s.sources[p.Name]; exists {
		return fmt.Errorf("presets: duplicate preset %q (file %s, first defined in %s)", p.Name, source, prev)
	}
	s.presets[p.Name] = p.clone()
	s.sources[p.Name] = source
	return nil
}

// Get returns the preset registered under name.
func (s *Store) Get(name string) (Preset, bool) {
	if s == nil {
		return Preset{}, false
	}
	p, ok := s.presets[strings.TrimSpace(name)]
	if !ok {
		return Preset{}, false
	}
	return p.clone(), true
}

// Source reports the file a preset was loaded from; empty for presets built
// in code.
func (s *Store) Source(name string) string {
	if s == nil {
		return ""
	}
	return s.sources[name]
}

// Names returns the preset names in sorted order.
func (s *Store) Names() []string {
	if s == nil {
		return nil
	}
	names := make([]string, 0, len(s.presets))
	for name := range s.presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// All returns every preset sorted by name.
func (s *Store) All() []Preset {
	names := s.Names()
	out := make([]Preset, 0, len(names))
	for _, name := range names {
		out = append(out, s.presets[name].clone())
	}
	return out
}

// Len returns the number of presets.
func (s *Store) Len() int {
	if s == nil {
		return 0
	}
	return len(s.presets)
}

// Overlay returns a store with the presets of s replaced or extended by the
// presets of top.
func (s *Store) Overlay(top *Store) *Store {
	out := &Store{presets: map[string]Preset{}, sources: map[string]string{}}
	for _, layer := range []*Store{s, top} {
		if layer == nil {
			continue
		}
		for name, p := range layer.presets {
			out.presets[name] = p
			out.sources[name] = layer.sources[name]
		}
	}
	return out
}
