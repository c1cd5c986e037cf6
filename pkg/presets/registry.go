package presets

import (
	"fmt"
	"sort"
	"strings"
	"sync"

	"go.uber.org/zap"

	"github.com/goliatone/go-inputmask/pkg/model"
)

// Matcher decides whether a preset applies to a field.
type Matcher func(field model.Field) bool

type rule struct {
	preset   string
	priority int
	match    Matcher
	order    int
}

// Registry resolves presets for form fields. Explicit hints win; otherwise
// matchers run by descending priority, ties in registration order. Loaded
// presets shadow built-ins of the same name.
type Registry struct {
	mu     sync.RWMutex
	base   *Store
	loaded *Store
	rules  []rule
	logger *zap.Logger
}

// Option configures a Registry.
type Option func(*Registry)

// WithLogger sets the registry logger.
func WithLogger(logger *zap.Logger) Option {
	return func(r *Registry) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// WithStore seeds the registry with loaded presets.
func WithStore(store *Store) Option {
	return func(r *Registry) {
		r.loaded = store
	}
}

// WithoutBuiltins drops the built-in presets and matchers.
func WithoutBuiltins() Option {
	return func(r *Registry) {
		r.base = nil
		r.rules = nil
	}
}

// NewRegistry constructs a registry with the built-in presets and matchers.
func NewRegistry(opts ...Option) *Registry {
	reg := &Registry{base: Builtin(), logger: zap.NewNop()}
	reg.registerBuiltins()
	for _, opt := range opts {
		if opt != nil {
			opt(reg)
		}
	}
	return reg
}

// Register adds a matcher selecting preset. Higher priority values take
// precedence.
func (r *Registry) Register(preset string, priority int, matcher Matcher) {
	if r == nil || matcher == nil {
		return
	}
	trimmed := strings.TrimSpace(preset)
	if trimmed == "" {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	r.rules = append(r.rules, rule{
		preset:   trimmed,
		priority: priority,
		match:    matcher,
		order:    len(r.rules),
	})
}

// Replace swaps the loaded presets, keeping built-ins and matchers.
func (r *Registry) Replace(store *Store) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.loaded = store
	r.logger.Debug("presets replaced", zap.Int("count", store.Len()))
}

// Store returns the effective preset set.
func (r *Registry) Store() *Store {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.base.Overlay(r.loaded)
}

// Lookup returns the preset named name.
func (r *Registry) Lookup(name string) (Preset, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if p, ok := r.loaded.Get(name); ok {
		return p, true
	}
	return r.base.Get(name)
}

// Presets lists the effective presets sorted by name.
func (r *Registry) Presets() []Preset {
	return r.Store().All()
}

// Resolve returns the preset for a field. Explicit mask metadata or UI hints
// are honoured before matchers; a maskPattern without a preset name yields
// an unnamed ad-hoc preset. An explicit name that is not registered is an
// error.
func (r *Registry) Resolve(field model.Field) (Preset, bool, error) {
	if name := field.MaskPreset(); name != "" {
		p, ok := r.Lookup(name)
		if !ok {
			return Preset{}, false, fmt.Errorf("%w %q", ErrUnknownPreset, name)
		}
		return p, true, nil
	}
	if p, ok := adHocPreset(field); ok {
		if err := p.Validate(); err != nil {
			return Preset{}, false, err
		}
		p.Name = ""
		return p, true, nil
	}

	r.mu.RLock()
	rules := append([]rule(nil), r.rules...)
	r.mu.RUnlock()
	sort.SliceStable(rules, func(i, j int) bool {
		if rules[i].priority == rules[j].priority {
			return rules[i].order < rules[j].order
		}
		return rules[i].priority > rules[j].priority
	})
	for _, entry := range rules {
		if !entry.match(field) {
			continue
		}
		if p, ok := r.Lookup(entry.preset); ok {
			return p, true, nil
		}
		r.logger.Warn("matcher names an unknown preset", zap.String("preset", entry.preset), zap.String("field", field.Name))
	}
	return Preset{}, false, nil
}

// Decorate implements model.Decorator. Every field with a resolved preset
// gets a mask binding, Metadata["mask"] when the preset is named, and the
// preset placeholder when the field has none.
func (r *Registry) Decorate(form *model.FormModel) error {
	if r == nil || form == nil {
		return nil
	}
	for i := range form.Fields {
		field := &form.Fields[i]
		p, ok, err := r.Resolve(*field)
		if err != nil {
			return fmt.Errorf("presets: field %q: %w", field.Name, err)
		}
		if !ok {
			continue
		}
		binding := p.Binding()
		field.Mask = &binding
		if p.Name != "" {
			if field.Metadata == nil {
				field.Metadata = make(map[string]string)
			}
			if field.Metadata[model.MetadataMask] == "" {
				field.Metadata[model.MetadataMask] = p.Name
			}
		}
		if field.Placeholder == "" {
			if placeholder, err := p.Placeholder(); err == nil {
				field.Placeholder = placeholder
			}
		}
	}
	return nil
}

var _ model.Decorator = (*Registry)(nil)

func adHocPreset(field model.Field) (Preset, bool) {
	pattern := field.Metadata[model.MetadataMaskPattern]
	if pattern == "" {
		return Preset{}, false
	}
	p := Preset{
		Name:            field.Name,
		Pattern:         pattern,
		PlaceholderChar: field.Metadata[model.MetadataPlaceholderChar],
	}
	if kind := field.Metadata[model.MetadataMaskPipe]; kind != "" {
		p.Pipe = &PipeConfig{Kind: kind, Format: field.Metadata[model.MetadataMaskPipeFormat]}
	}
	return p, true
}

func (r *Registry) registerBuiltins() {
	r.Register(DateISO, 100, formatIs("date"))
	r.Register(DateTime, 100, formatIs("date-time"))
	r.Register(Time, 100, formatIs("time"))
	r.Register(PhoneUS, 90, formatIs("phone", "tel"))
	r.Register(Zip, 90, formatIs("postal-code", "zip"))
	r.Register(CreditCard, 90, formatIs("credit-card"))
	r.Register(PhoneUS, 10, nameContains("phone"))
	r.Register(Zip, 10, nameContains("zip", "postal"))
}

func formatIs(formats ...string) Matcher {
	return func(field model.Field) bool {
		format := strings.ToLower(strings.TrimSpace(field.Format))
		for _, candidate := range formats {
			if format == candidate {
				return true
			}
		}
		return false
	}
}

func nameContains(parts ...string) Matcher {
	return func(field model.Field) bool {
		if field.Type != "" && field.Type != model.FieldTypeString {
			return false
		}
		name := strings.ToLower(field.Name)
		for _, part := range parts {
			if strings.Contains(name, part) {
				return true
			}
		}
		return false
	}
}
