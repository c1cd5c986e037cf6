package mask

import "strconv"

type specMode uint8

const (
	modeUnset specMode = iota
	modeStatic
	modeDynamic
	modeDisabled
)

// SelectInfo is handed to a Selector alongside the raw input.
type SelectInfo struct {
	CaretPosition   int
	Previous        string
	PlaceholderChar rune
}

// Selector derives the rule sequence from the raw input of the current edit.
// Returning an error, an empty sequence or an invalid rule makes Resolve fail
// with an InvalidMaskError.
type Selector func(raw string, info SelectInfo) (Rules, error)

// Spec is a mask specification: a fixed rule sequence, a Selector, or the
// disabled mask. The zero value is unset and fails to resolve.
type Spec struct {
	mode     specMode
	rules    Rules
	selector Selector
}

// Static wraps a fixed rule sequence.
func Static(rules ...Rule) Spec {
	return Spec{mode: modeStatic, rules: Rules(rules).Clone()}
}

// Dynamic wraps a selector evaluated once per edit.
func Dynamic(selector Selector) Spec {
	return Spec{mode: modeDynamic, selector: selector}
}

// Disabled returns the mask that leaves input untouched.
func Disabled() Spec {
	return Spec{mode: modeDisabled}
}

// IsDisabled reports whether the spec disables masking.
func (s Spec) IsDisabled() bool { return s.mode == modeDisabled }

// IsDynamic reports whether the spec derives its rules per edit.
func (s Spec) IsDynamic() bool { return s.mode == modeDynamic }

// IsZero reports whether the spec was never set.
func (s Spec) IsZero() bool { return s.mode == modeUnset }

// Rules returns a copy of the static rules, or nil for other specs.
func (s Spec) Rules() Rules {
	if s.mode != modeStatic {
		return nil
	}
	return s.rules.Clone()
}

// Resolved is the concrete mask for one edit.
type Resolved struct {
	Rules            Rules
	CaretTrapIndexes []int
	Disabled         bool
}

// Resolve produces the rule sequence to apply to raw. Static rules are
// returned as given (minus caret trap markers); selectors are invoked exactly
// once. Resolve is pure and never caches.
func Resolve(spec Spec, raw string, info SelectInfo) (Resolved, error) {
	switch spec.mode {
	case modeDisabled:
		return Resolved{Disabled: true}, nil
	case modeStatic:
		return finalize(spec.rules)
	case modeDynamic:
		if spec.selector == nil {
			return Resolved{}, invalidMask("selector is nil", nil)
		}
		rules, err := spec.selector(raw, info)
		if err != nil {
			return Resolved{}, invalidMask("selector failed", err)
		}
		if len(rules) == 0 {
			return Resolved{}, invalidMask("selector returned no rules", nil)
		}
		return finalize(rules)
	default:
		return Resolved{}, invalidMask("mask is required", nil)
	}
}

func finalize(rules Rules) (Resolved, error) {
	out := Resolved{Rules: make(Rules, 0, len(rules))}
	for idx, rule := range rules {
		if !rule.Valid() {
			return Resolved{}, invalidMask("invalid rule at position "+strconv.Itoa(idx), nil)
		}
		if rule.IsCaretTrap() {
			out.CaretTrapIndexes = append(out.CaretTrapIndexes, len(out.Rules))
			continue
		}
		out.Rules = append(out.Rules, rule)
	}
	if len(out.Rules) == 0 {
		return Resolved{}, invalidMask("mask has no positions", nil)
	}
	return out, nil
}

// Placeholder renders the resolved rules with ch in every match position.
func (r Resolved) Placeholder(ch rune) (string, error) {
	return Placeholder(r.Rules, ch)
}
