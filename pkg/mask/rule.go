package mask

import (
	"strings"
)

type ruleKind uint8

const (
	kindInvalid ruleKind = iota
	kindLiteral
	kindMatch
	kindCaretTrap
)

// Rule is one mask position. The zero value is invalid; build rules with
// Literal, Match or CaretTrap.
type Rule struct {
	kind    ruleKind
	literal rune
	name    string
	match   Predicate
}

// Literal returns a rule that always holds r. Literals are inserted by the
// conformance engine and are never counted as user input.
func Literal(r rune) Rule {
	return Rule{kind: kindLiteral, literal: r}
}

// Match returns a rule accepting a single rune for which p reports true. A nil
// predicate yields an invalid rule that Resolve rejects.
func Match(name string, p Predicate) Rule {
	if p == nil {
		return Rule{}
	}
	return Rule{kind: kindMatch, name: strings.TrimSpace(name), match: p}
}

// CaretTrap marks a caret stop. It occupies no position: Resolve strips it
// and records the index of the rule that follows it.
var CaretTrap = Rule{kind: kindCaretTrap}

// Common match rules.
var (
	DigitRule        = Match("digit", Digit)
	LetterRule       = Match("letter", Letter)
	AlphanumericRule = Match("alphanumeric", Alphanumeric)
	AnyRule          = Match("any", Any)
)

// IsLiteral reports whether the rule is a literal.
func (r Rule) IsLiteral() bool { return r.kind == kindLiteral }

// IsMatch reports whether the rule is a predicate rule.
func (r Rule) IsMatch() bool { return r.kind == kindMatch }

// IsCaretTrap reports whether the rule is a caret trap marker.
func (r Rule) IsCaretTrap() bool { return r.kind == kindCaretTrap }

// Valid reports whether the rule was built by one of the constructors.
func (r Rule) Valid() bool { return r.kind != kindInvalid }

// Rune returns the literal rune, or 0 for non-literal rules.
func (r Rule) Rune() rune {
	if r.kind != kindLiteral {
		return 0
	}
	return r.literal
}

// Name returns the predicate name of a match rule.
func (r Rule) Name() string { return r.name }

// Test reports whether c satisfies the rule. Literals only accept themselves;
// caret traps and invalid rules accept nothing.
func (r Rule) Test(c rune) bool {
	switch r.kind {
	case kindLiteral:
		return c == r.literal
	case kindMatch:
		return r.match(c)
	default:
		return false
	}
}

func (r Rule) String() string {
	switch r.kind {
	case kindLiteral:
		return string(r.literal)
	case kindMatch:
		if r.name == "" {
			return "{match}"
		}
		return "{" + r.name + "}"
	case kindCaretTrap:
		return "[]"
	default:
		return "{invalid}"
	}
}

// Rules is an ordered mask.
type Rules []Rule

// Literals converts every rune of s into a literal rule.
func Literals(s string) Rules {
	out := make(Rules, 0, len(s))
	for _, r := range s {
		out = append(out, Literal(r))
	}
	return out
}

// Concat joins rule sequences into a new slice.
func Concat(parts ...Rules) Rules {
	size := 0
	for _, part := range parts {
		size += len(part)
	}
	out := make(Rules, 0, size)
	for _, part := range parts {
		out = append(out, part...)
	}
	return out
}

func (rs Rules) String() string {
	var b strings.Builder
	for _, r := range rs {
		b.WriteString(r.String())
	}
	return b.String()
}

// Clone returns a copy that can be modified without affecting rs.
func (rs Rules) Clone() Rules {
	if rs == nil {
		return nil
	}
	return append(Rules(nil), rs...)
}
