package mask

import (
	"regexp"
	"strings"
	"unicode"
)

// Predicate tests a single input rune for a Match rule.
type Predicate func(r rune) bool

// Digit accepts ASCII digits.
func Digit(r rune) bool {
	return r >= '0' && r <= '9'
}

// Letter accepts any Unicode letter.
func Letter(r rune) bool {
	return unicode.IsLetter(r)
}

// Alphanumeric accepts letters and ASCII digits.
func Alphanumeric(r rune) bool {
	return Letter(r) || Digit(r)
}

// Any accepts every rune.
func Any(rune) bool {
	return true
}

// OneOf accepts runes contained in chars.
func OneOf(chars string) Predicate {
	return func(r rune) bool {
		return strings.ContainsRune(chars, r)
	}
}

// Regexp adapts a compiled expression to a single-rune predicate. The
// expression is evaluated against the rune as a one-character string.
func Regexp(re *regexp.Regexp) Predicate {
	if re == nil {
		return nil
	}
	return func(r rune) bool {
		return re.MatchString(string(r))
	}
}

// And accepts runes both predicates accept.
func (p Predicate) And(other Predicate) Predicate {
	return func(r rune) bool {
		return p(r) && other(r)
	}
}

// Or accepts runes either predicate accepts.
func (p Predicate) Or(other Predicate) Predicate {
	return func(r rune) bool {
		return p(r) || other(r)
	}
}

// Not inverts the predicate.
func (p Predicate) Not() Predicate {
	return func(r rune) bool {
		return !p(r)
	}
}
