package mask

import "strings"

// DefaultPlaceholderChar fills mask positions the user has not typed yet.
const DefaultPlaceholderChar = '_'

// Placeholder renders rules with ch in every match position and the literal
// everywhere else. A literal equal to ch is rejected since the conformance
// engine could no longer tell filler from content.
func Placeholder(rules Rules, ch rune) (string, error) {
	if ch == 0 {
		ch = DefaultPlaceholderChar
	}
	var b strings.Builder
	b.Grow(len(rules))
	for _, rule := range rules {
		switch {
		case rule.IsLiteral():
			if rule.Rune() == ch {
				return "", ErrPlaceholderCollision
			}
			b.WriteRune(rule.Rune())
		case rule.IsMatch():
			b.WriteRune(ch)
		}
	}
	return b.String(), nil
}
