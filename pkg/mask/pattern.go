package mask

import (
	"fmt"
	"strings"
)

// Pattern shorthand tokens understood by Parse.
const (
	PatternDigit        = '9'
	PatternLetter       = 'a'
	PatternAlphanumeric = '*'
	PatternEscape       = '\\'
)

// Parse builds rules from a compact pattern such as "(999) 999-9999":
//
//	9   digit
//	a   letter
//	*   letter or digit
//	\x  literal x (escapes the tokens above)
//	[]  caret trap
//
// Every other rune is a literal.
func Parse(pattern string) (Rules, error) {
	if strings.TrimSpace(pattern) == "" {
		return nil, fmt.Errorf("%w: pattern is empty", ErrInvalidPattern)
	}
	runes := []rune(pattern)
	rules := make(Rules, 0, len(runes))
	for i := 0; i < len(runes); i++ {
		switch r := runes[i]; {
		case r == PatternEscape:
			if i+1 >= len(runes) {
				return nil, fmt.Errorf("%w: dangling escape at %d", ErrInvalidPattern, i)
			}
			i++
			rules = append(rules, Literal(runes[i]))
		case r == '[' && i+1 < len(runes) && runes[i+1] == ']':
			i++
			rules = append(rules, CaretTrap)
		case r == PatternDigit:
			rules = append(rules, DigitRule)
		case r == PatternLetter:
			rules = append(rules, LetterRule)
		case r == PatternAlphanumeric:
			rules = append(rules, AlphanumericRule)
		default:
			rules = append(rules, Literal(r))
		}
	}
	return rules, nil
}

// MustParse is Parse for package-level mask definitions; it panics on error.
func MustParse(pattern string) Rules {
	rules, err := Parse(pattern)
	if err != nil {
		panic(err)
	}
	return rules
}

// FromPattern parses pattern into a static Spec.
func FromPattern(pattern string) (Spec, error) {
	rules, err := Parse(pattern)
	if err != nil {
		return Spec{}, err
	}
	return Static(rules...), nil
}
