package pipe

// DefaultDateFormat is used when NewAutoCorrectedDate receives an empty format.
const DefaultDateFormat = "MM-DD-YYYY"

// DateToken is one named field of a date format, located at the first index
// where its text occurs in the format.
type DateToken struct {
	Name   string
	Offset int
	Length int
}

type bounds struct {
	min int
	max int
}

// Bounds are fixed per token name.
var dateBounds = map[string]bounds{
	"DD":   {min: 1, max: 31},
	"MM":   {min: 1, max: 12},
	"YY":   {min: 0, max: 99},
	"YYYY": {min: 1, max: 9999},
	"HH":   {min: 0, max: 23},
	"hh":   {min: 0, max: 12},
	"mm":   {min: 0, max: 59},
	"ss":   {min: 0, max: 59},
	"SSS":  {min: 0, max: 999},
	"ZZ":   {min: -1200, max: 1400},
}

// Bounds reports the inclusive numeric range of the token. Free-text tokens
// such as A/a and unknown letter runs have none.
func (t DateToken) Bounds() (min, max int, ok bool) {
	b, ok := dateBounds[t.Name]
	return b.min, b.max, ok
}

func isDateFormatRune(r rune) bool {
	switch r {
	case 'D', 'M', 'Y', 'H', 'h', 'm', 's', 'S', 'Z', 'A', 'a':
		return true
	default:
		return false
	}
}

// TokenizeDateFormat splits format on every run of runes outside the token
// vocabulary. Offsets and lengths are in runes.
func TokenizeDateFormat(format string) []DateToken {
	runes := []rune(format)
	var tokens []DateToken
	start := -1
	for i := 0; i <= len(runes); i++ {
		inToken := i < len(runes) && isDateFormatRune(runes[i])
		switch {
		case inToken && start < 0:
			start = i
		case !inToken && start >= 0:
			name := runes[start:i]
			tokens = append(tokens, DateToken{
				Name:   string(name),
				Offset: indexRunes(runes, name),
				Length: len(name),
			})
			start = -1
		}
	}
	return tokens
}

func indexRunes(haystack, needle []rune) int {
	for i := 0; i+len(needle) <= len(haystack); i++ {
		match := true
		for j := range needle {
			if haystack[i+j] != needle[j] {
				match = false
				break
			}
		}
		if match {
			return i
		}
	}
	return -1
}

func substr(value []rune, offset, length int) []rune {
	if offset < 0 || offset >= len(value) {
		return nil
	}
	end := offset + length
	if end > len(value) {
		end = len(value)
	}
	return value[offset:end]
}

func digitsOf(value []rune) string {
	out := make([]rune, 0, len(value))
	for _, r := range value {
		if r >= '0' && r <= '9' {
			out = append(out, r)
		}
	}
	return string(out)
}
