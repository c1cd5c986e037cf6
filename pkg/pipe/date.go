package pipe

import (
	"strconv"
	"strings"

	"github.com/goliatone/go-inputmask/pkg/mask"
)

// DatePipe auto-corrects and validates values typed against a date format
// such as MM-DD-YYYY or HH:mm:ss.
type DatePipe struct {
	format string
	tokens []DateToken
}

var _ Pipe = (*DatePipe)(nil)

// NewAutoCorrectedDate builds a date pipe for format, which uses the tokens
// DD, MM, YY, YYYY, HH, hh, mm, ss, SSS, ZZ, A and a separated by any other
// characters. An empty format means DefaultDateFormat.
func NewAutoCorrectedDate(format string) *DatePipe {
	if strings.TrimSpace(format) == "" {
		format = DefaultDateFormat
	}
	return &DatePipe{
		format: format,
		tokens: TokenizeDateFormat(format),
	}
}

// Format returns the date format the pipe validates against.
func (p *DatePipe) Format() string { return p.format }

// Tokens returns a copy of the tokenized format.
func (p *DatePipe) Tokens() []DateToken {
	return append([]DateToken(nil), p.tokens...)
}

// Pipe shifts an impossible leading digit into the second slot of its field
// (typing 4 for a day yields 04), rejects fields outside their range and,
// once no placeholder remains, rejects dates that do not exist.
func (p *DatePipe) Pipe(conformed string, cfg Config) (Result, bool) {
	ch := cfg.PlaceholderChar
	if ch == 0 {
		ch = mask.DefaultPlaceholderChar
	}

	original := []rune(conformed)
	value := append([]rune(nil), original...)
	indexes := []int{}

	for _, tok := range p.tokens {
		_, max, ok := tok.Bounds()
		if !ok {
			continue
		}
		pos := tok.Offset
		if pos < 0 || pos >= len(value) || tok.Length < 2 {
			continue
		}
		digit, isDigit := digitValue(value[pos])
		if !isDigit || digit <= leadingDigit(max) || cfg.KeepCharPositions {
			continue
		}
		// Without the guide the value may end at the token's first slot.
		if pos+1 == len(value) {
			value = append(value, value[pos])
		} else {
			value[pos+1] = value[pos]
		}
		value[pos] = '0'
		indexes = append(indexes, pos)
	}

	if p.outOfRange(original) {
		return Reject()
	}
	if !containsRune(original, ch) && !calendarValid(original, p.tokens) {
		return Reject()
	}

	return Result{Value: string(value), IndexesOfPipedChars: indexes}, true
}

func (p *DatePipe) outOfRange(value []rune) bool {
	for _, tok := range p.tokens {
		min, max, ok := tok.Bounds()
		if !ok {
			continue
		}
		digits := digitsOf(substr(value, tok.Offset, tok.Length))
		if digits == "" {
			continue
		}
		n, err := strconv.Atoi(digits)
		if err != nil {
			return true
		}
		if n > max || (len(digits) == tok.Length && n < min) {
			return true
		}
	}
	return false
}

func leadingDigit(n int) int {
	if n < 0 {
		n = -n
	}
	for n >= 10 {
		n /= 10
	}
	return n
}

func digitValue(r rune) (int, bool) {
	if r < '0' || r > '9' {
		return 0, false
	}
	return int(r - '0'), true
}

func containsRune(value []rune, r rune) bool {
	for _, c := range value {
		if c == r {
			return true
		}
	}
	return false
}
