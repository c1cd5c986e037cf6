package conform

import (
	"github.com/goliatone/go-inputmask/pkg/mask"
)

// Config carries the edit context for a single Conform call.
type Config struct {
	// Previous is the value displayed before this edit.
	Previous string
	// PreviousPlaceholder is the placeholder the previous value was conformed
	// against. Defaults to the current placeholder.
	PreviousPlaceholder string
	// Placeholder overrides the placeholder derived from the rules.
	Placeholder string
	// PlaceholderChar defaults to mask.DefaultPlaceholderChar.
	PlaceholderChar rune
	// NoGuide omits unfilled positions instead of showing placeholders.
	NoGuide bool
	// KeepCharPositions stops insertions and deletions from shifting the
	// runes that follow the edit.
	KeepCharPositions bool
	// CaretPosition is the caret index in the raw input after the edit.
	// Negative values mean the end of the raw input.
	CaretPosition int
	// CaretTrapIndexes are extra caret stops from mask.Resolved.
	CaretTrapIndexes []int
}

// Result is the outcome of Conform.
type Result struct {
	Value             string
	CaretPosition     int
	Placeholder       string
	SomeCharsRejected bool
	// Raw and RawCaret are the input and caret after deletion handling; feed
	// them to AdjustCaret when a pipe rewrites Value.
	Raw      string
	RawCaret int
}

type cell struct {
	char  rune
	isNew bool
}

// Conform maps raw onto rules. It never fails on input content: runes no rule
// accepts are dropped. The only error is a placeholder collision.
func Conform(raw string, rules mask.Rules, cfg Config) (Result, error) {
	ch := cfg.PlaceholderChar
	if ch == 0 {
		ch = mask.DefaultPlaceholderChar
	}

	placeholderStr := cfg.Placeholder
	if placeholderStr == "" {
		var err error
		placeholderStr, err = mask.Placeholder(rules, ch)
		if err != nil {
			return Result{}, err
		}
	}
	placeholder := []rune(placeholderStr)
	previousPlaceholder := placeholder
	if cfg.PreviousPlaceholder != "" {
		previousPlaceholder = []rune(cfg.PreviousPlaceholder)
	}

	previous := []rune(cfg.Previous)
	input := []rune(raw)
	caret := cfg.CaretPosition
	if caret < 0 || caret > len(input) {
		caret = len(input)
	}

	input, caret = dropUserRuneBeforeLiteral(input, previous, previousPlaceholder, caret, ch, cfg.KeepCharPositions)

	value, rejected := conformRunes(input, previous, rules, placeholder, ch, caret, cfg)

	caretPos := AdjustCaret(CaretInput{
		Previous:            cfg.Previous,
		PreviousPlaceholder: string(previousPlaceholder),
		Conformed:           value,
		Raw:                 string(input),
		Placeholder:         placeholderStr,
		PlaceholderChar:     ch,
		CaretPosition:       caret,
		CaretTrapIndexes:    cfg.CaretTrapIndexes,
	})

	return Result{
		Value:             value,
		CaretPosition:     caretPos,
		Placeholder:       placeholderStr,
		SomeCharsRejected: rejected,
		Raw:               string(input),
		RawCaret:          caret,
	}, nil
}

// dropUserRuneBeforeLiteral handles a single-rune deletion that removed a
// mask literal: the nearest user rune left of the caret is deleted as well,
// otherwise the literal would simply be inserted again.
func dropUserRuneBeforeLiteral(input, previous, previousPlaceholder []rune, caret int, ch rune, keep bool) ([]rune, int) {
	if len(previous) == 0 || len(input) != len(previous)-1 {
		return input, caret
	}
	if caret >= len(previous) || caret >= len(previousPlaceholder) {
		return input, caret
	}
	literal := previousPlaceholder[caret]
	if literal == ch || previous[caret] != literal {
		return input, caret
	}
	if !equalRunes(previous[:caret], input[:caret]) || !equalRunes(previous[caret+1:], input[caret:]) {
		return input, caret
	}

	for j := caret - 1; j >= 0; j-- {
		if j >= len(previousPlaceholder) || previousPlaceholder[j] != ch || input[j] == ch {
			continue
		}
		out := append([]rune(nil), input...)
		if keep {
			out[j] = ch
			return out, caret
		}
		out = append(out[:j], out[j+1:]...)
		return out, caret - 1
	}
	return input, caret
}

func conformRunes(input, previous []rune, rules mask.Rules, placeholder []rune, ch rune, caret int, cfg Config) (string, bool) {
	rawLen := len(input)
	prevLen := len(previous)
	maskLen := len(placeholder)

	editDistance := rawLen - prevLen
	isAddition := editDistance > 0
	firstChange := caret
	if isAddition {
		firstChange -= editDistance
	}
	lastChange := firstChange + abs(editDistance)

	if cfg.KeepCharPositions && !isAddition {
		// Deleted placeholder positions are refilled so later runes stay put.
		var compensating []rune
		for i := firstChange; i < lastChange; i++ {
			if i >= 0 && i < maskLen && placeholder[i] == ch {
				compensating = append(compensating, ch)
			}
		}
		if len(compensating) > 0 {
			at := clamp(firstChange, 0, rawLen)
			expanded := make([]rune, 0, rawLen+len(compensating))
			expanded = append(expanded, input[:at]...)
			expanded = append(expanded, compensating...)
			expanded = append(expanded, input[at:]...)
			input = expanded
		}
	}

	cells := make([]cell, len(input))
	for i, r := range input {
		cells[i] = cell{char: r, isNew: i >= firstChange && i < lastChange}
	}

	// Literals already sitting in their slot are removed; the loop below
	// re-inserts them.
	for i := len(cells) - 1; i >= 0; i-- {
		r := cells[i].char
		if r == ch {
			continue
		}
		idx := i
		if i >= firstChange && prevLen == maskLen {
			idx = i - editDistance
		}
		if idx >= 0 && idx < maskLen && r == placeholder[idx] {
			cells = append(cells[:i], cells[i+1:]...)
		}
	}

	suppressGuide := cfg.NoGuide
	out := make([]rune, 0, maskLen)
	rejected := false

placeholderLoop:
	for i := 0; i < maskLen; i++ {
		if placeholder[i] != ch {
			out = append(out, placeholder[i])
			continue
		}

		for len(cells) > 0 {
			current := cells[0]
			cells = cells[1:]

			if current.char == ch && !suppressGuide {
				out = append(out, ch)
				continue placeholderLoop
			}
			if i < len(rules) && rules[i].Test(current.char) {
				if !cfg.KeepCharPositions || !current.isNew || prevLen == 0 || suppressGuide || !isAddition {
					out = append(out, current.char)
					continue placeholderLoop
				}
				// Keeping positions: the new rune takes the place of the next
				// free placeholder instead of pushing later runes right.
				free := -1
				for k, next := range cells {
					if next.char != ch && !next.isNew {
						break
					}
					if next.char == ch {
						free = k
						break
					}
				}
				if free >= 0 {
					out = append(out, current.char)
					cells = append(cells[:free], cells[free+1:]...)
				} else {
					i--
				}
				continue placeholderLoop
			}
			rejected = true
		}

		if !suppressGuide {
			out = append(out, placeholder[i:]...)
		}
		break
	}

	if suppressGuide && !isAddition {
		last := -1
		for i := range out {
			if placeholder[i] == ch {
				last = i
			}
		}
		out = out[:last+1]
	}

	return string(out), rejected
}

func equalRunes(a, b []rune) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}

func clamp(n, lo, hi int) int {
	if n < lo {
		return lo
	}
	if n > hi {
		return hi
	}
	return n
}
