package conform

import (
	"unicode"

	"github.com/goliatone/go-inputmask/pkg/mask"
)

// CaretInput is everything AdjustCaret needs to place the caret after an
// edit. Raw and CaretPosition describe the input as typed, Conformed is the
// value that will be displayed.
type CaretInput struct {
	Previous            string
	PreviousPlaceholder string
	Conformed           string
	Raw                 string
	Placeholder         string
	PlaceholderChar     rune
	CaretPosition       int
	IndexesOfPipedChars []int
	CaretTrapIndexes    []int
}

// AdjustCaret returns the caret index for the conformed value. The caret
// follows the last rune the user actually edited: additions skip past
// auto-inserted literals to the next free position, deletions stop right
// after the nearest fillable position so literals never need deleting twice.
func AdjustCaret(in CaretInput) int {
	raw := []rune(in.Raw)
	caret := in.CaretPosition
	if caret <= 0 || len(raw) == 0 {
		return 0
	}
	if caret > len(raw) {
		caret = len(raw)
	}

	ch := in.PlaceholderChar
	if ch == 0 {
		ch = mask.DefaultPlaceholderChar
	}
	previous := []rune(in.Previous)
	conformed := []rune(in.Conformed)
	placeholder := []rune(in.Placeholder)
	previousPlaceholder := []rune(in.PreviousPlaceholder)

	editLength := len(raw) - len(previous)
	isAddition := editLength > 0
	possiblyRejected := isAddition && (in.Previous == in.Conformed || in.Conformed == in.Placeholder)

	start := 0
	trackRight := false
	target := rune(-1)

	if possiblyRejected {
		start = caret - editLength
	} else {
		lowerConformed := lowerRunes(conformed)
		lowerRaw := lowerRunes(raw)

		var intersection []rune
		for _, r := range lowerRaw[:caret] {
			if containsRune(lowerConformed, r) {
				intersection = append(intersection, r)
			}
		}
		n := len(intersection)
		if n > 0 {
			target = intersection[n-1]
		}

		previousLeftMask := countLiterals(previousPlaceholder, n, ch)
		leftMask := countLiterals(placeholder, n, ch)
		maskLengthChanged := leftMask != previousLeftMask

		prevAt, prevOK := runeAt(previousPlaceholder, n-1)
		curAt, _ := runeAt(placeholder, n-1)
		shiftedAt, shiftedOK := runeAt(placeholder, n-2)
		maskMovingLeft := prevOK && shiftedOK &&
			prevAt != ch &&
			prevAt != curAt &&
			prevAt == shiftedAt

		if !isAddition &&
			(maskLengthChanged || maskMovingLeft) &&
			previousLeftMask > 0 &&
			target != -1 && containsRune(placeholder, target) &&
			caret < len(raw) {
			trackRight = true
			target = unicode.ToLower(raw[caret])
		}

		piped := 0
		for _, idx := range in.IndexesOfPipedChars {
			if idx >= 0 && idx < len(lowerConformed) && lowerConformed[idx] == target {
				piped++
			}
		}

		inIntersection := 0
		for _, r := range intersection {
			if r == target {
				inIntersection++
			}
		}

		inPlaceholder := 0
		firstFree := indexRune(placeholder, ch)
		for idx := 0; idx < firstFree; idx++ {
			if placeholder[idx] == target && (idx >= len(raw) || raw[idx] != placeholder[idx]) {
				inPlaceholder++
			}
		}

		required := inPlaceholder + inIntersection + piped
		if trackRight {
			required++
		}

		matches := 0
		for i, r := range lowerConformed {
			start = i + 1
			if r == target {
				matches++
			}
			if matches >= required {
				break
			}
		}
	}

	switch {
	case isAddition:
		last := start
		for i := start; i <= len(placeholder); i++ {
			free := i >= 0 && i < len(placeholder) && placeholder[i] == ch
			if free {
				last = i
			}
			if free || containsInt(in.CaretTrapIndexes, i) || i == len(placeholder) {
				return last
			}
		}
	case trackRight:
		for i := start - 1; i >= 0; i-- {
			if (i < len(conformed) && conformed[i] == target) || containsInt(in.CaretTrapIndexes, i) || i == 0 {
				return i
			}
		}
	default:
		for i := start; i >= 0; i-- {
			before, ok := runeAt(placeholder, i-1)
			if (ok && before == ch) || containsInt(in.CaretTrapIndexes, i) || i == 0 {
				return i
			}
		}
	}

	return clamp(caret, 0, len(conformed))
}

func lowerRunes(in []rune) []rune {
	out := make([]rune, len(in))
	for i, r := range in {
		out[i] = unicode.ToLower(r)
	}
	return out
}

func countLiterals(placeholder []rune, n int, ch rune) int {
	if n > len(placeholder) {
		n = len(placeholder)
	}
	count := 0
	for _, r := range placeholder[:n] {
		if r != ch {
			count++
		}
	}
	return count
}

func runeAt(s []rune, i int) (rune, bool) {
	if i < 0 || i >= len(s) {
		return 0, false
	}
	return s[i], true
}

func containsRune(s []rune, r rune) bool {
	return indexRune(s, r) >= 0
}

func indexRune(s []rune, r rune) int {
	for i, c := range s {
		if c == r {
			return i
		}
	}
	return -1
}

func containsInt(values []int, v int) bool {
	for _, candidate := range values {
		if candidate == v {
			return true
		}
	}
	return false
}
