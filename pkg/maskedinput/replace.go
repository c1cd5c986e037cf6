package maskedinput

// replaceAtCaret turns an insertion into a fully filled value into an
// overwrite: the first user rune after the inserted one is dropped so the
// edit reaches the conformer as a same-length replacement.
func replaceAtCaret(raw, previous, placeholder string, caret int, ch rune) string {
	rawRunes := []rune(raw)
	prev := []rune(previous)
	ph := []rune(placeholder)

	if caret <= 0 || len(prev) == 0 || len(prev) != len(ph) || len(rawRunes) != len(prev)+1 {
		return raw
	}
	for _, r := range prev {
		if r == ch {
			return raw
		}
	}

	for j := caret; j < len(rawRunes); j++ {
		// rawRunes[j] is previous[j-1] shifted right by the insertion.
		if ph[j-1] != ch {
			continue
		}
		out := append([]rune(nil), rawRunes[:j]...)
		out = append(out, rawRunes[j+1:]...)
		return string(out)
	}
	return raw
}
