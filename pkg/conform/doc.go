// Package conform aligns raw input against a resolved mask.
//
// Conform walks the raw runes and the mask positions together, auto-inserting
// literals, dropping runes no rule accepts and filling the rest with the
// placeholder character. It compares the edit with the previously conformed
// value to detect deletions, so that separators inserted by the mask never
// have to be deleted twice. AdjustCaret computes where the caret should land
// once the final value (possibly rewritten by a pipe) is known.
package conform
