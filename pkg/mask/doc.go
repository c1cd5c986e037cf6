// Package mask describes the shape a masked input must take.
//
// A mask is an ordered sequence of Rules. Literal rules are inserted
// automatically and never count as user input; Match rules accept a single
// rune when their Predicate passes. A Spec wraps either a fixed sequence, a
// Selector that derives the sequence from the raw input on every edit, or the
// disabled mask. Resolve turns a Spec into the concrete Rules for one edit.
package mask
