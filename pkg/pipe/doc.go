// Package pipe defines the post-conformance correction step and ships the
// auto-correcting date pipe.
//
// A Pipe receives the conformed value and may rewrite it, reporting the
// indexes it changed so callers can keep the caret in place, or reject the
// edit outright by returning ok == false. Rejection is ordinary control flow,
// not an error: the caller keeps showing its previous value.
package pipe
