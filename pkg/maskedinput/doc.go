// Package maskedinput is the controller a text field binds to. Each edit runs
// through mask resolution, conformance, the optional correction pipe and
// caret adjustment; the resulting display value is committed as the previous
// value for the next edit. A rejected edit leaves the committed value in
// place. Change listeners may be debounced so that validation-heavy callers
// only see the value once typing pauses.
package maskedinput
