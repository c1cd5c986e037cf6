// Package maskapi exposes the masked input engine over net/http.
//
// POST {base}/api/mask/conform runs one edit through a preset (or an ad-hoc
// pattern) and returns the display value and caret. GET and HEAD on
// {base}/api/mask/presets list the registered presets. Edits are counted in
// prometheus metrics on an injectable Registerer.
package maskapi
