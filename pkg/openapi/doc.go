// Package openapi extracts masked form fields from OpenAPI 3 request bodies.
// Object properties are flattened into dotted field names; the x-mask and
// x-mask-pattern schema extensions become field metadata that a presets
// registry turns into mask bindings.
package openapi
