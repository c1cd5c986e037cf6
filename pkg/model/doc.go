// Package model defines the field descriptors shared by the OpenAPI extractor,
// the presets registry and the renderers. Fields are flat: nested object
// properties are flattened into dotted names before they reach this package.
// Mask bindings travel in Field.Metadata under the MetadataMask* keys so that
// JSON snapshots stay deterministic; Field.Mask carries the resolved binding
// once a presets registry has decorated the form.
package model
