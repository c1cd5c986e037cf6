// Package presets bundles mask patterns with correction pipes under stable
// names ("date", "phone-us", ...). Presets come from the built-in table or
// from JSON/YAML documents:
//
//	presets:
//	  birthday:
//	    pattern: "99/99/9999"
//	    pipe: { kind: date, format: MM/DD/YYYY }
//
// A Registry maps form fields to presets, honouring explicit x-mask hints
// before priority-ordered matchers, and can be kept in sync with a directory
// through Watch.
package presets
