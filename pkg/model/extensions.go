package model

import (
	"encoding/json"
	"strconv"
)

// Extension names read from schema properties.
const (
	ExtensionMask        = "x-mask"
	ExtensionMaskPattern = "x-mask-pattern"
)

// ParseMaskExtensions converts x-mask / x-mask-pattern extension values into
// field metadata. x-mask is either a preset name or an object with preset,
// pattern, pipe, format and placeholderChar members.
func ParseMaskExtensions(extensions map[string]any) map[string]string {
	metadata := map[string]string{}

	switch value := extensions[ExtensionMask].(type) {
	case map[string]any:
		copyExtension(metadata, MetadataMask, value["preset"])
		copyExtension(metadata, MetadataMaskPattern, value["pattern"])
		copyExtension(metadata, MetadataMaskPipe, value["pipe"])
		copyExtension(metadata, MetadataMaskPipeFormat, value["format"])
		copyExtension(metadata, MetadataPlaceholderChar, value["placeholderChar"])
	case json.RawMessage:
		var decoded any
		if err := json.Unmarshal(value, &decoded); err == nil {
			return ParseMaskExtensions(map[string]any{
				ExtensionMask:        decoded,
				ExtensionMaskPattern: extensions[ExtensionMaskPattern],
			})
		}
	default:
		copyExtension(metadata, MetadataMask, value)
	}

	copyExtension(metadata, MetadataMaskPattern, extensions[ExtensionMaskPattern])

	if len(metadata) == 0 {
		return nil
	}
	return metadata
}

func copyExtension(dst map[string]string, key string, value any) {
	if raw, ok := value.(json.RawMessage); ok {
		var decoded any
		if err := json.Unmarshal(raw, &decoded); err != nil {
			return
		}
		value = decoded
	}
	if s, ok := CanonicalizeExtensionValue(value); ok {
		dst[key] = s
	}
}

// CanonicalizeExtensionValue turns scalar extension values into strings.
// Returns false for empty or composite values.
func CanonicalizeExtensionValue(value any) (string, bool) {
	switch v := value.(type) {
	case string:
		return v, v != ""
	case bool:
		return strconv.FormatBool(v), true
	case int:
		return strconv.Itoa(v), true
	case int64:
		return strconv.FormatInt(v, 10), true
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64), true
	case interface{ String() string }:
		s := v.String()
		return s, s != ""
	default:
		return "", false
	}
}
