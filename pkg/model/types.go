package model

// FieldType is the simplified enum for form-friendly field kinds.
type FieldType string

const (
	FieldTypeString  FieldType = "string"
	FieldTypeInteger FieldType = "integer"
	FieldTypeNumber  FieldType = "number"
	FieldTypeBoolean FieldType = "boolean"
)

// Metadata keys understood by the presets registry and the renderers.
const (
	MetadataMask            = "mask"
	MetadataMaskPattern     = "maskPattern"
	MetadataMaskPipe        = "maskPipe"
	MetadataMaskPipeFormat  = "maskPipeFormat"
	MetadataPlaceholderChar = "placeholderChar"
)

// MaskBinding is the mask a field is typed against.
type MaskBinding struct {
	Preset            string `json:"preset,omitempty"`
	Pattern           string `json:"pattern"`
	Pipe              string `json:"pipe,omitempty"`
	PipeFormat        string `json:"pipeFormat,omitempty"`
	PlaceholderChar   string `json:"placeholderChar,omitempty"`
	Guide             bool   `json:"guide"`
	KeepCharPositions bool   `json:"keepCharPositions,omitempty"`
	ShowMask          bool   `json:"showMask,omitempty"`
}

// Field models an individual input inside a form.
type Field struct {
	Name        string            `json:"name"`
	Type        FieldType         `json:"type"`
	Format      string            `json:"format,omitempty"`
	Pattern     string            `json:"pattern,omitempty"`
	Required    bool              `json:"required"`
	Label       string            `json:"label,omitempty"`
	Placeholder string            `json:"placeholder,omitempty"`
	Description string            `json:"description,omitempty"`
	Default     any               `json:"default,omitempty"`
	Metadata    map[string]string `json:"metadata,omitempty"`
	UIHints     map[string]string `json:"uiHints,omitempty"`
	Mask        *MaskBinding      `json:"mask,omitempty"`
}

// MaskPreset returns the preset explicitly requested for the field, checking
// metadata before UI hints.
func (f Field) MaskPreset() string {
	if name := f.Metadata[MetadataMask]; name != "" {
		return name
	}
	return f.UIHints[MetadataMask]
}

// FormModel is the top-level representation renderers consume.
type FormModel struct {
	OperationID string            `json:"operationId"`
	Endpoint    string            `json:"endpoint,omitempty"`
	Method      string            `json:"method,omitempty"`
	Summary     string            `json:"summary,omitempty"`
	Description string            `json:"description,omitempty"`
	Fields      []Field           `json:"fields"`
	Metadata    map[string]string `json:"metadata,omitempty"`
}

// Field looks a field up by name.
func (f *FormModel) Field(name string) (*Field, bool) {
	if f == nil {
		return nil, false
	}
	for i := range f.Fields {
		if f.Fields[i].Name == name {
			return &f.Fields[i], true
		}
	}
	return nil, false
}

// MaskedFields returns the fields that carry a mask binding.
func (f FormModel) MaskedFields() []Field {
	var out []Field
	for _, field := range f.Fields {
		if field.Mask != nil {
			out = append(out, field)
		}
	}
	return out
}
