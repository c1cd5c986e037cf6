package presets

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/goliatone/go-inputmask/pkg/mask"
	"github.com/goliatone/go-inputmask/pkg/maskedinput"
	"github.com/goliatone/go-inputmask/pkg/model"
	"github.com/goliatone/go-inputmask/pkg/pipe"
)

// Pipe kinds understood by PipeConfig.
const (
	PipeKindNone = ""
	PipeKindDate = "date"
)

// PipeConfig selects the correction pipe of a preset.
type PipeConfig struct {
	Kind   string `json:"kind" yaml:"kind"`
	Format string `json:"format,omitempty" yaml:"format,omitempty"`
}

// Preset is a named mask definition.
type Preset struct {
	Name              string      `json:"name" yaml:"name,omitempty"`
	Description       string      `json:"description,omitempty" yaml:"description,omitempty"`
	Pattern           string      `json:"pattern" yaml:"pattern"`
	Pipe              *PipeConfig `json:"pipe,omitempty" yaml:"pipe,omitempty"`
	PlaceholderChar   string      `json:"placeholderChar,omitempty" yaml:"placeholderChar,omitempty"`
	Guide             *bool       `json:"guide,omitempty" yaml:"guide,omitempty"`
	KeepCharPositions bool        `json:"keepCharPositions,omitempty" yaml:"keepCharPositions,omitempty"`
	ShowMask          bool        `json:"showMask,omitempty" yaml:"showMask,omitempty"`
	AllowReplacing    bool        `json:"allowReplacing,omitempty" yaml:"allowReplacing,omitempty"`
}

// Validate checks that the pattern parses, the placeholder character is a
// single rune absent from the pattern's literals and the pipe kind is known.
func (p Preset) Validate() error {
	if strings.TrimSpace(p.Name) == "" {
		return fmt.Errorf("%w: name is required", ErrInvalidPreset)
	}
	if utf8.RuneCountInString(p.PlaceholderChar) > 1 {
		return fmt.Errorf("%w: %q placeholderChar must be a single character", ErrInvalidPreset, p.Name)
	}
	rules, err := p.Rules()
	if err != nil {
		return fmt.Errorf("%w: %q: %w", ErrInvalidPreset, p.Name, err)
	}
	if _, err := mask.Placeholder(rules, p.PlaceholderRune()); err != nil {
		return fmt.Errorf("%w: %q: %w", ErrInvalidPreset, p.Name, err)
	}
	if _, err := p.BuildPipe(); err != nil {
		return fmt.Errorf("%w: %q: %w", ErrInvalidPreset, p.Name, err)
	}
	return nil
}

// Rules parses the preset pattern.
func (p Preset) Rules() (mask.Rules, error) {
	return mask.Parse(p.Pattern)
}

// PlaceholderRune returns the configured placeholder character or the
// default.
func (p Preset) PlaceholderRune() rune {
	if r, _ := utf8.DecodeRuneInString(p.PlaceholderChar); r != utf8.RuneError {
		return r
	}
	return mask.DefaultPlaceholderChar
}

// GuideEnabled reports the guide setting, defaulting to true.
func (p Preset) GuideEnabled() bool {
	return p.Guide == nil || *p.Guide
}

// BuildPipe returns the preset's pipe, or nil when it has none.
func (p Preset) BuildPipe() (pipe.Pipe, error) {
	if p.Pipe == nil {
		return nil, nil
	}
	switch strings.ToLower(strings.TrimSpace(p.Pipe.Kind)) {
	case PipeKindNone:
		return nil, nil
	case PipeKindDate:
		return pipe.NewAutoCorrectedDate(p.Pipe.Format), nil
	default:
		return nil, fmt.Errorf("%w %q", ErrUnknownPipe, p.Pipe.Kind)
	}
}

// PipeKind returns the normalised pipe kind.
func (p Preset) PipeKind() string {
	if p.Pipe == nil {
		return PipeKindNone
	}
	return strings.ToLower(strings.TrimSpace(p.Pipe.Kind))
}

// Config builds the maskedinput configuration for the preset.
func (p Preset) Config() (maskedinput.Config, error) {
	rules, err := p.Rules()
	if err != nil {
		return maskedinput.Config{}, fmt.Errorf("presets: %q: %w", p.Name, err)
	}
	pp, err := p.BuildPipe()
	if err != nil {
		return maskedinput.Config{}, err
	}
	guide := p.GuideEnabled()
	return maskedinput.Config{
		Mask:              mask.Static(rules...),
		Pipe:              pp,
		Guide:             &guide,
		PlaceholderChar:   p.PlaceholderRune(),
		KeepCharPositions: p.KeepCharPositions,
		ShowMask:          p.ShowMask,
		AllowReplacing:    p.AllowReplacing,
	}, nil
}

// Placeholder returns the placeholder string the preset displays.
func (p Preset) Placeholder() (string, error) {
	rules, err := p.Rules()
	if err != nil {
		return "", err
	}
	resolved, err := mask.Resolve(mask.Static(rules...), "", mask.SelectInfo{})
	if err != nil {
		return "", err
	}
	return resolved.Placeholder(p.PlaceholderRune())
}

// Binding describes the preset as a model.MaskBinding.
func (p Preset) Binding() model.MaskBinding {
	binding := model.MaskBinding{
		Preset:            p.Name,
		Pattern:           p.Pattern,
		PlaceholderChar:   string(p.PlaceholderRune()),
		Guide:             p.GuideEnabled(),
		KeepCharPositions: p.KeepCharPositions,
		ShowMask:          p.ShowMask,
	}
	if p.Pipe != nil {
		binding.Pipe = p.PipeKind()
		binding.PipeFormat = p.Pipe.Format
		if binding.Pipe == PipeKindDate && binding.PipeFormat == "" {
			binding.PipeFormat = pipe.DefaultDateFormat
		}
	}
	return binding
}

// FromBinding rebuilds a preset from a decorated field's mask binding.
func FromBinding(b model.MaskBinding) Preset {
	guide := b.Guide
	p := Preset{
		Name:              b.Preset,
		Pattern:           b.Pattern,
		PlaceholderChar:   b.PlaceholderChar,
		Guide:             &guide,
		KeepCharPositions: b.KeepCharPositions,
		ShowMask:          b.ShowMask,
	}
	if b.Pipe != "" {
		p.Pipe = &PipeConfig{Kind: b.Pipe, Format: b.PipeFormat}
	}
	return p
}

func (p Preset) clone() Preset {
	out := p
	if p.Pipe != nil {
		pc := *p.Pipe
		out.Pipe = &pc
	}
	if p.Guide != nil {
		g := *p.Guide
		out.Guide = &g
	}
	return out
}
