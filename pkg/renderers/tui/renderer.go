package tui

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/goliatone/go-inputmask/pkg/maskedinput"
	"github.com/goliatone/go-inputmask/pkg/model"
	"github.com/goliatone/go-inputmask/pkg/presets"
)

// Renderer prompts for every field of a form in the terminal. Masked fields
// are run through a maskedinput.Input and asked again until the answer is
// accepted and complete.
type Renderer struct {
	driver       PromptDriver
	outputFormat OutputFormat
	logger       *zap.Logger
	prefill      map[string]any
}

// New constructs a TUI renderer with defaults (survey driver, JSON output).
func New(options ...Option) *Renderer {
	r := &Renderer{
		driver:       newSurveyDriver(),
		outputFormat: OutputFormatJSON,
		logger:       zap.NewNop(),
	}
	for _, opt := range options {
		if opt != nil {
			opt(r)
		}
	}
	return r
}

// Name reports the renderer identifier.
func (r *Renderer) Name() string {
	return "tui"
}

// ContentType reports the serialization format used by Render.
func (r *Renderer) ContentType() string {
	if r.outputFormat == OutputFormatPrettyText {
		return "text/plain"
	}
	return "application/json"
}

// Render prompts for each field in order and serializes the answers.
func (r *Renderer) Render(ctx context.Context, form model.FormModel) ([]byte, error) {
	if ctx == nil {
		return nil, errors.New("tui: context is required")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if r.driver == nil {
		return nil, ErrNoDriver
	}

	state := NewState(r.prefill)
	for _, field := range form.Fields {
		if err := r.promptField(ctx, field, state); err != nil {
			return nil, err
		}
	}
	return r.serialize(form, state)
}

func (r *Renderer) promptField(ctx context.Context, field model.Field, state *State) error {
	switch {
	case field.Mask != nil:
		return r.promptMasked(ctx, field, state)
	case field.Type == model.FieldTypeBoolean:
		return r.promptBoolean(ctx, field, state)
	case field.Type == model.FieldTypeInteger || field.Type == model.FieldTypeNumber:
		return r.promptNumber(ctx, field, state)
	default:
		return r.promptString(ctx, field, state)
	}
}

func (r *Renderer) promptMasked(ctx context.Context, field model.Field, state *State) error {
	preset := presets.FromBinding(*field.Mask)
	cfg, err := preset.Config()
	if err != nil {
		return fmt.Errorf("tui: field %s: %w", field.Name, err)
	}
	placeholder, err := preset.Placeholder()
	if err != nil {
		return fmt.Errorf("tui: field %s: %w", field.Name, err)
	}

	message := fmt.Sprintf("%s (%s)", displayLabel(field), placeholder)
	defaultVal := r.maskedDefault(state, field)

	for {
		resp, err := r.driver.Input(ctx, InputConfig{
			Message: message,
			Default: defaultVal,
			Help:    displayHelp(field),
		})
		if err != nil {
			return err
		}
		if strings.TrimSpace(resp) == "" {
			if field.Required {
				_ = r.driver.Info(ctx, fmt.Sprintf("%s is required", displayLabel(field)))
				continue
			}
			return nil
		}

		change, err := r.conform(cfg, resp)
		if err != nil {
			return fmt.Errorf("tui: field %s: %w", field.Name, err)
		}
		switch {
		case change.Rejected:
			_ = r.driver.Info(ctx, fmt.Sprintf("Invalid %s: %q", field.Name, resp))
			continue
		case !change.Complete:
			_ = r.driver.Info(ctx, fmt.Sprintf("Incomplete %s: %s", field.Name, change.Value))
			continue
		}
		return state.SetValue(field.Name, change.Value)
	}
}

func (r *Renderer) conform(cfg maskedinput.Config, raw string) (maskedinput.Change, error) {
	in, err := maskedinput.New(cfg, maskedinput.WithLogger(r.logger))
	if err != nil {
		return maskedinput.Change{}, err
	}
	defer in.Close()
	return in.Update(raw, -1)
}

func (r *Renderer) promptString(ctx context.Context, field model.Field, state *State) error {
	for {
		resp, err := r.driver.Input(ctx, InputConfig{
			Message: displayLabel(field),
			Default: defaultString(state, field),
			Help:    displayHelp(field),
		})
		if err != nil {
			return err
		}
		if strings.TrimSpace(resp) == "" {
			if field.Required {
				_ = r.driver.Info(ctx, fmt.Sprintf("%s is required", displayLabel(field)))
				continue
			}
			return nil
		}
		return state.SetValue(field.Name, resp)
	}
}

func (r *Renderer) promptNumber(ctx context.Context, field model.Field, state *State) error {
	for {
		resp, err := r.driver.Input(ctx, InputConfig{
			Message: displayLabel(field),
			Default: defaultString(state, field),
			Help:    displayHelp(field),
		})
		if err != nil {
			return err
		}
		resp = strings.TrimSpace(resp)
		if resp == "" && !field.Required {
			return nil
		}
		if field.Type == model.FieldTypeInteger {
			n, err := strconv.ParseInt(resp, 10, 64)
			if err != nil {
				_ = r.driver.Info(ctx, fmt.Sprintf("Invalid %s: expected an integer", field.Name))
				continue
			}
			return state.SetValue(field.Name, n)
		}
		f, err := strconv.ParseFloat(resp, 64)
		if err != nil {
			_ = r.driver.Info(ctx, fmt.Sprintf("Invalid %s: expected a number", field.Name))
			continue
		}
		return state.SetValue(field.Name, f)
	}
}

func (r *Renderer) promptBoolean(ctx context.Context, field model.Field, state *State) error {
	def, _ := state.GetValue(field.Name)
	if def == nil {
		def = field.Default
	}
	defaultVal, _ := def.(bool)
	resp, err := r.driver.Confirm(ctx, ConfirmConfig{
		Message: displayLabel(field),
		Default: defaultVal,
		Help:    displayHelp(field),
	})
	if err != nil {
		return err
	}
	return state.SetValue(field.Name, resp)
}

func (r *Renderer) serialize(form model.FormModel, state *State) ([]byte, error) {
	if r.outputFormat != OutputFormatPrettyText {
		return json.MarshalIndent(state.Values(), "", "  ")
	}
	names := make([]string, 0, len(form.Fields))
	for _, field := range form.Fields {
		names = append(names, field.Name)
	}
	sort.Strings(names)
	var b strings.Builder
	for _, name := range names {
		if v, ok := state.GetValue(name); ok {
			fmt.Fprintf(&b, "%s: %v\n", name, v)
		}
	}
	return []byte(b.String()), nil
}

func displayLabel(field model.Field) string {
	if field.Label != "" {
		return field.Label
	}
	return field.Name
}

func displayHelp(field model.Field) string {
	if h := field.UIHints["helpText"]; h != "" {
		return h
	}
	return field.Description
}

// maskedDefault renders the stored or declared value of a masked field as
// typed input. Values that cannot be typed are dropped.
func (r *Renderer) maskedDefault(state *State, field model.Field) string {
	v, ok := state.GetValue(field.Name)
	if !ok || v == nil {
		v = field.Default
	}
	raw, err := maskedinput.SafeRawValue(v)
	if err != nil {
		r.logger.Debug("dropping masked default", zap.String("field", field.Name), zap.Error(err))
		return ""
	}
	return raw
}

func defaultString(state *State, field model.Field) string {
	if v, ok := state.GetValue(field.Name); ok && v != nil {
		return fmt.Sprint(v)
	}
	if field.Default != nil {
		return fmt.Sprint(field.Default)
	}
	return ""
}
