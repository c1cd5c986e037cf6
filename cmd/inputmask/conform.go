package main

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/goliatone/go-inputmask/pkg/maskedinput"
	"github.com/goliatone/go-inputmask/pkg/presets"
)

type conformOutput struct {
	Input        string `json:"input"`
	Value        string `json:"value"`
	Caret        int    `json:"caret"`
	PipedIndexes []int  `json:"pipedIndexes,omitempty"`
	Rejected     bool   `json:"rejected"`
	Complete     bool   `json:"complete"`
}

func newConformCmd(g *globalFlags) *cobra.Command {
	var (
		presetName  string
		pattern     string
		dateFormat  string
		previous    string
		caret       int
		noGuide     bool
		keepPos     bool
		placeholder string
	)

	cmd := &cobra.Command{
		Use:   "conform VALUE...",
		Short: "Replay edits through a mask and print each result",
		Long: `Each VALUE is treated as the full field content after one edit. Edits are
applied in order to the same field, so a rejected edit leaves the previous
value in place for the next one.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			reg, err := g.registry()
			if err != nil {
				return err
			}

			var p presets.Preset
			switch {
			case presetName != "":
				found, ok := reg.Lookup(presetName)
				if !ok {
					return fmt.Errorf("%w: %q", presets.ErrUnknownPreset, presetName)
				}
				p = found
			case pattern != "":
				p = presets.Preset{Name: "custom", Pattern: pattern}
			default:
				return errors.New("one of --preset or --pattern is required")
			}
			if dateFormat != "" {
				p.Pipe = &presets.PipeConfig{Kind: presets.PipeKindDate, Format: dateFormat}
			}
			if noGuide {
				guide := false
				p.Guide = &guide
			}
			if keepPos {
				p.KeepCharPositions = true
			}
			if placeholder != "" {
				p.PlaceholderChar = placeholder
			}
			if err := p.Validate(); err != nil {
				return err
			}

			cfg, err := p.Config()
			if err != nil {
				return err
			}
			cfg.Value = previous
			in, err := maskedinput.New(cfg, maskedinput.WithLogger(g.logger))
			if err != nil {
				return err
			}
			defer func() { _ = in.Close() }()

			enc := json.NewEncoder(cmd.OutOrStdout())
			for _, raw := range args {
				change, err := in.Update(raw, caret)
				if err != nil {
					return err
				}
				g.logger.Debug("edit", zap.String("preset", p.Name), zap.Bool("rejected", change.Rejected))
				if err := enc.Encode(conformOutput{
					Input:        raw,
					Value:        change.Value,
					Caret:        change.Caret,
					PipedIndexes: change.PipedIndexes,
					Rejected:     change.Rejected,
					Complete:     change.Complete,
				}); err != nil {
					return err
				}
			}
			return nil
		},
	}

	flags := cmd.Flags()
	flags.StringVarP(&presetName, "preset", "p", "", "Preset name")
	flags.StringVar(&pattern, "pattern", "", "Mask pattern (9 digit, a letter, * alphanumeric, \\ escapes)")
	flags.StringVar(&dateFormat, "date-format", "", "Attach the date auto-correction pipe with this format")
	flags.StringVar(&previous, "previous", "", "Value displayed before the first edit")
	flags.IntVar(&caret, "caret", -1, "Caret position after each edit (negative means the end)")
	flags.BoolVar(&noGuide, "no-guide", false, "Hide placeholder characters for unfilled positions")
	flags.BoolVar(&keepPos, "keep-char-positions", false, "Overwrite placeholders instead of shifting")
	flags.StringVar(&placeholder, "placeholder-char", "", "Placeholder character")
	return cmd
}
