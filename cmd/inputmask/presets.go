package main

import (
	"encoding/json"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-inputmask/pkg/presets"
)

// registry builds the preset registry, overlaying --presets-dir when set.
func (g *globalFlags) registry() (*presets.Registry, error) {
	reg := presets.NewRegistry(presets.WithLogger(g.logger))
	if g.presetsDir == "" {
		return reg, nil
	}
	store, err := presets.LoadFS(os.DirFS(g.presetsDir))
	if err != nil {
		return nil, err
	}
	reg.Replace(store)
	return reg, nil
}

func newPresetsCmd(g *globalFlags) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "presets",
		Short: "List available mask presets",
		RunE: func(cmd *cobra.Command, args []string) error {
			reg, err := g.registry()
			if err != nil {
				return err
			}
			store := reg.Store()
			all := store.All()

			if asJSON {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(all)
			}

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "NAME\tPATTERN\tPLACEHOLDER\tPIPE\tSOURCE")
			for _, p := range all {
				placeholder, err := p.Placeholder()
				if err != nil {
					return err
				}
				pipe := "-"
				if p.Pipe != nil {
					pipe = p.PipeKind() + ":" + p.Pipe.Format
				}
				source := store.Source(p.Name)
				if source == "" {
					source = "builtin"
				}
				fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n", p.Name, p.Pattern, placeholder, pipe, source)
			}
			return tw.Flush()
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Print presets as JSON")
	return cmd
}
