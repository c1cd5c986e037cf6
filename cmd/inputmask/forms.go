package main

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-inputmask/pkg/model"
	pkgopenapi "github.com/goliatone/go-inputmask/pkg/openapi"
	"github.com/goliatone/go-inputmask/pkg/renderers/tui"
	"github.com/goliatone/go-inputmask/pkg/renderers/vanilla"
)

type formFlags struct {
	source    string
	operation string
	validate  bool
}

func (f *formFlags) register(cmd *cobra.Command) {
	flags := cmd.Flags()
	flags.StringVarP(&f.source, "source", "s", "", "OpenAPI document path or URL")
	flags.StringVarP(&f.operation, "operation", "o", "", "Operation ID to build the form from")
	flags.BoolVar(&f.validate, "validate", false, "Validate the OpenAPI document before extracting")
	_ = cmd.MarkFlagRequired("source")
	_ = cmd.MarkFlagRequired("operation")
}

// loadForm extracts the operation's form and binds mask presets to its
// fields.
func (g *globalFlags) loadForm(cmd *cobra.Command, f *formFlags) (model.FormModel, error) {
	src, err := pkgopenapi.ParseSource(f.source)
	if err != nil {
		return model.FormModel{}, err
	}
	loader := pkgopenapi.NewLoader(pkgopenapi.WithHTTPFallback(15 * time.Second))
	data, err := loader.Load(cmd.Context(), src)
	if err != nil {
		return model.FormModel{}, err
	}

	var opts []pkgopenapi.ExtractOption
	if f.validate {
		opts = append(opts, pkgopenapi.WithValidation())
	}
	form, err := pkgopenapi.Extract(cmd.Context(), data, f.operation, opts...)
	if err != nil {
		return model.FormModel{}, err
	}

	reg, err := g.registry()
	if err != nil {
		return model.FormModel{}, err
	}
	if err := reg.Decorate(&form); err != nil {
		return model.FormModel{}, err
	}
	return form, nil
}

func newFieldsCmd(g *globalFlags) *cobra.Command {
	var f formFlags
	cmd := &cobra.Command{
		Use:   "fields",
		Short: "Print the fields of an operation with their mask bindings",
		RunE: func(cmd *cobra.Command, args []string) error {
			form, err := g.loadForm(cmd, &f)
			if err != nil {
				return err
			}
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(form)
		},
	}
	f.register(cmd)
	return cmd
}

func newPromptCmd(g *globalFlags) *cobra.Command {
	var (
		f      formFlags
		format string
	)
	cmd := &cobra.Command{
		Use:   "prompt",
		Short: "Fill an operation's form interactively in the terminal",
		RunE: func(cmd *cobra.Command, args []string) error {
			form, err := g.loadForm(cmd, &f)
			if err != nil {
				return err
			}
			r := tui.New(
				tui.WithOutputFormat(tui.OutputFormat(format)),
				tui.WithLogger(g.logger),
			)
			out, err := r.Render(cmd.Context(), form)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), string(out))
			return err
		},
	}
	f.register(cmd)
	cmd.Flags().StringVar(&format, "format", string(tui.OutputFormatJSON), "Output format (json, pretty)")
	return cmd
}

func newRenderCmd(g *globalFlags) *cobra.Command {
	var (
		f           formFlags
		output      string
		templateDir string
		submit      string
	)
	cmd := &cobra.Command{
		Use:   "render",
		Short: "Render an operation's form as HTML with data-mask attributes",
		RunE: func(cmd *cobra.Command, args []string) error {
			form, err := g.loadForm(cmd, &f)
			if err != nil {
				return err
			}
			opts := []vanilla.Option{vanilla.WithSubmitLabel(submit)}
			if templateDir != "" {
				opts = append(opts, vanilla.WithTemplatesDir(templateDir))
			}
			r, err := vanilla.New(opts...)
			if err != nil {
				return err
			}
			html, err := r.Render(form)
			if err != nil {
				return err
			}
			if output == "" {
				_, err = cmd.OutOrStdout().Write(html)
				return err
			}
			if err := os.WriteFile(output, html, 0o644); err != nil {
				return fmt.Errorf("write %s: %w", output, err)
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "Form written to %s\n", output)
			return err
		},
	}
	f.register(cmd)
	cmd.Flags().StringVar(&output, "output", "", "Output file (stdout if empty)")
	cmd.Flags().StringVar(&templateDir, "templates", "", "Directory containing a custom form.tmpl")
	cmd.Flags().StringVar(&submit, "submit-label", "", "Submit button text")
	return cmd
}
