package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	version   = "dev"
	commit    = "none"
	buildDate = "unknown"
)

type globalFlags struct {
	logLevel   string
	logFormat  string
	presetsDir string

	logger *zap.Logger
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	g := &globalFlags{logger: zap.NewNop()}

	root := &cobra.Command{
		Use:          "inputmask",
		Short:        "Conform input against masks and build masked forms",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			logger, err := newLogger(g.logLevel, g.logFormat)
			if err != nil {
				return err
			}
			g.logger = logger
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			_ = g.logger.Sync()
		},
	}

	flags := root.PersistentFlags()
	flags.StringVar(&g.logLevel, "log-level", "warn", "Log level (debug, info, warn, error)")
	flags.StringVar(&g.logFormat, "log-format", "console", "Log format (console, json)")
	flags.StringVar(&g.presetsDir, "presets-dir", "", "Directory of YAML/JSON preset documents")

	root.AddCommand(newConformCmd(g))
	root.AddCommand(newPresetsCmd(g))
	root.AddCommand(newFieldsCmd(g))
	root.AddCommand(newPromptCmd(g))
	root.AddCommand(newRenderCmd(g))
	root.AddCommand(newServeCmd(g))
	root.AddCommand(newVersionCmd())

	return root
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "version=%s commit=%s buildDate=%s\n", version, commit, buildDate)
		},
	}
}
