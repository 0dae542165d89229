package main

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/docshard/docshard/config"
)

var (
	configPath string
	verbose    bool
)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "docshard",
		Short: "Semantic chunking and enrichment for security documentation",
		Long: `docshard splits heterogeneous security documentation (parsers,
detection use cases, data-source guides) into size-bounded semantic
chunks, enriches them with entities and relationships, and scores the
result for retrieval quality.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			level := slog.LevelWarn
			if verbose {
				level = slog.LevelDebug
			}
			slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
				Level: level,
			})))
		},
	}

	root.PersistentFlags().StringVarP(&configPath, "config", "c", "", "path to YAML config (defaults apply when omitted)")
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log chunking decisions")

	root.AddCommand(newIngestCmd())
	root.AddCommand(newEvaluateCmd())
	root.AddCommand(newCompareCmd())

	return root
}

func loadConfig() (*config.Config, error) {
	if configPath == "" {
		return config.Default(), nil
	}
	return config.Load(configPath)
}
