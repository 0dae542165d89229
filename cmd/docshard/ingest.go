package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/docshard/docshard/ingest"
)

func newIngestCmd() *cobra.Command {
	var (
		out     string
		workers int
	)

	cmd := &cobra.Command{
		Use:   "ingest <content-dir>",
		Short: "Chunk and enrich a content directory into a JSONL dump",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			icfg := cfg.IngestConfig()
			if workers > 0 {
				icfg.Workers = workers
			}

			store, err := newJSONLStore(out)
			if err != nil {
				return err
			}
			defer store.Close()

			pipeline := ingest.NewPipeline(store, icfg)
			stats, err := pipeline.IngestDir(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			green := color.New(color.FgGreen).SprintFunc()
			fmt.Fprintf(cmd.OutOrStdout(), "%s %d documents -> %d chunks (%d skipped) -> %s\n",
				green("ingested"), stats.Documents, stats.Chunks, stats.Skipped, out)
			return nil
		},
	}

	cmd.Flags().StringVarP(&out, "out", "o", "chunks.jsonl", "output JSONL path")
	cmd.Flags().IntVarP(&workers, "workers", "w", 0, "worker pool size (overrides config)")

	return cmd
}
