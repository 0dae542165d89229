package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/docshard/docshard/ingest"
	"github.com/docshard/docshard/quality"
)

var bandColors = map[quality.Band]*color.Color{
	quality.BandExcellent: color.New(color.FgGreen, color.Bold),
	quality.BandGood:      color.New(color.FgGreen),
	quality.BandAverage:   color.New(color.FgYellow),
	quality.BandPoor:      color.New(color.FgRed),
	quality.BandBad:       color.New(color.FgRed, color.Bold),
}

func newEvaluateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "evaluate <content-dir>",
		Short: "Chunk a content directory and print the quality distribution",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			store := &memStore{}
			pipeline := ingest.NewPipeline(store, cfg.IngestConfig())
			stats, err := pipeline.IngestDir(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			evaluator := quality.NewWithWeights(cfg.QualityWeights())
			dist := evaluator.EvaluateChunkSet(store.chunks)

			w := cmd.OutOrStdout()
			fmt.Fprintf(w, "%d documents, %d chunks\n\n", stats.Documents, dist.Count)
			fmt.Fprintf(w, "mean scores:\n")
			fmt.Fprintf(w, "  coherence             %.3f\n", dist.Mean.Coherence)
			fmt.Fprintf(w, "  information density   %.3f\n", dist.Mean.InformationDensity)
			fmt.Fprintf(w, "  entity preservation   %.3f\n", dist.Mean.EntityPreservation)
			fmt.Fprintf(w, "  context completeness  %.3f\n", dist.Mean.ContextCompleteness)
			fmt.Fprintf(w, "  overall               %.3f\n\n", dist.Mean.Overall)

			fmt.Fprintln(w, "quality bands:")
			for _, band := range quality.Bands {
				label := bandColors[band].Sprintf("%-9s", string(band))
				fmt.Fprintf(w, "  %s %5.1f%%\n", label, dist.Bands[band])
			}
			return nil
		},
	}

	return cmd
}
