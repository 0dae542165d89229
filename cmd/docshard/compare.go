package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/docshard/docshard/chunk"
	"github.com/docshard/docshard/entity"
	"github.com/docshard/docshard/ingest"
	"github.com/docshard/docshard/model"
	"github.com/docshard/docshard/quality"
)

func newCompareCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "compare <content-dir>",
		Short: "Compare semantic chunking against plain fixed-size splitting",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			docs, err := ingest.NewLoader().LoadDir(args[0])
			if err != nil {
				return err
			}

			chunkCfg := cfg.ChunkConfig()
			analyzer := entity.NewAnalyzer()

			semanticChunker := chunk.NewWithConfig(chunkCfg)
			var semantic []*model.Chunk
			for _, doc := range docs {
				semantic = append(semantic, semanticChunker.ChunkDocument(doc)...)
			}
			analyzer.EnrichChunks(semantic)

			fixedStrategy := chunk.NewFixedStrategy(chunkCfg)
			var fixed []*model.Chunk
			for _, doc := range docs {
				chunks, err := fixedStrategy.Chunk(doc)
				if err != nil {
					continue
				}
				fixed = append(fixed, chunks...)
			}
			analyzer.EnrichChunks(fixed)

			evaluator := quality.NewWithWeights(cfg.QualityWeights())
			result := evaluator.CompareStrategies("semantic", semantic, "fixed_size", fixed)

			w := cmd.OutOrStdout()
			fmt.Fprintf(w, "%-22s %10s %10s %8s  winner\n", "metric", result.FirstName, result.SecondName, "delta")
			for _, d := range result.Deltas {
				fmt.Fprintf(w, "%-22s %10.3f %10.3f %s  %s\n",
					d.Metric, d.First, d.Second, colorDelta(d.Delta), d.Winner)
			}

			bold := color.New(color.Bold).SprintFunc()
			fmt.Fprintf(w, "\noverall winner: %s (%d vs %d chunks)\n",
				bold(result.Winner), result.First.Count, result.Second.Count)
			return nil
		},
	}

	return cmd
}

// colorDelta renders a signed delta green when the second strategy wins
// the metric and red when it loses it.
func colorDelta(delta float64) string {
	s := fmt.Sprintf("%+8.3f", delta)
	switch {
	case delta > 0:
		return color.GreenString(s)
	case delta < 0:
		return color.RedString(s)
	default:
		return s
	}
}
