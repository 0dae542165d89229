// Package config loads the YAML configuration covering every tunable
// constant of the pipeline: chunk sizes and thresholds, density and
// quality weights, rerank thresholds, and worker concurrency. All values
// have documented defaults; a missing file or empty document yields the
// defaults unchanged.
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/docshard/docshard/chunk"
	"github.com/docshard/docshard/ingest"
	"github.com/docshard/docshard/quality"
	"github.com/docshard/docshard/rerank"
)

// Chunking configures the chunking stage.
type Chunking struct {
	MinSize          int     `yaml:"min_size"`
	MaxSize          int     `yaml:"max_size"`
	Overlap          int     `yaml:"overlap"`
	DensityThreshold float64 `yaml:"density_threshold"`
	LongSentence     int     `yaml:"long_sentence"`
	TableDominance   float64 `yaml:"table_dominance"`
	OverlapFraction  float64 `yaml:"overlap_fraction"`

	Weights struct {
		SentenceLength    float64 `yaml:"sentence_length"`
		EntityDensity     float64 `yaml:"entity_density"`
		DomainTerms       float64 `yaml:"domain_terms"`
		StructuredContent float64 `yaml:"structured_content"`
	} `yaml:"weights"`
}

// Quality configures the quality evaluator's sub-score weights.
type Quality struct {
	Coherence           float64 `yaml:"coherence"`
	Density             float64 `yaml:"density"`
	EntityPreservation  float64 `yaml:"entity_preservation"`
	ContextCompleteness float64 `yaml:"context_completeness"`
}

// Rerank configures the reranker.
type Rerank struct {
	Threshold          float64       `yaml:"threshold"`
	MinResults         int           `yaml:"min_results"`
	DiversityThreshold float64       `yaml:"diversity_threshold"`
	ModelTimeout       time.Duration `yaml:"model_timeout"`
	MaxConcurrency     int           `yaml:"max_concurrency"`
}

// Ingest configures the batch pipeline.
type Ingest struct {
	Workers int `yaml:"workers"`
}

// Config is the root configuration document.
type Config struct {
	Chunking Chunking `yaml:"chunking"`
	Quality  Quality  `yaml:"quality"`
	Rerank   Rerank   `yaml:"rerank"`
	Ingest   Ingest   `yaml:"ingest"`
}

// Default returns the configuration with every documented default set.
func Default() *Config {
	cc := chunk.DefaultConfig()
	qw := quality.DefaultWeights()
	rc := rerank.DefaultConfig()
	ic := ingest.DefaultConfig()

	cfg := &Config{
		Chunking: Chunking{
			MinSize:          cc.MinSize,
			MaxSize:          cc.MaxSize,
			Overlap:          cc.Overlap,
			DensityThreshold: cc.DensityThreshold,
			LongSentence:     cc.LongSentence,
			TableDominance:   cc.TableDominance,
			OverlapFraction:  cc.OverlapFraction,
		},
		Quality: Quality{
			Coherence:           qw.Coherence,
			Density:             qw.Density,
			EntityPreservation:  qw.EntityPreservation,
			ContextCompleteness: qw.ContextCompleteness,
		},
		Rerank: Rerank{
			Threshold:          rc.Threshold,
			MinResults:         rc.MinResults,
			DiversityThreshold: rc.DiversityThreshold,
			ModelTimeout:       rc.ModelTimeout,
			MaxConcurrency:     rc.MaxConcurrency,
		},
		Ingest: Ingest{
			Workers: ic.Workers,
		},
	}
	cfg.Chunking.Weights.SentenceLength = cc.Weights.SentenceLength
	cfg.Chunking.Weights.EntityDensity = cc.Weights.EntityDensity
	cfg.Chunking.Weights.DomainTerms = cc.Weights.DomainTerms
	cfg.Chunking.Weights.StructuredContent = cc.Weights.StructuredContent
	return cfg
}

// Load reads a YAML file over the defaults. Keys absent from the file
// keep their default values.
func Load(path string) (*Config, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(raw, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate rejects configurations that cannot produce sane chunks.
func (c *Config) Validate() error {
	if c.Chunking.MaxSize <= 0 {
		return fmt.Errorf("chunking.max_size must be positive, got %d", c.Chunking.MaxSize)
	}
	if c.Chunking.MinSize < 0 || c.Chunking.MinSize >= c.Chunking.MaxSize {
		return fmt.Errorf("chunking.min_size %d must be in [0, max_size)", c.Chunking.MinSize)
	}
	if c.Chunking.DensityThreshold < 0 || c.Chunking.DensityThreshold > 1 {
		return fmt.Errorf("chunking.density_threshold %v must be in [0,1]", c.Chunking.DensityThreshold)
	}
	if c.Rerank.Threshold < 0 || c.Rerank.Threshold > 1 {
		return fmt.Errorf("rerank.threshold %v must be in [0,1]", c.Rerank.Threshold)
	}
	if c.Ingest.Workers <= 0 {
		return fmt.Errorf("ingest.workers must be positive, got %d", c.Ingest.Workers)
	}
	return nil
}

// ChunkConfig converts to the chunk package's configuration.
func (c *Config) ChunkConfig() chunk.Config {
	return chunk.Config{
		MinSize:          c.Chunking.MinSize,
		MaxSize:          c.Chunking.MaxSize,
		Overlap:          c.Chunking.Overlap,
		DensityThreshold: c.Chunking.DensityThreshold,
		LongSentence:     c.Chunking.LongSentence,
		TableDominance:   c.Chunking.TableDominance,
		OverlapFraction:  c.Chunking.OverlapFraction,
		Weights: chunk.DensityWeights{
			SentenceLength:    c.Chunking.Weights.SentenceLength,
			EntityDensity:     c.Chunking.Weights.EntityDensity,
			DomainTerms:       c.Chunking.Weights.DomainTerms,
			StructuredContent: c.Chunking.Weights.StructuredContent,
		},
	}
}

// QualityWeights converts to the quality package's weights.
func (c *Config) QualityWeights() quality.Weights {
	return quality.Weights{
		Coherence:           c.Quality.Coherence,
		Density:             c.Quality.Density,
		EntityPreservation:  c.Quality.EntityPreservation,
		ContextCompleteness: c.Quality.ContextCompleteness,
	}
}

// RerankConfig converts to the rerank package's configuration.
func (c *Config) RerankConfig() rerank.Config {
	return rerank.Config{
		Threshold:          c.Rerank.Threshold,
		MinResults:         c.Rerank.MinResults,
		DiversityThreshold: c.Rerank.DiversityThreshold,
		ModelTimeout:       c.Rerank.ModelTimeout,
		MaxConcurrency:     c.Rerank.MaxConcurrency,
	}
}

// IngestConfig converts to the ingest package's configuration.
func (c *Config) IngestConfig() ingest.Config {
	return ingest.Config{
		Chunk:   c.ChunkConfig(),
		Workers: c.Ingest.Workers,
	}
}
