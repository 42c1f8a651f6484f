// Package pipeline provides the core level-computation pipeline for golevels.
//
// The pipeline implements the complete load → levels → merge dataflow shared
// by the CLI and the HTTP API. Centralizing it keeps behavior consistent
// across entry points:
//
//  1. Load: parse the OBO snapshot and build one root-outward graph per
//     ontology
//  2. Levels: compute shortest and longest root distances plus the terminal
//     flag for every term
//  3. Merge: concatenate the per-ontology results into the summary table,
//     re-deriving each term's ontology through an independent lookup
//
// # Usage
//
// Create a Runner and execute the pipeline:
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	opts := pipeline.Options{OBOPath: "go-basic.obo"}
//	result, err := runner.Execute(ctx, opts)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	table := result.Table
package pipeline

import (
	"io"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/mhalvors/golevels/pkg/errors"
	"github.com/mhalvors/golevels/pkg/ontology"
	"github.com/mhalvors/golevels/pkg/summary"
)

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	summary.FormatTSV:  true,
	summary.FormatJSON: true,
}

// ValidateFormat checks that an output format is supported.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return errors.New(errors.ErrCodeInvalidFormat, "invalid format: %q (must be one of: tsv, json)", format)
	}
	return nil
}

// Options contains all configuration for the level-computation pipeline.
// The struct supports JSON serialization for API requests.
type Options struct {
	// OBOPath is the ontology snapshot file to process.
	OBOPath string `json:"obo_path"`

	// Ontologies selects which partitions to compute. Empty means all three.
	Ontologies []ontology.Ontology `json:"ontologies,omitempty"`

	// Format selects the output serialization (tsv or json).
	Format string `json:"format,omitempty"`

	// Refresh bypasses cached results and recomputes every stage.
	Refresh bool `json:"refresh,omitempty"`

	// Serial disables per-ontology parallelism.
	Serial bool `json:"serial,omitempty"`

	// Runtime options (not serialized)
	Logger *log.Logger `json:"-"`

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool `json:"-"`
}

// ValidateAndSetDefaults checks required fields and applies defaults.
// Idempotent.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if o.OBOPath == "" {
		return errors.New(errors.ErrCodeInvalidInput, "obo_path is required")
	}
	if len(o.Ontologies) == 0 {
		o.Ontologies = ontology.All
	}
	for _, ont := range o.Ontologies {
		if !ont.Valid() {
			return errors.New(errors.ErrCodeInvalidOntology, "unknown ontology %q", ont)
		}
	}
	if o.Format == "" {
		o.Format = summary.FormatTSV
	}
	if err := ValidateFormat(o.Format); err != nil {
		return err
	}
	if o.Logger == nil {
		o.Logger = log.New(io.Discard)
	}
	o.validated = true
	return nil
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// RunID identifies this execution in logs and API responses.
	RunID uuid.UUID

	// Table is the merged summary table.
	Table *summary.Table

	// SourceHash is the content hash of the OBO snapshot.
	SourceHash string

	// DataVersion is the data-version header of the snapshot, when present.
	DataVersion string

	// Stats contains timing and size information.
	Stats Stats

	// CacheInfo tracks which stages hit the cache.
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	ParseTime  time.Duration
	LevelsTime time.Duration
	MergeTime  time.Duration

	// NodeCounts is the graph size per computed ontology.
	NodeCounts map[ontology.Ontology]int
}

// CacheInfo tracks cache hits for each pipeline stage.
type CacheInfo struct {
	// SummaryHit is true when the whole table came from cache. The
	// per-stage maps are empty in that case.
	SummaryHit bool

	// GraphHits records which ontology graphs came from cache.
	GraphHits map[ontology.Ontology]bool

	// LevelsHits records which level results came from cache.
	LevelsHits map[ontology.Ontology]bool
}
