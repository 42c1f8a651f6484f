// Package cache provides content-addressed caching for pipeline stages.
//
// Keys are derived from the SHA-256 hash of the upstream inputs, so a new
// ontology snapshot naturally invalidates every dependent entry without any
// bookkeeping. Backends cover local CLI usage (FileCache), shared deployments
// (RedisCache) and disabled caching (NullCache).
package cache

import (
	"context"
	"time"
)

// TTLs per pipeline stage. Graphs and level results are pure functions of
// the snapshot hash, so they keep for a long time; merged summaries embed
// output-format concerns and expire sooner.
const (
	TTLGraph   = 30 * 24 * time.Hour
	TTLLevels  = 30 * 24 * time.Hour
	TTLSummary = 7 * 24 * time.Hour
)

// Cache is the backend-agnostic store used by the pipeline runner.
// Implementations must be safe for concurrent use.
type Cache interface {
	// Get returns the cached bytes and true on a hit. A miss is (nil, false, nil).
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores data under key. A ttl of zero means no expiration.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases backend resources.
	Close() error
}

// GraphKeyOpts are the loader settings that affect the shape of a built graph.
type GraphKeyOpts struct {
	Ontology string `json:"ontology"`
}

// LevelsKeyOpts are the engine settings that affect computed levels.
type LevelsKeyOpts struct {
	Root string `json:"root"`
}

// SummaryKeyOpts are the merge settings that affect the final table.
type SummaryKeyOpts struct {
	Ontologies []string `json:"ontologies"`
}

// Keyer generates cache keys for pipeline stages.
type Keyer interface {
	// GraphKey keys a per-ontology graph by the source snapshot hash.
	GraphKey(sourceHash string, opts GraphKeyOpts) string

	// LevelsKey keys a level-computation result by its input graph hash.
	LevelsKey(graphHash string, opts LevelsKeyOpts) string

	// SummaryKey keys a merged summary table by the source snapshot hash.
	SummaryKey(sourceHash string, opts SummaryKeyOpts) string
}

// DefaultKeyer produces prefix:sha256(inputs) keys.
type DefaultKeyer struct{}

// NewDefaultKeyer creates the standard keyer.
func NewDefaultKeyer() Keyer {
	return &DefaultKeyer{}
}

// GraphKey generates a key for a built ontology graph.
func (k *DefaultKeyer) GraphKey(sourceHash string, opts GraphKeyOpts) string {
	return hashKey("graph", sourceHash, opts)
}

// LevelsKey generates a key for computed levels.
func (k *DefaultKeyer) LevelsKey(graphHash string, opts LevelsKeyOpts) string {
	return hashKey("levels", graphHash, opts)
}

// SummaryKey generates a key for a merged summary table.
func (k *DefaultKeyer) SummaryKey(sourceHash string, opts SummaryKeyOpts) string {
	return hashKey("summary", sourceHash, opts)
}

var _ Keyer = (*DefaultKeyer)(nil)
