package pipeline

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/mhalvors/golevels/pkg/cache"
	"github.com/mhalvors/golevels/pkg/dag"
	"github.com/mhalvors/golevels/pkg/errors"
	"github.com/mhalvors/golevels/pkg/levels"
	"github.com/mhalvors/golevels/pkg/obo"
	"github.com/mhalvors/golevels/pkg/observability"
	"github.com/mhalvors/golevels/pkg/ontology"
	"github.com/mhalvors/golevels/pkg/summary"
)

// Runner encapsulates pipeline execution with caching.
// Both CLI and API use it to avoid duplicating caching logic.
//
// The Runner is stateless except for the cache and logger - it doesn't
// store pipeline results. Multiple goroutines can safely share one Runner
// with different options.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:  c,
		Keyer:  keyer,
		Logger: logger,
	}
}

// ontResult is the outcome of one per-ontology load + levels pass.
type ontResult struct {
	levels    map[string]levels.Result
	nodeCount int
	graphHit  bool
	levelsHit bool
}

// Execute runs the complete load → levels → merge pipeline with caching.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}

	raw, err := os.ReadFile(opts.OBOPath)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeDataSource, err, "read snapshot %s", opts.OBOPath)
	}
	sourceHash := cache.Hash(raw)

	result := &Result{
		RunID:      uuid.New(),
		SourceHash: sourceHash,
		Stats:      Stats{NodeCounts: make(map[ontology.Ontology]int)},
		CacheInfo: CacheInfo{
			GraphHits:  make(map[ontology.Ontology]bool),
			LevelsHits: make(map[ontology.Ontology]bool),
		},
	}

	ontNames := make([]string, len(opts.Ontologies))
	for i, ont := range opts.Ontologies {
		ontNames[i] = string(ont)
	}
	summaryKey := r.Keyer.SummaryKey(sourceHash, cache.SummaryKeyOpts{Ontologies: ontNames})

	// A whole-table hit skips parsing entirely.
	if !opts.Refresh {
		if data, hit, err := r.Cache.Get(ctx, summaryKey); err == nil && hit {
			if table, err := summary.ReadJSON(bytes.NewReader(data)); err == nil {
				observability.Cache().OnCacheHit(ctx, "summary")
				result.Table = table
				result.CacheInfo.SummaryHit = true
				opts.Logger.Info("summary from cache", "run", result.RunID, "rows", table.Len())
				return result, nil
			}
		}
		observability.Cache().OnCacheMiss(ctx, "summary")
	}

	parseStart := time.Now()
	doc, err := obo.Parse(bytes.NewReader(raw))
	if err != nil {
		return nil, err
	}
	result.DataVersion = doc.DataVersion
	result.Stats.ParseTime = time.Since(parseStart)

	opts.Logger.Info("parsed snapshot",
		"terms", len(doc.Terms),
		"data_version", doc.DataVersion,
		"duration", result.Stats.ParseTime)

	idx := ontology.NewIndex(doc)

	levelsStart := time.Now()
	results := make(map[ontology.Ontology]map[string]levels.Result, len(opts.Ontologies))
	var mu sync.Mutex

	eg, egctx := errgroup.WithContext(ctx)
	if opts.Serial {
		eg.SetLimit(1)
	}
	for _, ont := range opts.Ontologies {
		eg.Go(func() error {
			or, err := r.computeOntology(egctx, doc, sourceHash, ont, opts)
			if err != nil {
				return err
			}
			mu.Lock()
			defer mu.Unlock()
			results[ont] = or.levels
			result.Stats.NodeCounts[ont] = or.nodeCount
			result.CacheInfo.GraphHits[ont] = or.graphHit
			result.CacheInfo.LevelsHits[ont] = or.levelsHit
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}
	result.Stats.LevelsTime = time.Since(levelsStart)

	mergeStart := time.Now()
	table, err := summary.Build(results, idx, opts.Logger)
	mergeDur := time.Since(mergeStart)
	rows := 0
	if table != nil {
		rows = table.Len()
	}
	observability.Pipeline().OnMergeComplete(ctx, rows, mergeDur, err)
	if err != nil {
		return nil, err
	}
	result.Table = table
	result.Stats.MergeTime = mergeDur

	opts.Logger.Info("merged summary",
		"run", result.RunID,
		"rows", table.Len(),
		"duration", result.Stats.MergeTime)

	if !opts.Refresh {
		if data, err := summary.MarshalJSON(table); err == nil {
			_ = r.Cache.Set(ctx, summaryKey, data, cache.TTLSummary)
			observability.Cache().OnCacheSet(ctx, "summary", len(data))
		}
	}

	return result, nil
}

// computeOntology builds one root-outward graph and computes its levels,
// consulting the cache for both stages.
func (r *Runner) computeOntology(ctx context.Context, doc *obo.Document, sourceHash string, ont ontology.Ontology, opts Options) (*ontResult, error) {
	or := &ontResult{}

	// Stage 1: graph
	graphKey := r.Keyer.GraphKey(sourceHash, cache.GraphKeyOpts{Ontology: string(ont)})
	observability.Pipeline().OnLoadStart(ctx, string(ont))
	loadStart := time.Now()

	var down *dag.Graph
	var graphData []byte
	if !opts.Refresh {
		if data, hit, err := r.Cache.Get(ctx, graphKey); err == nil && hit {
			if g, err := dag.Unmarshal(data); err == nil {
				down, graphData = g, data
				or.graphHit = true
				observability.Cache().OnCacheHit(ctx, "graph")
			}
		}
	}
	if down == nil {
		g, err := ontology.Load(doc, ont)
		if err != nil {
			observability.Pipeline().OnLoadComplete(ctx, string(ont), 0, time.Since(loadStart), err)
			return nil, err
		}
		down = g
		graphData, err = dag.Marshal(down)
		if err != nil {
			return nil, err
		}
		if !opts.Refresh {
			_ = r.Cache.Set(ctx, graphKey, graphData, cache.TTLGraph)
			observability.Cache().OnCacheSet(ctx, "graph", len(graphData))
		}
	}
	or.nodeCount = down.NodeCount()
	observability.Pipeline().OnLoadComplete(ctx, string(ont), or.nodeCount, time.Since(loadStart), nil)

	opts.Logger.Debug("built graph",
		"ontology", ont,
		"nodes", down.NodeCount(),
		"edges", down.EdgeCount(),
		"cached", or.graphHit)

	// Stage 2: levels, keyed by the graph content hash
	graphHash := cache.Hash(graphData)
	levelsKey := r.Keyer.LevelsKey(graphHash, cache.LevelsKeyOpts{Root: ont.Root()})
	observability.Pipeline().OnLevelsStart(ctx, string(ont), or.nodeCount)
	levelsStart := time.Now()

	if !opts.Refresh {
		if data, hit, err := r.Cache.Get(ctx, levelsKey); err == nil && hit {
			var cached map[string]levels.Result
			if err := json.Unmarshal(data, &cached); err == nil {
				or.levels = cached
				or.levelsHit = true
				observability.Cache().OnCacheHit(ctx, "levels")
			}
		}
	}
	if or.levels == nil {
		res, err := levels.Compute(down, ont.Root())
		if err != nil {
			observability.Pipeline().OnLevelsComplete(ctx, string(ont), time.Since(levelsStart), err)
			return nil, err
		}
		or.levels = res
		if data, err := json.Marshal(res); err == nil && !opts.Refresh {
			_ = r.Cache.Set(ctx, levelsKey, data, cache.TTLLevels)
			observability.Cache().OnCacheSet(ctx, "levels", len(data))
		}
	}
	observability.Pipeline().OnLevelsComplete(ctx, string(ont), time.Since(levelsStart), nil)

	opts.Logger.Debug("computed levels",
		"ontology", ont,
		"terms", len(or.levels),
		"cached", or.levelsHit)

	return or, nil
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

// applyLogger sets the runner's logger on options if not already set.
func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}
