// Package observability provides hooks for metrics, tracing, and logging.
//
// The core library stays free of observability backends: hook interfaces
// have no-op defaults, and main registers real implementations at startup.
// Libraries emit events through the registry:
//
//	observability.Pipeline().OnLoadStart(ctx, ontology)
//	// ... build the graph ...
//	observability.Pipeline().OnLoadComplete(ctx, ontology, nodeCount, duration, err)
package observability

import (
	"context"
	"sync"
	"time"
)

// PipelineHooks receives events from the level-computation pipeline.
type PipelineHooks interface {
	// Load events, one pair per ontology graph built from the snapshot.
	OnLoadStart(ctx context.Context, ontology string)
	OnLoadComplete(ctx context.Context, ontology string, nodeCount int, duration time.Duration, err error)

	// Level computation events.
	OnLevelsStart(ctx context.Context, ontology string, nodeCount int)
	OnLevelsComplete(ctx context.Context, ontology string, duration time.Duration, err error)

	// Merge events for the final summary table.
	OnMergeComplete(ctx context.Context, rows int, duration time.Duration, err error)
}

// CacheHooks receives events from cache operations.
type CacheHooks interface {
	// OnCacheHit records a cache hit.
	OnCacheHit(ctx context.Context, keyType string)

	// OnCacheMiss records a cache miss.
	OnCacheMiss(ctx context.Context, keyType string)

	// OnCacheSet records a cache write.
	OnCacheSet(ctx context.Context, keyType string, size int)
}

// NoopPipelineHooks is a no-op implementation of PipelineHooks.
type NoopPipelineHooks struct{}

func (NoopPipelineHooks) OnLoadStart(context.Context, string)                                {}
func (NoopPipelineHooks) OnLoadComplete(context.Context, string, int, time.Duration, error)  {}
func (NoopPipelineHooks) OnLevelsStart(context.Context, string, int)                         {}
func (NoopPipelineHooks) OnLevelsComplete(context.Context, string, time.Duration, error)     {}
func (NoopPipelineHooks) OnMergeComplete(context.Context, int, time.Duration, error)         {}

// NoopCacheHooks is a no-op implementation of CacheHooks.
type NoopCacheHooks struct{}

func (NoopCacheHooks) OnCacheHit(context.Context, string)      {}
func (NoopCacheHooks) OnCacheMiss(context.Context, string)     {}
func (NoopCacheHooks) OnCacheSet(context.Context, string, int) {}

var (
	pipelineHooks PipelineHooks = NoopPipelineHooks{}
	cacheHooks    CacheHooks    = NoopCacheHooks{}
	hooksMu       sync.RWMutex
)

// SetPipelineHooks registers custom pipeline hooks.
// Call once at application startup before any pipeline operations.
func SetPipelineHooks(h PipelineHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		pipelineHooks = h
	}
}

// SetCacheHooks registers custom cache hooks.
// Call once at application startup before any cache operations.
func SetCacheHooks(h CacheHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		cacheHooks = h
	}
}

// Pipeline returns the registered pipeline hooks.
func Pipeline() PipelineHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return pipelineHooks
}

// Cache returns the registered cache hooks.
func Cache() CacheHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return cacheHooks
}

// Reset restores all hooks to their no-op defaults.
// This is primarily useful for testing.
func Reset() {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	pipelineHooks = NoopPipelineHooks{}
	cacheHooks = NoopCacheHooks{}
}
