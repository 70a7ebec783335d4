package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/panes/pkg/cache"
	"github.com/matzehuels/panes/pkg/document"
	"github.com/matzehuels/panes/pkg/observability"
)

// Runner encapsulates pipeline execution with caching.
// The CLI and the server both use it to avoid duplicating caching logic.
//
// The Runner is stateless except for the cache and logger; it doesn't
// store pipeline results. Multiple goroutines can safely use the same
// Runner with different options, since every run builds its own engine tree.
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

// Execute runs the layout → render pipeline for doc with caching.
func (r *Runner) Execute(ctx context.Context, doc *document.Document, opts Options) (*Result, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}

	docHash, err := HashDocument(doc)
	if err != nil {
		return nil, err
	}
	result := &Result{Document: doc, DocHash: docHash}

	// Stage 1: Layout
	layoutStart := time.Now()
	res, layoutHit, err := r.LayoutWithCacheInfo(ctx, doc, opts)
	if err != nil {
		return nil, fmt.Errorf("layout: %w", err)
	}
	result.Layout = res
	result.Stats.LayoutTime = time.Since(layoutStart)
	result.Stats.FrameCount = len(res.Frames)
	result.CacheInfo.LayoutHit = layoutHit

	r.Logger.Info("computed layout",
		"frames", len(res.Frames),
		"traits", res.Traits,
		"cached", layoutHit,
		"duration", result.Stats.LayoutTime)

	// Stage 2: Render
	renderStart := time.Now()
	artifacts, renderHit, err := r.RenderWithCacheInfo(ctx, res, opts)
	if err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	result.Artifacts = artifacts
	result.Stats.RenderTime = time.Since(renderStart)
	result.CacheInfo.RenderHit = renderHit

	r.Logger.Info("rendered outputs",
		"formats", opts.Formats,
		"cached", renderHit,
		"duration", result.Stats.RenderTime)

	return result, nil
}

// ExecuteFile loads the document at path and executes the pipeline on it.
func (r *Runner) ExecuteFile(ctx context.Context, path string, opts Options) (*Result, error) {
	doc, err := r.Load(ctx, path)
	if err != nil {
		return nil, err
	}
	return r.Execute(ctx, doc, opts)
}

// LayoutWithCacheInfo computes the layout of doc with caching and returns
// cache hit info.
func (r *Runner) LayoutWithCacheInfo(ctx context.Context, doc *document.Document, opts Options) (*document.Result, bool, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateForLayout(); err != nil {
		return nil, false, err
	}

	docHash, err := HashDocument(doc)
	if err != nil {
		return nil, false, err
	}
	cacheKey := r.Keyer.LayoutKey(docHash, opts.LayoutKeyOpts())

	if !opts.Refresh {
		if data, hit := r.get(ctx, cacheKey); hit {
			if cached, err := UnmarshalResult(data); err == nil {
				return cached, true, nil
			}
			// Undecodable entries are recomputed and overwritten.
		}
	}

	observability.Pipeline().OnLayoutStart(ctx, opts.Width, opts.Height)
	start := time.Now()
	res, err := ComputeLayout(doc, opts)
	frames := 0
	if res != nil {
		frames = len(res.Frames)
	}
	observability.Pipeline().OnLayoutComplete(ctx, frames, time.Since(start), err)
	if err != nil {
		return nil, false, err
	}

	if data, err := MarshalResult(res); err == nil {
		r.set(ctx, cacheKey, data, cache.TTLLayout)
	}
	return res, false, nil
}

// Layout is a convenience wrapper that calls LayoutWithCacheInfo and discards
// the cache hit info.
func (r *Runner) Layout(ctx context.Context, doc *document.Document, opts Options) (*document.Result, error) {
	res, _, err := r.LayoutWithCacheInfo(ctx, doc, opts)
	return res, err
}

// RenderWithCacheInfo generates artifacts with caching and returns cache hit
// info. The hit flag is set only when every format came from cache.
func (r *Runner) RenderWithCacheInfo(ctx context.Context, res *document.Result, opts Options) (map[string][]byte, bool, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateForRender(); err != nil {
		return nil, false, err
	}

	layoutData, err := MarshalResult(res)
	if err != nil {
		return nil, false, fmt.Errorf("serialize layout for cache key: %w", err)
	}
	layoutHash := cache.Hash(layoutData)

	if !opts.Refresh {
		artifacts := make(map[string][]byte, len(opts.Formats))
		for _, format := range opts.Formats {
			data, hit := r.get(ctx, r.Keyer.ArtifactKey(layoutHash, opts.ArtifactKeyOpts(format)))
			if !hit {
				break
			}
			artifacts[format] = data
		}
		if len(artifacts) == len(opts.Formats) {
			return artifacts, true, nil
		}
	}

	observability.Pipeline().OnRenderStart(ctx, opts.Formats)
	start := time.Now()
	rendered, err := Render(ctx, res, opts)
	observability.Pipeline().OnRenderComplete(ctx, opts.Formats, time.Since(start), err)
	if err != nil {
		return nil, false, err
	}

	for format, data := range rendered {
		r.set(ctx, r.Keyer.ArtifactKey(layoutHash, opts.ArtifactKeyOpts(format)), data, cache.TTLArtifact)
	}
	return rendered, false, nil
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

// HashDocument returns the content hash of doc's canonical encoding.
func HashDocument(doc *document.Document) (string, error) {
	data, err := document.Canonical(doc)
	if err != nil {
		return "", fmt.Errorf("hash document: %w", err)
	}
	return cache.Hash(data), nil
}

// get reads key from the cache. Cache errors count as misses.
func (r *Runner) get(ctx context.Context, key string) ([]byte, bool) {
	data, hit, err := r.Cache.Get(ctx, key)
	if err != nil {
		r.Logger.Warn("cache read failed", "key", key, "err", err)
	}
	if err != nil || !hit {
		observability.Cache().OnCacheMiss(ctx, key)
		return nil, false
	}
	observability.Cache().OnCacheHit(ctx, key)
	return data, true
}

// set writes key to the cache. Failures are logged, never returned.
func (r *Runner) set(ctx context.Context, key string, data []byte, ttl time.Duration) {
	if err := r.Cache.Set(ctx, key, data, ttl); err != nil {
		r.Logger.Warn("cache write failed", "key", key, "err", err)
		return
	}
	observability.Cache().OnCacheSet(ctx, key, len(data))
}

// applyLogger sets the runner's logger on options if not already set.
func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}
