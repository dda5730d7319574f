package pipeline

import (
	"context"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/knightpaths/pkg/cache"
	errs "github.com/matzehuels/knightpaths/pkg/errors"
	"github.com/matzehuels/knightpaths/pkg/knight"
	"github.com/matzehuels/knightpaths/pkg/observability"
	"github.com/matzehuels/knightpaths/pkg/render/nodelink"
)

// Runner encapsulates pipeline execution with caching.
//
// The Runner is stateless except for the cache and logger; it doesn't
// store pipeline results. Multiple goroutines can safely use the same
// Runner with different options.
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

// Execute runs the complete search → render pipeline with caching.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}

	searchStart := time.Now()
	ps, err := r.Search(ctx, opts)
	if err != nil {
		return nil, err
	}
	searchTime := time.Since(searchStart)

	r.Logger.Info("found shortest paths",
		"paths", ps.Len(),
		"moves", ps.Moves(),
		"duration", searchTime)

	result, err := r.Render(ctx, ps, opts)
	if err != nil {
		return nil, err
	}
	result.Stats.SearchTime = searchTime
	return result, nil
}

// Search finds every shortest path between opts.Start and opts.End.
func (r *Runner) Search(ctx context.Context, opts Options) (knight.PathSet, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateForSearch(); err != nil {
		return knight.PathSet{}, err
	}

	hooks := observability.Pipeline()
	hooks.OnSearchStart(ctx, opts.start.String(), opts.end.String())

	start := time.Now()
	ps, err := knight.FindShortestPaths(opts.start, opts.end)
	hooks.OnSearchComplete(ctx, opts.start.String(), opts.end.String(), ps.Len(), ps.Moves(), time.Since(start), err)
	if err != nil {
		return knight.PathSet{}, err
	}

	opts.Logger.Debug("search complete", "start", opts.start, "end", opts.end, "paths", ps.Len())
	return ps, nil
}

// RenderWithCacheInfo renders every requested format and returns the
// formats that were served from the cache. Only image formats are cached;
// DOT and JSON output is cheaper to regenerate than to look up.
func (r *Runner) RenderWithCacheInfo(ctx context.Context, ps knight.PathSet, dot string, opts Options) (map[string][]byte, []string, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateForRender(); err != nil {
		return nil, nil, err
	}

	hooks := observability.Pipeline()
	cacheHooks := observability.Cache()
	hooks.OnRenderStart(ctx, opts.Formats)
	start := time.Now()

	dotHash := cache.Hash([]byte(dot))
	artifacts := make(map[string][]byte, len(opts.Formats))
	var hits []string

	for _, format := range opts.Formats {
		if err := ctx.Err(); err != nil {
			hooks.OnRenderComplete(ctx, opts.Formats, time.Since(start), err)
			return nil, hits, err
		}

		cacheable := imageFormats[format]
		key := r.Keyer.ArtifactKey(dotHash, opts.ArtifactKeyOpts(format))

		if cacheable && !opts.Refresh {
			if data, hit, err := r.Cache.Get(ctx, key); err == nil && hit {
				cacheHooks.OnCacheHit(ctx, format)
				opts.Logger.Debug("artifact cache hit", "format", format)
				artifacts[format] = data
				hits = append(hits, format)
				continue
			}
			cacheHooks.OnCacheMiss(ctx, format)
		}

		data, err := RenderFormat(ctx, ps, dot, format, opts.Engine)
		if err != nil {
			err = errs.Wrap(errs.ErrCodeRenderFailed, err, "render %s", format)
			hooks.OnRenderComplete(ctx, opts.Formats, time.Since(start), err)
			return nil, hits, err
		}
		artifacts[format] = data

		if cacheable {
			if err := r.Cache.Set(ctx, key, data, cache.TTLArtifact); err != nil {
				opts.Logger.Warn("failed to cache artifact", "format", format, "error", err)
			} else {
				cacheHooks.OnCacheSet(ctx, format, len(data))
			}
		}
	}

	hooks.OnRenderComplete(ctx, opts.Formats, time.Since(start), nil)
	return artifacts, hits, nil
}

// Render builds the DOT graph for ps and renders every requested format.
// The returned Result carries everything except the search time.
func (r *Runner) Render(ctx context.Context, ps knight.PathSet, opts Options) (*Result, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateForRender(); err != nil {
		return nil, err
	}

	result := &Result{
		Paths: ps,
		DOT:   nodelink.ToDOT(ps, opts.DOTOptions()),
	}
	result.Stats.PathCount = ps.Len()
	result.Stats.Moves = ps.Moves()
	result.Stats.NodeCount = len(nodelink.Nodes(ps))
	result.Stats.EdgeCount = len(nodelink.Edges(ps))

	renderStart := time.Now()
	artifacts, hits, err := r.RenderWithCacheInfo(ctx, ps, result.DOT, opts)
	if err != nil {
		return nil, err
	}
	result.Artifacts = artifacts
	result.Stats.RenderTime = time.Since(renderStart)
	result.CacheInfo = cacheInfo(hits, opts.Formats)

	r.Logger.Info("rendered outputs",
		"formats", opts.Formats,
		"cached", len(hits),
		"duration", result.Stats.RenderTime)

	return result, nil
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

func cacheInfo(hits, formats []string) CacheInfo {
	info := CacheInfo{Hits: hits}
	images := 0
	for _, f := range formats {
		if imageFormats[f] {
			images++
		}
	}
	info.RenderHit = images > 0 && len(hits) == images
	return info
}
