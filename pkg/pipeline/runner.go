package pipeline

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/argwheel/pkg/argument"
	"github.com/matzehuels/argwheel/pkg/cache"
	"github.com/matzehuels/argwheel/pkg/config"
	"github.com/matzehuels/argwheel/pkg/errors"
	"github.com/matzehuels/argwheel/pkg/httputil"
	"github.com/matzehuels/argwheel/pkg/observability"
	"github.com/matzehuels/argwheel/pkg/render/sunburst/layout"
	"github.com/matzehuels/argwheel/pkg/render/sunburst/zoom"
	"github.com/matzehuels/argwheel/pkg/tree"
)

// Runner encapsulates pipeline execution with caching.
//
// The Runner keeps no per-run state, so multiple goroutines can share one
// Runner with different options.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
	Config config.Config

	// Fetcher loads datasets named by http(s) URL.
	Fetcher *httputil.Client
}

// NewRunner creates a runner. A nil cache disables caching, a nil keyer
// uses [cache.DefaultKeyer], and a zero cfg means [config.Default].
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger, cfg config.Config) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	if cfg == (config.Config{}) {
		cfg = config.Default()
	}
	return &Runner{
		Cache:   c,
		Keyer:   keyer,
		Logger:  logger,
		Config:  cfg,
		Fetcher: httputil.NewClient(),
	}
}

// Execute runs load, layout and render.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	r.applyDefaults(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}

	result := &Result{}

	// Stage 1: Load
	loadStart := time.Now()
	loaded, loadHit, err := r.LoadWithCacheInfo(ctx, opts.Dataset)
	if err != nil {
		return nil, err
	}
	result.Loaded = loaded
	result.Stats.LoadTime = time.Since(loadStart)
	result.Stats.NodeCount = loaded.Tree.Len()
	result.Stats.Dropped = len(loaded.Tree.Dropped)
	result.Stats.MaxDepth = loaded.Tree.MaxDepth()
	result.CacheInfo.LoadHit = loadHit

	r.Logger.Info("loaded dataset",
		"nodes", result.Stats.NodeCount,
		"dropped", result.Stats.Dropped,
		"duration", result.Stats.LoadTime)

	// Stage 2: Layout
	layoutStart := time.Now()
	l, vs, err := r.Layout(ctx, loaded, opts)
	if err != nil {
		return nil, err
	}
	result.Layout = l
	result.View = vs
	result.Stats.LayoutTime = time.Since(layoutStart)

	r.Logger.Info("computed layout",
		"focus", vs.Focus(),
		"arcs", l.Len(),
		"duration", result.Stats.LayoutTime)

	// Stage 3: Render
	renderStart := time.Now()
	artifacts, renderHit, err := r.RenderWithCacheInfo(ctx, loaded, l, vs, opts)
	if err != nil {
		return nil, err
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

// =============================================================================
// Load
// =============================================================================

// Load decodes the dataset at path and builds its tree.
func (r *Runner) Load(ctx context.Context, path string) (*Loaded, error) {
	loaded, _, err := r.LoadWithCacheInfo(ctx, path)
	return loaded, err
}

// LoadWithCacheInfo is [Runner.Load] that also reports whether the dataset
// hash came from the cache.
func (r *Runner) LoadWithCacheInfo(ctx context.Context, path string) (*Loaded, bool, error) {
	if err := ctx.Err(); err != nil {
		return nil, false, errors.Wrap(errors.ErrCodeCanceled, err, "load %s", path)
	}

	hooks := observability.Pipeline()
	start := time.Now()
	hooks.OnLoadStart(ctx, path)

	loaded, hit, err := r.load(ctx, path)

	var nodes, dropped int
	if loaded != nil {
		nodes, dropped = loaded.Tree.Len(), len(loaded.Tree.Dropped)
	}
	hooks.OnLoadComplete(ctx, path, nodes, dropped, time.Since(start), err)
	return loaded, hit, err
}

func (r *Runner) load(ctx context.Context, path string) (*Loaded, bool, error) {
	ds, err := r.readDataset(ctx, path)
	if err != nil {
		return nil, false, err
	}
	t, err := tree.Build(ds.NewNodes)
	if err != nil {
		return nil, false, err
	}
	if len(t.Dropped) > 0 {
		r.Logger.Warn("dropped unreachable propositions", "dataset", path, "count", len(t.Dropped))
	}
	for _, issue := range ds.Validate() {
		r.Logger.Debug("dataset issue", "dataset", path, "issue", issue)
	}

	hash, hit, err := r.datasetHash(ctx, path, ds)
	if err != nil {
		return nil, false, err
	}
	return &Loaded{Dataset: ds, Hash: hash, Tree: t}, hit, nil
}

// readDataset decodes a local file, or fetches path when it is a URL.
func (r *Runner) readDataset(ctx context.Context, path string) (*argument.Dataset, error) {
	if !httputil.IsURL(path) {
		return argument.ReadFile(path)
	}
	fetcher := r.Fetcher
	if fetcher == nil {
		fetcher = httputil.NewClient()
	}
	data, err := fetcher.Get(ctx, path)
	if err != nil {
		return nil, err
	}
	ds, err := argument.Unmarshal(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return ds, nil
}

// datasetHash returns the content hash of ds, memoized under the file's
// path, modification time and size.
func (r *Runner) datasetHash(ctx context.Context, path string, ds *argument.Dataset) (string, bool, error) {
	var key string
	if info, err := os.Stat(path); err == nil {
		if abs, err := filepath.Abs(path); err == nil {
			path = abs
		}
		key = r.Keyer.DatasetKey(path, info.ModTime(), info.Size())
		if data, ok := r.cacheGet(ctx, key); ok {
			return string(data), true, nil
		}
	}

	hash, err := ds.Hash()
	if err != nil {
		return "", false, errors.Wrap(errors.ErrCodeInternal, err, "hash dataset")
	}
	if key != "" {
		r.cacheSet(ctx, key, []byte(hash))
	}
	return hash, false, nil
}

// =============================================================================
// Layout
// =============================================================================

// View resolves the zoom state described by opts against t: opts.View (or
// the thesis when empty), normalized, then each opts.Zoom target in turn.
// Targets that are unknown, leaves, or outside the current focus are
// skipped with a warning.
func (r *Runner) View(t *tree.Tree, opts Options) zoom.ViewState {
	vs := opts.View
	if vs.Len() == 0 {
		vs = zoom.New(t)
	}
	vs = zoom.Normalize(t, vs)
	for _, id := range opts.Zoom {
		next, ok := zoom.ZoomIn(t, vs, id)
		if !ok {
			r.Logger.Warn("zoom target ignored", "node", id, "focus", vs.Focus())
			continue
		}
		vs = next
	}
	return vs
}

// Layout computes the sunburst layout for the view described by opts.
func (r *Runner) Layout(ctx context.Context, loaded *Loaded, opts Options) (layout.Layout, zoom.ViewState, error) {
	r.applyDefaults(&opts)
	opts.SetLayoutDefaults()
	if err := ValidateVizType(opts.VizType); err != nil {
		return layout.Layout{}, zoom.ViewState{}, err
	}
	if err := ctx.Err(); err != nil {
		return layout.Layout{}, zoom.ViewState{}, errors.Wrap(errors.ErrCodeCanceled, err, "layout")
	}

	vs := r.View(loaded.Tree, opts)
	focus, _ := loaded.Tree.Find(vs.Focus())

	hooks := observability.Pipeline()
	start := time.Now()
	hooks.OnLayoutStart(ctx, string(focus.ID), focus.Size())

	l, vs := zoom.NewEngine(r.layoutConfig(opts)).Render(loaded.Tree, vs)

	hooks.OnLayoutComplete(ctx, string(l.Root), l.MaxDepth, time.Since(start))
	return l, vs, nil
}

func (r *Runner) layoutConfig(opts Options) layout.Config {
	return r.Config.LayoutFor(opts.Width, opts.Height)
}

// =============================================================================
// Render
// =============================================================================

// Render produces the artifacts requested by opts.
func (r *Runner) Render(ctx context.Context, loaded *Loaded, l layout.Layout, vs zoom.ViewState, opts Options) (map[string][]byte, error) {
	artifacts, _, err := r.RenderWithCacheInfo(ctx, loaded, l, vs, opts)
	return artifacts, err
}

// RenderWithCacheInfo is [Runner.Render] that also reports whether every
// artifact came from the cache.
func (r *Runner) RenderWithCacheInfo(ctx context.Context, loaded *Loaded, l layout.Layout, vs zoom.ViewState, opts Options) (map[string][]byte, bool, error) {
	r.applyDefaults(&opts)
	if err := opts.ValidateForRender(); err != nil {
		return nil, false, err
	}
	palette, err := r.Config.ColorPalette()
	if err != nil {
		return nil, false, err
	}

	layoutKey := r.Keyer.LayoutKey(loaded.Hash, cache.LayoutKeyOpts{
		Stack:  stackKey(vs),
		Config: cache.HashJSON(r.layoutConfig(opts)),
	})
	paletteHash := cache.HashJSON(palette)
	keyFor := func(format string) string {
		return r.Keyer.ArtifactKey(layoutKey, cache.ArtifactKeyOpts{
			VizType: opts.VizType,
			Format:  format,
			Width:   opts.Width,
			Height:  opts.Height,
			Labels:  opts.Labels,
			Palette: paletteHash,
		})
	}

	if !opts.Refresh {
		artifacts := make(map[string][]byte, len(opts.Formats))
		for _, format := range opts.Formats {
			data, ok := r.cacheGet(ctx, keyFor(format))
			if !ok {
				break
			}
			artifacts[format] = data
		}
		if len(artifacts) == len(opts.Formats) {
			return artifacts, true, nil
		}
	}

	hooks := observability.Pipeline()
	start := time.Now()
	hooks.OnRenderStart(ctx, opts.Formats)
	rendered, err := RenderArtifacts(ctx, loaded.Tree, l, vs, palette, opts)
	hooks.OnRenderComplete(ctx, opts.Formats, time.Since(start), err)
	if err != nil {
		return nil, false, err
	}

	for format, data := range rendered {
		r.cacheSet(ctx, keyFor(format), data)
	}
	return rendered, false, nil
}

// =============================================================================
// Helpers
// =============================================================================

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

// applyDefaults fills options from the runner's configuration.
func (r *Runner) applyDefaults(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
	if opts.Width <= 0 {
		opts.Width = r.Config.Render.Width
	}
	if opts.Height <= 0 {
		opts.Height = r.Config.Render.Height
	}
	opts.Labels = opts.Labels || r.Config.Render.Labels
}

func (r *Runner) cacheGet(ctx context.Context, key string) ([]byte, bool) {
	data, hit, err := r.Cache.Get(ctx, key)
	if err != nil {
		r.Logger.Debug("cache read failed", "key", key, "error", err)
	}
	if err != nil || !hit {
		observability.Cache().OnCacheMiss(ctx, key)
		return nil, false
	}
	observability.Cache().OnCacheHit(ctx, key)
	return data, true
}

func (r *Runner) cacheSet(ctx context.Context, key string, data []byte) {
	if err := r.Cache.Set(ctx, key, data, r.Config.Cache.TTL); err != nil {
		r.Logger.Debug("cache write failed", "key", key, "error", err)
		return
	}
	observability.Cache().OnCacheSet(ctx, key, len(data))
}

func stackKey(vs zoom.ViewState) []string {
	out := make([]string, len(vs.Stack))
	for i, id := range vs.Stack {
		out[i] = string(id)
	}
	return out
}
