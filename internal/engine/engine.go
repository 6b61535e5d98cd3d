// Package engine runs the per-frame pipeline: corners, cell range,
// regeneration decision, and mesh rebuild.
package engine

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"pixeloid/internal/cull"
	"pixeloid/internal/mesh"
	"pixeloid/internal/regen"
	"pixeloid/internal/space"
)

// ErrUnsafePadding is returned by New when coarse-tile signatures could pan
// the viewport past the built cells at the minimum scale.
var ErrUnsafePadding = errors.New("engine: padding too small for coarse tile")

// FrameContext is the immutable input for one frame. The render loop builds
// it once per frame and the engine never reads camera state elsewhere.
type FrameContext struct {
	Camera   space.Pixeloid
	Viewport space.Size
	Scale    float64
	Padding  int
}

// Offset returns the world position of screen (0,0).
func (c FrameContext) Offset() (space.Pixeloid, error) {
	return space.OriginOffset(c.Camera, c.Viewport, c.Scale)
}

// Frame is the engine's output for one FrameContext.
type Frame struct {
	Context FrameContext
	Bounds  space.Bounds
	// Range is the padded cell range a rebuild for this frame would cover.
	Range cull.CellRange
	// Visible is the unpadded range of cells touched by the viewport.
	Visible cull.CellRange
	// Mesh is the published geometry. It covers Visible whenever Frame
	// returns a nil error.
	Mesh *mesh.GridMesh
	// Rebuilt reports whether Mesh was built during this frame.
	Rebuilt bool
	// CoverageMiss reports a forced rebuild because the signature did not
	// change but the published mesh no longer covered Visible.
	CoverageMiss bool
}

// Config configures an Engine.
type Config struct {
	// Padding is the cell margin the driver intends to use.
	Padding int
	// MinScale is the smallest scale the driver will request.
	MinScale float64
	Cache    regen.Config
	MaxCells int
	// Release is called with each mesh after it has been replaced.
	Release regen.ReleaseFunc
	Logger  *slog.Logger
}

// Stats accumulates counters across frames.
type Stats struct {
	Frames         uint64
	Rebuilds       uint64
	CoverageMisses uint64
	BuildErrors    uint64
	ReleaseErrors  uint64
	LastBuild      time.Duration
	LastRebuild    uint64 // frame number of the most recent rebuild
}

// Engine owns the regeneration cache and the mesh builder.
type Engine struct {
	cfg     Config
	cache   *regen.Cache
	builder mesh.Builder
	log     *slog.Logger
	stats   Stats
	last    Frame
}

// New validates cfg and returns an Engine.
func New(cfg Config) (*Engine, error) {
	if cfg.MinScale == 0 {
		cfg.MinScale = 1
	}
	if err := space.CheckScale(cfg.MinScale); err != nil {
		return nil, fmt.Errorf("engine: min scale: %w", err)
	}
	if cfg.Padding < 0 {
		return nil, fmt.Errorf("engine: negative padding %d", cfg.Padding)
	}
	cache := regen.New(cfg.Cache)
	cfg.Cache = cache.Config()
	if cfg.Cache.Mode == regen.CoarseTile {
		need := regen.RequiredPadding(cfg.Cache.TileSize, cfg.MinScale)
		if cfg.Padding < need {
			return nil, fmt.Errorf("%w: padding %d, tile %v at min scale %v needs %d",
				ErrUnsafePadding, cfg.Padding, cfg.Cache.TileSize, cfg.MinScale, need)
		}
	}
	return &Engine{
		cfg:     cfg,
		cache:   cache,
		builder: mesh.Builder{MaxCells: cfg.MaxCells},
		log:     orNop(cfg.Logger),
	}, nil
}

// Config returns the effective configuration.
func (e *Engine) Config() Config { return e.cfg }

// Stats returns a copy of the counters.
func (e *Engine) Stats() Stats { return e.stats }

// Last returns the most recent successful frame.
func (e *Engine) Last() Frame { return e.last }

// Mesh returns the published mesh.
func (e *Engine) Mesh() *mesh.GridMesh { return e.cache.Current() }

// Cache exposes the regeneration cache for diagnostics.
func (e *Engine) Cache() *regen.Cache { return e.cache }

// Invalidate forces a rebuild on the next frame.
func (e *Engine) Invalidate() { e.cache.Reset() }

// Frame runs the pipeline for ctx. An invalid scale fails the frame. A build
// failure keeps the previous mesh, which is returned alongside the error.
func (e *Engine) Frame(ctx FrameContext) (Frame, error) {
	bounds, err := space.ViewportBounds(ctx.Camera, ctx.Viewport, ctx.Scale)
	if err != nil {
		return Frame{}, err
	}
	e.stats.Frames++

	f := Frame{
		Context: ctx,
		Bounds:  bounds,
		Range:   cull.Range(bounds.Corners, ctx.Padding),
		Visible: cull.Range(bounds.Corners, 0),
	}
	sig := e.cache.Signature(bounds.Corners, f.Range, ctx.Scale)
	stale := e.cache.Stale(sig)
	current := e.cache.Current()
	if !stale && current != nil && !current.Range().Contains(f.Visible) {
		stale = true
		f.CoverageMiss = true
		e.stats.CoverageMisses++
		e.log.Warn("published mesh no longer covers viewport",
			"built", current.Range().String(), "visible", f.Visible.String(),
			"scale", ctx.Scale, "padding", ctx.Padding, "key", sig.Key.String())
	}
	if !stale {
		f.Mesh = current
		e.last = f
		return f, nil
	}

	start := time.Now()
	m, err := e.builder.Build(f.Range)
	if err != nil {
		e.stats.BuildErrors++
		e.log.Warn("mesh build failed, keeping previous mesh", "range", f.Range.String(), "error", err)
		f.Mesh = current
		return f, err
	}
	e.stats.LastBuild = time.Since(start)

	if err := e.cache.Publish(sig, m, e.cfg.Release); err != nil {
		e.stats.ReleaseErrors++
		e.log.Warn("release of previous mesh failed", "error", err)
	}
	e.stats.Rebuilds++
	e.stats.LastRebuild = e.stats.Frames
	e.log.Debug("mesh rebuilt",
		"range", f.Range.String(), "cells", m.CellCount(), "scale", ctx.Scale,
		"generation", m.Generation(), "took", e.stats.LastBuild)

	f.Mesh = m
	f.Rebuilt = true
	e.last = f
	return f, nil
}
