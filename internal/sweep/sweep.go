// Package sweep measures rebuild and coverage behaviour of engine
// configurations over seeded random camera walks.
package sweep

import (
	"context"
	"fmt"
	"runtime"
	"sort"
	"sync"
	"time"

	"pixeloid/internal/engine"
	"pixeloid/internal/regen"
	"pixeloid/internal/space"
	"pixeloid/pkg/core"
)

// Case is one engine configuration to walk.
type Case struct {
	Mode     regen.Mode
	Scale    float64
	Padding  int
	TileSize float64
}

func (c Case) String() string {
	if c.Mode == regen.CoarseTile {
		return fmt.Sprintf("coarse tile=%g scale=%g padding=%d", c.TileSize, c.Scale, c.Padding)
	}
	return fmt.Sprintf("exact scale=%g padding=%d", c.Scale, c.Padding)
}

// Result summarizes one walk.
type Result struct {
	Case     Case
	Frames   uint64
	Rebuilds uint64
	Misses   uint64
	Elapsed  time.Duration
	Err      error
}

// RebuildRate is the fraction of frames that rebuilt the mesh.
func (r Result) RebuildRate() float64 {
	if r.Frames == 0 {
		return 0
	}
	return float64(r.Rebuilds) / float64(r.Frames)
}

// Options controls a sweep.
type Options struct {
	Frames   int
	Seed     int64
	Viewport space.Size
	// Step is the largest per-frame pan in screen pixels.
	Step    float64
	Workers int
	// OnResult, when set, is called from the collecting goroutine.
	OnResult func(Result)
}

func (o Options) withDefaults() Options {
	if o.Frames <= 0 {
		o.Frames = 600
	}
	if o.Viewport.Degenerate() {
		o.Viewport = space.Size{W: 1280, H: 720}
	}
	if o.Step <= 0 {
		o.Step = 12
	}
	if o.Workers <= 0 {
		o.Workers = runtime.NumCPU()
	}
	return o
}

// Cases expands the grid: one exact case per scale and padding, plus one
// coarse case per tile size.
func Cases(scales []float64, paddings []int, tiles []float64) []Case {
	var out []Case
	for _, s := range scales {
		for _, p := range paddings {
			out = append(out, Case{Mode: regen.ExactRange, Scale: s, Padding: p})
			for _, t := range tiles {
				out = append(out, Case{Mode: regen.CoarseTile, Scale: s, Padding: p, TileSize: t})
			}
		}
	}
	return out
}

// RunCase walks the camera for opts.Frames frames at a fixed scale.
func RunCase(c Case, opts Options, seed int64) Result {
	opts = opts.withDefaults()
	res := Result{Case: c}
	eng, err := engine.New(engine.Config{
		Padding:  c.Padding,
		MinScale: c.Scale,
		Cache:    regen.Config{Mode: c.Mode, TileSize: c.TileSize},
	})
	if err != nil {
		res.Err = err
		return res
	}

	rng := core.NewRNG(seed)
	camera := space.Pixeloid{}
	start := time.Now()
	for i := 0; i < opts.Frames; i++ {
		f, err := eng.Frame(engine.FrameContext{Camera: camera, Viewport: opts.Viewport, Scale: c.Scale, Padding: c.Padding})
		if err != nil {
			res.Err = err
			break
		}
		if !f.Mesh.Range().Contains(f.Visible) {
			res.Err = fmt.Errorf("frame %d: mesh %v does not cover %v", i, f.Mesh.Range(), f.Visible)
			break
		}
		camera = camera.Add(rng.Range(-opts.Step, opts.Step)/c.Scale, rng.Range(-opts.Step, opts.Step)/c.Scale)
	}
	res.Elapsed = time.Since(start)
	s := eng.Stats()
	res.Frames, res.Rebuilds, res.Misses = s.Frames, s.Rebuilds, s.CoverageMisses
	return res
}

// Run evaluates cases on opts.Workers goroutines. Every case walks the same
// seeded path, so results are comparable. Results come back ordered by
// rebuild rate, failures last.
func Run(ctx context.Context, cases []Case, opts Options) []Result {
	opts = opts.withDefaults()
	jobs := make(chan Case)
	results := make(chan Result)
	var wg sync.WaitGroup

	for i := 0; i < opts.Workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for c := range jobs {
				results <- RunCase(c, opts, opts.Seed)
			}
		}()
	}

	go func() {
		wg.Wait()
		close(results)
	}()

	go func() {
		defer close(jobs)
		for _, c := range cases {
			select {
			case jobs <- c:
			case <-ctx.Done():
				return
			}
		}
	}()

	all := make([]Result, 0, len(cases))
	for res := range results {
		if opts.OnResult != nil {
			opts.OnResult(res)
		}
		all = append(all, res)
	}
	Sort(all)
	return all
}

// Sort orders results by rebuild rate, then by case description. Failed
// results sort last.
func Sort(all []Result) {
	sort.SliceStable(all, func(i, j int) bool {
		a, b := all[i], all[j]
		if (a.Err == nil) != (b.Err == nil) {
			return a.Err == nil
		}
		if a.RebuildRate() != b.RebuildRate() {
			return a.RebuildRate() < b.RebuildRate()
		}
		return a.Case.String() < b.Case.String()
	})
}
