package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"runtime"
	"strconv"
	"strings"
	"time"

	"github.com/schollz/progressbar/v3"

	"pixeloid/internal/app"
	"pixeloid/internal/space"
	"pixeloid/internal/sweep"
)

func parseList[T any](s string, parse func(string) (T, error)) ([]T, error) {
	var out []T
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		v, err := parse(part)
		if err != nil {
			return nil, fmt.Errorf("parse %q: %w", part, err)
		}
		out = append(out, v)
	}
	return out, nil
}

func parseFloat(s string) (float64, error) { return strconv.ParseFloat(s, 64) }

func run() (err error) {
	scalesFlag := flag.String("scales", "2,5,10,20", "comma separated scales")
	paddingsFlag := flag.String("paddings", "2,5,10,25", "comma separated paddings")
	tilesFlag := flag.String("tiles", "25,50,100", "comma separated coarse tile sizes in screen pixels")
	frames := flag.Int("frames", 600, "frames per walk")
	step := flag.Float64("step", 12, "largest pan per frame in screen pixels")
	width := flag.Int("width", 1280, "viewport width")
	height := flag.Int("height", 720, "viewport height")
	workers := flag.Int("workers", runtime.NumCPU(), "number of worker goroutines")
	seed := flag.Int64("seed", 1337, "walk seed")
	top := flag.Int("top", 10, "results to print")
	level := flag.String("log-level", "info", "debug, info, warn or error")
	flag.Parse()

	log, err := app.NewLogger(os.Stderr, *level)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return err
	}
	defer func() {
		if err != nil {
			log.Error("sweep failed", "error", err)
		}
	}()

	scales, err := parseList(*scalesFlag, parseFloat)
	if err != nil {
		return err
	}
	paddings, err := parseList(*paddingsFlag, strconv.Atoi)
	if err != nil {
		return err
	}
	tiles, err := parseList(*tilesFlag, parseFloat)
	if err != nil {
		return err
	}
	for _, s := range scales {
		if err := space.CheckScale(s); err != nil {
			return err
		}
	}

	cases := sweep.Cases(scales, paddings, tiles)
	fmt.Printf("Sweeping %d configurations (%d workers, %d frames)\n", len(cases), *workers, *frames)
	log.Debug("sweep starting", "cases", len(cases), "workers", *workers, "frames", *frames, "seed", *seed)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	pb := progressbar.Default(int64(len(cases)))
	defer pb.Close()

	start := time.Now()
	all := sweep.Run(ctx, cases, sweep.Options{
		Frames:   *frames,
		Seed:     *seed,
		Viewport: space.Size{W: float64(*width), H: float64(*height)},
		Step:     *step,
		Workers:  *workers,
		OnResult: func(res sweep.Result) {
			pb.Add(1)
			if res.Err != nil {
				log.Debug("configuration rejected", "case", res.Case.String(), "error", res.Err)
			}
		},
	})
	elapsed := time.Since(start)
	if err := pb.Finish(); err != nil {
		log.Warn("progress bar", "error", err)
	}
	log.Info("sweep finished", "cases", len(all), "elapsed", elapsed.Round(time.Millisecond))

	fmt.Printf("\nTop %d results (elapsed %s):\n", min(*top, len(all)), elapsed.Round(time.Millisecond))
	rejected := 0
	for i, res := range all {
		if res.Err != nil {
			rejected++
			continue
		}
		if i >= *top {
			continue
		}
		fmt.Printf("%2d) rebuilds=%d/%d (%.1f%%) misses=%d took=%s %s\n",
			i+1, res.Rebuilds, res.Frames, 100*res.RebuildRate(), res.Misses, res.Elapsed.Round(time.Microsecond), res.Case)
	}
	if rejected > 0 {
		fmt.Printf("\n%d configurations rejected:\n", rejected)
		for _, res := range all {
			if res.Err != nil {
				fmt.Printf("    %s: %v\n", res.Case, res.Err)
			}
		}
	}
	return ctx.Err()
}

func main() {
	if err := run(); err != nil {
		os.Exit(1)
	}
}
