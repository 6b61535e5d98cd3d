package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"

	"pixeloid/internal/app"
	"pixeloid/internal/engine"
	"pixeloid/internal/render"
	"pixeloid/internal/space"
)

func run() error {
	x := flag.Float64("x", 0, "camera x in pixeloids")
	y := flag.Float64("y", 0, "camera y in pixeloids")
	w := flag.Int("w", 800, "image width")
	h := flag.Int("h", 600, "image height")
	scale := flag.Float64("scale", 10, "screen pixels per pixeloid")
	padding := flag.Int("padding", 2, "cells built beyond each edge")
	lines := flag.Float64("lines", 0, "grid line width as a fraction of a cell")
	out := flag.String("out", "pixeloid.png", "output path")
	level := flag.String("log-level", "info", "debug, info, warn or error")
	flag.Parse()

	log, err := app.NewLogger(os.Stderr, *level)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return err
	}
	if err := snapshot(log, *x, *y, *w, *h, *scale, *padding, *lines, *out); err != nil {
		log.Error("snapshot failed", "error", err)
		return err
	}
	return nil
}

func snapshot(log *slog.Logger, x, y float64, w, h int, scale float64, padding int, lines float64, out string) error {
	eng, err := engine.New(engine.Config{Padding: padding, MinScale: scale, Logger: log})
	if err != nil {
		return err
	}
	f, err := eng.Frame(engine.FrameContext{
		Camera:   space.Pixeloid{X: x, Y: y},
		Viewport: space.Size{W: float64(w), H: float64(h)},
		Scale:    scale,
		Padding:  padding,
	})
	if err != nil {
		return err
	}

	p := render.DefaultPalette()
	p.LineWidth = float32(lines)

	file, err := os.Create(out)
	if err != nil {
		return err
	}
	if err := render.WritePNG(file, f, p); err != nil {
		file.Close()
		return fmt.Errorf("write %s: %w", out, err)
	}
	if err := file.Close(); err != nil {
		return err
	}
	log.Info("snapshot written", "path", out, "range", f.Range.String(), "cells", f.Mesh.CellCount())
	return nil
}

func main() {
	if err := run(); err != nil {
		os.Exit(1)
	}
}
