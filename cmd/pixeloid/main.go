//go:build ebiten

package main

import (
	"errors"
	"flag"
	"fmt"
	"os"

	"pixeloid/internal/app"

	"github.com/hajimehoshi/ebiten/v2"
)

func main() {
	cfg := app.NewConfig()
	if err := cfg.Parse(flag.CommandLine, os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	log, err := cfg.Logger(os.Stderr)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	game, err := app.New(cfg, log)
	if err != nil {
		log.Error("start", "error", err)
		os.Exit(1)
	}
	defer game.Close()

	ebiten.SetWindowTitle(fmt.Sprintf("pixeloid (%s)", cfg.Signature))
	ebiten.SetTPS(cfg.TPS)
	win := cfg.Window()
	ebiten.SetWindowSize(win.W, win.H)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	log.Info("viewer starting", "scale", cfg.Scale, "padding", cfg.Padding, "signature", cfg.Signature, "mapper", cfg.Mapper)
	if err := ebiten.RunGame(game); err != nil && !errors.Is(err, ebiten.Termination) {
		log.Error("run", "error", err)
		os.Exit(1)
	}
}
