//go:build !ebiten

package ui

import (
	"pixeloid/internal/engine"
	"pixeloid/internal/space"
)

// Overlay is a no-op placeholder used when the ebiten build tag is absent.
type Overlay struct{}

// NewOverlay constructs a stub overlay.
func NewOverlay(space.Mapper) *Overlay { return &Overlay{} }

// Update is a no-op in headless builds.
func (o *Overlay) Update(engine.Frame) {}

// Draw is a no-op placeholder.
func (o *Overlay) Draw(any, engine.Frame) {}
