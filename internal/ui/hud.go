//go:build ebiten

package ui

import (
	"image/color"
	"time"

	"pixeloid/internal/core"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text"
	"golang.org/x/image/font/basicfont"
)

// HUD renders a read-only parameter panel in the top-left corner.
type HUD struct {
	source  core.ParameterProvider
	width   int
	visible bool

	refresh  *core.FixedStep
	snapshot core.ParameterSnapshot
	lines    int

	panel *ebiten.Image
}

// NewHUD constructs a HUD that polls source refreshRate times per second.
func NewHUD(source core.ParameterProvider, width, refreshRate int) *HUD {
	if width <= 0 {
		width = 220
	}
	return &HUD{
		source:  source,
		width:   width,
		visible: true,
		refresh: core.NewFixedStep(refreshRate),
	}
}

// Toggle flips visibility.
func (h *HUD) Toggle() {
	if h == nil {
		return
	}
	h.visible = !h.visible
}

// Visible reports whether the panel is drawn.
func (h *HUD) Visible() bool { return h != nil && h.visible }

// Update refreshes the cached snapshot when the refresh step is due.
func (h *HUD) Update(now time.Time) {
	if h == nil || h.source == nil {
		return
	}
	if !h.refresh.ShouldStep(now) {
		return
	}
	h.snapshot = h.source.Parameters()
	lines := 0
	for _, g := range h.snapshot.Groups {
		lines += 1 + len(g.Params)
	}
	h.lines = lines
}

// Draw paints the panel.
func (h *HUD) Draw(screen *ebiten.Image) {
	if !h.Visible() || h.lines == 0 {
		return
	}
	height := panelPadding*2 + h.lines*lineHeight + (len(h.snapshot.Groups)-1)*groupGap
	if h.panel == nil || h.panel.Bounds().Dx() != h.width || h.panel.Bounds().Dy() != height {
		if h.panel != nil {
			h.panel.Deallocate()
		}
		h.panel = ebiten.NewImage(h.width, height)
	}
	h.panel.Fill(color.RGBA{R: 16, G: 16, B: 20, A: 200})

	face := basicfont.Face7x13
	y := panelPadding + baseline
	for i, g := range h.snapshot.Groups {
		if i > 0 {
			y += groupGap
		}
		title := g.Name
		if g.Summary != "" {
			title += " (" + g.Summary + ")"
		}
		text.Draw(h.panel, title, face, panelPadding, y, headerColor)
		y += lineHeight
		for _, p := range g.Params {
			text.Draw(h.panel, p.Label, face, panelPadding, y, labelColor)
			w := text.BoundString(face, p.Value).Dx()
			text.Draw(h.panel, p.Value, face, h.width-panelPadding-w, y, valueColor)
			y += lineHeight
		}
	}

	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(margin, margin)
	screen.DrawImage(h.panel, op)
}

var (
	headerColor = color.RGBA{R: 200, G: 200, B: 210, A: 255}
	labelColor  = color.RGBA{R: 160, G: 160, B: 170, A: 255}
	valueColor  = color.RGBA{R: 220, G: 220, B: 230, A: 255}
)

const (
	margin       = 8
	panelPadding = 10
	lineHeight   = 16
	baseline     = 12
	groupGap     = 6
)
