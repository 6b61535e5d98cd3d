//go:build ebiten

package app

import (
	"errors"
	"log/slog"
	"math"
	"time"

	"pixeloid/internal/engine"
	"pixeloid/internal/render"
	"pixeloid/internal/space"
	"pixeloid/internal/ui"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// keyPanPixels is how far one tick of a held pan key moves, in screen pixels.
const keyPanPixels = 8

// Game adapts the frame engine to the ebiten.Game interface.
type Game struct {
	cfg      *Config
	log      *slog.Logger
	engine   *engine.Engine
	renderer *render.GridRenderer
	camera   *Camera
	hud      *ui.HUD
	overlay  *ui.Overlay

	viewport space.Size
	frame    engine.Frame

	dragging   bool
	dragX      int
	dragY      int
	lastErrLog time.Time
}

// New constructs a Game from cfg.
func New(cfg *Config, log *slog.Logger) (*Game, error) {
	mapper, err := cfg.NewMapper()
	if err != nil {
		return nil, err
	}
	renderer := render.NewGridRenderer(render.DefaultPalette(), log)
	ec, err := cfg.EngineConfig(log)
	if err != nil {
		return nil, err
	}
	ec.Release = renderer.Release
	eng, err := engine.New(ec)
	if err != nil {
		renderer.Close()
		return nil, err
	}
	win := cfg.Window()
	return &Game{
		cfg:      cfg,
		log:      log,
		engine:   eng,
		renderer: renderer,
		camera:   NewCamera(cfg),
		hud:      ui.NewHUD(eng, 0, 10),
		overlay:  ui.NewOverlay(mapper),
		viewport: space.Size{W: float64(win.W), H: float64(win.H)},
	}, nil
}

// Close releases GPU resources.
func (g *Game) Close() { g.renderer.Close() }

// Update handles input and runs the engine once for this tick.
func (g *Game) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyQ) || inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyG) {
		g.renderer.SetEffect(!g.renderer.EffectAttached())
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyF1) {
		g.hud.Toggle()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		g.engine.Invalidate()
	}
	g.handlePan()
	g.handleZoom()

	f, err := g.engine.Frame(g.camera.Context(g.viewport, g.cfg.Padding))
	switch {
	case err == nil:
		g.frame = f
	case errors.Is(err, space.ErrInvalidScale):
		return err
	default:
		// build failed; f still carries the previous mesh
		g.frame = f
		if now := time.Now(); now.Sub(g.lastErrLog) > time.Second {
			g.log.Error("frame", "error", err)
			g.lastErrLog = now
		}
	}

	g.overlay.Update(g.frame)
	g.hud.Update(time.Now())
	return nil
}

func (g *Game) handlePan() {
	var dx, dy float64
	if ebiten.IsKeyPressed(ebiten.KeyArrowLeft) || ebiten.IsKeyPressed(ebiten.KeyA) {
		dx += keyPanPixels
	}
	if ebiten.IsKeyPressed(ebiten.KeyArrowRight) || ebiten.IsKeyPressed(ebiten.KeyD) {
		dx -= keyPanPixels
	}
	if ebiten.IsKeyPressed(ebiten.KeyArrowUp) || ebiten.IsKeyPressed(ebiten.KeyW) {
		dy += keyPanPixels
	}
	if ebiten.IsKeyPressed(ebiten.KeyArrowDown) || ebiten.IsKeyPressed(ebiten.KeyS) {
		dy -= keyPanPixels
	}
	if dx != 0 || dy != 0 {
		g.camera.PanScreen(dx, dy)
	}

	mx, my := ebiten.CursorPosition()
	switch {
	case inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft):
		g.dragging = true
	case !ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft):
		g.dragging = false
	case g.dragging:
		g.camera.PanScreen(float64(mx-g.dragX), float64(my-g.dragY))
	}
	g.dragX, g.dragY = mx, my
}

func (g *Game) handleZoom() {
	_, wy := ebiten.Wheel()
	if wy == 0 {
		return
	}
	mx, my := ebiten.CursorPosition()
	g.camera.Zoom(math.Pow(1.1, wy), space.Screen{X: float64(mx), Y: float64(my)}, g.viewport)
}

// Draw renders the current frame.
func (g *Game) Draw(screen *ebiten.Image) {
	g.renderer.Draw(screen, g.frame)
	g.overlay.Draw(screen, g.frame)
	g.hud.Draw(screen)
}

// Layout tracks the window size; the engine receives it on the next Update.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	g.viewport = space.Size{W: float64(outsideWidth), H: float64(outsideHeight)}
	return outsideWidth, outsideHeight
}
