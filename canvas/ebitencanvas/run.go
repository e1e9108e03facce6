package ebitencanvas

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/phanxgames/canopy"
	"github.com/phanxgames/canopy/canvas"
)

// RunConfig configures Run. Zero fields take their defaults.
type RunConfig struct {
	Title string
	// Width and Height are the logical screen size; default 640x480.
	Width, Height int
	Background    canvas.Color
	// OnUpdate is called once per tick after the layer's timeline has
	// advanced. Returning an error stops the game.
	OnUpdate func(dt float64) error
}

// Game adapts a canopy layer to ebiten.Game. Run uses it; embedders can
// drive it from their own game.
type Game struct {
	layer *canopy.Layer
	ctx   *Context
	cfg   RunConfig
}

// NewGame binds layer to a new Game and makes the game's context the
// layer's measurement context.
func NewGame(layer *canopy.Layer, cfg RunConfig) *Game {
	if cfg.Width <= 0 {
		cfg.Width = 640
	}
	if cfg.Height <= 0 {
		cfg.Height = 480
	}
	g := &Game{layer: layer, ctx: New(nil), cfg: cfg}
	layer.SetOutputContext(g.ctx)
	return g
}

// Update advances the timeline by one tick and dispatches left clicks to
// the layer as "click" events.
func (g *Game) Update() error {
	dt := 1000 / float64(ebiten.TPS())
	g.layer.Tick(dt)

	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		x, y := ebiten.CursorPosition()
		g.layer.Dispatch(&canopy.Event{Type: "click", LayerX: float64(x), LayerY: float64(y)})
	}
	if g.cfg.OnUpdate != nil {
		return g.cfg.OnUpdate(dt)
	}
	return nil
}

// Draw paints the whole layer. Ebitengine clears the screen every frame,
// so the dirty set only tells hosts that render offscreen what changed.
func (g *Game) Draw(screen *ebiten.Image) {
	if !g.cfg.Background.IsZero() {
		screen.Fill(g.cfg.Background.RGBA8())
	}
	g.ctx.SetTarget(screen)
	g.layer.Draw(g.ctx)
}

func (g *Game) Layout(_, _ int) (int, int) {
	return g.cfg.Width, g.cfg.Height
}

// Run opens a window showing layer and blocks until it is closed.
func Run(layer *canopy.Layer, cfg RunConfig) error {
	return NewGame(layer, cfg).Run()
}

// Run opens a window showing the game's layer and blocks until it is
// closed.
func (g *Game) Run() error {
	ebiten.SetWindowSize(g.cfg.Width, g.cfg.Height)
	if g.cfg.Title != "" {
		ebiten.SetWindowTitle(g.cfg.Title)
	}
	return ebiten.RunGame(g)
}
