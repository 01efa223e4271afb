package game

import (
	"fmt"
	"image"
	"image/color"
	"math"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"

	"github.com/iburimskiy/galaxy-generator/internal/config"
	"github.com/iburimskiy/galaxy-generator/internal/galaxy"
	"github.com/iburimskiy/galaxy-generator/internal/panel"
	"github.com/iburimskiy/galaxy-generator/internal/scene"
	"github.com/iburimskiy/galaxy-generator/internal/viewer"
)

var background = color.RGBA{A: 255}

type Options struct {
	// Observers also hear about every commit, after the game itself.
	Observers     []viewer.Observer
	Picker        ColorPicker
	StatsInterval time.Duration
	// Now is the frame clock; time.Now when nil.
	Now func() time.Time
}

// Game adapts a viewer.State to ebiten. It turns ebiten callbacks into
// viewer events and draws the scene.
type Game struct {
	state  *viewer.State
	loop   *viewer.Loop
	panel  *panel.Panel
	picker ColorPicker
	points pointRenderer
	stats  *frameStats
	clicks clickTracker
	now    func() time.Time

	// input
	prevKey  map[ebiten.Key]bool
	pointer  pointer
	primary  *ebiten.TouchID
	touchBuf []ebiten.TouchID
	touchIDs []ebiten.TouchID
	pinch    float64

	lastFrame time.Time
	outside   image.Point
	margin    image.Point
	scale     float64
	visible   int
	lastTook  time.Duration
}

// New wires g to s and queues the initial generation.
func New(s *viewer.State, opts Options) *Game {
	if opts.Picker == nil {
		opts.Picker = zenityPicker{}
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	g := &Game{
		state:   s,
		loop:    viewer.NewLoop(s),
		panel:   panel.New(s.Params),
		picker:  opts.Picker,
		stats:   newFrameStats(opts.StatsInterval),
		clicks:  newClickTracker(),
		now:     opts.Now,
		prevKey: map[ebiten.Key]bool{},
	}
	s.SetObserver(append(Observers{g}, opts.Observers...))
	s.SetPresenter(windowPresenter{})
	g.loop.Post(viewer.ParameterCommitted{Params: s.Params})
	return g
}

func (g *Game) Regenerated(_ galaxy.Parameters, took time.Duration) { g.lastTook = took }

func (g *Game) Rejected(error) {}

func (g *Game) Update() error {
	now := g.now()
	delta := 0.0
	if !g.lastFrame.IsZero() {
		delta = now.Sub(g.lastFrame).Seconds()
	}
	g.lastFrame = now

	if err := g.handleKeys(); err != nil {
		return err
	}
	g.handleMouse(now)
	g.handleTouches(now)

	g.loop.Post(viewer.FrameEvent{Delta: delta})
	g.loop.Drain()
	g.panel.Sync(g.state.Params)
	g.stats.tick(delta, g.visible)
	return nil
}

func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(background)

	cam := g.state.Camera
	vp := g.state.Viewport.Camera()
	g.visible = 0
	for _, o := range g.state.Scene.Objects() {
		if pts, ok := o.(*scene.Points); ok {
			g.visible += g.points.draw(screen, pts, cam, vp, g.state.Viewport.PixelRatio)
		}
	}

	drawPanel(screen, g.panel)
	ebitenutil.DebugPrintAt(screen, g.status(), g.margin.X, g.margin.Y)
	ebitenutil.DebugPrintAt(screen, fmt.Sprintf("FPS: %.1f", ebiten.ActualFPS()), g.margin.X, g.margin.Y+debugFontHeight)
}

func (g *Game) status() string {
	status := fmt.Sprintf("%s points", formatCount(g.state.Params.Count))
	if g.lastTook > 0 {
		status += " in " + formatDuration(g.lastTook)
	}
	status += fmt.Sprintf(" | %s visible", formatCount(g.visible))
	if g.state.LastErr != nil {
		status += " | Error: " + g.state.LastErr.Error()
	}
	return status
}

// Layout sizes the screen buffer to the window times the capped device
// scale, and keeps the panel pinned to the top-right corner.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	scale := deviceScale()
	if outsideWidth != g.outside.X || outsideHeight != g.outside.Y || scale != g.scale {
		g.outside, g.scale = image.Pt(outsideWidth, outsideHeight), scale
		g.loop.Dispatch(viewer.ResizeEvent{Size: viewer.Size{
			Width:       outsideWidth,
			Height:      outsideHeight,
			DeviceScale: scale,
		}})
	}
	vp := g.state.Viewport
	g.fitOverlay(vp)
	return max(vp.Width, 1), max(vp.Height, 1)
}

// fitOverlay scales the panel, margins and click slop from logical to screen
// pixels. The debug font has a fixed pixel size and is not scaled.
func (g *Game) fitOverlay(vp viewer.Viewport) {
	ratio := vp.PixelRatio
	if ratio <= 0 {
		ratio = 1
	}
	g.margin = image.Pt(
		int(math.Round(config.PanelMarginX*ratio)),
		int(math.Round(config.PanelMarginY*ratio)),
	)
	g.panel.Scale = ratio
	g.panel.Origin = image.Pt(vp.Width-g.panel.ScreenWidth()-g.margin.X, g.margin.Y)
	g.clicks.slop = int(math.Round(config.DoubleClickSlop * ratio))
}

func deviceScale() float64 {
	if m := ebiten.Monitor(); m != nil {
		if s := m.DeviceScaleFactor(); s > 0 && !math.IsNaN(s) {
			return s
		}
	}
	return 1
}

// Close releases the scene.
func (g *Game) Close() { g.state.Close() }
