package game

import (
	"errors"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/ncruces/zenity"
	"github.com/rs/zerolog/log"

	"github.com/iburimskiy/galaxy-generator/internal/config"
	"github.com/iburimskiy/galaxy-generator/internal/galaxy"
	"github.com/iburimskiy/galaxy-generator/internal/panel"
	"github.com/iburimskiy/galaxy-generator/internal/viewer"
)

// clickTracker reports the second of two clicks that land close together in
// space and time.
type clickTracker struct {
	window time.Duration
	slop   int

	last time.Time
	x, y int
}

func newClickTracker() clickTracker {
	return clickTracker{
		window: config.DoubleClickMillis * time.Millisecond,
		slop:   config.DoubleClickSlop,
	}
}

func (c *clickTracker) click(now time.Time, x, y int) bool {
	if !c.last.IsZero() && now.Sub(c.last) <= c.window &&
		abs(x-c.x) <= c.slop && abs(y-c.y) <= c.slop {
		c.last = time.Time{}
		return true
	}
	c.last, c.x, c.y = now, x, y
	return false
}

// pointer is the single active mouse button or primary touch.
type pointer struct {
	orbiting     bool
	lastX, lastY int
}

func (g *Game) handleKeys() error {
	justPressed := func(k ebiten.Key) bool {
		pressed := ebiten.IsKeyPressed(k)
		jp := pressed && !g.prevKey[k]
		g.prevKey[k] = pressed
		return jp
	}

	if justPressed(ebiten.KeyP) {
		g.panel.Toggle()
	}
	if justPressed(ebiten.KeyF) {
		g.loop.Post(viewer.FullscreenToggleRequested{})
	}
	if justPressed(ebiten.KeyR) {
		g.loop.Post(viewer.ParameterCommitted{Params: g.state.Params})
	}
	if justPressed(ebiten.KeyEscape) || justPressed(ebiten.KeyQ) {
		return ebiten.Termination
	}
	return nil
}

func (g *Game) handleMouse(now time.Time) {
	x, y := ebiten.CursorPosition()
	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		g.pointerDown(x, y, now)
	} else if ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft) {
		g.pointerMove(x, y)
	}
	if inpututil.IsMouseButtonJustReleased(ebiten.MouseButtonLeft) {
		g.pointerUp()
	}

	if _, dy := ebiten.Wheel(); dy != 0 && !g.panel.Contains(x, y) {
		g.state.Orbit.Zoom(dy)
	}
}

func (g *Game) handleTouches(now time.Time) {
	g.touchBuf = inpututil.AppendJustPressedTouchIDs(g.touchBuf[:0])
	for _, id := range g.touchBuf {
		if g.primary == nil {
			g.primary = &id
			x, y := ebiten.TouchPosition(id)
			g.pointerDown(x, y, now)
		}
	}

	g.touchIDs = ebiten.AppendTouchIDs(g.touchIDs[:0])
	switch len(g.touchIDs) {
	case 2:
		x0, y0 := ebiten.TouchPosition(g.touchIDs[0])
		x1, y1 := ebiten.TouchPosition(g.touchIDs[1])
		g.pinchTo(distance(x0, y0, x1, y1))
	default:
		g.pinch = 0
		if g.primary != nil {
			x, y := ebiten.TouchPosition(*g.primary)
			g.pointerMove(x, y)
		}
	}

	if g.primary != nil && inpututil.IsTouchJustReleased(*g.primary) {
		g.primary = nil
		g.pointerUp()
	}
}

// pinchTo dollies by the change in finger spread. The first pinch frame
// drops any slider drag or orbit the primary touch started.
func (g *Game) pinchTo(d float64) {
	if g.pinch == 0 {
		if g.panel.Dragging() {
			g.panel.Cancel(g.state.Params)
		}
		g.pointer.orbiting = false
	}
	if g.pinch > 0 && d > 0 {
		g.state.Orbit.Dolly(g.pinch / d)
	}
	g.pinch = d
}

func (g *Game) pointerDown(x, y int, now time.Time) {
	if g.panel.Contains(x, y) {
		if hit := g.panel.Press(x, y); hit.Kind == panel.HitColor {
			g.pickColor(hit.Field)
		}
		return
	}
	g.pointer = pointer{orbiting: true, lastX: x, lastY: y}
	if g.clicks.click(now, x, y) {
		g.loop.Post(viewer.FullscreenToggleRequested{})
	}
}

func (g *Game) pointerMove(x, y int) {
	if g.panel.Dragging() {
		g.panel.Drag(x)
		return
	}
	if !g.pointer.orbiting {
		return
	}
	dx, dy := x-g.pointer.lastX, y-g.pointer.lastY
	if dx != 0 || dy != 0 {
		g.state.Orbit.Rotate(float64(dx), float64(dy), float64(g.state.Viewport.Height))
	}
	g.pointer.lastX, g.pointer.lastY = x, y
}

func (g *Game) pointerUp() {
	if params, ok := g.panel.Release(); ok {
		g.loop.Post(viewer.ParameterCommitted{Params: params})
	}
	g.pointer.orbiting = false
}

// pickColor blocks on the system color dialog and commits the result.
func (g *Game) pickColor(f galaxy.Field) {
	current, _ := g.panel.Draft().Color(f.Name)
	c, err := g.picker.PickColor(f.Label, current)
	if err != nil {
		if errors.Is(err, zenity.ErrCanceled) {
			return
		}
		log.Warn().Err(err).Str("field", f.Name).Msg("color dialog failed")
		g.state.LastErr = err
		return
	}
	g.loop.Post(viewer.ParameterCommitted{Params: g.panel.CommitColor(f.Name, c)})
}
