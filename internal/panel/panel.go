package panel

import (
	"image"
	"math"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/iburimskiy/galaxy-generator/internal/galaxy"
)

const (
	DefaultWidth     = 300
	DefaultRowHeight = 22
	labelWidth       = 120
	valueWidth       = 64
	padding          = 6
)

type HitKind int

const (
	HitNone HitKind = iota
	HitHeader
	HitSlider
	HitColor
)

// Hit is what a press landed on.
type Hit struct {
	Kind  HitKind
	Field galaxy.Field
}

// Row is the on-screen geometry of one field.
type Row struct {
	Field  galaxy.Field
	Bounds image.Rectangle
	// Control is the slider track or the color swatch.
	Control image.Rectangle
}

// Panel is a control surface over galaxy.Fields. It edits a draft copy of
// the parameters and hands a snapshot out only when an edit finishes.
// Width and RowHeight are logical pixels; Origin and every returned
// rectangle are in screen pixels, Scale screen pixels per logical pixel.
type Panel struct {
	Origin    image.Point
	Width     int
	RowHeight int
	Scale     float64
	Collapsed bool

	draft  galaxy.Parameters
	active int // row index being dragged, -1 when idle
}

// New returns a collapsed panel over p.
func New(p galaxy.Parameters) *Panel {
	return &Panel{
		Width:     DefaultWidth,
		RowHeight: DefaultRowHeight,
		Scale:     1,
		Collapsed: true,
		draft:     p,
		active:    -1,
	}
}

func (p *Panel) Draft() galaxy.Parameters { return p.draft }

// Sync resets the draft to the committed parameters. Ignored mid-drag.
func (p *Panel) Sync(params galaxy.Parameters) {
	if p.active >= 0 {
		return
	}
	p.draft = params
}

func (p *Panel) Toggle() { p.Collapsed = !p.Collapsed }

// px converts logical pixels to screen pixels.
func (p *Panel) px(v int) int {
	if p.Scale <= 0 {
		return v
	}
	return int(math.Round(float64(v) * p.Scale))
}

// ScreenWidth is the panel width in screen pixels.
func (p *Panel) ScreenWidth() int { return p.px(p.Width) }

func (p *Panel) Header() image.Rectangle {
	return image.Rect(p.Origin.X, p.Origin.Y, p.Origin.X+p.px(p.Width), p.Origin.Y+p.px(p.RowHeight))
}

// Bounds covers the header and, when expanded, every row.
func (p *Panel) Bounds() image.Rectangle {
	h := p.px(p.RowHeight)
	if !p.Collapsed {
		h += p.px(p.RowHeight) * len(galaxy.Fields)
	}
	return image.Rect(p.Origin.X, p.Origin.Y, p.Origin.X+p.px(p.Width), p.Origin.Y+h)
}

func (p *Panel) Contains(x, y int) bool {
	return image.Pt(x, y).In(p.Bounds())
}

// Rows returns row geometry in field order, or nil when collapsed.
func (p *Panel) Rows() []Row {
	if p.Collapsed {
		return nil
	}
	rh, pad := p.px(p.RowHeight), p.px(padding)
	rows := make([]Row, len(galaxy.Fields))
	for i, f := range galaxy.Fields {
		top := p.Origin.Y + rh*(i+1)
		bounds := image.Rect(p.Origin.X, top, p.Origin.X+p.px(p.Width), top+rh)
		control := image.Rect(
			bounds.Min.X+p.px(labelWidth), bounds.Min.Y+pad/2,
			bounds.Max.X-p.px(valueWidth)-pad, bounds.Max.Y-pad/2,
		)
		rows[i] = Row{Field: f, Bounds: bounds, Control: control}
	}
	return rows
}

// Press routes a button press. A press on a slider starts a drag and moves
// the slider to x; nothing is committed until Release.
func (p *Panel) Press(x, y int) Hit {
	pt := image.Pt(x, y)
	if pt.In(p.Header()) {
		p.Toggle()
		return Hit{Kind: HitHeader}
	}
	for i, r := range p.Rows() {
		if !pt.In(r.Bounds) {
			continue
		}
		if r.Field.Kind == galaxy.KindColor {
			if pt.In(r.Control) {
				return Hit{Kind: HitColor, Field: r.Field}
			}
			return Hit{}
		}
		p.active = i
		p.Drag(x)
		return Hit{Kind: HitSlider, Field: r.Field}
	}
	return Hit{}
}

// Dragging reports whether a slider is held.
func (p *Panel) Dragging() bool { return p.active >= 0 }

// Drag moves the held slider to x. The draft changes; no commit happens.
func (p *Panel) Drag(x int) {
	rows := p.Rows()
	if p.active < 0 || p.active >= len(rows) {
		return
	}
	r := rows[p.active]
	p.draft = p.draft.With(r.Field.Name, valueAt(r.Field, r.Control, x))
}

// Release ends a drag. It returns the draft and true when a slider was held.
func (p *Panel) Release() (galaxy.Parameters, bool) {
	if p.active < 0 {
		return p.draft, false
	}
	p.active = -1
	return p.draft, true
}

// Cancel drops a drag without committing.
func (p *Panel) Cancel(committed galaxy.Parameters) {
	p.active = -1
	p.draft = committed
}

// CommitColor sets a color field and returns the snapshot to commit.
func (p *Panel) CommitColor(name string, c colorful.Color) galaxy.Parameters {
	p.draft = p.draft.WithColor(name, c.Clamped())
	return p.draft
}

// Fraction is how far along its range a numeric field sits, 0..1.
func (p *Panel) Fraction(f galaxy.Field) float64 {
	v, ok := p.draft.Value(f.Name)
	if !ok || f.Max <= f.Min {
		return 0
	}
	return clamp01((v - f.Min) / (f.Max - f.Min))
}

func valueAt(f galaxy.Field, track image.Rectangle, x int) float64 {
	frac := 0.0
	if w := track.Dx(); w > 0 {
		frac = clamp01(float64(x-track.Min.X) / float64(w))
	}
	return Snap(f, f.Min+frac*(f.Max-f.Min))
}

// Snap rounds v to the field's step and clamps it into range.
func Snap(f galaxy.Field, v float64) float64 {
	if f.Step > 0 {
		v = f.Min + math.Round((v-f.Min)/f.Step)*f.Step
	}
	return math.Max(f.Min, math.Min(f.Max, v))
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
