package game

import (
	"fmt"
	"image"
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/iburimskiy/galaxy-generator/internal/galaxy"
	"github.com/iburimskiy/galaxy-generator/internal/panel"
)

var (
	panelBg     = color.RGBA{R: 18, G: 20, B: 28, A: 220}
	panelHeader = color.RGBA{R: 40, G: 44, B: 60, A: 240}
	panelBorder = color.RGBA{R: 150, G: 170, B: 200, A: 255}
	trackColor  = color.RGBA{R: 50, G: 55, B: 70, A: 255}
	fillColor   = color.RGBA{R: 100, G: 120, B: 160, A: 255}
	activeFill  = color.RGBA{R: 140, G: 160, B: 210, A: 255}
)

func fillRect(dst *ebiten.Image, r image.Rectangle, c color.Color) {
	vector.DrawFilledRect(dst, float32(r.Min.X), float32(r.Min.Y), float32(r.Dx()), float32(r.Dy()), c, false)
}

func strokeRect(dst *ebiten.Image, r image.Rectangle, c color.Color) {
	vector.StrokeRect(dst, float32(r.Min.X), float32(r.Min.Y), float32(r.Dx()), float32(r.Dy()), 1, c, false)
}

// formatValue prints a field value with as many decimals as its step needs.
func formatValue(f galaxy.Field, v float64) string {
	if f.Kind == galaxy.KindInt || f.Step >= 1 {
		return fmt.Sprintf("%d", int(math.Round(v)))
	}
	decimals := 3
	if f.Step > 0 {
		decimals = int(math.Max(0, math.Ceil(-math.Log10(f.Step))))
	}
	return fmt.Sprintf("%.*f", decimals, v)
}

// debugFontHeight is the line height of ebitenutil's debug font.
const debugFontHeight = 16

// textY centers a debug-font line vertically in r.
func textY(r image.Rectangle) int {
	return r.Min.Y + (r.Dy()-debugFontHeight)/2
}

func drawPanel(dst *ebiten.Image, p *panel.Panel) {
	fillRect(dst, p.Bounds(), panelBg)

	hdr := p.Header()
	fillRect(dst, hdr, panelHeader)
	label := "Controls [-]"
	if p.Collapsed {
		label = "Controls [+]"
	}
	ebitenutil.DebugPrintAt(dst, label, hdr.Min.X+6, textY(hdr))

	draft := p.Draft()
	for _, r := range p.Rows() {
		ebitenutil.DebugPrintAt(dst, r.Field.Label, r.Bounds.Min.X+6, textY(r.Bounds))
		valueX := r.Control.Max.X + 6

		if r.Field.Kind == galaxy.KindColor {
			c, _ := draft.Color(r.Field.Name)
			fillRect(dst, r.Control, toRGBA(c, 255))
			strokeRect(dst, r.Control, panelBorder)
			ebitenutil.DebugPrintAt(dst, c.Hex(), valueX, textY(r.Bounds))
			continue
		}

		fillRect(dst, r.Control, trackColor)
		filled := r.Control
		filled.Max.X = filled.Min.X + int(math.Round(float64(r.Control.Dx())*clamp01(p.Fraction(r.Field))))
		fill := fillColor
		if p.Dragging() {
			fill = activeFill
		}
		fillRect(dst, filled, fill)

		v, _ := draft.Value(r.Field.Name)
		ebitenutil.DebugPrintAt(dst, formatValue(r.Field, v), valueX, textY(r.Bounds))
	}
	strokeRect(dst, p.Bounds(), panelBorder)
}
