package galaxy

import (
	"github.com/lucasb-eyer/go-colorful"
)

// Kind tells a control surface which widget edits a field.
type Kind int

const (
	KindInt Kind = iota
	KindFloat
	KindColor
)

// Field describes one editable parameter. Color fields carry no range.
type Field struct {
	Name  string
	Label string
	Kind  Kind
	Min   float64
	Max   float64
	Step  float64
}

const (
	FieldCount           = "count"
	FieldSize            = "size"
	FieldRadius          = "radius"
	FieldBranches        = "branches"
	FieldSpin            = "spin"
	FieldRandomness      = "randomness"
	FieldRandomnessPower = "randomnessPower"
	FieldColorInside     = "colorInside"
	FieldColorOutside    = "colorOutside"
)

// Fields is the control schema, in panel order.
var Fields = []Field{
	{Name: FieldCount, Label: "count", Kind: KindInt, Min: 100, Max: 1_000_000, Step: 1},
	{Name: FieldSize, Label: "size", Kind: KindFloat, Min: 0.001, Max: 0.1, Step: 0.001},
	{Name: FieldRadius, Label: "radius", Kind: KindFloat, Min: 1, Max: 20, Step: 0.001},
	{Name: FieldBranches, Label: "branches", Kind: KindInt, Min: 2, Max: 20, Step: 1},
	{Name: FieldSpin, Label: "spin", Kind: KindFloat, Min: -5, Max: 5, Step: 0.001},
	{Name: FieldRandomness, Label: "randomness", Kind: KindFloat, Min: 0, Max: 2, Step: 0.001},
	{Name: FieldRandomnessPower, Label: "randomnessPower", Kind: KindFloat, Min: 1, Max: 10, Step: 0.001},
	{Name: FieldColorInside, Label: "colorInside", Kind: KindColor},
	{Name: FieldColorOutside, Label: "colorOutside", Kind: KindColor},
}

// FieldByName looks up a schema entry.
func FieldByName(name string) (Field, bool) {
	for _, f := range Fields {
		if f.Name == name {
			return f, true
		}
	}
	return Field{}, false
}

// Value returns the numeric value of a field. ok is false for color fields
// and unknown names.
func (p Parameters) Value(name string) (v float64, ok bool) {
	switch name {
	case FieldCount:
		return float64(p.Count), true
	case FieldSize:
		return p.Size, true
	case FieldRadius:
		return p.Radius, true
	case FieldBranches:
		return float64(p.Branches), true
	case FieldSpin:
		return p.Spin, true
	case FieldRandomness:
		return p.Randomness, true
	case FieldRandomnessPower:
		return p.RandomnessPower, true
	}
	return 0, false
}

// With returns a copy of p with a numeric field replaced. Integer fields are
// rounded to the nearest whole number. Unknown names leave p unchanged.
func (p Parameters) With(name string, v float64) Parameters {
	switch name {
	case FieldCount:
		p.Count = roundInt(v)
	case FieldSize:
		p.Size = v
	case FieldRadius:
		p.Radius = v
	case FieldBranches:
		p.Branches = roundInt(v)
	case FieldSpin:
		p.Spin = v
	case FieldRandomness:
		p.Randomness = v
	case FieldRandomnessPower:
		p.RandomnessPower = v
	}
	return p
}

// Color returns a color field.
func (p Parameters) Color(name string) (colorful.Color, bool) {
	switch name {
	case FieldColorInside:
		return p.ColorInside, true
	case FieldColorOutside:
		return p.ColorOutside, true
	}
	return colorful.Color{}, false
}

// WithColor returns a copy of p with a color field replaced.
func (p Parameters) WithColor(name string, c colorful.Color) Parameters {
	switch name {
	case FieldColorInside:
		p.ColorInside = c
	case FieldColorOutside:
		p.ColorOutside = c
	}
	return p
}

func roundInt(v float64) int {
	if v < 0 {
		return int(v - 0.5)
	}
	return int(v + 0.5)
}
