package galaxy

import (
	"math"

	"github.com/lucasb-eyer/go-colorful"
)

// Parameters is the full input of one generation.
type Parameters struct {
	Count    int
	Size     float64 // point render size, unused by the position math
	Radius   float64
	Branches int
	Spin     float64 // radians of extra rotation per unit radius
	// Randomness is exposed on the panel but jitter is shaped by
	// RandomnessPower alone.
	Randomness      float64
	RandomnessPower float64
	ColorInside     colorful.Color
	ColorOutside    colorful.Color
}

// Default returns the startup parameter set.
func Default() Parameters {
	return Parameters{
		Count:           100_000,
		Size:            0.01,
		Radius:          5,
		Branches:        3,
		Spin:            1,
		Randomness:      0.2,
		RandomnessPower: 3,
		ColorInside:     colorful.Color{R: 1, G: 0x60 / 255.0, B: 0x30 / 255.0},
		ColorOutside:    colorful.Color{R: 0x1b / 255.0, G: 0x39 / 255.0, B: 0x84 / 255.0},
	}
}

// Validate checks every field against its schema range.
func (p Parameters) Validate() error {
	for _, f := range Fields {
		if f.Kind == KindColor {
			c, _ := p.Color(f.Name)
			if !c.IsValid() {
				return &ParameterError{Field: f.Name, Value: c, Reason: "channels must lie in 0..1"}
			}
			continue
		}
		v, _ := p.Value(f.Name)
		if math.IsNaN(v) || math.IsInf(v, 0) || v < f.Min || v > f.Max {
			if f.Kind == KindInt {
				return outOfRange(f, int(v))
			}
			return outOfRange(f, v)
		}
	}
	return nil
}
