package galaxy

import (
	"math"
	"math/rand/v2"

	"github.com/lucasb-eyer/go-colorful"
)

type Vec3 struct{ X, Y, Z float32 }

type Color struct{ R, G, B float32 }

// PointCloud holds index-aligned position and color buffers.
type PointCloud struct {
	Positions []Vec3
	Colors    []Color
}

func (c *PointCloud) Len() int {
	if c == nil {
		return 0
	}
	return len(c.Positions)
}

// RandomSource yields uniform values in [0, 1). *rand.Rand satisfies it.
type RandomSource interface {
	Float64() float64
}

// NewRandomSource returns a PCG-backed source; equal seeds give equal clouds.
func NewRandomSource(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

// BranchOf returns the arm a particle index belongs to.
func BranchOf(i, branches int) int { return i % branches }

// Generate builds a spiral point cloud. Particles are dealt to arms round
// robin; each draws its radius first, then a magnitude and a sign per axis.
func Generate(p Parameters, rng RandomSource) (*PointCloud, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	if rng == nil {
		return nil, &ParameterError{Field: "rng", Value: nil, Reason: "random source is required"}
	}

	cloud := &PointCloud{
		Positions: make([]Vec3, p.Count),
		Colors:    make([]Color, p.Count),
	}
	for i := 0; i < p.Count; i++ {
		rad := rng.Float64() * p.Radius
		spinAngle := rad * p.Spin
		branchAngle := float64(BranchOf(i, p.Branches)) / float64(p.Branches) * 2 * math.Pi

		jx := jitter(rng, p.RandomnessPower)
		jy := jitter(rng, p.RandomnessPower)
		jz := jitter(rng, p.RandomnessPower)

		angle := branchAngle + spinAngle
		cloud.Positions[i] = Vec3{
			X: float32(math.Cos(angle)*rad + jx),
			Y: float32(jy),
			Z: float32(math.Sin(angle)*rad + jz),
		}
		cloud.Colors[i] = mix(p.ColorInside, p.ColorOutside, rad/p.Radius)
	}
	return cloud, nil
}

func jitter(rng RandomSource, power float64) float64 {
	mag := math.Pow(rng.Float64(), power)
	if rng.Float64() < 0.5 {
		return -mag
	}
	return mag
}

// mix is exact at t=0 and t=1 and never leaves the [in, out] box.
func mix(in, out colorful.Color, t float64) Color {
	return Color{
		R: float32(lerp(in.R, out.R, t)),
		G: float32(lerp(in.G, out.G, t)),
		B: float32(lerp(in.B, out.B, t)),
	}
}

func lerp(a, b, t float64) float64 {
	v := a*(1-t) + b*t
	lo, hi := math.Min(a, b), math.Max(a, b)
	return math.Max(lo, math.Min(hi, v))
}
