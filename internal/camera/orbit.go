package camera

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

const polarEpsilon = 1e-6

// Orbit keeps the camera on a sphere around Target. Input accumulates
// deltas; Update applies them, easing out when damping is enabled.
type Orbit struct {
	Target        mgl64.Vec3
	EnableDamping bool
	DampingFactor float64
	RotateSpeed   float64
	ZoomSpeed     float64
	MinDistance   float64
	MaxDistance   float64

	radius, theta, phi float64
	dTheta, dPhi       float64
	scale              float64
}

// NewOrbit starts the orbit at position, looking at target.
func NewOrbit(position, target mgl64.Vec3) *Orbit {
	o := &Orbit{
		Target:        target,
		DampingFactor: 0.05,
		RotateSpeed:   1,
		ZoomSpeed:     1,
		MinDistance:   0,
		MaxDistance:   math.Inf(1),
		scale:         1,
	}
	off := position.Sub(target)
	o.radius = off.Len()
	if o.radius > 0 {
		o.theta = math.Atan2(off.X(), off.Z())
		o.phi = math.Acos(mgl64.Clamp(off.Y()/o.radius, -1, 1))
	}
	return o
}

// Rotate queues a drag of dx, dy pixels on a viewport height pixels tall.
// A drag across the full height turns the camera once around.
func (o *Orbit) Rotate(dx, dy, height float64) {
	if height <= 0 {
		return
	}
	o.dTheta -= 2 * math.Pi * dx / height * o.RotateSpeed
	o.dPhi -= 2 * math.Pi * dy / height * o.RotateSpeed
}

// Zoom queues wheel steps; positive steps move closer.
func (o *Orbit) Zoom(steps float64) {
	o.Dolly(math.Pow(0.95, steps*o.ZoomSpeed))
}

// Dolly scales the distance to the target by factor on the next Update.
func (o *Orbit) Dolly(factor float64) {
	if factor <= 0 || math.IsNaN(factor) || math.IsInf(factor, 0) {
		return
	}
	o.scale *= factor
}

// Update applies queued input. Call once per frame.
func (o *Orbit) Update() {
	if o.EnableDamping {
		o.theta += o.dTheta * o.DampingFactor
		o.phi += o.dPhi * o.DampingFactor
	} else {
		o.theta += o.dTheta
		o.phi += o.dPhi
	}
	o.phi = mgl64.Clamp(o.phi, polarEpsilon, math.Pi-polarEpsilon)
	o.radius = mgl64.Clamp(o.radius*o.scale, o.MinDistance, o.MaxDistance)
	o.scale = 1

	if o.EnableDamping {
		o.dTheta *= 1 - o.DampingFactor
		o.dPhi *= 1 - o.DampingFactor
	} else {
		o.dTheta, o.dPhi = 0, 0
	}
}

// Position returns the camera position for the current angles.
func (o *Orbit) Position() mgl64.Vec3 {
	s := math.Sin(o.phi)
	return o.Target.Add(mgl64.Vec3{
		o.radius * s * math.Sin(o.theta),
		o.radius * math.Cos(o.phi),
		o.radius * s * math.Cos(o.theta),
	})
}

func (o *Orbit) Distance() float64 { return o.radius }

// Apply moves c onto the orbit.
func (o *Orbit) Apply(c *Camera) {
	c.Position = o.Position()
	c.Target = o.Target
}
