package camera

import (
	"github.com/go-gl/mathgl/mgl64"
)

// Camera is a perspective camera looking at Target.
type Camera struct {
	FovY     float64 // degrees
	Aspect   float64
	Near     float64
	Far      float64
	Position mgl64.Vec3
	Target   mgl64.Vec3
	Up       mgl64.Vec3
}

func New(fovY, aspect, near, far float64, position mgl64.Vec3) *Camera {
	return &Camera{
		FovY:     fovY,
		Aspect:   aspect,
		Near:     near,
		Far:      far,
		Position: position,
		Up:       mgl64.Vec3{0, 1, 0},
	}
}

func (c *Camera) View() mgl64.Mat4 {
	return mgl64.LookAtV(c.Position, c.Target, c.Up)
}

func (c *Camera) Projection() mgl64.Mat4 {
	return mgl64.Perspective(mgl64.DegToRad(c.FovY), c.Aspect, c.Near, c.Far)
}

// Viewport is the drawing buffer size in device pixels.
type Viewport struct {
	Width, Height float64
}

// Projector maps object space to screen pixels for one model transform.
// Build one per object per frame.
type Projector struct {
	modelView  mgl64.Mat4
	projection mgl64.Mat4
	near, far  float64
	vp         Viewport
}

func (c *Camera) Projector(model mgl64.Mat4, vp Viewport) Projector {
	return Projector{
		modelView:  c.View().Mul4(model),
		projection: c.Projection(),
		near:       c.Near,
		far:        c.Far,
		vp:         vp,
	}
}

// Project returns screen coordinates (origin top-left) and the distance in
// front of the camera. ok is false outside the near/far range.
func (p Projector) Project(x, y, z float64) (sx, sy, depth float64, ok bool) {
	v := p.modelView.Mul4x1(mgl64.Vec4{x, y, z, 1})
	depth = -v.Z()
	if depth < p.near || depth > p.far {
		return 0, 0, depth, false
	}
	clip := p.projection.Mul4x1(v)
	w := clip.W()
	ndcX, ndcY := clip.X()/w, clip.Y()/w
	sx = (ndcX + 1) * 0.5 * p.vp.Width
	sy = (1 - ndcY) * 0.5 * p.vp.Height
	return sx, sy, depth, true
}

// PointScale converts a world-space point size at unit depth to pixels.
func (p Projector) PointScale() float64 {
	return p.vp.Height * 0.5
}
