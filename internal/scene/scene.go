package scene

import (
	"github.com/go-gl/mathgl/mgl64"

	"github.com/iburimskiy/galaxy-generator/internal/galaxy"
)

// Object is anything the scene can hold. Release frees its buffers.
type Object interface {
	Release()
}

// Scene is a flat list of objects drawn in insertion order.
type Scene struct {
	objects []Object
}

func New() *Scene { return &Scene{} }

func (s *Scene) Add(o Object) {
	if o == nil {
		return
	}
	s.objects = append(s.objects, o)
}

// Remove detaches o without releasing it. It reports whether o was attached.
func (s *Scene) Remove(o Object) bool {
	for i, v := range s.objects {
		if v == o {
			s.objects = append(s.objects[:i], s.objects[i+1:]...)
			return true
		}
	}
	return false
}

func (s *Scene) Len() int { return len(s.objects) }

func (s *Scene) Objects() []Object { return s.objects }

// Clear releases and detaches everything.
func (s *Scene) Clear() {
	for _, o := range s.objects {
		o.Release()
	}
	s.objects = nil
}

// PointsMaterial mirrors the knobs a point sprite renderer needs.
type PointsMaterial struct {
	Size            float64
	SizeAttenuation bool
	// DepthWrite is carried for GPU backends. The ebiten quad renderer keeps
	// no depth buffer; with additive blending draw order does not matter.
	DepthWrite      bool
	Additive        bool
	VertexColors    bool
}

// NewPointsMaterial returns the galaxy material: attenuated, additive,
// colored per vertex.
func NewPointsMaterial(size float64) PointsMaterial {
	return PointsMaterial{
		Size:            size,
		SizeAttenuation: true,
		DepthWrite:      true,
		Additive:        true,
		VertexColors:    true,
	}
}

// Points renders a point cloud with a rotation about Y.
type Points struct {
	Cloud    *galaxy.PointCloud
	Material PointsMaterial
	Rotation float64

	released bool
}

func NewPoints(cloud *galaxy.PointCloud, m PointsMaterial) *Points {
	return &Points{Cloud: cloud, Material: m}
}

// Model returns the object-to-world transform.
func (p *Points) Model() mgl64.Mat4 {
	return mgl64.HomogRotate3DY(p.Rotation)
}

func (p *Points) Release() {
	p.Cloud = nil
	p.released = true
}

func (p *Points) Released() bool { return p.released }
