package scene

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iburimskiy/galaxy-generator/internal/galaxy"
)

func TestSceneAddRemove(t *testing.T) {
	s := New()
	a := NewPoints(&galaxy.PointCloud{}, NewPointsMaterial(0.01))
	b := NewPoints(&galaxy.PointCloud{}, NewPointsMaterial(0.02))

	s.Add(a)
	s.Add(b)
	s.Add(nil)
	require.Equal(t, 2, s.Len())

	assert.True(t, s.Remove(a))
	assert.False(t, s.Remove(a))
	assert.Equal(t, []Object{b}, s.Objects())
	assert.False(t, a.Released(), "remove does not release")
}

func TestSceneClearReleases(t *testing.T) {
	s := New()
	p := NewPoints(&galaxy.PointCloud{Positions: make([]galaxy.Vec3, 3)}, NewPointsMaterial(0.01))
	s.Add(p)
	s.Clear()
	assert.Zero(t, s.Len())
	assert.True(t, p.Released())
	assert.Nil(t, p.Cloud)

	// idempotent
	p.Release()
	assert.True(t, p.Released())
}

func TestPointsModelRotatesAboutY(t *testing.T) {
	p := NewPoints(nil, NewPointsMaterial(0.01))
	p.Rotation = math.Pi / 2
	v := p.Model().Mul4x1(mgl64.Vec4{1, 0, 0, 1})
	assert.InDelta(t, 0, v.X(), 1e-9)
	assert.InDelta(t, 0, v.Y(), 1e-9)
	assert.InDelta(t, -1, v.Z(), 1e-9)
}

func TestNewPointsMaterial(t *testing.T) {
	m := NewPointsMaterial(0.05)
	assert.Equal(t, 0.05, m.Size)
	assert.True(t, m.SizeAttenuation)
	assert.True(t, m.DepthWrite)
	assert.True(t, m.Additive)
	assert.True(t, m.VertexColors)
}
