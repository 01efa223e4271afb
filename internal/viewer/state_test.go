package viewer

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iburimskiy/galaxy-generator/internal/galaxy"
	"github.com/iburimskiy/galaxy-generator/internal/scene"
)

type recordingObserver struct {
	regenerated []galaxy.Parameters
	rejected    []error
}

func (o *recordingObserver) Regenerated(p galaxy.Parameters, _ time.Duration) {
	o.regenerated = append(o.regenerated, p)
}

func (o *recordingObserver) Rejected(err error) { o.rejected = append(o.rejected, err) }

type fakePresenter struct{ full bool }

func (p *fakePresenter) IsFullscreen() bool   { return p.full }
func (p *fakePresenter) SetFullscreen(b bool) { p.full = b }

func newTestState(t *testing.T) (*State, *recordingObserver) {
	t.Helper()
	obs := &recordingObserver{}
	opts := DefaultOptions()
	opts.Random = galaxy.NewRandomSource(1)
	opts.Observer = obs
	opts.Params.Count = 1000
	return New(opts), obs
}

func smallParams(count int) galaxy.Parameters {
	p := galaxy.Default()
	p.Count = count
	return p
}

func TestCommitReplacesPointCloud(t *testing.T) {
	s, obs := newTestState(t)

	require.NoError(t, s.OnParameterCommitted(smallParams(500)))
	first := s.Galaxy
	require.NotNil(t, first)
	assert.Equal(t, 1, s.Scene.Len())
	assert.Equal(t, 500, first.Cloud.Len())

	require.NoError(t, s.OnParameterCommitted(smallParams(700)))
	assert.Equal(t, 1, s.Scene.Len(), "exactly one cloud attached")
	assert.True(t, first.Released(), "previous cloud released")
	assert.Nil(t, first.Cloud)
	assert.NotSame(t, first, s.Galaxy)
	assert.Equal(t, []scene.Object{s.Galaxy}, s.Scene.Objects())
	assert.Equal(t, 700, s.Params.Count)
	assert.Len(t, obs.regenerated, 2)
}

func TestCommitUsesSizeForMaterial(t *testing.T) {
	s, _ := newTestState(t)
	p := smallParams(200)
	p.Size = 0.05
	require.NoError(t, s.OnParameterCommitted(p))
	assert.Equal(t, 0.05, s.Galaxy.Material.Size)
	assert.True(t, s.Galaxy.Material.Additive)
}

func TestRejectedCommitKeepsPreviousCloud(t *testing.T) {
	s, obs := newTestState(t)
	require.NoError(t, s.OnParameterCommitted(smallParams(300)))
	kept := s.Galaxy

	bad := smallParams(0)
	err := s.OnParameterCommitted(bad)
	require.ErrorIs(t, err, galaxy.ErrInvalidParameter)

	assert.Same(t, kept, s.Galaxy)
	assert.False(t, kept.Released())
	assert.Equal(t, 1, s.Scene.Len())
	assert.Equal(t, 300, s.Params.Count, "committed params unchanged")
	assert.Equal(t, err, s.LastErr)
	require.Len(t, obs.rejected, 1)

	require.NoError(t, s.OnParameterCommitted(smallParams(300)))
	assert.NoError(t, s.LastErr)
}

func TestFrameRotatesCurrentCloud(t *testing.T) {
	s, _ := newTestState(t)
	s.OnFrame(1) // no cloud yet
	require.NoError(t, s.OnParameterCommitted(smallParams(100)))

	for i := 0; i < 60; i++ {
		s.OnFrame(1.0 / 60)
	}
	assert.InDelta(t, 0.1, s.Galaxy.Rotation, 1e-9)

	s.OnFrame(-5)
	assert.InDelta(t, 0.1, s.Galaxy.Rotation, 1e-9, "negative deltas are ignored")
}

func TestResizeCapsPixelRatio(t *testing.T) {
	s, _ := newTestState(t)
	require.NoError(t, s.OnParameterCommitted(smallParams(100)))
	cloud := s.Galaxy

	s.OnResize(Size{Width: 800, Height: 400, DeviceScale: 3})
	assert.Equal(t, Viewport{Width: 1600, Height: 800, PixelRatio: 2}, s.Viewport)
	assert.InDelta(t, 2.0, s.Camera.Aspect, 1e-12)

	s.OnResize(Size{Width: 1000, Height: 500, DeviceScale: 1.5})
	assert.Equal(t, Viewport{Width: 1500, Height: 750, PixelRatio: 1.5}, s.Viewport)

	s.OnResize(Size{Width: 0, Height: 10, DeviceScale: 1})
	assert.Equal(t, 1500, s.Viewport.Width, "degenerate sizes ignored")
	assert.Same(t, cloud, s.Galaxy)
}

func TestFullscreenToggle(t *testing.T) {
	s, _ := newTestState(t)
	p := &fakePresenter{}
	s.SetPresenter(p)

	s.OnFullscreenToggleRequested()
	assert.True(t, p.full)
	assert.True(t, s.Fullscreen)
	s.OnFullscreenToggleRequested()
	assert.False(t, p.full)
	assert.False(t, s.Fullscreen)
}

func TestCloseReleases(t *testing.T) {
	s, _ := newTestState(t)
	require.NoError(t, s.OnParameterCommitted(smallParams(100)))
	g := s.Galaxy
	s.Close()
	assert.True(t, g.Released())
	assert.Zero(t, s.Scene.Len())
	assert.Nil(t, s.Galaxy)
}

func TestLoopDispatchesInOrder(t *testing.T) {
	s, obs := newTestState(t)
	l := NewLoop(s)

	l.Post(ParameterCommitted{Params: smallParams(100)})
	l.Post(ParameterCommitted{Params: smallParams(0)})
	l.Post(ParameterCommitted{Params: smallParams(200)})
	l.Post(ResizeEvent{Size: Size{Width: 10, Height: 10, DeviceScale: 1}})
	l.Post(FrameEvent{Delta: 1})
	l.Post(nil)
	require.Equal(t, 5, l.Pending())

	l.Drain()
	assert.Zero(t, l.Pending())
	assert.Len(t, obs.regenerated, 2)
	assert.Len(t, obs.rejected, 1)
	assert.Equal(t, 200, s.Params.Count)
	assert.Equal(t, 1, s.Scene.Len())
	assert.InDelta(t, 0.1, s.Galaxy.Rotation, 1e-9)
	assert.Equal(t, 10, s.Viewport.Width)
	assert.NoError(t, s.LastErr)
}

func TestLoopRejectionSurfacesError(t *testing.T) {
	s, _ := newTestState(t)
	l := NewLoop(s)
	l.Dispatch(ParameterCommitted{Params: smallParams(-1)})
	assert.True(t, errors.Is(s.LastErr, galaxy.ErrInvalidParameter))
	assert.Nil(t, s.Galaxy)
}
