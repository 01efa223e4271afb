package panel

import (
	"image"
	"testing"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iburimskiy/galaxy-generator/internal/galaxy"
)

func rowFor(t *testing.T, p *Panel, name string) Row {
	t.Helper()
	for _, r := range p.Rows() {
		if r.Field.Name == name {
			return r
		}
	}
	t.Fatalf("no row %q", name)
	return Row{}
}

func center(r image.Rectangle) (int, int) {
	c := r.Min.Add(r.Size().Div(2))
	return c.X, c.Y
}

func TestPanelStartsCollapsed(t *testing.T) {
	p := New(galaxy.Default())
	assert.True(t, p.Collapsed)
	assert.Nil(t, p.Rows())
	assert.Equal(t, p.Header(), p.Bounds())

	x, y := center(p.Header())
	hit := p.Press(x, y)
	assert.Equal(t, HitHeader, hit.Kind)
	assert.False(t, p.Collapsed)
	assert.Len(t, p.Rows(), len(galaxy.Fields))
	assert.Equal(t, p.RowHeight*(len(galaxy.Fields)+1), p.Bounds().Dy())
}

func TestScaleSizesGeometry(t *testing.T) {
	p := New(galaxy.Default())
	p.Origin = image.Pt(100, 10)
	p.Toggle()
	one := rowFor(t, p, galaxy.FieldSpin)

	p.Scale = 2
	two := rowFor(t, p, galaxy.FieldSpin)
	assert.Equal(t, 2*DefaultWidth, p.ScreenWidth())
	assert.Equal(t, 2*DefaultRowHeight*(len(galaxy.Fields)+1), p.Bounds().Dy())
	assert.Equal(t, 2*one.Control.Dx(), two.Control.Dx())
	assert.Equal(t, 2*one.Bounds.Dy(), two.Bounds.Dy())

	// the slider midpoint still reads zero at any scale
	x, y := center(two.Control)
	require.Equal(t, HitSlider, p.Press(x, y).Kind)
	assert.InDelta(t, 0, p.Draft().Spin, 0.01)
}

func TestSliderCommitsOnlyOnRelease(t *testing.T) {
	start := galaxy.Default()
	p := New(start)
	p.Origin = image.Pt(10, 10)
	p.Toggle()

	r := rowFor(t, p, galaxy.FieldBranches)
	_, y := center(r.Bounds)

	hit := p.Press(r.Control.Min.X, y)
	require.Equal(t, HitSlider, hit.Kind)
	assert.Equal(t, galaxy.FieldBranches, hit.Field.Name)
	assert.True(t, p.Dragging())
	assert.Equal(t, 2, p.Draft().Branches)

	p.Drag(r.Control.Max.X + 50)
	assert.Equal(t, 20, p.Draft().Branches, "clamped to max")

	committed, ok := p.Release()
	require.True(t, ok)
	assert.Equal(t, 20, committed.Branches)
	assert.Equal(t, start.Radius, committed.Radius, "other fields untouched")
	assert.False(t, p.Dragging())

	_, ok = p.Release()
	assert.False(t, ok, "second release commits nothing")
}

func TestSliderSnapsToStep(t *testing.T) {
	f, ok := galaxy.FieldByName(galaxy.FieldSize)
	require.True(t, ok)
	assert.InDelta(t, 0.012, Snap(f, 0.01234), 1e-12)
	assert.InDelta(t, 0.001, Snap(f, -1), 1e-12)
	assert.InDelta(t, 0.1, Snap(f, 3), 1e-12)

	count, _ := galaxy.FieldByName(galaxy.FieldCount)
	assert.Equal(t, 1235.0, Snap(count, 1234.6))
}

func TestSliderMidpoint(t *testing.T) {
	p := New(galaxy.Default())
	p.Toggle()
	r := rowFor(t, p, galaxy.FieldSpin)
	x, y := center(r.Control)
	p.Press(x, y)
	got, ok := p.Release()
	require.True(t, ok)
	// the track has an even pixel width, so the center is exactly halfway
	assert.InDelta(t, 0, got.Spin, 1e-9)
	assert.InDelta(t, 0.5, p.Fraction(r.Field), 1e-9)
}

func TestColorSwatchRequestsPicker(t *testing.T) {
	p := New(galaxy.Default())
	p.Toggle()
	r := rowFor(t, p, galaxy.FieldColorOutside)
	x, y := center(r.Control)

	hit := p.Press(x, y)
	assert.Equal(t, HitColor, hit.Kind)
	assert.False(t, p.Dragging())

	green := colorful.Color{G: 1}
	got := p.CommitColor(galaxy.FieldColorOutside, colorful.Color{R: -0.5, G: 1.2})
	assert.Equal(t, green, got.ColorOutside)
	assert.Equal(t, galaxy.Default().ColorInside, got.ColorInside)
}

func TestPressOutsideMissesAndCollapsedHidesRows(t *testing.T) {
	p := New(galaxy.Default())
	assert.Equal(t, HitNone, p.Press(-5, -5).Kind)

	// rows are not hit while collapsed
	assert.Equal(t, HitNone, p.Press(p.Width/2, p.RowHeight*3).Kind)
	assert.False(t, p.Contains(p.Width/2, p.RowHeight*3))
}

func TestSyncAndCancel(t *testing.T) {
	p := New(galaxy.Default())
	p.Toggle()
	committed := galaxy.Default()
	committed.Count = 5000

	r := rowFor(t, p, galaxy.FieldCount)
	_, y := center(r.Bounds)
	p.Press(r.Control.Max.X, y)
	p.Sync(committed)
	assert.Equal(t, 1_000_000, p.Draft().Count, "sync ignored mid-drag")

	p.Cancel(committed)
	assert.False(t, p.Dragging())
	assert.Equal(t, 5000, p.Draft().Count)

	committed.Count = 6000
	p.Sync(committed)
	assert.Equal(t, 6000, p.Draft().Count)
}
