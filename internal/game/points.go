package game

import (
	"image"
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/iburimskiy/galaxy-generator/internal/camera"
	"github.com/iburimskiy/galaxy-generator/internal/scene"
)

// uint16 indices address at most 65536 vertices, four per quad.
const maxQuadsPerBatch = 65536/4 - 1

var whiteSubImage *ebiten.Image

// pointSource is the 1x1 white center of a 3x3 image, so sampling never
// bleeds past the edge.
func pointSource() *ebiten.Image {
	if whiteSubImage == nil {
		img := ebiten.NewImage(3, 3)
		img.Fill(color.White)
		whiteSubImage = img.SubImage(image.Rect(1, 1, 2, 2)).(*ebiten.Image)
	}
	return whiteSubImage
}

// pointRenderer draws point clouds as screen-aligned squares. Buffers are
// kept between frames.
type pointRenderer struct {
	vertices []ebiten.Vertex
	indices  []uint16
	quads    int
}

func (r *pointRenderer) reset() {
	r.vertices = r.vertices[:0]
	r.indices = r.indices[:0]
	r.quads = 0
}

func (r *pointRenderer) appendQuad(x, y, half float64, c [3]float32) {
	base := uint16(r.quads * 4)
	x0, y0 := float32(x-half), float32(y-half)
	x1, y1 := float32(x+half), float32(y+half)
	for _, v := range [4][2]float32{{x0, y0}, {x1, y0}, {x0, y1}, {x1, y1}} {
		r.vertices = append(r.vertices, ebiten.Vertex{
			DstX: v[0], DstY: v[1],
			SrcX: 1, SrcY: 1,
			ColorR: c[0], ColorG: c[1], ColorB: c[2], ColorA: 1,
		})
	}
	r.indices = append(r.indices, base, base+1, base+2, base+1, base+3, base+2)
	r.quads++
}

// build projects pts and fills the buffers, calling flush whenever a batch
// is full and once at the end. It returns the number of visible points.
func (r *pointRenderer) build(pts *scene.Points, cam *camera.Camera, vp camera.Viewport, pixelRatio float64, flush func()) int {
	r.reset()
	if pts == nil || pts.Cloud == nil {
		return 0
	}
	proj := cam.Projector(pts.Model(), vp)
	scale := proj.PointScale()
	m := pts.Material
	visible := 0

	for i, p := range pts.Cloud.Positions {
		sx, sy, depth, ok := proj.Project(float64(p.X), float64(p.Y), float64(p.Z))
		if !ok {
			continue
		}
		size := m.Size * pixelRatio
		if m.SizeAttenuation {
			size = m.Size * scale / depth
		}
		half := math.Max(size, 1) / 2
		if sx+half < 0 || sy+half < 0 || sx-half > vp.Width || sy-half > vp.Height {
			continue
		}
		c := [3]float32{1, 1, 1}
		if m.VertexColors {
			col := pts.Cloud.Colors[i]
			c = [3]float32{col.R, col.G, col.B}
		}
		r.appendQuad(sx, sy, half, c)
		visible++
		if r.quads == maxQuadsPerBatch {
			flush()
			r.reset()
		}
	}
	if r.quads > 0 {
		flush()
	}
	return visible
}

// draw renders pts onto dst and returns the number of visible points.
func (r *pointRenderer) draw(dst *ebiten.Image, pts *scene.Points, cam *camera.Camera, vp camera.Viewport, pixelRatio float64) int {
	op := &ebiten.DrawTrianglesOptions{}
	if pts != nil && pts.Material.Additive {
		op.Blend = ebiten.BlendLighter
	}
	src := pointSource()
	return r.build(pts, cam, vp, pixelRatio, func() {
		dst.DrawTriangles(r.vertices, r.indices, src, op)
	})
}
