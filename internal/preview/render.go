// Package preview renders QA stills of rigged meshes with a software
// rasterizer: orthographic front/turntable view, flat shading, optional
// skeleton overlay. Two color modes: the body texture, or per-vertex colors
// showing which joint cluster dominates each vertex.
package preview

import (
	"image"
	"math"

	"bodyrig/internal/mathutil"
	"bodyrig/internal/rig"
	"bodyrig/internal/scene"
)

// Mode selects how mesh surfaces are colored.
type Mode int

const (
	ModeTextured Mode = iota
	ModeWeights
)

// Options control one preview render.
type Options struct {
	Size        int
	Supersample int
	AngleDeg    float64 // turntable rotation around the vertical axis
	Mode        Mode
	Texture     *image.NRGBA // ModeTextured; nil falls back to flat grey
	Skeleton    bool         // overlay bone segments
}

const defaultMargin = 16

// RenderRig renders a rigged scene to an NRGBA image at
// Size × Supersample resolution; callers downsample afterwards.
func RenderRig(res *rig.Result, opts Options) *image.NRGBA {
	if opts.Supersample < 1 {
		opts.Supersample = 1
	}
	renderSize := opts.Size * opts.Supersample

	mesh, ok := res.MeshNode.Attribute.(*scene.Mesh)
	if !ok || len(mesh.ControlPoints) == 0 {
		return image.NewNRGBA(image.Rect(0, 0, renderSize, renderSize))
	}

	// View-rotate all vertices and fit their bounding box to the frame.
	R := mathutil.RotY(mathutil.Deg2Rad(opts.AngleDeg))
	n := len(mesh.ControlPoints)
	tv := make([]mathutil.Vec3, n)
	vmin := mathutil.Vec3{math.Inf(1), math.Inf(1), math.Inf(1)}
	vmax := mathutil.Vec3{math.Inf(-1), math.Inf(-1), math.Inf(-1)}
	for i, v := range mesh.ControlPoints {
		t := R.MulVec3(v)
		tv[i] = t
		vmin = vmin.Min(t)
		vmax = vmax.Max(t)
	}
	center := vmin.Add(vmax).Scale(0.5)
	span := math.Max(vmax[0]-vmin[0], vmax[1]-vmin[1])
	if span < 0.001 {
		span = 0.001
	}
	margin := defaultMargin * opts.Supersample
	scale := float64(renderSize-2*margin) / span
	half := float64(renderSize) / 2

	px := make([]float64, n)
	py := make([]float64, n)
	pz := make([]float64, n)
	for i, t := range tv {
		px[i] = (t[0]-center[0])*scale + half
		py[i] = -(t[1]-center[1])*scale + half
		pz[i] = t[2]
	}

	var colors [][4]uint8
	if opts.Mode == ModeWeights {
		colors = vertexColors(mesh, n)
	}

	fb := NewFrameBuffer(renderSize, renderSize)
	lc := DefaultLightConfig()

	for fi := range mesh.Faces {
		rasterQuadTri(fb, &lc, mesh, opts, colors, px, py, pz, fi, 0, 1, 2)
		rasterQuadTri(fb, &lc, mesh, opts, colors, px, py, pz, fi, 0, 2, 3)
	}

	img := image.NewNRGBA(image.Rect(0, 0, renderSize, renderSize))
	copy(img.Pix, fb.Color)

	if opts.Skeleton {
		drawSkeleton(img, res, R, center, scale, half)
	}
	return img
}

// rasterQuadTri builds and rasterizes one corner triangle (a, b, c) of a
// quad face.
func rasterQuadTri(fb *FrameBuffer, lc *LightConfig, mesh *scene.Mesh, opts Options, colors [][4]uint8, px, py, pz []float64, fi, a, b, c int) {
	face := mesh.Faces[fi]
	vi := [3]int{face[a], face[b], face[c]}
	for _, i := range vi {
		if i < 0 || i >= len(px) {
			return
		}
	}

	t := Tri{
		X: [3]float64{px[vi[0]], px[vi[1]], px[vi[2]]},
		Y: [3]float64{py[vi[0]], py[vi[1]], py[vi[2]]},
		Z: [3]float64{pz[vi[0]], pz[vi[1]], pz[vi[2]]},
	}

	switch {
	case opts.Mode == ModeWeights && colors != nil:
		t.Color = [3][4]uint8{colors[vi[0]], colors[vi[1]], colors[vi[2]]}
	case opts.Texture != nil:
		if uvi, ok := faceUV(mesh, fi); ok {
			t.Tex = opts.Texture
			t.UV = [3][2]float64{
				mesh.UVValues[uvi[a]],
				mesh.UVValues[uvi[b]],
				mesh.UVValues[uvi[c]],
			}
		} else {
			t.Color = flatGreyTri()
		}
	default:
		t.Color = flatGreyTri()
	}

	fb.Rasterize(&t, lc)
}

func flatGreyTri() [3][4]uint8 {
	grey := [4]uint8{168, 168, 176, 255}
	return [3][4]uint8{grey, grey, grey}
}

// faceUV returns the UV value indices for a face, guarding ragged layers.
func faceUV(mesh *scene.Mesh, fi int) ([4]int, bool) {
	if fi >= len(mesh.UVIndices) {
		return [4]int{}, false
	}
	uvi := mesh.UVIndices[fi]
	for _, i := range uvi {
		if i < 0 || i >= len(mesh.UVValues) {
			return [4]int{}, false
		}
	}
	return uvi, true
}

// vertexColors colors each control point by its dominant cluster, using a
// stable palette keyed on cluster order (clusters are bound in sorted joint
// name order, so colors do not shift between meshes).
func vertexColors(mesh *scene.Mesh, n int) [][4]uint8 {
	colors := make([][4]uint8, n)
	for i := range colors {
		colors[i] = [4]uint8{96, 96, 104, 255} // unweighted vertices stay grey
	}
	best := make([]float64, n)

	for _, skin := range mesh.Deformers {
		for ci, cluster := range skin.Clusters {
			col := paletteColor(ci)
			for k, vi := range cluster.Indices {
				if vi < 0 || vi >= n {
					continue
				}
				w := cluster.Weights[k]
				if w > best[vi] {
					best[vi] = w
					colors[vi] = col
				}
			}
		}
	}
	return colors
}

// paletteColor spaces hues by the golden angle so adjacent clusters get
// clearly distinct colors.
func paletteColor(i int) [4]uint8 {
	h := math.Mod(float64(i)*137.508, 360) / 60
	c := 0.85
	x := c * (1 - math.Abs(math.Mod(h, 2)-1))
	var r, g, b float64
	switch int(h) {
	case 0:
		r, g, b = c, x, 0
	case 1:
		r, g, b = x, c, 0
	case 2:
		r, g, b = 0, c, x
	case 3:
		r, g, b = 0, x, c
	case 4:
		r, g, b = x, 0, c
	default:
		r, g, b = c, 0, x
	}
	m := 0.12
	return [4]uint8{
		clamp255((r + m) * 255),
		clamp255((g + m) * 255),
		clamp255((b + m) * 255),
		255,
	}
}

var boneColor = [4]uint8{255, 176, 32, 255}

// drawSkeleton overlays bone segments: a line from each bone's parent to
// the bone, plus a small marker at every joint.
func drawSkeleton(img *image.NRGBA, res *rig.Result, R mathutil.Mat3, center mathutil.Vec3, scale, half float64) {
	project := func(world mathutil.Vec3) (float64, float64) {
		t := R.MulVec3(world)
		return (t[0]-center[0])*scale + half, -(t[1]-center[1])*scale + half
	}

	for _, node := range res.Skeleton {
		x1, y1 := project(node.GlobalPosition())
		if node.Parent != nil {
			if _, isBone := node.Parent.Attribute.(*scene.Skeleton); isBone {
				x0, y0 := project(node.Parent.GlobalPosition())
				drawLine(img, x0, y0, x1, y1, boneColor)
			}
		}
		drawMarker(img, int(x1), int(y1), boneColor)
	}
}

// drawLine draws a 1px line with integer DDA.
func drawLine(img *image.NRGBA, x0, y0, x1, y1 float64, col [4]uint8) {
	steps := int(math.Max(math.Abs(x1-x0), math.Abs(y1-y0))) + 1
	for i := 0; i <= steps; i++ {
		t := float64(i) / float64(steps)
		setPixel(img, int(x0+(x1-x0)*t), int(y0+(y1-y0)*t), col)
	}
}

func drawMarker(img *image.NRGBA, x, y int, col [4]uint8) {
	for dy := -1; dy <= 1; dy++ {
		for dx := -1; dx <= 1; dx++ {
			setPixel(img, x+dx, y+dy, col)
		}
	}
}

func setPixel(img *image.NRGBA, x, y int, col [4]uint8) {
	if !(image.Point{x, y}).In(img.Rect) {
		return
	}
	i := img.PixOffset(x, y)
	img.Pix[i] = col[0]
	img.Pix[i+1] = col[1]
	img.Pix[i+2] = col[2]
	img.Pix[i+3] = col[3]
}
