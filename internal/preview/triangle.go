package preview

import (
	"image"
	"math"

	"bodyrig/internal/mathutil"
)

// Tri is one screen-space triangle ready for rasterization. When Tex is
// nil the per-vertex colors are interpolated (weight-visualization mode);
// otherwise UVs sample the texture.
type Tri struct {
	X, Y, Z [3]float64
	UV      [3][2]float64
	Tex     *image.NRGBA
	Color   [3][4]uint8
}

// Rasterize draws one triangle with z-buffering, flat shading, sRGB-correct
// lighting and ACES tone mapping. Hot path, zero allocation in the loop.
func (fb *FrameBuffer) Rasterize(t *Tri, lc *LightConfig) {
	x0, y0, z0 := t.X[0], t.Y[0], t.Z[0]
	x1, y1, z1 := t.X[1], t.Y[1], t.Z[1]
	x2, y2, z2 := t.X[2], t.Y[2], t.Z[2]

	// Face normal for flat shading
	e1 := mathutil.Vec3{x1 - x0, y1 - y0, z1 - z0}
	e2 := mathutil.Vec3{x2 - x0, y2 - y0, z2 - z0}
	normal := e1.Cross(e2)
	if normal.Len() < 1e-8 {
		return
	}
	shade := lc.ComputeShade(normal.Normalize())

	// Clipped bounding box
	w, h := fb.Width, fb.Height
	minX := int(math.Min(math.Min(x0, x1), x2))
	maxX := int(math.Max(math.Max(x0, x1), x2)) + 1
	minY := int(math.Min(math.Min(y0, y1), y2))
	maxY := int(math.Max(math.Max(y0, y1), y2)) + 1
	if minX < 0 {
		minX = 0
	}
	if maxX >= w {
		maxX = w - 1
	}
	if minY < 0 {
		minY = 0
	}
	if maxY >= h {
		maxY = h - 1
	}
	if minX >= maxX || minY >= maxY {
		return
	}

	// Barycentric setup
	det := (y1-y2)*(x0-x2) + (x2-x1)*(y0-y2)
	if det > -1e-8 && det < 1e-8 {
		return
	}
	invDet := 1.0 / det
	dy12 := y1 - y2
	dx21 := x2 - x1
	dy20 := y2 - y0
	dx02 := x0 - x2

	for sy := minY; sy <= maxY; sy++ {
		dsy := float64(sy) - y2
		rowOff := sy * w
		for sx := minX; sx <= maxX; sx++ {
			dsx := float64(sx) - x2
			w0 := (dy12*dsx + dx21*dsy) * invDet
			w1 := (dy20*dsx + dx02*dsy) * invDet
			w2 := 1.0 - w0 - w1
			if w0 < -0.001 || w1 < -0.001 || w2 < -0.001 {
				continue
			}

			z := w0*z0 + w1*z1 + w2*z2
			zIdx := rowOff + sx
			if z <= fb.ZBuf[zIdx] {
				continue
			}

			var cr, cg, cb, ca uint8
			if t.Tex != nil {
				u := w0*t.UV[0][0] + w1*t.UV[1][0] + w2*t.UV[2][0]
				v := w0*t.UV[0][1] + w1*t.UV[1][1] + w2*t.UV[2][1]
				cr, cg, cb, ca = sampleTexture(t.Tex, u, v)
			} else {
				cr = clamp255(w0*float64(t.Color[0][0]) + w1*float64(t.Color[1][0]) + w2*float64(t.Color[2][0]))
				cg = clamp255(w0*float64(t.Color[0][1]) + w1*float64(t.Color[1][1]) + w2*float64(t.Color[2][1]))
				cb = clamp255(w0*float64(t.Color[0][2]) + w1*float64(t.Color[1][2]) + w2*float64(t.Color[2][2]))
				ca = 255
			}
			if ca < 8 {
				continue
			}
			fb.ZBuf[zIdx] = z

			// sRGB decode → shade → tone map → encode
			sr := srgbToLinear[cr] * shade * lc.Exposure
			sg := srgbToLinear[cg] * shade * lc.Exposure
			sb := srgbToLinear[cb] * shade * lc.Exposure

			pxIdx := zIdx * 4
			fb.Color[pxIdx] = clamp255(math.Pow(acesTonemap(sr), lc.InvGamma) * 255)
			fb.Color[pxIdx+1] = clamp255(math.Pow(acesTonemap(sg), lc.InvGamma) * 255)
			fb.Color[pxIdx+2] = clamp255(math.Pow(acesTonemap(sb), lc.InvGamma) * 255)
			fb.Color[pxIdx+3] = ca
		}
	}
}
