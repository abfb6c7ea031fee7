// Package raster renders tessellated meshes and paths into CPU alpha masks.
//
// The masks are previews and references: MeshMask draws the triangles of a
// [tess.VertexBuffers], PathMask draws the flattened outline directly, and
// ScanlineMask point-samples pixel centers under any [tess.FillRule]. A
// correct tessellation covers the same pixels as the outline it came from.
//
// Usage:
//
//	buf, _ := tess.Tessellate(path, tess.WithFillRule(tess.FillRuleNonZero))
//	mask := raster.MeshMask(buf, tess.Identity(), 256, 256)
//	img := raster.Colorize(mask, color.NRGBA{R: 255, A: 255})
package raster

import (
	"image"
	"image/color"
	"image/draw"
	"math"

	"golang.org/x/image/math/f32"
	"golang.org/x/image/vector"

	"github.com/gogpu/tess"
)

// MeshMask draws the triangles of buf, mapped through m, into an
// antialiased w x h mask.
func MeshMask(buf *tess.VertexBuffers, m tess.Matrix, w, h int) *image.Alpha {
	mask := image.NewAlpha(image.Rect(0, 0, w, h))
	if buf == nil || buf.TriangleCount() == 0 {
		return mask
	}

	aff := m.Aff3()
	z := vector.NewRasterizer(w, h)
	for i := range buf.TriangleCount() {
		tri := buf.Triangle(i)
		a := apply(aff, tri[0].Position)
		b := apply(aff, tri[1].Position)
		c := apply(aff, tri[2].Position)
		z.MoveTo(a[0], a[1])
		z.LineTo(b[0], b[1])
		z.LineTo(c[0], c[1])
		z.ClosePath()
	}
	z.Draw(mask, mask.Bounds(), image.Opaque, image.Point{})
	return mask
}

// PathMask draws path, flattened within tolerance and mapped through m,
// into an antialiased w x h mask under the non-zero rule.
func PathMask(path *tess.Path, m tess.Matrix, w, h int, tolerance float64) *image.Alpha {
	mask := image.NewAlpha(image.Rect(0, 0, w, h))
	if path.IsEmpty() {
		return mask
	}

	z := vector.NewRasterizer(w, h)
	for _, contour := range contours(path.Transform(m), tolerance) {
		z.MoveTo(float32(contour[0].X), float32(contour[0].Y))
		for _, p := range contour[1:] {
			z.LineTo(float32(p.X), float32(p.Y))
		}
		z.ClosePath()
	}
	z.Draw(mask, mask.Bounds(), image.Opaque, image.Point{})
	return mask
}

// ScanlineMask samples the center of every pixel of a w x h mask and sets
// it to opaque when the winding number of path, mapped through m, is
// inside under rule. The result is aliased.
func ScanlineMask(path *tess.Path, rule tess.FillRule, m tess.Matrix, w, h int, tolerance float64) *image.Alpha {
	mask := image.NewAlpha(image.Rect(0, 0, w, h))

	el := NewEdgeList()
	for _, contour := range contours(path.Transform(m), tolerance) {
		el.AddContour(contour)
	}
	el.SortByYMin()
	edges := el.Edges()

	aet := NewSimpleAET()
	next := 0
	for py := range h {
		y := float64(py) + 0.5
		for next < len(edges) && edges[next].YMin <= y {
			aet.InsertEdge(&edges[next], y)
			next++
		}
		aet.RemoveExpired(y)
		aet.UpdateX(y)

		active := aet.Active()
		winding := 0
		for i := 0; i+1 < len(active); i++ {
			winding += active[i].Edge.Winding
			if !rule.Fills(winding) {
				continue
			}
			x0 := max(pixelStart(active[i].X), 0)
			x1 := min(pixelStart(active[i+1].X), w)
			row := mask.Pix[py*mask.Stride:]
			for px := x0; px < x1; px++ {
				row[px] = 0xff
			}
		}
	}
	return mask
}

// Coverage returns the covered area of mask in pixels.
func Coverage(mask *image.Alpha) float64 {
	var sum int
	b := mask.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for _, a := range mask.Pix[mask.PixOffset(b.Min.X, y):][:b.Dx()] {
			sum += int(a)
		}
	}
	return float64(sum) / 0xff
}

// Diff returns the number of pixels whose alpha differs by more than
// threshold between a and b. The masks must have the same bounds.
func Diff(a, b *image.Alpha, threshold uint8) int {
	n := 0
	r := a.Bounds().Intersect(b.Bounds())
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			va, vb := a.AlphaAt(x, y).A, b.AlphaAt(x, y).A
			d := int(va) - int(vb)
			if d < 0 {
				d = -d
			}
			if d > int(threshold) {
				n++
			}
		}
	}
	return n
}

// Colorize paints c through mask onto a transparent RGBA image.
func Colorize(mask *image.Alpha, c color.Color) *image.RGBA {
	img := image.NewRGBA(mask.Bounds())
	draw.DrawMask(img, img.Bounds(), image.NewUniform(c), image.Point{}, mask, mask.Bounds().Min, draw.Over)
	return img
}

// pixelStart returns the first pixel whose center lies at or right of x.
func pixelStart(x float64) int {
	return int(math.Ceil(x - 0.5))
}

func apply(m f32.Aff3, p f32.Vec2) f32.Vec2 {
	return f32.Vec2{
		m[0]*p[0] + m[1]*p[1] + m[2],
		m[3]*p[0] + m[4]*p[1] + m[5],
	}
}

// contours flattens every sub-path into a polygon without a repeated
// closing point. Contours with fewer than two points are dropped.
func contours(path *tess.Path, tolerance float64) [][]tess.Point {
	var out [][]tess.Point
	for sp := range path.SubPaths() {
		var pts []tess.Point
		for p := range sp.Flatten(tolerance) {
			if n := len(pts); n > 0 && pts[n-1] == p {
				continue
			}
			pts = append(pts, p)
		}
		if n := len(pts); n > 1 && pts[n-1] == pts[0] {
			pts = pts[:n-1]
		}
		if len(pts) >= 2 {
			out = append(out, pts)
		}
	}
	return out
}
