// Package tess builds 2D vector paths and tessellates their filled interior
// into triangle meshes for GPU rendering.
//
// # Overview
//
// A [PathBuilder] accumulates sub-paths from drawing commands and produces
// an immutable [Path]. [Tessellate] turns a Path into [VertexBuffers]: a
// deduplicated vertex buffer and a triangle index buffer covering the
// filled area under a [FillRule].
//
// # Quick Start
//
//	b := tess.NewPathBuilder()
//	b.Begin(0, 0)
//	b.LineTo(10, 0)
//	b.LineTo(10, 10)
//	b.LineTo(0, 10)
//	b.End(true)
//
//	buf, err := tess.Tessellate(b.Build(), tess.WithFillRule(tess.FillRuleNonZero))
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(len(buf.Vertices), len(buf.Indices)) // 4 6
//
// # Builder States
//
// The builder is either idle or has an open sub-path. Begin opens a
// sub-path; LineTo, CubicTo and QuadTo extend it; End closes it. A command
// issued in the wrong state returns a [*SequenceError] matching
// [ErrSequence] and changes nothing. Zero-length segments and sub-paths
// without segments are dropped silently. Build ends a dangling sub-path as
// an open contour.
//
// # Tessellation
//
// Cubic segments are flattened by adaptive subdivision until the polyline
// stays within the tolerance of the curve. All contours are then filled in
// one sweep, so nested contours become holes according to the fill rule and
// self-intersecting contours are split at their crossings. Every sub-path
// is filled as if closed.
//
// # Packages
//
// The library is organized into:
//   - tess: paths, builder, flattening, fill tessellation
//   - handle: a validated handle table for callers that cannot hold Go
//     pointers
//   - gpu: vertex layout, index format and fill shader for the mesh
//   - raster: CPU coverage previews of meshes and paths
//
// # Coordinate System
//
// Coordinates are free; the library works the same for y-up and y-down
// frames. Orientation statements (winding sign, triangle order) are given
// for a y-up frame.
package tess

// Version information
const (
	// Version is the current version of the library
	Version = "0.1.0"

	// VersionMajor is the major version
	VersionMajor = 0

	// VersionMinor is the minor version
	VersionMinor = 1

	// VersionPatch is the patch version
	VersionPatch = 0
)
