// Package gpu describes tessellated meshes to a WebGPU pipeline.
//
// It provides the vertex buffer layout and primitive state matching
// [tess.VertexBuffers], chooses the narrowest index format, packs vertex,
// index and uniform data into little-endian byte slices ready for upload,
// and ships a WGSL fill shader compiled to SPIR-V with naga.
//
// The package holds no GPU device; callers create buffers and pipelines
// with their own wgpu or HAL device.
//
// Usage:
//
//	buf, _ := tess.Tessellate(path)
//	format := gpu.IndexFormat(buf)
//	vertices := gpu.VertexBytes(buf)
//	indices, _ := gpu.IndexBytes(buf, format)
//	uniforms := gpu.UniformBytes(gpu.ClipTransform(800, 600), [4]float32{1, 0, 0, 1})
package gpu

import (
	"encoding/binary"
	"errors"
	"fmt"
	"math"

	"github.com/gogpu/gputypes"

	"github.com/gogpu/tess"
)

// VertexStride is the size of one packed vertex in bytes (two float32).
const VertexStride = 8

// UniformSize is the size of the fill shader uniform block in bytes.
const UniformSize = 48

// MaxUint16Vertices is the largest vertex count addressable with 16-bit
// indices.
const MaxUint16Vertices = math.MaxUint16 + 1

// ErrIndexOverflow is returned when an index does not fit the requested
// index format.
var ErrIndexOverflow = errors.New("gpu: index does not fit index format")

// ErrUnsupportedIndexFormat is returned for index formats other than
// Uint16 and Uint32.
var ErrUnsupportedIndexFormat = errors.New("gpu: unsupported index format")

// VertexLayout returns the vertex buffer layout for packed mesh vertices:
// one Float32x2 position at shader location 0.
func VertexLayout() []gputypes.VertexBufferLayout {
	return []gputypes.VertexBufferLayout{
		{
			ArrayStride: VertexStride,
			StepMode:    gputypes.VertexStepModeVertex,
			Attributes: []gputypes.VertexAttribute{
				{
					Format:         gputypes.VertexFormatFloat32x2,
					Offset:         0,
					ShaderLocation: 0,
				},
			},
		},
	}
}

// PrimitiveState returns the primitive state for drawing a tessellated
// triangle list. Culling is off so that meshes drawn under a mirroring
// transform stay visible.
func PrimitiveState() gputypes.PrimitiveState {
	return gputypes.PrimitiveState{
		Topology:  gputypes.PrimitiveTopologyTriangleList,
		FrontFace: gputypes.FrontFaceCCW,
		CullMode:  gputypes.CullModeNone,
	}
}

// IndexFormat returns Uint16 when every vertex of buf can be addressed with
// 16 bits and Uint32 otherwise.
func IndexFormat(buf *tess.VertexBuffers) gputypes.IndexFormat {
	if buf == nil || len(buf.Vertices) <= MaxUint16Vertices {
		return gputypes.IndexFormatUint16
	}
	return gputypes.IndexFormatUint32
}

// VertexBytes packs the vertex positions as little-endian float32 pairs.
func VertexBytes(buf *tess.VertexBuffers) []byte {
	if buf == nil {
		return []byte{}
	}
	out := make([]byte, 0, len(buf.Vertices)*VertexStride)
	for _, v := range buf.Vertices {
		out = binary.LittleEndian.AppendUint32(out, math.Float32bits(v.Position[0]))
		out = binary.LittleEndian.AppendUint32(out, math.Float32bits(v.Position[1]))
	}
	return out
}

// IndexBytes packs the index buffer in the given format. The result is
// padded with zero bytes to a multiple of 4, as buffer writes require.
func IndexBytes(buf *tess.VertexBuffers, format gputypes.IndexFormat) ([]byte, error) {
	if buf == nil {
		return []byte{}, nil
	}
	switch format {
	case gputypes.IndexFormatUint16:
		out := make([]byte, 0, (len(buf.Indices)*2+3)&^3)
		for i, idx := range buf.Indices {
			if idx > math.MaxUint16 {
				return nil, fmt.Errorf("%w: index %d is %d", ErrIndexOverflow, i, idx)
			}
			out = binary.LittleEndian.AppendUint16(out, uint16(idx))
		}
		if len(out)%4 != 0 {
			out = append(out, 0, 0)
		}
		return out, nil
	case gputypes.IndexFormatUint32:
		out := make([]byte, 0, len(buf.Indices)*4)
		for _, idx := range buf.Indices {
			out = binary.LittleEndian.AppendUint32(out, idx)
		}
		return out, nil
	default:
		return nil, fmt.Errorf("%w: %v", ErrUnsupportedIndexFormat, format)
	}
}

// ClipTransform maps a width x height pixel space with y pointing down to
// clip space, where y points up and both axes span [-1, 1].
func ClipTransform(width, height float64) tess.Matrix {
	return tess.Matrix{
		A: 2 / width, C: -1,
		E: -2 / height, F: 1,
	}
}

// UniformBytes packs the fill shader uniforms: the transform m as two vec4
// rows followed by the straight-alpha color.
func UniformBytes(m tess.Matrix, color [4]float32) []byte {
	words := [UniformSize / 4]float32{
		float32(m.A), float32(m.B), float32(m.C), 0,
		float32(m.D), float32(m.E), float32(m.F), 0,
		color[0], color[1], color[2], color[3],
	}
	out := make([]byte, 0, UniformSize)
	for _, w := range words {
		out = binary.LittleEndian.AppendUint32(out, math.Float32bits(w))
	}
	return out
}
