package mesh

import (
	"encoding/binary"

	"github.com/Carmen-Shannon/oxy-go/engine/renderer/bind_group_provider"
	"github.com/Carmen-Shannon/oxy-go/engine/renderer/buffer"
	"github.com/Carmen-Shannon/oxy-go/engine/renderer/pipeline"
	"github.com/cogentcore/webgpu/wgpu"
)

// Pass is the tube or ribbon pass of spec.md §4.3. Both passes share the
// same GPUBackboneVertex layout and vertex buffer contents; they differ only
// in which disjoint index range they draw from, so both are instances of
// this one type constructed with a shared vertex buffer and distinct index
// buffers.
type Pass struct {
	label      string
	pipeline   pipeline.Pipeline
	bindGroup  bind_group_provider.BindGroupProvider
	vertices   *buffer.TypedBuffer[*GPUBackboneVertex]
	indices    *buffer.ByteBuffer
	indexCount int
}

// NewPass creates a mesh Pass with an empty index buffer. vertices is the
// shared backbone vertex buffer: the tube and ribbon passes of one entity
// draw from the same vertex range, so the scene constructs one
// TypedBuffer[*GPUBackboneVertex] and passes it to both Pass instances
// rather than letting each own a private copy.
func NewPass(label string, device *wgpu.Device, p pipeline.Pipeline, bg bind_group_provider.BindGroupProvider, vertices *buffer.TypedBuffer[*GPUBackboneVertex]) *Pass {
	return &Pass{
		label:     label,
		pipeline:  p,
		bindGroup: bg,
		vertices:  vertices,
		indices:   buffer.NewByteBuffer(device, label+" Indices", wgpu.BufferUsageIndex),
	}
}

// Label returns the pass's debug label.
func (p *Pass) Label() string { return p.label }

// Pipeline returns the pass's render pipeline.
func (p *Pass) Pipeline() pipeline.Pipeline { return p.pipeline }

// BindGroupProvider returns the pass's bind group provider.
func (p *Pass) BindGroupProvider() bind_group_provider.BindGroupProvider { return p.bindGroup }

// IndexCount returns the number of indices to draw.
func (p *Pass) IndexCount() int { return p.indexCount }

// WriteVertices uploads the shared vertex buffer. The tube and ribbon passes
// of one entity draw from the same vertex range, so only one of the two
// calls this per rebuild; the caller is the scene processor's concatenation
// step (spec.md §4.7).
func (p *Pass) WriteVertices(queue *wgpu.Queue, data []byte, vertexCount int) bool {
	return p.vertices.WriteBytes(queue, data, vertexCount)
}

// WriteIndices uploads this pass's disjoint index range.
func (p *Pass) WriteIndices(queue *wgpu.Queue, indices []uint32) bool {
	buf := make([]byte, len(indices)*4)
	for i, idx := range indices {
		binary.LittleEndian.PutUint32(buf[i*4:i*4+4], idx)
	}
	p.indexCount = len(indices)
	return p.indices.Write(queue, buf)
}

// VertexBuffer returns the underlying GPU vertex buffer.
func (p *Pass) VertexBuffer() *wgpu.Buffer { return p.vertices.Buffer() }

// IndexBuffer returns the underlying GPU index buffer.
func (p *Pass) IndexBuffer() *wgpu.Buffer { return p.indices.Buffer() }

// Release frees the pass's own GPU resources. The shared vertex buffer is
// owned by the scene, not the pass, and must be released separately once
// after both the tube and ribbon passes are done with it.
func (p *Pass) Release() {
	p.indices.Release()
	p.bindGroup.Release()
}
