package impostor

import (
	"github.com/Carmen-Shannon/oxy-go/engine/renderer/bind_group_provider"
	"github.com/Carmen-Shannon/oxy-go/engine/renderer/buffer"
	"github.com/Carmen-Shannon/oxy-go/engine/renderer/pipeline"
	"github.com/cogentcore/webgpu/wgpu"
)

// Pass is the reusable higher-order impostor pass object of spec.md §4.2: it
// holds the pipeline, the bind group provider describing the instance
// storage buffer's binding, and a typed instance buffer. Every impostor kind
// (sphere, capsule, cone, polygon) instantiates this generically over its
// own GPU instance type.
type Pass[T buffer.GPUElement] struct {
	label       string
	pipeline    pipeline.Pipeline
	bindGroup   bind_group_provider.BindGroupProvider
	instances   *buffer.TypedBuffer[T]
	vertexCount uint32 // always 6: a screen/object-aligned quad per instance
}

// NewPass creates an impostor Pass with an empty instance buffer, ready for
// the Renderer to initialize its pipeline and bind group.
func NewPass[T buffer.GPUElement](label string, device *wgpu.Device, p pipeline.Pipeline, bg bind_group_provider.BindGroupProvider) *Pass[T] {
	return &Pass[T]{
		label:       label,
		pipeline:    p,
		bindGroup:   bg,
		instances:   buffer.NewTypedBuffer[T](device, label+" Instances", wgpu.BufferUsageStorage),
		vertexCount: 6,
	}
}

// Label returns the pass's debug label.
func (p *Pass[T]) Label() string { return p.label }

// Pipeline returns the pass's render pipeline.
func (p *Pass[T]) Pipeline() pipeline.Pipeline { return p.pipeline }

// BindGroupProvider returns the pass's instance-buffer bind group provider.
func (p *Pass[T]) BindGroupProvider() bind_group_provider.BindGroupProvider { return p.bindGroup }

// InstanceCount returns the number of instances currently written.
func (p *Pass[T]) InstanceCount() int { return p.instances.ElementCount() }

// WriteInstances marshals and uploads instance data, growing the buffer if
// necessary. Returns true if the write triggered a reallocation, in which
// case the caller must recreate the pass's bind group.
func (p *Pass[T]) WriteInstances(queue *wgpu.Queue, instances []T) bool {
	return p.instances.Write(queue, instances)
}

// WriteBytes uploads pre-marshaled instance bytes produced by the background
// scene processor (spec.md §4.7), avoiding a redundant per-instance marshal
// pass on the render thread.
func (p *Pass[T]) WriteBytes(queue *wgpu.Queue, data []byte, count int) bool {
	return p.instances.WriteBytes(queue, data, count)
}

// InstanceBuffer returns the underlying GPU buffer for bind group creation.
func (p *Pass[T]) InstanceBuffer() *wgpu.Buffer {
	return p.instances.Buffer()
}

// Release frees the pass's GPU resources.
func (p *Pass[T]) Release() {
	p.instances.Release()
	p.bindGroup.Release()
}
