package buffer

import "github.com/cogentcore/webgpu/wgpu"

// GPUElement is the constraint every element type stored in a TypedBuffer
// must satisfy — the same embed+Size+Marshal idiom used throughout this
// codebase for GPU-aligned structs (see engine/light/gpu_types.go,
// engine/model/gpu_types.go, engine/renderer/mesh/gpu_types.go).
type GPUElement interface {
	Size() int
	Marshal() []byte
}

// TypedBuffer is a growable GPU storage buffer parameterized by a POD
// element type. It is a thin wrapper over ByteBuffer that marshals each
// element before delegating to Write.
type TypedBuffer[T GPUElement] struct {
	inner        *ByteBuffer
	elementCount int
}

// NewTypedBuffer creates an empty TypedBuffer.
func NewTypedBuffer[T GPUElement](device *wgpu.Device, label string, usage wgpu.BufferUsage) *TypedBuffer[T] {
	return &TypedBuffer[T]{inner: NewByteBuffer(device, label, usage)}
}

// Buffer returns the underlying wgpu.Buffer.
func (t *TypedBuffer[T]) Buffer() *wgpu.Buffer {
	return t.inner.Buffer()
}

// ElementCount returns the number of elements written by the last Write call.
func (t *TypedBuffer[T]) ElementCount() int {
	return t.elementCount
}

// Write marshals every element and uploads the concatenated bytes, growing
// the buffer if necessary. Returns true on reallocation.
func (t *TypedBuffer[T]) Write(queue *wgpu.Queue, elements []T) bool {
	var buf []byte
	for i := range elements {
		buf = append(buf, elements[i].Marshal()...)
	}
	t.elementCount = len(elements)
	return t.inner.Write(queue, buf)
}

// WriteBytes uploads pre-marshaled element bytes directly — used by the
// scene processor, which produces already-concatenated byte buffers rather
// than []T slices (spec.md §4.7).
func (t *TypedBuffer[T]) WriteBytes(queue *wgpu.Queue, data []byte, elementCount int) bool {
	t.elementCount = elementCount
	return t.inner.Write(queue, data)
}

// WriteAt patches a byte sub-range of the buffer in place, for the scene
// processor's AnimationFrame fast path (spec.md §4.7 step 4). The range must
// already fall within the buffer's current capacity.
func (t *TypedBuffer[T]) WriteAt(queue *wgpu.Queue, offset uint64, data []byte) {
	t.inner.WriteAt(queue, offset, data)
}

// EnsureCapacity grows the buffer to hold at least n elements.
func (t *TypedBuffer[T]) EnsureCapacity(n int) bool {
	var zero T
	return t.inner.EnsureCapacity(uint64(n * zero.Size()))
}

// Release frees the underlying GPU buffer.
func (t *TypedBuffer[T]) Release() {
	t.inner.Release()
	t.elementCount = 0
}
