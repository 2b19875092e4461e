// Package buffer implements the dynamic GPU buffers of spec.md §4.1: a byte
// buffer for heterogeneous layouts and a typed buffer parameterized by a POD
// element type. Both grow (reallocate) on write when capacity is exceeded
// and report the reallocation so the owner can recreate dependent bind
// groups, matching the teacher's bind_group_provider buffer-slot lifecycle.
package buffer

import (
	"github.com/cogentcore/webgpu/wgpu"
)

// minAllocBytes is the minimum-size sentinel used when a buffer is created
// with zero data, since some graphics APIs reject empty bindings.
const minAllocBytes = 16

// ByteBuffer is a growable GPU buffer for heterogeneous byte layouts.
type ByteBuffer struct {
	device   *wgpu.Device
	label    string
	usage    wgpu.BufferUsage
	buf      *wgpu.Buffer
	capacity uint64
	length   uint64
}

// NewByteBuffer creates an empty ByteBuffer. The underlying GPU buffer is
// allocated lazily on the first Write or EnsureCapacity call.
func NewByteBuffer(device *wgpu.Device, label string, usage wgpu.BufferUsage) *ByteBuffer {
	return &ByteBuffer{device: device, label: label, usage: usage}
}

// Buffer returns the underlying wgpu.Buffer, or nil if nothing has been
// written yet.
func (b *ByteBuffer) Buffer() *wgpu.Buffer {
	return b.buf
}

// Len returns the byte length of the currently-valid region, tracked
// separately from capacity.
func (b *ByteBuffer) Len() uint64 {
	return b.length
}

// Capacity returns the GPU buffer's allocated capacity in bytes.
func (b *ByteBuffer) Capacity() uint64 {
	return b.capacity
}

// EnsureCapacity grows the buffer to at least n bytes without writing any
// content. Returns true if a reallocation occurred.
func (b *ByteBuffer) EnsureCapacity(n uint64) bool {
	if n <= b.capacity && b.buf != nil {
		return false
	}
	newCap := n
	if newCap < minAllocBytes {
		newCap = minAllocBytes
	}
	if b.capacity*2 > newCap {
		newCap = b.capacity * 2
	}
	old := b.buf
	b.buf = b.device.CreateBuffer(&wgpu.BufferDescriptor{
		Label:            b.label,
		Size:             newCap,
		Usage:            b.usage | wgpu.BufferUsageCopyDst,
		MappedAtCreation: false,
	})
	b.capacity = newCap
	if old != nil {
		old.Release()
	}
	return true
}

// Write copies data into the GPU buffer, growing it first if necessary.
// Returns true if the write triggered a reallocation — any bind group
// naming this buffer must be recreated, because bind groups capture the
// underlying allocation handle.
func (b *ByteBuffer) Write(queue *wgpu.Queue, data []byte) bool {
	n := uint64(len(data))
	if n == 0 {
		n = minAllocBytes
	}
	reallocated := b.EnsureCapacity(n)
	if len(data) > 0 {
		queue.WriteBuffer(b.buf, 0, data)
	}
	b.length = uint64(len(data))
	return reallocated
}

// WriteAt copies data into an existing sub-range of the buffer without
// growing or reallocating it, for the scene processor's AnimationFrame fast
// path (spec.md §4.7 step 4): only the bytes belonging to animated entities
// change, so the main thread patches them in place instead of re-uploading
// the whole concatenated buffer. The caller must ensure offset+len(data)
// fits within the buffer's current capacity; use Write for anything that
// might grow it.
func (b *ByteBuffer) WriteAt(queue *wgpu.Queue, offset uint64, data []byte) {
	if b.buf == nil || len(data) == 0 {
		return
	}
	queue.WriteBuffer(b.buf, offset, data)
}

// Release frees the underlying GPU buffer.
func (b *ByteBuffer) Release() {
	if b.buf != nil {
		b.buf.Release()
		b.buf = nil
	}
	b.capacity = 0
	b.length = 0
}
