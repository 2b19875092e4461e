// Package screenquad provides the single shared unit-quad mesh used by every
// pass that has no real per-vertex geometry: impostor ray-casting passes
// (sphere, capsule, cone, polygon) generate their surface analytically from a
// per-instance storage buffer, and postprocess passes sample a
// full-resolution source texture — both only need a quad spanning clip space
// to invoke their fragment shader once per pixel.
package screenquad

import (
	"encoding/binary"
	"fmt"
	"math"

	"github.com/Carmen-Shannon/oxy-go/engine/renderer/bind_group_provider"
	"github.com/cogentcore/webgpu/wgpu"
)

// clip-space quad covering the full viewport, CCW winding, two triangles.
var positions = [4][2]float32{
	{-1, -1},
	{1, -1},
	{1, 1},
	{-1, 1},
}

var indices = [6]uint32{0, 1, 2, 0, 2, 3}

// New builds and uploads the shared quad's vertex/index buffers directly on
// the given device/queue, returning a BindGroupProvider usable as the
// meshProvider argument to DrawCall/OffscreenDrawCall. It deliberately takes
// raw device/queue handles rather than a renderer.Renderer, so the package
// imports only bind_group_provider and wgpu and does not depend on
// engine/renderer.
func New(device *wgpu.Device, queue *wgpu.Queue) (bind_group_provider.BindGroupProvider, error) {
	provider := bind_group_provider.NewBindGroupProvider("Screen Quad")

	vertexData := make([]byte, 0, len(positions)*2*4)
	for _, p := range positions {
		vertexData = appendF32(vertexData, p[0])
		vertexData = appendF32(vertexData, p[1])
	}

	indexData := make([]byte, 0, len(indices)*4)
	for _, idx := range indices {
		indexData = binary.LittleEndian.AppendUint32(indexData, idx)
	}

	vbuf, err := device.CreateBuffer(&wgpu.BufferDescriptor{
		Label:            provider.Label() + " Vertex Buffer",
		Size:             uint64(len(vertexData)),
		Usage:            wgpu.BufferUsageVertex | wgpu.BufferUsageCopyDst,
		MappedAtCreation: false,
	})
	if err != nil {
		return nil, fmt.Errorf("screenquad: create vertex buffer: %w", err)
	}
	queue.WriteBuffer(vbuf, 0, vertexData)
	provider.SetVertexBuffer(vbuf)

	ibuf, err := device.CreateBuffer(&wgpu.BufferDescriptor{
		Label:            provider.Label() + " Index Buffer",
		Size:             uint64(len(indexData)),
		Usage:            wgpu.BufferUsageIndex | wgpu.BufferUsageCopyDst,
		MappedAtCreation: false,
	})
	if err != nil {
		return nil, fmt.Errorf("screenquad: create index buffer: %w", err)
	}
	queue.WriteBuffer(ibuf, 0, indexData)
	provider.SetIndexBuffer(ibuf)
	provider.SetIndexCount(len(indices))

	return provider, nil
}

func appendF32(dst []byte, v float32) []byte {
	return binary.LittleEndian.AppendUint32(dst, math.Float32bits(v))
}
