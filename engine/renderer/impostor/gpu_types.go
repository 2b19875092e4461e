// Package impostor implements the sphere, capsule, cone, and extruded-polygon
// impostor passes of spec.md §4.2: each pass binds a per-instance storage
// buffer and ray-casts the analytic surface in the fragment shader rather
// than rendering a tessellated mesh.
package impostor

import (
	_ "embed"
	"encoding/binary"
	"math"
	"unsafe"
)

//go:embed assets/sphere.wgsl
var GPUSphereInstanceSource string

//go:embed assets/capsule.wgsl
var GPUCapsuleInstanceSource string

//go:embed assets/cone.wgsl
var GPUConeInstanceSource string

//go:embed assets/polygon.wgsl
var GPUPolygonInstanceSource string

// GPUSphereInstance is one sphere impostor: center + radius, color + residue
// index. Size: 32 bytes.
type GPUSphereInstance struct {
	Center     [3]float32
	Radius     float32
	Color      [3]float32
	ResidueIdx float32
}

func (s *GPUSphereInstance) Size() int { return int(unsafe.Sizeof(*s)) }

func (s *GPUSphereInstance) Marshal() []byte {
	buf := make([]byte, 32)
	putVec3(buf[0:12], s.Center)
	putF32(buf[12:16], s.Radius)
	putVec3(buf[16:28], s.Color)
	putF32(buf[28:32], s.ResidueIdx)
	return buf
}

// GPUCapsuleInstance is one capsule impostor: two endpoints (the first
// carrying radius, the second carrying residue index) and two colors
// interpolated along the axis. Size: 64 bytes.
type GPUCapsuleInstance struct {
	EndpointA  [3]float32
	Radius     float32
	EndpointB  [3]float32
	ResidueIdx float32
	ColorA     [3]float32
	_padA      float32
	ColorB     [3]float32
	_padB      float32
}

func (c *GPUCapsuleInstance) Size() int { return int(unsafe.Sizeof(*c)) }

func (c *GPUCapsuleInstance) Marshal() []byte {
	buf := make([]byte, 64)
	putVec3(buf[0:12], c.EndpointA)
	putF32(buf[12:16], c.Radius)
	putVec3(buf[16:28], c.EndpointB)
	putF32(buf[28:32], c.ResidueIdx)
	putVec3(buf[32:44], c.ColorA)
	putVec3(buf[48:60], c.ColorB)
	return buf
}

// GPUConeInstance is one truncated-cone impostor: base (xyz + base radius),
// tip (xyz + residue index), color. Size: 48 bytes.
type GPUConeInstance struct {
	Base       [3]float32
	BaseRadius float32
	Tip        [3]float32
	ResidueIdx float32
	Color      [3]float32
	_pad       float32
}

func (c *GPUConeInstance) Size() int { return int(unsafe.Sizeof(*c)) }

func (c *GPUConeInstance) Marshal() []byte {
	buf := make([]byte, 48)
	putVec3(buf[0:12], c.Base)
	putF32(buf[12:16], c.BaseRadius)
	putVec3(buf[16:28], c.Tip)
	putF32(buf[28:32], c.ResidueIdx)
	putVec3(buf[32:44], c.Color)
	return buf
}

// GPUPolygonInstance is one extruded-polygon impostor: up to 6 coplanar
// vertices (unused slots padded with the centroid so the unused triangles
// are degenerate), a face normal, a color, and a half-thickness. Each field
// is a full vec4 slot to match the WGSL layout exactly (128 bytes); the w
// component of Vertices[0] carries the vertex count and the w component of
// Vertices[1] carries the half-thickness, per spec.md §4.2's packing.
type GPUPolygonInstance struct {
	Vertices [6][4]float32
	Normal   [4]float32
	Color    [4]float32
}

func (p *GPUPolygonInstance) Size() int { return int(unsafe.Sizeof(*p)) }

func (p *GPUPolygonInstance) Marshal() []byte {
	buf := make([]byte, 128)
	off := 0
	for i := 0; i < 6; i++ {
		putVec4(buf[off:off+16], p.Vertices[i])
		off += 16
	}
	putVec4(buf[off:off+16], p.Normal)
	off += 16
	putVec4(buf[off:off+16], p.Color)
	return buf
}

func putF32(dst []byte, v float32) {
	binary.LittleEndian.PutUint32(dst, math.Float32bits(v))
}

func putVec3(dst []byte, v [3]float32) {
	putF32(dst[0:4], v[0])
	putF32(dst[4:8], v[1])
	putF32(dst[8:12], v[2])
}

func putVec4(dst []byte, v [4]float32) {
	putF32(dst[0:4], v[0])
	putF32(dst[4:8], v[1])
	putF32(dst[8:12], v[2])
	putF32(dst[12:16], v[3])
}
