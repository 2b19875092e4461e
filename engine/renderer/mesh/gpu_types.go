// Package mesh implements the tube and ribbon passes of spec.md §4.3: both
// pipelines consume one shared vertex buffer and draw from disjoint index
// buffers.
package mesh

import (
	_ "embed"
	"encoding/binary"
	"math"
	"unsafe"
)

// GPUBackboneVertexSource is the canonical WGSL definition of the backbone
// vertex layout, matching GPUBackboneVertex exactly (52 bytes).
//
//go:embed assets/backbone_vertex.wgsl
var GPUBackboneVertexSource string

// residueIdxOffset is the byte offset of the ResidueIdx field within
// GPUBackboneVertex. The scene processor's concatenation step (spec.md
// §4.7) patches this field in place in raw byte buffers, so the offset is
// exposed as a named constant rather than recomputed from reflection.
const residueIdxOffset = 36

// GPUBackboneVertex is the GPU-aligned vertex shared by the tube and ribbon
// passes. Size: 52 bytes, matching spec.md §4.3 exactly.
type GPUBackboneVertex struct {
	Position   [3]float32 // offset  0: vertex position in world space (12 bytes)
	Normal     [3]float32 // offset 12: vertex normal for lighting (12 bytes)
	Color      [3]float32 // offset 24: per-vertex RGB color, sampled by residue (12 bytes)
	ResidueIdx uint32     // offset 36: global residue index, patched during concatenation (4 bytes)
	CenterPos  [3]float32 // offset 40: per-vertex reference point (tube axis or polygon plane) (12 bytes)
}

// Size returns the size of GPUBackboneVertex in bytes.
func (v *GPUBackboneVertex) Size() int {
	return int(unsafe.Sizeof(*v))
}

// Marshal serializes GPUBackboneVertex into a 52-byte buffer for GPU upload.
func (v *GPUBackboneVertex) Marshal() []byte {
	buf := make([]byte, 52)
	binary.LittleEndian.PutUint32(buf[0:4], math.Float32bits(v.Position[0]))
	binary.LittleEndian.PutUint32(buf[4:8], math.Float32bits(v.Position[1]))
	binary.LittleEndian.PutUint32(buf[8:12], math.Float32bits(v.Position[2]))
	binary.LittleEndian.PutUint32(buf[12:16], math.Float32bits(v.Normal[0]))
	binary.LittleEndian.PutUint32(buf[16:20], math.Float32bits(v.Normal[1]))
	binary.LittleEndian.PutUint32(buf[20:24], math.Float32bits(v.Normal[2]))
	binary.LittleEndian.PutUint32(buf[24:28], math.Float32bits(v.Color[0]))
	binary.LittleEndian.PutUint32(buf[28:32], math.Float32bits(v.Color[1]))
	binary.LittleEndian.PutUint32(buf[32:36], math.Float32bits(v.Color[2]))
	binary.LittleEndian.PutUint32(buf[36:40], v.ResidueIdx)
	binary.LittleEndian.PutUint32(buf[40:44], math.Float32bits(v.CenterPos[0]))
	binary.LittleEndian.PutUint32(buf[44:48], math.Float32bits(v.CenterPos[1]))
	binary.LittleEndian.PutUint32(buf[48:52], math.Float32bits(v.CenterPos[2]))
	return buf
}

// PatchResidueIdx rewrites the ResidueIdx field in-place within a raw,
// concatenated byte buffer of GPUBackboneVertex records, adding offset to
// every vertex's residue index. Implements spec.md §9's "vertex index
// patching on concatenation" design note: a loop strided by the vertex size
// that rewrites only the four-byte field at residueIdxOffset.
func PatchResidueIdx(buf []byte, offset uint32) {
	const stride = 52
	for i := 0; i+stride <= len(buf); i += stride {
		field := buf[i+residueIdxOffset : i+residueIdxOffset+4]
		v := binary.LittleEndian.Uint32(field)
		binary.LittleEndian.PutUint32(field, v+offset)
	}
}
