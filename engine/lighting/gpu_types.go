// Package lighting implements the procedural two-light + image-based-lighting
// model of spec.md §4.11: a CPU-synthesized diffuse irradiance cubemap, a
// roughness-mipped prefiltered specular cubemap, and a split-sum BRDF
// integration LUT, bound alongside a small uniform block of scalar shading
// parameters. It replaces the teacher's punctual Forward+ light-culling
// package for this renderer's single-object PBR path: there is no tile
// culling or shadow mapping here, only ambient image lighting plus two fixed
// directional lights (spec.md §4.11).
package lighting

import (
	_ "embed"
	"encoding/binary"
	"math"
	"unsafe"
)

// GPULightingUniformSource is the canonical WGSL definition of the
// LightingUniform struct bound alongside the three IBL textures.
//
//go:embed assets/lighting_uniform.wgsl
var GPULightingUniformSource string

// GPULightingUniform is the GPU-aligned representation of the lighting
// uniform buffer. Matches GPULightingUniformSource exactly (96 bytes).
type GPULightingUniform struct {
	Light1Dir           [3]float32
	Light1Intensity     float32
	Light2Dir           [3]float32
	Light2Intensity     float32
	Ambient             float32
	RimPower            float32
	RimIntensity        float32
	RimDirectionality   float32
	RimColor            [3]float32
	IblStrength         float32
	SpecularIntensity   float32
	Shininess           float32
	Roughness           float32
	Metalness           float32
	PrefilteredMipCount float32
	_pad                [3]float32
}

// Size returns the size of GPULightingUniform in bytes (96).
func (g *GPULightingUniform) Size() int { return int(unsafe.Sizeof(*g)) }

// Marshal packs the struct into its std430-compatible byte layout.
func (g *GPULightingUniform) Marshal() []byte {
	buf := make([]byte, 96)
	putVec3(buf[0:12], g.Light1Dir)
	putF32(buf[12:16], g.Light1Intensity)
	putVec3(buf[16:28], g.Light2Dir)
	putF32(buf[28:32], g.Light2Intensity)
	putF32(buf[32:36], g.Ambient)
	putF32(buf[36:40], g.RimPower)
	putF32(buf[40:44], g.RimIntensity)
	putF32(buf[44:48], g.RimDirectionality)
	putVec3(buf[48:60], g.RimColor)
	putF32(buf[60:64], g.IblStrength)
	putF32(buf[64:68], g.SpecularIntensity)
	putF32(buf[68:72], g.Shininess)
	putF32(buf[72:76], g.Roughness)
	putF32(buf[76:80], g.Metalness)
	putF32(buf[80:84], g.PrefilteredMipCount)
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
